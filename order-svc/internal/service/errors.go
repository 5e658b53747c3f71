package service

import "errors"

// Sentinel failures surfaced across the order engine. Handlers map these to
// stable machine-readable codes; none of them terminates the process.
var (
	ErrCartEmpty           = errors.New("cart is empty")
	ErrMixedRestaurants    = errors.New("all items must be from the same restaurant")
	ErrItemUnavailable     = errors.New("food item is not available")
	ErrOrderNotFound       = errors.New("order not found")
	ErrItemNotFound        = errors.New("food item not found")
	ErrItemNotInOrder      = errors.New("food item was not part of the order")
	ErrInvalidTransition   = errors.New("order status does not allow this transition")
	ErrRestaurantClosed    = errors.New("restaurant is closed")
	ErrOTPMismatch         = errors.New("invalid OTP")
	ErrPaymentVerification = errors.New("payment verification failed")
	ErrOrderNotCompleted   = errors.New("order must be completed to submit ratings")
	ErrAlreadyRated        = errors.New("order has already been rated")
	ErrPaymentGateway      = errors.New("payment gateway request failed")
	ErrUnknownStatus       = errors.New("unknown order status")
	ErrInvalidQuantity     = errors.New("quantity must be positive")
	ErrRatingOutOfRange    = errors.New("rating must be between 1 and 5")
	ErrCartItemNotFound    = errors.New("item not found in cart")
)
