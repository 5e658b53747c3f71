package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"foodcourt-ordering/order-svc/internal/domain"
	"foodcourt-ordering/order-svc/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/skip2/go-qrcode"
)

// CustomerHeader is populated by the auth layer in front of this service.
const CustomerHeader = "X-Customer-ID"

var validate = validator.New()

type Handler struct {
	Orders service.OrderServiceInterface
	Carts  service.CartServiceInterface
}

func NewHandler(orders service.OrderServiceInterface, carts service.CartServiceInterface) *Handler {
	return &Handler{Orders: orders, Carts: carts}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/cart/add", h.addCartItem).Methods("POST")
	r.HandleFunc("/api/cart/update/{foodItemId}", h.updateCartItem).Methods("PUT")
	r.HandleFunc("/api/cart/remove/{foodItemId}", h.removeCartItem).Methods("DELETE")
	r.HandleFunc("/api/cart", h.getCart).Methods("GET")

	r.HandleFunc("/api/orders/create", h.createOrder).Methods("POST")
	r.HandleFunc("/api/orders/verify", h.verifyOrder).Methods("POST")
	r.HandleFunc("/api/orders", h.listOrders).Methods("GET")
	r.HandleFunc("/api/orders/{orderId}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{orderId}/qrcode", h.getOrderQRCode).Methods("GET")
	r.HandleFunc("/api/orders/{orderId}/cancel", h.cancelOrder).Methods("POST")
	r.HandleFunc("/api/orders/{orderId}/update-otp", h.updateOTP).Methods("PUT")
	r.HandleFunc("/api/orders/{orderId}/update-status", h.updateStatus).Methods("POST")

	r.HandleFunc("/api/restaurants/{restaurantId}/orders", h.listRestaurantOrders).Methods("GET")
	r.HandleFunc("/api/restaurant/orders/{orderId}/accept", h.acceptOrder).Methods("POST")
	r.HandleFunc("/api/restaurant/orders/{orderId}/cancel", h.restaurantCancelOrder).Methods("POST")
	r.HandleFunc("/api/restaurant/orders/{orderId}/start-preparing", h.startPreparing).Methods("POST")
	r.HandleFunc("/api/restaurant/orders/{orderId}/mark-prepared", h.markPrepared).Methods("POST")
	r.HandleFunc("/api/restaurant/orders/{orderId}/complete", h.completeOrder).Methods("POST")

	r.HandleFunc("/api/food-items/ratings", h.submitRatings).Methods("POST")
	r.HandleFunc("/api/food-items/ratings/{orderId}", h.hasRated).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "order-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

type addCartItemRequest struct {
	FoodItemID string `json:"food_item_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"required,min=1"`
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customer(w, r)
	if !ok {
		return
	}

	var req addCartItemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	cart, err := h.Carts.AddItem(r.Context(), customerID, req.FoodItemID, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customer(w, r)
	if !ok {
		return
	}

	var req updateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidation(w, "invalid JSON payload")
		return
	}

	cart, err := h.Carts.UpdateItem(r.Context(), customerID, mux.Vars(r)["foodItemId"], req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customer(w, r)
	if !ok {
		return
	}

	cart, err := h.Carts.RemoveItem(r.Context(), customerID, mux.Vars(r)["foodItemId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customer(w, r)
	if !ok {
		return
	}

	cart, err := h.Carts.GetCart(r.Context(), customerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

type createOrderRequest struct {
	OrderType string `json:"order_type" validate:"required,oneof=dining takeaway"`
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customer(w, r)
	if !ok {
		return
	}

	var req createOrderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	order, intent, err := h.Orders.CreateOrder(r.Context(), customerID, domain.OrderType(req.OrderType))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"order":          order,
		"payment_intent": intent,
	})
}

type verifyOrderRequest struct {
	GatewayOrderID string       `json:"gateway_order_id" validate:"required"`
	PaymentID      string       `json:"payment_id" validate:"required"`
	Signature      string       `json:"signature" validate:"required"`
	Order          domain.Order `json:"order" validate:"required"`
}

func (h *Handler) verifyOrder(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customer(w, r)
	if !ok {
		return
	}

	var req verifyOrderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	req.Order.CustomerID = customerID
	order, err := h.Orders.VerifyAndPersistOrder(r.Context(), &req.Order, req.GatewayOrderID, req.PaymentID, req.Signature)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customer(w, r)
	if !ok {
		return
	}

	orders, err := h.Orders.ListOrders(customerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.GetOrder(mux.Vars(r)["orderId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["orderId"]
	if _, err := h.Orders.GetOrder(orderID); err != nil {
		writeError(w, err)
		return
	}

	png, err := qrcode.Encode(orderID, qrcode.Medium, 256)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.CancelOrder(r.Context(), mux.Vars(r)["orderId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

type updateOTPRequest struct {
	OTP string `json:"otp" validate:"required,len=4,numeric"`
}

func (h *Handler) updateOTP(w http.ResponseWriter, r *http.Request) {
	var req updateOTPRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	order, err := h.Orders.UpdateOTP(r.Context(), mux.Vars(r)["orderId"], req.OTP)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	order, err := h.Orders.UpdateStatus(r.Context(), mux.Vars(r)["orderId"], domain.Status(req.Status))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) listRestaurantOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.ListRestaurantOrders(mux.Vars(r)["restaurantId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) acceptOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.ConfirmOrder(r.Context(), mux.Vars(r)["orderId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) restaurantCancelOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.CancelOrder(r.Context(), mux.Vars(r)["orderId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) startPreparing(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.StartPreparing(r.Context(), mux.Vars(r)["orderId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) markPrepared(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.MarkReady(r.Context(), mux.Vars(r)["orderId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

type completeOrderRequest struct {
	OTP string `json:"otp" validate:"required"`
}

func (h *Handler) completeOrder(w http.ResponseWriter, r *http.Request) {
	var req completeOrderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	order, err := h.Orders.CompleteOrder(r.Context(), mux.Vars(r)["orderId"], req.OTP)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

type submitRatingsRequest struct {
	OrderID string          `json:"order_id" validate:"required"`
	Ratings []domain.Rating `json:"ratings" validate:"required,min=1,dive"`
}

func (h *Handler) submitRatings(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customer(w, r)
	if !ok {
		return
	}

	var req submitRatingsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.Orders.SubmitRatings(r.Context(), req.OrderID, customerID, req.Ratings); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Ratings submitted successfully"})
}

func (h *Handler) hasRated(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customer(w, r)
	if !ok {
		return
	}

	rated, err := h.Orders.HasRated(mux.Vars(r)["orderId"], customerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"has_rated": rated})
}

func (h *Handler) customer(w http.ResponseWriter, r *http.Request) (string, bool) {
	customerID := r.Header.Get(CustomerHeader)
	if customerID == "" {
		writeValidation(w, "missing customer identity")
		return "", false
	}
	return customerID, true
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeValidation(w, "invalid JSON payload")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeValidation(w, err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeValidation(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"code": "validation_error", "message": message})
}

// writeError maps service sentinels to stable machine-readable codes.
func writeError(w http.ResponseWriter, err error) {
	var status int
	var code string

	switch {
	case errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrCartItemNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrRestaurantClosed),
		errors.Is(err, service.ErrOrderNotCompleted):
		status, code = http.StatusBadRequest, "invalid_transition"
	case errors.Is(err, service.ErrOTPMismatch):
		status, code = http.StatusUnauthorized, "auth_failure"
	case errors.Is(err, service.ErrPaymentVerification):
		status, code = http.StatusBadRequest, "auth_failure"
	case errors.Is(err, service.ErrAlreadyRated):
		status, code = http.StatusConflict, "conflict"
	case errors.Is(err, service.ErrPaymentGateway):
		status, code = http.StatusBadGateway, "upstream_failure"
	case errors.Is(err, service.ErrCartEmpty),
		errors.Is(err, service.ErrMixedRestaurants),
		errors.Is(err, service.ErrItemUnavailable),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrRatingOutOfRange),
		errors.Is(err, service.ErrItemNotInOrder),
		errors.Is(err, service.ErrUnknownStatus):
		status, code = http.StatusBadRequest, "validation_error"
	default:
		status, code = http.StatusInternalServerError, "internal_error"
	}

	writeJSON(w, status, map[string]string{"code": code, "message": err.Error()})
}
