package service

import (
	"context"

	"foodcourt-ordering/order-svc/internal/domain"
)

type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, customerID string, orderType domain.OrderType) (*domain.Order, *domain.PaymentIntent, error)
	VerifyAndPersistOrder(ctx context.Context, draft *domain.Order, gatewayOrderID, paymentID, signature string) (*domain.Order, error)
	ListOrders(customerID string) ([]domain.Order, error)
	ListRestaurantOrders(restaurantID string) ([]domain.Order, error)
	GetOrder(orderID string) (*domain.Order, error)
	CancelOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ConfirmOrder(ctx context.Context, orderID string) (*domain.Order, error)
	StartPreparing(ctx context.Context, orderID string) (*domain.Order, error)
	MarkReady(ctx context.Context, orderID string) (*domain.Order, error)
	CompleteOrder(ctx context.Context, orderID, otp string) (*domain.Order, error)
	UpdateOTP(ctx context.Context, orderID, otp string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status domain.Status) (*domain.Order, error)
	SubmitRatings(ctx context.Context, orderID, customerID string, ratings []domain.Rating) error
	HasRated(orderID, customerID string) (bool, error)
}

type CartServiceInterface interface {
	AddItem(ctx context.Context, customerID, foodItemID string, quantity int) (*domain.Cart, error)
	UpdateItem(ctx context.Context, customerID, foodItemID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, customerID, foodItemID string) (*domain.Cart, error)
	GetCart(ctx context.Context, customerID string) (*domain.Cart, error)
}

// OrderRepository owns the orders and order_items tables. TransitionStatus is
// a conditional write: it succeeds only when the persisted status still equals
// from, which closes the duplicate-transition race without a cross-request
// lock.
type OrderRepository interface {
	InsertOrder(order *domain.Order) error
	GetOrder(orderID string) (*domain.Order, error)
	GetCustomerOrder(orderID, customerID string) (*domain.Order, error)
	ListCustomerOrders(customerID string, limit int) ([]domain.Order, error)
	ListRestaurantOrders(restaurantID string) ([]domain.Order, error)
	TransitionStatus(orderID string, from, to domain.Status) (bool, error)
	UpdateOTP(orderID, otp string) error
	SetHasRated(orderID string) error
	DecrementEstimatedTimes() (int64, error)
}

// CatalogRepository is the order engine's view of catalog data: pricing reads
// for the cart, atomic counter increments for settlement, and the rating
// recomputation writes.
type CatalogRepository interface {
	GetFoodItem(foodItemID string) (*domain.FoodItem, error)
	RestaurantOpen(restaurantID string) (bool, error)
	IncrementRestaurantTotals(restaurantID string, orders int, revenue float64) error
	IncrementItemTotals(foodItemID string, orders int, revenue float64) (bool, error)
	UpsertItemRating(foodItemID, customerID, orderID string, rating int) error
	RecomputeItemRating(foodItemID string) error
	RecomputeRestaurantRating(restaurantID string) error
	HasItemRating(foodItemID, customerID, orderID string) (bool, error)
}

type CartStore interface {
	Get(ctx context.Context, customerID string) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Delete(ctx context.Context, customerID string) error
}

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

// PaymentGateway is the external boundary: amounts cross it in minor currency
// units, everywhere else the platform uses decimal major units.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency, receipt string) (*domain.PaymentIntent, error)
	VerifySignature(gatewayOrderID, paymentID, signature string) bool
}

var (
	_ OrderServiceInterface = (*OrderService)(nil)
	_ CartServiceInterface  = (*CartService)(nil)
)
