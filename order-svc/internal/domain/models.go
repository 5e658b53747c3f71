package domain

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether no further transition may leave the status.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type OrderType string

const (
	OrderTypeDining   OrderType = "dining"
	OrderTypeTakeaway OrderType = "takeaway"
)

// OrderItem is a line-item snapshot taken at checkout. Prices and names are
// frozen so later menu edits never change what the customer agreed to pay.
type OrderItem struct {
	FoodItemID     string  `json:"food_item_id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	Quantity       int     `json:"quantity"`
	Image          string  `json:"image,omitempty"`
	RestaurantName string  `json:"restaurant_name"`
}

type Order struct {
	OrderID       string      `json:"order_id"`
	CustomerID    string      `json:"customer_id"`
	RestaurantID  string      `json:"restaurant_id"`
	Items         []OrderItem `json:"items"`
	OrderType     OrderType   `json:"order_type"`
	Subtotal      float64     `json:"subtotal"`
	ServiceCharge float64     `json:"service_charge"`
	Total         float64     `json:"total"`
	Status        Status      `json:"status"`
	OTP           string      `json:"otp,omitempty"`
	EstimatedTime int         `json:"estimated_time"`
	HasRated      bool        `json:"has_rated"`
	CreatedAt     time.Time   `json:"created_at"`
	ConfirmedAt   *time.Time  `json:"confirmed_at,omitempty"`
	CancelledAt   *time.Time  `json:"cancelled_at,omitempty"`
}

// CartItem mirrors OrderItem but keeps the takeaway surcharge so checkout can
// price either fulfilment mode from the same basket.
type CartItem struct {
	FoodItemID     string  `json:"food_item_id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	TakeawayPrice  float64 `json:"takeaway_price"`
	Quantity       int     `json:"quantity"`
	Image          string  `json:"image,omitempty"`
	RestaurantID   string  `json:"restaurant_id"`
	RestaurantName string  `json:"restaurant_name"`
}

type Cart struct {
	CustomerID string     `json:"customer_id"`
	Items      []CartItem `json:"items"`
}

// FoodItem is the slice of the catalog the order engine reads: pricing for
// the cart and identity for settlement.
type FoodItem struct {
	FoodItemID     string  `json:"food_item_id"`
	RestaurantID   string  `json:"restaurant_id"`
	RestaurantName string  `json:"restaurant_name"`
	DishName       string  `json:"dish_name"`
	DineinPrice    float64 `json:"dinein_price"`
	TakeawayPrice  float64 `json:"takeaway_price"`
	Image          string  `json:"image,omitempty"`
	Availability   bool    `json:"availability"`
}

// PaymentIntent is the reference handed back by the external gateway when a
// checkout starts. Amount is in minor currency units, gateway convention.
type PaymentIntent struct {
	GatewayOrderID string `json:"gateway_order_id"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt"`
}

// OrderEvent is published to Kafka once per durable status transition.
type OrderEvent struct {
	Type         string    `json:"type"`
	OrderID      string    `json:"order_id"`
	CustomerID   string    `json:"customer_id"`
	RestaurantID string    `json:"restaurant_id"`
	Status       Status    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
}

const EventOrderStatus = "order_status"

type Rating struct {
	FoodItemID string `json:"food_item_id" validate:"required"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
}
