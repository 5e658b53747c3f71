package domain

import "time"

// OrderEvent mirrors the payload the order service publishes on every
// successful status transition.
type OrderEvent struct {
	Type         string    `json:"type"`
	OrderID      string    `json:"order_id"`
	CustomerID   string    `json:"customer_id"`
	RestaurantID string    `json:"restaurant_id"`
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
}

const EventOrderStatus = "order_status"
