package domain

import "time"

type FoodType string

const (
	FoodTypeVeg    FoodType = "Vegetarian"
	FoodTypeNonVeg FoodType = "Non-Vegetarian"
)

type Restaurant struct {
	RestaurantID string    `json:"restaurant_id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	ImageURL     string    `json:"image_url"`
	Availability bool      `json:"availability"`
	Rating       float64   `json:"rating"`
	OrderCount   int       `json:"order_count"`
	TotalRevenue float64   `json:"total_revenue"`
	CreatedAt    time.Time `json:"created_at"`
}

// FoodItem carries the menu fields plus the aggregate counters that the order
// settlement keeps up to date. Catalog writes the counters only as zeroes on
// insert.
type FoodItem struct {
	FoodItemID    string    `json:"food_item_id"`
	RestaurantID  string    `json:"restaurant_id"`
	DishName      string    `json:"dish_name"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	FoodType      FoodType  `json:"food_type"`
	DineinPrice   float64   `json:"dinein_price"`
	TakeawayPrice float64   `json:"takeaway_price"`
	ImageURL      string    `json:"image_url"`
	Availability  bool      `json:"availability"`
	Rating        float64   `json:"rating"`
	RatingsCount  int       `json:"ratings_count"`
	TotalOrders   int       `json:"total_orders"`
	TotalRevenue  float64   `json:"total_revenue"`
	CreatedAt     time.Time `json:"created_at"`
}

// FoodItemUpdate holds the editable menu fields. Nil means leave unchanged.
type FoodItemUpdate struct {
	DishName      *string  `json:"dish_name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Category      *string  `json:"category,omitempty"`
	FoodType      *string  `json:"food_type,omitempty"`
	DineinPrice   *float64 `json:"dinein_price,omitempty"`
	TakeawayPrice *float64 `json:"takeaway_price,omitempty"`
	ImageURL      *string  `json:"image_url,omitempty"`
	Availability  *bool    `json:"availability,omitempty"`
}
