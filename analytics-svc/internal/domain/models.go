package domain

// DashboardStats carries lifetime counters plus day and month figures with
// rendered deltas ("+40% from yesterday").
type DashboardStats struct {
	TotalOrders      int     `json:"total_orders"`
	TotalProfit      float64 `json:"total_profit"`
	TodayOrders      int     `json:"today_orders"`
	TodayOrdersDelta string  `json:"today_orders_delta"`
	TodayProfit      float64 `json:"today_profit"`
	TodayProfitDelta string  `json:"today_profit_delta"`
	MonthOrders      int     `json:"month_orders"`
	MonthOrdersDelta string  `json:"month_orders_delta"`
	MonthProfit      float64 `json:"month_profit"`
	MonthProfitDelta string  `json:"month_profit_delta"`
}

type TrendPoint struct {
	Day    string `json:"day"`
	Orders int    `json:"orders"`
}

type CategoryRevenue struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
}

type SoldItem struct {
	FoodItemID  string `json:"food_item_id"`
	DishName    string `json:"dish_name"`
	TotalOrders int    `json:"total_orders"`
	Percentage  int    `json:"percentage"`
}

type Dashboard struct {
	RestaurantID      string            `json:"restaurant_id"`
	Stats             DashboardStats    `json:"stats"`
	DailyOrderTrends  []TrendPoint      `json:"daily_order_trends"`
	RevenueByCategory []CategoryRevenue `json:"revenue_by_category"`
	MostSoldItems     []SoldItem        `json:"most_sold_items"`
}

type RestaurantRevenue struct {
	RestaurantID string  `json:"restaurant_id"`
	Name         string  `json:"name"`
	OrderCount   int     `json:"order_count"`
	TotalRevenue float64 `json:"total_revenue"`
}

// AdminDashboard aggregates the same shapes across every restaurant.
type AdminDashboard struct {
	Stats               DashboardStats      `json:"stats"`
	DailyOrderTrends    []TrendPoint        `json:"daily_order_trends"`
	RevenueByRestaurant []RestaurantRevenue `json:"revenue_by_restaurant"`
	MostSoldItems       []SoldItem          `json:"most_sold_items"`
	RestaurantCount     int                 `json:"restaurant_count"`
}
