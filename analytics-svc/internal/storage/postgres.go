package storage

import (
	"database/sql"
	"time"

	"foodcourt-ordering/analytics-svc/internal/domain"
)

// PostgresStore reads order history written by the order service and counters
// kept on the catalog tables. Scope everywhere is completed orders only.
type PostgresStore struct {
	DB *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

func (s *PostgresStore) RestaurantTotals(restaurantID string) (int, float64, error) {
	var orders int
	var revenue float64
	err := s.DB.QueryRow(
		"SELECT order_count, total_revenue FROM restaurants WHERE restaurant_id = $1",
		restaurantID,
	).Scan(&orders, &revenue)
	if err == sql.ErrNoRows {
		return 0, 0, nil
	}
	return orders, revenue, err
}

func (s *PostgresStore) OrdersBetween(restaurantID string, from, to time.Time) (int, float64, error) {
	var orders int
	var revenue float64
	err := s.DB.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(total), 0)
		FROM orders
		WHERE restaurant_id = $1 AND status = 'completed'
		  AND created_at >= $2 AND created_at < $3`,
		restaurantID, from, to,
	).Scan(&orders, &revenue)
	return orders, revenue, err
}

func (s *PostgresStore) DailyOrderCounts(restaurantID string, from, to time.Time) (map[string]int, error) {
	rows, err := s.DB.Query(`
		SELECT TO_CHAR(created_at AT TIME ZONE 'Asia/Kolkata', 'YYYY-MM-DD') AS day, COUNT(*)
		FROM orders
		WHERE restaurant_id = $1 AND status = 'completed'
		  AND created_at >= $2 AND created_at < $3
		GROUP BY day`,
		restaurantID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDailyCounts(rows), nil
}

func (s *PostgresStore) RevenueByCategory(restaurantID string) ([]domain.CategoryRevenue, error) {
	rows, err := s.DB.Query(`
		SELECT COALESCE(category, ''), SUM(total_revenue)
		FROM food_items
		WHERE restaurant_id = $1 AND total_revenue > 0
		GROUP BY category
		ORDER BY SUM(total_revenue) DESC`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CategoryRevenue
	for rows.Next() {
		var entry domain.CategoryRevenue
		if err := rows.Scan(&entry.Category, &entry.Revenue); err != nil {
			continue
		}
		result = append(result, entry)
	}
	return result, nil
}

func (s *PostgresStore) MostSoldItems(restaurantID string, limit int) ([]domain.SoldItem, error) {
	rows, err := s.DB.Query(`
		SELECT food_item_id, dish_name, total_orders
		FROM food_items
		WHERE restaurant_id = $1 AND total_orders > 0
		ORDER BY total_orders DESC
		LIMIT $2`, restaurantID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSoldItems(rows), nil
}

func (s *PostgresStore) PlatformTotals() (int, float64, int, error) {
	var orders, restaurants int
	var revenue float64
	err := s.DB.QueryRow(`
		SELECT COALESCE(SUM(order_count), 0), COALESCE(SUM(total_revenue), 0), COUNT(*)
		FROM restaurants`,
	).Scan(&orders, &revenue, &restaurants)
	return orders, revenue, restaurants, err
}

func (s *PostgresStore) PlatformOrdersBetween(from, to time.Time) (int, float64, error) {
	var orders int
	var revenue float64
	err := s.DB.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(total), 0)
		FROM orders
		WHERE status = 'completed' AND created_at >= $1 AND created_at < $2`,
		from, to,
	).Scan(&orders, &revenue)
	return orders, revenue, err
}

func (s *PostgresStore) PlatformDailyOrderCounts(from, to time.Time) (map[string]int, error) {
	rows, err := s.DB.Query(`
		SELECT TO_CHAR(created_at AT TIME ZONE 'Asia/Kolkata', 'YYYY-MM-DD') AS day, COUNT(*)
		FROM orders
		WHERE status = 'completed' AND created_at >= $1 AND created_at < $2
		GROUP BY day`,
		from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDailyCounts(rows), nil
}

func (s *PostgresStore) RevenueByRestaurant() ([]domain.RestaurantRevenue, error) {
	rows, err := s.DB.Query(`
		SELECT restaurant_id, name, order_count, total_revenue
		FROM restaurants
		ORDER BY total_revenue DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.RestaurantRevenue
	for rows.Next() {
		var entry domain.RestaurantRevenue
		if err := rows.Scan(&entry.RestaurantID, &entry.Name, &entry.OrderCount, &entry.TotalRevenue); err != nil {
			continue
		}
		result = append(result, entry)
	}
	return result, nil
}

func (s *PostgresStore) PlatformMostSoldItems(limit int) ([]domain.SoldItem, error) {
	rows, err := s.DB.Query(`
		SELECT food_item_id, dish_name, total_orders
		FROM food_items
		WHERE total_orders > 0
		ORDER BY total_orders DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSoldItems(rows), nil
}

func scanDailyCounts(rows *sql.Rows) map[string]int {
	counts := make(map[string]int)
	for rows.Next() {
		var day string
		var n int
		if err := rows.Scan(&day, &n); err != nil {
			continue
		}
		counts[day] = n
	}
	return counts
}

func scanSoldItems(rows *sql.Rows) []domain.SoldItem {
	var items []domain.SoldItem
	for rows.Next() {
		var item domain.SoldItem
		if err := rows.Scan(&item.FoodItemID, &item.DishName, &item.TotalOrders); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items
}
