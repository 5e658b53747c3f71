package storage

import (
	"database/sql"
	"fmt"

	"foodcourt-ordering/order-svc/internal/domain"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) InsertOrder(order *domain.Order) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO orders (order_id, customer_id, restaurant_id, order_type, subtotal, service_charge, total, status, otp, estimated_time, has_rated, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		order.OrderID, order.CustomerID, order.RestaurantID, order.OrderType,
		order.Subtotal, order.ServiceCharge, order.Total, order.Status,
		order.OTP, order.EstimatedTime, order.HasRated, order.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range order.Items {
		_, err = tx.Exec(`
			INSERT INTO order_items (order_id, food_item_id, name, price, quantity, image, restaurant_name)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			order.OrderID, item.FoodItemID, item.Name, item.Price, item.Quantity, item.Image, item.RestaurantName)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return tx.Commit()
}

func (r *PostgresRepository) GetOrder(orderID string) (*domain.Order, error) {
	return r.scanOrder(r.DB.QueryRow(`
		SELECT order_id, customer_id, restaurant_id, order_type, subtotal, service_charge, total, status, otp, estimated_time, has_rated, created_at, confirmed_at, cancelled_at
		FROM orders WHERE order_id = $1`, orderID))
}

func (r *PostgresRepository) GetCustomerOrder(orderID, customerID string) (*domain.Order, error) {
	return r.scanOrder(r.DB.QueryRow(`
		SELECT order_id, customer_id, restaurant_id, order_type, subtotal, service_charge, total, status, otp, estimated_time, has_rated, created_at, confirmed_at, cancelled_at
		FROM orders WHERE order_id = $1 AND customer_id = $2`, orderID, customerID))
}

func (r *PostgresRepository) scanOrder(row *sql.Row) (*domain.Order, error) {
	var order domain.Order
	var confirmedAt, cancelledAt sql.NullTime
	err := row.Scan(&order.OrderID, &order.CustomerID, &order.RestaurantID, &order.OrderType,
		&order.Subtotal, &order.ServiceCharge, &order.Total, &order.Status,
		&order.OTP, &order.EstimatedTime, &order.HasRated, &order.CreatedAt,
		&confirmedAt, &cancelledAt)
	if err != nil {
		return nil, err
	}
	if confirmedAt.Valid {
		order.ConfirmedAt = &confirmedAt.Time
	}
	if cancelledAt.Valid {
		order.CancelledAt = &cancelledAt.Time
	}

	items, err := r.orderItems(order.OrderID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return &order, nil
}

func (r *PostgresRepository) orderItems(orderID string) ([]domain.OrderItem, error) {
	rows, err := r.DB.Query(`
		SELECT food_item_id, name, price, quantity, COALESCE(image, ''), restaurant_name
		FROM order_items WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.OrderItem{}
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.FoodItemID, &item.Name, &item.Price, &item.Quantity, &item.Image, &item.RestaurantName); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *PostgresRepository) ListCustomerOrders(customerID string, limit int) ([]domain.Order, error) {
	return r.listOrders(`
		SELECT order_id, customer_id, restaurant_id, order_type, subtotal, service_charge, total, status, otp, estimated_time, has_rated, created_at, confirmed_at, cancelled_at
		FROM orders WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, customerID, limit)
}

func (r *PostgresRepository) ListRestaurantOrders(restaurantID string) ([]domain.Order, error) {
	return r.listOrders(`
		SELECT order_id, customer_id, restaurant_id, order_type, subtotal, service_charge, total, status, otp, estimated_time, has_rated, created_at, confirmed_at, cancelled_at
		FROM orders WHERE restaurant_id = $1
		ORDER BY created_at DESC`, restaurantID)
}

func (r *PostgresRepository) listOrders(query string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var order domain.Order
		var confirmedAt, cancelledAt sql.NullTime
		err := rows.Scan(&order.OrderID, &order.CustomerID, &order.RestaurantID, &order.OrderType,
			&order.Subtotal, &order.ServiceCharge, &order.Total, &order.Status,
			&order.OTP, &order.EstimatedTime, &order.HasRated, &order.CreatedAt,
			&confirmedAt, &cancelledAt)
		if err != nil {
			continue
		}
		if confirmedAt.Valid {
			order.ConfirmedAt = &confirmedAt.Time
		}
		if cancelledAt.Valid {
			order.CancelledAt = &cancelledAt.Time
		}
		items, err := r.orderItems(order.OrderID)
		if err == nil {
			order.Items = items
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// TransitionStatus is a compare-and-set on the persisted status. The write
// only lands when the current status still equals from; the caller learns
// about a lost race through the false return, not an error.
func (r *PostgresRepository) TransitionStatus(orderID string, from, to domain.Status) (bool, error) {
	result, err := r.DB.Exec(`
		UPDATE orders
		SET status = $2,
		    confirmed_at = CASE WHEN $2 = 'confirmed' THEN NOW() ELSE confirmed_at END,
		    cancelled_at = CASE WHEN $2 = 'cancelled' THEN NOW() ELSE cancelled_at END
		WHERE order_id = $1 AND status = $3`,
		orderID, to, from)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *PostgresRepository) UpdateOTP(orderID, otp string) error {
	result, err := r.DB.Exec("UPDATE orders SET otp = $1 WHERE order_id = $2", otp, orderID)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetHasRated flips the rated guard exactly once; a second call reports
// sql.ErrNoRows so callers can surface a conflict.
func (r *PostgresRepository) SetHasRated(orderID string) error {
	result, err := r.DB.Exec("UPDATE orders SET has_rated = TRUE WHERE order_id = $1 AND has_rated = FALSE", orderID)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PostgresRepository) DecrementEstimatedTimes() (int64, error) {
	result, err := r.DB.Exec(`
		UPDATE orders
		SET estimated_time = estimated_time - 1
		WHERE status IN ('confirmed', 'preparing') AND estimated_time > 0`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) GetFoodItem(foodItemID string) (*domain.FoodItem, error) {
	var item domain.FoodItem
	err := r.DB.QueryRow(`
		SELECT f.food_item_id, f.restaurant_id, r.name, f.dish_name, f.dinein_price, f.takeaway_price, COALESCE(f.image_url, ''), f.availability
		FROM food_items f
		JOIN restaurants r ON f.restaurant_id = r.restaurant_id
		WHERE f.food_item_id = $1`, foodItemID).
		Scan(&item.FoodItemID, &item.RestaurantID, &item.RestaurantName, &item.DishName,
			&item.DineinPrice, &item.TakeawayPrice, &item.Image, &item.Availability)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) RestaurantOpen(restaurantID string) (bool, error) {
	var open bool
	err := r.DB.QueryRow("SELECT availability FROM restaurants WHERE restaurant_id = $1", restaurantID).Scan(&open)
	if err != nil {
		return false, err
	}
	return open, nil
}

// IncrementRestaurantTotals uses database-side increments so concurrent
// completions for the same restaurant never lose updates.
func (r *PostgresRepository) IncrementRestaurantTotals(restaurantID string, orders int, revenue float64) error {
	_, err := r.DB.Exec(`
		UPDATE restaurants
		SET order_count = order_count + $2, total_revenue = total_revenue + $3
		WHERE restaurant_id = $1`,
		restaurantID, orders, revenue)
	return err
}

func (r *PostgresRepository) IncrementItemTotals(foodItemID string, orders int, revenue float64) (bool, error) {
	result, err := r.DB.Exec(`
		UPDATE food_items
		SET total_orders = total_orders + $2, total_revenue = total_revenue + $3
		WHERE food_item_id = $1`,
		foodItemID, orders, revenue)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *PostgresRepository) UpsertItemRating(foodItemID, customerID, orderID string, rating int) error {
	_, err := r.DB.Exec(`
		INSERT INTO item_ratings (food_item_id, customer_id, order_id, rating)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (food_item_id, customer_id, order_id)
		DO UPDATE SET rating = EXCLUDED.rating`,
		foodItemID, customerID, orderID, rating)
	return err
}

// RecomputeItemRating derives the item's mean from the stored rating rows.
func (r *PostgresRepository) RecomputeItemRating(foodItemID string) error {
	_, err := r.DB.Exec(`
		UPDATE food_items
		SET rating = COALESCE((
			SELECT ROUND(AVG(rating::numeric), 2) FROM item_ratings WHERE food_item_id = $1
		), 0),
		ratings_count = (
			SELECT COUNT(*) FROM item_ratings WHERE food_item_id = $1
		)
		WHERE food_item_id = $1`, foodItemID)
	return err
}

// RecomputeRestaurantRating is the count-weighted mean over items that have
// at least one rating.
func (r *PostgresRepository) RecomputeRestaurantRating(restaurantID string) error {
	_, err := r.DB.Exec(`
		UPDATE restaurants
		SET rating = COALESCE((
			SELECT ROUND(SUM(rating * ratings_count) / SUM(ratings_count)::numeric, 2)
			FROM food_items
			WHERE restaurant_id = $1 AND ratings_count > 0
		), 0)
		WHERE restaurant_id = $1`, restaurantID)
	return err
}

func (r *PostgresRepository) HasItemRating(foodItemID, customerID, orderID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM item_ratings
			WHERE food_item_id = $1 AND customer_id = $2 AND order_id = $3
		)`, foodItemID, customerID, orderID).Scan(&exists)
	return exists, err
}
