package storage

import (
	"database/sql"
	"fmt"

	"foodcourt-ordering/catalog-svc/internal/domain"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

const restaurantColumns = `restaurant_id, name, COALESCE(phone, ''), COALESCE(address, ''),
	COALESCE(image_url, ''), availability, rating, order_count, total_revenue, created_at`

func (r *PostgresRepository) CreateRestaurant(rest *domain.Restaurant) error {
	return r.DB.QueryRow(`
		INSERT INTO restaurants (restaurant_id, name, phone, address, image_url, availability)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		rest.RestaurantID, rest.Name, rest.Phone, rest.Address, rest.ImageURL, rest.Availability,
	).Scan(&rest.CreatedAt)
}

func (r *PostgresRepository) ListRestaurants() ([]domain.Restaurant, error) {
	rows, err := r.DB.Query(`
		SELECT ` + restaurantColumns + `
		FROM restaurants
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []domain.Restaurant
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(&rest.RestaurantID, &rest.Name, &rest.Phone, &rest.Address, &rest.ImageURL,
			&rest.Availability, &rest.Rating, &rest.OrderCount, &rest.TotalRevenue, &rest.CreatedAt); err != nil {
			continue
		}
		restaurants = append(restaurants, rest)
	}
	return restaurants, nil
}

func (r *PostgresRepository) GetRestaurant(restaurantID string) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	err := r.DB.QueryRow(`
		SELECT `+restaurantColumns+`
		FROM restaurants
		WHERE restaurant_id = $1`, restaurantID).
		Scan(&rest.RestaurantID, &rest.Name, &rest.Phone, &rest.Address, &rest.ImageURL,
			&rest.Availability, &rest.Rating, &rest.OrderCount, &rest.TotalRevenue, &rest.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *PostgresRepository) UpdateRestaurant(rest *domain.Restaurant) error {
	return r.DB.QueryRow(`
		UPDATE restaurants SET name=$1, phone=$2, address=$3
		WHERE restaurant_id=$4
		RETURNING `+restaurantColumns,
		rest.Name, rest.Phone, rest.Address, rest.RestaurantID).
		Scan(&rest.RestaurantID, &rest.Name, &rest.Phone, &rest.Address, &rest.ImageURL,
			&rest.Availability, &rest.Rating, &rest.OrderCount, &rest.TotalRevenue, &rest.CreatedAt)
}

func (r *PostgresRepository) DeleteRestaurant(restaurantID string) (int64, error) {
	result, err := r.DB.Exec("DELETE FROM restaurants WHERE restaurant_id=$1", restaurantID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) SetRestaurantAvailability(restaurantID string, available bool) (int64, error) {
	result, err := r.DB.Exec("UPDATE restaurants SET availability=$1 WHERE restaurant_id=$2", available, restaurantID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) UpdateRestaurantImage(restaurantID, imageURL string) error {
	_, err := r.DB.Exec("UPDATE restaurants SET image_url=$1 WHERE restaurant_id=$2", imageURL, restaurantID)
	return err
}

const foodItemColumns = `food_item_id, restaurant_id, dish_name, COALESCE(description, ''),
	COALESCE(category, ''), food_type, dinein_price, takeaway_price, COALESCE(image_url, ''),
	availability, rating, ratings_count, total_orders, total_revenue, created_at`

func (r *PostgresRepository) CreateFoodItem(item *domain.FoodItem) error {
	return r.DB.QueryRow(`
		INSERT INTO food_items (food_item_id, restaurant_id, dish_name, description, category,
			food_type, dinein_price, takeaway_price, image_url, availability)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at`,
		item.FoodItemID, item.RestaurantID, item.DishName, item.Description, item.Category,
		item.FoodType, item.DineinPrice, item.TakeawayPrice, item.ImageURL, item.Availability,
	).Scan(&item.CreatedAt)
}

// NextFoodItemSeq returns one past the highest sequence already issued for the
// restaurant. Items are never renumbered on delete, so MAX keeps ids unique.
func (r *PostgresRepository) NextFoodItemSeq(restaurantID string) (int, error) {
	var seq int
	err := r.DB.QueryRow(`
		SELECT COALESCE(MAX(CAST(SUBSTRING(food_item_id FROM '[0-9]+$') AS INT)), 0) + 1
		FROM food_items
		WHERE restaurant_id = $1`, restaurantID).Scan(&seq)
	if err != nil {
		return 0, err
	}
	return seq, nil
}

func (r *PostgresRepository) ListFoodItems(restaurantID string) ([]domain.FoodItem, error) {
	rows, err := r.DB.Query(`
		SELECT `+foodItemColumns+`
		FROM food_items
		WHERE restaurant_id = $1
		ORDER BY created_at DESC`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.FoodItem
	for rows.Next() {
		var item domain.FoodItem
		if err := scanFoodItem(rows, &item); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *PostgresRepository) GetFoodItem(restaurantID, foodItemID string) (*domain.FoodItem, error) {
	var item domain.FoodItem
	row := r.DB.QueryRow(`
		SELECT `+foodItemColumns+`
		FROM food_items
		WHERE food_item_id = $1 AND restaurant_id = $2`, foodItemID, restaurantID)
	if err := scanFoodItem(row, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) UpdateFoodItem(restaurantID, foodItemID string, update domain.FoodItemUpdate) (*domain.FoodItem, error) {
	var item domain.FoodItem
	row := r.DB.QueryRow(`
		UPDATE food_items SET
			dish_name      = COALESCE($1, dish_name),
			description    = COALESCE($2, description),
			category       = COALESCE($3, category),
			food_type      = COALESCE($4, food_type),
			dinein_price   = COALESCE($5, dinein_price),
			takeaway_price = COALESCE($6, takeaway_price),
			image_url      = COALESCE($7, image_url),
			availability   = COALESCE($8, availability)
		WHERE food_item_id = $9 AND restaurant_id = $10
		RETURNING `+foodItemColumns,
		update.DishName, update.Description, update.Category, update.FoodType,
		update.DineinPrice, update.TakeawayPrice, update.ImageURL, update.Availability,
		foodItemID, restaurantID)
	if err := scanFoodItem(row, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) DeleteFoodItem(restaurantID, foodItemID string) (int64, error) {
	result, err := r.DB.Exec("DELETE FROM food_items WHERE food_item_id=$1 AND restaurant_id=$2", foodItemID, restaurantID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) SetFoodItemAvailability(restaurantID, foodItemID string, available bool) (int64, error) {
	result, err := r.DB.Exec("UPDATE food_items SET availability=$1 WHERE food_item_id=$2 AND restaurant_id=$3",
		available, foodItemID, restaurantID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) UpdateFoodItemImage(restaurantID, foodItemID, imageURL string) error {
	_, err := r.DB.Exec("UPDATE food_items SET image_url=$1 WHERE food_item_id=$2 AND restaurant_id=$3",
		imageURL, foodItemID, restaurantID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFoodItem(row rowScanner, item *domain.FoodItem) error {
	return row.Scan(&item.FoodItemID, &item.RestaurantID, &item.DishName, &item.Description,
		&item.Category, &item.FoodType, &item.DineinPrice, &item.TakeawayPrice, &item.ImageURL,
		&item.Availability, &item.Rating, &item.RatingsCount, &item.TotalOrders, &item.TotalRevenue,
		&item.CreatedAt)
}

func (r *PostgresRepository) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS restaurants (
			restaurant_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			phone TEXT,
			address TEXT,
			image_url TEXT,
			availability BOOLEAN NOT NULL DEFAULT TRUE,
			rating NUMERIC(3,2) NOT NULL DEFAULT 0,
			order_count INT NOT NULL DEFAULT 0,
			total_revenue NUMERIC(12,2) NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS food_items (
			food_item_id TEXT PRIMARY KEY,
			restaurant_id TEXT NOT NULL REFERENCES restaurants(restaurant_id) ON DELETE CASCADE,
			dish_name TEXT NOT NULL,
			description TEXT,
			category TEXT,
			food_type TEXT NOT NULL DEFAULT 'Vegetarian',
			dinein_price NUMERIC(10,2) NOT NULL,
			takeaway_price NUMERIC(10,2) NOT NULL DEFAULT 0,
			image_url TEXT,
			availability BOOLEAN NOT NULL DEFAULT TRUE,
			rating NUMERIC(3,2) NOT NULL DEFAULT 0,
			ratings_count INT NOT NULL DEFAULT 0,
			total_orders INT NOT NULL DEFAULT 0,
			total_revenue NUMERIC(12,2) NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		"CREATE INDEX IF NOT EXISTS idx_food_items_restaurant ON food_items (restaurant_id)",
	}
	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
