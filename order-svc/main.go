package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"foodcourt-ordering/config"
	httpapi "foodcourt-ordering/order-svc/internal/api/http"
	"foodcourt-ordering/order-svc/internal/payment"
	"foodcourt-ordering/order-svc/internal/service"
	"foodcourt-ordering/order-svc/internal/storage"
)

const cartTTL = 7 * 24 * time.Hour

func ensureSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
			order_id TEXT PRIMARY KEY,
			customer_id TEXT NOT NULL,
			restaurant_id TEXT NOT NULL,
			order_type TEXT NOT NULL,
			subtotal NUMERIC(12,2) NOT NULL DEFAULT 0,
			service_charge NUMERIC(12,2) NOT NULL DEFAULT 0,
			total NUMERIC(12,2) NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'pending',
			otp TEXT NOT NULL,
			estimated_time INT NOT NULL DEFAULT 0,
			has_rated BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			confirmed_at TIMESTAMPTZ,
			cancelled_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id SERIAL PRIMARY KEY,
			order_id TEXT NOT NULL REFERENCES orders(order_id),
			food_item_id TEXT NOT NULL,
			name TEXT NOT NULL,
			price NUMERIC(12,2) NOT NULL,
			quantity INT NOT NULL,
			image TEXT,
			restaurant_name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS item_ratings (
			id SERIAL PRIMARY KEY,
			food_item_id TEXT NOT NULL,
			customer_id TEXT NOT NULL,
			order_id TEXT NOT NULL,
			rating INT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (food_item_id, customer_id, order_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders (customer_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_restaurant ON orders (restaurant_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func main() {
	db := config.MustInitPostgres()
	defer db.Close()

	if err := ensureSchema(db); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	rdb := config.MustInitRedis()
	defer rdb.Close()

	kafkaWriter := config.NewKafkaWriter(config.OrderEventsTopic)
	defer kafkaWriter.Close()

	paymentCfg := config.MustInitPayment()
	gateway := payment.NewClient(paymentCfg.BaseURL, paymentCfg.KeyID, paymentCfg.Secret, nil)

	repo := storage.NewPostgresRepository(db)
	carts := storage.NewRedisCartStore(rdb, cartTTL)
	publisher := storage.NewKafkaPublisher(kafkaWriter)

	orderSvc := service.NewOrderService(repo, repo, carts, gateway, publisher)
	cartSvc := service.NewCartService(carts, repo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go service.NewEstimatedTimeTicker(repo).Run(ctx)

	handler := httpapi.NewHandler(orderSvc, cartSvc)
	httpapi.StartServer(":"+config.Getenv("PORT", "8081"), httpapi.NewRouter(handler))
}
