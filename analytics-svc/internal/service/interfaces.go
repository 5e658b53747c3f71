package service

import (
	"context"
	"time"

	"foodcourt-ordering/analytics-svc/internal/domain"
)

// AnalyticsStore reads completed-order history and the catalog counters.
type AnalyticsStore interface {
	RestaurantTotals(restaurantID string) (orders int, revenue float64, err error)
	OrdersBetween(restaurantID string, from, to time.Time) (orders int, revenue float64, err error)
	DailyOrderCounts(restaurantID string, from, to time.Time) (map[string]int, error)
	RevenueByCategory(restaurantID string) ([]domain.CategoryRevenue, error)
	MostSoldItems(restaurantID string, limit int) ([]domain.SoldItem, error)

	PlatformTotals() (orders int, revenue float64, restaurants int, err error)
	PlatformOrdersBetween(from, to time.Time) (orders int, revenue float64, err error)
	PlatformDailyOrderCounts(from, to time.Time) (map[string]int, error)
	RevenueByRestaurant() ([]domain.RestaurantRevenue, error)
	PlatformMostSoldItems(limit int) ([]domain.SoldItem, error)
}

// DashboardCache holds rendered dashboard JSON for a short window.
type DashboardCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}

type AnalyticsInterface interface {
	Dashboard(ctx context.Context, restaurantID string) (*domain.Dashboard, error)
	AdminDashboard(ctx context.Context) (*domain.AdminDashboard, error)
}

var _ AnalyticsInterface = (*AnalyticsService)(nil)
