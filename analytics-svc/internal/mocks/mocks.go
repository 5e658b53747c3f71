// Package mocks holds testify mocks for the analytics interfaces. They are
// kept by hand to stay in lockstep with internal/service/interfaces.go.
package mocks

import (
	"context"
	"time"

	"foodcourt-ordering/analytics-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type AnalyticsStore struct{ mock.Mock }

func NewAnalyticsStore(t testingT) *AnalyticsStore {
	m := &AnalyticsStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *AnalyticsStore) RestaurantTotals(restaurantID string) (int, float64, error) {
	args := m.Called(restaurantID)
	return args.Int(0), args.Get(1).(float64), args.Error(2)
}

func (m *AnalyticsStore) OrdersBetween(restaurantID string, from, to time.Time) (int, float64, error) {
	args := m.Called(restaurantID, from, to)
	return args.Int(0), args.Get(1).(float64), args.Error(2)
}

func (m *AnalyticsStore) DailyOrderCounts(restaurantID string, from, to time.Time) (map[string]int, error) {
	args := m.Called(restaurantID, from, to)
	if counts := args.Get(0); counts != nil {
		return counts.(map[string]int), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AnalyticsStore) RevenueByCategory(restaurantID string) ([]domain.CategoryRevenue, error) {
	args := m.Called(restaurantID)
	if revenues := args.Get(0); revenues != nil {
		return revenues.([]domain.CategoryRevenue), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AnalyticsStore) MostSoldItems(restaurantID string, limit int) ([]domain.SoldItem, error) {
	args := m.Called(restaurantID, limit)
	if items := args.Get(0); items != nil {
		return items.([]domain.SoldItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AnalyticsStore) PlatformTotals() (int, float64, int, error) {
	args := m.Called()
	return args.Int(0), args.Get(1).(float64), args.Int(2), args.Error(3)
}

func (m *AnalyticsStore) PlatformOrdersBetween(from, to time.Time) (int, float64, error) {
	args := m.Called(from, to)
	return args.Int(0), args.Get(1).(float64), args.Error(2)
}

func (m *AnalyticsStore) PlatformDailyOrderCounts(from, to time.Time) (map[string]int, error) {
	args := m.Called(from, to)
	if counts := args.Get(0); counts != nil {
		return counts.(map[string]int), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AnalyticsStore) RevenueByRestaurant() ([]domain.RestaurantRevenue, error) {
	args := m.Called()
	if revenues := args.Get(0); revenues != nil {
		return revenues.([]domain.RestaurantRevenue), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AnalyticsStore) PlatformMostSoldItems(limit int) ([]domain.SoldItem, error) {
	args := m.Called(limit)
	if items := args.Get(0); items != nil {
		return items.([]domain.SoldItem), args.Error(1)
	}
	return nil, args.Error(1)
}

type DashboardCache struct{ mock.Mock }

func NewDashboardCache(t testingT) *DashboardCache {
	m := &DashboardCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *DashboardCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if payload := args.Get(0); payload != nil {
		return payload.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DashboardCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return m.Called(ctx, key, payload, ttl).Error(0)
}

type AnalyticsInterface struct{ mock.Mock }

func NewAnalyticsInterface(t testingT) *AnalyticsInterface {
	m := &AnalyticsInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *AnalyticsInterface) Dashboard(ctx context.Context, restaurantID string) (*domain.Dashboard, error) {
	args := m.Called(ctx, restaurantID)
	if dash := args.Get(0); dash != nil {
		return dash.(*domain.Dashboard), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AnalyticsInterface) AdminDashboard(ctx context.Context) (*domain.AdminDashboard, error) {
	args := m.Called(ctx)
	if dash := args.Get(0); dash != nil {
		return dash.(*domain.AdminDashboard), args.Error(1)
	}
	return nil, args.Error(1)
}
