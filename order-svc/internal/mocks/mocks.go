// Package mocks holds testify mocks for the order service interfaces. They
// are kept by hand to stay in lockstep with internal/service/interfaces.go.
package mocks

import (
	"context"

	"foodcourt-ordering/order-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type OrderRepository struct{ mock.Mock }

func NewOrderRepository(t testingT) *OrderRepository {
	m := &OrderRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *OrderRepository) InsertOrder(order *domain.Order) error {
	return m.Called(order).Error(0)
}

func (m *OrderRepository) GetOrder(orderID string) (*domain.Order, error) {
	args := m.Called(orderID)
	if order := args.Get(0); order != nil {
		return order.(*domain.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *OrderRepository) GetCustomerOrder(orderID, customerID string) (*domain.Order, error) {
	args := m.Called(orderID, customerID)
	if order := args.Get(0); order != nil {
		return order.(*domain.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *OrderRepository) ListCustomerOrders(customerID string, limit int) ([]domain.Order, error) {
	args := m.Called(customerID, limit)
	if orders := args.Get(0); orders != nil {
		return orders.([]domain.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *OrderRepository) ListRestaurantOrders(restaurantID string) ([]domain.Order, error) {
	args := m.Called(restaurantID)
	if orders := args.Get(0); orders != nil {
		return orders.([]domain.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *OrderRepository) TransitionStatus(orderID string, from, to domain.Status) (bool, error) {
	args := m.Called(orderID, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *OrderRepository) UpdateOTP(orderID, otp string) error {
	return m.Called(orderID, otp).Error(0)
}

func (m *OrderRepository) SetHasRated(orderID string) error {
	return m.Called(orderID).Error(0)
}

func (m *OrderRepository) DecrementEstimatedTimes() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

type CatalogRepository struct{ mock.Mock }

func NewCatalogRepository(t testingT) *CatalogRepository {
	m := &CatalogRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CatalogRepository) GetFoodItem(foodItemID string) (*domain.FoodItem, error) {
	args := m.Called(foodItemID)
	if item := args.Get(0); item != nil {
		return item.(*domain.FoodItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CatalogRepository) RestaurantOpen(restaurantID string) (bool, error) {
	args := m.Called(restaurantID)
	return args.Bool(0), args.Error(1)
}

func (m *CatalogRepository) IncrementRestaurantTotals(restaurantID string, orders int, revenue float64) error {
	return m.Called(restaurantID, orders, revenue).Error(0)
}

func (m *CatalogRepository) IncrementItemTotals(foodItemID string, orders int, revenue float64) (bool, error) {
	args := m.Called(foodItemID, orders, revenue)
	return args.Bool(0), args.Error(1)
}

func (m *CatalogRepository) UpsertItemRating(foodItemID, customerID, orderID string, rating int) error {
	return m.Called(foodItemID, customerID, orderID, rating).Error(0)
}

func (m *CatalogRepository) RecomputeItemRating(foodItemID string) error {
	return m.Called(foodItemID).Error(0)
}

func (m *CatalogRepository) RecomputeRestaurantRating(restaurantID string) error {
	return m.Called(restaurantID).Error(0)
}

func (m *CatalogRepository) HasItemRating(foodItemID, customerID, orderID string) (bool, error) {
	args := m.Called(foodItemID, customerID, orderID)
	return args.Bool(0), args.Error(1)
}

type CartStore struct{ mock.Mock }

func NewCartStore(t testingT) *CartStore {
	m := &CartStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CartStore) Get(ctx context.Context, customerID string) (*domain.Cart, error) {
	args := m.Called(ctx, customerID)
	if cart := args.Get(0); cart != nil {
		return cart.(*domain.Cart), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CartStore) Save(ctx context.Context, cart *domain.Cart) error {
	return m.Called(ctx, cart).Error(0)
}

func (m *CartStore) Delete(ctx context.Context, customerID string) error {
	return m.Called(ctx, customerID).Error(0)
}

type EventPublisher struct{ mock.Mock }

func NewEventPublisher(t testingT) *EventPublisher {
	m := &EventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *EventPublisher) PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error {
	return m.Called(ctx, event).Error(0)
}

type PaymentGateway struct{ mock.Mock }

func NewPaymentGateway(t testingT) *PaymentGateway {
	m := &PaymentGateway{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *PaymentGateway) CreateIntent(ctx context.Context, amountMinor int64, currency, receipt string) (*domain.PaymentIntent, error) {
	args := m.Called(ctx, amountMinor, currency, receipt)
	if intent := args.Get(0); intent != nil {
		return intent.(*domain.PaymentIntent), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PaymentGateway) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	return m.Called(gatewayOrderID, paymentID, signature).Bool(0)
}

type OrderServiceInterface struct{ mock.Mock }

func NewOrderServiceInterface(t testingT) *OrderServiceInterface {
	m := &OrderServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *OrderServiceInterface) CreateOrder(ctx context.Context, customerID string, orderType domain.OrderType) (*domain.Order, *domain.PaymentIntent, error) {
	args := m.Called(ctx, customerID, orderType)
	var order *domain.Order
	var intent *domain.PaymentIntent
	if v := args.Get(0); v != nil {
		order = v.(*domain.Order)
	}
	if v := args.Get(1); v != nil {
		intent = v.(*domain.PaymentIntent)
	}
	return order, intent, args.Error(2)
}

func (m *OrderServiceInterface) VerifyAndPersistOrder(ctx context.Context, draft *domain.Order, gatewayOrderID, paymentID, signature string) (*domain.Order, error) {
	args := m.Called(ctx, draft, gatewayOrderID, paymentID, signature)
	if order := args.Get(0); order != nil {
		return order.(*domain.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *OrderServiceInterface) ListOrders(customerID string) ([]domain.Order, error) {
	args := m.Called(customerID)
	if orders := args.Get(0); orders != nil {
		return orders.([]domain.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *OrderServiceInterface) ListRestaurantOrders(restaurantID string) ([]domain.Order, error) {
	args := m.Called(restaurantID)
	if orders := args.Get(0); orders != nil {
		return orders.([]domain.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *OrderServiceInterface) GetOrder(orderID string) (*domain.Order, error) {
	args := m.Called(orderID)
	if order := args.Get(0); order != nil {
		return order.(*domain.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *OrderServiceInterface) CancelOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return m.orderResult(m.Called(ctx, orderID))
}

func (m *OrderServiceInterface) ConfirmOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return m.orderResult(m.Called(ctx, orderID))
}

func (m *OrderServiceInterface) StartPreparing(ctx context.Context, orderID string) (*domain.Order, error) {
	return m.orderResult(m.Called(ctx, orderID))
}

func (m *OrderServiceInterface) MarkReady(ctx context.Context, orderID string) (*domain.Order, error) {
	return m.orderResult(m.Called(ctx, orderID))
}

func (m *OrderServiceInterface) CompleteOrder(ctx context.Context, orderID, otp string) (*domain.Order, error) {
	return m.orderResult(m.Called(ctx, orderID, otp))
}

func (m *OrderServiceInterface) UpdateOTP(ctx context.Context, orderID, otp string) (*domain.Order, error) {
	return m.orderResult(m.Called(ctx, orderID, otp))
}

func (m *OrderServiceInterface) UpdateStatus(ctx context.Context, orderID string, status domain.Status) (*domain.Order, error) {
	return m.orderResult(m.Called(ctx, orderID, status))
}

func (m *OrderServiceInterface) SubmitRatings(ctx context.Context, orderID, customerID string, ratings []domain.Rating) error {
	return m.Called(ctx, orderID, customerID, ratings).Error(0)
}

func (m *OrderServiceInterface) HasRated(orderID, customerID string) (bool, error) {
	args := m.Called(orderID, customerID)
	return args.Bool(0), args.Error(1)
}

func (m *OrderServiceInterface) orderResult(args mock.Arguments) (*domain.Order, error) {
	if order := args.Get(0); order != nil {
		return order.(*domain.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

type CartServiceInterface struct{ mock.Mock }

func NewCartServiceInterface(t testingT) *CartServiceInterface {
	m := &CartServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CartServiceInterface) AddItem(ctx context.Context, customerID, foodItemID string, quantity int) (*domain.Cart, error) {
	return m.cartResult(m.Called(ctx, customerID, foodItemID, quantity))
}

func (m *CartServiceInterface) UpdateItem(ctx context.Context, customerID, foodItemID string, quantity int) (*domain.Cart, error) {
	return m.cartResult(m.Called(ctx, customerID, foodItemID, quantity))
}

func (m *CartServiceInterface) RemoveItem(ctx context.Context, customerID, foodItemID string) (*domain.Cart, error) {
	return m.cartResult(m.Called(ctx, customerID, foodItemID))
}

func (m *CartServiceInterface) GetCart(ctx context.Context, customerID string) (*domain.Cart, error) {
	return m.cartResult(m.Called(ctx, customerID))
}

func (m *CartServiceInterface) cartResult(args mock.Arguments) (*domain.Cart, error) {
	if cart := args.Get(0); cart != nil {
		return cart.(*domain.Cart), args.Error(1)
	}
	return nil, args.Error(1)
}
