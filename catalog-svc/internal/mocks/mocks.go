// Package mocks holds testify mocks for the catalog service interfaces. They
// are kept by hand to stay in lockstep with internal/service/service.go.
package mocks

import (
	"foodcourt-ordering/catalog-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type RestaurantRepository struct{ mock.Mock }

func NewRestaurantRepository(t testingT) *RestaurantRepository {
	m := &RestaurantRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *RestaurantRepository) CreateRestaurant(rest *domain.Restaurant) error {
	return m.Called(rest).Error(0)
}

func (m *RestaurantRepository) ListRestaurants() ([]domain.Restaurant, error) {
	args := m.Called()
	if rests := args.Get(0); rests != nil {
		return rests.([]domain.Restaurant), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RestaurantRepository) GetRestaurant(restaurantID string) (*domain.Restaurant, error) {
	args := m.Called(restaurantID)
	if rest := args.Get(0); rest != nil {
		return rest.(*domain.Restaurant), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RestaurantRepository) UpdateRestaurant(rest *domain.Restaurant) error {
	return m.Called(rest).Error(0)
}

func (m *RestaurantRepository) DeleteRestaurant(restaurantID string) (int64, error) {
	args := m.Called(restaurantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RestaurantRepository) SetRestaurantAvailability(restaurantID string, available bool) (int64, error) {
	args := m.Called(restaurantID, available)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RestaurantRepository) UpdateRestaurantImage(restaurantID, imageURL string) error {
	return m.Called(restaurantID, imageURL).Error(0)
}

type FoodItemRepository struct{ mock.Mock }

func NewFoodItemRepository(t testingT) *FoodItemRepository {
	m := &FoodItemRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *FoodItemRepository) CreateFoodItem(item *domain.FoodItem) error {
	return m.Called(item).Error(0)
}

func (m *FoodItemRepository) NextFoodItemSeq(restaurantID string) (int, error) {
	args := m.Called(restaurantID)
	return args.Int(0), args.Error(1)
}

func (m *FoodItemRepository) ListFoodItems(restaurantID string) ([]domain.FoodItem, error) {
	args := m.Called(restaurantID)
	if items := args.Get(0); items != nil {
		return items.([]domain.FoodItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FoodItemRepository) GetFoodItem(restaurantID, foodItemID string) (*domain.FoodItem, error) {
	args := m.Called(restaurantID, foodItemID)
	if item := args.Get(0); item != nil {
		return item.(*domain.FoodItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FoodItemRepository) UpdateFoodItem(restaurantID, foodItemID string, update domain.FoodItemUpdate) (*domain.FoodItem, error) {
	args := m.Called(restaurantID, foodItemID, update)
	if item := args.Get(0); item != nil {
		return item.(*domain.FoodItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FoodItemRepository) DeleteFoodItem(restaurantID, foodItemID string) (int64, error) {
	args := m.Called(restaurantID, foodItemID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *FoodItemRepository) SetFoodItemAvailability(restaurantID, foodItemID string, available bool) (int64, error) {
	args := m.Called(restaurantID, foodItemID, available)
	return args.Get(0).(int64), args.Error(1)
}

func (m *FoodItemRepository) UpdateFoodItemImage(restaurantID, foodItemID, imageURL string) error {
	return m.Called(restaurantID, foodItemID, imageURL).Error(0)
}

type RestaurantServiceInterface struct{ mock.Mock }

func NewRestaurantServiceInterface(t testingT) *RestaurantServiceInterface {
	m := &RestaurantServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *RestaurantServiceInterface) Create(rest *domain.Restaurant) error {
	return m.Called(rest).Error(0)
}

func (m *RestaurantServiceInterface) List() ([]domain.Restaurant, error) {
	args := m.Called()
	if rests := args.Get(0); rests != nil {
		return rests.([]domain.Restaurant), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RestaurantServiceInterface) Get(restaurantID string) (*domain.Restaurant, error) {
	args := m.Called(restaurantID)
	if rest := args.Get(0); rest != nil {
		return rest.(*domain.Restaurant), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RestaurantServiceInterface) Update(rest *domain.Restaurant) error {
	return m.Called(rest).Error(0)
}

func (m *RestaurantServiceInterface) Delete(restaurantID string) error {
	return m.Called(restaurantID).Error(0)
}

func (m *RestaurantServiceInterface) SetAvailability(restaurantID string, available bool) error {
	return m.Called(restaurantID, available).Error(0)
}

func (m *RestaurantServiceInterface) UpdateImage(restaurantID, imageURL string) error {
	return m.Called(restaurantID, imageURL).Error(0)
}

type FoodItemServiceInterface struct{ mock.Mock }

func NewFoodItemServiceInterface(t testingT) *FoodItemServiceInterface {
	m := &FoodItemServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *FoodItemServiceInterface) Create(item *domain.FoodItem) error {
	return m.Called(item).Error(0)
}

func (m *FoodItemServiceInterface) List(restaurantID string) ([]domain.FoodItem, error) {
	args := m.Called(restaurantID)
	if items := args.Get(0); items != nil {
		return items.([]domain.FoodItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FoodItemServiceInterface) Get(restaurantID, foodItemID string) (*domain.FoodItem, error) {
	args := m.Called(restaurantID, foodItemID)
	if item := args.Get(0); item != nil {
		return item.(*domain.FoodItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FoodItemServiceInterface) Update(restaurantID, foodItemID string, update domain.FoodItemUpdate) (*domain.FoodItem, error) {
	args := m.Called(restaurantID, foodItemID, update)
	if item := args.Get(0); item != nil {
		return item.(*domain.FoodItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FoodItemServiceInterface) Delete(restaurantID, foodItemID string) error {
	return m.Called(restaurantID, foodItemID).Error(0)
}

func (m *FoodItemServiceInterface) SetAvailability(restaurantID, foodItemID string, available bool) error {
	return m.Called(restaurantID, foodItemID, available).Error(0)
}

func (m *FoodItemServiceInterface) UpdateImage(restaurantID, foodItemID, imageURL string) error {
	return m.Called(restaurantID, foodItemID, imageURL).Error(0)
}
