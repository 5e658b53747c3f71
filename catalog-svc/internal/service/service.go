package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"foodcourt-ordering/catalog-svc/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrFoodItemNotFound   = errors.New("food item not found")
	ErrInvalidPayload     = errors.New("invalid payload")
)

type RestaurantRepository interface {
	CreateRestaurant(rest *domain.Restaurant) error
	ListRestaurants() ([]domain.Restaurant, error)
	GetRestaurant(restaurantID string) (*domain.Restaurant, error)
	UpdateRestaurant(rest *domain.Restaurant) error
	DeleteRestaurant(restaurantID string) (int64, error)
	SetRestaurantAvailability(restaurantID string, available bool) (int64, error)
	UpdateRestaurantImage(restaurantID, imageURL string) error
}

type FoodItemRepository interface {
	CreateFoodItem(item *domain.FoodItem) error
	NextFoodItemSeq(restaurantID string) (int, error)
	ListFoodItems(restaurantID string) ([]domain.FoodItem, error)
	GetFoodItem(restaurantID, foodItemID string) (*domain.FoodItem, error)
	UpdateFoodItem(restaurantID, foodItemID string, update domain.FoodItemUpdate) (*domain.FoodItem, error)
	DeleteFoodItem(restaurantID, foodItemID string) (int64, error)
	SetFoodItemAvailability(restaurantID, foodItemID string, available bool) (int64, error)
	UpdateFoodItemImage(restaurantID, foodItemID, imageURL string) error
}

type RestaurantServiceInterface interface {
	Create(rest *domain.Restaurant) error
	List() ([]domain.Restaurant, error)
	Get(restaurantID string) (*domain.Restaurant, error)
	Update(rest *domain.Restaurant) error
	Delete(restaurantID string) error
	SetAvailability(restaurantID string, available bool) error
	UpdateImage(restaurantID, imageURL string) error
}

type FoodItemServiceInterface interface {
	Create(item *domain.FoodItem) error
	List(restaurantID string) ([]domain.FoodItem, error)
	Get(restaurantID, foodItemID string) (*domain.FoodItem, error)
	Update(restaurantID, foodItemID string, update domain.FoodItemUpdate) (*domain.FoodItem, error)
	Delete(restaurantID, foodItemID string) error
	SetAvailability(restaurantID, foodItemID string, available bool) error
	UpdateImage(restaurantID, foodItemID, imageURL string) error
}

type RestaurantService struct {
	repo RestaurantRepository
}

func NewRestaurantService(repo RestaurantRepository) *RestaurantService {
	return &RestaurantService{repo: repo}
}

func (s *RestaurantService) Create(rest *domain.Restaurant) error {
	if strings.TrimSpace(rest.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPayload)
	}
	rest.RestaurantID = newRestaurantID()
	rest.Availability = true
	return s.repo.CreateRestaurant(rest)
}

func (s *RestaurantService) List() ([]domain.Restaurant, error) {
	return s.repo.ListRestaurants()
}

func (s *RestaurantService) Get(restaurantID string) (*domain.Restaurant, error) {
	rest, err := s.repo.GetRestaurant(restaurantID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRestaurantNotFound
	}
	return rest, err
}

func (s *RestaurantService) Update(rest *domain.Restaurant) error {
	err := s.repo.UpdateRestaurant(rest)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRestaurantNotFound
	}
	return err
}

func (s *RestaurantService) Delete(restaurantID string) error {
	rows, err := s.repo.DeleteRestaurant(restaurantID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrRestaurantNotFound
	}
	return nil
}

func (s *RestaurantService) SetAvailability(restaurantID string, available bool) error {
	rows, err := s.repo.SetRestaurantAvailability(restaurantID, available)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrRestaurantNotFound
	}
	return nil
}

func (s *RestaurantService) UpdateImage(restaurantID, imageURL string) error {
	return s.repo.UpdateRestaurantImage(restaurantID, imageURL)
}

var _ RestaurantServiceInterface = (*RestaurantService)(nil)

type FoodItemService struct {
	restaurants RestaurantRepository
	items       FoodItemRepository
}

func NewFoodItemService(restaurants RestaurantRepository, items FoodItemRepository) *FoodItemService {
	return &FoodItemService{restaurants: restaurants, items: items}
}

func (s *FoodItemService) Create(item *domain.FoodItem) error {
	if strings.TrimSpace(item.DishName) == "" || item.DineinPrice <= 0 {
		return fmt.Errorf("%w: dish_name and a positive dinein_price are required", ErrInvalidPayload)
	}
	if _, err := s.restaurants.GetRestaurant(item.RestaurantID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRestaurantNotFound
		}
		return err
	}

	seq, err := s.items.NextFoodItemSeq(item.RestaurantID)
	if err != nil {
		return err
	}
	item.FoodItemID = fmt.Sprintf("%s-FI%03d", item.RestaurantID, seq)
	item.Availability = true
	item.Rating = 0
	item.RatingsCount = 0
	item.TotalOrders = 0
	item.TotalRevenue = 0
	return s.items.CreateFoodItem(item)
}

func (s *FoodItemService) List(restaurantID string) ([]domain.FoodItem, error) {
	return s.items.ListFoodItems(restaurantID)
}

func (s *FoodItemService) Get(restaurantID, foodItemID string) (*domain.FoodItem, error) {
	item, err := s.items.GetFoodItem(restaurantID, foodItemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFoodItemNotFound
	}
	return item, err
}

func (s *FoodItemService) Update(restaurantID, foodItemID string, update domain.FoodItemUpdate) (*domain.FoodItem, error) {
	item, err := s.items.UpdateFoodItem(restaurantID, foodItemID, update)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFoodItemNotFound
	}
	return item, err
}

func (s *FoodItemService) Delete(restaurantID, foodItemID string) error {
	rows, err := s.items.DeleteFoodItem(restaurantID, foodItemID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrFoodItemNotFound
	}
	return nil
}

func (s *FoodItemService) SetAvailability(restaurantID, foodItemID string, available bool) error {
	rows, err := s.items.SetFoodItemAvailability(restaurantID, foodItemID, available)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrFoodItemNotFound
	}
	return nil
}

func (s *FoodItemService) UpdateImage(restaurantID, foodItemID, imageURL string) error {
	return s.items.UpdateFoodItemImage(restaurantID, foodItemID, imageURL)
}

var _ FoodItemServiceInterface = (*FoodItemService)(nil)

func newRestaurantID() string {
	return "RST-" + strings.ToUpper(uuid.NewString()[:8])
}
