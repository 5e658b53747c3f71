package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"foodcourt-ordering/order-svc/internal/domain"
)

// CartService keeps one mutable basket per customer. The single-restaurant
// invariant is enforced at add time; checkout only re-checks it.
type CartService struct {
	carts   CartStore
	catalog CatalogRepository
}

func NewCartService(carts CartStore, catalog CatalogRepository) *CartService {
	return &CartService{carts: carts, catalog: catalog}
}

func (s *CartService) AddItem(ctx context.Context, customerID, foodItemID string, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	item, err := s.catalog.GetFoodItem(foodItemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("load food item: %w", err)
	}
	if !item.Availability {
		return nil, ErrItemUnavailable
	}

	cart, err := s.carts.Get(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if cart == nil {
		cart = &domain.Cart{CustomerID: customerID}
	}

	if len(cart.Items) > 0 && cart.Items[0].RestaurantID != item.RestaurantID {
		return nil, ErrMixedRestaurants
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].FoodItemID == foodItemID {
			cart.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, domain.CartItem{
			FoodItemID:     item.FoodItemID,
			Name:           item.DishName,
			Price:          item.DineinPrice,
			TakeawayPrice:  item.TakeawayPrice,
			Quantity:       quantity,
			Image:          item.Image,
			RestaurantID:   item.RestaurantID,
			RestaurantName: item.RestaurantName,
		})
	}

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}

// UpdateItem sets a line's quantity; zero or negative removes the line.
func (s *CartService) UpdateItem(ctx context.Context, customerID, foodItemID string, quantity int) (*domain.Cart, error) {
	cart, err := s.carts.Get(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if cart == nil {
		return nil, ErrCartItemNotFound
	}

	idx := -1
	for i := range cart.Items {
		if cart.Items[i].FoodItemID == foodItemID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrCartItemNotFound
	}

	if quantity <= 0 {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	} else {
		cart.Items[idx].Quantity = quantity
	}

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}

func (s *CartService) RemoveItem(ctx context.Context, customerID, foodItemID string) (*domain.Cart, error) {
	cart, err := s.carts.Get(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if cart == nil {
		return nil, ErrCartItemNotFound
	}

	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.FoodItemID != foodItemID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}

// GetCart never fails on a missing basket; an empty cart is a normal state.
func (s *CartService) GetCart(ctx context.Context, customerID string) (*domain.Cart, error) {
	cart, err := s.carts.Get(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if cart == nil {
		cart = &domain.Cart{CustomerID: customerID, Items: []domain.CartItem{}}
	}
	return cart, nil
}
