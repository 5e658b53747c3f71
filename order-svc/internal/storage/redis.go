package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"foodcourt-ordering/order-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisCartStore keeps the per-customer basket as a JSON blob. Carts are
// ephemeral until checkout, so a TTL is enough housekeeping.
type RedisCartStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{Client: client, TTL: ttl}
}

func (s *RedisCartStore) cartKey(customerID string) string {
	return "cart:" + customerID
}

// Get returns nil without error when no cart exists.
func (s *RedisCartStore) Get(ctx context.Context, customerID string) (*domain.Cart, error) {
	payload, err := s.Client.Get(ctx, s.cartKey(customerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var cart domain.Cart
	if err := json.Unmarshal(payload, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *RedisCartStore) Save(ctx context.Context, cart *domain.Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, s.cartKey(cart.CustomerID), payload, s.TTL).Err()
}

func (s *RedisCartStore) Delete(ctx context.Context, customerID string) error {
	return s.Client.Del(ctx, s.cartKey(customerID)).Err()
}
