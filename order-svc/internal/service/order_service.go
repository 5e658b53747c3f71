package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
	"strings"
	"time"

	"foodcourt-ordering/order-svc/internal/domain"

	"github.com/google/uuid"
)

const (
	// Orders start with a flat preparation estimate; the background tick
	// counts it down while the order is confirmed or preparing.
	defaultEstimatedTime = 20

	listOrdersLimit = 10

	currency = "INR"
)

// transitions whitelists every legal status move. Anything not listed fails
// with ErrInvalidTransition and leaves the stored status untouched.
var transitions = map[domain.Status][]domain.Status{
	domain.StatusPending:   {domain.StatusConfirmed, domain.StatusCancelled},
	domain.StatusConfirmed: {domain.StatusPreparing},
	domain.StatusPreparing: {domain.StatusReady},
	domain.StatusReady:     {domain.StatusCompleted},
}

func transitionAllowed(from, to domain.Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type OrderService struct {
	orders    OrderRepository
	catalog   CatalogRepository
	carts     CartStore
	gateway   PaymentGateway
	publisher EventPublisher
}

func NewOrderService(orders OrderRepository, catalog CatalogRepository, carts CartStore, gateway PaymentGateway, publisher EventPublisher) *OrderService {
	return &OrderService{
		orders:    orders,
		catalog:   catalog,
		carts:     carts,
		gateway:   gateway,
		publisher: publisher,
	}
}

// CreateOrder prices the customer's cart and opens a payment intent with the
// gateway. The returned order is a draft: nothing is persisted until the
// payment signature verifies.
func (s *OrderService) CreateOrder(ctx context.Context, customerID string, orderType domain.OrderType) (*domain.Order, *domain.PaymentIntent, error) {
	if orderType != domain.OrderTypeDining && orderType != domain.OrderTypeTakeaway {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownStatus, orderType)
	}

	cart, err := s.carts.Get(ctx, customerID)
	if err != nil {
		return nil, nil, fmt.Errorf("load cart: %w", err)
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, nil, ErrCartEmpty
	}

	restaurantID := cart.Items[0].RestaurantID
	for _, item := range cart.Items {
		if item.RestaurantID != restaurantID {
			return nil, nil, ErrMixedRestaurants
		}
	}

	var subtotal, serviceCharge float64
	items := make([]domain.OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		subtotal += item.Price * float64(item.Quantity)
		if orderType == domain.OrderTypeTakeaway {
			serviceCharge += item.TakeawayPrice * float64(item.Quantity)
		}
		items = append(items, domain.OrderItem{
			FoodItemID:     item.FoodItemID,
			Name:           item.Name,
			Price:          item.Price,
			Quantity:       item.Quantity,
			Image:          item.Image,
			RestaurantName: item.RestaurantName,
		})
	}
	total := subtotal + serviceCharge

	// The gateway expects minor currency units; amounts stay in major units
	// everywhere else.
	receipt := "rcpt_" + uuid.NewString()
	intent, err := s.gateway.CreateIntent(ctx, int64(math.Round(total*100)), currency, receipt)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrPaymentGateway, err)
	}

	order := &domain.Order{
		OrderID:       newOrderID(),
		CustomerID:    customerID,
		RestaurantID:  restaurantID,
		Items:         items,
		OrderType:     orderType,
		Subtotal:      subtotal,
		ServiceCharge: serviceCharge,
		Total:         total,
		Status:        domain.StatusPending,
		EstimatedTime: defaultEstimatedTime,
	}

	return order, intent, nil
}

// VerifyAndPersistOrder checks the gateway completion signature and, on
// success, makes the draft durable: pending status, fresh OTP, cart cleared.
func (s *OrderService) VerifyAndPersistOrder(ctx context.Context, draft *domain.Order, gatewayOrderID, paymentID, signature string) (*domain.Order, error) {
	if !s.gateway.VerifySignature(gatewayOrderID, paymentID, signature) {
		return nil, ErrPaymentVerification
	}

	if draft.OrderID == "" {
		draft.OrderID = newOrderID()
	}
	draft.Status = domain.StatusPending
	// Dining orders never carry a service charge, whatever the draft says.
	if draft.OrderType != domain.OrderTypeTakeaway {
		draft.ServiceCharge = 0
	}
	draft.Total = draft.Subtotal + draft.ServiceCharge
	draft.OTP = generateOTP()
	draft.CreatedAt = time.Now()
	draft.HasRated = false
	if draft.EstimatedTime <= 0 {
		draft.EstimatedTime = defaultEstimatedTime
	}

	if err := s.orders.InsertOrder(draft); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	if err := s.carts.Delete(ctx, draft.CustomerID); err != nil {
		log.Printf("[order-svc] failed to clear cart for %s: %v", draft.CustomerID, err)
	}

	s.publish(ctx, draft)
	return draft, nil
}

func (s *OrderService) ListOrders(customerID string) ([]domain.Order, error) {
	return s.orders.ListCustomerOrders(customerID, listOrdersLimit)
}

func (s *OrderService) ListRestaurantOrders(restaurantID string) ([]domain.Order, error) {
	return s.orders.ListRestaurantOrders(restaurantID)
}

func (s *OrderService) GetOrder(orderID string) (*domain.Order, error) {
	return s.getOrder(orderID)
}

func (s *OrderService) CancelOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.transition(ctx, orderID, domain.StatusPending, domain.StatusCancelled)
}

func (s *OrderService) ConfirmOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.getOrder(orderID)
	if err != nil {
		return nil, err
	}

	open, err := s.catalog.RestaurantOpen(order.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("check restaurant availability: %w", err)
	}
	if !open {
		return nil, ErrRestaurantClosed
	}

	return s.transition(ctx, orderID, domain.StatusPending, domain.StatusConfirmed)
}

func (s *OrderService) StartPreparing(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.transition(ctx, orderID, domain.StatusConfirmed, domain.StatusPreparing)
}

func (s *OrderService) MarkReady(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.transition(ctx, orderID, domain.StatusPreparing, domain.StatusReady)
}

// CompleteOrder is OTP-gated. The status write is conditional on the order
// still being ready, so two concurrent completion attempts cannot both settle.
// Settlement counter updates are best-effort per line item: a missing catalog
// row is logged and skipped, never fatal to the completion itself.
func (s *OrderService) CompleteOrder(ctx context.Context, orderID, otp string) (*domain.Order, error) {
	order, err := s.getOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.StatusReady {
		return nil, ErrInvalidTransition
	}
	if order.OTP != strings.TrimSpace(otp) {
		return nil, ErrOTPMismatch
	}

	ok, err := s.orders.TransitionStatus(orderID, domain.StatusReady, domain.StatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("complete order: %w", err)
	}
	if !ok {
		return nil, ErrInvalidTransition
	}
	order.Status = domain.StatusCompleted

	if err := s.catalog.IncrementRestaurantTotals(order.RestaurantID, 1, order.Total); err != nil {
		log.Printf("[order-svc] settlement: restaurant %s counters not updated: %v", order.RestaurantID, err)
	}
	for _, item := range order.Items {
		revenue := item.Price * float64(item.Quantity)
		found, err := s.catalog.IncrementItemTotals(item.FoodItemID, item.Quantity, revenue)
		if err != nil {
			log.Printf("[order-svc] settlement: item %s counters not updated: %v", item.FoodItemID, err)
			continue
		}
		if !found {
			log.Printf("[order-svc] settlement: food item %s not found for restaurant %s, skipping", item.FoodItemID, order.RestaurantID)
		}
	}

	s.publish(ctx, order)
	return order, nil
}

// UpdateOTP overwrites the stored OTP. Recovery path only; OTPs are never
// regenerated automatically.
func (s *OrderService) UpdateOTP(ctx context.Context, orderID, otp string) (*domain.Order, error) {
	order, err := s.getOrder(orderID)
	if err != nil {
		return nil, err
	}

	otp = strings.TrimSpace(otp)
	if err := s.orders.UpdateOTP(orderID, otp); err != nil {
		return nil, fmt.Errorf("update otp: %w", err)
	}
	order.OTP = otp

	s.publish(ctx, order)
	return order, nil
}

// UpdateStatus is the generic staff endpoint. It funnels into the same
// guarded transitions; completion is excluded because only the OTP path may
// reach completed.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, status domain.Status) (*domain.Order, error) {
	switch status {
	case domain.StatusConfirmed:
		return s.ConfirmOrder(ctx, orderID)
	case domain.StatusCancelled:
		return s.CancelOrder(ctx, orderID)
	case domain.StatusPreparing:
		return s.StartPreparing(ctx, orderID)
	case domain.StatusReady:
		return s.MarkReady(ctx, orderID)
	case domain.StatusPending, domain.StatusCompleted:
		return nil, ErrInvalidTransition
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}
}

// SubmitRatings records per-item ratings for a completed order, exactly once
// per order. The has_rated flip is a conditional write so a concurrent second
// submission loses cleanly with a conflict.
func (s *OrderService) SubmitRatings(ctx context.Context, orderID, customerID string, ratings []domain.Rating) error {
	order, err := s.orders.GetCustomerOrder(orderID, customerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("load order: %w", err)
	}
	if order.Status != domain.StatusCompleted {
		return ErrOrderNotCompleted
	}
	if order.HasRated {
		return ErrAlreadyRated
	}

	ordered := make(map[string]bool, len(order.Items))
	for _, item := range order.Items {
		ordered[item.FoodItemID] = true
	}
	for _, r := range ratings {
		if r.Rating < 1 || r.Rating > 5 {
			return fmt.Errorf("%w: got %d", ErrRatingOutOfRange, r.Rating)
		}
		if !ordered[r.FoodItemID] {
			return ErrItemNotInOrder
		}
		if _, err := s.catalog.GetFoodItem(r.FoodItemID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrItemNotFound
			}
			return fmt.Errorf("load food item: %w", err)
		}
	}

	// Flip the guard before writing so no rating rows ever land without it.
	if err := s.orders.SetHasRated(orderID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAlreadyRated
		}
		return fmt.Errorf("mark order rated: %w", err)
	}

	for _, r := range ratings {
		if err := s.catalog.UpsertItemRating(r.FoodItemID, customerID, orderID, r.Rating); err != nil {
			log.Printf("[order-svc] rating for item %s not recorded: %v", r.FoodItemID, err)
			continue
		}
		if err := s.catalog.RecomputeItemRating(r.FoodItemID); err != nil {
			log.Printf("[order-svc] rating recompute for item %s failed: %v", r.FoodItemID, err)
		}
	}

	if err := s.catalog.RecomputeRestaurantRating(order.RestaurantID); err != nil {
		log.Printf("[order-svc] restaurant %s rating recompute failed: %v", order.RestaurantID, err)
	}

	return nil
}

func (s *OrderService) HasRated(orderID, customerID string) (bool, error) {
	order, err := s.orders.GetCustomerOrder(orderID, customerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrOrderNotFound
		}
		return false, err
	}
	if order.HasRated {
		return true, nil
	}

	// Consistency fallback: rating rows may exist even when the flag write
	// was lost.
	for _, item := range order.Items {
		rated, err := s.catalog.HasItemRating(item.FoodItemID, customerID, orderID)
		if err != nil {
			return false, err
		}
		if rated {
			return true, nil
		}
	}
	return false, nil
}

func (s *OrderService) getOrder(orderID string) (*domain.Order, error) {
	order, err := s.orders.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// transition performs a guarded status move and re-reads the order for the
// caller. The conditional write, not the earlier read, decides the race.
func (s *OrderService) transition(ctx context.Context, orderID string, from, to domain.Status) (*domain.Order, error) {
	if !transitionAllowed(from, to) {
		return nil, ErrInvalidTransition
	}

	ok, err := s.orders.TransitionStatus(orderID, from, to)
	if err != nil {
		return nil, fmt.Errorf("transition %s -> %s: %w", from, to, err)
	}
	if !ok {
		if _, err := s.getOrder(orderID); err != nil {
			return nil, err
		}
		return nil, ErrInvalidTransition
	}

	order, err := s.getOrder(orderID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, order)
	return order, nil
}

// publish emits one event per durable transition. Delivery is fire-and-forget:
// a publish failure never rolls back or blocks the transition.
func (s *OrderService) publish(ctx context.Context, order *domain.Order) {
	if s.publisher == nil {
		return
	}
	event := domain.OrderEvent{
		Type:         domain.EventOrderStatus,
		OrderID:      order.OrderID,
		CustomerID:   order.CustomerID,
		RestaurantID: order.RestaurantID,
		Status:       order.Status,
		Timestamp:    time.Now(),
	}
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		log.Printf("[order-svc] failed to publish %s event for %s: %v", order.Status, order.OrderID, err)
	}
}

func newOrderID() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}

// generateOTP draws a uniform 4-digit code. In-person pickup verification
// only; not a cryptographic secret.
func generateOTP() string {
	return fmt.Sprintf("%d", 1000+rand.Intn(9000))
}
