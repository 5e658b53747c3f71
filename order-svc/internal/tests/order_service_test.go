package tests

import (
	"context"
	"database/sql"
	"testing"

	"foodcourt-ordering/order-svc/internal/domain"
	"foodcourt-ordering/order-svc/internal/mocks"
	"foodcourt-ordering/order-svc/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func twoItemCart(customerID string) *domain.Cart {
	return &domain.Cart{
		CustomerID: customerID,
		Items: []domain.CartItem{
			{FoodItemID: "RST-1-FI001", Name: "Masala Dosa", Price: 100, TakeawayPrice: 10, Quantity: 2, RestaurantID: "RST-1", RestaurantName: "Dosa Corner"},
			{FoodItemID: "RST-1-FI002", Name: "Filter Coffee", Price: 50, TakeawayPrice: 5, Quantity: 1, RestaurantID: "RST-1", RestaurantName: "Dosa Corner"},
		},
	}
}

func readyOrder(orderID string) *domain.Order {
	return &domain.Order{
		OrderID:      orderID,
		CustomerID:   "cust-1",
		RestaurantID: "RST-1",
		Items: []domain.OrderItem{
			{FoodItemID: "RST-1-FI001", Name: "Masala Dosa", Price: 100, Quantity: 2, RestaurantName: "Dosa Corner"},
			{FoodItemID: "RST-1-FI002", Name: "Filter Coffee", Price: 50, Quantity: 1, RestaurantName: "Dosa Corner"},
		},
		OrderType: domain.OrderTypeDining,
		Subtotal:  250,
		Total:     250,
		Status:    domain.StatusReady,
		OTP:       "4321",
	}
}

func TestOrderService_CreateOrder(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		orderType     domain.OrderType
		prepareMocks  func(carts *mocks.CartStore, gateway *mocks.PaymentGateway)
		check         func(t *testing.T, order *domain.Order, intent *domain.PaymentIntent)
		expectedError error
	}{
		{
			name:      "empty cart",
			orderType: domain.OrderTypeDining,
			prepareMocks: func(carts *mocks.CartStore, gateway *mocks.PaymentGateway) {
				carts.On("Get", ctx, "cust-1").Return(nil, nil).Once()
			},
			expectedError: service.ErrCartEmpty,
		},
		{
			name:      "mixed restaurants rejected",
			orderType: domain.OrderTypeDining,
			prepareMocks: func(carts *mocks.CartStore, gateway *mocks.PaymentGateway) {
				cart := twoItemCart("cust-1")
				cart.Items[1].RestaurantID = "RST-2"
				carts.On("Get", ctx, "cust-1").Return(cart, nil).Once()
			},
			expectedError: service.ErrMixedRestaurants,
		},
		{
			name:      "dining order has no service charge",
			orderType: domain.OrderTypeDining,
			prepareMocks: func(carts *mocks.CartStore, gateway *mocks.PaymentGateway) {
				carts.On("Get", ctx, "cust-1").Return(twoItemCart("cust-1"), nil).Once()
				gateway.On("CreateIntent", ctx, int64(25000), "INR", mock.AnythingOfType("string")).
					Return(&domain.PaymentIntent{GatewayOrderID: "pg_1", Amount: 25000, Currency: "INR"}, nil).Once()
			},
			check: func(t *testing.T, order *domain.Order, intent *domain.PaymentIntent) {
				assert.Equal(t, 250.0, order.Subtotal)
				assert.Equal(t, 0.0, order.ServiceCharge)
				assert.Equal(t, 250.0, order.Total)
				assert.Equal(t, domain.StatusPending, order.Status)
				assert.Equal(t, "pg_1", intent.GatewayOrderID)
			},
		},
		{
			name:      "takeaway adds per item surcharge",
			orderType: domain.OrderTypeTakeaway,
			prepareMocks: func(carts *mocks.CartStore, gateway *mocks.PaymentGateway) {
				carts.On("Get", ctx, "cust-1").Return(twoItemCart("cust-1"), nil).Once()
				gateway.On("CreateIntent", ctx, int64(27500), "INR", mock.AnythingOfType("string")).
					Return(&domain.PaymentIntent{GatewayOrderID: "pg_2", Amount: 27500, Currency: "INR"}, nil).Once()
			},
			check: func(t *testing.T, order *domain.Order, intent *domain.PaymentIntent) {
				assert.Equal(t, 25.0, order.ServiceCharge)
				assert.Equal(t, 275.0, order.Total)
			},
		},
		{
			name:      "gateway failure surfaces as upstream error",
			orderType: domain.OrderTypeDining,
			prepareMocks: func(carts *mocks.CartStore, gateway *mocks.PaymentGateway) {
				carts.On("Get", ctx, "cust-1").Return(twoItemCart("cust-1"), nil).Once()
				gateway.On("CreateIntent", ctx, int64(25000), "INR", mock.AnythingOfType("string")).
					Return(nil, assert.AnError).Once()
			},
			expectedError: service.ErrPaymentGateway,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			orders := mocks.NewOrderRepository(t)
			catalog := mocks.NewCatalogRepository(t)
			carts := mocks.NewCartStore(t)
			gateway := mocks.NewPaymentGateway(t)
			publisher := mocks.NewEventPublisher(t)
			svc := service.NewOrderService(orders, catalog, carts, gateway, publisher)

			testCase.prepareMocks(carts, gateway)

			order, intent, err := svc.CreateOrder(ctx, "cust-1", testCase.orderType)
			if testCase.expectedError != nil {
				assert.ErrorIs(t, err, testCase.expectedError)
				return
			}
			assert.NoError(t, err)
			assert.NotEmpty(t, order.OrderID)
			testCase.check(t, order, intent)
		})
	}
}

func TestOrderService_VerifyAndPersistOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("signature mismatch persists nothing", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		gateway := mocks.NewPaymentGateway(t)
		carts := mocks.NewCartStore(t)
		svc := service.NewOrderService(orders, mocks.NewCatalogRepository(t), carts, gateway, mocks.NewEventPublisher(t))

		gateway.On("VerifySignature", "pg_1", "pay_1", "bad").Return(false).Once()

		_, err := svc.VerifyAndPersistOrder(ctx, readyOrder("ORD-1"), "pg_1", "pay_1", "bad")
		assert.ErrorIs(t, err, service.ErrPaymentVerification)
	})

	t.Run("valid signature persists pending order with fresh otp", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		gateway := mocks.NewPaymentGateway(t)
		carts := mocks.NewCartStore(t)
		publisher := mocks.NewEventPublisher(t)
		svc := service.NewOrderService(orders, mocks.NewCatalogRepository(t), carts, gateway, publisher)

		draft := readyOrder("ORD-1")
		draft.Status = ""
		draft.OTP = ""

		gateway.On("VerifySignature", "pg_1", "pay_1", "sig").Return(true).Once()
		orders.On("InsertOrder", draft).Return(nil).Once()
		carts.On("Delete", ctx, "cust-1").Return(nil).Once()
		publisher.On("PublishOrderEvent", ctx, mock.MatchedBy(func(e domain.OrderEvent) bool {
			return e.Type == domain.EventOrderStatus && e.OrderID == "ORD-1" && e.Status == domain.StatusPending
		})).Return(nil).Once()

		persisted, err := svc.VerifyAndPersistOrder(ctx, draft, "pg_1", "pay_1", "sig")
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusPending, persisted.Status)
		assert.Len(t, persisted.OTP, 4)
		assert.Equal(t, persisted.Subtotal+persisted.ServiceCharge, persisted.Total)
	})

	t.Run("dining draft sheds a smuggled service charge", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		gateway := mocks.NewPaymentGateway(t)
		carts := mocks.NewCartStore(t)
		publisher := mocks.NewEventPublisher(t)
		svc := service.NewOrderService(orders, mocks.NewCatalogRepository(t), carts, gateway, publisher)

		draft := readyOrder("ORD-3")
		draft.OrderType = domain.OrderTypeDining
		draft.ServiceCharge = 25
		draft.Total = 999

		gateway.On("VerifySignature", "pg_1", "pay_1", "sig").Return(true).Once()
		orders.On("InsertOrder", mock.MatchedBy(func(order *domain.Order) bool {
			return order.ServiceCharge == 0 && order.Total == order.Subtotal
		})).Return(nil).Once()
		carts.On("Delete", ctx, "cust-1").Return(nil).Once()
		publisher.On("PublishOrderEvent", ctx, mock.Anything).Return(nil).Once()

		persisted, err := svc.VerifyAndPersistOrder(ctx, draft, "pg_1", "pay_1", "sig")
		assert.NoError(t, err)
		assert.Zero(t, persisted.ServiceCharge)
		assert.Equal(t, persisted.Subtotal, persisted.Total)
	})

	t.Run("cart clear failure does not fail the order", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		gateway := mocks.NewPaymentGateway(t)
		carts := mocks.NewCartStore(t)
		publisher := mocks.NewEventPublisher(t)
		svc := service.NewOrderService(orders, mocks.NewCatalogRepository(t), carts, gateway, publisher)

		draft := readyOrder("ORD-2")
		gateway.On("VerifySignature", "pg_1", "pay_1", "sig").Return(true).Once()
		orders.On("InsertOrder", draft).Return(nil).Once()
		carts.On("Delete", ctx, "cust-1").Return(assert.AnError).Once()
		publisher.On("PublishOrderEvent", ctx, mock.Anything).Return(nil).Once()

		_, err := svc.VerifyAndPersistOrder(ctx, draft, "pg_1", "pay_1", "sig")
		assert.NoError(t, err)
	})
}

func TestOrderService_Transitions(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		run           func(svc *service.OrderService) error
		prepareMocks  func(orders *mocks.OrderRepository, catalog *mocks.CatalogRepository, publisher *mocks.EventPublisher)
		expectedError error
	}{
		{
			name: "confirm pending order",
			run: func(svc *service.OrderService) error {
				_, err := svc.ConfirmOrder(ctx, "ORD-1")
				return err
			},
			prepareMocks: func(orders *mocks.OrderRepository, catalog *mocks.CatalogRepository, publisher *mocks.EventPublisher) {
				pending := readyOrder("ORD-1")
				pending.Status = domain.StatusPending
				confirmed := readyOrder("ORD-1")
				confirmed.Status = domain.StatusConfirmed
				orders.On("GetOrder", "ORD-1").Return(pending, nil).Once()
				catalog.On("RestaurantOpen", "RST-1").Return(true, nil).Once()
				orders.On("TransitionStatus", "ORD-1", domain.StatusPending, domain.StatusConfirmed).Return(true, nil).Once()
				orders.On("GetOrder", "ORD-1").Return(confirmed, nil).Once()
				publisher.On("PublishOrderEvent", ctx, mock.MatchedBy(func(e domain.OrderEvent) bool {
					return e.Status == domain.StatusConfirmed
				})).Return(nil).Once()
			},
		},
		{
			name: "confirm rejected while restaurant closed",
			run: func(svc *service.OrderService) error {
				_, err := svc.ConfirmOrder(ctx, "ORD-1")
				return err
			},
			prepareMocks: func(orders *mocks.OrderRepository, catalog *mocks.CatalogRepository, publisher *mocks.EventPublisher) {
				pending := readyOrder("ORD-1")
				pending.Status = domain.StatusPending
				orders.On("GetOrder", "ORD-1").Return(pending, nil).Once()
				catalog.On("RestaurantOpen", "RST-1").Return(false, nil).Once()
			},
			expectedError: service.ErrRestaurantClosed,
		},
		{
			name: "cancel pending order",
			run: func(svc *service.OrderService) error {
				_, err := svc.CancelOrder(ctx, "ORD-1")
				return err
			},
			prepareMocks: func(orders *mocks.OrderRepository, catalog *mocks.CatalogRepository, publisher *mocks.EventPublisher) {
				cancelled := readyOrder("ORD-1")
				cancelled.Status = domain.StatusCancelled
				orders.On("TransitionStatus", "ORD-1", domain.StatusPending, domain.StatusCancelled).Return(true, nil).Once()
				orders.On("GetOrder", "ORD-1").Return(cancelled, nil).Once()
				publisher.On("PublishOrderEvent", ctx, mock.Anything).Return(nil).Once()
			},
		},
		{
			name: "lost race reports invalid transition",
			run: func(svc *service.OrderService) error {
				_, err := svc.MarkReady(ctx, "ORD-1")
				return err
			},
			prepareMocks: func(orders *mocks.OrderRepository, catalog *mocks.CatalogRepository, publisher *mocks.EventPublisher) {
				already := readyOrder("ORD-1")
				orders.On("TransitionStatus", "ORD-1", domain.StatusPreparing, domain.StatusReady).Return(false, nil).Once()
				orders.On("GetOrder", "ORD-1").Return(already, nil).Once()
			},
			expectedError: service.ErrInvalidTransition,
		},
		{
			name: "missing order reports not found",
			run: func(svc *service.OrderService) error {
				_, err := svc.StartPreparing(ctx, "ORD-404")
				return err
			},
			prepareMocks: func(orders *mocks.OrderRepository, catalog *mocks.CatalogRepository, publisher *mocks.EventPublisher) {
				orders.On("TransitionStatus", "ORD-404", domain.StatusConfirmed, domain.StatusPreparing).Return(false, nil).Once()
				orders.On("GetOrder", "ORD-404").Return(nil, sql.ErrNoRows).Once()
			},
			expectedError: service.ErrOrderNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			orders := mocks.NewOrderRepository(t)
			catalog := mocks.NewCatalogRepository(t)
			publisher := mocks.NewEventPublisher(t)
			svc := service.NewOrderService(orders, catalog, mocks.NewCartStore(t), mocks.NewPaymentGateway(t), publisher)

			testCase.prepareMocks(orders, catalog, publisher)
			err := testCase.run(svc)
			assert.ErrorIs(t, err, testCase.expectedError)
		})
	}
}

func TestOrderService_CompleteOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects when order is not ready", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		svc := service.NewOrderService(orders, mocks.NewCatalogRepository(t), mocks.NewCartStore(t), mocks.NewPaymentGateway(t), mocks.NewEventPublisher(t))

		preparing := readyOrder("ORD-1")
		preparing.Status = domain.StatusPreparing
		orders.On("GetOrder", "ORD-1").Return(preparing, nil).Once()

		_, err := svc.CompleteOrder(ctx, "ORD-1", "4321")
		assert.ErrorIs(t, err, service.ErrInvalidTransition)
	})

	t.Run("rejects wrong otp without touching status", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		svc := service.NewOrderService(orders, mocks.NewCatalogRepository(t), mocks.NewCartStore(t), mocks.NewPaymentGateway(t), mocks.NewEventPublisher(t))

		orders.On("GetOrder", "ORD-1").Return(readyOrder("ORD-1"), nil).Once()

		_, err := svc.CompleteOrder(ctx, "ORD-1", "0000")
		assert.ErrorIs(t, err, service.ErrOTPMismatch)
	})

	t.Run("accepts otp with surrounding whitespace", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		catalog := mocks.NewCatalogRepository(t)
		publisher := mocks.NewEventPublisher(t)
		svc := service.NewOrderService(orders, catalog, mocks.NewCartStore(t), mocks.NewPaymentGateway(t), publisher)

		orders.On("GetOrder", "ORD-1").Return(readyOrder("ORD-1"), nil).Once()
		orders.On("TransitionStatus", "ORD-1", domain.StatusReady, domain.StatusCompleted).Return(true, nil).Once()
		catalog.On("IncrementRestaurantTotals", "RST-1", 1, 250.0).Return(nil).Once()
		catalog.On("IncrementItemTotals", "RST-1-FI001", 2, 200.0).Return(true, nil).Once()
		catalog.On("IncrementItemTotals", "RST-1-FI002", 1, 50.0).Return(true, nil).Once()
		publisher.On("PublishOrderEvent", ctx, mock.MatchedBy(func(e domain.OrderEvent) bool {
			return e.Status == domain.StatusCompleted
		})).Return(nil).Once()

		order, err := svc.CompleteOrder(ctx, "ORD-1", " 4321 ")
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, order.Status)
	})

	t.Run("concurrent completion loses on conditional write", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		svc := service.NewOrderService(orders, mocks.NewCatalogRepository(t), mocks.NewCartStore(t), mocks.NewPaymentGateway(t), mocks.NewEventPublisher(t))

		orders.On("GetOrder", "ORD-1").Return(readyOrder("ORD-1"), nil).Once()
		orders.On("TransitionStatus", "ORD-1", domain.StatusReady, domain.StatusCompleted).Return(false, nil).Once()

		_, err := svc.CompleteOrder(ctx, "ORD-1", "4321")
		assert.ErrorIs(t, err, service.ErrInvalidTransition)
	})

	t.Run("missing catalog row never fails completion", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		catalog := mocks.NewCatalogRepository(t)
		publisher := mocks.NewEventPublisher(t)
		svc := service.NewOrderService(orders, catalog, mocks.NewCartStore(t), mocks.NewPaymentGateway(t), publisher)

		orders.On("GetOrder", "ORD-1").Return(readyOrder("ORD-1"), nil).Once()
		orders.On("TransitionStatus", "ORD-1", domain.StatusReady, domain.StatusCompleted).Return(true, nil).Once()
		catalog.On("IncrementRestaurantTotals", "RST-1", 1, 250.0).Return(nil).Once()
		catalog.On("IncrementItemTotals", "RST-1-FI001", 2, 200.0).Return(false, nil).Once()
		catalog.On("IncrementItemTotals", "RST-1-FI002", 1, 50.0).Return(true, assert.AnError).Once()
		publisher.On("PublishOrderEvent", ctx, mock.Anything).Return(nil).Once()

		order, err := svc.CompleteOrder(ctx, "ORD-1", "4321")
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, order.Status)
	})
}

func TestOrderService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("completed is unreachable from the staff endpoint", func(t *testing.T) {
		svc := service.NewOrderService(mocks.NewOrderRepository(t), mocks.NewCatalogRepository(t), mocks.NewCartStore(t), mocks.NewPaymentGateway(t), mocks.NewEventPublisher(t))
		_, err := svc.UpdateStatus(ctx, "ORD-1", domain.StatusCompleted)
		assert.ErrorIs(t, err, service.ErrInvalidTransition)
	})

	t.Run("pending is not a target", func(t *testing.T) {
		svc := service.NewOrderService(mocks.NewOrderRepository(t), mocks.NewCatalogRepository(t), mocks.NewCartStore(t), mocks.NewPaymentGateway(t), mocks.NewEventPublisher(t))
		_, err := svc.UpdateStatus(ctx, "ORD-1", domain.StatusPending)
		assert.ErrorIs(t, err, service.ErrInvalidTransition)
	})

	t.Run("unknown status", func(t *testing.T) {
		svc := service.NewOrderService(mocks.NewOrderRepository(t), mocks.NewCatalogRepository(t), mocks.NewCartStore(t), mocks.NewPaymentGateway(t), mocks.NewEventPublisher(t))
		_, err := svc.UpdateStatus(ctx, "ORD-1", domain.Status("delivered"))
		assert.ErrorIs(t, err, service.ErrUnknownStatus)
	})

	t.Run("ready delegates to the guarded transition", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		publisher := mocks.NewEventPublisher(t)
		svc := service.NewOrderService(orders, mocks.NewCatalogRepository(t), mocks.NewCartStore(t), mocks.NewPaymentGateway(t), publisher)

		ready := readyOrder("ORD-1")
		orders.On("TransitionStatus", "ORD-1", domain.StatusPreparing, domain.StatusReady).Return(true, nil).Once()
		orders.On("GetOrder", "ORD-1").Return(ready, nil).Once()
		publisher.On("PublishOrderEvent", ctx, mock.Anything).Return(nil).Once()

		order, err := svc.UpdateStatus(ctx, "ORD-1", domain.StatusReady)
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusReady, order.Status)
	})
}

func TestOrderService_SubmitRatings(t *testing.T) {
	ctx := context.Background()
	ratings := []domain.Rating{
		{FoodItemID: "RST-1-FI001", Rating: 5},
		{FoodItemID: "RST-1-FI002", Rating: 3},
	}

	completedOrder := func() *domain.Order {
		order := readyOrder("ORD-1")
		order.Status = domain.StatusCompleted
		return order
	}

	t.Run("order not found", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		svc := service.NewOrderService(orders, mocks.NewCatalogRepository(t), mocks.NewCartStore(t), mocks.NewPaymentGateway(t), mocks.NewEventPublisher(t))
		orders.On("GetCustomerOrder", "ORD-1", "cust-1").Return(nil, sql.ErrNoRows).Once()

		err := svc.SubmitRatings(ctx, "ORD-1", "cust-1", ratings)
		assert.ErrorIs(t, err, service.ErrOrderNotFound)
	})

	t.Run("order not completed", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		svc := service.NewOrderService(orders, mocks.NewCatalogRepository(t), mocks.NewCartStore(t), mocks.NewPaymentGateway(t), mocks.NewEventPublisher(t))
		orders.On("GetCustomerOrder", "ORD-1", "cust-1").Return(readyOrder("ORD-1"), nil).Once()

		err := svc.SubmitRatings(ctx, "ORD-1", "cust-1", ratings)
		assert.ErrorIs(t, err, service.ErrOrderNotCompleted)
	})

	t.Run("already rated flag", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		svc := service.NewOrderService(orders, mocks.NewCatalogRepository(t), mocks.NewCartStore(t), mocks.NewPaymentGateway(t), mocks.NewEventPublisher(t))
		order := completedOrder()
		order.HasRated = true
		orders.On("GetCustomerOrder", "ORD-1", "cust-1").Return(order, nil).Once()

		err := svc.SubmitRatings(ctx, "ORD-1", "cust-1", ratings)
		assert.ErrorIs(t, err, service.ErrAlreadyRated)
	})

	t.Run("rating out of range", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		svc := service.NewOrderService(orders, mocks.NewCatalogRepository(t), mocks.NewCartStore(t), mocks.NewPaymentGateway(t), mocks.NewEventPublisher(t))
		orders.On("GetCustomerOrder", "ORD-1", "cust-1").Return(completedOrder(), nil).Once()

		err := svc.SubmitRatings(ctx, "ORD-1", "cust-1", []domain.Rating{{FoodItemID: "RST-1-FI001", Rating: 6}})
		assert.ErrorIs(t, err, service.ErrRatingOutOfRange)
	})

	t.Run("item not in order", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		svc := service.NewOrderService(orders, mocks.NewCatalogRepository(t), mocks.NewCartStore(t), mocks.NewPaymentGateway(t), mocks.NewEventPublisher(t))
		orders.On("GetCustomerOrder", "ORD-1", "cust-1").Return(completedOrder(), nil).Once()

		err := svc.SubmitRatings(ctx, "ORD-1", "cust-1", []domain.Rating{{FoodItemID: "RST-9-FI009", Rating: 4}})
		assert.ErrorIs(t, err, service.ErrItemNotInOrder)
	})

	t.Run("concurrent duplicate loses on guard flip", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		catalog := mocks.NewCatalogRepository(t)
		svc := service.NewOrderService(orders, catalog, mocks.NewCartStore(t), mocks.NewPaymentGateway(t), mocks.NewEventPublisher(t))

		orders.On("GetCustomerOrder", "ORD-1", "cust-1").Return(completedOrder(), nil).Once()
		catalog.On("GetFoodItem", "RST-1-FI001").Return(&domain.FoodItem{FoodItemID: "RST-1-FI001"}, nil).Once()
		catalog.On("GetFoodItem", "RST-1-FI002").Return(&domain.FoodItem{FoodItemID: "RST-1-FI002"}, nil).Once()
		orders.On("SetHasRated", "ORD-1").Return(sql.ErrNoRows).Once()

		err := svc.SubmitRatings(ctx, "ORD-1", "cust-1", ratings)
		assert.ErrorIs(t, err, service.ErrAlreadyRated)
	})

	t.Run("records ratings and recomputes means", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		catalog := mocks.NewCatalogRepository(t)
		svc := service.NewOrderService(orders, catalog, mocks.NewCartStore(t), mocks.NewPaymentGateway(t), mocks.NewEventPublisher(t))

		orders.On("GetCustomerOrder", "ORD-1", "cust-1").Return(completedOrder(), nil).Once()
		catalog.On("GetFoodItem", "RST-1-FI001").Return(&domain.FoodItem{FoodItemID: "RST-1-FI001"}, nil).Once()
		catalog.On("GetFoodItem", "RST-1-FI002").Return(&domain.FoodItem{FoodItemID: "RST-1-FI002"}, nil).Once()
		orders.On("SetHasRated", "ORD-1").Return(nil).Once()
		catalog.On("UpsertItemRating", "RST-1-FI001", "cust-1", "ORD-1", 5).Return(nil).Once()
		catalog.On("RecomputeItemRating", "RST-1-FI001").Return(nil).Once()
		catalog.On("UpsertItemRating", "RST-1-FI002", "cust-1", "ORD-1", 3).Return(nil).Once()
		catalog.On("RecomputeItemRating", "RST-1-FI002").Return(nil).Once()
		catalog.On("RecomputeRestaurantRating", "RST-1").Return(nil).Once()

		err := svc.SubmitRatings(ctx, "ORD-1", "cust-1", ratings)
		assert.NoError(t, err)
	})
}

func TestOrderService_HasRated(t *testing.T) {
	t.Run("flag wins", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		svc := service.NewOrderService(orders, mocks.NewCatalogRepository(t), mocks.NewCartStore(t), mocks.NewPaymentGateway(t), mocks.NewEventPublisher(t))

		order := readyOrder("ORD-1")
		order.HasRated = true
		orders.On("GetCustomerOrder", "ORD-1", "cust-1").Return(order, nil).Once()

		rated, err := svc.HasRated("ORD-1", "cust-1")
		assert.NoError(t, err)
		assert.True(t, rated)
	})

	t.Run("falls back to rating rows", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		catalog := mocks.NewCatalogRepository(t)
		svc := service.NewOrderService(orders, catalog, mocks.NewCartStore(t), mocks.NewPaymentGateway(t), mocks.NewEventPublisher(t))

		orders.On("GetCustomerOrder", "ORD-1", "cust-1").Return(readyOrder("ORD-1"), nil).Once()
		catalog.On("HasItemRating", "RST-1-FI001", "cust-1", "ORD-1").Return(false, nil).Once()
		catalog.On("HasItemRating", "RST-1-FI002", "cust-1", "ORD-1").Return(true, nil).Once()

		rated, err := svc.HasRated("ORD-1", "cust-1")
		assert.NoError(t, err)
		assert.True(t, rated)
	})
}

func TestOrderService_UpdateOTP(t *testing.T) {
	ctx := context.Background()
	orders := mocks.NewOrderRepository(t)
	publisher := mocks.NewEventPublisher(t)
	svc := service.NewOrderService(orders, mocks.NewCatalogRepository(t), mocks.NewCartStore(t), mocks.NewPaymentGateway(t), publisher)

	orders.On("GetOrder", "ORD-1").Return(readyOrder("ORD-1"), nil).Once()
	orders.On("UpdateOTP", "ORD-1", "9876").Return(nil).Once()
	publisher.On("PublishOrderEvent", ctx, mock.Anything).Return(nil).Once()

	order, err := svc.UpdateOTP(ctx, "ORD-1", " 9876 ")
	assert.NoError(t, err)
	assert.Equal(t, "9876", order.OTP)
}
