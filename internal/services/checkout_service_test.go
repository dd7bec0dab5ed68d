package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/domain"
	"storefront/internal/infra/payment"
	"storefront/internal/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCheckoutFixture() (*CheckoutService, *mocks.MockProductRepository, *mocks.MockPaymentGateway, *mocks.MockOrderRepository, *mocks.MockPublisher) {
	products := new(mocks.MockProductRepository)
	gateway := new(mocks.MockPaymentGateway)
	orders := new(mocks.MockOrderRepository)
	publisher := new(mocks.MockPublisher)

	service := NewCheckoutService(NewPricingEngine(products), gateway, orders, publisher)
	return service, products, gateway, orders, publisher
}

func TestCheckoutService_BeginCheckout(t *testing.T) {
	user := CreateTestUser(TestUserID, TestUserEmail)
	cart := []domain.CartItem{{ProductID: TestProductID, Quantity: 2}}

	t.Run("returns client secret and server-priced amount", func(t *testing.T) {
		service, products, gateway, _, _ := newCheckoutFixture()

		products.On("FindByID", mock.Anything, TestProductID).Return(CreateTestProduct(TestProductID, "Floral Dream Overlay", "15.00"), nil)
		gateway.On("CreateIntent", mock.Anything, int64(3000), "usd", payment.IntentMetadata{
			UserID:    TestUserID,
			UserEmail: TestUserEmail,
			ItemCount: 1,
		}).Return(&payment.PaymentIntent{
			ID:           TestIntentID,
			ClientSecret: TestIntentID + "_secret",
			Status:       "requires_payment_method",
		}, nil)

		intent, err := service.BeginCheckout(context.Background(), user, cart)

		assert.NoError(t, err)
		assert.Equal(t, TestIntentID, intent.PaymentIntentID)
		assert.Equal(t, TestIntentID+"_secret", intent.ClientSecret)
		assert.True(t, intent.Amount.Equal(decimal.RequireFromString("30.00")))

		products.AssertExpectations(t)
		gateway.AssertExpectations(t)
	})

	t.Run("unknown product fails without touching the gateway", func(t *testing.T) {
		service, products, gateway, _, _ := newCheckoutFixture()

		products.On("FindByID", mock.Anything, TestProductID).Return(nil, nil)

		intent, err := service.BeginCheckout(context.Background(), user, cart)

		var notFound *ProductNotFoundError
		assert.ErrorAs(t, err, &notFound)
		assert.Equal(t, TestProductID, notFound.ProductID)
		assert.Nil(t, intent)
		gateway.AssertNotCalled(t, "CreateIntent")
	})

	t.Run("gateway rejection surfaces as provider error, nothing persists", func(t *testing.T) {
		service, products, gateway, orders, _ := newCheckoutFixture()

		products.On("FindByID", mock.Anything, TestProductID).Return(CreateTestProduct(TestProductID, "Floral Dream Overlay", "15.00"), nil)
		gateway.On("CreateIntent", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("stripe: invalid amount"))

		intent, err := service.BeginCheckout(context.Background(), user, cart)

		var provider *PaymentProviderError
		assert.ErrorAs(t, err, &provider)
		assert.Nil(t, intent)
		orders.AssertNotCalled(t, "Save")
	})

	t.Run("empty cart is a validation error, gateway untouched", func(t *testing.T) {
		service, _, gateway, _, _ := newCheckoutFixture()

		intent, err := service.BeginCheckout(context.Background(), user, nil)

		var validation *ValidationError
		assert.ErrorAs(t, err, &validation)
		assert.Nil(t, intent)
		gateway.AssertNotCalled(t, "CreateIntent")
	})
}

func TestCheckoutService_ConfirmCheckout(t *testing.T) {
	user := CreateTestUser(TestUserID, TestUserEmail)
	cart := []domain.CartItem{{ProductID: TestProductID, Quantity: 2}}

	t.Run("persists a paid order when the intent succeeded", func(t *testing.T) {
		service, products, gateway, orders, publisher := newCheckoutFixture()

		gateway.On("RetrieveIntent", mock.Anything, TestIntentID).
			Return(&payment.PaymentIntent{ID: TestIntentID, Status: payment.StatusSucceeded}, nil)
		products.On("FindByID", mock.Anything, TestProductID).Return(CreateTestProduct(TestProductID, "Floral Dream Overlay", "15.00"), nil)
		orders.On("Save", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)
		publisher.On("Publish", mock.Anything, "order.paid", mock.Anything).Return(nil).Maybe()

		order, err := service.ConfirmCheckout(context.Background(), user, TestIntentID, cart)

		assert.NoError(t, err)
		assert.NotEmpty(t, order.ID)
		assert.Equal(t, TestUserID, order.UserID)
		assert.Equal(t, domain.StatusPaid, order.Status)
		assert.Equal(t, TestIntentID, order.PaymentReference)
		assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("30.00")))
		assert.Equal(t, cart, order.Items)

		time.Sleep(100 * time.Millisecond)

		products.AssertExpectations(t)
		gateway.AssertExpectations(t)
		orders.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("anything other than succeeded refuses to create an order", func(t *testing.T) {
		for _, status := range []string{"requires_payment_method", "requires_confirmation", "processing", "canceled"} {
			service, products, gateway, orders, _ := newCheckoutFixture()

			gateway.On("RetrieveIntent", mock.Anything, TestIntentID).
				Return(&payment.PaymentIntent{ID: TestIntentID, Status: status}, nil)

			order, err := service.ConfirmCheckout(context.Background(), user, TestIntentID, cart)

			assert.ErrorIs(t, err, ErrPaymentNotCompleted, "status %s", status)
			assert.Nil(t, order)
			orders.AssertNotCalled(t, "Save")
			products.AssertNotCalled(t, "FindByID")
		}
	})

	t.Run("provider failure on retrieve surfaces as provider error", func(t *testing.T) {
		service, _, gateway, orders, _ := newCheckoutFixture()

		gateway.On("RetrieveIntent", mock.Anything, TestIntentID).
			Return(nil, errors.New("stripe: no such payment_intent"))

		order, err := service.ConfirmCheckout(context.Background(), user, TestIntentID, cart)

		var provider *PaymentProviderError
		assert.ErrorAs(t, err, &provider)
		assert.Nil(t, order)
		orders.AssertNotCalled(t, "Save")
	})

	t.Run("missing intent id is a validation error", func(t *testing.T) {
		service, _, gateway, _, _ := newCheckoutFixture()

		order, err := service.ConfirmCheckout(context.Background(), user, "", cart)

		var validation *ValidationError
		assert.ErrorAs(t, err, &validation)
		assert.Nil(t, order)
		gateway.AssertNotCalled(t, "RetrieveIntent")
	})

	t.Run("product vanished since intent creation", func(t *testing.T) {
		service, products, gateway, orders, _ := newCheckoutFixture()

		gateway.On("RetrieveIntent", mock.Anything, TestIntentID).
			Return(&payment.PaymentIntent{ID: TestIntentID, Status: payment.StatusSucceeded}, nil)
		products.On("FindByID", mock.Anything, TestProductID).Return(nil, nil)

		order, err := service.ConfirmCheckout(context.Background(), user, TestIntentID, cart)

		var notFound *ProductNotFoundError
		assert.ErrorAs(t, err, &notFound)
		assert.Nil(t, order)
		orders.AssertNotCalled(t, "Save")
	})

	t.Run("store failure after a successful charge is a hard error", func(t *testing.T) {
		service, products, gateway, orders, _ := newCheckoutFixture()

		gateway.On("RetrieveIntent", mock.Anything, TestIntentID).
			Return(&payment.PaymentIntent{ID: TestIntentID, Status: payment.StatusSucceeded}, nil)
		products.On("FindByID", mock.Anything, TestProductID).Return(CreateTestProduct(TestProductID, "Floral Dream Overlay", "15.00"), nil)
		orders.On("Save", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(errors.New("deadlock"))

		order, err := service.ConfirmCheckout(context.Background(), user, TestIntentID, cart)

		var persistence *PersistenceError
		assert.ErrorAs(t, err, &persistence)
		assert.Nil(t, order)
	})
}

// The confirmation total comes from a fresh catalog read, not from the
// amount the intent was opened for.
func TestCheckoutService_RepricesAtConfirmation(t *testing.T) {
	user := CreateTestUser(TestUserID, TestUserEmail)
	cart := []domain.CartItem{{ProductID: TestProductID, Quantity: 1}}

	service, products, gateway, orders, publisher := newCheckoutFixture()

	products.On("FindByID", mock.Anything, TestProductID).
		Return(CreateTestProduct(TestProductID, "Spooky Halloween Overlay", "20.00"), nil).Once()
	gateway.On("CreateIntent", mock.Anything, int64(2000), "usd", mock.Anything).
		Return(&payment.PaymentIntent{ID: TestIntentID, ClientSecret: TestIntentID + "_secret"}, nil)

	intent, err := service.BeginCheckout(context.Background(), user, cart)
	assert.NoError(t, err)
	assert.True(t, intent.Amount.Equal(decimal.RequireFromString("20.00")))

	// Price changes between the two phases.
	products.On("FindByID", mock.Anything, TestProductID).
		Return(CreateTestProduct(TestProductID, "Spooky Halloween Overlay", "25.00"), nil)
	gateway.On("RetrieveIntent", mock.Anything, TestIntentID).
		Return(&payment.PaymentIntent{ID: TestIntentID, Status: payment.StatusSucceeded}, nil)
	orders.On("Save", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)
	publisher.On("Publish", mock.Anything, "order.paid", mock.Anything).Return(nil).Maybe()

	order, err := service.ConfirmCheckout(context.Background(), user, TestIntentID, cart)

	assert.NoError(t, err)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("25.00")),
		"expected fresh re-pricing, got %s", order.TotalAmount)

	time.Sleep(100 * time.Millisecond)
	gateway.AssertExpectations(t)
	orders.AssertExpectations(t)
}

// Confirms are not deduplicated: each confirm of a succeeded intent creates
// its own order. This pins current behavior, it is not an endorsement.
func TestCheckoutService_DuplicateConfirmCreatesTwoOrders(t *testing.T) {
	user := CreateTestUser(TestUserID, TestUserEmail)
	cart := []domain.CartItem{{ProductID: TestProductID, Quantity: 1}}

	service, products, gateway, orders, publisher := newCheckoutFixture()

	gateway.On("RetrieveIntent", mock.Anything, TestIntentID).
		Return(&payment.PaymentIntent{ID: TestIntentID, Status: payment.StatusSucceeded}, nil)
	products.On("FindByID", mock.Anything, TestProductID).
		Return(CreateTestProduct(TestProductID, "Floral Dream Overlay", "15.00"), nil)

	var persisted []*domain.Order
	orders.On("Save", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil).
		Run(func(args mock.Arguments) {
			persisted = append(persisted, args.Get(1).(*domain.Order))
		})
	publisher.On("Publish", mock.Anything, "order.paid", mock.Anything).Return(nil).Maybe()

	first, err := service.ConfirmCheckout(context.Background(), user, TestIntentID, cart)
	assert.NoError(t, err)
	second, err := service.ConfirmCheckout(context.Background(), user, TestIntentID, cart)
	assert.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, persisted, 2)
	assert.Equal(t, TestIntentID, persisted[0].PaymentReference)
	assert.Equal(t, TestIntentID, persisted[1].PaymentReference)

	time.Sleep(100 * time.Millisecond)
}

func TestCheckoutService_EndToEnd(t *testing.T) {
	user := CreateTestUser("u1", "u1@example.com")
	cart := []domain.CartItem{{ProductID: "p1", Quantity: 2}}

	service, products, gateway, orders, publisher := newCheckoutFixture()

	products.On("FindByID", mock.Anything, "p1").
		Return(CreateTestProduct("p1", "Floral Dream Overlay", "15.00"), nil)
	gateway.On("CreateIntent", mock.Anything, int64(3000), "usd", mock.Anything).
		Return(&payment.PaymentIntent{ID: "pi_e2e", ClientSecret: "pi_e2e_secret"}, nil)

	intent, err := service.BeginCheckout(context.Background(), user, cart)
	assert.NoError(t, err)
	assert.True(t, intent.Amount.Equal(decimal.RequireFromString("30.00")))

	// Client completes payment out of band; the provider now reports success.
	gateway.On("RetrieveIntent", mock.Anything, "pi_e2e").
		Return(&payment.PaymentIntent{ID: "pi_e2e", Status: payment.StatusSucceeded}, nil)
	orders.On("Save", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)
	publisher.On("Publish", mock.Anything, "order.paid", mock.Anything).Return(nil).Maybe()

	order, err := service.ConfirmCheckout(context.Background(), user, intent.PaymentIntentID, cart)

	assert.NoError(t, err)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("30.00")))
	assert.Equal(t, domain.StatusPaid, order.Status)
	assert.Equal(t, "u1", order.UserID)

	time.Sleep(100 * time.Millisecond)
	gateway.AssertExpectations(t)
	orders.AssertExpectations(t)
}
