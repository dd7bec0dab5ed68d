package services

import (
	"context"
	"log"
	"time"

	"storefront/internal/domain"
	"storefront/internal/infra/payment"
	rabbit "storefront/internal/infra/rabbitmq"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	currencyUSD     = "usd"
	providerTimeout = 10 * time.Second
)

// CheckoutIntent is what the client needs to complete payment out of band.
type CheckoutIntent struct {
	PaymentIntentID string
	ClientSecret    string
	Amount          decimal.Decimal
}

// CheckoutService coordinates pricing, the payment provider and the order
// store. It holds no state between the two phases: the provider's intent
// status and the order store are the only sources of truth, so BeginCheckout
// and ConfirmCheckout may run on different instances.
type CheckoutService struct {
	pricing   *PricingEngine
	gateway   payment.GatewayInterface
	orders    repository.OrderRepository
	publisher rabbit.PublisherInterface
}

func NewCheckoutService(pricing *PricingEngine, gateway payment.GatewayInterface, orders repository.OrderRepository, publisher rabbit.PublisherInterface) *CheckoutService {
	return &CheckoutService{
		pricing:   pricing,
		gateway:   gateway,
		orders:    orders,
		publisher: publisher,
	}
}

// BeginCheckout prices the cart and opens a payment intent for the total.
// Nothing is persisted: either the intent comes back or the whole call
// failed. The client-supplied items are priced server-side; no amount from
// the client is ever trusted.
func (s *CheckoutService) BeginCheckout(ctx context.Context, user *domain.User, items []domain.CartItem) (*CheckoutIntent, error) {
	quote, err := s.pricing.Price(ctx, items)
	if err != nil {
		return nil, err
	}

	cctx, cancel := context.WithTimeout(ctx, providerTimeout)
	defer cancel()

	intent, err := s.gateway.CreateIntent(cctx, MinorUnits(quote.Total), currencyUSD, payment.IntentMetadata{
		UserID:    user.ID,
		UserEmail: user.Email,
		ItemCount: len(items),
	})
	if err != nil {
		return nil, &PaymentProviderError{Err: err}
	}

	return &CheckoutIntent{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		Amount:          quote.Total,
	}, nil
}

// ConfirmCheckout re-derives everything BeginCheckout established: it asks
// the provider for the intent's current status and re-prices the items
// against the current catalog. The amount the intent was created for plays
// no part in the persisted total.
//
// Confirms are not deduplicated: retrying a succeeded intent creates another
// order.
func (s *CheckoutService) ConfirmCheckout(ctx context.Context, user *domain.User, intentID string, items []domain.CartItem) (*domain.Order, error) {
	if intentID == "" {
		return nil, &ValidationError{Detail: "payment_intent_id is required"}
	}

	cctx, cancel := context.WithTimeout(ctx, providerTimeout)
	defer cancel()

	intent, err := s.gateway.RetrieveIntent(cctx, intentID)
	if err != nil {
		return nil, &PaymentProviderError{Err: err}
	}
	if intent.Status != payment.StatusSucceeded {
		return nil, ErrPaymentNotCompleted
	}

	quote, err := s.pricing.Price(ctx, items)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:               uuid.NewString(),
		UserID:           user.ID,
		Items:            items,
		TotalAmount:      quote.Total,
		Status:           domain.StatusPaid,
		PaymentReference: intentID,
		CreatedAt:        time.Now(),
	}

	if err := s.orders.Save(ctx, order); err != nil {
		// The charge went through but nothing was recorded; the caller
		// sees a hard error and reconciliation happens out of band.
		return nil, &PersistenceError{Err: err}
	}

	go s.publishOrderPaidEvent(context.Background(), order)

	return order, nil
}

func (s *CheckoutService) publishOrderPaidEvent(ctx context.Context, order *domain.Order) {
	evt := domain.OrderPaidEvent{
		OrderID:          order.ID,
		UserID:           order.UserID,
		PaymentReference: order.PaymentReference,
		TotalAmount:      order.TotalAmount,
		CreatedAt:        order.CreatedAt,
	}

	if err := s.publisher.Publish(ctx, "order.paid", evt); err != nil {
		log.Printf("Failed to publish order.paid event: %v", err)
	}
}
