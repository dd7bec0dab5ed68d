package services

import (
	"context"
	"log"
	"time"

	"storefront/internal/domain"
	rabbit "storefront/internal/infra/rabbitmq"
	"storefront/internal/repository"

	"github.com/google/uuid"
)

// OrderService handles plain (unpaid) order creation and order reads.
// Totals are always computed server-side from the catalog.
type OrderService struct {
	pricing   *PricingEngine
	orders    repository.OrderRepository
	publisher rabbit.PublisherInterface
}

func NewOrderService(pricing *PricingEngine, orders repository.OrderRepository, publisher rabbit.PublisherInterface) *OrderService {
	return &OrderService{
		pricing:   pricing,
		orders:    orders,
		publisher: publisher,
	}
}

func (s *OrderService) CreateOrder(ctx context.Context, user *domain.User, items []domain.CartItem) (*domain.Order, error) {
	quote, err := s.pricing.Price(ctx, items)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		Items:       items,
		TotalAmount: quote.Total,
		Status:      domain.StatusPending,
		CreatedAt:   time.Now(),
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, &PersistenceError{Err: err}
	}

	go s.publishOrderCreatedEvent(context.Background(), order)

	return order, nil
}

func (s *OrderService) publishOrderCreatedEvent(ctx context.Context, order *domain.Order) {
	evt := domain.OrderCreatedEvent{
		OrderID:     order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		CreatedAt:   order.CreatedAt,
	}

	if err := s.publisher.Publish(ctx, "order.created", evt); err != nil {
		log.Printf("Failed to publish order.created event: %v", err)
	}
}

// GetOrder only ever returns orders owned by user.
func (s *OrderService) GetOrder(ctx context.Context, user *domain.User, orderID string) (*domain.Order, error) {
	o, err := s.orders.FindByID(ctx, orderID, user.ID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (s *OrderService) ListOrders(ctx context.Context, user *domain.User) ([]domain.Order, error) {
	return s.orders.FindByUser(ctx, user.ID)
}
