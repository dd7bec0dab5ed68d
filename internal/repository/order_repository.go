package repository

import (
	"context"

	"storefront/internal/domain"
)

type OrderRepository interface {
	Save(ctx context.Context, order *domain.Order) error
	// FindByID returns (nil, nil) when no order with this id belongs to userID.
	FindByID(ctx context.Context, id, userID string) (*domain.Order, error)
	FindByUser(ctx context.Context, userID string) ([]domain.Order, error)
}
