package repository

import (
	"context"

	"storefront/internal/domain"
)

type ProductRepository interface {
	Save(ctx context.Context, product *domain.Product) error
	// FindByID returns (nil, nil) when the product does not exist.
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	Count(ctx context.Context) (int64, error)
}
