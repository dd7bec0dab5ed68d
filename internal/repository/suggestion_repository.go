package repository

import (
	"context"

	"storefront/internal/domain"
)

type SuggestionRepository interface {
	Save(ctx context.Context, suggestion *domain.ProductSuggestion) error
	FindByUser(ctx context.Context, userID string) ([]domain.ProductSuggestion, error)
}
