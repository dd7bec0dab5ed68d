package mysql

import (
	"context"
	"log"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"gorm.io/gorm"
)

type suggestionRepo struct {
	db *gorm.DB
}

func NewSuggestionRepository(db *gorm.DB) repository.SuggestionRepository {
	return &suggestionRepo{db: db}
}

func (r *suggestionRepo) Save(ctx context.Context, suggestion *domain.ProductSuggestion) error {
	if err := r.db.WithContext(ctx).Create(suggestion).Error; err != nil {
		log.Printf("suggestion save error: %v", err)
		return err
	}
	return nil
}

func (r *suggestionRepo) FindByUser(ctx context.Context, userID string) ([]domain.ProductSuggestion, error) {
	var out []domain.ProductSuggestion
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&out).Error
	if err != nil {
		log.Printf("suggestion FindByUser error: %v", err)
		return nil, err
	}
	return out, nil
}
