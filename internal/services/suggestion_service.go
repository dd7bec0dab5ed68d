package services

import (
	"context"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/google/uuid"
)

type SuggestionService struct {
	suggestions repository.SuggestionRepository
}

func NewSuggestionService(suggestions repository.SuggestionRepository) *SuggestionService {
	return &SuggestionService{suggestions: suggestions}
}

func (s *SuggestionService) CreateSuggestion(ctx context.Context, user *domain.User, text, category, budgetRange string) (*domain.ProductSuggestion, error) {
	if text == "" {
		return nil, &ValidationError{Detail: "suggestion_text is required"}
	}

	suggestion := &domain.ProductSuggestion{
		ID:             uuid.NewString(),
		UserID:         user.ID,
		SuggestionText: text,
		Category:       category,
		BudgetRange:    budgetRange,
		CreatedAt:      time.Now(),
	}

	if err := s.suggestions.Save(ctx, suggestion); err != nil {
		return nil, &PersistenceError{Err: err}
	}
	return suggestion, nil
}

func (s *SuggestionService) ListSuggestions(ctx context.Context, user *domain.User) ([]domain.ProductSuggestion, error) {
	return s.suggestions.FindByUser(ctx, user.ID)
}
