package repository

import (
	"context"

	"storefront/internal/domain"
)

type UserRepository interface {
	Save(ctx context.Context, user *domain.User) error
	// FindByEmail returns (nil, nil) when no user has this email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
