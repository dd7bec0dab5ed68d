package services

import (
	"time"

	"storefront/internal/domain"

	"github.com/shopspring/decimal"
)

func CreateTestUser(id, email string) *domain.User {
	return &domain.User{
		ID:        id,
		Email:     email,
		FirstName: "Alice",
		LastName:  "Liddell",
		CreatedAt: time.Now(),
	}
}

func CreateTestProduct(id, name, price string) *domain.Product {
	return &domain.Product{
		ID:         id,
		Name:       name,
		Price:      decimal.RequireFromString(price),
		Category:   "Seasonal",
		Complexity: domain.ComplexityStandard,
		CreatedAt:  time.Now(),
	}
}

const (
	TestUserID    = "u1"
	TestUserEmail = "u1@example.com"
	TestProductID = "p1"
	TestIntentID  = "pi_123"
)
