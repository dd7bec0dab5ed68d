package http

import (
	"time"

	"storefront/internal/domain"

	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
	}
}

type CartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	Items []CartItemRequest `json:"items" binding:"required,min=1,dive"`
}

type CheckoutIntentRequest struct {
	Items []CartItemRequest `json:"items" binding:"required,min=1,dive"`
}

type CheckoutIntentResponse struct {
	ClientSecret    string          `json:"client_secret"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentIntentID string          `json:"payment_intent_id"`
}

type ConfirmCheckoutRequest struct {
	PaymentIntentID string            `json:"payment_intent_id" binding:"required"`
	Items           []CartItemRequest `json:"items" binding:"required,min=1,dive"`
}

type ConfirmCheckoutResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"order_id"`
	Message string `json:"message"`
}

type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	ImageURL    string          `json:"image_url"`
	Category    string          `json:"category"`
	Complexity  string          `json:"complexity"`
}

type SuggestionRequest struct {
	SuggestionText string `json:"suggestion_text" binding:"required"`
	Category       string `json:"category"`
	BudgetRange    string `json:"budget_range"`
}

func toCartItems(items []CartItemRequest) []domain.CartItem {
	out := make([]domain.CartItem, len(items))
	for i, item := range items {
		out[i] = domain.CartItem{ProductID: item.ProductID, Quantity: item.Quantity}
	}
	return out
}
