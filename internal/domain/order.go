package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPaid      OrderStatus = "paid"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// CartItem is transient: it only ever exists embedded in an Order or in a
// checkout request, never as its own row.
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Order is append-only. Items are serialized into a single JSON column so
// every order stays one self-contained row.
type Order struct {
	ID               string          `json:"id" gorm:"primaryKey;size:36"`
	UserID           string          `json:"user_id" gorm:"size:36;index;not null"`
	Items            []CartItem      `json:"items" gorm:"serializer:json"`
	TotalAmount      decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	Status           OrderStatus     `json:"status" gorm:"type:enum('pending','paid','completed','cancelled');default:'pending'"`
	PaymentReference string          `json:"payment_reference,omitempty" gorm:"size:64;index"`
	CreatedAt        time.Time       `json:"created_at" gorm:"autoCreateTime"`
}
