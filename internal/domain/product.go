package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Complexity tiers for products.
const (
	ComplexityStandard = "Standard"
	ComplexityComplex  = "Complex"
	ComplexityPremium  = "Premium"
)

// Product price is whatever the catalog holds right now; there is no price
// versioning. Checkout always reads the current value.
type Product struct {
	ID          string          `json:"id" gorm:"primaryKey;size:36"`
	Name        string          `json:"name" gorm:"size:255;not null"`
	Description string          `json:"description" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	ImageURL    string          `json:"image_url" gorm:"type:mediumtext"`
	Category    string          `json:"category" gorm:"size:100;index"`
	Complexity  string          `json:"complexity" gorm:"size:32;default:'Standard'"`
	CreatedAt   time.Time       `json:"created_at" gorm:"autoCreateTime"`
}
