package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderCreatedEvent struct {
	OrderID     string          `json:"orderId"`
	UserID      string          `json:"userId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type OrderPaidEvent struct {
	OrderID          string          `json:"orderId"`
	UserID           string          `json:"userId"`
	PaymentReference string          `json:"paymentReference"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	CreatedAt        time.Time       `json:"createdAt"`
}
