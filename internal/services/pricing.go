package services

import (
	"context"
	"fmt"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// pricingConcurrency bounds parallel catalog lookups for one quote.
const pricingConcurrency = 4

type PricedItem struct {
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
}

type Quote struct {
	Total decimal.Decimal
	Lines []PricedItem
}

// PricingEngine resolves canonical catalog prices. It reads the repository
// directly, never a cache, so a quote always reflects the catalog as of now.
type PricingEngine struct {
	products repository.ProductRepository
}

func NewPricingEngine(products repository.ProductRepository) *PricingEngine {
	return &PricingEngine{products: products}
}

// Price resolves every item or fails as a whole; there is no partial total.
// Line order follows cart order.
func (e *PricingEngine) Price(ctx context.Context, items []domain.CartItem) (*Quote, error) {
	if len(items) == 0 {
		return nil, &ValidationError{Detail: "cart is empty"}
	}
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, &ValidationError{Detail: fmt.Sprintf("invalid quantity %d for product %s", item.Quantity, item.ProductID)}
		}
	}

	lines := make([]PricedItem, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(pricingConcurrency)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			product, err := e.products.FindByID(gctx, item.ProductID)
			if err != nil {
				return &PersistenceError{Err: err}
			}
			if product == nil {
				return &ProductNotFoundError{ProductID: item.ProductID}
			}
			lines[i] = PricedItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: product.Price,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	return &Quote{Total: total, Lines: lines}, nil
}

// MinorUnits converts a dollar total to cents, rounding to nearest once on
// the final total rather than per line.
func MinorUnits(total decimal.Decimal) int64 {
	return total.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
