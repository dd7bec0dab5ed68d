package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	Category    string
	Complexity  string
}

// CatalogService serves product reads and writes. Reads for display go
// through a short-lived redis cache; checkout pricing bypasses this service
// entirely and reads the repository, so cached prices can never reach an
// order total.
type CatalogService struct {
	products    repository.ProductRepository
	redisClient *redis.Client
}

func NewCatalogService(products repository.ProductRepository) *CatalogService {
	return &CatalogService{products: products}
}

func (s *CatalogService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products.FindAll(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	cacheKey := fmt.Sprintf("product:%s", id)

	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var p domain.Product
			if err := json.Unmarshal([]byte(cached), &p); err == nil {
				return &p, nil
			}
		}
	}

	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, &PersistenceError{Err: err}
	}
	if p == nil {
		return nil, &ProductNotFoundError{ProductID: id}
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(p); err == nil {
			s.redisClient.Set(ctx, cacheKey, data, time.Minute)
		}
	}

	return p, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if input.Name == "" {
		return nil, &ValidationError{Detail: "product name is required"}
	}
	if input.Price.IsNegative() {
		return nil, &ValidationError{Detail: "product price must not be negative"}
	}

	complexity := input.Complexity
	if complexity == "" {
		complexity = domain.ComplexityStandard
	}

	product := &domain.Product{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		Category:    input.Category,
		Complexity:  complexity,
		CreatedAt:   time.Now(),
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, &PersistenceError{Err: err}
	}

	if s.redisClient != nil {
		s.redisClient.Del(ctx, "products:all")
	}

	return product, nil
}

// WarmupProductCache preloads the product cache with the given ids. Misses
// are logged and skipped.
func (s *CatalogService) WarmupProductCache(ctx context.Context, ids []string) error {
	if s.redisClient == nil {
		return nil
	}

	for _, id := range ids {
		p, err := s.products.FindByID(ctx, id)
		if err != nil {
			log.Printf("Failed to warm up cache for product %s: %v", id, err)
			continue
		}
		if p != nil {
			cacheKey := fmt.Sprintf("product:%s", id)
			if data, err := json.Marshal(p); err == nil {
				s.redisClient.Set(ctx, cacheKey, data, 5*time.Minute)
			}
		}
	}

	return nil
}

// SeedSampleData inserts the demo catalog once. Returns false when products
// already exist.
func (s *CatalogService) SeedSampleData(ctx context.Context) (bool, error) {
	count, err := s.products.Count(ctx)
	if err != nil {
		return false, &PersistenceError{Err: err}
	}
	if count > 0 {
		return false, nil
	}

	samples := []ProductInput{
		{
			Name:        "Floral Dream Overlay",
			Description: "Beautiful cottage core overlay with delicate florals and whimsical design. Perfect for cozy streaming sessions. Features latest followers, newest subscribers, and integrated chat display.",
			Price:       decimal.NewFromFloat(15.00),
			ImageURL:    "/images/floral-dream-overlay.svg",
			Category:    "Cottage Core",
			Complexity:  domain.ComplexityStandard,
		},
		{
			Name:        "Spooky Halloween Overlay",
			Description: "Enchanting Halloween stream overlay with mystical elements, perfect for October streams. Features spooky decorations, autumn colors, and ghostly charm. Includes subscriber alerts and chat integration.",
			Price:       decimal.NewFromFloat(20.00),
			ImageURL:    "/images/spooky-halloween-overlay.svg",
			Category:    "Halloween",
			Complexity:  domain.ComplexityComplex,
		},
		{
			Name:        "Autumn Magic Overlay",
			Description: "Magical autumn-themed overlay with vibrant fall colors and mystical elements. Perfect for cozy autumn streaming sessions. Features animated leaves and warm seasonal vibes with all essential stream widgets.",
			Price:       decimal.NewFromFloat(25.00),
			ImageURL:    "/images/autumn-magic-overlay.svg",
			Category:    "Seasonal",
			Complexity:  domain.ComplexityPremium,
		},
	}

	for _, sample := range samples {
		if _, err := s.CreateProduct(ctx, sample); err != nil {
			return false, err
		}
	}

	return true, nil
}
