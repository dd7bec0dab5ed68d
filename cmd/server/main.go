package main

import (
	"context"
	"log"
	"os"
	"time"

	"storefront/internal/controllers/http"
	"storefront/internal/infra/mysql"
	"storefront/internal/infra/payment"
	"storefront/internal/infra/rabbitmq"
	"storefront/internal/metrics"
	mysqlrepo "storefront/internal/repository/mysql"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	db, err := mysql.NewMySQLFromEnv()
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	userRepo := mysqlrepo.NewUserRepository(db)
	productRepo := mysqlrepo.NewProductRepository(db)
	orderRepo := mysqlrepo.NewOrderRepository(db)
	suggestionRepo := mysqlrepo.NewSuggestionRepository(db)

	publisher, err := rabbitmq.NewPublisher(os.Getenv("RABBITMQ_URL"), "store.exchange")
	if err != nil {
		log.Fatalf("failed to init publisher: %v", err)
	}
	defer publisher.Close()

	paymentCfg := payment.ConfigFromEnv()
	gateway := payment.NewGateway(paymentCfg)

	pricing := services.NewPricingEngine(productRepo)
	auth := services.NewAuthService(userRepo, jwtSecretFromEnv())
	catalog := services.NewCatalogService(productRepo)
	orders := services.NewOrderService(pricing, orderRepo, publisher)
	checkout := services.NewCheckoutService(pricing, gateway, orderRepo, publisher)
	suggestions := services.NewSuggestionService(suggestionRepo)

	redisClient := redis.NewClient(&redis.Options{
		Addr:         os.Getenv("REDIS_HOST") + ":6379",
		DB:           0,
		PoolSize:     50,
		MinIdleConns: 10,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})

	catalog.SetRedisClient(redisClient)

	go func() {
		time.Sleep(5 * time.Second)
		ctx := context.Background()
		products, err := catalog.ListProducts(ctx)
		if err != nil {
			log.Printf("Failed to list products for cache warmup: %v", err)
			return
		}
		ids := make([]string, 0, len(products))
		for _, p := range products {
			ids = append(ids, p.ID)
		}
		if err := catalog.WarmupProductCache(ctx, ids); err != nil {
			log.Printf("Failed to warm up product cache: %v", err)
		} else {
			log.Println("Product cache warmed up successfully")
		}
	}()

	storeMetrics := metrics.NewStoreMetrics()

	handler := http.NewHandler(auth, catalog, orders, checkout, suggestions, redisClient, storeMetrics, paymentCfg.PublishableKey)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	handler.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting storefront service on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server run: %v", err)
	}
}

func jwtSecretFromEnv() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "wonderland-secret-key-2025"
	}
	return secret
}
