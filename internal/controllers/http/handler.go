package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"storefront/internal/domain"
	"storefront/internal/metrics"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

type Handler struct {
	auth           *services.AuthService
	catalog        *services.CatalogService
	orders         *services.OrderService
	checkout       *services.CheckoutService
	suggestions    *services.SuggestionService
	rdb            *redis.Client
	metrics        *metrics.StoreMetrics
	publishableKey string
}

func NewHandler(
	auth *services.AuthService,
	catalog *services.CatalogService,
	orders *services.OrderService,
	checkout *services.CheckoutService,
	suggestions *services.SuggestionService,
	rdb *redis.Client,
	m *metrics.StoreMetrics,
	publishableKey string,
) *Handler {
	return &Handler{
		auth:           auth,
		catalog:        catalog,
		orders:         orders,
		checkout:       checkout,
		suggestions:    suggestions,
		rdb:            rdb,
		metrics:        m,
		publishableKey: publishableKey,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.GET("/auth/me", h.RequireAuth(), h.Me)

	r.GET("/products", h.GetProducts)
	r.GET("/products/:id", h.GetProduct)
	r.POST("/products", h.CreateProduct)
	r.POST("/init-data", h.InitData)

	r.POST("/orders", h.RequireAuth(), h.CreateOrder)
	r.GET("/orders", h.RequireAuth(), h.ListOrders)
	r.GET("/orders/:id", h.RequireAuth(), h.GetOrder)

	r.POST("/suggestions", h.RequireAuth(), h.CreateSuggestion)
	r.GET("/suggestions", h.RequireAuth(), h.ListSuggestions)

	r.POST("/checkout/intent", h.RequireAuth(), h.CreateCheckoutIntent)
	r.POST("/checkout/confirm", h.RequireAuth(), h.ConfirmCheckout)
	r.GET("/checkout/config", h.CheckoutConfig)
}

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to Wonderland Stores API!"})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "message": "Wonderland API is running!"})
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
			return
		}
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewUserResponse(user))
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user":         NewUserResponse(user),
	})
}

func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, NewUserResponse(currentUser(c)))
}

func (h *Handler) GetProducts(c *gin.Context) {
	ctx := c.Request.Context()
	cacheKey := "products:all"

	if h.rdb != nil {
		if b, err := h.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var products []domain.Product
			if err := json.Unmarshal([]byte(b), &products); err == nil {
				c.JSON(http.StatusOK, products)
				return
			}
		}
	}

	products, err := h.catalog.ListProducts(ctx)
	if err != nil {
		h.renderError(c, err)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}

	if h.rdb != nil {
		if data, err := json.Marshal(products); err == nil {
			h.rdb.Set(ctx, cacheKey, data, 10*time.Second)
		}
	}

	c.JSON(http.StatusOK, products)
}

func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), services.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Complexity:  req.Complexity,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	if h.rdb != nil {
		h.rdb.Del(context.Background(), "products:all")
	}

	c.JSON(http.StatusCreated, product)
}

func (h *Handler) InitData(c *gin.Context) {
	created, err := h.catalog.SeedSampleData(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	if !created {
		c.JSON(http.StatusOK, gin.H{"message": "Sample data already exists"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sample data initialized successfully"})
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), currentUser(c), toCartItems(req.Items))
	if err != nil {
		h.renderError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.OrdersCreated.Inc()
	}

	c.JSON(http.StatusCreated, order)
}

func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.orders.ListOrders(c.Request.Context(), currentUser(c))
	if err != nil {
		h.renderError(c, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.orders.GetOrder(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) CreateSuggestion(c *gin.Context) {
	var req SuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	suggestion, err := h.suggestions.CreateSuggestion(c.Request.Context(), currentUser(c), req.SuggestionText, req.Category, req.BudgetRange)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, suggestion)
}

func (h *Handler) ListSuggestions(c *gin.Context) {
	suggestions, err := h.suggestions.ListSuggestions(c.Request.Context(), currentUser(c))
	if err != nil {
		h.renderError(c, err)
		return
	}
	if suggestions == nil {
		suggestions = []domain.ProductSuggestion{}
	}
	c.JSON(http.StatusOK, suggestions)
}

func (h *Handler) CreateCheckoutIntent(c *gin.Context) {
	var req CheckoutIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	intent, err := h.checkout.BeginCheckout(c.Request.Context(), currentUser(c), toCartItems(req.Items))
	if err != nil {
		h.renderError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.IntentsCreated.Inc()
	}

	c.JSON(http.StatusOK, CheckoutIntentResponse{
		ClientSecret:    intent.ClientSecret,
		Amount:          intent.Amount,
		PaymentIntentID: intent.PaymentIntentID,
	})
}

func (h *Handler) ConfirmCheckout(c *gin.Context) {
	var req ConfirmCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.checkout.ConfirmCheckout(c.Request.Context(), currentUser(c), req.PaymentIntentID, toCartItems(req.Items))
	if err != nil {
		h.renderError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.PaymentsConfirmed.Inc()
	}

	c.JSON(http.StatusOK, ConfirmCheckoutResponse{
		Success: true,
		OrderID: order.ID,
		Message: "Payment successful! Your order has been placed.",
	})
}

func (h *Handler) CheckoutConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"publishable_key": h.publishableKey})
}

// renderError maps the service error taxonomy onto HTTP statuses. Responses
// carry a human-readable message only; provider internals stay in the logs.
func (h *Handler) renderError(c *gin.Context, err error) {
	var notFound *services.ProductNotFoundError
	var validation *services.ValidationError
	var provider *services.PaymentProviderError
	var persistence *services.PersistenceError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
	case errors.As(err, &provider):
		c.JSON(http.StatusBadRequest, gin.H{"error": provider.Error()})
	case errors.Is(err, services.ErrPaymentNotCompleted):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment not successful"})
	case errors.Is(err, services.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	case errors.As(err, &persistence):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
