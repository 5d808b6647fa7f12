package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/salespoint/checkout-api/internal/config"
	domainRepo "github.com/salespoint/checkout-api/internal/domain/repository"
	"github.com/salespoint/checkout-api/internal/presentation/http/handler"
	"github.com/salespoint/checkout-api/internal/presentation/http/middleware"
	"github.com/salespoint/checkout-api/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Product    *handler.ProductHandler
	Tax        *handler.TaxHandler
	Cart       *handler.CartHandler
	Draft      *handler.DraftHandler
	Settlement *handler.SettlementHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Logger          *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// All checkout routes require authentication
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Products
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/:id", h.Product.Get)
	}

	// Taxes
	taxes := protected.Group("/taxes")
	{
		taxes.GET("", h.Tax.List)
		taxes.POST("", h.Tax.Create)
		taxes.GET("/:id", h.Tax.Get)
	}

	// Cart
	cart := protected.Group("/cart")
	{
		cart.GET("", h.Cart.Get)
		cart.POST("/items", h.Cart.AddItem)
		cart.PUT("/items/:productId", h.Cart.UpdateItem)
		cart.DELETE("/items/:productId", h.Cart.RemoveItem)
		cart.DELETE("", h.Cart.Clear)
		cart.GET("/totals", h.Cart.Totals)
		cart.POST("/validate-stock", h.Cart.ValidateStock)
		cart.POST("/load-draft/:id", h.Cart.LoadDraft)
	}

	// Drafts
	drafts := protected.Group("/drafts")
	{
		drafts.GET("", h.Draft.List)
		drafts.POST("", h.Draft.Create)
		drafts.GET("/:id", h.Draft.Get)
		drafts.PUT("/:id", h.Draft.Update)
		drafts.DELETE("/:id", h.Draft.Delete)
	}

	// Settlement. The idempotency key requirement makes retried settlements
	// replay the recorded response instead of selling twice.
	idempotencyConfig := middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}
	protected.POST("/settlements", middleware.IdempotencyRequired(idempotencyConfig), h.Settlement.Settle)
	protected.GET("/sales/:reference", h.Settlement.GetSale)
	protected.GET("/payments/:reference", h.Settlement.GetPayment)
}
