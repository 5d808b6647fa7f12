package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/salespoint/checkout-api/internal/application/service"
	"github.com/salespoint/checkout-api/internal/config"
	"github.com/salespoint/checkout-api/internal/infrastructure/database"
	"github.com/salespoint/checkout-api/internal/infrastructure/repository"
	"github.com/salespoint/checkout-api/internal/presentation/http/handler"
	"github.com/salespoint/checkout-api/internal/presentation/http/routes"
	"github.com/salespoint/checkout-api/pkg/logger"
	"github.com/salespoint/checkout-api/pkg/retry"
	"github.com/salespoint/checkout-api/pkg/utils"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zapLogger, err := logger.New(cfg.App.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database, retrying while it comes up
	var db *gorm.DB
	err = retry.DefaultPolicy().Do(context.Background(), func(ctx context.Context) error {
		var dbErr error
		db, dbErr = database.NewPostgresDB(&cfg.Database)
		return dbErr
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	taxRepo := repository.NewTaxRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	draftRepo := repository.NewDraftRepository(db)
	draftItemRepo := repository.NewDraftItemRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	cartStore := repository.NewInMemoryCartStore()

	// Initialize services
	stockValidator := service.NewStockValidator(productRepo, zapLogger)
	productService := service.NewProductService(productRepo, zapLogger)
	taxService := service.NewTaxService(taxRepo, zapLogger)
	cartService := service.NewCartService(cartStore, productRepo, taxRepo, draftRepo, stockValidator, zapLogger)
	draftService := service.NewDraftService(draftRepo, draftItemRepo, productRepo, taxRepo, stockValidator, cfg.Checkout.DraftReferencePrefix, zapLogger)
	settlementService := service.NewSettlementService(cartStore, productRepo, taxRepo, draftRepo, saleRepo, paymentRepo, customerRepo, stockValidator, cfg.Checkout.SaleReferencePrefix, zapLogger)

	// Initialize handlers
	handlers := &routes.Handlers{
		Product:    handler.NewProductHandler(productService),
		Tax:        handler.NewTaxHandler(taxService),
		Cart:       handler.NewCartHandler(cartService),
		Draft:      handler.NewDraftHandler(draftService),
		Settlement: handler.NewSettlementHandler(settlementService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Logger:          zapLogger,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
