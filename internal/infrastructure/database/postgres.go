package database

import (
	"fmt"
	"log"

	"github.com/salespoint/checkout-api/internal/config"
	"github.com/salespoint/checkout-api/internal/domain/entity"
	"github.com/salespoint/checkout-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Catalog entities
		&entity.Product{},
		&entity.Tax{},
		&entity.Customer{},

		// Checkout entities
		&entity.Draft{},
		&entity.DraftItem{},
		&entity.DraftDocument{},
		&entity.Sale{},
		&entity.Payment{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the tax table with a standard rate pair so a fresh
// install can price carts immediately
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	taxes := []entity.Tax{
		{Name: "VAT", Rate: decimal.NewFromInt(16), Type: enum.TaxTypeExclusive},
		{Name: "VAT (Inclusive)", Rate: decimal.NewFromInt(16), Type: enum.TaxTypeInclusive},
	}

	for i := range taxes {
		var existing entity.Tax
		if err := db.Where("name = ?", taxes[i].Name).First(&existing).Error; err != nil {
			if err := db.Create(&taxes[i]).Error; err != nil {
				log.Printf("Warning: failed to create tax %s: %v", taxes[i].Name, err)
			}
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
