package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/salespoint/checkout-api/internal/domain/entity"
)

// TaxRepository defines access to the tax-rate reference table
type TaxRepository interface {
	Create(ctx context.Context, tax *entity.Tax) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Tax, error)
	// GetByIDs retrieves multiple taxes in a single query
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Tax, error)
	List(ctx context.Context) ([]entity.Tax, error)
}

// CustomerRepository defines the customer lookups settlement needs
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
}
