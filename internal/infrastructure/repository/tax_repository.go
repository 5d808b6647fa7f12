package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/salespoint/checkout-api/internal/domain/entity"
	domainRepo "github.com/salespoint/checkout-api/internal/domain/repository"
	"gorm.io/gorm"
)

type taxRepository struct {
	db *gorm.DB
}

// NewTaxRepository creates a new tax repository
func NewTaxRepository(db *gorm.DB) domainRepo.TaxRepository {
	return &taxRepository{db: db}
}

func (r *taxRepository) Create(ctx context.Context, tax *entity.Tax) error {
	return r.db.WithContext(ctx).Create(tax).Error
}

func (r *taxRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Tax, error) {
	var tax entity.Tax
	err := r.db.WithContext(ctx).First(&tax, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &tax, err
}

// GetByIDs retrieves multiple taxes by their IDs in a single query
func (r *taxRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Tax, error) {
	if len(ids) == 0 {
		return []entity.Tax{}, nil
	}
	var taxes []entity.Tax
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&taxes).Error
	return taxes, err
}

func (r *taxRepository) List(ctx context.Context) ([]entity.Tax, error) {
	var taxes []entity.Tax
	err := r.db.WithContext(ctx).Order("name ASC").Find(&taxes).Error
	return taxes, err
}

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}
