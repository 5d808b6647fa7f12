package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/salespoint/checkout-api/internal/domain/entity"
	"github.com/salespoint/checkout-api/internal/domain/repository"
	"github.com/salespoint/checkout-api/pkg/apperror"
	"go.uber.org/zap"
)

// TaxService handles the tax-rate reference table
type TaxService struct {
	taxRepo repository.TaxRepository
	logger  *zap.Logger
}

// NewTaxService creates a new tax service
func NewTaxService(taxRepo repository.TaxRepository, logger *zap.Logger) *TaxService {
	return &TaxService{taxRepo: taxRepo, logger: logger}
}

// CreateTax registers a new tax rate
func (s *TaxService) CreateTax(ctx context.Context, tax *entity.Tax) (*entity.Tax, error) {
	if tax.Rate.IsNegative() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "rate", Message: "must not be negative"},
		})
	}
	if err := s.taxRepo.Create(ctx, tax); err != nil {
		return nil, err
	}
	s.logger.Info("tax created",
		zap.String("tax_id", tax.ID.String()),
		zap.String("name", tax.Name),
	)
	return tax, nil
}

// GetTax retrieves a tax by ID
func (s *TaxService) GetTax(ctx context.Context, id uuid.UUID) (*entity.Tax, error) {
	tax, err := s.taxRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tax == nil {
		return nil, apperror.NewNotFoundError("Tax")
	}
	return tax, nil
}

// ListTaxes lists every configured tax
func (s *TaxService) ListTaxes(ctx context.Context) ([]entity.Tax, error) {
	return s.taxRepo.List(ctx)
}
