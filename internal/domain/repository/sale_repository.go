package repository

import (
	"context"

	"github.com/salespoint/checkout-api/internal/domain/entity"
)

// SaleRepository writes the sale rows of a settlement. Rows are created as
// one batch sharing a reference number and never edited afterwards.
type SaleRepository interface {
	CreateBatch(ctx context.Context, sales []entity.Sale) error
	GetByReference(ctx context.Context, reference string) ([]entity.Sale, error)
}

// PaymentRepository writes the single payment record of a settlement
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByReference(ctx context.Context, reference string) (*entity.Payment, error)
}
