package service

import (
	"context"
	"sync"

	"github.com/salespoint/checkout-api/internal/domain/entity"
	"github.com/salespoint/checkout-api/internal/domain/repository"
	"github.com/salespoint/checkout-api/pkg/apperror"
	"go.uber.org/zap"
)

// StockValidator checks cart lines against live stock. The reads are issued
// as one concurrent batch and joined before any result is reported; when
// several lines are short at once, the first by input order wins, so the
// reported error does not depend on goroutine scheduling.
//
// The check is advisory. Nothing holds stock between a passing validation
// and a later settlement; the settlement path relies on the repository's
// atomic decrement-with-check instead.
type StockValidator struct {
	productRepo repository.ProductRepository
	logger      *zap.Logger
}

// NewStockValidator creates a new stock validator
func NewStockValidator(productRepo repository.ProductRepository, logger *zap.Logger) *StockValidator {
	return &StockValidator{productRepo: productRepo, logger: logger}
}

type stockRead struct {
	product *entity.Product
	err     error
}

// Validate fans out one stock read per line, waits for all of them, and
// fails on the first line (in input order) whose available stock cannot
// cover the requested quantity.
func (v *StockValidator) Validate(ctx context.Context, items []entity.CartItem) error {
	if len(items) == 0 {
		return nil
	}

	reads := make([]stockRead, len(items))
	var wg sync.WaitGroup
	for i := range items {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			product, err := v.productRepo.GetByID(ctx, items[i].ProductID)
			reads[i] = stockRead{product: product, err: err}
		}(i)
	}
	wg.Wait()

	for i, item := range items {
		read := reads[i]
		if read.err != nil {
			return read.err
		}
		if read.product == nil {
			return apperror.NewNotFoundError("Product " + item.ProductID.String())
		}
		if read.product.Quantity < item.Quantity {
			v.logger.Info("stock validation failed",
				zap.String("product_id", item.ProductID.String()),
				zap.Int("required", item.Quantity),
				zap.Int("available", read.product.Quantity),
			)
			return apperror.NewStockError(
				read.product.ID.String(),
				read.product.Name,
				item.Quantity,
				read.product.Quantity,
			)
		}
	}
	return nil
}
