package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/salespoint/checkout-api/internal/domain/entity"
	"github.com/salespoint/checkout-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestStockValidator_AllLinesCovered(t *testing.T) {
	p1 := &entity.Product{ID: uuid.New(), Name: "Coffee", Quantity: 10}
	p2 := &entity.Product{ID: uuid.New(), Name: "Tea", Quantity: 4}
	validator := NewStockValidator(newFakeProductRepo(p1, p2), zaptest.NewLogger(t))

	err := validator.Validate(context.Background(), []entity.CartItem{
		{ProductID: p1.ID, Quantity: 5},
		{ProductID: p2.ID, Quantity: 4},
	})
	require.NoError(t, err)
}

func TestStockValidator_ReportsShortfallWithCounts(t *testing.T) {
	product := &entity.Product{ID: uuid.New(), Name: "Coffee", Quantity: 3}
	validator := NewStockValidator(newFakeProductRepo(product), zaptest.NewLogger(t))

	err := validator.Validate(context.Background(), []entity.CartItem{
		{ProductID: product.ID, Quantity: 5},
	})
	require.Error(t, err)

	var stockErr *apperror.StockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 5, stockErr.Required)
	assert.Equal(t, 3, stockErr.Available)
	assert.Equal(t, "Insufficient stock for Coffee. Required: 5, Available: 3", err.Error())
}

func TestStockValidator_FirstShortLineByInputOrderWins(t *testing.T) {
	p1 := &entity.Product{ID: uuid.New(), Name: "First", Quantity: 0}
	p2 := &entity.Product{ID: uuid.New(), Name: "Second", Quantity: 0}
	validator := NewStockValidator(newFakeProductRepo(p1, p2), zaptest.NewLogger(t))

	// Both lines are short; the error must name the first line regardless of
	// which read returned first.
	for i := 0; i < 20; i++ {
		err := validator.Validate(context.Background(), []entity.CartItem{
			{ProductID: p1.ID, Quantity: 1},
			{ProductID: p2.ID, Quantity: 1},
		})
		var stockErr *apperror.StockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, "First", stockErr.ProductName)
	}
}

func TestStockValidator_UnknownProduct(t *testing.T) {
	validator := NewStockValidator(newFakeProductRepo(), zaptest.NewLogger(t))

	err := validator.Validate(context.Background(), []entity.CartItem{
		{ProductID: uuid.New(), Quantity: 1},
	})
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, 404, appErr.Code)
}

func TestStockValidator_EmptyInput(t *testing.T) {
	validator := NewStockValidator(newFakeProductRepo(), zaptest.NewLogger(t))
	require.NoError(t, validator.Validate(context.Background(), nil))
}
