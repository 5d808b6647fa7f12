package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddCartItemRequest represents a cart line add/merge request
type AddCartItemRequest struct {
	ProductID      uuid.UUID        `json:"product_id" binding:"required"`
	Quantity       int              `json:"quantity" binding:"required,min=1"`
	UnitPrice      *decimal.Decimal `json:"unit_price"` // defaults to the product's selling price
	TaxIDs         []uuid.UUID      `json:"tax_ids"`
	DiscountType   int              `json:"discount_type" binding:"min=0,max=1"`
	DiscountAmount decimal.Decimal  `json:"discount_amount"`
	Description    *string          `json:"description"`
}

// UpdateCartItemRequest represents a quantity change for an existing line
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required,min=0"`
}
