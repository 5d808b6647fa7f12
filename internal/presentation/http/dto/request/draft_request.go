package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DraftItemRequest represents one line of a draft save payload
type DraftItemRequest struct {
	ProductID      uuid.UUID        `json:"product_id" binding:"required"`
	Quantity       int              `json:"quantity" binding:"required,min=1"`
	UnitPrice      *decimal.Decimal `json:"unit_price"`
	TaxIDs         []uuid.UUID      `json:"tax_ids"`
	DiscountType   int              `json:"discount_type" binding:"min=0,max=1"`
	DiscountAmount decimal.Decimal  `json:"discount_amount"`
	Description    *string          `json:"description"`
}

// DraftDocumentRequest represents an attachment descriptor
type DraftDocumentRequest struct {
	Name string `json:"name" binding:"required,max=255"`
	URL  string `json:"url" binding:"required,max=1024"`
}

// SaveDraftRequest represents a draft create or replace request. Items are
// the full list; saving replaces, never merges.
type SaveDraftRequest struct {
	ReferenceNumber *string                `json:"reference_number" binding:"omitempty,max=100"`
	Date            string                 `json:"date" binding:"omitempty"` // YYYY-MM-DD, defaults to today
	Note            *string                `json:"note"`
	Items           []DraftItemRequest     `json:"items" binding:"required,min=1,dive"`
	Documents       []DraftDocumentRequest `json:"documents" binding:"omitempty,dive"`
}
