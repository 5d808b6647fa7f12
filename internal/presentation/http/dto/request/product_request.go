package request

import "github.com/shopspring/decimal"

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Name          string          `json:"name" binding:"required,min=2,max=255"`
	Code          string          `json:"code" binding:"required,max=100"`
	Quantity      int             `json:"quantity" binding:"min=0"`
	QuantityAlert int             `json:"quantity_alert" binding:"min=0"`
	BuyingPrice   decimal.Decimal `json:"buying_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	Notes         *string         `json:"notes"`
}

// CreateTaxRequest represents a tax creation request
type CreateTaxRequest struct {
	Name string          `json:"name" binding:"required,min=1,max=100"`
	Rate decimal.Decimal `json:"rate"`
	Type int             `json:"type" binding:"min=0,max=1"`
}
