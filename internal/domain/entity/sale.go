package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/salespoint/checkout-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sale is one settled line item. A settlement writes one Sale row per cart
// line, all sharing a reference number, and never edits them afterwards.
type Sale struct {
	ID              uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	ReferenceNumber string            `gorm:"size:100;not null;index" json:"reference_number"`
	ProductID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"product_id"`
	CustomerID      *uuid.UUID        `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Quantity        int               `gorm:"not null" json:"quantity"`
	UnitPrice       decimal.Decimal   `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	TaxIDs          UUIDSlice         `gorm:"type:text" json:"tax_ids"`
	DiscountType    enum.DiscountType `gorm:"default:0" json:"discount_type"`
	DiscountAmount  decimal.Decimal   `gorm:"type:decimal(15,2);default:0" json:"discount_amount"`
	PaymentMethod   string            `gorm:"size:50" json:"payment_method"`
	Date            time.Time         `gorm:"type:date;not null" json:"date"`
	CreatedAt       time.Time         `json:"created_at"`

	// Relationships
	Product  Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}
