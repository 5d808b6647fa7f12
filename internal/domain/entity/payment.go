package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment is the single payment record of a settlement. Amount equals the
// cart's grand total at settlement time; the reference number joins it to
// the sale rows it pays for.
type Payment struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ReferenceNumber string          `gorm:"size:100;unique;not null" json:"reference_number"`
	CustomerID      *uuid.UUID      `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Method          string          `gorm:"size:50;not null" json:"method"`
	Date            time.Time       `gorm:"type:date;not null" json:"date"`
	CreatedAt       time.Time       `json:"created_at"`

	// Relationships
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
