package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/salespoint/checkout-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Tax is an immutable tax-rate reference row. Rate is a percentage.
type Tax struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name      string          `gorm:"size:100;unique;not null" json:"name"`
	Rate      decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"rate"`
	Type      enum.TaxType    `gorm:"default:0" json:"type"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new tax
func (t *Tax) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Tax model
func (Tax) TableName() string {
	return "taxes"
}
