package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/salespoint/checkout-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Draft is the durable, shareable snapshot of a cart awaiting settlement.
// While Pending its items are replaced wholesale on every save; once
// Completed it is immutable.
type Draft struct {
	ID              uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID         uuid.UUID        `gorm:"type:uuid;not null;index" json:"owner_id"`
	ReferenceNumber string           `gorm:"size:100;unique;not null" json:"reference_number"`
	Date            time.Time        `gorm:"type:date;not null" json:"date"`
	Status          enum.DraftStatus `gorm:"default:0" json:"status"`
	Note            *string          `gorm:"type:text" json:"note,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	DeletedAt       gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Items     []DraftItem     `gorm:"foreignKey:DraftID" json:"items,omitempty"`
	Documents []DraftDocument `gorm:"foreignKey:DraftID" json:"documents,omitempty"`
}

// BeforeCreate generates a UUID before creating a new draft
func (d *Draft) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Draft model
func (Draft) TableName() string {
	return "drafts"
}

// CartItems converts the stored item rows back into cart lines
func (d *Draft) CartItems() []CartItem {
	items := make([]CartItem, 0, len(d.Items))
	for _, row := range d.Items {
		items = append(items, CartItem{
			ProductID:      row.ProductID,
			ProductName:    row.ProductName,
			Quantity:       row.Quantity,
			UnitPrice:      row.UnitPrice,
			TaxIDs:         row.TaxIDs,
			DiscountType:   row.DiscountType,
			DiscountAmount: row.DiscountAmount,
			Description:    row.Description,
		})
	}
	return items
}

// DraftItem is one stored line of a draft, shaped like a CartItem with the
// product referenced by ID. The product snapshot fields are for display; the
// live product record is re-fetched for any stock decision.
type DraftItem struct {
	ID             uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	DraftID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"draft_id"`
	ProductID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName    string            `gorm:"size:255" json:"product_name"`
	Quantity       int               `gorm:"not null" json:"quantity"`
	UnitPrice      decimal.Decimal   `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	TaxIDs         UUIDSlice         `gorm:"type:text" json:"tax_ids"`
	DiscountType   enum.DiscountType `gorm:"default:0" json:"discount_type"`
	DiscountAmount decimal.Decimal   `gorm:"type:decimal(15,2);default:0" json:"discount_amount"`
	Description    *string           `gorm:"type:text" json:"description,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`

	// Relationships
	Draft Draft `gorm:"foreignKey:DraftID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new draft item
func (di *DraftItem) BeforeCreate(tx *gorm.DB) error {
	if di.ID == uuid.Nil {
		di.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DraftItem model
func (DraftItem) TableName() string {
	return "draft_items"
}

// DraftDocument is an opaque attachment descriptor. Upload and storage are a
// collaborator concern; only the pointer is kept here.
type DraftDocument struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	DraftID   uuid.UUID `gorm:"type:uuid;not null;index" json:"draft_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	URL       string    `gorm:"size:1024;not null" json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new draft document
func (dd *DraftDocument) BeforeCreate(tx *gorm.DB) error {
	if dd.ID == uuid.Nil {
		dd.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DraftDocument model
func (DraftDocument) TableName() string {
	return "draft_documents"
}
