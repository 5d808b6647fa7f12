package entity

import (
	"github.com/google/uuid"
	"github.com/salespoint/checkout-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// CartItem is one line of a working cart. Prices and the product name are a
// snapshot taken when the line was added; stock is always re-read from the
// product record, never from the snapshot.
type CartItem struct {
	ProductID      uuid.UUID         `json:"product_id"`
	ProductName    string            `json:"product_name"`
	Quantity       int               `json:"quantity"`
	UnitPrice      decimal.Decimal   `json:"unit_price"`
	TaxIDs         UUIDSlice         `json:"tax_ids"`
	DiscountType   enum.DiscountType `json:"discount_type"`
	DiscountAmount decimal.Decimal   `json:"discount_amount"`
	Description    *string           `json:"description,omitempty"`
}

// Cart is the transient editing buffer of one checkout session. It is keyed
// by owner and holds at most one line per product. The durable representation
// of a cart is a Draft; the cart itself is never the system of record.
type Cart struct {
	OwnerID uuid.UUID  `json:"owner_id"`
	Items   []CartItem `json:"items"`
}

// NewCart creates an empty cart for the given owner
func NewCart(ownerID uuid.UUID) *Cart {
	return &Cart{OwnerID: ownerID, Items: []CartItem{}}
}

// Find returns the line for the given product, or nil
func (c *Cart) Find(productID uuid.UUID) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// Upsert adds the line, or merges it into an existing line for the same
// product: quantity is summed, every other field takes the new value.
func (c *Cart) Upsert(item CartItem) {
	if existing := c.Find(item.ProductID); existing != nil {
		item.Quantity += existing.Quantity
		*existing = item
		return
	}
	c.Items = append(c.Items, item)
}

// Remove deletes the line for the given product. It reports whether a line
// was actually removed.
func (c *Cart) Remove(productID uuid.UUID) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes every line
func (c *Cart) Clear() {
	c.Items = []CartItem{}
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Clone returns a deep copy so callers can hand carts across goroutines
// without sharing the underlying slices.
func (c *Cart) Clone() *Cart {
	clone := &Cart{OwnerID: c.OwnerID, Items: make([]CartItem, len(c.Items))}
	copy(clone.Items, c.Items)
	for i := range clone.Items {
		taxIDs := make(UUIDSlice, len(c.Items[i].TaxIDs))
		copy(taxIDs, c.Items[i].TaxIDs)
		clone.Items[i].TaxIDs = taxIDs
	}
	return clone
}
