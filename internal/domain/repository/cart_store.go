package repository

import (
	"github.com/google/uuid"
	"github.com/salespoint/checkout-api/internal/domain/entity"
)

// CartStore holds the transient editing buffers, one cart per owner. It is a
// convenience cache, not a system of record: a lost cart is recoverable from
// its draft. Implementations must be safe for concurrent use because many
// sessions share one store, but a single cart always has a single owner.
type CartStore interface {
	// Get returns the owner's cart, creating an empty one if absent
	Get(ownerID uuid.UUID) *entity.Cart
	Save(cart *entity.Cart)
	Delete(ownerID uuid.UUID)
}
