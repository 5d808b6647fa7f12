package repository

import (
	"sync"

	"github.com/google/uuid"
	"github.com/salespoint/checkout-api/internal/domain/entity"
	domainRepo "github.com/salespoint/checkout-api/internal/domain/repository"
)

type inMemoryCartStore struct {
	mu    sync.RWMutex
	carts map[uuid.UUID]*entity.Cart
}

// NewInMemoryCartStore creates the process-local cart store. Carts are an
// editing convenience; losing the process loses nothing that a pending draft
// does not hold.
func NewInMemoryCartStore() domainRepo.CartStore {
	return &inMemoryCartStore{carts: make(map[uuid.UUID]*entity.Cart)}
}

func (s *inMemoryCartStore) Get(ownerID uuid.UUID) *entity.Cart {
	s.mu.RLock()
	cart, ok := s.carts[ownerID]
	s.mu.RUnlock()
	if ok {
		return cart.Clone()
	}
	return entity.NewCart(ownerID)
}

func (s *inMemoryCartStore) Save(cart *entity.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[cart.OwnerID] = cart.Clone()
}

func (s *inMemoryCartStore) Delete(ownerID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, ownerID)
}
