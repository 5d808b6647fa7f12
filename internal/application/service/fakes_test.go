package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/salespoint/checkout-api/internal/domain/entity"
	"github.com/salespoint/checkout-api/internal/domain/enum"
	"github.com/salespoint/checkout-api/internal/domain/repository"
)

// In-memory repository fakes for service tests. They mirror the semantics of
// the gorm implementations closely enough for pipeline behavior: conditional
// decrements, all-or-nothing batch rollback, nil for not-found.

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*entity.Product
	getErr   error
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
	for _, p := range products {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		repo.products[p.ID] = p
	}
	return repo
}

func (r *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	product, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	copied := *product
	return &copied, nil
}

func (r *fakeProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Product
	for _, id := range ids {
		if product, ok := r.products[id]; ok {
			out = append(out, *product)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, product := range r.products {
		if product.Code == code {
			copied := *product
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) List(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Product
	for _, product := range r.products {
		out = append(out, *product)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var failedIDs []uuid.UUID
	for id, amount := range decrements {
		product, ok := r.products[id]
		if !ok || product.Quantity < amount {
			failedIDs = append(failedIDs, id)
		}
	}
	if len(failedIDs) > 0 {
		return failedIDs, nil
	}
	for id, amount := range decrements {
		r.products[id].Quantity -= amount
	}
	return nil, nil
}

func (r *fakeProductRepo) AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, amount := range increments {
		if product, ok := r.products[id]; ok {
			product.Quantity += amount
		}
	}
	return nil
}

type fakeTaxRepo struct {
	taxes map[uuid.UUID]entity.Tax
}

func newFakeTaxRepo(taxes ...entity.Tax) *fakeTaxRepo {
	repo := &fakeTaxRepo{taxes: make(map[uuid.UUID]entity.Tax)}
	for _, tax := range taxes {
		repo.taxes[tax.ID] = tax
	}
	return repo
}

func (r *fakeTaxRepo) Create(ctx context.Context, tax *entity.Tax) error {
	if tax.ID == uuid.Nil {
		tax.ID = uuid.New()
	}
	r.taxes[tax.ID] = *tax
	return nil
}

func (r *fakeTaxRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Tax, error) {
	tax, ok := r.taxes[id]
	if !ok {
		return nil, nil
	}
	return &tax, nil
}

func (r *fakeTaxRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Tax, error) {
	var out []entity.Tax
	for _, id := range ids {
		if tax, ok := r.taxes[id]; ok {
			out = append(out, tax)
		}
	}
	return out, nil
}

func (r *fakeTaxRepo) List(ctx context.Context) ([]entity.Tax, error) {
	var out []entity.Tax
	for _, tax := range r.taxes {
		out = append(out, tax)
	}
	return out, nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]entity.Customer
}

func newFakeCustomerRepo(customers ...entity.Customer) *fakeCustomerRepo {
	repo := &fakeCustomerRepo{customers: make(map[uuid.UUID]entity.Customer)}
	for _, customer := range customers {
		repo.customers[customer.ID] = customer
	}
	return repo
}

func (r *fakeCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	r.customers[customer.ID] = *customer
	return nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	return &customer, nil
}

type fakeDraftRepo struct {
	mu              sync.Mutex
	drafts          map[uuid.UUID]*entity.Draft
	items           *fakeDraftItemRepo
	updateStatusErr error
}

func newFakeDraftRepo(items *fakeDraftItemRepo) *fakeDraftRepo {
	return &fakeDraftRepo{drafts: make(map[uuid.UUID]*entity.Draft), items: items}
}

func (r *fakeDraftRepo) Create(ctx context.Context, draft *entity.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if draft.ID == uuid.Nil {
		draft.ID = uuid.New()
	}
	copied := *draft
	r.drafts[draft.ID] = &copied
	return nil
}

func (r *fakeDraftRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	draft, ok := r.drafts[id]
	if !ok {
		return nil, nil
	}
	copied := *draft
	return &copied, nil
}

func (r *fakeDraftRepo) GetByReference(ctx context.Context, reference string) (*entity.Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, draft := range r.drafts {
		if draft.ReferenceNumber == reference {
			copied := *draft
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeDraftRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Draft, error) {
	draft, err := r.GetByID(ctx, id)
	if err != nil || draft == nil {
		return draft, err
	}
	items, _ := r.items.GetByDraftID(ctx, id)
	draft.Items = items
	return draft, nil
}

func (r *fakeDraftRepo) Update(ctx context.Context, draft *entity.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *draft
	r.drafts[draft.ID] = &copied
	return nil
}

func (r *fakeDraftRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.DraftStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateStatusErr != nil {
		return r.updateStatusErr
	}
	draft, ok := r.drafts[id]
	if !ok {
		return errors.New("draft not found")
	}
	draft.Status = status
	return nil
}

func (r *fakeDraftRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drafts, id)
	return nil
}

func (r *fakeDraftRepo) List(ctx context.Context, ownerID uuid.UUID, params *repository.DraftFilterParams) ([]entity.Draft, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Draft
	for _, draft := range r.drafts {
		if draft.OwnerID == ownerID {
			out = append(out, *draft)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeDraftRepo) ListWithCursor(ctx context.Context, ownerID uuid.UUID, params *repository.DraftCursorFilterParams) ([]entity.Draft, error) {
	drafts, _, err := r.List(ctx, ownerID, nil)
	return drafts, err
}

type fakeDraftItemRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID][]entity.DraftItem
}

func newFakeDraftItemRepo() *fakeDraftItemRepo {
	return &fakeDraftItemRepo{rows: make(map[uuid.UUID][]entity.DraftItem)}
}

func (r *fakeDraftItemRepo) CreateBatch(ctx context.Context, items []entity.DraftItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		r.rows[item.DraftID] = append(r.rows[item.DraftID], item)
	}
	return nil
}

func (r *fakeDraftItemRepo) GetByDraftID(ctx context.Context, draftID uuid.UUID) ([]entity.DraftItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.DraftItem(nil), r.rows[draftID]...), nil
}

func (r *fakeDraftItemRepo) DeleteByDraftID(ctx context.Context, draftID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, draftID)
	return nil
}

type fakeSaleRepo struct {
	mu        sync.Mutex
	sales     []entity.Sale
	createErr error
}

func (r *fakeSaleRepo) CreateBatch(ctx context.Context, sales []entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.sales = append(r.sales, sales...)
	return nil
}

func (r *fakeSaleRepo) GetByReference(ctx context.Context, reference string) ([]entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Sale
	for _, sale := range r.sales {
		if sale.ReferenceNumber == reference {
			out = append(out, sale)
		}
	}
	return out, nil
}

type fakePaymentRepo struct {
	mu        sync.Mutex
	payments  []entity.Payment
	createErr error
}

func (r *fakePaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.payments = append(r.payments, *payment)
	return nil
}

func (r *fakePaymentRepo) GetByReference(ctx context.Context, reference string) (*entity.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.payments {
		if r.payments[i].ReferenceNumber == reference {
			copied := r.payments[i]
			return &copied, nil
		}
	}
	return nil, nil
}

// fakeCartStore is a plain map-backed store; the production in-memory store
// adds locking and defensive copies the tests don't need
type fakeCartStore struct {
	carts map[uuid.UUID]*entity.Cart
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{carts: make(map[uuid.UUID]*entity.Cart)}
}

func (s *fakeCartStore) Get(ownerID uuid.UUID) *entity.Cart {
	if cart, ok := s.carts[ownerID]; ok {
		return cart
	}
	cart := entity.NewCart(ownerID)
	s.carts[ownerID] = cart
	return cart
}

func (s *fakeCartStore) Save(cart *entity.Cart) {
	s.carts[cart.OwnerID] = cart
}

func (s *fakeCartStore) Delete(ownerID uuid.UUID) {
	delete(s.carts, ownerID)
}
