package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/salespoint/checkout-api/internal/domain/entity"
	"github.com/salespoint/checkout-api/internal/domain/enum"
	"github.com/salespoint/checkout-api/internal/domain/repository"
	"github.com/salespoint/checkout-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartService owns the mutation API of the working cart. All access to a
// cart goes through it; no other code touches the store.
type CartService struct {
	store       repository.CartStore
	productRepo repository.ProductRepository
	taxRepo     repository.TaxRepository
	draftRepo   repository.DraftRepository
	validator   *StockValidator
	logger      *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(
	store repository.CartStore,
	productRepo repository.ProductRepository,
	taxRepo repository.TaxRepository,
	draftRepo repository.DraftRepository,
	validator *StockValidator,
	logger *zap.Logger,
) *CartService {
	return &CartService{
		store:       store,
		productRepo: productRepo,
		taxRepo:     taxRepo,
		draftRepo:   draftRepo,
		validator:   validator,
		logger:      logger,
	}
}

// AddItemInput represents the input for adding a cart line
type AddItemInput struct {
	ProductID      uuid.UUID
	Quantity       int
	UnitPrice      *decimal.Decimal // nil means the product's selling price
	TaxIDs         []uuid.UUID
	DiscountType   enum.DiscountType
	DiscountAmount decimal.Decimal
	Description    *string
}

// AddItem adds a line to the owner's cart. Adding a product that is already
// in the cart merges: quantity is summed, every other field takes the newly
// supplied value.
func (s *CartService) AddItem(ctx context.Context, ownerID uuid.UUID, input *AddItemInput) (*entity.Cart, error) {
	if input.Quantity <= 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "quantity", Message: "must be greater than zero"},
		})
	}
	if err := validateDiscount(input.DiscountType, input.DiscountAmount); err != nil {
		return nil, err
	}
	if err := validateTaxIDs(input.TaxIDs); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	// Every referenced tax must exist in the reference table
	if len(input.TaxIDs) > 0 {
		taxes, err := s.taxRepo.GetByIDs(ctx, input.TaxIDs)
		if err != nil {
			return nil, err
		}
		if len(taxes) != len(input.TaxIDs) {
			return nil, apperror.NewBadRequestError("One or more tax references do not exist")
		}
	}

	unitPrice := product.SellingPrice
	if input.UnitPrice != nil {
		unitPrice = *input.UnitPrice
	}

	cart := s.store.Get(ownerID)
	cart.Upsert(entity.CartItem{
		ProductID:      product.ID,
		ProductName:    product.Name,
		Quantity:       input.Quantity,
		UnitPrice:      unitPrice,
		TaxIDs:         entity.UUIDSlice(input.TaxIDs),
		DiscountType:   input.DiscountType,
		DiscountAmount: input.DiscountAmount,
		Description:    input.Description,
	})
	s.store.Save(cart)

	s.logger.Debug("cart item added",
		zap.String("owner_id", ownerID.String()),
		zap.String("product_id", product.ID.String()),
		zap.Int("quantity", input.Quantity),
	)
	return cart, nil
}

// UpdateQuantity sets the quantity of an existing line. Negative quantities
// are rejected with no mutation. Zero is accepted and keeps the line in the
// cart; removal is always an explicit RemoveItem call.
func (s *CartService) UpdateQuantity(ctx context.Context, ownerID, productID uuid.UUID, quantity int) (*entity.Cart, error) {
	if quantity < 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "quantity", Message: "must not be negative"},
		})
	}

	cart := s.store.Get(ownerID)
	item := cart.Find(productID)
	if item == nil {
		return nil, apperror.NewNotFoundError("Cart item")
	}

	item.Quantity = quantity
	s.store.Save(cart)
	return cart, nil
}

// RemoveItem deletes the line for the given product
func (s *CartService) RemoveItem(ctx context.Context, ownerID, productID uuid.UUID) (*entity.Cart, error) {
	cart := s.store.Get(ownerID)
	if !cart.Remove(productID) {
		return nil, apperror.NewNotFoundError("Cart item")
	}
	s.store.Save(cart)
	return cart, nil
}

// Clear removes every line from the owner's cart
func (s *CartService) Clear(ctx context.Context, ownerID uuid.UUID) error {
	cart := s.store.Get(ownerID)
	cart.Clear()
	s.store.Save(cart)
	return nil
}

// Get returns the owner's cart
func (s *CartService) Get(ctx context.Context, ownerID uuid.UUID) (*entity.Cart, error) {
	return s.store.Get(ownerID), nil
}

// Totals recomputes the cart's money figures from the current lines and the
// tax table
func (s *CartService) Totals(ctx context.Context, ownerID uuid.UUID) (*TotalsBreakdown, error) {
	cart := s.store.Get(ownerID)
	taxTable, err := loadTaxTable(ctx, s.taxRepo, cart.Items)
	if err != nil {
		return nil, err
	}
	return ComputeTotals(cart.Items, taxTable)
}

// ValidateStock checks the current cart against live stock. Advisory only:
// passing here promises nothing about stock at settlement time.
func (s *CartService) ValidateStock(ctx context.Context, ownerID uuid.UUID) error {
	cart := s.store.Get(ownerID)
	if cart.IsEmpty() {
		return apperror.NewBadRequestError("Cart is empty")
	}
	return s.validator.Validate(ctx, cart.Items)
}

// LoadFromDraft replaces the owner's cart with the stored lines of one of
// their pending drafts
func (s *CartService) LoadFromDraft(ctx context.Context, ownerID, draftID uuid.UUID) (*entity.Cart, error) {
	draft, err := s.draftRepo.GetWithItems(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, apperror.NewNotFoundError("Draft")
	}
	if draft.OwnerID != ownerID {
		return nil, apperror.ErrForbidden
	}
	if draft.Status.IsTerminal() {
		return nil, apperror.NewBadRequestError("Completed drafts cannot be edited")
	}

	cart := entity.NewCart(ownerID)
	for _, item := range draft.CartItems() {
		cart.Upsert(item)
	}
	s.store.Save(cart)

	s.logger.Debug("cart rehydrated from draft",
		zap.String("owner_id", ownerID.String()),
		zap.String("draft_id", draftID.String()),
		zap.Int("items", len(cart.Items)),
	)
	return cart, nil
}

// loadTaxTable fetches every tax referenced by the given lines
func loadTaxTable(ctx context.Context, taxRepo repository.TaxRepository, items []entity.CartItem) (map[uuid.UUID]entity.Tax, error) {
	seen := make(map[uuid.UUID]bool)
	ids := make([]uuid.UUID, 0)
	for _, item := range items {
		for _, id := range item.TaxIDs {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return map[uuid.UUID]entity.Tax{}, nil
	}

	taxes, err := taxRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	table := make(map[uuid.UUID]entity.Tax, len(taxes))
	for _, tax := range taxes {
		table[tax.ID] = tax
	}
	return table, nil
}

// validateDiscount enforces the discount invariants: percentages live in
// [0,100], fixed amounts must not be negative
func validateDiscount(discountType enum.DiscountType, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: "discount_amount", Message: "must not be negative"},
		})
	}
	if discountType == enum.DiscountTypePercentage && amount.GreaterThan(oneHundred) {
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: "discount_amount", Message: "percentage discount must not exceed 100"},
		})
	}
	return nil
}

// validateTaxIDs rejects duplicate tax references on one line
func validateTaxIDs(taxIDs []uuid.UUID) error {
	seen := make(map[uuid.UUID]bool, len(taxIDs))
	for _, id := range taxIDs {
		if seen[id] {
			return apperror.NewValidationError([]apperror.FieldError{
				{Field: "tax_ids", Message: fmt.Sprintf("duplicate tax reference %s", id)},
			})
		}
		seen[id] = true
	}
	return nil
}
