package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salespoint/checkout-api/internal/domain/entity"
	"github.com/salespoint/checkout-api/internal/domain/enum"
	"github.com/salespoint/checkout-api/internal/domain/repository"
	"github.com/salespoint/checkout-api/pkg/apperror"
	"github.com/salespoint/checkout-api/pkg/pagination"
	"github.com/salespoint/checkout-api/pkg/refnum"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DraftService owns the draft lifecycle: Pending drafts may be saved,
// re-saved and deleted; the transition to Completed belongs to settlement
// and is terminal.
type DraftService struct {
	draftRepo       repository.DraftRepository
	draftItemRepo   repository.DraftItemRepository
	productRepo     repository.ProductRepository
	taxRepo         repository.TaxRepository
	validator       *StockValidator
	referencePrefix string
	logger          *zap.Logger
}

// NewDraftService creates a new draft service
func NewDraftService(
	draftRepo repository.DraftRepository,
	draftItemRepo repository.DraftItemRepository,
	productRepo repository.ProductRepository,
	taxRepo repository.TaxRepository,
	validator *StockValidator,
	referencePrefix string,
	logger *zap.Logger,
) *DraftService {
	if referencePrefix == "" {
		referencePrefix = refnum.DraftPrefix
	}
	return &DraftService{
		draftRepo:       draftRepo,
		draftItemRepo:   draftItemRepo,
		productRepo:     productRepo,
		taxRepo:         taxRepo,
		validator:       validator,
		referencePrefix: referencePrefix,
		logger:          logger,
	}
}

// DraftItemInput represents one line of a draft payload
type DraftItemInput struct {
	ProductID      uuid.UUID
	Quantity       int
	UnitPrice      *decimal.Decimal // nil means the product's selling price
	TaxIDs         []uuid.UUID
	DiscountType   enum.DiscountType
	DiscountAmount decimal.Decimal
	Description    *string
}

// DraftDocumentInput represents an attachment descriptor supplied by the
// upload collaborator
type DraftDocumentInput struct {
	Name string
	URL  string
}

// SaveDraftInput represents the input for creating or replacing a draft.
// Items are always the full list; saving never merges.
type SaveDraftInput struct {
	OwnerID         uuid.UUID
	ReferenceNumber *string // nil means generate one
	Date            time.Time
	Note            *string
	Items           []DraftItemInput
	Documents       []DraftDocumentInput
}

// CreateDraft persists a cart snapshot as a new pending draft. Stock must
// validate at save time; the reference number must be unique.
func (s *DraftService) CreateDraft(ctx context.Context, input *SaveDraftInput) (*entity.Draft, error) {
	items, err := s.resolveItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(ctx, items); err != nil {
		return nil, err
	}

	reference := refnum.Generate(s.referencePrefix)
	if input.ReferenceNumber != nil && *input.ReferenceNumber != "" {
		reference = *input.ReferenceNumber
	}
	existing, err := s.draftRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Reference number already in use")
	}

	draft := &entity.Draft{
		OwnerID:         input.OwnerID,
		ReferenceNumber: reference,
		Date:            input.Date,
		Status:          enum.DraftStatusPending,
		Note:            input.Note,
	}
	for _, doc := range input.Documents {
		draft.Documents = append(draft.Documents, entity.DraftDocument{Name: doc.Name, URL: doc.URL})
	}

	if err := s.draftRepo.Create(ctx, draft); err != nil {
		return nil, err
	}
	if err := s.draftItemRepo.CreateBatch(ctx, itemRows(draft.ID, items)); err != nil {
		return nil, err
	}

	s.logger.Info("draft created",
		zap.String("draft_id", draft.ID.String()),
		zap.String("reference", reference),
		zap.Int("items", len(items)),
	)
	return s.draftRepo.GetWithItems(ctx, draft.ID)
}

// UpdateDraft replaces a pending draft's contents wholesale. The caller
// supplies the full item list on every save; the reference number never
// changes.
func (s *DraftService) UpdateDraft(ctx context.Context, id uuid.UUID, input *SaveDraftInput) (*entity.Draft, error) {
	draft, err := s.draftRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, apperror.NewNotFoundError("Draft")
	}
	if draft.OwnerID != input.OwnerID {
		return nil, apperror.ErrForbidden
	}
	if draft.Status.IsTerminal() {
		return nil, apperror.NewBadRequestError("Completed drafts cannot be modified")
	}

	items, err := s.resolveItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(ctx, items); err != nil {
		return nil, err
	}

	draft.Date = input.Date
	draft.Note = input.Note
	if err := s.draftRepo.Update(ctx, draft); err != nil {
		return nil, err
	}

	if err := s.draftItemRepo.DeleteByDraftID(ctx, draft.ID); err != nil {
		return nil, err
	}
	if err := s.draftItemRepo.CreateBatch(ctx, itemRows(draft.ID, items)); err != nil {
		return nil, err
	}

	return s.draftRepo.GetWithItems(ctx, draft.ID)
}

// GetDraft retrieves a draft with its items and documents
func (s *DraftService) GetDraft(ctx context.Context, id uuid.UUID) (*entity.Draft, error) {
	draft, err := s.draftRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, apperror.NewNotFoundError("Draft")
	}
	return draft, nil
}

// ListDrafts lists an owner's drafts with filtering
func (s *DraftService) ListDrafts(ctx context.Context, ownerID uuid.UUID, params *repository.DraftFilterParams) (*pagination.PaginatedResult[entity.Draft], error) {
	drafts, total, err := s.draftRepo.List(ctx, ownerID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(drafts, pag), nil
}

// ListDraftsWithCursor lists an owner's drafts with cursor-based pagination
func (s *DraftService) ListDraftsWithCursor(ctx context.Context, ownerID uuid.UUID, params *repository.DraftCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Draft], error) {
	drafts, err := s.draftRepo.ListWithCursor(ctx, ownerID, params)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor.Cursor != ""

	cursorPag, items := pagination.NewCursorPagination(drafts, params.Cursor.Limit,
		func(d entity.Draft) string { return d.ID.String() },
		func(d entity.Draft) time.Time { return d.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// DeleteDraft deletes a draft. Only pending drafts may be deleted; a
// completed draft is the immutable record of a settled sale.
func (s *DraftService) DeleteDraft(ctx context.Context, ownerID, id uuid.UUID) error {
	draft, err := s.draftRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if draft == nil {
		return apperror.NewNotFoundError("Draft")
	}
	if draft.OwnerID != ownerID {
		return apperror.ErrForbidden
	}
	if draft.Status.IsTerminal() {
		return apperror.NewBadRequestError("Completed drafts cannot be deleted")
	}

	if err := s.draftItemRepo.DeleteByDraftID(ctx, id); err != nil {
		return err
	}
	return s.draftRepo.Delete(ctx, id)
}

// resolveItems validates the payload lines and snapshots product names and
// prices, exactly as the cart does on add
func (s *DraftService) resolveItems(ctx context.Context, inputs []DraftItemInput) ([]entity.CartItem, error) {
	if len(inputs) == 0 {
		return nil, apperror.NewBadRequestError("Draft must contain at least one item")
	}

	productIDs := make([]uuid.UUID, 0, len(inputs))
	seen := make(map[uuid.UUID]bool, len(inputs))
	for _, input := range inputs {
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
		if seen[input.ProductID] {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "items", Message: "duplicate product " + input.ProductID.String()},
			})
		}
		seen[input.ProductID] = true
		productIDs = append(productIDs, input.ProductID)
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	taxIDs := make([]uuid.UUID, 0)
	taxSeen := make(map[uuid.UUID]bool)
	for _, input := range inputs {
		for _, id := range input.TaxIDs {
			if !taxSeen[id] {
				taxSeen[id] = true
				taxIDs = append(taxIDs, id)
			}
		}
	}
	if len(taxIDs) > 0 {
		taxes, err := s.taxRepo.GetByIDs(ctx, taxIDs)
		if err != nil {
			return nil, err
		}
		if len(taxes) != len(taxIDs) {
			return nil, apperror.NewBadRequestError("One or more tax references do not exist")
		}
	}

	items := make([]entity.CartItem, 0, len(inputs))
	for _, input := range inputs {
		product, exists := productMap[input.ProductID]
		if !exists {
			return nil, apperror.NewNotFoundError("Product " + input.ProductID.String())
		}

		unitPrice := product.SellingPrice
		if input.UnitPrice != nil {
			unitPrice = *input.UnitPrice
		}
		items = append(items, entity.CartItem{
			ProductID:      product.ID,
			ProductName:    product.Name,
			Quantity:       input.Quantity,
			UnitPrice:      unitPrice,
			TaxIDs:         entity.UUIDSlice(input.TaxIDs),
			DiscountType:   input.DiscountType,
			DiscountAmount: input.DiscountAmount,
			Description:    input.Description,
		})
	}
	return items, nil
}

// itemRows converts cart lines into draft item rows
func itemRows(draftID uuid.UUID, items []entity.CartItem) []entity.DraftItem {
	rows := make([]entity.DraftItem, 0, len(items))
	for _, item := range items {
		rows = append(rows, entity.DraftItem{
			DraftID:        draftID,
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
			TaxIDs:         item.TaxIDs,
			DiscountType:   item.DiscountType,
			DiscountAmount: item.DiscountAmount,
			Description:    item.Description,
		})
	}
	return rows
}
