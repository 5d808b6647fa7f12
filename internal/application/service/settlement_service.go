package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salespoint/checkout-api/internal/domain/entity"
	"github.com/salespoint/checkout-api/internal/domain/enum"
	"github.com/salespoint/checkout-api/internal/domain/repository"
	"github.com/salespoint/checkout-api/pkg/apperror"
	"github.com/salespoint/checkout-api/pkg/refnum"
	"go.uber.org/zap"
)

// SettlementService converts a cart or a pending draft into sale and payment
// records. The write sequence is ordered so that every failure mode leaves
// the system in a known state: nothing written, fully compensated, or
// partially written with an error that names exactly how far it got.
type SettlementService struct {
	store           repository.CartStore
	productRepo     repository.ProductRepository
	taxRepo         repository.TaxRepository
	draftRepo       repository.DraftRepository
	saleRepo        repository.SaleRepository
	paymentRepo     repository.PaymentRepository
	customerRepo    repository.CustomerRepository
	validator       *StockValidator
	referencePrefix string
	logger          *zap.Logger
}

// NewSettlementService creates a new settlement service
func NewSettlementService(
	store repository.CartStore,
	productRepo repository.ProductRepository,
	taxRepo repository.TaxRepository,
	draftRepo repository.DraftRepository,
	saleRepo repository.SaleRepository,
	paymentRepo repository.PaymentRepository,
	customerRepo repository.CustomerRepository,
	validator *StockValidator,
	referencePrefix string,
	logger *zap.Logger,
) *SettlementService {
	if referencePrefix == "" {
		referencePrefix = refnum.SalePrefix
	}
	return &SettlementService{
		store:           store,
		productRepo:     productRepo,
		taxRepo:         taxRepo,
		draftRepo:       draftRepo,
		saleRepo:        saleRepo,
		paymentRepo:     paymentRepo,
		customerRepo:    customerRepo,
		validator:       validator,
		referencePrefix: referencePrefix,
		logger:          logger,
	}
}

// SettleInput represents the input for settling a sale
type SettleInput struct {
	OwnerID       uuid.UUID
	DraftID       *uuid.UUID // nil settles the live cart
	CustomerID    *uuid.UUID
	PaymentMethod string
	Date          time.Time
}

// SettlementResult is what a successful settlement hands back
type SettlementResult struct {
	ReferenceNumber string           `json:"reference_number"`
	Sales           []entity.Sale    `json:"sales"`
	Payment         *entity.Payment  `json:"payment"`
	Totals          *TotalsBreakdown `json:"totals"`
}

// Settle runs the full checkout pipeline: validate stock, freeze the totals,
// decrement inventory atomically, write the sale lines, write the payment,
// complete the source draft if there was one, and clear the cart.
//
// The stock validation up front is advisory; the atomic decrement is the
// write that actually claims the inventory, and it is the last point at
// which the settlement can fail without leaving records behind. A sale batch
// failure is compensated by re-incrementing stock. A payment or draft status
// failure after the sale rows exist surfaces as a PartialSettlementError;
// those are never retried here because the sale already committed.
func (s *SettlementService) Settle(ctx context.Context, input *SettleInput) (*SettlementResult, error) {
	if input.PaymentMethod == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "payment_method", Message: "is required"},
		})
	}
	if input.Date.IsZero() {
		input.Date = time.Now()
	}
	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}

	items, draft, err := s.sourceItems(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(ctx, items); err != nil {
		return nil, err
	}

	taxTable, err := loadTaxTable(ctx, s.taxRepo, items)
	if err != nil {
		return nil, err
	}
	totals, err := ComputeTotals(items, taxTable)
	if err != nil {
		return nil, err
	}

	if err := s.claimStock(ctx, items); err != nil {
		return nil, err
	}

	reference := refnum.Generate(s.referencePrefix)
	sales := make([]entity.Sale, 0, len(items))
	for _, item := range items {
		sales = append(sales, entity.Sale{
			ReferenceNumber: reference,
			ProductID:       item.ProductID,
			CustomerID:      input.CustomerID,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			TaxIDs:          item.TaxIDs,
			DiscountType:    item.DiscountType,
			DiscountAmount:  item.DiscountAmount,
			PaymentMethod:   input.PaymentMethod,
			Date:            input.Date,
		})
	}

	if err := s.saleRepo.CreateBatch(ctx, sales); err != nil {
		s.compensateStock(ctx, reference, items)
		return nil, err
	}

	payment := &entity.Payment{
		ReferenceNumber: reference,
		CustomerID:      input.CustomerID,
		Amount:          totals.GrandTotal,
		Method:          input.PaymentMethod,
		Date:            input.Date,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		s.logger.Error("payment write failed after sale committed",
			zap.String("reference", reference),
			zap.Error(err),
		)
		return nil, apperror.NewPartialSettlementError(reference, apperror.PhaseSaleCreated, err)
	}

	if draft != nil {
		if err := s.draftRepo.UpdateStatus(ctx, draft.ID, enum.DraftStatusCompleted); err != nil {
			s.logger.Error("draft status update failed after settlement committed",
				zap.String("reference", reference),
				zap.String("draft_id", draft.ID.String()),
				zap.Error(err),
			)
			return nil, apperror.NewPartialSettlementError(reference, apperror.PhaseStatusPending, err)
		}
	}

	s.store.Delete(input.OwnerID)

	s.logger.Info("settlement completed",
		zap.String("reference", reference),
		zap.Int("lines", len(sales)),
		zap.String("grand_total", totals.GrandTotal.StringFixed(2)),
	)

	result := &SettlementResult{
		ReferenceNumber: reference,
		Sales:           sales,
		Payment:         payment,
		Totals:          totals,
	}
	fetched, err := s.saleRepo.GetByReference(ctx, reference)
	if err == nil && len(fetched) > 0 {
		result.Sales = fetched
	}
	return result, nil
}

// GetSale returns the sale lines recorded under a reference number
func (s *SettlementService) GetSale(ctx context.Context, reference string) ([]entity.Sale, error) {
	sales, err := s.saleRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return nil, apperror.NewNotFoundError("Sale " + reference)
	}
	return sales, nil
}

// GetPayment returns the payment recorded under a reference number
func (s *SettlementService) GetPayment(ctx context.Context, reference string) (*entity.Payment, error) {
	payment, err := s.paymentRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment " + reference)
	}
	return payment, nil
}

// sourceItems resolves what is being settled: the lines of one of the
// owner's pending drafts, or the live cart
func (s *SettlementService) sourceItems(ctx context.Context, input *SettleInput) ([]entity.CartItem, *entity.Draft, error) {
	if input.DraftID == nil {
		cart := s.store.Get(input.OwnerID)
		if cart.IsEmpty() {
			return nil, nil, apperror.NewBadRequestError("Cart is empty")
		}
		return cart.Items, nil, nil
	}

	draft, err := s.draftRepo.GetWithItems(ctx, *input.DraftID)
	if err != nil {
		return nil, nil, err
	}
	if draft == nil {
		return nil, nil, apperror.NewNotFoundError("Draft")
	}
	if draft.OwnerID != input.OwnerID {
		return nil, nil, apperror.ErrForbidden
	}
	if draft.Status.IsTerminal() {
		return nil, nil, apperror.NewBadRequestError("Draft has already been settled")
	}
	items := draft.CartItems()
	if len(items) == 0 {
		return nil, nil, apperror.NewBadRequestError("Draft has no items")
	}
	return items, draft, nil
}

// claimStock decrements inventory for every line in one transaction. On a
// shortfall it reports the first failing line in cart order so the caller
// sees the same error shape the advisory check produces.
func (s *SettlementService) claimStock(ctx context.Context, items []entity.CartItem) error {
	decrements := make(map[uuid.UUID]int, len(items))
	for _, item := range items {
		decrements[item.ProductID] = item.Quantity
	}

	failedIDs, err := s.productRepo.AtomicDecrementBatch(ctx, decrements)
	if err != nil {
		return err
	}
	if len(failedIDs) == 0 {
		return nil
	}

	failed := make(map[uuid.UUID]bool, len(failedIDs))
	for _, id := range failedIDs {
		failed[id] = true
	}
	for _, item := range items {
		if !failed[item.ProductID] {
			continue
		}
		available := 0
		if product, perr := s.productRepo.GetByID(ctx, item.ProductID); perr == nil && product != nil {
			available = product.Quantity
		}
		return apperror.NewStockError(item.ProductID.String(), item.ProductName, item.Quantity, available)
	}
	return apperror.NewConflictError("Insufficient stock")
}

// compensateStock undoes a claimStock after a later write failed. A failure
// here is logged loudly; the reference number is the reconciliation handle.
func (s *SettlementService) compensateStock(ctx context.Context, reference string, items []entity.CartItem) {
	increments := make(map[uuid.UUID]int, len(items))
	for _, item := range items {
		increments[item.ProductID] = item.Quantity
	}
	if err := s.productRepo.AtomicIncrementBatch(ctx, increments); err != nil {
		s.logger.Error("stock compensation failed",
			zap.String("reference", reference),
			zap.Error(err),
		)
	}
}
