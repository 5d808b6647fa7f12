package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salespoint/checkout-api/internal/domain/entity"
	"github.com/salespoint/checkout-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type draftFixture struct {
	service   *DraftService
	products  *fakeProductRepo
	taxes     *fakeTaxRepo
	drafts    *fakeDraftRepo
	draftRows *fakeDraftItemRepo
	owner     uuid.UUID
}

func newDraftFixture(t *testing.T, products ...*entity.Product) *draftFixture {
	productRepo := newFakeProductRepo(products...)
	taxRepo := newFakeTaxRepo()
	draftRows := newFakeDraftItemRepo()
	draftRepo := newFakeDraftRepo(draftRows)
	logger := zaptest.NewLogger(t)
	validator := NewStockValidator(productRepo, logger)

	return &draftFixture{
		service:   NewDraftService(draftRepo, draftRows, productRepo, taxRepo, validator, "DFT", logger),
		products:  productRepo,
		taxes:     taxRepo,
		drafts:    draftRepo,
		draftRows: draftRows,
		owner:     uuid.New(),
	}
}

func draftItems(product *entity.Product, quantity int) []DraftItemInput {
	return []DraftItemInput{{ProductID: product.ID, Quantity: quantity}}
}

func TestDraftService_CreateGeneratesReference(t *testing.T) {
	product := &entity.Product{ID: uuid.New(), Name: "Coffee", Quantity: 10, SellingPrice: dec("4.50")}
	f := newDraftFixture(t, product)

	draft, err := f.service.CreateDraft(context.Background(), &SaveDraftInput{
		OwnerID: f.owner,
		Date:    time.Now(),
		Items:   draftItems(product, 2),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(draft.ReferenceNumber, "DFT-"), "reference %s", draft.ReferenceNumber)
	assert.Equal(t, enum.DraftStatusPending, draft.Status)
	require.Len(t, draft.Items, 1)
	assert.Equal(t, "Coffee", draft.Items[0].ProductName)
	assert.True(t, draft.Items[0].UnitPrice.Equal(dec("4.50")))
}

func TestDraftService_CreateRespectsSuppliedReference(t *testing.T) {
	product := &entity.Product{ID: uuid.New(), Name: "Coffee", Quantity: 10}
	f := newDraftFixture(t, product)
	ctx := context.Background()

	reference := "DFT-CUSTOM01"
	draft, err := f.service.CreateDraft(ctx, &SaveDraftInput{
		OwnerID:         f.owner,
		ReferenceNumber: &reference,
		Date:            time.Now(),
		Items:           draftItems(product, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, reference, draft.ReferenceNumber)

	// The same reference cannot be used twice
	_, err = f.service.CreateDraft(ctx, &SaveDraftInput{
		OwnerID:         f.owner,
		ReferenceNumber: &reference,
		Date:            time.Now(),
		Items:           draftItems(product, 1),
	})
	require.Error(t, err)
}

func TestDraftService_CreateValidatesStock(t *testing.T) {
	product := &entity.Product{ID: uuid.New(), Name: "Coffee", Quantity: 3}
	f := newDraftFixture(t, product)

	_, err := f.service.CreateDraft(context.Background(), &SaveDraftInput{
		OwnerID: f.owner,
		Date:    time.Now(),
		Items:   draftItems(product, 5),
	})
	require.Error(t, err, "draft save re-validates stock")
}

func TestDraftService_CreateRejectsEmptyAndDuplicateLines(t *testing.T) {
	product := &entity.Product{ID: uuid.New(), Name: "Coffee", Quantity: 10}
	f := newDraftFixture(t, product)
	ctx := context.Background()

	_, err := f.service.CreateDraft(ctx, &SaveDraftInput{OwnerID: f.owner, Date: time.Now()})
	require.Error(t, err, "empty item list")

	_, err = f.service.CreateDraft(ctx, &SaveDraftInput{
		OwnerID: f.owner,
		Date:    time.Now(),
		Items: []DraftItemInput{
			{ProductID: product.ID, Quantity: 1},
			{ProductID: product.ID, Quantity: 2},
		},
	})
	require.Error(t, err, "duplicate product lines")
}

func TestDraftService_UpdateReplacesItemsWholesale(t *testing.T) {
	coffee := &entity.Product{ID: uuid.New(), Name: "Coffee", Quantity: 10, SellingPrice: dec("4.50")}
	tea := &entity.Product{ID: uuid.New(), Name: "Tea", Quantity: 10, SellingPrice: dec("3.00")}
	f := newDraftFixture(t, coffee, tea)
	ctx := context.Background()

	draft, err := f.service.CreateDraft(ctx, &SaveDraftInput{
		OwnerID: f.owner,
		Date:    time.Now(),
		Items:   draftItems(coffee, 2),
	})
	require.NoError(t, err)

	updated, err := f.service.UpdateDraft(ctx, draft.ID, &SaveDraftInput{
		OwnerID: f.owner,
		Date:    time.Now(),
		Items:   draftItems(tea, 4),
	})
	require.NoError(t, err)

	require.Len(t, updated.Items, 1, "old rows are gone")
	assert.Equal(t, tea.ID, updated.Items[0].ProductID)
	assert.Equal(t, 4, updated.Items[0].Quantity)
	assert.Equal(t, draft.ReferenceNumber, updated.ReferenceNumber, "reference never changes")
}

func TestDraftService_CompletedDraftIsImmutable(t *testing.T) {
	product := &entity.Product{ID: uuid.New(), Name: "Coffee", Quantity: 10}
	f := newDraftFixture(t, product)
	ctx := context.Background()

	draft, err := f.service.CreateDraft(ctx, &SaveDraftInput{
		OwnerID: f.owner,
		Date:    time.Now(),
		Items:   draftItems(product, 1),
	})
	require.NoError(t, err)
	require.NoError(t, f.drafts.UpdateStatus(ctx, draft.ID, enum.DraftStatusCompleted))

	_, err = f.service.UpdateDraft(ctx, draft.ID, &SaveDraftInput{
		OwnerID: f.owner,
		Date:    time.Now(),
		Items:   draftItems(product, 2),
	})
	require.Error(t, err, "completed drafts reject updates")

	err = f.service.DeleteDraft(ctx, f.owner, draft.ID)
	require.Error(t, err, "completed drafts reject deletion")
}

func TestDraftService_OwnerGuards(t *testing.T) {
	product := &entity.Product{ID: uuid.New(), Name: "Coffee", Quantity: 10}
	f := newDraftFixture(t, product)
	ctx := context.Background()

	draft, err := f.service.CreateDraft(ctx, &SaveDraftInput{
		OwnerID: f.owner,
		Date:    time.Now(),
		Items:   draftItems(product, 1),
	})
	require.NoError(t, err)

	stranger := uuid.New()
	_, err = f.service.UpdateDraft(ctx, draft.ID, &SaveDraftInput{
		OwnerID: stranger,
		Date:    time.Now(),
		Items:   draftItems(product, 1),
	})
	require.Error(t, err)

	require.Error(t, f.service.DeleteDraft(ctx, stranger, draft.ID))
}

func TestDraftService_DeletePending(t *testing.T) {
	product := &entity.Product{ID: uuid.New(), Name: "Coffee", Quantity: 10}
	f := newDraftFixture(t, product)
	ctx := context.Background()

	draft, err := f.service.CreateDraft(ctx, &SaveDraftInput{
		OwnerID: f.owner,
		Date:    time.Now(),
		Items:   draftItems(product, 1),
	})
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteDraft(ctx, f.owner, draft.ID))

	_, err = f.service.GetDraft(ctx, draft.ID)
	require.Error(t, err)

	rows, err := f.draftRows.GetByDraftID(ctx, draft.ID)
	require.NoError(t, err)
	assert.Empty(t, rows, "item rows are removed with the draft")
}
