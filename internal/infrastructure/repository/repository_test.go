package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salespoint/checkout-api/internal/domain/entity"
	"github.com/salespoint/checkout-api/internal/domain/enum"
	domainRepo "github.com/salespoint/checkout-api/internal/domain/repository"
	"github.com/salespoint/checkout-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	// a named shared-cache DB keeps gorm's pooled connections on the same
	// in-memory database while isolating tests from each other
	dsn := "file:" + uuid.New().String() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.Product{},
		&entity.Tax{},
		&entity.Customer{},
		&entity.Draft{},
		&entity.DraftItem{},
		&entity.DraftDocument{},
		&entity.Sale{},
		&entity.Payment{},
	))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, quantity int) *entity.Product {
	product := &entity.Product{
		Name:         name,
		Code:         "SKU-" + uuid.New().String()[:8],
		Quantity:     quantity,
		SellingPrice: decimal.RequireFromString("4.50"),
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestProductRepository_GetByIDNotFoundIsNil(t *testing.T) {
	db := testDB(t)
	repo := NewProductRepository(db)

	got, err := repo.GetByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProductRepository_GetByIDs(t *testing.T) {
	db := testDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	coffee := seedProduct(t, db, "Coffee", 10)
	tea := seedProduct(t, db, "Tea", 5)

	got, err := repo.GetByIDs(ctx, []uuid.UUID{coffee.ID, tea.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, got, 2, "unknown IDs are simply absent")
}

func TestProductRepository_AtomicDecrementBatch(t *testing.T) {
	db := testDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	coffee := seedProduct(t, db, "Coffee", 10)
	tea := seedProduct(t, db, "Tea", 2)

	failedIDs, err := repo.AtomicDecrementBatch(ctx, map[uuid.UUID]int{
		coffee.ID: 4,
		tea.ID:    1,
	})
	require.NoError(t, err)
	assert.Empty(t, failedIDs)

	got, err := repo.GetByID(ctx, coffee.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, got.Quantity)
}

func TestProductRepository_AtomicDecrementBatchRollsBackOnShortfall(t *testing.T) {
	db := testDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	coffee := seedProduct(t, db, "Coffee", 10)
	tea := seedProduct(t, db, "Tea", 2)

	failedIDs, err := repo.AtomicDecrementBatch(ctx, map[uuid.UUID]int{
		coffee.ID: 4,
		tea.ID:    5, // more than in stock
	})
	require.NoError(t, err)
	require.Len(t, failedIDs, 1)
	assert.Equal(t, tea.ID, failedIDs[0])

	// The whole batch rolled back, coffee included
	got, err := repo.GetByID(ctx, coffee.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Quantity)
}

func TestProductRepository_AtomicIncrementBatch(t *testing.T) {
	db := testDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	coffee := seedProduct(t, db, "Coffee", 6)

	require.NoError(t, repo.AtomicIncrementBatch(ctx, map[uuid.UUID]int{coffee.ID: 4}))

	got, err := repo.GetByID(ctx, coffee.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Quantity)
}

func TestDraftRepository_CRUDAndItems(t *testing.T) {
	db := testDB(t)
	draftRepo := NewDraftRepository(db)
	itemRepo := NewDraftItemRepository(db)
	ctx := context.Background()
	owner := uuid.New()

	coffee := seedProduct(t, db, "Coffee", 10)

	draft := &entity.Draft{
		OwnerID:         owner,
		ReferenceNumber: "DFT-REPO0001",
		Date:            time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Status:          enum.DraftStatusPending,
	}
	require.NoError(t, draftRepo.Create(ctx, draft))
	require.NoError(t, itemRepo.CreateBatch(ctx, []entity.DraftItem{
		{DraftID: draft.ID, ProductID: coffee.ID, ProductName: "Coffee", Quantity: 2, UnitPrice: decimal.RequireFromString("4.50")},
	}))

	byRef, err := draftRepo.GetByReference(ctx, "DFT-REPO0001")
	require.NoError(t, err)
	require.NotNil(t, byRef)
	assert.Equal(t, draft.ID, byRef.ID)

	withItems, err := draftRepo.GetWithItems(ctx, draft.ID)
	require.NoError(t, err)
	require.NotNil(t, withItems)
	require.Len(t, withItems.Items, 1)
	assert.Equal(t, "Coffee", withItems.Items[0].ProductName)

	require.NoError(t, draftRepo.UpdateStatus(ctx, draft.ID, enum.DraftStatusCompleted))
	got, err := draftRepo.GetByID(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.DraftStatusCompleted, got.Status)

	require.NoError(t, itemRepo.DeleteByDraftID(ctx, draft.ID))
	rows, err := itemRepo.GetByDraftID(ctx, draft.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)

	require.NoError(t, draftRepo.Delete(ctx, draft.ID))
	gone, err := draftRepo.GetByID(ctx, draft.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestDraftRepository_ListFiltersByOwnerAndStatus(t *testing.T) {
	db := testDB(t)
	draftRepo := NewDraftRepository(db)
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()

	pending := enum.DraftStatusPending
	for i, spec := range []struct {
		owner  uuid.UUID
		status enum.DraftStatus
	}{
		{owner, enum.DraftStatusPending},
		{owner, enum.DraftStatusCompleted},
		{stranger, enum.DraftStatusPending},
	} {
		require.NoError(t, draftRepo.Create(ctx, &entity.Draft{
			OwnerID:         spec.owner,
			ReferenceNumber: "DFT-LIST000" + string(rune('1'+i)),
			Date:            time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			Status:          spec.status,
		}))
	}

	drafts, total, err := draftRepo.List(ctx, owner, &domainRepo.DraftFilterParams{
		Pagination: pagination.DefaultPagination(),
		Status:     &pending,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, drafts, 1)
	assert.Equal(t, owner, drafts[0].OwnerID)
	assert.Equal(t, enum.DraftStatusPending, drafts[0].Status)
}

func TestDraftRepository_ReferenceNumberIsUnique(t *testing.T) {
	db := testDB(t)
	draftRepo := NewDraftRepository(db)
	ctx := context.Background()
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, draftRepo.Create(ctx, &entity.Draft{
		OwnerID: uuid.New(), ReferenceNumber: "DFT-UNIQ0001", Date: date,
	}))
	err := draftRepo.Create(ctx, &entity.Draft{
		OwnerID: uuid.New(), ReferenceNumber: "DFT-UNIQ0001", Date: date,
	})
	assert.Error(t, err, "the unique column is the last line of defense")
}

func TestSaleRepository_BatchSharesReference(t *testing.T) {
	db := testDB(t)
	saleRepo := NewSaleRepository(db)
	paymentRepo := NewPaymentRepository(db)
	ctx := context.Background()

	coffee := seedProduct(t, db, "Coffee", 10)
	tea := seedProduct(t, db, "Tea", 5)
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, saleRepo.CreateBatch(ctx, []entity.Sale{
		{ReferenceNumber: "SAL-REPO0001", ProductID: coffee.ID, Quantity: 2, UnitPrice: decimal.RequireFromString("4.50"), PaymentMethod: "cash", Date: date},
		{ReferenceNumber: "SAL-REPO0001", ProductID: tea.ID, Quantity: 1, UnitPrice: decimal.RequireFromString("3.00"), PaymentMethod: "cash", Date: date},
	}))
	require.NoError(t, paymentRepo.Create(ctx, &entity.Payment{
		ReferenceNumber: "SAL-REPO0001",
		Amount:          decimal.RequireFromString("12.00"),
		Method:          "cash",
		Date:            date,
	}))

	sales, err := saleRepo.GetByReference(ctx, "SAL-REPO0001")
	require.NoError(t, err)
	assert.Len(t, sales, 2)

	payment, err := paymentRepo.GetByReference(ctx, "SAL-REPO0001")
	require.NoError(t, err)
	require.NotNil(t, payment)
	assert.Equal(t, "12.00", payment.Amount.StringFixed(2))

	missing, err := paymentRepo.GetByReference(ctx, "SAL-MISSING1")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestInMemoryCartStore_CopiesOnGetAndSave(t *testing.T) {
	store := NewInMemoryCartStore()
	owner := uuid.New()

	cart := store.Get(owner)
	cart.Upsert(entity.CartItem{ProductID: uuid.New(), Quantity: 1})
	assert.True(t, store.Get(owner).IsEmpty(), "mutating a fetched cart leaves the store untouched")

	store.Save(cart)
	saved := store.Get(owner)
	require.Len(t, saved.Items, 1)

	cart.Upsert(entity.CartItem{ProductID: uuid.New(), Quantity: 2})
	assert.Len(t, store.Get(owner).Items, 1, "saving copies, later mutation does not leak in")

	store.Delete(owner)
	assert.True(t, store.Get(owner).IsEmpty())
}
