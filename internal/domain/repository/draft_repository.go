package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salespoint/checkout-api/internal/domain/entity"
	"github.com/salespoint/checkout-api/internal/domain/enum"
	"github.com/salespoint/checkout-api/pkg/pagination"
)

// DraftRepository defines the interface for draft data operations
type DraftRepository interface {
	Create(ctx context.Context, draft *entity.Draft) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Draft, error)
	GetByReference(ctx context.Context, reference string) (*entity.Draft, error)
	// GetWithItems loads the draft together with its item and document rows
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Draft, error)
	Update(ctx context.Context, draft *entity.Draft) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.DraftStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, ownerID uuid.UUID, params *DraftFilterParams) ([]entity.Draft, int64, error)
	ListWithCursor(ctx context.Context, ownerID uuid.UUID, params *DraftCursorFilterParams) ([]entity.Draft, error)
}

// DraftFilterParams contains filtering parameters for draft queries
type DraftFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.DraftStatus
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// DraftCursorFilterParams contains cursor-based filtering for draft queries
type DraftCursorFilterParams struct {
	Cursor    *pagination.CursorParams
	Search    string
	Status    *enum.DraftStatus
	StartDate *time.Time
	EndDate   *time.Time
}

// DraftItemRepository defines the interface for draft item rows. Saving a
// pending draft replaces its rows wholesale, never merges.
type DraftItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.DraftItem) error
	GetByDraftID(ctx context.Context, draftID uuid.UUID) ([]entity.DraftItem, error)
	DeleteByDraftID(ctx context.Context, draftID uuid.UUID) error
}
