package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/salespoint/checkout-api/internal/domain/entity"
	"github.com/salespoint/checkout-api/internal/domain/enum"
	domainRepo "github.com/salespoint/checkout-api/internal/domain/repository"
	"github.com/salespoint/checkout-api/pkg/pagination"
	"gorm.io/gorm"
)

type draftRepository struct {
	db *gorm.DB
}

// NewDraftRepository creates a new draft repository
func NewDraftRepository(db *gorm.DB) domainRepo.DraftRepository {
	return &draftRepository{db: db}
}

func (r *draftRepository) Create(ctx context.Context, draft *entity.Draft) error {
	return r.db.WithContext(ctx).Create(draft).Error
}

func (r *draftRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Draft, error) {
	var draft entity.Draft
	err := r.db.WithContext(ctx).First(&draft, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &draft, err
}

func (r *draftRepository) GetByReference(ctx context.Context, reference string) (*entity.Draft, error) {
	var draft entity.Draft
	err := r.db.WithContext(ctx).First(&draft, "reference_number = ?", reference).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &draft, err
}

// GetWithItems loads the draft together with its item and document rows
func (r *draftRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Draft, error) {
	var draft entity.Draft
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Documents").
		First(&draft, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &draft, err
}

func (r *draftRepository) Update(ctx context.Context, draft *entity.Draft) error {
	return r.db.WithContext(ctx).
		Omit("Items", "Documents").
		Save(draft).Error
}

func (r *draftRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.DraftStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Draft{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *draftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Draft{}, "id = ?", id).Error
}

func (r *draftRepository) List(ctx context.Context, ownerID uuid.UUID, params *domainRepo.DraftFilterParams) ([]entity.Draft, int64, error) {
	var drafts []entity.Draft
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Draft{}).
		Where("owner_id = ?", ownerID)

	if params.Search != "" {
		query = query.Where("reference_number ILIKE ?", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.StartDate != nil {
		query = query.Where("date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder != "" && (params.SortOrder == "ASC" || params.SortOrder == "asc") {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Items").
		Order(sortBy + " " + sortOrder).
		Find(&drafts).Error

	return drafts, total, err
}

// ListWithCursor returns drafts using cursor-based pagination
func (r *draftRepository) ListWithCursor(ctx context.Context, ownerID uuid.UUID, params *domainRepo.DraftCursorFilterParams) ([]entity.Draft, error) {
	var drafts []entity.Draft

	params.Cursor.Validate()
	query := r.db.WithContext(ctx).Model(&entity.Draft{}).
		Where("owner_id = ?", ownerID)

	if params.Search != "" {
		query = query.Where("reference_number ILIKE ?", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.StartDate != nil {
		query = query.Where("date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("date <= ?", *params.EndDate)
	}

	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, err
	}

	if cursor != nil {
		if params.Cursor.Direction == pagination.CursorDirectionNext {
			query = query.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
		} else {
			query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
		}
	}

	// Fetch limit+1 to detect hasMore
	err = query.Limit(params.Cursor.Limit + 1).
		Preload("Items").
		Order("created_at ASC, id ASC").
		Find(&drafts).Error

	return drafts, err
}

type draftItemRepository struct {
	db *gorm.DB
}

// NewDraftItemRepository creates a new draft item repository
func NewDraftItemRepository(db *gorm.DB) domainRepo.DraftItemRepository {
	return &draftItemRepository{db: db}
}

func (r *draftItemRepository) CreateBatch(ctx context.Context, items []entity.DraftItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *draftItemRepository) GetByDraftID(ctx context.Context, draftID uuid.UUID) ([]entity.DraftItem, error) {
	var items []entity.DraftItem
	err := r.db.WithContext(ctx).
		Where("draft_id = ?", draftID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *draftItemRepository) DeleteByDraftID(ctx context.Context, draftID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("draft_id = ?", draftID).
		Delete(&entity.DraftItem{}).Error
}
