package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/salespoint/checkout-api/internal/application/service"
	"github.com/salespoint/checkout-api/internal/domain/enum"
	"github.com/salespoint/checkout-api/internal/domain/repository"
	"github.com/salespoint/checkout-api/internal/presentation/http/dto/request"
	"github.com/salespoint/checkout-api/internal/presentation/http/dto/response"
	"github.com/salespoint/checkout-api/pkg/apperror"
	"github.com/salespoint/checkout-api/pkg/pagination"
)

// DraftHandler handles draft-related HTTP requests
type DraftHandler struct {
	draftService *service.DraftService
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(draftService *service.DraftService) *DraftHandler {
	return &DraftHandler{draftService: draftService}
}

// List handles listing drafts (supports both page-based and cursor-based pagination)
func (h *DraftHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	// Check if cursor-based pagination is requested
	if cursor := c.Query("cursor"); cursor != "" || c.Query("limit") != "" {
		h.listWithCursor(c, *userID)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.DraftFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		if statusInt, err := strconv.Atoi(statusStr); err == nil {
			status := enum.DraftStatus(statusInt)
			params.Status = &status
		}
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}

	result, err := h.draftService.ListDrafts(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Drafts retrieved successfully", result)
}

// listWithCursor handles listing drafts with cursor-based pagination
func (h *DraftHandler) listWithCursor(c *gin.Context, userID uuid.UUID) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "15"))

	params := &repository.DraftCursorFilterParams{
		Cursor: &pagination.CursorParams{
			Cursor:    c.Query("cursor"),
			Direction: pagination.CursorDirection(c.DefaultQuery("direction", "next")),
			Limit:     limit,
		},
		Search: c.Query("search"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		if statusInt, err := strconv.Atoi(statusStr); err == nil {
			status := enum.DraftStatus(statusInt)
			params.Status = &status
		}
	}

	result, err := h.draftService.ListDraftsWithCursor(c.Request.Context(), userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithCursor(c, 200, "Drafts retrieved successfully", result)
}

// Create handles creating a draft
func (h *DraftHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.SaveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input, err := saveDraftInput(*userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	draft, err := h.draftService.CreateDraft(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Draft created successfully", draft)
}

// Update handles replacing a pending draft's contents
func (h *DraftHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid draft ID")
		return
	}

	var req request.SaveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input, err := saveDraftInput(*userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	draft, err := h.draftService.UpdateDraft(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Draft updated successfully", draft)
}

// Get handles getting a single draft
func (h *DraftHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid draft ID")
		return
	}

	draft, err := h.draftService.GetDraft(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Draft retrieved successfully", draft)
}

// Delete handles deleting a pending draft
func (h *DraftHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid draft ID")
		return
	}

	if err := h.draftService.DeleteDraft(c.Request.Context(), *userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// saveDraftInput converts a save request into a service input
func saveDraftInput(userID uuid.UUID, req *request.SaveDraftRequest) (*service.SaveDraftInput, error) {
	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, apperror.NewBadRequestError("Invalid date, expected YYYY-MM-DD")
		}
		date = parsed
	}

	items := make([]service.DraftItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.DraftItemInput{
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
			TaxIDs:         item.TaxIDs,
			DiscountType:   enum.DiscountType(item.DiscountType),
			DiscountAmount: item.DiscountAmount,
			Description:    item.Description,
		}
	}

	documents := make([]service.DraftDocumentInput, len(req.Documents))
	for i, doc := range req.Documents {
		documents[i] = service.DraftDocumentInput{Name: doc.Name, URL: doc.URL}
	}

	return &service.SaveDraftInput{
		OwnerID:         userID,
		ReferenceNumber: req.ReferenceNumber,
		Date:            date,
		Note:            req.Note,
		Items:           items,
		Documents:       documents,
	}, nil
}
