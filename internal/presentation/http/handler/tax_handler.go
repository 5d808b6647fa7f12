package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/salespoint/checkout-api/internal/application/service"
	"github.com/salespoint/checkout-api/internal/domain/entity"
	"github.com/salespoint/checkout-api/internal/domain/enum"
	"github.com/salespoint/checkout-api/internal/presentation/http/dto/request"
	"github.com/salespoint/checkout-api/internal/presentation/http/dto/response"
)

// TaxHandler handles tax-related HTTP requests
type TaxHandler struct {
	taxService *service.TaxService
}

// NewTaxHandler creates a new tax handler
func NewTaxHandler(taxService *service.TaxService) *TaxHandler {
	return &TaxHandler{taxService: taxService}
}

// Create handles creating a tax rate
func (h *TaxHandler) Create(c *gin.Context) {
	var req request.CreateTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tax, err := h.taxService.CreateTax(c.Request.Context(), &entity.Tax{
		Name: req.Name,
		Rate: req.Rate,
		Type: enum.TaxType(req.Type),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Tax created successfully", tax)
}

// Get handles getting a single tax
func (h *TaxHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tax ID")
		return
	}

	tax, err := h.taxService.GetTax(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax retrieved successfully", tax)
}

// List handles listing every configured tax
func (h *TaxHandler) List(c *gin.Context) {
	taxes, err := h.taxService.ListTaxes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Taxes retrieved successfully", taxes)
}
