package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/salespoint/checkout-api/internal/application/service"
	"github.com/salespoint/checkout-api/internal/presentation/http/dto/request"
	"github.com/salespoint/checkout-api/internal/presentation/http/dto/response"
	"github.com/salespoint/checkout-api/pkg/apperror"
)

// SettlementHandler handles settlement-related HTTP requests
type SettlementHandler struct {
	settlementService *service.SettlementService
}

// NewSettlementHandler creates a new settlement handler
func NewSettlementHandler(settlementService *service.SettlementService) *SettlementHandler {
	return &SettlementHandler{settlementService: settlementService}
}

// Settle handles converting a cart or pending draft into sale and payment
// records. The route carries the idempotency middleware, so retried requests
// replay the first response instead of selling twice.
func (h *SettlementHandler) Settle(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			response.Error(c, apperror.NewBadRequestError("Invalid date, expected YYYY-MM-DD"))
			return
		}
		date = parsed
	}

	result, err := h.settlementService.Settle(c.Request.Context(), &service.SettleInput{
		OwnerID:       *userID,
		DraftID:       req.DraftID,
		CustomerID:    req.CustomerID,
		PaymentMethod: req.PaymentMethod,
		Date:          date,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale settled successfully", result)
}

// GetSale handles retrieving the sale lines under a reference number
func (h *SettlementHandler) GetSale(c *gin.Context) {
	reference := c.Param("reference")

	sales, err := h.settlementService.GetSale(c.Request.Context(), reference)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sales)
}

// GetPayment handles retrieving the payment under a reference number
func (h *SettlementHandler) GetPayment(c *gin.Context) {
	reference := c.Param("reference")

	payment, err := h.settlementService.GetPayment(c.Request.Context(), reference)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment retrieved successfully", payment)
}
