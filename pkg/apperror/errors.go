package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound       = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrUnauthorized   = &AppError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden      = &AppError{Code: http.StatusForbidden, Message: "Forbidden"}
	ErrBadRequest     = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrConflict       = &AppError{Code: http.StatusConflict, Message: "Resource already exists"}
	ErrUnprocessable  = &AppError{Code: http.StatusUnprocessableEntity, Message: "Unprocessable entity"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// StockError reports that a product cannot cover a requested quantity at the
// moment stock was read. It halts the pipeline before any write.
type StockError struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Required    int    `json:"required"`
	Available   int    `json:"available"`
}

func (e *StockError) Error() string {
	return fmt.Sprintf("Insufficient stock for %s. Required: %d, Available: %d",
		e.ProductName, e.Required, e.Available)
}

// NewStockError creates a stock insufficiency error
func NewStockError(productID, productName string, required, available int) *StockError {
	return &StockError{
		ProductID:   productID,
		ProductName: productName,
		Required:    required,
		Available:   available,
	}
}

// Settlement phases reported by PartialSettlementError
const (
	PhaseSaleCreated   = "sale_created"
	PhaseStatusPending = "status_update_pending"
)

// PartialSettlementError reports a settlement that committed some but not all
// of its writes: the sale exists but the payment failed, or both exist and
// only the draft status update failed. It is never retried automatically and
// callers must treat it as requiring manual reconciliation against the
// carried reference number.
type PartialSettlementError struct {
	ReferenceNumber string
	Phase           string
	Err             error
}

func (e *PartialSettlementError) Error() string {
	return fmt.Sprintf("partial settlement %s (%s): %v", e.ReferenceNumber, e.Phase, e.Err)
}

func (e *PartialSettlementError) Unwrap() error {
	return e.Err
}

// NewPartialSettlementError creates a partial-settlement error
func NewPartialSettlementError(reference, phase string, err error) *PartialSettlementError {
	return &PartialSettlementError{ReferenceNumber: reference, Phase: phase, Err: err}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible. Stock and
// partial-settlement errors get their own HTTP mappings.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	var stockErr *StockError
	if errors.As(err, &stockErr) {
		return &AppError{
			Code:    http.StatusConflict,
			Message: stockErr.Error(),
		}
	}
	var partialErr *PartialSettlementError
	if errors.As(err, &partialErr) {
		return &AppError{
			Code: http.StatusInternalServerError,
			Message: fmt.Sprintf(
				"Settlement %s partially failed (%s); manual reconciliation required",
				partialErr.ReferenceNumber, partialErr.Phase),
		}
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
