package request

import "github.com/google/uuid"

// SettleRequest represents a settlement request. When DraftID is set, the
// draft's stored lines are settled and the draft completes; otherwise the
// caller's live cart is settled.
type SettleRequest struct {
	DraftID       *uuid.UUID `json:"draft_id"`
	CustomerID    *uuid.UUID `json:"customer_id"`
	PaymentMethod string     `json:"payment_method" binding:"required,max=50"`
	Date          string     `json:"date" binding:"omitempty"` // YYYY-MM-DD, defaults to today
}
