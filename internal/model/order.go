package model

import "time"

const (
	OrderStatusCreated   = "CREATED"
	OrderStatusPaid      = "PAID"
	OrderStatusFailed    = "FAILED"
	OrderStatusExpired   = "EXPIRED"
	OrderStatusCancelled = "CANCELLED"
)

// Order is the local record of a checkout attempt. The gateway remains the
// source of truth for payment state; this row only exists so unresolved
// orders can be reconciled after the fact.
type Order struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CourseID  string    `json:"course_id"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
