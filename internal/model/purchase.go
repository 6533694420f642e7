package model

import "time"

// Purchase is the durable record of a paid course enrollment. Rows are
// insert-only in this flow; (user, course, order) is unique.
type Purchase struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	CourseID      string    `json:"course_id"`
	OrderID       string    `json:"order_id"`
	Amount        float64   `json:"amount"`
	PaymentStatus string    `json:"payment_status"`
	CreatedAt     time.Time `json:"created_at"`
}
