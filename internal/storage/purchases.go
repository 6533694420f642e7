package storage

import (
	"context"
	"database/sql"
	"fmt"

	"coursepay/internal/model"
)

type PurchaseRepo struct {
	db *sql.DB
}

func NewPurchaseRepo(db *sql.DB) *PurchaseRepo {
	return &PurchaseRepo{db: db}
}

// Record inserts a purchase row. The insert is idempotent: a second call
// for the same (user, course, order) triple hits the unique constraint and
// is a no-op. Returns whether a new row was written.
func (r *PurchaseRepo) Record(ctx context.Context, p model.Purchase) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO purchases (user_id, course_id, order_id, amount, payment_status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT ON CONSTRAINT purchases_unique_order DO NOTHING
	`, p.UserID, p.CourseID, p.OrderID, p.Amount, p.PaymentStatus)
	if err != nil {
		return false, fmt.Errorf("insert purchase: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *PurchaseRepo) ListByUser(ctx context.Context, userID string) ([]model.Purchase, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, course_id, order_id, amount, payment_status, created_at
		FROM purchases
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query purchases: %w", err)
	}
	defer rows.Close()

	var purchases []model.Purchase
	for rows.Next() {
		var p model.Purchase
		if err := rows.Scan(&p.ID, &p.UserID, &p.CourseID, &p.OrderID, &p.Amount, &p.PaymentStatus, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		purchases = append(purchases, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return purchases, nil
}
