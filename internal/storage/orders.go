package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"coursepay/internal/model"
)

type OrderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

func (r *OrderRepo) Create(ctx context.Context, o model.Order) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, course_id, amount, status)
		VALUES ($1, $2, $3, $4, $5)
	`, o.ID, o.UserID, o.CourseID, o.Amount, o.Status)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, orderID, status string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2
	`, status, orderID)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

// ListUnresolved returns orders still in CREATED that were initiated at
// least minAge ago, oldest first. Fresh orders are skipped so the
// reconciler does not race the buyer who is mid-checkout.
func (r *OrderRepo) ListUnresolved(ctx context.Context, minAge time.Duration, limit int) ([]model.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, course_id, amount, status, created_at, updated_at
		FROM orders
		WHERE status = $1 AND created_at < $2
		ORDER BY created_at ASC
		LIMIT $3
	`, model.OrderStatusCreated, time.Now().Add(-minAge), limit)
	if err != nil {
		return nil, fmt.Errorf("query unresolved orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.CourseID, &o.Amount, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return orders, nil
}
