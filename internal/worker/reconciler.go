// Package worker runs the background reconciliation loop. Verification is
// normally caller-initiated; the reconciler covers orders whose buyer paid
// but never completed the verify call (closed tab, failed write), by
// polling the gateway for orders still in CREATED and applying the same
// idempotent persistence path as the verifier.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"coursepay/internal/gateway"
	"coursepay/internal/model"
	"coursepay/internal/service"
)

// OrderSource yields unresolved orders and records their final state.
type OrderSource interface {
	ListUnresolved(ctx context.Context, minAge time.Duration, limit int) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) error
}

// Verifier is the same verification entry point the HTTP handler uses.
type Verifier interface {
	Verify(ctx context.Context, orderID, userID, courseID string) (service.VerifyResult, error)
}

type Reconciler struct {
	orders   OrderSource
	verifier Verifier

	interval  time.Duration
	batchSize int
	minAge    time.Duration
	maxAge    time.Duration
}

func NewReconciler(orders OrderSource, verifier Verifier) *Reconciler {
	return &Reconciler{
		orders:    orders,
		verifier:  verifier,
		interval:  30 * time.Second,
		batchSize: 10,
		minAge:    time.Minute,
		maxAge:    24 * time.Hour,
	}
}

func (r *Reconciler) Start(ctx context.Context) {
	slog.Info("starting payment reconciler")
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("payment reconciler stopped")
			return
		case <-ticker.C:
			if err := r.processBatch(ctx); err != nil {
				slog.Error("reconcile batch failed", "error", err)
			}
		}
	}
}

func (r *Reconciler) processBatch(ctx context.Context) error {
	orders, err := r.orders.ListUnresolved(ctx, r.minAge, r.batchSize)
	if err != nil {
		return fmt.Errorf("list unresolved orders: %w", err)
	}

	for _, order := range orders {
		res, err := r.verifier.Verify(ctx, order.ID, order.UserID, order.CourseID)
		if err != nil {
			if errors.Is(err, gateway.ErrOrderNotFound) {
				r.markStatus(ctx, order.ID, model.OrderStatusFailed)
				continue
			}
			slog.Error("failed to reconcile order", "order", order.ID, "error", err)
			continue
		}

		switch res.Status {
		case gateway.StatusPaid:
			// Verify already persisted the purchase and marked the order.
			if res.Recorded {
				slog.Info("recovered paid order", "order", order.ID, "user", order.UserID, "course", order.CourseID)
			}
		case gateway.StatusFailed:
			r.markStatus(ctx, order.ID, model.OrderStatusFailed)
		case gateway.StatusExpired:
			r.markStatus(ctx, order.ID, model.OrderStatusExpired)
		case gateway.StatusCancelled:
			r.markStatus(ctx, order.ID, model.OrderStatusCancelled)
		default:
			// Still pending at the gateway; give up after maxAge.
			if time.Since(order.CreatedAt) > r.maxAge {
				r.markStatus(ctx, order.ID, model.OrderStatusExpired)
			}
		}
	}

	return nil
}

func (r *Reconciler) markStatus(ctx context.Context, orderID, status string) {
	if err := r.orders.UpdateStatus(ctx, orderID, status); err != nil {
		slog.Error("failed to update order status", "order", orderID, "status", status, "error", err)
	} else {
		slog.Info("order resolved", "order", orderID, "status", status)
	}
}
