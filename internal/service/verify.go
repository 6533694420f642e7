package service

import (
	"context"
	"fmt"
	"log/slog"

	"coursepay/internal/gateway"
	"coursepay/internal/model"
)

// StatusFetcher is the gateway surface the verifier needs.
type StatusFetcher interface {
	GetOrder(ctx context.Context, orderID string) (*gateway.OrderState, error)
}

// PurchaseStore persists confirmed purchases. Record must be idempotent:
// repeat calls for the same triple write nothing and report recorded=false.
type PurchaseStore interface {
	Record(ctx context.Context, p model.Purchase) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]model.Purchase, error)
}

type VerifyService struct {
	gw        StatusFetcher
	purchases PurchaseStore
	orders    OrderStore
}

func NewVerifyService(gw StatusFetcher, purchases PurchaseStore, orders OrderStore) *VerifyService {
	return &VerifyService{gw: gw, purchases: purchases, orders: orders}
}

type VerifyResult struct {
	Status gateway.Status
	// Recorded is true when this call wrote the purchase row, false when
	// an earlier verification already had.
	Recorded bool
}

// Verify polls the gateway for the order's state and, when it is paid,
// persists the purchase. Amount and payment status come from the gateway
// response; the creation timestamp is server-set by the store.
func (s *VerifyService) Verify(ctx context.Context, orderID, userID, courseID string) (VerifyResult, error) {
	state, err := s.gw.GetOrder(ctx, orderID)
	if err != nil {
		return VerifyResult{}, fmt.Errorf("gateway order lookup: %w", err)
	}

	status := state.Status()
	if status != gateway.StatusPaid {
		return VerifyResult{Status: status}, nil
	}

	recorded, err := s.purchases.Record(ctx, model.Purchase{
		UserID:        userID,
		CourseID:      courseID,
		OrderID:       orderID,
		Amount:        state.OrderAmount,
		PaymentStatus: string(gateway.StatusPaid),
	})
	if err != nil {
		return VerifyResult{}, fmt.Errorf("record purchase: %w", err)
	}

	// The purchase row is the durable truth; a failed order-status update
	// just leaves the order for the reconciler to converge later.
	if err := s.orders.UpdateStatus(ctx, orderID, model.OrderStatusPaid); err != nil {
		slog.Warn("failed to mark order paid", "order", orderID, "error", err)
	}

	return VerifyResult{Status: status, Recorded: recorded}, nil
}

// Purchases lists the user's confirmed purchases, newest first.
func (s *VerifyService) Purchases(ctx context.Context, userID string) ([]model.Purchase, error) {
	return s.purchases.ListByUser(ctx, userID)
}
