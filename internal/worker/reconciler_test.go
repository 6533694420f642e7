package worker

import (
	"context"
	"testing"
	"time"

	"coursepay/internal/gateway"
	"coursepay/internal/model"
	"coursepay/internal/service"
)

type stubOrderSource struct {
	unresolved []model.Order
	updates    map[string]string
}

func (s *stubOrderSource) ListUnresolved(_ context.Context, _ time.Duration, _ int) ([]model.Order, error) {
	return s.unresolved, nil
}

func (s *stubOrderSource) UpdateStatus(_ context.Context, orderID, status string) error {
	if s.updates == nil {
		s.updates = make(map[string]string)
	}
	s.updates[orderID] = status
	return nil
}

type stubVerifier struct {
	results map[string]service.VerifyResult
	errs    map[string]error
	calls   []string
}

func (s *stubVerifier) Verify(_ context.Context, orderID, _, _ string) (service.VerifyResult, error) {
	s.calls = append(s.calls, orderID)
	if err, ok := s.errs[orderID]; ok {
		return service.VerifyResult{}, err
	}
	return s.results[orderID], nil
}

func TestReconcilerProcessBatch(t *testing.T) {
	t.Parallel()

	now := time.Now()
	source := &stubOrderSource{unresolved: []model.Order{
		{ID: "order_paid", UserID: "u1", CourseID: "dsa", CreatedAt: now.Add(-5 * time.Minute)},
		{ID: "order_failed", UserID: "u2", CourseID: "ai-ml", CreatedAt: now.Add(-5 * time.Minute)},
		{ID: "order_pending_young", UserID: "u3", CourseID: "dsa", CreatedAt: now.Add(-5 * time.Minute)},
		{ID: "order_pending_old", UserID: "u4", CourseID: "dsa", CreatedAt: now.Add(-48 * time.Hour)},
		{ID: "order_vanished", UserID: "u5", CourseID: "dsa", CreatedAt: now.Add(-5 * time.Minute)},
	}}
	verifier := &stubVerifier{
		results: map[string]service.VerifyResult{
			"order_paid":          {Status: gateway.StatusPaid, Recorded: true},
			"order_failed":        {Status: gateway.StatusFailed},
			"order_pending_young": {Status: gateway.StatusPending},
			"order_pending_old":   {Status: gateway.StatusPending},
		},
		errs: map[string]error{
			"order_vanished": gateway.ErrOrderNotFound,
		},
	}

	rec := NewReconciler(source, verifier)
	if err := rec.processBatch(context.Background()); err != nil {
		t.Fatalf("processBatch: %v", err)
	}

	if len(verifier.calls) != 5 {
		t.Errorf("verifier calls = %d, want 5", len(verifier.calls))
	}

	// Verify marks paid orders itself; the reconciler resolves the rest.
	if got := source.updates["order_failed"]; got != model.OrderStatusFailed {
		t.Errorf("order_failed marked %q", got)
	}
	if got, ok := source.updates["order_pending_young"]; ok {
		t.Errorf("young pending order should stay CREATED, marked %q", got)
	}
	if got := source.updates["order_pending_old"]; got != model.OrderStatusExpired {
		t.Errorf("old pending order marked %q, want EXPIRED", got)
	}
	if got := source.updates["order_vanished"]; got != model.OrderStatusFailed {
		t.Errorf("vanished order marked %q, want FAILED", got)
	}
}
