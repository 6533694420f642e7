package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"coursepay/internal/gateway"
	"coursepay/internal/model"
)

type stubStatusFetcher struct {
	state *gateway.OrderState
	err   error
}

func (s *stubStatusFetcher) GetOrder(_ context.Context, _ string) (*gateway.OrderState, error) {
	return s.state, s.err
}

// memPurchaseStore behaves like the Postgres repo: unique on
// (user, course, order), insert-only.
type memPurchaseStore struct {
	mu        sync.Mutex
	rows      map[string]model.Purchase
	recordErr error
}

func newMemPurchaseStore() *memPurchaseStore {
	return &memPurchaseStore{rows: make(map[string]model.Purchase)}
}

func (s *memPurchaseStore) Record(_ context.Context, p model.Purchase) (bool, error) {
	if s.recordErr != nil {
		return false, s.recordErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := p.UserID + "|" + p.CourseID + "|" + p.OrderID
	if _, ok := s.rows[key]; ok {
		return false, nil
	}
	s.rows[key] = p
	return true, nil
}

func (s *memPurchaseStore) ListByUser(_ context.Context, userID string) ([]model.Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Purchase
	for _, p := range s.rows {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memPurchaseStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

func TestVerifyPaidRecordsPurchase(t *testing.T) {
	t.Parallel()

	gw := &stubStatusFetcher{state: &gateway.OrderState{OrderID: "order_1", OrderStatus: "PAID", OrderAmount: 1999}}
	purchases := newMemPurchaseStore()
	orders := newStubOrderStore()
	svc := NewVerifyService(gw, purchases, orders)

	res, err := svc.Verify(context.Background(), "order_1", "u1", "dsa")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if res.Status != gateway.StatusPaid || !res.Recorded {
		t.Errorf("result = %+v", res)
	}

	if purchases.count() != 1 {
		t.Fatalf("purchases = %d, want 1", purchases.count())
	}
	p := purchases.rows["u1|dsa|order_1"]
	if p.Amount != 1999 || p.PaymentStatus != "PAID" {
		t.Errorf("purchase row = %+v", p)
	}
	if orders.updates["order_1"] != model.OrderStatusPaid {
		t.Errorf("order not marked paid: %v", orders.updates)
	}
}

func TestVerifyIdempotent(t *testing.T) {
	t.Parallel()

	gw := &stubStatusFetcher{state: &gateway.OrderState{OrderID: "order_1", OrderStatus: "PAID", OrderAmount: 1999}}
	purchases := newMemPurchaseStore()
	svc := NewVerifyService(gw, purchases, newStubOrderStore())

	first, err := svc.Verify(context.Background(), "order_1", "u1", "dsa")
	if err != nil {
		t.Fatalf("first Verify: %v", err)
	}
	second, err := svc.Verify(context.Background(), "order_1", "u1", "dsa")
	if err != nil {
		t.Fatalf("second Verify: %v", err)
	}

	if !first.Recorded {
		t.Error("first verification should write the row")
	}
	if second.Recorded {
		t.Error("second verification should not write a second row")
	}
	if second.Status != gateway.StatusPaid {
		t.Errorf("second status = %v, want PAID", second.Status)
	}
	if purchases.count() != 1 {
		t.Fatalf("purchases = %d, want exactly 1", purchases.count())
	}
}

func TestVerifyNonPaidWritesNothing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		orderStatus string
		want        gateway.Status
	}{
		{"ACTIVE", gateway.StatusPending},
		{"EXPIRED", gateway.StatusExpired},
		{"CANCELLED", gateway.StatusCancelled},
		{"FAILED", gateway.StatusFailed},
		{"paid", gateway.StatusUnknown},
		{"Paid", gateway.StatusUnknown},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.orderStatus, func(t *testing.T) {
			t.Parallel()

			gw := &stubStatusFetcher{state: &gateway.OrderState{OrderID: "order_1", OrderStatus: tt.orderStatus}}
			purchases := newMemPurchaseStore()
			svc := NewVerifyService(gw, purchases, newStubOrderStore())

			res, err := svc.Verify(context.Background(), "order_1", "u1", "dsa")
			if err != nil {
				t.Fatalf("Verify: %v", err)
			}
			if res.Status != tt.want {
				t.Errorf("status = %v, want %v", res.Status, tt.want)
			}
			if purchases.count() != 0 {
				t.Errorf("purchases = %d, want none", purchases.count())
			}
		})
	}
}

func TestVerifyStoreFailure(t *testing.T) {
	t.Parallel()

	gw := &stubStatusFetcher{state: &gateway.OrderState{OrderID: "order_1", OrderStatus: "PAID", OrderAmount: 100}}
	purchases := newMemPurchaseStore()
	purchases.recordErr = errors.New("connection refused")
	svc := NewVerifyService(gw, purchases, newStubOrderStore())

	_, err := svc.Verify(context.Background(), "order_1", "u1", "dsa")
	if err == nil {
		t.Fatal("expected error from store failure")
	}
}

func TestVerifyGatewayFailure(t *testing.T) {
	t.Parallel()

	gw := &stubStatusFetcher{err: gateway.ErrUnavailable}
	svc := NewVerifyService(gw, newMemPurchaseStore(), newStubOrderStore())

	_, err := svc.Verify(context.Background(), "order_1", "u1", "dsa")
	if !errors.Is(err, gateway.ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}
