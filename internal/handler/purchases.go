package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"coursepay/internal/model"
	"coursepay/internal/mw"
)

// PurchaseLister returns a user's confirmed purchases.
type PurchaseLister interface {
	Purchases(ctx context.Context, userID string) ([]model.Purchase, error)
}

// ListPurchasesHandler lists the authenticated user's purchases; the front
// end uses this to unlock enrolled courses.
func ListPurchasesHandler(svc PurchaseLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		userID, ok := r.Context().Value(mw.UserCtxKey).(string)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		purchases, err := svc.Purchases(r.Context(), userID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if len(purchases) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(purchases); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}
}
