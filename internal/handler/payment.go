package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"coursepay/internal/gateway"
	"coursepay/internal/service"
)

// OrderInitiator is the minimal surface needed to start a checkout.
type OrderInitiator interface {
	InitiateOrder(ctx context.Context, in service.InitiateOrderInput) (*gateway.CreateOrderResult, error)
}

type createOrderRequest struct {
	Amount        float64 `json:"amount"`
	UserID        string  `json:"userId"`
	CourseID      string  `json:"courseId"`
	CustomerEmail string  `json:"customerEmail,omitempty"`
	CustomerPhone string  `json:"customerPhone,omitempty"`
}

// CreateOrderHandler starts a checkout: it registers an order with the
// payment gateway and relays the gateway's JSON response verbatim, so the
// front end can open the hosted checkout with the payment_session_id.
func CreateOrderHandler(svc OrderInitiator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req createOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, paymentResponse{Success: false, Message: "invalid json"})
			return
		}

		if req.Amount <= 0 || req.UserID == "" || req.CourseID == "" {
			writeJSON(w, http.StatusBadRequest, paymentResponse{Success: false, Message: "amount, userId and courseId are required"})
			return
		}

		res, err := svc.InitiateOrder(r.Context(), service.InitiateOrderInput{
			Amount:        req.Amount,
			UserID:        req.UserID,
			CourseID:      req.CourseID,
			CustomerEmail: req.CustomerEmail,
			CustomerPhone: req.CustomerPhone,
		})
		if err != nil {
			if errors.Is(err, gateway.ErrUnavailable) {
				writeJSON(w, http.StatusBadGateway, paymentResponse{Success: false, Message: "payment gateway unavailable"})
				return
			}
			slog.Error("order initiation failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, paymentResponse{Success: false, Message: "Server error"})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(res.StatusCode)
		_, _ = w.Write(res.Body)
	}
}

type paymentResponse struct {
	Success   bool   `json:"success"`
	Status    string `json:"status,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
	Message   string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
