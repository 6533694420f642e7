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

// PaymentVerifier is the minimal surface needed to verify a payment.
type PaymentVerifier interface {
	Verify(ctx context.Context, orderID, userID, courseID string) (service.VerifyResult, error)
}

type verifyRequest struct {
	OrderID  string `json:"orderId"`
	UserID   string `json:"userId"`
	CourseID string `json:"courseId"`
}

// VerifyPaymentHandler checks the order's state at the gateway and, when it
// is paid, the purchase is persisted. Pending orders are reported as
// retryable rather than failed; unexpected failures surface as a generic
// 500 with no internal detail in the body.
func VerifyPaymentHandler(svc PaymentVerifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req verifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, paymentResponse{Success: false})
			return
		}

		if req.OrderID == "" || req.UserID == "" || req.CourseID == "" {
			writeJSON(w, http.StatusBadRequest, paymentResponse{Success: false})
			return
		}

		res, err := svc.Verify(r.Context(), req.OrderID, req.UserID, req.CourseID)
		if err != nil {
			switch {
			case errors.Is(err, gateway.ErrUnavailable):
				writeJSON(w, http.StatusBadGateway, paymentResponse{Success: false, Message: "payment gateway unavailable"})
			case errors.Is(err, gateway.ErrOrderNotFound):
				writeJSON(w, http.StatusNotFound, paymentResponse{Success: false, Message: "order not found"})
			default:
				slog.Error("payment verification failed", "order", req.OrderID, "error", err)
				writeJSON(w, http.StatusInternalServerError, paymentResponse{Success: false, Message: "Server error"})
			}
			return
		}

		if res.Status == gateway.StatusPaid {
			writeJSON(w, http.StatusOK, paymentResponse{Success: true})
			return
		}

		writeJSON(w, http.StatusOK, paymentResponse{
			Success:   false,
			Status:    string(res.Status),
			Retryable: res.Status.Retryable(),
		})
	}
}
