package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"coursepay/internal/gateway"
	"coursepay/internal/model"
)

// OrderCreator is the gateway surface the initiator needs.
type OrderCreator interface {
	CreateOrder(ctx context.Context, in gateway.CreateOrderRequest) (*gateway.CreateOrderResult, error)
}

// OrderStore records locally-initiated orders.
type OrderStore interface {
	Create(ctx context.Context, o model.Order) error
	UpdateStatus(ctx context.Context, orderID, status string) error
}

type PaymentService struct {
	gw     OrderCreator
	orders OrderStore

	placeholderEmail string
	placeholderPhone string
}

func NewPaymentService(gw OrderCreator, orders OrderStore, placeholderEmail, placeholderPhone string) *PaymentService {
	return &PaymentService{
		gw:               gw,
		orders:           orders,
		placeholderEmail: placeholderEmail,
		placeholderPhone: placeholderPhone,
	}
}

type InitiateOrderInput struct {
	Amount        float64
	UserID        string
	CourseID      string
	CustomerEmail string
	CustomerPhone string
}

// NewOrderID generates an order token: fixed prefix, millisecond timestamp,
// and a random suffix so concurrent calls within the same millisecond still
// get distinct ids.
func NewOrderID() string {
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("order_%d_%s", time.Now().UnixMilli(), suffix)
}

// InitiateOrder records the order locally, registers it with the gateway,
// and returns the gateway's response for the caller to relay. The order id
// is carried inside the gateway's response body.
func (s *PaymentService) InitiateOrder(ctx context.Context, in InitiateOrderInput) (*gateway.CreateOrderResult, error) {
	orderID := NewOrderID()

	order := model.Order{
		ID:       orderID,
		UserID:   in.UserID,
		CourseID: in.CourseID,
		Amount:   in.Amount,
		Status:   model.OrderStatusCreated,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("record order: %w", err)
	}

	email := in.CustomerEmail
	if email == "" {
		email = s.placeholderEmail
	}
	phone := in.CustomerPhone
	if phone == "" {
		phone = s.placeholderPhone
	}

	res, err := s.gw.CreateOrder(ctx, gateway.CreateOrderRequest{
		OrderID:       orderID,
		Amount:        in.Amount,
		CustomerID:    in.UserID,
		CustomerEmail: email,
		CustomerPhone: phone,
	})
	if err != nil {
		return nil, fmt.Errorf("gateway create order: %w", err)
	}

	return res, nil
}
