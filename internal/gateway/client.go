// Package gateway is the HTTP client for the hosted payment gateway
// (Cashfree-compatible REST surface). Order creation is a POST with the
// client credential headers; status lookup is a GET by order id. Both go
// through a bounded retry policy so a flaky gateway is reported as
// ErrUnavailable rather than as a payment rejection.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	// ErrUnavailable means the gateway could not be reached within the
	// retry budget. Distinct from the gateway answering and saying no.
	ErrUnavailable = errors.New("payment gateway unavailable")

	// ErrOrderNotFound means the gateway has no order with that id.
	ErrOrderNotFound = errors.New("order not found at gateway")
)

const (
	defaultCurrency = "INR"
	maxAttempts     = 3
	initialBackoff  = 200 * time.Millisecond
)

type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	APIVersion   string
}

type Client struct {
	cfg    Config
	client *http.Client

	attempts int
	backoff  time.Duration
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg:      cfg,
		client:   &http.Client{Timeout: 10 * time.Second},
		attempts: maxAttempts,
		backoff:  initialBackoff,
	}
}

type CreateOrderRequest struct {
	OrderID       string
	Amount        float64
	CustomerID    string
	CustomerEmail string
	CustomerPhone string
}

// CreateOrderResult carries the gateway's response verbatim. The front end
// consumes the raw body (it contains the payment_session_id used to open
// the hosted checkout), so nothing is re-shaped here.
type CreateOrderResult struct {
	StatusCode       int
	Body             json.RawMessage
	PaymentSessionID string
}

type createOrderBody struct {
	OrderID         string          `json:"order_id"`
	OrderAmount     float64         `json:"order_amount"`
	OrderCurrency   string          `json:"order_currency"`
	CustomerDetails customerDetails `json:"customer_details"`
}

type customerDetails struct {
	CustomerID    string `json:"customer_id"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
}

// CreateOrder registers the order with the gateway. A non-2xx gateway
// response is not an error: the status code and body are passed through
// for the caller to relay.
func (c *Client) CreateOrder(ctx context.Context, in CreateOrderRequest) (*CreateOrderResult, error) {
	payload, err := json.Marshal(createOrderBody{
		OrderID:       in.OrderID,
		OrderAmount:   in.Amount,
		OrderCurrency: defaultCurrency,
		CustomerDetails: customerDetails{
			CustomerID:    in.CustomerID,
			CustomerEmail: in.CustomerEmail,
			CustomerPhone: in.CustomerPhone,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal order: %w", err)
	}

	url := c.cfg.BaseURL + "/pg/orders"
	status, body, err := c.doWithRetry(ctx, http.MethodPost, url, payload)
	if err != nil {
		return nil, err
	}

	res := &CreateOrderResult{StatusCode: status, Body: body}
	if status >= 200 && status < 300 {
		var parsed struct {
			PaymentSessionID string `json:"payment_session_id"`
		}
		if err := json.Unmarshal(body, &parsed); err != nil {
			return nil, fmt.Errorf("decode order response: %w", err)
		}
		res.PaymentSessionID = parsed.PaymentSessionID
	}
	return res, nil
}

// OrderState is the gateway's view of an order.
type OrderState struct {
	OrderID     string  `json:"order_id"`
	OrderStatus string  `json:"order_status"`
	OrderAmount float64 `json:"order_amount"`
}

// Status returns the parsed form of OrderStatus.
func (s *OrderState) Status() Status {
	return ParseStatus(s.OrderStatus)
}

// GetOrder looks up the current state of an order at the gateway.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*OrderState, error) {
	url := fmt.Sprintf("%s/pg/orders/%s", c.cfg.BaseURL, orderID)
	status, body, err := c.doWithRetry(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	switch {
	case status >= 200 && status < 300:
		var state OrderState
		if err := json.Unmarshal(body, &state); err != nil {
			return nil, fmt.Errorf("decode order state: %w", err)
		}
		return &state, nil
	case status == http.StatusNotFound:
		return nil, ErrOrderNotFound
	default:
		return nil, fmt.Errorf("unexpected gateway status %d: %s", status, body)
	}
}

// doWithRetry performs the request up to c.attempts times, retrying on
// transport errors and 5xx responses with doubling backoff. Any other
// response ends the loop and is returned to the caller.
func (c *Client) doWithRetry(ctx context.Context, method, url string, payload []byte) (int, []byte, error) {
	var lastErr error
	backoff := c.backoff

	for attempt := 0; attempt < c.attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return 0, nil, fmt.Errorf("%w: %w", ErrUnavailable, ctx.Err())
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		status, body, err := c.do(ctx, method, url, payload)
		if err != nil {
			lastErr = err
			continue
		}
		if status >= 500 {
			lastErr = fmt.Errorf("gateway returned %d", status)
			continue
		}
		return status, body, nil
	}

	return 0, nil, fmt.Errorf("%w: %w", ErrUnavailable, lastErr)
}

func (c *Client) do(ctx context.Context, method, url string, payload []byte) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-client-id", c.cfg.ClientID)
	req.Header.Set("x-client-secret", c.cfg.ClientSecret)
	req.Header.Set("x-api-version", c.cfg.APIVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}

	return resp.StatusCode, body, nil
}
