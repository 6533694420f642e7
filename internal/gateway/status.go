package gateway

// Status is the parsed state of a gateway order. Only the exact string
// "PAID" maps to StatusPaid; anything unrecognized (including case
// variants) is StatusUnknown and must never be treated as paid.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusFailed    Status = "FAILED"
	StatusExpired   Status = "EXPIRED"
	StatusCancelled Status = "CANCELLED"
	StatusUnknown   Status = "UNKNOWN"
)

// ParseStatus maps the gateway's order_status string to a Status.
func ParseStatus(s string) Status {
	switch s {
	case "PAID":
		return StatusPaid
	case "ACTIVE":
		return StatusPending
	case "FAILED":
		return StatusFailed
	case "EXPIRED":
		return StatusExpired
	case "CANCELLED", "TERMINATED":
		return StatusCancelled
	default:
		return StatusUnknown
	}
}

// Retryable reports whether the order may still transition to paid.
func (s Status) Retryable() bool {
	return s == StatusPending
}
