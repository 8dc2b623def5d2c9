package orders

import (
	"encoding/json"
	"time"
)

const (
	EventOrderCreated   = "OrderCreated"
	EventOrderPaid      = "OrderPaid"
	EventOrderDelivered = "OrderDelivered"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order_id
	Payload       json.RawMessage `json:"payload"`
}

type OrderCreatedPayload struct {
	OrderID    string      `json:"order_id"`
	UserID     string      `json:"user_id"`
	Items      []OrderItem `json:"items"`
	TotalPrice float64     `json:"total_price"`
}

type OrderPaidPayload struct {
	OrderID       string        `json:"order_id"`
	UserID        string        `json:"user_id"`
	PaidAt        time.Time     `json:"paid_at"`
	PaymentMethod string        `json:"payment_method"`
	PaymentResult PaymentResult `json:"payment_result"`
}

type OrderDeliveredPayload struct {
	OrderID     string    `json:"order_id"`
	UserID      string    `json:"user_id"`
	DeliveredAt time.Time `json:"delivered_at"`
}

// topicFor maps an event type to the topic it is published on.
func topicFor(eventType string) string {
	switch eventType {
	case EventOrderPaid:
		return TopicOrderPaid
	case EventOrderDelivered:
		return TopicOrderDelivered
	default:
		return TopicOrderCreated
	}
}
