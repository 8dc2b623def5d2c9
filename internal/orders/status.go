package orders

import "time"

// Stage is derived from the fulfillment flags for display and events; it is
// never stored.
type Stage string

const (
	StagePending   Stage = "PENDING"
	StagePaid      Stage = "PAID"
	StageDelivered Stage = "DELIVERED"
)

func (o Order) Stage() Stage {
	switch {
	case o.IsDelivered:
		return StageDelivered
	case o.IsPaid:
		return StagePaid
	default:
		return StagePending
	}
}

// MarkPaid sets the paid pair and replaces the payment result. Repeating it
// keeps IsPaid true and moves PaidAt forward.
func (o *Order) MarkPaid(res PaymentResult, at time.Time) {
	o.IsPaid = true
	o.PaidAt = &at
	o.PaymentResult = &res
	o.UpdatedAt = at
}

// MarkDelivered sets the delivered pair. Nothing ever clears it.
func (o *Order) MarkDelivered(at time.Time) {
	o.IsDelivered = true
	o.DeliveredAt = &at
	o.UpdatedAt = at
}
