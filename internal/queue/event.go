// Package queue defines message payloads exchanged over the message broker.
package queue

// Lifecycle event types published to the booking.lifecycle queue.
const (
	EventBookingCreated    = "booking.created"
	EventDepositPaid       = "deposit.paid"
	EventBookingExtended   = "booking.extended"
	EventBookingCancelled  = "booking.cancelled"
	EventBookingCheckedOut = "booking.checked_out"
)

// LifecycleEvent is published whenever a booking changes state.  It carries
// enough of the booking for downstream consumers to notify, log or feed
// reporting without reading the record store.
type LifecycleEvent struct {
	Type          string  `json:"type"`
	BookingID     string  `json:"booking_id"`
	UserID        int     `json:"user_id"`
	SpotID        int     `json:"spot_id"`
	LotID         int     `json:"lot_id"`
	Plate         string  `json:"plate"`
	Start         string  `json:"start"`
	End           string  `json:"end"`
	BookingStatus string  `json:"booking_status"`
	PaymentStatus string  `json:"payment_status"`
	DepositAmount float64 `json:"deposit_amount"`
	TotalAmount   float64 `json:"total_amount"`
	OccurredAt    string  `json:"occurred_at"`
}
