package model

// Payment records a deposit collected for a booking.  Each payment carries
// its own deposit amount; nothing about a payment is shared between
// bookings.  Settlement is a status flip on the booking, not a new record,
// so payments are appended once and never rewritten.
//
// Fields:
//  ID        – payment identifier (UUID).
//  BookingID – booking this payment funds (non-owning reference).
//  UserID    – user who paid.
//  Method    – payment method label, e.g. "Credit Card".
//  Deposit   – deposit amount charged.
type Payment struct {
	ID        string
	BookingID string
	UserID    int
	Method    string
	Deposit   float64
}
