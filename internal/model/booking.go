package model

import (
	"errors"
	"time"
)

// Booking statuses.  The store keeps them as free-form strings, but these
// are the values the lifecycle writes.  Cancelled and Completed are
// terminal: no operation transitions a booking out of them.
const (
	BookingActive    = "Active"
	BookingCancelled = "Cancelled"
	BookingCompleted = "Completed"
)

// Payment statuses.  Pending is the initial state, Paid is set once the
// deposit clears and Completed once the settlement payment is done.
// PaymentFailed exists for completeness; a failed gateway call leaves the
// previous status in place rather than writing it.
const (
	PaymentPending   = "Pending"
	PaymentPaid      = "Paid"
	PaymentCompleted = "Completed"
	PaymentFailed    = "Failed"
)

// InvalidPlate is the one licence plate value the system rejects.  All
// other plates are assumed to have been verified upstream.
const InvalidPlate = "INVALID"

// ErrInvalidPlate is returned when a booking is created with the sentinel
// plate value.
var ErrInvalidPlate = errors.New("invalid licence plate")

// Booking is the reservation aggregate persisted in the record store.
// Start and End are times of day without a date component (see ClockOf).
//
// Fields:
//  ID            – unique identifier, e.g. "N2S000001".
//  UserID        – user who made the booking (owned externally).
//  SpotID        – parking space being reserved (weak reference).
//  LotID         – parking lot containing the space (weak reference).
//  Plate         – vehicle licence plate; never the sentinel "INVALID".
//  Start, End    – reserved time window.
//  BookingStatus – Active, Cancelled or Completed.
//  PaymentStatus – Pending, Paid or Completed.
//  DepositAmount – upfront deposit collected at reservation time.
//  TotalAmount   – full price of the window, grown by extensions.
type Booking struct {
	ID            string
	UserID        int
	SpotID        int
	LotID         int
	Plate         string
	Start         time.Time
	End           time.Time
	BookingStatus string
	PaymentStatus string
	DepositAmount float64
	TotalAmount   float64
}

// VerifyLicensePlate reports whether a plate is acceptable.  Every plate is
// assumed verified except the sentinel value "INVALID".
func VerifyLicensePlate(plate string) error {
	if plate == InvalidPlate {
		return ErrInvalidPlate
	}
	return nil
}

// clockLayouts are the accepted time-of-day formats, widest first.  Rows
// written by older tooling carry seconds and single-digit hours; rows this
// engine writes are always "HH:mm".
var clockLayouts = []string{"15:04:05", "15:04"}

// ClockLayout is the format every write uses.
const ClockLayout = "15:04"

// ParseClock parses a time-of-day string in any of the accepted layouts.
func ParseClock(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// FormatClock renders a time of day in the canonical "HH:mm" write format.
func FormatClock(t time.Time) string {
	return t.Format(ClockLayout)
}

// ClockOf strips the date component from t so it can be compared against
// parsed booking times, which all live on the zero date.
func ClockOf(t time.Time) time.Time {
	return time.Date(0, time.January, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}
