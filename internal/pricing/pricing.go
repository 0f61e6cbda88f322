// Package pricing maps user categories to hourly rates and computes
// elapsed-time charges for the booking lifecycle.
package pricing

import (
	"context"
	"errors"
	"time"
)

// User categories known to the rate table.  Anything else is charged the
// visitor rate.
const (
	CategoryStudent         = "Student"
	CategoryFaculty         = "Faculty"
	CategoryNonFacultyStaff = "Non-Faculty Staff"
	CategoryVisitor         = "Visitor"
)

// DefaultHourlyRate is charged for unknown or missing categories.
const DefaultHourlyRate = 15.00

var hourlyRates = map[string]float64{
	CategoryStudent:         5.00,
	CategoryFaculty:         8.00,
	CategoryNonFacultyStaff: 10.00,
	CategoryVisitor:         15.00,
}

// ErrUnknownUser is returned by CategoryLookup implementations when no user
// with the given ID exists.
var ErrUnknownUser = errors.New("unknown user")

// CategoryLookup resolves a user ID to a pricing category.  The user
// directory is owned externally; implementations live outside this package.
type CategoryLookup interface {
	Category(ctx context.Context, userID int) (string, error)
}

// Engine is the stateless pricing calculator.  It holds only the category
// lookup collaborator; all rates are fixed.
type Engine struct {
	users CategoryLookup
}

// NewEngine returns an engine using the given user directory.
func NewEngine(users CategoryLookup) *Engine {
	return &Engine{users: users}
}

// Rate returns the hourly rate for a category, falling back to the default
// visitor rate for unknown or empty categories.
func (e *Engine) Rate(category string) float64 {
	if r, ok := hourlyRates[category]; ok {
		return r
	}
	return DefaultHourlyRate
}

// HoursBetween returns the number of whole hours between two times of day.
// Inverted operands are swapped first, so the result is never negative.
func (e *Engine) HoursBetween(start, end time.Time) int {
	if start.After(end) {
		start, end = end, start
	}
	return int(end.Sub(start).Hours())
}

// TotalPrice computes rate × whole hours for a user's reserved window.
// Unknown users are priced at the default rate rather than rejected.
func (e *Engine) TotalPrice(ctx context.Context, userID int, start, end time.Time) float64 {
	category, err := e.users.Category(ctx, userID)
	if err != nil {
		category = ""
	}
	return e.Rate(category) * float64(e.HoursBetween(start, end))
}

// SecondPayment returns the settlement balance: total minus deposit.  A
// negative result signals a refund-due condition and is deliberately not
// clamped; callers decide what to do with it.
func (e *Engine) SecondPayment(total, deposit float64) float64 {
	return total - deposit
}
