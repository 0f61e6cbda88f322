// Package worker runs the timer-driven background sweep that checks out
// bookings whose window has ended and whose deposit has been paid.
package worker

import (
	"context"
	"log"
	"time"

	"github.com/amir01mn/parking-space-reservation/internal/booking"
	"github.com/amir01mn/parking-space-reservation/internal/model"
	"github.com/amir01mn/parking-space-reservation/internal/store"
)

// AutoCheckout periodically scans the record store and settles every
// Active, Paid booking that is past its end time.  The sweep and
// foreground calls are not mutually excluded; checkout itself is
// idempotent, so a concurrent manual checkout at worst races on the same
// terminal status write.
type AutoCheckout struct {
	store    *store.BookingStore
	svc      *booking.Service
	interval time.Duration
}

// NewAutoCheckout returns a sweeper over the given store and lifecycle
// service.  A non-positive interval defaults to one minute.
func NewAutoCheckout(st *store.BookingStore, svc *booking.Service, interval time.Duration) *AutoCheckout {
	if interval <= 0 {
		interval = time.Minute
	}
	return &AutoCheckout{store: st, svc: svc, interval: interval}
}

// Run sweeps until ctx is cancelled.  It is meant to be started in its own
// goroutine from main.
func (w *AutoCheckout) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.Printf("auto-checkout: sweeping every %s", w.interval)
	for {
		select {
		case <-ctx.Done():
			log.Printf("auto-checkout: stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *AutoCheckout) sweep(ctx context.Context) {
	now := model.ClockOf(time.Now())
	due := w.store.Scan(func(b *model.Booking) bool {
		return b.BookingStatus == model.BookingActive &&
			b.PaymentStatus == model.PaymentPaid &&
			now.After(b.End)
	})
	for _, b := range due {
		log.Printf("auto-checkout: settling %s (ended %s)", b.ID, model.FormatClock(b.End))
		w.svc.Checkout(ctx, b)
	}
}
