// Package booking owns the reservation lifecycle: creation, persistence,
// deposit and settlement accounting, extension, cancellation and checkout.
// Only validation and duplicate-ID failures are surfaced to callers as hard
// errors; every other anomaly is logged and leaves the booking unchanged.
package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/amir01mn/parking-space-reservation/internal/model"
	"github.com/amir01mn/parking-space-reservation/internal/pricing"
	"github.com/amir01mn/parking-space-reservation/internal/queue"
	"github.com/amir01mn/parking-space-reservation/internal/store"
)

// EventPublisher pushes lifecycle events onto the bus.  Publish failures
// must never interrupt the operation that produced the event.
type EventPublisher interface {
	Publish(ctx context.Context, event queue.LifecycleEvent) error
}

// Service is the booking lifecycle aggregate root.  All state transitions
// go through it; it mutates the in-memory booking first and then pushes
// field-level updates to the record store.
type Service struct {
	store    *store.BookingStore
	payments *store.PaymentStore
	ids      *store.IDAllocator
	pricing  *pricing.Engine
	users    pricing.CategoryLookup
	gateway  PaymentGateway
	events   EventPublisher
	now      func() time.Time
}

// NewService wires the lifecycle to its collaborators.  A nil gateway falls
// back to the always-succeeding logging gateway and a nil publisher
// disables events.
func NewService(st *store.BookingStore, payments *store.PaymentStore, ids *store.IDAllocator,
	engine *pricing.Engine, users pricing.CategoryLookup, gateway PaymentGateway, events EventPublisher) *Service {
	if gateway == nil {
		gateway = LoggingGateway{}
	}
	return &Service{
		store:    st,
		payments: payments,
		ids:      ids,
		pricing:  engine,
		users:    users,
		gateway:  gateway,
		events:   events,
		now:      time.Now,
	}
}

// CreateRequest carries the caller-supplied fields of a new reservation.
// TotalAmount may be zero, in which case the window is priced by the
// engine.
type CreateRequest struct {
	UserID      int
	SpotID      int
	LotID       int
	Plate       string
	Start       time.Time
	End         time.Time
	TotalAmount float64
}

// Create validates the request, mints a booking ID and returns an unsaved
// aggregate with lifecycle defaults: status Active, payment Pending.  An
// unset window defaults to the next hour.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*model.Booking, error) {
	if err := model.VerifyLicensePlate(req.Plate); err != nil {
		return nil, err
	}
	start, end := req.Start, req.End
	if start.IsZero() {
		start = model.ClockOf(s.now())
	}
	if end.IsZero() {
		end = model.ClockOf(s.now().Add(time.Hour))
	}
	total := req.TotalAmount
	if total == 0 {
		total = s.pricing.TotalPrice(ctx, req.UserID, start, end)
	}
	return &model.Booking{
		ID:            s.ids.NextID(),
		UserID:        req.UserID,
		SpotID:        req.SpotID,
		LotID:         req.LotID,
		Plate:         req.Plate,
		Start:         start,
		End:           end,
		BookingStatus: model.BookingActive,
		PaymentStatus: model.PaymentPending,
		TotalAmount:   total,
	}, nil
}

// Save persists a booking for the first time.  Missing required fields
// surface as the store's validation error and a duplicate ID as its
// conflict error; both are hard failures.
func (s *Service) Save(ctx context.Context, b *model.Booking) error {
	if err := s.store.Append(b); err != nil {
		return err
	}
	s.publish(ctx, queue.EventBookingCreated, b)
	return nil
}

// PayDeposit charges the category-rate deposit for a booking.  On success
// the payment status flips to Paid, the deposit amount is recorded on the
// booking row, and a payment record is appended.  An unknown user or a
// gateway failure is logged and leaves everything untouched; in particular
// a failed charge never flips the status to Paid.
func (s *Service) PayDeposit(ctx context.Context, b *model.Booking, userID int, method string) {
	category, err := s.users.Category(ctx, userID)
	if err != nil {
		log.Printf("booking: deposit payment failed for %s: %v", b.ID, err)
		return
	}
	deposit := s.pricing.Rate(category)
	if err := s.gateway.ProcessDeposit(ctx, userID, deposit); err != nil {
		log.Printf("booking: deposit payment failed for %s: %v", b.ID, err)
		return
	}

	b.PaymentStatus = model.PaymentPaid
	b.DepositAmount = deposit
	if err := s.store.UpdatePaymentStatus(b.ID, model.PaymentPaid); err != nil {
		log.Printf("booking: persist payment status for %s: %v", b.ID, err)
	}
	if err := s.store.UpdateDepositAmount(b.ID, deposit); err != nil {
		log.Printf("booking: persist deposit amount for %s: %v", b.ID, err)
	}
	s.payments.Append(&model.Payment{
		ID:        uuid.NewString(),
		BookingID: b.ID,
		UserID:    userID,
		Method:    method,
		Deposit:   deposit,
	})
	s.publish(ctx, queue.EventDepositPaid, b)
}

// Extend moves a booking's end later and charges rate × extra hours.  When
// newEnd is not strictly after the current end, nothing changes and the
// rejection is only logged.
func (s *Service) Extend(ctx context.Context, b *model.Booking, newEnd time.Time) {
	if !newEnd.After(b.End) {
		log.Printf("booking: extension rejected for %s: new end %s is not after current end %s",
			b.ID, model.FormatClock(newEnd), model.FormatClock(b.End))
		return
	}
	category, err := s.users.Category(ctx, b.UserID)
	if err != nil {
		category = ""
	}
	extraCharge := s.pricing.Rate(category) * float64(s.pricing.HoursBetween(b.End, newEnd))

	b.End = newEnd
	b.TotalAmount += extraCharge
	if err := s.store.UpdateEndTime(b.ID, newEnd); err != nil {
		log.Printf("booking: persist end time for %s: %v", b.ID, err)
	}
	if err := s.store.UpdateTotalAmount(b.ID, b.TotalAmount); err != nil {
		log.Printf("booking: persist total amount for %s: %v", b.ID, err)
	}
	log.Printf("booking: %s extended to %s, additional charge $%.2f", b.ID, model.FormatClock(newEnd), extraCharge)
	s.publish(ctx, queue.EventBookingExtended, b)
}

// Cancel marks a booking Cancelled unconditionally, independent of its
// payment state.  A cancellation before the reserved start refunds the
// deposit; afterwards the deposit is kept.
func (s *Service) Cancel(ctx context.Context, b *model.Booking) {
	b.BookingStatus = model.BookingCancelled
	if err := s.store.UpdateBookingStatus(b.ID, model.BookingCancelled); err != nil {
		log.Printf("booking: persist cancellation for %s: %v", b.ID, err)
	}
	if model.ClockOf(s.now()).Before(b.Start) {
		if err := s.gateway.RefundDeposit(ctx, b.ID, b.DepositAmount); err != nil {
			log.Printf("booking: refund for %s: %v", b.ID, err)
		}
	} else {
		log.Printf("booking: %s cancelled after start time, deposit not refunded", b.ID)
	}
	s.publish(ctx, queue.EventBookingCancelled, b)
}

// Checkout settles a booking once its window has ended.  It requires the
// current time of day to be after the end and the payment status to be
// Paid; otherwise it logs and changes nothing.  A positive balance is
// charged as the second payment; a zero or negative balance (deposit
// already covers the total) completes the payment without charging.
// Because completion moves the status off Paid, a second call is a no-op.
func (s *Service) Checkout(ctx context.Context, b *model.Booking) {
	if !model.ClockOf(s.now()).After(b.End) {
		log.Printf("booking: cannot check out %s: booking has not ended yet", b.ID)
		return
	}
	if b.PaymentStatus != model.PaymentPaid {
		log.Printf("booking: cannot check out %s: deposit payment not completed", b.ID)
		return
	}
	second := s.pricing.SecondPayment(b.TotalAmount, b.DepositAmount)
	if second > 0 {
		if err := s.gateway.ChargeSecondPayment(ctx, b.ID, second); err != nil {
			log.Printf("booking: second payment for %s: %v", b.ID, err)
			return
		}
		log.Printf("booking: %s settled, total paid $%.2f", b.ID, b.TotalAmount)
	} else {
		log.Printf("booking: %s settled, deposit covers the full amount", b.ID)
	}
	b.PaymentStatus = model.PaymentCompleted
	if err := s.store.UpdatePaymentStatus(b.ID, model.PaymentCompleted); err != nil {
		log.Printf("booking: persist settlement for %s: %v", b.ID, err)
	}
	s.publish(ctx, queue.EventBookingCheckedOut, b)
}

// FindByID loads a booking from the record store.
func (s *Service) FindByID(id string) (*model.Booking, error) {
	return s.store.FindByID(id)
}

// LastAllocatedID reports the most recent booking ID issued in-process.
func (s *Service) LastAllocatedID() string {
	return s.ids.LastAllocatedID()
}

// IsNotFound reports whether err is the store's lookup miss.
func IsNotFound(err error) bool { return errors.Is(err, store.ErrNotFound) }

func (s *Service) publish(ctx context.Context, eventType string, b *model.Booking) {
	if s.events == nil {
		return
	}
	ev := queue.LifecycleEvent{
		Type:          eventType,
		BookingID:     b.ID,
		UserID:        b.UserID,
		SpotID:        b.SpotID,
		LotID:         b.LotID,
		Plate:         b.Plate,
		Start:         model.FormatClock(b.Start),
		End:           model.FormatClock(b.End),
		BookingStatus: b.BookingStatus,
		PaymentStatus: b.PaymentStatus,
		DepositAmount: b.DepositAmount,
		TotalAmount:   b.TotalAmount,
		OccurredAt:    s.now().UTC().Format(time.RFC3339),
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		log.Printf("booking: publish %s for %s: %v", eventType, b.ID, err)
	}
}
