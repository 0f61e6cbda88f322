package store

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/amir01mn/parking-space-reservation/internal/model"
)

func newTestStore(t *testing.T) *BookingStore {
	t.Helper()
	s, err := NewBookingStore(filepath.Join(t.TempDir(), "Booking_Database.csv"))
	if err != nil {
		t.Fatalf("NewBookingStore: %v", err)
	}
	return s
}

func mustClock(t *testing.T, s string) time.Time {
	t.Helper()
	c, err := model.ParseClock(s)
	if err != nil {
		t.Fatalf("ParseClock(%q): %v", s, err)
	}
	return c
}

func testBooking(t *testing.T, id string) *model.Booking {
	t.Helper()
	return &model.Booking{
		ID:            id,
		UserID:        1004,
		SpotID:        12,
		LotID:         3,
		Plate:         "ABC123",
		Start:         mustClock(t, "10:00"),
		End:           mustClock(t, "12:00"),
		BookingStatus: model.BookingActive,
		PaymentStatus: model.PaymentPending,
		DepositAmount: 5.00,
		TotalAmount:   20.00,
	}
}

func amountsEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005 // compare to 2 decimal places
}

func TestAppendAndFindByID_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	want := testBooking(t, "N2S000001")
	if err := s.Append(want); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, err := s.FindByID("N2S000001")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.ID != want.ID || got.UserID != want.UserID || got.SpotID != want.SpotID ||
		got.LotID != want.LotID || got.Plate != want.Plate {
		t.Fatalf("identity fields differ: got %+v, want %+v", got, want)
	}
	if !got.Start.Equal(want.Start) || !got.End.Equal(want.End) {
		t.Fatalf("window differs: got %s-%s, want %s-%s",
			model.FormatClock(got.Start), model.FormatClock(got.End),
			model.FormatClock(want.Start), model.FormatClock(want.End))
	}
	if got.BookingStatus != want.BookingStatus || got.PaymentStatus != want.PaymentStatus {
		t.Fatalf("statuses differ: got %s/%s, want %s/%s",
			got.BookingStatus, got.PaymentStatus, want.BookingStatus, want.PaymentStatus)
	}
	if !amountsEqual(got.DepositAmount, want.DepositAmount) || !amountsEqual(got.TotalAmount, want.TotalAmount) {
		t.Fatalf("amounts differ: got %.2f/%.2f, want %.2f/%.2f",
			got.DepositAmount, got.TotalAmount, want.DepositAmount, want.TotalAmount)
	}
}

func TestAppend_DuplicateIDConflicts(t *testing.T) {
	s := newTestStore(t)
	if err := s.Append(testBooking(t, "N2S000001")); err != nil {
		t.Fatalf("first Append: %v", err)
	}
	err := s.Append(testBooking(t, "N2S000001"))
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestAppend_MissingFieldsRejected(t *testing.T) {
	s := newTestStore(t)
	cases := []func(*model.Booking){
		func(b *model.Booking) { b.ID = "" },
		func(b *model.Booking) { b.Plate = "" },
		func(b *model.Booking) { b.Start = time.Time{} },
		func(b *model.Booking) { b.End = time.Time{} },
		func(b *model.Booking) { b.BookingStatus = "" },
		func(b *model.Booking) { b.PaymentStatus = "" },
	}
	for i, mutate := range cases {
		b := testBooking(t, "N2S000009")
		mutate(b)
		if err := s.Append(b); !errors.Is(err, ErrValidation) {
			t.Fatalf("case %d: expected ErrValidation, got %v", i, err)
		}
	}
}

func TestFindByID_Missing(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.FindByID("N2S999999"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateFields_Persist(t *testing.T) {
	s := newTestStore(t)
	if err := s.Append(testBooking(t, "N2S000001")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	if err := s.UpdatePaymentStatus("N2S000001", model.PaymentPaid); err != nil {
		t.Fatalf("UpdatePaymentStatus: %v", err)
	}
	if err := s.UpdateBookingStatus("N2S000001", model.BookingCancelled); err != nil {
		t.Fatalf("UpdateBookingStatus: %v", err)
	}
	if err := s.UpdateEndTime("N2S000001", mustClock(t, "14:00")); err != nil {
		t.Fatalf("UpdateEndTime: %v", err)
	}
	if err := s.UpdateTotalAmount("N2S000001", 30.00); err != nil {
		t.Fatalf("UpdateTotalAmount: %v", err)
	}
	if err := s.UpdateDepositAmount("N2S000001", 8.00); err != nil {
		t.Fatalf("UpdateDepositAmount: %v", err)
	}

	got, err := s.FindByID("N2S000001")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.PaymentStatus != model.PaymentPaid {
		t.Fatalf("payment status = %q, want Paid", got.PaymentStatus)
	}
	if got.BookingStatus != model.BookingCancelled {
		t.Fatalf("booking status = %q, want Cancelled", got.BookingStatus)
	}
	if model.FormatClock(got.End) != "14:00" {
		t.Fatalf("end = %s, want 14:00", model.FormatClock(got.End))
	}
	if !amountsEqual(got.TotalAmount, 30.00) || !amountsEqual(got.DepositAmount, 8.00) {
		t.Fatalf("amounts = %.2f/%.2f, want 8.00/30.00", got.DepositAmount, got.TotalAmount)
	}
}

func TestUpdateField_UnknownID(t *testing.T) {
	s := newTestStore(t)
	if err := s.UpdateBookingStatus("N2S999999", model.BookingCancelled); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestScan_SkipsMalformedRows(t *testing.T) {
	s := newTestStore(t)
	if err := s.Append(testBooking(t, "N2S000001")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	// Corrupt the file with a junk row between two good ones.
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := f.WriteString("garbage,row\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	f.Close()
	if err := s.Append(testBooking(t, "N2S000002")); err != nil {
		t.Fatalf("Append after corruption: %v", err)
	}

	got := s.Scan(nil)
	if len(got) != 2 {
		t.Fatalf("Scan returned %d bookings, want 2", len(got))
	}
}

func TestScan_RestartableAndCurrent(t *testing.T) {
	s := newTestStore(t)
	if err := s.Append(testBooking(t, "N2S000001")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	first := s.Scan(nil)
	if len(first) != 1 {
		t.Fatalf("first Scan returned %d, want 1", len(first))
	}

	// A second scan re-reads the file and sees rows added in between.
	if err := s.Append(testBooking(t, "N2S000002")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	second := s.Scan(nil)
	if len(second) != 2 {
		t.Fatalf("second Scan returned %d, want 2", len(second))
	}
}

func TestReadAll_AcceptsLegacyTimeFormats(t *testing.T) {
	s := newTestStore(t)
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	// Rows written by older tooling: seconds and single-digit hours.
	if _, err := f.WriteString("N2S000001,1,1,1,ABC123,9:00,12:30:00,Pending,5.00,Active,20.00\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	f.Close()

	got, err := s.FindByID("N2S000001")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if model.FormatClock(got.Start) != "09:00" || model.FormatClock(got.End) != "12:30" {
		t.Fatalf("window = %s-%s, want 09:00-12:30", model.FormatClock(got.Start), model.FormatClock(got.End))
	}
}

func TestReadAll_TotalDefaultsToDeposit(t *testing.T) {
	s := newTestStore(t)
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	// A ten-field row predating the total_amount column.
	if _, err := f.WriteString("N2S000001,1,1,1,ABC123,10:00,12:00,Pending,5.00,Active\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	f.Close()

	got, err := s.FindByID("N2S000001")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if !amountsEqual(got.TotalAmount, got.DepositAmount) {
		t.Fatalf("total = %.2f, want deposit %.2f", got.TotalAmount, got.DepositAmount)
	}
}
