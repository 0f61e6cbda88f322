package store

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/amir01mn/parking-space-reservation/internal/model"
)

// bookingHeader is the header row of the booking file.  Field positions are
// fixed; the Update* helpers address fields by index.
const bookingHeader = "booking_id,user_id,spot_id,lot_id,plate,start_time,end_time,payment_status,deposit_amount,booking_status,total_amount"

const delimiter = ","

// Field indexes within a booking row.
const (
	fieldID = iota
	fieldUserID
	fieldSpotID
	fieldLotID
	fieldPlate
	fieldStart
	fieldEnd
	fieldPaymentStatus
	fieldDepositAmount
	fieldBookingStatus
	fieldTotalAmount
)

// BookingStore persists bookings one row per line in a comma-delimited file
// with a header row.  Every mutation reads the whole file and rewrites it,
// so each call costs O(n) in the number of rows.  There is no locking
// around read-modify-write sequences: concurrent writers race and the
// loser's update is silently lost.  Single-process callers serialized by
// their own design are the supported case.
type BookingStore struct {
	path string
}

// NewBookingStore opens the booking file at path, creating it with the
// header row (and any missing parent directories) when absent.
func NewBookingStore(path string) (*BookingStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte(bookingHeader+"\n"), 0o644); err != nil {
			return nil, fmt.Errorf("create booking file: %w", err)
		}
	} else if err != nil {
		return nil, err
	}
	return &BookingStore{path: path}, nil
}

// readAllLines returns every line of the booking file including the header.
// Read failures are logged and yield an empty slice.
func (s *BookingStore) readAllLines() []string {
	f, err := os.Open(s.path)
	if err != nil {
		log.Printf("booking-store: read failed: %v", err)
		return nil
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		log.Printf("booking-store: read failed: %v", err)
		return nil
	}
	return lines
}

// writeAllLines rewrites the whole booking file.  Write failures are logged
// and reported as false so callers can decide whether to surface them.
func (s *BookingStore) writeAllLines(lines []string) bool {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(s.path, []byte(b.String()), 0o644); err != nil {
		log.Printf("booking-store: write failed: %v", err)
		return false
	}
	return true
}

// formatRecord renders a booking in the write format: HH:mm times and
// two-decimal amounts.
func formatRecord(b *model.Booking) string {
	return fmt.Sprintf("%s,%d,%d,%d,%s,%s,%s,%s,%.2f,%s,%.2f",
		b.ID,
		b.UserID,
		b.SpotID,
		b.LotID,
		b.Plate,
		model.FormatClock(b.Start),
		model.FormatClock(b.End),
		b.PaymentStatus,
		b.DepositAmount,
		b.BookingStatus,
		b.TotalAmount,
	)
}

// parseRecord converts a split row into a booking.  Rows need at least ten
// fields; when the total amount column is absent the deposit stands in for
// it, matching rows written before the column existed.
func parseRecord(fields []string) (*model.Booking, error) {
	if len(fields) < 10 {
		return nil, fmt.Errorf("expected at least 10 fields, got %d", len(fields))
	}
	userID, err := strconv.Atoi(strings.TrimSpace(fields[fieldUserID]))
	if err != nil {
		return nil, fmt.Errorf("user_id: %w", err)
	}
	spotID, err := strconv.Atoi(strings.TrimSpace(fields[fieldSpotID]))
	if err != nil {
		return nil, fmt.Errorf("spot_id: %w", err)
	}
	lotID, err := strconv.Atoi(strings.TrimSpace(fields[fieldLotID]))
	if err != nil {
		return nil, fmt.Errorf("lot_id: %w", err)
	}
	start, err := model.ParseClock(strings.TrimSpace(fields[fieldStart]))
	if err != nil {
		return nil, fmt.Errorf("start_time: %w", err)
	}
	end, err := model.ParseClock(strings.TrimSpace(fields[fieldEnd]))
	if err != nil {
		return nil, fmt.Errorf("end_time: %w", err)
	}
	deposit, err := strconv.ParseFloat(strings.TrimSpace(fields[fieldDepositAmount]), 64)
	if err != nil {
		return nil, fmt.Errorf("deposit_amount: %w", err)
	}
	total := deposit
	if len(fields) > fieldTotalAmount {
		total, err = strconv.ParseFloat(strings.TrimSpace(fields[fieldTotalAmount]), 64)
		if err != nil {
			return nil, fmt.Errorf("total_amount: %w", err)
		}
	}
	return &model.Booking{
		ID:            strings.TrimSpace(fields[fieldID]),
		UserID:        userID,
		SpotID:        spotID,
		LotID:         lotID,
		Plate:         strings.TrimSpace(fields[fieldPlate]),
		Start:         start,
		End:           end,
		PaymentStatus: strings.TrimSpace(fields[fieldPaymentStatus]),
		DepositAmount: deposit,
		BookingStatus: strings.TrimSpace(fields[fieldBookingStatus]),
		TotalAmount:   total,
	}, nil
}

// validate checks the fields a row cannot be written without.
func validate(b *model.Booking) error {
	if b == nil {
		return fmt.Errorf("%w: booking is nil", ErrValidation)
	}
	switch {
	case b.ID == "":
		return fmt.Errorf("%w: missing booking id", ErrValidation)
	case b.Plate == "":
		return fmt.Errorf("%w: missing plate", ErrValidation)
	// Parsed clock values live on the zero date (year 0), so IsZero (year 1)
	// only ever matches a field that was never set.
	case b.Start.IsZero():
		return fmt.Errorf("%w: missing start time", ErrValidation)
	case b.End.IsZero():
		return fmt.Errorf("%w: missing end time", ErrValidation)
	case b.BookingStatus == "":
		return fmt.Errorf("%w: missing booking status", ErrValidation)
	case b.PaymentStatus == "":
		return fmt.Errorf("%w: missing payment status", ErrValidation)
	}
	return nil
}

// Append writes a new booking row.  A missing required field is an
// ErrValidation and a duplicate booking ID is an ErrConflict; both are
// surfaced to the caller.  An unreadable or unwritable file is logged and
// degrades to a no-op.
func (s *BookingStore) Append(b *model.Booking) error {
	if err := validate(b); err != nil {
		return err
	}
	lines := s.readAllLines()
	if len(lines) == 0 {
		log.Printf("booking-store: append skipped, store unreadable")
		return nil
	}
	for _, line := range lines[1:] {
		fields := strings.Split(line, delimiter)
		if len(fields) > 0 && strings.TrimSpace(fields[fieldID]) == strings.TrimSpace(b.ID) {
			return fmt.Errorf("%w: %s", ErrConflict, b.ID)
		}
	}
	lines = append(lines, formatRecord(b))
	s.writeAllLines(lines)
	return nil
}

// readAll parses every data row, skipping malformed rows with a logged
// warning so one bad line never poisons a scan.
func (s *BookingStore) readAll() []*model.Booking {
	lines := s.readAllLines()
	if len(lines) == 0 {
		return nil
	}
	bookings := make([]*model.Booking, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		b, err := parseRecord(strings.Split(line, delimiter))
		if err != nil {
			log.Printf("booking-store: skipping malformed row %q: %v", line, err)
			continue
		}
		bookings = append(bookings, b)
	}
	return bookings
}

// Scan returns every booking matching pred.  Each call re-reads the backing
// file, so results always reflect the current file contents.  An empty
// result is ambiguous between "no matches" and "file unreadable"; the
// latter is visible only in the logs.
func (s *BookingStore) Scan(pred func(*model.Booking) bool) []*model.Booking {
	var out []*model.Booking
	for _, b := range s.readAll() {
		if pred == nil || pred(b) {
			out = append(out, b)
		}
	}
	return out
}

// FindByID returns the booking with the given ID or ErrNotFound.
func (s *BookingStore) FindByID(id string) (*model.Booking, error) {
	for _, b := range s.readAll() {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// updateField rewrites a single field of the row whose booking ID matches.
func (s *BookingStore) updateField(id string, index int, value string) error {
	lines := s.readAllLines()
	if len(lines) == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	for i := 1; i < len(lines); i++ {
		fields := strings.Split(lines[i], delimiter)
		if len(fields) <= index || strings.TrimSpace(fields[fieldID]) != id {
			continue
		}
		fields[index] = value
		lines[i] = strings.Join(fields, delimiter)
		s.writeAllLines(lines)
		return nil
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// UpdateBookingStatus rewrites the booking_status field of one row.
func (s *BookingStore) UpdateBookingStatus(id, status string) error {
	return s.updateField(id, fieldBookingStatus, status)
}

// UpdatePaymentStatus rewrites the payment_status field of one row.
func (s *BookingStore) UpdatePaymentStatus(id, status string) error {
	return s.updateField(id, fieldPaymentStatus, status)
}

// UpdateDepositAmount rewrites the deposit_amount field of one row.
func (s *BookingStore) UpdateDepositAmount(id string, amount float64) error {
	return s.updateField(id, fieldDepositAmount, fmt.Sprintf("%.2f", amount))
}

// UpdateTotalAmount rewrites the total_amount field of one row.
func (s *BookingStore) UpdateTotalAmount(id string, amount float64) error {
	return s.updateField(id, fieldTotalAmount, fmt.Sprintf("%.2f", amount))
}

// UpdateEndTime rewrites the end_time field of one row.
func (s *BookingStore) UpdateEndTime(id string, end time.Time) error {
	return s.updateField(id, fieldEnd, model.FormatClock(end))
}

// LastSequence returns the highest numeric suffix among booking IDs with
// the given prefix, or zero when none exist.  IDs with a non-numeric
// suffix are ignored.
func (s *BookingStore) LastSequence(prefix string) int {
	max := 0
	for _, b := range s.readAll() {
		if !strings.HasPrefix(b.ID, prefix) {
			continue
		}
		n, err := strconv.Atoi(b.ID[len(prefix):])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max
}
