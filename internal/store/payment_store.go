package store

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/amir01mn/parking-space-reservation/internal/model"
)

const paymentHeader = "payment_id,booking_id,user_id,method,deposit_amount"

// PaymentStore appends payment records to a comma-delimited flat file.
// Payments are written once when a deposit clears and never rewritten;
// settlement flips the booking's payment status instead of adding a row.
type PaymentStore struct {
	path string
}

// NewPaymentStore opens the payment file at path, creating it with the
// header row when absent.
func NewPaymentStore(path string) (*PaymentStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte(paymentHeader+"\n"), 0o644); err != nil {
			return nil, fmt.Errorf("create payment file: %w", err)
		}
	} else if err != nil {
		return nil, err
	}
	return &PaymentStore{path: path}, nil
}

// Append writes one payment row.  Write failures are logged and degrade to
// a no-op: a lost payment row never blocks the booking lifecycle.
func (s *PaymentStore) Append(p *model.Payment) {
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("payment-store: open failed: %v", err)
		return
	}
	defer f.Close()

	line := fmt.Sprintf("%s,%s,%d,%s,%.2f\n", p.ID, p.BookingID, p.UserID, p.Method, p.Deposit)
	if _, err := f.WriteString(line); err != nil {
		log.Printf("payment-store: write failed: %v", err)
	}
}
