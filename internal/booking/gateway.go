package booking

import (
	"context"
	"log"
)

// PaymentGateway is the external payment collaborator.  The lifecycle only
// ever asks it to charge or refund; it never inspects gateway state.
type PaymentGateway interface {
	// ProcessDeposit charges the upfront deposit for a user.
	ProcessDeposit(ctx context.Context, userID int, amount float64) error
	// ChargeSecondPayment charges the settlement balance for a booking.
	ChargeSecondPayment(ctx context.Context, bookingID string, amount float64) error
	// RefundDeposit returns a deposit to the payer.
	RefundDeposit(ctx context.Context, bookingID string, amount float64) error
}

// LoggingGateway is the stand-in gateway used until a real payment provider
// is integrated: every charge succeeds and is logged.
type LoggingGateway struct{}

func (LoggingGateway) ProcessDeposit(_ context.Context, userID int, amount float64) error {
	log.Printf("payment-gateway: processing deposit of $%.2f for user %d", amount, userID)
	return nil
}

func (LoggingGateway) ChargeSecondPayment(_ context.Context, bookingID string, amount float64) error {
	log.Printf("payment-gateway: charging second payment of $%.2f for booking %s", amount, bookingID)
	return nil
}

func (LoggingGateway) RefundDeposit(_ context.Context, bookingID string, amount float64) error {
	log.Printf("payment-gateway: refunded deposit of $%.2f for booking %s", amount, bookingID)
	return nil
}
