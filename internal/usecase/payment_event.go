package usecase

import (
	"spa-booking/internal/data/entity"
)

// PaymentEvent is the single vocabulary all three payment channels speak.
// Hosted checkout, mocked checkout and manual receipt upload each emit these
// events; one transition function keeps the channels from drifting apart.
type PaymentEvent string

const (
	// EventCheckoutOpened tags the booking with the card channel; payment
	// stays unpaid until the provider confirms.
	EventCheckoutOpened PaymentEvent = "checkout_opened"
	// EventCheckoutPaid is the provider-confirmed (or mock-synthesized)
	// success: unpaid/pending -> paid, booking confirmed.
	EventCheckoutPaid PaymentEvent = "checkout_paid"
	// EventProofUploaded attaches a manual receipt: unpaid -> pending,
	// awaiting human verification. Never auto-pays.
	EventProofUploaded PaymentEvent = "proof_uploaded"
	// EventProofVerified is the staff confirmation: pending -> paid, booking
	// accepted.
	EventProofVerified PaymentEvent = "proof_verified"
)

// applyPaymentEvent validates and applies a payment transition in memory.
// Callers persist the result themselves; a returned error means no state may
// be written. There is no path from paid back to unpaid.
func applyPaymentEvent(b *entity.Booking, event PaymentEvent) error {
	if b.PaymentStatus == entity.PaymentStatusPaid {
		return ErrAlreadyPaid
	}

	switch event {
	case EventCheckoutOpened:
		method := entity.PaymentMethodStripe
		b.PaymentMethod = &method

	case EventCheckoutPaid:
		// Retry after a cancelled checkout arrives as unpaid; a re-opened
		// session arrives as pending. Both may complete.
		b.PaymentStatus = entity.PaymentStatusPaid
		b.Status = entity.BookingStatusConfirmed

	case EventProofUploaded:
		if b.PaymentStatus != entity.PaymentStatusUnpaid && b.PaymentStatus != entity.PaymentStatusPending {
			return ErrInvalidTransition
		}
		method := entity.PaymentMethodQR
		b.PaymentMethod = &method
		b.PaymentStatus = entity.PaymentStatusPending

	case EventProofVerified:
		if b.PaymentMethod == nil || *b.PaymentMethod != entity.PaymentMethodQR {
			return ErrNotManualPayment
		}
		if b.ProofReference == nil || *b.ProofReference == "" {
			return ErrMissingProof
		}
		if b.PaymentStatus != entity.PaymentStatusPending {
			return ErrInvalidTransition
		}
		b.PaymentStatus = entity.PaymentStatusPaid
		b.Status = entity.BookingStatusAccepted

	default:
		return ErrInvalidTransition
	}

	return nil
}
