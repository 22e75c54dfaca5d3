package entity

import (
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusAccepted  BookingStatus = "accepted"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// IsActive reports whether the booking still holds its slot and resources.
// Only cancelled bookings release their claims.
func (s BookingStatus) IsActive() bool {
	return s == BookingStatusPending || s == BookingStatusAccepted || s == BookingStatusConfirmed
}

type PaymentMethod string

const (
	PaymentMethodQR     PaymentMethod = "qr"
	PaymentMethodStripe PaymentMethod = "stripe"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// Booking consumes exactly one slot; bookings.slot_id carries a unique index
// so two materializations can never claim the same slot.
// Invariants: final_amount = total_amount - discount_amount,
// deposit_amount = round(final_amount * depositRate, 2).
type Booking struct {
	Base
	BookingRef        string         `db:"booking_ref"`
	CustomerID        uuid.UUID      `db:"customer_id"`
	SlotID            uuid.UUID      `db:"slot_id"`
	TotalAmount       float64        `db:"total_amount"`
	DiscountAmount    float64        `db:"discount_amount"`
	FinalAmount       float64        `db:"final_amount"`
	DepositAmount     float64        `db:"deposit_amount"`
	Status            BookingStatus  `db:"status"`
	PaymentMethod     *PaymentMethod `db:"payment_method"`
	PaymentStatus     PaymentStatus  `db:"payment_status"`
	ExternalSessionID *string        `db:"external_session_id"`
	ProofReference    *string        `db:"proof_reference"`
	DigitalReceipt    *string        `db:"digital_receipt"`
}
