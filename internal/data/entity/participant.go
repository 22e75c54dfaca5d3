package entity

import (
	"github.com/google/uuid"
)

// Participant belongs to exactly one booking. At most one participant per
// booking carries is_self. Discount is per-guest and currently always zero,
// reserved for future per-participant pricing.
type Participant struct {
	BaseSimple
	BookingID  uuid.UUID `db:"booking_id"`
	IsSelf     bool      `db:"is_self"`
	Name       string    `db:"name"`
	Phone      string    `db:"phone"`
	Email      string    `db:"email"`
	UitmMember bool      `db:"uitm_member"`
	Discount   float64   `db:"discount"`
}
