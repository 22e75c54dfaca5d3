package entity

import (
	"time"

	"github.com/google/uuid"
)

type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusBooked    SlotStatus = "booked"
	SlotStatusBlocked   SlotStatus = "blocked"
)

// Slot is a concrete bookable (service, date, time) unit. The
// (service_id, slot_date, start_time) triple is unique; staff and room may be
// bound later by assignment. Times are wall-clock "15:04" strings, so string
// comparison orders them correctly.
type Slot struct {
	BaseNoDelete
	ServiceID uuid.UUID  `db:"service_id"`
	SlotDate  time.Time  `db:"slot_date"`
	StartTime string     `db:"start_time"`
	EndTime   string     `db:"end_time"`
	StaffID   *uuid.UUID `db:"staff_id"`
	RoomID    *uuid.UUID `db:"room_id"`
	Status    SlotStatus `db:"status"`
}
