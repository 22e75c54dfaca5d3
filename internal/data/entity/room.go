package entity

// Room category must match the booked service's category when a room is
// assigned to a booking.
type Room struct {
	Base
	Name     string `db:"name"`
	Category string `db:"category"`
	Active   bool   `db:"active"`
}
