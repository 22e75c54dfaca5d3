package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrSlotTaken surfaces a unique violation on bookings.slot_id: a
	// concurrent materialization already claimed the slot. Retriable by
	// picking another time.
	ErrSlotTaken = errors.New("repository: slot already claimed by another booking")
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
