package repository

import (
	"context"

	"spa-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// Querier is the query surface shared by the pool and an open transaction.
// Repository methods that must run inside the caller's transaction take a
// Querier so the conflict check and the write share one lock scope.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Repository struct {
	// DB is exposed so usecases can open the transaction that spans a
	// conflict check and its write.
	DB database.PgxIface

	Session     SessionRepository
	Customer    CustomerRepository
	Service     ServiceRepository
	Staff       StaffRepository
	Room        RoomRepository
	Slot        SlotRepository
	Booking     BookingRepository
	Participant ParticipantRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		DB:          db,
		Session:     NewSessionRepository(db, log),
		Customer:    NewCustomerRepository(db, log),
		Service:     NewServiceRepository(db, log),
		Staff:       NewStaffRepository(db, log),
		Room:        NewRoomRepository(db, log),
		Slot:        NewSlotRepository(db, log),
		Booking:     NewBookingRepository(db, log),
		Participant: NewParticipantRepository(db, log),
	}
}
