package repository

import (
	"context"
	"fmt"
	"time"

	"spa-booking/internal/data/entity"
	"spa-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SlotRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Slot, error)
	// FindByIDForUpdate locks the slot row for the duration of the caller's
	// transaction so conflict check and claim cannot interleave.
	FindByIDForUpdate(ctx context.Context, q Querier, id uuid.UUID) (*entity.Slot, error)

	// Availability index projections. Read-only, unlocked; staleness is
	// resolved at commit time by the slot claim.
	FindAvailableByServiceAndDate(ctx context.Context, serviceID uuid.UUID, date time.Time) ([]*entity.Slot, error)
	FindAvailableDatesForMonth(ctx context.Context, serviceID uuid.UUID, monthStart, monthEnd time.Time) ([]time.Time, error)

	UpdateStatus(ctx context.Context, q Querier, slotID uuid.UUID, status entity.SlotStatus) error
	// BindResources sets the staff/room pair and flips the slot to booked in
	// one statement, inside the caller's assignment transaction.
	BindResources(ctx context.Context, q Querier, slotID uuid.UUID, staffID uuid.UUID, roomID *uuid.UUID) error
}

type slotRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSlotRepository(db database.PgxIface, log *zap.Logger) SlotRepository {
	return &slotRepository{
		db:  db,
		log: log.With(zap.String("repository", "slot")),
	}
}

const slotColumns = `id, service_id, slot_date, start_time, end_time, staff_id, room_id, status, created_at, updated_at`

func scanSlot(row pgx.Row) (*entity.Slot, error) {
	var slot entity.Slot
	err := row.Scan(
		&slot.ID,
		&slot.ServiceID,
		&slot.SlotDate,
		&slot.StartTime,
		&slot.EndTime,
		&slot.StaffID,
		&slot.RoomID,
		&slot.Status,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *slotRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots WHERE id = $1`

	slot, err := scanSlot(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find slot by ID",
			zap.Error(err),
			zap.String("slot_id", id.String()),
		)
		return nil, fmt.Errorf("find slot by ID %s: %w", id.String(), err)
	}

	return slot, nil
}

func (r *slotRepository) FindByIDForUpdate(ctx context.Context, q Querier, id uuid.UUID) (*entity.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots WHERE id = $1 FOR UPDATE`

	slot, err := scanSlot(q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to lock slot row",
			zap.Error(err),
			zap.String("slot_id", id.String()),
		)
		return nil, fmt.Errorf("lock slot %s: %w", id.String(), err)
	}

	return slot, nil
}

func (r *slotRepository) FindAvailableByServiceAndDate(ctx context.Context, serviceID uuid.UUID, date time.Time) ([]*entity.Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM slots
		WHERE service_id = $1 AND slot_date = $2 AND status = 'available'
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, serviceID, date)
	if err != nil {
		r.log.Error("Failed to find available slots",
			zap.Error(err),
			zap.String("service_id", serviceID.String()),
			zap.String("date", date.Format("2006-01-02")),
		)
		return nil, fmt.Errorf("find available slots for service %s: %w", serviceID.String(), err)
	}
	defer rows.Close()

	var slots []*entity.Slot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			r.log.Error("Failed to scan slot row", zap.Error(err))
			return nil, fmt.Errorf("scan slot row: %w", err)
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

func (r *slotRepository) FindAvailableDatesForMonth(ctx context.Context, serviceID uuid.UUID, monthStart, monthEnd time.Time) ([]time.Time, error) {
	query := `
		SELECT DISTINCT slot_date
		FROM slots
		WHERE service_id = $1 AND slot_date >= $2 AND slot_date < $3 AND status = 'available'
		ORDER BY slot_date
	`

	rows, err := r.db.Query(ctx, query, serviceID, monthStart, monthEnd)
	if err != nil {
		r.log.Error("Failed to find available dates",
			zap.Error(err),
			zap.String("service_id", serviceID.String()),
			zap.String("month_start", monthStart.Format("2006-01-02")),
		)
		return nil, fmt.Errorf("find available dates for service %s: %w", serviceID.String(), err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			r.log.Error("Failed to scan date row", zap.Error(err))
			return nil, fmt.Errorf("scan date row: %w", err)
		}
		dates = append(dates, d)
	}

	return dates, nil
}

func (r *slotRepository) UpdateStatus(ctx context.Context, q Querier, slotID uuid.UUID, status entity.SlotStatus) error {
	query := `UPDATE slots SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := q.Exec(ctx, query, slotID, status)
	if err != nil {
		r.log.Error("Failed to update slot status",
			zap.Error(err),
			zap.String("slot_id", slotID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update slot %s status to %s: %w", slotID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("slot %s not found", slotID.String())
	}

	return nil
}

func (r *slotRepository) BindResources(ctx context.Context, q Querier, slotID uuid.UUID, staffID uuid.UUID, roomID *uuid.UUID) error {
	query := `
		UPDATE slots
		SET staff_id = $2, room_id = $3, status = 'booked', updated_at = NOW()
		WHERE id = $1
	`

	result, err := q.Exec(ctx, query, slotID, staffID, roomID)
	if err != nil {
		r.log.Error("Failed to bind slot resources",
			zap.Error(err),
			zap.String("slot_id", slotID.String()),
			zap.String("staff_id", staffID.String()),
		)
		return fmt.Errorf("bind resources for slot %s: %w", slotID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("slot %s not found", slotID.String())
	}

	return nil
}
