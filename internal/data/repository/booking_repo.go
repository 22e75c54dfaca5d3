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

// ResourceKind selects which slot binding a conflict probe inspects.
type ResourceKind string

const (
	ResourceStaff ResourceKind = "staff"
	ResourceRoom  ResourceKind = "room"
)

type BookingRepository interface {
	// CreateTx inserts the booking inside the materialization transaction.
	// At most one live (non-cancelled, non-deleted) booking may claim a
	// slot; a unique violation on that claim comes back as ErrSlotTaken.
	CreateTx(ctx context.Context, q Querier, booking *entity.Booking) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByRef(ctx context.Context, ref string) (*entity.Booking, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error)

	SetCheckoutSession(ctx context.Context, bookingID uuid.UUID, sessionID string) error
	AttachProof(ctx context.Context, bookingID uuid.UUID, proofPath string) error
	AttachReceipt(ctx context.Context, bookingID uuid.UUID, receiptPath string) error
	// MarkPaid flips payment_status to paid and sets the post-payment booking
	// status (accepted for verified QR, confirmed for card). The update is
	// conditional on the booking still being unpaid, so a replayed provider
	// callback cannot confirm twice; the bool reports whether this call
	// performed the transition.
	MarkPaid(ctx context.Context, q Querier, bookingID uuid.UUID, status entity.BookingStatus) (bool, error)

	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error
	Delete(ctx context.Context, id uuid.UUID) error

	// CountActiveResourceOverlaps implements the conflict probe: active
	// bookings whose slot shares the date and resource and whose half-open
	// interval [start,end) overlaps the candidate. Runs on the caller's
	// Querier so write paths keep it inside their transaction.
	CountActiveResourceOverlaps(ctx context.Context, q Querier, kind ResourceKind, resourceID uuid.UUID, date time.Time, startTime, endTime string, excludeBookingID *uuid.UUID) (int64, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, booking_ref, customer_id, slot_id, total_amount, discount_amount, final_amount, deposit_amount,
	status, payment_method, payment_status, external_session_id, proof_reference, digital_receipt,
	created_at, updated_at, deleted_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.BookingRef,
		&b.CustomerID,
		&b.SlotID,
		&b.TotalAmount,
		&b.DiscountAmount,
		&b.FinalAmount,
		&b.DepositAmount,
		&b.Status,
		&b.PaymentMethod,
		&b.PaymentStatus,
		&b.ExternalSessionID,
		&b.ProofReference,
		&b.DigitalReceipt,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) CreateTx(ctx context.Context, q Querier, booking *entity.Booking) error {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	query := `
		INSERT INTO bookings (id, booking_ref, customer_id, slot_id, total_amount, discount_amount,
		                      final_amount, deposit_amount, status, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := q.Exec(ctx, query,
		booking.ID,
		booking.BookingRef,
		booking.CustomerID,
		booking.SlotID,
		booking.TotalAmount,
		booking.DiscountAmount,
		booking.FinalAmount,
		booking.DepositAmount,
		booking.Status,
		booking.PaymentStatus,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			r.log.Warn("Slot already claimed by a concurrent booking",
				zap.String("slot_id", booking.SlotID.String()),
				zap.String("booking_ref", booking.BookingRef),
			)
			return ErrSlotTaken
		}
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_ref", booking.BookingRef),
			zap.String("customer_id", booking.CustomerID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.BookingRef, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 AND deleted_at IS NULL`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByRef(ctx context.Context, ref string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_ref = $1 AND deleted_at IS NULL`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, ref))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ref",
			zap.Error(err),
			zap.String("booking_ref", ref),
		)
		return nil, fmt.Errorf("find booking by ref %s: %w", ref, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE customer_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, customerID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by customer ID",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return nil, fmt.Errorf("find bookings by customer ID %s: %w", customerID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE customer_id = $1 AND deleted_at IS NULL`

	var count int64
	if err := r.db.QueryRow(ctx, query, customerID).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by customer ID",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return 0, fmt.Errorf("count bookings by customer ID %s: %w", customerID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) SetCheckoutSession(ctx context.Context, bookingID uuid.UUID, sessionID string) error {
	query := `
		UPDATE bookings
		SET payment_method = 'stripe', external_session_id = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, bookingID, sessionID)
	if err != nil {
		r.log.Error("Failed to set checkout session",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return fmt.Errorf("set checkout session for booking %s: %w", bookingID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

func (r *bookingRepository) AttachProof(ctx context.Context, bookingID uuid.UUID, proofPath string) error {
	query := `
		UPDATE bookings
		SET payment_method = 'qr', proof_reference = $2, payment_status = 'pending', updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, bookingID, proofPath)
	if err != nil {
		r.log.Error("Failed to attach proof",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return fmt.Errorf("attach proof for booking %s: %w", bookingID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

func (r *bookingRepository) AttachReceipt(ctx context.Context, bookingID uuid.UUID, receiptPath string) error {
	query := `UPDATE bookings SET digital_receipt = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, bookingID, receiptPath)
	if err != nil {
		r.log.Error("Failed to attach receipt",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return fmt.Errorf("attach receipt for booking %s: %w", bookingID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

func (r *bookingRepository) MarkPaid(ctx context.Context, q Querier, bookingID uuid.UUID, status entity.BookingStatus) (bool, error) {
	query := `
		UPDATE bookings
		SET payment_status = 'paid', status = $2, updated_at = NOW()
		WHERE id = $1 AND payment_status <> 'paid'
	`

	result, err := q.Exec(ctx, query, bookingID, status)
	if err != nil {
		r.log.Error("Failed to mark booking paid",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return false, fmt.Errorf("mark booking %s paid: %w", bookingID.String(), err)
	}

	// Zero rows means another writer already confirmed the booking.
	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, bookingID, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM bookings WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("delete booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", id.String())
	}

	r.log.Info("Booking deleted", zap.String("booking_id", id.String()))
	return nil
}

// IntervalsOverlap reports whether the half-open ranges [startA,endA) and
// [startB,endB) collide. Back-to-back slots, where one ends exactly when the
// other starts, do not. Slot times are zero-padded "15:04" strings, so
// lexicographic comparison orders them correctly.
func IntervalsOverlap(startA, endA, startB, endB string) bool {
	return startA < endB && endA > startB
}

func (r *bookingRepository) CountActiveResourceOverlaps(ctx context.Context, q Querier, kind ResourceKind, resourceID uuid.UUID, date time.Time, startTime, endTime string, excludeBookingID *uuid.UUID) (int64, error) {
	var column string
	switch kind {
	case ResourceStaff:
		column = "s.staff_id"
	case ResourceRoom:
		column = "s.room_id"
	default:
		return 0, fmt.Errorf("unknown resource kind %q", kind)
	}

	// The time predicate is IntervalsOverlap pushed into SQL. Unassigned
	// slots (NULL resource) never show up because the equality predicate on
	// the resource column filters them out.
	query := `
		SELECT COUNT(*)
		FROM bookings b
		JOIN slots s ON s.id = b.slot_id
		WHERE b.status IN ('pending', 'accepted', 'confirmed')
		  AND b.deleted_at IS NULL
		  AND s.slot_date = $2
		  AND ` + column + ` = $1
		  AND s.start_time < $4
		  AND s.end_time > $3
		  AND ($5::uuid IS NULL OR b.id <> $5)
	`

	var count int64
	err := q.QueryRow(ctx, query, resourceID, date, startTime, endTime, excludeBookingID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count resource overlaps",
			zap.Error(err),
			zap.String("kind", string(kind)),
			zap.String("resource_id", resourceID.String()),
			zap.String("date", date.Format("2006-01-02")),
		)
		return 0, fmt.Errorf("count %s overlaps: %w", string(kind), err)
	}

	return count, nil
}
