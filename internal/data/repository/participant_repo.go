package repository

import (
	"context"
	"fmt"
	"time"

	"spa-booking/internal/data/entity"
	"spa-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ParticipantRepository interface {
	// CreateBatchTx inserts all participants of a booking inside the
	// materialization transaction.
	CreateBatchTx(ctx context.Context, q Querier, participants []*entity.Participant) error
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Participant, error)
}

type participantRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewParticipantRepository(db database.PgxIface, log *zap.Logger) ParticipantRepository {
	return &participantRepository{
		db:  db,
		log: log.With(zap.String("repository", "participant")),
	}
}

func (r *participantRepository) CreateBatchTx(ctx context.Context, q Querier, participants []*entity.Participant) error {
	query := `
		INSERT INTO participants (id, booking_id, is_self, name, phone, email, uitm_member, discount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	for _, p := range participants {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = time.Now()
		}

		_, err := q.Exec(ctx, query,
			p.ID,
			p.BookingID,
			p.IsSelf,
			p.Name,
			p.Phone,
			p.Email,
			p.UitmMember,
			p.Discount,
			p.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to create participant",
				zap.Error(err),
				zap.String("booking_id", p.BookingID.String()),
				zap.String("name", p.Name),
			)
			return fmt.Errorf("create participant for booking %s: %w", p.BookingID.String(), err)
		}
	}

	return nil
}

func (r *participantRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Participant, error) {
	query := `
		SELECT id, booking_id, is_self, name, phone, email, uitm_member, discount, created_at
		FROM participants
		WHERE booking_id = $1
		ORDER BY is_self DESC, created_at
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find participants by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find participants by booking ID %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var participants []*entity.Participant
	for rows.Next() {
		var p entity.Participant
		err := rows.Scan(
			&p.ID,
			&p.BookingID,
			&p.IsSelf,
			&p.Name,
			&p.Phone,
			&p.Email,
			&p.UitmMember,
			&p.Discount,
			&p.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan participant row", zap.Error(err))
			return nil, fmt.Errorf("scan participant row: %w", err)
		}
		participants = append(participants, &p)
	}

	return participants, nil
}
