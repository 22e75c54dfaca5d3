package usecase

import (
	"context"
	"fmt"

	"spa-booking/internal/data/entity"
	"spa-booking/internal/data/repository"
	"spa-booking/internal/dto/request"
	"spa-booking/internal/dto/response"
	"spa-booking/pkg/mailer"
	"spa-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AssignmentService is the staff-side verify-and-assign step for manual
// payments: confirming the uploaded receipt and binding staff (and optionally
// a room) to the slot happen in one action.
type AssignmentService interface {
	VerifyAndAssign(ctx context.Context, bookingID uuid.UUID, req *request.VerifyAssignRequest) (*response.BookingResponse, error)
}

type assignmentService struct {
	repo   *repository.Repository
	notify *notifier
	log    *zap.Logger
}

func NewAssignmentService(repo *repository.Repository, notify *notifier, log *zap.Logger) AssignmentService {
	return &assignmentService{
		repo:   repo,
		notify: notify,
		log:    log.With(zap.String("service", "assignment")),
	}
}

// VerifyAndAssign checks preconditions in a fixed order so the caller gets
// the most specific failure: payment state first, then staff availability,
// then room compatibility and availability. Conflict checks and the writes
// share one transaction holding the slot row lock.
func (s *assignmentService) VerifyAndAssign(ctx context.Context, bookingID uuid.UUID, req *request.VerifyAssignRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Verify request validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	staffID, err := uuid.Parse(req.StaffID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid staff id %s", ErrInvalidInput, req.StaffID)
	}
	var roomID *uuid.UUID
	if req.RoomID != "" {
		id, err := uuid.Parse(req.RoomID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid room id %s", ErrInvalidInput, req.RoomID)
		}
		roomID = &id
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, ErrNotFound
	}

	// Validates method, proof presence and pending state; mutates only the
	// in-memory booking. Nothing is persisted until the tx commits.
	if err := applyPaymentEvent(booking, EventProofVerified); err != nil {
		return nil, err
	}

	staff, err := s.repo.Staff.FindByID(ctx, staffID)
	if err != nil {
		return nil, fmt.Errorf("find staff: %w", err)
	}
	if staff == nil || !staff.Active {
		return nil, fmt.Errorf("%w: staff %s", ErrNotFound, staffID.String())
	}

	tx, err := s.repo.DB.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin assignment tx: %w", err)
	}
	defer tx.Rollback(ctx)

	slot, err := s.repo.Slot.FindByIDForUpdate(ctx, tx, booking.SlotID)
	if err != nil {
		return nil, fmt.Errorf("lock slot: %w", err)
	}
	if slot == nil {
		return nil, ErrSlotUnavailable
	}

	staffOverlaps, err := s.repo.Booking.CountActiveResourceOverlaps(
		ctx, tx, repository.ResourceStaff, staffID,
		slot.SlotDate, slot.StartTime, slot.EndTime, &booking.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("check staff conflicts: %w", err)
	}
	if staffOverlaps > 0 {
		return nil, ErrStaffBusy
	}

	var room *entity.Room
	if roomID != nil {
		room, err = s.repo.Room.FindByID(ctx, *roomID)
		if err != nil {
			return nil, fmt.Errorf("find room: %w", err)
		}
		if room == nil || !room.Active {
			return nil, fmt.Errorf("%w: room %s", ErrNotFound, roomID.String())
		}

		svc, err := s.repo.Service.FindByID(ctx, slot.ServiceID)
		if err != nil {
			return nil, fmt.Errorf("find service: %w", err)
		}
		if svc == nil || room.Category != svc.Category {
			return nil, ErrRoomIncompatible
		}

		roomOverlaps, err := s.repo.Booking.CountActiveResourceOverlaps(
			ctx, tx, repository.ResourceRoom, *roomID,
			slot.SlotDate, slot.StartTime, slot.EndTime, &booking.ID,
		)
		if err != nil {
			return nil, fmt.Errorf("check room conflicts: %w", err)
		}
		if roomOverlaps > 0 {
			return nil, ErrRoomBusy
		}
	}

	if err := s.repo.Slot.BindResources(ctx, tx, slot.ID, staffID, roomID); err != nil {
		return nil, fmt.Errorf("bind resources: %w", err)
	}
	paid, err := s.repo.Booking.MarkPaid(ctx, tx, booking.ID, booking.Status)
	if err != nil {
		return nil, fmt.Errorf("mark paid: %w", err)
	}
	if !paid {
		return nil, ErrAlreadyPaid
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit assignment tx: %w", err)
	}

	s.notify.finalize(ctx, booking, mailer.KindConfirmed)

	s.log.Info("Booking verified and assigned",
		zap.String("booking_ref", booking.BookingRef),
		zap.String("staff_id", staffID.String()),
	)

	resp := response.BookingToResponse(booking)
	resp.Date = slot.SlotDate.Format("2006-01-02")
	resp.StartTime = slot.StartTime
	resp.EndTime = slot.EndTime
	resp.StaffName = staff.Name
	if room != nil {
		resp.RoomName = room.Name
	}
	return resp, nil
}
