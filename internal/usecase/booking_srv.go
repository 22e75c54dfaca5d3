package usecase

import (
	"context"
	"fmt"

	"spa-booking/internal/data/entity"
	"spa-booking/internal/data/repository"
	"spa-booking/internal/dto/request"
	"spa-booking/internal/dto/response"
	"spa-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	Commit(ctx context.Context, customerID uuid.UUID) (*response.BookingResponse, error)
	GetCustomerBookings(ctx context.Context, customerID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[*response.BookingResponse], error)
	GetBookingByID(ctx context.Context, bookingID, requesterID uuid.UUID, isStaff bool) (*response.BookingResponse, error)
	Cancel(ctx context.Context, bookingID, requesterID uuid.UUID, isStaff bool) error
	Delete(ctx context.Context, bookingID uuid.UUID) error
}

type bookingService struct {
	repo   *repository.Repository
	drafts repository.DraftStore
	rates  PricingRates
	log    *zap.Logger
}

func NewBookingService(repo *repository.Repository, drafts repository.DraftStore, rates PricingRates, log *zap.Logger) BookingService {
	return &bookingService{
		repo:   repo,
		drafts: drafts,
		rates:  rates,
		log:    log.With(zap.String("service", "booking")),
	}
}

// Commit materializes the customer's draft into a persisted booking. The slot
// row is locked for the whole transaction; the unique index on
// bookings.slot_id is the safety net if two commits race past the lock.
// Pricing is recomputed from the live service price, never from the draft.
func (s *bookingService) Commit(ctx context.Context, customerID uuid.UUID) (*response.BookingResponse, error) {
	draft, err := s.drafts.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if draft == nil || draft.ServiceID == nil || draft.Schedule == nil {
		return nil, ErrEmptyCart
	}

	tx, err := s.repo.DB.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin commit tx: %w", err)
	}
	defer tx.Rollback(ctx)

	slot, err := s.repo.Slot.FindByIDForUpdate(ctx, tx, draft.Schedule.SlotID)
	if err != nil {
		return nil, fmt.Errorf("lock slot: %w", err)
	}
	if slot == nil || slot.Status != entity.SlotStatusAvailable {
		return nil, ErrSlotUnavailable
	}

	svc, err := s.repo.Service.FindActiveByID(ctx, tx, *draft.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("resolve service: %w", err)
	}
	if svc == nil {
		return nil, ErrServiceGone
	}

	participants := draft.Participants
	if len(participants) == 0 {
		customer, err := s.repo.Customer.FindByID(ctx, customerID)
		if err != nil {
			return nil, fmt.Errorf("load customer: %w", err)
		}
		if customer == nil {
			return nil, ErrNotFound
		}
		participants = []entity.DraftParticipant{
			{
				IsSelf:     true,
				Name:       customer.Name,
				Phone:      customer.Phone,
				Email:      customer.Email,
				UitmMember: customer.UitmMember,
			},
		}
	}

	quote, err := Price(svc.Price, len(participants), draftIsMember(draft), s.rates)
	if err != nil {
		return nil, err
	}
	if quote.Total <= 0 {
		return nil, ErrZeroAmount
	}

	booking := &entity.Booking{
		BookingRef:     utils.GenerateBookingRef(),
		CustomerID:     customerID,
		SlotID:         slot.ID,
		TotalAmount:    quote.Subtotal,
		DiscountAmount: quote.Discount,
		FinalAmount:    quote.Total,
		DepositAmount:  quote.Deposit,
		Status:         entity.BookingStatusPending,
		PaymentStatus:  entity.PaymentStatusUnpaid,
		PaymentMethod:  draft.Payment.Method,
	}

	if err := s.repo.Booking.CreateTx(ctx, tx, booking); err != nil {
		return nil, err
	}

	rows := make([]*entity.Participant, len(participants))
	for i, p := range participants {
		rows[i] = &entity.Participant{
			BookingID:  booking.ID,
			IsSelf:     p.IsSelf,
			Name:       p.Name,
			Phone:      p.Phone,
			Email:      p.Email,
			UitmMember: p.UitmMember,
		}
	}
	if err := s.repo.Participant.CreateBatchTx(ctx, tx, rows); err != nil {
		return nil, fmt.Errorf("create participants: %w", err)
	}

	if err := s.repo.Slot.UpdateStatus(ctx, tx, slot.ID, entity.SlotStatusBooked); err != nil {
		return nil, fmt.Errorf("mark slot booked: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit booking tx: %w", err)
	}

	// Service and schedule leave the draft; the payment choice survives so
	// checkout can pick it up without re-asking.
	draft.ServiceID = nil
	draft.Service = nil
	draft.Schedule = nil
	draft.Pricing = entity.DraftPricing{}
	if err := s.drafts.Save(ctx, draft); err != nil {
		s.log.Warn("Failed to clear draft after commit",
			zap.String("customer_id", customerID.String()),
			zap.Error(err),
		)
	}

	s.log.Info("Booking materialized",
		zap.String("booking_ref", booking.BookingRef),
		zap.String("customer_id", customerID.String()),
		zap.String("slot_id", slot.ID.String()),
		zap.Float64("final_amount", booking.FinalAmount),
	)

	return s.enrich(ctx, booking)
}

func (s *bookingService) GetCustomerBookings(ctx context.Context, customerID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[*response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindByCustomerID(ctx, customerID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByCustomerID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	items := make([]*response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp, err := s.enrich(ctx, b)
		if err != nil {
			return nil, err
		}
		items = append(items, resp)
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID, requesterID uuid.UUID, isStaff bool) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, ErrNotFound
	}
	if !isStaff && booking.CustomerID != requesterID {
		return nil, ErrNotOwner
	}

	return s.enrich(ctx, booking)
}

func (s *bookingService) Cancel(ctx context.Context, bookingID, requesterID uuid.UUID, isStaff bool) error {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return ErrNotFound
	}
	if !isStaff && booking.CustomerID != requesterID {
		return ErrNotOwner
	}
	if !booking.Status.IsActive() {
		return ErrCannotEnd
	}

	if err := s.repo.Booking.UpdateStatus(ctx, bookingID, entity.BookingStatusCancelled); err != nil {
		return fmt.Errorf("cancel booking: %w", err)
	}

	// Cancellation releases the slot back to availability.
	if err := s.repo.Slot.UpdateStatus(ctx, s.repo.DB, booking.SlotID, entity.SlotStatusAvailable); err != nil {
		s.log.Error("Failed to release slot after cancellation",
			zap.String("booking_id", bookingID.String()),
			zap.String("slot_id", booking.SlotID.String()),
			zap.Error(err),
		)
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_ref", booking.BookingRef),
		zap.Bool("by_staff", isStaff),
	)

	return nil
}

func (s *bookingService) Delete(ctx context.Context, bookingID uuid.UUID) error {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return ErrNotFound
	}
	if booking.Status.IsActive() {
		// Active bookings must be cancelled first so the slot is released.
		return ErrCannotEnd
	}

	if err := s.repo.Booking.Delete(ctx, bookingID); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}

	s.log.Info("Booking deleted", zap.String("booking_ref", booking.BookingRef))

	return nil
}

// enrich joins slot, service, staff, room and participant rows onto the
// booking response.
func (s *bookingService) enrich(ctx context.Context, booking *entity.Booking) (*response.BookingResponse, error) {
	resp := response.BookingToResponse(booking)

	slot, err := s.repo.Slot.FindByID(ctx, booking.SlotID)
	if err != nil {
		return nil, fmt.Errorf("find slot: %w", err)
	}
	if slot != nil {
		resp.Date = slot.SlotDate.Format("2006-01-02")
		resp.StartTime = slot.StartTime
		resp.EndTime = slot.EndTime

		svc, err := s.repo.Service.FindByID(ctx, slot.ServiceID)
		if err == nil && svc != nil {
			resp.ServiceName = svc.Name
		}
		if slot.StaffID != nil {
			staff, err := s.repo.Staff.FindByID(ctx, *slot.StaffID)
			if err == nil && staff != nil {
				resp.StaffName = staff.Name
			}
		}
		if slot.RoomID != nil {
			room, err := s.repo.Room.FindByID(ctx, *slot.RoomID)
			if err == nil && room != nil {
				resp.RoomName = room.Name
			}
		}
	}

	participants, err := s.repo.Participant.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("find participants: %w", err)
	}
	for _, p := range participants {
		resp.Participants = append(resp.Participants, response.ParticipantToResponse(p))
	}

	return resp, nil
}
