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

// CartService is the draft store contract: every mutation validates its slice
// of input, recomputes pricing server-side, and returns the updated cart.
// Nothing touches the relational store until commit.
type CartService interface {
	Get(ctx context.Context, customerID uuid.UUID) (*response.CartResponse, error)
	SetService(ctx context.Context, customerID uuid.UUID, req *request.SetServiceRequest) (*response.CartResponse, error)
	SetParticipants(ctx context.Context, customerID uuid.UUID, req *request.SetParticipantsRequest) (*response.CartResponse, error)
	SetSchedule(ctx context.Context, customerID uuid.UUID, req *request.SetScheduleRequest) (*response.CartResponse, error)
	SetPaymentMethod(ctx context.Context, customerID uuid.UUID, req *request.SetPaymentMethodRequest) (*response.CartResponse, error)
	Reset(ctx context.Context, customerID uuid.UUID) error
}

type cartService struct {
	repo   *repository.Repository
	drafts repository.DraftStore
	rates  PricingRates
	log    *zap.Logger
}

func NewCartService(repo *repository.Repository, drafts repository.DraftStore, rates PricingRates, log *zap.Logger) CartService {
	return &cartService{
		repo:   repo,
		drafts: drafts,
		rates:  rates,
		log:    log.With(zap.String("service", "cart")),
	}
}

// loadOrCreate returns the customer's draft, creating a default one seeded
// with the customer's own contact info as participant 0 when absent.
func (s *cartService) loadOrCreate(ctx context.Context, customerID uuid.UUID) (*entity.Draft, error) {
	draft, err := s.drafts.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if draft != nil {
		return draft, nil
	}

	customer, err := s.repo.Customer.FindByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("load customer %s: %w", customerID.String(), err)
	}

	draft = &entity.Draft{
		CustomerID: customerID,
		Payment:    entity.DraftPayment{Status: entity.PaymentStatusUnpaid},
	}
	if customer != nil {
		draft.Participants = []entity.DraftParticipant{
			{
				IsSelf:     true,
				Name:       customer.Name,
				Phone:      customer.Phone,
				Email:      customer.Email,
				UitmMember: customer.UitmMember,
			},
		}
	}

	return draft, nil
}

// reprice recomputes the draft's money breakdown from the service snapshot
// and participant list. Client-submitted totals are never trusted.
func (s *cartService) reprice(draft *entity.Draft) {
	if draft.Service == nil {
		draft.Pricing = entity.DraftPricing{}
		return
	}

	count := len(draft.Participants)
	if count == 0 {
		count = 1
	}

	quote, err := Price(draft.Service.Price, count, draftIsMember(draft), s.rates)
	if err != nil {
		// Participant counts are clamped at the input boundary; keep the
		// previous pricing rather than zeroing a valid cart.
		s.log.Warn("Repricing skipped", zap.Error(err))
		return
	}

	draft.Pricing = entity.DraftPricing{
		Subtotal: quote.Subtotal,
		Discount: quote.Discount,
		Total:    quote.Total,
		Deposit:  quote.Deposit,
	}
}

// draftIsMember reports whether the booking customer (the self participant)
// holds a UiTM membership. Guests keep their own flags for the reserved
// per-participant discount, which is always zero today.
func draftIsMember(draft *entity.Draft) bool {
	for _, p := range draft.Participants {
		if p.IsSelf && p.UitmMember {
			return true
		}
	}
	return false
}

func (s *cartService) Get(ctx context.Context, customerID uuid.UUID) (*response.CartResponse, error) {
	draft, err := s.loadOrCreate(ctx, customerID)
	if err != nil {
		return nil, err
	}

	s.reprice(draft)
	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, err
	}

	return response.DraftToResponse(draft), nil
}

func (s *cartService) SetService(ctx context.Context, customerID uuid.UUID, req *request.SetServiceRequest) (*response.CartResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Set service validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid service id %s", ErrInvalidInput, req.ServiceID)
	}

	svc, err := s.repo.Service.FindByID(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("find service: %w", err)
	}
	if svc == nil || !svc.Active {
		return nil, ErrServiceGone
	}

	draft, err := s.loadOrCreate(ctx, customerID)
	if err != nil {
		return nil, err
	}

	draft.ServiceID = &svc.ID
	draft.Service = &entity.ServiceSnapshot{
		Name:            svc.Name,
		Category:        svc.Category,
		Price:           svc.Price,
		DurationMinutes: svc.DurationMinutes,
	}
	// A new service invalidates the previously picked time.
	draft.Schedule = nil

	s.reprice(draft)
	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, err
	}

	s.log.Info("Cart service set",
		zap.String("customer_id", customerID.String()),
		zap.String("service_id", svc.ID.String()),
	)

	return response.DraftToResponse(draft), nil
}

func (s *cartService) SetParticipants(ctx context.Context, customerID uuid.UUID, req *request.SetParticipantsRequest) (*response.CartResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Set participants validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	if len(req.Participants) < 1 || len(req.Participants) > 3 {
		return nil, ErrParticipantCount
	}

	selfCount := 0
	for _, p := range req.Participants {
		if p.IsSelf {
			selfCount++
		}
	}
	if selfCount > 1 {
		return nil, fmt.Errorf("%w: at most one participant may be marked as yourself", ErrInvalidInput)
	}

	draft, err := s.loadOrCreate(ctx, customerID)
	if err != nil {
		return nil, err
	}

	participants := make([]entity.DraftParticipant, len(req.Participants))
	for i, p := range req.Participants {
		participants[i] = entity.DraftParticipant{
			IsSelf:     p.IsSelf,
			Name:       p.Name,
			Phone:      p.Phone,
			Email:      p.Email,
			UitmMember: p.UitmMember,
		}
	}
	draft.Participants = participants

	s.reprice(draft)
	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, err
	}

	return response.DraftToResponse(draft), nil
}

func (s *cartService) SetSchedule(ctx context.Context, customerID uuid.UUID, req *request.SetScheduleRequest) (*response.CartResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Set schedule validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	slotID, err := uuid.Parse(req.SlotID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid slot id %s", ErrInvalidInput, req.SlotID)
	}

	draft, err := s.loadOrCreate(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if draft.ServiceID == nil {
		return nil, fmt.Errorf("%w: pick a service before a time", ErrInvalidInput)
	}

	slot, err := s.repo.Slot.FindByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("find slot: %w", err)
	}
	if slot == nil || slot.Status != entity.SlotStatusAvailable || slot.ServiceID != *draft.ServiceID {
		return nil, ErrSlotUnavailable
	}

	// Pre-bound staff must be free at this time. This is an advisory check
	// against committed state; commit re-validates under the slot row lock.
	if slot.StaffID != nil {
		overlaps, err := s.repo.Booking.CountActiveResourceOverlaps(
			ctx, s.repo.DB, repository.ResourceStaff, *slot.StaffID,
			slot.SlotDate, slot.StartTime, slot.EndTime, nil,
		)
		if err != nil {
			return nil, fmt.Errorf("check staff availability: %w", err)
		}
		if overlaps > 0 {
			return nil, ErrSlotUnavailable
		}
	}

	schedule := &entity.DraftSchedule{
		Date:      slot.SlotDate.Format("2006-01-02"),
		SlotID:    slot.ID,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		StaffID:   slot.StaffID,
	}
	if slot.StaffID != nil {
		staff, err := s.repo.Staff.FindByID(ctx, *slot.StaffID)
		if err == nil && staff != nil {
			schedule.StaffName = staff.Name
		}
	}
	draft.Schedule = schedule

	s.reprice(draft)
	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, err
	}

	s.log.Info("Cart schedule set",
		zap.String("customer_id", customerID.String()),
		zap.String("slot_id", slot.ID.String()),
		zap.String("date", schedule.Date),
		zap.String("start_time", schedule.StartTime),
	)

	return response.DraftToResponse(draft), nil
}

func (s *cartService) SetPaymentMethod(ctx context.Context, customerID uuid.UUID, req *request.SetPaymentMethodRequest) (*response.CartResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Set payment method validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	draft, err := s.loadOrCreate(ctx, customerID)
	if err != nil {
		return nil, err
	}

	method := entity.PaymentMethod(req.Method)
	draft.Payment.Method = &method

	s.reprice(draft)
	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, err
	}

	return response.DraftToResponse(draft), nil
}

func (s *cartService) Reset(ctx context.Context, customerID uuid.UUID) error {
	return s.drafts.Delete(ctx, customerID)
}
