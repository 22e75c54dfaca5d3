package usecase

import (
	"context"
	"fmt"
	"time"

	"spa-booking/internal/data/repository"
	"spa-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AvailabilityService interface {
	GetAvailableDates(ctx context.Context, serviceID uuid.UUID, year, month int) (*response.MonthAvailabilityResponse, error)
	GetAvailableSlots(ctx context.Context, serviceID uuid.UUID, date time.Time) ([]response.SlotResponse, error)
}

type availabilityService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo: repo,
		log:  log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) GetAvailableDates(ctx context.Context, serviceID uuid.UUID, year, month int) (*response.MonthAvailabilityResponse, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidInput)
	}
	if year < 2000 || year > 2100 {
		return nil, fmt.Errorf("%w: year %d out of range", ErrInvalidInput, year)
	}

	svc, err := s.repo.Service.FindByID(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("find service: %w", err)
	}
	if svc == nil || !svc.Active {
		return nil, ErrNotFound
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	dates, err := s.repo.Slot.FindAvailableDatesForMonth(ctx, serviceID, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("find available dates: %w", err)
	}

	return response.DatesToResponse(fmt.Sprintf("%04d-%02d", year, month), dates), nil
}

func (s *availabilityService) GetAvailableSlots(ctx context.Context, serviceID uuid.UUID, date time.Time) ([]response.SlotResponse, error) {
	svc, err := s.repo.Service.FindByID(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("find service: %w", err)
	}
	if svc == nil || !svc.Active {
		return nil, ErrNotFound
	}

	slots, err := s.repo.Slot.FindAvailableByServiceAndDate(ctx, serviceID, date)
	if err != nil {
		return nil, fmt.Errorf("find available slots: %w", err)
	}

	result := make([]response.SlotResponse, 0, len(slots))
	for _, slot := range slots {
		result = append(result, response.SlotToResponse(slot))
	}

	return result, nil
}
