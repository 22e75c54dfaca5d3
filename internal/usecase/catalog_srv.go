package usecase

import (
	"context"
	"fmt"

	"spa-booking/internal/data/repository"
	"spa-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogService serves the read-only service list backing cart selection.
type CatalogService interface {
	GetServices(ctx context.Context) ([]response.ServiceResponse, error)
	GetServiceByID(ctx context.Context, id uuid.UUID) (*response.ServiceResponse, error)
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) GetServices(ctx context.Context) ([]response.ServiceResponse, error) {
	services, err := s.repo.Service.FindAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}

	result := make([]response.ServiceResponse, 0, len(services))
	for _, svc := range services {
		result = append(result, response.ServiceToResponse(svc))
	}
	return result, nil
}

func (s *catalogService) GetServiceByID(ctx context.Context, id uuid.UUID) (*response.ServiceResponse, error) {
	svc, err := s.repo.Service.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find service: %w", err)
	}
	if svc == nil || !svc.Active {
		return nil, ErrNotFound
	}
	resp := response.ServiceToResponse(svc)
	return &resp, nil
}
