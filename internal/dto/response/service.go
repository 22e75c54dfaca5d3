package response

import (
	"spa-booking/internal/data/entity"
)

type ServiceResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	Category        string  `json:"category"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
}

func ServiceToResponse(svc *entity.Service) ServiceResponse {
	return ServiceResponse{
		ID:              svc.ID.String(),
		Name:            svc.Name,
		Description:     svc.Description,
		Category:        svc.Category,
		Price:           svc.Price,
		DurationMinutes: svc.DurationMinutes,
	}
}
