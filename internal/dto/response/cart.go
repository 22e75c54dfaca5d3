package response

import (
	"spa-booking/internal/data/entity"
)

type CartResponse struct {
	ServiceID    string                    `json:"service_id,omitempty"`
	Service      *entity.ServiceSnapshot   `json:"service,omitempty"`
	Participants []entity.DraftParticipant `json:"participants"`
	Schedule     *entity.DraftSchedule     `json:"schedule,omitempty"`
	Payment      entity.DraftPayment       `json:"payment"`
	Pricing      entity.DraftPricing       `json:"pricing"`
}

func DraftToResponse(draft *entity.Draft) *CartResponse {
	resp := &CartResponse{
		Service:      draft.Service,
		Participants: draft.Participants,
		Schedule:     draft.Schedule,
		Payment:      draft.Payment,
		Pricing:      draft.Pricing,
	}
	if draft.ServiceID != nil {
		resp.ServiceID = draft.ServiceID.String()
	}
	return resp
}
