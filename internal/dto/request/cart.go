package request

type SetServiceRequest struct {
	ServiceID string `json:"service_id" validate:"required,uuid4"`
}

type ParticipantInput struct {
	IsSelf     bool   `json:"is_self"`
	Name       string `json:"name" validate:"required,min=2,max=100"`
	Phone      string `json:"phone" validate:"required,min=7,max=20"`
	Email      string `json:"email" validate:"omitempty,email"`
	UitmMember bool   `json:"uitm_member"`
}

type SetParticipantsRequest struct {
	Participants []ParticipantInput `json:"participants" validate:"required,min=1,max=3,dive"`
}

type SetScheduleRequest struct {
	SlotID string `json:"slot_id" validate:"required,uuid4"`
}

type SetPaymentMethodRequest struct {
	Method string `json:"method" validate:"required,oneof=qr stripe"`
}
