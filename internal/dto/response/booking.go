package response

import (
	"time"

	"spa-booking/internal/data/entity"
)

type ParticipantResponse struct {
	IsSelf     bool   `json:"is_self"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email,omitempty"`
	UitmMember bool   `json:"uitm_member"`
}

type BookingResponse struct {
	ID             string                `json:"id"`
	BookingRef     string                `json:"booking_ref"`
	CustomerID     string                `json:"customer_id"`
	ServiceName    string                `json:"service_name,omitempty"`
	Date           string                `json:"date,omitempty"`
	StartTime      string                `json:"start_time,omitempty"`
	EndTime        string                `json:"end_time,omitempty"`
	StaffName      string                `json:"staff_name,omitempty"`
	RoomName       string                `json:"room_name,omitempty"`
	TotalAmount    float64               `json:"total_amount"`
	DiscountAmount float64               `json:"discount_amount"`
	FinalAmount    float64               `json:"final_amount"`
	DepositAmount  float64               `json:"deposit_amount"`
	Status         entity.BookingStatus  `json:"status"`
	PaymentMethod  string                `json:"payment_method,omitempty"`
	PaymentStatus  entity.PaymentStatus  `json:"payment_status"`
	ProofReference string                `json:"proof_reference,omitempty"`
	DigitalReceipt string                `json:"digital_receipt,omitempty"`
	Participants   []ParticipantResponse `json:"participants,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
}

type CheckoutResponse struct {
	BookingRefs []string `json:"booking_refs"`
	Method      string   `json:"method"`
	SessionID   string   `json:"session_id,omitempty"`
	CheckoutURL string   `json:"checkout_url,omitempty"`
}

func BookingToResponse(b *entity.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:             b.ID.String(),
		BookingRef:     b.BookingRef,
		CustomerID:     b.CustomerID.String(),
		TotalAmount:    b.TotalAmount,
		DiscountAmount: b.DiscountAmount,
		FinalAmount:    b.FinalAmount,
		DepositAmount:  b.DepositAmount,
		Status:         b.Status,
		PaymentStatus:  b.PaymentStatus,
		CreatedAt:      b.CreatedAt,
	}
	if b.PaymentMethod != nil {
		resp.PaymentMethod = string(*b.PaymentMethod)
	}
	if b.ProofReference != nil {
		resp.ProofReference = *b.ProofReference
	}
	if b.DigitalReceipt != nil {
		resp.DigitalReceipt = *b.DigitalReceipt
	}
	return resp
}

func ParticipantToResponse(p *entity.Participant) ParticipantResponse {
	return ParticipantResponse{
		IsSelf:     p.IsSelf,
		Name:       p.Name,
		Phone:      p.Phone,
		Email:      p.Email,
		UitmMember: p.UitmMember,
	}
}
