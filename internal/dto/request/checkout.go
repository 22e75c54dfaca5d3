package request

type CheckoutRequest struct {
	Method string `json:"method" validate:"required,oneof=qr stripe mock"`
}

type VerifyAssignRequest struct {
	StaffID string `json:"staff_id" validate:"required,uuid4"`
	RoomID  string `json:"room_id" validate:"omitempty,uuid4"`
}
