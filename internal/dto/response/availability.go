package response

import (
	"time"

	"spa-booking/internal/data/entity"
)

type SlotResponse struct {
	ID        string `json:"id"`
	ServiceID string `json:"service_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	StaffID   string `json:"staff_id,omitempty"`
}

type MonthAvailabilityResponse struct {
	Month string   `json:"month"`
	Dates []string `json:"dates"`
}

func SlotToResponse(slot *entity.Slot) SlotResponse {
	resp := SlotResponse{
		ID:        slot.ID.String(),
		ServiceID: slot.ServiceID.String(),
		Date:      slot.SlotDate.Format("2006-01-02"),
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
	}
	if slot.StaffID != nil {
		resp.StaffID = slot.StaffID.String()
	}
	return resp
}

func DatesToResponse(month string, dates []time.Time) *MonthAvailabilityResponse {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format("2006-01-02")
	}
	return &MonthAvailabilityResponse{Month: month, Dates: out}
}
