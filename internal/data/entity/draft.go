package entity

import (
	"time"

	"github.com/google/uuid"
)

// Draft is the customer's in-progress selection, held per customer in the
// session cache, never in the relational store. It is created on first access
// and destroyed on successful commit or explicit reset.
type Draft struct {
	CustomerID   uuid.UUID          `json:"customer_id"`
	ServiceID    *uuid.UUID         `json:"service_id,omitempty"`
	Service      *ServiceSnapshot   `json:"service,omitempty"`
	Participants []DraftParticipant `json:"participants"`
	Schedule     *DraftSchedule     `json:"schedule,omitempty"`
	Payment      DraftPayment       `json:"payment"`
	Pricing      DraftPricing       `json:"pricing"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// ServiceSnapshot captures name/price/duration at selection time so a price
// change mid-flow does not silently alter an in-progress draft. Commit
// re-resolves the live service anyway.
type ServiceSnapshot struct {
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
}

type DraftParticipant struct {
	IsSelf     bool   `json:"is_self"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email,omitempty"`
	UitmMember bool   `json:"uitm_member"`
}

type DraftSchedule struct {
	Date      string     `json:"date"`
	SlotID    uuid.UUID  `json:"slot_id"`
	StartTime string     `json:"start_time"`
	EndTime   string     `json:"end_time"`
	StaffID   *uuid.UUID `json:"staff_id,omitempty"`
	StaffName string     `json:"staff_name,omitempty"`
}

type DraftPayment struct {
	Method            *PaymentMethod `json:"method,omitempty"`
	Status            PaymentStatus  `json:"status"`
	ExternalSessionID *string        `json:"external_session_id,omitempty"`
}

// DraftPricing is recomputed server-side on every draft mutation; a
// client-submitted total is never trusted.
type DraftPricing struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
	Deposit  float64 `json:"deposit"`
}
