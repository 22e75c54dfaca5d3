package usecase

import "errors"

// Error taxonomy. Handlers map these to HTTP statuses with errors.Is:
// validation errors carry field detail, conflicts are retriable, stale-state
// errors mean "restart this step", integrity rejections are idempotent no-ops.
var (
	// Validation
	ErrParticipantCount = errors.New("booking: participant count must be between 1 and 3")
	ErrInvalidInput     = errors.New("booking: invalid input")

	// Stale state: restart this step
	ErrEmptyCart   = errors.New("cart: nothing to commit")
	ErrServiceGone = errors.New("cart: selected service no longer exists")
	ErrZeroAmount  = errors.New("cart: computed total must be greater than zero")

	// Conflicts: retriable, pick another time or resource
	ErrSlotUnavailable  = errors.New("booking: slot is no longer available")
	ErrStaffBusy        = errors.New("assignment: staff has a conflicting booking at that time")
	ErrRoomBusy         = errors.New("assignment: room has a conflicting booking at that time")
	ErrRoomIncompatible = errors.New("assignment: room does not match the service category")

	// Payment integrity
	ErrMissingProof      = errors.New("payment: booking has no payment receipt to verify")
	ErrNotManualPayment  = errors.New("payment: booking is not on the manual receipt channel")
	ErrAlreadyPaid       = errors.New("payment: booking is already paid")
	ErrInvalidTransition = errors.New("payment: transition not allowed from current state")
	ErrMockDisabled      = errors.New("payment: mocked checkout is not enabled")

	// Provider
	ErrPaymentProvider = errors.New("payment: provider temporarily unavailable")

	// Access
	ErrNotOwner  = errors.New("booking: booking does not belong to this customer")
	ErrNotFound  = errors.New("booking: not found")
	ErrCannotEnd = errors.New("booking: status does not allow this action")
)
