package adaptor

import (
	"errors"
	"net/http"

	"spa-booking/internal/data/repository"
	"spa-booking/internal/usecase"
	"spa-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Cart     *CartHandler
	Catalog  *CatalogHandler
	Checkout *CheckoutHandler
	Booking  *BookingHandler
	Admin    *AdminHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Cart:     NewCartHandler(service.Cart, log),
		Catalog:  NewCatalogHandler(service.Catalog, service.Availability, log),
		Checkout: NewCheckoutHandler(service.Payment, log),
		Booking:  NewBookingHandler(service.Booking, service.Payment, log),
		Admin:    NewAdminHandler(service.Booking, service.Assignment, log),
	}
}

// handleServiceError maps use-case sentinels to HTTP statuses. Client-caused
// failures echo the error text; anything unexpected stays a generic 500.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, usecase.ErrParticipantCount):
		log.Warn("Invalid input for "+operation, zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrNotOwner),
		errors.Is(err, usecase.ErrMockDisabled):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, usecase.ErrEmptyCart),
		errors.Is(err, usecase.ErrZeroAmount),
		errors.Is(err, usecase.ErrMissingProof),
		errors.Is(err, usecase.ErrNotManualPayment),
		errors.Is(err, usecase.ErrCannotEnd):
		log.Warn(operation+" failed - unprocessable state", zap.Error(err))
		utils.ResponseUnprocessable(w, err.Error())

	case errors.Is(err, repository.ErrSlotTaken),
		errors.Is(err, usecase.ErrSlotUnavailable),
		errors.Is(err, usecase.ErrServiceGone),
		errors.Is(err, usecase.ErrStaffBusy),
		errors.Is(err, usecase.ErrRoomBusy),
		errors.Is(err, usecase.ErrRoomIncompatible),
		errors.Is(err, usecase.ErrAlreadyPaid),
		errors.Is(err, usecase.ErrInvalidTransition):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrPaymentProvider):
		log.Error(operation+" failed - payment provider", zap.Error(err))
		utils.ResponseServiceUnavailable(w, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
