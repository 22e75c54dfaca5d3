package adaptor

import (
	"encoding/json"
	"net/http"

	"spa-booking/internal/dto/request"
	"spa-booking/internal/usecase"
	"spa-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AdminHandler struct {
	bookings   usecase.BookingService
	assignment usecase.AssignmentService
	log        *zap.Logger
}

func NewAdminHandler(bookings usecase.BookingService, assignment usecase.AssignmentService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		bookings:   bookings,
		assignment: assignment,
		log:        log.With(zap.String("handler", "admin")),
	}
}

// GetBooking handles GET /api/admin/bookings/{id} (staff only)
func (h *AdminHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	booking, err := h.bookings.GetBookingByID(r.Context(), bookingID, uuid.Nil, true)
	if err != nil {
		handleServiceError(w, h.log, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// VerifyBooking handles POST /api/admin/bookings/{id}/verify (staff only).
// Confirms the uploaded payment proof and binds staff/room in one step.
func (h *AdminHandler) VerifyBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	var req request.VerifyAssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.assignment.VerifyAndAssign(r.Context(), bookingID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "verify booking")
		return
	}

	utils.ResponseSuccess(w, "Booking verified and assigned", booking)
}

// CancelBooking handles PUT /api/admin/bookings/{id}/cancel (staff only)
func (h *AdminHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	if err := h.bookings.Cancel(r.Context(), bookingID, uuid.Nil, true); err != nil {
		handleServiceError(w, h.log, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "Booking cancelled", nil)
}

// DeleteBooking handles DELETE /api/admin/bookings/{id} (staff only)
func (h *AdminHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	if err := h.bookings.Delete(r.Context(), bookingID); err != nil {
		handleServiceError(w, h.log, err, "delete booking")
		return
	}

	utils.ResponseSuccess(w, "Booking deleted", nil)
}
