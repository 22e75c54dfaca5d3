package adaptor

import (
	"encoding/json"
	"io"
	"net/http"

	"spa-booking/internal/dto/request"
	"spa-booking/internal/usecase"
	"spa-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxReceiptBytes caps an uploaded payment proof at 5 MB.
const maxReceiptBytes = 5 << 20

type BookingHandler struct {
	bookings usecase.BookingService
	payments usecase.PaymentService
	log      *zap.Logger
}

func NewBookingHandler(bookings usecase.BookingService, payments usecase.PaymentService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		bookings: bookings,
		payments: payments,
		log:      log.With(zap.String("handler", "booking")),
	}
}

// ListBookings handles GET /api/bookings (protected)
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	customerID, ok := utils.GetCustomerIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	bookings, err := h.bookings.GetCustomerBookings(r.Context(), customerID, req)
	if err != nil {
		handleServiceError(w, h.log, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetBooking handles GET /api/bookings/{id} (protected)
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	customerID, ok := utils.GetCustomerIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	booking, err := h.bookings.GetBookingByID(r.Context(), bookingID, customerID, false)
	if err != nil {
		handleServiceError(w, h.log, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// RetryCheckout handles POST /api/bookings/{id}/checkout (protected).
// Re-opens a payment channel for a committed booking that is still unpaid,
// for customers who abandoned or cancelled the first checkout.
func (h *BookingHandler) RetryCheckout(w http.ResponseWriter, r *http.Request) {
	customerID, ok := utils.GetCustomerIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	var req request.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payments.RetryCheckout(r.Context(), customerID, bookingID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "retry checkout")
		return
	}

	utils.ResponseCreated(w, "success", result)
}

// UploadReceipt handles POST /api/bookings/{id}/receipt (protected,
// multipart). Attaches a manual payment proof for staff review.
func (h *BookingHandler) UploadReceipt(w http.ResponseWriter, r *http.Request) {
	customerID, ok := utils.GetCustomerIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxReceiptBytes)
	if err := r.ParseMultipartForm(maxReceiptBytes); err != nil {
		utils.ResponseBadRequest(w, "Invalid multipart form or file too large", nil)
		return
	}

	file, header, err := r.FormFile("receipt")
	if err != nil {
		utils.ResponseBadRequest(w, "Missing receipt file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.log.Error("Failed to read uploaded receipt", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	booking, err := h.payments.UploadProof(r.Context(), bookingID, customerID, header.Filename, data)
	if err != nil {
		handleServiceError(w, h.log, err, "upload receipt")
		return
	}

	utils.ResponseSuccess(w, "Receipt uploaded, awaiting verification", booking)
}
