package adaptor

import (
	"encoding/json"
	"net/http"

	"spa-booking/internal/dto/request"
	"spa-booking/internal/usecase"
	"spa-booking/pkg/utils"

	"go.uber.org/zap"
)

type CheckoutHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewCheckoutHandler(service usecase.PaymentService, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		log:     log.With(zap.String("handler", "checkout")),
	}
}

// Checkout handles POST /api/checkout (protected). Commits the cart and
// dispatches the chosen payment channel.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	customerID, ok := utils.GetCustomerIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.Checkout(r.Context(), customerID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "checkout")
		return
	}

	utils.ResponseCreated(w, "success", result)
}

// CheckoutSuccess handles GET /api/checkout/success?session_id= (public).
// The payment provider redirects the customer here after a completed card
// payment; the session id is the only trusted input.
func (h *CheckoutHandler) CheckoutSuccess(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")

	refs, err := h.service.CompleteCheckout(r.Context(), sessionID)
	if err != nil {
		handleServiceError(w, h.log, err, "complete checkout")
		return
	}

	utils.ResponseSuccess(w, "Payment confirmed", map[string]any{"booking_refs": refs})
}

// CheckoutCancel handles GET /api/checkout/cancel (public). Nothing to undo:
// bookings stay unpaid and the customer can reopen payment later through
// POST /api/bookings/{id}/checkout.
func (h *CheckoutHandler) CheckoutCancel(w http.ResponseWriter, r *http.Request) {
	h.log.Info("Checkout cancelled by customer")
	utils.ResponseSuccess(w, "Checkout cancelled, booking remains unpaid", nil)
}
