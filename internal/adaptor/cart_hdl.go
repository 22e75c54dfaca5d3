package adaptor

import (
	"encoding/json"
	"net/http"

	"spa-booking/internal/dto/request"
	"spa-booking/internal/usecase"
	"spa-booking/pkg/utils"

	"go.uber.org/zap"
)

type CartHandler struct {
	service usecase.CartService
	log     *zap.Logger
}

func NewCartHandler(service usecase.CartService, log *zap.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		log:     log.With(zap.String("handler", "cart")),
	}
}

// GetCart handles GET /api/cart (protected)
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	customerID, ok := utils.GetCustomerIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	cart, err := h.service.Get(r.Context(), customerID)
	if err != nil {
		handleServiceError(w, h.log, err, "get cart")
		return
	}

	utils.ResponseSuccess(w, "success", cart)
}

// SetService handles PUT /api/cart/service (protected)
func (h *CartHandler) SetService(w http.ResponseWriter, r *http.Request) {
	customerID, ok := utils.GetCustomerIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.SetServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	cart, err := h.service.SetService(r.Context(), customerID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "set cart service")
		return
	}

	utils.ResponseSuccess(w, "success", cart)
}

// SetParticipants handles PUT /api/cart/participants (protected)
func (h *CartHandler) SetParticipants(w http.ResponseWriter, r *http.Request) {
	customerID, ok := utils.GetCustomerIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.SetParticipantsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	cart, err := h.service.SetParticipants(r.Context(), customerID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "set cart participants")
		return
	}

	utils.ResponseSuccess(w, "success", cart)
}

// SetSchedule handles PUT /api/cart/schedule (protected)
func (h *CartHandler) SetSchedule(w http.ResponseWriter, r *http.Request) {
	customerID, ok := utils.GetCustomerIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.SetScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	cart, err := h.service.SetSchedule(r.Context(), customerID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "set cart schedule")
		return
	}

	utils.ResponseSuccess(w, "success", cart)
}

// SetPaymentMethod handles PUT /api/cart/payment-method (protected)
func (h *CartHandler) SetPaymentMethod(w http.ResponseWriter, r *http.Request) {
	customerID, ok := utils.GetCustomerIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.SetPaymentMethodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	cart, err := h.service.SetPaymentMethod(r.Context(), customerID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "set cart payment method")
		return
	}

	utils.ResponseSuccess(w, "success", cart)
}

// ResetCart handles DELETE /api/cart (protected)
func (h *CartHandler) ResetCart(w http.ResponseWriter, r *http.Request) {
	customerID, ok := utils.GetCustomerIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.Reset(r.Context(), customerID); err != nil {
		handleServiceError(w, h.log, err, "reset cart")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
