package wire

import (
	"spa-booking/internal/adaptor"
	"spa-booking/internal/data/repository"
	"spa-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Route("/api/bookings", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// GET /api/bookings - the customer's own booking history
		r.Get("/", bookingHandler.ListBookings)

		// GET /api/bookings/{id} - booking detail (owner only)
		r.Get("/{id}", bookingHandler.GetBooking)

		// POST /api/bookings/{id}/checkout - reopen payment for an unpaid booking
		r.Post("/{id}/checkout", bookingHandler.RetryCheckout)

		// POST /api/bookings/{id}/receipt - manual payment proof upload
		r.Post("/{id}/receipt", bookingHandler.UploadReceipt)
	})
}
