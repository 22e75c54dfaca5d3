package wire

import (
	"spa-booking/internal/adaptor"
	"spa-booking/internal/data/repository"
	"spa-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Route("/api/admin/bookings", func(r chi.Router) {
		// Require both authentication AND staff role
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Staff(log))

		// GET /api/admin/bookings/{id} - view any booking
		r.Get("/{id}", adminHandler.GetBooking)

		// POST /api/admin/bookings/{id}/verify - confirm payment proof and
		// bind staff/room
		r.Post("/{id}/verify", adminHandler.VerifyBooking)

		// PUT /api/admin/bookings/{id}/cancel - cancel any booking
		r.Put("/{id}/cancel", adminHandler.CancelBooking)

		// DELETE /api/admin/bookings/{id} - remove a finished booking
		r.Delete("/{id}", adminHandler.DeleteBooking)
	})
}
