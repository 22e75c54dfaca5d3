package wire

import (
	"spa-booking/internal/adaptor"
	"spa-booking/internal/data/repository"
	"spa-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCart(
	r chi.Router,
	cartHandler *adaptor.CartHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// All cart routes act on the authenticated customer's own draft.
	r.Route("/api/cart", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Get("/", cartHandler.GetCart)
		r.Delete("/", cartHandler.ResetCart)
		r.Put("/service", cartHandler.SetService)
		r.Put("/participants", cartHandler.SetParticipants)
		r.Put("/schedule", cartHandler.SetSchedule)
		r.Put("/payment-method", cartHandler.SetPaymentMethod)
	})
}
