package wire

import (
	"spa-booking/internal/adaptor"
	"spa-booking/internal/data/repository"
	"spa-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCheckout(
	r chi.Router,
	checkoutHandler *adaptor.CheckoutHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// POST /api/checkout - commit the cart and dispatch payment
		r.Post("/api/checkout", checkoutHandler.Checkout)
	})

	// Provider redirects land here without a session header; the session id
	// in the query string is the credential.
	r.Get("/api/checkout/success", checkoutHandler.CheckoutSuccess)
	r.Get("/api/checkout/cancel", checkoutHandler.CheckoutCancel)
}
