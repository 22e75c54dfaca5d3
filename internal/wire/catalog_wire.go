package wire

import (
	"spa-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCatalog(r chi.Router, catalogHandler *adaptor.CatalogHandler) {
	// Browsing the catalog and availability needs no session.
	r.Route("/api/services", func(r chi.Router) {
		r.Get("/", catalogHandler.ListServices)
		r.Get("/{id}", catalogHandler.GetService)
		r.Get("/{id}/availability", catalogHandler.GetAvailability)
		r.Get("/{id}/slots", catalogHandler.GetSlots)
	})
}
