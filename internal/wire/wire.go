// internal/wire/wire.go
package wire

import (
	"net/http"

	"spa-booking/internal/adaptor"
	"spa-booking/internal/data/repository"
	"spa-booking/internal/usecase"
	"spa-booking/pkg/mailer"
	"spa-booking/pkg/middleware"
	"spa-booking/pkg/payment"
	"spa-booking/pkg/storage"
	"spa-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired HTTP surface.
type App struct {
	Router *chi.Mux
}

// Wiring builds the use-case layer from its collaborators and registers all
// routes.
func Wiring(
	repo *repository.Repository,
	drafts repository.DraftStore,
	provider payment.CheckoutProvider,
	files storage.FileStore,
	sender mailer.Sender,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, drafts, provider, files, sender, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireCart(r, handler.Cart, repo, logger)
	wireCatalog(r, handler.Catalog)
	wireCheckout(r, handler.Checkout, repo, logger)
	wireBooking(r, handler.Booking, repo, logger)
	wireAdmin(r, handler.Admin, repo, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
