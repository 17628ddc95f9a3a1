package wire

import (
	"net/http"

	"event-seating/internal/adaptor"
	"event-seating/internal/data/repository"
	"event-seating/internal/notifier"
	"event-seating/internal/usecase"
	"event-seating/pkg/middleware"
	"event-seating/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired application.
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers and routes.
func Wiring(repo *repository.Repository, config *utils.Config, gateway notifier.Notifier, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, gateway, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(handler *adaptor.Handler, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.Requester(config.Admin.TokenHash, logger))

	wireEvent(r, handler.Event, logger)
	wireBooking(r, handler.Booking, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
