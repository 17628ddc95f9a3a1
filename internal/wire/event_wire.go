package wire

import (
	"event-seating/internal/adaptor"
	"event-seating/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireEvent(r chi.Router, eventHandler *adaptor.EventHandler, log *zap.Logger) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/events/upcoming", eventHandler.ListUpcoming)
	r.Get("/api/events/past", eventHandler.ListPast)
	r.Get("/api/events/{id}", eventHandler.GetEvent)
	r.Get("/api/events/{id}/seats", eventHandler.GetSeatMap)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Admin(log))

		r.Post("/api/events", eventHandler.CreateEvent)
		r.Delete("/api/events/{id}", eventHandler.DeleteEvent)

		// Explicit re-initialization is the only seat rebuild entry point
		// besides event creation; reads never trigger it.
		r.Post("/api/admin/events/{id}/seats/rebuild", eventHandler.RebuildSeats)
	})
}
