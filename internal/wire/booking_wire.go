package wire

import (
	"event-seating/internal/adaptor"
	"event-seating/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, log *zap.Logger) {
	// ==================== PUBLIC ROUTES ====================
	// Booking is open to any caller; the requester middleware decides
	// whether the closed-registration override applies.
	r.Post("/api/events/{id}/bookings", bookingHandler.CreateBooking)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Admin(log))

		r.Get("/api/events/{id}/bookings", bookingHandler.GetRoster)
		r.Post("/api/events/{id}/close", bookingHandler.CloseRegistration)
	})
}
