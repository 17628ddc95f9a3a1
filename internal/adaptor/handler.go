package adaptor

import (
	"errors"
	"net/http"

	"event-seating/internal/data/entity"
	"event-seating/internal/usecase"
	"event-seating/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Event   *EventHandler
	Booking *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Event:   NewEventHandler(service.Event, service.Seat, log),
		Booking: NewBookingHandler(service.Reservation, service.Lifecycle, log),
	}
}

// respondError maps the core error taxonomy onto HTTP. Internal errors are
// reported generically so storage details never leak.
func respondError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, entity.ErrInvalidInput):
		log.Warn(operation+" rejected - invalid input", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, entity.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, entity.ErrConflict):
		log.Warn(operation+" rejected - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
