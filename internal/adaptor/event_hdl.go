package adaptor

import (
	"encoding/json"
	"net/http"

	"event-seating/internal/dto/request"
	"event-seating/internal/usecase"
	"event-seating/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type EventHandler struct {
	events usecase.EventService
	seats  usecase.SeatService
	log    *zap.Logger
}

func NewEventHandler(events usecase.EventService, seats usecase.SeatService, log *zap.Logger) *EventHandler {
	return &EventHandler{
		events: events,
		seats:  seats,
		log:    log.With(zap.String("handler", "event")),
	}
}

// CreateEvent handles POST /api/events (admin)
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req request.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	event, err := h.events.CreateEvent(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "create event")
		return
	}

	utils.ResponseCreated(w, "success", event)
}

// GetEvent handles GET /api/events/{id}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if eventID == "" {
		utils.ResponseBadRequest(w, "Event ID is required", nil)
		return
	}

	event, err := h.events.GetEvent(r.Context(), eventID)
	if err != nil {
		respondError(w, h.log, err, "get event")
		return
	}

	utils.ResponseSuccess(w, "success", event)
}

// DeleteEvent handles DELETE /api/events/{id} (admin)
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if eventID == "" {
		utils.ResponseBadRequest(w, "Event ID is required", nil)
		return
	}

	if err := h.events.DeleteEvent(r.Context(), eventID); err != nil {
		respondError(w, h.log, err, "delete event")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// ListUpcoming handles GET /api/events/upcoming
func (h *EventHandler) ListUpcoming(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.ListUpcoming(r.Context())
	if err != nil {
		respondError(w, h.log, err, "list upcoming events")
		return
	}

	utils.ResponseSuccess(w, "success", events)
}

// ListPast handles GET /api/events/past
func (h *EventHandler) ListPast(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.ListPast(r.Context())
	if err != nil {
		respondError(w, h.log, err, "list past events")
		return
	}

	utils.ResponseSuccess(w, "success", events)
}

// GetSeatMap handles GET /api/events/{id}/seats
func (h *EventHandler) GetSeatMap(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if eventID == "" {
		utils.ResponseBadRequest(w, "Event ID is required", nil)
		return
	}

	seatMap, err := h.seats.GetSeatMap(r.Context(), eventID)
	if err != nil {
		respondError(w, h.log, err, "get seat map")
		return
	}

	utils.ResponseSuccess(w, "success", seatMap)
}

// RebuildSeats handles POST /api/admin/events/{id}/seats/rebuild (admin)
func (h *EventHandler) RebuildSeats(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if eventID == "" {
		utils.ResponseBadRequest(w, "Event ID is required", nil)
		return
	}

	if err := h.seats.RebuildSeats(r.Context(), eventID); err != nil {
		respondError(w, h.log, err, "rebuild seats")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
