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

type BookingHandler struct {
	reservations usecase.ReservationService
	lifecycle    usecase.LifecycleService
	log          *zap.Logger
}

func NewBookingHandler(reservations usecase.ReservationService, lifecycle usecase.LifecycleService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		reservations: reservations,
		lifecycle:    lifecycle,
		log:          log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/events/{id}/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if eventID == "" {
		utils.ResponseBadRequest(w, "Event ID is required", nil)
		return
	}

	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	requester := utils.GetRequesterFromContext(r.Context())

	bookings, err := h.reservations.Book(r.Context(), eventID, &req, requester)
	if err != nil {
		respondError(w, h.log, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "success", bookings)
}

// GetRoster handles GET /api/events/{id}/bookings (admin)
func (h *BookingHandler) GetRoster(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if eventID == "" {
		utils.ResponseBadRequest(w, "Event ID is required", nil)
		return
	}

	roster, err := h.lifecycle.GetRoster(r.Context(), eventID)
	if err != nil {
		respondError(w, h.log, err, "get roster")
		return
	}

	utils.ResponseSuccess(w, "success", roster)
}

// CloseRegistration handles POST /api/events/{id}/close (admin)
func (h *BookingHandler) CloseRegistration(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if eventID == "" {
		utils.ResponseBadRequest(w, "Event ID is required", nil)
		return
	}

	event, err := h.lifecycle.CloseRegistration(r.Context(), eventID)
	if err != nil {
		respondError(w, h.log, err, "close registration")
		return
	}

	utils.ResponseSuccess(w, "success", event)
}
