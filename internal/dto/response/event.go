package response

import (
	"time"

	"event-seating/internal/data/entity"
	"event-seating/pkg/utils"
)

type EventResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Date               string    `json:"date"`
	Capacity           int       `json:"capacity"`
	SeatPrice          float64   `json:"seat_price"`
	RegistrationClosed bool      `json:"registration_closed"`
	CreatedAt          time.Time `json:"created_at"`
}

func EventToResponse(event *entity.Event) *EventResponse {
	return &EventResponse{
		ID:                 event.ID.String(),
		Name:               event.Name,
		Date:               utils.FormatDate(event.EventDate),
		Capacity:           event.Capacity,
		SeatPrice:          event.SeatPrice,
		RegistrationClosed: event.RegistrationClosed,
		CreatedAt:          event.CreatedAt,
	}
}

func EventsToResponse(events []*entity.Event) []*EventResponse {
	out := make([]*EventResponse, len(events))
	for i, event := range events {
		out[i] = EventToResponse(event)
	}
	return out
}
