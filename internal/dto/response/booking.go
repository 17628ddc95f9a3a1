package response

import (
	"event-seating/internal/data/entity"
	"event-seating/pkg/utils"
)

type BookingResponse struct {
	SeatID        string `json:"seat_id"`
	Date          string `json:"date"`
	OccupantName  string `json:"name"`
	OccupantEmail string `json:"email"`
	Status        string `json:"status"`
}

type RosterRowResponse struct {
	SeatID        string  `json:"seat_id"`
	Date          string  `json:"date"`
	OccupantName  string  `json:"name"`
	OccupantEmail string  `json:"email"`
	OccupantPhone *string `json:"phone,omitempty"`
	Status        string  `json:"status"`
}

func RosterToResponse(rows []*entity.RosterRow) []*RosterRowResponse {
	out := make([]*RosterRowResponse, len(rows))
	for i, row := range rows {
		out[i] = &RosterRowResponse{
			SeatID:        row.SeatID,
			Date:          utils.FormatDate(row.BookingDate),
			OccupantName:  row.OccupantName,
			OccupantEmail: row.OccupantEmail,
			OccupantPhone: row.OccupantPhone,
			Status:        string(row.Status),
		}
	}
	return out
}
