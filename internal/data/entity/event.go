package entity

import "time"

type Event struct {
	Base
	Name               string    `db:"name"`
	EventDate          time.Time `db:"event_date"` // date only, midnight UTC
	Capacity           int       `db:"capacity"`
	SeatPrice          float64   `db:"seat_price"`
	RegistrationClosed bool      `db:"registration_closed"`
}
