package entity

import "github.com/google/uuid"

type Seat struct {
	Base
	EventID    uuid.UUID `db:"event_id"`
	SeatID     string    `db:"seat_id"`     // A1, A2, B1, etc.
	SeatRow    string    `db:"seat_row"`    // A, B, C, etc.
	SeatColumn int       `db:"seat_column"` // 1..10
	Price      float64   `db:"price"`
}
