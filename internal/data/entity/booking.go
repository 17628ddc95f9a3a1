package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	// BookingStatusBooked is the only status a ledger entry can carry.
	// No cancellation state exists; the ledger is append-only.
	BookingStatusBooked BookingStatus = "booked"
)

// BookingEntry is one row of a seat's booking ledger. The ledger is keyed
// by date rather than assuming a 1:1 seat-to-event binding, so a future
// event reschedule does not invalidate historical entries. At most one
// entry may exist per (seat, date) pair.
type BookingEntry struct {
	BaseSimple
	SeatRef       uuid.UUID     `db:"seat_ref"` // seats.id
	BookingDate   time.Time     `db:"booking_date"`
	OccupantName  string        `db:"occupant_name"`
	OccupantEmail string        `db:"occupant_email"`
	OccupantPhone *string       `db:"occupant_phone"`
	Status        BookingStatus `db:"status"`
}

// RosterRow is a ledger entry joined with its seat label, as read back for
// roster listings and close-of-registration fan-out.
type RosterRow struct {
	SeatID        string        `db:"seat_id"`
	BookingDate   time.Time     `db:"booking_date"`
	OccupantName  string        `db:"occupant_name"`
	OccupantEmail string        `db:"occupant_email"`
	OccupantPhone *string       `db:"occupant_phone"`
	Status        BookingStatus `db:"status"`
}
