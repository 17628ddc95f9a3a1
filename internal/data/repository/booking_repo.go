package repository

import (
	"context"
	"fmt"
	"time"

	"event-seating/internal/data/entity"
	"event-seating/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	// AppendBatch inserts ledger entries. The unique (seat_ref, booking_date)
	// index is the store-level backstop of the double-booking guard; a
	// violation surfaces as entity.ErrConflict.
	AppendBatch(ctx context.Context, entries []*entity.BookingEntry) error

	// BookedSeatRefs returns which of the given seats already carry a
	// ledger entry for the date.
	BookedSeatRefs(ctx context.Context, seatRefs []uuid.UUID, date time.Time) (map[uuid.UUID]struct{}, error)

	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*entity.RosterRow, error)
	CountByEvent(ctx context.Context, eventID uuid.UUID) (int64, error)

	// WithTx returns a copy bound to the given transaction.
	WithTx(tx pgx.Tx) BookingRepository
}

type bookingRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewBookingRepository(db database.Querier, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) WithTx(tx pgx.Tx) BookingRepository {
	return &bookingRepository{db: tx, log: r.log}
}

func (r *bookingRepository) AppendBatch(ctx context.Context, entries []*entity.BookingEntry) error {
	if len(entries) == 0 {
		return nil
	}

	query := `INSERT INTO seat_bookings (id, seat_ref, booking_date, occupant_name, occupant_email, occupant_phone, status, created_at) VALUES `
	args := []interface{}{}

	for i, e := range entries {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			i*8+1, i*8+2, i*8+3, i*8+4, i*8+5, i*8+6, i*8+7, i*8+8)

		args = append(args,
			e.ID,
			e.SeatRef,
			e.BookingDate,
			e.OccupantName,
			e.OccupantEmail,
			e.OccupantPhone,
			e.Status,
			e.CreatedAt,
		)
	}

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("seat already booked for date: %w", entity.ErrConflict)
		}
		r.log.Error("Failed to append booking entries",
			zap.Error(err),
			zap.Int("count", len(entries)),
		)
		return fmt.Errorf("append booking entries: %w", err)
	}

	return nil
}

func (r *bookingRepository) BookedSeatRefs(ctx context.Context, seatRefs []uuid.UUID, date time.Time) (map[uuid.UUID]struct{}, error) {
	if len(seatRefs) == 0 {
		return map[uuid.UUID]struct{}{}, nil
	}

	query := `
		SELECT seat_ref
		FROM seat_bookings
		WHERE seat_ref = ANY($1) AND booking_date = $2
	`

	rows, err := r.db.Query(ctx, query, seatRefs, date)
	if err != nil {
		r.log.Error("Failed to query booked seats",
			zap.Error(err),
			zap.Int("seat_count", len(seatRefs)),
		)
		return nil, fmt.Errorf("query booked seats: %w", err)
	}
	defer rows.Close()

	booked := make(map[uuid.UUID]struct{})
	for rows.Next() {
		var ref uuid.UUID
		if err := rows.Scan(&ref); err != nil {
			r.log.Error("Failed to scan booked seat row", zap.Error(err))
			return nil, fmt.Errorf("scan booked seat: %w", err)
		}
		booked[ref] = struct{}{}
	}

	return booked, nil
}

func (r *bookingRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*entity.RosterRow, error) {
	query := `
		SELECT s.seat_id, b.booking_date, b.occupant_name, b.occupant_email, b.occupant_phone, b.status
		FROM seat_bookings b
		INNER JOIN seats s ON s.id = b.seat_ref
		WHERE s.event_id = $1
		ORDER BY s.seat_row, s.seat_column, b.booking_date
	`

	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		r.log.Error("Failed to list bookings by event",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
		)
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var roster []*entity.RosterRow
	for rows.Next() {
		var row entity.RosterRow
		err := rows.Scan(
			&row.SeatID,
			&row.BookingDate,
			&row.OccupantName,
			&row.OccupantEmail,
			&row.OccupantPhone,
			&row.Status,
		)
		if err != nil {
			r.log.Error("Failed to scan roster row", zap.Error(err))
			return nil, fmt.Errorf("scan roster row: %w", err)
		}
		roster = append(roster, &row)
	}

	return roster, nil
}

func (r *bookingRepository) CountByEvent(ctx context.Context, eventID uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM seat_bookings b
		INNER JOIN seats s ON s.id = b.seat_ref
		WHERE s.event_id = $1
	`

	var count int64
	if err := r.db.QueryRow(ctx, query, eventID).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by event",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
		)
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}
