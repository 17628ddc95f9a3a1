package repository

import (
	"context"
	"fmt"

	"event-seating/internal/data/entity"
	"event-seating/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SeatRepository interface {
	CreateBatch(ctx context.Context, seats []*entity.Seat) error
	CountByEvent(ctx context.Context, eventID uuid.UUID) (int, error)
	FindByEvent(ctx context.Context, eventID uuid.UUID) ([]*entity.Seat, error)
	DeleteByEvent(ctx context.Context, eventID uuid.UUID) error

	// LockForBooking loads the referenced seats FOR UPDATE in a stable
	// order. Must run inside a transaction.
	LockForBooking(ctx context.Context, eventID uuid.UUID, seatIDs []string) ([]*entity.Seat, error)

	// WithTx returns a copy bound to the given transaction.
	WithTx(tx pgx.Tx) SeatRepository
}

type seatRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewSeatRepository(db database.Querier, log *zap.Logger) SeatRepository {
	return &seatRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat")),
	}
}

func (r *seatRepository) WithTx(tx pgx.Tx) SeatRepository {
	return &seatRepository{db: tx, log: r.log}
}

func (r *seatRepository) CreateBatch(ctx context.Context, seats []*entity.Seat) error {
	if len(seats) == 0 {
		return nil
	}

	// Build batch insert
	query := `INSERT INTO seats (id, event_id, seat_id, seat_row, seat_column, price, created_at, updated_at) VALUES `
	args := []interface{}{}

	for i, seat := range seats {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			i*8+1, i*8+2, i*8+3, i*8+4, i*8+5, i*8+6, i*8+7, i*8+8)

		args = append(args,
			seat.ID,
			seat.EventID,
			seat.SeatID,
			seat.SeatRow,
			seat.SeatColumn,
			seat.Price,
			seat.CreatedAt,
			seat.UpdatedAt,
		)
	}

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("duplicate seat label under event: %w", entity.ErrConflict)
		}
		r.log.Error("Failed to create batch seats",
			zap.Error(err),
			zap.Int("count", len(seats)),
		)
		return fmt.Errorf("create batch seats: %w", err)
	}

	return nil
}

func (r *seatRepository) CountByEvent(ctx context.Context, eventID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM seats WHERE event_id = $1`

	var count int
	if err := r.db.QueryRow(ctx, query, eventID).Scan(&count); err != nil {
		r.log.Error("Failed to count seats",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
		)
		return 0, fmt.Errorf("count seats: %w", err)
	}

	return count, nil
}

func (r *seatRepository) FindByEvent(ctx context.Context, eventID uuid.UUID) ([]*entity.Seat, error) {
	query := `
		SELECT id, event_id, seat_id, seat_row, seat_column, price, created_at, updated_at
		FROM seats
		WHERE event_id = $1
		ORDER BY seat_row, seat_column
	`

	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		r.log.Error("Failed to find seats by event",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
		)
		return nil, fmt.Errorf("find seats: %w", err)
	}
	defer rows.Close()

	return scanSeats(rows)
}

func (r *seatRepository) LockForBooking(ctx context.Context, eventID uuid.UUID, seatIDs []string) ([]*entity.Seat, error) {
	if len(seatIDs) == 0 {
		return []*entity.Seat{}, nil
	}

	// Stable lock order keeps concurrent overlapping batches from
	// deadlocking on each other.
	query := `
		SELECT id, event_id, seat_id, seat_row, seat_column, price, created_at, updated_at
		FROM seats
		WHERE event_id = $1 AND seat_id = ANY($2)
		ORDER BY seat_row, seat_column
		FOR UPDATE
	`

	rows, err := r.db.Query(ctx, query, eventID, seatIDs)
	if err != nil {
		r.log.Error("Failed to lock seats for booking",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
			zap.Int("seat_count", len(seatIDs)),
		)
		return nil, fmt.Errorf("lock seats: %w", err)
	}
	defer rows.Close()

	return scanSeats(rows)
}

func (r *seatRepository) DeleteByEvent(ctx context.Context, eventID uuid.UUID) error {
	query := `DELETE FROM seats WHERE event_id = $1`

	_, err := r.db.Exec(ctx, query, eventID)
	if err != nil {
		r.log.Error("Failed to delete seats by event",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
		)
		return fmt.Errorf("delete seats: %w", err)
	}

	return nil
}

func scanSeats(rows pgx.Rows) ([]*entity.Seat, error) {
	var seats []*entity.Seat
	for rows.Next() {
		var seat entity.Seat
		err := rows.Scan(
			&seat.ID,
			&seat.EventID,
			&seat.SeatID,
			&seat.SeatRow,
			&seat.SeatColumn,
			&seat.Price,
			&seat.CreatedAt,
			&seat.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan seat: %w", err)
		}
		seats = append(seats, &seat)
	}

	return seats, nil
}
