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

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	FindByDate(ctx context.Context, date time.Time) (*entity.Event, error)
	ListUpcoming(ctx context.Context, today time.Time) ([]*entity.Event, error)
	ListPast(ctx context.Context, today time.Time) ([]*entity.Event, error)
	CloseRegistration(ctx context.Context, id uuid.UUID, closedAt time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a copy bound to the given transaction.
	WithTx(tx pgx.Tx) EventRepository
}

type eventRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewEventRepository(db database.Querier, log *zap.Logger) EventRepository {
	return &eventRepository{
		db:  db,
		log: log.With(zap.String("repository", "event")),
	}
}

func (r *eventRepository) WithTx(tx pgx.Tx) EventRepository {
	return &eventRepository{db: tx, log: r.log}
}

const eventColumns = `id, name, event_date, capacity, seat_price, registration_closed, created_at, updated_at`

func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	query := `
		INSERT INTO events (id, name, event_date, capacity, seat_price, registration_closed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		event.ID,
		event.Name,
		event.EventDate,
		event.Capacity,
		event.SeatPrice,
		event.RegistrationClosed,
		event.CreatedAt,
		event.UpdatedAt,
	)

	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("event date %s already taken: %w",
				event.EventDate.Format("2006-01-02"), entity.ErrConflict)
		}
		r.log.Error("Failed to create event",
			zap.Error(err),
			zap.String("event_id", event.ID.String()),
		)
		return fmt.Errorf("create event: %w", err)
	}

	return nil
}

func (r *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event, err := r.scanOne(r.db.QueryRow(ctx, query, id))
	if err != nil {
		r.log.Error("Failed to find event by ID",
			zap.Error(err),
			zap.String("event_id", id.String()),
		)
		return nil, fmt.Errorf("find event: %w", err)
	}

	return event, nil
}

func (r *eventRepository) FindByDate(ctx context.Context, date time.Time) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE event_date = $1`

	event, err := r.scanOne(r.db.QueryRow(ctx, query, date))
	if err != nil {
		r.log.Error("Failed to find event by date",
			zap.Error(err),
			zap.Time("event_date", date),
		)
		return nil, fmt.Errorf("find event by date: %w", err)
	}

	return event, nil
}

func (r *eventRepository) ListUpcoming(ctx context.Context, today time.Time) ([]*entity.Event, error) {
	// Strictly after today: same-day events are never bookable, so they do
	// not show up as upcoming either.
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE event_date > $1 AND registration_closed = false
		ORDER BY event_date ASC
	`

	return r.list(ctx, query, today)
}

func (r *eventRepository) ListPast(ctx context.Context, today time.Time) ([]*entity.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE event_date < $1 OR registration_closed = true
		ORDER BY event_date DESC
	`

	return r.list(ctx, query, today)
}

func (r *eventRepository) CloseRegistration(ctx context.Context, id uuid.UUID, closedAt time.Time) error {
	query := `
		UPDATE events
		SET registration_closed = true, updated_at = $2
		WHERE id = $1 AND registration_closed = false
	`

	result, err := r.db.Exec(ctx, query, id, closedAt)
	if err != nil {
		r.log.Error("Failed to close registration",
			zap.Error(err),
			zap.String("event_id", id.String()),
		)
		return fmt.Errorf("close registration: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("registration already closed: %w", entity.ErrConflict)
	}

	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM events WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete event",
			zap.Error(err),
			zap.String("event_id", id.String()),
		)
		return fmt.Errorf("delete event: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("event %s: %w", id.String(), entity.ErrNotFound)
	}

	return nil
}

func (r *eventRepository) scanOne(row pgx.Row) (*entity.Event, error) {
	var event entity.Event
	err := row.Scan(
		&event.ID,
		&event.Name,
		&event.EventDate,
		&event.Capacity,
		&event.SeatPrice,
		&event.RegistrationClosed,
		&event.CreatedAt,
		&event.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &event, nil
}

func (r *eventRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Event, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list events", zap.Error(err))
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []*entity.Event
	for rows.Next() {
		var event entity.Event
		err := rows.Scan(
			&event.ID,
			&event.Name,
			&event.EventDate,
			&event.Capacity,
			&event.SeatPrice,
			&event.RegistrationClosed,
			&event.CreatedAt,
			&event.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan event row", zap.Error(err))
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, &event)
	}

	return events, nil
}
