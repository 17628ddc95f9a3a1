package repository

import (
	"context"
	"fmt"

	"event-seating/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	DB database.PgxIface

	Event   EventRepository
	Seat    SeatRepository
	Booking BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		DB:      db,
		Event:   NewEventRepository(db, log),
		Seat:    NewSeatRepository(db, log),
		Booking: NewBookingRepository(db, log),
	}
}

// InTx begins a transaction with the given options and runs fn against a
// copy of the repository whose stores are bound to that transaction. fn
// returning an error rolls everything back.
func (r *Repository) InTx(ctx context.Context, opts pgx.TxOptions, fn func(txRepo *Repository) error) error {
	tx, err := r.DB.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	txRepo := &Repository{
		DB:      r.DB,
		Event:   r.Event.WithTx(tx),
		Seat:    r.Seat.WithTx(tx),
		Booking: r.Booking.WithTx(tx),
	}

	if err := fn(txRepo); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}
