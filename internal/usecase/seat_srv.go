package usecase

import (
	"context"
	"fmt"
	"time"

	"event-seating/internal/data/entity"
	"event-seating/internal/data/repository"
	"event-seating/internal/dto/response"
	"event-seating/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const (
	seatRows    = 26 // A..Z
	seatColumns = 10 // 1..10

	// MaxCapacity is the largest seat count the row/column scheme can
	// represent. Larger capacities must be rejected upstream.
	MaxCapacity = seatRows * seatColumns
)

type SeatService interface {
	// EnsureSeats makes the inventory for eventID hold exactly capacity
	// seats. It runs against the store handed in by the caller so that the
	// event-creation path can call it inside its own transaction.
	//
	// When the stored count is already >= capacity this is a no-op.
	// Otherwise existing seats are cleared and the full deterministic set
	// is regenerated, which destroys any bookings attached to them;
	// callers must not invoke it once a booking exists.
	EnsureSeats(ctx context.Context, seats repository.SeatRepository, eventID uuid.UUID, capacity int, price float64) error

	// RebuildSeats is the explicit admin re-initialization entry point.
	// It refuses to run once any booking exists.
	RebuildSeats(ctx context.Context, eventID string) error

	GetSeatMap(ctx context.Context, eventID string) (*response.SeatMapResponse, error)
}

type seatService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewSeatService(repo *repository.Repository, log *zap.Logger) SeatService {
	return &seatService{
		repo: repo,
		log:  log.With(zap.String("service", "seat")),
	}
}

// GenerateSeats produces the deterministic seat set for an event: rows
// A..Z, columns 1..10, row-major, stopping at capacity. Capacity beyond
// MaxCapacity is truncated; rejecting it is the caller's contract.
func GenerateSeats(eventID uuid.UUID, capacity int, price float64, now time.Time) []*entity.Seat {
	if capacity > MaxCapacity {
		capacity = MaxCapacity
	}

	seats := make([]*entity.Seat, 0, capacity)
	for i := 0; i < capacity; i++ {
		row := string(rune('A' + i/seatColumns))
		col := i%seatColumns + 1
		seats = append(seats, &entity.Seat{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			EventID:    eventID,
			SeatID:     fmt.Sprintf("%s%d", row, col),
			SeatRow:    row,
			SeatColumn: col,
			Price:      price,
		})
	}

	return seats
}

func (s *seatService) EnsureSeats(ctx context.Context, seats repository.SeatRepository, eventID uuid.UUID, capacity int, price float64) error {
	count, err := seats.CountByEvent(ctx, eventID)
	if err != nil {
		return fmt.Errorf("count seats: %w", err)
	}

	// Idempotent: repeated calls with the same or smaller capacity leave
	// the inventory alone.
	if count >= capacity {
		return nil
	}

	if err := seats.DeleteByEvent(ctx, eventID); err != nil {
		return fmt.Errorf("clear seats: %w", err)
	}

	generated := GenerateSeats(eventID, capacity, price, time.Now())
	if err := seats.CreateBatch(ctx, generated); err != nil {
		return fmt.Errorf("regenerate seats: %w", err)
	}

	s.log.Info("Seat inventory generated",
		zap.String("event_id", eventID.String()),
		zap.Int("previous_count", count),
		zap.Int("capacity", capacity),
	)

	return nil
}

func (s *seatService) RebuildSeats(ctx context.Context, eventID string) error {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return fmt.Errorf("invalid event ID %s: %w", eventID, entity.ErrInvalidInput)
	}

	event, err := s.repo.Event.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if event == nil {
		return fmt.Errorf("event %s: %w", eventID, entity.ErrNotFound)
	}

	// Regeneration clears the ledger with the seats, so it is only legal
	// while no booking exists.
	bookings, err := s.repo.Booking.CountByEvent(ctx, id)
	if err != nil {
		return err
	}
	if bookings > 0 {
		return fmt.Errorf("event %s has %d bookings, seats cannot be rebuilt: %w",
			eventID, bookings, entity.ErrConflict)
	}

	err = s.repo.InTx(ctx, pgx.TxOptions{}, func(txRepo *repository.Repository) error {
		return s.EnsureSeats(ctx, txRepo.Seat, id, event.Capacity, event.SeatPrice)
	})
	if err != nil {
		return err
	}

	s.log.Info("Seat inventory rebuilt",
		zap.String("event_id", eventID),
		zap.Int("capacity", event.Capacity),
	)

	return nil
}

func (s *seatService) GetSeatMap(ctx context.Context, eventID string) (*response.SeatMapResponse, error) {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID %s: %w", eventID, entity.ErrInvalidInput)
	}

	event, err := s.repo.Event.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, fmt.Errorf("event %s: %w", eventID, entity.ErrNotFound)
	}

	// Pure read: the seat map never triggers re-initialization, no matter
	// how the stored count compares to the event capacity.
	seats, err := s.repo.Seat.FindByEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	refs := make([]uuid.UUID, len(seats))
	for i, seat := range seats {
		refs[i] = seat.ID
	}

	booked, err := s.repo.Booking.BookedSeatRefs(ctx, refs, event.EventDate)
	if err != nil {
		return nil, err
	}

	resp := &response.SeatMapResponse{
		EventID: event.ID.String(),
		Date:    utils.FormatDate(event.EventDate),
		Seats:   make([]response.SeatResponse, len(seats)),
	}
	for i, seat := range seats {
		_, isBooked := booked[seat.ID]
		resp.Seats[i] = response.SeatResponse{
			SeatID: seat.SeatID,
			Row:    seat.SeatRow,
			Column: seat.SeatColumn,
			Price:  seat.Price,
			Booked: isBooked,
		}
	}

	return resp, nil
}
