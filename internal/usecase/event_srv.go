package usecase

import (
	"context"
	"fmt"
	"time"

	"event-seating/internal/data/entity"
	"event-seating/internal/data/repository"
	"event-seating/internal/dto/request"
	"event-seating/internal/dto/response"
	"event-seating/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type EventService interface {
	CreateEvent(ctx context.Context, req *request.CreateEventRequest) (*response.EventResponse, error)
	DeleteEvent(ctx context.Context, eventID string) error
	GetEvent(ctx context.Context, eventID string) (*response.EventResponse, error)
	ListUpcoming(ctx context.Context) ([]*response.EventResponse, error)
	ListPast(ctx context.Context) ([]*response.EventResponse, error)
}

type eventService struct {
	repo  *repository.Repository
	seats SeatService
	clock func() time.Time
	log   *zap.Logger
}

func NewEventService(repo *repository.Repository, seats SeatService, clock func() time.Time, log *zap.Logger) EventService {
	return &eventService{
		repo:  repo,
		seats: seats,
		clock: clock,
		log:   log.With(zap.String("service", "event")),
	}
}

func (s *eventService) CreateEvent(ctx context.Context, req *request.CreateEventRequest) (*response.EventResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create event validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%s: %w", utils.FormatValidationErrors(errs), entity.ErrInvalidInput)
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %s: %w", req.Date, entity.ErrInvalidInput)
	}

	today := utils.DateOnly(s.clock())
	if date.Equal(today) {
		return nil, fmt.Errorf("cannot create an event for today: %w", entity.ErrInvalidInput)
	}

	existing, err := s.repo.Event.FindByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("an event already exists on %s: %w", req.Date, entity.ErrConflict)
	}

	now := s.clock()
	event := &entity.Event{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:      req.Name,
		EventDate: date,
		Capacity:  req.Capacity,
		SeatPrice: req.SeatPrice,
	}

	// Event and its seat inventory appear together or not at all.
	err = s.repo.InTx(ctx, pgx.TxOptions{}, func(txRepo *repository.Repository) error {
		if err := txRepo.Event.Create(ctx, event); err != nil {
			return err
		}
		return s.seats.EnsureSeats(ctx, txRepo.Seat, event.ID, event.Capacity, event.SeatPrice)
	})
	if err != nil {
		s.log.Error("Failed to create event",
			zap.Error(err),
			zap.String("date", req.Date),
		)
		return nil, err
	}

	s.log.Info("Event created",
		zap.String("event_id", event.ID.String()),
		zap.String("name", event.Name),
		zap.String("date", req.Date),
		zap.Int("capacity", event.Capacity),
	)

	return response.EventToResponse(event), nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID string) error {
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

	// Booked events are immutable through this path.
	bookings, err := s.repo.Booking.CountByEvent(ctx, id)
	if err != nil {
		return err
	}
	if bookings > 0 {
		return fmt.Errorf("event %s has %d bookings and cannot be deleted: %w",
			eventID, bookings, entity.ErrConflict)
	}

	err = s.repo.InTx(ctx, pgx.TxOptions{}, func(txRepo *repository.Repository) error {
		if err := txRepo.Seat.DeleteByEvent(ctx, id); err != nil {
			return err
		}
		return txRepo.Event.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.log.Info("Event deleted",
		zap.String("event_id", eventID),
		zap.String("name", event.Name),
	)

	return nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID string) (*response.EventResponse, error) {
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

	return response.EventToResponse(event), nil
}

func (s *eventService) ListUpcoming(ctx context.Context) ([]*response.EventResponse, error) {
	events, err := s.repo.Event.ListUpcoming(ctx, utils.DateOnly(s.clock()))
	if err != nil {
		return nil, err
	}
	return response.EventsToResponse(events), nil
}

func (s *eventService) ListPast(ctx context.Context) ([]*response.EventResponse, error) {
	events, err := s.repo.Event.ListPast(ctx, utils.DateOnly(s.clock()))
	if err != nil {
		return nil, err
	}
	return response.EventsToResponse(events), nil
}
