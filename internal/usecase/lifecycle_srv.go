package usecase

import (
	"context"
	"fmt"
	"time"

	"event-seating/internal/data/entity"
	"event-seating/internal/data/repository"
	"event-seating/internal/dto/response"
	"event-seating/internal/notifier"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type LifecycleService interface {
	// CloseRegistration flips the event's registration flag. This is a
	// one-way transition; once closed only privileged callers can still
	// book. The booking roster is fanned out to the notifier gateway
	// afterwards, best-effort.
	CloseRegistration(ctx context.Context, eventID string) (*response.EventResponse, error)

	GetRoster(ctx context.Context, eventID string) ([]*response.RosterRowResponse, error)
}

type lifecycleService struct {
	repo    *repository.Repository
	gateway notifier.Notifier
	clock   func() time.Time
	log     *zap.Logger
}

func NewLifecycleService(repo *repository.Repository, gateway notifier.Notifier, clock func() time.Time, log *zap.Logger) LifecycleService {
	return &lifecycleService{
		repo:    repo,
		gateway: gateway,
		clock:   clock,
		log:     log.With(zap.String("service", "lifecycle")),
	}
}

func (s *lifecycleService) CloseRegistration(ctx context.Context, eventID string) (*response.EventResponse, error) {
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
	if event.RegistrationClosed {
		return nil, fmt.Errorf("registration already closed for event %s: %w", eventID, entity.ErrConflict)
	}

	// Single-field durable update; no transaction needed.
	if err := s.repo.Event.CloseRegistration(ctx, id, s.clock()); err != nil {
		return nil, err
	}
	event.RegistrationClosed = true

	s.log.Info("Registration closed",
		zap.String("event_id", eventID),
		zap.String("name", event.Name),
	)

	// The close has already committed: every notification failure below is
	// caught and logged on its own, none aborts the rest.
	roster, err := s.repo.Booking.ListByEvent(ctx, id)
	if err != nil {
		s.log.Error("Failed to read roster for close fan-out",
			zap.Error(err),
			zap.String("event_id", eventID),
		)
		return response.EventToResponse(event), nil
	}

	for _, row := range roster {
		err := s.gateway.NotifyBookingConfirmed(ctx, row.OccupantEmail, row.OccupantName, []string{row.SeatID}, row.BookingDate)
		if err != nil {
			s.log.Error("Failed to notify booking on close",
				zap.Error(err),
				zap.String("occupant_email", row.OccupantEmail),
				zap.String("seat_id", row.SeatID),
			)
		}
	}

	if err := s.gateway.NotifyRosterReady(ctx, event, roster); err != nil {
		s.log.Error("Failed to notify roster",
			zap.Error(err),
			zap.String("event_id", eventID),
		)
	}

	return response.EventToResponse(event), nil
}

func (s *lifecycleService) GetRoster(ctx context.Context, eventID string) ([]*response.RosterRowResponse, error) {
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

	roster, err := s.repo.Booking.ListByEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	return response.RosterToResponse(roster), nil
}
