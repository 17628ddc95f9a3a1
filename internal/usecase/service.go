package usecase

import (
	"time"

	"event-seating/internal/data/repository"
	"event-seating/internal/notifier"
	"event-seating/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Event       EventService
	Seat        SeatService
	Reservation ReservationService
	Lifecycle   LifecycleService
}

func NewService(repo *repository.Repository, config *utils.Config, gateway notifier.Notifier, log *zap.Logger) *Service {
	seat := NewSeatService(repo, log)
	return &Service{
		Event:       NewEventService(repo, seat, time.Now, log),
		Seat:        seat,
		Reservation: NewReservationService(repo, gateway, config.Booking.MaxTxRetries, time.Now, log),
		Lifecycle:   NewLifecycleService(repo, gateway, time.Now, log),
	}
}
