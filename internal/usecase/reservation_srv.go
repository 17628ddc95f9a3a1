package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"event-seating/internal/data/entity"
	"event-seating/internal/data/repository"
	"event-seating/internal/dto/request"
	"event-seating/internal/dto/response"
	"event-seating/internal/notifier"
	"event-seating/pkg/database"
	"event-seating/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReservationService interface {
	// Book validates a batch of seat requests against current state and
	// commits all of them or none of them. On success the committed
	// bookings are handed to the notifier gateway outside the transaction.
	Book(ctx context.Context, eventID string, req *request.CreateBookingRequest, requester entity.Requester) ([]*response.BookingResponse, error)
}

type reservationService struct {
	repo       *repository.Repository
	gateway    notifier.Notifier
	maxRetries int
	clock      func() time.Time
	log        *zap.Logger
}

func NewReservationService(
	repo *repository.Repository,
	gateway notifier.Notifier,
	maxRetries int,
	clock func() time.Time,
	log *zap.Logger,
) ReservationService {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &reservationService{
		repo:       repo,
		gateway:    gateway,
		maxRetries: maxRetries,
		clock:      clock,
		log:        log.With(zap.String("service", "reservation")),
	}
}

func (s *reservationService) Book(ctx context.Context, eventID string, req *request.CreateBookingRequest, requester entity.Requester) ([]*response.BookingResponse, error) {
	// 1. Batch shape: non-empty, seat labels, occupant data, dates.
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%s: %w", utils.FormatValidationErrors(errs), entity.ErrInvalidInput)
	}
	for _, item := range req.Seats {
		if !utils.IsValidSeatID(item.SeatID) {
			return nil, fmt.Errorf("invalid seat label %q: %w", item.SeatID, entity.ErrInvalidInput)
		}
	}

	// 2. No duplicate seat within the batch.
	seen := make(map[string]struct{}, len(req.Seats))
	labels := make([]string, 0, len(req.Seats))
	for _, item := range req.Seats {
		if _, dup := seen[item.SeatID]; dup {
			return nil, fmt.Errorf("duplicate seat %s in batch: %w", item.SeatID, entity.ErrConflict)
		}
		seen[item.SeatID] = struct{}{}
		labels = append(labels, item.SeatID)
	}

	// 3. Event exists and is open, unless the requester is privileged.
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
	if event.RegistrationClosed && !requester.IsAdmin {
		return nil, fmt.Errorf("registration is closed for event %s: %w", eventID, entity.ErrConflict)
	}

	// 4. Every booking date equals the event's date exactly.
	batchDate := utils.DateOnly(event.EventDate)
	for _, item := range req.Seats {
		itemDate, err := utils.ParseDate(item.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid booking date %s: %w", item.Date, entity.ErrInvalidInput)
		}
		if !itemDate.Equal(batchDate) {
			return nil, fmt.Errorf("booking date %s does not match event date %s: %w",
				item.Date, utils.FormatDate(batchDate), entity.ErrInvalidInput)
		}
	}

	// 5. Same-day booking is disallowed system-wide.
	if batchDate.Equal(utils.DateOnly(s.clock())) {
		return nil, fmt.Errorf("same-day booking is not allowed: %w", entity.ErrInvalidInput)
	}

	// 6+7. Seat existence and ledger conflicts are checked inside the
	// serializable transaction that also appends the entries: the seats
	// are re-read under lock immediately before mutation, so two
	// overlapping batches can never both claim the same seat. Transient
	// store conflicts retry the whole transaction; business conflicts
	// surface immediately.
	var entries []*entity.BookingEntry
	for attempt := 1; ; attempt++ {
		entries, err = s.bookTx(ctx, event, req.Seats, labels, batchDate)
		if err == nil {
			break
		}
		if database.IsSerializationFailure(err) && attempt < s.maxRetries {
			s.log.Warn("Retrying booking transaction",
				zap.Error(err),
				zap.Int("attempt", attempt),
				zap.String("event_id", eventID),
			)
			continue
		}
		return nil, err
	}

	s.log.Info("Booking batch committed",
		zap.String("event_id", eventID),
		zap.Strings("seats", labels),
		zap.String("date", utils.FormatDate(batchDate)),
		zap.Bool("admin", requester.IsAdmin),
	)

	// Post-commit hand-off, outside the atomic boundary. Failures are the
	// gateway's concern and never undo the booking.
	go s.dispatchConfirmations(context.WithoutCancel(ctx), req.Seats, batchDate)

	out := make([]*response.BookingResponse, len(entries))
	for i, e := range entries {
		out[i] = &response.BookingResponse{
			SeatID:        labels[i],
			Date:          utils.FormatDate(e.BookingDate),
			OccupantName:  e.OccupantName,
			OccupantEmail: e.OccupantEmail,
			Status:        string(e.Status),
		}
	}

	return out, nil
}

// bookTx runs one attempt of the transactional apply: lock the referenced
// seats, verify existence and ledger state, append the entries.
func (s *reservationService) bookTx(
	ctx context.Context,
	event *entity.Event,
	batch []request.SeatBookingRequest,
	labels []string,
	batchDate time.Time,
) ([]*entity.BookingEntry, error) {
	var entries []*entity.BookingEntry

	err := s.repo.InTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable}, func(txRepo *repository.Repository) error {
		seats, err := txRepo.Seat.LockForBooking(ctx, event.ID, labels)
		if err != nil {
			return err
		}

		byLabel := make(map[string]*entity.Seat, len(seats))
		for _, seat := range seats {
			byLabel[seat.SeatID] = seat
		}

		var missing []string
		for _, label := range labels {
			if _, ok := byLabel[label]; !ok {
				missing = append(missing, label)
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("seats %s do not exist under event %s: %w",
				strings.Join(missing, ", "), event.ID.String(), entity.ErrNotFound)
		}

		refs := make([]uuid.UUID, len(seats))
		for i, seat := range seats {
			refs[i] = seat.ID
		}

		booked, err := txRepo.Booking.BookedSeatRefs(ctx, refs, batchDate)
		if err != nil {
			return err
		}
		for _, label := range labels {
			if _, taken := booked[byLabel[label].ID]; taken {
				return fmt.Errorf("seat %s is already booked for %s: %w",
					label, utils.FormatDate(batchDate), entity.ErrConflict)
			}
		}

		now := s.clock()
		entries = make([]*entity.BookingEntry, len(batch))
		for i, item := range batch {
			entries[i] = &entity.BookingEntry{
				BaseSimple: entity.BaseSimple{
					ID:        uuid.New(),
					CreatedAt: now,
				},
				SeatRef:       byLabel[item.SeatID].ID,
				BookingDate:   batchDate,
				OccupantName:  item.OccupantName,
				OccupantEmail: item.OccupantEmail,
				OccupantPhone: item.OccupantPhone,
				Status:        entity.BookingStatusBooked,
			}
		}

		return txRepo.Booking.AppendBatch(ctx, entries)
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// dispatchConfirmations groups the committed batch by occupant email and
// hands each group to the notifier gateway. Errors are logged, not retried.
func (s *reservationService) dispatchConfirmations(ctx context.Context, batch []request.SeatBookingRequest, date time.Time) {
	type group struct {
		name  string
		seats []string
	}

	groups := make(map[string]*group)
	order := make([]string, 0, len(batch))
	for _, item := range batch {
		g, ok := groups[item.OccupantEmail]
		if !ok {
			g = &group{name: item.OccupantName}
			groups[item.OccupantEmail] = g
			order = append(order, item.OccupantEmail)
		}
		g.seats = append(g.seats, item.SeatID)
	}

	for _, email := range order {
		g := groups[email]
		if err := s.gateway.NotifyBookingConfirmed(ctx, email, g.name, g.seats, date); err != nil {
			s.log.Error("Failed to notify booking confirmation",
				zap.Error(err),
				zap.String("occupant_email", email),
				zap.Strings("seats", g.seats),
			)
		}
	}
}
