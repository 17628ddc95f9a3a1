package notifier

import (
	"context"
	"time"

	"event-seating/internal/data/entity"
	"event-seating/pkg/utils"

	"go.uber.org/zap"
)

// LogNotifier writes notification intents to the log. Used when no broker
// is configured, so local runs keep working without RabbitMQ.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log.With(zap.String("notifier", "log"))}
}

func (n *LogNotifier) NotifyBookingConfirmed(_ context.Context, email, occupantName string, seatIDs []string, date time.Time) error {
	n.log.Info("Booking confirmed",
		zap.String("occupant_email", email),
		zap.String("occupant_name", occupantName),
		zap.Strings("seats", seatIDs),
		zap.String("date", utils.FormatDate(date)),
	)
	return nil
}

func (n *LogNotifier) NotifyRosterReady(_ context.Context, event *entity.Event, rows []*entity.RosterRow) error {
	n.log.Info("Roster ready",
		zap.String("event_id", event.ID.String()),
		zap.String("event_name", event.Name),
		zap.String("event_date", utils.FormatDate(event.EventDate)),
		zap.Int("bookings", len(rows)),
	)
	return nil
}
