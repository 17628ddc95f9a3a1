// Package notifier is the gateway that receives confirmed booking batches
// for downstream delivery. It is fire-and-forget from the core's point of
// view: callers log failures and move on, and nothing here can roll back a
// committed booking.
package notifier

import (
	"context"
	"time"

	"event-seating/internal/data/entity"
)

type Notifier interface {
	NotifyBookingConfirmed(ctx context.Context, email, occupantName string, seatIDs []string, date time.Time) error
	NotifyRosterReady(ctx context.Context, event *entity.Event, rows []*entity.RosterRow) error
}
