package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"event-seating/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSeatSvc(env *testEnv) SeatService {
	return NewSeatService(env.repo, zap.NewNop())
}

func TestGenerateSeatsRowMajorOrder(t *testing.T) {
	now := time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)
	seats := GenerateSeats(uuid.New(), 15, 12.5, now)

	require.Len(t, seats, 15)

	// A1..A10 then B1..B5.
	want := []string{"A1", "A2", "A3", "A4", "A5", "A6", "A7", "A8", "A9", "A10", "B1", "B2", "B3", "B4", "B5"}
	for i, seat := range seats {
		assert.Equal(t, want[i], seat.SeatID)
	}

	assert.Equal(t, "B", seats[12].SeatRow)
	assert.Equal(t, 3, seats[12].SeatColumn)
	assert.Equal(t, 12.5, seats[0].Price)
}

func TestGenerateSeatsUniqueLabels(t *testing.T) {
	seats := GenerateSeats(uuid.New(), MaxCapacity, 0, time.Now())

	require.Len(t, seats, MaxCapacity)
	labels := make(map[string]struct{}, len(seats))
	for _, seat := range seats {
		_, dup := labels[seat.SeatID]
		require.False(t, dup, "duplicate label %s", seat.SeatID)
		labels[seat.SeatID] = struct{}{}
	}
	assert.Equal(t, "A1", seats[0].SeatID)
	assert.Equal(t, "Z10", seats[MaxCapacity-1].SeatID)
}

func TestGenerateSeatsTruncatesAtMaxCapacity(t *testing.T) {
	seats := GenerateSeats(uuid.New(), MaxCapacity+40, 0, time.Now())
	assert.Len(t, seats, MaxCapacity)
}

func TestGenerateSeatsDeterministicLabels(t *testing.T) {
	a := GenerateSeats(uuid.New(), 37, 0, time.Now())
	b := GenerateSeats(uuid.New(), 37, 0, time.Now())
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].SeatID, b[i].SeatID)
	}
}

func TestEnsureSeatsIdempotent(t *testing.T) {
	env := newTestEnv()
	event := env.seedEvent("2025-06-01", 30, false)
	svc := newSeatSvc(env)

	before, err := env.seats.FindByEvent(context.Background(), event.ID)
	require.NoError(t, err)
	beforeIDs := make(map[uuid.UUID]struct{}, len(before))
	for _, s := range before {
		beforeIDs[s.ID] = struct{}{}
	}

	// Repeated calls with the same capacity leave the inventory untouched.
	for i := 0; i < 3; i++ {
		require.NoError(t, svc.EnsureSeats(context.Background(), env.seats, event.ID, 30, event.SeatPrice))
	}

	after, err := env.seats.FindByEvent(context.Background(), event.ID)
	require.NoError(t, err)
	require.Len(t, after, 30)
	for _, s := range after {
		_, kept := beforeIDs[s.ID]
		assert.True(t, kept, "seat %s was regenerated", s.SeatID)
	}
}

func TestEnsureSeatsRegeneratesWhenShort(t *testing.T) {
	env := newTestEnv()
	event := env.seedEvent("2025-06-01", 10, false)
	svc := newSeatSvc(env)

	require.NoError(t, svc.EnsureSeats(context.Background(), env.seats, event.ID, 25, event.SeatPrice))

	count, err := env.seats.CountByEvent(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, count)
}

func TestRebuildSeatsRefusesWithBookings(t *testing.T) {
	env := newTestEnv()
	event := env.seedEvent("2025-06-01", 20, false)
	svc := newSeatSvc(env)

	seat := env.store.seatByLabel(event.ID, "A1")
	env.seedBooking(t, seat, "a@example.com", event.EventDate)

	err := svc.RebuildSeats(context.Background(), event.ID.String())

	assert.ErrorIs(t, err, entity.ErrConflict)
}

func TestRebuildSeatsRestoresInventory(t *testing.T) {
	env := newTestEnv()
	event := env.seedEvent("2025-06-01", 20, false)
	svc := newSeatSvc(env)

	require.NoError(t, env.seats.DeleteByEvent(context.Background(), event.ID))

	require.NoError(t, svc.RebuildSeats(context.Background(), event.ID.String()))

	count, err := env.seats.CountByEvent(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, count)
}

func TestRebuildSeatsUnknownEvent(t *testing.T) {
	env := newTestEnv()
	svc := newSeatSvc(env)

	assert.ErrorIs(t, svc.RebuildSeats(context.Background(), uuid.NewString()), entity.ErrNotFound)
	assert.ErrorIs(t, svc.RebuildSeats(context.Background(), "nope"), entity.ErrInvalidInput)
}

func TestGetSeatMapMarksBookedSeats(t *testing.T) {
	env := newTestEnv()
	event := env.seedEvent("2025-06-01", 12, false)
	svc := newSeatSvc(env)

	booked := env.store.seatByLabel(event.ID, "A4")
	env.seedBooking(t, booked, "a@example.com", event.EventDate)

	resp, err := svc.GetSeatMap(context.Background(), event.ID.String())

	require.NoError(t, err)
	assert.Equal(t, event.ID.String(), resp.EventID)
	assert.Equal(t, "2025-06-01", resp.Date)
	require.Len(t, resp.Seats, 12)

	flagged := 0
	for _, s := range resp.Seats {
		if s.Booked {
			flagged++
			assert.Equal(t, "A4", s.SeatID)
		}
	}
	assert.Equal(t, 1, flagged)
}

func TestGetSeatMapNeverReinitializes(t *testing.T) {
	env := newTestEnv()
	event := env.seedEvent("2025-06-01", 20, false)
	svc := newSeatSvc(env)

	// Simulate a short inventory. The read path must report what is stored,
	// not repair it.
	require.NoError(t, env.seats.DeleteByEvent(context.Background(), event.ID))
	short := GenerateSeats(event.ID, 5, event.SeatPrice, env.now)
	require.NoError(t, env.seats.CreateBatch(context.Background(), short))

	resp, err := svc.GetSeatMap(context.Background(), event.ID.String())

	require.NoError(t, err)
	assert.Len(t, resp.Seats, 5)

	count, err := env.seats.CountByEvent(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestSeatLabelShapeAcrossGrid(t *testing.T) {
	// Every generated label round-trips through the row and column it was
	// derived from.
	seats := GenerateSeats(uuid.New(), MaxCapacity, 0, time.Now())
	for _, seat := range seats {
		assert.Equal(t, fmt.Sprintf("%s%d", seat.SeatRow, seat.SeatColumn), seat.SeatID)
	}
}
