package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"event-seating/internal/data/entity"
	"event-seating/internal/data/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// memStore is a shared in-memory stand-in for the Postgres inventory. The
// booking ledger enforces the same unique (seat, date) constraint the real
// schema does, atomically under one lock, so concurrency tests observe the
// store-level backstop.
type memStore struct {
	mu       sync.Mutex
	events   map[uuid.UUID]*entity.Event
	seats    map[uuid.UUID]*entity.Seat
	bookings map[uuid.UUID][]*entity.BookingEntry // keyed by seat ref
}

func newMemStore() *memStore {
	return &memStore{
		events:   make(map[uuid.UUID]*entity.Event),
		seats:    make(map[uuid.UUID]*entity.Seat),
		bookings: make(map[uuid.UUID][]*entity.BookingEntry),
	}
}

func (m *memStore) addEvent(event *entity.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[event.ID] = event
}

func (m *memStore) addSeats(seats []*entity.Seat) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range seats {
		m.seats[s.ID] = s
	}
}

func (m *memStore) seatByLabel(eventID uuid.UUID, label string) *entity.Seat {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.seats {
		if s.EventID == eventID && s.SeatID == label {
			return s
		}
	}
	return nil
}

func (m *memStore) ledger(seatRef uuid.UUID) []*entity.BookingEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*entity.BookingEntry{}, m.bookings[seatRef]...)
}

// ---------- event repository ----------

type fakeEventRepo struct {
	store *memStore

	findErr error
}

func (r *fakeEventRepo) WithTx(tx pgx.Tx) repository.EventRepository { return r }

func (r *fakeEventRepo) Create(ctx context.Context, event *entity.Event) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, e := range r.store.events {
		if e.EventDate.Equal(event.EventDate) {
			return fmt.Errorf("event date already taken: %w", entity.ErrConflict)
		}
	}
	r.store.events[event.ID] = event
	return nil
}

func (r *fakeEventRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.events[id], nil
}

func (r *fakeEventRepo) FindByDate(ctx context.Context, date time.Time) (*entity.Event, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, e := range r.store.events {
		if e.EventDate.Equal(date) {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeEventRepo) ListUpcoming(ctx context.Context, today time.Time) ([]*entity.Event, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Event
	for _, e := range r.store.events {
		if e.EventDate.After(today) && !e.RegistrationClosed {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) ListPast(ctx context.Context, today time.Time) ([]*entity.Event, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Event
	for _, e := range r.store.events {
		if e.EventDate.Before(today) || e.RegistrationClosed {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) CloseRegistration(ctx context.Context, id uuid.UUID, closedAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	e, ok := r.store.events[id]
	if !ok || e.RegistrationClosed {
		return fmt.Errorf("registration already closed: %w", entity.ErrConflict)
	}
	e.RegistrationClosed = true
	e.UpdatedAt = closedAt
	return nil
}

func (r *fakeEventRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.events[id]; !ok {
		return fmt.Errorf("event %s: %w", id.String(), entity.ErrNotFound)
	}
	delete(r.store.events, id)
	return nil
}

// ---------- seat repository ----------

type fakeSeatRepo struct {
	store *memStore
}

func (r *fakeSeatRepo) WithTx(tx pgx.Tx) repository.SeatRepository { return r }

func (r *fakeSeatRepo) CreateBatch(ctx context.Context, seats []*entity.Seat) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, s := range seats {
		r.store.seats[s.ID] = s
	}
	return nil
}

func (r *fakeSeatRepo) CountByEvent(ctx context.Context, eventID uuid.UUID) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	count := 0
	for _, s := range r.store.seats {
		if s.EventID == eventID {
			count++
		}
	}
	return count, nil
}

func (r *fakeSeatRepo) FindByEvent(ctx context.Context, eventID uuid.UUID) ([]*entity.Seat, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Seat
	for _, s := range r.store.seats {
		if s.EventID == eventID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSeatRepo) DeleteByEvent(ctx context.Context, eventID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, s := range r.store.seats {
		if s.EventID == eventID {
			delete(r.store.seats, id)
			delete(r.store.bookings, id)
		}
	}
	return nil
}

func (r *fakeSeatRepo) LockForBooking(ctx context.Context, eventID uuid.UUID, seatIDs []string) ([]*entity.Seat, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	wanted := make(map[string]struct{}, len(seatIDs))
	for _, id := range seatIDs {
		wanted[id] = struct{}{}
	}
	var out []*entity.Seat
	for _, s := range r.store.seats {
		if s.EventID != eventID {
			continue
		}
		if _, ok := wanted[s.SeatID]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

// ---------- booking repository ----------

type fakeBookingRepo struct {
	store *memStore

	// appendErrs is consumed once per AppendBatch call, letting tests
	// inject transient store failures.
	mu         sync.Mutex
	appendErrs []error
}

func (r *fakeBookingRepo) WithTx(tx pgx.Tx) repository.BookingRepository { return r }

func (r *fakeBookingRepo) failNextAppends(errs ...error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appendErrs = append(r.appendErrs, errs...)
}

func (r *fakeBookingRepo) AppendBatch(ctx context.Context, entries []*entity.BookingEntry) error {
	r.mu.Lock()
	if len(r.appendErrs) > 0 {
		err := r.appendErrs[0]
		r.appendErrs = r.appendErrs[1:]
		r.mu.Unlock()
		return err
	}
	r.mu.Unlock()

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	// Check-then-insert atomically, like the unique index does.
	for _, e := range entries {
		for _, existing := range r.store.bookings[e.SeatRef] {
			if existing.BookingDate.Equal(e.BookingDate) {
				return fmt.Errorf("seat already booked for date: %w", entity.ErrConflict)
			}
		}
	}
	for _, e := range entries {
		r.store.bookings[e.SeatRef] = append(r.store.bookings[e.SeatRef], e)
	}
	return nil
}

func (r *fakeBookingRepo) BookedSeatRefs(ctx context.Context, seatRefs []uuid.UUID, date time.Time) (map[uuid.UUID]struct{}, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	booked := make(map[uuid.UUID]struct{})
	for _, ref := range seatRefs {
		for _, e := range r.store.bookings[ref] {
			if e.BookingDate.Equal(date) {
				booked[ref] = struct{}{}
			}
		}
	}
	return booked, nil
}

func (r *fakeBookingRepo) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*entity.RosterRow, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.RosterRow
	for ref, entries := range r.store.bookings {
		seat, ok := r.store.seats[ref]
		if !ok || seat.EventID != eventID {
			continue
		}
		for _, e := range entries {
			out = append(out, &entity.RosterRow{
				SeatID:        seat.SeatID,
				BookingDate:   e.BookingDate,
				OccupantName:  e.OccupantName,
				OccupantEmail: e.OccupantEmail,
				OccupantPhone: e.OccupantPhone,
				Status:        e.Status,
			})
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) CountByEvent(ctx context.Context, eventID uuid.UUID) (int64, error) {
	rows, err := r.ListByEvent(ctx, eventID)
	if err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}

// ---------- database fakes ----------

type fakeTx struct {
	mu         sync.Mutex
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }

func (t *fakeTx) Commit(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rolledBack = true
	return nil
}

func (t *fakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (t *fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }

func (t *fakeTx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }

func (t *fakeTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}

func (t *fakeTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }

func (t *fakeTx) Conn() *pgx.Conn { return nil }

type fakeDB struct{}

func (d *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (d *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }

func (d *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (d *fakeDB) Begin(ctx context.Context) (pgx.Tx, error) { return &fakeTx{}, nil }

func (d *fakeDB) BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error) {
	return &fakeTx{}, nil
}

func (d *fakeDB) Ping(ctx context.Context) error { return nil }

func (d *fakeDB) Close() {}

// ---------- notifier fake ----------

type confirmedCall struct {
	email string
	name  string
	seats []string
	date  time.Time
}

type fakeNotifier struct {
	mu            sync.Mutex
	confirmed     []confirmedCall
	rosterEvents  []*entity.Event
	rosterRows    [][]*entity.RosterRow
	confirmedErr  error
	rosterErr     error
	failForEmails map[string]struct{}
}

func (n *fakeNotifier) NotifyBookingConfirmed(ctx context.Context, email, occupantName string, seatIDs []string, date time.Time) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, fail := n.failForEmails[email]; fail {
		return fmt.Errorf("gateway unavailable for %s", email)
	}
	if n.confirmedErr != nil {
		return n.confirmedErr
	}
	n.confirmed = append(n.confirmed, confirmedCall{
		email: email,
		name:  occupantName,
		seats: append([]string{}, seatIDs...),
		date:  date,
	})
	return nil
}

func (n *fakeNotifier) NotifyRosterReady(ctx context.Context, event *entity.Event, rows []*entity.RosterRow) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.rosterErr != nil {
		return n.rosterErr
	}
	n.rosterEvents = append(n.rosterEvents, event)
	n.rosterRows = append(n.rosterRows, rows)
	return nil
}

func (n *fakeNotifier) confirmedCalls() []confirmedCall {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]confirmedCall{}, n.confirmed...)
}

func (n *fakeNotifier) rosterCalls() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.rosterEvents)
}

// ---------- test harness ----------

type testEnv struct {
	store    *memStore
	repo     *repository.Repository
	events   *fakeEventRepo
	seats    *fakeSeatRepo
	bookings *fakeBookingRepo
	notifier *fakeNotifier
	now      time.Time
}

func newTestEnv() *testEnv {
	store := newMemStore()
	events := &fakeEventRepo{store: store}
	seats := &fakeSeatRepo{store: store}
	bookings := &fakeBookingRepo{store: store}

	return &testEnv{
		store:    store,
		events:   events,
		seats:    seats,
		bookings: bookings,
		notifier: &fakeNotifier{},
		repo: &repository.Repository{
			DB:      &fakeDB{},
			Event:   events,
			Seat:    seats,
			Booking: bookings,
		},
		now: time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC),
	}
}

func (e *testEnv) clock() time.Time { return e.now }

func (e *testEnv) seedEvent(dateStr string, capacity int, closed bool) *entity.Event {
	date, _ := time.Parse("2006-01-02", dateStr)
	event := &entity.Event{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: e.now,
			UpdatedAt: e.now,
		},
		Name:               "Test Event",
		EventDate:          date.UTC(),
		Capacity:           capacity,
		SeatPrice:          25,
		RegistrationClosed: closed,
	}
	e.store.addEvent(event)
	e.store.addSeats(GenerateSeats(event.ID, capacity, event.SeatPrice, e.now))
	return event
}
