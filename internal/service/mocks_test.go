package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-booking/backend/internal/domain"
	"github.com/pkordes/travel-booking/backend/internal/messaging"
	"github.com/pkordes/travel-booking/backend/internal/repo"
)

// ---- mock repos ------------------------------------------------------------

// mockUserRepo is a hand-written test double for repo.UserRepo.
// Each method is a function field; set only the ones your test needs.
type mockUserRepo struct {
	create     func(ctx context.Context, u domain.User) (domain.User, error)
	getByID    func(ctx context.Context, id uuid.UUID) (domain.User, error)
	getByEmail func(ctx context.Context, email string) (domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	return m.create(ctx, u)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return m.getByEmail(ctx, email)
}

var _ repo.UserRepo = (*mockUserRepo)(nil)

// usersByID returns a mockUserRepo whose GetByID serves the given users.
func usersByID(users ...domain.User) *mockUserRepo {
	return &mockUserRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.User, error) {
			for _, u := range users {
				if u.ID == id {
					return u, nil
				}
			}
			return domain.User{}, domain.ErrNotFound
		},
	}
}

// mockTripRepo is a hand-written test double for repo.TripRepo.
type mockTripRepo struct {
	list           func(ctx context.Context) ([]*domain.Trip, error)
	getByID        func(ctx context.Context, id uuid.UUID) (*domain.Trip, error)
	addAttendee    func(ctx context.Context, tripID, userID uuid.UUID) error
	removeAttendee func(ctx context.Context, tripID, userID uuid.UUID) error
}

func (m *mockTripRepo) List(ctx context.Context) ([]*domain.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) AddAttendee(ctx context.Context, tripID, userID uuid.UUID) error {
	return m.addAttendee(ctx, tripID, userID)
}
func (m *mockTripRepo) RemoveAttendee(ctx context.Context, tripID, userID uuid.UUID) error {
	return m.removeAttendee(ctx, tripID, userID)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

// mockEventRepo is a hand-written test double for repo.EventRepo.
type mockEventRepo struct {
	list            func(ctx context.Context) ([]*domain.Event, error)
	getByID         func(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	listByOrganiser func(ctx context.Context, organiserID uuid.UUID) ([]*domain.Event, error)
	create          func(ctx context.Context, e *domain.Event) (*domain.Event, error)
	addAttendee     func(ctx context.Context, eventID, userID uuid.UUID) error
	removeAttendee  func(ctx context.Context, eventID, userID uuid.UUID) error
}

func (m *mockEventRepo) List(ctx context.Context) ([]*domain.Event, error) {
	return m.list(ctx)
}
func (m *mockEventRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	return m.getByID(ctx, id)
}
func (m *mockEventRepo) ListByOrganiser(ctx context.Context, organiserID uuid.UUID) ([]*domain.Event, error) {
	return m.listByOrganiser(ctx, organiserID)
}
func (m *mockEventRepo) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	return m.create(ctx, e)
}
func (m *mockEventRepo) AddAttendee(ctx context.Context, eventID, userID uuid.UUID) error {
	return m.addAttendee(ctx, eventID, userID)
}
func (m *mockEventRepo) RemoveAttendee(ctx context.Context, eventID, userID uuid.UUID) error {
	return m.removeAttendee(ctx, eventID, userID)
}

var _ repo.EventRepo = (*mockEventRepo)(nil)

// recordingPublisher captures every notification it is asked to publish.
type recordingPublisher struct {
	mu   sync.Mutex
	sent []messaging.Notification
	err  error
}

func (p *recordingPublisher) Publish(_ context.Context, n messaging.Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, n)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

var _ messaging.Publisher = (*recordingPublisher)(nil)

// ---- fixtures --------------------------------------------------------------

// fixedNow is the clock every service test runs against.
var fixedNow = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func newUser(t *testing.T, first string, organiser bool) domain.User {
	t.Helper()
	u, err := domain.NewUser(domain.UserParams{
		ID:          uuid.New(),
		FirstName:   first,
		LastName:    "Peeters",
		Email:       first + "@example.com",
		Password:    "password123",
		IsOrganiser: organiser,
	})
	require.NoError(t, err)
	return u
}

func newTrip(t *testing.T, organiser domain.User, start time.Time) *domain.Trip {
	t.Helper()
	trip, err := domain.NewTrip(domain.TripParams{
		ID:          uuid.New(),
		Destination: "Bruges",
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, 7),
		Description: "Canals and chocolate",
		Organiser:   organiser,
	})
	require.NoError(t, err)
	return trip
}

func newEvent(t *testing.T, organiser domain.User, date time.Time) *domain.Event {
	t.Helper()
	e, err := domain.RestoreEvent(domain.EventParams{
		ID:          uuid.New(),
		Name:        "Kayaking",
		Description: "Half-day river tour",
		Date:        date,
		Location:    "Dinant",
		Organiser:   organiser,
	})
	require.NoError(t, err)
	return e
}
