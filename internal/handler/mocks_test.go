package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-booking/backend/internal/auth"
	"github.com/pkordes/travel-booking/backend/internal/domain"
	"github.com/pkordes/travel-booking/backend/internal/handler"
	"github.com/pkordes/travel-booking/backend/internal/service"
)

// ---- mock servicers --------------------------------------------------------

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs.
type mockTripServicer struct {
	list           func(ctx context.Context) ([]*domain.Trip, error)
	listUpcoming   func(ctx context.Context) ([]*domain.Trip, error)
	getByID        func(ctx context.Context, id uuid.UUID) (*domain.Trip, error)
	addAttendee    func(ctx context.Context, tripID, userID uuid.UUID) (*domain.Trip, error)
	removeAttendee func(ctx context.Context, tripID, userID uuid.UUID) (*domain.Trip, error)
}

func (m *mockTripServicer) List(ctx context.Context) ([]*domain.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripServicer) ListUpcoming(ctx context.Context) ([]*domain.Trip, error) {
	return m.listUpcoming(ctx)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) AddAttendee(ctx context.Context, tripID, userID uuid.UUID) (*domain.Trip, error) {
	return m.addAttendee(ctx, tripID, userID)
}
func (m *mockTripServicer) RemoveAttendee(ctx context.Context, tripID, userID uuid.UUID) (*domain.Trip, error) {
	return m.removeAttendee(ctx, tripID, userID)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

// mockEventServicer is a test double for handler.EventServicer.
type mockEventServicer struct {
	list            func(ctx context.Context) ([]*domain.Event, error)
	listUpcoming    func(ctx context.Context) ([]*domain.Event, error)
	getByID         func(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	listByOrganiser func(ctx context.Context, organiserID uuid.UUID) ([]*domain.Event, error)
	create          func(ctx context.Context, in service.EventInput) (*domain.Event, error)
	addAttendee     func(ctx context.Context, eventID, userID uuid.UUID) (*domain.Event, error)
	removeAttendee  func(ctx context.Context, eventID, userID uuid.UUID) (*domain.Event, error)
}

func (m *mockEventServicer) List(ctx context.Context) ([]*domain.Event, error) {
	return m.list(ctx)
}
func (m *mockEventServicer) ListUpcoming(ctx context.Context) ([]*domain.Event, error) {
	return m.listUpcoming(ctx)
}
func (m *mockEventServicer) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	return m.getByID(ctx, id)
}
func (m *mockEventServicer) ListByOrganiser(ctx context.Context, organiserID uuid.UUID) ([]*domain.Event, error) {
	return m.listByOrganiser(ctx, organiserID)
}
func (m *mockEventServicer) Create(ctx context.Context, in service.EventInput) (*domain.Event, error) {
	return m.create(ctx, in)
}
func (m *mockEventServicer) AddAttendee(ctx context.Context, eventID, userID uuid.UUID) (*domain.Event, error) {
	return m.addAttendee(ctx, eventID, userID)
}
func (m *mockEventServicer) RemoveAttendee(ctx context.Context, eventID, userID uuid.UUID) (*domain.Event, error) {
	return m.removeAttendee(ctx, eventID, userID)
}

var _ handler.EventServicer = (*mockEventServicer)(nil)

// mockUserServicer is a test double for handler.UserServicer.
type mockUserServicer struct {
	authenticate func(ctx context.Context, email, password string) (service.AuthResult, error)
	signup       func(ctx context.Context, in service.SignupInput) (domain.User, error)
	getByEmail   func(ctx context.Context, email string) (domain.User, error)
}

func (m *mockUserServicer) Authenticate(ctx context.Context, email, password string) (service.AuthResult, error) {
	return m.authenticate(ctx, email, password)
}
func (m *mockUserServicer) Signup(ctx context.Context, in service.SignupInput) (domain.User, error) {
	return m.signup(ctx, in)
}
func (m *mockUserServicer) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return m.getByEmail(ctx, email)
}

var _ handler.UserServicer = (*mockUserServicer)(nil)

// callerIs returns a mockUserServicer that resolves exactly u by email.
func callerIs(u domain.User) *mockUserServicer {
	return &mockUserServicer{
		getByEmail: func(_ context.Context, email string) (domain.User, error) {
			if email != u.Email {
				return domain.User{}, domain.ErrNotFound
			}
			return u, nil
		},
	}
}

// tokenFor maps bearer tokens to claims; anything else is rejected.
type tokenFor map[string]auth.Claims

func (m tokenFor) Parse(token string) (auth.Claims, error) {
	c, ok := m[token]
	if !ok {
		return auth.Claims{}, auth.ErrInvalidToken
	}
	return c, nil
}

// ---- helpers ---------------------------------------------------------------

// deps bundles the mocks one test wires into the router. Nil fields are
// left nil on the Server.
type deps struct {
	trips  handler.TripServicer
	events handler.EventServicer
	users  handler.UserServicer
	caller domain.User
}

// newHTTPHandler wires a Server with the given mocks into the chi router,
// the same way the serve command does in production. The token "good"
// authenticates as d.caller.
func newHTTPHandler(d deps) http.Handler {
	srv := handler.NewServer(d.trips, d.events, d.users, nil)
	return srv.Routes(tokenFor{
		"good": {Email: d.caller.Email, IsOrganiser: d.caller.IsOrganiser},
	})
}

func do(t *testing.T, h http.Handler, method, target string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type errorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

// ---- fixtures --------------------------------------------------------------

func userFixture(t *testing.T, first string, organiser bool) domain.User {
	t.Helper()
	u, err := domain.NewUser(domain.UserParams{
		ID:          uuid.New(),
		FirstName:   first,
		LastName:    "Janssens",
		Email:       first + "@example.com",
		Password:    "$2a$12$hashhashhashhashhashha",
		IsOrganiser: organiser,
	})
	require.NoError(t, err)
	return u
}

func tripFixture(t *testing.T) *domain.Trip {
	t.Helper()
	trip, err := domain.NewTrip(domain.TripParams{
		ID:          uuid.New(),
		Destination: "Lisbon",
		StartDate:   time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC),
		Description: "Tiles and trams",
		Organiser:   userFixture(t, "organiser", true),
	})
	require.NoError(t, err)
	return trip
}

func eventFixture(t *testing.T, organiser domain.User) *domain.Event {
	t.Helper()
	e, err := domain.RestoreEvent(domain.EventParams{
		ID:          uuid.New(),
		Name:        "Wine tasting",
		Description: "Douro reds",
		Date:        time.Date(2025, 7, 15, 19, 0, 0, 0, time.UTC),
		Location:    "Porto",
		Organiser:   organiser,
	})
	require.NoError(t, err)
	return e
}
