// Package handler implements the HTTP handlers for the travel booking API.
// All handlers are methods on Server. They are split into resource-specific
// files (health.go, trip.go, event.go, user.go) but share the same Server
// struct so they can reach its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/travel-booking/backend/internal/domain"
	"github.com/pkordes/travel-booking/backend/internal/middleware"
	"github.com/pkordes/travel-booking/backend/internal/service"
)

// TripServicer defines the trip operations the handlers depend on.
// Declared here, in the consumer package, so tests can inject a mock.
type TripServicer interface {
	List(ctx context.Context) ([]*domain.Trip, error)
	ListUpcoming(ctx context.Context) ([]*domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error)
	AddAttendee(ctx context.Context, tripID, userID uuid.UUID) (*domain.Trip, error)
	RemoveAttendee(ctx context.Context, tripID, userID uuid.UUID) (*domain.Trip, error)
}

// EventServicer defines the event operations the handlers depend on.
type EventServicer interface {
	List(ctx context.Context) ([]*domain.Event, error)
	ListUpcoming(ctx context.Context) ([]*domain.Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	ListByOrganiser(ctx context.Context, organiserID uuid.UUID) ([]*domain.Event, error)
	Create(ctx context.Context, in service.EventInput) (*domain.Event, error)
	AddAttendee(ctx context.Context, eventID, userID uuid.UUID) (*domain.Event, error)
	RemoveAttendee(ctx context.Context, eventID, userID uuid.UUID) (*domain.Event, error)
}

// UserServicer defines the account operations the handlers depend on.
type UserServicer interface {
	Authenticate(ctx context.Context, email, password string) (service.AuthResult, error)
	Signup(ctx context.Context, in service.SignupInput) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	trips  TripServicer
	events EventServicer
	users  UserServicer
	log    *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil logger falls back to slog.Default.
func NewServer(trips TripServicer, events EventServicer, users UserServicer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{trips: trips, events: events, users: users, log: log}
}

// Routes returns the API router. Routes that need a caller identity sit
// behind middleware.RequireAuth using tokens.
func (s *Server) Routes(tokens middleware.TokenParser) http.Handler {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found", "No route for "+r.Method+" "+r.URL.Path+".")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", r.Method+" is not supported on "+r.URL.Path+".")
	})

	r.Get("/status", s.GetStatus)
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Post("/users/signup", s.Signup)
	r.Post("/users/login", s.Login)

	r.Get("/trips", s.ListTrips)
	r.Get("/trips/{id}", s.GetTrip)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(tokens, s.log))

		r.Post("/trips/{id}/attendees", s.JoinTrip)
		r.Delete("/trips/{id}/attendees", s.LeaveTrip)

		r.Get("/events", s.ListEvents)
		r.Post("/events", s.CreateEvent)
		r.Get("/events/{id}", s.GetEvent)
		r.Get("/events/organiser/{id}", s.ListOrganiserEvents)
		r.Post("/events/{id}/attendees", s.JoinEvent)
		r.Delete("/events/{id}/attendees", s.LeaveEvent)
	})

	return r
}

// caller resolves the authenticated user from the token claims.
func (s *Server) caller(r *http.Request) (domain.User, error) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return domain.User{}, errMissingClaims
	}
	return s.users.GetByEmail(r.Context(), claims.Email)
}
