package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/travel-booking/backend/internal/domain"
	"github.com/pkordes/travel-booking/backend/internal/messaging"
	"github.com/pkordes/travel-booking/backend/internal/repo"
)

// TripService implements business logic for Trip operations.
type TripService struct {
	trips repo.TripRepo
	users repo.UserRepo
	deps
}

// NewTripService constructs a TripService backed by the provided repos.
func NewTripService(trips repo.TripRepo, users repo.UserRepo, opts ...Option) *TripService {
	return &TripService{trips: trips, users: users, deps: newDeps(opts)}
}

// List returns every trip. Always returns a non-nil slice.
func (s *TripService) List(ctx context.Context) ([]*domain.Trip, error) {
	trips, err := s.trips.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []*domain.Trip{}, nil
	}
	return trips, nil
}

// GetByID returns a single trip.
// Returns domain.ErrNotFound naming the id if it does not exist.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, tripNotFound(id)
		}
		return nil, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// ListUpcoming returns the trips whose start date is strictly after now.
// The filter is recomputed on every call.
func (s *TripService) ListUpcoming(ctx context.Context) ([]*domain.Trip, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	upcoming := []*domain.Trip{}
	for _, t := range all {
		if t.StartDate.After(now) {
			upcoming = append(upcoming, t)
		}
	}
	return upcoming, nil
}

// AddAttendee books userID onto the trip. Booking twice is a no-op.
// Returns the trip with its updated roster.
func (s *TripService) AddAttendee(ctx context.Context, tripID, userID uuid.UUID) (*domain.Trip, error) {
	trip, err := s.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	user, err := getUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	if trip.IsUserAttending(userID) {
		return trip, nil
	}

	if err := s.trips.AddAttendee(ctx, tripID, userID); err != nil {
		// The row can vanish between the lookup and the insert.
		if isNotFound(err) {
			return nil, tripNotFound(tripID)
		}
		return nil, fmt.Errorf("service.TripService.AddAttendee: %w", err)
	}
	trip.AddAttendee(user)

	s.notify(ctx, messaging.Notification{
		Type: messaging.AttendeeJoined, Resource: messaging.ResourceTrip, ResourceID: tripID, UserID: userID,
	})
	return trip, nil
}

// RemoveAttendee cancels userID's booking. Cancelling a booking that does
// not exist is a no-op. Returns the trip with its updated roster.
func (s *TripService) RemoveAttendee(ctx context.Context, tripID, userID uuid.UUID) (*domain.Trip, error) {
	trip, err := s.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !trip.IsUserAttending(userID) {
		return trip, nil
	}

	if err := s.trips.RemoveAttendee(ctx, tripID, userID); err != nil {
		return nil, fmt.Errorf("service.TripService.RemoveAttendee: %w", err)
	}
	trip.RemoveAttendee(userID)

	s.notify(ctx, messaging.Notification{
		Type: messaging.AttendeeLeft, Resource: messaging.ResourceTrip, ResourceID: tripID, UserID: userID,
	})
	return trip, nil
}
