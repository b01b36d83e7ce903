package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/travel-booking/backend/internal/domain"
	"github.com/pkordes/travel-booking/backend/internal/messaging"
	"github.com/pkordes/travel-booking/backend/internal/repo"
)

// EventInput is what an organiser submits to create an event.
type EventInput struct {
	Name        string
	Description string
	Date        time.Time
	Location    string
	OrganiserID uuid.UUID
}

// EventService implements business logic for Event operations.
// It holds the users repo because creating an event and booking attendees
// both need the full user record.
type EventService struct {
	events repo.EventRepo
	users  repo.UserRepo
	deps
}

// NewEventService constructs an EventService backed by the provided repos.
func NewEventService(events repo.EventRepo, users repo.UserRepo, opts ...Option) *EventService {
	return &EventService{events: events, users: users, deps: newDeps(opts)}
}

// List returns every event. Always returns a non-nil slice.
func (s *EventService) List(ctx context.Context) ([]*domain.Event, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.EventService.List: %w", err)
	}
	if events == nil {
		return []*domain.Event{}, nil
	}
	return events, nil
}

// GetByID returns a single event.
// Returns domain.ErrNotFound naming the id if it does not exist.
func (s *EventService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, eventNotFound(id)
		}
		return nil, fmt.Errorf("service.EventService.GetByID: %w", err)
	}
	return event, nil
}

// ListUpcoming returns the events dated strictly after now.
func (s *EventService) ListUpcoming(ctx context.Context) ([]*domain.Event, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	upcoming := []*domain.Event{}
	for _, e := range all {
		if e.Date.After(now) {
			upcoming = append(upcoming, e)
		}
	}
	return upcoming, nil
}

// ListByOrganiser returns the events owned by organiserID.
// Always returns a non-nil slice.
func (s *EventService) ListByOrganiser(ctx context.Context, organiserID uuid.UUID) ([]*domain.Event, error) {
	events, err := s.events.ListByOrganiser(ctx, organiserID)
	if err != nil {
		return nil, fmt.Errorf("service.EventService.ListByOrganiser: %w", err)
	}
	if events == nil {
		return []*domain.Event{}, nil
	}
	return events, nil
}

// Create validates and persists a new event.
//
// The organiser may not already host an event at the same instant
// (millisecond precision). The check runs before the insert, and the
// events table's UNIQUE (organiser_id, date) constraint catches the
// concurrent case; both surface as domain.ErrConflict.
func (s *EventService) Create(ctx context.Context, in EventInput) (*domain.Event, error) {
	organiser, err := getUser(ctx, s.users, in.OrganiserID)
	if err != nil {
		return nil, err
	}

	event, err := domain.NewEvent(domain.EventParams{
		Name:        in.Name,
		Description: in.Description,
		Date:        in.Date.Truncate(time.Millisecond),
		Location:    in.Location,
		Organiser:   organiser,
	}, s.now())
	if err != nil {
		return nil, err
	}

	existing, err := s.events.ListByOrganiser(ctx, organiser.ID)
	if err != nil {
		return nil, fmt.Errorf("service.EventService.Create: %w", err)
	}
	for _, e := range existing {
		if e.SameSlot(event.Date) {
			return nil, errDateTaken
		}
	}

	created, err := s.events.Create(ctx, event)
	if err != nil {
		if isConflict(err) {
			return nil, errDateTaken
		}
		return nil, fmt.Errorf("service.EventService.Create: %w", err)
	}

	s.notify(ctx, messaging.Notification{
		Type: messaging.EventCreated, Resource: messaging.ResourceEvent, ResourceID: created.ID, UserID: organiser.ID,
	})
	return created, nil
}

var errDateTaken = fmt.Errorf("%w: You already have an event on this date.", domain.ErrConflict)

// AddAttendee books userID onto the event. Booking twice is a no-op.
func (s *EventService) AddAttendee(ctx context.Context, eventID, userID uuid.UUID) (*domain.Event, error) {
	event, err := s.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	user, err := getUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	if event.IsUserAttending(userID) {
		return event, nil
	}

	if err := s.events.AddAttendee(ctx, eventID, userID); err != nil {
		// The row can vanish between the lookup and the insert.
		if isNotFound(err) {
			return nil, eventNotFound(eventID)
		}
		return nil, fmt.Errorf("service.EventService.AddAttendee: %w", err)
	}
	event.AddAttendee(user)

	s.notify(ctx, messaging.Notification{
		Type: messaging.AttendeeJoined, Resource: messaging.ResourceEvent, ResourceID: eventID, UserID: userID,
	})
	return event, nil
}

// RemoveAttendee cancels userID's booking. Cancelling an absent booking is a no-op.
func (s *EventService) RemoveAttendee(ctx context.Context, eventID, userID uuid.UUID) (*domain.Event, error) {
	event, err := s.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.IsUserAttending(userID) {
		return event, nil
	}

	if err := s.events.RemoveAttendee(ctx, eventID, userID); err != nil {
		return nil, fmt.Errorf("service.EventService.RemoveAttendee: %w", err)
	}
	event.RemoveAttendee(userID)

	s.notify(ctx, messaging.Notification{
		Type: messaging.AttendeeLeft, Resource: messaging.ResourceEvent, ResourceID: eventID, UserID: userID,
	})
	return event, nil
}
