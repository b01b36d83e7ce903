package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Event is an organiser-run experience at a single point in time.
type Event struct {
	ID          uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Name        string
	Description string
	Date        time.Time
	Location    string
	Organiser   User

	attendees roster
}

// EventParams carries the raw fields NewEvent and RestoreEvent validate.
type EventParams struct {
	ID          uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Name        string
	Description string
	Date        time.Time
	Location    string
	Organiser   User
	Attendees   []User
}

// NewEvent validates p for a new event. The date must be strictly after now.
func NewEvent(p EventParams, now time.Time) (*Event, error) {
	return buildEvent(p, &now)
}

// RestoreEvent rebuilds an event that has already been persisted.
// It applies every rule of NewEvent except the future-date check, so past
// events can still be loaded and listed.
func RestoreEvent(p EventParams) (*Event, error) {
	return buildEvent(p, nil)
}

func buildEvent(p EventParams, now *time.Time) (*Event, error) {
	name := strings.TrimSpace(p.Name)
	description := strings.TrimSpace(p.Description)
	location := strings.TrimSpace(p.Location)

	switch {
	case name == "":
		return nil, fmt.Errorf("%w: Event name is required", ErrValidation)
	case description == "":
		return nil, fmt.Errorf("%w: Event description is required", ErrValidation)
	case p.Date.IsZero():
		return nil, fmt.Errorf("%w: Event date is required", ErrValidation)
	case now != nil && !p.Date.After(*now):
		return nil, fmt.Errorf("%w: Event date must be in the future", ErrValidation)
	case location == "":
		return nil, fmt.Errorf("%w: Event location is required", ErrValidation)
	case !p.Organiser.IsOrganiser:
		return nil, fmt.Errorf("%w: User must have organiser role to organise events", ErrValidation)
	}

	return &Event{
		ID:          p.ID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Name:        name,
		Description: description,
		Date:        p.Date,
		Location:    location,
		Organiser:   p.Organiser,
		attendees:   newRoster(p.Attendees),
	}, nil
}

// Attendees returns a copy of the attendee list.
func (e *Event) Attendees() []User {
	return e.attendees.clone()
}

// AddAttendee adds u unless an attendee with the same ID is already present.
func (e *Event) AddAttendee(u User) {
	e.attendees = e.attendees.add(u)
}

// RemoveAttendee drops the attendee with the given ID. Absent IDs are ignored.
func (e *Event) RemoveAttendee(userID uuid.UUID) {
	e.attendees = e.attendees.remove(userID)
}

// IsUserAttending reports whether userID is on the roster.
func (e *Event) IsUserAttending(userID uuid.UUID) bool {
	return e.attendees.contains(userID)
}

// SameSlot reports whether e and date fall on the same instant at
// millisecond precision, which is how organiser date conflicts are decided.
func (e *Event) SameSlot(date time.Time) bool {
	return e.Date.Truncate(time.Millisecond).Equal(date.Truncate(time.Millisecond))
}

// Equal compares the descriptive fields and the organiser.
func (e *Event) Equal(other *Event) bool {
	return e.Name == other.Name &&
		e.Description == other.Description &&
		e.Date.Equal(other.Date) &&
		e.Location == other.Location &&
		e.Organiser.Equal(other.Organiser)
}
