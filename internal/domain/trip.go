// Package domain contains the core types and business rules for the travel
// booking application. Entities validate themselves on construction; repo,
// service, and handler packages all build on these types.
package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Trip is a holiday package run by an organiser.
// Fields other than the attendee roster are fixed once constructed;
// attendees change only through AddAttendee and RemoveAttendee.
type Trip struct {
	ID          uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Description string
	Organiser   User

	attendees roster
}

// TripParams carries the raw fields NewTrip validates.
type TripParams struct {
	ID          uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Description string
	Organiser   User
	Attendees   []User
}

// NewTrip validates p and returns a Trip. Rules are checked in a fixed
// order and the first failure is returned wrapped in ErrValidation.
func NewTrip(p TripParams) (*Trip, error) {
	destination := strings.TrimSpace(p.Destination)
	description := strings.TrimSpace(p.Description)

	switch {
	case destination == "":
		return nil, fmt.Errorf("%w: Destination is required", ErrValidation)
	case p.StartDate.IsZero():
		return nil, fmt.Errorf("%w: Start date is required", ErrValidation)
	case p.EndDate.IsZero():
		return nil, fmt.Errorf("%w: End date is required", ErrValidation)
	case !p.StartDate.Before(p.EndDate):
		return nil, fmt.Errorf("%w: End date must be after start date", ErrValidation)
	case description == "":
		return nil, fmt.Errorf("%w: Description is required", ErrValidation)
	case !p.Organiser.IsOrganiser:
		return nil, fmt.Errorf("%w: User must be an organiser to organise trips", ErrValidation)
	}

	return &Trip{
		ID:          p.ID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Destination: destination,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Description: description,
		Organiser:   p.Organiser,
		attendees:   newRoster(p.Attendees),
	}, nil
}

// Attendees returns a copy of the attendee list.
func (t *Trip) Attendees() []User {
	return t.attendees.clone()
}

// AddAttendee adds u unless an attendee with the same ID is already present.
func (t *Trip) AddAttendee(u User) {
	t.attendees = t.attendees.add(u)
}

// RemoveAttendee drops the attendee with the given ID. Absent IDs are ignored.
func (t *Trip) RemoveAttendee(userID uuid.UUID) {
	t.attendees = t.attendees.remove(userID)
}

// IsUserAttending reports whether userID is on the roster.
func (t *Trip) IsUserAttending(userID uuid.UUID) bool {
	return t.attendees.contains(userID)
}

// DurationDays returns the trip length in whole days, rounded up.
func (t *Trip) DurationDays() int {
	return int(math.Ceil(t.EndDate.Sub(t.StartDate).Hours() / 24))
}

// Equal compares the descriptive fields and the organiser.
// IDs, timestamps, and attendees are not compared.
func (t *Trip) Equal(other *Trip) bool {
	return t.Destination == other.Destination &&
		t.StartDate.Equal(other.StartDate) &&
		t.EndDate.Equal(other.EndDate) &&
		t.Description == other.Description &&
		t.Organiser.Equal(other.Organiser)
}
