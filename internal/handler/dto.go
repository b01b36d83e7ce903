package handler

import (
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/travel-booking/backend/internal/domain"
)

// userResponse is the public profile of a user. The password hash never
// leaves the server.
type userResponse struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	IsOrganiser bool      `json:"isOrganiser"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type tripResponse struct {
	ID           uuid.UUID      `json:"id"`
	Destination  string         `json:"destination"`
	StartDate    time.Time      `json:"startDate"`
	EndDate      time.Time      `json:"endDate"`
	DurationDays int            `json:"durationDays"`
	Description  string         `json:"description"`
	Organiser    userResponse   `json:"organiser"`
	Attendees    []userResponse `json:"attendees"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

type eventResponse struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Date        time.Time      `json:"date"`
	Location    string         `json:"location"`
	Organiser   userResponse   `json:"organiser"`
	Attendees   []userResponse `json:"attendees"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func userToResponse(u domain.User) userResponse {
	return userResponse{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		IsOrganiser: u.IsOrganiser,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func usersToResponse(users []domain.User) []userResponse {
	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = userToResponse(u)
	}
	return out
}

func tripToResponse(t *domain.Trip) tripResponse {
	return tripResponse{
		ID:           t.ID,
		Destination:  t.Destination,
		StartDate:    t.StartDate,
		EndDate:      t.EndDate,
		DurationDays: t.DurationDays(),
		Description:  t.Description,
		Organiser:    userToResponse(t.Organiser),
		Attendees:    usersToResponse(t.Attendees()),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func tripsToResponse(trips []*domain.Trip) []tripResponse {
	out := make([]tripResponse, len(trips))
	for i, t := range trips {
		out[i] = tripToResponse(t)
	}
	return out
}

func eventToResponse(e *domain.Event) eventResponse {
	return eventResponse{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Date:        e.Date,
		Location:    e.Location,
		Organiser:   userToResponse(e.Organiser),
		Attendees:   usersToResponse(e.Attendees()),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func eventsToResponse(events []*domain.Event) []eventResponse {
	out := make([]eventResponse, len(events))
	for i, e := range events {
		out[i] = eventToResponse(e)
	}
	return out
}
