package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/travel-booking/backend/internal/domain"
	"github.com/pkordes/travel-booking/backend/internal/service"
)

// createEventRequest is the body of POST /events. The organiser comes from
// the bearer token, never from the body.
type createEventRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
}

// ListEvents handles GET /events.
// ?upcoming=true keeps only events that have not happened yet.
func (s *Server) ListEvents(w http.ResponseWriter, r *http.Request) {
	upcoming, ok := upcomingParam(w, r)
	if !ok {
		return
	}

	list := s.events.List
	if upcoming {
		list = s.events.ListUpcoming
	}
	events, err := list(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, eventsToResponse(events))
}

// GetEvent handles GET /events/{id}.
func (s *Server) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	event, err := s.events.GetByID(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, eventToResponse(event))
}

// ListOrganiserEvents handles GET /events/organiser/{id}.
func (s *Server) ListOrganiserEvents(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	events, err := s.events.ListByOrganiser(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, eventsToResponse(events))
}

// CreateEvent handles POST /events.
func (s *Server) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	organiser, err := s.caller(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	event, err := s.events.Create(r.Context(), service.EventInput{
		Name:        req.Name,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		OrganiserID: organiser.ID,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, eventToResponse(event))
}

// JoinEvent handles POST /events/{id}/attendees.
func (s *Server) JoinEvent(w http.ResponseWriter, r *http.Request) {
	s.changeEventBooking(w, r, s.events.AddAttendee)
}

// LeaveEvent handles DELETE /events/{id}/attendees.
func (s *Server) LeaveEvent(w http.ResponseWriter, r *http.Request) {
	s.changeEventBooking(w, r, s.events.RemoveAttendee)
}

func (s *Server) changeEventBooking(
	w http.ResponseWriter, r *http.Request,
	change func(ctx context.Context, eventID, userID uuid.UUID) (*domain.Event, error),
) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	user, err := s.caller(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	event, err := change(r.Context(), id, user.ID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, eventToResponse(event))
}
