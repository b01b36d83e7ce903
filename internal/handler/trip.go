package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/travel-booking/backend/internal/domain"
)

// ListTrips handles GET /trips.
// ?upcoming=true keeps only trips that have not started yet.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	upcoming, ok := upcomingParam(w, r)
	if !ok {
		return
	}

	list := s.trips.List
	if upcoming {
		list = s.trips.ListUpcoming
	}
	trips, err := list(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tripsToResponse(trips))
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// JoinTrip handles POST /trips/{id}/attendees. The caller books themselves.
func (s *Server) JoinTrip(w http.ResponseWriter, r *http.Request) {
	s.changeTripBooking(w, r, s.trips.AddAttendee)
}

// LeaveTrip handles DELETE /trips/{id}/attendees.
func (s *Server) LeaveTrip(w http.ResponseWriter, r *http.Request) {
	s.changeTripBooking(w, r, s.trips.RemoveAttendee)
}

func (s *Server) changeTripBooking(
	w http.ResponseWriter, r *http.Request,
	change func(ctx context.Context, tripID, userID uuid.UUID) (*domain.Trip, error),
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

	trip, err := change(r.Context(), id, user.ID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tripToResponse(trip))
}
