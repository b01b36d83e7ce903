package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkordes/travel-booking/backend/internal/domain"
)

var errMissingClaims = fmt.Errorf("%w: Authentication required.", domain.ErrUnauthorized)

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// sentinels maps each domain error to its HTTP status. The sentinel's own
// text is used as the status label.
var sentinels = []struct {
	err  error
	code int
}{
	{domain.ErrValidation, http.StatusUnprocessableEntity},
	{domain.ErrNotFound, http.StatusNotFound},
	{domain.ErrConflict, http.StatusConflict},
	{domain.ErrUnauthorized, http.StatusUnauthorized},
}

// respondError writes err as an errorResponse. Domain errors keep their
// message; anything else is logged and reported as a generic 500.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	for _, sn := range sentinels {
		if errors.Is(err, sn.err) {
			writeError(w, sn.code, sn.err.Error(), unwrapMessage(err, sn.err))
			return
		}
	}
	s.log.ErrorContext(r.Context(), "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	writeError(w, http.StatusInternalServerError, "application error", "Something went wrong. Please try again later.")
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.EventService.Create: conflict: You already have an event on this date."
// becomes "You already have an event on this date."
// A sentinel carrying no message of its own yields the sentinel text, so
// wrapping context never reaches the client.
func unwrapMessage(err, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if i := strings.Index(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return sentinel.Error()
}

func writeError(w http.ResponseWriter, code int, status, message string) {
	writeJSON(w, code, errorResponse{Status: status, Message: message})
}
