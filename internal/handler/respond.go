package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes the request body into dst. On failure it writes the
// error response itself and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "request too large", "Request body is too large.")
		return false
	}
	writeError(w, http.StatusBadRequest, "bad request", "Request body must be valid JSON: "+err.Error())
	return false
}

// pathID binds the {id} URL parameter as a UUID. On failure it writes a
// 400 response and returns false.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad request", "Invalid format for parameter id: "+err.Error())
		return uuid.Nil, false
	}
	return id, true
}

// upcomingParam binds the optional ?upcoming= query flag.
func upcomingParam(w http.ResponseWriter, r *http.Request) (bool, bool) {
	var upcoming *bool
	if err := runtime.BindQueryParameter("form", true, false, "upcoming", r.URL.Query(), &upcoming); err != nil {
		writeError(w, http.StatusBadRequest, "bad request", "Invalid format for parameter upcoming: "+err.Error())
		return false, false
	}
	return upcoming != nil && *upcoming, true
}
