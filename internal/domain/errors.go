package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails a business rule
// (e.g. missing required field, end date not after start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a write would collide with existing state:
// a duplicate email on signup, or an organiser already hosting an event at
// the requested date. Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrUnauthorized is returned when credentials or a bearer token are wrong.
// Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")

