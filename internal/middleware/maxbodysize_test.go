package middleware_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-booking/backend/internal/middleware"
)

// bodyReadingHandler reads the whole body the way a JSON decoder would and
// answers 413 when the read fails.
var bodyReadingHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	if _, err := io.ReadAll(r.Body); err != nil {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		return
	}
	w.WriteHeader(http.StatusOK)
})

func postSignup(size int, contentLength int64) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/users/signup", strings.NewReader(strings.Repeat("x", size)))
	req.ContentLength = contentLength
	return req
}

func TestMaxBodySizeHandler_WithinLimit(t *testing.T) {
	h := middleware.NewMaxBodySizeHandler(100)(bodyReadingHandler)

	for _, size := range []int{0, 50, 100} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, postSignup(size, int64(size)))
		require.Equal(t, http.StatusOK, rec.Code, "size %d", size)
	}
}

// A declared Content-Length over the limit is refused before the handler runs.
func TestMaxBodySizeHandler_ContentLengthExceedsLimit(t *testing.T) {
	var called bool
	h := middleware.NewMaxBodySizeHandler(100)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, postSignup(200, 200))

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.False(t, called)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "request too large", body["status"])
	assert.Equal(t, "Request body is too large.", body["message"])
}

// Without a Content-Length the limit is enforced while the body is read.
func TestMaxBodySizeHandler_StreamingBodyExceedsLimit(t *testing.T) {
	h := middleware.NewMaxBodySizeHandler(100)(bodyReadingHandler)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, postSignup(200, -1))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
