package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pkordes/travel-booking/backend/internal/auth"
)

// TokenParser validates a bearer token. *auth.TokenIssuer satisfies it.
type TokenParser interface {
	Parse(token string) (auth.Claims, error)
}

type claimsKey struct{}

// RequireAuth returns a middleware that rejects requests without a valid
// "Authorization: Bearer <jwt>" header with 401. Accepted claims are stored
// in the request context; read them back with ClaimsFromContext.
func RequireAuth(tokens TokenParser, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				unauthorized(w, "Authorization header missing.")
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				unauthorized(w, "Invalid authorization header format.")
				return
			}

			claims, err := tokens.Parse(strings.TrimSpace(token))
			if err != nil {
				log.DebugContext(r.Context(), "rejected bearer token", "error", err)
				unauthorized(w, "Invalid or expired token.")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// WithClaims returns a copy of ctx carrying claims.
func WithClaims(ctx context.Context, claims auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the claims stored by RequireAuth.
func ClaimsFromContext(ctx context.Context) (auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(auth.Claims)
	return claims, ok
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, "unauthorized", message)
}

// writeError writes the {"status","message"} body the handlers also use.
func writeError(w http.ResponseWriter, code int, status, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  status,
		"message": message,
	})
}
