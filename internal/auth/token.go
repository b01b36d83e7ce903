// Package auth issues and verifies the bearer tokens handed out at login,
// and hashes and checks user passwords.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultIssuer is the iss claim used when none is configured.
const DefaultIssuer = "travel_booking_app"

// ErrInvalidToken is returned by Parse for any token that fails verification.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the JWT payload carried by every access token.
type Claims struct {
	Email       string `json:"email"`
	IsOrganiser bool   `json:"isOrganiser"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 tokens with a shared secret.
type TokenIssuer struct {
	secret []byte
	expiry time.Duration
	issuer string
	now    func() time.Time
}

// NewTokenIssuer returns a TokenIssuer. An empty issuer falls back to DefaultIssuer.
func NewTokenIssuer(secret string, expiry time.Duration, issuer string) *TokenIssuer {
	if issuer == "" {
		issuer = DefaultIssuer
	}
	return &TokenIssuer{
		secret: []byte(secret),
		expiry: expiry,
		issuer: issuer,
		now:    time.Now,
	}
}

// Issue mints a signed token for the given user identity.
func (ti *TokenIssuer) Issue(email string, isOrganiser bool) (string, error) {
	now := ti.now()
	claims := Claims{
		Email:       email,
		IsOrganiser: isOrganiser,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ti.issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ti.secret)
	if err != nil {
		return "", fmt.Errorf("auth.TokenIssuer.Issue: %w", err)
	}
	return signed, nil
}

// Parse verifies signature, issuer, and expiry, and returns the claims.
// Any failure is reported as ErrInvalidToken wrapping the underlying cause.
func (ti *TokenIssuer) Parse(tokenString string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims,
		func(t *jwt.Token) (any, error) {
			return ti.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(ti.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(ti.now),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return claims, nil
}
