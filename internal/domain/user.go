package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MinPasswordLength is the shortest password NewUser accepts.
const MinPasswordLength = 6

// Role names exposed to clients after login.
const (
	RoleOrganiser = "ORGANISER"
	RoleClient    = "CLIENT"
)

// User is an account. ID is uuid.Nil until the user has been persisted;
// CreatedAt and UpdatedAt are zero until then as well.
type User struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	IsOrganiser  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserParams carries the raw fields NewUser validates.
// Password is either the plain-text password (signup) or the stored hash
// (rehydration from the database); both must satisfy the length rule.
type UserParams struct {
	ID          uuid.UUID
	FirstName   string
	LastName    string
	Email       string
	Password    string
	IsOrganiser bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewUser validates p and returns a User with trimmed name and email fields.
// The first failing rule is reported, wrapped in ErrValidation.
func NewUser(p UserParams) (User, error) {
	u := User{
		ID:           p.ID,
		FirstName:    strings.TrimSpace(p.FirstName),
		LastName:     strings.TrimSpace(p.LastName),
		Email:        strings.TrimSpace(p.Email),
		PasswordHash: p.Password,
		IsOrganiser:  p.IsOrganiser,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}

	switch {
	case u.FirstName == "":
		return User{}, fmt.Errorf("%w: First name is required", ErrValidation)
	case u.LastName == "":
		return User{}, fmt.Errorf("%w: Last name is required", ErrValidation)
	case u.Email == "":
		return User{}, fmt.Errorf("%w: Email is required", ErrValidation)
	case strings.TrimSpace(p.Password) == "":
		return User{}, fmt.Errorf("%w: Password is required", ErrValidation)
	case len(p.Password) < MinPasswordLength:
		return User{}, fmt.Errorf("%w: Password must be at least %d characters long", ErrValidation, MinPasswordLength)
	}

	return u, nil
}

// IsPersisted reports whether the user has been assigned a database ID.
func (u User) IsPersisted() bool {
	return u.ID != uuid.Nil
}

// FullName returns "First Last".
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Role returns RoleOrganiser or RoleClient depending on IsOrganiser.
func (u User) Role() string {
	if u.IsOrganiser {
		return RoleOrganiser
	}
	return RoleClient
}

// Equal compares identity fields. PasswordHash and timestamps are ignored.
func (u User) Equal(other User) bool {
	return u.FirstName == other.FirstName &&
		u.LastName == other.LastName &&
		u.Email == other.Email &&
		u.IsOrganiser == other.IsOrganiser &&
		u.ID == other.ID
}
