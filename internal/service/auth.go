package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/travel-booking/backend/internal/auth"
	"github.com/pkordes/travel-booking/backend/internal/domain"
	"github.com/pkordes/travel-booking/backend/internal/repo"
)

// TokenIssuer mints access tokens. *auth.TokenIssuer satisfies it.
type TokenIssuer interface {
	Issue(email string, isOrganiser bool) (string, error)
}

// AuthResult is returned by a successful login.
type AuthResult struct {
	Token string
	User  domain.User
	Role  string
}

// SignupInput carries the fields of a new account. Password is plain text.
type SignupInput struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	IsOrganiser bool
}

// AuthService handles signup, login, and caller lookup.
type AuthService struct {
	users  repo.UserRepo
	tokens TokenIssuer
}

// NewAuthService constructs an AuthService.
func NewAuthService(users repo.UserRepo, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Authenticate checks email and password and returns a signed token.
// Returns domain.ErrNotFound for an unknown email and domain.ErrUnauthorized
// for a wrong password.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (AuthResult, error) {
	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		return AuthResult{}, err
	}

	ok, err := auth.CheckPassword(user.PasswordHash, password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("service.AuthService.Authenticate: %w", err)
	}
	if !ok {
		return AuthResult{}, fmt.Errorf("%w: Incorrect password.", domain.ErrUnauthorized)
	}

	token, err := s.tokens.Issue(user.Email, user.IsOrganiser)
	if err != nil {
		return AuthResult{}, fmt.Errorf("service.AuthService.Authenticate: %w", err)
	}

	return AuthResult{Token: token, User: user, Role: user.Role()}, nil
}

// Signup validates and stores a new account with a bcrypt-hashed password.
// Returns domain.ErrConflict if the email is already registered.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (domain.User, error) {
	// Validate against the plain password: the length rule applies to it,
	// not to the hash.
	user, err := domain.NewUser(domain.UserParams{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		Password:    in.Password,
		IsOrganiser: in.IsOrganiser,
	})
	if err != nil {
		return domain.User{}, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Signup: %w", err)
	}
	user.PasswordHash = hash

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if isConflict(err) {
			return domain.User{}, fmt.Errorf("%w: User with email: %s already exists.", domain.ErrConflict, user.Email)
		}
		return domain.User{}, fmt.Errorf("service.AuthService.Signup: %w", err)
	}
	return created, nil
}

// GetByEmail returns the user registered under email.
// Returns domain.ErrNotFound naming the email if there is none.
func (s *AuthService) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	email = strings.TrimSpace(email)
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return domain.User{}, fmt.Errorf("%w: User with email: %s does not exist.", domain.ErrNotFound, email)
		}
		return domain.User{}, fmt.Errorf("service.AuthService.GetByEmail: %w", err)
	}
	return user, nil
}
