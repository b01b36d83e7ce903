package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-booking/backend/internal/domain"
)

// UserRepo defines the persistence operations for Users.
type UserRepo interface {
	// Create inserts a new user and returns the persisted record.
	// Returns domain.ErrConflict if the email is already registered.
	Create(ctx context.Context, user domain.User) (domain.User, error)

	// GetByID returns domain.ErrNotFound if no user with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)

	// GetByEmail returns domain.ErrNotFound if no user with that email exists.
	GetByEmail(ctx context.Context, email string) (domain.User, error)
}

// pgUserRepo is the Postgres implementation of UserRepo.
type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

const userColumns = `id, first_name, last_name, email, password, is_organiser, created_at, updated_at`

// Create inserts a user row. PasswordHash must already be hashed.
func (r *pgUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	const q = `
		INSERT INTO users (first_name, last_name, email, password, is_organiser)
		VALUES (@first_name, @last_name, @email, @password, @is_organiser)
		RETURNING ` + userColumns

	args := pgx.NamedArgs{
		"first_name":   user.FirstName,
		"last_name":    user.LastName,
		"email":        user.Email,
		"password":     user.PasswordHash,
		"is_organiser": user.IsOrganiser,
	}

	result, err := scanUser(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a user by primary key.
func (r *pgUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = @id`

	result, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", err)
	}
	return result, nil
}

// GetByEmail retrieves a user by email. The comparison is exact.
func (r *pgUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = @email`

	result, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": email}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByEmail: %w", err)
	}
	return result, nil
}

// userRow holds the raw column values of a users row. It is embedded in the
// trip and event row types to scan the joined organiser in the same pass.
type userRow struct {
	id          pgtype.UUID
	firstName   string
	lastName    string
	email       string
	password    string
	isOrganiser bool
	createdAt   time.Time
	updatedAt   time.Time
}

// dest returns scan targets in userColumns order.
func (u *userRow) dest() []any {
	return []any{&u.id, &u.firstName, &u.lastName, &u.email, &u.password, &u.isOrganiser, &u.createdAt, &u.updatedAt}
}

func (u *userRow) toDomain() (domain.User, error) {
	user, err := domain.NewUser(domain.UserParams{
		ID:          uuid.UUID(u.id.Bytes),
		FirstName:   u.firstName,
		LastName:    u.lastName,
		Email:       u.email,
		Password:    u.password,
		IsOrganiser: u.isOrganiser,
		CreatedAt:   u.createdAt,
		UpdatedAt:   u.updatedAt,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("stored user %s: %w", uuid.UUID(u.id.Bytes), err)
	}
	return user, nil
}

// scanUser maps a single database row into a domain.User.
func scanUser(s scanner) (domain.User, error) {
	var row userRow
	if err := s.Scan(row.dest()...); err != nil {
		return domain.User{}, translate(err)
	}
	return row.toDomain()
}
