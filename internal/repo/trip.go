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

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// List returns all trips, with organiser and attendees, ordered by start_date.
	List(ctx context.Context) ([]*domain.Trip, error)

	// GetByID retrieves a single trip with organiser and attendees.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error)

	// AddAttendee links a user to a trip. Idempotent.
	// Returns domain.ErrNotFound if the trip or user does not exist.
	AddAttendee(ctx context.Context, tripID, userID uuid.UUID) error

	// RemoveAttendee unlinks a user from a trip. No error if not linked.
	RemoveAttendee(ctx context.Context, tripID, userID uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripSelect = `
	SELECT t.id, t.destination, t.start_date, t.end_date, t.description, t.created_at, t.updated_at,
	       o.id, o.first_name, o.last_name, o.email, o.password, o.is_organiser, o.created_at, o.updated_at
	FROM trips t
	JOIN users o ON o.id = t.organiser_id`

const tripAttendeesSelect = `
	SELECT ta.trip_id, u.id, u.first_name, u.last_name, u.email, u.password, u.is_organiser, u.created_at, u.updated_at
	FROM trip_attendees ta
	JOIN users u ON u.id = ta.user_id
	WHERE ta.trip_id = ANY(@ids::uuid[])
	ORDER BY ta.created_at`

// List returns all trips ordered by start_date ascending.
func (r *pgTripRepo) List(ctx context.Context) ([]*domain.Trip, error) {
	rows, err := r.db.Query(ctx, tripSelect+` ORDER BY t.start_date`)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	defer rows.Close()

	var raws []tripRow
	for rows.Next() {
		var raw tripRow
		if err := rows.Scan(raw.dest()...); err != nil {
			return nil, fmt.Errorf("repo.TripRepo.List: scan: %w", err)
		}
		raws = append(raws, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: rows: %w", err)
	}

	trips, err := r.hydrate(ctx, raws)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	return trips, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	var raw tripRow
	err := r.db.QueryRow(ctx, tripSelect+` WHERE t.id = @id`, pgx.NamedArgs{"id": id}).Scan(raw.dest()...)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.GetByID: %w", translate(err))
	}

	trips, err := r.hydrate(ctx, []tripRow{raw})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return trips[0], nil
}

// AddAttendee inserts a trip_attendees row, ignoring duplicates.
func (r *pgTripRepo) AddAttendee(ctx context.Context, tripID, userID uuid.UUID) error {
	const q = `
		INSERT INTO trip_attendees (trip_id, user_id)
		VALUES (@owner_id, @user_id)
		ON CONFLICT (trip_id, user_id) DO NOTHING`

	if err := linkAttendee(ctx, r.db, q, tripID, userID); err != nil {
		return fmt.Errorf("repo.TripRepo.AddAttendee: %w", err)
	}
	return nil
}

// RemoveAttendee deletes a trip_attendees row if present.
func (r *pgTripRepo) RemoveAttendee(ctx context.Context, tripID, userID uuid.UUID) error {
	const q = `DELETE FROM trip_attendees WHERE trip_id = @owner_id AND user_id = @user_id`

	if err := unlinkAttendee(ctx, r.db, q, tripID, userID); err != nil {
		return fmt.Errorf("repo.TripRepo.RemoveAttendee: %w", err)
	}
	return nil
}

// hydrate loads attendees for the scanned rows and builds domain trips.
func (r *pgTripRepo) hydrate(ctx context.Context, raws []tripRow) ([]*domain.Trip, error) {
	ids := make([]uuid.UUID, len(raws))
	for i, raw := range raws {
		ids[i] = uuid.UUID(raw.id.Bytes)
	}

	attendees, err := listAttendees(ctx, r.db, tripAttendeesSelect, ids)
	if err != nil {
		return nil, fmt.Errorf("attendees: %w", err)
	}

	trips := make([]*domain.Trip, 0, len(raws))
	for i := range raws {
		t, err := raws[i].toDomain(attendees[ids[i]])
		if err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, nil
}

// tripRow holds the raw column values of a trip joined with its organiser.
type tripRow struct {
	id          pgtype.UUID
	destination string
	startDate   time.Time
	endDate     time.Time
	description string
	createdAt   time.Time
	updatedAt   time.Time
	organiser   userRow
}

func (t *tripRow) dest() []any {
	return append([]any{&t.id, &t.destination, &t.startDate, &t.endDate, &t.description, &t.createdAt, &t.updatedAt},
		t.organiser.dest()...)
}

func (t *tripRow) toDomain(attendees []domain.User) (*domain.Trip, error) {
	organiser, err := t.organiser.toDomain()
	if err != nil {
		return nil, err
	}
	trip, err := domain.NewTrip(domain.TripParams{
		ID:          uuid.UUID(t.id.Bytes),
		CreatedAt:   t.createdAt,
		UpdatedAt:   t.updatedAt,
		Destination: t.destination,
		StartDate:   t.startDate,
		EndDate:     t.endDate,
		Description: t.description,
		Organiser:   organiser,
		Attendees:   attendees,
	})
	if err != nil {
		return nil, fmt.Errorf("stored trip %s: %w", uuid.UUID(t.id.Bytes), err)
	}
	return trip, nil
}
