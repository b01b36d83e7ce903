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

// EventRepo defines the persistence operations for Events.
type EventRepo interface {
	// List returns all events, with organiser and attendees, ordered by date.
	List(ctx context.Context) ([]*domain.Event, error)

	// GetByID returns domain.ErrNotFound if no event with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)

	// ListByOrganiser returns all events owned by the given organiser.
	ListByOrganiser(ctx context.Context, organiserID uuid.UUID) ([]*domain.Event, error)

	// Create inserts a new event and returns the persisted record.
	// Returns domain.ErrConflict if the organiser already has an event at
	// the same date; the events table enforces UNIQUE (organiser_id, date).
	Create(ctx context.Context, event *domain.Event) (*domain.Event, error)

	// AddAttendee links a user to an event. Idempotent.
	// Returns domain.ErrNotFound if the event or user does not exist.
	AddAttendee(ctx context.Context, eventID, userID uuid.UUID) error

	// RemoveAttendee unlinks a user from an event. No error if not linked.
	RemoveAttendee(ctx context.Context, eventID, userID uuid.UUID) error
}

// pgEventRepo is the Postgres implementation of EventRepo.
type pgEventRepo struct {
	db db
}

// NewEventRepo constructs an EventRepo backed by the provided db connection.
func NewEventRepo(db db) EventRepo {
	return &pgEventRepo{db: db}
}

const eventColumns = `
	e.id, e.name, e.description, e.date, e.location, e.created_at, e.updated_at,
	o.id, o.first_name, o.last_name, o.email, o.password, o.is_organiser, o.created_at, o.updated_at`

const eventSelect = `SELECT ` + eventColumns + `
	FROM events e
	JOIN users o ON o.id = e.organiser_id`

const eventAttendeesSelect = `
	SELECT ea.event_id, u.id, u.first_name, u.last_name, u.email, u.password, u.is_organiser, u.created_at, u.updated_at
	FROM event_attendees ea
	JOIN users u ON u.id = ea.user_id
	WHERE ea.event_id = ANY(@ids::uuid[])
	ORDER BY ea.created_at`

// List returns all events ordered by date ascending.
func (r *pgEventRepo) List(ctx context.Context) ([]*domain.Event, error) {
	events, err := r.query(ctx, eventSelect+` ORDER BY e.date`, nil)
	if err != nil {
		return nil, fmt.Errorf("repo.EventRepo.List: %w", err)
	}
	return events, nil
}

// ListByOrganiser returns the organiser's events ordered by date ascending.
func (r *pgEventRepo) ListByOrganiser(ctx context.Context, organiserID uuid.UUID) ([]*domain.Event, error) {
	events, err := r.query(ctx, eventSelect+` WHERE e.organiser_id = @organiser_id ORDER BY e.date`,
		pgx.NamedArgs{"organiser_id": organiserID})
	if err != nil {
		return nil, fmt.Errorf("repo.EventRepo.ListByOrganiser: %w", err)
	}
	return events, nil
}

// GetByID retrieves an event by primary key.
func (r *pgEventRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	var raw eventRow
	err := r.db.QueryRow(ctx, eventSelect+` WHERE e.id = @id`, pgx.NamedArgs{"id": id}).Scan(raw.dest()...)
	if err != nil {
		return nil, fmt.Errorf("repo.EventRepo.GetByID: %w", translate(err))
	}

	events, err := r.hydrate(ctx, []eventRow{raw})
	if err != nil {
		return nil, fmt.Errorf("repo.EventRepo.GetByID: %w", err)
	}
	return events[0], nil
}

// Create inserts the event and returns it joined with its organiser.
// A fresh event has no attendees, so no attendee query is issued.
func (r *pgEventRepo) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	const q = `
		WITH e AS (
			INSERT INTO events (name, description, date, location, organiser_id)
			VALUES (@name, @description, @date, @location, @organiser_id)
			RETURNING *
		)
		SELECT ` + eventColumns + `
		FROM e
		JOIN users o ON o.id = e.organiser_id`

	args := pgx.NamedArgs{
		"name":         event.Name,
		"description":  event.Description,
		"date":         event.Date,
		"location":     event.Location,
		"organiser_id": event.Organiser.ID,
	}

	var raw eventRow
	if err := r.db.QueryRow(ctx, q, args).Scan(raw.dest()...); err != nil {
		return nil, fmt.Errorf("repo.EventRepo.Create: %w", translate(err))
	}

	created, err := raw.toDomain(nil)
	if err != nil {
		return nil, fmt.Errorf("repo.EventRepo.Create: %w", err)
	}
	return created, nil
}

// AddAttendee inserts an event_attendees row, ignoring duplicates.
func (r *pgEventRepo) AddAttendee(ctx context.Context, eventID, userID uuid.UUID) error {
	const q = `
		INSERT INTO event_attendees (event_id, user_id)
		VALUES (@owner_id, @user_id)
		ON CONFLICT (event_id, user_id) DO NOTHING`

	if err := linkAttendee(ctx, r.db, q, eventID, userID); err != nil {
		return fmt.Errorf("repo.EventRepo.AddAttendee: %w", err)
	}
	return nil
}

// RemoveAttendee deletes an event_attendees row if present.
func (r *pgEventRepo) RemoveAttendee(ctx context.Context, eventID, userID uuid.UUID) error {
	const q = `DELETE FROM event_attendees WHERE event_id = @owner_id AND user_id = @user_id`

	if err := unlinkAttendee(ctx, r.db, q, eventID, userID); err != nil {
		return fmt.Errorf("repo.EventRepo.RemoveAttendee: %w", err)
	}
	return nil
}

func (r *pgEventRepo) query(ctx context.Context, q string, args pgx.NamedArgs) ([]*domain.Event, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if args == nil {
		rows, err = r.db.Query(ctx, q)
	} else {
		rows, err = r.db.Query(ctx, q, args)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var raws []eventRow
	for rows.Next() {
		var raw eventRow
		if err := rows.Scan(raw.dest()...); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		raws = append(raws, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return r.hydrate(ctx, raws)
}

func (r *pgEventRepo) hydrate(ctx context.Context, raws []eventRow) ([]*domain.Event, error) {
	ids := make([]uuid.UUID, len(raws))
	for i, raw := range raws {
		ids[i] = uuid.UUID(raw.id.Bytes)
	}

	attendees, err := listAttendees(ctx, r.db, eventAttendeesSelect, ids)
	if err != nil {
		return nil, fmt.Errorf("attendees: %w", err)
	}

	events := make([]*domain.Event, 0, len(raws))
	for i := range raws {
		e, err := raws[i].toDomain(attendees[ids[i]])
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

// eventRow holds the raw column values of an event joined with its organiser.
type eventRow struct {
	id          pgtype.UUID
	name        string
	description string
	date        time.Time
	location    string
	createdAt   time.Time
	updatedAt   time.Time
	organiser   userRow
}

func (e *eventRow) dest() []any {
	return append([]any{&e.id, &e.name, &e.description, &e.date, &e.location, &e.createdAt, &e.updatedAt},
		e.organiser.dest()...)
}

// toDomain uses RestoreEvent: stored events may lie in the past.
func (e *eventRow) toDomain(attendees []domain.User) (*domain.Event, error) {
	organiser, err := e.organiser.toDomain()
	if err != nil {
		return nil, err
	}
	event, err := domain.RestoreEvent(domain.EventParams{
		ID:          uuid.UUID(e.id.Bytes),
		CreatedAt:   e.createdAt,
		UpdatedAt:   e.updatedAt,
		Name:        e.name,
		Description: e.description,
		Date:        e.date,
		Location:    e.location,
		Organiser:   organiser,
		Attendees:   attendees,
	})
	if err != nil {
		return nil, fmt.Errorf("stored event %s: %w", uuid.UUID(e.id.Bytes), err)
	}
	return event, nil
}
