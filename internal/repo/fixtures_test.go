package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-booking/backend/internal/domain"
	"github.com/pkordes/travel-booking/backend/internal/repo"
	"github.com/pkordes/travel-booking/backend/testutil"
)

// newTx opens a transaction against the test database that is rolled back
// when the test finishes, giving free per-test isolation.
func newTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})
	return tx
}

// insertUser stores a user whose email is unique to this call.
func insertUser(t *testing.T, tx pgx.Tx, first string, organiser bool) domain.User {
	t.Helper()
	u, err := domain.NewUser(domain.UserParams{
		FirstName:   first,
		LastName:    "Claes",
		Email:       first + "+" + uuid.NewString()[:8] + "@example.com",
		Password:    "$2a$12$notarealhashbutlongenough",
		IsOrganiser: organiser,
	})
	require.NoError(t, err)

	created, err := repo.NewUserRepo(tx).Create(context.Background(), u)
	require.NoError(t, err)
	return created
}

// insertTrip stores a trip directly; trips are created outside the API.
func insertTrip(t *testing.T, tx pgx.Tx, organiser domain.User, destination string, start time.Time) uuid.UUID {
	t.Helper()
	const q = `
		INSERT INTO trips (destination, start_date, end_date, description, organiser_id)
		VALUES (@destination, @start_date, @end_date, @description, @organiser_id)
		RETURNING id`

	var id uuid.UUID
	err := tx.QueryRow(context.Background(), q, pgx.NamedArgs{
		"destination":  destination,
		"start_date":   start,
		"end_date":     start.AddDate(0, 0, 5),
		"description":  "Fixture trip",
		"organiser_id": organiser.ID,
	}).Scan(&id)
	require.NoError(t, err)
	return id
}

// newEvent builds an unsaved event for organiser at date.
func newEvent(t *testing.T, organiser domain.User, name string, date time.Time) *domain.Event {
	t.Helper()
	e, err := domain.RestoreEvent(domain.EventParams{
		Name:        name,
		Description: "Fixture event",
		Date:        date,
		Location:    "Ghent",
		Organiser:   organiser,
	})
	require.NoError(t, err)
	return e
}
