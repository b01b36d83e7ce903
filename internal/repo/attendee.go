package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-booking/backend/internal/domain"
)

// listAttendees runs q, which must select an owner id followed by the user
// columns of each attendee, for the given owner ids. The result is keyed by
// owner id.
func listAttendees(ctx context.Context, conn db, q string, ids []uuid.UUID) (map[uuid.UUID][]domain.User, error) {
	out := make(map[uuid.UUID][]domain.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}

	rows, err := conn.Query(ctx, q, pgx.NamedArgs{"ids": keys})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			owner pgtype.UUID
			u     userRow
		)
		if err := rows.Scan(append([]any{&owner}, u.dest()...)...); err != nil {
			return nil, fmt.Errorf("scan attendee: %w", err)
		}
		user, err := u.toDomain()
		if err != nil {
			return nil, err
		}
		key := uuid.UUID(owner.Bytes)
		out[key] = append(out[key], user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("attendee rows: %w", err)
	}
	return out, nil
}

// linkAttendee runs an idempotent insert into a join table.
// A missing owner or user surfaces as domain.ErrNotFound.
func linkAttendee(ctx context.Context, conn db, q string, ownerID, userID uuid.UUID) error {
	_, err := conn.Exec(ctx, q, pgx.NamedArgs{"owner_id": ownerID, "user_id": userID})
	if err != nil {
		return translate(err)
	}
	return nil
}

// unlinkAttendee deletes a join row. Deleting an absent link is not an error.
func unlinkAttendee(ctx context.Context, conn db, q string, ownerID, userID uuid.UUID) error {
	_, err := conn.Exec(ctx, q, pgx.NamedArgs{"owner_id": ownerID, "user_id": userID})
	return err
}
