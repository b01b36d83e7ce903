// Package service contains the business logic for the travel booking API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/travel-booking/backend/internal/domain"
	"github.com/pkordes/travel-booking/backend/internal/messaging"
	"github.com/pkordes/travel-booking/backend/internal/repo"
)

// Option configures optional collaborators of TripService and EventService.
type Option func(*deps)

// deps holds the collaborators every booking service shares.
type deps struct {
	now       func() time.Time
	publisher messaging.Publisher
	log       *slog.Logger
}

func newDeps(opts []Option) deps {
	d := deps{
		now:       time.Now,
		publisher: messaging.NopPublisher{},
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// WithClock replaces time.Now, which decides what counts as upcoming and
// whether a new event lies in the future.
func WithClock(now func() time.Time) Option {
	return func(d *deps) { d.now = now }
}

// WithPublisher sets where booking notifications are sent.
func WithPublisher(p messaging.Publisher) Option {
	return func(d *deps) { d.publisher = p }
}

// WithLogger sets the logger used for non-fatal failures.
func WithLogger(l *slog.Logger) Option {
	return func(d *deps) { d.log = l }
}

// notify publishes n and logs, rather than returns, any failure: the change
// it describes has already been committed.
func (d deps) notify(ctx context.Context, n messaging.Notification) {
	n.OccurredAt = d.now().UTC()
	if err := d.publisher.Publish(ctx, n); err != nil {
		d.log.WarnContext(ctx, "publish notification failed",
			"type", n.Type,
			"resource", n.Resource,
			"resource_id", n.ResourceID,
			"error", err,
		)
	}
}

// getUser loads a user, turning a missing row into a descriptive ErrNotFound.
func getUser(ctx context.Context, users repo.UserRepo, id uuid.UUID) (domain.User, error) {
	u, err := users.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return domain.User{}, fmt.Errorf("%w: User with id: %s does not exist.", domain.ErrNotFound, id)
		}
		return domain.User{}, err
	}
	return u, nil
}
