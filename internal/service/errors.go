package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/travel-booking/backend/internal/domain"
)

func isNotFound(err error) bool { return errors.Is(err, domain.ErrNotFound) }
func isConflict(err error) bool { return errors.Is(err, domain.ErrConflict) }

func tripNotFound(id uuid.UUID) error {
	return fmt.Errorf("%w: Trip with id: %s does not exist.", domain.ErrNotFound, id)
}

func eventNotFound(id uuid.UUID) error {
	return fmt.Errorf("%w: Event with id: %s does not exist.", domain.ErrNotFound, id)
}
