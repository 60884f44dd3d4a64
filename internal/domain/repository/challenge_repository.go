package repository

import (
	"context"
	"errors"

	"sliders/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrChallengeNotFound is returned when no domain challenge matches the lookup.
var ErrChallengeNotFound = errors.New("coach domain challenge not found")

// ChallengeRepository defines persistence operations for coach domain
// challenges.
type ChallengeRepository interface {
	// FindByID retrieves a single challenge by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CoachDomainChallenge, error)

	// FindActiveByUserAndDomain retrieves the most recent non-terminal
	// challenge for a user and domain, if any.
	FindActiveByUserAndDomain(ctx context.Context, userID uuid.UUID, domain string) (*entity.CoachDomainChallenge, error)

	// Create persists a new challenge.
	Create(ctx context.Context, challenge *entity.CoachDomainChallenge) error

	// Update modifies an existing challenge in place.
	Update(ctx context.Context, challenge *entity.CoachDomainChallenge) error
}
