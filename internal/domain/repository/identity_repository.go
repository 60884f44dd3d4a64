package repository

import (
	"context"
	"errors"

	"sliders/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrIdentityNotFound is returned when no identity row matches the lookup.
var ErrIdentityNotFound = errors.New("external identity not found")

// IdentityRepository defines persistence operations for claimed external
// identities. The (provider, external_id) unique constraint at the data
// layer is the concurrency-safety mechanism for claim uniqueness: two
// simultaneous claim starts for one profile resolve to exactly one created
// row and one conflict, with no application-level locking.
type IdentityRepository interface {
	// FindByID retrieves a single identity row by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ExternalIdentity, error)

	// FindByProviderExternalID retrieves the identity row claiming the given
	// external profile, regardless of owner.
	FindByProviderExternalID(ctx context.Context, provider entity.IdentityProvider, externalID string) (*entity.ExternalIdentity, error)

	// ListByUser retrieves all identity rows belonging to one user.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.ExternalIdentity, error)

	// Create persists a new identity row. A unique-constraint violation on
	// (provider, external_id) surfaces as ErrIdentityAlreadyClaimed.
	Create(ctx context.Context, identity *entity.ExternalIdentity) error

	// Update modifies an existing identity row in place.
	Update(ctx context.Context, identity *entity.ExternalIdentity) error

	// CountVerified returns the number of verified identities the user holds
	// for the provider. Used for auto-primary promotion.
	CountVerified(ctx context.Context, userID uuid.UUID, provider entity.IdentityProvider) (int, error)
}
