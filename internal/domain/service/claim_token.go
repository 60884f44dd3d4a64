// Package service declares the domain-service contracts that the use case
// layer depends on. Concrete implementations live under internal/infra.
package service

import (
	"time"

	"sliders/internal/domain/entity"

	"github.com/google/uuid"
)

// ClaimTokenPayload is the signed content of a one-click claim link. All
// fields are bound together under one signature so values from two
// different valid tokens cannot be mixed and matched.
type ClaimTokenPayload struct {
	RowID             uuid.UUID               // The ExternalIdentity row the link acts on.
	UserID            uuid.UUID               // The user the link was minted for.
	Provider          entity.IdentityProvider // Provider of the claimed profile.
	ExternalID        string                  // Profile slug at mint time.
	ExternalNumericID *int64                  // Numeric profile ID at mint time, when known.
	Nonce             string                  // Verification nonce at mint time.
}

// ClaimTokenService mints and verifies self-contained, signed, time-bound
// claim tokens. Verify distinguishes an expired token from a tampered or
// malformed one, so callers can tell the user to request a fresh link
// instead of reporting a broken one.
//
// A decoded token is a capability hint only: the claim endpoint must
// re-check the embedded fields against the live identity row before acting.
type ClaimTokenService interface {
	// Mint signs the payload into a compact token valid for ttl.
	Mint(payload *ClaimTokenPayload, ttl time.Duration) (string, error)

	// Verify checks signature and expiry and returns the embedded payload.
	// Failures are domainerrors.ErrClaimTokenExpired for a correctly signed
	// but stale token, and domainerrors.ErrClaimTokenInvalid otherwise.
	Verify(token string) (*ClaimTokenPayload, error)
}
