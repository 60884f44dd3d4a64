// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"sliders/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// StartIdentityClaimInput defines the data required to start claiming a
// third-party profile.
type StartIdentityClaimInput struct {
	UserID     uuid.UUID
	ProfileURL string
}

// StartDomainChallengeInput defines the data required to start a coach
// domain challenge.
type StartDomainChallengeInput struct {
	UserID    uuid.UUID
	ProgramID uuid.UUID
	Domain    string
	Method    entity.ChallengeMethod
}

// --- Output DTOs ---

// StartIdentityClaimOutput returns the claim row plus the instructions the
// user needs to publish the proof.
type StartIdentityClaimOutput struct {
	Identity *entity.ExternalIdentity

	// Instructions is user-facing text telling the claimant where to place
	// the nonce.
	Instructions string
}

// StartDomainChallengeOutput returns the challenge row plus the proof the
// coach must publish.
type StartDomainChallengeOutput struct {
	Challenge *entity.CoachDomainChallenge

	// ProofValue is the exact string to publish: the full TXT record for
	// the DNS method, or the bare nonce for the well-known file.
	ProofValue string
}

// VerificationUsecase defines the identity claim and coach domain challenge
// workflows. This is the contract the delivery layer depends on.
type VerificationUsecase interface {
	// StartIdentityClaim canonicalizes the profile URL, creates or restarts
	// the claim row and issues a fresh nonce. Claims on profiles held by a
	// different user fail with ErrIdentityAlreadyClaimed regardless of
	// verification state.
	StartIdentityClaim(ctx context.Context, input StartIdentityClaimInput) (*StartIdentityClaimOutput, error)

	// CheckIdentityProof fetches the claimed profile page and looks for the
	// nonce, advancing the verification state machine. Transient fetch
	// failures leave the status untouched.
	CheckIdentityProof(ctx context.Context, userID, identityID uuid.UUID) (*entity.ExternalIdentity, error)

	// ListIdentities returns all identity rows belonging to the user.
	ListIdentities(ctx context.Context, userID uuid.UUID) ([]*entity.ExternalIdentity, error)

	// StartDomainChallenge creates or restarts a domain challenge for the
	// coach, issuing a fresh nonce and expiry window.
	StartDomainChallenge(ctx context.Context, input StartDomainChallengeInput) (*StartDomainChallengeOutput, error)

	// CheckDomainChallenge runs the DNS or well-known proof check for the
	// challenge. Expired challenges fail with ErrChallengeExpired even when
	// the published proof matches.
	CheckDomainChallenge(ctx context.Context, userID, challengeID uuid.UUID) (*entity.CoachDomainChallenge, error)
}
