package entity

import (
	"time"

	"github.com/google/uuid"
)

// IdentityProvider names a third-party results site whose profiles can be
// claimed by a user.
type IdentityProvider string

const (
	ProviderAthleticNet IdentityProvider = "athleticnet"
	ProviderMileSplit   IdentityProvider = "milesplit"
)

// VerificationStatus is the lifecycle state shared by identity claims and
// coach domain challenges.
type VerificationStatus string

const (
	// VerificationPending means a nonce has been issued and is awaiting proof.
	VerificationPending VerificationStatus = "pending"
	// VerificationVerified is the happy-path terminal state.
	VerificationVerified VerificationStatus = "verified"
	// VerificationFailed means the last proof check did not find the nonce.
	// The same nonce stays valid for another check.
	VerificationFailed VerificationStatus = "failed"
	// VerificationExpired means the challenge window closed before the proof
	// was observed. Terminal.
	VerificationExpired VerificationStatus = "expired"
)

// ExternalIdentity is a claimed link between a user and a third-party
// profile. The (Provider, ExternalID) pair is globally unique: one external
// profile can never be owned by two users. Rows are never hard-deleted;
// re-starting verification reissues the nonce in place.
type ExternalIdentity struct {
	ID                uuid.UUID        // The unique ID for this identity row.
	UserID            uuid.UUID        // The user attempting or holding the claim.
	Provider          IdentityProvider // Which results site the profile lives on.
	ExternalID        string           // The profile slug on the provider's site.
	ExternalNumericID *int64           // The provider's numeric profile ID, when the URL carries one.
	ProfileURL        string           // Canonical URL of the claimed profile.
	Nonce             string           // Random proof string the user must publish on the profile.
	Status            VerificationStatus
	Verified          bool       // True once a proof check has succeeded.
	VerifiedAt        *time.Time // When the claim was verified.
	Attempts          int        // Number of proof checks performed.
	LastCheckedAt     *time.Time // When the most recent proof check ran.
	IsPrimary         bool       // At most one identity per (user, provider) is primary.
	ErrorMessage      string     // Human-readable detail from the last failed check.
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
