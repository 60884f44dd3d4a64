package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChallengeMethod selects how a coach proves control of an institutional domain.
type ChallengeMethod string

const (
	// ChallengeDNS expects a TXT record of the form
	// "certified-sliders-verify=<nonce>" on the domain.
	ChallengeDNS ChallengeMethod = "dns"
	// ChallengeHTTP expects the raw nonce as the body of a well-known file
	// served from the domain.
	ChallengeHTTP ChallengeMethod = "http"
)

// CoachDomainChallenge is one proof-of-affiliation attempt for a coach's
// institutional domain. The nonce is single-use per challenge and the
// expiry window is enforced strictly: no check may verify after ExpiresAt,
// even if the published proof would otherwise match.
type CoachDomainChallenge struct {
	ID            uuid.UUID       // The unique ID for this challenge.
	UserID        uuid.UUID       // The coach starting the challenge.
	ProgramID     uuid.UUID       // The program the coach claims affiliation with.
	Domain        string          // The institutional domain being proven, e.g. "stanford.edu".
	Method        ChallengeMethod // DNS TXT record or HTTP well-known file.
	Nonce         string          // Random proof string for this challenge only.
	Status        VerificationStatus
	Attempts      int        // Number of proof checks performed.
	ExpiresAt     time.Time  // Hard end of the challenge window.
	VerifiedAt    *time.Time // When the challenge succeeded.
	LastCheckedAt *time.Time // When the most recent proof check ran.
	ErrorMessage  string     // Human-readable detail from the last failed check.
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Expired reports whether the challenge window has closed as of now.
func (c *CoachDomainChallenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
