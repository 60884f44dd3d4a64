package service

import (
	"context"
	"time"
)

// Verification event kinds published for downstream consumers. The coach
// scoring service recomputes verification tiers on these; this core only
// emits the trigger.
const (
	EventIdentityVerified = "identity.verified"
	EventDomainVerified   = "domain.verified"
	EventResultApproved   = "result.approved"
	EventResultRejected   = "result.rejected"
)

// VerificationEvent describes one verification state change.
type VerificationEvent struct {
	Kind       string    `json:"kind"`
	UserID     string    `json:"user_id"`
	Provider   string    `json:"provider,omitempty"` // Identity provider or proven domain.
	Subject    string    `json:"subject"`            // External ID, domain or result ID the event is about.
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher publishes verification state-change events to the
// configured transport.
type EventPublisher interface {
	// PublishVerificationEvent emits one event. Publish failures are logged
	// and never roll back the verification state change that produced them.
	PublishVerificationEvent(ctx context.Context, event *VerificationEvent) error

	// Close releases the underlying transport.
	Close() error
}
