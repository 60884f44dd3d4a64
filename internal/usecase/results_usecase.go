package usecase

import (
	"context"
	"time"

	"sliders/internal/domain/entity"

	"github.com/google/uuid"
)

// SubmitResultInput defines the data required to submit a performance.
// MarkText is the raw mark as the athlete typed it; parsing and hand-to-FAT
// adjustment happen in the use case.
type SubmitResultInput struct {
	AthleteID uuid.UUID
	EventCode string              `validate:"required"`
	MarkText  string              `validate:"required"`
	Timing    entity.TimingMethod `validate:"omitempty,oneof=fat hand"`
	Wind      *float64
	Season    entity.Season `validate:"required,oneof=indoor outdoor"`
	MeetName  string
	MeetDate  time.Time
	ProofURL  string
	Source    entity.ResultSource
}

// IngestProofURLInput defines the data required to ingest a proof URL.
type IngestProofURLInput struct {
	AthleteID uuid.UUID
	ProofURL  string `validate:"required,url"`
}

// IngestProofURLOutput returns the outcome of an ingestion attempt.
// Draft is nil when the URL must fall back to manual entry; otherwise it
// carries the pre-filled submission fields parsed from the proof page.
type IngestProofURLOutput struct {
	Source entity.ResultSource
	Draft  *SubmitResultInput
}

// ResultsUsecase defines result submission, display and review operations.
type ResultsUsecase interface {
	// SubmitResult parses the mark, derives the FAT-equivalent time and
	// persists a pending result row.
	SubmitResult(ctx context.Context, input SubmitResultInput) (*entity.Result, error)

	// IngestProofURL classifies the URL and routes it through the parser
	// endpoint chain. Unknown hosts and failed parses are not errors: the
	// caller falls back to manual entry.
	IngestProofURL(ctx context.Context, input IngestProofURLInput) (*IngestProofURLOutput, error)

	// ListAthleteResults returns the athlete's results with near-duplicate
	// rows collapsed for display.
	ListAthleteResults(ctx context.Context, athleteID uuid.UUID) ([]*entity.Result, error)

	// ApproveResult marks a pending result verified and publishes a
	// result.approved event.
	ApproveResult(ctx context.Context, resultID uuid.UUID) (*entity.Result, error)

	// RejectResult marks a pending result rejected with a reviewer note.
	RejectResult(ctx context.Context, resultID uuid.UUID, reason string) (*entity.Result, error)
}
