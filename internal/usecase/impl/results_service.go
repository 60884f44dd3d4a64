package impl

import (
	"context"
	"log/slog"
	"time"

	"sliders/internal/domain/entity"
	domainerrors "sliders/internal/domain/errors"
	"sliders/internal/domain/repository"
	"sliders/internal/domain/service"
	"sliders/internal/ingest"
	"sliders/internal/marks"
	"sliders/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type resultsService struct {
	resultRepo repository.ResultRepository
	router     *ingest.Router
	adjuster   service.RemoteTimeAdjuster
	publisher  service.EventPublisher
	logger     *slog.Logger
}

// ResultsServiceParams holds dependencies for ResultsService, injected by Fx.
type ResultsServiceParams struct {
	fx.In

	ResultRepo repository.ResultRepository
	Router     *ingest.Router
	Adjuster   service.RemoteTimeAdjuster
	Publisher  service.EventPublisher
	Logger     *slog.Logger
}

// NewResultsService creates a new results service instance
func NewResultsService(params ResultsServiceParams) usecase.ResultsUsecase {
	return &resultsService{
		resultRepo: params.ResultRepo,
		router:     params.Router,
		adjuster:   params.Adjuster,
		publisher:  params.Publisher,
		logger:     params.Logger,
	}
}

// SubmitResult parses the mark, derives the FAT-equivalent time and
// persists a pending result row.
func (s *resultsService) SubmitResult(ctx context.Context, input usecase.SubmitResultInput) (*entity.Result, error) {
	mark, ok := marks.Parse(input.MarkText, input.EventCode)
	if !ok {
		return nil, domainerrors.ErrMarkUnparseable.WrapMessage("mark " + input.MarkText + " for event " + input.EventCode)
	}
	if mark.Warning != "" {
		s.logger.Warn("suspicious mark accepted",
			slog.String("mark", input.MarkText),
			slog.String("event", input.EventCode),
			slog.String("warning", mark.Warning),
		)
	}

	source := input.Source
	if source == "" {
		source = ingest.ClassifySource(input.ProofURL)
	}

	result := &entity.Result{
		AthleteID:   input.AthleteID,
		EventCode:   input.EventCode,
		MarkText:    input.MarkText,
		MarkSeconds: mark.Seconds,
		MarkMetric:  mark.Metric,
		Timing:      input.Timing,
		Wind:        input.Wind,
		Season:      input.Season,
		MeetName:    input.MeetName,
		MeetDate:    input.MeetDate,
		Status:      entity.ResultPending,
		ProofURL:    input.ProofURL,
		Source:      source,
	}

	if mark.Seconds != nil {
		adjusted := s.adjustTime(ctx, input.EventCode, *mark.Seconds, input.Timing)
		result.MarkSecondsAdj = &adjusted
	}

	if err := s.resultRepo.Create(ctx, result); err != nil {
		return nil, err
	}

	return result, nil
}

// adjustTime asks the authoritative conversion endpoint for the
// FAT-equivalent time and falls back to the local table when the endpoint
// is unavailable. The two conversions agree by contract, so the fallback
// never changes the outcome, only the availability. Adjustment only ever
// adds time, so a remote answer below the raw time is a broken endpoint,
// not an answer; it falls back like an outage.
func (s *resultsService) adjustTime(ctx context.Context, eventCode string, seconds float64, timing entity.TimingMethod) float64 {
	if s.adjuster != nil {
		adjusted, err := s.adjuster.AdjustTime(ctx, eventCode, seconds, timing)
		switch {
		case err != nil:
			s.logger.Debug("remote time adjust unavailable, using local table",
				slog.String("event", eventCode),
				slog.String("error", err.Error()),
			)
		case adjusted < seconds:
			s.logger.Warn("remote time adjust below raw time, using local table",
				slog.String("event", eventCode),
				slog.Float64("raw", seconds),
				slog.Float64("remote", adjusted),
			)
		default:
			return adjusted
		}
	}

	return marks.AdjustHandTime(eventCode, seconds, timing)
}

// IngestProofURL classifies the URL and routes it through the parser
// endpoint chain.
func (s *resultsService) IngestProofURL(ctx context.Context, input usecase.IngestProofURLInput) (*usecase.IngestProofURLOutput, error) {
	outcome := s.router.Ingest(ctx, input.ProofURL)

	output := &usecase.IngestProofURLOutput{Source: outcome.Source}
	if outcome.Parsed == nil {
		// Unknown host or unparseable page: manual entry, not an error.
		return output, nil
	}

	draft := &usecase.SubmitResultInput{
		AthleteID: input.AthleteID,
		EventCode: outcome.Parsed.Event,
		MarkText:  outcome.Parsed.MarkText,
		Timing:    outcome.Parsed.Timing,
		Wind:      outcome.Parsed.Wind,
		MeetName:  outcome.Parsed.MeetName,
		ProofURL:  input.ProofURL,
		Source:    outcome.Source,
	}
	if outcome.Parsed.MeetDate != "" {
		if meetDate, err := time.Parse("2006-01-02", outcome.Parsed.MeetDate); err == nil {
			draft.MeetDate = meetDate
		}
	}
	if draft.MarkText == "" && outcome.Parsed.MarkSeconds != nil {
		draft.MarkText = marks.FormatSeconds(*outcome.Parsed.MarkSeconds)
	}
	output.Draft = draft

	return output, nil
}

// ListAthleteResults returns the athlete's results with near-duplicate rows
// collapsed for display.
func (s *resultsService) ListAthleteResults(ctx context.Context, athleteID uuid.UUID) ([]*entity.Result, error) {
	rows, err := s.resultRepo.ListByAthlete(ctx, athleteID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list athlete results")
	}

	return marks.Dedupe(rows), nil
}

// ApproveResult marks a pending result verified.
func (s *resultsService) ApproveResult(ctx context.Context, resultID uuid.UUID) (*entity.Result, error) {
	result, err := s.findResult(ctx, resultID)
	if err != nil {
		return nil, err
	}

	if result.Status == entity.ResultVerified {
		return result, nil
	}
	if result.Status == entity.ResultRejected {
		return nil, domainerrors.ErrResultImmutable.WrapMessage("rejected results cannot be approved")
	}

	result.Status = entity.ResultVerified
	if err := s.resultRepo.Update(ctx, result); err != nil {
		return nil, err
	}

	s.publishResultEvent(ctx, service.EventResultApproved, result)

	return result, nil
}

// RejectResult marks a pending result rejected with a reviewer note.
func (s *resultsService) RejectResult(ctx context.Context, resultID uuid.UUID, reason string) (*entity.Result, error) {
	result, err := s.findResult(ctx, resultID)
	if err != nil {
		return nil, err
	}

	if result.Status == entity.ResultRejected {
		return result, nil
	}
	if result.Status == entity.ResultVerified {
		return nil, domainerrors.ErrResultImmutable.WrapMessage("verified results cannot be rejected")
	}

	result.Status = entity.ResultRejected
	if err := s.resultRepo.Update(ctx, result); err != nil {
		return nil, err
	}

	s.logger.Info("result rejected",
		slog.String("result_id", result.ID.String()),
		slog.String("reason", reason),
	)
	s.publishResultEvent(ctx, service.EventResultRejected, result)

	return result, nil
}

func (s *resultsService) findResult(ctx context.Context, resultID uuid.UUID) (*entity.Result, error) {
	result, err := s.resultRepo.FindByID(ctx, resultID)
	if err != nil {
		if errors.Is(err, repository.ErrResultNotFound) {
			return nil, domainerrors.ErrResultNotFound.WrapMessage("result not found")
		}

		return nil, errors.Wrap(err, "failed to find result")
	}

	return result, nil
}

func (s *resultsService) publishResultEvent(ctx context.Context, kind string, result *entity.Result) {
	if err := s.publisher.PublishVerificationEvent(ctx, &service.VerificationEvent{
		Kind:       kind,
		UserID:     result.AthleteID.String(),
		Subject:    result.ID.String(),
		OccurredAt: time.Now(),
	}); err != nil {
		s.logger.Error("failed to publish result event",
			slog.String("kind", kind),
			slog.String("result_id", result.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}
