package handler

import (
	"log/slog"
	"net/http"
	"time"

	"sliders/internal/delivery/http/response"
	"sliders/internal/domain/entity"
	"sliders/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ResultsHandler holds dependencies for result submission and review handlers.
type ResultsHandler struct {
	uc     usecase.ResultsUsecase
	logger *slog.Logger
}

// NewResultsHandler is the constructor for ResultsHandler, injected by Fx.
func NewResultsHandler(uc usecase.ResultsUsecase, logger *slog.Logger) *ResultsHandler {
	return &ResultsHandler{
		uc:     uc,
		logger: logger,
	}
}

type submitResultRequest struct {
	EventCode string   `json:"event_code" validate:"required"`
	MarkText  string   `json:"mark_text" validate:"required"`
	Timing    string   `json:"timing" validate:"omitempty,oneof=fat hand"`
	Wind      *float64 `json:"wind"`
	Season    string   `json:"season" validate:"required,oneof=indoor outdoor"`
	MeetName  string   `json:"meet_name"`
	MeetDate  string   `json:"meet_date" validate:"omitempty,datetime=2006-01-02"`
	ProofURL  string   `json:"proof_url" validate:"omitempty,url"`
}

// SubmitResult handles the request to submit a performance for the current user.
func (h *ResultsHandler) SubmitResult(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req submitResultRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid result input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	input := usecase.SubmitResultInput{
		AthleteID: userID,
		EventCode: req.EventCode,
		MarkText:  req.MarkText,
		Timing:    entity.TimingMethod(req.Timing),
		Wind:      req.Wind,
		Season:    entity.Season(req.Season),
		MeetName:  req.MeetName,
		ProofURL:  req.ProofURL,
	}
	if req.MeetDate != "" {
		meetDate, err := time.Parse("2006-01-02", req.MeetDate)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid meet date")
		}
		input.MeetDate = meetDate
	}

	result, err := h.uc.SubmitResult(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, result, "Result submitted")
}

type ingestProofURLRequest struct {
	ProofURL string `json:"proof_url" validate:"required,url"`
}

// IngestProofURL handles the request to parse a proof URL into a draft submission.
func (h *ResultsHandler) IngestProofURL(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req ingestProofURLRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid proof URL input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.IngestProofURL(c.Request().Context(), usecase.IngestProofURLInput{
		AthleteID: userID,
		ProofURL:  req.ProofURL,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Proof URL processed")
}

type athleteResultRow struct {
	*entity.Result
	WindLegal bool `json:"wind_legal"`
}

// ListAthleteResults handles the public request for an athlete's deduplicated results.
func (h *ResultsHandler) ListAthleteResults(c echo.Context) error {
	athleteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid athlete ID")
	}

	results, err := h.uc.ListAthleteResults(c.Request().Context(), athleteID)
	if err != nil {
		return errors.WithStack(err)
	}

	rows := make([]athleteResultRow, 0, len(results))
	for _, result := range results {
		rows = append(rows, athleteResultRow{Result: result, WindLegal: result.WindLegal()})
	}

	return response.Success(c, http.StatusOK, rows, "Results retrieved")
}

// ApproveResult handles the reviewer request to verify a pending result.
func (h *ResultsHandler) ApproveResult(c echo.Context) error {
	resultID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid result ID")
	}

	result, err := h.uc.ApproveResult(c.Request().Context(), resultID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, result, "Result approved")
}

type rejectResultRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// RejectResult handles the reviewer request to reject a pending result.
func (h *ResultsHandler) RejectResult(c echo.Context) error {
	resultID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid result ID")
	}

	var req rejectResultRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid rejection input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	result, err := h.uc.RejectResult(c.Request().Context(), resultID, req.Reason)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, result, "Result rejected")
}
