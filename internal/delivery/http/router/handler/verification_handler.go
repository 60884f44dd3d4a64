// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"sliders/internal/delivery/http/response"
	"sliders/internal/domain/entity"
	"sliders/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// VerificationHandler holds dependencies for identity claim and domain
// challenge handlers.
type VerificationHandler struct {
	uc     usecase.VerificationUsecase
	logger *slog.Logger
}

// NewVerificationHandler is the constructor for VerificationHandler, injected by Fx.
func NewVerificationHandler(uc usecase.VerificationUsecase, logger *slog.Logger) *VerificationHandler {
	return &VerificationHandler{
		uc:     uc,
		logger: logger,
	}
}

type startIdentityClaimRequest struct {
	ProfileURL string `json:"profile_url" validate:"required,url"`
}

// StartIdentityClaim handles the request to start claiming a third-party profile.
func (h *VerificationHandler) StartIdentityClaim(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req startIdentityClaimRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid identity claim input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.StartIdentityClaim(c.Request().Context(), usecase.StartIdentityClaimInput{
		UserID:     userID,
		ProfileURL: req.ProfileURL,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Identity claim started")
}

// CheckIdentityProof handles the request to run a proof check on a pending claim.
func (h *VerificationHandler) CheckIdentityProof(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	identityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid identity ID")
	}

	identity, err := h.uc.CheckIdentityProof(c.Request().Context(), userID, identityID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, identity, "Proof check completed")
}

// ListIdentities handles the request to list the current user's identities.
func (h *VerificationHandler) ListIdentities(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	identities, err := h.uc.ListIdentities(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, identities, "Identities retrieved")
}

type startDomainChallengeRequest struct {
	ProgramID uuid.UUID `json:"program_id" validate:"required"`
	Domain    string    `json:"domain" validate:"required,fqdn"`
	Method    string    `json:"method" validate:"required,oneof=dns http"`
}

// StartDomainChallenge handles the request to start a coach domain challenge.
func (h *VerificationHandler) StartDomainChallenge(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req startDomainChallengeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid domain challenge input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.StartDomainChallenge(c.Request().Context(), usecase.StartDomainChallengeInput{
		UserID:    userID,
		ProgramID: req.ProgramID,
		Domain:    req.Domain,
		Method:    entity.ChallengeMethod(req.Method),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Domain challenge started")
}

// CheckDomainChallenge handles the request to run a proof check on a challenge.
func (h *VerificationHandler) CheckDomainChallenge(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	challengeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid challenge ID")
	}

	challenge, err := h.uc.CheckDomainChallenge(c.Request().Context(), userID, challengeID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, challenge, "Proof check completed")
}

// currentUserID reads the user ID set by the auth middleware.
func currentUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get("userID").(uuid.UUID)

	return userID, ok
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
