package handler

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	"sliders/internal/delivery/http/response"
	"sliders/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ClaimHandler holds dependencies for one-click claim link handlers.
type ClaimHandler struct {
	uc     usecase.ClaimUsecase
	logger *slog.Logger
}

// NewClaimHandler is the constructor for ClaimHandler, injected by Fx.
func NewClaimHandler(uc usecase.ClaimUsecase, logger *slog.Logger) *ClaimHandler {
	return &ClaimHandler{
		uc:     uc,
		logger: logger,
	}
}

type mintClaimLinkResponse struct {
	Token    string `json:"token"`
	ClaimURL string `json:"claim_url"`
	QRCode   string `json:"qr_code,omitempty"` // base64-encoded PNG
}

// MintClaimLink handles the request to mint a claim link for an identity row.
func (h *ClaimHandler) MintClaimLink(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	identityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid identity ID")
	}

	output, err := h.uc.MintClaimLink(c.Request().Context(), usecase.MintClaimLinkInput{
		UserID:     userID,
		IdentityID: identityID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	resp := mintClaimLinkResponse{
		Token:    output.Token,
		ClaimURL: output.ClaimURL,
	}
	if len(output.QRCodePNG) > 0 {
		resp.QRCode = base64.StdEncoding.EncodeToString(output.QRCodePNG)
	}

	return response.Success(c, http.StatusCreated, resp, "Claim link minted")
}

type redeemClaimRequest struct {
	Token string `json:"token" query:"token"`
}

// RedeemClaim handles the public claim redemption endpoint. The token may
// arrive in the JSON body or as a query parameter from a scanned QR code.
func (h *ClaimHandler) RedeemClaim(c echo.Context) error {
	var req redeemClaimRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid claim input")
	}
	if req.Token == "" {
		req.Token = c.QueryParam("token")
	}
	if req.Token == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Claim token is required")
	}

	identity, err := h.uc.RedeemClaim(c.Request().Context(), req.Token)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, identity, "Claim redeemed")
}
