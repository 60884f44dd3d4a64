package usecase

import (
	"context"

	"sliders/internal/domain/entity"

	"github.com/google/uuid"
)

// MintClaimLinkInput defines the data required to mint a one-click claim
// link for an existing identity row.
type MintClaimLinkInput struct {
	UserID     uuid.UUID
	IdentityID uuid.UUID
}

// MintClaimLinkOutput returns the claim link in the three forms it is
// delivered: raw token, full URL and QR code image.
type MintClaimLinkOutput struct {
	Token    string
	ClaimURL string

	// QRCodePNG renders ClaimURL for printed flyers. Nil when QR generation
	// is not configured.
	QRCodePNG []byte
}

// ClaimUsecase defines the one-click claim link workflow.
type ClaimUsecase interface {
	// MintClaimLink signs the identity row's current state into a
	// time-bound claim token and renders the claim URL.
	MintClaimLink(ctx context.Context, input MintClaimLinkInput) (*MintClaimLinkOutput, error)

	// RedeemClaim verifies the token, re-checks every embedded field
	// against the live identity row and marks the claim verified. Redeeming
	// an already-verified row for the same user succeeds without changes.
	RedeemClaim(ctx context.Context, token string) (*entity.ExternalIdentity, error)
}
