package impl

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"sliders/config"
	"sliders/internal/domain/entity"
	domainerrors "sliders/internal/domain/errors"
	"sliders/internal/domain/repository"
	"sliders/internal/domain/service"
	"sliders/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultClaimTokenTTL = 15 * time.Minute

type claimService struct {
	identityRepo repository.IdentityRepository
	txManager    repository.TransactionManager
	tokenSvc     service.ClaimTokenService
	qrSvc        service.ClaimQRService
	publisher    service.EventPublisher
	config       *config.Config
	logger       *slog.Logger
}

// ClaimServiceParams holds dependencies for ClaimService, injected by Fx.
type ClaimServiceParams struct {
	fx.In

	IdentityRepo repository.IdentityRepository
	TxManager    repository.TransactionManager
	TokenSvc     service.ClaimTokenService
	QRSvc        service.ClaimQRService
	Publisher    service.EventPublisher
	Config       *config.Config
	Logger       *slog.Logger
}

// NewClaimService creates a new claim service instance
func NewClaimService(params ClaimServiceParams) usecase.ClaimUsecase {
	return &claimService{
		identityRepo: params.IdentityRepo,
		txManager:    params.TxManager,
		tokenSvc:     params.TokenSvc,
		qrSvc:        params.QRSvc,
		publisher:    params.Publisher,
		config:       params.Config,
		logger:       params.Logger,
	}
}

// MintClaimLink signs the identity row's current state into a time-bound
// claim token and renders the claim URL.
func (s *claimService) MintClaimLink(ctx context.Context, input usecase.MintClaimLinkInput) (*usecase.MintClaimLinkOutput, error) {
	identity, err := s.identityRepo.FindByID(ctx, input.IdentityID)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			return nil, domainerrors.ErrIdentityNotFound.WrapMessage("identity row not found")
		}

		return nil, errors.Wrap(err, "failed to find identity")
	}
	if identity.UserID != input.UserID {
		return nil, domainerrors.ErrForbidden.WrapMessage("identity belongs to another account")
	}

	ttl := defaultClaimTokenTTL
	baseURL := ""
	if s.config != nil && s.config.Verification != nil {
		if s.config.Verification.ClaimTokenTTL > 0 {
			ttl = s.config.Verification.ClaimTokenTTL
		}
		baseURL = s.config.Verification.ClaimBaseURL
	}

	token, err := s.tokenSvc.Mint(&service.ClaimTokenPayload{
		RowID:             identity.ID,
		UserID:            identity.UserID,
		Provider:          identity.Provider,
		ExternalID:        identity.ExternalID,
		ExternalNumericID: identity.ExternalNumericID,
		Nonce:             identity.Nonce,
	}, ttl)
	if err != nil {
		return nil, errors.Wrap(err, "failed to mint claim token")
	}

	claimURL := baseURL + "/claim?token=" + url.QueryEscape(token)

	output := &usecase.MintClaimLinkOutput{
		Token:    token,
		ClaimURL: claimURL,
	}

	if s.qrSvc != nil {
		qrPNG, err := s.qrSvc.GenerateClaimQR(claimURL)
		if err != nil {
			// A broken QR renderer should not block the link itself.
			s.logger.Warn("failed to render claim QR code",
				slog.String("identity_id", identity.ID.String()),
				slog.String("error", err.Error()),
			)
		} else {
			output.QRCodePNG = qrPNG
		}
	}

	return output, nil
}

// RedeemClaim verifies the token, re-checks every embedded field against
// the live identity row and marks the claim verified.
func (s *claimService) RedeemClaim(ctx context.Context, token string) (*entity.ExternalIdentity, error) {
	payload, err := s.tokenSvc.Verify(token)
	if err != nil {
		return nil, err
	}

	identity, err := s.identityRepo.FindByID(ctx, payload.RowID)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			return nil, domainerrors.ErrClaimTokenInvalid.WrapMessage("claim link refers to a deleted verification")
		}

		return nil, errors.Wrap(err, "failed to find identity")
	}

	// The token is a capability hint only: the live row is authoritative.
	// Any drift since minting (re-started claim, changed owner, reissued
	// nonce) invalidates the link.
	if identity.UserID != payload.UserID ||
		identity.Provider != payload.Provider ||
		identity.ExternalID != payload.ExternalID ||
		identity.Nonce != payload.Nonce {
		return nil, domainerrors.ErrClaimTokenMismatch.WrapMessage("verification changed since this link was issued")
	}

	// Redeeming an already-verified row is a success, not a conflict.
	if identity.Verified {
		return identity, nil
	}

	now := time.Now()
	if err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		identityRepo := repoFactory.IdentityRepo()

		verifiedCount, err := identityRepo.CountVerified(ctx, identity.UserID, identity.Provider)
		if err != nil {
			return err
		}

		identity.Status = entity.VerificationVerified
		identity.Verified = true
		identity.VerifiedAt = &now
		identity.LastCheckedAt = &now
		identity.ErrorMessage = ""
		identity.IsPrimary = verifiedCount == 0

		return identityRepo.Update(ctx, identity)
	}); err != nil {
		return nil, err
	}

	if err := s.publisher.PublishVerificationEvent(ctx, &service.VerificationEvent{
		Kind:       service.EventIdentityVerified,
		UserID:     identity.UserID.String(),
		Provider:   string(identity.Provider),
		Subject:    identity.ExternalID,
		OccurredAt: now,
	}); err != nil {
		s.logger.Error("failed to publish verification event",
			slog.String("subject", identity.ExternalID),
			slog.String("error", err.Error()),
		)
	}

	return identity, nil
}
