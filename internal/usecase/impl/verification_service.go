package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"sliders/config"
	"sliders/internal/domain/entity"
	domainerrors "sliders/internal/domain/errors"
	"sliders/internal/domain/repository"
	"sliders/internal/domain/service"
	"sliders/internal/usecase"
	"sliders/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultChallengeTTL = 7 * 24 * time.Hour

type verificationService struct {
	identityRepo  repository.IdentityRepository
	challengeRepo repository.ChallengeRepository
	txManager     repository.TransactionManager
	verifier      service.ChallengeVerifier
	publisher     service.EventPublisher
	config        *config.Config
	logger        *slog.Logger
}

// VerificationServiceParams holds dependencies for VerificationService, injected by Fx.
type VerificationServiceParams struct {
	fx.In

	IdentityRepo  repository.IdentityRepository
	ChallengeRepo repository.ChallengeRepository
	TxManager     repository.TransactionManager
	Verifier      service.ChallengeVerifier
	Publisher     service.EventPublisher
	Config        *config.Config
	Logger        *slog.Logger
}

// NewVerificationService creates a new verification service instance
func NewVerificationService(params VerificationServiceParams) usecase.VerificationUsecase {
	return &verificationService{
		identityRepo:  params.IdentityRepo,
		challengeRepo: params.ChallengeRepo,
		txManager:     params.TxManager,
		verifier:      params.Verifier,
		publisher:     params.Publisher,
		config:        params.Config,
		logger:        params.Logger,
	}
}

// StartIdentityClaim canonicalizes the profile URL and creates or restarts
// the claim row with a fresh nonce.
func (s *verificationService) StartIdentityClaim(ctx context.Context, input usecase.StartIdentityClaimInput) (*usecase.StartIdentityClaimOutput, error) {
	profile, err := canonicalizeProfileURL(input.ProfileURL)
	if err != nil {
		return nil, err
	}

	nonce, err := util.GenerateNonce()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate nonce")
	}

	existing, err := s.identityRepo.FindByProviderExternalID(ctx, profile.Provider, profile.ExternalID)
	if err != nil && !errors.Is(err, repository.ErrIdentityNotFound) {
		return nil, errors.Wrap(err, "failed to look up existing claim")
	}

	var identity *entity.ExternalIdentity
	switch {
	case existing == nil:
		identity = &entity.ExternalIdentity{
			UserID:            input.UserID,
			Provider:          profile.Provider,
			ExternalID:        profile.ExternalID,
			ExternalNumericID: profile.NumericID,
			ProfileURL:        profile.URL,
			Nonce:             nonce,
			Status:            entity.VerificationPending,
		}
		// The unique index on (provider, external_id) resolves concurrent
		// claim starts: the loser gets ErrIdentityAlreadyClaimed here.
		if err := s.identityRepo.Create(ctx, identity); err != nil {
			return nil, err
		}

	case existing.UserID != input.UserID:
		// A claim row held by anyone else blocks the profile, verified or
		// not. Pending claims would otherwise be stealable by racing the
		// original claimant's proof placement.
		return nil, domainerrors.ErrIdentityAlreadyClaimed.WrapMessage("profile claimed by another account")

	default:
		// Same user restarting: reissue the nonce in place. A verified row
		// is reset too, which also invalidates any claim link minted
		// against the old nonce.
		existing.Nonce = nonce
		existing.Status = entity.VerificationPending
		existing.Verified = false
		existing.VerifiedAt = nil
		existing.ErrorMessage = ""
		// Dropping verified must drop primary with it, or a later
		// first-verified promotion of a sibling row could leave two
		// primaries for the provider.
		existing.IsPrimary = false
		err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
			return repoFactory.IdentityRepo().Update(ctx, existing)
		})
		if err != nil {
			return nil, err
		}
		identity = existing
	}

	return &usecase.StartIdentityClaimOutput{
		Identity: identity,
		Instructions: fmt.Sprintf(
			"Add the code %s anywhere on your %s profile (for example in the bio), then run the check.",
			identity.Nonce, identity.Provider,
		),
	}, nil
}

// CheckIdentityProof fetches the claimed profile page and advances the
// verification state machine based on whether the nonce is present.
func (s *verificationService) CheckIdentityProof(ctx context.Context, userID, identityID uuid.UUID) (*entity.ExternalIdentity, error) {
	identity, err := s.identityRepo.FindByID(ctx, identityID)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			return nil, domainerrors.ErrIdentityNotFound.WrapMessage("identity row not found")
		}

		return nil, errors.Wrap(err, "failed to find identity")
	}
	if identity.UserID != userID {
		return nil, domainerrors.ErrForbidden.WrapMessage("identity belongs to another account")
	}

	// Re-checking a verified claim is a no-op.
	if identity.Verified {
		return identity, nil
	}

	now := time.Now()
	check, err := s.verifier.CheckProfileNonce(ctx, identity.ProfileURL, identity.Nonce)
	if err != nil {
		// Transient fetch failure: count the attempt but leave the status
		// alone so the user can simply retry.
		identity.Attempts++
		identity.LastCheckedAt = &now
		identity.ErrorMessage = err.Error()
		if updateErr := s.identityRepo.Update(ctx, identity); updateErr != nil {
			s.logger.Error("failed to record transient check failure",
				slog.String("identity_id", identity.ID.String()),
				slog.String("error", updateErr.Error()),
			)
		}

		return nil, domainerrors.ErrProofFetchFailed.WrapMessage(err.Error())
	}

	if !check.Found {
		identity.Status = entity.VerificationFailed
		identity.Attempts++
		identity.LastCheckedAt = &now
		identity.ErrorMessage = check.Detail
		if err := s.identityRepo.Update(ctx, identity); err != nil {
			return nil, err
		}

		return identity, nil
	}

	if err := s.markIdentityVerified(ctx, identity, now); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, &service.VerificationEvent{
		Kind:       service.EventIdentityVerified,
		UserID:     identity.UserID.String(),
		Provider:   string(identity.Provider),
		Subject:    identity.ExternalID,
		OccurredAt: now,
	})

	return identity, nil
}

// markIdentityVerified flips the row to verified and promotes it to primary
// when it is the user's first verified identity for the provider. Both
// writes happen in one transaction.
func (s *verificationService) markIdentityVerified(ctx context.Context, identity *entity.ExternalIdentity, now time.Time) error {
	return s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		identityRepo := repoFactory.IdentityRepo()

		verifiedCount, err := identityRepo.CountVerified(ctx, identity.UserID, identity.Provider)
		if err != nil {
			return err
		}

		identity.Status = entity.VerificationVerified
		identity.Verified = true
		identity.VerifiedAt = &now
		identity.Attempts++
		identity.LastCheckedAt = &now
		identity.ErrorMessage = ""
		identity.IsPrimary = verifiedCount == 0

		return identityRepo.Update(ctx, identity)
	})
}

// ListIdentities returns all identity rows belonging to the user.
func (s *verificationService) ListIdentities(ctx context.Context, userID uuid.UUID) ([]*entity.ExternalIdentity, error) {
	identities, err := s.identityRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list identities")
	}

	return identities, nil
}

// StartDomainChallenge creates or restarts a domain challenge for the coach.
func (s *verificationService) StartDomainChallenge(ctx context.Context, input usecase.StartDomainChallengeInput) (*usecase.StartDomainChallengeOutput, error) {
	domain := strings.ToLower(strings.TrimSpace(input.Domain))
	if domain == "" || strings.ContainsAny(domain, "/ ") {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("domain must be a bare hostname")
	}

	nonce, err := util.GenerateNonce()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate nonce")
	}

	ttl := defaultChallengeTTL
	if s.config != nil && s.config.Verification != nil && s.config.Verification.ChallengeTTL > 0 {
		ttl = s.config.Verification.ChallengeTTL
	}
	now := time.Now()

	challenge, err := s.challengeRepo.FindActiveByUserAndDomain(ctx, input.UserID, domain)
	if err != nil && !errors.Is(err, repository.ErrChallengeNotFound) {
		return nil, errors.Wrap(err, "failed to look up active challenge")
	}

	if challenge != nil && !challenge.Expired(now) {
		// Restart in place: new nonce, new window, method may change.
		challenge.Method = input.Method
		challenge.Nonce = nonce
		challenge.Status = entity.VerificationPending
		challenge.ExpiresAt = now.Add(ttl)
		challenge.ErrorMessage = ""
		if err := s.challengeRepo.Update(ctx, challenge); err != nil {
			return nil, err
		}
	} else {
		challenge = &entity.CoachDomainChallenge{
			UserID:    input.UserID,
			ProgramID: input.ProgramID,
			Domain:    domain,
			Method:    input.Method,
			Nonce:     nonce,
			Status:    entity.VerificationPending,
			ExpiresAt: now.Add(ttl),
		}
		if err := s.challengeRepo.Create(ctx, challenge); err != nil {
			return nil, err
		}
	}

	proofValue := challenge.Nonce
	if challenge.Method == entity.ChallengeDNS {
		proofValue = service.ProofPrefix + challenge.Nonce
	}

	return &usecase.StartDomainChallengeOutput{
		Challenge:  challenge,
		ProofValue: proofValue,
	}, nil
}

// CheckDomainChallenge runs the configured proof check for the challenge.
// The expiry window is strict: an expired challenge fails even when the
// published proof would match.
func (s *verificationService) CheckDomainChallenge(ctx context.Context, userID, challengeID uuid.UUID) (*entity.CoachDomainChallenge, error) {
	challenge, err := s.challengeRepo.FindByID(ctx, challengeID)
	if err != nil {
		if errors.Is(err, repository.ErrChallengeNotFound) {
			return nil, domainerrors.ErrChallengeNotFound.WrapMessage("challenge not found")
		}

		return nil, errors.Wrap(err, "failed to find challenge")
	}
	if challenge.UserID != userID {
		return nil, domainerrors.ErrForbidden.WrapMessage("challenge belongs to another account")
	}

	if challenge.Status == entity.VerificationVerified {
		return challenge, nil
	}

	now := time.Now()
	if challenge.Expired(now) {
		if challenge.Status != entity.VerificationExpired {
			challenge.Status = entity.VerificationExpired
			if err := s.challengeRepo.Update(ctx, challenge); err != nil {
				return nil, err
			}
		}

		return nil, domainerrors.ErrChallengeExpired.WrapMessage("challenge window has closed")
	}

	var check service.ProofCheck
	switch challenge.Method {
	case entity.ChallengeDNS:
		check, err = s.verifier.CheckDNSTXT(ctx, challenge.Domain, challenge.Nonce)
	case entity.ChallengeHTTP:
		check, err = s.verifier.CheckWellKnown(ctx, challenge.Domain, challenge.Nonce)
	default:
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown challenge method")
	}

	if err != nil {
		challenge.Attempts++
		challenge.LastCheckedAt = &now
		challenge.ErrorMessage = err.Error()
		if updateErr := s.challengeRepo.Update(ctx, challenge); updateErr != nil {
			s.logger.Error("failed to record transient check failure",
				slog.String("challenge_id", challenge.ID.String()),
				slog.String("error", updateErr.Error()),
			)
		}

		return nil, domainerrors.ErrProofFetchFailed.WrapMessage(err.Error())
	}

	challenge.Attempts++
	challenge.LastCheckedAt = &now

	if !check.Found {
		challenge.Status = entity.VerificationFailed
		challenge.ErrorMessage = check.Detail
		if err := s.challengeRepo.Update(ctx, challenge); err != nil {
			return nil, err
		}

		return challenge, nil
	}

	challenge.Status = entity.VerificationVerified
	challenge.VerifiedAt = &now
	challenge.ErrorMessage = ""
	if err := s.challengeRepo.Update(ctx, challenge); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, &service.VerificationEvent{
		Kind:       service.EventDomainVerified,
		UserID:     challenge.UserID.String(),
		Provider:   challenge.Domain,
		Subject:    challenge.ProgramID.String(),
		OccurredAt: now,
	})

	return challenge, nil
}

// publishEvent emits a verification event. Publish failures never roll back
// the state change that produced them.
func (s *verificationService) publishEvent(ctx context.Context, event *service.VerificationEvent) {
	if err := s.publisher.PublishVerificationEvent(ctx, event); err != nil {
		s.logger.Error("failed to publish verification event",
			slog.String("kind", event.Kind),
			slog.String("subject", event.Subject),
			slog.String("error", err.Error()),
		)
	}
}
