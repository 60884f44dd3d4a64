package impl

import (
	"context"
	"testing"
	"time"

	"sliders/config"
	domainerrors "sliders/internal/domain/errors"
	"sliders/internal/domain/service"
	infraauth "sliders/internal/infra/auth"
	"sliders/internal/infra/qrcode"
	"sliders/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type claimFixture struct {
	claimSvc     usecase.ClaimUsecase
	verifySvc    usecase.VerificationUsecase
	identityRepo *fakeIdentityRepo
	verifier     *fakeVerifier
	publisher    *fakePublisher
}

func newClaimFixture(t *testing.T) *claimFixture {
	t.Helper()

	identityRepo := newFakeIdentityRepo()
	challengeRepo := newFakeChallengeRepo()
	verifier := &fakeVerifier{}
	publisher := &fakePublisher{}
	txManager := &fakeTxManager{identityRepo: identityRepo, challengeRepo: challengeRepo}

	cfg := &config.Config{
		Verification: &config.VerificationConfig{
			ClaimTokenTTL: 15 * time.Minute,
			ClaimBaseURL:  "https://certifiedsliders.com",
		},
	}
	cfg.SecretKey.Claim = "test_claim_secret_key_very_long_for_testing"

	tokenSvc, err := infraauth.NewClaimTokenService(cfg)
	require.NoError(t, err)

	claimSvc := NewClaimService(ClaimServiceParams{
		IdentityRepo: identityRepo,
		TxManager:    txManager,
		TokenSvc:     tokenSvc,
		QRSvc:        qrcode.NewClaimQRService(256, "M"),
		Publisher:    publisher,
		Config:       cfg,
		Logger:       testLogger(t),
	})

	verifySvc := NewVerificationService(VerificationServiceParams{
		IdentityRepo:  identityRepo,
		ChallengeRepo: challengeRepo,
		TxManager:     txManager,
		Verifier:      verifier,
		Publisher:     publisher,
		Config:        cfg,
		Logger:        testLogger(t),
	})

	return &claimFixture{
		claimSvc:     claimSvc,
		verifySvc:    verifySvc,
		identityRepo: identityRepo,
		verifier:     verifier,
		publisher:    publisher,
	}
}

func (f *claimFixture) startClaim(t *testing.T, userID uuid.UUID) uuid.UUID {
	t.Helper()

	out, err := f.verifySvc.StartIdentityClaim(context.Background(), usecase.StartIdentityClaimInput{
		UserID:     userID,
		ProfileURL: "https://www.athletic.net/athlete/12345",
	})
	require.NoError(t, err)

	return out.Identity.ID
}

func TestClaimService_MintAndRedeem(t *testing.T) {
	f := newClaimFixture(t)
	userID := uuid.New()
	identityID := f.startClaim(t, userID)

	minted, err := f.claimSvc.MintClaimLink(context.Background(), usecase.MintClaimLinkInput{
		UserID:     userID,
		IdentityID: identityID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, minted.Token)
	assert.Contains(t, minted.ClaimURL, "https://certifiedsliders.com/claim?token=")
	assert.NotEmpty(t, minted.QRCodePNG)

	identity, err := f.claimSvc.RedeemClaim(context.Background(), minted.Token)
	require.NoError(t, err)
	assert.True(t, identity.Verified)
	assert.True(t, identity.IsPrimary)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, service.EventIdentityVerified, f.publisher.events[0].Kind)
}

func TestClaimService_RedeemIsIdempotent(t *testing.T) {
	f := newClaimFixture(t)
	userID := uuid.New()
	identityID := f.startClaim(t, userID)

	minted, err := f.claimSvc.MintClaimLink(context.Background(), usecase.MintClaimLinkInput{
		UserID:     userID,
		IdentityID: identityID,
	})
	require.NoError(t, err)

	first, err := f.claimSvc.RedeemClaim(context.Background(), minted.Token)
	require.NoError(t, err)

	// Clicking the link again succeeds without another state change.
	second, err := f.claimSvc.RedeemClaim(context.Background(), minted.Token)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.Verified)
	assert.Len(t, f.publisher.events, 1)
}

func TestClaimService_RedeemAfterRestartMismatches(t *testing.T) {
	f := newClaimFixture(t)
	userID := uuid.New()
	identityID := f.startClaim(t, userID)

	minted, err := f.claimSvc.MintClaimLink(context.Background(), usecase.MintClaimLinkInput{
		UserID:     userID,
		IdentityID: identityID,
	})
	require.NoError(t, err)

	// Restarting the claim reissues the nonce, invalidating older links.
	_, err = f.verifySvc.StartIdentityClaim(context.Background(), usecase.StartIdentityClaimInput{
		UserID:     userID,
		ProfileURL: "https://www.athletic.net/athlete/12345",
	})
	require.NoError(t, err)

	_, err = f.claimSvc.RedeemClaim(context.Background(), minted.Token)
	requireAppErrorCode(t, err, domainerrors.ErrClaimTokenMismatch)
}

func TestClaimService_RedeemGarbageToken(t *testing.T) {
	f := newClaimFixture(t)

	_, err := f.claimSvc.RedeemClaim(context.Background(), "not-a-token")
	requireAppErrorCode(t, err, domainerrors.ErrClaimTokenInvalid)
}

func TestClaimService_MintRequiresOwnership(t *testing.T) {
	f := newClaimFixture(t)
	owner := uuid.New()
	identityID := f.startClaim(t, owner)

	_, err := f.claimSvc.MintClaimLink(context.Background(), usecase.MintClaimLinkInput{
		UserID:     uuid.New(),
		IdentityID: identityID,
	})
	requireAppErrorCode(t, err, domainerrors.ErrForbidden)
}
