package impl

import (
	"context"
	"log/slog"
	"testing"

	"sliders/internal/domain/entity"
	domainerrors "sliders/internal/domain/errors"
	"sliders/internal/domain/repository"
	"sliders/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// In-memory fakes for the repository and service contracts. The fakes keep
// the same error semantics as the real postgres implementations, including
// the unique-constraint behavior on identity creation.

type fakeIdentityRepo struct {
	rows map[uuid.UUID]*entity.ExternalIdentity
}

func newFakeIdentityRepo() *fakeIdentityRepo {
	return &fakeIdentityRepo{rows: make(map[uuid.UUID]*entity.ExternalIdentity)}
}

func (f *fakeIdentityRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.ExternalIdentity, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrIdentityNotFound
	}
	cloned := *row

	return &cloned, nil
}

func (f *fakeIdentityRepo) FindByProviderExternalID(_ context.Context, provider entity.IdentityProvider, externalID string) (*entity.ExternalIdentity, error) {
	for _, row := range f.rows {
		if row.Provider == provider && row.ExternalID == externalID {
			cloned := *row

			return &cloned, nil
		}
	}

	return nil, repository.ErrIdentityNotFound
}

func (f *fakeIdentityRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*entity.ExternalIdentity, error) {
	var out []*entity.ExternalIdentity
	for _, row := range f.rows {
		if row.UserID == userID {
			cloned := *row
			out = append(out, &cloned)
		}
	}

	return out, nil
}

func (f *fakeIdentityRepo) Create(_ context.Context, identity *entity.ExternalIdentity) error {
	for _, row := range f.rows {
		if row.Provider == identity.Provider && row.ExternalID == identity.ExternalID {
			return domainerrors.ErrIdentityAlreadyClaimed.WrapMessage("profile already claimed")
		}
	}
	if identity.ID == uuid.Nil {
		identity.ID = uuid.New()
	}
	cloned := *identity
	f.rows[identity.ID] = &cloned

	return nil
}

func (f *fakeIdentityRepo) Update(_ context.Context, identity *entity.ExternalIdentity) error {
	if _, ok := f.rows[identity.ID]; !ok {
		return repository.ErrIdentityNotFound
	}
	cloned := *identity
	f.rows[identity.ID] = &cloned

	return nil
}

func (f *fakeIdentityRepo) CountVerified(_ context.Context, userID uuid.UUID, provider entity.IdentityProvider) (int, error) {
	count := 0
	for _, row := range f.rows {
		if row.UserID == userID && row.Provider == provider && row.Verified {
			count++
		}
	}

	return count, nil
}

type fakeChallengeRepo struct {
	rows map[uuid.UUID]*entity.CoachDomainChallenge
}

func newFakeChallengeRepo() *fakeChallengeRepo {
	return &fakeChallengeRepo{rows: make(map[uuid.UUID]*entity.CoachDomainChallenge)}
}

func (f *fakeChallengeRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.CoachDomainChallenge, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrChallengeNotFound
	}
	cloned := *row

	return &cloned, nil
}

func (f *fakeChallengeRepo) FindActiveByUserAndDomain(_ context.Context, userID uuid.UUID, domain string) (*entity.CoachDomainChallenge, error) {
	for _, row := range f.rows {
		if row.UserID == userID && row.Domain == domain &&
			(row.Status == entity.VerificationPending || row.Status == entity.VerificationFailed) {
			cloned := *row

			return &cloned, nil
		}
	}

	return nil, repository.ErrChallengeNotFound
}

func (f *fakeChallengeRepo) Create(_ context.Context, challenge *entity.CoachDomainChallenge) error {
	if challenge.ID == uuid.Nil {
		challenge.ID = uuid.New()
	}
	cloned := *challenge
	f.rows[challenge.ID] = &cloned

	return nil
}

func (f *fakeChallengeRepo) Update(_ context.Context, challenge *entity.CoachDomainChallenge) error {
	if _, ok := f.rows[challenge.ID]; !ok {
		return repository.ErrChallengeNotFound
	}
	cloned := *challenge
	f.rows[challenge.ID] = &cloned

	return nil
}

type fakeResultRepo struct {
	rows map[uuid.UUID]*entity.Result
}

func newFakeResultRepo() *fakeResultRepo {
	return &fakeResultRepo{rows: make(map[uuid.UUID]*entity.Result)}
}

func (f *fakeResultRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Result, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrResultNotFound
	}
	cloned := *row

	return &cloned, nil
}

func (f *fakeResultRepo) ListByAthlete(_ context.Context, athleteID uuid.UUID) ([]*entity.Result, error) {
	var out []*entity.Result
	for _, row := range f.rows {
		if row.AthleteID == athleteID {
			cloned := *row
			out = append(out, &cloned)
		}
	}

	return out, nil
}

func (f *fakeResultRepo) Create(_ context.Context, result *entity.Result) error {
	if result.ID == uuid.Nil {
		result.ID = uuid.New()
	}
	cloned := *result
	f.rows[result.ID] = &cloned

	return nil
}

func (f *fakeResultRepo) Update(_ context.Context, result *entity.Result) error {
	if _, ok := f.rows[result.ID]; !ok {
		return repository.ErrResultNotFound
	}
	cloned := *result
	f.rows[result.ID] = &cloned

	return nil
}

// fakeTxManager runs the callback against the live fakes without any
// transaction semantics.
type fakeTxManager struct {
	identityRepo  *fakeIdentityRepo
	challengeRepo *fakeChallengeRepo
	resultRepo    *fakeResultRepo
}

func (f *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(f)
}

func (f *fakeTxManager) ResultRepo() repository.ResultRepository {
	return f.resultRepo
}

func (f *fakeTxManager) IdentityRepo() repository.IdentityRepository {
	return f.identityRepo
}

func (f *fakeTxManager) ChallengeRepo() repository.ChallengeRepository {
	return f.challengeRepo
}

// fakeVerifier returns scripted proof check outcomes.
type fakeVerifier struct {
	profileCheck service.ProofCheck
	profileErr   error
	dnsCheck     service.ProofCheck
	dnsErr       error
	wellKnown    service.ProofCheck
	wellKnownErr error

	profileCalls int
	dnsCalls     int
}

func (f *fakeVerifier) CheckProfileNonce(_ context.Context, _, _ string) (service.ProofCheck, error) {
	f.profileCalls++

	return f.profileCheck, f.profileErr
}

func (f *fakeVerifier) CheckDNSTXT(_ context.Context, _, _ string) (service.ProofCheck, error) {
	f.dnsCalls++

	return f.dnsCheck, f.dnsErr
}

func (f *fakeVerifier) CheckWellKnown(_ context.Context, _, _ string) (service.ProofCheck, error) {
	return f.wellKnown, f.wellKnownErr
}

// fakePublisher records published events.
type fakePublisher struct {
	events []*service.VerificationEvent
	err    error
}

func (f *fakePublisher) PublishVerificationEvent(_ context.Context, event *service.VerificationEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)

	return nil
}

func (f *fakePublisher) Close() error { return nil }

func testLogger(t *testing.T) *slog.Logger {
	t.Helper()

	return slog.New(slog.DiscardHandler)
}

func requireAppErrorCode(t *testing.T, err error, want domainerrors.AppError) {
	t.Helper()

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, want.ErrorCode(), appErr.ErrorCode())
}
