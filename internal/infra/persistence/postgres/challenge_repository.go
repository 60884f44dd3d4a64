package postgres

import (
	"context"

	"sliders/internal/domain/entity"
	domainerrors "sliders/internal/domain/errors"
	"sliders/internal/domain/repository"
	"sliders/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// challengeRepository implements the domain.ChallengeRepository interface using GORM.
type challengeRepository struct {
	db *gorm.DB
}

// NewChallengeRepository is the constructor for challengeRepository.
func NewChallengeRepository(db *gorm.DB) repository.ChallengeRepository {
	return &challengeRepository{db: db}
}

// FindByID retrieves a single challenge by its unique ID.
func (repo *challengeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CoachDomainChallenge, error) {
	var challengeM model.CoachDomainChallengeModel
	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&challengeM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrChallengeNotFound
		}

		return nil, errors.Wrap(err, "failed to find challenge by id")
	}

	return toChallengeDomain(&challengeM), nil
}

// FindActiveByUserAndDomain retrieves the most recent pending or failed
// challenge for a user and domain.
func (repo *challengeRepository) FindActiveByUserAndDomain(ctx context.Context, userID uuid.UUID, domain string) (*entity.CoachDomainChallenge, error) {
	var challengeM model.CoachDomainChallengeModel
	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND domain = ? AND status IN ?", userID, domain,
			[]string{string(entity.VerificationPending), string(entity.VerificationFailed)}).
		Order("created_at DESC").
		First(&challengeM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrChallengeNotFound
		}

		return nil, errors.Wrap(err, "failed to find active challenge")
	}

	return toChallengeDomain(&challengeM), nil
}

// Create persists a new challenge.
func (repo *challengeRepository) Create(ctx context.Context, challenge *entity.CoachDomainChallenge) error {
	challengeM := fromChallengeDomain(challenge)

	if err := repo.db.WithContext(ctx).Create(challengeM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required challenge fields")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create challenge")
	}

	challenge.ID = challengeM.ID
	challenge.CreatedAt = challengeM.CreatedAt
	challenge.UpdatedAt = challengeM.UpdatedAt

	return nil
}

// Update modifies an existing challenge in place.
func (repo *challengeRepository) Update(ctx context.Context, challenge *entity.CoachDomainChallenge) error {
	challengeM := fromChallengeDomain(challenge)

	if err := repo.db.WithContext(ctx).Save(challengeM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update challenge")
	}

	challenge.UpdatedAt = challengeM.UpdatedAt

	return nil
}

// --- Mapper Functions ---

// toChallengeDomain converts a GORM CoachDomainChallengeModel to a domain entity.
func toChallengeDomain(data *model.CoachDomainChallengeModel) *entity.CoachDomainChallenge {
	if data == nil {
		return nil
	}

	return &entity.CoachDomainChallenge{
		ID:            data.ID,
		UserID:        data.UserID,
		ProgramID:     data.ProgramID,
		Domain:        data.Domain,
		Method:        entity.ChallengeMethod(data.Method),
		Nonce:         data.Nonce,
		Status:        entity.VerificationStatus(data.Status),
		Attempts:      data.Attempts,
		ExpiresAt:     data.ExpiresAt,
		VerifiedAt:    data.VerifiedAt,
		LastCheckedAt: data.LastCheckedAt,
		ErrorMessage:  data.ErrorMessage,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

// fromChallengeDomain converts a domain entity to a GORM CoachDomainChallengeModel.
func fromChallengeDomain(data *entity.CoachDomainChallenge) *model.CoachDomainChallengeModel {
	if data == nil {
		return nil
	}

	return &model.CoachDomainChallengeModel{
		ID:            data.ID,
		UserID:        data.UserID,
		ProgramID:     data.ProgramID,
		Domain:        data.Domain,
		Method:        string(data.Method),
		Nonce:         data.Nonce,
		Status:        string(data.Status),
		Attempts:      data.Attempts,
		ExpiresAt:     data.ExpiresAt,
		VerifiedAt:    data.VerifiedAt,
		LastCheckedAt: data.LastCheckedAt,
		ErrorMessage:  data.ErrorMessage,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}
