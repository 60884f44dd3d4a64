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

// identityRepository implements the domain.IdentityRepository interface using GORM.
type identityRepository struct {
	db *gorm.DB
}

// NewIdentityRepository is the constructor for identityRepository.
func NewIdentityRepository(db *gorm.DB) repository.IdentityRepository {
	return &identityRepository{db: db}
}

// FindByID retrieves a single identity row by its unique ID.
func (repo *identityRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ExternalIdentity, error) {
	var identityM model.ExternalIdentityModel
	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&identityM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrIdentityNotFound
		}

		return nil, errors.Wrap(err, "failed to find identity by id")
	}

	return toIdentityDomain(&identityM), nil
}

// FindByProviderExternalID retrieves the identity row claiming the given
// external profile, regardless of owner or verification state.
func (repo *identityRepository) FindByProviderExternalID(ctx context.Context, provider entity.IdentityProvider, externalID string) (*entity.ExternalIdentity, error) {
	var identityM model.ExternalIdentityModel
	if err := repo.db.WithContext(ctx).
		Where("provider = ? AND external_id = ?", string(provider), externalID).
		First(&identityM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrIdentityNotFound
		}

		return nil, errors.Wrap(err, "failed to find identity by provider and external id")
	}

	return toIdentityDomain(&identityM), nil
}

// ListByUser retrieves all identity rows belonging to one user.
func (repo *identityRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.ExternalIdentity, error) {
	var identityMs []*model.ExternalIdentityModel
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&identityMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list identities by user")
	}

	identities := make([]*entity.ExternalIdentity, 0, len(identityMs))
	for _, identityM := range identityMs {
		identities = append(identities, toIdentityDomain(identityM))
	}

	return identities, nil
}

// Create persists a new identity row. The unique index on
// (provider, external_id) is the concurrency guard: the loser of a
// simultaneous claim race gets ErrIdentityAlreadyClaimed here.
func (repo *identityRepository) Create(ctx context.Context, identity *entity.ExternalIdentity) error {
	identityM := fromIdentityDomain(identity)

	if err := repo.db.WithContext(ctx).Create(identityM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrIdentityAlreadyClaimed.WrapMessage("profile already claimed")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required identity fields")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create identity")
	}

	identity.ID = identityM.ID
	identity.CreatedAt = identityM.CreatedAt
	identity.UpdatedAt = identityM.UpdatedAt

	return nil
}

// Update modifies an existing identity row in place.
func (repo *identityRepository) Update(ctx context.Context, identity *entity.ExternalIdentity) error {
	identityM := fromIdentityDomain(identity)

	if err := repo.db.WithContext(ctx).Save(identityM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrIdentityAlreadyClaimed.WrapMessage("profile already claimed")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update identity")
	}

	identity.UpdatedAt = identityM.UpdatedAt

	return nil
}

// CountVerified returns the number of verified identities the user holds
// for the provider.
func (repo *identityRepository) CountVerified(ctx context.Context, userID uuid.UUID, provider entity.IdentityProvider) (int, error) {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.ExternalIdentityModel{}).
		Where("user_id = ? AND provider = ? AND verified = ?", userID, string(provider), true).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count verified identities")
	}

	return int(count), nil
}

// --- Mapper Functions ---

// toIdentityDomain converts a GORM ExternalIdentityModel to a domain entity.
func toIdentityDomain(data *model.ExternalIdentityModel) *entity.ExternalIdentity {
	if data == nil {
		return nil
	}

	return &entity.ExternalIdentity{
		ID:                data.ID,
		UserID:            data.UserID,
		Provider:          entity.IdentityProvider(data.Provider),
		ExternalID:        data.ExternalID,
		ExternalNumericID: data.ExternalNumericID,
		ProfileURL:        data.ProfileURL,
		Nonce:             data.Nonce,
		Status:            entity.VerificationStatus(data.Status),
		Verified:          data.Verified,
		VerifiedAt:        data.VerifiedAt,
		Attempts:          data.Attempts,
		LastCheckedAt:     data.LastCheckedAt,
		IsPrimary:         data.IsPrimary,
		ErrorMessage:      data.ErrorMessage,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}

// fromIdentityDomain converts a domain entity to a GORM ExternalIdentityModel.
func fromIdentityDomain(data *entity.ExternalIdentity) *model.ExternalIdentityModel {
	if data == nil {
		return nil
	}

	return &model.ExternalIdentityModel{
		ID:                data.ID,
		UserID:            data.UserID,
		Provider:          string(data.Provider),
		ExternalID:        data.ExternalID,
		ExternalNumericID: data.ExternalNumericID,
		ProfileURL:        data.ProfileURL,
		Nonce:             data.Nonce,
		Status:            string(data.Status),
		Verified:          data.Verified,
		VerifiedAt:        data.VerifiedAt,
		Attempts:          data.Attempts,
		LastCheckedAt:     data.LastCheckedAt,
		IsPrimary:         data.IsPrimary,
		ErrorMessage:      data.ErrorMessage,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}
