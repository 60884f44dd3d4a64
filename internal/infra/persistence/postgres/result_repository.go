// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
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

// resultRepository implements the domain.ResultRepository interface using GORM.
type resultRepository struct {
	db *gorm.DB
}

// NewResultRepository is the constructor for resultRepository.
// It returns the repository as a domain interface, adhering to dependency inversion.
func NewResultRepository(db *gorm.DB) repository.ResultRepository {
	return &resultRepository{db: db}
}

// FindByID retrieves a single result by its unique ID.
func (repo *resultRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Result, error) {
	var resultM model.ResultModel
	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&resultM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrResultNotFound
		}

		return nil, errors.Wrap(err, "failed to find result by id")
	}

	return toResultDomain(&resultM), nil
}

// ListByAthlete retrieves all results for one athlete, newest meet first.
func (repo *resultRepository) ListByAthlete(ctx context.Context, athleteID uuid.UUID) ([]*entity.Result, error) {
	var resultMs []*model.ResultModel
	if err := repo.db.WithContext(ctx).
		Where("athlete_id = ?", athleteID).
		Order("meet_date DESC, created_at DESC").
		Find(&resultMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list results by athlete")
	}

	results := make([]*entity.Result, 0, len(resultMs))
	for _, resultM := range resultMs {
		results = append(results, toResultDomain(resultM))
	}

	return results, nil
}

// Create persists a new result row.
func (repo *resultRepository) Create(ctx context.Context, result *entity.Result) error {
	resultM := fromResultDomain(result)

	if err := repo.db.WithContext(ctx).Create(resultM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required result fields")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("unknown athlete reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create result")
	}

	// Update the entity with the generated ID and timestamps
	result.ID = resultM.ID
	result.CreatedAt = resultM.CreatedAt
	result.UpdatedAt = resultM.UpdatedAt

	return nil
}

// Update modifies an existing result row.
func (repo *resultRepository) Update(ctx context.Context, result *entity.Result) error {
	resultM := fromResultDomain(result)

	if err := repo.db.WithContext(ctx).Save(resultM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required result fields")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update result")
	}

	result.UpdatedAt = resultM.UpdatedAt

	return nil
}

// --- Mapper Functions ---

// toResultDomain converts a GORM ResultModel to a domain Result entity.
func toResultDomain(data *model.ResultModel) *entity.Result {
	if data == nil {
		return nil
	}

	return &entity.Result{
		ID:             data.ID,
		AthleteID:      data.AthleteID,
		EventCode:      data.EventCode,
		MarkText:       data.MarkText,
		MarkSeconds:    data.MarkSeconds,
		MarkSecondsAdj: data.MarkSecondsAdj,
		MarkMetric:     data.MarkMetric,
		Timing:         entity.TimingMethod(data.Timing),
		Wind:           data.Wind,
		Season:         entity.Season(data.Season),
		MeetName:       data.MeetName,
		MeetDate:       data.MeetDate,
		Status:         entity.ResultStatus(data.Status),
		ProofURL:       data.ProofURL,
		Source:         entity.ResultSource(data.Source),
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

// fromResultDomain converts a domain Result entity to a GORM ResultModel for persistence.
func fromResultDomain(data *entity.Result) *model.ResultModel {
	if data == nil {
		return nil
	}

	return &model.ResultModel{
		ID:             data.ID,
		AthleteID:      data.AthleteID,
		EventCode:      data.EventCode,
		MarkText:       data.MarkText,
		MarkSeconds:    data.MarkSeconds,
		MarkSecondsAdj: data.MarkSecondsAdj,
		MarkMetric:     data.MarkMetric,
		Timing:         string(data.Timing),
		Wind:           data.Wind,
		Season:         string(data.Season),
		MeetName:       data.MeetName,
		MeetDate:       data.MeetDate,
		Status:         string(data.Status),
		ProofURL:       data.ProofURL,
		Source:         string(data.Source),
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}
