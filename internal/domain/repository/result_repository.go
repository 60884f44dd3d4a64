// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"sliders/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrResultNotFound is a domain-specific error returned when a result row is not found.
var ErrResultNotFound = errors.New("result not found")

// ResultRepository defines the standard operations for result persistence.
type ResultRepository interface {
	// FindByID retrieves a single result by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Result, error)

	// ListByAthlete retrieves all results for one athlete, newest meet first.
	ListByAthlete(ctx context.Context, athleteID uuid.UUID) ([]*entity.Result, error)

	// Create persists a new result row.
	Create(ctx context.Context, result *entity.Result) error

	// Update modifies an existing result row.
	Update(ctx context.Context, result *entity.Result) error
}
