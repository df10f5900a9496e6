package repositories

import (
	"context"

	"mediguard-backend/internal/domain/entities"

	"github.com/google/uuid"
)

// AssessmentRepositoryContract defines assessment history operations.
// History is append-only: there is no update.
type AssessmentRepositoryContract interface {
	Create(ctx context.Context, assessment *entities.Assessment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Assessment, error)
	FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]*entities.Assessment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
