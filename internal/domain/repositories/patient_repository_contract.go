package repositories

import (
	"context"

	"mediguard-backend/internal/domain/entities"

	"github.com/google/uuid"
)

// PatientRepositoryContract defines patient data operations.
// Lookups return (nil, nil) when no row matches.
type PatientRepositoryContract interface {
	Create(ctx context.Context, patient *entities.Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Patient, error)
	FindByCode(ctx context.Context, code string) (*entities.Patient, error)
	Update(ctx context.Context, patient *entities.Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListAll(ctx context.Context) ([]*entities.Patient, error)
}
