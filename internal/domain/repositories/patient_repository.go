package repositories

import (
	"context"
	"errors"
	"fmt"

	"mediguard-backend/internal/domain/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPatientRepository is the Postgres implementation of
// PatientRepositoryContract.
type GormPatientRepository struct {
	db *gorm.DB
}

func NewGormPatientRepository(db *gorm.DB) PatientRepositoryContract {
	return &GormPatientRepository{db: db}
}

func (r *GormPatientRepository) Create(ctx context.Context, patient *entities.Patient) error {
	if patient.ID == uuid.Nil {
		patient.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(patient).Error; err != nil {
		return fmt.Errorf("creating patient %s: %w", patient.Code, err)
	}
	return nil
}

func (r *GormPatientRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Patient, error) {
	var patient entities.Patient
	err := r.db.WithContext(ctx).First(&patient, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching patient %s: %w", id, err)
	}
	return &patient, nil
}

func (r *GormPatientRepository) FindByCode(ctx context.Context, code string) (*entities.Patient, error) {
	var patient entities.Patient
	err := r.db.WithContext(ctx).First(&patient, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching patient by code %q: %w", code, err)
	}
	return &patient, nil
}

func (r *GormPatientRepository) Update(ctx context.Context, patient *entities.Patient) error {
	if err := r.db.WithContext(ctx).Save(patient).Error; err != nil {
		return fmt.Errorf("updating patient %s: %w", patient.Code, err)
	}
	return nil
}

func (r *GormPatientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&entities.Patient{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("deleting patient %s: %w", id, err)
	}
	return nil
}

func (r *GormPatientRepository) ListAll(ctx context.Context) ([]*entities.Patient, error) {
	var patients []*entities.Patient
	if err := r.db.WithContext(ctx).Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("listing patients: %w", err)
	}
	return patients, nil
}
