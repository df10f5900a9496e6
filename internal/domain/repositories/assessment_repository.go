package repositories

import (
	"context"
	"errors"
	"fmt"

	"mediguard-backend/internal/domain/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAssessmentRepository is the Postgres implementation of
// AssessmentRepositoryContract.
type GormAssessmentRepository struct {
	db *gorm.DB
}

func NewGormAssessmentRepository(db *gorm.DB) AssessmentRepositoryContract {
	return &GormAssessmentRepository{db: db}
}

func (r *GormAssessmentRepository) Create(ctx context.Context, assessment *entities.Assessment) error {
	if assessment.ID == uuid.Nil {
		assessment.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(assessment).Error; err != nil {
		return fmt.Errorf("creating assessment for patient %s: %w", assessment.PatientID, err)
	}
	return nil
}

func (r *GormAssessmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Assessment, error) {
	var assessment entities.Assessment
	err := r.db.WithContext(ctx).First(&assessment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching assessment %s: %w", id, err)
	}
	return &assessment, nil
}

func (r *GormAssessmentRepository) FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]*entities.Assessment, error) {
	var assessments []*entities.Assessment
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at asc").
		Find(&assessments).Error
	if err != nil {
		return nil, fmt.Errorf("fetching history for patient %s: %w", patientID, err)
	}
	return assessments, nil
}

func (r *GormAssessmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&entities.Assessment{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("deleting assessment %s: %w", id, err)
	}
	return nil
}
