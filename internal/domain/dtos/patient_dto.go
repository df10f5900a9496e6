package dtos

import (
	"encoding/json"
	"time"

	"mediguard-backend/internal/domain/entities"
)

// PatientDTO is the outward representation of a stored patient,
// including the last vitals snapshot and analysis document.
type PatientDTO struct {
	PatientID         string          `json:"patient_id"`
	Name              string          `json:"name"`
	Age               int             `json:"age"`
	Gender            string          `json:"gender"`
	ChronicConditions []string        `json:"chronic_conditions"`
	Notes             string          `json:"notes"`
	Vitals            json.RawMessage `json:"vitals,omitempty"`
	LastAnalysis      json.RawMessage `json:"last_analysis,omitempty"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// NewPatientDTO maps the entity to its wire form.
func NewPatientDTO(patient *entities.Patient) PatientDTO {
	conditions := patient.ChronicConditionList()
	if conditions == nil {
		conditions = []string{}
	}
	return PatientDTO{
		PatientID:         patient.Code,
		Name:              patient.Name,
		Age:               patient.Age,
		Gender:            patient.Gender,
		ChronicConditions: conditions,
		Notes:             patient.Notes,
		Vitals:            patient.Vitals,
		LastAnalysis:      patient.LastAnalysis,
		UpdatedAt:         patient.UpdatedAt,
	}
}
