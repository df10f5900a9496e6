package services

import (
	"context"

	"mediguard-backend/internal/domain/dtos"
)

// AnalysisServiceContract defines the integrated patient analysis
// operations behind the HTTP and MQTT surfaces.
type AnalysisServiceContract interface {
	// Analyze runs the full vitals + ECG pipeline, persists the patient
	// document and assessment history, and returns the updated patient.
	Analyze(ctx context.Context, request dtos.AnalyzePatientRequest) (*dtos.PatientDTO, error)
	// GetPatient returns the stored patient document, or nil when the
	// code is unknown.
	GetPatient(ctx context.Context, code string) (*dtos.PatientDTO, error)
	// GetHistory returns the assessment history rows for a patient, or
	// nil when the code is unknown.
	GetHistory(ctx context.Context, code string) ([]dtos.HistoryEntry, error)
}

// AlertPublisherContract enqueues critical-alert jobs; implemented by the
// alert service.
type AlertPublisherContract interface {
	PublishAlert(ctx context.Context, alert AlertJobData) error
}
