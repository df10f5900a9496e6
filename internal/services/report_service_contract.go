package services

import (
	"context"

	"mediguard-backend/internal/domain/entities"
	"mediguard-backend/internal/scoring"
)

// ReportServiceContract produces patient-facing reports and summaries in
// the requested language.
type ReportServiceContract interface {
	// GenerateReport builds the structured report from the rule-based
	// analysis of the patient's stored vitals, appending LLM
	// recommendations when available.
	GenerateReport(ctx context.Context, patient *entities.Patient, lang scoring.Language) (string, error)
	// GenerateSummary condenses the report into 2-3 sentences via the LLM.
	GenerateSummary(ctx context.Context, patient *entities.Patient, lang scoring.Language) (string, error)
	// SmartRecommendations asks the LLM for additional case-specific
	// recommendations grounded in the patient data.
	SmartRecommendations(ctx context.Context, patient *entities.Patient, lang scoring.Language) ([]string, error)
}
