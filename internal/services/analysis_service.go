package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"mediguard-backend/internal/domain/dtos"
	"mediguard-backend/internal/domain/entities"
	"mediguard-backend/internal/domain/repositories"
	"mediguard-backend/internal/ecg"
	"mediguard-backend/internal/scoring"
)

// AnalysisServiceImpl implements AnalysisServiceContract.
type AnalysisServiceImpl struct {
	patientRepo     repositories.PatientRepositoryContract
	assessmentRepo  repositories.AssessmentRepositoryContract
	ecgAnalyzer     ecg.Analyzer
	alertPublisher  AlertPublisherContract
	logger          *log.Logger
	defaultLanguage scoring.Language
}

// NewAnalysisService creates a new AnalysisServiceImpl.
func NewAnalysisService(
	patientRepo repositories.PatientRepositoryContract,
	assessmentRepo repositories.AssessmentRepositoryContract,
	ecgAnalyzer ecg.Analyzer,
	alertPublisher AlertPublisherContract,
	logger *log.Logger,
	defaultLanguage scoring.Language,
) AnalysisServiceContract {
	return &AnalysisServiceImpl{
		patientRepo:     patientRepo,
		assessmentRepo:  assessmentRepo,
		ecgAnalyzer:     ecgAnalyzer,
		alertPublisher:  alertPublisher,
		logger:          logger,
		defaultLanguage: defaultLanguage,
	}
}

// Analyze runs the integrated pipeline for one vitals snapshot.
func (s *AnalysisServiceImpl) Analyze(ctx context.Context, request dtos.AnalyzePatientRequest) (*dtos.PatientDTO, error) {
	if request.PatientID == "" {
		return nil, fmt.Errorf("patient_id is required")
	}

	lang := s.defaultLanguage
	if request.Language != "" {
		lang = scoring.Language(request.Language)
	}
	engine := scoring.NewEngine(lang)

	vitalAnalysis := engine.Analyze(request.PatientID, request.FlattenVitals())

	var ecgResult *ecg.Result
	if len(request.ECGSignal) > 0 {
		result, err := s.ecgAnalyzer.Analyze(request.ECGSignal)
		if err != nil {
			// An unreadable signal still counts, as unknown at high risk.
			s.logger.Printf("ECG analysis failed for patient %s: %v", request.PatientID, err)
			result = ecg.ErrorResult(err)
		}
		ecgResult = &result
	}

	combined := combineRisk(ecgResult, &vitalAnalysis)
	analysis := IntegratedAnalysis{
		PatientID:              request.PatientID,
		AnalysisTimestamp:      time.Now(),
		ECGAnalysis:            ecgResult,
		VitalSignsAnalysis:     &vitalAnalysis,
		CombinedAssessment:     combined,
		UnifiedRecommendations: unifiedRecommendations(ecgResult, &vitalAnalysis, combined, lang),
	}

	patient, err := s.persist(ctx, request, analysis)
	if err != nil {
		return nil, err
	}

	if combined.RequiresImmediateAttention && s.alertPublisher != nil {
		alert := AlertJobData{
			PatientCode:     request.PatientID,
			RiskLevel:       combined.CombinedRiskLevel,
			AlertColor:      combined.AlertColor,
			NEWSScore:       vitalAnalysis.NEWS.TotalScore,
			Recommendations: analysis.UnifiedRecommendations,
			Timestamp:       analysis.AnalysisTimestamp,
		}
		if err := s.alertPublisher.PublishAlert(ctx, alert); err != nil {
			// Alert dispatch is best effort; the analysis itself succeeded.
			s.logger.Printf("Failed to publish alert for patient %s: %v", request.PatientID, err)
		}
	}

	dto := dtos.NewPatientDTO(patient)
	return &dto, nil
}

// persist upserts the patient document and appends the assessment row.
func (s *AnalysisServiceImpl) persist(ctx context.Context, request dtos.AnalyzePatientRequest, analysis IntegratedAnalysis) (*entities.Patient, error) {
	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		return nil, fmt.Errorf("marshalling analysis document: %w", err)
	}
	vitalsJSON, err := json.Marshal(request.Vitals)
	if err != nil {
		return nil, fmt.Errorf("marshalling vitals payload: %w", err)
	}
	conditionsJSON, err := json.Marshal(request.ChronicConditions)
	if err != nil {
		return nil, fmt.Errorf("marshalling chronic conditions: %w", err)
	}

	patient, err := s.patientRepo.FindByCode(ctx, request.PatientID)
	if err != nil {
		return nil, err
	}

	if patient == nil {
		gender := request.Gender
		if gender == "" {
			gender = "unknown"
		}
		patient = &entities.Patient{
			Code:              request.PatientID,
			Name:              request.Name,
			Age:               request.Age,
			Gender:            gender,
			ChronicConditions: conditionsJSON,
			Notes:             request.Notes,
			Vitals:            vitalsJSON,
			LastAnalysis:      analysisJSON,
		}
		if err := s.patientRepo.Create(ctx, patient); err != nil {
			return nil, err
		}
	} else {
		if request.Name != "" {
			patient.Name = request.Name
		}
		if request.Age != 0 {
			patient.Age = request.Age
		}
		// An existing gender wins over an omitted one in the payload.
		if request.Gender != "" {
			patient.Gender = request.Gender
		} else if patient.Gender == "" {
			patient.Gender = "unknown"
		}
		if request.ChronicConditions != nil {
			patient.ChronicConditions = conditionsJSON
		}
		if request.Notes != "" {
			patient.Notes = request.Notes
		}
		patient.Vitals = vitalsJSON
		patient.LastAnalysis = analysisJSON
		if err := s.patientRepo.Update(ctx, patient); err != nil {
			return nil, err
		}
	}

	assessment := &entities.Assessment{
		PatientID:  patient.ID,
		ResultData: analysisJSON,
		RiskLevel:  analysis.CombinedAssessment.CombinedRiskLevel,
		AlertColor: analysis.CombinedAssessment.AlertColor,
		NEWSScore:  analysis.VitalSignsAnalysis.NEWS.TotalScore,
	}
	if err := s.assessmentRepo.Create(ctx, assessment); err != nil {
		return nil, err
	}

	return patient, nil
}

// GetPatient returns the stored patient document by external code.
func (s *AnalysisServiceImpl) GetPatient(ctx context.Context, code string) (*dtos.PatientDTO, error) {
	patient, err := s.patientRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, nil
	}
	dto := dtos.NewPatientDTO(patient)
	return &dto, nil
}

// GetHistory returns the assessment history for a patient code.
func (s *AnalysisServiceImpl) GetHistory(ctx context.Context, code string) ([]dtos.HistoryEntry, error) {
	patient, err := s.patientRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, nil
	}
	assessments, err := s.assessmentRepo.FindByPatientID(ctx, patient.ID)
	if err != nil {
		return nil, err
	}
	return dtos.NewHistoryEntries(assessments), nil
}

// combineRisk merges the ECG and vitals assessments into one risk level.
func combineRisk(ecgResult *ecg.Result, vitals *scoring.Analysis) CombinedAssessment {
	var riskScore float64
	var factors []string
	hasInput := false

	if ecgResult != nil {
		hasInput = true
		riskMap := map[string]float64{"low": 1, "medium": 2, "high": 3}
		score, ok := riskMap[ecgResult.RiskLevel]
		if !ok {
			score = 2
		}
		riskScore += score * ecgRiskWeight
		if ecgResult.RiskLevel == "medium" || ecgResult.RiskLevel == "high" {
			factors = append(factors, "ECG issue: "+ecgResult.ClassName.EN)
		}
	}

	if vitals != nil {
		hasInput = true
		newsScore := vitals.NEWS.TotalScore
		var vitalRisk float64
		switch {
		case newsScore >= 7:
			vitalRisk = 3
		case newsScore >= 5:
			vitalRisk = 2
		default:
			vitalRisk = 1
		}
		riskScore += vitalRisk * vitalsRiskWeight
		for _, combo := range vitals.Additional.CriticalCombinations {
			factors = append(factors, combo.Description)
		}
	}

	if !hasInput {
		return CombinedAssessment{CombinedRiskLevel: "unknown", AlertColor: "gray", ContributingFactors: []string{}}
	}

	level, color := "low", "green"
	switch {
	case riskScore >= 2.5:
		level, color = "high", "red"
	case riskScore >= 1.5:
		level, color = "medium", "yellow"
	}
	if factors == nil {
		factors = []string{}
	}

	return CombinedAssessment{
		CombinedRiskLevel:          level,
		AlertColor:                 color,
		RiskScore:                  riskScore,
		ContributingFactors:        factors,
		RequiresImmediateAttention: level == "high",
	}
}

// unifiedRecommendations merges ECG advisories with the rule-based vitals
// recommendations, prefixing the emergency line when warranted.
func unifiedRecommendations(ecgResult *ecg.Result, vitals *scoring.Analysis, combined CombinedAssessment, lang scoring.Language) []string {
	var recommendations []string

	if ecgResult != nil {
		switch ecgResult.Class {
		case ecg.ClassVentricular, ecg.ClassUnknown:
			recommendations = append(recommendations, ecgAdvisory("ventricular", lang))
		case ecg.ClassSupraventricular:
			recommendations = append(recommendations, ecgAdvisory("supraventricular", lang))
		case ecg.ClassFusion:
			recommendations = append(recommendations, ecgAdvisory("fusion", lang))
		}
	}

	if vitals != nil {
		recommendations = append(recommendations, vitals.Recommendations...)
	}

	if combined.RequiresImmediateAttention {
		recommendations = append([]string{ecgAdvisory("emergency", lang)}, recommendations...)
	}

	return recommendations
}
