package scoring

import "time"

// Diastolic blood pressure thresholds (mmHg). NEWS does not score the
// diastolic value, so it is assessed separately.
const (
	diastolicHypotension  = 60
	diastolicNormalMax    = 89
	diastolicStage1Max    = 99
	diastolicStage2Max    = 109
)

// Engine runs the rule-based vital-sign assessment: NEWS scoring plus
// additional clinical rules, with sensor-fault filtering.
type Engine struct {
	language Language
}

// NewEngine creates an Engine producing recommendations in the given
// language. Unknown languages fall back to English per text lookup.
func NewEngine(language Language) *Engine {
	if language != LangArabic {
		language = LangEnglish
	}
	return &Engine{language: language}
}

// Language returns the engine's configured language.
func (e *Engine) Language() Language {
	return e.language
}

// Analyze performs the comprehensive assessment of one vitals snapshot.
// Sensor faults are reported but never abort the run: implicated readings
// are nulled and the remaining vitals are scored.
func (e *Engine) Analyze(patientID string, vitals VitalSigns) Analysis {
	sensorErrors := CheckSensorIntegrity(vitals)
	cleaned := cleanVitals(vitals, sensorErrors)

	news := CalculateNEWS(cleaned)
	additional := e.additionalClinicalRules(cleaned)
	recommendations := e.generateRecommendations(news, additional)
	finalAlert := determineFinalAlert(news, additional)

	return Analysis{
		PatientID:                  patientID,
		AssessmentTime:             time.Now(),
		NEWS:                       news,
		Additional:                 additional,
		Recommendations:            recommendations,
		FinalAlert:                 finalAlert,
		RequiresImmediateAttention: finalAlert.Level == "red" || finalAlert.Level == "critical",
		SensorErrors:               sensorErrors,
		CleanedVitals:              cleaned,
	}
}

// additionalClinicalRules assesses findings the NEWS score does not cover.
func (e *Engine) additionalClinicalRules(vitals VitalSigns) AdditionalAssessments {
	var assessments AdditionalAssessments

	if vitals.DiastolicBP != nil {
		diastolic := *vitals.DiastolicBP
		assessment := &DiastolicAssessment{Value: diastolic}
		switch {
		case diastolic < diastolicHypotension:
			assessment.Status = "hypotension"
			assessment.Severity = "medium"
		case diastolic > diastolicStage2Max:
			assessment.Status = "severe_hypertension"
			assessment.Severity = "high"
		case diastolic > diastolicStage1Max:
			assessment.Status = "moderate_hypertension"
			assessment.Severity = "medium"
		default:
			assessment.Status = "normal"
			assessment.Severity = "low"
		}
		assessments.DiastolicBP = assessment
	}

	assessments.CriticalCombinations = e.checkCriticalCombinations(vitals)
	return assessments
}

// checkCriticalCombinations flags dangerous cross-parameter patterns.
// A missing reading cannot trigger a combination.
func (e *Engine) checkCriticalCombinations(vitals VitalSigns) []CriticalCombination {
	var alerts []CriticalCombination

	// Low SpO2 + high respiratory rate: potential respiratory distress.
	if vitals.SpO2 != nil && vitals.RespiratoryRate != nil &&
		*vitals.SpO2 < 92 && *vitals.RespiratoryRate > 22 {
		alerts = append(alerts, CriticalCombination{
			Type:        "respiratory_distress",
			Description: e.comboDescription("respiratory_distress"),
			Severity:    "critical",
		})
	}

	// Low systolic BP + high pulse: potential shock.
	if vitals.SystolicBP != nil && vitals.Pulse != nil &&
		*vitals.SystolicBP < 90 && *vitals.Pulse > 100 {
		alerts = append(alerts, CriticalCombination{
			Type:        "potential_shock",
			Description: e.comboDescription("potential_shock"),
			Severity:    "critical",
		})
	}

	// High temperature + high pulse: possible severe infection.
	if vitals.Temperature != nil && vitals.Pulse != nil &&
		*vitals.Temperature > 38.3 && *vitals.Pulse > 110 {
		alerts = append(alerts, CriticalCombination{
			Type:        "potential_sepsis",
			Description: e.comboDescription("potential_sepsis"),
			Severity:    "high",
		})
	}

	return alerts
}

func (e *Engine) generateRecommendations(news NEWSAnalysis, additional AdditionalAssessments) []string {
	var recommendations []string

	switch news.RiskCategory.Level {
	case "high":
		recommendations = append(recommendations, e.text("urgent"), e.text("monitor_15"))
	case "medium":
		recommendations = append(recommendations, e.text("medium"), e.text("monitor_30"))
	default:
		recommendations = append(recommendations, e.text("normal"), e.text("routine"))
	}

	for _, combo := range additional.CriticalCombinations {
		if combo.Severity == "critical" {
			recommendations = append(recommendations, e.textWithDesc("critical_combo", combo.Description))
		}
	}

	return recommendations
}

// determineFinalAlert escalates the NEWS alert level: any critical
// combination overrides to a purple "critical" alert.
func determineFinalAlert(news NEWSAnalysis, additional AdditionalAssessments) FinalAlert {
	for _, combo := range additional.CriticalCombinations {
		if combo.Severity == "critical" {
			return FinalAlert{Level: "critical", Color: "purple", Action: "immediate_intervention"}
		}
	}

	switch news.RiskCategory.AlertLevel {
	case "red":
		return FinalAlert{Level: "red", Color: "red", Action: "urgent_response"}
	case "yellow":
		return FinalAlert{Level: "yellow", Color: "yellow", Action: "prompt_assessment"}
	default:
		return FinalAlert{Level: "green", Color: "green", Action: "routine_monitoring"}
	}
}
