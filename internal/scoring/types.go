package scoring

import "time"

// Language selects the language of generated recommendations and
// combination descriptions.
type Language string

const (
	LangEnglish Language = "en"
	LangArabic  Language = "ar"
)

// VitalSigns is a flattened vital-sign snapshot. Nil means the reading is
// absent (device disconnected).
type VitalSigns struct {
	RespiratoryRate *float64 `json:"respiratory_rate,omitempty"`
	SpO2            *float64 `json:"spo2,omitempty"`
	SystolicBP      *float64 `json:"systolic_bp,omitempty"`
	DiastolicBP     *float64 `json:"diastolic_bp,omitempty"`
	Pulse           *float64 `json:"pulse,omitempty"`
	Temperature     *float64 `json:"temperature,omitempty"`
}

// ParameterScore is the NEWS contribution of a single vital sign.
type ParameterScore struct {
	Value     float64 `json:"value"`
	Score     int     `json:"score"`
	Parameter string  `json:"parameter"`
}

// RiskCategory classifies a total NEWS score.
type RiskCategory struct {
	Level      string `json:"level"`       // low | medium | high | unknown
	Response   string `json:"response"`    // clinical response guidance
	AlertLevel string `json:"alert_level"` // green | yellow | red | gray
	TotalScore int    `json:"total_score"`
}

// NEWSAnalysis is the scored breakdown of one vitals snapshot.
type NEWSAnalysis struct {
	IndividualScores map[string]ParameterScore `json:"individual_scores"`
	TotalScore       int                       `json:"total_news_score"`
	RiskCategory     RiskCategory              `json:"risk_category"`
	Timestamp        time.Time                 `json:"timestamp"`
}

// SensorError reports a disconnected device or an implausible reading.
type SensorError struct {
	Sensor string `json:"sensor"`
	Error  string `json:"error"`
}

// DiastolicAssessment is the clinical assessment of diastolic pressure,
// which NEWS itself does not score.
type DiastolicAssessment struct {
	Status   string  `json:"status"` // normal | hypotension | moderate_hypertension | severe_hypertension
	Severity string  `json:"severity"`
	Value    float64 `json:"value"`
}

// CriticalCombination flags a dangerous pattern across vital signs.
type CriticalCombination struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// AdditionalAssessments collects rule-based findings beyond the NEWS score.
type AdditionalAssessments struct {
	DiastolicBP          *DiastolicAssessment  `json:"diastolic_bp,omitempty"`
	CriticalCombinations []CriticalCombination `json:"critical_combinations,omitempty"`
}

// FinalAlert is the patient-level alert derived from NEWS risk plus
// critical combinations.
type FinalAlert struct {
	Level  string `json:"level"`  // green | yellow | red | critical
	Color  string `json:"color"`  // green | yellow | red | purple
	Action string `json:"action"`
}

// Analysis is the complete output of one assessment run.
type Analysis struct {
	PatientID                  string                `json:"patient_id"`
	AssessmentTime             time.Time             `json:"assessment_time"`
	NEWS                       NEWSAnalysis          `json:"news_analysis"`
	Additional                 AdditionalAssessments `json:"additional_assessments"`
	Recommendations            []string              `json:"recommendations"`
	FinalAlert                 FinalAlert            `json:"final_alert"`
	RequiresImmediateAttention bool                  `json:"requires_immediate_attention"`
	SensorErrors               []SensorError         `json:"sensor_errors"`
	CleanedVitals              VitalSigns            `json:"cleaned_vital_signs"`
}
