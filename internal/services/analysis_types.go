package services

import (
	"time"

	"mediguard-backend/internal/ecg"
	"mediguard-backend/internal/scoring"
)

// Risk weighting for the combined assessment. Vitals carry more weight
// than the single-beat ECG classification.
const (
	ecgRiskWeight    = 0.4
	vitalsRiskWeight = 0.6
)

// CombinedAssessment merges the ECG and vitals risk into one level.
type CombinedAssessment struct {
	CombinedRiskLevel          string   `json:"combined_risk_level"` // low | medium | high | unknown
	AlertColor                 string   `json:"alert_color"`         // green | yellow | red | gray
	RiskScore                  float64  `json:"risk_score"`
	ContributingFactors        []string `json:"contributing_factors"`
	RequiresImmediateAttention bool     `json:"requires_immediate_attention"`
}

// IntegratedAnalysis is the full analysis document stored per run and
// returned to the caller.
type IntegratedAnalysis struct {
	PatientID              string             `json:"patient_id"`
	AnalysisTimestamp      time.Time          `json:"analysis_timestamp"`
	ECGAnalysis            *ecg.Result        `json:"ecg_analysis"`
	VitalSignsAnalysis     *scoring.Analysis  `json:"vital_signs_analysis"`
	CombinedAssessment     CombinedAssessment `json:"combined_assessment"`
	UnifiedRecommendations []string           `json:"unified_recommendations"`
}

// Patient-facing ECG advisory texts per language.
var ecgAdvisories = map[string]map[scoring.Language]string{
	"ventricular": {
		scoring.LangEnglish: "Dangerous heartbeat pattern detected - see a heart doctor immediately",
		scoring.LangArabic:  "تم رصد نمط خطير في ضربات القلب - يجب مراجعة طبيب القلب فوراً",
	},
	"supraventricular": {
		scoring.LangEnglish: "Irregular heartbeat detected (upper heart area) - follow up with a doctor",
		scoring.LangArabic:  "تم رصد عدم انتظام في ضربات القلب (الجزء العلوي) - يلزم متابعة مع الطبيب",
	},
	"fusion": {
		scoring.LangEnglish: "Mixed heartbeat signals detected - medical check advised",
		scoring.LangArabic:  "تم رصد خليط في إشارات ضربات القلب - ينصح بمتابعة طبية",
	},
	"emergency": {
		scoring.LangEnglish: "Emergency detected - go to hospital immediately",
		scoring.LangArabic:  "حالة طوارئ - التوجه للمستشفى فوراً",
	},
}

func ecgAdvisory(key string, lang scoring.Language) string {
	if byLang, ok := ecgAdvisories[key]; ok {
		if s, ok := byLang[lang]; ok {
			return s
		}
		return byLang[scoring.LangEnglish]
	}
	return key
}
