package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func f(v float64) *float64 { return &v }

func normalVitals() VitalSigns {
	return VitalSigns{
		RespiratoryRate: f(16),
		SpO2:            f(98),
		SystolicBP:      f(120),
		DiastolicBP:     f(80),
		Pulse:           f(72),
		Temperature:     f(37.0),
	}
}

func TestCalculateNEWS_NormalPatient(t *testing.T) {
	news := CalculateNEWS(normalVitals())

	assert.Equal(t, 0, news.TotalScore)
	assert.Equal(t, "low", news.RiskCategory.Level)
	assert.Equal(t, "green", news.RiskCategory.AlertLevel)
	assert.Len(t, news.IndividualScores, 5, "diastolic BP is not a NEWS parameter")
	for key, ps := range news.IndividualScores {
		assert.Equal(t, 0, ps.Score, "parameter %s should score 0", key)
	}
}

func TestCalculateNEWS_RespiratoryDistress(t *testing.T) {
	vitals := VitalSigns{
		RespiratoryRate: f(28),
		SpO2:            f(89),
		SystolicBP:      f(110),
		DiastolicBP:     f(70),
		Pulse:           f(95),
		Temperature:     f(37.5),
	}

	news := CalculateNEWS(vitals)

	assert.Equal(t, 3, news.IndividualScores["respiratory_rate"].Score)
	assert.Equal(t, 3, news.IndividualScores["spo2"].Score)
	assert.Equal(t, 1, news.IndividualScores["systolic_bp"].Score)
	assert.Equal(t, 1, news.IndividualScores["pulse"].Score)
	assert.Equal(t, 0, news.IndividualScores["temperature"].Score)
	assert.Equal(t, 8, news.TotalScore)
	assert.Equal(t, "high", news.RiskCategory.Level)
	assert.Equal(t, "red", news.RiskCategory.AlertLevel)
}

func TestCalculateNEWS_MediumRisk(t *testing.T) {
	vitals := normalVitals()
	vitals.RespiratoryRate = f(23) // score 2
	vitals.SpO2 = f(93)            // score 2
	vitals.Pulse = f(95)           // score 1

	news := CalculateNEWS(vitals)

	assert.Equal(t, 5, news.TotalScore)
	assert.Equal(t, "medium", news.RiskCategory.Level)
	assert.Equal(t, "yellow", news.RiskCategory.AlertLevel)
	assert.Equal(t, "Key threshold for urgent response", news.RiskCategory.Response)
}

func TestCalculateNEWS_MissingReadingsDoNotScore(t *testing.T) {
	vitals := VitalSigns{SpO2: f(98), Pulse: f(72)}

	news := CalculateNEWS(vitals)

	assert.Len(t, news.IndividualScores, 2)
	assert.Equal(t, 0, news.TotalScore)
}

func TestEngine_Analyze_NormalPatient(t *testing.T) {
	engine := NewEngine(LangEnglish)

	analysis := engine.Analyze("TEST_001", normalVitals())

	assert.Equal(t, "TEST_001", analysis.PatientID)
	assert.Empty(t, analysis.SensorErrors)
	assert.Equal(t, "green", analysis.FinalAlert.Level)
	assert.Equal(t, "routine_monitoring", analysis.FinalAlert.Action)
	assert.False(t, analysis.RequiresImmediateAttention)
	assert.NotNil(t, analysis.Additional.DiastolicBP)
	assert.Equal(t, "normal", analysis.Additional.DiastolicBP.Status)
	assert.Contains(t, analysis.Recommendations, "Vital signs are within acceptable range")
	assert.Contains(t, analysis.Recommendations, "Routine monitoring every 4-6 hours")
}

func TestEngine_Analyze_RespiratoryDistressIsCritical(t *testing.T) {
	engine := NewEngine(LangEnglish)
	vitals := VitalSigns{
		RespiratoryRate: f(28),
		SpO2:            f(89),
		SystolicBP:      f(110),
		DiastolicBP:     f(70),
		Pulse:           f(95),
		Temperature:     f(37.5),
	}

	analysis := engine.Analyze("TEST_002", vitals)

	assert.Equal(t, 8, analysis.NEWS.TotalScore)
	if assert.Len(t, analysis.Additional.CriticalCombinations, 1) {
		combo := analysis.Additional.CriticalCombinations[0]
		assert.Equal(t, "respiratory_distress", combo.Type)
		assert.Equal(t, "critical", combo.Severity)
	}
	assert.Equal(t, "critical", analysis.FinalAlert.Level)
	assert.Equal(t, "purple", analysis.FinalAlert.Color)
	assert.True(t, analysis.RequiresImmediateAttention)
	assert.Contains(t, analysis.Recommendations,
		"Low oxygen saturation combined with high respiratory rate - Immediate intervention required")
}

func TestEngine_Analyze_PotentialShock(t *testing.T) {
	engine := NewEngine(LangEnglish)
	vitals := VitalSigns{
		RespiratoryRate: f(22),
		SpO2:            f(94),
		SystolicBP:      f(85),
		DiastolicBP:     f(55),
		Pulse:           f(115),
		Temperature:     f(36.2),
	}

	analysis := engine.Analyze("TEST_003", vitals)

	if assert.Len(t, analysis.Additional.CriticalCombinations, 1) {
		assert.Equal(t, "potential_shock", analysis.Additional.CriticalCombinations[0].Type)
	}
	assert.Equal(t, "critical", analysis.FinalAlert.Level)
	assert.NotNil(t, analysis.Additional.DiastolicBP)
	assert.Equal(t, "hypotension", analysis.Additional.DiastolicBP.Status)
}

func TestEngine_Analyze_FeverWithTachycardiaIsHighNotCritical(t *testing.T) {
	engine := NewEngine(LangEnglish)
	vitals := VitalSigns{
		RespiratoryRate: f(20),
		SpO2:            f(96),
		SystolicBP:      f(130),
		DiastolicBP:     f(85),
		Pulse:           f(120),
		Temperature:     f(39.2),
	}

	analysis := engine.Analyze("TEST_004", vitals)

	// Sepsis consideration carries "high" severity, which does not force
	// the purple alert; the NEWS total here is still in the low band.
	if assert.Len(t, analysis.Additional.CriticalCombinations, 1) {
		combo := analysis.Additional.CriticalCombinations[0]
		assert.Equal(t, "potential_sepsis", combo.Type)
		assert.Equal(t, "high", combo.Severity)
	}
	assert.Equal(t, 4, analysis.NEWS.TotalScore)
	assert.Equal(t, "green", analysis.FinalAlert.Level)
	assert.False(t, analysis.RequiresImmediateAttention)
}

func TestEngine_Analyze_DisconnectedSensorsReportedAndExcluded(t *testing.T) {
	engine := NewEngine(LangEnglish)
	vitals := normalVitals()
	vitals.Pulse = nil

	analysis := engine.Analyze("TEST_005", vitals)

	if assert.Len(t, analysis.SensorErrors, 1) {
		assert.Equal(t, "Heart Rate", analysis.SensorErrors[0].Sensor)
		assert.Equal(t, "device_disconnected", analysis.SensorErrors[0].Error)
	}
	assert.NotContains(t, analysis.NEWS.IndividualScores, "pulse")
	assert.Nil(t, analysis.CleanedVitals.Pulse)
}

func TestEngine_Analyze_ImplausibleReadingNulled(t *testing.T) {
	engine := NewEngine(LangEnglish)
	vitals := normalVitals()
	vitals.SpO2 = f(20) // below any real oximeter reading

	analysis := engine.Analyze("TEST_006", vitals)

	if assert.Len(t, analysis.SensorErrors, 1) {
		assert.Equal(t, "SpO2", analysis.SensorErrors[0].Sensor)
		assert.Equal(t, "implausible_value: 20", analysis.SensorErrors[0].Error)
	}
	assert.Nil(t, analysis.CleanedVitals.SpO2)
	assert.NotContains(t, analysis.NEWS.IndividualScores, "spo2")
	// The fault must not leak into the score as a 3-point hypoxia.
	assert.Equal(t, 0, analysis.NEWS.TotalScore)
}

func TestEngine_Analyze_BloodPressurePairFaultsTogether(t *testing.T) {
	engine := NewEngine(LangEnglish)
	vitals := normalVitals()
	vitals.DiastolicBP = nil

	analysis := engine.Analyze("TEST_007", vitals)

	if assert.Len(t, analysis.SensorErrors, 1) {
		assert.Equal(t, "Blood Pressure", analysis.SensorErrors[0].Sensor)
	}
	assert.Nil(t, analysis.CleanedVitals.SystolicBP)
	assert.Nil(t, analysis.CleanedVitals.DiastolicBP)
	assert.Nil(t, analysis.Additional.DiastolicBP)
}

func TestEngine_Analyze_ArabicRecommendations(t *testing.T) {
	engine := NewEngine(LangArabic)

	analysis := engine.Analyze("TEST_008", normalVitals())

	assert.Contains(t, analysis.Recommendations, "العلامات الحيوية في المعدل المقبول")
	assert.Contains(t, analysis.Recommendations, "متابعة روتينية كل 4-6 ساعات")
}

func TestNewEngine_UnknownLanguageFallsBackToEnglish(t *testing.T) {
	engine := NewEngine(Language("fr"))
	assert.Equal(t, LangEnglish, engine.Language())
}

func TestDiastolicAssessmentBands(t *testing.T) {
	engine := NewEngine(LangEnglish)

	cases := []struct {
		name     string
		value    float64
		status   string
		severity string
	}{
		{"hypotension", 55, "hypotension", "medium"},
		{"normal low edge", 60, "normal", "low"},
		{"normal high edge", 99, "normal", "low"},
		{"moderate hypertension", 105, "moderate_hypertension", "medium"},
		{"severe hypertension", 115, "severe_hypertension", "high"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			vitals := normalVitals()
			vitals.DiastolicBP = f(tc.value)
			analysis := engine.Analyze("TEST_DBP", vitals)
			if assert.NotNil(t, analysis.Additional.DiastolicBP) {
				assert.Equal(t, tc.status, analysis.Additional.DiastolicBP.Status)
				assert.Equal(t, tc.severity, analysis.Additional.DiastolicBP.Severity)
			}
		})
	}
}
