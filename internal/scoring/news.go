package scoring

import (
	"math"
	"time"
)

// scoreBand maps an inclusive value range to a NEWS score.
type scoreBand struct {
	min   float64
	max   float64
	score int
}

// newsParameter holds the scoring bands for one vital sign.
type newsParameter struct {
	key       string
	parameter string
	bands     []scoreBand
}

// NEWS thresholds per the National Early Warning Score guideline.
var newsParameters = []newsParameter{
	{
		key:       "respiratory_rate",
		parameter: "Respiration rate (per minute)",
		bands: []scoreBand{
			{math.Inf(-1), 8, 3},
			{9, 11, 1},
			{12, 20, 0},
			{21, 24, 2},
			{25, math.Inf(1), 3},
		},
	},
	{
		key:       "spo2",
		parameter: "SpO2 (%)",
		bands: []scoreBand{
			{math.Inf(-1), 91, 3},
			{92, 93, 2},
			{94, 95, 1},
			{96, math.Inf(1), 0},
		},
	},
	{
		key:       "systolic_bp",
		parameter: "Systolic BP (mmHg)",
		bands: []scoreBand{
			{math.Inf(-1), 90, 3},
			{91, 100, 2},
			{101, 110, 1},
			{111, 219, 0},
			{220, math.Inf(1), 3},
		},
	},
	{
		key:       "pulse",
		parameter: "Pulse (per minute)",
		bands: []scoreBand{
			{math.Inf(-1), 40, 3},
			{41, 50, 1},
			{51, 90, 0},
			{91, 110, 1},
			{111, 130, 2},
			{131, math.Inf(1), 3},
		},
	},
	{
		key:       "temperature",
		parameter: "Temperature (°C)",
		bands: []scoreBand{
			{math.Inf(-1), 35.0, 3},
			{35.1, 36.0, 1},
			{36.1, 38.0, 0},
			{38.1, 39.0, 1},
			{39.1, math.Inf(1), 2},
		},
	},
}

// Risk categories by total NEWS score.
type riskBand struct {
	level      string
	min        float64
	max        float64
	response   string
	alertLevel string
}

var riskBands = []riskBand{
	{"low", 0, 4, "Ward-based response", "green"},
	{"medium", 5, 6, "Key threshold for urgent response", "yellow"},
	{"high", 7, math.Inf(1), "Urgent or emergency response", "red"},
}

// CalculateNEWS scores the present vital signs and classifies the total.
// Absent readings simply do not contribute; plausibility filtering is the
// caller's concern (see Engine.Analyze).
func CalculateNEWS(vitals VitalSigns) NEWSAnalysis {
	scores := make(map[string]ParameterScore)
	total := 0

	for _, param := range newsParameters {
		value := vitals.get(param.key)
		if value == nil {
			continue
		}
		score := param.scoreFor(*value)
		scores[param.key] = ParameterScore{
			Value:     *value,
			Score:     score,
			Parameter: param.parameter,
		}
		total += score
	}

	return NEWSAnalysis{
		IndividualScores: scores,
		TotalScore:       total,
		RiskCategory:     riskCategoryFor(total),
		Timestamp:        time.Now(),
	}
}

// scoreFor returns the band score for a value, or 0 when the value falls
// in a gap between integer band edges.
func (p newsParameter) scoreFor(value float64) int {
	for _, band := range p.bands {
		if band.min <= value && value <= band.max {
			return band.score
		}
	}
	return 0
}

func riskCategoryFor(total int) RiskCategory {
	for _, band := range riskBands {
		if band.min <= float64(total) && float64(total) <= band.max {
			return RiskCategory{
				Level:      band.level,
				Response:   band.response,
				AlertLevel: band.alertLevel,
				TotalScore: total,
			}
		}
	}
	return RiskCategory{Level: "unknown", Response: "Review required", AlertLevel: "gray", TotalScore: total}
}

// get resolves a flattened vital by its wire key.
func (v VitalSigns) get(key string) *float64 {
	switch key {
	case "respiratory_rate":
		return v.RespiratoryRate
	case "spo2":
		return v.SpO2
	case "systolic_bp":
		return v.SystolicBP
	case "diastolic_bp":
		return v.DiastolicBP
	case "pulse":
		return v.Pulse
	case "temperature":
		return v.Temperature
	}
	return nil
}
