package ecg

import "fmt"

// Result is the outcome of classifying one beat window.
type Result struct {
	Class      Class         `json:"class"`
	ClassName  LocalizedText `json:"class_name"`
	Confidence float64       `json:"confidence"`
	RiskLevel  string        `json:"risk_level"`
	Error      string        `json:"error,omitempty"`
}

// Analyzer classifies an ECG beat window. The heuristic classifier below
// is the default; a model-server client can implement the same interface.
type Analyzer interface {
	Analyze(signal []float64) (Result, error)
}

// minSignalLength is the shortest window the classifier accepts. The
// device protocol sends 187-sample beat windows.
const minSignalLength = 32

// Decision thresholds on the normalized beat features.
const (
	ventricularJitter = 0.30
	fusionJitter      = 0.15
	supraPeakCount    = 5
)

// HeuristicClassifier is a deterministic feature-based classifier: it
// min-max normalizes the window and decides on morphology roughness and
// peak multiplicity.
type HeuristicClassifier struct{}

func NewHeuristicClassifier() *HeuristicClassifier {
	return &HeuristicClassifier{}
}

// Analyze classifies one beat window. Windows that are too short are an
// error; flat windows classify as unknown with zero confidence.
func (c *HeuristicClassifier) Analyze(signal []float64) (Result, error) {
	if len(signal) < minSignalLength {
		return Result{}, fmt.Errorf("ecg signal too short: %d samples, need at least %d", len(signal), minSignalLength)
	}

	normalized, ok := normalize(signal)
	if !ok {
		return resultFor(ClassUnknown, 0), nil
	}

	features := extractFeatures(normalized)

	switch {
	case features.jitter > ventricularJitter:
		return resultFor(ClassVentricular, min(0.95, 0.5+features.jitter)), nil
	case features.jitter > fusionJitter:
		return resultFor(ClassFusion, 0.6), nil
	case features.peakCount >= supraPeakCount:
		return resultFor(ClassSupraventricular, min(0.9, 0.5+float64(features.peakCount)/20)), nil
	default:
		return resultFor(ClassNormal, 0.85), nil
	}
}

// ErrorResult mirrors the analyzer failure behavior: an unreadable signal
// is treated as unknown at high risk rather than dropped.
func ErrorResult(err error) Result {
	r := resultFor(ClassUnknown, 0)
	r.ClassName = LocalizedText{EN: "Error in ECG Analysis", AR: "خطأ في تحليل تخطيط القلب"}
	r.Error = err.Error()
	return r
}

func resultFor(class Class, confidence float64) Result {
	return Result{
		Class:      class,
		ClassName:  class.Name(),
		Confidence: confidence,
		RiskLevel:  class.RiskLevel(),
	}
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
