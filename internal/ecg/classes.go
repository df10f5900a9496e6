package ecg

import "encoding/json"

// Class is an ECG beat classification, following the five-class
// arrhythmia taxonomy (MIT-BIH style grouping).
type Class int

const (
	ClassNormal Class = iota
	ClassSupraventricular
	ClassVentricular
	ClassFusion
	ClassUnknown
)

// LocalizedText carries a label in both supported report languages.
type LocalizedText struct {
	EN string `json:"en"`
	AR string `json:"ar"`
}

// Patient-facing class labels.
var classNames = map[Class]LocalizedText{
	ClassNormal: {
		EN: "Normal heartbeat",
		AR: "ضربات قلب طبيعية",
	},
	ClassSupraventricular: {
		EN: "Supraventricular arrhythmia (irregular beats above the ventricles)",
		AR: "عدم انتظام ضربات القلب فوق البطين (اضطراب في الجزء العلوي للقلب)",
	},
	ClassVentricular: {
		EN: "Ventricular arrhythmia (dangerous irregular beats from ventricles)",
		AR: "عدم انتظام ضربات القلب البطيني (خطير - من الجزء السفلي للقلب)",
	},
	ClassFusion: {
		EN: "Fusion beats (mixed signals between normal and abnormal beats)",
		AR: "ضربات قلب مدمجة (خليط بين الطبيعي وغير الطبيعي)",
	},
	ClassUnknown: {
		EN: "Unknown / Unclear signal",
		AR: "غير معروف / إشارة غير واضحة",
	},
}

// Risk level per class. Unknown is treated as high risk.
var classRiskLevels = map[Class]string{
	ClassNormal:           "low",
	ClassSupraventricular: "medium",
	ClassVentricular:      "high",
	ClassFusion:           "medium",
	ClassUnknown:          "high",
}

var classSlugs = map[Class]string{
	ClassNormal:           "normal",
	ClassSupraventricular: "supraventricular",
	ClassVentricular:      "ventricular",
	ClassFusion:           "fusion",
	ClassUnknown:          "unknown",
}

func (c Class) String() string {
	if slug, ok := classSlugs[c]; ok {
		return slug
	}
	return "unknown"
}

// MarshalJSON encodes the class as its slug so stored analysis documents
// stay readable.
func (c Class) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Class) UnmarshalJSON(data []byte) error {
	var slug string
	if err := json.Unmarshal(data, &slug); err != nil {
		return err
	}
	for class, s := range classSlugs {
		if s == slug {
			*c = class
			return nil
		}
	}
	*c = ClassUnknown
	return nil
}

// Name returns the bilingual label for the class.
func (c Class) Name() LocalizedText {
	if name, ok := classNames[c]; ok {
		return name
	}
	return classNames[ClassUnknown]
}

// RiskLevel returns low, medium or high for the class.
func (c Class) RiskLevel() string {
	if level, ok := classRiskLevels[c]; ok {
		return level
	}
	return "high"
}
