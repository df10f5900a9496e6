package services

import (
	"strings"

	"mediguard-backend/internal/scoring"
)

// phrasePair is one ordered replacement; longer phrases must come before
// their substrings.
type phrasePair struct {
	en string
	ar string
}

var reportPhrases = []phrasePair{
	{"Respiration rate (per minute)", "معدل التنفس (في الدقيقة)"},
	{"Respiratory rate", "معدل التنفس"},
	{"SpO2 (%)", "الأكسجين (%)"},
	{"SpO2", "الأكسجين"},
	{"Systolic BP (mmHg)", "ضغط الدم الانقباضي (ملم زئبق)"},
	{"Diastolic BP", "ضغط الدم الانبساطي (ملم زئبق)"},
	{"Blood Pressure", "ضغط الدم"},
	{"Pulse (per minute)", "النبض (في الدقيقة)"},
	{"Pulse", "النبض"},
	{"Temperature (°C)", "درجة الحرارة (°م)"},
	{"Temperature", "درجة الحرارة"},
	{"abnormal", "غير طبيعي"},
	{"normal", "طبيعي"},
	{"needs intervention", "يحتاج تدخل"},
	{"needs monitoring", "يحتاج مراقبة"},
	{"low", "منخفض"},
	{"medium", "متوسط"},
	{"high", "مرتفع"},
}

// translatePhrase localizes English report fragments into Arabic. English
// output passes through unchanged.
func translatePhrase(text string, lang scoring.Language) string {
	if lang != scoring.LangArabic {
		return text
	}
	for _, pair := range reportPhrases {
		text = strings.ReplaceAll(text, pair.en, pair.ar)
	}
	return text
}

// containsArabic reports whether text has any character in the Arabic
// Unicode block.
func containsArabic(text string) bool {
	for _, r := range text {
		if r >= 0x0600 && r <= 0x06FF {
			return true
		}
	}
	return false
}

// containsLatin reports whether text has any ASCII letter.
func containsLatin(text string) bool {
	for _, r := range text {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
			return true
		}
	}
	return false
}

// normalizeGender maps free-form gender values onto a label in the
// report language.
func normalizeGender(raw string, lang scoring.Language) string {
	unspecified := "unspecified"
	if lang == scoring.LangArabic {
		unspecified = "غير محدد"
	}

	g := strings.ToLower(strings.TrimSpace(raw))
	if g == "" {
		return unspecified
	}

	maleValues := map[string]bool{"male": true, "m": true, "ذكر": true, "man": true, "masculine": true}
	femaleValues := map[string]bool{"female": true, "f": true, "أنثى": true, "woman": true, "feminine": true}

	switch {
	case maleValues[g]:
		if lang == scoring.LangArabic {
			return "ذكر"
		}
		return "male"
	case femaleValues[g]:
		if lang == scoring.LangArabic {
			return "أنثى"
		}
		return "female"
	}
	return unspecified
}
