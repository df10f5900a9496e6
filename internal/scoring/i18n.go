package scoring

import "strings"

// Recommendation texts keyed by rule, per language.
var recommendationTexts = map[string]map[Language]string{
	"urgent": {
		LangEnglish: "Urgent medical intervention required - call the doctor immediately",
		LangArabic:  "مطلوب تدخل طبي عاجل - اتصل بالطبيب فوراً",
	},
	"monitor_15": {
		LangEnglish: "Monitor vital signs every 15 minutes",
		LangArabic:  "مراقبة العلامات الحيوية كل 15 دقيقة",
	},
	"medium": {
		LangEnglish: "Medical evaluation required - see a doctor soon",
		LangArabic:  "مطلوب تقييم طبي - راجع الطبيب في أقرب وقت",
	},
	"monitor_30": {
		LangEnglish: "Monitor vital signs every 30 minutes",
		LangArabic:  "مراقبة العلامات الحيوية كل 30 دقيقة",
	},
	"normal": {
		LangEnglish: "Vital signs are within acceptable range",
		LangArabic:  "العلامات الحيوية في المعدل المقبول",
	},
	"routine": {
		LangEnglish: "Routine monitoring every 4-6 hours",
		LangArabic:  "متابعة روتينية كل 4-6 ساعات",
	},
	"critical_combo": {
		LangEnglish: "{desc} - Immediate intervention required",
		LangArabic:  "{desc} - تدخل فوري مطلوب",
	},
}

// Critical-combination descriptions per language.
var comboDescriptions = map[string]map[Language]string{
	"respiratory_distress": {
		LangEnglish: "Low oxygen saturation combined with high respiratory rate",
		LangArabic:  "انخفاض تشبع الأكسجين مع زيادة معدل التنفس",
	},
	"potential_shock": {
		LangEnglish: "Low blood pressure with compensatory tachycardia",
		LangArabic:  "ضغط دم منخفض مع سرعة ضربات القلب",
	},
	"potential_sepsis": {
		LangEnglish: "High fever with tachycardia - sepsis consideration",
		LangArabic:  "ارتفاع الحرارة مع سرعة ضربات القلب - احتمال عدوى خطيرة",
	},
}

func (e *Engine) text(key string) string {
	if byLang, ok := recommendationTexts[key]; ok {
		if s, ok := byLang[e.language]; ok {
			return s
		}
		return byLang[LangEnglish]
	}
	return key
}

func (e *Engine) textWithDesc(key, desc string) string {
	return strings.ReplaceAll(e.text(key), "{desc}", desc)
}

func (e *Engine) comboDescription(comboType string) string {
	if byLang, ok := comboDescriptions[comboType]; ok {
		if s, ok := byLang[e.language]; ok {
			return s
		}
		return byLang[LangEnglish]
	}
	return comboType
}
