package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"

	"mediguard-backend/internal/domain/dtos"
	"mediguard-backend/internal/domain/entities"
	"mediguard-backend/internal/llm"
	"mediguard-backend/internal/scoring"
)

// Vitals section ordering for report output; map iteration order is not
// stable in Go.
var reportVitalOrder = []string{"respiratory_rate", "spo2", "systolic_bp", "pulse", "temperature"}

var (
	bulletPrefixRe = regexp.MustCompile(`^[\s\-\*•\d\.]+`)
	arabicNoiseRe  = regexp.MustCompile(`[^\x{0600}-\x{06FF}a-zA-Z0-9\s\.,;:!?()%$@#&*\-+=\[\]{}/°]`)
)

// ReportServiceImpl implements ReportServiceContract.
type ReportServiceImpl struct {
	llmClient llm.Client
	logger    *log.Logger
}

// NewReportService creates a new ReportServiceImpl.
func NewReportService(llmClient llm.Client, logger *log.Logger) ReportServiceContract {
	return &ReportServiceImpl{llmClient: llmClient, logger: logger}
}

// GenerateReport builds the structured bilingual report for a patient's
// stored vitals. LLM recommendations are appended best effort; a failing
// LLM never blocks the rule-based report.
func (s *ReportServiceImpl) GenerateReport(ctx context.Context, patient *entities.Patient, lang scoring.Language) (string, error) {
	if patient == nil {
		if lang == scoring.LangArabic {
			return "", fmt.Errorf("لم يتم العثور على بيانات المريض")
		}
		return "", fmt.Errorf("patient data not found")
	}

	engine := scoring.NewEngine(lang)
	analysis := engine.Analyze(patient.Code, storedVitals(patient))

	var positives, warnings, notes []string

	for _, key := range reportVitalOrder {
		details, ok := analysis.NEWS.IndividualScores[key]
		if !ok {
			continue
		}
		param := translatePhrase(details.Parameter, lang)
		switch {
		case details.Score == 0:
			positives = append(positives, fmt.Sprintf("%s %s (%g)", param, translatePhrase("normal", lang), details.Value))
		case details.Score >= 2:
			warnings = append(warnings, fmt.Sprintf("%s %s (%g) - %s", param,
				translatePhrase("abnormal", lang), details.Value, translatePhrase("needs intervention", lang)))
		default:
			notes = append(notes, fmt.Sprintf("%s %s (%g)", param, translatePhrase("needs monitoring", lang), details.Value))
		}
	}

	if dbp := analysis.Additional.DiastolicBP; dbp != nil {
		param := translatePhrase("Diastolic BP", lang)
		if dbp.Status == "normal" {
			positives = append(positives, fmt.Sprintf("%s %s (%g)", param, translatePhrase("normal", lang), dbp.Value))
		} else {
			warnings = append(warnings, fmt.Sprintf("%s %s (%g)", param, translatePhrase(dbp.Status, lang), dbp.Value))
		}
	}

	for _, combo := range analysis.Additional.CriticalCombinations {
		warnings = append(warnings, combo.Description)
	}
	warnings = append(warnings, sensorErrorMessages(analysis.SensorErrors, lang)...)

	recommendations := make([]string, 0, len(analysis.Recommendations))
	for _, rec := range analysis.Recommendations {
		recommendations = append(recommendations, translatePhrase(rec, lang))
	}

	name := s.normalizeName(ctx, patient.Name, lang)
	gender := normalizeGender(patient.Gender, lang)
	riskLevel := translatePhrase(analysis.NEWS.RiskCategory.Level, lang)

	report := buildReportText(lang, reportData{
		name:            name,
		age:             patient.Age,
		gender:          gender,
		riskLevel:       riskLevel,
		positives:       positives,
		warnings:        warnings,
		notes:           notes,
		recommendations: recommendations,
	})

	if smartRecs, err := s.SmartRecommendations(ctx, patient, lang); err != nil {
		s.logger.Printf("Smart recommendations unavailable for patient %s: %v", patient.Code, err)
	} else if len(smartRecs) > 0 {
		header := "Recommendations:"
		if lang == scoring.LangArabic {
			header = "توصيات:"
		}
		report += "\n\n" + header
		for _, rec := range smartRecs {
			report += "\n- " + translatePhrase(rec, lang)
		}
	}

	return strings.TrimSpace(report), nil
}

// GenerateSummary condenses the full report into a short third-person
// summary via the LLM.
func (s *ReportServiceImpl) GenerateSummary(ctx context.Context, patient *entities.Patient, lang scoring.Language) (string, error) {
	report, err := s.GenerateReport(ctx, patient, lang)
	if err != nil {
		return "", err
	}

	var prompt string
	if lang == scoring.LangArabic {
		prompt = fmt.Sprintf(`هذه بيانات حالة المريض بالتفصيل:

%s

المطلوب:
- أعطِ ملخص قصير (2-3 جمل) عن حالة المريض بصيغة الغائب.
- وضّح الحالة العامة (جيدة/مستقرة/بحاجة متابعة...) مع أهم الملاحظات فقط.
- لا تُكرر النص الحرفي، اكتبه بصياغتك.`, report)
	} else {
		prompt = fmt.Sprintf(`Here is the full detailed patient report:

%s

Task:
- Provide a short summary (2-3 sentences) of the patient's condition in third-person.
- Describe the overall health status (e.g. stable / good / needs close monitoring) with only the key points.
- Do not copy-paste; rephrase naturally.`, report)
	}

	summary, err := s.llmClient.Complete(ctx, "", prompt)
	if err != nil {
		return "", fmt.Errorf("generating summary: %w", err)
	}
	return summary, nil
}

// SmartRecommendations asks the LLM for three case-specific
// recommendations grounded strictly in the provided patient data.
func (s *ReportServiceImpl) SmartRecommendations(ctx context.Context, patient *entities.Patient, lang scoring.Language) ([]string, error) {
	if patient == nil {
		return nil, fmt.Errorf("patient data not found")
	}

	vitals := storedVitals(patient)
	ecgClass := "Not available"
	riskLevel := "medium"
	if doc := lastAnalysisOf(patient); doc != nil {
		if doc.ECGAnalysis != nil {
			ecgClass = doc.ECGAnalysis.ClassName.EN
		}
		if doc.CombinedAssessment.CombinedRiskLevel != "" {
			riskLevel = doc.CombinedAssessment.CombinedRiskLevel
		}
	}

	prompt := fmt.Sprintf(`As a specialist doctor, provide 3 additional specific and precise medical recommendations
for this patient's case based on the following data:

Patient: %s, Age: %d, Gender: %s
Chronic conditions: %s

Vital signs:
- Heart rate: %s bpm
- Blood pressure: %s/%s mmHg
- SpO2: %s%%
- Temperature: %s°C
- Respiratory rate: %s breaths/min

ECG analysis: %s
Risk level: %s

IMPORTANT RULES:
- ALWAYS write in third person about the patient.
- Example: "The patient should..." NOT "You should..."
- ONLY base recommendations on the data given above.
- If some information (such as weight, BMI, HbA1c, cholesterol) is not provided, DO NOT assume or mention it.
- Present 3 bullet points. No intro or conclusion.
- Recommendations must directly reference the provided values and conditions only.`,
		patient.Name, patient.Age, patient.Gender,
		strings.Join(patient.ChronicConditionList(), ", "),
		valueOrNA(vitals.Pulse), valueOrNA(vitals.SystolicBP), valueOrNA(vitals.DiastolicBP),
		valueOrNA(vitals.SpO2), valueOrNA(vitals.Temperature), valueOrNA(vitals.RespiratoryRate),
		ecgClass, riskLevel)

	reply, err := s.llmClient.Complete(ctx, "", prompt)
	if err != nil {
		return nil, fmt.Errorf("generating smart recommendations: %w", err)
	}
	recs := cleanBullets(strings.Split(reply, "\n"))

	if lang == scoring.LangArabic && len(recs) > 0 {
		translationPrompt := "ترجم النقاط التالية إلى العربية باحتفاظ بالمعنى الطبي (لا تضيف نجوم أو أي رموز للتنسيق):\n" +
			strings.Join(recs, "\n")
		translated, err := s.llmClient.Complete(ctx, "", translationPrompt)
		if err != nil {
			return nil, fmt.Errorf("translating smart recommendations: %w", err)
		}
		arRecs := cleanBullets(strings.Split(translated, "\n"))
		for i, rec := range arRecs {
			arRecs[i] = strings.TrimSpace(arabicNoiseRe.ReplaceAllString(rec, ""))
		}
		return nonEmpty(arRecs), nil
	}

	return recs, nil
}

// normalizeName translates the patient name to the report script when it
// is written in the other one. Failures keep the original name.
func (s *ReportServiceImpl) normalizeName(ctx context.Context, name string, lang scoring.Language) string {
	if name == "" || name == "Unknown" {
		return name
	}

	var prompt string
	switch {
	case lang == scoring.LangEnglish && containsArabic(name):
		prompt = "Translate the following name into English only, no extra text: " + name
	case lang == scoring.LangArabic && containsLatin(name):
		prompt = "ترجم الاسم التالي إلى العربية فقط بدون أي إضافات: " + name
	default:
		return name
	}

	translated, err := s.llmClient.Complete(ctx, "", prompt)
	if err != nil || translated == "" {
		return name
	}
	return translated
}

type reportData struct {
	name            string
	age             int
	gender          string
	riskLevel       string
	positives       []string
	warnings        []string
	notes           []string
	recommendations []string
}

func buildReportText(lang scoring.Language, data reportData) string {
	var b strings.Builder

	type section struct {
		header string
		items  []string
	}

	if lang == scoring.LangArabic {
		fmt.Fprintf(&b, "تحليل شامل لحالة المريض\n\n")
		fmt.Fprintf(&b, "المريض: %s\nالعمر: %d\nالجنس: %s\n\n", data.name, data.age, data.gender)
		fmt.Fprintf(&b, "مستوى الخطر العام: %s\n\nتقييم القراءات الحيوية", data.riskLevel)
		sections := []section{
			{"مؤشرات إيجابية:", data.positives},
			{"تحذيرات:", data.warnings},
			{"مؤشرات تحتاج متابعة:", data.notes},
			{"توصيات للحفاظ على المستوى:", data.recommendations},
		}
		for _, sec := range sections {
			writeSection(&b, sec.header, sec.items)
		}
		b.WriteString("\n\nملاحظة طبية\n- يُنصح بأن يستمر المريض في القياسات الدورية\n- يجب متابعة أي تغييرات مفاجئة في حالة المريض\n- يُفضّل الاحتفاظ بسجل القراءات الخاصة بالمريض")
		return b.String()
	}

	fmt.Fprintf(&b, "Comprehensive Patient Analysis\n\n")
	fmt.Fprintf(&b, "Patient: %s\nAge: %d\nGender: %s\n\n", data.name, data.age, data.gender)
	fmt.Fprintf(&b, "Overall Risk Level: %s\n\nVital Signs Evaluation", data.riskLevel)
	sections := []section{
		{"Positive Health Indicators:", data.positives},
		{"Urgent Warnings:", data.warnings},
		{"Observations for Monitoring:", data.notes},
		{"Recommendations to Maintain Level:", data.recommendations},
	}
	for _, sec := range sections {
		writeSection(&b, sec.header, sec.items)
	}
	b.WriteString("\n\nMedical Note\n- Continue regular monitoring\n- Watch for sudden changes\n- Keep a record of readings")
	return b.String()
}

func writeSection(b *strings.Builder, header string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString("\n\n" + header)
	for _, item := range items {
		b.WriteString("\n- " + item)
	}
}

// sensorErrorMessages localizes sensor faults into patient-facing text.
func sensorErrorMessages(errors []scoring.SensorError, lang scoring.Language) []string {
	var messages []string
	for _, err := range errors {
		disconnected := strings.Contains(err.Error, "disconnected")
		if lang == scoring.LangArabic {
			sensor := translatePhrase(err.Sensor, lang)
			if disconnected {
				messages = append(messages, fmt.Sprintf("جهاز %s غير متصل. رجاءً تأكد من تشغيله وتوصيله بشكل صحيح.", sensor))
			} else {
				messages = append(messages, fmt.Sprintf("السنسور الخاص بـ %s غير مركب بشكل صحيح. تأكد من تركيبه فى المكان الصحيح.", sensor))
			}
		} else {
			if disconnected {
				messages = append(messages, fmt.Sprintf("%s device is not connected. Please check the device connection.", err.Sensor))
			} else {
				messages = append(messages, fmt.Sprintf("The sensor for %s seems improperly attached or giving implausible readings. Please reattach correctly.", err.Sensor))
			}
		}
	}
	return messages
}

// storedVitals parses the patient's last raw vitals payload into the
// flat scoring form.
func storedVitals(patient *entities.Patient) scoring.VitalSigns {
	var payload dtos.VitalsPayload
	if len(patient.Vitals) > 0 {
		if err := json.Unmarshal(patient.Vitals, &payload); err != nil {
			return scoring.VitalSigns{}
		}
	}
	request := dtos.AnalyzePatientRequest{Vitals: payload}
	return request.FlattenVitals()
}

// lastAnalysisOf decodes the stored analysis document, or nil.
func lastAnalysisOf(patient *entities.Patient) *IntegratedAnalysis {
	if len(patient.LastAnalysis) == 0 {
		return nil
	}
	var doc IntegratedAnalysis
	if err := json.Unmarshal(patient.LastAnalysis, &doc); err != nil {
		return nil
	}
	return &doc
}

func valueOrNA(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%g", *v)
}

func cleanBullets(lines []string) []string {
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = bulletPrefixRe.ReplaceAllString(line, "")
		line = strings.ReplaceAll(line, "**", "")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return cleaned
}

func nonEmpty(lines []string) []string {
	var kept []string
	for _, line := range lines {
		if line != "" {
			kept = append(kept, line)
		}
	}
	return kept
}
