package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"mediguard-backend/internal/domain/entities"
	"mediguard-backend/internal/llm"
	"mediguard-backend/internal/scoring"
)

// Mentioning any of these always routes to the medical branch, skipping
// the LLM classifier.
var vitalKeywords = []string{
	"blood pressure", "bp", "heart rate", "hr", "temperature", "temp",
	"spo2", "oxygen", "respiratory", "ecg", "ekg", "electrocardiogram", "pulse rate",
	"ضغط الدم", "النبض", "معدل ضربات القلب", "درجة الحرارة", "الأكسجين",
	"معدل التنفس", "رسم القلب", "مخطط كهربية القلب", "مخطط القلب", "حرارة",
}

var summaryKeywords = []string{"باختصار", "ملخص", "summary", "brief", "summarize", "overall"}

// ChatServiceImpl implements ChatServiceContract on top of the LLM
// client and the report generator.
type ChatServiceImpl struct {
	llmClient     llm.Client
	reportService ReportServiceContract
	logger        *log.Logger
}

// NewChatService creates a new ChatServiceImpl.
func NewChatService(llmClient llm.Client, reportService ReportServiceContract, logger *log.Logger) ChatServiceContract {
	return &ChatServiceImpl{llmClient: llmClient, reportService: reportService, logger: logger}
}

// DetectLanguage returns Arabic when the text contains any Arabic
// codepoint, English otherwise.
func DetectLanguage(text string) scoring.Language {
	if containsArabic(text) {
		return scoring.LangArabic
	}
	return scoring.LangEnglish
}

// Chat classifies the message and dispatches it: canned greeting and
// farewell replies, a rule-based report or summary for status requests,
// a contextual LLM answer for medical and lifestyle questions, and a
// polite refusal for everything else.
func (s *ChatServiceImpl) Chat(ctx context.Context, patient *entities.Patient, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "من فضلك اسأل سؤال طبي محدد.", nil
	}
	lang := DetectLanguage(message)

	category := s.classify(ctx, message, lang)

	switch category {
	case "greeting":
		if lang == scoring.LangArabic {
			return "مرحباً! كيف يمكنني مساعدتك اليوم؟", nil
		}
		return "Hello! How can I help you today?", nil

	case "farewell":
		if lang == scoring.LangArabic {
			return "وداعاً! نتمنى لك صحة جيدة.", nil
		}
		return "Goodbye! Wishing you good health.", nil

	case "status_report":
		if patient == nil {
			if lang == scoring.LangArabic {
				return "لم يتم العثور على بيانات المريض", nil
			}
			return "Patient data not found", nil
		}
		if containsAny(message, summaryKeywords) {
			return s.reportService.GenerateSummary(ctx, patient, lang)
		}
		return s.reportService.GenerateReport(ctx, patient, lang)

	case "medical_question", "lifestyle_question":
		return s.answerMedical(ctx, patient, message, lang)
	}

	if lang == scoring.LangArabic {
		return "آسف، يمكنني فقط الإجابة على الأسئلة المتعلقة بالصحة.", nil
	}
	return "I'm sorry, I can only answer health-related questions.", nil
}

// classify buckets the message into one of the supported categories.
// Classifier failures degrade to non_medical.
func (s *ChatServiceImpl) classify(ctx context.Context, message string, lang scoring.Language) string {
	if containsAny(message, vitalKeywords) {
		return "medical_question"
	}

	var prompt string
	if lang == scoring.LangArabic {
		prompt = fmt.Sprintf(`صنّف النص التالي إلى واحد فقط من التصنيفات:
- medical_question
- status_report
- lifestyle_question
- non_medical
- greeting
- farewell

النص: "%s"
جاوب بكلمة واحدة فقط.`, message)
	} else {
		prompt = fmt.Sprintf(`Classify the following text into one of:
- medical_question
- status_report
- lifestyle_question
- non_medical
- greeting
- farewell

Text: "%s"
Answer with ONLY one category.`, message)
	}

	result, err := s.llmClient.Complete(ctx, "You are an assistant that classifies user questions.", prompt)
	if err != nil || result == "" {
		if err != nil {
			s.logger.Printf("Question classification failed: %v", err)
		}
		return "non_medical"
	}
	return strings.ToLower(strings.TrimSpace(result))
}

func (s *ChatServiceImpl) answerMedical(ctx context.Context, patient *entities.Patient, message string, lang scoring.Language) (string, error) {
	var basePrompt string
	if lang == scoring.LangArabic {
		basePrompt = `أنت مساعد صحي ذكي وشخصي متخصص. ردّ بالعربية فقط.
مهمتك إعطاء إجابات طبية أو متعلقة بأسلوب الحياة بصيغة الغائب فقط عن حالة المريض (المريض/هو).
راعِ بيانات المريض الحالية في كل إجابة. قدّم نصيحة مناسبة لحالته فقط.`
	} else {
		basePrompt = `You are a smart medical assistant, personalized health assistant.
All responses must be in THIRD PERSON about the patient.
Never use second-person phrases like "you" or "your". Always say: "The patient..." / "His condition..."
Reply in English ONLY. Always consider the patient's current condition before giving advice.`
	}

	prompt := basePrompt
	if patient != nil {
		prompt += "\n\n" + patientContext(patient, lang)
	}

	asks := "Patient asks"
	concisely := "Answer concisely"
	if lang == scoring.LangArabic {
		asks = "المريض يسأل"
		concisely = "أجب بشكل مختصر"
	}
	prompt += fmt.Sprintf("\n\n%s: %s\n\n%s.", asks, message, concisely)

	reply, err := s.llmClient.Complete(ctx, llm.DefaultSystemPrompt, prompt)
	if err != nil {
		s.logger.Printf("Chat LLM call failed: %v", err)
		if lang == scoring.LangArabic {
			return "عذراً، لا أستطيع الإجابة الآن. حاول مرة أخرى لاحقاً.", nil
		}
		return "Sorry, I cannot answer right now. Please try again later.", nil
	}
	return reply, nil
}

// patientContext renders the stored patient record into the prompt
// block the model sees.
func patientContext(patient *entities.Patient, lang scoring.Language) string {
	vitals := storedVitals(patient)

	ecgName := "Not available"
	risk := "N/A"
	if doc := lastAnalysisOf(patient); doc != nil {
		if doc.ECGAnalysis != nil {
			if lang == scoring.LangArabic {
				ecgName = doc.ECGAnalysis.ClassName.AR
			} else {
				ecgName = doc.ECGAnalysis.ClassName.EN
			}
		}
		if doc.CombinedAssessment.CombinedRiskLevel != "" {
			risk = doc.CombinedAssessment.CombinedRiskLevel
		}
	}

	chronic := strings.Join(patient.ChronicConditionList(), ", ")

	if lang == scoring.LangArabic {
		if chronic == "" {
			chronic = "لا يوجد"
		}
		if ecgName == "Not available" {
			ecgName = "غير متوفر"
		}
		return fmt.Sprintf(`بيانات المريض:
- الاسم: %s، العمر: %d، الجنس: %s
- الأمراض المزمنة: %s
- الملاحظات: %s
- النبض: %s نبضة/دقيقة
- ضغط الدم: %s/%s ملم زئبقي
- الأكسجين: %s%%
- الحرارة: %s°C
- رسم القلب: %s
- مستوى الخطر: %s`,
			patient.Name, patient.Age, patient.Gender, chronic, patient.Notes,
			valueOrNA(vitals.Pulse), valueOrNA(vitals.SystolicBP), valueOrNA(vitals.DiastolicBP),
			valueOrNA(vitals.SpO2), valueOrNA(vitals.Temperature), ecgName, risk)
	}

	if chronic == "" {
		chronic = "None"
	}
	return fmt.Sprintf(`Patient data:
- Name: %s, Age: %d, Gender: %s
- Chronic: %s
- Notes: %s
- HR: %s bpm, BP: %s/%s mmHg
- SpO2: %s%%, Temp: %s°C
- ECG: %s
- Risk: %s`,
		patient.Name, patient.Age, patient.Gender, chronic, patient.Notes,
		valueOrNA(vitals.Pulse), valueOrNA(vitals.SystolicBP), valueOrNA(vitals.DiastolicBP),
		valueOrNA(vitals.SpO2), valueOrNA(vitals.Temperature), ecgName, risk)
}

func containsAny(text string, keywords []string) bool {
	lowered := strings.ToLower(text)
	for _, keyword := range keywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
