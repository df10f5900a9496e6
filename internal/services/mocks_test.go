package services

import (
	"context"
	"errors"
	"sync/atomic"

	"mediguard-backend/internal/adapters"
	"mediguard-backend/internal/domain/entities"
	"mediguard-backend/internal/domain/repositories"
	"mediguard-backend/internal/ecg"
	"mediguard-backend/internal/llm"
	"mediguard-backend/internal/scoring"

	"github.com/google/uuid"
)

// --- MockPatientRepository ---
var _ repositories.PatientRepositoryContract = (*MockPatientRepository)(nil)

// MockPatientRepository is a mock implementation of PatientRepositoryContract.
type MockPatientRepository struct {
	CreateFunc     func(ctx context.Context, patient *entities.Patient) error
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*entities.Patient, error)
	FindByCodeFunc func(ctx context.Context, code string) (*entities.Patient, error)
	UpdateFunc     func(ctx context.Context, patient *entities.Patient) error
	DeleteFunc     func(ctx context.Context, id uuid.UUID) error
	ListAllFunc    func(ctx context.Context) ([]*entities.Patient, error)

	CreateFuncCallCount int32
	UpdateFuncCallCount int32
}

func (m *MockPatientRepository) Create(ctx context.Context, patient *entities.Patient) error {
	atomic.AddInt32(&m.CreateFuncCallCount, 1)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, patient)
	}
	return nil
}

func (m *MockPatientRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Patient, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, errors.New("GetByIDFunc not implemented in mock")
}

func (m *MockPatientRepository) FindByCode(ctx context.Context, code string) (*entities.Patient, error) {
	if m.FindByCodeFunc != nil {
		return m.FindByCodeFunc(ctx, code)
	}
	return nil, nil
}

func (m *MockPatientRepository) Update(ctx context.Context, patient *entities.Patient) error {
	atomic.AddInt32(&m.UpdateFuncCallCount, 1)
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, patient)
	}
	return nil
}

func (m *MockPatientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return errors.New("DeleteFunc not implemented in mock")
}

func (m *MockPatientRepository) ListAll(ctx context.Context) ([]*entities.Patient, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

// --- MockAssessmentRepository ---
var _ repositories.AssessmentRepositoryContract = (*MockAssessmentRepository)(nil)

// MockAssessmentRepository is a mock implementation of AssessmentRepositoryContract.
type MockAssessmentRepository struct {
	CreateFunc          func(ctx context.Context, assessment *entities.Assessment) error
	GetByIDFunc         func(ctx context.Context, id uuid.UUID) (*entities.Assessment, error)
	FindByPatientIDFunc func(ctx context.Context, patientID uuid.UUID) ([]*entities.Assessment, error)
	DeleteFunc          func(ctx context.Context, id uuid.UUID) error

	CreateFuncCallCount int32
}

func (m *MockAssessmentRepository) Create(ctx context.Context, assessment *entities.Assessment) error {
	atomic.AddInt32(&m.CreateFuncCallCount, 1)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, assessment)
	}
	return nil
}

func (m *MockAssessmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Assessment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, errors.New("GetByIDFunc not implemented in mock")
}

func (m *MockAssessmentRepository) FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]*entities.Assessment, error) {
	if m.FindByPatientIDFunc != nil {
		return m.FindByPatientIDFunc(ctx, patientID)
	}
	return nil, nil
}

func (m *MockAssessmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return errors.New("DeleteFunc not implemented in mock")
}

// --- MockQueueAdapter ---
var _ adapters.QueueAdapter = (*MockQueueAdapter)(nil)

// MockQueueAdapter is a mock implementation of adapters.QueueAdapter.
type MockQueueAdapter struct {
	PublishFunc        func(ctx context.Context, queueName string, jobData []byte) error
	StartConsumingFunc func(ctx context.Context, queueName string, handler adapters.JobHandler) error
	StopConsumingFunc  func(ctx context.Context, queueName string) error

	PublishFuncCallCount int32
	PublishedJobs        [][]byte
}

func (m *MockQueueAdapter) Publish(ctx context.Context, queueName string, jobData []byte) error {
	atomic.AddInt32(&m.PublishFuncCallCount, 1)
	m.PublishedJobs = append(m.PublishedJobs, jobData)
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, queueName, jobData)
	}
	return nil
}

func (m *MockQueueAdapter) StartConsuming(ctx context.Context, queueName string, handler adapters.JobHandler) error {
	if m.StartConsumingFunc != nil {
		return m.StartConsumingFunc(ctx, queueName, handler)
	}
	return nil
}

func (m *MockQueueAdapter) StopConsuming(ctx context.Context, queueName string) error {
	if m.StopConsumingFunc != nil {
		return m.StopConsumingFunc(ctx, queueName)
	}
	return nil
}

// --- MockAlertPublisher ---
var _ AlertPublisherContract = (*MockAlertPublisher)(nil)

// MockAlertPublisher records alerts handed to it.
type MockAlertPublisher struct {
	PublishAlertFunc func(ctx context.Context, alert AlertJobData) error

	PublishedAlerts []AlertJobData
}

func (m *MockAlertPublisher) PublishAlert(ctx context.Context, alert AlertJobData) error {
	m.PublishedAlerts = append(m.PublishedAlerts, alert)
	if m.PublishAlertFunc != nil {
		return m.PublishAlertFunc(ctx, alert)
	}
	return nil
}

// --- MockLLMClient ---
var _ llm.Client = (*MockLLMClient)(nil)

// MockLLMClient is a mock implementation of llm.Client.
type MockLLMClient struct {
	CompleteFunc func(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	Prompts []string
}

func (m *MockLLMClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.Prompts = append(m.Prompts, userPrompt)
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, systemPrompt, userPrompt)
	}
	return "", errors.New("CompleteFunc not implemented in mock")
}

// --- MockECGAnalyzer ---
var _ ecg.Analyzer = (*MockECGAnalyzer)(nil)

// MockECGAnalyzer is a mock implementation of ecg.Analyzer.
type MockECGAnalyzer struct {
	AnalyzeFunc func(signal []float64) (ecg.Result, error)
}

func (m *MockECGAnalyzer) Analyze(signal []float64) (ecg.Result, error) {
	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(signal)
	}
	return ecg.Result{}, errors.New("AnalyzeFunc not implemented in mock")
}

// --- MockReportService ---
var _ ReportServiceContract = (*MockReportService)(nil)

// MockReportService is a mock implementation of ReportServiceContract.
type MockReportService struct {
	GenerateReportFunc       func(ctx context.Context, patient *entities.Patient, lang scoring.Language) (string, error)
	GenerateSummaryFunc      func(ctx context.Context, patient *entities.Patient, lang scoring.Language) (string, error)
	SmartRecommendationsFunc func(ctx context.Context, patient *entities.Patient, lang scoring.Language) ([]string, error)
}

func (m *MockReportService) GenerateReport(ctx context.Context, patient *entities.Patient, lang scoring.Language) (string, error) {
	if m.GenerateReportFunc != nil {
		return m.GenerateReportFunc(ctx, patient, lang)
	}
	return "", errors.New("GenerateReportFunc not implemented in mock")
}

func (m *MockReportService) GenerateSummary(ctx context.Context, patient *entities.Patient, lang scoring.Language) (string, error) {
	if m.GenerateSummaryFunc != nil {
		return m.GenerateSummaryFunc(ctx, patient, lang)
	}
	return "", errors.New("GenerateSummaryFunc not implemented in mock")
}

func (m *MockReportService) SmartRecommendations(ctx context.Context, patient *entities.Patient, lang scoring.Language) ([]string, error) {
	if m.SmartRecommendationsFunc != nil {
		return m.SmartRecommendationsFunc(ctx, patient, lang)
	}
	return nil, errors.New("SmartRecommendationsFunc not implemented in mock")
}
