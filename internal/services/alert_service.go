package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"mediguard-backend/internal/adapters"

	"github.com/google/uuid"
)

// PatientAlertQueue is the queue carrying critical-alert jobs.
const PatientAlertQueue = "patient_alert_jobs"

// AlertServiceImpl implements AlertServiceContract on top of the queue
// adapter. Dispatch currently goes to the structured log; a pager or
// notification gateway would hang off handleAlertJob.
type AlertServiceImpl struct {
	queueAdapter  adapters.QueueAdapter
	logger        *log.Logger
	serviceCtx    context.Context
	serviceCancel context.CancelFunc
}

// NewAlertService creates a new AlertServiceImpl.
func NewAlertService(queueAdapter adapters.QueueAdapter, logger *log.Logger) AlertServiceContract {
	ctx, cancel := context.WithCancel(context.Background())
	return &AlertServiceImpl{
		queueAdapter:  queueAdapter,
		logger:        logger,
		serviceCtx:    ctx,
		serviceCancel: cancel,
	}
}

// Start begins the alert consumer.
func (s *AlertServiceImpl) Start(ctx context.Context) error {
	s.logger.Println("AlertService starting...")
	if err := s.queueAdapter.StartConsuming(s.serviceCtx, PatientAlertQueue, s.handleAlertJob); err != nil {
		return fmt.Errorf("starting consumer for %s: %w", PatientAlertQueue, err)
	}
	s.logger.Printf("Consumer for queue %q started", PatientAlertQueue)
	return nil
}

// Stop cancels the consumer.
func (s *AlertServiceImpl) Stop(ctx context.Context) error {
	s.logger.Println("AlertService stopping...")
	s.serviceCancel()
	return nil
}

// PublishAlert enqueues one alert job, assigning it an ID.
func (s *AlertServiceImpl) PublishAlert(ctx context.Context, alert AlertJobData) error {
	if alert.AlertID == "" {
		alert.AlertID = uuid.New().String()
	}
	jobBytes, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("marshalling alert job: %w", err)
	}
	if err := s.queueAdapter.Publish(ctx, PatientAlertQueue, jobBytes); err != nil {
		return fmt.Errorf("enqueueing alert %s: %w", alert.AlertID, err)
	}
	s.logger.Printf("Alert %s for patient %s enqueued (risk=%s color=%s)",
		alert.AlertID, alert.PatientCode, alert.RiskLevel, alert.AlertColor)
	return nil
}

// handleAlertJob dispatches one queued alert.
func (s *AlertServiceImpl) handleAlertJob(ctx context.Context, jobData []byte) error {
	var alert AlertJobData
	if err := json.Unmarshal(jobData, &alert); err != nil {
		s.logger.Printf("Failed to decode alert job: %v", err)
		return fmt.Errorf("decoding alert job: %w", err)
	}

	s.logger.Printf("CRITICAL ALERT %s: patient=%s risk=%s color=%s news=%d",
		alert.AlertID, alert.PatientCode, alert.RiskLevel, alert.AlertColor, alert.NEWSScore)
	if len(alert.Recommendations) > 0 {
		s.logger.Printf("Alert %s recommendations: %s", alert.AlertID, strings.Join(alert.Recommendations, " | "))
	}
	return nil
}
