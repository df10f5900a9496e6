package services

import (
	"context"
	"time"
)

// AlertJobData is the payload queued for one critical alert.
type AlertJobData struct {
	AlertID         string    `json:"alertId"`
	PatientCode     string    `json:"patientId"`
	RiskLevel       string    `json:"riskLevel"`
	AlertColor      string    `json:"alertColor"`
	NEWSScore       int       `json:"newsScore"`
	Recommendations []string  `json:"recommendations"`
	Timestamp       time.Time `json:"timestamp"`
}

// AlertServiceContract runs the critical-alert dispatch pipeline.
type AlertServiceContract interface {
	// Start begins consuming queued alert jobs.
	Start(ctx context.Context) error
	// Stop shuts the consumer down.
	Stop(ctx context.Context) error
	// PublishAlert enqueues an alert for dispatch.
	PublishAlert(ctx context.Context, alert AlertJobData) error
}
