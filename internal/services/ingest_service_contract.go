package services

import (
	"context"

	"mediguard-backend/internal/domain/dtos"
)

// IngestServiceContract accepts vitals readings for asynchronous
// analysis, decoupling producers (MQTT, bulk uploads) from the
// analysis pipeline.
type IngestServiceContract interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Submit(ctx context.Context, request dtos.AnalyzePatientRequest) error
}
