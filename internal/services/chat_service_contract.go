package services

import (
	"context"

	"mediguard-backend/internal/domain/entities"
)

// ChatServiceContract answers free-text patient questions. The reply
// language follows the language of the incoming message.
type ChatServiceContract interface {
	Chat(ctx context.Context, patient *entities.Patient, message string) (string, error)
}
