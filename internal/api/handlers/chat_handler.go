package handlers

import (
	"context"
	"fmt"
	"log"
	"time"

	"mediguard-backend/internal/domain/dtos"
	"mediguard-backend/internal/domain/repositories"
	"mediguard-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ChatHandler exposes the bilingual medical assistant.
type ChatHandler struct {
	chatService services.ChatServiceContract
	patientRepo repositories.PatientRepositoryContract
	logger      *log.Logger
}

func NewChatHandler(cs services.ChatServiceContract, pr repositories.PatientRepositoryContract, logger *log.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: cs,
		patientRepo: pr,
		logger:      logger,
	}
}

// Chat answers one question about a patient. The patient must have been
// analyzed at least once so the assistant has context to work from.
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req dtos.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Printf("Failed to parse chat request: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Could not parse request: " + err.Error(),
		})
	}

	patientID := req.PatientID
	if patientID == "" {
		patientID = "unknown"
	}

	patient, err := h.patientRepo.FindByCode(c.Context(), patientID)
	if err != nil {
		h.logger.Printf("Failed to load patient %s for chat: %v", patientID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if patient == nil {
		return c.Status(fiber.StatusNotFound).JSON(dtos.ChatResponse{
			Reply: fmt.Sprintf("Patient '%s' not found. Please run analysis first.", patientID),
		})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 60*time.Second)
	defer cancel()

	reply, err := h.chatService.Chat(ctx, patient, req.Message)
	if err != nil {
		h.logger.Printf("Chat failed for patient %s: %v", patientID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(dtos.ChatResponse{Reply: reply})
}

func RegisterChatRoutes(app *fiber.App, ch *ChatHandler) {
	app.Post("/chat", ch.Chat)
}
