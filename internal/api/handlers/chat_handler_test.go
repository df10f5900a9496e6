package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http/httptest"
	"os"
	"testing"

	"mediguard-backend/internal/domain/dtos"
	"mediguard-backend/internal/domain/entities"
	"mediguard-backend/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type mockChatService struct {
	ChatFunc func(ctx context.Context, patient *entities.Patient, message string) (string, error)
}

var _ services.ChatServiceContract = (*mockChatService)(nil)

func (m *mockChatService) Chat(ctx context.Context, patient *entities.Patient, message string) (string, error) {
	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, patient, message)
	}
	return "", errors.New("ChatFunc not implemented in mock")
}

func newChatTestApp(chatService services.ChatServiceContract, patientRepo *mockPatientRepo) *fiber.App {
	logger := log.New(os.Stdout, "TestChatHandler: ", log.LstdFlags)
	app := fiber.New()
	RegisterChatRoutes(app, NewChatHandler(chatService, patientRepo, logger))
	return app
}

func TestChat_Success(t *testing.T) {
	patientRepo := &mockPatientRepo{
		FindByCodeFunc: func(ctx context.Context, code string) (*entities.Patient, error) {
			return &entities.Patient{ID: uuid.New(), Code: code, Name: "Chat Patient"}, nil
		},
	}
	chatService := &mockChatService{
		ChatFunc: func(ctx context.Context, patient *entities.Patient, message string) (string, error) {
			assert.Equal(t, "Chat Patient", patient.Name)
			assert.Equal(t, "How is he doing?", message)
			return "The patient is doing well.", nil
		},
	}
	app := newChatTestApp(chatService, patientRepo)

	body := `{"patient_id":"p700","message":"How is he doing?"}`
	req := httptest.NewRequest("POST", "/chat", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	var chatResp dtos.ChatResponse
	assert.NoError(t, json.Unmarshal(raw, &chatResp))
	assert.Equal(t, "The patient is doing well.", chatResp.Reply)
}

func TestChat_UnknownPatient(t *testing.T) {
	app := newChatTestApp(&mockChatService{}, &mockPatientRepo{})

	body := `{"patient_id":"ghost","message":"hello"}`
	req := httptest.NewRequest("POST", "/chat", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	var chatResp dtos.ChatResponse
	assert.NoError(t, json.Unmarshal(raw, &chatResp))
	assert.Equal(t, "Patient 'ghost' not found. Please run analysis first.", chatResp.Reply)
}

func TestChat_ServiceError(t *testing.T) {
	patientRepo := &mockPatientRepo{
		FindByCodeFunc: func(ctx context.Context, code string) (*entities.Patient, error) {
			return &entities.Patient{ID: uuid.New(), Code: code}, nil
		},
	}
	chatService := &mockChatService{
		ChatFunc: func(ctx context.Context, patient *entities.Patient, message string) (string, error) {
			return "", errors.New("llm unavailable")
		},
	}
	app := newChatTestApp(chatService, patientRepo)

	body := `{"patient_id":"p701","message":"summary please"}`
	req := httptest.NewRequest("POST", "/chat", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
