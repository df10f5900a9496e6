package handlers

import (
	"context"
	"log"
	"time"

	"mediguard-backend/internal/domain/dtos"
	"mediguard-backend/internal/domain/repositories"
	fhirmappers "mediguard-backend/internal/fhir/mappers"
	"mediguard-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AnalysisHandler exposes the integrated analysis pipeline and the stored
// patient documents over HTTP.
type AnalysisHandler struct {
	analysisService services.AnalysisServiceContract
	patientRepo     repositories.PatientRepositoryContract
	logger          *log.Logger
}

func NewAnalysisHandler(as services.AnalysisServiceContract, pr repositories.PatientRepositoryContract, logger *log.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: as,
		patientRepo:     pr,
		logger:          logger,
	}
}

// IntegratedAnalysis runs the full pipeline for one vitals snapshot and
// returns the updated patient document keyed by its code.
func (h *AnalysisHandler) IntegratedAnalysis(c *fiber.Ctx) error {
	var req dtos.AnalyzePatientRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Printf("Failed to parse integrated-analysis request: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Could not parse request: " + err.Error(),
		})
	}

	if req.PatientID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "patient_id is required"})
	}
	if req.Language != "" && req.Language != "en" && req.Language != "ar" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "language must be en or ar"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()

	patient, err := h.analysisService.Analyze(ctx, req)
	if err != nil {
		h.logger.Printf("Integrated analysis failed for patient %s: %v", req.PatientID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{req.PatientID: patient})
}

// GetPatient returns the stored patient document.
func (h *AnalysisHandler) GetPatient(c *fiber.Ctx) error {
	code := c.Params("patient_id")

	patient, err := h.analysisService.GetPatient(c.Context(), code)
	if err != nil {
		h.logger.Printf("Failed to load patient %s: %v", code, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if patient == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Patient not found"})
	}
	return c.JSON(fiber.Map{code: patient})
}

// GetHistory returns the append-only assessment history for a patient.
func (h *AnalysisHandler) GetHistory(c *fiber.Ctx) error {
	code := c.Params("patient_id")

	history, err := h.analysisService.GetHistory(c.Context(), code)
	if err != nil {
		h.logger.Printf("Failed to load history for patient %s: %v", code, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if history == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Patient not found"})
	}
	return c.JSON(history)
}

// GetPatientFHIR exports the patient and their last vitals as a FHIR
// collection bundle.
func (h *AnalysisHandler) GetPatientFHIR(c *fiber.Ctx) error {
	code := c.Params("patient_id")

	patient, err := h.patientRepo.FindByCode(c.Context(), code)
	if err != nil {
		h.logger.Printf("Failed to load patient %s for FHIR export: %v", code, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if patient == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Patient not found"})
	}

	bundle, err := fhirmappers.MapPatientToFHIR(*patient)
	if err != nil {
		h.logger.Printf("FHIR mapping failed for patient %s: %v", code, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, "application/fhir+json")
	return c.Send(bundle)
}

// Healthz is the liveness probe.
func (h *AnalysisHandler) Healthz(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func RegisterAnalysisRoutes(app *fiber.App, ah *AnalysisHandler) {
	app.Post("/integrated-analysis", ah.IntegratedAnalysis)
	app.Get("/patient/:patient_id", ah.GetPatient)
	app.Get("/patient/:patient_id/history", ah.GetHistory)
	app.Get("/patient/:patient_id/fhir", ah.GetPatientFHIR)
	app.Get("/healthz", ah.Healthz)
}
