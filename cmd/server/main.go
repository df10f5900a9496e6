package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mediguard-backend/internal/adapters"
	"mediguard-backend/internal/api/handlers"
	"mediguard-backend/internal/config"
	"mediguard-backend/internal/database"
	"mediguard-backend/internal/domain/repositories"
	"mediguard-backend/internal/ecg"
	"mediguard-backend/internal/llm"
	mqttsub "mediguard-backend/internal/mqtt"
	"mediguard-backend/internal/scoring"
	"mediguard-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

func main() {
	logger := log.New(os.Stdout, "mediguard: ", log.LstdFlags)
	logger.Println("=== MediGuard Backend starting ===")

	cfg := config.Load()
	logger.Printf("Configuration loaded: port=%s db=%s:%s mqtt_enabled=%t",
		cfg.App.Port, cfg.Database.Host, cfg.Database.Port, cfg.MQTT.Enabled)

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatalf("Database initialization failed: %v", err)
	}

	patientRepo := repositories.NewGormPatientRepository(db)
	assessmentRepo := repositories.NewGormAssessmentRepository(db)

	queueAdapter := adapters.NewInMemoryQueueAdapter(logger)
	alertService := services.NewAlertService(queueAdapter, logger)

	llmClient := llm.NewOpenRouterClient(llm.OpenRouterConfig{
		APIKey:   cfg.OpenRouter.APIKey,
		BaseURL:  cfg.OpenRouter.BaseURL,
		Model:    cfg.OpenRouter.Model,
		Timeout:  cfg.OpenRouter.Timeout,
		SiteName: cfg.OpenRouter.SiteName,
	})

	defaultLanguage := scoring.Language(cfg.App.DefaultLanguage)
	analysisService := services.NewAnalysisService(
		patientRepo,
		assessmentRepo,
		ecg.NewHeuristicClassifier(),
		alertService,
		logger,
		defaultLanguage,
	)
	reportService := services.NewReportService(llmClient, logger)
	chatService := services.NewChatService(llmClient, reportService, logger)
	ingestService := services.NewIngestService(analysisService, logger)

	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()

	if err := alertService.Start(appCtx); err != nil {
		logger.Fatalf("Alert service failed to start: %v", err)
	}
	if err := ingestService.Start(appCtx); err != nil {
		logger.Fatalf("Ingest service failed to start: %v", err)
	}

	var subscriber *mqttsub.Subscriber
	if cfg.MQTT.Enabled {
		subscriber = mqttsub.NewSubscriber(cfg.MQTT, ingestService, logger)
		if err := subscriber.Start(); err != nil {
			logger.Fatalf("MQTT subscriber failed to start: %v", err)
		}
	}

	app := fiber.New(fiber.Config{
		AppName: "MediGuard Backend",
	})
	handlers.RegisterAnalysisRoutes(app, handlers.NewAnalysisHandler(analysisService, patientRepo, logger))
	handlers.RegisterChatRoutes(app, handlers.NewChatHandler(chatService, patientRepo, logger))

	go func() {
		if err := app.Listen(":" + cfg.App.Port); err != nil {
			logger.Fatalf("HTTP server failed: %v", err)
		}
	}()
	logger.Printf("HTTP server listening on :%s", cfg.App.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Println("Shutdown signal received")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()

	if subscriber != nil {
		subscriber.Stop()
	}
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Printf("HTTP shutdown error: %v", err)
	}
	if err := ingestService.Stop(shutdownCtx); err != nil {
		logger.Printf("Ingest service stop error: %v", err)
	}
	if err := alertService.Stop(shutdownCtx); err != nil {
		logger.Printf("Alert service stop error: %v", err)
	}
	cancelApp()

	logger.Println("=== MediGuard Backend stopped ===")
}
