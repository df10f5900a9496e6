package services

import (
	"context"
	"log"
	"sync"

	"mediguard-backend/internal/domain/dtos"
)

// IngestServiceImpl implements IngestServiceContract with a worker pool
// feeding the analysis service.
type IngestServiceImpl struct {
	analysisService AnalysisServiceContract
	logger          *log.Logger
	jobChan         chan dtos.AnalyzePatientRequest
	stopChan        chan struct{}
	numWorkers      int
	wg              sync.WaitGroup
}

// NewIngestService creates a new IngestServiceImpl.
func NewIngestService(analysisService AnalysisServiceContract, logger *log.Logger) IngestServiceContract {
	return &IngestServiceImpl{
		analysisService: analysisService,
		logger:          logger,
		jobChan:         make(chan dtos.AnalyzePatientRequest, 100),
		stopChan:        make(chan struct{}),
		numWorkers:      5,
	}
}

func (s *IngestServiceImpl) worker(id int) {
	defer s.wg.Done()
	s.logger.Printf("Ingest worker %d started", id)
	for request := range s.jobChan {
		s.logger.Printf("Ingest worker %d analyzing vitals for patient %s", id, request.PatientID)
		if _, err := s.analysisService.Analyze(context.Background(), request); err != nil {
			s.logger.Printf("Ingest worker %d failed to analyze vitals for patient %s: %v", id, request.PatientID, err)
		}
	}
	s.logger.Printf("Ingest worker %d finished", id)
}

// Start launches the worker pool and watches for shutdown.
func (s *IngestServiceImpl) Start(ctx context.Context) error {
	s.logger.Println("Ingest service starting with worker pool...")

	s.wg.Add(s.numWorkers)
	for i := 1; i <= s.numWorkers; i++ {
		go s.worker(i)
	}
	s.logger.Printf("%d ingest workers started", s.numWorkers)

	go func() {
		select {
		case <-ctx.Done():
			s.logger.Println("Ingest service context cancelled, initiating shutdown...")
			s.shutdown()
		case <-s.stopChan:
			s.logger.Println("Ingest service received stop signal, initiating shutdown...")
			s.shutdown()
		}
	}()

	return nil
}

func (s *IngestServiceImpl) shutdown() {
	close(s.jobChan)
	s.wg.Wait()
	s.logger.Println("All ingest workers have finished.")
}

// Stop signals the service to drain and shut down the worker pool.
func (s *IngestServiceImpl) Stop(ctx context.Context) error {
	select {
	case s.stopChan <- struct{}{}:
		s.logger.Println("Stop signal sent to ingest service.")
	default:
		s.logger.Println("Ingest service already stopping.")
	}
	return nil
}

// Submit queues one vitals reading for asynchronous analysis.
func (s *IngestServiceImpl) Submit(ctx context.Context, request dtos.AnalyzePatientRequest) error {
	select {
	case s.jobChan <- request:
		return nil
	case <-ctx.Done():
		s.logger.Printf("Context cancelled, could not queue vitals for patient %s: %v", request.PatientID, ctx.Err())
		return ctx.Err()
	}
}
