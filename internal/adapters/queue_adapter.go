package adapters

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

// JobHandler processes one message taken from a queue.
type JobHandler func(ctx context.Context, data []byte) error

// QueueAdapter abstracts the job queue used for alert dispatch.
type QueueAdapter interface {
	// Publish sends jobData to the named queue.
	Publish(ctx context.Context, queueName string, jobData []byte) error
	// StartConsuming runs a background consumer that invokes handler for
	// every message on the named queue.
	StartConsuming(ctx context.Context, queueName string, handler JobHandler) error
	// StopConsuming stops the consumer of the named queue.
	StopConsuming(ctx context.Context, queueName string) error
}

// InMemoryQueueAdapter is a channel-backed QueueAdapter. It is the
// default for single-process deployments; a broker-backed adapter can
// replace it without touching the services.
type InMemoryQueueAdapter struct {
	queues      map[string]chan []byte
	mu          sync.RWMutex
	logger      *log.Logger
	stopChan    map[string]chan struct{}
	wg          sync.WaitGroup
	consumerCtx context.Context
	cancelFunc  context.CancelFunc
}

func NewInMemoryQueueAdapter(logger *log.Logger) QueueAdapter {
	consumerCtx, cancelFunc := context.WithCancel(context.Background())
	return &InMemoryQueueAdapter{
		queues:      make(map[string]chan []byte),
		logger:      logger,
		stopChan:    make(map[string]chan struct{}),
		consumerCtx: consumerCtx,
		cancelFunc:  cancelFunc,
	}
}

func (q *InMemoryQueueAdapter) getOrCreateQueue(queueName string) chan []byte {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.queues[queueName]; !ok {
		q.queues[queueName] = make(chan []byte, 100)
		q.stopChan[queueName] = make(chan struct{})
		q.logger.Printf("In-memory queue %q created", queueName)
	}
	return q.queues[queueName]
}

// Publish enqueues jobData, failing after a short timeout when the queue
// is full.
func (q *InMemoryQueueAdapter) Publish(ctx context.Context, queueName string, jobData []byte) error {
	queue := q.getOrCreateQueue(queueName)
	select {
	case queue <- jobData:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(2 * time.Second):
		q.logger.Printf("Timeout publishing to queue %q, queue possibly full", queueName)
		return errors.New("timeout publishing to queue: " + queueName)
	}
}

func (q *InMemoryQueueAdapter) StartConsuming(ctx context.Context, queueName string, handler JobHandler) error {
	queue := q.getOrCreateQueue(queueName)
	q.mu.RLock()
	stop := q.stopChan[queueName]
	q.mu.RUnlock()

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		q.logger.Printf("Consumer for queue %q started", queueName)
		for {
			select {
			case data, ok := <-queue:
				if !ok {
					q.logger.Printf("Queue %q closed, consumer exiting", queueName)
					return
				}
				if err := handler(q.consumerCtx, data); err != nil {
					q.logger.Printf("Error handling message from queue %q: %v", queueName, err)
				}
			case <-stop:
				q.logger.Printf("Consumer for queue %q stopping", queueName)
				return
			case <-q.consumerCtx.Done():
				q.logger.Printf("Adapter context cancelled, consumer for queue %q exiting", queueName)
				return
			}
		}
	}()
	return nil
}

func (q *InMemoryQueueAdapter) StopConsuming(ctx context.Context, queueName string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if stopChan, ok := q.stopChan[queueName]; ok {
		close(stopChan)
		delete(q.stopChan, queueName)
	}
	return nil
}
