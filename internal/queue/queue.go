package queue

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// Queue carries feedback events to whoever improves the extraction.
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue delivers to in-process subscribers in the background,
// retrying a failing handler with a growing delay. Publish never waits on
// a handler.
type InMemoryQueue struct {
	mu         sync.Mutex
	handlers   map[string][]func(payload any) error
	inflight   sync.WaitGroup
	MaxRetries int
	Backoff    time.Duration
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers:   make(map[string][]func(payload any) error),
		MaxRetries: 3,
		Backoff:    500 * time.Millisecond,
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish hands payload to every subscriber of topic and returns at once.
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := append([]func(payload any) error(nil), q.handlers[topic]...)
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	for _, handler := range handlers {
		handler := handler
		job := JobPayload{Payload: payload, MaxRetries: q.MaxRetries}
		q.inflight.Add(1)
		go func() {
			defer q.inflight.Done()
			q.processJob(handler, job)
		}()
	}
	return nil
}

// Wait blocks until every published job has succeeded or given up.
func (q *InMemoryQueue) Wait() {
	q.inflight.Wait()
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
	for {
		err := handler(job.Payload)
		if err == nil {
			return
		}

		job.RetryCount++
		log.Printf("⚠️ Job failed (attempt %d/%d): %v", job.RetryCount, job.MaxRetries+1, err)
		if job.RetryCount > job.MaxRetries {
			log.Printf("❌ Job permanently failed after %d attempts", job.RetryCount)
			return
		}

		time.Sleep(time.Duration(job.RetryCount) * q.Backoff)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

var _ Queue = (*InMemoryQueue)(nil)
