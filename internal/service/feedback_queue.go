package service

import (
	"log"

	"github.com/sarahselama/SerhSalesLead/internal/brand"
	"github.com/sarahselama/SerhSalesLead/internal/config"
	"github.com/sarahselama/SerhSalesLead/internal/queue"
)

// NewFeedbackQueue publishes feedback events to RabbitMQ when AMQP_URL is set
// and reachable. Otherwise the events are handled in process by a
// FeedbackWorker writing to the alias suggestions file.
//
// The returned func releases the broker connection, or waits for in-process
// jobs to finish; call it before exiting.
func NewFeedbackQueue(cfg *config.Config) (queue.Queue, func()) {
	if cfg.AMQPURL != "" {
		aq, err := queue.DialAMQP(cfg.AMQPURL)
		if err == nil {
			log.Println("✅ Publishing feedback events to RabbitMQ queue", cfg.FeedbackQueue)
			return aq, func() { aq.Close() }
		}
		log.Println("⚠️ RabbitMQ unavailable, handling feedback in process:", err)
	}

	q := queue.NewInMemoryQueue()
	worker := NewFeedbackWorker(brand.NewSuggestionFile(cfg.SuggestionsPath))
	q.Subscribe(cfg.FeedbackQueue, worker.HandlePayload)
	return q, q.Wait
}
