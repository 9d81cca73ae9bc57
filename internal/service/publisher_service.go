package service

import (
	"context"

	"interview-assistant-be/internal/pkg/logger"
	"interview-assistant-be/pkg/events"
)

// IPublisherService emits domain events. Publishing never fails the caller;
// problems are logged.
type IPublisherService interface {
	Publish(ctx context.Context, eventType string, data map[string]interface{})
}

type publisherService struct {
	bus    *events.Bus
	logger logger.ILogger
}

func NewPublisherService(bus *events.Bus, log logger.ILogger) IPublisherService {
	return &publisherService{bus: bus, logger: log}
}

// Publish sends every event to the audit topic. Answered questions also go
// to the qna.answered topic for background evaluation.
func (p *publisherService) Publish(ctx context.Context, eventType string, data map[string]interface{}) {
	event := events.New(eventType, data)

	topics := []string{events.TopicAudit}
	if eventType == events.TypeQnA {
		topics = append(topics, events.TopicQnAAnswered)
	}

	for _, topic := range topics {
		if err := p.bus.Publish(ctx, topic, event); err != nil {
			p.logger.Warn("PUBLISHER", "Failed to publish event", map[string]interface{}{
				"topic": topic,
				"type":  eventType,
				"error": err.Error(),
			})
		}
	}
}
