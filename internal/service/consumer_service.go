package service

import (
	"context"
	"fmt"

	"interview-assistant-be/internal/pkg/logger"
	"interview-assistant-be/pkg/audit"
	"interview-assistant-be/pkg/events"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// auditConsumer appends every audit event to the analytics JSONL file.
type auditConsumer struct {
	bus    *events.Bus
	writer *audit.Writer
	logger logger.ILogger
}

func NewAuditConsumer(bus *events.Bus, writer *audit.Writer, log logger.ILogger) IConsumerService {
	return &auditConsumer{bus: bus, writer: writer, logger: log}
}

func (c *auditConsumer) Consume(ctx context.Context) error {
	if !c.writer.Enabled() {
		c.logger.Info("AUDIT", "Analytics sink disabled", nil)
		return nil
	}
	return c.bus.Subscribe(ctx, events.TopicAudit, func(_ context.Context, e events.Event) error {
		record := make(map[string]interface{}, len(e.Payload())+1)
		for k, v := range e.Payload() {
			record[k] = v
		}
		record["type"] = e.EventType()
		return c.writer.Write(record)
	})
}

// autoEvalConsumer critiques code found in freshly answered questions.
type autoEvalConsumer struct {
	bus        *events.Bus
	evaluation IEvaluationService
	logger     logger.ILogger
}

func NewAutoEvalConsumer(bus *events.Bus, evaluation IEvaluationService, log logger.ILogger) IConsumerService {
	return &autoEvalConsumer{bus: bus, evaluation: evaluation, logger: log}
}

func (c *autoEvalConsumer) Consume(ctx context.Context) error {
	return c.bus.Subscribe(ctx, events.TopicQnAAnswered, c.process)
}

func (c *autoEvalConsumer) process(ctx context.Context, e events.Event) error {
	data := e.Payload()
	sessionId, _ := data["session_id"].(string)
	question, _ := data["question"].(string)
	answerText, _ := data["answer"].(string)
	if sessionId == "" || answerText == "" {
		return fmt.Errorf("qna event missing session_id or answer")
	}

	res, found, err := c.evaluation.AutoEvaluate(ctx, sessionId, question, answerText)
	if err != nil {
		return fmt.Errorf("auto evaluation for session %s: %w", sessionId, err)
	}
	if found {
		c.logger.Info("AUTO_EVAL", "Evaluated code in answer", map[string]interface{}{
			"session_id": sessionId,
			"language":   res.Language,
			"total":      res.Scores.Total,
		})
	}
	return nil
}
