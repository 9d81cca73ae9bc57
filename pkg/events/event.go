package events

import "time"

// Event types recorded in the audit trail.
const (
	TypeQnA                 = "qna"
	TypeProfileUpload       = "profile_upload"
	TypeEvaluation          = "evaluation"
	TypeAutoEvaluation      = "auto_evaluation"
	TypeAutoEvaluationError = "auto_evaluation_error"
	TypeTranscript          = "transcript"
)

// Topics on the in-process bus.
const (
	TopicAudit       = "audit"
	TopicQnAAnswered = "qna.answered"
)

// Event defines the contract for all domain events.
type Event interface {
	// EventType returns the unique code for this event (e.g. "qna").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func New(eventType string, data map[string]interface{}) BaseEvent {
	if data == nil {
		data = map[string]interface{}{}
	}
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now().UTC()}
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
