package entity

import (
	"time"

	"interview-assistant-be/pkg/answer"

	"github.com/google/uuid"
)

type Session struct {
	Id                uuid.UUID
	QnA               []QnAEntry
	ProfileText       string
	PartialTranscript string
	LastUpdate        time.Time
}

// QnAEntry is one answered question. Entries are only ever appended.
type QnAEntry struct {
	Question  string
	Answer    string
	CreatedAt time.Time
	Style     answer.ResolvedStyle
}

type SessionSummary struct {
	Id         uuid.UUID
	LastUpdate time.Time
	QnACount   int
}

// Turns returns the history in the shape the prompt builder expects.
func (s *Session) Turns() []answer.Turn {
	turns := make([]answer.Turn, 0, len(s.QnA))
	for _, q := range s.QnA {
		turns = append(turns, answer.Turn{Question: q.Question, Answer: q.Answer})
	}
	return turns
}
