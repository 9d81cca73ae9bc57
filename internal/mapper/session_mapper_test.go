package mapper

import (
	"testing"
	"time"

	"interview-assistant-be/internal/entity"
	"interview-assistant-be/internal/model"
	"interview-assistant-be/pkg/answer"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionDocumentRoundTrip(t *testing.T) {
	m := NewSessionMapper()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	s := &entity.Session{
		Id:          uuid.New(),
		ProfileText: "Go developer",
		LastUpdate:  now,
		QnA: []entity.QnAEntry{{
			Question:  "What is a goroutine?",
			Answer:    "- A lightweight thread",
			CreatedAt: now,
			Style:     answer.ResolvedStyle{Mode: answer.ModeConcise, Tone: answer.ToneMentor, Variability: 0.5},
		}},
	}

	doc := m.SessionToModel(s)
	assert.Equal(t, s.Id.String(), doc.SessionId)
	assert.Equal(t, "concise", doc.QnA[0].Style.Mode)

	back, err := m.SessionToEntity(doc)
	require.NoError(t, err)
	assert.Equal(t, s, back)
}

func TestSessionToEntityRejectsBadId(t *testing.T) {
	_, err := NewSessionMapper().SessionToEntity(&model.Session{SessionId: "../etc/passwd"})
	assert.Error(t, err)
}

func TestToHistoryResponseKeepsOrder(t *testing.T) {
	s := &entity.Session{
		Id: uuid.New(),
		QnA: []entity.QnAEntry{
			{Question: "first"},
			{Question: "second"},
		},
	}
	res := NewSessionMapper().ToHistoryResponse(s)
	require.Len(t, res.QnA, 2)
	assert.Equal(t, "first", res.QnA[0].Question)
	assert.Equal(t, "second", res.QnA[1].Question)
}
