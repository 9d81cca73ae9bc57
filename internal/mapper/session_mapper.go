package mapper

import (
	"interview-assistant-be/internal/dto"
	"interview-assistant-be/internal/entity"
	"interview-assistant-be/internal/model"
	"interview-assistant-be/pkg/answer"

	"github.com/google/uuid"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

// Entity <-> document

func (m *SessionMapper) SessionToEntity(s *model.Session) (*entity.Session, error) {
	if s == nil {
		return nil, nil
	}
	id, err := uuid.Parse(s.SessionId)
	if err != nil {
		return nil, err
	}

	qna := make([]entity.QnAEntry, 0, len(s.QnA))
	for _, q := range s.QnA {
		qna = append(qna, entity.QnAEntry{
			Question:  q.Question,
			Answer:    q.Answer,
			CreatedAt: q.CreatedAt,
			Style: answer.ResolvedStyle{
				Mode:        answer.Mode(q.Style.Mode),
				Tone:        answer.Tone(q.Style.Tone),
				Layout:      answer.Layout(q.Style.Layout),
				Variability: q.Style.Variability,
			},
		})
	}

	return &entity.Session{
		Id:                id,
		QnA:               qna,
		ProfileText:       s.ProfileText,
		PartialTranscript: s.PartialTranscript,
		LastUpdate:        s.LastUpdate,
	}, nil
}

func (m *SessionMapper) SessionToModel(s *entity.Session) *model.Session {
	if s == nil {
		return nil
	}

	qna := make([]model.QnA, 0, len(s.QnA))
	for _, q := range s.QnA {
		qna = append(qna, model.QnA{
			Question:  q.Question,
			Answer:    q.Answer,
			CreatedAt: q.CreatedAt.UTC(),
			Style: model.Style{
				Mode:        string(q.Style.Mode),
				Tone:        string(q.Style.Tone),
				Layout:      string(q.Style.Layout),
				Variability: q.Style.Variability,
			},
		})
	}

	return &model.Session{
		SessionId:         s.Id.String(),
		QnA:               qna,
		ProfileText:       s.ProfileText,
		PartialTranscript: s.PartialTranscript,
		LastUpdate:        s.LastUpdate.UTC(),
	}
}

// Entity -> response

func (m *SessionMapper) ToSessionSummaryResponses(items []*entity.SessionSummary) []dto.SessionSummaryResponse {
	res := make([]dto.SessionSummaryResponse, 0, len(items))
	for _, s := range items {
		res = append(res, dto.SessionSummaryResponse{
			SessionId:  s.Id.String(),
			LastUpdate: s.LastUpdate,
			QnACount:   s.QnACount,
		})
	}
	return res
}

func (m *SessionMapper) ToHistoryResponse(s *entity.Session) *dto.HistoryResponse {
	qna := make([]dto.QnAResponse, 0, len(s.QnA))
	for _, q := range s.QnA {
		qna = append(qna, m.ToQnAResponse(q))
	}
	return &dto.HistoryResponse{SessionId: s.Id.String(), QnA: qna}
}

func (m *SessionMapper) ToQnAResponse(q entity.QnAEntry) dto.QnAResponse {
	return dto.QnAResponse{
		Question:  q.Question,
		Answer:    q.Answer,
		CreatedAt: q.CreatedAt,
		Style:     q.Style,
	}
}
