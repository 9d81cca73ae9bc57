package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"interview-assistant-be/internal/dto"
	"interview-assistant-be/internal/entity"
	"interview-assistant-be/internal/pkg/apperror"
	"interview-assistant-be/internal/repository/contract"
	"interview-assistant-be/pkg/codeeval"
	"interview-assistant-be/pkg/events"
)

// contextTurns is how many recent Q&A entries accompany code sent for critique.
const contextTurns = 2

type IEvaluationService interface {
	Evaluate(ctx context.Context, req *dto.EvaluateRequest) (*dto.EvaluationResponse, error)
	// AutoEvaluate critiques the largest code block in an answer. It reports
	// false when the answer holds no code.
	AutoEvaluate(ctx context.Context, sessionId, question, answerText string) (*dto.EvaluationResponse, bool, error)
}

type evaluationService struct {
	repo      contract.SessionRepository
	evaluator *codeeval.Evaluator
	publisher IPublisherService
	now       func() time.Time
}

func NewEvaluationService(repo contract.SessionRepository, evaluator *codeeval.Evaluator, publisher IPublisherService) IEvaluationService {
	return &evaluationService{
		repo:      repo,
		evaluator: evaluator,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *evaluationService) Evaluate(ctx context.Context, req *dto.EvaluateRequest) (*dto.EvaluationResponse, error) {
	session, err := s.session(ctx, req.SessionId)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Code) == "" {
		return nil, apperror.Validation("Empty code")
	}

	res, err := s.run(ctx, session, req.Problem, req.Code, req.Language)
	if err != nil {
		return nil, apperror.Provider("Code evaluation failed", err)
	}

	s.publisher.Publish(ctx, events.TypeEvaluation, map[string]interface{}{
		"session_id": res.SessionId,
		"problem":    res.Problem,
		"language":   res.Language,
		"scores":     res.Scores,
	})
	return res, nil
}

func (s *evaluationService) AutoEvaluate(ctx context.Context, sessionId, question, answerText string) (*dto.EvaluationResponse, bool, error) {
	code, language, ok := codeeval.LargestCodeBlock(answerText)
	if !ok {
		return nil, false, nil
	}

	session, err := s.session(ctx, sessionId)
	if err != nil {
		return nil, true, err
	}

	res, err := s.run(ctx, session, question, code, language)
	if err != nil {
		s.publisher.Publish(ctx, events.TypeAutoEvaluationError, map[string]interface{}{
			"session_id":     sessionId,
			"question":       question,
			"language":       language,
			"auto_triggered": true,
			"error":          err.Error(),
		})
		return nil, true, err
	}

	s.publisher.Publish(ctx, events.TypeAutoEvaluation, map[string]interface{}{
		"session_id":     res.SessionId,
		"question":       question,
		"language":       res.Language,
		"scores":         res.Scores,
		"auto_triggered": true,
	})
	return res, true, nil
}

func (s *evaluationService) session(ctx context.Context, sessionId string) (*entity.Session, error) {
	id, err := parseSessionId(sessionId)
	if err != nil {
		return nil, err
	}
	session, err := s.repo.FindById(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return session, nil
}

func (s *evaluationService) run(ctx context.Context, session *entity.Session, problem, code, language string) (*dto.EvaluationResponse, error) {
	result, err := s.evaluator.Evaluate(ctx, codeeval.Request{
		Problem:      problem,
		Code:         code,
		Language:     language,
		Conversation: recentConversation(session, contextTurns),
	})
	if err != nil {
		return nil, err
	}

	c := result.Critique
	return &dto.EvaluationResponse{
		SessionId:               session.Id.String(),
		Problem:                 problem,
		Language:                result.Language,
		ApproachAutoExplanation: c.Summary,
		FeedbackSummary:         c.Summary,
		Strengths:               nonNil(c.Strengths),
		Weaknesses:              nonNil(c.Weaknesses),
		Scores:                  c.Scores,
		StaticSignals:           result.Signals,
		Recommendations:         nonNil(c.Recommendations),
		CreatedAt:               s.now(),
	}, nil
}

func recentConversation(session *entity.Session, n int) string {
	qna := session.QnA
	if len(qna) > n {
		qna = qna[len(qna)-n:]
	}
	var b strings.Builder
	for _, q := range qna {
		fmt.Fprintf(&b, "Q: %s\nA: %s\n\n", q.Question, q.Answer)
	}
	return strings.TrimSpace(b.String())
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
