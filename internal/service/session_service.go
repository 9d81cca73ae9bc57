package service

import (
	"context"

	"interview-assistant-be/internal/dto"
	"interview-assistant-be/internal/entity"
	"interview-assistant-be/internal/mapper"
	"interview-assistant-be/internal/repository/contract"
)

type ISessionService interface {
	Create(ctx context.Context) (*dto.CreateSessionResponse, error)
	List(ctx context.Context) (*dto.ListSessionsResponse, error)
	Get(ctx context.Context, sessionId string) (*entity.Session, error)
	Delete(ctx context.Context, sessionId string) error
	History(ctx context.Context, sessionId string) (*dto.HistoryResponse, error)
	ClearHistory(ctx context.Context, sessionId string) error
	RemoveQnA(ctx context.Context, sessionId string, index int) error
	Transcript(ctx context.Context, sessionId string) (*dto.TranscriptResponse, error)
}

type sessionService struct {
	repo   contract.SessionRepository
	mapper *mapper.SessionMapper
}

func NewSessionService(repo contract.SessionRepository) ISessionService {
	return &sessionService{repo: repo, mapper: mapper.NewSessionMapper()}
}

func (s *sessionService) Create(ctx context.Context) (*dto.CreateSessionResponse, error) {
	session, err := s.repo.Create(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return &dto.CreateSessionResponse{SessionId: session.Id.String()}, nil
}

func (s *sessionService) List(ctx context.Context) (*dto.ListSessionsResponse, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return &dto.ListSessionsResponse{Items: s.mapper.ToSessionSummaryResponses(items)}, nil
}

func (s *sessionService) Get(ctx context.Context, sessionId string) (*entity.Session, error) {
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

func (s *sessionService) Delete(ctx context.Context, sessionId string) error {
	id, err := parseSessionId(sessionId)
	if err != nil {
		return err
	}
	return mapRepoError(s.repo.Delete(ctx, id))
}

func (s *sessionService) History(ctx context.Context, sessionId string) (*dto.HistoryResponse, error) {
	session, err := s.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	return s.mapper.ToHistoryResponse(session), nil
}

func (s *sessionService) ClearHistory(ctx context.Context, sessionId string) error {
	id, err := parseSessionId(sessionId)
	if err != nil {
		return err
	}
	return mapRepoError(s.repo.ClearHistory(ctx, id))
}

func (s *sessionService) RemoveQnA(ctx context.Context, sessionId string, index int) error {
	id, err := parseSessionId(sessionId)
	if err != nil {
		return err
	}
	return mapRepoError(s.repo.RemoveQnA(ctx, id, index))
}

func (s *sessionService) Transcript(ctx context.Context, sessionId string) (*dto.TranscriptResponse, error) {
	session, err := s.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	return &dto.TranscriptResponse{
		SessionId:         session.Id.String(),
		PartialTranscript: session.PartialTranscript,
	}, nil
}
