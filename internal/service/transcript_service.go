package service

import (
	"context"
	"fmt"
	"strings"

	"interview-assistant-be/internal/pkg/logger"
	"interview-assistant-be/internal/repository/contract"
	"interview-assistant-be/pkg/events"
	"interview-assistant-be/pkg/stt"

	"github.com/google/uuid"
)

type ITranscriptService interface {
	// Open checks the session exists and starts a transcription stream for it.
	Open(ctx context.Context, sessionId string) (*TranscriptStream, error)
	Provider() string
}

type transcriptService struct {
	repo        contract.SessionRepository
	transcriber stt.Transcriber
	publisher   IPublisherService
	logger      logger.ILogger
}

func NewTranscriptService(
	repo contract.SessionRepository,
	transcriber stt.Transcriber,
	publisher IPublisherService,
	log logger.ILogger,
) ITranscriptService {
	return &transcriptService{repo: repo, transcriber: transcriber, publisher: publisher, logger: log}
}

func (s *transcriptService) Provider() string {
	return s.transcriber.Name()
}

func (s *transcriptService) Open(ctx context.Context, sessionId string) (*TranscriptStream, error) {
	id, err := parseSessionId(sessionId)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.FindById(ctx, id); err != nil {
		return nil, mapRepoError(err)
	}
	return &TranscriptStream{
		sessionId: id,
		stream:    s.transcriber.Open(),
		service:   s,
	}, nil
}

// TranscriptStream feeds one socket's audio to the transcriber and appends
// each transcript piece to the session.
type TranscriptStream struct {
	sessionId uuid.UUID
	stream    stt.Stream
	service   *transcriptService
	frames    int
	pieces    []string
}

func (t *TranscriptStream) SessionId() string {
	return t.sessionId.String()
}

// Feed returns the transcript text produced by this frame, if any.
func (t *TranscriptStream) Feed(ctx context.Context, frame []byte) (string, error) {
	t.frames++
	text, err := t.stream.Feed(ctx, frame)
	if err != nil {
		return "", fmt.Errorf("transcribe frame %d: %w", t.frames, err)
	}
	return t.record(ctx, text)
}

// Close flushes buffered audio and returns any final transcript text.
func (t *TranscriptStream) Close(ctx context.Context) (string, error) {
	text, err := t.stream.Close(ctx)
	if err != nil {
		return "", fmt.Errorf("transcribe final window: %w", err)
	}
	text, err = t.record(ctx, text)
	if err != nil {
		return "", err
	}

	t.service.publisher.Publish(ctx, events.TypeTranscript, map[string]interface{}{
		"session_id": t.sessionId.String(),
		"provider":   t.service.transcriber.Name(),
		"frames":     t.frames,
		"characters": len(strings.Join(t.pieces, " ")),
	})
	return text, nil
}

func (t *TranscriptStream) record(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}
	if _, err := t.service.repo.AppendTranscript(ctx, t.sessionId, text); err != nil {
		return "", mapRepoError(err)
	}
	t.pieces = append(t.pieces, text)
	return text, nil
}
