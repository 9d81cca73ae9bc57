package service

import (
	"context"
	"strings"
	"time"

	"interview-assistant-be/internal/dto"
	"interview-assistant-be/internal/entity"
	"interview-assistant-be/internal/pkg/apperror"
	"interview-assistant-be/internal/pkg/logger"
	"interview-assistant-be/internal/repository/contract"
	"interview-assistant-be/pkg/answer"
	"interview-assistant-be/pkg/events"
	"interview-assistant-be/pkg/llm"

	"github.com/google/uuid"
)

// ChunkFunc receives formatted answer text while a reply streams. Returning an
// error aborts the stream.
type ChunkFunc func(chunk string) error

type IInterviewService interface {
	Ask(ctx context.Context, req *dto.AskQuestionRequest) (*dto.AnswerResponse, error)
	// AskStream validates the request and returns a stream ready to run, so
	// request errors surface before any output is written.
	AskStream(ctx context.Context, req *dto.AskQuestionRequest) (*AnswerStream, error)
}

type InterviewConfig struct {
	Temperature float64
	TopP        float64
}

type interviewService struct {
	repo       contract.SessionRepository
	classifier *answer.Classifier
	builder    *answer.Builder
	budget     *answer.Budget
	provider   llm.Provider
	publisher  IPublisherService
	logger     logger.ILogger
	cfg        InterviewConfig
	now        func() time.Time
}

func NewInterviewService(
	repo contract.SessionRepository,
	classifier *answer.Classifier,
	builder *answer.Builder,
	budget *answer.Budget,
	provider llm.Provider,
	publisher IPublisherService,
	log logger.ILogger,
	cfg InterviewConfig,
) IInterviewService {
	return &interviewService{
		repo:       repo,
		classifier: classifier,
		builder:    builder,
		budget:     budget,
		provider:   provider,
		publisher:  publisher,
		logger:     log,
		cfg:        cfg,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// turn is a question that passed validation, with everything needed to
// answer it.
type turn struct {
	sessionId uuid.UUID
	question  string
	style     answer.ResolvedStyle
	kind      answer.Kind
	messages  []llm.Message
	maxTokens int
}

func (s *interviewService) prepare(ctx context.Context, req *dto.AskQuestionRequest) (*turn, error) {
	id, err := parseSessionId(req.SessionId)
	if err != nil {
		return nil, err
	}
	session, err := s.repo.FindById(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, apperror.Validation("Question must not be empty")
	}

	style, err := toStyle(req.Style)
	if err != nil {
		return nil, err
	}

	t := &turn{
		sessionId: id,
		question:  question,
		style:     answer.ResolveStyle(style, question),
		kind:      s.classifier.Classify(question),
	}
	if t.kind.Bypass() {
		return t, nil
	}

	t.messages = s.builder.Build(answer.PromptInput{
		Question:     question,
		ProfileText:  session.ProfileText,
		History:      session.Turns(),
		Style:        t.style,
		SystemPrompt: req.SystemPrompt,
	})
	t.maxTokens = s.budget.For(question)
	return t, nil
}

func (s *interviewService) options(t *turn) []llm.Option {
	opts := []llm.Option{
		llm.WithTemperature(s.cfg.Temperature),
		llm.WithMaxTokens(t.maxTokens),
	}
	if s.cfg.TopP > 0 {
		opts = append(opts, llm.WithTopP(s.cfg.TopP))
	}
	return opts
}

func (s *interviewService) Ask(ctx context.Context, req *dto.AskQuestionRequest) (*dto.AnswerResponse, error) {
	t, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	var text string
	if t.kind.Bypass() {
		text = answer.Template(t.kind, t.question)
	} else {
		raw, err := s.provider.Chat(ctx, t.messages, s.options(t)...)
		if err != nil {
			return nil, s.providerError(t, err)
		}
		text = answer.Postprocess(raw, t.style)
	}

	return s.persist(ctx, t, text)
}

func (s *interviewService) AskStream(ctx context.Context, req *dto.AskQuestionRequest) (*AnswerStream, error) {
	t, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	return &AnswerStream{service: s, turn: t}, nil
}

// AnswerStream is a validated question waiting to be answered incrementally.
type AnswerStream struct {
	service *interviewService
	turn    *turn
}

// Run hands formatted chunks to onChunk as the model produces them and
// persists the answer once the stream completes. A failed stream stores
// nothing.
func (a *AnswerStream) Run(ctx context.Context, onChunk ChunkFunc) (*dto.AnswerResponse, error) {
	s, t := a.service, a.turn

	if t.kind.Bypass() {
		text := answer.Template(t.kind, t.question)
		if err := onChunk(text); err != nil {
			return nil, err
		}
		return s.persist(ctx, t, text)
	}

	formatter := answer.NewFormatter(t.style)
	var (
		full    strings.Builder
		sinkErr error
	)
	emit := func(chunk string) error {
		if chunk == "" {
			return nil
		}
		full.WriteString(chunk)
		if err := onChunk(chunk); err != nil {
			sinkErr = err
			return err
		}
		return nil
	}

	_, err := s.provider.Stream(ctx, t.messages, func(delta string) error {
		return emit(formatter.Write(delta))
	}, s.options(t)...)
	if sinkErr != nil {
		return nil, sinkErr
	}
	if err != nil {
		return nil, s.providerError(t, err)
	}
	if err := emit(formatter.Flush()); err != nil {
		return nil, err
	}

	return s.persist(ctx, t, full.String())
}

func (s *interviewService) persist(ctx context.Context, t *turn, text string) (*dto.AnswerResponse, error) {
	entry := entity.QnAEntry{
		Question:  t.question,
		Answer:    text,
		CreatedAt: s.now(),
		Style:     t.style,
	}
	if err := s.repo.AppendQnA(ctx, t.sessionId, entry); err != nil {
		return nil, mapRepoError(err)
	}

	s.publisher.Publish(ctx, events.TypeQnA, map[string]interface{}{
		"session_id":     t.sessionId.String(),
		"question":       t.question,
		"answer":         text,
		"classification": string(t.kind),
		"style":          t.style,
		"provider":       s.provider.Name(),
	})

	return &dto.AnswerResponse{
		Answer:    text,
		Style:     entry.Style,
		CreatedAt: entry.CreatedAt,
	}, nil
}

func (s *interviewService) providerError(t *turn, err error) error {
	s.logger.Error("INTERVIEW", "LLM request failed", map[string]interface{}{
		"session_id": t.sessionId.String(),
		"provider":   s.provider.Name(),
		"error":      err.Error(),
	})
	return apperror.Provider("LLM provider request failed", err)
}

func toStyle(req *dto.StyleRequest) (answer.Style, error) {
	var style answer.Style
	if req == nil {
		return style, nil
	}

	if req.Mode != "" {
		mode, err := answer.ParseMode(req.Mode)
		if err != nil {
			return style, apperror.Wrap(apperror.KindValidation, "Invalid style mode", err)
		}
		style.Mode = mode
	}
	if req.Tone != "" {
		tone, err := answer.ParseTone(req.Tone)
		if err != nil {
			return style, apperror.Wrap(apperror.KindValidation, "Invalid style tone", err)
		}
		style.Tone = tone
	}
	if req.Layout != "" {
		layout, err := answer.ParseLayout(req.Layout)
		if err != nil {
			return style, apperror.Wrap(apperror.KindValidation, "Invalid style layout", err)
		}
		style.Layout = layout
	}
	style.Variability = req.Variability
	style.Seed = req.Seed
	return style, nil
}
