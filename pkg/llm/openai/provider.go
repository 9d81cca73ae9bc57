package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"interview-assistant-be/pkg/llm"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	Name           = "openai"
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "openai/gpt-oss-120b"
)

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Provider talks to any OpenAI-compatible chat completions endpoint.
type Provider struct {
	client   openai.Client
	model    string
	timeout  time.Duration
	defaults llm.Options
}

var _ llm.Provider = (*Provider)(nil)

func New(cfg Config, defaults llm.Options) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithHTTPClient(&http.Client{}),
		option.WithMaxRetries(0),
	)

	return &Provider{
		client:   client,
		model:    cfg.Model,
		timeout:  cfg.Timeout,
		defaults: defaults,
	}
}

func (p *Provider) Name() string { return Name }

func (p *Provider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	resp, err := p.client.Chat.Completions.New(ctx, p.params(history, opts))
	if err != nil {
		return "", wrapError(err)
	}
	if len(resp.Choices) == 0 {
		return "", llm.NewError(Name, 0, errors.New("response contained no choices"))
	}

	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", llm.NewError(Name, 0, errors.New("empty completion"))
	}
	return content, nil
}

func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

func (p *Provider) Stream(ctx context.Context, history []llm.Message, onDelta llm.DeltaFunc, opts ...llm.Option) (string, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	stream := p.client.Chat.Completions.NewStreaming(ctx, p.params(history, opts))
	defer stream.Close()

	var full strings.Builder
	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		full.WriteString(delta)
		if err := onDelta(delta); err != nil {
			return full.String(), err
		}
	}
	if err := stream.Err(); err != nil {
		return full.String(), wrapError(err)
	}
	if strings.TrimSpace(full.String()) == "" {
		return "", llm.NewError(Name, 0, errors.New("empty completion"))
	}
	return full.String(), nil
}

func (p *Provider) params(history []llm.Message, opts []llm.Option) openai.ChatCompletionNewParams {
	o := llm.Apply(p.defaults, opts...)

	model := p.model
	if o.Model != "" {
		model = o.Model
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history))
	for _, msg := range history {
		switch msg.Role {
		case llm.RoleSystem:
			messages = append(messages, openai.SystemMessage(msg.Content))
		case llm.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(msg.Content))
		default:
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(model),
		Messages:    messages,
		Temperature: openai.Float(o.Temperature),
	}
	if o.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(o.MaxTokens))
	}
	if o.TopP > 0 {
		params.TopP = openai.Float(o.TopP)
	}
	return params
}

func (p *Provider) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.timeout)
}

func wrapError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return llm.NewError(Name, apiErr.StatusCode, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return llm.NewError(Name, 0, fmt.Errorf("request timed out: %w", err))
	}
	return llm.NewError(Name, 0, err)
}
