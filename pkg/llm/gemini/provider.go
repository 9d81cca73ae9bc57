package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"interview-assistant-be/pkg/llm"

	"google.golang.org/genai"
)

const (
	Name         = "gemini"
	DefaultModel = "gemini-2.5-pro"
)

type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

type Provider struct {
	client   *genai.Client
	model    string
	timeout  time.Duration
	defaults llm.Options
}

var _ llm.Provider = (*Provider)(nil)

func New(ctx context.Context, cfg Config, defaults llm.Options) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Provider{
		client:   client,
		model:    cfg.Model,
		timeout:  cfg.Timeout,
		defaults: defaults,
	}, nil
}

func (p *Provider) Name() string { return Name }

func (p *Provider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	model, contents, config := p.request(history, opts)
	resp, err := p.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return "", wrapError(err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", llm.NewError(Name, 0, errors.New("empty completion"))
	}
	return text, nil
}

func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

func (p *Provider) Stream(ctx context.Context, history []llm.Message, onDelta llm.DeltaFunc, opts ...llm.Option) (string, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	model, contents, config := p.request(history, opts)

	var full strings.Builder
	for resp, err := range p.client.Models.GenerateContentStream(ctx, model, contents, config) {
		if err != nil {
			return full.String(), wrapError(err)
		}
		delta := resp.Text()
		if delta == "" {
			continue
		}
		full.WriteString(delta)
		if err := onDelta(delta); err != nil {
			return full.String(), err
		}
	}
	if strings.TrimSpace(full.String()) == "" {
		return "", llm.NewError(Name, 0, errors.New("empty completion"))
	}
	return full.String(), nil
}

// request maps the conversation onto gemini contents. System messages become
// the system instruction and assistant turns use the "model" role.
func (p *Provider) request(history []llm.Message, opts []llm.Option) (string, []*genai.Content, *genai.GenerateContentConfig) {
	o := llm.Apply(p.defaults, opts...)

	model := p.model
	if o.Model != "" {
		model = o.Model
	}

	var system []string
	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		switch msg.Role {
		case llm.RoleSystem:
			system = append(system, msg.Content)
		case llm.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		}
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(o.Temperature)),
	}
	if len(system) > 0 {
		config.SystemInstruction = genai.NewContentFromText(strings.Join(system, "\n\n"), genai.RoleUser)
	}
	if o.MaxTokens > 0 {
		config.MaxOutputTokens = int32(o.MaxTokens)
	}
	if o.TopP > 0 {
		config.TopP = genai.Ptr(float32(o.TopP))
	}
	return model, contents, config
}

func (p *Provider) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.timeout)
}

func wrapError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return llm.NewError(Name, apiErr.Code, err)
	}
	return llm.NewError(Name, 0, err)
}
