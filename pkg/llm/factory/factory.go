package factory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"interview-assistant-be/pkg/llm"
	"interview-assistant-be/pkg/llm/gemini"
	"interview-assistant-be/pkg/llm/mock"
	"interview-assistant-be/pkg/llm/openai"
)

type Settings struct {
	Provider    string // openai | groq | gemini
	OpenAIKey   string
	OpenAIURL   string
	OpenAIModel string
	GeminiKey   string
	GeminiModel string
	Timeout     time.Duration
	Defaults    llm.Options
}

// NewProvider picks the backend once at startup. A provider without an API
// key resolves to the mock so the service stays usable offline.
func NewProvider(ctx context.Context, s Settings) (llm.Provider, error) {
	switch strings.ToLower(strings.TrimSpace(s.Provider)) {
	case "", "openai", "groq":
		if s.OpenAIKey == "" {
			return mock.New(), nil
		}
		return openai.New(openai.Config{
			APIKey:  s.OpenAIKey,
			BaseURL: s.OpenAIURL,
			Model:   s.OpenAIModel,
			Timeout: s.Timeout,
		}, s.Defaults), nil
	case "gemini":
		if s.GeminiKey == "" {
			return mock.New(), nil
		}
		return gemini.New(ctx, gemini.Config{
			APIKey:  s.GeminiKey,
			Model:   s.GeminiModel,
			Timeout: s.Timeout,
		}, s.Defaults)
	case "mock":
		return mock.New(), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", s.Provider)
	}
}
