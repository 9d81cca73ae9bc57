package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	TopP        float64
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithTopP(p float64) Option {
	return func(o *Options) {
		o.TopP = p
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// Apply folds opts over the given defaults.
func Apply(defaults Options, opts ...Option) Options {
	for _, opt := range opts {
		opt(&defaults)
	}
	return defaults
}

// DeltaFunc receives each piece of text as the model produces it. Returning an
// error aborts the stream.
type DeltaFunc func(delta string) error

// Provider defines the contract for any LLM backend
type Provider interface {
	// Name identifies the backend ("openai", "gemini", "mock").
	Name() string

	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)

	// Stream behaves like Chat but hands text to onDelta as it arrives and
	// returns the full concatenated text.
	Stream(ctx context.Context, history []Message, onDelta DeltaFunc, options ...Option) (string, error)
}

// ErrProvider marks every failure coming from a model backend.
var ErrProvider = errors.New("llm provider error")

// Error describes a failed provider call.
type Error struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{ErrProvider, e.Err}
}

func NewError(provider string, status int, err error) *Error {
	return &Error{Provider: provider, StatusCode: status, Err: err}
}

// Render flattens a conversation into one prompt for backends that take a
// single string.
func Render(history []Message) string {
	var b strings.Builder
	for i, msg := range history {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch msg.Role {
		case RoleSystem:
			b.WriteString(msg.Content)
		case RoleAssistant:
			b.WriteString("Assistant: ")
			b.WriteString(msg.Content)
		default:
			b.WriteString("User: ")
			b.WriteString(msg.Content)
		}
	}
	return b.String()
}

// LastUserMessage returns the content of the final user turn.
func LastUserMessage(history []Message) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == RoleUser {
			return history[i].Content
		}
	}
	return ""
}
