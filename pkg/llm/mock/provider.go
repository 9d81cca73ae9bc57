package mock

import (
	"context"
	"fmt"
	"strings"

	"interview-assistant-be/pkg/llm"
)

const Name = "mock"

const maxEcho = 120

// Provider answers without any network call. The reply depends only on the
// last user message, so identical questions always get identical text.
type Provider struct{}

var _ llm.Provider = (*Provider)(nil)

func New() *Provider { return &Provider{} }

func (p *Provider) Name() string { return Name }

func (p *Provider) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	return Reply(llm.LastUserMessage(history)), nil
}

func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

// Stream emits the Chat reply word by word.
func (p *Provider) Stream(ctx context.Context, history []llm.Message, onDelta llm.DeltaFunc, _ ...llm.Option) (string, error) {
	text := Reply(llm.LastUserMessage(history))
	for _, chunk := range Chunks(text) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if err := onDelta(chunk); err != nil {
			return "", err
		}
	}
	return text, nil
}

// Reply builds the placeholder answer for a question.
func Reply(question string) string {
	q := strings.Join(strings.Fields(question), " ")
	if r := []rune(q); len(r) > maxEcho {
		q = strings.TrimSpace(string(r[:maxEcho])) + "..."
	}
	if q == "" {
		q = "(empty question)"
	}

	return fmt.Sprintf(`- This is a placeholder answer for: %s
- No LLM API key is configured, so the server answered locally.
- Set OPENAI_API_KEY, GROQ_API_KEY or GEMINI_API_KEY to get real answers.

## Key Points

- Restate the question in your own words before answering.
- Lead with the core idea, then support it with one concrete example.
- Close with the trade-offs and what you would do differently.`, q)
}

// Chunks splits text into the pieces Stream emits. Concatenating them yields text.
func Chunks(text string) []string {
	return strings.SplitAfter(text, " ")
}
