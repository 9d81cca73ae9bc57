package answer

import (
	"fmt"
	"strings"
	"testing"

	"interview-assistant-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBuilder() *Builder {
	return NewBuilder(NewClassifier(DefaultRules()), DefaultHistoryWindow)
}

func TestBuildWindowsHistory(t *testing.T) {
	history := make([]Turn, 7)
	for i := range history {
		history[i] = Turn{Question: fmt.Sprintf("q%d", i), Answer: fmt.Sprintf("a%d", i)}
	}

	msgs := newTestBuilder().Build(PromptInput{Question: "  What is a mutex?  ", History: history})

	require.Len(t, msgs, 1+2*DefaultHistoryWindow+1)
	assert.Equal(t, llm.RoleSystem, msgs[0].Role)
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: "q2"}, msgs[1])
	assert.Equal(t, llm.Message{Role: llm.RoleAssistant, Content: "a2"}, msgs[2])
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: "What is a mutex?"}, msgs[len(msgs)-1])
}

func TestBuildSystemMessage(t *testing.T) {
	b := newTestBuilder()
	style := ResolvedStyle{Mode: ModeConcise, Tone: ToneMentor}

	t.Run("default directive and style", func(t *testing.T) {
		sys := b.Build(PromptInput{Question: "What is a mutex?", Style: style})[0].Content
		assert.True(t, strings.HasPrefix(sys, SystemDirective))
		assert.Contains(t, sys, "Style & Tone Overrides:")
		assert.Contains(t, sys, "Context Fallback Overrides")
		assert.NotContains(t, sys, "Candidate Profile Context")
	})

	t.Run("system prompt override", func(t *testing.T) {
		sys := b.Build(PromptInput{Question: "What is a mutex?", SystemPrompt: "You are terse.", Style: style})[0].Content
		assert.True(t, strings.HasPrefix(sys, "You are terse."))
		assert.NotContains(t, sys, "AI Interview Assistant")
	})

	t.Run("profile and first person persona", func(t *testing.T) {
		sys := b.Build(PromptInput{
			Question:    "Tell me about yourself",
			ProfileText: "Backend engineer, 6 years of Go.",
			Style:       style,
		})[0].Content
		assert.Contains(t, sys, "Backend engineer, 6 years of Go.")
		assert.Contains(t, sys, "Interview Persona Overrides")
	})

	t.Run("persona needs a profile", func(t *testing.T) {
		sys := b.Build(PromptInput{Question: "Tell me about yourself", Style: style})[0].Content
		assert.NotContains(t, sys, "Interview Persona Overrides")
	})

	t.Run("comparison", func(t *testing.T) {
		sys := b.Build(PromptInput{Question: "Compare REST and GraphQL", Style: style})[0].Content
		assert.Contains(t, sys, "Comparison Format Overrides")
	})

	t.Run("system design", func(t *testing.T) {
		sys := b.Build(PromptInput{Question: "How would you design a URL shortener?", Style: style})[0].Content
		assert.Contains(t, sys, "System Design Overrides")
		assert.NotContains(t, sys, "UI Design Overrides")
	})

	t.Run("ui design suppresses system design", func(t *testing.T) {
		sys := b.Build(PromptInput{Question: "Design the front page of a news site", Style: style})[0].Content
		assert.Contains(t, sys, "UI Design Overrides")
		assert.NotContains(t, sys, "System Design Overrides")
	})

	t.Run("follow up with history has context", func(t *testing.T) {
		sys := b.Build(PromptInput{
			Question: "Can you explain that with an example?",
			History:  []Turn{{Question: "What is a mutex?", Answer: "A lock."}},
			Style:    style,
		})[0].Content
		assert.NotContains(t, sys, "Context Fallback Overrides")
	})

	t.Run("technical strategy", func(t *testing.T) {
		sys := b.Build(PromptInput{Question: "How would you improve API performance?", Style: style})[0].Content
		assert.Contains(t, sys, "Technical Strategy Overrides")
	})
}

func TestBuildText(t *testing.T) {
	text := newTestBuilder().BuildText(PromptInput{
		Question: "What is a mutex?",
		History:  []Turn{{Question: "hi there", Answer: "hello"}},
	})

	assert.Contains(t, text, "User: hi there")
	assert.Contains(t, text, "Assistant: hello")
	assert.True(t, strings.HasSuffix(text, "User: What is a mutex?"))
}
