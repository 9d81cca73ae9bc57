package answer

import (
	"strings"

	"interview-assistant-be/pkg/llm"
)

const DefaultHistoryWindow = 5

// Turn is one earlier question/answer exchange.
type Turn struct {
	Question string
	Answer   string
}

type PromptInput struct {
	Question     string
	ProfileText  string
	History      []Turn
	Style        ResolvedStyle
	SystemPrompt string // replaces SystemDirective when set
}

// Builder assembles model conversations from a question and its session context.
type Builder struct {
	classifier    *Classifier
	historyWindow int
}

func NewBuilder(classifier *Classifier, historyWindow int) *Builder {
	if historyWindow <= 0 {
		historyWindow = DefaultHistoryWindow
	}
	return &Builder{classifier: classifier, historyWindow: historyWindow}
}

// Build returns the system message, the most recent history window as
// user/assistant pairs, and the question as the final user message.
func (b *Builder) Build(in PromptInput) []llm.Message {
	messages := []llm.Message{{Role: llm.RoleSystem, Content: b.systemMessage(in)}}

	history := in.History
	if len(history) > b.historyWindow {
		history = history[len(history)-b.historyWindow:]
	}
	for _, turn := range history {
		if q := strings.TrimSpace(turn.Question); q != "" {
			messages = append(messages, llm.Message{Role: llm.RoleUser, Content: q})
		}
		if a := strings.TrimSpace(turn.Answer); a != "" {
			messages = append(messages, llm.Message{Role: llm.RoleAssistant, Content: a})
		}
	}

	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: strings.TrimSpace(in.Question)})
	return messages
}

// BuildText is Build flattened to one prompt string.
func (b *Builder) BuildText(in PromptInput) string {
	return llm.Render(b.Build(in))
}

func (b *Builder) systemMessage(in PromptInput) string {
	var prompt strings.Builder

	if strings.TrimSpace(in.SystemPrompt) != "" {
		prompt.WriteString(strings.TrimSpace(in.SystemPrompt))
	} else {
		prompt.WriteString(SystemDirective)
	}

	q := strings.ToLower(in.Question)
	profile := strings.TrimSpace(in.ProfileText)

	if profile != "" {
		writeSection(&prompt, "Candidate Profile Context (authoritative for resume/personal questions):\n"+profile)
		if needsFirstPerson(q) {
			writeSection(&prompt, personaOverrides)
		}
	}

	if containsAny(q, b.classifier.Rules().ComparisonKeywords) {
		writeSection(&prompt, comparisonOverrides)
	}
	if !hasSufficientContext(q, len(in.History) > 0) {
		writeSection(&prompt, contextFallbackOverrides)
	}
	if isSystemDesign(q) {
		writeSection(&prompt, systemDesignOverrides)
	}
	if containsAny(q, databaseSchemaKeywords) {
		writeSection(&prompt, databaseSchemaOverrides)
	}
	if containsAny(q, uiDesignKeywords) {
		writeSection(&prompt, uiDesignOverrides)
	}
	if containsAny(q, algorithmKeywords) {
		writeSection(&prompt, algorithmOverrides)
	}
	if isTechnicalStrategy(q) {
		writeSection(&prompt, technicalStrategyOverrides)
	}

	writeSection(&prompt, in.Style.Directive())
	return prompt.String()
}

func writeSection(prompt *strings.Builder, section string) {
	prompt.WriteString("\n\n")
	prompt.WriteString(strings.TrimRight(section, "\n"))
}
