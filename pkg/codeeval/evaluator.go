// Package codeeval scores candidate code with static signals and a model critique.
package codeeval

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"interview-assistant-be/pkg/llm"
	"interview-assistant-be/pkg/llm/mock"
)

const (
	critiqueTemperature = 0.2
	critiqueMaxTokens   = 1200
	defaultLanguage     = "python"
)

type Request struct {
	Problem  string
	Code     string
	Language string
	// Conversation is recent Q&A text given to the model as context.
	Conversation string
}

type Result struct {
	Language string
	Signals  Signals
	Critique Critique
	Raw      string
}

type Evaluator struct {
	provider llm.Provider
}

func NewEvaluator(provider llm.Provider) *Evaluator {
	return &Evaluator{provider: provider}
}

// Evaluate runs the static analysis and asks the model for a critique. The
// offline mock backend gets a fixed critique instead of a model call.
func (e *Evaluator) Evaluate(ctx context.Context, req Request) (Result, error) {
	lang := NormalizeLanguage(req.Language)
	if strings.TrimSpace(req.Language) == "" {
		lang = defaultLanguage
	}

	res := Result{
		Language: lang,
		Signals:  Analyze(req.Code, lang),
	}

	raw := OfflineCritique
	if e.provider.Name() != mock.Name {
		var err error
		raw, err = e.provider.Chat(ctx,
			CritiqueMessages(req.Problem, req.Code, lang, req.Conversation),
			llm.WithTemperature(critiqueTemperature),
			llm.WithMaxTokens(critiqueMaxTokens),
		)
		if err != nil {
			return res, fmt.Errorf("code critique: %w", err)
		}
	}

	res.Raw = raw
	res.Critique = ParseCritique(raw)
	return res, nil
}

var fencedBlock = regexp.MustCompile("(?s)```([\\w+#-]*)[ \\t]*\\n(.*?)\\n[ \\t]*```")

// LargestCodeBlock returns the longest fenced code block in a markdown answer.
// Mermaid diagrams are not code and are skipped.
func LargestCodeBlock(markdown string) (code, language string, ok bool) {
	for _, m := range fencedBlock.FindAllStringSubmatch(markdown, -1) {
		lang := strings.ToLower(m[1])
		if lang == "mermaid" {
			continue
		}
		body := strings.TrimSpace(m[2])
		if len(body) > len(code) {
			code, language = body, lang
		}
	}
	if code == "" {
		return "", "", false
	}
	if language == "" {
		language = defaultLanguage
	}
	return code, language, true
}
