package codeeval

import (
	"encoding/json"
	"fmt"
	"strings"

	"interview-assistant-be/pkg/llm"
)

const critiqueDirective = `You are a senior coding interview evaluator. Given a coding problem (if provided), a candidate's source code, and the language, produce a concise, world-class critique.

Output strictly in this format (exact headings):
Summary:
<3-6 sentence overview of approach and correctness>

Strengths:
- <bullet 1>
- <bullet 2>

Weaknesses:
- <bullet 1>
- <bullet 2>

Scores: {"correctness":<0..1>,"optimization":<0..1>,"approach_explanation":<0..1>,"complexity_discussion":<0..1>,"edge_cases_testing":<0..1>,"total":<0..1>}

Recommendations:
- <actionable bullet 1>
- <actionable bullet 2>

Guidance: Be concrete. Do not use placeholders. If the problem is missing, infer the likely intent from the code.`

// OfflineCritique is used when no model backend is configured.
const OfflineCritique = "Summary: Offline mode. Cannot evaluate without LLM.\n\n" +
	"Strengths:\n- Runs locally\n\n" +
	"Weaknesses:\n- No LLM available\n\n" +
	`Scores: {"correctness":0.0,"optimization":0.0,"approach_explanation":0.0,"complexity_discussion":0.0,"edge_cases_testing":0.0,"total":0.0}` + "\n\n" +
	"Recommendations:\n- Configure LLM provider"

type Scores struct {
	Correctness          float64 `json:"correctness"`
	Optimization         float64 `json:"optimization"`
	ApproachExplanation  float64 `json:"approach_explanation"`
	ComplexityDiscussion float64 `json:"complexity_discussion"`
	EdgeCasesTesting     float64 `json:"edge_cases_testing"`
	Total                float64 `json:"total"`
}

type Critique struct {
	Summary         string
	Strengths       []string
	Weaknesses      []string
	Recommendations []string
	Scores          Scores
}

// CritiqueMessages builds the conversation asking the model for a critique.
func CritiqueMessages(problem, code, language, conversation string) []llm.Message {
	if strings.TrimSpace(problem) == "" {
		problem = "N/A"
	}

	var user strings.Builder
	if conversation = strings.TrimSpace(conversation); conversation != "" {
		fmt.Fprintf(&user, "Conversation context:\n%s\n\n", conversation)
	}
	fmt.Fprintf(&user, "Problem: %s\nLanguage: %s\n\nCode:\n```%s\n%s\n```", problem, language, language, code)

	return []llm.Message{
		{Role: llm.RoleSystem, Content: critiqueDirective},
		{Role: llm.RoleUser, Content: user.String()},
	}
}

type section int

const (
	sectionNone section = iota
	sectionSummary
	sectionStrengths
	sectionWeaknesses
	sectionScores
	sectionRecommendations
)

var sectionHeadings = []struct {
	name    string
	section section
}{
	{"summary", sectionSummary},
	{"strengths", sectionStrengths},
	{"weaknesses", sectionWeaknesses},
	{"scores", sectionScores},
	{"recommendations", sectionRecommendations},
}

// ParseCritique reads the sectioned critique format. Headings may carry
// markdown emphasis; unknown text outside a section is ignored and scores that
// cannot be parsed stay zero.
func ParseCritique(text string) Critique {
	var (
		c       Critique
		current = sectionNone
		summary []string
		scores  strings.Builder
	)

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)

		if sec, rest, ok := heading(line); ok {
			current = sec
			line = rest
			if line == "" {
				continue
			}
		}

		switch current {
		case sectionSummary:
			if line != "" {
				summary = append(summary, line)
			}
		case sectionStrengths:
			c.Strengths = appendBullet(c.Strengths, line)
		case sectionWeaknesses:
			c.Weaknesses = appendBullet(c.Weaknesses, line)
		case sectionRecommendations:
			c.Recommendations = appendBullet(c.Recommendations, line)
		case sectionScores:
			scores.WriteString(line)
		}
	}

	c.Summary = strings.Join(summary, " ")
	c.Scores = parseScores(scores.String())
	return c
}

func heading(line string) (section, string, bool) {
	plain := strings.TrimLeft(line, "#* ")
	colon := strings.IndexByte(plain, ':')
	if colon < 0 {
		return sectionNone, "", false
	}

	name := strings.ToLower(strings.Trim(plain[:colon], "* "))
	for _, h := range sectionHeadings {
		if name == h.name {
			rest := strings.TrimSpace(strings.TrimLeft(plain[colon+1:], "* "))
			return h.section, rest, true
		}
	}
	return sectionNone, "", false
}

func appendBullet(items []string, line string) []string {
	for _, marker := range []string{"- ", "* ", "• "} {
		if strings.HasPrefix(line, marker) {
			if item := strings.TrimSpace(line[len(marker):]); item != "" {
				return append(items, item)
			}
		}
	}
	return items
}

func parseScores(text string) Scores {
	var s Scores
	start := strings.IndexByte(text, '{')
	end := strings.IndexByte(text, '}')
	if start < 0 || end <= start {
		return s
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &s); err != nil {
		return Scores{}
	}
	return s
}
