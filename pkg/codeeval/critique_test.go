package codeeval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCritique(t *testing.T) {
	text := `**Summary:** Uses a hash map for a single pass.
It handles duplicates correctly.

**Strengths:**
- Linear time
- Clear naming

### Weaknesses:
- No input validation

Scores: {"correctness":0.9,"optimization":0.8,"approach_explanation":0.7,"complexity_discussion":0.6,"edge_cases_testing":0.5,"total":0.7}

Recommendations:
- Validate empty input
* Add tests for negatives`

	c := ParseCritique(text)

	assert.Equal(t, "Uses a hash map for a single pass. It handles duplicates correctly.", c.Summary)
	assert.Equal(t, []string{"Linear time", "Clear naming"}, c.Strengths)
	assert.Equal(t, []string{"No input validation"}, c.Weaknesses)
	assert.Equal(t, []string{"Validate empty input", "Add tests for negatives"}, c.Recommendations)
	assert.Equal(t, Scores{
		Correctness:          0.9,
		Optimization:         0.8,
		ApproachExplanation:  0.7,
		ComplexityDiscussion: 0.6,
		EdgeCasesTesting:     0.5,
		Total:                0.7,
	}, c.Scores)
}

func TestParseCritiqueTolerance(t *testing.T) {
	t.Run("offline critique", func(t *testing.T) {
		c := ParseCritique(OfflineCritique)
		assert.Equal(t, "Offline mode. Cannot evaluate without LLM.", c.Summary)
		assert.Equal(t, []string{"Runs locally"}, c.Strengths)
		assert.Equal(t, []string{"No LLM available"}, c.Weaknesses)
		assert.Equal(t, []string{"Configure LLM provider"}, c.Recommendations)
		assert.Equal(t, Scores{}, c.Scores)
	})

	t.Run("scores spanning lines", func(t *testing.T) {
		c := ParseCritique("Scores:\n{\"correctness\": 1,\n\"total\": 0.5}\n")
		assert.Equal(t, 1.0, c.Scores.Correctness)
		assert.Equal(t, 0.5, c.Scores.Total)
	})

	t.Run("malformed scores stay zero", func(t *testing.T) {
		c := ParseCritique("Scores: {correctness: high}")
		assert.Equal(t, Scores{}, c.Scores)
	})

	t.Run("free text", func(t *testing.T) {
		c := ParseCritique("The model ignored the format.")
		assert.Empty(t, c.Summary)
		assert.Empty(t, c.Strengths)
	})
}

func TestCritiqueMessages(t *testing.T) {
	msgs := CritiqueMessages("", "print(1)", "python", "Q: hi\nA: hello")

	assert.Len(t, msgs, 2)
	assert.Contains(t, msgs[0].Content, "senior coding interview evaluator")
	assert.Contains(t, msgs[1].Content, "Problem: N/A")
	assert.Contains(t, msgs[1].Content, "```python\nprint(1)\n```")
	assert.Contains(t, msgs[1].Content, "Conversation context:\nQ: hi")
}
