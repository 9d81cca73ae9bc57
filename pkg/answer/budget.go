package answer

import "strings"

const (
	MinTokenBudget = 300
	MaxTokenBudget = 1200
)

// Tier is the estimated complexity of a question.
type Tier int

const (
	TierSimple Tier = iota
	TierStandard
	TierCode
	TierComplex
)

type Budget struct {
	rules    Rules
	simple   int
	code     int
	complex  int
	override int
}

// NewBudget builds a token budget from the per-tier limits. A positive override
// replaces every computed value.
func NewBudget(rules Rules, simple, code, complex, override int) *Budget {
	if simple <= 0 {
		simple = MinTokenBudget
	}
	if code <= 0 {
		code = 800
	}
	if complex <= 0 {
		complex = MaxTokenBudget
	}
	return &Budget{rules: rules, simple: simple, code: code, complex: complex, override: override}
}

// TierOf returns the highest tier whose indicators appear in the question,
// raised by one for long questions.
func (b *Budget) TierOf(question string) Tier {
	q := strings.ToLower(question)

	tier := TierStandard
	switch {
	case containsAny(q, b.rules.ComplexIndicators):
		tier = TierComplex
	case containsAny(q, b.rules.CodeIndicators):
		tier = TierCode
	case containsAny(q, b.rules.SimpleIndicators):
		tier = TierSimple
	}

	if b.rules.LongQuestionWords > 0 && len(strings.Fields(q)) > b.rules.LongQuestionWords && tier < TierComplex {
		tier++
	}
	return tier
}

// For picks the max_tokens passed to the model for this question.
func (b *Budget) For(question string) int {
	if b.override > 0 {
		return b.override
	}

	var tokens int
	switch b.TierOf(question) {
	case TierSimple:
		tokens = b.simple
	case TierCode:
		tokens = b.code
	case TierComplex:
		tokens = b.complex
	default:
		tokens = (b.simple + b.code) / 2
	}
	return clampInt(tokens, MinTokenBudget, MaxTokenBudget)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
