package answer

import (
	"strings"
	"unicode"
)

type Kind string

const (
	KindGreeting  Kind = "greeting"
	KindOffTopic  Kind = "off_topic"
	KindAmbiguous Kind = "ambiguous"
	KindNormal    Kind = "normal"
)

// Bypass reports whether questions of this kind are answered from a template
// without calling the model.
func (k Kind) Bypass() bool {
	return k != KindNormal
}

type Classifier struct {
	rules Rules
}

func NewClassifier(rules Rules) *Classifier {
	return &Classifier{rules: rules}
}

func (c *Classifier) Rules() Rules {
	return c.rules
}

// Classify evaluates greeting, off-topic and ambiguous rules in that order.
func (c *Classifier) Classify(question string) Kind {
	switch {
	case c.IsGreeting(question):
		return KindGreeting
	case c.IsOffTopic(question):
		return KindOffTopic
	case c.IsAmbiguous(question):
		return KindAmbiguous
	default:
		return KindNormal
	}
}

func (c *Classifier) IsGreeting(question string) bool {
	q := strings.ToLower(strings.TrimSpace(question))
	q = strings.NewReplacer("!", "", ".", "", ",", "", "?", "").Replace(q)
	q = strings.TrimSpace(q)
	if q == "" {
		return false
	}
	for _, g := range c.rules.Greetings {
		if q == g {
			return true
		}
	}
	for _, p := range c.rules.GreetingPrefixes {
		if strings.HasPrefix(q, p) {
			return true
		}
	}
	return false
}

func (c *Classifier) IsOffTopic(question string) bool {
	q := strings.ToLower(strings.TrimSpace(question))
	if q == "" {
		return false
	}
	if c.hasTechnicalTerm(q) {
		return false
	}
	for _, kw := range c.rules.OffTopicKeywords {
		if containsWord(q, kw) {
			return true
		}
	}
	for _, phrase := range c.rules.OffTopicPhrases {
		if strings.Contains(q, phrase) {
			return true
		}
	}
	return false
}

func (c *Classifier) IsAmbiguous(question string) bool {
	q := strings.ToLower(strings.TrimSpace(question))
	technical := c.hasTechnicalTerm(q)

	if len([]rune(q)) < c.rules.MinQuestionLength {
		return !technical
	}

	for _, pattern := range c.rules.VaguePatterns {
		if !containsWord(q, pattern) {
			continue
		}
		if len(strings.Fields(q)) < c.rules.MinVagueWords {
			return true
		}
		return !technical
	}
	return false
}

func (c *Classifier) hasTechnicalTerm(q string) bool {
	for _, term := range c.rules.TechnicalTerms {
		if containsWordPrefix(q, term) {
			return true
		}
	}
	return false
}

// containsWord matches term on word boundaries, allowing a plural "s". Terms
// with leading or trailing spaces already carry their own boundary and are
// matched as plain substrings.
func containsWord(text, term string) bool {
	if term == "" {
		return false
	}
	if strings.TrimSpace(term) != term {
		return strings.Contains(text, term)
	}
	for i := 0; ; {
		idx := strings.Index(text[i:], term)
		if idx < 0 {
			return false
		}
		start := i + idx
		end := start + len(term)
		if end < len(text) && text[end] == 's' {
			if end+1 >= len(text) || !isWordByte(text[end+1]) {
				end++
			}
		}
		if (start == 0 || !isWordByte(text[start-1])) && (end >= len(text) || !isWordByte(text[end])) {
			return true
		}
		i = start + 1
	}
}

// containsWordPrefix matches term at the start of a word, so "design" also
// matches "designing".
func containsWordPrefix(text, term string) bool {
	if term == "" {
		return false
	}
	for i := 0; ; {
		idx := strings.Index(text[i:], term)
		if idx < 0 {
			return false
		}
		start := i + idx
		if start == 0 || !isWordByte(text[start-1]) {
			return true
		}
		i = start + 1
	}
}

func isWordByte(b byte) bool {
	r := rune(b)
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
