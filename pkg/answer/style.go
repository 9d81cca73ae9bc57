package answer

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
)

type Tone string

const (
	ToneMentor    Tone = "mentor"
	ToneEvaluator Tone = "evaluator"
	TonePeer      Tone = "peer"
	ToneExecutive Tone = "executive"
	ToneAcademic  Tone = "academic"
	ToneCoaching  Tone = "coaching"
)

var tones = []Tone{ToneMentor, ToneEvaluator, TonePeer, ToneExecutive, ToneAcademic, ToneCoaching}

type Layout string

const (
	LayoutBullets   Layout = "bullets"
	LayoutNarrative Layout = "narrative"
	LayoutQA        Layout = "qa"
	LayoutFAQ       Layout = "faq"
	LayoutChecklist Layout = "checklist"
	LayoutProsCons  Layout = "pros-cons"
)

var layouts = []Layout{LayoutBullets, LayoutNarrative, LayoutQA, LayoutFAQ, LayoutChecklist, LayoutProsCons}

type Mode string

const (
	ModeAuto      Mode = "auto"
	ModeVaried    Mode = "varied"
	ModeConcise   Mode = "concise"
	ModeDeepDive  Mode = "deep-dive"
	ModeMentor    Mode = "mentor"
	ModeExecutive Mode = "executive"
)

var modes = []Mode{ModeAuto, ModeVaried, ModeConcise, ModeDeepDive, ModeMentor, ModeExecutive}

// concreteModes are the modes Auto and Varied resolve to.
var concreteModes = []Mode{ModeConcise, ModeDeepDive, ModeMentor, ModeExecutive}

const DefaultVariability = 0.5

// ParseTone accepts the canonical lower-case names; matching is case-insensitive.
func ParseTone(s string) (Tone, error) {
	for _, t := range tones {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tone %q", s)
}

func ParseLayout(s string) (Layout, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	switch norm {
	case "q&a", "q-a":
		return LayoutQA, nil
	case "pros/cons", "proscons":
		return LayoutProsCons, nil
	}
	for _, l := range layouts {
		if norm == string(l) {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown layout %q", s)
}

func ParseMode(s string) (Mode, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	if norm == "deepdive" {
		return ModeDeepDive, nil
	}
	for _, m := range modes {
		if norm == string(m) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// Style is the per-request style selection. Zero values mean "not supplied".
type Style struct {
	Mode        Mode
	Tone        Tone
	Layout      Layout
	Variability *float64
	Seed        *int64
}

// ResolvedStyle is the concrete style an answer was produced with.
type ResolvedStyle struct {
	Mode        Mode    `json:"mode"`
	Tone        Tone    `json:"tone"`
	Layout      Layout  `json:"layout,omitempty"`
	Variability float64 `json:"variability"`
}

// ResolveStyle turns a request style into a concrete one. Auto and Varied pick a
// concrete mode using a PRNG seeded from the request seed, or from the question
// text when no seed is given, so identical inputs always resolve identically.
func ResolveStyle(s Style, question string) ResolvedStyle {
	v := DefaultVariability
	if s.Variability != nil {
		v = clamp01(*s.Variability)
	}

	mode := s.Mode
	if mode == "" {
		mode = ModeAuto
	}
	if mode == ModeAuto || mode == ModeVaried {
		if v > 0 {
			rng := rand.New(rand.NewSource(seedFor(s.Seed, question)))
			mode = concreteModes[rng.Intn(len(concreteModes))]
		} else {
			mode = ModeExecutive
		}
	}

	tone := s.Tone
	if tone == "" {
		tone = ToneMentor
	}

	return ResolvedStyle{
		Mode:        mode,
		Tone:        tone,
		Layout:      s.Layout,
		Variability: v,
	}
}

func seedFor(seed *int64, question string) int64 {
	if seed != nil {
		return *seed
	}
	h := fnv.New64a()
	h.Write([]byte(strings.TrimSpace(question)))
	return int64(h.Sum64() >> 1)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

var toneRules = map[Tone]string{
	ToneMentor:    "Supportive, coaching tone with practical tips.",
	ToneEvaluator: "Objective and constructive, as in a mock interview debrief.",
	TonePeer:      "Conversational and exploratory, like two engineers co-learning.",
	ToneExecutive: "Crisp, outcome-focused, confident.",
	ToneAcademic:  "Formal, rigorous definitions and citations where appropriate.",
	ToneCoaching:  "Encouraging, step-by-step guidance.",
}

var layoutRules = map[Layout]string{
	LayoutBullets:   "Prefer bullets with minimal headings.",
	LayoutNarrative: "Short paragraphs, minimal headings.",
	LayoutQA:        "Q→A pairs.",
	LayoutFAQ:       "FAQ format.",
	LayoutChecklist: "Checklist of steps.",
	LayoutProsCons:  "Pros/Cons section included.",
}

var modeRules = map[Mode]string{
	ModeConcise:   "Keep it tight. 4-6 bullets max. Avoid subheadings unless necessary.",
	ModeDeepDive:  "Provide rich sections with 'Why it matters', 'Trade-offs', and a short example.",
	ModeMentor:    "Use a coaching voice. Add 'Pitfalls' and 'What to practice' sections when helpful.",
	ModeExecutive: "Lead with outcomes and business impact. Use short paragraphs and a 'Bottom line' section.",
}

// Directive renders the style as natural-language instructions for the model.
func (r ResolvedStyle) Directive() string {
	layoutRule := "Use judgement for best readability."
	if rule, ok := layoutRules[r.Layout]; ok {
		layoutRule = rule
	}

	var b strings.Builder
	b.WriteString("Style & Tone Overrides:\n")
	fmt.Fprintf(&b, "- Tone: %s\n", toneRules[r.Tone])
	fmt.Fprintf(&b, "- Layout preference: %s\n", layoutRule)
	fmt.Fprintf(&b, "- Style preset: %s: %s\n", r.Mode, modeRules[r.Mode])
	if r.Variability > 0 {
		b.WriteString("- Vary headings and bullet density to avoid repetitive structure; choose the lightest structure that conveys clarity.\n")
	}
	b.WriteString("- Do not force the earlier template sections if brevity or narrative works better for this question.\n")
	return b.String()
}
