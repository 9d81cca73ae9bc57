package answer

import (
	"regexp"
	"strings"
)

var (
	headingPattern      = regexp.MustCompile(`^(#{1,6})\s*(.+?)\s*$`)
	boldLabelBullet     = regexp.MustCompile(`^(\s*[-*]\s+)\*\*[^*:]{1,40}:?\*\*:?\s*`)
	plainLabelBullet    = regexp.MustCompile(`^(\s*[-*]\s+)[^*:]{1,40}:\s+`)
	inlineDollarMath    = regexp.MustCompile(`\$(\S(?:[^$]*\S)?)\$`)
	inlineParenMath     = regexp.MustCompile(`\\\((.+?)\\\)`)
	inlineBracketMath   = regexp.MustCompile(`\\\[(.+?)\\\]`)
	placeholderPattern  = regexp.MustCompile(`\[([A-Z][A-Z0-9 /_&-]{1,79})\]`)
	placeholderSplitter = regexp.MustCompile(`[\s/_-]+`)
	listItemPattern     = regexp.MustCompile(`^(\s*)(?:[-*+]|\d+[.)])\s+(.*)$`)
	checkboxPattern     = regexp.MustCompile(`^\s*[-*+]\s+\[[ xX]\]\s`)
)

var placeholderPhrases = map[string]string{
	"SPECIFIC FEATURE":           "the feature",
	"SPECIFIC PRODUCT":           "the product",
	"SPECIFIC PROJECT":           "the project",
	"PROJECT GOAL":               "the project goal",
	"SPECIFIC COMPROMISE DETAIL": "a balanced compromise",
	"FEATURE/PROJECT TASK":       "the task",
	"YOUR EXPERIENCE":            "your experience",
	"METRIC/RESULT":              "a measurable result",
	"SITUATION":                  "the situation",
	"TASK":                       "the task",
	"ACTION":                     "the action",
	"RESULT":                     "the result",
}

// Postprocess cleans a complete model reply for the given style.
func Postprocess(raw string, style ResolvedStyle) string {
	f := NewFormatter(style)
	return f.Write(raw) + f.Flush()
}

// Formatter post-processes model output incrementally. It works on complete
// lines, so feeding the same text in any chunking yields the same
// concatenated output as Postprocess.
type Formatter struct {
	layout Layout

	partial strings.Builder
	started bool
	blanks  int

	inCode     bool
	inMermaid  bool
	inComplete bool
	mermaid    []string
	out        strings.Builder
}

func NewFormatter(style ResolvedStyle) *Formatter {
	return &Formatter{layout: style.Layout}
}

// Write consumes a chunk of raw text and returns whatever output became final.
func (f *Formatter) Write(chunk string) string {
	f.partial.WriteString(chunk)
	buffered := f.partial.String()

	last := strings.LastIndexByte(buffered, '\n')
	if last < 0 {
		return ""
	}

	complete := buffered[:last]
	f.partial.Reset()
	f.partial.WriteString(buffered[last+1:])

	for _, line := range strings.Split(complete, "\n") {
		f.consume(line)
	}
	return f.drain()
}

// Flush processes any trailing partial line and closes open blocks.
func (f *Formatter) Flush() string {
	if f.partial.Len() > 0 {
		f.consume(f.partial.String())
		f.partial.Reset()
	}
	if f.inMermaid {
		for _, line := range f.mermaid {
			f.emit(line)
		}
		f.mermaid = nil
		f.inMermaid = false
	}
	return f.drain()
}

func (f *Formatter) drain() string {
	s := f.out.String()
	f.out.Reset()
	return s
}

// emit appends one output line. Blank lines are held back until a non-blank
// line follows, which drops leading and trailing blank lines.
func (f *Formatter) emit(line string) {
	if strings.TrimSpace(line) == "" {
		if f.started {
			f.blanks++
		}
		return
	}
	if f.started {
		f.out.WriteString(strings.Repeat("\n", f.blanks+1))
	}
	f.blanks = 0
	f.started = true
	f.out.WriteString(line)
}

func (f *Formatter) consume(line string) {
	line = strings.TrimRight(line, "\r")
	trimmed := strings.TrimSpace(line)

	if f.inMermaid {
		if strings.HasPrefix(trimmed, "```") {
			for _, l := range normalizeMermaid(f.mermaid) {
				f.emit(l)
			}
			f.mermaid = nil
			f.inMermaid = false
			f.emit(line)
			return
		}
		f.mermaid = append(f.mermaid, line)
		return
	}

	if strings.HasPrefix(trimmed, "```") {
		if !f.inCode && strings.HasPrefix(strings.ToLower(trimmed), "```mermaid") {
			f.inMermaid = true
			f.emit(line)
			return
		}
		f.inCode = !f.inCode
		f.emit(line)
		return
	}

	if f.inCode {
		f.emit(line)
		return
	}

	if text, ok := headingText(trimmed); ok {
		if isCompleteAnswerHeading(text) {
			f.inComplete = true
			return
		}
		f.inComplete = false
		f.emit(boldHeading(trimmed))
		return
	}

	if f.inComplete {
		line = stripBulletLabel(line)
	}
	line = stripLatex(line)
	line = deplaceholderize(line)
	f.emit(f.enforceLayout(line))
}

// headingText returns the text of a markdown heading, or of a line made only
// of bold text such as "**Complete Answer:**".
func headingText(trimmed string) (string, bool) {
	if m := headingPattern.FindStringSubmatch(trimmed); m != nil {
		return m[2], true
	}
	if len(trimmed) > 4 && strings.HasPrefix(trimmed, "**") && strings.HasSuffix(trimmed, "**") &&
		!strings.Contains(trimmed[2:len(trimmed)-2], "**") &&
		isCompleteAnswerHeading(trimmed) {
		return trimmed, true
	}
	return "", false
}

func isCompleteAnswerHeading(text string) bool {
	plain := strings.ToLower(strings.Trim(text, "*: "))
	return strings.HasPrefix(plain, "complete answer")
}

// boldHeading rewrites "## Title" to "## **Title**" for levels two to four.
func boldHeading(trimmed string) string {
	m := headingPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return trimmed
	}
	hashes, text := m[1], m[2]
	if len(hashes) < 2 || len(hashes) > 4 {
		return trimmed
	}
	if strings.HasPrefix(text, "**") && strings.HasSuffix(text, "**") && len(text) > 4 {
		return hashes + " " + text
	}
	return hashes + " **" + strings.Trim(text, "*") + "**"
}

func stripBulletLabel(line string) string {
	if boldLabelBullet.MatchString(line) {
		return boldLabelBullet.ReplaceAllString(line, "$1")
	}
	return plainLabelBullet.ReplaceAllString(line, "$1")
}

func stripLatex(line string) string {
	line = inlineDollarMath.ReplaceAllString(line, "$1")
	line = inlineParenMath.ReplaceAllString(line, "$1")
	return inlineBracketMath.ReplaceAllString(line, "$1")
}

// deplaceholderize turns bracketed template slots like [SPECIFIC FEATURE] into
// neutral phrases. Markdown links ("[TEXT](url)") are left alone.
func deplaceholderize(line string) string {
	matches := placeholderPattern.FindAllStringSubmatchIndex(line, -1)
	if matches == nil {
		return line
	}

	var b strings.Builder
	prev := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		if end < len(line) && line[end] == '(' {
			continue
		}
		b.WriteString(line[prev:start])
		b.WriteString(placeholderPhrase(line[m[2]:m[3]]))
		prev = end
	}
	b.WriteString(line[prev:])
	return b.String()
}

func placeholderPhrase(inside string) string {
	key := strings.ToUpper(strings.TrimSpace(inside))
	if phrase, ok := placeholderPhrases[key]; ok {
		return phrase
	}
	for _, part := range placeholderSplitter.Split(key, -1) {
		if phrase, ok := placeholderPhrases[part]; ok {
			return phrase
		}
	}
	return strings.ToLower(strings.TrimSpace(inside))
}

func (f *Formatter) enforceLayout(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return line
	}

	switch f.layout {
	case LayoutBullets:
		if isStructural(trimmed) || listItemPattern.MatchString(line) {
			return line
		}
		return "- " + trimmed
	case LayoutChecklist:
		if checkboxPattern.MatchString(line) {
			return line
		}
		if m := listItemPattern.FindStringSubmatch(line); m != nil {
			return m[1] + "- [ ] " + m[2]
		}
	}
	return line
}

// isStructural reports lines that carry their own markdown structure.
func isStructural(trimmed string) bool {
	switch {
	case strings.HasPrefix(trimmed, "#"),
		strings.HasPrefix(trimmed, "|"),
		strings.HasPrefix(trimmed, ">"),
		strings.HasPrefix(trimmed, "---"),
		strings.HasPrefix(trimmed, "***"),
		strings.HasPrefix(trimmed, "```"):
		return true
	}
	return false
}

var mermaidDeclarations = []string{"flowchart", "graph"}

// normalizeMermaid puts one flowchart statement per line, indents subgraph
// bodies, and moves classDef and class statements to the end. Other diagram
// types pass through unchanged.
func normalizeMermaid(lines []string) []string {
	var statements []string
	for _, l := range lines {
		for _, s := range strings.Split(l, ";") {
			if s = strings.TrimSpace(s); s != "" {
				statements = append(statements, s)
			}
		}
	}
	if len(statements) == 0 {
		return nil
	}

	decl := strings.ToLower(strings.Fields(statements[0])[0])
	isFlowchart := false
	for _, d := range mermaidDeclarations {
		if decl == d {
			isFlowchart = true
		}
	}
	if !isFlowchart {
		return lines
	}

	out := []string{statements[0]}
	var styling []string
	depth := 1
	for _, s := range statements[1:] {
		switch {
		case strings.HasPrefix(s, "classDef ") || strings.HasPrefix(s, "class "):
			styling = append(styling, "  "+s)
		case strings.HasPrefix(s, "subgraph"):
			out = append(out, strings.Repeat("  ", depth)+s)
			depth++
		case s == "end":
			if depth > 1 {
				depth--
			}
			out = append(out, strings.Repeat("  ", depth)+s)
		default:
			out = append(out, strings.Repeat("  ", depth)+s)
		}
	}
	return append(out, styling...)
}
