package answer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostprocess(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		layout Layout
		want   string
	}{
		{
			name: "trims surrounding blank lines",
			raw:  "\n\n  \n- a\n\n- b\n\n\n",
			want: "- a\n\n- b",
		},
		{
			name: "bolds mid level headings",
			raw:  "# Title\n## Overview\n### **Already**\n#### Deep\n##### Small",
			want: "# Title\n## **Overview**\n### **Already**\n#### **Deep**\n##### Small",
		},
		{
			name: "leaves code blocks alone",
			raw:  "```python\n## not a heading\nx = $y$ + [SITUATION]\n```\n## After",
			want: "```python\n## not a heading\nx = $y$ + [SITUATION]\n```\n## **After**",
		},
		{
			name: "removes complete answer heading and bullet labels",
			raw:  "### Complete Answer\n- **Situation:** We had outages.\n- Task: Reduce them.\n## Next\n- Label: keep",
			want: "- We had outages.\n- Reduce them.\n## **Next**\n- Label: keep",
		},
		{
			name: "bold complete answer line",
			raw:  "**Complete Answer:**\n- **Result:** 40% fewer pages.",
			want: "- 40% fewer pages.",
		},
		{
			name: "strips latex markers",
			raw:  "Lookup is $O(1)$ and \\(O(n)\\) worst case, \\[n^2\\] total.",
			want: "Lookup is O(1) and O(n) worst case, n^2 total.",
		},
		{
			name: "keeps currency amounts",
			raw:  "It costs $5 and $10 per month.",
			want: "It costs $5 and $10 per month.",
		},
		{
			name: "replaces placeholders but not links",
			raw:  "I built [SPECIFIC FEATURE] for [PROJECT GOAL] with [TEAM SIZE]. See [DOCS](https://example.com).",
			want: "I built the feature for the project goal with team size. See [DOCS](https://example.com).",
		},
		{
			name: "normalises mermaid flowcharts",
			raw:  "```mermaid\nflowchart TD; A-->B; classDef hot fill:#f00; B-->C\n```",
			want: "```mermaid\nflowchart TD\n  A-->B\n  B-->C\n  classDef hot fill:#f00\n```",
		},
		{
			name: "indents subgraphs",
			raw:  "```mermaid\ngraph LR\nsubgraph API\nA-->B\nend\n```",
			want: "```mermaid\ngraph LR\n  subgraph API\n    A-->B\n  end\n```",
		},
		{
			name: "other mermaid diagrams pass through",
			raw:  "```mermaid\nerDiagram\n  USER ||--o{ ORDER : places\n```",
			want: "```mermaid\nerDiagram\n  USER ||--o{ ORDER : places\n```",
		},
		{
			name: "unclosed mermaid block is emitted raw",
			raw:  "```mermaid\nflowchart TD; A-->B",
			want: "```mermaid\nflowchart TD; A-->B",
		},
		{
			name:   "bullets layout",
			raw:    "First point.\n\n## Head\n- existing\n| a | b |",
			layout: LayoutBullets,
			want:   "- First point.\n\n## **Head**\n- existing\n| a | b |",
		},
		{
			name:   "checklist layout",
			raw:    "Steps:\n- step one\n1. step two\n- [x] done",
			layout: LayoutChecklist,
			want:   "Steps:\n- [ ] step one\n- [ ] step two\n- [x] done",
		},
		{
			name: "carriage returns",
			raw:  "## Title\r\nbody\r\n",
			want: "## **Title**\nbody",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Postprocess(tt.raw, ResolvedStyle{Mode: ModeConcise, Tone: ToneMentor, Layout: tt.layout})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatterChunkingInvariance(t *testing.T) {
	raw := strings.Join([]string{
		"",
		"### Complete Answer",
		"- **Situation:** Latency was $200ms$.",
		"- Action: added [SPECIFIC FEATURE].",
		"",
		"## Details",
		"```go",
		"## comment",
		"```",
		"```mermaid",
		"flowchart LR; A-->B",
		"```",
		"Closing line.",
		"",
		"",
	}, "\n")

	for _, layout := range []Layout{"", LayoutBullets, LayoutChecklist} {
		style := ResolvedStyle{Mode: ModeConcise, Tone: ToneMentor, Layout: layout}
		want := Postprocess(raw, style)

		for size := 1; size <= len(raw); size++ {
			f := NewFormatter(style)
			var got strings.Builder
			for start := 0; start < len(raw); start += size {
				end := start + size
				if end > len(raw) {
					end = len(raw)
				}
				got.WriteString(f.Write(raw[start:end]))
			}
			got.WriteString(f.Flush())

			if !assert.Equal(t, want, got.String(), "layout=%q chunk=%d", layout, size) {
				return
			}
		}
	}
}

func TestFormatterEmitsCompleteLinesOnly(t *testing.T) {
	f := NewFormatter(ResolvedStyle{})

	assert.Empty(t, f.Write("## Head"))
	assert.Equal(t, "## **Heading**", f.Write("ing\nbody"))
	assert.Equal(t, "\nbody", f.Flush())
}
