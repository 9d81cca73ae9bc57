package codeeval

import (
	"go/ast"
	"go/parser"
	"go/token"
	"math"
	"regexp"
	"strings"
)

// Signals are cheap structural hints about a solution, computed without
// running it.
type Signals struct {
	UsesRecursion          bool    `json:"uses_recursion"`
	UsesMemoization        bool    `json:"uses_memoization"`
	UsesDynamicProgramming bool    `json:"uses_dynamic_programming"`
	LoopNestingDepth       int     `json:"loop_nesting_depth"`
	UsesSlicingHeavily     bool    `json:"uses_slicing_heavily"`
	UsesComprehension      bool    `json:"uses_list_or_set_comprehension"`
	FunctionCount          int     `json:"function_count"`
	CommentDensity         float64 `json:"comment_density"`
	TimeComplexityHint     *string `json:"estimated_time_complexity_hint"`
	Parsed                 bool    `json:"parsed"`
}

const heavySlicing = 4

var memoNames = map[string]bool{"memo": true, "cache": true, "dp": true, "memoized": true, "seen": true}

// NormalizeLanguage maps aliases onto the names Analyze understands.
func NormalizeLanguage(lang string) string {
	switch l := strings.ToLower(strings.TrimSpace(lang)); l {
	case "", "py", "python3":
		return "python"
	case "golang":
		return "go"
	case "js", "node":
		return "javascript"
	case "ts":
		return "typescript"
	default:
		return l
	}
}

// Analyze computes Signals for code in the given language.
func Analyze(code, language string) Signals {
	var s Signals
	switch NormalizeLanguage(language) {
	case "go":
		s = analyzeGo(code)
	case "python":
		s = analyzePython(code)
	default:
		s = analyzeBraces(code)
	}
	s.CommentDensity = commentDensity(code, NormalizeLanguage(language))
	s.TimeComplexityHint = complexityHint(s)
	return s
}

func complexityHint(s Signals) *string {
	var hint string
	switch {
	case s.LoopNestingDepth >= 2 && !s.UsesRecursion:
		hint = "Likely O(n^2) due to nested loops"
	case s.UsesRecursion && !s.UsesMemoization:
		hint = "Recursive without memoization; may be exponential"
	case s.UsesRecursion && s.UsesMemoization:
		hint = "Recursive with memoization; likely polynomial"
	default:
		return nil
	}
	return &hint
}

func analyzeGo(code string) Signals {
	src := code
	if !strings.Contains(src, "package ") {
		src = "package main\n" + src
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "solution.go", src, parser.ParseComments)
	if err != nil {
		return analyzeBraces(code)
	}

	v := &goVisitor{stats: &goStats{}}
	ast.Walk(v, file)

	return Signals{
		UsesRecursion:          v.stats.recursion,
		UsesMemoization:        v.stats.memo,
		UsesDynamicProgramming: v.stats.dp,
		LoopNestingDepth:       v.stats.maxLoop,
		UsesSlicingHeavily:     v.stats.slices >= heavySlicing,
		FunctionCount:          v.stats.funcs,
		Parsed:                 true,
	}
}

type goStats struct {
	recursion bool
	memo      bool
	dp        bool
	maxLoop   int
	slices    int
	funcs     int
}

type goVisitor struct {
	stats *goStats
	fn    string
	loops int
}

func (v *goVisitor) Visit(n ast.Node) ast.Visitor {
	switch node := n.(type) {
	case *ast.FuncDecl:
		v.stats.funcs++
		return &goVisitor{stats: v.stats, fn: node.Name.Name}
	case *ast.FuncLit:
		v.stats.funcs++
	case *ast.ForStmt, *ast.RangeStmt:
		next := &goVisitor{stats: v.stats, fn: v.fn, loops: v.loops + 1}
		if next.loops > v.stats.maxLoop {
			v.stats.maxLoop = next.loops
		}
		return next
	case *ast.CallExpr:
		if id, ok := node.Fun.(*ast.Ident); ok && v.fn != "" && id.Name == v.fn {
			v.stats.recursion = true
		}
	case *ast.Ident:
		if memoNames[strings.ToLower(node.Name)] {
			v.stats.memo = true
		}
	case *ast.IndexExpr:
		if _, nested := node.X.(*ast.IndexExpr); nested {
			v.stats.dp = true
		}
	case *ast.SliceExpr:
		v.stats.slices++
	}
	return v
}

var (
	pyDef           = regexp.MustCompile(`^(\s*)def\s+(\w+)\s*\(`)
	pyLoop          = regexp.MustCompile(`^(\s*)(for|while)\b.*:\s*(#.*)?$`)
	pyMemoDecorator = regexp.MustCompile(`^\s*@(functools\.)?(lru_cache|cache)\b`)
	pyMemoAssign    = regexp.MustCompile(`\b(memo|cache|dp|memoized|seen)\s*(=|\[)`)
	pyNestedIndex   = regexp.MustCompile(`\w+\[[^\[\]]+\]\[`)
	pyComprehension = regexp.MustCompile(`[\[{][^\[\]{}]*\bfor\b[^\[\]{}]*\bin\b`)
	sliceExpr       = regexp.MustCompile(`\[[^\[\]\n]*:[^\[\]\n]*\]`)
)

type pyFunc struct {
	call   *regexp.Regexp
	indent int
}

// analyzePython works from indentation since there is no Python parser here.
func analyzePython(code string) Signals {
	var s Signals
	var funcs []pyFunc
	var loops []int

	for _, line := range strings.Split(code, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))

		for len(funcs) > 0 && indent <= funcs[len(funcs)-1].indent {
			funcs = funcs[:len(funcs)-1]
		}
		for len(loops) > 0 && indent <= loops[len(loops)-1] {
			loops = loops[:len(loops)-1]
		}

		if m := pyDef.FindStringSubmatch(line); m != nil {
			s.FunctionCount++
			call := regexp.MustCompile(`\b` + regexp.QuoteMeta(m[2]) + `\s*\(`)
			funcs = append(funcs, pyFunc{call: call, indent: indent})
			continue
		}
		for _, f := range funcs {
			if f.call.MatchString(trimmed) {
				s.UsesRecursion = true
			}
		}
		if pyLoop.MatchString(line) {
			loops = append(loops, indent)
			if len(loops) > s.LoopNestingDepth {
				s.LoopNestingDepth = len(loops)
			}
		}
		if pyMemoDecorator.MatchString(line) || pyMemoAssign.MatchString(trimmed) {
			s.UsesMemoization = true
		}
		if pyNestedIndex.MatchString(trimmed) {
			s.UsesDynamicProgramming = true
		}
		if pyComprehension.MatchString(trimmed) {
			s.UsesComprehension = true
		}
	}

	s.UsesSlicingHeavily = len(sliceExpr.FindAllString(code, -1)) >= heavySlicing
	return s
}

var (
	braceLoop    = regexp.MustCompile(`\b(for|while)\b`)
	braceMemo    = regexp.MustCompile(`(?i)\bmemo|\bcache\b`)
	braceNested  = regexp.MustCompile(`\w+\[[^\[\]]+\]\[`)
	braceMapping = regexp.MustCompile(`\.(map|filter)\s*\(`)
)

// analyzeBraces is the fallback for brace-delimited languages.
func analyzeBraces(code string) Signals {
	var s Signals
	depth := 0
	var loops []int

	for _, line := range strings.Split(code, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}

		if braceLoop.MatchString(trimmed) {
			loops = append(loops, depth)
			if len(loops) > s.LoopNestingDepth {
				s.LoopNestingDepth = len(loops)
			}
		}
		if braceMemo.MatchString(trimmed) {
			s.UsesMemoization = true
		}
		if braceNested.MatchString(trimmed) {
			s.UsesDynamicProgramming = true
		}
		if braceMapping.MatchString(trimmed) {
			s.UsesComprehension = true
		}

		depth += strings.Count(trimmed, "{") - strings.Count(trimmed, "}")
		for len(loops) > 0 && depth <= loops[len(loops)-1] && !strings.HasSuffix(trimmed, "{") {
			loops = loops[:len(loops)-1]
		}
	}

	names := braceFuncNames(code)
	for _, name := range names {
		if strings.Count(code, name+"(") > 1 {
			s.UsesRecursion = true
		}
	}
	s.FunctionCount = len(names) + strings.Count(code, "=>")
	s.UsesSlicingHeavily = len(sliceExpr.FindAllString(code, -1)) >= heavySlicing
	return s
}

var braceFuncName = regexp.MustCompile(`(?:function|func)\s+(\w+)\s*\(|\b\w+\s+(\w+)\s*\([^;)]*\)\s*\{`)

func braceFuncNames(code string) []string {
	var names []string
	for _, m := range braceFuncName.FindAllStringSubmatch(code, -1) {
		name := m[1]
		if name == "" {
			name = m[2]
		}
		switch name {
		case "", "if", "for", "while", "switch", "catch", "return":
			continue
		}
		names = append(names, name)
	}
	return names
}

// commentDensity is comment lines over code lines, capped at 1 and rounded to
// three decimals.
func commentDensity(code, language string) float64 {
	var comments, lines int
	for _, line := range strings.Split(code, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if isCommentLine(trimmed, language) {
			comments++
		} else {
			lines++
		}
	}
	if lines == 0 {
		return 0
	}
	density := math.Min(1, float64(comments)/float64(lines))
	return math.Round(density*1000) / 1000
}

func isCommentLine(trimmed, language string) bool {
	if language == "python" {
		return strings.HasPrefix(trimmed, "#")
	}
	return strings.HasPrefix(trimmed, "//") ||
		strings.HasPrefix(trimmed, "/*") ||
		strings.HasPrefix(trimmed, "*") ||
		strings.HasPrefix(trimmed, "#")
}
