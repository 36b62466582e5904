// Package analysis holds the heuristic signal providers consumed by rules.
// They are deliberately separate from the rule contract so stronger analyses
// can replace them without touching violation types. All of them trade
// precision for speed: name and shape matching, not semantic analysis.
package analysis

import (
	"go/ast"
	"regexp"
	"strings"

	"golang.org/x/tools/go/ast/inspector"

	"github.com/Smith-Tools/smith-validation/pkg/semantic"
)

// AsyncPattern classifies a dispatch case by the shape of work it performs,
// matched on callee-name substrings.
type AsyncPattern string

const (
	AsyncDataFetch  AsyncPattern = "DataFetch"
	AsyncDataSave   AsyncPattern = "DataSave"
	AsyncActionSend AsyncPattern = "ActionSend"
	AsyncGeneric    AsyncPattern = "GenericAsync"
)

// DuplicateGroup is one detected near-clone case pair within a dispatch body.
type DuplicateGroup struct {
	First      string       `json:"first"`
	Second     string       `json:"second"`
	Similarity float64      `json:"similarity"`
	Line       int          `json:"line"`
	Pattern    AsyncPattern `json:"pattern,omitempty"`
}

// DuplicateDetector finds near-duplicate switch cases via Jaccard similarity
// over sets of normalized statement lines. Pairwise comparison is O(k^2) per
// switch; k is small in practice and the simplicity beats a clustering
// approach at this scale.
type DuplicateDetector struct {
	MinStatements int
	Threshold     float64
}

func NewDuplicateDetector() *DuplicateDetector {
	return &DuplicateDetector{MinStatements: 3, Threshold: 0.75}
}

type caseBlock struct {
	name    string
	line    int
	lines   map[string]struct{}
	mutates bool
	async   bool
	pattern AsyncPattern
}

// Detect reports case pairs whose normalized line sets are more than
// Threshold similar. Order and duplication within a case are ignored.
func (d *DuplicateDetector) Detect(sctx *semantic.SourceContext) []DuplicateGroup {
	var out []DuplicateGroup
	for _, cases := range d.collect(sctx) {
		out = append(out, d.pairwise(cases)...)
	}
	return out
}

// DetectStateTransforms restricts detection to cases that mutate enclosing
// state or declare locals: near-identical state transitions.
func (d *DuplicateDetector) DetectStateTransforms(sctx *semantic.SourceContext) []DuplicateGroup {
	var out []DuplicateGroup
	for _, cases := range d.collect(sctx) {
		var mutating []caseBlock
		for _, cb := range cases {
			if cb.mutates {
				mutating = append(mutating, cb)
			}
		}
		out = append(out, d.pairwise(mutating)...)
	}
	return out
}

// DetectAsyncShapes reports async case pairs sharing the exact classified
// pattern type. No similarity scoring here: pattern equality is the signal.
func (d *DuplicateDetector) DetectAsyncShapes(sctx *semantic.SourceContext) []DuplicateGroup {
	var out []DuplicateGroup
	for _, cases := range d.collect(sctx) {
		var async []caseBlock
		for _, cb := range cases {
			if cb.async {
				async = append(async, cb)
			}
		}
		for i := 0; i < len(async); i++ {
			for j := i + 1; j < len(async); j++ {
				if async[i].name == async[j].name {
					continue
				}
				if async[i].pattern != async[j].pattern {
					continue
				}
				out = append(out, DuplicateGroup{
					First:      async[i].name,
					Second:     async[j].name,
					Similarity: 1.0,
					Line:       async[i].line,
					Pattern:    async[i].pattern,
				})
			}
		}
	}
	return out
}

func (d *DuplicateDetector) pairwise(cases []caseBlock) []DuplicateGroup {
	var out []DuplicateGroup
	for i := 0; i < len(cases); i++ {
		for j := i + 1; j < len(cases); j++ {
			if cases[i].name == cases[j].name {
				continue
			}
			sim := Jaccard(cases[i].lines, cases[j].lines)
			if sim <= d.Threshold {
				continue
			}
			out = append(out, DuplicateGroup{
				First:      cases[i].name,
				Second:     cases[j].name,
				Similarity: sim,
				Line:       cases[i].line,
			})
		}
	}
	return out
}

// collect gathers qualifying cases per dispatch construct (switch statement).
func (d *DuplicateDetector) collect(sctx *semantic.SourceContext) [][]caseBlock {
	min := d.MinStatements
	if min <= 0 {
		min = 3
	}
	ins := inspector.New([]*ast.File{sctx.File})
	var out [][]caseBlock
	ins.Preorder([]ast.Node{(*ast.SwitchStmt)(nil), (*ast.TypeSwitchStmt)(nil)}, func(n ast.Node) {
		var body *ast.BlockStmt
		switch sw := n.(type) {
		case *ast.SwitchStmt:
			body = sw.Body
		case *ast.TypeSwitchStmt:
			body = sw.Body
		}
		var cases []caseBlock
		for _, stmt := range body.List {
			cc, ok := stmt.(*ast.CaseClause)
			if !ok || len(cc.Body) < min {
				continue
			}
			cases = append(cases, d.describeCase(sctx, cc))
		}
		if len(cases) > 1 {
			out = append(out, cases)
		}
	})
	return out
}

func (d *DuplicateDetector) describeCase(sctx *semantic.SourceContext, cc *ast.CaseClause) caseBlock {
	cb := caseBlock{
		name:  caseName(sctx, cc),
		line:  sctx.LineFor(cc.Pos()),
		lines: map[string]struct{}{},
	}
	var text strings.Builder
	for _, stmt := range cc.Body {
		t := sctx.Text(stmt)
		text.WriteString(t)
		text.WriteByte('\n')
		for _, line := range strings.Split(t, "\n") {
			norm := NormalizeLine(line)
			if norm != "" {
				cb.lines[norm] = struct{}{}
			}
		}
	}
	cb.mutates = caseMutatesState(cc)
	cb.async = caseIsAsync(cc)
	if cb.async {
		cb.pattern = ClassifyAsync(text.String())
	}
	return cb
}

func caseName(sctx *semantic.SourceContext, cc *ast.CaseClause) string {
	if len(cc.List) == 0 {
		return "default"
	}
	parts := make([]string, 0, len(cc.List))
	for _, expr := range cc.List {
		parts = append(parts, sctx.Text(expr))
	}
	return strings.Join(parts, ", ")
}

// caseMutatesState is true when the case assigns to existing bindings,
// declares locals, or applies ++/--. Shape check only: whether the target is
// truly enclosing state is not resolved.
func caseMutatesState(cc *ast.CaseClause) bool {
	mutates := false
	for _, stmt := range cc.Body {
		ast.Inspect(stmt, func(n ast.Node) bool {
			switch n.(type) {
			case *ast.AssignStmt, *ast.IncDecStmt, *ast.DeclStmt:
				mutates = true
				return false
			}
			return !mutates
		})
	}
	return mutates
}

// caseIsAsync is true when the case launches a goroutine or touches a channel.
func caseIsAsync(cc *ast.CaseClause) bool {
	async := false
	for _, stmt := range cc.Body {
		ast.Inspect(stmt, func(n ast.Node) bool {
			switch v := n.(type) {
			case *ast.GoStmt, *ast.SendStmt:
				async = true
				return false
			case *ast.UnaryExpr:
				if v.Op.String() == "<-" {
					async = true
					return false
				}
			}
			return !async
		})
	}
	return async
}

// ClassifyAsync buckets a case body by callee-name substrings.
func ClassifyAsync(text string) AsyncPattern {
	t := strings.ToLower(text)
	switch {
	case containsAny(t, "fetch", "load", "query", "read", "get"):
		return AsyncDataFetch
	case containsAny(t, "save", "store", "write", "update", "insert", "persist"):
		return AsyncDataSave
	case containsAny(t, "send", "dispatch", "publish", "emit", "notify"):
		return AsyncActionSend
	default:
		return AsyncGeneric
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

var (
	reStringLit = regexp.MustCompile(`"(?:[^"\\]|\\.)*"|` + "`[^`]*`")
	reMemberRef = regexp.MustCompile(`\b\w+(?:\.\w+)+\b`)
	reNumberLit = regexp.MustCompile(`\b\d+(?:\.\d+)?\b`)
)

// NormalizeLine collapses literals and member-access chains into sentinels so
// structurally identical statements compare equal regardless of the concrete
// values they touch.
func NormalizeLine(line string) string {
	l := reStringLit.ReplaceAllString(line, "$$STR")
	l = reMemberRef.ReplaceAllString(l, "$$MEMBER")
	l = reNumberLit.ReplaceAllString(l, "$$NUM")
	return strings.ToLower(strings.TrimSpace(l))
}

// Jaccard computes |A∩B| / |A∪B|. Two empty sets count as identical.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
