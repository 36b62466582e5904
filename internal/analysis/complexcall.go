package analysis

import (
	"go/ast"
	"strings"

	"golang.org/x/tools/go/ast/inspector"

	"github.com/Smith-Tools/smith-validation/pkg/semantic"
)

// heavyCallees are higher-order or allocation-heavy operations worth flagging
// when they pile up in one expression. Name matching only.
var heavyCallees = map[string]struct{}{
	"sort.slice":            {},
	"sort.slicestable":      {},
	"sort.sort":             {},
	"slices.sort":           {},
	"slices.sortfunc":       {},
	"slices.sortstablefunc": {},
	"maps.keys":             {},
	"maps.values":           {},
	"regexp.compile":        {},
	"regexp.mustcompile":    {},
	"json.marshal":          {},
	"json.unmarshal":        {},
	"filepath.walk":         {},
	"filepath.walkdir":      {},
}

const (
	ReasonHeavyOperation = "heavy-operation"
	ReasonNestedCall     = "nested-call"
)

// ComplexCallSignal marks one call that matched the complex-calculation
// heuristic: a known heavy callee, or a call taking another call as argument.
type ComplexCallSignal struct {
	Line   int    `json:"line"`
	Callee string `json:"callee"`
	Reason string `json:"reason"`
}

func ComplexCalls(sctx *semantic.SourceContext) []ComplexCallSignal {
	ins := inspector.New([]*ast.File{sctx.File})
	var out []ComplexCallSignal
	ins.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node) {
		call := n.(*ast.CallExpr)
		name := calleeName(call)
		if _, ok := heavyCallees[strings.ToLower(name)]; ok {
			out = append(out, ComplexCallSignal{
				Line:   sctx.LineFor(call.Pos()),
				Callee: name,
				Reason: ReasonHeavyOperation,
			})
			return
		}
		for _, arg := range call.Args {
			if _, ok := arg.(*ast.CallExpr); ok {
				out = append(out, ComplexCallSignal{
					Line:   sctx.LineFor(call.Pos()),
					Callee: name,
					Reason: ReasonNestedCall,
				})
				return
			}
		}
	})
	return out
}

func calleeName(call *ast.CallExpr) string {
	switch fun := call.Fun.(type) {
	case *ast.Ident:
		return fun.Name
	case *ast.SelectorExpr:
		if x, ok := fun.X.(*ast.Ident); ok {
			return x.Name + "." + fun.Sel.Name
		}
		return fun.Sel.Name
	default:
		return ""
	}
}
