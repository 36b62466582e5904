package analysis

import (
	"go/ast"

	"github.com/Smith-Tools/smith-validation/pkg/semantic"
)

// NestingSignal reports one loop and its depth within enclosing loops.
// Depth 1 is a top-level loop.
type NestingSignal struct {
	Line  int `json:"line"`
	Depth int `json:"depth"`
}

// LoopNesting walks the file with a stack of loop frames: the depth recorded
// at each loop node equals the stack size including itself.
func LoopNesting(sctx *semantic.SourceContext) []NestingSignal {
	var signals []NestingSignal
	var visit func(node ast.Node, depth int)
	visit = func(node ast.Node, depth int) {
		ast.Inspect(node, func(n ast.Node) bool {
			var body *ast.BlockStmt
			switch loop := n.(type) {
			case *ast.ForStmt:
				body = loop.Body
			case *ast.RangeStmt:
				body = loop.Body
			default:
				return true
			}
			signals = append(signals, NestingSignal{Line: sctx.LineFor(n.Pos()), Depth: depth + 1})
			visit(body, depth+1)
			return false
		})
	}
	visit(sctx.File, 0)
	return signals
}
