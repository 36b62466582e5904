package analysis

import (
	"go/ast"

	"github.com/Smith-Tools/smith-validation/pkg/semantic"
)

// RecursionSignal records whether a function calls itself. DepthEstimate is
// derived from the number of distinct recursive call sites, not from a call
// graph; it is an approximation and documented as such.
type RecursionSignal struct {
	Function      string `json:"function"`
	Line          int    `json:"line"`
	Recursive     bool   `json:"recursive"`
	CallSites     int    `json:"callSites"`
	DepthEstimate int    `json:"depthEstimate"`
}

// Recursion scans every function body for self-referential calls. Matching is
// by name: a plain call to the function's own identifier, or a method call on
// the receiver variable with the same method name. Mutual recursion through
// other functions is not detected.
func Recursion(sctx *semantic.SourceContext) []RecursionSignal {
	var out []RecursionSignal
	for _, decl := range sctx.File.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Body == nil {
			continue
		}
		recv := receiverName(fd)
		sites := 0
		ast.Inspect(fd.Body, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}
			switch fun := call.Fun.(type) {
			case *ast.Ident:
				if recv == "" && fun.Name == fd.Name.Name {
					sites++
				}
			case *ast.SelectorExpr:
				if x, ok := fun.X.(*ast.Ident); ok && recv != "" && x.Name == recv && fun.Sel.Name == fd.Name.Name {
					sites++
				}
			}
			return true
		})
		out = append(out, RecursionSignal{
			Function:      fd.Name.Name,
			Line:          sctx.LineFor(fd.Pos()),
			Recursive:     sites > 0,
			CallSites:     sites,
			DepthEstimate: sites,
		})
	}
	return out
}

func receiverName(fd *ast.FuncDecl) string {
	if fd.Recv == nil || len(fd.Recv.List) == 0 || len(fd.Recv.List[0].Names) == 0 {
		return ""
	}
	return fd.Recv.List[0].Names[0].Name
}
