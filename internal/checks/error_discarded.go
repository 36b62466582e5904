package checks

import (
	"context"
	"go/ast"

	"github.com/Smith-Tools/smith-validation/internal/util"
	"github.com/Smith-Tools/smith-validation/pkg/model"
	"github.com/Smith-Tools/smith-validation/pkg/rules"
	"github.com/Smith-Tools/smith-validation/pkg/semantic"
)

var errorDiscardedMeta = model.RuleMeta{
	ID:       "ERROR-DISCARDED",
	Title:    "Call result discarded without error handling",
	Category: model.CategoryErrorHandling,
	Severity: model.SeverityMedium,
	Version:  "1.0",
	Enabled:  true,
}

// errorDiscarded flags assignments that throw away the trailing result of a
// call with a blank identifier. Shape heuristic: whether the discarded value
// is actually an error is not type-resolved.
type errorDiscarded struct {
	severity model.Severity
}

func registerErrorDiscarded(reg *rules.Registry) {
	reg.Register(errorDiscardedMeta, func(s rules.Settings) rules.Rule {
		return &errorDiscarded{severity: s.Severity}
	})
}

func (r *errorDiscarded) Meta() model.RuleMeta { return errorDiscardedMeta }

func (r *errorDiscarded) Validate(ctx context.Context, sctx *semantic.SourceContext) ([]model.Violation, error) {
	var out []model.Violation
	ast.Inspect(sctx.File, func(n ast.Node) bool {
		assign, ok := n.(*ast.AssignStmt)
		if !ok || len(assign.Lhs) == 0 || len(assign.Rhs) != 1 {
			return true
		}
		if _, ok := assign.Rhs[0].(*ast.CallExpr); !ok {
			return true
		}
		last, ok := assign.Lhs[len(assign.Lhs)-1].(*ast.Ident)
		if !ok || last.Name != "_" {
			return true
		}
		line := sctx.LineFor(assign.Pos())
		out = append(out, model.Violation{
			RuleID:         errorDiscardedMeta.ID,
			Severity:       r.severity,
			File:           sctx.Path,
			Line:           line,
			Message:        "call result discarded with blank identifier",
			Recommendation: "Handle the returned error, or document why it is safe to drop.",
			Snippet:        util.ExtractSnippet(string(sctx.Source), line, 4),
		})
		return true
	})
	return out, nil
}
