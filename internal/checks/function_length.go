package checks

import (
	"context"
	"fmt"
	"go/ast"

	"github.com/Smith-Tools/smith-validation/pkg/model"
	"github.com/Smith-Tools/smith-validation/pkg/rules"
	"github.com/Smith-Tools/smith-validation/pkg/semantic"
)

var functionLengthMeta = model.RuleMeta{
	ID:       "FUNCTION-LENGTH",
	Title:    "Overlong function body",
	Category: model.CategoryDesign,
	Severity: model.SeverityMedium,
	Version:  "1.0",
	Enabled:  true,
}

type functionLength struct {
	severity model.Severity
	maxLines int
}

func registerFunctionLength(reg *rules.Registry) {
	reg.Register(functionLengthMeta, func(s rules.Settings) rules.Rule {
		return &functionLength{severity: s.Severity, maxLines: s.Threshold("maxLines", 60)}
	})
}

func (r *functionLength) Meta() model.RuleMeta { return functionLengthMeta }

func (r *functionLength) Validate(ctx context.Context, sctx *semantic.SourceContext) ([]model.Violation, error) {
	var out []model.Violation
	for _, decl := range sctx.File.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Body == nil {
			continue
		}
		start := sctx.LineFor(fd.Body.Pos())
		end := sctx.LineFor(fd.Body.End())
		lines := end - start + 1
		if lines <= r.maxLines {
			continue
		}
		out = append(out, model.Violation{
			RuleID:         functionLengthMeta.ID,
			Severity:       r.severity,
			File:           sctx.Path,
			Line:           sctx.LineFor(fd.Pos()),
			Message:        fmt.Sprintf("function %s spans %d lines, more than the configured %d", fd.Name.Name, lines, r.maxLines),
			Recommendation: fmt.Sprintf("Extract steps of %s into named helpers.", fd.Name.Name),
			Metadata: map[string]any{
				"lines":     lines,
				"threshold": r.maxLines,
				"excess":    lines - r.maxLines,
			},
		})
	}
	return out, nil
}
