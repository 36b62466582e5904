package checks

import (
	"context"
	"fmt"

	"github.com/Smith-Tools/smith-validation/internal/analysis"
	"github.com/Smith-Tools/smith-validation/pkg/model"
	"github.com/Smith-Tools/smith-validation/pkg/rules"
	"github.com/Smith-Tools/smith-validation/pkg/semantic"
)

var duplicateAsyncMeta = model.RuleMeta{
	ID:       "DUPLICATE-ASYNC-SHAPE",
	Title:    "Dispatch cases sharing one async shape",
	Category: model.CategoryDuplication,
	Severity: model.SeverityMedium,
	Version:  "1.0",
	Enabled:  true,
}

type duplicateAsync struct {
	severity model.Severity
	detector *analysis.DuplicateDetector
}

func registerDuplicateAsyncShape(reg *rules.Registry) {
	reg.Register(duplicateAsyncMeta, func(s rules.Settings) rules.Rule {
		d := analysis.NewDuplicateDetector()
		d.MinStatements = s.Threshold("minStatements", d.MinStatements)
		return &duplicateAsync{severity: s.Severity, detector: d}
	})
}

func (r *duplicateAsync) Meta() model.RuleMeta { return duplicateAsyncMeta }

func (r *duplicateAsync) Validate(ctx context.Context, sctx *semantic.SourceContext) ([]model.Violation, error) {
	var out []model.Violation
	for _, g := range r.detector.DetectAsyncShapes(sctx) {
		out = append(out, model.Violation{
			RuleID:         duplicateAsyncMeta.ID,
			Severity:       r.severity,
			File:           sctx.Path,
			Line:           g.Line,
			Message:        fmt.Sprintf("cases %q and %q both follow the %s pattern", g.First, g.Second, g.Pattern),
			Recommendation: "Consolidate same-shaped async work behind one entry point.",
			Metadata: map[string]any{
				"first":   g.First,
				"second":  g.Second,
				"pattern": string(g.Pattern),
			},
		})
	}
	return out, nil
}
