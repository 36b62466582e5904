package checks

import (
	"context"
	"fmt"

	"github.com/Smith-Tools/smith-validation/internal/analysis"
	"github.com/Smith-Tools/smith-validation/pkg/model"
	"github.com/Smith-Tools/smith-validation/pkg/rules"
	"github.com/Smith-Tools/smith-validation/pkg/semantic"
)

var duplicateStateMeta = model.RuleMeta{
	ID:       "DUPLICATE-STATE-TRANSFORM",
	Title:    "Near-duplicate state transformations",
	Category: model.CategoryDuplication,
	Severity: model.SeverityMedium,
	Version:  "1.0",
	Enabled:  true,
}

type duplicateState struct {
	severity model.Severity
	detector *analysis.DuplicateDetector
}

func registerDuplicateStateTransform(reg *rules.Registry) {
	reg.Register(duplicateStateMeta, func(s rules.Settings) rules.Rule {
		d := analysis.NewDuplicateDetector()
		d.MinStatements = s.Threshold("minStatements", d.MinStatements)
		return &duplicateState{severity: s.Severity, detector: d}
	})
}

func (r *duplicateState) Meta() model.RuleMeta { return duplicateStateMeta }

func (r *duplicateState) Validate(ctx context.Context, sctx *semantic.SourceContext) ([]model.Violation, error) {
	var out []model.Violation
	for _, g := range r.detector.DetectStateTransforms(sctx) {
		out = append(out, model.Violation{
			RuleID:         duplicateStateMeta.ID,
			Severity:       r.severity,
			File:           sctx.Path,
			Line:           g.Line,
			Message:        fmt.Sprintf("cases %q and %q apply near-identical state changes (%.0f%% similar)", g.First, g.Second, g.Similarity*100),
			Recommendation: "Route both cases through one transition function.",
			Metadata: map[string]any{
				"first":      g.First,
				"second":     g.Second,
				"similarity": g.Similarity,
			},
		})
	}
	return out, nil
}
