package checks

import (
	"context"
	"fmt"

	"github.com/Smith-Tools/smith-validation/internal/analysis"
	"github.com/Smith-Tools/smith-validation/pkg/model"
	"github.com/Smith-Tools/smith-validation/pkg/rules"
	"github.com/Smith-Tools/smith-validation/pkg/semantic"
)

var nestedLoopsMeta = model.RuleMeta{
	ID:       "NESTED-LOOPS",
	Title:    "Deeply nested loops",
	Category: model.CategoryComplexity,
	Severity: model.SeverityMedium,
	Version:  "1.0",
	Enabled:  true,
}

type nestedLoops struct {
	severity model.Severity
	maxDepth int
}

func registerNestedLoops(reg *rules.Registry) {
	reg.Register(nestedLoopsMeta, func(s rules.Settings) rules.Rule {
		return &nestedLoops{severity: s.Severity, maxDepth: s.Threshold("maxDepth", 3)}
	})
}

func (r *nestedLoops) Meta() model.RuleMeta { return nestedLoopsMeta }

func (r *nestedLoops) Validate(ctx context.Context, sctx *semantic.SourceContext) ([]model.Violation, error) {
	var out []model.Violation
	for _, sig := range analysis.LoopNesting(sctx) {
		if sig.Depth <= r.maxDepth {
			continue
		}
		out = append(out, model.Violation{
			RuleID:         nestedLoopsMeta.ID,
			Severity:       r.severity,
			File:           sctx.Path,
			Line:           sig.Line,
			Message:        fmt.Sprintf("loop nested %d levels deep, more than the configured %d", sig.Depth, r.maxDepth),
			Recommendation: "Flatten the inner loops into helpers or restructure the iteration.",
			Metadata: map[string]any{
				"depth":     sig.Depth,
				"threshold": r.maxDepth,
			},
		})
	}
	return out, nil
}
