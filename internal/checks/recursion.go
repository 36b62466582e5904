package checks

import (
	"context"
	"fmt"

	"github.com/Smith-Tools/smith-validation/internal/analysis"
	"github.com/Smith-Tools/smith-validation/pkg/model"
	"github.com/Smith-Tools/smith-validation/pkg/rules"
	"github.com/Smith-Tools/smith-validation/pkg/semantic"
)

var recursionMeta = model.RuleMeta{
	ID:       "RECURSION",
	Title:    "Recursive function",
	Category: model.CategoryComplexity,
	Severity: model.SeverityInfo,
	Version:  "1.0",
	Enabled:  true,
}

type recursion struct {
	severity model.Severity
}

func registerRecursion(reg *rules.Registry) {
	reg.Register(recursionMeta, func(s rules.Settings) rules.Rule {
		return &recursion{severity: s.Severity}
	})
}

func (r *recursion) Meta() model.RuleMeta { return recursionMeta }

func (r *recursion) Validate(ctx context.Context, sctx *semantic.SourceContext) ([]model.Violation, error) {
	var out []model.Violation
	for _, sig := range analysis.Recursion(sctx) {
		if !sig.Recursive {
			continue
		}
		out = append(out, model.Violation{
			RuleID:         recursionMeta.ID,
			Severity:       r.severity,
			File:           sctx.Path,
			Line:           sig.Line,
			Message:        fmt.Sprintf("function %s calls itself from %d site(s); depth estimate %d is approximate", sig.Function, sig.CallSites, sig.DepthEstimate),
			Recommendation: "Confirm the recursion has a guaranteed termination condition.",
			Metadata: map[string]any{
				"function":      sig.Function,
				"callSites":     sig.CallSites,
				"depthEstimate": sig.DepthEstimate,
			},
		})
	}
	return out, nil
}
