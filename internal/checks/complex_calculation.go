package checks

import (
	"context"
	"fmt"

	"github.com/Smith-Tools/smith-validation/internal/analysis"
	"github.com/Smith-Tools/smith-validation/pkg/model"
	"github.com/Smith-Tools/smith-validation/pkg/rules"
	"github.com/Smith-Tools/smith-validation/pkg/semantic"
)

var complexCalcMeta = model.RuleMeta{
	ID:       "COMPLEX-CALCULATION",
	Title:    "Heavy or nested calculation in one expression",
	Category: model.CategoryComplexity,
	Severity: model.SeverityLow,
	Version:  "1.0",
	Enabled:  true,
}

type complexCalc struct {
	severity model.Severity
}

func registerComplexCalculation(reg *rules.Registry) {
	reg.Register(complexCalcMeta, func(s rules.Settings) rules.Rule {
		return &complexCalc{severity: s.Severity}
	})
}

func (r *complexCalc) Meta() model.RuleMeta { return complexCalcMeta }

func (r *complexCalc) Validate(ctx context.Context, sctx *semantic.SourceContext) ([]model.Violation, error) {
	var out []model.Violation
	for _, sig := range analysis.ComplexCalls(sctx) {
		var msg string
		switch sig.Reason {
		case analysis.ReasonHeavyOperation:
			msg = fmt.Sprintf("call to %s is a known allocation-heavy operation", sig.Callee)
		default:
			msg = fmt.Sprintf("call to %s takes another call as an argument", sig.Callee)
		}
		out = append(out, model.Violation{
			RuleID:         complexCalcMeta.ID,
			Severity:       r.severity,
			File:           sctx.Path,
			Line:           sig.Line,
			Message:        msg,
			Recommendation: "Break the expression into named intermediate steps.",
			Metadata: map[string]any{
				"callee": sig.Callee,
				"reason": sig.Reason,
			},
		})
	}
	return out, nil
}
