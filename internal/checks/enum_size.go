package checks

import (
	"context"
	"fmt"

	"github.com/Smith-Tools/smith-validation/pkg/model"
	"github.com/Smith-Tools/smith-validation/pkg/rules"
	"github.com/Smith-Tools/smith-validation/pkg/semantic"
)

var enumSizeMeta = model.RuleMeta{
	ID:       "ENUM-SIZE",
	Title:    "Oversized enum",
	Category: model.CategoryDesign,
	Severity: model.SeverityLow,
	Version:  "1.0",
	Enabled:  true,
}

type enumSize struct {
	severity model.Severity
	maxCases int
}

func registerEnumSize(reg *rules.Registry) {
	reg.Register(enumSizeMeta, func(s rules.Settings) rules.Rule {
		return &enumSize{severity: s.Severity, maxCases: s.Threshold("maxCases", 20)}
	})
}

func (r *enumSize) Meta() model.RuleMeta { return enumSizeMeta }

func (r *enumSize) Validate(ctx context.Context, sctx *semantic.SourceContext) ([]model.Violation, error) {
	var out []model.Violation
	for _, d := range semantic.Declarations(sctx) {
		if d.Kind != semantic.KindEnum || d.Cases <= r.maxCases {
			continue
		}
		out = append(out, model.Violation{
			RuleID:         enumSizeMeta.ID,
			Severity:       r.severity,
			File:           sctx.Path,
			Line:           d.Line,
			Message:        fmt.Sprintf("enum %s has %d cases, more than the configured %d", d.Name, d.Cases, r.maxCases),
			Recommendation: "Group related cases into sub-enums or separate dimensions.",
			Metadata: map[string]any{
				"count":     d.Cases,
				"threshold": r.maxCases,
				"excess":    d.Cases - r.maxCases,
			},
		})
	}
	return out, nil
}
