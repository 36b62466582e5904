package checks

import (
	"context"
	"fmt"

	"github.com/Smith-Tools/smith-validation/pkg/model"
	"github.com/Smith-Tools/smith-validation/pkg/rules"
	"github.com/Smith-Tools/smith-validation/pkg/semantic"
)

var typeSizeMeta = model.RuleMeta{
	ID:       "TYPE-SIZE",
	Title:    "Oversized type declaration",
	Category: model.CategoryDesign,
	Severity: model.SeverityMedium,
	Version:  "1.0",
	Enabled:  true,
}

type typeSize struct {
	severity      model.Severity
	maxProperties int
	maxMethods    int
}

func registerTypeSize(reg *rules.Registry) {
	reg.Register(typeSizeMeta, func(s rules.Settings) rules.Rule {
		return &typeSize{
			severity:      s.Severity,
			maxProperties: s.Threshold("maxProperties", 15),
			maxMethods:    s.Threshold("maxMethods", 20),
		}
	})
}

func (r *typeSize) Meta() model.RuleMeta { return typeSizeMeta }

func (r *typeSize) Validate(ctx context.Context, sctx *semantic.SourceContext) ([]model.Violation, error) {
	var out []model.Violation
	for _, d := range semantic.Declarations(sctx) {
		if d.Kind != semantic.KindStruct && d.Kind != semantic.KindInterface {
			continue
		}
		if d.Properties > r.maxProperties {
			out = append(out, model.Violation{
				RuleID:         typeSizeMeta.ID,
				Severity:       r.severity,
				File:           sctx.Path,
				Line:           d.Line,
				Message:        fmt.Sprintf("type %s has %d properties, more than the configured %d", d.Name, d.Properties, r.maxProperties),
				Recommendation: fmt.Sprintf("Split %s into smaller, focused types.", d.Name),
				Metadata: map[string]any{
					"count":     d.Properties,
					"threshold": r.maxProperties,
					"excess":    d.Properties - r.maxProperties,
				},
			})
		}
		if d.Methods > r.maxMethods {
			out = append(out, model.Violation{
				RuleID:         typeSizeMeta.ID,
				Severity:       r.severity,
				File:           sctx.Path,
				Line:           d.Line,
				Message:        fmt.Sprintf("type %s has %d methods, more than the configured %d", d.Name, d.Methods, r.maxMethods),
				Recommendation: fmt.Sprintf("Extract cohesive behavior of %s into collaborators.", d.Name),
				Metadata: map[string]any{
					"count":     d.Methods,
					"threshold": r.maxMethods,
					"excess":    d.Methods - r.maxMethods,
				},
			})
		}
	}
	return out, nil
}
