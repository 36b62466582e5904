package checks

import (
	"context"
	"fmt"

	"github.com/Smith-Tools/smith-validation/internal/analysis"
	"github.com/Smith-Tools/smith-validation/pkg/model"
	"github.com/Smith-Tools/smith-validation/pkg/rules"
	"github.com/Smith-Tools/smith-validation/pkg/semantic"
)

var highCouplingMeta = model.RuleMeta{
	ID:       "HIGH-COUPLING",
	Title:    "File imports too many modules",
	Category: model.CategoryCoupling,
	Severity: model.SeverityHigh,
	Version:  "1.0",
	Enabled:  true,
}

// highCoupling flags files whose import count exceeds the threshold. One
// violation per file regardless of how far over it is.
type highCoupling struct {
	severity   model.Severity
	maxImports int
}

func registerHighCoupling(reg *rules.Registry) {
	reg.Register(highCouplingMeta, func(s rules.Settings) rules.Rule {
		return &highCoupling{severity: s.Severity, maxImports: s.Threshold("maxImports", 15)}
	})
}

func (r *highCoupling) Meta() model.RuleMeta { return highCouplingMeta }

func (r *highCoupling) Validate(ctx context.Context, sctx *semantic.SourceContext) ([]model.Violation, error) {
	stats := analysis.Imports(sctx)
	if stats.Count <= r.maxImports {
		return nil, nil
	}
	return []model.Violation{{
		RuleID:         highCouplingMeta.ID,
		Severity:       r.severity,
		File:           sctx.Path,
		Line:           1,
		Message:        fmt.Sprintf("file imports %d modules, more than the configured %d", stats.Count, r.maxImports),
		Recommendation: "Split the file by responsibility so each part depends on less.",
		Metadata: map[string]any{
			"count":     stats.Count,
			"threshold": r.maxImports,
			"excess":    stats.Count - r.maxImports,
		},
	}}, nil
}
