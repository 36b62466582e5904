package checks

import (
	"context"
	"fmt"

	"github.com/Smith-Tools/smith-validation/internal/analysis"
	"github.com/Smith-Tools/smith-validation/pkg/model"
	"github.com/Smith-Tools/smith-validation/pkg/rules"
	"github.com/Smith-Tools/smith-validation/pkg/semantic"
)

var duplicateCasesMeta = model.RuleMeta{
	ID:       "DUPLICATE-CASES",
	Title:    "Near-duplicate dispatch cases",
	Category: model.CategoryDuplication,
	Severity: model.SeverityHigh,
	Version:  "1.0",
	Enabled:  true,
}

type duplicateCases struct {
	severity model.Severity
	detector *analysis.DuplicateDetector
}

func registerDuplicateCases(reg *rules.Registry) {
	reg.Register(duplicateCasesMeta, func(s rules.Settings) rules.Rule {
		d := analysis.NewDuplicateDetector()
		d.MinStatements = s.Threshold("minStatements", d.MinStatements)
		return &duplicateCases{severity: s.Severity, detector: d}
	})
}

func (r *duplicateCases) Meta() model.RuleMeta { return duplicateCasesMeta }

func (r *duplicateCases) Validate(ctx context.Context, sctx *semantic.SourceContext) ([]model.Violation, error) {
	var out []model.Violation
	for _, g := range r.detector.Detect(sctx) {
		out = append(out, model.Violation{
			RuleID:         duplicateCasesMeta.ID,
			Severity:       r.severity,
			File:           sctx.Path,
			Line:           g.Line,
			Message:        fmt.Sprintf("cases %q and %q are %.0f%% similar", g.First, g.Second, g.Similarity*100),
			Recommendation: "Extract the shared statements into one helper both cases call.",
			Metadata: map[string]any{
				"first":      g.First,
				"second":     g.Second,
				"similarity": g.Similarity,
			},
		})
	}
	return out, nil
}
