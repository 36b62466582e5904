package engine

import (
	"fmt"

	"github.com/Smith-Tools/smith-validation/internal/analysis"
	"github.com/Smith-Tools/smith-validation/pkg/model"
	"github.com/Smith-Tools/smith-validation/pkg/semantic"
)

const (
	ModuleFanOutRuleID      = "MODULE-FAN-OUT"
	defaultMaxModuleFanOut  = 25
	fanOutReferenceThresKey = "maxReferences"
)

// fanOutViolations is the cross-file half of the dependency heuristic: any
// module whose aggregate import count across the batch exceeds the global
// threshold is flagged once. Per-file counts are the HIGH-COUPLING rule's job.
func (e *Engine) fanOutViolations(contexts []*semantic.SourceContext) []model.Violation {
	if len(contexts) == 0 {
		return nil
	}
	threshold := defaultMaxModuleFanOut
	if rc, ok := e.cfg.Rules[ModuleFanOutRuleID]; ok {
		if rc.Enabled != nil && !*rc.Enabled {
			return nil
		}
		if v, ok := rc.Thresholds[fanOutReferenceThresKey]; ok {
			threshold = v
		}
	}
	stats := make([]analysis.ImportStats, 0, len(contexts))
	for _, sctx := range contexts {
		stats = append(stats, analysis.Imports(sctx))
	}
	var out []model.Violation
	for _, fo := range analysis.AggregateFanOut(stats) {
		if fo.Count <= threshold {
			break // sorted descending
		}
		out = append(out, model.Violation{
			RuleID:         ModuleFanOutRuleID,
			Severity:       model.SeverityMedium,
			File:           fo.Module,
			Line:           1,
			Message:        fmt.Sprintf("module %s is imported %d times across the batch, more than the configured %d", fo.Module, fo.Count, threshold),
			Recommendation: "A widely imported module is a change amplifier; consider narrowing its surface.",
			Metadata: map[string]any{
				"module":    fo.Module,
				"count":     fo.Count,
				"threshold": threshold,
			},
		})
	}
	return out
}
