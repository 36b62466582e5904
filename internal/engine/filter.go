package engine

import (
	"github.com/Smith-Tools/smith-validation/pkg/model"
)

// filterBySeverity removes violations below the configured minimum severity.
func filterBySeverity(vs []model.Violation, threshold model.Severity) []model.Violation {
	if threshold == model.SeverityInfo {
		return vs
	}
	var out []model.Violation
	for _, v := range vs {
		if model.SeverityGTE(v.Severity, threshold) {
			out = append(out, v)
		}
	}
	return out
}
