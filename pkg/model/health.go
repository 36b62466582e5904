package model

// DefaultDeductions is the per-violation health deduction table.
// Info-level findings do not deduct.
var DefaultDeductions = map[Severity]int{
	SeverityCritical: 15,
	SeverityHigh:     10,
	SeverityMedium:   5,
	SeverityLow:      2,
}

// HealthScore computes max(0, 100 - sum of deductions) over the collection.
// The sum is unbounded additive and is not normalized by violation count or
// codebase size; a large codebase with many small issues scores the same as a
// small one with the same issues. Known limitation, kept deliberately.
func HealthScore(c *ViolationCollection) int {
	return HealthScoreWith(c, DefaultDeductions)
}

func HealthScoreWith(c *ViolationCollection, deductions map[Severity]int) int {
	score := 100
	for _, v := range c.Violations() {
		score -= deductions[v.Severity]
	}
	if score < 0 {
		score = 0
	}
	return score
}
