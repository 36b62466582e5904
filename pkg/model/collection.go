package model

import "sort"

// ViolationCollection holds findings sorted by severity priority descending.
// The order is re-established on construction and on Resort; ties keep
// insertion order (stable), so re-sorting is idempotent.
type ViolationCollection struct {
	violations []Violation
}

func NewCollection(vs []Violation) *ViolationCollection {
	c := &ViolationCollection{violations: append([]Violation(nil), vs...)}
	c.Resort()
	return c
}

func (c *ViolationCollection) Resort() {
	sort.SliceStable(c.violations, func(i, j int) bool {
		return c.violations[i].Severity.Priority() > c.violations[j].Severity.Priority()
	})
}

// Violations returns the ordered findings. Callers must not mutate it.
func (c *ViolationCollection) Violations() []Violation {
	return c.violations
}

func (c *ViolationCollection) Len() int {
	return len(c.violations)
}

func (c *ViolationCollection) CountBySeverity() map[Severity]int {
	out := map[Severity]int{}
	for _, v := range c.violations {
		out[v.Severity]++
	}
	return out
}

func (c *ViolationCollection) ByFile() map[string][]Violation {
	out := map[string][]Violation{}
	for _, v := range c.violations {
		out[v.File] = append(out[v.File], v)
	}
	return out
}
