package rules

import (
	"sort"
	"strings"

	"github.com/Smith-Tools/smith-validation/pkg/model"
)

// Settings carries the per-rule knobs a factory receives at construction.
// Severity overrides the catalog default; Thresholds are rule-specific.
type Settings struct {
	Severity   model.Severity
	Thresholds map[string]int
}

// Threshold returns the configured value for key, or fallback.
func (s Settings) Threshold(key string, fallback int) int {
	if v, ok := s.Thresholds[key]; ok {
		return v
	}
	return fallback
}

// Override is the configuration-supplied adjustment for one rule.
type Override struct {
	Enabled    *bool
	Severity   model.Severity
	Thresholds map[string]int
}

// Factory constructs a rule instance from settings. Registered once at
// startup; instances are built only after overrides are applied.
type Factory func(s Settings) Rule

type entry struct {
	meta    model.RuleMeta
	factory Factory
}

// Registry stores rule metadata separately from instances.
type Registry struct {
	entries []entry
	index   map[string]int
}

func NewRegistry() *Registry {
	return &Registry{index: map[string]int{}}
}

func (r *Registry) Register(meta model.RuleMeta, f Factory) {
	r.index[strings.ToUpper(meta.ID)] = len(r.entries)
	r.entries = append(r.entries, entry{meta: meta, factory: f})
}

func (r *Registry) Meta(id string) (model.RuleMeta, bool) {
	idx, ok := r.index[strings.ToUpper(id)]
	if !ok {
		return model.RuleMeta{}, false
	}
	return r.entries[idx].meta, true
}

func (r *Registry) Metas() []model.RuleMeta {
	out := make([]model.RuleMeta, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.meta)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *Registry) ByCategory() map[model.RuleCategory][]model.RuleMeta {
	out := map[model.RuleCategory][]model.RuleMeta{}
	for _, m := range r.Metas() {
		out[m.Category] = append(out[m.Category], m)
	}
	return out
}

// Build applies overrides and constructs instances for every enabled rule.
// Overrides are keyed by rule ID, case-insensitive.
func (r *Registry) Build(overrides map[string]Override) []Rule {
	norm := make(map[string]Override, len(overrides))
	for id, ov := range overrides {
		norm[strings.ToUpper(id)] = ov
	}
	var out []Rule
	for _, e := range r.entries {
		ov := norm[strings.ToUpper(e.meta.ID)]
		enabled := e.meta.Enabled
		if ov.Enabled != nil {
			enabled = *ov.Enabled
		}
		if !enabled {
			continue
		}
		s := Settings{Severity: e.meta.Severity, Thresholds: ov.Thresholds}
		if ov.Severity != "" {
			s.Severity = ov.Severity
		}
		out = append(out, e.factory(s))
	}
	return out
}
