package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Smith-Tools/smith-validation/pkg/model"
	"github.com/Smith-Tools/smith-validation/pkg/semantic"
)

type stubRule struct {
	meta model.RuleMeta
	s    Settings
}

func (r *stubRule) Meta() model.RuleMeta { return r.meta }
func (r *stubRule) Validate(ctx context.Context, sctx *semantic.SourceContext) ([]model.Violation, error) {
	return nil, nil
}

func newTestRegistry() *Registry {
	reg := NewRegistry()
	for _, m := range []model.RuleMeta{
		{ID: "ALPHA", Category: model.CategoryDesign, Severity: model.SeverityMedium, Enabled: true},
		{ID: "BETA", Category: model.CategoryDesign, Severity: model.SeverityLow, Enabled: true},
		{ID: "GAMMA", Category: model.CategoryCoupling, Severity: model.SeverityHigh, Enabled: false},
	} {
		m := m
		reg.Register(m, func(s Settings) Rule { return &stubRule{meta: m, s: s} })
	}
	return reg
}

func TestRegistryMetas(t *testing.T) {
	reg := newTestRegistry()
	metas := reg.Metas()
	require.Len(t, metas, 3)
	assert.Equal(t, "ALPHA", metas[0].ID) // sorted

	byCat := reg.ByCategory()
	assert.Len(t, byCat[model.CategoryDesign], 2)
	assert.Len(t, byCat[model.CategoryCoupling], 1)
}

func TestBuildSkipsDisabledByDefault(t *testing.T) {
	rs := newTestRegistry().Build(nil)
	require.Len(t, rs, 2)
}

func TestBuildAppliesOverrides(t *testing.T) {
	on, off := true, false
	rs := newTestRegistry().Build(map[string]Override{
		"alpha": {Enabled: &off},
		"beta":  {Severity: model.SeverityCritical, Thresholds: map[string]int{"max": 7}},
		"gamma": {Enabled: &on},
	})
	require.Len(t, rs, 2)

	var beta, gamma *stubRule
	for _, r := range rs {
		sr := r.(*stubRule)
		switch sr.meta.ID {
		case "BETA":
			beta = sr
		case "GAMMA":
			gamma = sr
		}
	}
	require.NotNil(t, beta)
	require.NotNil(t, gamma)
	assert.Equal(t, model.SeverityCritical, beta.s.Severity)
	assert.Equal(t, 7, beta.s.Threshold("max", 0))
	assert.Equal(t, 3, beta.s.Threshold("missing", 3))
	assert.Equal(t, model.SeverityHigh, gamma.s.Severity) // default kept
}
