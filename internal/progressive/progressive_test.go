package progressive

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Smith-Tools/smith-validation/pkg/model"
)

func mixedCollection() *model.ViolationCollection {
	return model.NewCollection([]model.Violation{
		{RuleID: "R1", Severity: model.SeverityCritical, File: "a.go"},
		{RuleID: "R2", Severity: model.SeverityHigh, File: "a.go"},
		{RuleID: "R3", Severity: model.SeverityMedium, File: "b.go"},
		{RuleID: "R4", Severity: model.SeverityLow, File: "b.go"},
		{RuleID: "R5", Severity: model.SeverityInfo, File: "c.go"},
	})
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, LevelStandard, lvl)

	lvl, err = ParseLevel("critical")
	require.NoError(t, err)
	assert.Equal(t, LevelCritical, lvl)

	_, err = ParseLevel("verbose")
	assert.Error(t, err)
}

func TestCriticalLevelKeepsOnlyUrgent(t *testing.T) {
	r := Apply(mixedCollection(), LevelCritical)
	require.Equal(t, 2, r.Collection.Len())
	for _, v := range r.Collection.Violations() {
		assert.True(t, model.SeverityGTE(v.Severity, model.SeverityHigh))
	}
}

func TestStandardLevelKeepsEverything(t *testing.T) {
	r := Apply(mixedCollection(), LevelStandard)
	assert.Equal(t, 5, r.Collection.Len())
	assert.Empty(t, r.Hotspots)
}

func TestLevelsAreNested(t *testing.T) {
	// Everything shown at critical appears at standard, and everything at
	// standard appears at comprehensive (which may add synthesized findings).
	c := mixedCollection()
	inStandard := map[string]bool{}
	for _, v := range Apply(c, LevelStandard).Collection.Violations() {
		inStandard[v.RuleID] = true
	}
	for _, v := range Apply(c, LevelCritical).Collection.Violations() {
		assert.True(t, inStandard[v.RuleID])
	}
	inComprehensive := map[string]bool{}
	for _, v := range Apply(c, LevelComprehensive).Collection.Violations() {
		inComprehensive[v.RuleID] = true
	}
	for id := range inStandard {
		assert.True(t, inComprehensive[id])
	}
}

func TestComprehensiveSynthesizesHotspots(t *testing.T) {
	var vs []model.Violation
	for i := 0; i < HotspotThreshold; i++ {
		vs = append(vs, model.Violation{RuleID: fmt.Sprintf("R%d", i), Severity: model.SeverityMedium, File: "hot.go"})
	}
	vs = append(vs, model.Violation{RuleID: "R9", Severity: model.SeverityMedium, File: "cool.go"})

	r := Apply(model.NewCollection(vs), LevelComprehensive)
	require.Len(t, r.Hotspots, 1)
	assert.Equal(t, "hot.go", r.Hotspots[0].File)
	assert.Equal(t, HotspotRuleID, r.Hotspots[0].RuleID)
	assert.Equal(t, HotspotThreshold, r.Hotspots[0].Metadata["violations"])
	// synthesized findings join the collection
	assert.Equal(t, len(vs)+1, r.Collection.Len())
}

func TestComprehensiveDiversityInsight(t *testing.T) {
	r := Apply(mixedCollection(), LevelComprehensive)
	require.Len(t, r.Insights, 1)
	assert.Contains(t, r.Insights[0], "5 distinct rule types")
}

func TestRecommendationsPerLevel(t *testing.T) {
	r := Apply(mixedCollection(), LevelCritical)
	require.NotEmpty(t, r.Recommendations)
	assert.Contains(t, r.Recommendations[0], "critical")

	empty := Apply(model.NewCollection(nil), LevelCritical)
	require.Len(t, empty.Recommendations, 1)
	assert.Contains(t, empty.Recommendations[0], "standard level")
}
