// Package progressive post-processes a violation collection into one of
// three disclosure levels with synthesized insights. One parameterized
// implementation drives all levels.
package progressive

import (
	"fmt"
	"sort"

	"github.com/Smith-Tools/smith-validation/pkg/model"
)

type Level string

const (
	LevelCritical      Level = "critical"
	LevelStandard      Level = "standard"
	LevelComprehensive Level = "comprehensive"
)

func ParseLevel(s string) (Level, error) {
	switch Level(s) {
	case LevelCritical, LevelStandard, LevelComprehensive:
		return Level(s), nil
	case "":
		return LevelStandard, nil
	default:
		return "", fmt.Errorf("unknown level %q (critical|standard|comprehensive)", s)
	}
}

// HotspotRuleID marks synthesized per-file hotspot findings.
const HotspotRuleID = "HOTSPOT"

// HotspotThreshold is the per-file violation count that makes a hotspot.
const HotspotThreshold = 5

// diversityThreshold: this many distinct rules firing suggests broad decay
// rather than one local problem.
const diversityThreshold = 4

// Report is the outcome of applying one disclosure level.
type Report struct {
	Level           Level                      `json:"level"`
	Collection      *model.ViolationCollection `json:"-"`
	Hotspots        []model.Violation          `json:"hotspots,omitempty"`
	Insights        []string                   `json:"insights,omitempty"`
	Recommendations []string                   `json:"recommendations,omitempty"`
}

// Apply filters the collection for the level and synthesizes the level's
// insights. critical keeps only critical/high findings; standard keeps
// everything; comprehensive keeps everything and adds hotspot findings plus
// diversity insights.
func Apply(c *model.ViolationCollection, level Level) *Report {
	r := &Report{Level: level}
	switch level {
	case LevelCritical:
		var kept []model.Violation
		for _, v := range c.Violations() {
			if v.Severity == model.SeverityCritical || v.Severity == model.SeverityHigh {
				kept = append(kept, v)
			}
		}
		r.Collection = model.NewCollection(kept)
	case LevelComprehensive:
		r.Hotspots = synthesizeHotspots(c)
		r.Collection = model.NewCollection(append(append([]model.Violation(nil), c.Violations()...), r.Hotspots...))
		r.Insights = diversityInsights(c)
	default:
		r.Collection = model.NewCollection(c.Violations())
	}
	r.Recommendations = recommendations(r)
	return r
}

// synthesizeHotspots emits one meta-finding per file that accumulated at
// least HotspotThreshold violations across all rules.
func synthesizeHotspots(c *model.ViolationCollection) []model.Violation {
	byFile := c.ByFile()
	files := make([]string, 0, len(byFile))
	for f := range byFile {
		files = append(files, f)
	}
	sort.Strings(files)
	var out []model.Violation
	for _, f := range files {
		vs := byFile[f]
		if len(vs) < HotspotThreshold {
			continue
		}
		out = append(out, model.Violation{
			RuleID:         HotspotRuleID,
			Severity:       model.SeverityHigh,
			File:           f,
			Line:           1,
			Message:        fmt.Sprintf("file accumulated %d violations across rules", len(vs)),
			Recommendation: "Concentrated findings usually mean a structural problem; review the file as a whole.",
			Metadata:       map[string]any{"violations": len(vs), "threshold": HotspotThreshold},
		})
	}
	return out
}

func diversityInsights(c *model.ViolationCollection) []string {
	ruleIDs := map[string]struct{}{}
	for _, v := range c.Violations() {
		ruleIDs[v.RuleID] = struct{}{}
	}
	if len(ruleIDs) < diversityThreshold {
		return nil
	}
	return []string{fmt.Sprintf(
		"%d distinct rule types fired; issues are spread across concerns rather than localized",
		len(ruleIDs))}
}

// recommendations renders the level's natural-language guidance.
func recommendations(r *Report) []string {
	counts := r.Collection.CountBySeverity()
	var out []string
	if n := counts[model.SeverityCritical]; n > 0 {
		out = append(out, fmt.Sprintf("Address the %d critical issue(s) before anything else.", n))
	}
	if n := counts[model.SeverityHigh]; n > 0 {
		out = append(out, fmt.Sprintf("Schedule fixes for %d high-severity issue(s).", n))
	}
	if r.Level == LevelCritical {
		if r.Collection.Len() == 0 {
			out = append(out, "No critical or high findings; rerun at the standard level for the full picture.")
		}
		return out
	}
	if n := counts[model.SeverityMedium]; n > 0 {
		out = append(out, fmt.Sprintf("%d medium issue(s) are worth folding into routine refactoring.", n))
	}
	if r.Level == LevelComprehensive {
		if len(r.Hotspots) > 0 {
			out = append(out, fmt.Sprintf("%d file(s) are violation hotspots; start reviews there.", len(r.Hotspots)))
		}
		out = append(out, r.Insights...)
	}
	return out
}
