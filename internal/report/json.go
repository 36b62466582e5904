// Package report serializes validation results for external consumption.
// The engine itself only ever returns typed data.
package report

import (
	"encoding/json"

	"github.com/Smith-Tools/smith-validation/internal/engine"
	"github.com/Smith-Tools/smith-validation/internal/progressive"
	"github.com/Smith-Tools/smith-validation/pkg/model"
)

type document struct {
	Tool            string            `json:"tool"`
	Level           string            `json:"level"`
	Health          int               `json:"health"`
	FilesAnalyzed   int               `json:"filesAnalyzed"`
	ElapsedMs       int64             `json:"elapsedMs"`
	Summary         map[string]int    `json:"summary"`
	Violations      []model.Violation `json:"violations"`
	Hotspots        []model.Violation `json:"hotspots,omitempty"`
	Insights        []string          `json:"insights,omitempty"`
	Recommendations []string          `json:"recommendations,omitempty"`
	Cache           struct {
		Hits   int64 `json:"hits"`
		Misses int64 `json:"misses"`
	} `json:"cache"`
}

func ToJSON(res *engine.Result, rep *progressive.Report) ([]byte, error) {
	doc := document{
		Tool:            "smith-validation",
		Level:           string(rep.Level),
		Health:          res.Health,
		FilesAnalyzed:   res.FilesAnalyzed,
		ElapsedMs:       res.Elapsed.Milliseconds(),
		Summary:         map[string]int{},
		Violations:      rep.Collection.Violations(),
		Hotspots:        rep.Hotspots,
		Insights:        rep.Insights,
		Recommendations: rep.Recommendations,
	}
	for sev, n := range rep.Collection.CountBySeverity() {
		doc.Summary[string(sev)] = n
	}
	doc.Cache.Hits = res.CacheStats.Hits
	doc.Cache.Misses = res.CacheStats.Misses
	return json.MarshalIndent(doc, "", "  ")
}
