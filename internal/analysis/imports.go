package analysis

import (
	"sort"
	"strconv"

	"github.com/Smith-Tools/smith-validation/pkg/semantic"
)

// ImportStats is the per-file dependency signal: a plain import count.
// A coarse fan-out heuristic, not a coupling analysis.
type ImportStats struct {
	File  string   `json:"file"`
	Count int      `json:"count"`
	Paths []string `json:"paths"`
}

func Imports(sctx *semantic.SourceContext) ImportStats {
	stats := ImportStats{File: sctx.Path}
	for _, imp := range sctx.File.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			path = imp.Path.Value
		}
		stats.Paths = append(stats.Paths, path)
	}
	stats.Count = len(stats.Paths)
	return stats
}

// ModuleFanOut aggregates how often one module is imported across files.
type ModuleFanOut struct {
	Module string `json:"module"`
	Count  int    `json:"count"`
}

// AggregateFanOut sums import references per module across the given files,
// sorted by count descending then module name for stable output.
func AggregateFanOut(stats []ImportStats) []ModuleFanOut {
	counts := map[string]int{}
	for _, s := range stats {
		for _, p := range s.Paths {
			counts[p]++
		}
	}
	out := make([]ModuleFanOut, 0, len(counts))
	for mod, n := range counts {
		out = append(out, ModuleFanOut{Module: mod, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Module < out[j].Module
	})
	return out
}
