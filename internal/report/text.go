package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/Smith-Tools/smith-validation/internal/engine"
	"github.com/Smith-Tools/smith-validation/internal/progressive"
	"github.com/Smith-Tools/smith-validation/pkg/model"
)

var severityColors = map[model.Severity]*color.Color{
	model.SeverityCritical: color.New(color.FgRed, color.Bold),
	model.SeverityHigh:     color.New(color.FgRed),
	model.SeverityMedium:   color.New(color.FgYellow),
	model.SeverityLow:      color.New(color.FgCyan),
	model.SeverityInfo:     color.New(color.FgWhite),
}

// WriteText renders a human-readable report.
func WriteText(w io.Writer, res *engine.Result, rep *progressive.Report) {
	fmt.Fprintf(w, "smith-validation: level %s, %d file(s), health %d/100\n\n",
		rep.Level, res.FilesAnalyzed, res.Health)

	if rep.Collection.Len() == 0 {
		fmt.Fprintln(w, "No violations.")
	}
	for _, v := range rep.Collection.Violations() {
		label := severityColors[v.Severity].Sprintf("%-8s", v.Severity)
		fmt.Fprintf(w, "%s %s %s:%d  %s\n", label, v.RuleID, v.File, v.Line, v.Message)
		if v.Recommendation != "" {
			fmt.Fprintf(w, "         ↳ %s\n", v.Recommendation)
		}
	}

	if len(rep.Recommendations) > 0 {
		fmt.Fprintln(w)
		for _, r := range rep.Recommendations {
			fmt.Fprintf(w, "• %s\n", r)
		}
	}
}
