package engine

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/Smith-Tools/smith-validation/internal/config"
	"github.com/Smith-Tools/smith-validation/pkg/model"
)

// applyIgnores filters violations matched by config ignore rules or inline
// suppression markers.
func applyIgnores(vs []model.Violation, cfg config.Config) []model.Violation {
	var out []model.Violation
	for _, v := range vs {
		if isIgnored(v, cfg) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func isIgnored(v model.Violation, cfg config.Config) bool {
	for _, ig := range cfg.Ignore {
		if ig.Rule != "" && !strings.EqualFold(ig.Rule, v.RuleID) {
			continue
		}
		if ig.Path != "" {
			if !strings.HasPrefix(filepath.ToSlash(v.File), filepath.ToSlash(ig.Path)) {
				continue
			}
		}
		return true
	}
	return hasInlineSuppression(v.File, v.RuleID, v.Line)
}

// hasInlineSuppression looks around the violation location for a suppression
// comment. Format: // smith:ignore RULE-ID reason="..."
func hasInlineSuppression(filePath, ruleID string, line int) bool {
	f, err := os.Open(filePath)
	if err != nil {
		return false
	}
	defer f.Close()
	var lines []string
	s := bufio.NewScanner(f)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if len(lines) == 0 {
		return false
	}
	from := line - 1 - 2
	if from < 0 {
		from = 0
	}
	to := line - 1 + 1
	if to >= len(lines) {
		to = len(lines) - 1
	}
	needle := "smith:ignore " + ruleID
	for i := from; i <= to; i++ {
		if strings.Contains(lines[i], needle) {
			return true
		}
	}
	return false
}
