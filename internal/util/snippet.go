package util

import (
	"strings"
)

// ExtractSnippet returns up to maxLines lines of context around the 1-based
// line from the given source.
func ExtractSnippet(content string, line, maxLines int) string {
	if maxLines <= 0 {
		maxLines = 6
	}
	lines := strings.Split(content, "\n")
	if line < 1 {
		line = 1
	}
	s := max(0, line-1-maxLines/2)
	e := min(len(lines)-1, line-1+maxLines/2)
	if s > e {
		return ""
	}
	return strings.Join(lines[s:e+1], "\n")
}
