// Package semantic wraps raw parse-tree nodes into typed views over one
// source file: declarations, enum-style const groups, member lookups.
package semantic

import (
	"go/ast"
	"go/parser"
	"go/token"
)

// SourceContext is one file under analysis. Contexts are immutable after
// construction, which is what allows rules to run in parallel over them.
type SourceContext struct {
	Path   string
	File   *ast.File
	Fset   *token.FileSet
	Source []byte
}

// Parse builds a SourceContext from raw source. This is the only place the
// engine invokes the parser collaborator.
func Parse(path string, src []byte) (*SourceContext, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, src, parser.ParseComments)
	if err != nil {
		return nil, err
	}
	return &SourceContext{Path: path, File: file, Fset: fset, Source: src}, nil
}

// LineForOffset converts a byte offset into a 1-based line number by counting
// newlines in the source prefix.
func (c *SourceContext) LineForOffset(offset int) int {
	if offset > len(c.Source) {
		offset = len(c.Source)
	}
	line := 1
	for _, b := range c.Source[:offset] {
		if b == '\n' {
			line++
		}
	}
	return line
}

// LineFor resolves a token position to its 1-based line.
func (c *SourceContext) LineFor(pos token.Pos) int {
	if !pos.IsValid() {
		return 1
	}
	return c.LineForOffset(c.Fset.Position(pos).Offset)
}

// Text returns the source text covered by a node, or "" when out of range.
func (c *SourceContext) Text(node ast.Node) string {
	start := c.Fset.Position(node.Pos()).Offset
	end := c.Fset.Position(node.End()).Offset
	if start < 0 || end > len(c.Source) || start > end {
		return ""
	}
	return string(c.Source[start:end])
}
