package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchPattern(t *testing.T) {
	assert.True(t, matchPattern("internal/engine/engine.go", "internal/**"))
	assert.True(t, matchPattern("internal", "internal/**"))
	assert.False(t, matchPattern("cmd/main.go", "internal/**"))

	assert.True(t, matchPattern("deep/nested/file.go", "**/*.go"))
	assert.False(t, matchPattern("deep/nested/file.txt", "**/*.go"))

	assert.True(t, matchPattern("main.go", "*.go"))
	assert.False(t, matchPattern("sub/main.go", "*.go"))
}

func TestDiscoverFiles(t *testing.T) {
	root := t.TempDir()
	mk := func(rel string) {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("package x\n"), 0o644))
	}
	mk("a.go")
	mk("pkg/b.go")
	mk("pkg/b_test.go")
	mk("vendor/dep/c.go")
	mk(".hidden/d.go")
	mk("docs/readme.md")

	rel := func(paths []string) []string {
		var out []string
		for _, p := range paths {
			r, err := filepath.Rel(root, p)
			require.NoError(t, err)
			out = append(out, filepath.ToSlash(r))
		}
		return out
	}

	got := rel(discoverFiles(root, true, []string{"**/*.go"}, nil))
	assert.ElementsMatch(t, []string{"a.go", "pkg/b.go", "pkg/b_test.go"}, got)

	got = rel(discoverFiles(root, true, []string{"**/*.go"}, []string{"**/*_test.go"}))
	assert.ElementsMatch(t, []string{"a.go", "pkg/b.go"}, got)

	got = rel(discoverFiles(root, false, []string{"**/*.go"}, nil))
	assert.ElementsMatch(t, []string{"a.go"}, got)
}
