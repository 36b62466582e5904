package engine

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// derivedDirs are skipped during discovery along with hidden directories.
var derivedDirs = map[string]struct{}{
	"vendor":       {},
	"node_modules": {},
	"testdata":     {},
	"dist":         {},
	"build":        {},
}

// discoverFiles enumerates candidate source files under root, honoring the
// configured include/exclude patterns.
func discoverFiles(root string, recursive bool, include, exclude []string) []string {
	var out []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path == root {
				return nil
			}
			if !recursive {
				return filepath.SkipDir
			}
			name := d.Name()
			if strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if _, skip := derivedDirs[name]; skip {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)
		if matchesAny(rel, exclude) {
			return nil
		}
		if len(include) == 0 || matchesAny(rel, include) {
			out = append(out, path)
		}
		return nil
	})
	return out
}

func matchesAny(rel string, patterns []string) bool {
	for _, p := range patterns {
		if matchPattern(rel, p) {
			return true
		}
	}
	return false
}

// matchPattern supports plain filepath.Match globs plus the common "dir/**"
// and "**/*.ext" forms.
func matchPattern(rel, pattern string) bool {
	pattern = filepath.ToSlash(pattern)
	if strings.HasSuffix(pattern, "/**") {
		prefix := strings.TrimSuffix(pattern, "/**")
		return rel == prefix || strings.HasPrefix(rel, prefix+"/")
	}
	if strings.HasPrefix(pattern, "**/") {
		base := strings.TrimPrefix(pattern, "**/")
		if ok, _ := filepath.Match(base, filepath.Base(rel)); ok {
			return true
		}
	}
	ok, _ := filepath.Match(pattern, rel)
	return ok
}
