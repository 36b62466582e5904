package loader

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Discovery is the result of the textual pre-filter: candidate source files
// and the rule type names scraped out of them. It is a speed optimization,
// not authoritative; the loader reconciles it against the instances the
// compiled pack actually returns.
type Discovery struct {
	Files     []string
	TypeNames []string
}

var reValidateMethod = regexp.MustCompile(`func\s*\(\s*\w+\s+\*?(\w+)\s*\)\s*Validate\s*\(`)

// Discover scans dir for sources that look like they declare a type
// implementing the rule contract: a Validate method plus a reference to the
// engine's public packages.
func Discover(dir string) (Discovery, error) {
	var d Discovery
	seen := map[string]struct{}{}
	err := filepath.WalkDir(dir, func(path string, de fs.DirEntry, err error) error {
		if err != nil || de.IsDir() {
			return nil
		}
		name := de.Name()
		if !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			return nil
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		content := string(b)
		if !strings.Contains(content, HostModule+"/pkg/") {
			return nil
		}
		matches := reValidateMethod.FindAllStringSubmatch(content, -1)
		if len(matches) == 0 {
			return nil
		}
		d.Files = append(d.Files, path)
		for _, m := range matches {
			if _, dup := seen[m[1]]; dup {
				continue
			}
			seen[m[1]] = struct{}{}
			d.TypeNames = append(d.TypeNames, m[1])
		}
		return nil
	})
	return d, err
}
