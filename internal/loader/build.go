package loader

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/mod/modfile"

	"github.com/Smith-Tools/smith-validation/internal/cache"
)

const artifactName = "pack.so"

var rePackageClause = regexp.MustCompile(`(?m)^package\s+\w+`)

// build materializes a scratch module for the discovered sources and invokes
// the external build tool. Identical sources reuse the cached artifact.
func (l *Loader) build(ctx context.Context, d Discovery) (string, error) {
	key, err := sourceKey(d)
	if err != nil {
		return "", err
	}
	if cached, ok, err := cache.ArtifactPath(key, ".so"); err == nil && ok {
		l.log.Debug("rule pack artifact cached", "path", cached)
		return cached, nil
	}

	scratch, err := os.MkdirTemp("", "smithpack-"+shortID()+"-")
	if err != nil {
		return "", err
	}
	if !l.opts.KeepScratch {
		defer os.RemoveAll(scratch)
	}

	if err := l.materialize(scratch, d); err != nil {
		return "", err
	}

	buildCtx, cancel := context.WithTimeout(ctx, l.opts.Timeout)
	defer cancel()
	cmd := exec.CommandContext(buildCtx, l.opts.GoBin, "build", "-buildmode=plugin", "-o", artifactName, ".")
	cmd.Dir = scratch
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrCompilationFailed, firstLines(string(out), 10))
	}

	artifact, err := findArtifact(scratch)
	if err != nil {
		return "", err
	}
	return l.persist(artifact, key)
}

// materialize copies the discovered sources (rewritten into package main),
// the generated registrar and the build manifest into the scratch module.
func (l *Loader) materialize(scratch string, d Discovery) error {
	for i, src := range d.Files {
		b, err := os.ReadFile(src)
		if err != nil {
			return err
		}
		rewritten := rePackageClause.ReplaceAllString(string(b), "package main")
		name := fmt.Sprintf("rule_%02d_%s", i, filepath.Base(src))
		if err := os.WriteFile(filepath.Join(scratch, name), []byte(rewritten), 0o644); err != nil {
			return err
		}
	}
	if err := os.WriteFile(filepath.Join(scratch, "registrar.go"), registrar(d.TypeNames), 0o644); err != nil {
		return err
	}
	manifest, err := l.manifest()
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(scratch, "go.mod"), manifest, 0o644)
}

// registrar generates the fixed-name entry point: it constructs one instance
// of each discovered type and erases them behind the Rule interface.
func registrar(typeNames []string) []byte {
	var b strings.Builder
	b.WriteString("// Code generated by smith-validation; DO NOT EDIT.\n\n")
	b.WriteString("package main\n\n")
	b.WriteString("import (\n\t\"" + HostModule + "/pkg/rules\"\n)\n\n")
	b.WriteString("func SmithRules() []rules.Rule {\n\treturn []rules.Rule{\n")
	for _, name := range typeNames {
		fmt.Fprintf(&b, "\t\tnew(%s),\n", name)
	}
	b.WriteString("\t}\n}\n")
	return []byte(b.String())
}

// manifest writes the scratch module's go.mod: a dependency on the host
// module resolved through a replace directive pointing at its source.
func (l *Loader) manifest() ([]byte, error) {
	engineDir := l.opts.EngineDir
	if engineDir == "" {
		var err error
		engineDir, err = findEngineDir()
		if err != nil {
			return nil, err
		}
	}
	f := new(modfile.File)
	if err := f.AddModuleStmt("smithpack/" + shortID()); err != nil {
		return nil, err
	}
	if err := f.AddGoStmt("1.22"); err != nil {
		return nil, err
	}
	if err := f.AddRequire(HostModule, "v0.0.0-00010101000000-000000000000"); err != nil {
		return nil, err
	}
	if err := f.AddReplace(HostModule, "", engineDir, ""); err != nil {
		return nil, err
	}
	return f.Format()
}

// findEngineDir walks upward from the working directory looking for this
// module's go.mod.
func findEngineDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
		if err == nil && modfile.ModulePath(data) == HostModule {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("engine module source not found above %s; set Options.EngineDir", dir)
		}
		dir = parent
	}
}

// findArtifact locates the produced shared object, tolerating toolchain
// output layout variation and skipping debug-symbol bundles.
func findArtifact(dir string) (string, error) {
	var found string
	_ = filepath.WalkDir(dir, func(path string, de fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if de.IsDir() {
			if strings.HasSuffix(de.Name(), ".dSYM") {
				return filepath.SkipDir
			}
			return nil
		}
		switch filepath.Ext(de.Name()) {
		case ".so", ".dylib", ".dll":
			if found == "" || de.Name() == artifactName {
				found = path
			}
		}
		return nil
	})
	if found == "" {
		return "", fmt.Errorf("%w under %s", ErrArtifactNotFound, dir)
	}
	return found, nil
}

// persist copies the artifact out of the scratch tree into the cache so it
// survives scratch cleanup and is reused for identical sources.
func (l *Loader) persist(artifact, key string) (string, error) {
	data, err := os.ReadFile(artifact)
	if err != nil {
		return "", err
	}
	dest, _, err := cache.ArtifactPath(key, ".so")
	if err != nil {
		// cache unavailable; fall back to a stable temp location
		dest = filepath.Join(os.TempDir(), "smithpack-"+key[:16]+".so")
	}
	if err := os.WriteFile(dest, data, 0o755); err != nil {
		return "", err
	}
	return dest, nil
}

func sourceKey(d Discovery) (string, error) {
	parts := []string{"pack-v1"}
	for _, f := range d.Files {
		b, err := os.ReadFile(f)
		if err != nil {
			return "", err
		}
		parts = append(parts, filepath.Base(f), string(b))
	}
	return cache.Key(parts...), nil
}

func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

func firstLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}
