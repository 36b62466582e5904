// Package loader discovers externally authored rule-pack sources, compiles
// them into a Go plugin, and recovers rule instances through the fixed
// entry-point symbol. Each pack builds in its own uniquely named scratch
// module, so distinct packs may build concurrently.
package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"plugin"
	"strings"
	"time"

	"github.com/Smith-Tools/smith-validation/pkg/rules"
)

var (
	ErrNoCandidates        = errors.New("no rule sources discovered")
	ErrCompilationFailed   = errors.New("rule pack compilation failed")
	ErrArtifactNotFound    = errors.New("rule pack artifact not found")
	ErrInstantiationFailed = errors.New("rule pack instantiation failed")
)

// HostModule is the module path rule packs compile against.
const HostModule = "github.com/Smith-Tools/smith-validation"

type Options struct {
	// EngineDir is the on-disk source of this module, wired into the scratch
	// module's replace directive. Resolved automatically when empty.
	EngineDir string
	// GoBin is the build tool binary, "go" by default.
	GoBin string
	// Timeout bounds one pack build. The subprocess is killed past it.
	Timeout time.Duration
	// KeepScratch leaves the scratch module on disk for debugging.
	KeepScratch bool
}

type Loader struct {
	opts Options
	log  *slog.Logger
}

func New(opts Options, log *slog.Logger) *Loader {
	if opts.GoBin == "" {
		opts.GoBin = "go"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 2 * time.Minute
	}
	if log == nil {
		log = slog.Default()
	}
	return &Loader{opts: opts, log: log}
}

// LoadedRulePack bundles the loaded-code handle with the rule instances it
// produced. The instances' executable code lives in the plugin image, so the
// two must share ownership: the Go runtime never unloads a plugin for the
// life of the process, and any future backend that can unload must release
// the handle and the instances together, never the handle alone.
type LoadedRulePack struct {
	Path     string
	Rules    []rules.Rule
	Warnings []string

	handle *plugin.Plugin
}

// Load builds and loads the rule pack rooted at dir.
func (l *Loader) Load(ctx context.Context, dir string) (*LoadedRulePack, error) {
	d, err := Discover(dir)
	if err != nil {
		return nil, err
	}
	if len(d.Files) == 0 {
		return nil, fmt.Errorf("%w under %s", ErrNoCandidates, dir)
	}
	l.log.Debug("rule pack discovered", "dir", dir, "files", len(d.Files), "types", d.TypeNames)

	artifact, err := l.build(ctx, d)
	if err != nil {
		return nil, err
	}

	p, err := plugin.Open(artifact)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrInstantiationFailed, artifact, err)
	}
	sym, err := p.Lookup(rules.EntrypointSymbol)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInstantiationFailed, err)
	}
	entry, ok := sym.(rules.Entrypoint)
	if !ok {
		return nil, fmt.Errorf("%w: symbol %s has type %T, want func() []rules.Rule",
			ErrInstantiationFailed, rules.EntrypointSymbol, sym)
	}
	instances := entry()
	return &LoadedRulePack{
		Path:     artifact,
		Rules:    instances,
		Warnings: reconcileWarnings(d.TypeNames, len(instances)),
		handle:   p,
	}, nil
}

// LoadAll loads several packs independently: one pack failing to build or
// instantiate does not prevent the others from contributing rules.
func (l *Loader) LoadAll(ctx context.Context, dirs []string) ([]*LoadedRulePack, []error) {
	var packs []*LoadedRulePack
	var errs []error
	for _, dir := range dirs {
		pack, err := l.Load(ctx, dir)
		if err != nil {
			errs = append(errs, fmt.Errorf("pack %s: %w", dir, err))
			continue
		}
		packs = append(packs, pack)
	}
	return packs, errs
}

// reconcileWarnings compares the textual pre-filter against what the runtime
// actually recovered. Types found but zero instances is a registration or ABI
// mismatch: surfaced as a warning, never a silent empty success.
func reconcileWarnings(typeNames []string, recovered int) []string {
	if len(typeNames) == 0 || recovered > 0 {
		return nil
	}
	return []string{fmt.Sprintf(
		"discovered %d rule type(s) (%s) but the pack produced no instances; check the registration entry point",
		len(typeNames), strings.Join(typeNames, ", "))}
}
