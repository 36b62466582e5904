package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Smith-Tools/smith-validation/internal/cache"
	"github.com/Smith-Tools/smith-validation/internal/config"
	"github.com/Smith-Tools/smith-validation/internal/util"
	"github.com/Smith-Tools/smith-validation/pkg/model"
	"github.com/Smith-Tools/smith-validation/pkg/rules"
	"github.com/Smith-Tools/smith-validation/pkg/semantic"
)

// AnalysisErrorRuleID marks findings synthesized from parse or rule failures.
const AnalysisErrorRuleID = "ANALYSIS-ERROR"

type Engine struct {
	cfg   config.Config
	rules []rules.Rule
	cache *cache.ParseCache
	log   *slog.Logger
}

type Result struct {
	Collection    *model.ViolationCollection `json:"-"`
	Health        int                        `json:"health"`
	FilesAnalyzed int                        `json:"filesAnalyzed"`
	Elapsed       time.Duration              `json:"elapsed"`
	CacheStats    cache.Stats                `json:"cacheStats"`
}

func New(cfg config.Config, rs []rules.Rule, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		cfg:   cfg,
		rules: rs,
		cache: cache.NewParseCache(time.Duration(cfg.Cache.TTLSeconds)*time.Second, cfg.Cache.Capacity),
		log:   log,
	}
}

// Cache exposes the parse cache, mainly for statistics.
func (e *Engine) Cache() *cache.ParseCache { return e.cache }

func (e *Engine) ValidateFile(ctx context.Context, path string) (*Result, error) {
	return e.ValidateFiles(ctx, []string{path})
}

func (e *Engine) ValidateDirectory(ctx context.Context, root string, recursive bool) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("validation target: %w", err)
	}
	if !info.IsDir() {
		return e.ValidateFiles(ctx, []string{root})
	}
	files := discoverFiles(root, recursive, e.cfg.Include, e.cfg.Exclude)
	return e.ValidateFiles(ctx, files)
}

// ValidateFiles runs every rule over every file. Targets are checked up front
// so a missing file fails fast before any rule runs; per-file failures after
// that point degrade to analysis-error findings instead of aborting the batch.
func (e *Engine) ValidateFiles(ctx context.Context, paths []string) (*Result, error) {
	start := time.Now()
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("validation target: %w", err)
		}
	}

	var (
		mu       sync.Mutex
		all      []model.Violation
		contexts []*semantic.SourceContext
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(2, runtime.NumCPU()))
	for _, p := range paths {
		p := p
		g.Go(func() error {
			vs, sctx := e.validatePath(gctx, p)
			mu.Lock()
			all = append(all, vs...)
			if sctx != nil {
				contexts = append(contexts, sctx)
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	all = append(all, e.fanOutViolations(contexts)...)
	return e.finish(all, len(paths), start)
}

// ValidateContext runs the rules over an already-built source context.
func (e *Engine) ValidateContext(ctx context.Context, sctx *semantic.SourceContext) (*Result, error) {
	start := time.Now()
	return e.finish(e.runRules(ctx, sctx), 1, start)
}

// ValidateSource parses raw source (bypassing the cache) and validates it.
func (e *Engine) ValidateSource(ctx context.Context, path string, src []byte) (*Result, error) {
	start := time.Now()
	sctx, err := semantic.Parse(path, src)
	if err != nil {
		return e.finish([]model.Violation{analysisError(path, err)}, 1, start)
	}
	return e.finish(e.runRules(ctx, sctx), 1, start)
}

func (e *Engine) finish(all []model.Violation, files int, start time.Time) (*Result, error) {
	for i := range all {
		if all[i].Fingerprint == "" {
			all[i].Fingerprint = util.Fingerprint(all[i].RuleID, all[i].File, all[i].Line, all[i].Message)
		}
	}
	all = applyIgnores(all, e.cfg)
	all = filterBySeverity(all, model.ParseSeverity(e.cfg.MinSeverity))
	if e.cfg.Baseline != "" {
		b, err := loadBaseline(e.cfg.Baseline)
		if err != nil {
			e.log.Warn("baseline unreadable, skipping", "path", e.cfg.Baseline, "err", err)
		} else {
			all = filterByBaseline(all, b)
		}
	}
	col := model.NewCollection(all)
	if e.cfg.MaxViolations > 0 && col.Len() > e.cfg.MaxViolations {
		col = model.NewCollection(col.Violations()[:e.cfg.MaxViolations])
	}
	return &Result{
		Collection:    col,
		Health:        model.HealthScoreWith(col, e.cfg.Deductions()),
		FilesAnalyzed: files,
		Elapsed:       time.Since(start),
		CacheStats:    e.cache.Stats(),
	}, nil
}

// validatePath parses (through the cache) and runs the rules for one file.
// A parse failure yields one analysis-error finding and a nil context.
func (e *Engine) validatePath(ctx context.Context, path string) ([]model.Violation, *semantic.SourceContext) {
	sctx, err := e.parseCached(path)
	if err != nil {
		return []model.Violation{analysisError(path, err)}, nil
	}
	return e.runRules(ctx, sctx), sctx
}

func (e *Engine) parseCached(path string) (*semantic.SourceContext, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if sctx, ok := e.cache.Get(abs, info.Size()); ok {
		return sctx, nil
	}
	src, err := os.ReadFile(abs)
	if err != nil {
		return nil, err
	}
	t0 := time.Now()
	sctx, err := semantic.Parse(path, src)
	if err != nil {
		return nil, err
	}
	e.cache.Put(abs, sctx, info.Size(), time.Since(t0))
	return sctx, nil
}

// runRules invokes every rule over the context. A rule that errors or panics
// contributes one low-severity finding rather than aborting the batch.
func (e *Engine) runRules(ctx context.Context, sctx *semantic.SourceContext) []model.Violation {
	var out []model.Violation
	for _, r := range e.rules {
		vs, err := e.runRule(ctx, r, sctx)
		if err != nil {
			e.log.Debug("rule failed", "rule", r.Meta().ID, "file", sctx.Path, "err", err)
			out = append(out, analysisError(sctx.Path, fmt.Errorf("rule %s: %w", r.Meta().ID, err)))
			continue
		}
		out = append(out, vs...)
	}
	return out
}

func (e *Engine) runRule(ctx context.Context, r rules.Rule, sctx *semantic.SourceContext) (vs []model.Violation, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			vs = nil
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return r.Validate(ctx, sctx)
}

func analysisError(file string, err error) model.Violation {
	return model.Violation{
		RuleID:   AnalysisErrorRuleID,
		Severity: model.SeverityLow,
		File:     file,
		Line:     1,
		Message:  "analysis failed: " + err.Error(),
	}
}
