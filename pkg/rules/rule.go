// Package rules defines the contract between the validation engine and rule
// implementations, builtin or shipped in externally built rule packs.
package rules

import (
	"context"

	"github.com/Smith-Tools/smith-validation/pkg/model"
	"github.com/Smith-Tools/smith-validation/pkg/semantic"
)

// Rule validates one source context and reports violations. Implementations
// must be pure: no shared mutable state, no panic on merely odd-but-parseable
// input. The engine treats a returned error (or a panic it recovers) as a
// single low-severity analysis-error finding, never as a batch abort.
type Rule interface {
	Meta() model.RuleMeta
	Validate(ctx context.Context, sctx *semantic.SourceContext) ([]model.Violation, error)
}

// EntrypointSymbol is the fixed symbol name every compiled rule pack exports.
// The generated registrar provides it; the loader resolves it after
// plugin.Open and calls it once to recover the pack's rule instances.
const EntrypointSymbol = "SmithRules"

// Entrypoint is the required signature of that symbol.
type Entrypoint = func() []Rule
