// Package checks contains the builtin rules shipped with the engine.
// Each rule is registered with its catalog metadata and a factory; instances
// are only constructed after configuration overrides are applied.
package checks

import (
	"github.com/Smith-Tools/smith-validation/pkg/rules"
)

func Register(reg *rules.Registry) {
	registerTypeSize(reg)
	registerEnumSize(reg)
	registerFunctionLength(reg)
	registerErrorDiscarded(reg)
	registerDuplicateCases(reg)
	registerDuplicateStateTransform(reg)
	registerDuplicateAsyncShape(reg)
	registerNestedLoops(reg)
	registerRecursion(reg)
	registerComplexCalculation(reg)
	registerHighCoupling(reg)
}
