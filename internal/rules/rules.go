package rules

import (
	"verdict/internal/rule"
)

// Default returns the built-in rule-set in its canonical order. The
// slice is freshly allocated; callers may append their own rules.
func Default() []rule.Rule {
	return []rule.Rule{
		ClassComplexity(),
		MutablePublicField(),
		ConstructorOverload(),
		AwaitWithoutConfigure(),
		AsyncVoidMethod(),
		StringConcatInLoop(),
		AllocationInLoop(),
	}
}
