package rules

import (
	"strconv"

	"verdict/internal/diag"
	"verdict/internal/rule"
	"verdict/internal/syntax"
)

// Design-category thresholds.
const (
	maxMethodsPerClass   = 15
	maxConstructorParams = 5
)

var descClassComplexity = diag.MustDescriptor(
	"AC1001",
	"Class has too many methods",
	"class '{0}' declares {1} methods, more than the recommended maximum of {2}",
	"Design",
	diag.SevWarning,
	true,
)

// ClassComplexity reports classes whose direct method count exceeds
// maxMethodsPerClass. Constructors and nested classes do not count.
func ClassComplexity() rule.Rule {
	return rule.New("class-complexity", []diag.Descriptor{descClassComplexity}, func(reg rule.Registrar) {
		reg.OnNode(syntax.KindClass, func(ctx *rule.Context, emit rule.Sink) {
			n := ctx.Tree.CountChildren(ctx.ID, syntax.KindMethod)
			if n > maxMethodsPerClass {
				emit.Emit(descClassComplexity.ID, ctx.Node.Span,
					declaredName(ctx.Node.Text), strconv.Itoa(n), strconv.Itoa(maxMethodsPerClass))
			}
		})
	})
}

var descMutablePublicField = diag.MustDescriptor(
	"AC1002",
	"Mutable public field",
	"public field '{0}' is mutable; expose it through a property or mark it readonly",
	"Design",
	diag.SevWarning,
	true,
)

// MutablePublicField reports public fields that are neither readonly
// nor const.
func MutablePublicField() rule.Rule {
	return rule.New("mutable-public-field", []diag.Descriptor{descMutablePublicField}, func(reg rule.Registrar) {
		reg.OnNode(syntax.KindField, func(ctx *rule.Context, emit rule.Sink) {
			mods, name := modifiers(ctx.Node.Text)
			if !hasModifier(mods, "public") {
				return
			}
			if hasModifier(mods, "readonly") || hasModifier(mods, "const") {
				return
			}
			emit.Emit(descMutablePublicField.ID, ctx.Node.Span, name)
		})
	})
}

var descConstructorOverload = diag.MustDescriptor(
	"AC1003",
	"Constructor takes too many dependencies",
	"constructor of '{0}' takes {1} parameters, more than the recommended maximum of {2}",
	"Design",
	diag.SevWarning,
	true,
)

// ConstructorOverload reports constructors whose parameter count
// exceeds maxConstructorParams, a common sign of a class doing too
// much.
func ConstructorOverload() rule.Rule {
	return rule.New("constructor-overload", []diag.Descriptor{descConstructorOverload}, func(reg rule.Registrar) {
		reg.OnNode(syntax.KindConstructor, func(ctx *rule.Context, emit rule.Sink) {
			n := ctx.Tree.CountChildren(ctx.ID, syntax.KindParameter)
			if n <= maxConstructorParams {
				return
			}
			owner := "<unknown>"
			if class := ctx.Tree.Ancestor(ctx.ID, syntax.KindClass); class != syntax.NoNodeID {
				owner = declaredName(ctx.Tree.Node(class).Text)
			}
			emit.Emit(descConstructorOverload.ID, ctx.Node.Span,
				owner, strconv.Itoa(n), strconv.Itoa(maxConstructorParams))
		})
	})
}
