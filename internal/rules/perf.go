package rules

import (
	"strings"

	"verdict/internal/diag"
	"verdict/internal/rule"
	"verdict/internal/syntax"
)

var descStringConcatInLoop = diag.MustDescriptor(
	"AC3001",
	"String concatenation in loop",
	"string concatenation inside a loop; build the value with a string builder instead",
	"Performance",
	diag.SevInfo,
	true,
)

// StringConcatInLoop reports string concatenation performed inside a
// loop body: a '+' binary expression or '+=' assignment with a string
// literal operand. Without type information a literal operand is the
// only safe evidence the expression builds a string.
func StringConcatInLoop() rule.Rule {
	return rule.New("string-concat-in-loop", []diag.Descriptor{descStringConcatInLoop}, func(reg rule.Registrar) {
		check := func(ctx *rule.Context, emit rule.Sink) {
			if !ctx.Tree.HasAncestor(ctx.ID, syntax.KindLoop) {
				return
			}
			switch ctx.Node.Kind {
			case syntax.KindBinaryExpr:
				if ctx.Node.Text != "+" || !hasStringLiteralOperand(ctx.Tree, ctx.ID) {
					return
				}
			case syntax.KindAssignment:
				if ctx.Node.Text != "+=" || !hasStringLiteralOperand(ctx.Tree, ctx.ID) {
					return
				}
			}
			emit.Emit(descStringConcatInLoop.ID, ctx.Node.Span)
		}
		reg.OnNode(syntax.KindBinaryExpr, check)
		reg.OnNode(syntax.KindAssignment, check)
	})
}

func hasStringLiteralOperand(tree *syntax.Tree, id syntax.NodeID) bool {
	for _, child := range tree.Children(id) {
		node := tree.Node(child)
		if node.Kind == syntax.KindLiteral && strings.HasPrefix(node.Text, `"`) {
			return true
		}
	}
	return false
}

var descAllocationInLoop = diag.MustDescriptor(
	"AC3002",
	"Object allocation in loop",
	"'{0}' is allocated on every loop iteration; hoist it out of the loop if it is invariant",
	"Performance",
	diag.SevInfo,
	false,
)

// AllocationInLoop reports object creation expressions inside loop
// bodies. Noisy on purpose, so it ships disabled by default and is
// turned on per project.
func AllocationInLoop() rule.Rule {
	return rule.New("allocation-in-loop", []diag.Descriptor{descAllocationInLoop}, func(reg rule.Registrar) {
		reg.OnNode(syntax.KindObjectCreation, func(ctx *rule.Context, emit rule.Sink) {
			if !ctx.Tree.HasAncestor(ctx.ID, syntax.KindLoop) {
				return
			}
			emit.Emit(descAllocationInLoop.ID, ctx.Node.Span, declaredName(ctx.Node.Text))
		})
	})
}
