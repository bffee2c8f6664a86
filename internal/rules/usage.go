package rules

import (
	"strings"

	"verdict/internal/diag"
	"verdict/internal/rule"
	"verdict/internal/syntax"
)

var descAwaitWithoutConfigure = diag.MustDescriptor(
	"AC2001",
	"Await without ConfigureAwait",
	"awaited call does not use ConfigureAwait(false)",
	"Usage",
	diag.SevWarning,
	true,
)

// AwaitWithoutConfigure reports await expressions whose awaited
// subtree contains no ConfigureAwait invocation. The scan stays inside
// the await node: nested awaits carry their own subtree and report
// independently.
func AwaitWithoutConfigure() rule.Rule {
	return rule.New("await-without-configure", []diag.Descriptor{descAwaitWithoutConfigure}, func(reg rule.Registrar) {
		reg.OnNode(syntax.KindAwait, func(ctx *rule.Context, emit rule.Sink) {
			if subtreeHasInvocation(ctx.Tree, ctx.ID, "ConfigureAwait") {
				return
			}
			emit.Emit(descAwaitWithoutConfigure.ID, ctx.Node.Span)
		})
	})
}

func subtreeHasInvocation(tree *syntax.Tree, root syntax.NodeID, name string) bool {
	stack := append([]syntax.NodeID(nil), tree.Children(root)...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := tree.Node(id)
		if node.Kind == syntax.KindInvocation && strings.Contains(node.Text, name) {
			return true
		}
		stack = append(stack, node.Children...)
	}
	return false
}

var descAsyncVoidMethod = diag.MustDescriptor(
	"AC2002",
	"Async void method",
	"method '{0}' is async void; exceptions thrown here cannot be observed by the caller",
	"Usage",
	diag.SevError,
	true,
)

// AsyncVoidMethod reports methods declared both async and void.
// Event handlers are the one accepted use and front ends are expected
// to mark those with a "handler" modifier.
func AsyncVoidMethod() rule.Rule {
	return rule.New("async-void-method", []diag.Descriptor{descAsyncVoidMethod}, func(reg rule.Registrar) {
		reg.OnNode(syntax.KindMethod, func(ctx *rule.Context, emit rule.Sink) {
			mods, name := modifiers(ctx.Node.Text)
			if !hasModifier(mods, "async") || !hasModifier(mods, "void") {
				return
			}
			if hasModifier(mods, "handler") {
				return
			}
			emit.Emit(descAsyncVoidMethod.ID, ctx.Node.Span, name)
		})
	})
}
