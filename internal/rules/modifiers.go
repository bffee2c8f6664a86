// Package rules holds the built-in detection rules shipped with the
// CLI. Each rule is a plain value wired through rule.New; thresholds
// live here, never in the engine.
//
// Front ends encode declaration modifiers as a space-separated prefix
// of Node.Text, with the declared name last: a field node reading
// "public readonly Count" is a public readonly field named Count.
package rules

import "strings"

// modifiers splits a declaration's Text into its modifier set and
// declared name. The name is the last field; everything before it is
// a modifier.
func modifiers(text string) (mods []string, name string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, ""
	}
	return fields[:len(fields)-1], fields[len(fields)-1]
}

func hasModifier(mods []string, want string) bool {
	for _, m := range mods {
		if m == want {
			return true
		}
	}
	return false
}

// declaredName returns the last field of a declaration's Text.
func declaredName(text string) string {
	_, name := modifiers(text)
	return name
}
