package syntax

// Kind is the discriminant tag of a syntax node. The engine never
// interprets kinds beyond table lookup; the set below covers what the
// bundled rules and front ends exchange.
type Kind uint16

const (
	KindInvalid Kind = iota
	KindFile
	KindNamespace
	KindClass
	KindInterface
	KindMethod
	KindConstructor
	KindParameter
	KindField
	KindProperty
	KindBlock
	KindLoop
	KindIf
	KindInvocation
	KindAwait
	KindAssignment
	KindBinaryExpr
	KindObjectCreation
	KindIdentifier
	KindLiteral

	kindCount // keep last
)

var kindNames = [...]string{
	KindInvalid:        "invalid",
	KindFile:           "file",
	KindNamespace:      "namespace",
	KindClass:          "class",
	KindInterface:      "interface",
	KindMethod:         "method",
	KindConstructor:    "constructor",
	KindParameter:      "parameter",
	KindField:          "field",
	KindProperty:       "property",
	KindBlock:          "block",
	KindLoop:           "loop",
	KindIf:             "if",
	KindInvocation:     "invocation",
	KindAwait:          "await",
	KindAssignment:     "assignment",
	KindBinaryExpr:     "binary_expr",
	KindObjectCreation: "object_creation",
	KindIdentifier:     "identifier",
	KindLiteral:        "literal",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

var kindByName = func() map[string]Kind {
	m := make(map[string]Kind, kindCount)
	for k, name := range kindNames {
		m[name] = Kind(k)
	}
	return m
}()

// KindFromString resolves the serialized kind name used by tree files.
func KindFromString(name string) (Kind, bool) {
	k, ok := kindByName[name]
	if !ok || k == KindInvalid {
		return KindInvalid, false
	}
	return k, true
}
