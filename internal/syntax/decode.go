package syntax

import (
	"encoding/json"
	"fmt"

	"verdict/internal/source"
)

// treeJSON is the interchange format front ends use to hand finished
// trees to the engine. Offsets are bytes into the normalized file.
type treeJSON struct {
	Kind     string     `json:"kind"`
	Start    uint32     `json:"start"`
	End      uint32     `json:"end"`
	Text     string     `json:"text,omitempty"`
	Children []treeJSON `json:"children,omitempty"`
}

// DecodeJSON parses a serialized tree and binds it to file.
func DecodeJSON(data []byte, file source.FileID) (*Tree, error) {
	var root treeJSON
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("syntax: decode tree: %w", err)
	}

	b := NewBuilder(file)
	if err := addJSON(b, NoNodeID, &root); err != nil {
		return nil, err
	}
	return b.Build()
}

func addJSON(b *Builder, parent NodeID, jn *treeJSON) error {
	kind, ok := KindFromString(jn.Kind)
	if !ok {
		return fmt.Errorf("syntax: unknown node kind %q", jn.Kind)
	}
	id := b.Add(parent, kind, source.Span{Start: jn.Start, End: jn.End}, jn.Text)
	for i := range jn.Children {
		if err := addJSON(b, id, &jn.Children[i]); err != nil {
			return err
		}
	}
	return nil
}

// EncodeJSON serializes a tree into the interchange format.
func EncodeJSON(t *Tree) ([]byte, error) {
	if t == nil || t.root == NoNodeID {
		return nil, ErrEmptyTree
	}
	root := encodeNode(t, t.root)
	return json.MarshalIndent(root, "", "  ")
}

func encodeNode(t *Tree, id NodeID) treeJSON {
	n := t.Node(id)
	jn := treeJSON{
		Kind:  n.Kind.String(),
		Start: n.Span.Start,
		End:   n.Span.End,
		Text:  n.Text,
	}
	for _, child := range n.Children {
		jn.Children = append(jn.Children, encodeNode(t, child))
	}
	return jn
}
