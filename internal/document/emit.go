package document

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"contract-mapper/internal/errors"
)

// Indent is the number of spaces per nesting level in emitted text.
const Indent = 2

// Emit renders a tree as YAML text. Key order is exactly the node order.
func Emit(n *yaml.Node) ([]byte, error) {
	if n == nil {
		return nil, errors.New("document: cannot emit a nil tree")
	}

	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(Indent)

	if err := enc.Encode(n); err != nil {
		return nil, errors.Wrap(err, "document: emit")
	}

	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "document: emit")
	}

	return buf.Bytes(), nil
}

// Encode converts a typed value into a tree, honoring yaml struct tags.
// Struct field order becomes key order.
func Encode(v any) (*yaml.Node, error) {
	var n yaml.Node
	if err := n.Encode(v); err != nil {
		return nil, errors.Wrap(err, "document: encode")
	}

	return &n, nil
}

// Decode converts a tree into a typed value.
func Decode(n *yaml.Node, v any) error {
	if n == nil {
		return errors.New("document: cannot decode a nil tree")
	}

	if err := n.Decode(v); err != nil {
		return errors.Wrap(err, "document: decode")
	}

	return nil
}
