package document

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Pair is one key/value entry of a mapping node.
type Pair struct {
	Key   string
	Node  *yaml.Node
	Value *yaml.Node
}

// Resolve unwraps document and alias nodes. It returns nil for nil input.
func Resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}

			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}

	return nil
}

// Pairs returns the entries of a mapping node in document order. Merge keys
// ("<<") are kept as ordinary entries.
func Pairs(n *yaml.Node) []Pair {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}

	out := make([]Pair, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		out = append(out, Pair{Key: n.Content[i].Value, Node: n.Content[i], Value: Resolve(n.Content[i+1])})
	}

	return out
}

// Lookup returns the value for key in a mapping node, or nil.
func Lookup(n *yaml.Node, key string) *yaml.Node {
	for _, p := range Pairs(n) {
		if p.Key == key {
			return p.Value
		}
	}

	return nil
}

// Items returns the elements of a sequence node.
func Items(n *yaml.Node) []*yaml.Node {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil
	}

	out := make([]*yaml.Node, len(n.Content))
	for i, c := range n.Content {
		out[i] = Resolve(c)
	}

	return out
}

// IsNull reports whether n is absent or an explicit null.
func IsNull(n *yaml.Node) bool {
	n = Resolve(n)
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

// IsEmpty reports whether n is null, a blank scalar, or an empty collection.
func IsEmpty(n *yaml.Node) bool {
	n = Resolve(n)
	if IsNull(n) {
		return true
	}

	switch n.Kind {
	case yaml.ScalarNode:
		return strings.TrimSpace(n.Value) == ""
	case yaml.MappingNode, yaml.SequenceNode:
		return len(n.Content) == 0
	default:
		return false
	}
}

// ScalarString returns the text of a scalar node.
func ScalarString(n *yaml.Node) (string, bool) {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		return "", false
	}

	return n.Value, true
}

// ScalarBool returns the boolean value of a scalar. Quoted "true"/"false"
// strings are accepted too.
func ScalarBool(n *yaml.Node) (bool, bool) {
	s, ok := ScalarString(n)
	if !ok {
		return false, false
	}

	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, false
	}

	return b, true
}

// ScalarInt returns the integer value of a scalar. Quoted digits are
// accepted too.
func ScalarInt(n *yaml.Node) (int, bool) {
	s, ok := ScalarString(n)
	if !ok {
		return 0, false
	}

	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}

	return i, true
}

// ToAny decodes n into plain Go values (map[string]any, []any, scalars).
func ToAny(n *yaml.Node) any {
	n = Resolve(n)
	if n == nil {
		return nil
	}

	var v any
	if err := n.Decode(&v); err != nil {
		return n.Value
	}

	return v
}

// Strings returns a scalar as a single-element slice or a sequence of
// scalars as a slice. Non-scalar elements are skipped.
func Strings(n *yaml.Node) []string {
	if s, ok := ScalarString(n); ok {
		if strings.TrimSpace(s) == "" {
			return nil
		}

		return []string{s}
	}

	var out []string

	for _, item := range Items(n) {
		if s, ok := ScalarString(item); ok {
			out = append(out, s)
		}
	}

	return out
}
