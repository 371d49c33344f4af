package mapping

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"contract-mapper/internal/diagnostic"
	"contract-mapper/internal/document"
	"contract-mapper/internal/match"
)

// suggestionThreshold is the minimum normalized similarity for a known key
// to be offered as a "did you mean" candidate.
const (
	suggestionThreshold = 0.6
	maxSuggestions      = 3
)

// object resolves aliased fields of one mapping node and tracks which keys
// were consumed.
type object struct {
	path        string
	pairs       []document.Pair
	used        []bool
	table       AliasTable
	passthrough []string
}

func newObject(n *yaml.Node, path string, table AliasTable, passthrough []string) *object {
	pairs := document.Pairs(n)

	return &object{
		path:        path,
		pairs:       pairs,
		used:        make([]bool, len(pairs)),
		table:       table,
		passthrough: passthrough,
	}
}

// lookup returns the index of the first pair matching keys in priority order
// whose value is not empty, or -1.
func (o *object) lookup(keys []string) int {
	for _, k := range keys {
		norm := match.NormalizeIdent(k)

		for i, p := range o.pairs {
			if match.NormalizeIdent(p.Key) == norm && !document.IsEmpty(p.Value) {
				return i
			}
		}
	}

	return -1
}

// take resolves f and marks the winning key consumed. It returns the value
// node and the key actually used.
func (o *object) take(f Field) (*yaml.Node, string) {
	i := o.lookup(o.table.Keys(f))
	if i < 0 {
		return nil, ""
	}

	o.used[i] = true

	return o.pairs[i].Value, o.pairs[i].Key
}

func (o *object) has(f Field) bool {
	return o.lookup(o.table.Keys(f)) >= 0
}

func (o *object) str(f Field, diags *diagnostic.Diagnostics) string {
	n, key := o.take(f)
	if n == nil {
		return ""
	}

	s, ok := document.ScalarString(n)
	if !ok {
		diags.AddWarning(diagnostic.CodeInvalidValue,
			fmt.Sprintf("expected a scalar for %q, ignoring value", key), o.path, key)

		return ""
	}

	return s
}

func (o *object) boolean(f Field, diags *diagnostic.Diagnostics) (bool, bool) {
	n, key := o.take(f)
	if n == nil {
		return false, false
	}

	b, ok := document.ScalarBool(n)
	if !ok {
		diags.AddWarning(diagnostic.CodeInvalidValue,
			fmt.Sprintf("expected a boolean for %q, got %q", key, n.Value), o.path, key)

		return false, false
	}

	return b, true
}

func (o *object) integer(f Field, diags *diagnostic.Diagnostics) (int, bool) {
	n, key := o.take(f)
	if n == nil {
		return 0, false
	}

	i, ok := document.ScalarInt(n)
	if !ok {
		diags.AddWarning(diagnostic.CodeInvalidValue,
			fmt.Sprintf("expected an integer for %q, got %q", key, n.Value), o.path, key)

		return 0, false
	}

	return i, true
}

func (o *object) strings(f Field) []string {
	n, _ := o.take(f)
	return document.Strings(n)
}

func (o *object) value(f Field) any {
	n, _ := o.take(f)
	if n == nil {
		return nil
	}

	return document.ToAny(n)
}

// maps resolves f as a sequence of mappings, skipping other elements.
func (o *object) maps(f Field, diags *diagnostic.Diagnostics) []map[string]any {
	n, key := o.take(f)
	if n == nil {
		return nil
	}

	var out []map[string]any

	for i, item := range document.Items(n) {
		m, ok := document.ToAny(item).(map[string]any)
		if !ok {
			diags.AddWarning(diagnostic.CodeInvalidValue,
				fmt.Sprintf("%s[%d] is not a mapping, ignoring it", key, i), o.path, key)

			continue
		}

		out = append(out, m)
	}

	return out
}

// rest returns the unconsumed entries as plain values. Keys no alias or
// passthrough list recognizes are reported as unknown fields.
func (o *object) rest(diags *diagnostic.Diagnostics) map[string]any {
	var out map[string]any

	for i, p := range o.pairs {
		if o.used[i] {
			continue
		}

		if out == nil {
			out = map[string]any{}
		}

		out[p.Key] = document.ToAny(p.Value)

		if diags == nil || o.table.Recognizes(p.Key) || o.passes(p.Key) {
			continue
		}

		diags.AddSuggestion(diagnostic.CodeUnknownField,
			fmt.Sprintf("unknown field %q", p.Key), o.path, p.Key, o.suggest(p.Key)...)
	}

	return out
}

func (o *object) passes(key string) bool {
	norm := match.NormalizeIdent(key)

	return slices.ContainsFunc(o.passthrough, func(k string) bool {
		return match.NormalizeIdent(k) == norm
	})
}

// suggest ranks known keys by similarity to key.
func (o *object) suggest(key string) []string {
	return match.Suggest(key, append(o.table.Known(), o.passthrough...), suggestionThreshold, maxSuggestions)
}
