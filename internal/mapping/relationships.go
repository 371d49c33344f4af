package mapping

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"contract-mapper/internal/diagnostic"
	"contract-mapper/internal/document"
	"contract-mapper/internal/wire"
	"contract-mapper/model"
)

// relationships maps the relationship list of an entry or property. A bare
// reference string, a single mapping, or a sequence of either is accepted.
func (m *mapper) relationships(o *object, path string) []wire.Relationship {
	n, key := o.take(FieldRelationships)
	if n == nil {
		return nil
	}

	base := path + "." + key

	switch n.Kind {
	case yaml.ScalarNode:
		return []wire.Relationship{{To: wire.StringOrArray{n.Value}}}
	case yaml.MappingNode:
		return []wire.Relationship{m.relationship(n, base)}
	case yaml.SequenceNode:
		var out []wire.Relationship

		for i, item := range document.Items(n) {
			if s, ok := document.ScalarString(item); ok {
				out = append(out, wire.Relationship{To: wire.StringOrArray{s}})
				continue
			}

			if item.Kind != yaml.MappingNode {
				m.diags.AddWarning(diagnostic.CodeInvalidValue,
					fmt.Sprintf("%s[%d] is not a relationship, ignoring it", key, i), path, key)

				continue
			}

			out = append(out, m.relationship(item, fmt.Sprintf("%s[%d]", base, i)))
		}

		return out
	default:
		return nil
	}
}

func (m *mapper) relationship(n *yaml.Node, path string) wire.Relationship {
	o := newObject(n, path, RelationshipAliases, nil)

	r := wire.Relationship{
		ID:   o.str(FieldID, m.diags),
		Type: o.str(FieldType, m.diags),
		From: o.str(FieldFrom, m.diags),
	}

	if to, _ := o.take(FieldTo); to != nil {
		r.To = wire.StringOrArray(document.Strings(to))
	}

	cardinality := o.str(FieldCardinality, m.diags)
	r.CustomProperties = m.customProperties(o, path)

	// A first-class cardinality becomes the custom property the normalizer
	// reads, unless one is already present.
	if cardinality != "" {
		if _, ok := lookupWire(r.CustomProperties, model.PropCardinality); !ok {
			r.CustomProperties = append(r.CustomProperties,
				wire.CustomProperty{Property: model.PropCardinality, Value: cardinality})
		}
	}

	r.Extra = o.rest(m.diags)

	return r
}

func lookupWire(props []wire.CustomProperty, key string) (any, bool) {
	for _, p := range props {
		if p.Property == key {
			return p.Value, true
		}
	}

	return nil, false
}
