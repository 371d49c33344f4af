package mapping

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"contract-mapper/internal/diagnostic"
	"contract-mapper/internal/document"
	"contract-mapper/internal/errors"
	"contract-mapper/internal/wire"
	"contract-mapper/model"
)

// Options tune the heuristic mapper.
type Options struct {
	// MaxNestingDepth bounds composite column nesting. Zero selects
	// model.DefaultMaxNestingDepth.
	MaxNestingDepth int
}

type mapper struct {
	maxDepth int
	diags    *diagnostic.Diagnostics
}

// FromTree maps a parsed contract tree onto the typed wire contract.
// Field-level oddities are recorded in diags; only structural problems
// (non-mapping root, runaway nesting) fail.
func FromTree(root *yaml.Node, opts Options, diags *diagnostic.Diagnostics) (*wire.Contract, error) {
	root = document.Resolve(root)
	if root == nil || root.Kind != yaml.MappingNode {
		line, col := 0, 0
		if root != nil {
			line, col = root.Line, root.Column
		}

		return nil, &errors.MalformedDocumentError{Line: line, Column: col, Reason: "top-level value must be a mapping"}
	}

	m := &mapper{maxDepth: opts.MaxNestingDepth, diags: diags}
	if m.maxDepth <= 0 {
		m.maxDepth = model.DefaultMaxNestingDepth
	}

	return m.contract(root)
}

func (m *mapper) contract(root *yaml.Node) (*wire.Contract, error) {
	o := newObject(root, "", ContractAliases, nil)

	c := &wire.Contract{
		APIVersion:    o.str(FieldAPIVersion, m.diags),
		Kind:          o.str(FieldKind, m.diags),
		ID:            o.str(FieldID, m.diags),
		Name:          o.str(FieldName, m.diags),
		Version:       o.str(FieldVersion, m.diags),
		Status:        o.str(FieldStatus, m.diags),
		Domain:        o.str(FieldDomain, m.diags),
		DataProduct:   o.str(FieldDataProduct, m.diags),
		Tenant:        o.str(FieldTenant, m.diags),
		Description:   o.value(FieldDescription),
		Tags:          o.strings(FieldTags),
		Team:          o.value(FieldTeam),
		Support:       o.value(FieldSupport),
		Price:         o.value(FieldPrice),
		SLAProperties: o.value(FieldSLAProperties),
	}

	schema, key := o.take(FieldSchema)

	entries, err := m.entries(schema, key)
	if err != nil {
		return nil, err
	}

	c.Schema = entries
	c.CustomProperties = m.customProperties(o, "")
	c.Extra = o.rest(nil)

	return c, nil
}

func (m *mapper) entries(n *yaml.Node, key string) ([]wire.SchemaEntry, error) {
	if n == nil {
		return []wire.SchemaEntry{}, nil
	}

	var out []wire.SchemaEntry

	switch n.Kind {
	case yaml.SequenceNode:
		for i, item := range document.Items(n) {
			e, err := m.entry(item, fmt.Sprintf("%s[%d]", key, i), "")
			if err != nil {
				return nil, err
			}

			out = append(out, e)
		}
	case yaml.MappingNode:
		for _, p := range document.Pairs(n) {
			e, err := m.entry(p.Value, key+"."+p.Key, p.Key)
			if err != nil {
				return nil, err
			}

			out = append(out, e)
		}
	default:
		m.diags.AddWarning(diagnostic.CodeInvalidValue,
			fmt.Sprintf("%q must be a sequence or a mapping", key), "", key)
	}

	if key != "schema" {
		m.diags.AddInfo(diagnostic.CodeDeprecatedShape,
			fmt.Sprintf("schema entries found under legacy key %q", key), key, "")
	}

	return out, nil
}

// entry maps one schema entry. name is the mapping key for the legacy
// keyed shape and takes precedence over name aliases inside the entry.
func (m *mapper) entry(n *yaml.Node, path, name string) (wire.SchemaEntry, error) {
	o := newObject(n, path, EntryAliases, EntryPassthrough)

	e := wire.SchemaEntry{ID: o.str(FieldID, m.diags), Name: name}
	if e.Name == "" {
		e.Name = o.str(FieldName, m.diags)
	}

	e.PhysicalName = o.str(FieldPhysicalName, m.diags)
	e.PhysicalType = o.str(FieldPhysicalType, m.diags)
	e.BusinessName = o.str(FieldBusinessName, m.diags)
	e.Description = o.str(FieldDescription, m.diags)
	e.Status = o.str(FieldStatus, m.diags)
	e.Tags = o.strings(FieldTags)
	e.Quality = o.maps(FieldQuality, m.diags)

	cols, key := o.take(FieldColumns)

	props, err := m.properties(cols, path+"."+key, 1)
	if err != nil {
		return e, err
	}

	e.Properties = props
	e.Relationships = m.relationships(o, path)
	e.CompoundKeys = m.compoundKeys(o, path)
	e.CustomProperties = m.customProperties(o, path)
	e.Extra = o.rest(m.diags)

	return e, nil
}

func (m *mapper) properties(n *yaml.Node, path string, depth int) ([]wire.Property, error) {
	if n == nil {
		return nil, nil
	}

	if depth > m.maxDepth {
		return nil, errors.WithHint(&errors.MalformedDocumentError{
			Line:   n.Line,
			Column: n.Column,
			Reason: fmt.Sprintf("%s: columns nested deeper than %d levels", path, m.maxDepth),
		}, "check for self-referencing anchors or raise max_nesting_depth")
	}

	var out []wire.Property

	switch n.Kind {
	case yaml.SequenceNode:
		for j, item := range document.Items(n) {
			p, err := m.property(item, fmt.Sprintf("%s[%d]", path, j), "", depth)
			if err != nil {
				return nil, err
			}

			out = append(out, p)
		}
	case yaml.MappingNode:
		for _, pair := range document.Pairs(n) {
			p, err := m.property(pair.Value, path+"."+pair.Key, pair.Key, depth)
			if err != nil {
				return nil, err
			}

			out = append(out, p)
		}
	default:
		m.diags.AddWarning(diagnostic.CodeInvalidValue,
			"columns must be a sequence or a mapping keyed by column name", path, "")
	}

	return out, nil
}

func (m *mapper) property(n *yaml.Node, path, name string, depth int) (wire.Property, error) {
	o := newObject(n, path, PropertyAliases, PropertyPassthrough)

	p := wire.Property{ID: o.str(FieldID, m.diags), Name: name}
	if p.Name == "" {
		p.Name = o.str(FieldName, m.diags)
	}

	p.BusinessName = o.str(FieldBusinessName, m.diags)
	p.Description = o.str(FieldDescription, m.diags)
	p.LogicalType = o.str(FieldLogicalType, m.diags)
	p.PhysicalType = o.str(FieldPhysicalType, m.diags)

	if required, ok := o.boolean(FieldRequired, m.diags); ok {
		p.Required = required
	} else if nullable, ok := o.boolean(FieldNullable, m.diags); ok {
		p.Required = !nullable
	}

	p.PrimaryKey, _ = o.boolean(FieldPrimaryKey, m.diags)
	p.PrimaryKeyPosition, _ = o.integer(FieldPrimaryKeyPosition, m.diags)
	p.Unique, _ = o.boolean(FieldUnique, m.diags)

	if fk, ok := o.boolean(FieldForeignKey, m.diags); ok {
		p.IsForeignKey = &fk
	}

	if order, ok := o.integer(FieldOrder, m.diags); ok {
		p.Order = &order
	}

	p.Classification = o.str(FieldClassification, m.diags)
	p.Tags = o.strings(FieldTags)
	p.Examples = m.examples(o)
	p.LogicalTypeOptions = m.options(o, path)
	p.Quality = o.maps(FieldQuality, m.diags)

	if items, _ := o.take(FieldItems); items != nil {
		it, err := m.items(items, path+".items", depth)
		if err != nil {
			return p, err
		}

		p.Items = it
	}

	children, key := o.take(FieldColumns)

	props, err := m.properties(children, path+"."+key, depth+1)
	if err != nil {
		return p, err
	}

	p.Properties = props
	p.Relationships = m.relationships(o, path)
	p.CustomProperties = m.customProperties(o, path)
	p.Extra = o.rest(m.diags)

	return p, nil
}

// items maps an array element definition. A bare scalar names the element
// logical type.
func (m *mapper) items(n *yaml.Node, path string, depth int) (*wire.Items, error) {
	if s, ok := document.ScalarString(n); ok {
		return &wire.Items{LogicalType: s}, nil
	}

	o := newObject(n, path, ItemsAliases, PropertyPassthrough)
	it := &wire.Items{
		LogicalType:  o.str(FieldLogicalType, m.diags),
		PhysicalType: o.str(FieldPhysicalType, m.diags),
	}

	children, key := o.take(FieldColumns)

	props, err := m.properties(children, path+"."+key, depth+1)
	if err != nil {
		return nil, err
	}

	it.Properties = props
	it.Extra = o.rest(m.diags)

	return it, nil
}

func (m *mapper) examples(o *object) []any {
	n, _ := o.take(FieldExamples)
	if n == nil {
		return nil
	}

	if n.Kind == yaml.SequenceNode {
		if list, ok := document.ToAny(n).([]any); ok {
			return list
		}

		return nil
	}

	return []any{document.ToAny(n)}
}

func (m *mapper) options(o *object, path string) map[string]any {
	n, key := o.take(FieldConstraints)
	if n == nil {
		return nil
	}

	opts, ok := document.ToAny(n).(map[string]any)
	if !ok {
		m.diags.AddWarning(diagnostic.CodeInvalidValue,
			fmt.Sprintf("%q must be a mapping, ignoring it", key), path, key)

		return nil
	}

	return opts
}

func (m *mapper) compoundKeys(o *object, path string) []wire.CompoundKey {
	n, key := o.take(FieldCompoundKeys)
	if n == nil {
		return nil
	}

	var out []wire.CompoundKey

	for i, item := range document.Items(n) {
		ko := newObject(item, fmt.Sprintf("%s.%s[%d]", path, key, i), CompoundKeyAliases, nil)
		ck := wire.CompoundKey{ID: ko.str(FieldID, m.diags), ColumnIDs: ko.strings(FieldColumnIDs)}
		ck.IsPrimary, _ = ko.boolean(FieldIsPrimary, m.diags)

		out = append(out, ck)
	}

	return out
}

// customProperties accepts the canonical list of {property, value} pairs or
// a plain mapping of key to value.
func (m *mapper) customProperties(o *object, path string) []wire.CustomProperty {
	n, key := o.take(FieldCustomProperties)
	if n == nil {
		return nil
	}

	var out []wire.CustomProperty

	switch n.Kind {
	case yaml.SequenceNode:
		for i, item := range document.Items(n) {
			po := newObject(item, fmt.Sprintf("%s.%s[%d]", path, key, i), CustomPropertyAliases, nil)

			prop := po.str(FieldProperty, m.diags)
			if prop == "" {
				m.diags.AddWarning(diagnostic.CodeInvalidValue,
					"custom property without a key, ignoring it", po.path, "property")

				continue
			}

			out = append(out, wire.CustomProperty{Property: prop, Value: po.value(FieldValue)})
		}
	case yaml.MappingNode:
		for _, p := range document.Pairs(n) {
			out = append(out, wire.CustomProperty{Property: p.Key, Value: document.ToAny(p.Value)})
		}
	default:
		m.diags.AddWarning(diagnostic.CodeInvalidValue,
			fmt.Sprintf("%q must be a sequence or a mapping", key), path, key)
	}

	return out
}
