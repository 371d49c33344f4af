package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"contract-mapper/internal/diagnostic"
	"contract-mapper/internal/errors"
	"contract-mapper/internal/wire"
	"contract-mapper/model"
)

// itemsMetadataKey holds unrecognized keys of an array's items block in
// Column.Metadata.
const itemsMetadataKey = "items"

// columns appends props and their descendants to t.Columns in pre-order.
// remap records wire ids that were replaced, for compound key resolution.
func (n *normalizer) columns(t *model.Table, parent *model.Column, props []wire.Property, path string, depth int, remap map[string]string) error {
	if len(props) == 0 {
		return nil
	}

	if depth > n.opts.MaxNestingDepth {
		return &errors.MalformedDocumentError{
			Reason: fmt.Sprintf("%s: columns nested deeper than %d levels", path, n.opts.MaxNestingDepth),
		}
	}

	for j := range props {
		p := &props[j]
		loc := fmt.Sprintf("%s[%d]", path, j)

		if strings.TrimSpace(p.Name) == "" {
			return &errors.MissingFieldError{Entry: loc, Index: j, Field: "name"}
		}

		c := n.column(t, p, loc, j)
		if p.ID != "" && c.ID != p.ID {
			if _, taken := remap[p.ID]; !taken {
				remap[p.ID] = c.ID
			}
		}

		if parent != nil {
			c.ParentColumnID = parent.ID
			parent.NestedColumns = append(parent.NestedColumns, c.ID)
		}

		t.Columns = append(t.Columns, c)
		n.columnOf[p] = c

		if p.Items != nil {
			if err := n.columns(t, c, p.Items.Properties, loc+".items.properties", depth+1, remap); err != nil {
				return err
			}
		}

		if err := n.columns(t, c, p.Properties, loc+".properties", depth+1, remap); err != nil {
			return err
		}
	}

	return nil
}

func (n *normalizer) column(t *model.Table, p *wire.Property, loc string, index int) *model.Column {
	c := &model.Column{
		ID:                 n.ids.Claim(p.ID, loc, fmt.Sprintf("column %s.%s", t.Name, p.Name)),
		TableID:            t.ID,
		Name:               p.Name,
		BusinessName:       p.BusinessName,
		Description:        p.Description,
		Nullable:           !p.Required,
		IsPrimaryKey:       p.PrimaryKey,
		PrimaryKeyPosition: p.PrimaryKeyPosition,
		IsUnique:           p.Unique,
		QualityRules:       p.Quality,
		Tags:               p.Tags,
		Classification:     p.Classification,
		Examples:           p.Examples,
		Metadata:           copyMap(p.Extra),
	}

	c.LogicalType, c.PhysicalType = n.types(p, loc)
	c.Constraints = constraints(p, c.Metadata)

	if p.Items != nil {
		c.ItemLogicalType = p.Items.LogicalType
		c.ItemPhysicalType = p.Items.PhysicalType

		if len(p.Items.Extra) > 0 {
			if c.Metadata == nil {
				c.Metadata = map[string]any{}
			}

			c.Metadata[itemsMetadataKey] = copyMap(p.Items.Extra)
		}
	}

	if len(c.Metadata) == 0 {
		c.Metadata = nil
	}

	props := n.customProperties(p.CustomProperties, loc)
	c.Order = n.order(p, props, loc, index)
	c.IsForeignKey = n.foreignKey(p, props, loc)
	c.CustomProperties = model.WithoutProperties(props, model.PropOrder, model.PropIsForeignKey)

	return c
}

// types returns the logical and physical type, deriving whichever is
// missing from the other.
func (n *normalizer) types(p *wire.Property, loc string) (string, string) {
	logical, physical := p.LogicalType, p.PhysicalType

	if logical == "" {
		switch {
		case physical != "":
			logical = LogicalFromPhysical(physical)
		case p.Items != nil:
			logical = model.LogicalTypeArray
		case len(p.Properties) > 0:
			logical = model.LogicalTypeObject
		default:
			logical = model.LogicalTypeString
		}

		n.diags.AddWarning(diagnostic.CodeDefaultApplied,
			fmt.Sprintf("logicalType missing, using %q", logical), loc, "logicalType")
	}

	if physical == "" {
		physical = PhysicalFromLogical(logical)

		n.diags.AddWarning(diagnostic.CodeDefaultApplied,
			fmt.Sprintf("physicalType missing, using %q", physical), loc, "physicalType")
	}

	return logical, physical
}

// constraints merges logicalTypeOptions with legacy top-level constraint
// keys, which are moved out of meta. logicalTypeOptions wins on conflict.
func constraints(p *wire.Property, meta map[string]any) map[string]any {
	out := copyMap(p.LogicalTypeOptions)

	for _, key := range wire.ConstraintKeys {
		v, ok := meta[key]
		if !ok {
			continue
		}

		delete(meta, key)

		if out == nil {
			out = map[string]any{}
		}

		if _, exists := out[key]; !exists {
			out[key] = v
		}
	}

	return out
}

// order prefers the first-class field, then the order custom property,
// then the position among siblings.
func (n *normalizer) order(p *wire.Property, props []model.CustomProperty, loc string, index int) int {
	if p.Order != nil {
		return *p.Order
	}

	v, ok := model.LookupProperty(props, model.PropOrder)
	if !ok {
		return index
	}

	i, ok := toInt(v)
	if !ok {
		n.diags.AddWarning(diagnostic.CodeInvalidValue,
			fmt.Sprintf("order %v is not an integer, using position %d", v, index), loc, model.PropOrder)

		return index
	}

	return i
}

func (n *normalizer) foreignKey(p *wire.Property, props []model.CustomProperty, loc string) bool {
	if p.IsForeignKey != nil {
		return *p.IsForeignKey
	}

	v, ok := model.LookupProperty(props, model.PropIsForeignKey)
	if !ok {
		return false
	}

	b, ok := toBool(v)
	if !ok {
		n.diags.AddWarning(diagnostic.CodeInvalidValue,
			fmt.Sprintf("%s %v is not a boolean, ignoring it", model.PropIsForeignKey, v), loc, model.PropIsForeignKey)
	}

	return b
}

func toInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int64:
		return int(x), true
	case uint64:
		return int(x), true
	case float64:
		if x != float64(int(x)) {
			return 0, false
		}

		return int(x), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(x))
		return i, err == nil
	default:
		return 0, false
	}
}

func toBool(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(x))
		return b, err == nil
	default:
		return false, false
	}
}
