// Package serialize converts the entity model back into the typed wire
// contract. It is the structural inverse of package normalize: normalizing
// the output of Contract yields a model equal to the input.
package serialize

import (
	"reflect"
	"slices"

	"contract-mapper/internal/wire"
	"contract-mapper/model"
)

const itemsMetadataKey = "items"

// Options tune serialization.
type Options struct {
	// MaxNestingDepth bounds composite column nesting during validation.
	// Zero selects model.DefaultMaxNestingDepth.
	MaxNestingDepth int
	// DataLevelTagKey prefixes the emitted data level tag. Empty selects
	// "dataLevel".
	DataLevelTagKey string
}

// Contract validates m and converts it to the wire contract. m is not
// modified.
func Contract(m *model.EntityModel, opts Options) (*wire.Contract, error) {
	if opts.MaxNestingDepth <= 0 {
		opts.MaxNestingDepth = model.DefaultMaxNestingDepth
	}

	if opts.DataLevelTagKey == "" {
		opts.DataLevelTagKey = model.PropDataLevel
	}

	if err := model.ValidateDepth(m, opts.MaxNestingDepth); err != nil {
		return nil, err
	}

	info := &m.Contract
	c := &wire.Contract{
		APIVersion:       info.APIVersion,
		Kind:             info.Kind,
		ID:               info.ID,
		Name:             info.Name,
		Version:          info.Version,
		Status:           info.Status,
		Domain:           info.Domain,
		DataProduct:      info.DataProduct,
		Tenant:           info.Tenant,
		Description:      info.Description,
		Tags:             slices.Clone(info.Tags),
		Team:             info.Team,
		Support:          info.Support,
		Price:            info.Price,
		SLAProperties:    info.SLAProperties,
		CustomProperties: toWire(model.MergeProperties(nil, info.CustomProperties)),
		Extra:            copyMap(info.Metadata),
		Schema:           make([]wire.SchemaEntry, 0, len(m.Tables)),
	}

	for _, t := range m.Tables {
		c.Schema = append(c.Schema, entry(m, t, opts))
	}

	return c, nil
}

func entry(m *model.EntityModel, t *model.Table, opts Options) wire.SchemaEntry {
	info := &m.Contract
	e := wire.SchemaEntry{
		ID:           t.ID,
		Name:         t.Name,
		PhysicalName: t.PhysicalName,
		PhysicalType: t.PhysicalType,
		BusinessName: t.BusinessName,
		Description:  t.Description,
		Status:       t.Status,
		Quality:      t.Quality,
		Extra:        copyMap(t.Metadata),
	}

	tags, tagged := t.Tags, true
	if t.DataLevel != model.DataLevelNone {
		e.Tags = append(e.Tags, opts.DataLevelTagKey+":"+string(t.DataLevel))
	} else {
		tags, tagged = tableTags(t.Tags, opts.DataLevelTagKey)
	}

	e.Tags = append(e.Tags, tags...)

	var structured []model.CustomProperty

	if t.Owner != "" {
		structured = append(structured, model.CustomProperty{Key: model.PropOwner, Value: t.Owner})
	}

	for _, g := range []struct {
		key       string
		value     any
		inherited any
	}{
		{model.PropSLA, t.SLA, info.SLAProperties},
		{model.PropSupport, t.Support, info.Support},
		{model.PropPricing, t.Pricing, info.Price},
		{model.PropTeam, t.Team, info.Team},
	} {
		if g.value != nil && !reflect.DeepEqual(g.value, g.inherited) {
			structured = append(structured, model.CustomProperty{Key: g.key, Value: g.value})
		}
	}

	if t.DataLevel != model.DataLevelNone {
		structured = append(structured, model.CustomProperty{Key: model.PropDataLevel, Value: string(t.DataLevel)})
	}

	if t.CreatedAt != nil {
		structured = append(structured, model.CustomProperty{Key: model.PropCreatedAt, Value: t.CreatedAt.Format(model.TimestampLayout)})
	}

	if t.UpdatedAt != nil {
		structured = append(structured, model.CustomProperty{Key: model.PropUpdatedAt, Value: t.UpdatedAt.Format(model.TimestampLayout)})
	}

	e.CustomProperties = toWire(model.MergeProperties(structured, withoutStale(structured, t.CustomProperties, tableMirror(tagged))))

	placed := placeRelationships(m, t)
	e.Relationships = placed.schemaLevel
	e.Properties = properties(partition(t), "", placed)

	for _, ck := range t.CompoundKeys {
		e.CompoundKeys = append(e.CompoundKeys, wire.CompoundKey{
			ID:        ck.ID,
			ColumnIDs: slices.Clone(ck.ColumnIDs),
			IsPrimary: ck.IsPrimary,
		})
	}

	return e
}

// partition groups columns by parent id, each group ordered by Order with
// declaration order breaking ties.
func partition(t *model.Table) map[string][]*model.Column {
	byParent := map[string][]*model.Column{}

	for _, c := range t.Columns {
		byParent[c.ParentColumnID] = append(byParent[c.ParentColumnID], c)
	}

	for _, group := range byParent {
		slices.SortStableFunc(group, func(a, b *model.Column) int {
			return a.Order - b.Order
		})
	}

	return byParent
}

func properties(byParent map[string][]*model.Column, parentID string, placed *placement) []wire.Property {
	group := byParent[parentID]
	if len(group) == 0 {
		return nil
	}

	out := make([]wire.Property, 0, len(group))
	for _, c := range group {
		out = append(out, property(byParent, c, placed))
	}

	return out
}

func property(byParent map[string][]*model.Column, c *model.Column, placed *placement) wire.Property {
	p := wire.Property{
		ID:                 c.ID,
		Name:               c.Name,
		BusinessName:       c.BusinessName,
		Description:        c.Description,
		LogicalType:        c.LogicalType,
		PhysicalType:       c.PhysicalType,
		Required:           !c.Nullable,
		PrimaryKey:         c.IsPrimaryKey,
		PrimaryKeyPosition: c.PrimaryKeyPosition,
		Unique:             c.IsUnique,
		Classification:     c.Classification,
		Tags:               slices.Clone(c.Tags),
		Examples:           c.Examples,
		LogicalTypeOptions: copyMap(c.Constraints),
		Quality:            c.QualityRules,
		Extra:              copyMap(c.Metadata),
		Relationships:      placed.byColumn[c.ID],
	}

	itemsExtra, _ := p.Extra[itemsMetadataKey].(map[string]any)
	delete(p.Extra, itemsMetadataKey)

	if len(p.Extra) == 0 {
		p.Extra = nil
	}

	children := properties(byParent, c.ID, placed)

	if c.IsArray() || c.ItemLogicalType != "" || c.ItemPhysicalType != "" || len(itemsExtra) > 0 {
		items := &wire.Items{
			LogicalType:  c.ItemLogicalType,
			PhysicalType: c.ItemPhysicalType,
			Extra:        copyMap(itemsExtra),
		}

		if c.IsArray() {
			items.Properties = children
			children = nil
		}

		if items.LogicalType != "" || items.PhysicalType != "" || len(items.Properties) > 0 || len(items.Extra) > 0 {
			p.Items = items
		}
	}

	p.Properties = children

	structured := []model.CustomProperty{{Key: model.PropOrder, Value: c.Order}}
	if c.IsForeignKey {
		structured = append(structured, model.CustomProperty{Key: model.PropIsForeignKey, Value: true})
	}

	p.CustomProperties = toWire(model.MergeProperties(structured, withoutStale(structured, c.CustomProperties, columnMirror)))

	return p
}

func toWire(props []model.CustomProperty) []wire.CustomProperty {
	if len(props) == 0 {
		return nil
	}

	out := make([]wire.CustomProperty, len(props))
	for i, p := range props {
		out[i] = wire.CustomProperty{Property: p.Key, Value: p.Value}
	}

	return out
}

func copyMap(in map[string]any) map[string]any {
	if len(in) == 0 {
		return nil
	}

	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}

	return out
}
