package normalize

import (
	"fmt"
	"strings"

	"contract-mapper/internal/diagnostic"
	"contract-mapper/internal/errors"
	"contract-mapper/internal/identity"
	"contract-mapper/internal/wire"
	"contract-mapper/model"
)

// DefaultDataLevelTagKey is the tag key promoted to Table.DataLevel.
const DefaultDataLevelTagKey = "dataLevel"

// Options tune normalization.
type Options struct {
	// MaxNestingDepth bounds composite column nesting. Zero selects
	// model.DefaultMaxNestingDepth.
	MaxNestingDepth int
	// DataLevelTagKey is matched case-insensitively against tag keys.
	// Empty selects DefaultDataLevelTagKey.
	DataLevelTagKey string
}

type normalizer struct {
	opts  Options
	diags *diagnostic.Diagnostics
	ids   *identity.Reconciler

	// columnOf links each wire property to the column built from it, so
	// relationship extraction can flag foreign keys.
	columnOf map[*wire.Property]*model.Column
}

// Contract normalizes c into an entity model. The input is not modified.
func Contract(c *wire.Contract, opts Options, diags *diagnostic.Diagnostics) (*model.EntityModel, error) {
	if c == nil {
		return nil, errors.New("normalize: nil contract")
	}

	if opts.MaxNestingDepth <= 0 {
		opts.MaxNestingDepth = model.DefaultMaxNestingDepth
	}

	if opts.DataLevelTagKey == "" {
		opts.DataLevelTagKey = DefaultDataLevelTagKey
	}

	n := &normalizer{
		opts:     opts,
		diags:    diags,
		ids:      identity.New(diags),
		columnOf: map[*wire.Property]*model.Column{},
	}

	m := &model.EntityModel{
		Contract:      n.contractInfo(c),
		Tables:        make([]*model.Table, 0, len(c.Schema)),
		Relationships: []*model.Relationship{},
	}

	names := map[string]bool{}

	for i := range c.Schema {
		e := &c.Schema[i]
		loc := fmt.Sprintf("schema[%d]", i)

		if strings.TrimSpace(e.Name) == "" {
			return nil, &errors.MissingFieldError{Entry: loc, Index: i, Field: "name"}
		}

		if names[e.Name] {
			diags.AddWarning(diagnostic.CodeAmbiguousReference,
				fmt.Sprintf("table name %q is declared more than once; references resolve to the first", e.Name),
				loc, "name")
		}

		names[e.Name] = true

		t, err := n.table(e, loc, &m.Contract)
		if err != nil {
			return nil, err
		}

		m.Tables = append(m.Tables, t)
	}

	m.Relationships = n.relationships(c, m)

	return m, nil
}

func (n *normalizer) contractInfo(c *wire.Contract) model.ContractInfo {
	return model.ContractInfo{
		APIVersion:       c.APIVersion,
		Kind:             c.Kind,
		ID:               c.ID,
		Name:             c.Name,
		Version:          c.Version,
		Status:           c.Status,
		Domain:           c.Domain,
		DataProduct:      c.DataProduct,
		Tenant:           c.Tenant,
		Description:      c.Description,
		Tags:             c.Tags,
		Team:             c.Team,
		Support:          c.Support,
		Price:            c.Price,
		SLAProperties:    c.SLAProperties,
		CustomProperties: n.customProperties(c.CustomProperties, ""),
		Metadata:         copyMap(c.Extra),
	}
}

func (n *normalizer) table(e *wire.SchemaEntry, loc string, info *model.ContractInfo) (*model.Table, error) {
	t := &model.Table{
		ID:           n.ids.Claim(e.ID, loc, "table "+e.Name),
		Name:         e.Name,
		PhysicalName: e.PhysicalName,
		PhysicalType: e.PhysicalType,
		BusinessName: e.BusinessName,
		Description:  e.Description,
		Status:       e.Status,
		Quality:      e.Quality,
		Metadata:     copyMap(e.Extra),
		Columns:      []*model.Column{},
	}

	props := n.customProperties(e.CustomProperties, loc)
	props = n.governance(t, props, info, loc)
	t.DataLevel, t.Tags, props = n.dataLevel(e.Tags, props, loc)
	t.CustomProperties = props

	remap := map[string]string{}
	if err := n.columns(t, nil, e.Properties, loc+".properties", 1, remap); err != nil {
		return nil, err
	}

	t.CompoundKeys = n.compoundKeys(t, e.CompoundKeys, loc, remap)

	return t, nil
}

// customProperties converts wire pairs and drops later duplicates of a key.
func (n *normalizer) customProperties(in []wire.CustomProperty, loc string) []model.CustomProperty {
	if len(in) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(in))
	out := make([]model.CustomProperty, 0, len(in))

	for _, p := range in {
		key := strings.ToLower(p.Property)
		if seen[key] {
			n.diags.AddWarning(diagnostic.CodeDuplicateProperty,
				fmt.Sprintf("custom property %q repeated, keeping the first value", p.Property),
				loc, "customProperties")

			continue
		}

		seen[key] = true
		out = append(out, model.CustomProperty{Key: p.Property, Value: p.Value})
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
