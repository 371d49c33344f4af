package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"contract-mapper/internal/common"
	"contract-mapper/internal/diagnostic"
	"contract-mapper/internal/errors"
	"contract-mapper/internal/identity"
	"contract-mapper/internal/wire"
	"contract-mapper/model"
)

// extractor resolves wire relationships once every table is known.
type extractor struct {
	n      *normalizer
	byName map[string]*model.Table
	seen   map[string]int
	out    []*model.Relationship
}

// relationships is the second pass over c: schema-level relationships of an
// entry first, then property-level ones in declaration order.
func (n *normalizer) relationships(c *wire.Contract, m *model.EntityModel) []*model.Relationship {
	x := &extractor{
		n:      n,
		byName: make(map[string]*model.Table, len(m.Tables)),
		seen:   map[string]int{},
		out:    []*model.Relationship{},
	}

	for _, t := range m.Tables {
		if _, dup := x.byName[t.Name]; !dup {
			x.byName[t.Name] = t
		}
	}

	for i := range c.Schema {
		e := &c.Schema[i]
		src := m.Tables[i]
		loc := fmt.Sprintf("schema[%d]", i)

		for k := range e.Relationships {
			x.extract(&e.Relationships[k], src, nil, fmt.Sprintf("%s.relationships[%d]", loc, k))
		}

		x.walk(e.Properties, src, loc+".properties")
	}

	return x.out
}

func (x *extractor) walk(props []wire.Property, src *model.Table, path string) {
	for j := range props {
		p := &props[j]
		loc := fmt.Sprintf("%s[%d]", path, j)

		for k := range p.Relationships {
			x.extract(&p.Relationships[k], src, x.n.columnOf[p], fmt.Sprintf("%s.relationships[%d]", loc, k))
		}

		if p.Items != nil {
			x.walk(p.Items.Properties, src, loc+".items.properties")
		}

		x.walk(p.Properties, src, loc+".properties")
	}
}

// extract resolves one relationship. owner is the column a property-level
// relationship is declared on, nil at schema level.
func (x *extractor) extract(r *wire.Relationship, src *model.Table, owner *model.Column, loc string) {
	diags := x.n.diags

	ref := strings.TrimSpace(r.To.First())
	if ref == "" {
		diags.AddWarning(diagnostic.CodeInvalidValue, "relationship has no target, dropping it", loc, "to")
		return
	}

	if r.To.IsMultiple() {
		diags.AddWarning(diagnostic.CodeAmbiguousReference,
			fmt.Sprintf("relationship lists %d targets, using %q", len(r.To), ref), loc, "to")
	}

	sourceColumn := ""
	if owner != nil {
		sourceColumn = owner.Name
	} else if r.From != "" {
		src, sourceColumn = x.source(r.From, src, loc)
	}

	tableName, targetColumn := common.SplitRef(ref)

	target, ok := x.byName[tableName]
	if !ok {
		unresolved := &errors.UnresolvedReferenceError{Entry: loc, Reference: ref, Table: tableName}
		diags.AddWarning(diagnostic.CodeUnresolvedReference, unresolved.Error()+", dropping it", loc, "to")

		return
	}

	if targetColumn != "" && target.ColumnByName(targetColumn) == nil {
		diags.AddWarning(diagnostic.CodeUnresolvedColumn,
			fmt.Sprintf("table %s has no column %q", target.Name, targetColumn), loc, "to")
	}

	props := x.n.customProperties(r.CustomProperties, loc)
	cardinality := x.cardinality(props, loc)

	rel := &model.Relationship{
		ID:               x.identify(r.ID, src, sourceColumn, target, targetColumn, loc),
		SourceTableID:    src.ID,
		TargetTableID:    target.ID,
		SourceColumn:     sourceColumn,
		TargetColumn:     targetColumn,
		Cardinality:      cardinality,
		Type:             r.Type,
		CustomProperties: model.WithoutProperties(props, model.PropCardinality),
	}

	if owner == nil && sourceColumn != "" {
		owner = src.ColumnByName(sourceColumn)
	}

	if owner != nil {
		owner.IsForeignKey = true
		rel.SourceColumnID = owner.ID
	}

	x.out = append(x.out, rel)
}

// source resolves a schema-level "from" reference. A bare name is a column
// of the declaring table when one matches, otherwise a table name.
func (x *extractor) source(from string, declaring *model.Table, loc string) (*model.Table, string) {
	table, column := common.SplitRef(from)

	if column == "" && declaring.ColumnByName(table) != nil {
		return declaring, table
	}

	if t, ok := x.byName[table]; ok {
		return t, column
	}

	x.n.diags.AddWarning(diagnostic.CodeUnresolvedReference,
		fmt.Sprintf("relationship source %q names no table, using %s", from, declaring.Name), loc, "from")

	return declaring, ""
}

func (x *extractor) cardinality(props []model.CustomProperty, loc string) model.Cardinality {
	v, ok := model.LookupProperty(props, model.PropCardinality)
	if !ok {
		return model.DefaultCardinality
	}

	c, ok := model.ParseCardinality(fmt.Sprint(v))
	if !ok {
		x.n.diags.AddWarning(diagnostic.CodeUnknownCardinality,
			fmt.Sprintf("cardinality %v not recognized, using %s", v, model.DefaultCardinality), loc, model.PropCardinality)

		return model.DefaultCardinality
	}

	return c
}

// identify keeps a wire id and otherwise derives one from the endpoints, so
// an id-less relationship gets the same id on every import.
func (x *extractor) identify(wireID string, src *model.Table, srcCol string, dst *model.Table, dstCol, loc string) string {
	who := fmt.Sprintf("relationship %s -> %s", common.JoinRef(src.Name, srcCol), common.JoinRef(dst.Name, dstCol))

	if wireID != "" {
		return x.n.ids.Claim(wireID, loc, who)
	}

	key := strings.Join([]string{src.ID, srcCol, dst.ID, dstCol}, "\x00")
	occurrence := x.seen[key]
	x.seen[key]++

	id := identity.Derive(src.ID, srcCol, dst.ID, dstCol, strconv.Itoa(occurrence))
	x.n.diags.AddInfo(diagnostic.CodeIdentityDerived, fmt.Sprintf("derived identifier %s for %s", id, who), loc, "id")

	return x.n.ids.Claim(id, loc, who)
}
