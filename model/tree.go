package model

import (
	"slices"
	"strings"
)

// Table returns the table with the given id, or nil.
func (m *EntityModel) Table(id string) *Table {
	for _, t := range m.Tables {
		if t.ID == id {
			return t
		}
	}

	return nil
}

// TableByName returns the first table named name, or nil.
func (m *EntityModel) TableByName(name string) *Table {
	for _, t := range m.Tables {
		if t.Name == name {
			return t
		}
	}

	return nil
}

// RelationshipsFrom returns the relationships whose source is tableID, in
// model order.
func (m *EntityModel) RelationshipsFrom(tableID string) []*Relationship {
	var out []*Relationship

	for _, r := range m.Relationships {
		if r.SourceTableID == tableID {
			out = append(out, r)
		}
	}

	return out
}

// Column returns the column with the given id, or nil.
func (t *Table) Column(id string) *Column {
	for _, c := range t.Columns {
		if c.ID == id {
			return c
		}
	}

	return nil
}

// ColumnByName returns the first column named name in declaration order,
// or nil. Nested columns are included.
func (t *Table) ColumnByName(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}

	return nil
}

// Children returns the direct children of parentID ordered by Order. An
// empty parentID selects top-level columns. Ties keep declaration order.
func (t *Table) Children(parentID string) []*Column {
	var out []*Column

	for _, c := range t.Columns {
		if c.ParentColumnID == parentID {
			out = append(out, c)
		}
	}

	slices.SortStableFunc(out, func(a, b *Column) int {
		return a.Order - b.Order
	})

	return out
}

// IsArray reports whether the column's logical type is array.
func (c *Column) IsArray() bool {
	return strings.EqualFold(c.LogicalType, LogicalTypeArray)
}

// IsObject reports whether the column's logical type is object.
func (c *Column) IsObject() bool {
	return strings.EqualFold(c.LogicalType, LogicalTypeObject)
}

// IsComposite reports whether the column carries nested columns.
func (c *Column) IsComposite() bool {
	return len(c.NestedColumns) > 0
}
