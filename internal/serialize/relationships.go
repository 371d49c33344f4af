package serialize

import (
	"contract-mapper/internal/common"
	"contract-mapper/internal/wire"
	"contract-mapper/model"
)

// placement splits a table's outgoing relationships between the schema
// entry and the properties they hang off.
type placement struct {
	schemaLevel []wire.Relationship
	byColumn    map[string][]wire.Relationship
}

// placeRelationships puts a relationship on its source column, and
// everything else at schema level. A source column
// the table does not have is written as a "from" reference.
func placeRelationships(m *model.EntityModel, t *model.Table) *placement {
	p := &placement{byColumn: map[string][]wire.Relationship{}}

	for _, r := range m.RelationshipsFrom(t.ID) {
		target := m.Table(r.TargetTableID)

		w := wire.Relationship{
			ID:   r.ID,
			Type: r.Type,
			To:   wire.StringOrArray{common.JoinRef(target.Name, r.TargetColumn)},
		}

		var structured []model.CustomProperty
		if r.Cardinality != "" && r.Cardinality != model.DefaultCardinality {
			structured = append(structured, model.CustomProperty{Key: model.PropCardinality, Value: string(r.Cardinality)})
		}

		w.CustomProperties = toWire(model.MergeProperties(structured, withoutStale(structured, r.CustomProperties, relationshipMirror)))

		if col := sourceColumn(t, r); col != nil {
			p.byColumn[col.ID] = append(p.byColumn[col.ID], w)
			continue
		}

		if r.SourceColumn != "" {

			w.From = common.JoinRef(t.Name, r.SourceColumn)
		}

		p.schemaLevel = append(p.schemaLevel, w)
	}

	return p
}

// sourceColumn finds the column a relationship hangs off: by id, then by the
// first column carrying its source column name.
func sourceColumn(t *model.Table, r *model.Relationship) *model.Column {
	if r.SourceColumnID != "" {
		if col := t.Column(r.SourceColumnID); col != nil {
			return col
		}
	}

	if r.SourceColumn == "" {
		return nil
	}

	return t.ColumnByName(r.SourceColumn)
}
