package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contract-mapper/internal/errors"
)

const (
	tOrders   = "6f1c1c1e-0000-4000-8000-000000000001"
	tUsers    = "6f1c1c1e-0000-4000-8000-000000000002"
	cID       = "6f1c1c1e-0000-4000-8000-000000000011"
	cItems    = "6f1c1c1e-0000-4000-8000-000000000012"
	cSku      = "6f1c1c1e-0000-4000-8000-000000000013"
	cUserID   = "6f1c1c1e-0000-4000-8000-000000000021"
	relID     = "6f1c1c1e-0000-4000-8000-000000000031"
	compKeyID = "6f1c1c1e-0000-4000-8000-000000000041"
)

func validModel() *EntityModel {
	return &EntityModel{
		Tables: []*Table{
			{
				ID:   tOrders,
				Name: "orders",
				Columns: []*Column{
					{ID: cID, TableID: tOrders, Name: "id", LogicalType: "integer", Order: 0},
					{ID: cItems, TableID: tOrders, Name: "items", LogicalType: "array", Order: 1, NestedColumns: []string{cSku}},
					{ID: cSku, TableID: tOrders, ParentColumnID: cItems, Name: "sku", LogicalType: "string"},
				},
				CompoundKeys: []*CompoundKey{{ID: compKeyID, TableID: tOrders, ColumnIDs: []string{cID}, IsPrimary: true}},
			},
			{
				ID:      tUsers,
				Name:    "users",
				Columns: []*Column{{ID: cUserID, TableID: tUsers, Name: "id", LogicalType: "integer"}},
			},
		},
		Relationships: []*Relationship{
			{ID: relID, SourceTableID: tOrders, TargetTableID: tUsers, Cardinality: OneToMany},
		},
	}
}

func TestValidateOK(t *testing.T) {
	require.NoError(t, Validate(validModel()))
}

func TestValidateFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *EntityModel)
		entity string
	}{
		{
			name:   "cyclic parents",
			mutate: func(m *EntityModel) { m.Tables[0].Columns[1].ParentColumnID = cSku },
			entity: "column orders.items",
		},
		{
			name:   "self parent",
			mutate: func(m *EntityModel) { m.Tables[0].Columns[0].ParentColumnID = cID },
			entity: "column orders.id",
		},
		{
			name:   "parent in other table",
			mutate: func(m *EntityModel) { m.Tables[0].Columns[2].ParentColumnID = cUserID },
			entity: "column orders.sku",
		},
		{
			name:   "table id mismatch",
			mutate: func(m *EntityModel) { m.Tables[1].Columns[0].TableID = tOrders },
			entity: "column users.id",
		},
		{
			name:   "dangling relationship target",
			mutate: func(m *EntityModel) { m.Relationships[0].TargetTableID = "nope" },
			entity: "relationship " + relID,
		},
		{
			name:   "relationship source column in other table",
			mutate: func(m *EntityModel) { m.Relationships[0].SourceColumnID = cUserID },
			entity: "relationship " + relID,
		},
		{
			name:   "compound key unknown column",
			mutate: func(m *EntityModel) { m.Tables[0].CompoundKeys[0].ColumnIDs = []string{cUserID} },
			entity: "compound key " + compKeyID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validModel()
			tt.mutate(m)

			err := Validate(m)
			require.Error(t, err)

			var serr *errors.SerializationError
			require.True(t, errors.As(err, &serr), "got %T: %v", err, err)
			assert.Equal(t, tt.entity, serr.Entity)
		})
	}
}

func TestValidateIdentityConflict(t *testing.T) {
	m := validModel()
	m.Tables[1].Columns[0].ID = cID

	err := Validate(m)

	var conflict *errors.IdentityConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, cID, conflict.ID)
	assert.Equal(t, "column orders.id", conflict.First)
	assert.Equal(t, "column users.id", conflict.Second)
}

func TestValidateDepth(t *testing.T) {
	m := validModel()
	require.NoError(t, ValidateDepth(m, 1))

	err := ValidateDepth(m, 0)

	var serr *errors.SerializationError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "column orders.sku", serr.Entity)
	assert.Contains(t, serr.Reason, "exceeds limit 0")
}

func TestValidateNil(t *testing.T) {
	require.Error(t, Validate(nil))
}
