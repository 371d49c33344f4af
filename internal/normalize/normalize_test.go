package normalize

import (
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contract-mapper/internal/diagnostic"
	"contract-mapper/internal/document"
	"contract-mapper/internal/errors"
	"contract-mapper/internal/wire"
	"contract-mapper/model"
)

const (
	idOrders    = "0b6b0bbf-5f38-4f07-8e49-0c5a43b5a0d1"
	idCustomers = "5a1c6a2e-8d0b-4c8e-9f4b-1e2d3c4b5a69"
	idOrderID   = "7f1e2d3c-4b5a-4968-8776-655443322110"
	idCustID    = "1c0d9e8f-7a6b-4c5d-8e4f-3a2b1c0d9e8f"
)

func decode(t *testing.T, src string) *wire.Contract {
	t.Helper()

	root, err := document.Parse([]byte(src))
	require.NoError(t, err)

	var c wire.Contract
	require.NoError(t, document.Decode(root, &c))

	return &c
}

func normalizeDoc(t *testing.T, src string) (*model.EntityModel, *diagnostic.Diagnostics) {
	t.Helper()

	var diags diagnostic.Diagnostics

	m, err := Contract(decode(t, src), Options{}, &diags)
	require.NoError(t, err)

	return m, &diags
}

func TestOrdersScenario(t *testing.T) {
	m, diags := normalizeDoc(t, `
schema:
  - name: orders
    properties:
      - name: id
        logicalType: integer
        primaryKey: true
      - name: total
        logicalType: number
`)

	require.Len(t, m.Tables, 1, spew.Sdump(m))
	orders := m.Tables[0]
	assert.Equal(t, "orders", orders.Name)
	require.Len(t, orders.Columns, 2)

	id, total := orders.Columns[0], orders.Columns[1]
	assert.Equal(t, "id", id.Name)
	assert.True(t, id.IsPrimaryKey)
	assert.Equal(t, 0, id.Order)
	assert.Equal(t, "integer", id.PhysicalType)
	assert.Equal(t, orders.ID, id.TableID)

	assert.Equal(t, "total", total.Name)
	assert.False(t, total.IsPrimaryKey)
	assert.Equal(t, 1, total.Order)
	assert.Equal(t, "numeric", total.PhysicalType)
	assert.True(t, total.Nullable)

	assert.Len(t, diags.WithCode(diagnostic.CodeDefaultApplied), 2)
	assert.NoError(t, model.Validate(m))
}

func TestMissingNames(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		entry string
		index int
	}{
		{
			name:  "entry",
			src:   "schema:\n  - name: a\n  - description: nameless\n",
			entry: "schema[1]",
			index: 1,
		},
		{
			name:  "column",
			src:   "schema:\n  - name: a\n    properties:\n      - name: x\n      - logicalType: string\n",
			entry: "schema[0].properties[1]",
			index: 1,
		},
		{
			name:  "nested column",
			src:   "schema:\n  - name: a\n    properties:\n      - name: x\n        logicalType: object\n        properties:\n          - logicalType: string\n",
			entry: "schema[0].properties[0].properties[0]",
			index: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var diags diagnostic.Diagnostics

			_, err := Contract(decode(t, tt.src), Options{}, &diags)

			var mfe *errors.MissingFieldError
			require.True(t, errors.As(err, &mfe), "got %v", err)
			assert.Equal(t, tt.entry, mfe.Entry)
			assert.Equal(t, tt.index, mfe.Index)
			assert.Equal(t, "name", mfe.Field)
		})
	}
}

func TestCustomPropertyReconciliation(t *testing.T) {
	m, diags := normalizeDoc(t, `
schema:
  - name: t
    properties:
      - name: first_class
        logicalType: string
        physicalType: text
        order: 5
        isForeignKey: false
        customProperties:
          - property: order
            value: 9
          - property: is_foreign_key
            value: true
          - property: owner
            value: alice
      - name: tucked
        logicalType: string
        physicalType: text
        customProperties:
          - property: order
            value: "2"
          - property: is_foreign_key
            value: true
          - property: note
            value: a
          - property: NOTE
            value: b
`)

	cols := m.Tables[0].Columns
	require.Len(t, cols, 2)

	assert.Equal(t, 5, cols[0].Order)
	assert.False(t, cols[0].IsForeignKey)
	assert.Equal(t, []model.CustomProperty{{Key: "owner", Value: "alice"}}, cols[0].CustomProperties)

	assert.Equal(t, 2, cols[1].Order)
	assert.True(t, cols[1].IsForeignKey)
	assert.Equal(t, []model.CustomProperty{{Key: "note", Value: "a"}}, cols[1].CustomProperties)

	assert.True(t, diags.Has(diagnostic.CodeDuplicateProperty))
}

func TestDataLevel(t *testing.T) {
	tests := []struct {
		name      string
		entry     string
		wantLevel model.DataLevel
		wantTags  []string
		wantProps []model.CustomProperty
		warns     bool
	}{
		{
			name:      "first matching tag wins",
			entry:     `tags: [finance, "DataLevel:Gold", "dataLevel:silver"]`,
			wantLevel: model.DataLevelGold,
			wantTags:  []string{"finance", "dataLevel:silver"},
		},
		{
			name:      "no tag",
			entry:     `tags: [finance]`,
			wantLevel: model.DataLevelNone,
			wantTags:  []string{"finance"},
		},
		{
			name:      "unknown level kept as tag",
			entry:     `tags: ["dataLevel:platinum"]`,
			wantLevel: model.DataLevelNone,
			wantTags:  []string{"dataLevel:platinum"},
			warns:     true,
		},
		{
			name:      "custom property fallback",
			entry:     "customProperties:\n      - property: dataLevel\n        value: bronze",
			wantLevel: model.DataLevelBronze,
		},
		{
			name:      "tag beats custom property",
			entry:     "tags: [\"dataLevel:silver\"]\n    customProperties:\n      - property: dataLevel\n        value: bronze",
			wantLevel: model.DataLevelSilver,
		},
		{
			name:      "unknown custom property kept",
			entry:     "customProperties:\n      - property: dataLevel\n        value: tin",
			wantLevel: model.DataLevelNone,
			wantProps: []model.CustomProperty{{Key: "dataLevel", Value: "tin"}},
			warns:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, diags := normalizeDoc(t, "schema:\n  - name: t\n    "+tt.entry+"\n")

			table := m.Tables[0]
			assert.Equal(t, tt.wantLevel, table.DataLevel)
			assert.Equal(t, tt.wantTags, table.Tags)
			assert.Equal(t, tt.wantProps, table.CustomProperties)
			assert.Equal(t, tt.warns, diags.Has(diagnostic.CodeUnknownDataLevel))
		})
	}
}

func TestNestedColumns(t *testing.T) {
	m, _ := normalizeDoc(t, `
schema:
  - name: orders
    properties:
      - name: lines
        logicalType: array
        items:
          logicalType: object
          properties:
            - name: sku
              logicalType: string
            - name: price
              logicalType: object
              properties:
                - name: amount
                  logicalType: number
                - name: currency
                  logicalType: string
      - name: note
        logicalType: string
`)

	table := m.Tables[0]

	var names []string
	for _, c := range table.Columns {
		names = append(names, c.Name)
	}

	assert.Equal(t, []string{"lines", "sku", "price", "amount", "currency", "note"}, names)

	lines := table.ColumnByName("lines")
	sku := table.ColumnByName("sku")
	price := table.ColumnByName("price")
	amount := table.ColumnByName("amount")

	assert.Empty(t, lines.ParentColumnID)
	assert.Equal(t, "object", lines.ItemLogicalType)
	assert.Equal(t, []string{sku.ID, price.ID}, lines.NestedColumns)
	assert.Equal(t, lines.ID, sku.ParentColumnID)
	assert.Equal(t, lines.ID, price.ParentColumnID)
	assert.Equal(t, price.ID, amount.ParentColumnID)
	assert.Equal(t, 1, price.Order)
	assert.Equal(t, 1, table.ColumnByName("note").Order)

	require.NoError(t, model.Validate(m))
}

func TestNestingDepthGuard(t *testing.T) {
	src := `
schema:
  - name: t
    properties:
      - name: a
        logicalType: object
        properties:
          - name: b
`
	var diags diagnostic.Diagnostics

	_, err := Contract(decode(t, src), Options{MaxNestingDepth: 1}, &diags)

	var mde *errors.MalformedDocumentError
	require.True(t, errors.As(err, &mde))
	assert.Contains(t, mde.Reason, "schema[0].properties[0].properties")
}

func TestIdentityReconciliation(t *testing.T) {
	m, diags := normalizeDoc(t, `
schema:
  - id: `+idOrders+`
    name: orders
    properties:
      - id: `+idOrderID+`
        name: id
        logicalType: integer
        physicalType: bigint
      - id: not-a-uuid
        name: total
        logicalType: number
        physicalType: numeric
      - id: `+idOrderID+`
        name: copy
        logicalType: number
        physicalType: numeric
`)

	table := m.Tables[0]
	assert.Equal(t, idOrders, table.ID)
	assert.Equal(t, idOrderID, table.Columns[0].ID)
	assert.NotEqual(t, "not-a-uuid", table.Columns[1].ID)
	assert.NotEqual(t, idOrderID, table.Columns[2].ID)

	assert.True(t, diags.Has(diagnostic.CodeIdentityReplaced))
	assert.True(t, diags.Has(diagnostic.CodeIdentityConflict))
	assert.NoError(t, model.Validate(m))
}

func TestRelationships(t *testing.T) {
	src := `
schema:
  - id: ` + idOrders + `
    name: orders
    properties:
      - name: customer_id
        logicalType: integer
        physicalType: bigint
        relationships:
          - to: customers.id
  - id: ` + idCustomers + `
    name: customers
    properties:
      - name: id
        logicalType: integer
        physicalType: bigint
`

	m, diags := normalizeDoc(t, src)

	require.Len(t, m.Relationships, 1, spew.Sdump(m.Relationships))
	rel := m.Relationships[0]
	assert.Equal(t, idOrders, rel.SourceTableID)
	assert.Equal(t, idCustomers, rel.TargetTableID)
	assert.Equal(t, "customer_id", rel.SourceColumn)
	assert.Equal(t, "id", rel.TargetColumn)
	assert.Equal(t, model.OneToMany, rel.Cardinality)
	assert.True(t, m.Tables[0].ColumnByName("customer_id").IsForeignKey)
	assert.False(t, diags.Has(diagnostic.CodeUnresolvedReference))

	again, _ := normalizeDoc(t, src)
	assert.Equal(t, rel.ID, again.Relationships[0].ID, "derived id must be stable")
}

func TestRelationshipToMissingTable(t *testing.T) {
	m, diags := normalizeDoc(t, `
schema:
  - name: orders
    properties:
      - name: customer_id
        logicalType: integer
        physicalType: bigint
        relationships:
          - to: customers.id
`)

	assert.Empty(t, m.Relationships)
	assert.False(t, m.Tables[0].Columns[0].IsForeignKey)

	warnings := diags.WithCode(diagnostic.CodeUnresolvedReference)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, `"customers"`)
	assert.Equal(t, "schema[0].properties[0].relationships[0]", warnings[0].Entry)
}

func TestRelationshipVariants(t *testing.T) {
	m, diags := normalizeDoc(t, `
schema:
  - name: a
    properties:
      - name: b_ref
        logicalType: string
        physicalType: text
    relationships:
      - from: a.b_ref
        to: [b.key, c.key]
        type: foreignKey
        customProperties:
          - property: cardinality
            value: one_to_one
          - property: note
            value: keep
      - to: b
        customProperties:
          - property: cardinality
            value: several
      - to: b.missing
  - name: b
    properties:
      - name: key
        logicalType: string
        physicalType: text
`)

	require.Len(t, m.Relationships, 3)

	first := m.Relationships[0]
	assert.Equal(t, "b_ref", first.SourceColumn)
	assert.Equal(t, "key", first.TargetColumn)
	assert.Equal(t, model.OneToOne, first.Cardinality)
	assert.Equal(t, "foreignKey", first.Type)
	assert.Equal(t, []model.CustomProperty{{Key: "note", Value: "keep"}}, first.CustomProperties)
	assert.True(t, m.Tables[0].ColumnByName("b_ref").IsForeignKey)

	second := m.Relationships[1]
	assert.Empty(t, second.SourceColumn)
	assert.Empty(t, second.TargetColumn)
	assert.Equal(t, model.OneToMany, second.Cardinality)

	third := m.Relationships[2]
	assert.Equal(t, "missing", third.TargetColumn)

	assert.True(t, diags.Has(diagnostic.CodeAmbiguousReference))
	assert.True(t, diags.Has(diagnostic.CodeUnknownCardinality))
	assert.True(t, diags.Has(diagnostic.CodeUnresolvedColumn))
	assert.NotEqual(t, m.Relationships[1].ID, m.Relationships[0].ID)
}

func TestCompoundKeys(t *testing.T) {
	m, diags := normalizeDoc(t, `
schema:
  - name: t
    properties:
      - id: `+idOrderID+`
        name: a
        logicalType: string
        physicalType: text
      - id: legacy-b
        name: b
        logicalType: string
        physicalType: text
      - name: c
        logicalType: string
        physicalType: text
    compoundKeys:
      - columnIds: [`+idOrderID+`, legacy-b, c, ghost]
        isPrimary: true
      - columnIds: [ghost]
`)

	table := m.Tables[0]
	require.Len(t, table.CompoundKeys, 1)

	ck := table.CompoundKeys[0]
	assert.Equal(t, table.ID, ck.TableID)
	assert.True(t, ck.IsPrimary)
	assert.Equal(t, []string{
		table.ColumnByName("a").ID,
		table.ColumnByName("b").ID,
		table.ColumnByName("c").ID,
	}, ck.ColumnIDs)

	assert.Len(t, diags.WithCode(diagnostic.CodeCompoundKeyDropped), 3)
	assert.NoError(t, model.Validate(m))
}

func TestGovernance(t *testing.T) {
	m, diags := normalizeDoc(t, `
team:
  - username: ceastwood
support:
  - channel: "#orders"
schema:
  - name: t
    customProperties:
      - property: owner
        value: sales
      - property: support
        value: pager
      - property: created_at
        value: "2024-05-01T10:00:00Z"
      - property: updated_at
        value: yesterday
`)

	table := m.Tables[0]
	assert.Equal(t, "sales", table.Owner)
	assert.Equal(t, "pager", table.Support)
	assert.Equal(t, m.Contract.Team, table.Team)
	assert.Nil(t, table.SLA)

	require.NotNil(t, table.CreatedAt)
	assert.True(t, table.CreatedAt.Equal(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)))
	assert.Nil(t, table.UpdatedAt)
	assert.Equal(t, []model.CustomProperty{{Key: "updated_at", Value: "yesterday"}}, table.CustomProperties)
	assert.True(t, diags.Has(diagnostic.CodeInvalidValue))
}

func TestLegacyConstraintsAndMetadata(t *testing.T) {
	m, _ := normalizeDoc(t, `
servers:
  - server: prod
schema:
  - name: t
    logicalType: object
    properties:
      - name: code
        logicalType: string
        physicalType: varchar(3)
        maxLength: 3
        pattern: "^[A-Z]+$"
        logicalTypeOptions:
          maxLength: 4
        criticalDataElement: true
      - name: list
        logicalType: array
        physicalType: array
        items:
          logicalType: string
          format: email
`)

	assert.Contains(t, m.Contract.Metadata, "servers")
	assert.Equal(t, map[string]any{"logicalType": "object"}, m.Tables[0].Metadata)

	code := m.Tables[0].Columns[0]
	assert.Equal(t, map[string]any{"maxLength": 4, "pattern": "^[A-Z]+$"}, code.Constraints)
	assert.Equal(t, map[string]any{"criticalDataElement": true}, code.Metadata)

	list := m.Tables[0].Columns[1]
	assert.Equal(t, "string", list.ItemLogicalType)
	assert.Equal(t, map[string]any{"items": map[string]any{"format": "email"}}, list.Metadata)
}

func TestNilContract(t *testing.T) {
	var diags diagnostic.Diagnostics

	_, err := Contract(nil, Options{}, &diags)
	assert.Error(t, err)
}
