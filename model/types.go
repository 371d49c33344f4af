package model

import "time"

// EntityModel is the complete result of importing one data contract.
type EntityModel struct {
	Contract      ContractInfo    `json:"contract"`
	Tables        []*Table        `json:"tables"`
	Relationships []*Relationship `json:"relationships"`
}

// ContractInfo carries contract-level identity and governance metadata.
type ContractInfo struct {
	APIVersion       string           `json:"apiVersion,omitempty"`
	Kind             string           `json:"kind,omitempty"`
	ID               string           `json:"id,omitempty"`
	Name             string           `json:"name,omitempty"`
	Version          string           `json:"version,omitempty"`
	Status           string           `json:"status,omitempty"`
	Domain           string           `json:"domain,omitempty"`
	DataProduct      string           `json:"dataProduct,omitempty"`
	Tenant           string           `json:"tenant,omitempty"`
	Description      any              `json:"description,omitempty"`
	Tags             []string         `json:"tags,omitempty"`
	Team             any              `json:"team,omitempty"`
	Support          any              `json:"support,omitempty"`
	Price            any              `json:"price,omitempty"`
	SLAProperties    any              `json:"slaProperties,omitempty"`
	CustomProperties []CustomProperty `json:"customProperties,omitempty"`
	// Metadata holds top-level wire fields with no first-class slot.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Table is one schema entry of the contract.
type Table struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	PhysicalName string    `json:"physicalName,omitempty"`
	PhysicalType string    `json:"physicalType,omitempty"`
	BusinessName string    `json:"businessName,omitempty"`
	Description  string    `json:"description,omitempty"`
	Status       string    `json:"status,omitempty"`
	Columns      []*Column `json:"columns"`
	Tags         []string  `json:"tags,omitempty"`
	DataLevel    DataLevel `json:"dataLevel,omitempty"`

	Owner   string `json:"owner,omitempty"`
	SLA     any    `json:"sla,omitempty"`
	Support any    `json:"support,omitempty"`
	Pricing any    `json:"pricing,omitempty"`
	Team    any    `json:"team,omitempty"`

	CompoundKeys     []*CompoundKey   `json:"compoundKeys,omitempty"`
	Quality          []map[string]any `json:"quality,omitempty"`
	CustomProperties []CustomProperty `json:"customProperties,omitempty"`
	// Metadata holds wire fields with no first-class slot.
	Metadata map[string]any `json:"metadata,omitempty"`

	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Column is one property of a table. ParentColumnID links nested columns to
// their composite owner; NestedColumns lists the children ids in order.
type Column struct {
	ID             string   `json:"id"`
	TableID        string   `json:"tableId"`
	ParentColumnID string   `json:"parentColumnId,omitempty"`
	NestedColumns  []string `json:"nestedColumnIds,omitempty"`

	Name         string `json:"name"`
	BusinessName string `json:"businessName,omitempty"`
	Description  string `json:"description,omitempty"`
	LogicalType  string `json:"logicalType"`
	PhysicalType string `json:"physicalType"`
	// Item types describe array elements that are not objects.
	ItemLogicalType  string `json:"itemLogicalType,omitempty"`
	ItemPhysicalType string `json:"itemPhysicalType,omitempty"`

	Nullable           bool `json:"nullable"`
	IsPrimaryKey       bool `json:"isPrimaryKey"`
	PrimaryKeyPosition int  `json:"primaryKeyPosition,omitempty"`
	IsForeignKey       bool `json:"isForeignKey"`
	IsUnique           bool `json:"isUnique"`
	// Order is authoritative over the position in Table.Columns.
	Order int `json:"order"`

	Constraints      map[string]any   `json:"constraints,omitempty"`
	QualityRules     []map[string]any `json:"qualityRules,omitempty"`
	Tags             []string         `json:"tags,omitempty"`
	Classification   string           `json:"classification,omitempty"`
	Examples         []any            `json:"examples,omitempty"`
	CustomProperties []CustomProperty `json:"customProperties,omitempty"`
	Metadata         map[string]any   `json:"metadata,omitempty"`
}

// Relationship is a directional link from a source table (optionally a
// column of it) to a target table (optionally a column of it).
type Relationship struct {
	ID               string           `json:"id"`
	SourceTableID    string           `json:"sourceTableId"`
	TargetTableID    string           `json:"targetTableId"`
	SourceColumn     string           `json:"sourceColumn,omitempty"`
	SourceColumnID   string           `json:"sourceColumnId,omitempty"`
	TargetColumn     string           `json:"targetColumn,omitempty"`
	Cardinality      Cardinality      `json:"cardinality"`
	Type             string           `json:"type,omitempty"`
	CustomProperties []CustomProperty `json:"customProperties,omitempty"`
}

// CompoundKey groups columns of one table into a composite key.
type CompoundKey struct {
	ID        string   `json:"id"`
	TableID   string   `json:"tableId"`
	ColumnIDs []string `json:"columnIds"`
	IsPrimary bool     `json:"isPrimary"`
}

// CustomProperty is a free-form key/value pair.
type CustomProperty struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}
