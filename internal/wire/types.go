package wire

// Contract is the root of a data contract document.
type Contract struct {
	APIVersion       string           `yaml:"apiVersion,omitempty"`
	Kind             string           `yaml:"kind,omitempty"`
	ID               string           `yaml:"id,omitempty"`
	Name             string           `yaml:"name,omitempty"`
	Version          string           `yaml:"version,omitempty"`
	Status           string           `yaml:"status,omitempty"`
	Domain           string           `yaml:"domain,omitempty"`
	DataProduct      string           `yaml:"dataProduct,omitempty"`
	Tenant           string           `yaml:"tenant,omitempty"`
	Description      any              `yaml:"description,omitempty"`
	Tags             []string         `yaml:"tags,omitempty"`
	Schema           []SchemaEntry    `yaml:"schema"`
	Team             any              `yaml:"team,omitempty"`
	Support          any              `yaml:"support,omitempty"`
	Price            any              `yaml:"price,omitempty"`
	SLAProperties    any              `yaml:"slaProperties,omitempty"`
	CustomProperties []CustomProperty `yaml:"customProperties,omitempty"`
	Extra            map[string]any   `yaml:",inline"`
}

// SchemaEntry is one table-like definition.
type SchemaEntry struct {
	ID               string           `yaml:"id,omitempty"`
	Name             string           `yaml:"name"`
	PhysicalName     string           `yaml:"physicalName,omitempty"`
	PhysicalType     string           `yaml:"physicalType,omitempty"`
	BusinessName     string           `yaml:"businessName,omitempty"`
	Description      string           `yaml:"description,omitempty"`
	Status           string           `yaml:"status,omitempty"`
	Tags             []string         `yaml:"tags,omitempty"`
	Properties       []Property       `yaml:"properties,omitempty"`
	Relationships    []Relationship   `yaml:"relationships,omitempty"`
	CompoundKeys     []CompoundKey    `yaml:"compoundKeys,omitempty"`
	Quality          []map[string]any `yaml:"quality,omitempty"`
	CustomProperties []CustomProperty `yaml:"customProperties,omitempty"`
	Extra            map[string]any   `yaml:",inline"`
}

// Property is one field of a schema entry. Array properties nest their
// element definition under Items; object properties nest Properties
// directly.
type Property struct {
	ID                 string `yaml:"id,omitempty"`
	Name               string `yaml:"name"`
	BusinessName       string `yaml:"businessName,omitempty"`
	Description        string `yaml:"description,omitempty"`
	LogicalType        string `yaml:"logicalType,omitempty"`
	PhysicalType       string `yaml:"physicalType,omitempty"`
	Required           bool   `yaml:"required,omitempty"`
	PrimaryKey         bool   `yaml:"primaryKey,omitempty"`
	PrimaryKeyPosition int    `yaml:"primaryKeyPosition,omitempty"`
	Unique             bool   `yaml:"unique,omitempty"`
	// IsForeignKey and Order are accepted on input only; output mirrors
	// them into CustomProperties.
	IsForeignKey       *bool            `yaml:"isForeignKey,omitempty"`
	Order              *int             `yaml:"order,omitempty"`
	Classification     string           `yaml:"classification,omitempty"`
	Tags               []string         `yaml:"tags,omitempty"`
	Examples           []any            `yaml:"examples,omitempty"`
	LogicalTypeOptions map[string]any   `yaml:"logicalTypeOptions,omitempty"`
	Items              *Items           `yaml:"items,omitempty"`
	Properties         []Property       `yaml:"properties,omitempty"`
	Relationships      []Relationship   `yaml:"relationships,omitempty"`
	Quality            []map[string]any `yaml:"quality,omitempty"`
	CustomProperties   []CustomProperty `yaml:"customProperties,omitempty"`
	Extra              map[string]any   `yaml:",inline"`
}

// Items describes the elements of an array property.
type Items struct {
	LogicalType  string         `yaml:"logicalType,omitempty"`
	PhysicalType string         `yaml:"physicalType,omitempty"`
	Properties   []Property     `yaml:"properties,omitempty"`
	Extra        map[string]any `yaml:",inline"`
}

// Relationship references another schema entry by name: "table.column",
// "table", or a list of such references.
type Relationship struct {
	ID               string           `yaml:"id,omitempty"`
	Type             string           `yaml:"type,omitempty"`
	From             string           `yaml:"from,omitempty"`
	To               StringOrArray    `yaml:"to"`
	CustomProperties []CustomProperty `yaml:"customProperties,omitempty"`
	Extra            map[string]any   `yaml:",inline"`
}

// CompoundKey lists the columns of a composite key by column id.
type CompoundKey struct {
	ID        string   `yaml:"id,omitempty"`
	ColumnIDs []string `yaml:"columnIds"`
	IsPrimary bool     `yaml:"isPrimary,omitempty"`
}

// CustomProperty is an escape-hatch key/value pair.
type CustomProperty struct {
	Property string `yaml:"property"`
	Value    any    `yaml:"value"`
}

// ConstraintKeys are the legacy top-level property keys that belong in
// logicalTypeOptions.
var ConstraintKeys = []string{
	"maxLength", "minLength", "pattern", "minimum", "maximum",
	"exclusiveMinimum", "exclusiveMaximum", "enum", "format", "precision", "scale",
}
