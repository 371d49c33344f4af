package mapping

import (
	"slices"

	"contract-mapper/internal/match"
	"contract-mapper/internal/wire"
)

// Field names a logical field resolved through an alias list.
type Field string

const (
	FieldID                 Field = "id"
	FieldName               Field = "name"
	FieldPhysicalName       Field = "physicalName"
	FieldBusinessName       Field = "businessName"
	FieldDescription        Field = "description"
	FieldStatus             Field = "status"
	FieldLogicalType        Field = "logicalType"
	FieldPhysicalType       Field = "physicalType"
	FieldRequired           Field = "required"
	FieldNullable           Field = "nullable"
	FieldPrimaryKey         Field = "primaryKey"
	FieldPrimaryKeyPosition Field = "primaryKeyPosition"
	FieldUnique             Field = "unique"
	FieldForeignKey         Field = "isForeignKey"
	FieldOrder              Field = "order"
	FieldClassification     Field = "classification"
	FieldTags               Field = "tags"
	FieldExamples           Field = "examples"
	FieldConstraints        Field = "logicalTypeOptions"
	FieldItems              Field = "items"
	FieldColumns            Field = "columns"
	FieldRelationships      Field = "relationships"
	FieldCompoundKeys       Field = "compoundKeys"
	FieldColumnIDs          Field = "columnIds"
	FieldIsPrimary          Field = "isPrimary"
	FieldQuality            Field = "quality"
	FieldCustomProperties   Field = "customProperties"
	FieldFrom               Field = "from"
	FieldTo                 Field = "to"
	FieldType               Field = "type"
	FieldCardinality        Field = "cardinality"
	FieldProperty           Field = "property"
	FieldValue              Field = "value"
	FieldAPIVersion         Field = "apiVersion"
	FieldKind               Field = "kind"
	FieldVersion            Field = "version"
	FieldDomain             Field = "domain"
	FieldDataProduct        Field = "dataProduct"
	FieldTenant             Field = "tenant"
	FieldTeam               Field = "team"
	FieldSupport            Field = "support"
	FieldPrice              Field = "price"
	FieldSLAProperties      Field = "slaProperties"
	FieldSchema             Field = "schema"
)

// Alias is the ordered key list for one logical field.
type Alias struct {
	Field Field
	Keys  []string
}

// AliasTable is the set of fields resolvable on one kind of object.
type AliasTable []Alias

// Keys returns the alias keys for f in priority order, or nil.
func (t AliasTable) Keys(f Field) []string {
	for _, a := range t {
		if a.Field == f {
			return a.Keys
		}
	}

	return nil
}

// Known returns every alias key of the table, deduplicated, in table order.
func (t AliasTable) Known() []string {
	var out []string

	for _, a := range t {
		for _, k := range a.Keys {
			if !slices.Contains(out, k) {
				out = append(out, k)
			}
		}
	}

	return out
}

// Recognizes reports whether key matches any alias of the table after
// identifier normalization.
func (t AliasTable) Recognizes(key string) bool {
	norm := match.NormalizeIdent(key)

	for _, a := range t {
		for _, k := range a.Keys {
			if match.NormalizeIdent(k) == norm {
				return true
			}
		}
	}

	return false
}

// SchemaAliases locate the list of schema entries at the top level.
// "models" is the legacy mapping-keyed shape.
var SchemaAliases = []string{"schema", "models", "tables"}

// ColumnAliases locate the columns of an entry or the children of a
// composite column. Each may hold a sequence or a mapping keyed by name.
var ColumnAliases = []string{"columns", "properties", "attributes", "fields"}

// ContractAliases resolve top-level contract fields.
var ContractAliases = AliasTable{
	{FieldAPIVersion, []string{"apiVersion"}},
	{FieldKind, []string{"kind"}},
	{FieldID, []string{"id"}},
	{FieldName, []string{"name"}},
	{FieldVersion, []string{"version"}},
	{FieldStatus, []string{"status"}},
	{FieldDomain, []string{"domain"}},
	{FieldDataProduct, []string{"dataProduct"}},
	{FieldTenant, []string{"tenant"}},
	{FieldDescription, []string{"description"}},
	{FieldTags, []string{"tags"}},
	{FieldSchema, SchemaAliases},
	{FieldTeam, []string{"team"}},
	{FieldSupport, []string{"support"}},
	{FieldPrice, []string{"price"}},
	{FieldSLAProperties, []string{"slaProperties"}},
	{FieldCustomProperties, []string{"customProperties"}},
}

// EntryAliases resolve schema entry fields.
var EntryAliases = AliasTable{
	{FieldID, []string{"id"}},
	{FieldName, []string{"name", "physicalName", "table", "title"}},
	{FieldPhysicalName, []string{"physicalName"}},
	{FieldPhysicalType, []string{"physicalType", "type"}},
	{FieldBusinessName, []string{"businessName"}},
	{FieldDescription, []string{"description", "comment", "doc"}},
	{FieldStatus, []string{"status"}},
	{FieldTags, []string{"tags"}},
	{FieldColumns, ColumnAliases},
	{FieldRelationships, []string{"relationships", "references", "foreignKeys"}},
	{FieldCompoundKeys, []string{"compoundKeys", "compositeKeys"}},
	{FieldQuality, []string{"quality", "qualityRules"}},
	{FieldCustomProperties, []string{"customProperties"}},
}

// PropertyAliases resolve column fields.
var PropertyAliases = AliasTable{
	{FieldID, []string{"id"}},
	{FieldName, []string{"name", "physicalName", "column", "field", "title"}},
	{FieldBusinessName, []string{"businessName"}},
	{FieldDescription, []string{"description", "comment", "doc"}},
	{FieldLogicalType, []string{"logicalType", "type", "dataType"}},
	{FieldPhysicalType, []string{"physicalType", "dbType", "sqlType"}},
	{FieldRequired, []string{"required", "notNull"}},
	{FieldNullable, []string{"nullable", "isNullable"}},
	{FieldPrimaryKey, []string{"primaryKey", "isPrimaryKey", "pk"}},
	{FieldPrimaryKeyPosition, []string{"primaryKeyPosition"}},
	{FieldUnique, []string{"unique", "isUnique"}},
	{FieldForeignKey, []string{"isForeignKey", "foreignKey"}},
	{FieldOrder, []string{"order", "position", "ordinal"}},
	{FieldClassification, []string{"classification"}},
	{FieldTags, []string{"tags"}},
	{FieldExamples, []string{"examples", "example"}},
	{FieldConstraints, []string{"logicalTypeOptions"}},
	{FieldItems, []string{"items"}},
	{FieldColumns, ColumnAliases},
	{FieldRelationships, []string{"relationships", "references", "foreignKeys"}},
	{FieldQuality, []string{"quality", "qualityRules"}},
	{FieldCustomProperties, []string{"customProperties"}},
}

// ItemsAliases resolve the element definition of an array column.
var ItemsAliases = AliasTable{
	{FieldLogicalType, []string{"logicalType", "type", "dataType"}},
	{FieldPhysicalType, []string{"physicalType", "dbType", "sqlType"}},
	{FieldColumns, ColumnAliases},
}

// RelationshipAliases resolve relationship fields.
var RelationshipAliases = AliasTable{
	{FieldID, []string{"id"}},
	{FieldType, []string{"type"}},
	{FieldFrom, []string{"from", "source"}},
	{FieldTo, []string{"to", "references", "target"}},
	{FieldCardinality, []string{"cardinality"}},
	{FieldCustomProperties, []string{"customProperties"}},
}

// CompoundKeyAliases resolve compound key fields.
var CompoundKeyAliases = AliasTable{
	{FieldID, []string{"id"}},
	{FieldColumnIDs, []string{"columnIds", "columns"}},
	{FieldIsPrimary, []string{"isPrimary", "primary"}},
}

// CustomPropertyAliases resolve the key and value of one custom property.
var CustomPropertyAliases = AliasTable{
	{FieldProperty, []string{"property", "key", "name"}},
	{FieldValue, []string{"value"}},
}

// Passthrough keys are recognized wire fields without a first-class slot.
// They are kept in Extra without an unknown_field warning.
var (
	EntryPassthrough = []string{
		"logicalType", "dataGranularityDescription", "authoritativeDefinitions", "primaryKey",
	}
	PropertyPassthrough = append([]string{
		"authoritativeDefinitions", "encryptedName", "criticalDataElement", "partitioned",
		"partitionKeyPosition", "transformSourceObjects", "transformLogic", "transformDescription",
	}, wire.ConstraintKeys...)
)
