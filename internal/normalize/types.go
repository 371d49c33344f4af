package normalize

import (
	"strings"

	"contract-mapper/model"
)

// physicalToLogical maps storage type names, lower-cased and stripped of
// parameters, to logical types.
var physicalToLogical = map[string]string{
	"int": "integer", "integer": "integer", "bigint": "integer", "smallint": "integer",
	"tinyint": "integer", "mediumint": "integer", "int2": "integer", "int4": "integer",
	"int8": "integer", "int32": "integer", "int64": "integer", "serial": "integer",
	"bigserial": "integer", "long": "integer", "short": "integer",

	"decimal": "number", "numeric": "number", "number": "number", "float": "number",
	"float4": "number", "float8": "number", "double": "number", "double precision": "number",
	"real": "number", "money": "number",

	"bool": "boolean", "boolean": "boolean", "bit": "boolean",

	"varchar": "string", "char": "string", "character": "string", "character varying": "string",
	"nvarchar": "string", "nchar": "string", "text": "string", "string": "string",
	"citext": "string", "clob": "string", "uuid": "string", "enum": "string",
	"binary": "string", "varbinary": "string", "blob": "string", "bytea": "string",

	"date":      "date",
	"timestamp": "timestamp", "timestamptz": "timestamp", "datetime": "timestamp",
	"datetime2": "timestamp", "timestamp with time zone": "timestamp",
	"timestamp without time zone": "timestamp",
	"time":                        "time", "timetz": "time",

	"json": "object", "jsonb": "object", "struct": "object", "map": "object",
	"record": "object", "object": "object", "variant": "object",

	"array": "array", "list": "array",
}

// logicalToPhysical is the storage type emitted when none is given.
var logicalToPhysical = map[string]string{
	"string":    "varchar",
	"integer":   "integer",
	"number":    "numeric",
	"boolean":   "boolean",
	"date":      "date",
	"timestamp": "timestamp",
	"time":      "time",
	"object":    "object",
	"array":     "array",
}

// LogicalFromPhysical derives a logical type from a storage type. Unknown
// storage types map to string.
func LogicalFromPhysical(physical string) string {
	base := strings.ToLower(strings.TrimSpace(physical))

	if strings.HasSuffix(base, "[]") || strings.HasPrefix(base, "array<") {
		return model.LogicalTypeArray
	}

	if i := strings.IndexAny(base, "(<"); i >= 0 {
		base = strings.TrimSpace(base[:i])
	}

	if l, ok := physicalToLogical[base]; ok {
		return l
	}

	return model.LogicalTypeString
}

// PhysicalFromLogical returns the default storage type for a logical type.
// Unknown logical types are used verbatim.
func PhysicalFromLogical(logical string) string {
	if p, ok := logicalToPhysical[strings.ToLower(strings.TrimSpace(logical))]; ok {
		return p
	}

	return logical
}
