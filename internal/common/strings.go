package common

import "strings"

// UnknownStr is the String() value for enum members without a name.
const UnknownStr = "unknown"

// SplitRef splits a "table.column" reference on its first dot.
// A reference without a dot yields an empty column.
func SplitRef(ref string) (table, column string) {
	table, column, _ = strings.Cut(strings.TrimSpace(ref), ".")
	return table, column
}

// JoinRef is the inverse of SplitRef.
func JoinRef(table, column string) string {
	if column == "" {
		return table
	}

	return table + "." + column
}
