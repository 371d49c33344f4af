// Package model defines the in-memory entity model an editor works on:
// tables, columns (possibly nested), relationships and compound keys.
//
// Relationships are not embedded in tables; they reference tables by id.
// Nested columns form a strict tree per table: a column with children is a
// composite (array or object) type, and every column appears once in the
// owning table's flat Columns slice in declaration order.
package model
