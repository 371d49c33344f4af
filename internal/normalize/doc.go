// Package normalize converts a typed wire contract into the entity model.
//
// Both import paths end here: the external engine's canonical output and
// the heuristic mapper's output are decoded into the same wire.Contract and
// normalized by the same code, so they yield equal models.
//
// The normalizer owns every defaulting decision. Missing identifiers are
// reconciled, missing types are derived, order and foreign-key flags are
// lifted out of customProperties, a "dataLevel:<value>" tag is promoted to
// Table.DataLevel, and relationships are resolved by table name after all
// tables are known. A missing entry or column name is the only field-level
// failure; everything else becomes a diagnostic.
package normalize
