// Package match compares document keys and names loosely.
//
// Contract documents spell the same key many ways (primary_key,
// primaryKey, PrimaryKey). NormalizeIdent folds those spellings together,
// and Suggest ranks known keys by edit distance for "did you mean" hints.
package match
