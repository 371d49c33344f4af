package model

import "strings"

// Cardinality of a relationship.
type Cardinality string

const (
	OneToOne   Cardinality = "one-to-one"
	OneToMany  Cardinality = "one-to-many"
	ManyToMany Cardinality = "many-to-many"
)

// DefaultCardinality applies when a relationship names none.
const DefaultCardinality = OneToMany

// IsValid returns true if c is a recognized cardinality.
func (c Cardinality) IsValid() bool {
	return c == OneToOne || c == OneToMany || c == ManyToMany
}

var cardinalitySpellings = map[string]Cardinality{
	"one-to-one":   OneToOne,
	"onetoone":     OneToOne,
	"1:1":          OneToOne,
	"1-1":          OneToOne,
	"one-to-many":  OneToMany,
	"onetomany":    OneToMany,
	"many-to-one":  OneToMany,
	"manytoone":    OneToMany,
	"1:n":          OneToMany,
	"1:*":          OneToMany,
	"n:1":          OneToMany,
	"*:1":          OneToMany,
	"many-to-many": ManyToMany,
	"manytomany":   ManyToMany,
	"n:m":          ManyToMany,
	"m:n":          ManyToMany,
	"n:n":          ManyToMany,
	"*:*":          ManyToMany,
}

// ParseCardinality accepts the canonical spellings plus snake_case,
// camelCase, spaced and ratio forms ("1:1", "n:m"). Many-to-one is the
// inverse view of one-to-many and maps to it.
func ParseCardinality(s string) (Cardinality, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("_", "-", " ", "-").Replace(s)

	c, ok := cardinalitySpellings[s]

	return c, ok
}

// DataLevel is the categorical level promoted from a table tag.
type DataLevel string

const (
	DataLevelNone   DataLevel = ""
	DataLevelBronze DataLevel = "bronze"
	DataLevelSilver DataLevel = "silver"
	DataLevelGold   DataLevel = "gold"
)

// DataLevels lists the accepted levels in ascending refinement.
var DataLevels = []DataLevel{DataLevelBronze, DataLevelSilver, DataLevelGold}

// ParseDataLevel matches s case-insensitively against DataLevels.
func ParseDataLevel(s string) (DataLevel, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, l := range DataLevels {
		if string(l) == s {
			return l, true
		}
	}

	return DataLevelNone, false
}

// Logical type names with structural meaning.
const (
	LogicalTypeArray  = "array"
	LogicalTypeObject = "object"
	LogicalTypeString = "string"
)
