package model

import "strings"

// Structured keys mirrored into customProperties for wire compatibility.
const (
	PropOrder        = "order"
	PropIsForeignKey = "is_foreign_key"
	PropDataLevel    = "dataLevel"
	PropCardinality  = "cardinality"
	PropOwner        = "owner"
	PropSLA          = "sla"
	PropSupport      = "support"
	PropPricing      = "pricing"
	PropTeam         = "team"
	PropCreatedAt    = "created_at"
	PropUpdatedAt    = "updated_at"
)

// LookupProperty returns the value of the first property whose key matches
// key case-insensitively.
func LookupProperty(props []CustomProperty, key string) (any, bool) {
	for _, p := range props {
		if strings.EqualFold(p.Key, key) {
			return p.Value, true
		}
	}

	return nil, false
}

// WithoutProperties returns props minus every entry whose key matches one of
// keys case-insensitively. The input is not modified.
func WithoutProperties(props []CustomProperty, keys ...string) []CustomProperty {
	var out []CustomProperty

	for _, p := range props {
		drop := false

		for _, k := range keys {
			if strings.EqualFold(p.Key, k) {
				drop = true
				break
			}
		}

		if !drop {
			out = append(out, p)
		}
	}

	return out
}

// MergeProperties merges structured entries into free-form ones, keyed
// case-insensitively. A structured value replaces a free-form entry with the
// same key in place; remaining structured entries are appended in order.
// Duplicate keys among the free-form entries collapse to the first.
// Merging the result again with the same structured entries is a no-op.
func MergeProperties(structured, freeform []CustomProperty) []CustomProperty {
	if len(structured) == 0 && len(freeform) == 0 {
		return nil
	}

	index := make(map[string]int, len(structured)+len(freeform))
	out := make([]CustomProperty, 0, len(structured)+len(freeform))

	for _, p := range freeform {
		k := strings.ToLower(p.Key)
		if _, dup := index[k]; dup {
			continue
		}

		index[k] = len(out)
		out = append(out, p)
	}

	for _, p := range structured {
		k := strings.ToLower(p.Key)
		if i, ok := index[k]; ok {
			out[i] = CustomProperty{Key: out[i].Key, Value: p.Value}
			continue
		}

		index[k] = len(out)
		out = append(out, p)
	}

	return out
}
