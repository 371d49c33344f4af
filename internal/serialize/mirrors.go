package serialize

import (
	"fmt"
	"slices"
	"strings"

	"contract-mapper/model"
)

// withoutStale drops free-form entries that a re-import would promote onto a
// structured field the entity leaves unset, i.e. entries promoted reports and
// structured does not carry. Entries with a structured counterpart stay so
// the merge replaces them in place.
func withoutStale(structured, freeform []model.CustomProperty, promoted func(model.CustomProperty) bool) []model.CustomProperty {
	var out []model.CustomProperty

	for _, p := range freeform {
		_, emitted := model.LookupProperty(structured, p.Key)
		if !emitted && promoted(p) {
			continue
		}

		out = append(out, p)
	}

	return out
}

func isKey(p model.CustomProperty, keys ...string) bool {
	return slices.ContainsFunc(keys, func(k string) bool {
		return strings.EqualFold(p.Key, k)
	})
}

// tableMirror reports the table entries a re-import promotes. A dataLevel
// entry is only read when no data level tag is present.
func tableMirror(tagged bool) func(model.CustomProperty) bool {
	return func(p model.CustomProperty) bool {
		switch {
		case isKey(p, model.PropOwner, model.PropSLA, model.PropSupport, model.PropPricing, model.PropTeam):
			return true
		case isKey(p, model.PropDataLevel):
			_, ok := model.ParseDataLevel(fmt.Sprint(p.Value))
			return ok && !tagged
		case isKey(p, model.PropCreatedAt, model.PropUpdatedAt):
			_, ok := model.ParseTimestamp(p.Value)
			return ok
		}

		return false
	}
}

func columnMirror(p model.CustomProperty) bool {
	return isKey(p, model.PropOrder, model.PropIsForeignKey)
}

func relationshipMirror(p model.CustomProperty) bool {
	return isKey(p, model.PropCardinality)
}

// tableTags returns the tags to emit for a table without a data level of its
// own. A re-import promotes the first data level tag when its value is known,
// so known level tags are dropped up to the first unknown one, which is kept
// with everything after it. tagged reports whether such a tag remains.
func tableTags(tags []string, tagKey string) (out []string, tagged bool) {
	for i, tag := range tags {
		key, value, ok := strings.Cut(tag, ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), tagKey) {
			out = append(out, tag)
			continue
		}

		if _, known := model.ParseDataLevel(value); !known {
			return append(out, tags[i:]...), true
		}
	}

	return out, false
}
