package model

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"
)

// Diff lists the structural differences between a and b. Entities are
// matched by id, so slice order of tables, columns, relationships and
// compound keys is irrelevant, as is the order of NestedColumns and
// customProperties. Timestamps compare by instant. An empty result means
// the models are equal.
func Diff(a, b *EntityModel) []string {
	d := &differ{}

	if a == nil || b == nil {
		if a != b {
			d.add("model", "one side is nil")
		}

		return d.out
	}

	d.fields("contract", reflect.ValueOf(a.Contract), reflect.ValueOf(b.Contract))

	d.tables(a.Tables, b.Tables)
	matchByID(d, "relationship", a.Relationships, b.Relationships,
		func(r *Relationship) string { return r.ID },
		func(where string, x, y *Relationship) {
			d.fields(where, reflect.ValueOf(*x), reflect.ValueOf(*y))
		})

	return d.out
}

type differ struct {
	out []string
}

func (d *differ) add(where, format string, args ...any) {
	d.out = append(d.out, where+": "+fmt.Sprintf(format, args...))
}

func (d *differ) tables(a, b []*Table) {
	matchByID(d, "table", a, b,
		func(t *Table) string { return t.ID },
		func(where string, x, y *Table) {
			d.fields(where, reflect.ValueOf(*x), reflect.ValueOf(*y), "Columns", "CompoundKeys")

			matchByID(d, where+" column", x.Columns, y.Columns,
				func(c *Column) string { return c.ID },
				func(where string, cx, cy *Column) {
					d.fields(where, reflect.ValueOf(*cx), reflect.ValueOf(*cy))
				})

			matchByID(d, where+" compound key", x.CompoundKeys, y.CompoundKeys,
				func(k *CompoundKey) string { return k.ID },
				func(where string, kx, ky *CompoundKey) {
					d.fields(where, reflect.ValueOf(*kx), reflect.ValueOf(*ky))
				})
		})
}

func matchByID[T any](d *differ, kind string, a, b []T, id func(T) string, cmp func(where string, x, y T)) {
	byID := make(map[string]T, len(b))
	for _, y := range b {
		byID[id(y)] = y
	}

	seen := map[string]bool{}

	for _, x := range a {
		key := id(x)
		seen[key] = true
		where := kind + " " + key

		y, ok := byID[key]
		if !ok {
			d.add(where, "missing on the right")
			continue
		}

		cmp(where, x, y)
	}

	for _, y := range b {
		if key := id(y); !seen[key] {
			d.add(kind+" "+key, "missing on the left")
		}
	}
}

var (
	timePtrType   = reflect.TypeOf((*time.Time)(nil))
	propSliceType = reflect.TypeOf([]CustomProperty(nil))
)

// fields compares the exported fields of two structs of the same type,
// skipping the named ones.
func (d *differ) fields(where string, x, y reflect.Value, skip ...string) {
	typ := x.Type()

	for i := range typ.NumField() {
		f := typ.Field(i)
		if !f.IsExported() || slices.Contains(skip, f.Name) {
			continue
		}

		fx, fy := x.Field(i), y.Field(i)

		if !equalField(f.Name, fx, fy) {
			d.add(where, "%s differs: %s != %s", f.Name, show(fx), show(fy))
		}
	}
}

func equalField(name string, x, y reflect.Value) bool {
	switch {
	case x.Type() == timePtrType:
		tx, ty := x.Interface().(*time.Time), y.Interface().(*time.Time)
		if tx == nil || ty == nil {
			return tx == ty
		}

		return tx.Equal(*ty)
	case x.Type() == propSliceType:
		return equalProperties(x.Interface().([]CustomProperty), y.Interface().([]CustomProperty))
	case name == "NestedColumns":
		return equalSets(x.Interface().([]string), y.Interface().([]string))
	}

	if isEmpty(x) && isEmpty(y) {
		return true
	}

	return reflect.DeepEqual(x.Interface(), y.Interface())
}

func equalProperties(a, b []CustomProperty) bool {
	if len(a) != len(b) {
		return false
	}

	for _, p := range a {
		v, ok := LookupProperty(b, p.Key)
		if !ok || !reflect.DeepEqual(p.Value, v) {
			return false
		}
	}

	return true
}

func equalSets(a, b []string) bool {
	a, b = slices.Clone(a), slices.Clone(b)
	slices.Sort(a)
	slices.Sort(b)

	return slices.Equal(a, b)
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	default:
		return false
	}
}

func show(v reflect.Value) string {
	s := fmt.Sprintf("%#v", v.Interface())
	if len(s) > 80 {
		s = s[:77] + "..."
	}

	return strings.ReplaceAll(s, "\n", " ")
}
