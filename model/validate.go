package model

import (
	"fmt"

	"contract-mapper/internal/errors"
)

// DefaultMaxNestingDepth bounds parent/child column chains.
const DefaultMaxNestingDepth = 32

// Validate checks the structural invariants the serializer relies on:
// unique identifiers, columns owned by their table, parent references inside
// the same table forming a bounded acyclic tree, relationships and compound
// keys pointing at existing entities.
func Validate(m *EntityModel) error {
	return ValidateDepth(m, DefaultMaxNestingDepth)
}

// ValidateDepth is Validate with an explicit nesting bound.
func ValidateDepth(m *EntityModel, maxDepth int) error {
	if m == nil {
		return &errors.SerializationError{Entity: "model", Reason: "model is nil"}
	}

	owners := map[string]string{}
	claim := func(id, who string) error {
		if id == "" {
			return nil
		}

		if first, ok := owners[id]; ok {
			return &errors.IdentityConflictError{ID: id, First: first, Second: who}
		}

		owners[id] = who

		return nil
	}

	for ti, t := range m.Tables {
		if t == nil {
			return &errors.SerializationError{Entity: fmt.Sprintf("table #%d", ti), Reason: "table is nil"}
		}

		if err := claim(t.ID, "table "+t.Name); err != nil {
			return err
		}

		if err := validateColumns(t, maxDepth, claim); err != nil {
			return err
		}

		for _, ck := range t.CompoundKeys {
			if err := claim(ck.ID, "compound key of table "+t.Name); err != nil {
				return err
			}

			if ck.TableID != "" && ck.TableID != t.ID {
				return &errors.SerializationError{
					Entity: "compound key " + ck.ID,
					Reason: fmt.Sprintf("belongs to table %s but is listed under %s", ck.TableID, t.Name),
				}
			}

			for _, cid := range ck.ColumnIDs {
				if t.Column(cid) == nil {
					return &errors.SerializationError{
						Entity: "compound key " + ck.ID,
						Reason: fmt.Sprintf("references column %s not present in table %s", cid, t.Name),
					}
				}
			}
		}
	}

	for _, r := range m.Relationships {
		if err := claim(r.ID, "relationship "+r.ID); err != nil {
			return err
		}

		src := m.Table(r.SourceTableID)
		if src == nil {
			return &errors.SerializationError{
				Entity: "relationship " + r.ID,
				Reason: fmt.Sprintf("source table %s does not exist", r.SourceTableID),
			}
		}

		if r.SourceColumnID != "" && src.Column(r.SourceColumnID) == nil {
			return &errors.SerializationError{
				Entity: "relationship " + r.ID,
				Reason: fmt.Sprintf("source column %s not present in table %s", r.SourceColumnID, src.Name),
			}
		}

		if m.Table(r.TargetTableID) == nil {
			return &errors.SerializationError{
				Entity: "relationship " + r.ID,
				Reason: fmt.Sprintf("target table %s does not exist", r.TargetTableID),
			}
		}
	}

	return nil
}

func validateColumns(t *Table, maxDepth int, claim func(id, who string) error) error {
	index := make(map[string]int, len(t.Columns))

	for i, c := range t.Columns {
		if c == nil {
			return &errors.SerializationError{Entity: fmt.Sprintf("column #%d of table %s", i, t.Name), Reason: "column is nil"}
		}

		if err := claim(c.ID, "column "+t.Name+"."+c.Name); err != nil {
			return err
		}

		if c.TableID != "" && c.TableID != t.ID {
			return &errors.SerializationError{
				Entity: "column " + t.Name + "." + c.Name,
				Reason: fmt.Sprintf("table id %s does not match owning table %s", c.TableID, t.ID),
			}
		}

		index[c.ID] = i
	}

	parents := make([]int, len(t.Columns))

	for i, c := range t.Columns {
		parents[i] = -1
		if c.ParentColumnID == "" {
			continue
		}

		p, ok := index[c.ParentColumnID]
		if !ok {
			return &errors.SerializationError{
				Entity: "column " + t.Name + "." + c.Name,
				Reason: fmt.Sprintf("parent column %s is not in table %s", c.ParentColumnID, t.Name),
			}
		}

		if p == i {
			return &errors.SerializationError{Entity: "column " + t.Name + "." + c.Name, Reason: "column is its own parent"}
		}

		parents[i] = p
	}

	order, stuck, err := topoSort(len(t.Columns), func(i int) []int {
		if parents[i] < 0 {
			return nil
		}

		return []int{parents[i]}
	})
	if err != nil {
		entity := "table " + t.Name
		if len(stuck) > 0 {
			// Climb from a stuck node until a column repeats; that one sits on the cycle.
			seen := map[int]bool{}
			i := stuck[0]

			for !seen[i] && parents[i] >= 0 {
				seen[i] = true
				i = parents[i]
			}

			entity = "column " + t.Name + "." + t.Columns[i].Name
		}

		return &errors.SerializationError{Entity: entity, Reason: "cyclic parent reference", Err: err}
	}

	depth := make([]int, len(t.Columns))

	for _, i := range order {
		if parents[i] >= 0 {
			depth[i] = depth[parents[i]] + 1
		}

		if depth[i] > maxDepth {
			return &errors.SerializationError{
				Entity: "column " + t.Name + "." + t.Columns[i].Name,
				Reason: fmt.Sprintf("nesting depth %d exceeds limit %d", depth[i], maxDepth),
			}
		}
	}

	return nil
}
