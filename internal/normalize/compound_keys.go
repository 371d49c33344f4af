package normalize

import (
	"fmt"
	"strconv"

	"contract-mapper/internal/diagnostic"
	"contract-mapper/internal/identity"
	"contract-mapper/internal/wire"
	"contract-mapper/model"
)

// compoundKeys resolves each key's column references against t. A reference
// is a column id, a wire id that was replaced on import, or a column name.
// Unresolvable references are dropped, and so is a key left without columns.
func (n *normalizer) compoundKeys(t *model.Table, keys []wire.CompoundKey, loc string, remap map[string]string) []*model.CompoundKey {
	var out []*model.CompoundKey

	for k, ck := range keys {
		kloc := fmt.Sprintf("%s.compoundKeys[%d]", loc, k)

		var cols []string

		for _, ref := range ck.ColumnIDs {
			id, ok := resolveColumn(t, ref, remap)
			if !ok {
				n.diags.AddWarning(diagnostic.CodeCompoundKeyDropped,
					fmt.Sprintf("column %q is not part of table %s, dropping it from the key", ref, t.Name),
					kloc, "columnIds")

				continue
			}

			cols = append(cols, id)
		}

		if len(cols) == 0 {
			n.diags.AddWarning(diagnostic.CodeCompoundKeyDropped,
				"compound key has no resolvable columns, dropping it", kloc, "columnIds")

			continue
		}

		candidate := ck.ID
		if candidate == "" {
			candidate = identity.Derive(t.ID, "compoundKey", strconv.Itoa(k))
		}

		out = append(out, &model.CompoundKey{
			ID:        n.ids.Claim(candidate, kloc, fmt.Sprintf("compound key %d of table %s", k, t.Name)),
			TableID:   t.ID,
			ColumnIDs: cols,
			IsPrimary: ck.IsPrimary,
		})
	}

	return out
}

func resolveColumn(t *model.Table, ref string, remap map[string]string) (string, bool) {
	if c := t.Column(ref); c != nil {
		return c.ID, true
	}

	if id, ok := remap[ref]; ok {
		return id, true
	}

	if c := t.ColumnByName(ref); c != nil {
		return c.ID, true
	}

	return "", false
}
