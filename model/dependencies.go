package model

import (
	"github.com/yourbasic/graph"
)

// TableDependencyOrder returns table ids ordered so that every relationship
// target precedes its source. Self references are ignored. ok is false when
// relationships form a cycle; the order is then nil.
func (m *EntityModel) TableDependencyOrder() (ids []string, ok bool) {
	g, index := m.dependencyGraph()

	order, ok := graph.TopSort(g)
	if !ok {
		return nil, false
	}

	ids = make([]string, len(order))
	for i, v := range order {
		ids[i] = index[v]
	}

	return ids, true
}

// CircularTables returns groups of table ids whose relationships reference
// each other in a cycle. Groups follow the graph's strong components.
func (m *EntityModel) CircularTables() [][]string {
	g, index := m.dependencyGraph()

	var groups [][]string

	for _, comp := range graph.StrongComponents(g) {
		if len(comp) < 2 {
			continue
		}

		group := make([]string, len(comp))
		for i, v := range comp {
			group[i] = index[v]
		}

		groups = append(groups, group)
	}

	return groups
}

// dependencyGraph builds an edge target -> source for every relationship
// between two distinct known tables.
func (m *EntityModel) dependencyGraph() (*graph.Mutable, []string) {
	pos := make(map[string]int, len(m.Tables))
	index := make([]string, len(m.Tables))

	for i, t := range m.Tables {
		pos[t.ID] = i
		index[i] = t.ID
	}

	g := graph.New(len(m.Tables))

	for _, r := range m.Relationships {
		src, okSrc := pos[r.SourceTableID]
		dst, okDst := pos[r.TargetTableID]

		if !okSrc || !okDst || src == dst {
			continue
		}

		g.Add(dst, src)
	}

	return g, index
}
