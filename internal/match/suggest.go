package match

import (
	"slices"
	"sort"
)

// Candidate is a known name scored against an unknown one.
type Candidate struct {
	Name  string
	Score float64
}

// CandidateList is ordered by descending score, then by name.
type CandidateList []Candidate

func (c CandidateList) Len() int      { return len(c) }
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Name < c[j].Name
}

// Top returns at most n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n < len(c) {
		return c[:n]
	}

	return c
}

// Names returns the candidate names in order.
func (c CandidateList) Names() []string {
	if len(c) == 0 {
		return nil
	}

	out := make([]string, len(c))
	for i, cand := range c {
		out[i] = cand.Name
	}

	return out
}

// Rank scores every distinct known name against name and keeps those at or
// above threshold, best first.
func Rank(name string, known []string, threshold float64) CandidateList {
	var out CandidateList

	seen := make([]string, 0, len(known))

	for _, k := range known {
		if slices.Contains(seen, k) {
			continue
		}

		seen = append(seen, k)

		if s := IdentSimilarity(name, k); s >= threshold {
			out = append(out, Candidate{Name: k, Score: s})
		}
	}

	sort.Sort(out)

	return out
}

// Suggest returns up to limit known names similar to name.
func Suggest(name string, known []string, threshold float64, limit int) []string {
	return Rank(name, known, threshold).Top(limit).Names()
}
