package match

import (
	"sort"

	"duck-bridge/internal/shape"
)

// CandidateList is a list of overload candidates with ranking functionality.
type CandidateList []Candidate

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by exact positions descending, then by target declaration order.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Exact != c[j].Exact {
		return c[i].Exact > c[j].Exact
	}

	return c[i].Target.Order < c[j].Target.Order
}

// Rank sorts the candidates in place by match quality and returns them.
func (c CandidateList) Rank() CandidateList {
	sort.Stable(c)
	return c
}

// Direct returns the first candidate needing no bridging, or nil.
func (c CandidateList) Direct() *Candidate {
	for i := range c {
		if c[i].Direct() {
			return &c[i]
		}
	}

	return nil
}

// Collect matches contract against every target method and returns the
// accepted candidates in target declaration order, plus the rejection
// reasons of every same-named method.
func (m *Matcher) Collect(
	base shape.BridgeSpec,
	contract shape.Method,
	targets []shape.Method,
	passthrough bool,
) (CandidateList, []error) {
	var (
		list    CandidateList
		reasons []error
	)

	for _, target := range targets {
		if !contract.Accepts(target.Name) {
			continue
		}

		cand, err := m.MatchMethod(base, contract, target, passthrough)
		if err != nil {
			reasons = append(reasons, err)
			continue
		}

		list = append(list, cand)
	}

	return list, reasons
}

// Suggestion thresholds for closest-name hints.
const (
	// DefaultMinScore is the minimum similarity for a suggestion.
	DefaultMinScore = 0.5
	// DefaultMaxSuggestions caps the number of suggestions.
	DefaultMaxSuggestions = 3
)

// Suggest returns up to limit target names closest to name, best first.
func Suggest(name string, targets []shape.Method, limit int) []string {
	type scored struct {
		name  string
		score float64
	}

	var all []scored

	seen := make(map[string]bool)

	for _, t := range targets {
		if t.Name == "" || seen[t.Name] {
			continue
		}

		seen[t.Name] = true

		if score := Similarity(name, t.Name); score >= DefaultMinScore {
			all = append(all, scored{t.Name, score})
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].score != all[j].score {
			return all[i].score > all[j].score
		}

		return all[i].name < all[j].name
	})

	names := make([]string, 0, min(limit, len(all)))
	for i := 0; i < len(all) && i < limit; i++ {
		names = append(names, all[i].name)
	}

	return names
}
