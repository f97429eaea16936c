package echo

import (
	"sort"
	"strings"

	"echofinder/internal/phrase"
)

// Policy resolves overlapping and nested repeated phrases into a final set.
type Policy string

const (
	// MaximalSubstring suppresses any phrase whose key is a plain substring
	// of a longer accepted key.
	MaximalSubstring Policy = "maximal_substring"
	// NonOverlapping greedily accepts phrases whose occurrence spans share
	// no byte with any previously accepted phrase, so all accepted spans
	// are pairwise disjoint.
	NonOverlapping Policy = "non_overlapping"
)

func (p Policy) Valid() bool {
	return p == MaximalSubstring || p == NonOverlapping
}

// Select drops candidates seen fewer than twice, then applies the policy.
// textLen bounds the coverage set used by NonOverlapping. The result order
// is the policy's own processing order; ranking happens separately.
func Select(candidates map[string]*phrase.Candidate, policy Policy, textLen int) []*phrase.Candidate {
	repeated := make([]*phrase.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if len(c.Occurrences) >= 2 {
			repeated = append(repeated, c)
		}
	}
	if len(repeated) == 0 {
		return nil
	}

	switch policy {
	case NonOverlapping:
		return selectNonOverlapping(repeated, textLen)
	default:
		return selectMaximal(repeated)
	}
}

func selectMaximal(repeated []*phrase.Candidate) []*phrase.Candidate {
	sort.Slice(repeated, func(i, j int) bool {
		if repeated[i].WordCount != repeated[j].WordCount {
			return repeated[i].WordCount > repeated[j].WordCount
		}
		return repeated[i].Key < repeated[j].Key
	})

	// Raw string containment on normalized keys, not token-aware.
	accepted := make([]*phrase.Candidate, 0, len(repeated))
	for _, c := range repeated {
		contained := false
		for _, a := range accepted {
			if strings.Contains(a.Key, c.Key) {
				contained = true
				break
			}
		}
		if !contained {
			accepted = append(accepted, c)
		}
	}
	return accepted
}

func selectNonOverlapping(repeated []*phrase.Candidate, textLen int) []*phrase.Candidate {
	sort.Slice(repeated, func(i, j int) bool {
		a, b := repeated[i], repeated[j]
		if a.WordCount != b.WordCount {
			return a.WordCount > b.WordCount
		}
		if len(a.Occurrences) != len(b.Occurrences) {
			return len(a.Occurrences) > len(b.Occurrences)
		}
		if a.FirstStart() != b.FirstStart() {
			return a.FirstStart() < b.FirstStart()
		}
		return a.Key < b.Key
	})

	covered := make([]bool, textLen)
	accepted := make([]*phrase.Candidate, 0, len(repeated))
	for _, c := range repeated {
		if overlapsCovered(covered, c) {
			continue
		}
		for _, occ := range c.Occurrences {
			for i := occ.Start; i < occ.End && i < len(covered); i++ {
				covered[i] = true
			}
		}
		accepted = append(accepted, c)
	}
	return accepted
}

func overlapsCovered(covered []bool, c *phrase.Candidate) bool {
	for _, occ := range c.Occurrences {
		for i := occ.Start; i < occ.End && i < len(covered); i++ {
			if covered[i] {
				return true
			}
		}
	}
	return false
}
