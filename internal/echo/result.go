package echo

import (
	"sort"

	"echofinder/internal/phrase"
	"echofinder/internal/token"
)

// Preset names a ranking order for the final result list.
type Preset string

const (
	// ByWordCount ranks longer phrases first.
	ByWordCount Preset = "longest_first_by_word_count"
	// ByRepetitionCount ranks more frequent phrases first.
	ByRepetitionCount Preset = "most_repeated"
)

func (p Preset) Valid() bool {
	return p == ByWordCount || p == ByRepetitionCount
}

// Result is one accepted echo. Phrase is the normalized key;
// RepresentativeText is the verbatim slice of the first occurrence, with
// original casing and punctuation intact.
type Result struct {
	Phrase             string       `json:"phrase"`
	RepresentativeText string       `json:"representative_text"`
	Count              int          `json:"count"`
	Words              int          `json:"words"`
	Occurrences        []token.Span `json:"occurrences"`
}

// BuildResults materializes selected candidates against the original text.
func BuildResults(selected []*phrase.Candidate, text string) []Result {
	results := make([]Result, 0, len(selected))
	for _, c := range selected {
		r := Result{
			Phrase:      c.Key,
			Count:       len(c.Occurrences),
			Words:       c.WordCount,
			Occurrences: c.Occurrences,
		}
		if len(c.Occurrences) > 0 {
			first := c.Occurrences[0]
			if first.Start >= 0 && first.End <= len(text) && first.Start <= first.End {
				r.RepresentativeText = text[first.Start:first.End]
			}
		}
		results = append(results, r)
	}
	return results
}

// Sort orders results in place. Phrase keys are unique within a result set,
// so the lexicographic tie-break makes the order total and runs idempotent.
func Sort(results []Result, preset Preset) {
	switch preset {
	case ByRepetitionCount:
		sort.Slice(results, func(i, j int) bool {
			a, b := results[i], results[j]
			if a.Count != b.Count {
				return a.Count > b.Count
			}
			if a.Words != b.Words {
				return a.Words > b.Words
			}
			return a.Phrase < b.Phrase
		})
	default:
		sort.Slice(results, func(i, j int) bool {
			a, b := results[i], results[j]
			if a.Words != b.Words {
				return a.Words > b.Words
			}
			if a.Count != b.Count {
				return a.Count > b.Count
			}
			return a.Phrase < b.Phrase
		})
	}
}
