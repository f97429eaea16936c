package phrase

import (
	"strings"

	"echofinder/internal/token"
)

// Candidate is a normalized phrase and every place it occurs in the text.
// Occurrences are ordered by start offset ascending.
type Candidate struct {
	Key         string
	WordCount   int
	Occurrences []token.Span
}

// FirstStart returns the start offset of the earliest occurrence.
func (c *Candidate) FirstStart() int {
	if len(c.Occurrences) == 0 {
		return 0
	}
	return c.Occurrences[0].Start
}

// Index generates every contiguous run of n consecutive tokens for each n in
// [minWords, maxWords] and groups the runs by their space-joined normalized
// key. The span of one occurrence reaches from the first token's start to
// the last token's end. Degenerate ranges and empty token lists yield an
// empty map; an n larger than the token count is skipped.
func Index(tokens []token.Token, minWords, maxWords int) map[string]*Candidate {
	candidates := make(map[string]*Candidate)
	if len(tokens) == 0 || maxWords <= 0 || minWords > maxWords {
		return candidates
	}
	if minWords < 1 {
		minWords = 1
	}

	var b strings.Builder
	for n := minWords; n <= maxWords; n++ {
		if n > len(tokens) {
			break
		}
		for i := 0; i+n <= len(tokens); i++ {
			b.Reset()
			for j := i; j < i+n; j++ {
				if j > i {
					b.WriteByte(' ')
				}
				b.WriteString(tokens[j].Normalized)
			}
			key := b.String()

			c, ok := candidates[key]
			if !ok {
				c = &Candidate{Key: key, WordCount: n}
				candidates[key] = c
			}
			c.Occurrences = append(c.Occurrences, token.Span{
				Start: tokens[i].Span.Start,
				End:   tokens[i+n-1].Span.End,
			})
		}
	}
	return candidates
}
