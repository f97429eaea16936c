// Package match locates occurrences of a normalized phrase directly in raw
// text. It deliberately matches more loosely than the tokenizer that built
// the phrase: any run of non-word characters may separate the words and the
// whitelist is ignored, so live counts can diverge from the counts stored in
// an analysis result. Callers surface that divergence instead of hiding it.
package match

import (
	"regexp"
	"strings"

	"echofinder/internal/token"
)

// Pattern compiles the loose whole-word pattern for phrase: each
// whitespace-separated word of the phrase, case-insensitive, separated by
// zero or more non-word characters. Returns nil for a blank phrase.
func Pattern(phrase string) *regexp.Regexp {
	words := strings.Fields(phrase)
	if len(words) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString(`(?i)`)
	for i, w := range words {
		if i > 0 {
			b.WriteString(`\W*`)
		}
		// Word boundaries only hold next to word characters; a word that
		// starts or ends with punctuation (e.g. "wow!") anchors on the
		// word-character side alone.
		if isWordByte(w[0]) {
			b.WriteString(`\b`)
		}
		b.WriteString(regexp.QuoteMeta(w))
		if isWordByte(w[len(w)-1]) {
			b.WriteString(`\b`)
		}
	}

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil
	}
	return re
}

// FindOccurrences returns every non-overlapping match of phrase in rawText,
// sorted by start offset ascending.
func FindOccurrences(rawText, phrase string) []token.Span {
	re := Pattern(phrase)
	if re == nil {
		return nil
	}
	matches := re.FindAllStringIndex(rawText, -1)
	spans := make([]token.Span, 0, len(matches))
	for _, m := range matches {
		spans = append(spans, token.Span{Start: m[0], End: m[1]})
	}
	return spans
}

// isWordByte mirrors RE2's ASCII \b word-character class. Non-ASCII bytes
// report false so no boundary is asserted next to them, keeping the pattern
// valid for accented words at the cost of a slightly looser match.
func isWordByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
