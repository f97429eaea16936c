package token

import (
	"regexp"
	"strings"
	"unicode"
)

// Span is a half-open byte range into the original text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Token is a single normalized word together with the byte range of the raw
// word it was derived from. Spans are produced left to right and never
// overlap.
type Token struct {
	Normalized string
	Span       Span
}

// Whitelist holds words exempt from normalization, e.g. abbreviations like
// "Dr." that must keep their punctuation and case. Membership checks are
// case-insensitive; the entries keep the form they were added with. The
// engine never mutates a whitelist it is handed.
type Whitelist struct {
	members map[string]struct{}
	entries []string
}

func NewWhitelist(entries []string) Whitelist {
	w := Whitelist{members: make(map[string]struct{}, len(entries))}
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		key := strings.ToLower(e)
		if _, ok := w.members[key]; ok {
			continue
		}
		w.members[key] = struct{}{}
		w.entries = append(w.entries, e)
	}
	return w
}

func (w Whitelist) Contains(word string) bool {
	_, ok := w.members[strings.ToLower(word)]
	return ok
}

// Entries returns the stored forms in the order they were added.
func (w Whitelist) Entries() []string {
	out := make([]string, len(w.entries))
	copy(out, w.entries)
	return out
}

func (w Whitelist) Len() int { return len(w.entries) }

var rawWordPattern = regexp.MustCompile(`\S+`)

// Tokenize splits text on whitespace into raw words and normalizes each one.
// A raw word that case-insensitively matches a whitelist entry is kept
// verbatim. Otherwise, with stripPunctuation set, leading and trailing runs
// of non-word characters are removed before lowercasing; without it the raw
// word is lowercased whole. Raw words that normalize to nothing (pure
// punctuation) produce no token.
func Tokenize(text string, whitelist Whitelist, stripPunctuation bool) []Token {
	if text == "" {
		return nil
	}
	matches := rawWordPattern.FindAllStringIndex(text, -1)
	tokens := make([]Token, 0, len(matches))
	for _, m := range matches {
		raw := text[m[0]:m[1]]
		normalized := normalize(raw, whitelist, stripPunctuation)
		if normalized == "" {
			continue
		}
		tokens = append(tokens, Token{
			Normalized: normalized,
			Span:       Span{Start: m[0], End: m[1]},
		})
	}
	return tokens
}

// Normalize applies the same rules Tokenize applies to a single raw word.
func Normalize(raw string, whitelist Whitelist, stripPunctuation bool) string {
	return normalize(raw, whitelist, stripPunctuation)
}

func normalize(raw string, whitelist Whitelist, stripPunctuation bool) string {
	if whitelist.Contains(raw) {
		return raw
	}
	if stripPunctuation {
		return strings.ToLower(strings.TrimFunc(raw, isNonWord))
	}
	return strings.ToLower(raw)
}

func isNonWord(r rune) bool {
	return r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

var alphanumericRun = regexp.MustCompile(`\w+`)

// MaxFeasiblePhraseLen reports the largest phrase length worth offering for
// text, using a plain alphanumeric-run count rather than the tokenizer's own
// word definition. Returns 0 for text with no words, otherwise at least 2.
func MaxFeasiblePhraseLen(text string) int {
	n := len(alphanumericRun.FindAllStringIndex(text, -1))
	if n == 0 {
		return 0
	}
	if n < 2 {
		return 2
	}
	return n
}
