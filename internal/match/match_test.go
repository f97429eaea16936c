package match

import (
	"testing"
)

func TestFindOccurrencesLooseMatching(t *testing.T) {
	text := "The  cat, sat on the mat. THE CAT SAT again."
	spans := FindOccurrences(text, "the cat sat")

	// Matches despite case differences, doubled whitespace and the comma.
	if len(spans) != 2 {
		t.Fatalf("expected 2 occurrences, got %d: %+v", len(spans), spans)
	}
	if got := text[spans[0].Start:spans[0].End]; got != "The  cat, sat" {
		t.Fatalf("first match slice = %q", got)
	}
	if got := text[spans[1].Start:spans[1].End]; got != "THE CAT SAT" {
		t.Fatalf("second match slice = %q", got)
	}
}

func TestFindOccurrencesWholeWordsOnly(t *testing.T) {
	if spans := FindOccurrences("they cathedral sattelite", "the cat sat"); len(spans) != 0 {
		t.Fatalf("partial words must not match, got %+v", spans)
	}
	if spans := FindOccurrences("thecat sat", "the cat"); len(spans) != 0 {
		t.Fatalf("joined words must not match, got %+v", spans)
	}
}

func TestFindOccurrencesSingleWordWithPunctuation(t *testing.T) {
	spans := FindOccurrences("wow! and wow! again", "wow!")
	if len(spans) != 2 {
		t.Fatalf("expected 2 occurrences, got %d: %+v", len(spans), spans)
	}
}

func TestFindOccurrencesSortedAscending(t *testing.T) {
	text := "echo here, echo there, echo everywhere"
	spans := FindOccurrences(text, "echo")
	if len(spans) != 3 {
		t.Fatalf("expected 3 occurrences, got %d", len(spans))
	}
	for i := 1; i < len(spans); i++ {
		if spans[i-1].Start >= spans[i].Start {
			t.Fatalf("spans not ascending: %+v", spans)
		}
	}
}

func TestFindOccurrencesBlankPhrase(t *testing.T) {
	if spans := FindOccurrences("some text", ""); spans != nil {
		t.Fatalf("blank phrase must yield nothing, got %+v", spans)
	}
	if spans := FindOccurrences("some text", "   "); spans != nil {
		t.Fatalf("whitespace phrase must yield nothing, got %+v", spans)
	}
}

func TestFindOccurrencesIgnoresWhitelistSemantics(t *testing.T) {
	// The re-matcher is deliberately independent of analysis-time
	// normalization: "dr" matches "Dr." because the period is just a
	// separator here.
	spans := FindOccurrences("Dr. Smith met Dr. Jones.", "dr smith")
	if len(spans) != 1 {
		t.Fatalf("expected 1 occurrence, got %+v", spans)
	}
}
