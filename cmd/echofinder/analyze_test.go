package main

import (
	"strings"
	"testing"
	"time"

	"echofinder/internal/echo"
	"echofinder/internal/engine"
	"echofinder/internal/token"
)

func TestFormatResults(t *testing.T) {
	out := &engine.Output{
		RunID:            "run-test",
		MaxFeasibleWords: 8,
		Duration:         10 * time.Millisecond,
		Results: []echo.Result{
			{
				Phrase: "the cat sat",
				Words:  3,
				Count:  2,
				Occurrences: []token.Span{
					{Start: 0, End: 11},
					{Start: 13, End: 24},
				},
			},
		},
	}

	text := formatResults("draft", out)
	if !strings.Contains(text, "draft: 1 echoes") {
		t.Fatalf("missing summary line:\n%s", text)
	}
	if !strings.Contains(text, "the cat sat") {
		t.Fatalf("missing phrase row:\n%s", text)
	}
	if !strings.Contains(text, "@0") {
		t.Fatalf("missing first-seen offset:\n%s", text)
	}
}

func TestFormatResultsEmpty(t *testing.T) {
	out := &engine.Output{MaxFeasibleWords: 0}
	text := formatResults("empty", out)
	if !strings.Contains(text, "empty: 0 echoes") {
		t.Fatalf("unexpected output:\n%s", text)
	}
	if strings.Contains(text, "COUNT") {
		t.Fatalf("no table expected for empty results:\n%s", text)
	}
}
