package db

import (
	"path/filepath"
	"testing"

	"echofinder/internal/echo"
	"echofinder/internal/token"
)

func TestSaveRunReplacesHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	results := []echo.Result{
		{
			Phrase: "the cat sat",
			Words:  3,
			Count:  2,
			Occurrences: []token.Span{
				{Start: 0, End: 11},
				{Start: 13, End: 24},
			},
		},
		{
			Phrase: "sat again",
			Words:  2,
			Count:  2,
			Occurrences: []token.Span{
				{Start: 30, End: 39},
				{Start: 50, End: 59},
			},
		},
	}

	rec := RunRecord{
		RunID:     "run-1",
		Project:   "draft",
		WordCount: 14,
		EchoCount: len(results),
		Policy:    string(echo.MaximalSubstring),
		Preset:    string(echo.ByWordCount),
	}
	if err := SaveRun(dbPath, rec, results); err != nil {
		t.Fatalf("save run: %v", err)
	}

	echoes, err := CountRows(dbPath, "echoes")
	if err != nil {
		t.Fatalf("count echoes: %v", err)
	}
	if echoes != 2 {
		t.Fatalf("expected 2 echoes, got %d", echoes)
	}

	// A second save for the same project replaces the first.
	rec.RunID = "run-2"
	if err := SaveRun(dbPath, rec, results[:1]); err != nil {
		t.Fatalf("save second run: %v", err)
	}
	runs, err := CountRows(dbPath, "runs")
	if err != nil {
		t.Fatalf("count runs: %v", err)
	}
	if runs != 1 {
		t.Fatalf("expected 1 run after replace, got %d", runs)
	}
	echoes, err = CountRows(dbPath, "echoes")
	if err != nil {
		t.Fatalf("recount echoes: %v", err)
	}
	if echoes != 1 {
		t.Fatalf("expected 1 echo after replace, got %d", echoes)
	}

	recent, err := RecentRuns(dbPath, 5)
	if err != nil {
		t.Fatalf("recent runs: %v", err)
	}
	if len(recent) != 1 || recent[0].RunID != "run-2" {
		t.Fatalf("unexpected recent runs: %+v", recent)
	}
}
