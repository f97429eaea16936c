package engine

import (
	"context"
	"reflect"
	"testing"

	"echofinder/internal/echo"
)

func baseInput(text string) Input {
	return Input{
		Text:             text,
		MinWords:         2,
		MaxWords:         4,
		StripPunctuation: true,
		Policy:           echo.MaximalSubstring,
		Preset:           echo.ByWordCount,
	}
}

func TestRunFindsMaximalEcho(t *testing.T) {
	out, err := Run(context.Background(), baseInput("the cat sat. the cat sat again."), nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	var sawMaximal bool
	for _, r := range out.Results {
		if r.Phrase == "the cat" {
			t.Fatal("'the cat' must be suppressed by the maximal filter")
		}
		if r.Phrase == "the cat sat" {
			sawMaximal = true
			if r.Count != 2 || r.Words != 3 {
				t.Fatalf("unexpected result: %+v", r)
			}
		}
	}
	if !sawMaximal {
		t.Fatalf("expected 'the cat sat', got %+v", out.Results)
	}
}

func TestRunEmitsProgressStages(t *testing.T) {
	var stages []string
	_, err := Run(context.Background(), baseInput("a b a b"), func(percent int, stage, detail string) {
		stages = append(stages, stage)
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	want := []string{"NORMALIZE", "INDEX", "SELECT", "RANK", "DONE"}
	if !reflect.DeepEqual(stages, want) {
		t.Fatalf("stages = %v, want %v", stages, want)
	}
}

func TestRunEmptyTextIsValid(t *testing.T) {
	out, err := Run(context.Background(), baseInput(""), nil)
	if err != nil {
		t.Fatalf("empty text must not fail: %v", err)
	}
	if len(out.Results) != 0 {
		t.Fatalf("expected no results, got %+v", out.Results)
	}
	if out.MaxFeasibleWords != 0 {
		t.Fatalf("max feasible = %d, want 0", out.MaxFeasibleWords)
	}
}

func TestRunDegenerateRangeIsValid(t *testing.T) {
	in := baseInput("words repeat words repeat")
	in.MinWords = 5
	in.MaxWords = 2

	out, err := Run(context.Background(), in, nil)
	if err != nil {
		t.Fatalf("degenerate range must not fail: %v", err)
	}
	if len(out.Results) != 0 {
		t.Fatalf("expected no results, got %+v", out.Results)
	}
	if out.MaxFeasibleWords != 4 {
		t.Fatalf("max feasible = %d, want 4", out.MaxFeasibleWords)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	in := baseInput("he said the same line every morning. he said the same line every morning.")
	first, err := Run(context.Background(), in, nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	second, err := Run(context.Background(), in, nil)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if !reflect.DeepEqual(first.Results, second.Results) {
		t.Fatalf("results differ between identical runs:\n%+v\n%+v", first.Results, second.Results)
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, baseInput("a b a b"), nil); err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestRunWhitelistFlowsThrough(t *testing.T) {
	in := baseInput("Dr. Smith met Dr. Smith.")
	in.Whitelist = []string{"Dr."}

	out, err := Run(context.Background(), in, nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	var found bool
	for _, r := range out.Results {
		if r.Phrase == "Dr. smith" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected whitelisted 'Dr. smith' echo, got %+v", out.Results)
	}
}
