// Package engine runs the echo-detection stages in order: tokenize, index,
// select, rank. It is a pure function of its input snapshot; a caller that
// starts a newer run simply discards the older result when both complete.
package engine

import (
	"context"
	"fmt"
	"time"

	"echofinder/internal/echo"
	"echofinder/internal/phrase"
	"echofinder/internal/token"
)

// ProgressFn receives coarse stage notifications during a run. Detail is a
// free-text label; no partial results are delivered mid-stage.
type ProgressFn func(percent int, stage, detail string)

// Input is an immutable snapshot of everything one run needs. The caller
// copies current settings before starting so a background run never races a
// concurrent edit.
type Input struct {
	Text             string
	MinWords         int
	MaxWords         int
	Whitelist        []string
	StripPunctuation bool
	Policy           echo.Policy
	Preset           echo.Preset
}

// Output is the complete result of one run.
type Output struct {
	RunID            string
	Results          []echo.Result
	MaxFeasibleWords int
	TokenCount       int
	CandidateCount   int
	Duration         time.Duration
}

// Run executes the detection stages sequentially. All degenerate inputs
// (empty text, min greater than max, empty whitelist) are valid and produce
// empty results. An unexpected internal fault surfaces as a single opaque
// error; no state is left behind since the engine holds none.
func Run(ctx context.Context, in Input, onProgress ProgressFn) (out *Output, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("echo detection failed: %v", r)
		}
	}()

	started := time.Now()
	result := &Output{RunID: "run-" + started.Format("20060102-150405.000")}

	progress(onProgress, 10, "NORMALIZE", "Normalizing text...")
	whitelist := token.NewWhitelist(in.Whitelist)
	tokens := token.Tokenize(in.Text, whitelist, in.StripPunctuation)
	result.TokenCount = len(tokens)
	result.MaxFeasibleWords = token.MaxFeasiblePhraseLen(in.Text)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(tokens) == 0 {
		progress(onProgress, 100, "DONE", "No processable words found in text.")
		result.Results = []echo.Result{}
		result.Duration = time.Since(started)
		return result, nil
	}

	progress(onProgress, 35, "INDEX",
		fmt.Sprintf("Finding phrases (%d-%d words)...", in.MinWords, in.MaxWords))
	candidates := phrase.Index(tokens, in.MinWords, in.MaxWords)
	result.CandidateCount = len(candidates)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	progress(onProgress, 70, "SELECT", selectLabel(in.Policy))
	selected := echo.Select(candidates, in.Policy, len(in.Text))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	progress(onProgress, 90, "RANK", "Sorting results...")
	results := echo.BuildResults(selected, in.Text)
	echo.Sort(results, in.Preset)
	result.Results = results
	result.Duration = time.Since(started)

	progress(onProgress, 100, "DONE",
		fmt.Sprintf("Processing complete. Found %d echoes.", len(results)))
	return result, nil
}

func selectLabel(policy echo.Policy) string {
	if policy == echo.NonOverlapping {
		return "Filtering for non-overlapping matches..."
	}
	return "Filtering for maximal matches..."
}

func progress(on ProgressFn, percent int, stage, detail string) {
	if on == nil {
		return
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	on(percent, stage, detail)
}
