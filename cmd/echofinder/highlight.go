package main

import (
	"bufio"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"echofinder/internal/highlight"
	"echofinder/internal/ingest"
	"echofinder/internal/match"
)

var highlightCmd = &cobra.Command{
	Use:   "highlight <file> [phrase]",
	Short: "Locate occurrences of a phrase in a manuscript",
	Long: `Highlight matches a phrase against the raw manuscript text with loose
word-boundary rules: case-insensitive, with any punctuation allowed between
words. With no phrase argument it reads phrases line by line from stdin,
debouncing rapid input the way an interactive highlight field would.

Because the matching rule is looser than the one used during analysis, the
count printed here can differ from the count in the analysis results; that
difference is informative, not a bug.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runHighlight,
}

var showContext int

func init() {
	highlightCmd.Flags().IntVarP(&showContext, "context", "C", 20, "bytes of context to print around each match")
	rootCmd.AddCommand(highlightCmd)
}

func runHighlight(cmd *cobra.Command, args []string) error {
	parsed, err := ingest.ParseFile(args[0])
	if err != nil {
		return err
	}

	if len(args) == 2 {
		printOccurrences(parsed.Text, args[1])
		return nil
	}
	return interactiveHighlight(parsed.Text)
}

func printOccurrences(text, phrase string) {
	spans := match.FindOccurrences(text, phrase)
	fmt.Printf("%q: %d occurrences\n", phrase, len(spans))
	for _, s := range spans {
		lo := s.Start - showContext
		if lo < 0 {
			lo = 0
		}
		hi := s.End + showContext
		if hi > len(text) {
			hi = len(text)
		}
		fmt.Printf("  [%d:%d] ...%s[%s]%s...\n",
			s.Start, s.End, text[lo:s.Start], text[s.Start:s.End], text[s.End:hi])
	}
}

func interactiveHighlight(text string) error {
	var mu sync.Mutex
	svc := highlight.NewService(highlight.DefaultInterval, func(u highlight.Update) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Printf("%q: %d occurrences\n", u.Phrase, u.Count)
	})

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		svc.Request(text, scanner.Text())
	}
	// Let the last debounced pass fire before exiting.
	time.Sleep(2 * highlight.DefaultInterval)
	return scanner.Err()
}
