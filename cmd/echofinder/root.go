package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"echofinder/internal/workspace"
)

var (
	verbose       bool
	quiet         bool
	workspaceFlag string

	// Computed once at startup. The semantic-similarity report is an
	// optional external subsystem; the core never depends on it.
	semanticAvailable bool
)

var rootCmd = &cobra.Command{
	Use:   "echofinder",
	Short: "Find repeated phrases (echoes) in narrative text",
	Long: `Echofinder detects repeated multi-word phrases in a manuscript and reports
them as a ranked list with exact text positions, suitable for highlighting
and revision work.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
		semanticAvailable = os.Getenv("ECHOFINDER_SEMANTIC_URL") != ""
		if !semanticAvailable {
			slog.Debug("semantic similarity subsystem unavailable; echo detection is unaffected")
		}
	},
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&workspaceFlag, "workspace", "", "workspace directory (default: ~/EchoFinder)")
}

func ensureWorkspace() (string, error) {
	if workspaceFlag != "" {
		return workspace.EnsureAt(workspaceFlag)
	}
	return workspace.EnsureDefault()
}
