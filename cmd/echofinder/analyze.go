package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"echofinder/internal/config"
	"echofinder/internal/db"
	"echofinder/internal/echo"
	"echofinder/internal/engine"
	"echofinder/internal/ingest"
	"echofinder/internal/pipeline"
	"echofinder/internal/report"
	"echofinder/internal/workspace"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>...",
	Short: "Detect repeated phrases in one or more manuscripts",
	Long: `Analyze tokenizes each manuscript, counts every phrase between the minimum
and maximum word lengths, keeps phrases occurring at least twice, resolves
overlaps under the chosen policy, and prints the ranked echo list. The run
is saved as a project record and recorded in the workspace run history.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

var (
	minWords    int
	maxWords    int
	noStrip     bool
	policyFlag  string
	presetFlag  string
	whitelist   []string
	workersFlag int
	htmlReport  bool
)

func init() {
	defaults := config.Default()

	analyzeCmd.Flags().IntVar(&minWords, "min-words", defaults.MinWords, "minimum phrase length in words")
	analyzeCmd.Flags().IntVar(&maxWords, "max-words", defaults.MaxWords, "maximum phrase length in words")
	analyzeCmd.Flags().BoolVar(&noStrip, "no-strip-punctuation", false, "keep punctuation attached to words")
	analyzeCmd.Flags().StringVar(&policyFlag, "policy", defaults.Policy, "overlap policy: maximal_substring or non_overlapping")
	analyzeCmd.Flags().StringVar(&presetFlag, "preset", defaults.Preset, "sort preset: longest_first_by_word_count or most_repeated")
	analyzeCmd.Flags().StringSliceVar(&whitelist, "whitelist", nil, "extra whitelist entries (repeatable)")
	analyzeCmd.Flags().IntVarP(&workersFlag, "workers", "j", defaults.Workers, "max manuscripts analyzed concurrently (0 = CPU count)")
	analyzeCmd.Flags().BoolVar(&htmlReport, "report", false, "also write an HTML report per manuscript")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	root, err := ensureWorkspace()
	if err != nil {
		return fmt.Errorf("workspace: %w", err)
	}

	cfg, err := loadRunConfig(cmd, root)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var outMu sync.Mutex
	failures := pipeline.AnalyzeFiles(ctx, args, cfg.Workers, func(ctx context.Context, path string) error {
		text, err := analyzeOne(ctx, root, path, cfg)
		if err != nil {
			return err
		}
		outMu.Lock()
		defer outMu.Unlock()
		fmt.Print(text)
		return nil
	})

	for _, f := range failures {
		slog.Error("analysis failed", "error", f)
	}
	if len(failures) > 0 {
		return fmt.Errorf("%d of %d manuscripts failed", len(failures), len(args))
	}
	return nil
}

// loadRunConfig layers command-line overrides on top of the workspace YAML
// config and validates the result.
func loadRunConfig(cmd *cobra.Command, workspaceRoot string) (config.Config, error) {
	cfg, err := config.Load(filepath.Join(workspaceRoot, "configs", "echofinder.yaml"))
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("min-words") {
		cfg.MinWords = minWords
	}
	if flags.Changed("max-words") {
		cfg.MaxWords = maxWords
	}
	if flags.Changed("no-strip-punctuation") {
		cfg.StripPunctuation = !noStrip
	}
	if flags.Changed("policy") {
		cfg.Policy = policyFlag
	}
	if flags.Changed("preset") {
		cfg.Preset = presetFlag
	}
	if flags.Changed("workers") {
		cfg.Workers = workersFlag
	}
	cfg.Whitelist = append(cfg.Whitelist, whitelist...)

	if err := config.Validate(cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func analyzeOne(ctx context.Context, workspaceRoot, path string, cfg config.Config) (string, error) {
	parsed, err := ingest.ParseFile(path)
	if err != nil {
		return "", err
	}

	in := engine.Input{
		Text:             parsed.Text,
		MinWords:         cfg.MinWords,
		MaxWords:         cfg.MaxWords,
		Whitelist:        cfg.Whitelist,
		StripPunctuation: cfg.StripPunctuation,
		Policy:           echo.Policy(cfg.Policy),
		Preset:           echo.Preset(cfg.Preset),
	}
	out, err := engine.Run(ctx, in, func(percent int, stage, detail string) {
		slog.Debug("progress", "manuscript", parsed.Title, "percent", percent, "stage", stage, "detail", detail)
	})
	if err != nil {
		return "", err
	}

	if err := saveRun(workspaceRoot, parsed, cfg, out); err != nil {
		return "", err
	}

	return formatResults(parsed.Title, out), nil
}

func saveRun(workspaceRoot string, parsed *ingest.Parsed, cfg config.Config, out *engine.Output) error {
	project := workspace.NewProject()
	project.ProjectName = parsed.Title
	project.OriginalText = parsed.Text
	project.MinPhraseWords = cfg.MinWords
	project.MaxPhraseWords = cfg.MaxWords
	project.StripPunctuation = cfg.StripPunctuation
	project.CustomWhitelist = cfg.Whitelist
	project.LastUsedSortPreset = cfg.Preset
	project.SelectionPolicy = cfg.Policy
	project.EchoResults = out.Results

	projectPath := workspace.ProjectPath(workspaceRoot, parsed.Title)
	if err := project.Save(projectPath); err != nil {
		return err
	}
	slog.Debug("project saved", "path", projectPath)

	rec := db.RunRecord{
		RunID:      out.RunID,
		Project:    parsed.Title,
		StartedAt:  time.Now().Format(time.RFC3339),
		DurationMs: out.Duration.Milliseconds(),
		WordCount:  out.TokenCount,
		EchoCount:  len(out.Results),
		Policy:     cfg.Policy,
		Preset:     cfg.Preset,
	}
	if err := db.SaveRun(filepath.Join(workspaceRoot, "analysis.db"), rec, out.Results); err != nil {
		return err
	}

	if htmlReport {
		reportPath := workspace.ReportPath(workspaceRoot, parsed.Title)
		if err := report.SaveHTML(reportPath, parsed.Title, parsed.Text, out.Results); err != nil {
			return err
		}
		slog.Info("report written", "path", reportPath)
	}
	return nil
}

func formatResults(title string, out *engine.Output) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d echoes (max feasible phrase length %d)\n",
		title, len(out.Results), out.MaxFeasibleWords)

	if len(out.Results) == 0 {
		return b.String()
	}

	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COUNT\tWORDS\tPHRASE\tFIRST SEEN")
	for _, r := range out.Results {
		first := ""
		if len(r.Occurrences) > 0 {
			first = fmt.Sprintf("@%d", r.Occurrences[0].Start)
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\n", r.Count, r.Words, r.Phrase, first)
	}
	tw.Flush()
	b.WriteString("\n")
	return b.String()
}
