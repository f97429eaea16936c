package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"echofinder/internal/echo"
	"echofinder/internal/engine"
	"echofinder/internal/ingest"
	"echofinder/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report <file>",
	Short: "Analyze a manuscript and write a colorized HTML report",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

var reportOutput string

func init() {
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "output HTML path (default: <input>.echoes.html)")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	root, err := ensureWorkspace()
	if err != nil {
		return fmt.Errorf("workspace: %w", err)
	}

	cfg, err := loadRunConfig(cmd, root)
	if err != nil {
		return err
	}

	parsed, err := ingest.ParseFile(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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
		slog.Debug("progress", "percent", percent, "stage", stage, "detail", detail)
	})
	if err != nil {
		return err
	}

	outPath := reportOutput
	if outPath == "" {
		outPath = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".echoes.html"
	}
	if err := report.SaveHTML(outPath, parsed.Title, parsed.Text, out.Results); err != nil {
		return err
	}
	fmt.Printf("%s: %d echoes, report written to %s\n", parsed.Title, len(out.Results), outPath)
	return nil
}
