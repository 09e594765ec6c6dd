// Package main provides the entry point for the decruft CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/akx/decruft/internal/config"
	"github.com/akx/decruft/internal/filter"
	"github.com/akx/decruft/internal/purge"
	"github.com/akx/decruft/internal/report"
	"github.com/akx/decruft/internal/scanner"
	"github.com/akx/decruft/internal/ui"
)

const defaultMaxDepth = 3

// progressInterval is the cadence of plain-mode progress lines.
const progressInterval = 200 * time.Millisecond

// ErrConflictingFormats is returned when both --json and --report are
// given; one plain-mode run emits one format.
var ErrConflictingFormats = errors.New("--json and --report cannot be used together")

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decruft [dir]",
		Short: "Find and delete cruft directories",
		Long: `Decruft scans a directory tree for cruft: dependency trees, caches,
build output, temp and venv directories. It shows what it found in an
interactive list where entries can be filtered, sorted, and deleted.

With --plain (or when stdout is not a terminal) the interactive UI is
skipped and results are printed one per line.`,
		Args:          cobra.MaximumNArgs(1),
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRoot,
	}

	cmd.Flags().IntP("max-depth", "m", defaultMaxDepth, "Maximum directory depth to scan")
	cmd.Flags().BoolP("all", "a", false, "Start with all cruft types shown")
	cmd.Flags().Bool("plain", false, "Print results to stdout instead of running the interactive UI")
	cmd.Flags().Bool("progress", false, "Print scan progress to stderr in plain mode")
	cmd.Flags().Bool("json", false, "Emit a JSON document instead of text lines (implies --plain)")
	cmd.Flags().String("report", "", "Write a markdown report to the given file (implies --plain)")
	cmd.Flags().String("config", "", "Path to a JSON config file")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	slog.SetDefault(newLogger(verbose))

	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	absRoot, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", dir, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return fmt.Errorf("stat %s: %w", absRoot, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", absRoot)
	}

	configPath, _ := cmd.Flags().GetString("config")
	var cfg config.Config
	if path, ok := config.Resolve(absRoot, configPath); ok {
		if cfg, err = config.Load(path); err != nil {
			return err
		}
	}

	maxDepth, _ := cmd.Flags().GetInt("max-depth")
	if !cmd.Flags().Changed("max-depth") && cfg.Depth > 0 {
		maxDepth = cfg.Depth
	}
	if maxDepth < 1 {
		return fmt.Errorf("max depth must be >= 1, got %d", maxDepth)
	}

	allTypes, _ := cmd.Flags().GetBool("all")
	allTypes = allTypes || cfg.AllTypes

	jsonOut, _ := cmd.Flags().GetBool("json")
	reportPath, _ := cmd.Flags().GetString("report")
	if jsonOut && reportPath != "" {
		return ErrConflictingFormats
	}
	plain, _ := cmd.Flags().GetBool("plain")
	plain = plain || jsonOut || reportPath != "" || !stdoutIsTerminal()
	progress, _ := cmd.Flags().GetBool("progress")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	root, err := os.OpenRoot(absRoot)
	if err != nil {
		return fmt.Errorf("open %s: %w", absRoot, err)
	}
	defer func() { _ = root.Close() }()

	reg := scanner.NewRegistry()
	walker := &scanner.Walker{
		FS:         root.FS(),
		Root:       absRoot,
		MaxDepth:   maxDepth,
		Classifier: scanner.NewClassifier(root.FS(), cfg.Protected),
		Registry:   reg,
	}

	if plain {
		return runPlain(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), walker, reg, absRoot, progress, jsonOut, reportPath)
	}
	return runInteractive(ctx, walker, reg, root, absRoot, allTypes)
}

// runInteractive starts the walker on its own goroutine and hands the
// terminal to the session until the operator quits.
func runInteractive(ctx context.Context, walker *scanner.Walker, reg *scanner.Registry, root *os.Root, absRoot string, allTypes bool) error {
	go func() {
		if err := walker.Walk(ctx); err != nil {
			slog.Warn("scan aborted", "root", absRoot, "err", err)
		}
	}()

	cfg := filter.Config{Size: filter.SkipSmall}
	if allTypes {
		cfg.Type = filter.AllTypes
	}
	exec := purge.NewExecutor(root, absRoot, reg)

	m := ui.New(reg, exec, absRoot, cfg, filter.SizeDescending)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// runPlain walks to completion and writes the results to out, with
// optional scanned/found progress lines on errOut along the way.
func runPlain(ctx context.Context, out, errOut io.Writer, walker *scanner.Walker, reg *scanner.Registry, absRoot string, progress, jsonOut bool, reportPath string) error {
	done := make(chan struct{})
	if progress {
		go func() {
			ticker := time.NewTicker(progressInterval)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					fmt.Fprintf(errOut, "scanned=%d found=%d\n", reg.Scanned(), reg.Len())
				}
			}
		}()
	}

	err := walker.Walk(ctx)
	close(done)
	if err != nil {
		return fmt.Errorf("scan %s: %w", absRoot, err)
	}
	if progress {
		fmt.Fprintf(errOut, "scanned=%d found=%d\n", reg.Scanned(), reg.Len())
	}

	res := report.Result{
		Root:     absRoot,
		Scanned:  reg.Scanned(),
		Warnings: reg.Warnings(),
		Entries:  reg.Snapshot(),
	}

	var w report.Writer = report.NewPlainWriter(out)
	if jsonOut {
		w = report.NewJSONWriter(out)
	}
	if err := w.Write(res); err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	if reportPath != "" {
		if err := writeMarkdownReport(reportPath, res); err != nil {
			return err
		}
	}
	return nil
}

func writeMarkdownReport(path string, res report.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report %s: %w", path, err)
	}
	if err := report.NewMarkdownWriter(f).Write(res); err != nil {
		_ = f.Close()
		return fmt.Errorf("write report %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close report %s: %w", path, err)
	}
	return nil
}

func stdoutIsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// newLogger builds the process logger: warnings only by default, debug
// detail under --verbose. Diagnostics go to stderr so plain-mode stdout
// stays clean.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
