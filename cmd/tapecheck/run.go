package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tapecheck-dev/tapecheck/internal/config"
	"github.com/tapecheck-dev/tapecheck/internal/engine"
	"github.com/tapecheck-dev/tapecheck/internal/output"
	"github.com/tapecheck-dev/tapecheck/internal/version"
)

var (
	format            string
	outFile           string
	baseDir           string
	workers           int
	includeTags       []string
	includeSeverities []string
	includeCheckIDs   []string
	excludeTags       []string
	filterExpr        string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <checklist.yaml>",
	Short: "Evaluate verification artifacts against a checklist",
	Long: `Load a checklist document and evaluate each declared check against
its artifact sources.

Filtering:
  Use flags to select specific checks to run.
  --tags clock,power            Run checks with 'clock' OR 'power' tags
  --severity critical,high      Run checks with 'critical' OR 'high' severity
  --check clock-gating          Run specific checks (exclusive)
  --exclude-tags slow           Exclude checks with 'slow' tag
  --filter "severity == 'high'" Advanced filtering expression`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAction(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&format, "format", "table", "Output format: table, json, yaml, junit, sarif")
	runCmd.Flags().StringVarP(&outFile, "output", "o", "", "Output file path (default: stdout)")
	runCmd.Flags().StringVar(&baseDir, "base-dir", "", "Directory artifact paths resolve against (default: checklist directory)")
	runCmd.Flags().IntVar(&workers, "workers", 0, "Parallel check workers (default: number of CPUs)")

	// Filtering flags
	runCmd.Flags().StringSliceVar(&includeTags, "tags", nil, "Run checks with these tags (comma-separated)")
	runCmd.Flags().StringSliceVar(&includeSeverities, "severity", nil, "Run checks with these severities (comma-separated)")
	runCmd.Flags().StringSliceVar(&includeCheckIDs, "check", nil, "Run specific checks by ID (exclusive, comma-separated)")
	runCmd.Flags().StringSliceVar(&excludeTags, "exclude-tags", nil, "Exclude checks with these tags (comma-separated)")
	runCmd.Flags().StringVar(&filterExpr, "filter", "", "Advanced filter expression (e.g. \"severity == 'critical'\")")
}

// runAction implements the core logic for the run command
func runAction(ctx context.Context, checklistPath string) error {
	slog.Info("loading checklist", "path", checklistPath)

	checklist, err := config.LoadChecklist(checklistPath)
	if err != nil {
		return fmt.Errorf("failed to load checklist: %w", err)
	}

	slog.Info("checklist loaded",
		"name", checklist.Metadata.Name,
		"version", checklist.Metadata.Version,
		"checks", len(checklist.Checks))

	if err := config.CheckEngineVersion(checklist.Metadata, version.Get().Version); err != nil {
		return err
	}

	filter := engine.NewCheckFilter().
		WithExclusiveChecks(includeCheckIDs).
		WithIncludedTags(includeTags).
		WithIncludedSeverities(includeSeverities).
		WithExcludedTags(excludeTags)

	if filterExpr != "" {
		program, err := engine.CompileFilterExpression(filterExpr)
		if err != nil {
			return err
		}
		filter.WithFilterExpression(program)
	}

	dir := baseDir
	if dir == "" {
		dir = filepath.Dir(checklistPath)
	}

	runner := engine.NewRunner(slog.Default())
	result, err := runner.Run(ctx, checklist, engine.RunnerConfig{
		BaseDir:       dir,
		Workers:       workers,
		Filter:        filter,
		EngineVersion: version.Get().Version,
	})
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	slog.Info("run complete",
		"duration", result.Duration,
		"total_checks", result.Summary.TotalChecks,
		"passed", result.Summary.PassedChecks,
		"failed", result.Summary.FailedChecks,
		"violations", result.Summary.TotalViolations,
		"waived", result.Summary.WaivedViolations)

	writer := os.Stdout
	if outFile != "" {
		//nolint:gosec // G304: User-controlled output file path is intentional
		file, err := os.Create(outFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			_ = file.Close() // Best-effort cleanup
		}()
		writer = file
		slog.Info("writing output", "file", outFile, "format", format)
	}

	formatter, err := output.NewFormatter(format, writer)
	if err != nil {
		return err
	}
	if err := formatter.Format(result); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	// Non-zero exit code when any check failed
	if result.Failed() {
		return fmt.Errorf("run failed: %d passed, %d failed",
			result.Summary.PassedChecks, result.Summary.FailedChecks)
	}
	return nil
}
