package engine

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/tapecheck-dev/tapecheck/internal/config"
	"golang.org/x/sync/errgroup"
)

// RunnerConfig controls checklist execution.
type RunnerConfig struct {
	// BaseDir resolves relative artifact paths (usually the checklist
	// document's directory).
	BaseDir string
	// Workers bounds parallel check execution. Zero means NumCPU.
	Workers int
	// Filter selects which checks run. Nil runs everything.
	Filter *CheckFilter
	// EngineVersion stamps the run result.
	EngineVersion string
}

// Runner executes all checks of a checklist. Checks are independent by
// construction (the engine holds no shared mutable state between runs),
// so they execute in parallel; results are re-ordered by definition
// index for deterministic output.
type Runner struct {
	checker *Checker
	logger  *slog.Logger
}

// NewRunner creates a checklist runner.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		checker: NewChecker(),
		logger:  logger,
	}
}

// Run executes the checklist and returns the finalized run result.
// A configuration error in any check (uncompilable pattern, missing
// required source) aborts the whole run; a failing check does not.
func (r *Runner) Run(ctx context.Context, checklist *config.Checklist, cfg RunnerConfig) (*RunResult, error) {
	filter := cfg.Filter
	if filter == nil {
		filter = NewCheckFilter()
	}

	var selected []config.Check
	for _, check := range checklist.Checks {
		run, skipReason := filter.ShouldRun(check)
		if !run {
			r.logger.Debug("check filtered out", "check", check.ID, "reason", skipReason)
			continue
		}
		selected = append(selected, check)
	}

	result := NewRunResult(checklist.Metadata.Name, checklist.Metadata.Version)
	result.TapecheckVersion = cfg.EngineVersion

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	// Each goroutine writes only its own slot; index order is the
	// definition order, so no re-sorting is needed afterwards.
	slots := make([]CheckResult, len(selected))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for i, check := range selected {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			r.logger.Debug("running check", "check", check.ID)
			checkResult, err := r.checker.Run(check, cfg.BaseDir)
			if err != nil {
				return fmt.Errorf("check %s: %w", check.ID, err)
			}
			checkResult.Index = i
			slots[i] = checkResult

			r.logger.Info("check finished",
				"check", check.ID,
				"status", checkResult.Status,
				"reason", checkResult.Reason,
			)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	result.Checks = slots
	result.Finalize()
	return result, nil
}
