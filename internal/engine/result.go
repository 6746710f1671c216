// Package engine wires the evaluation pipeline: registry builder,
// requirement matcher, waiver resolver, status aggregator and output
// composer, composed explicitly rather than inherited.
package engine

import (
	"time"

	"github.com/tapecheck-dev/tapecheck/internal/domain/values"
	"github.com/tapecheck-dev/tapecheck/internal/report"
)

// CheckResult is the terminal outcome of one check run. Produced once,
// never mutated afterwards.
type CheckResult struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Severity    string          `json:"severity,omitempty" yaml:"severity,omitempty"`
	Tags        []string        `json:"tags,omitempty" yaml:"tags,omitempty"`
	Status      values.Status   `json:"status" yaml:"status"`
	Reason      string          `json:"reason" yaml:"reason"`
	Sections    report.Sections `json:"sections" yaml:"sections"`
	Counts      report.Counts   `json:"counts" yaml:"counts"`
	Index       int             `json:"index" yaml:"index"`
	Duration    time.Duration   `json:"duration_ms" yaml:"duration_ms"`
}

// RunSummary aggregates totals across all check reports of one run.
// Every field is derived from the check results in Finalize; nothing is
// tracked independently.
type RunSummary struct {
	TotalChecks        int `json:"total_checks" yaml:"total_checks"`
	PassedChecks       int `json:"passed_checks" yaml:"passed_checks"`
	FailedChecks       int `json:"failed_checks" yaml:"failed_checks"`
	TotalViolations    int `json:"total_violations" yaml:"total_violations"`
	WaivedViolations   int `json:"waived_violations" yaml:"waived_violations"`
	UnwaivedViolations int `json:"unwaived_violations" yaml:"unwaived_violations"`
	UnusedWaivers      int `json:"unused_waivers" yaml:"unused_waivers"`
}

// RunResult is the complete result of running a checklist.
type RunResult struct {
	RunID             values.RunID  `json:"run_id" yaml:"run_id"`
	ChecklistName     string        `json:"checklist_name" yaml:"checklist_name"`
	ChecklistVersion  string        `json:"checklist_version" yaml:"checklist_version"`
	TapecheckVersion  string        `json:"tapecheck_version,omitempty" yaml:"tapecheck_version,omitempty"`
	StartTime         time.Time     `json:"start_time" yaml:"start_time"`
	EndTime           time.Time     `json:"end_time" yaml:"end_time"`
	Duration          time.Duration `json:"duration_ms" yaml:"duration_ms"`
	Checks            []CheckResult `json:"checks" yaml:"checks"`
	Summary           RunSummary    `json:"summary" yaml:"summary"`
}

// NewRunResult creates a run result for a checklist.
func NewRunResult(name, version string) *RunResult {
	return &RunResult{
		RunID:            values.NewRunID(),
		ChecklistName:    name,
		ChecklistVersion: version,
		StartTime:        time.Now(),
	}
}

// Failed reports whether any check failed.
func (r *RunResult) Failed() bool {
	return r.Summary.FailedChecks > 0
}

// Finalize stamps the end time and derives the summary from the check
// results.
func (r *RunResult) Finalize() {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
	r.calculateSummary()
}

func (r *RunResult) calculateSummary() {
	r.Summary = RunSummary{TotalChecks: len(r.Checks)}

	for _, check := range r.Checks {
		switch check.Status {
		case values.StatusPass:
			r.Summary.PassedChecks++
		case values.StatusFail:
			r.Summary.FailedChecks++
		}

		r.Summary.UnwaivedViolations += len(check.Sections.Error)
		for _, item := range check.Sections.Info {
			if item.Tag == values.TagWaiver || item.Tag == values.TagWaivedAsInfo {
				r.Summary.WaivedViolations++
			}
		}
		r.Summary.UnusedWaivers += len(check.Sections.Warn)
	}
	r.Summary.TotalViolations = r.Summary.WaivedViolations + r.Summary.UnwaivedViolations
}
