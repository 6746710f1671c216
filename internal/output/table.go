package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tapecheck-dev/tapecheck/internal/domain/values"
	"github.com/tapecheck-dev/tapecheck/internal/engine"
	"github.com/tapecheck-dev/tapecheck/internal/report"
)

// TableFormatter formats run results as a human-readable table.
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// Format writes the run result as a table.
func (f *TableFormatter) Format(result *engine.RunResult) error {
	fmt.Fprintf(f.writer, "Checklist: %s (v%s)\n", result.ChecklistName, result.ChecklistVersion)
	fmt.Fprintf(f.writer, "Run:       %s\n", result.RunID)
	fmt.Fprintf(f.writer, "Executed:  %s\n", result.StartTime.Format(time.RFC3339))
	fmt.Fprintf(f.writer, "Duration:  %s\n", result.Duration.Round(time.Millisecond))
	fmt.Fprintln(f.writer)

	if len(result.Checks) == 0 {
		fmt.Fprintln(f.writer, "No checks executed.")
		return nil
	}

	fmt.Fprintln(f.writer, "Checks:")
	fmt.Fprintln(f.writer, strings.Repeat("─", 80))

	for _, check := range result.Checks {
		f.formatCheck(check)
	}

	fmt.Fprintln(f.writer, strings.Repeat("─", 80))
	fmt.Fprintln(f.writer)

	f.formatSummary(result.Summary)
	return nil
}

// formatCheck formats a single check report.
func (f *TableFormatter) formatCheck(check engine.CheckResult) {
	fmt.Fprintf(f.writer, "%s %s: %s\n", f.statusSymbol(check.Status), check.ID, check.Name)

	if check.Severity != "" {
		fmt.Fprintf(f.writer, "  Severity: %s\n", check.Severity)
	}
	if len(check.Tags) > 0 {
		fmt.Fprintf(f.writer, "  Tags: %s\n", strings.Join(check.Tags, ", "))
	}

	fmt.Fprintf(f.writer, "  Status: %s (%s)\n", strings.ToUpper(string(check.Status)), check.Reason)

	f.formatSection("INFO", check.Sections.Info)
	f.formatSection("ERROR", check.Sections.Error)
	f.formatSection("WARN", check.Sections.Warn)

	fmt.Fprintf(f.writer, "  Duration: %s\n", check.Duration.Round(time.Millisecond))
	fmt.Fprintln(f.writer)
}

// formatSection renders one labeled section with its derived count.
func (f *TableFormatter) formatSection(label string, items []report.Item) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(f.writer, "  %s (%d):\n", label, len(items))
	for _, item := range items {
		fmt.Fprintf(f.writer, "    %s  [%s:%s]", item.Text, displayFile(item.File), displayLine(item.Line))
		if item.Tag != values.TagNone {
			fmt.Fprintf(f.writer, " %s", item.Tag)
		}
		fmt.Fprintln(f.writer)
	}
}

// formatSummary formats the summary statistics.
func (f *TableFormatter) formatSummary(summary engine.RunSummary) {
	fmt.Fprintln(f.writer, "Summary:")
	fmt.Fprintln(f.writer, strings.Repeat("─", 80))

	fmt.Fprintf(f.writer, "Checks:       %d total\n", summary.TotalChecks)
	fmt.Fprintf(f.writer, "  ✓ Passed:   %d\n", summary.PassedChecks)
	fmt.Fprintf(f.writer, "  ✗ Failed:   %d\n", summary.FailedChecks)
	fmt.Fprintln(f.writer)

	fmt.Fprintf(f.writer, "Violations:   %d total\n", summary.TotalViolations)
	fmt.Fprintf(f.writer, "  ◦ Waived:   %d\n", summary.WaivedViolations)
	fmt.Fprintf(f.writer, "  ✗ Unwaived: %d\n", summary.UnwaivedViolations)
	fmt.Fprintf(f.writer, "  ⚠ Unused waivers: %d\n", summary.UnusedWaivers)

	fmt.Fprintln(f.writer, strings.Repeat("─", 80))
}

// statusSymbol returns a symbol for the given status.
func (f *TableFormatter) statusSymbol(status values.Status) string {
	switch status {
	case values.StatusPass:
		return "✓"
	case values.StatusFail:
		return "✗"
	default:
		return "?"
	}
}

// displayFile renders a provenance file, "-" when not applicable.
func displayFile(file string) string {
	if file == "" {
		return "-"
	}
	return file
}

// displayLine renders a provenance line, "-" for the sentinel.
func displayLine(line int) string {
	if line < 1 {
		return "-"
	}
	return fmt.Sprintf("%d", line)
}
