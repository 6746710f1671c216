package engine

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/tapecheck-dev/tapecheck/internal/config"
)

// CheckEnv defines the variables available during filter expression
// evaluation.
type CheckEnv struct {
	ID       string   `expr:"id"`
	Name     string   `expr:"name"`
	Severity string   `expr:"severity"`
	Tags     []string `expr:"tags"`
}

// CheckFilter selects which checks of a checklist run, based on IDs,
// tags, severities, or an advanced expression.
type CheckFilter struct {
	// Exclusive mode: only include specified checks
	exclusiveCheckIDs map[string]bool

	excludeTags       map[string]bool
	includeTags       map[string]bool
	includeSeverities map[string]bool

	filterProgram *vm.Program
}

// NewCheckFilter initializes a new empty filter (everything runs).
func NewCheckFilter() *CheckFilter {
	return &CheckFilter{
		exclusiveCheckIDs: make(map[string]bool),
		excludeTags:       make(map[string]bool),
		includeTags:       make(map[string]bool),
		includeSeverities: make(map[string]bool),
	}
}

// WithExclusiveChecks restricts the run to ONLY the specified check IDs.
// If set, all other filters are ignored.
func (f *CheckFilter) WithExclusiveChecks(ids []string) *CheckFilter {
	f.exclusiveCheckIDs = toSet(ids)
	return f
}

// WithExcludedTags excludes checks with any of these tags.
func (f *CheckFilter) WithExcludedTags(tags []string) *CheckFilter {
	f.excludeTags = toSet(tags)
	return f
}

// WithIncludedTags includes only checks with any of these tags.
func (f *CheckFilter) WithIncludedTags(tags []string) *CheckFilter {
	f.includeTags = toSet(tags)
	return f
}

// WithIncludedSeverities includes only checks with these severities.
func (f *CheckFilter) WithIncludedSeverities(severities []string) *CheckFilter {
	f.includeSeverities = make(map[string]bool, len(severities))
	for _, sev := range severities {
		f.includeSeverities[strings.ToLower(strings.TrimSpace(sev))] = true
	}
	return f
}

// WithFilterExpression applies a compiled expr program for advanced
// filtering.
func (f *CheckFilter) WithFilterExpression(program *vm.Program) *CheckFilter {
	f.filterProgram = program
	return f
}

// CompileFilterExpression compiles a filter expression against CheckEnv.
func CompileFilterExpression(expression string) (*vm.Program, error) {
	program, err := expr.Compile(expression, expr.Env(CheckEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression %q: %w", expression, err)
	}
	return program, nil
}

// ShouldRun evaluates whether a check matches the filter criteria.
// Returns true if the check should execute, with a reason when skipped.
func (f *CheckFilter) ShouldRun(check config.Check) (bool, string) {
	// Exclusive mode: ONLY specified checks run
	if len(f.exclusiveCheckIDs) > 0 {
		if f.exclusiveCheckIDs[check.ID] {
			return true, ""
		}
		return false, "not in selected check IDs"
	}

	for _, tag := range check.Tags {
		if f.excludeTags[tag] {
			return false, fmt.Sprintf("excluded by tag %q", tag)
		}
	}

	if len(f.includeTags) > 0 && !hasAnyTag(check.Tags, f.includeTags) {
		return false, "no matching include tag"
	}

	if len(f.includeSeverities) > 0 && !f.includeSeverities[strings.ToLower(check.Severity)] {
		return false, fmt.Sprintf("severity %q not selected", check.Severity)
	}

	if f.filterProgram != nil {
		env := CheckEnv{
			ID:       check.ID,
			Name:     check.Name,
			Severity: check.Severity,
			Tags:     check.Tags,
		}
		out, err := expr.Run(f.filterProgram, env)
		if err != nil {
			return false, fmt.Sprintf("filter expression failed: %v", err)
		}
		if keep, ok := out.(bool); ok && !keep {
			return false, "filter expression evaluated to false"
		}
	}

	return true, ""
}

func hasAnyTag(tags []string, want map[string]bool) bool {
	for _, tag := range tags {
		if want[tag] {
			return true
		}
	}
	return false
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[strings.TrimSpace(item)] = true
	}
	return set
}
