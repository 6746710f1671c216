package engine

import (
	"github.com/tapecheck-dev/tapecheck/internal/config"
	"github.com/tapecheck-dev/tapecheck/internal/domain/facts"
	"github.com/tapecheck-dev/tapecheck/internal/domain/requirements"
	"github.com/tapecheck-dev/tapecheck/internal/domain/waivers"
	"github.com/tapecheck-dev/tapecheck/internal/report"
)

// CheckLint holds the lint findings for one check's waiver set.
type CheckLint struct {
	CheckID  string                `json:"check_id" yaml:"check_id"`
	Findings []waivers.LintFinding `json:"findings" yaml:"findings"`
}

// LintWaivers lints every check's waiver set against its actual
// violations: static defects (duplicate patterns, missing reasons) plus
// ambiguity, where two entries would match the same violation and list
// order silently decides. Checks whose artifacts cannot be read are
// linted statically only.
func LintWaivers(checklist *config.Checklist, baseDir string) ([]CheckLint, error) {
	builder := facts.NewBuilder()
	var lints []CheckLint

	for _, check := range checklist.Checks {
		set, err := check.CompileWaivers()
		if err != nil {
			return nil, err
		}

		findings := waivers.LintSet(set)

		if missing, ok := collectMissing(builder, check, baseDir); ok {
			composer := report.NewComposer(check.CompileTemplates())
			findings = append(findings, waivers.LintAmbiguity(missing, set, composer.Render)...)
		}

		if len(findings) > 0 {
			lints = append(lints, CheckLint{CheckID: check.ID, Findings: findings})
		}
	}
	return lints, nil
}

// collectMissing runs the build+match stages to obtain the check's
// violations. Returns ok=false when sources are unavailable; lint then
// degrades to the static checks instead of failing.
func collectMissing(builder *facts.Builder, check config.Check, baseDir string) ([]requirements.MatchResult, bool) {
	extractors, err := check.CompileExtractors()
	if err != nil {
		return nil, false
	}

	registry, _, err := builder.Build(check.CompileSources(baseDir), extractors)
	if err != nil {
		return nil, false
	}

	var missing []requirements.MatchResult
	for _, m := range requirements.Match(registry, check.CompileRequirements()) {
		if m.IsMissing() {
			missing = append(missing, m)
		}
	}
	return missing, true
}
