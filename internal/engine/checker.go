package engine

import (
	"time"

	"github.com/tapecheck-dev/tapecheck/internal/config"
	"github.com/tapecheck-dev/tapecheck/internal/domain/facts"
	"github.com/tapecheck-dev/tapecheck/internal/domain/requirements"
	"github.com/tapecheck-dev/tapecheck/internal/domain/services"
	"github.com/tapecheck-dev/tapecheck/internal/domain/waivers"
	"github.com/tapecheck-dev/tapecheck/internal/report"
)

// Checker runs one check end to end: text → registry → match result →
// waiver result → status → report. Each stage consumes the previous
// stage's immutable output; the Checker itself holds no per-run state
// and is safe to reuse across runs.
type Checker struct {
	builder    *facts.Builder
	resolver   *waivers.Resolver
	aggregator *services.StatusAggregator
}

// NewChecker composes the pipeline.
func NewChecker() *Checker {
	return &Checker{
		builder:    facts.NewBuilder(),
		resolver:   waivers.NewResolver(),
		aggregator: services.NewStatusAggregator(),
	}
}

// Run evaluates one check. baseDir resolves relative artifact paths.
// Configuration problems (uncompilable patterns, missing required
// sources) return an error; violations are a report, not an error.
func (c *Checker) Run(spec config.Check, baseDir string) (CheckResult, error) {
	start := time.Now()

	shape, err := spec.CompileShape()
	if err != nil {
		return CheckResult{}, err
	}
	extractors, err := spec.CompileExtractors()
	if err != nil {
		return CheckResult{}, err
	}
	waiverSet, err := spec.CompileWaivers()
	if err != nil {
		return CheckResult{}, err
	}
	sources := spec.CompileSources(baseDir)
	reqs := spec.CompileRequirements()
	composer := report.NewComposer(spec.CompileTemplates())

	registry, notes, err := c.builder.Build(sources, extractors)
	if err != nil {
		return CheckResult{}, err
	}

	results := requirements.Match(registry, reqs)

	var missing []requirements.MatchResult
	for _, m := range results {
		if m.IsMissing() {
			missing = append(missing, m)
		}
	}

	// Forced-pass mode never evaluates waiver text against violations:
	// every violation stays unresolved and the composer re-tags it as
	// informational.
	var (
		classified []waivers.Classified
		unused     []waivers.Entry
	)
	if waiverSet.ForcedPass {
		for _, m := range missing {
			classified = append(classified, waivers.Classified{Result: m, Message: composer.Render(m)})
		}
	} else {
		classified, unused = c.resolver.Resolve(missing, waiverSet, composer.Render)
	}

	waivable := !waiverSet.IsEmpty() && !waiverSet.ForcedPass
	status, reason := c.aggregator.Aggregate(classified, shape, waivable, waiverSet.ForcedPass)

	sections := composer.Compose(report.Input{
		Results:     results,
		Classified:  classified,
		Unused:      unused,
		Notes:       notes,
		ForcedPass:  waiverSet.ForcedPass,
		ForcedNotes: waiverSet.Notes,
	})

	return CheckResult{
		ID:          spec.ID,
		Name:        spec.Name,
		Description: spec.Description,
		Severity:    spec.Severity,
		Tags:        spec.Tags,
		Status:      status,
		Reason:      reason,
		Sections:    sections,
		Counts:      sections.Counts(),
		Duration:    time.Since(start),
	}, nil
}
