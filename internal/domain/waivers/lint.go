package waivers

import (
	"fmt"

	"github.com/tapecheck-dev/tapecheck/internal/domain/requirements"
)

// LintFinding is one advisory defect in a waiver set. Findings never
// fail a run; list-order tie-breaking keeps resolution deterministic
// regardless.
type LintFinding struct {
	Pattern string `json:"pattern" yaml:"pattern"`
	Message string `json:"message" yaml:"message"`
}

// LintSet checks a waiver set for static defects: duplicate patterns and
// entries without a reason. Forced-pass sets carry commentary only and
// produce no findings.
func LintSet(set Set) []LintFinding {
	if set.ForcedPass {
		return nil
	}

	var findings []LintFinding
	seen := make(map[string]bool, len(set.Entries))
	for _, entry := range set.Entries {
		if seen[entry.Name] {
			findings = append(findings, LintFinding{
				Pattern: entry.Name,
				Message: "duplicate waiver pattern",
			})
		}
		seen[entry.Name] = true

		if entry.Reason == "" {
			findings = append(findings, LintFinding{
				Pattern: entry.Name,
				Message: "waiver entry has no reason",
			})
		}
	}
	return findings
}

// LintAmbiguity reports violations that more than one waiver entry would
// match. Resolution is still deterministic (first entry in list order
// wins), but overlapping patterns usually mean one of them is stale.
func LintAmbiguity(missing []requirements.MatchResult, set Set, render RenderFunc) []LintFinding {
	if set.ForcedPass || len(set.Entries) < 2 {
		return nil
	}

	var findings []LintFinding
	for _, item := range missing {
		message := render(item)
		var matched []string
		for _, entry := range set.Entries {
			if entry.Matches(item.Key()) || entry.Matches(message) {
				matched = append(matched, entry.Name)
			}
		}
		if len(matched) > 1 {
			for _, name := range matched[1:] {
				findings = append(findings, LintFinding{
					Pattern: name,
					Message: fmt.Sprintf("also matches violation %s, shadowed by %q", item.Key(), matched[0]),
				})
			}
		}
	}
	return findings
}
