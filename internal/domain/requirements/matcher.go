package requirements

import (
	"strings"

	"github.com/tapecheck-dev/tapecheck/internal/domain/facts"
	"github.com/tapecheck-dev/tapecheck/internal/domain/values"
)

// AbsentActual is the sentinel rendered as the actual value when the
// requirement's key is not in the registry at all.
const AbsentActual = "absent"

// NoLine is the provenance sentinel for results without a source line.
const NoLine = -1

// MatchResult classifies one requirement against the registry.
// Exactly one outcome per requirement.
type MatchResult struct {
	Requirement Requirement       `json:"requirement" yaml:"requirement"`
	Outcome     values.Outcome    `json:"outcome" yaml:"outcome"`
	Reason      values.MissReason `json:"reason,omitempty" yaml:"reason,omitempty"`
	Actual      string            `json:"actual" yaml:"actual"`
	Source      string            `json:"source,omitempty" yaml:"source,omitempty"`
	File        string            `json:"file,omitempty" yaml:"file,omitempty"`
	Line        int               `json:"line" yaml:"line"`
}

// Key returns the requirement's key.
func (m MatchResult) Key() string {
	return m.Requirement.Key
}

// IsMissing reports whether this result is a violation.
func (m MatchResult) IsMissing() bool {
	return m.Outcome == values.OutcomeMissing
}

// stateTokens are enable/disable-style values compared case-insensitively.
// Everything else (numbers, names, counts) compares exact.
var stateTokens = map[string]bool{
	"enabled":  true,
	"disabled": true,
	"enable":   true,
	"disable":  true,
	"on":       true,
	"off":      true,
	"true":     true,
	"false":    true,
	"yes":      true,
	"no":       true,
}

// valuesEqual compares an expected against an actual scalar. State
// tokens compare case-insensitively; values are stored raw and
// normalized here, at comparison time, so provenance keeps the original
// spelling for the report.
func valuesEqual(want, got string) bool {
	if want == got {
		return true
	}
	lw, lg := strings.ToLower(want), strings.ToLower(got)
	if stateTokens[lw] || stateTokens[lg] {
		return lw == lg
	}
	return false
}

// listsEqual compares two value lists as order-independent sets.
func listsEqual(want, got []string) bool {
	if len(want) != len(got) {
		return false
	}
	set := make(map[string]int, len(want))
	for _, w := range want {
		set[w]++
	}
	for _, g := range got {
		if set[g] == 0 {
			return false
		}
		set[g]--
	}
	return true
}

// Match compares each requirement against the registry. Results come
// back in requirement order, for stable reports. Pure function of its
// inputs.
func Match(registry *facts.Registry, reqs []Requirement) []MatchResult {
	results := make([]MatchResult, 0, len(reqs))
	for _, req := range reqs {
		results = append(results, matchOne(registry, req))
	}
	return results
}

func matchOne(registry *facts.Registry, req Requirement) MatchResult {
	entry, ok := registry.Get(req.Key)
	if !ok {
		return MatchResult{
			Requirement: req,
			Outcome:     values.OutcomeMissing,
			Reason:      values.MissAbsent,
			Actual:      AbsentActual,
			Line:        NoLine,
		}
	}

	result := MatchResult{
		Requirement: req,
		Actual:      entry.Value.String(),
		Source:      entry.Source,
		File:        entry.File,
		Line:        entry.Line,
	}

	var satisfied bool
	switch req.Kind {
	case KindExistence:
		satisfied = true
	case KindStatusScalar:
		satisfied = !entry.Value.IsList && valuesEqual(req.Want, entry.Value.Scalar)
	case KindStatusList:
		satisfied = entry.Value.IsList && listsEqual(req.WantList, entry.Value.List)
	}

	if satisfied {
		result.Outcome = values.OutcomeFound
	} else {
		result.Outcome = values.OutcomeMissing
		result.Reason = values.MissMismatch
	}
	return result
}
