package report

import (
	"strings"

	"github.com/tapecheck-dev/tapecheck/internal/domain/requirements"
)

// Templates is the per-check message template record. The engine stays
// free of domain text; each checker supplies its own phrasing here (or
// takes the defaults). Placeholders: {key}, {expected}, {actual}.
type Templates struct {
	Found   string `json:"found,omitempty" yaml:"found,omitempty"`
	Missing string `json:"missing,omitempty" yaml:"missing,omitempty"`
	Absent  string `json:"absent,omitempty" yaml:"absent,omitempty"`
}

// DefaultTemplates returns the engine's neutral phrasing.
func DefaultTemplates() Templates {
	return Templates{
		Found:   "{key} = {actual}",
		Missing: "{key}: expected {expected}, actual {actual}",
		Absent:  "{key}: not found",
	}
}

// withDefaults fills empty fields from the defaults, so checks can
// override just one message.
func (t Templates) withDefaults() Templates {
	def := DefaultTemplates()
	if t.Found == "" {
		t.Found = def.Found
	}
	if t.Missing == "" {
		t.Missing = def.Missing
	}
	if t.Absent == "" {
		t.Absent = def.Absent
	}
	return t
}

func expand(tmpl string, m requirements.MatchResult) string {
	return strings.NewReplacer(
		"{key}", m.Key(),
		"{expected}", m.Requirement.Expected(),
		"{actual}", m.Actual,
	).Replace(tmpl)
}

// RenderFound renders a satisfied requirement.
func (t Templates) RenderFound(m requirements.MatchResult) string {
	return expand(t.withDefaults().Found, m)
}

// RenderMissing renders a violation. Existence requirements use the
// Absent phrasing (there is no expected value to show); status
// requirements use the Missing phrasing, which covers both the
// wrong-value case and the absent case ("actual absent").
func (t Templates) RenderMissing(m requirements.MatchResult) string {
	tt := t.withDefaults()
	if m.Requirement.Kind == requirements.KindExistence {
		return expand(tt.Absent, m)
	}
	return expand(tt.Missing, m)
}
