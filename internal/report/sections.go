// Package report renders classified evaluation results into the labeled
// section model consumed by report writers. Rendering is pure: nothing
// here can change a status computed by the aggregator.
package report

import "github.com/tapecheck-dev/tapecheck/internal/domain/values"

// NoLine is the line sentinel for items without a source line
// (unused waivers, builder notes). Formatters render it as "-".
const NoLine = -1

// Item is one rendered report line with provenance and an optional tag.
type Item struct {
	Text string     `json:"text" yaml:"text"`
	File string     `json:"file,omitempty" yaml:"file,omitempty"`
	Line int        `json:"line" yaml:"line"`
	Tag  values.Tag `json:"tag,omitempty" yaml:"tag,omitempty"`
}

// Sections are the three ordered item lists of one check report.
type Sections struct {
	Info  []Item `json:"info" yaml:"info"`
	Error []Item `json:"error" yaml:"error"`
	Warn  []Item `json:"warn" yaml:"warn"`
}

// Counts holds per-section occurrence counts.
type Counts struct {
	Info  int `json:"info" yaml:"info"`
	Error int `json:"error" yaml:"error"`
	Warn  int `json:"warn" yaml:"warn"`
}

// Counts derives occurrence counts from the section slices. Derived, not
// tracked, so a count can never drift from the list it summarizes.
func (s Sections) Counts() Counts {
	return Counts{Info: len(s.Info), Error: len(s.Error), Warn: len(s.Warn)}
}
