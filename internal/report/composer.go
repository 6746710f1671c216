package report

import (
	"fmt"

	"github.com/tapecheck-dev/tapecheck/internal/domain/facts"
	"github.com/tapecheck-dev/tapecheck/internal/domain/requirements"
	"github.com/tapecheck-dev/tapecheck/internal/domain/values"
	"github.com/tapecheck-dev/tapecheck/internal/domain/waivers"
)

// Composer renders classified items into the three report sections.
type Composer struct {
	templates Templates
}

// NewComposer creates a composer with the given message templates.
func NewComposer(t Templates) *Composer {
	return &Composer{templates: t}
}

// Render returns the full message for a missing item. The waiver
// resolver uses this as its fallback-match text, so what a waiver
// pattern sees is exactly what the report shows.
func (c *Composer) Render(m requirements.MatchResult) string {
	return c.templates.RenderMissing(m)
}

// Input carries everything the composer renders. In forced-pass mode
// Classified holds every violation (none resolved) and ForcedNotes the
// commentary strings from the waiver sentinel.
type Input struct {
	Results     []requirements.MatchResult
	Classified  []waivers.Classified
	Unused      []waivers.Entry
	Notes       []facts.Note
	ForcedPass  bool
	ForcedNotes []string
}

// Compose produces the INFO, ERROR and WARN sections.
//
// INFO: builder notes, passing items, waived items, and in forced-pass
// mode every violation re-tagged as informational plus the commentary.
// ERROR: unwaived violations. WARN: unused waivers.
func (c *Composer) Compose(in Input) Sections {
	var s Sections

	for _, note := range in.Notes {
		s.Info = append(s.Info, Item{
			Text: note.Message,
			File: note.Source,
			Line: NoLine,
		})
	}

	for _, m := range in.Results {
		if m.Outcome != values.OutcomeFound {
			continue
		}
		s.Info = append(s.Info, Item{
			Text: c.templates.RenderFound(m),
			File: m.File,
			Line: m.Line,
		})
	}

	for _, item := range in.Classified {
		switch {
		case in.ForcedPass:
			s.Info = append(s.Info, Item{
				Text: item.Message,
				File: item.Result.File,
				Line: item.Result.Line,
				Tag:  values.TagWaivedAsInfo,
			})
		case item.Waived:
			s.Info = append(s.Info, Item{
				Text: fmt.Sprintf("%s (waived: %s)", item.Message, item.Waiver.Reason),
				File: item.Result.File,
				Line: item.Result.Line,
				Tag:  values.TagWaiver,
			})
		default:
			s.Error = append(s.Error, Item{
				Text: item.Message,
				File: item.Result.File,
				Line: item.Result.Line,
			})
		}
	}

	if in.ForcedPass {
		for _, note := range in.ForcedNotes {
			s.Info = append(s.Info, Item{Text: note, Line: NoLine})
		}
	}

	for _, entry := range in.Unused {
		text := fmt.Sprintf("unused waiver: %s", entry.Name)
		if entry.Reason != "" {
			text = fmt.Sprintf("unused waiver: %s (%s)", entry.Name, entry.Reason)
		}
		s.Warn = append(s.Warn, Item{Text: text, Line: NoLine})
	}

	return s
}
