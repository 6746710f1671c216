package config

import (
	"path/filepath"

	"github.com/tapecheck-dev/tapecheck/internal/domain/facts"
	"github.com/tapecheck-dev/tapecheck/internal/domain/requirements"
	"github.com/tapecheck-dev/tapecheck/internal/domain/values"
	"github.com/tapecheck-dev/tapecheck/internal/domain/waivers"
	"github.com/tapecheck-dev/tapecheck/internal/report"
)

// CompileShape parses the check's shape declaration.
func (c *Check) CompileShape() (values.Shape, error) {
	return values.NewShape(c.Shape)
}

// CompileSources builds the ordered source list. Relative artifact paths
// resolve against baseDir (the checklist document's directory), so a
// checklist can ship next to the artifacts it verifies.
func (c *Check) CompileSources(baseDir string) []facts.Source {
	sources := make([]facts.Source, 0, len(c.Sources))
	for _, s := range c.Sources {
		path := s.Path
		if baseDir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		sources = append(sources, facts.FileSource{
			SourceLabel: s.Label,
			FilePath:    path,
			Must:        s.Required,
		})
	}
	return sources
}

// CompileExtractors compiles the check's extraction patterns. A pattern
// that does not compile is fatal, reported with the pattern text.
func (c *Check) CompileExtractors() ([]facts.Extractor, error) {
	extractors := make([]facts.Extractor, 0, len(c.Extractors))
	for _, e := range c.Extractors {
		var (
			ex  facts.Extractor
			err error
		)
		if e.ListKey != "" {
			ex, err = facts.NewListExtractor(e.Name, e.Pattern, e.ListKey, e.ValueGroup)
		} else {
			ex, err = facts.NewExtractor(e.Name, e.Pattern, e.KeyGroup, e.ValueGroup)
		}
		if err != nil {
			return nil, err
		}
		extractors = append(extractors, ex)
	}
	return extractors, nil
}

// CompileRequirements converts the document requirement items into the
// domain sum type.
func (c *Check) CompileRequirements() []requirements.Requirement {
	reqs := make([]requirements.Requirement, 0, len(c.Requirements))
	for _, r := range c.Requirements {
		switch {
		case r.Bare:
			reqs = append(reqs, requirements.Existence(r.Key))
		case len(r.WantList) > 0:
			reqs = append(reqs, requirements.StatusList(r.Key, r.WantList))
		default:
			reqs = append(reqs, requirements.StatusScalar(r.Key, r.Want))
		}
	}
	return reqs
}

// CompileWaivers builds the waiver set. Waiver patterns that do not
// compile are fatal, reported with the pattern text.
func (c *Check) CompileWaivers() (waivers.Set, error) {
	if c.Waivers == nil {
		return waivers.Set{}, nil
	}
	if c.Waivers.ForcedPass() {
		return waivers.ForcedPassSet(c.Waivers.Notes), nil
	}

	set := waivers.Set{}
	for _, e := range c.Waivers.Entries {
		entry, err := waivers.NewEntry(e.Name, e.Reason)
		if err != nil {
			return waivers.Set{}, err
		}
		set.Entries = append(set.Entries, entry)
	}
	return set, nil
}

// CompileTemplates returns the check's message templates, defaulted
// where the document leaves them out.
func (c *Check) CompileTemplates() report.Templates {
	if c.Messages == nil {
		return report.DefaultTemplates()
	}
	return report.Templates{
		Found:   c.Messages.Found,
		Missing: c.Messages.Missing,
		Absent:  c.Messages.Absent,
	}
}
