package facts

import (
	"fmt"
	"strings"
)

// Note records a non-fatal observation made while building the registry,
// surfaced later in the report's INFO section.
type Note struct {
	Source  string
	Message string
}

// MissingSourcesError indicates every declared source for a check was
// absent. That is a configuration problem, reported distinctly from
// "violations found".
type MissingSourcesError struct {
	Paths []string
}

func (e *MissingSourcesError) Error() string {
	return fmt.Sprintf("no readable sources: all %d declared artifacts are absent (%s)",
		len(e.Paths), strings.Join(e.Paths, ", "))
}

// Builder constructs the fact registry for one evaluation run.
// It holds no state between runs.
type Builder struct{}

// NewBuilder creates a registry builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build scans each source once, line by line, in the order given.
// Sources are supplied in ascending priority order: facts from a later
// source unconditionally overwrite same-key facts from an earlier one.
//
// Per line, the first matching extractor wins. Scalar facts from the same
// source take the last occurrence in the file; list facts accumulate all
// occurrences within one source and replace the whole list when a later
// source redefines the same list key.
//
// A missing optional source contributes zero facts and a Note. A missing
// required source, or an unreadable source, is a hard error. If every
// source is absent the run fails with MissingSourcesError.
func (b *Builder) Build(sources []Source, extractors []Extractor) (*Registry, []Note, error) {
	registry := NewRegistry()
	var notes []Note

	anyPresent := false
	var allPaths []string

	for _, src := range sources {
		allPaths = append(allPaths, src.Path())

		lines, present, err := src.Lines()
		if err != nil {
			return nil, nil, err
		}
		if !present {
			if src.Required() {
				return nil, nil, fmt.Errorf("required source %s is absent: %s", src.Label(), src.Path())
			}
			notes = append(notes, Note{
				Source:  src.Label(),
				Message: fmt.Sprintf("optional source not found, skipped: %s", src.Path()),
			})
			continue
		}
		anyPresent = true

		b.scanSource(registry, src, lines, extractors)
	}

	if !anyPresent && len(sources) > 0 {
		return nil, nil, &MissingSourcesError{Paths: allPaths}
	}

	return registry, notes, nil
}

// scanSource extracts all facts from one source and merges them into the
// registry with overwrite semantics.
func (b *Builder) scanSource(registry *Registry, src Source, lines []string, extractors []Extractor) {
	// List facts are staged per source so that a later source replaces a
	// list wholesale instead of appending to it.
	type listState struct {
		items []string
		file  string
		line  int // line of first occurrence
	}
	lists := make(map[string]*listState)
	var listOrder []string

	for i, line := range lines {
		for _, ex := range extractors {
			key, raw, ok := ex.Match(line)
			if !ok {
				continue
			}
			value := CleanValue(raw)

			if ex.IsList() {
				st, exists := lists[key]
				if !exists {
					st = &listState{file: src.Path(), line: i + 1}
					lists[key] = st
					listOrder = append(listOrder, key)
				}
				st.items = append(st.items, value)
			} else {
				registry.Put(Entry{
					Key:    key,
					Value:  ScalarValue(value),
					Source: src.Label(),
					File:   src.Path(),
					Line:   i + 1,
				})
			}
			break // first matching extractor decides the line
		}
	}

	for _, key := range listOrder {
		st := lists[key]
		registry.Put(Entry{
			Key:    key,
			Value:  ListValue(st.items),
			Source: src.Label(),
			File:   st.file,
			Line:   st.line,
		})
	}
}
