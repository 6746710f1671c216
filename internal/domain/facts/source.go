package facts

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Source supplies the lines of one verification artifact.
// Sources are handed to the Builder in ascending priority order.
type Source interface {
	// Label identifies the source in provenance and notes
	// (e.g. "intent-script", "tool-log").
	Label() string
	// Path is the artifact location used in provenance, or a display
	// name for in-memory sources.
	Path() string
	// Required reports whether absence of this source is a hard error.
	Required() bool
	// Lines returns the artifact's lines in file order.
	// A missing optional artifact returns (nil, false, nil): zero facts,
	// surfaced as an informational note by the Builder.
	Lines() (lines []string, present bool, err error)
}

// FileSource reads an artifact from the filesystem.
type FileSource struct {
	SourceLabel string
	FilePath    string
	Must        bool
}

// Label implements Source.
func (s FileSource) Label() string { return s.SourceLabel }

// Path implements Source.
func (s FileSource) Path() string { return s.FilePath }

// Required implements Source.
func (s FileSource) Required() bool { return s.Must }

// Lines reads the file line by line. A file that does not exist is not
// an error here; the Builder decides between "note" and "hard error"
// based on Required. A file that exists but cannot be opened (e.g.
// permissions) is always a hard error.
func (s FileSource) Lines() ([]string, bool, error) {
	f, err := os.Open(s.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cannot open source %s (%s): %w", s.SourceLabel, s.FilePath, err)
	}
	defer func() {
		_ = f.Close() // read-only, close error not actionable
	}()

	var lines []string
	scanner := bufio.NewScanner(f)
	// EDA logs can carry very long lines (net lists on one line).
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, true, fmt.Errorf("failed reading source %s (%s): %w", s.SourceLabel, s.FilePath, err)
	}
	return lines, true, nil
}

// StringSource is an in-memory source, used by tests and embedded inputs.
type StringSource struct {
	SourceLabel string
	Name        string
	Content     string
	Must        bool
}

// Label implements Source.
func (s StringSource) Label() string { return s.SourceLabel }

// Path implements Source.
func (s StringSource) Path() string { return s.Name }

// Required implements Source.
func (s StringSource) Required() bool { return s.Must }

// Lines implements Source.
func (s StringSource) Lines() ([]string, bool, error) {
	if s.Content == "" {
		return nil, true, nil
	}
	return strings.Split(strings.TrimSuffix(s.Content, "\n"), "\n"), true, nil
}
