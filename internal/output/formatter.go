// Package output provides formatters for tapecheck run results.
package output

import (
	"fmt"
	"io"

	"github.com/tapecheck-dev/tapecheck/internal/engine"
)

// Formatter renders a run result to a writer.
type Formatter interface {
	Format(result *engine.RunResult) error
}

// NewFormatter returns a formatter for the given format name.
func NewFormatter(format string, w io.Writer) (Formatter, error) {
	switch format {
	case "table":
		return NewTableFormatter(w), nil
	case "json":
		return NewJSONFormatter(w, true), nil
	case "yaml":
		return NewYAMLFormatter(w), nil
	case "junit":
		return NewJUnitFormatter(w), nil
	case "sarif":
		return NewSARIFFormatter(w), nil
	default:
		return nil, fmt.Errorf("unknown format: %s (supported: %v)", format, SupportedFormats())
	}
}

// SupportedFormats returns the available format names.
func SupportedFormats() []string {
	return []string{"table", "json", "yaml", "junit", "sarif"}
}
