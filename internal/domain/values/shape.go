package values

import (
	"fmt"
	"strings"
)

// Shape identifies how a check derives its verdict from requirements.
//
// A boolean check has no requirement patterns of its own: it passes when
// every probe it declares is satisfied. A pattern check carries an explicit
// requirement list. Whether waivers apply is a property of the check's
// waiver configuration, not of the shape, so the aggregator dispatches on
// the (shape, waivable, forced-pass) triple.
type Shape string

const (
	// ShapeBoolean is a presence-style check without expected values
	ShapeBoolean Shape = "boolean"
	// ShapePattern is a check with an explicit requirement list
	ShapePattern Shape = "pattern"
)

// NewShape parses a shape from its configuration spelling.
func NewShape(s string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "boolean":
		return ShapeBoolean, nil
	case "pattern", "":
		// Pattern is the default: most checks carry requirement lists.
		return ShapePattern, nil
	default:
		return "", fmt.Errorf("invalid check shape: %q (must be boolean or pattern)", s)
	}
}

// Validate returns an error if the shape value is invalid
func (s Shape) Validate() error {
	switch s {
	case ShapeBoolean, ShapePattern:
		return nil
	default:
		return fmt.Errorf("invalid check shape: %s", s)
	}
}
