package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// LoadChecklist loads, parses and validates a checklist document.
// All configuration-shape errors surface here, before any artifact
// file is opened.
func LoadChecklist(path string) (*Checklist, error) {
	// Security: Use os.OpenRoot to prevent path traversal attacks
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open checklist directory: %w", err)
	}
	defer func() {
		_ = root.Close() // Best-effort cleanup
	}()

	file, err := root.Open(base)
	if err != nil {
		return nil, fmt.Errorf("failed to open checklist: %w", err)
	}
	defer func() {
		_ = file.Close() // Best-effort cleanup
	}()

	return LoadChecklistFromReader(file)
}

// LoadChecklistFromReader loads a checklist from an io.Reader.
// Useful for testing with in-memory YAML data.
func LoadChecklistFromReader(r io.Reader) (*Checklist, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read checklist: %w", err)
	}

	// Schema validation runs first so shape errors (a requirement that is
	// neither a string nor a single-key mapping, a waiver entry without a
	// name) are reported against the document, not the Go structs.
	if err := ValidateSchema(raw); err != nil {
		return nil, err
	}

	var checklist Checklist
	if err := yaml.Unmarshal(raw, &checklist); err != nil {
		return nil, fmt.Errorf("failed to decode checklist YAML: %w", err)
	}

	if err := Validate(&checklist); err != nil {
		return nil, err
	}

	return &checklist, nil
}
