// Package config loads and validates checklist documents: the YAML files
// that declare checks, their artifact sources, extraction patterns,
// requirements and waivers.
package config

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// Checklist is a parsed checklist document.
type Checklist struct {
	Metadata ChecklistMetadata `yaml:"checklist"`
	Checks   []Check           `yaml:"checks"`
}

// ChecklistMetadata describes the document itself.
type ChecklistMetadata struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description,omitempty"`
	// MinEngine is an optional semver constraint on the engine version,
	// e.g. ">= 0.3.0". Documents that need newer extractor semantics can
	// refuse to run on older binaries.
	MinEngine string `yaml:"min_engine,omitempty"`
}

// Check declares one checker instantiation: which artifacts to scan,
// how to extract facts from them, and what the facts must look like.
type Check struct {
	ID           string            `yaml:"id"`
	Name         string            `yaml:"name"`
	Description  string            `yaml:"description,omitempty"`
	Severity     string            `yaml:"severity,omitempty"`
	Tags         []string          `yaml:"tags,omitempty"`
	Shape        string            `yaml:"shape,omitempty"`
	Sources      []SourceSpec      `yaml:"sources"`
	Extractors   []ExtractorSpec   `yaml:"extractors"`
	Requirements []RequirementSpec `yaml:"requirements,omitempty"`
	Waivers      *WaiverSpec       `yaml:"waivers,omitempty"`
	Messages     *MessagesSpec     `yaml:"messages,omitempty"`
}

// SourceSpec declares one artifact source. Sources are listed in
// ascending priority order: facts from a later source overwrite facts
// from an earlier one ("the tool log wins over the intent script").
type SourceSpec struct {
	Label    string `yaml:"label"`
	Path     string `yaml:"path"`
	Required bool   `yaml:"required,omitempty"`
}

// ExtractorSpec declares one line extractor. Scalar extractors set
// key_group/value_group; list extractors set list_key and value_group.
type ExtractorSpec struct {
	Name       string `yaml:"name"`
	Pattern    string `yaml:"pattern"`
	KeyGroup   int    `yaml:"key_group,omitempty"`
	ValueGroup int    `yaml:"value_group,omitempty"`
	ListKey    string `yaml:"list_key,omitempty"`
}

// MessagesSpec overrides the per-check message templates.
type MessagesSpec struct {
	Found   string `yaml:"found,omitempty"`
	Missing string `yaml:"missing,omitempty"`
	Absent  string `yaml:"absent,omitempty"`
}

// WaiverSpec is the waiver block of one check. Three legal shapes:
// absent, the forced-pass sentinel (value: 0, notes are commentary), or
// a list of pattern/reason entries.
type WaiverSpec struct {
	Value   *int              `yaml:"value,omitempty"`
	Notes   []string          `yaml:"notes,omitempty"`
	Entries []WaiverEntrySpec `yaml:"entries,omitempty"`
}

// ForcedPass reports whether this block is the forced-pass sentinel.
func (w *WaiverSpec) ForcedPass() bool {
	return w != nil && w.Value != nil && *w.Value == 0
}

// WaiverEntrySpec is one declared waiver: a regex pattern and the
// approval rationale.
type WaiverEntrySpec struct {
	Name   string `yaml:"name"`
	Reason string `yaml:"reason"`
}

// RequirementSpec is one requirement item in its document form: a bare
// string (existence), or a single-key mapping whose value is a scalar
// (status) or a list of scalars (status list). Anything else is a
// configuration error, rejected before any artifact is parsed.
type RequirementSpec struct {
	Key      string
	Want     string
	WantList []string
	Bare     bool // true for the bare-identifier (existence) form
}

// UnmarshalYAML accepts the two document shapes of a requirement item.
func (r *RequirementSpec) UnmarshalYAML(data []byte) error {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case string:
		r.Key = v
		r.Bare = true
		return nil
	case map[string]interface{}:
		if len(v) != 1 {
			return fmt.Errorf("requirement mapping must have exactly one key, got %d", len(v))
		}
		for key, val := range v {
			r.Key = key
			switch value := val.(type) {
			case []interface{}:
				for _, item := range value {
					r.WantList = append(r.WantList, scalarString(item))
				}
			case nil:
				return fmt.Errorf("requirement %s: expected value cannot be null", key)
			default:
				r.Want = scalarString(value)
			}
		}
		return nil
	default:
		return fmt.Errorf("requirement entry must be a bare string or a single-key mapping, got %T", raw)
	}
}

// scalarString renders a YAML scalar (string, int, float, bool) as the
// comparison string the matcher will see.
func scalarString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
