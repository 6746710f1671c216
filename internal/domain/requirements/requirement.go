// Package requirements defines the requirement sum type and the matcher
// that compares a requirement set against the fact registry.
package requirements

import "fmt"

// Kind discriminates the three requirement forms.
type Kind string

const (
	// KindExistence requires a key to be present, value irrelevant
	KindExistence Kind = "existence"
	// KindStatusScalar requires a key to hold one expected scalar value
	KindStatusScalar Kind = "status"
	// KindStatusList requires a key to hold an expected set of values
	KindStatusList Kind = "status-list"
)

// Requirement is one item of a requirement set. Exactly one form is
// populated, selected by Kind, so the matcher can handle each case
// exhaustively without runtime type probing.
type Requirement struct {
	Kind     Kind     `json:"kind" yaml:"kind"`
	Key      string   `json:"key" yaml:"key"`
	Want     string   `json:"want,omitempty" yaml:"want,omitempty"`
	WantList []string `json:"want_list,omitempty" yaml:"want_list,omitempty"`
}

// Existence creates an existence requirement: the key must be present.
func Existence(key string) Requirement {
	return Requirement{Kind: KindExistence, Key: key}
}

// StatusScalar creates a status requirement: the key must hold want.
func StatusScalar(key, want string) Requirement {
	return Requirement{Kind: KindStatusScalar, Key: key, Want: want}
}

// StatusList creates a list requirement: the key must hold exactly the
// given values, order-independent.
func StatusList(key string, want []string) Requirement {
	return Requirement{Kind: KindStatusList, Key: key, WantList: want}
}

// Validate checks structural invariants of a single requirement.
func (r Requirement) Validate() error {
	if r.Key == "" {
		return fmt.Errorf("requirement key cannot be empty")
	}
	switch r.Kind {
	case KindExistence:
		return nil
	case KindStatusScalar:
		if r.Want == "" {
			return fmt.Errorf("requirement %s: status requirement needs an expected value", r.Key)
		}
		return nil
	case KindStatusList:
		if len(r.WantList) == 0 {
			return fmt.Errorf("requirement %s: list requirement needs at least one expected value", r.Key)
		}
		return nil
	default:
		return fmt.Errorf("requirement %s: invalid kind %q", r.Key, r.Kind)
	}
}

// Expected renders the expected value for display: empty for existence
// requirements, the scalar, or the joined list.
func (r Requirement) Expected() string {
	switch r.Kind {
	case KindStatusScalar:
		return r.Want
	case KindStatusList:
		out := ""
		for i, w := range r.WantList {
			if i > 0 {
				out += ", "
			}
			out += w
		}
		return out
	default:
		return ""
	}
}

// ValidateSet checks a whole requirement set: every item valid, keys
// unique. Duplicate keys across items are a caller error.
func ValidateSet(reqs []Requirement) error {
	seen := make(map[string]bool, len(reqs))
	for i, r := range reqs {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("requirement %d: %w", i, err)
		}
		if seen[r.Key] {
			return fmt.Errorf("duplicate requirement key: %s", r.Key)
		}
		seen[r.Key] = true
	}
	return nil
}
