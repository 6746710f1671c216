package values

import "fmt"

// Outcome classifies a single requirement against the fact registry.
type Outcome string

const (
	// OutcomeFound indicates the requirement was satisfied
	OutcomeFound Outcome = "found"
	// OutcomeMissing indicates the requirement was not satisfied
	OutcomeMissing Outcome = "missing"
)

// Validate returns an error if the outcome value is invalid
func (o Outcome) Validate() error {
	switch o {
	case OutcomeFound, OutcomeMissing:
		return nil
	default:
		return fmt.Errorf("invalid outcome: %s", o)
	}
}

// MissReason distinguishes the two ways a requirement can be missing.
// Reports must be able to tell "key never appeared" from "key appeared
// with the wrong value".
type MissReason string

const (
	// MissNone applies to found results
	MissNone MissReason = ""
	// MissAbsent means the key was not in the registry at all
	MissAbsent MissReason = "absent"
	// MissMismatch means the key was present but held the wrong value
	MissMismatch MissReason = "mismatch"
)
