package config

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/tapecheck-dev/tapecheck/internal/domain/requirements"
	"github.com/tapecheck-dev/tapecheck/internal/domain/values"
)

// Validate performs structural validation of a checklist beyond what the
// schema expresses: duplicate IDs, shape coherence, pattern compilation,
// waiver block coherence. All failures are reported together. Runs
// before any artifact file is parsed.
func Validate(checklist *Checklist) error {
	var errors []string

	if err := validateMetadata(checklist.Metadata); err != nil {
		errors = append(errors, err.Error())
	}

	checkIDs := make(map[string]bool)
	for i, check := range checklist.Checks {
		if checkIDs[check.ID] {
			errors = append(errors, fmt.Sprintf("duplicate check ID: %s", check.ID))
		}
		checkIDs[check.ID] = true

		if err := validateCheck(check); err != nil {
			errors = append(errors, fmt.Sprintf("check %d (%s): %s", i, check.ID, err.Error()))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("checklist validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}
	return nil
}

func validateMetadata(meta ChecklistMetadata) error {
	var errors []string

	if _, err := semver.NewVersion(meta.Version); err != nil {
		errors = append(errors, fmt.Sprintf("checklist version %q is not valid semver", meta.Version))
	}
	if meta.MinEngine != "" {
		if _, err := semver.NewConstraint(meta.MinEngine); err != nil {
			errors = append(errors, fmt.Sprintf("min_engine %q is not a valid version constraint", meta.MinEngine))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("checklist metadata: %s", strings.Join(errors, "; "))
	}
	return nil
}

func validateCheck(check Check) error {
	var errors []string

	shape, err := check.CompileShape()
	if err != nil {
		errors = append(errors, err.Error())
	}

	if _, err := values.NewSeverity(check.Severity); err != nil {
		errors = append(errors, err.Error())
	}

	if _, err := check.CompileExtractors(); err != nil {
		errors = append(errors, err.Error())
	}

	reqs := check.CompileRequirements()
	if err := requirements.ValidateSet(reqs); err != nil {
		errors = append(errors, err.Error())
	}

	// Shape coherence: a boolean check is the bare-identifier form only;
	// a pattern check must actually carry requirements, and needs at
	// least one extractor to have any facts to match against.
	switch shape {
	case values.ShapeBoolean:
		for _, r := range reqs {
			if r.Kind != requirements.KindExistence {
				errors = append(errors, fmt.Sprintf("boolean check cannot expect a value for %s (use shape: pattern)", r.Key))
			}
		}
	case values.ShapePattern:
		if len(reqs) == 0 {
			errors = append(errors, "pattern check needs at least one requirement (use shape: boolean for pure presence checks)")
		}
	}
	if len(reqs) > 0 && len(check.Extractors) == 0 {
		errors = append(errors, "check has requirements but no extractors")
	}

	if err := validateWaivers(check.Waivers); err != nil {
		errors = append(errors, err.Error())
	}
	if _, err := check.CompileWaivers(); err != nil {
		errors = append(errors, err.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}
	return nil
}

func validateWaivers(w *WaiverSpec) error {
	if w == nil {
		return nil
	}
	if w.Value != nil && *w.Value != 0 {
		return fmt.Errorf("waiver value must be 0 (the forced-pass sentinel) or omitted, got %d", *w.Value)
	}
	if w.ForcedPass() && len(w.Entries) > 0 {
		return fmt.Errorf("forced-pass waiver block cannot carry entries (use notes for commentary)")
	}
	if !w.ForcedPass() && len(w.Notes) > 0 {
		return fmt.Errorf("waiver notes are only allowed in forced-pass mode")
	}
	return nil
}

// CheckEngineVersion enforces the checklist's min_engine constraint
// against the running engine version. Development builds ("dev") skip
// the gate.
func CheckEngineVersion(meta ChecklistMetadata, engineVersion string) error {
	if meta.MinEngine == "" || engineVersion == "" || engineVersion == "dev" {
		return nil
	}

	constraint, err := semver.NewConstraint(meta.MinEngine)
	if err != nil {
		return fmt.Errorf("min_engine %q is not a valid version constraint: %w", meta.MinEngine, err)
	}
	current, err := semver.NewVersion(engineVersion)
	if err != nil {
		return fmt.Errorf("engine version %q is not valid semver: %w", engineVersion, err)
	}
	if !constraint.Check(current) {
		return fmt.Errorf("checklist %s requires engine %s, running %s", meta.Name, meta.MinEngine, engineVersion)
	}
	return nil
}
