// Package services contains domain services that encapsulate evaluation
// logic spanning multiple entities. These services are stateless and can
// be called from the engine or any future worker.
package services

import (
	"fmt"

	"github.com/tapecheck-dev/tapecheck/internal/domain/values"
	"github.com/tapecheck-dev/tapecheck/internal/domain/waivers"
)

// Stable reason strings. Reports display these verbatim, so they live in
// one place instead of being re-derived at call sites.
const (
	ReasonAllSatisfied = "all requirements satisfied"
	ReasonAllPresent   = "all probes present"
	ReasonForcedPass   = "forced pass: violations reported as information"
)

func reasonAllWaived(violations int) string {
	return fmt.Sprintf("%d violation(s), all waived", violations)
}

func reasonUnwaived(violations, unwaived int) string {
	return fmt.Sprintf("%d violation(s), %d unwaived", violations, unwaived)
}

// StatusAggregator derives the final check status from match and waiver
// results.
type StatusAggregator struct{}

// NewStatusAggregator creates a status aggregator.
func NewStatusAggregator() *StatusAggregator {
	return &StatusAggregator{}
}

// Aggregate applies the checker-shape table:
//
//	shape    waivable  pass condition
//	boolean  no        zero missing results
//	pattern  no        zero missing results
//	pattern  yes       all missing results waived
//	boolean  yes       all missing results waived
//
// forcedPass overrides the table entirely: the status is unconditionally
// PASS and the composer re-tags every violation as informational. The
// waivable flag only changes whether waiver classifications count; a
// waived item under a non-waivable shape still fails the check.
func (a *StatusAggregator) Aggregate(classified []waivers.Classified, shape values.Shape, waivable, forcedPass bool) (values.Status, string) {
	if forcedPass {
		return values.StatusPass, ReasonForcedPass
	}

	violations := len(classified)
	if violations == 0 {
		if shape == values.ShapeBoolean {
			return values.StatusPass, ReasonAllPresent
		}
		return values.StatusPass, ReasonAllSatisfied
	}

	if !waivable {
		return values.StatusFail, reasonUnwaived(violations, violations)
	}

	unwaived := 0
	for _, item := range classified {
		if !item.Waived {
			unwaived++
		}
	}

	if unwaived == 0 {
		return values.StatusPass, reasonAllWaived(violations)
	}
	return values.StatusFail, reasonUnwaived(violations, unwaived)
}
