package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tapecheck-dev/tapecheck/internal/domain/values"
	"github.com/tapecheck-dev/tapecheck/internal/domain/waivers"
)

func classifiedItems(waived ...bool) []waivers.Classified {
	items := make([]waivers.Classified, len(waived))
	for i, w := range waived {
		items[i] = waivers.Classified{Waived: w}
	}
	return items
}

func Test_StatusAggregator_Aggregate(t *testing.T) {
	tests := []struct {
		name       string
		classified []waivers.Classified
		shape      values.Shape
		waivable   bool
		forcedPass bool
		wantStatus values.Status
		wantReason string
	}{
		{
			name:       "pattern shape clean run passes",
			classified: nil,
			shape:      values.ShapePattern,
			wantStatus: values.StatusPass,
			wantReason: ReasonAllSatisfied,
		},
		{
			name:       "boolean shape clean run passes",
			classified: nil,
			shape:      values.ShapeBoolean,
			wantStatus: values.StatusPass,
			wantReason: ReasonAllPresent,
		},
		{
			name:       "non-waivable violation fails",
			classified: classifiedItems(false),
			shape:      values.ShapePattern,
			waivable:   false,
			wantStatus: values.StatusFail,
			wantReason: "1 violation(s), 1 unwaived",
		},
		{
			name:       "waived item under non-waivable shape still fails",
			classified: classifiedItems(true),
			shape:      values.ShapePattern,
			waivable:   false,
			wantStatus: values.StatusFail,
			wantReason: "1 violation(s), 1 unwaived",
		},
		{
			name:       "all violations waived passes",
			classified: classifiedItems(true, true),
			shape:      values.ShapePattern,
			waivable:   true,
			wantStatus: values.StatusPass,
			wantReason: "2 violation(s), all waived",
		},
		{
			name:       "one unwaived violation fails",
			classified: classifiedItems(true, false, true),
			shape:      values.ShapePattern,
			waivable:   true,
			wantStatus: values.StatusFail,
			wantReason: "3 violation(s), 1 unwaived",
		},
		{
			name:       "boolean shape waivable behaves like pattern",
			classified: classifiedItems(true),
			shape:      values.ShapeBoolean,
			waivable:   true,
			wantStatus: values.StatusPass,
			wantReason: "1 violation(s), all waived",
		},
		{
			name:       "forced pass overrides unwaived violations",
			classified: classifiedItems(false, false),
			shape:      values.ShapePattern,
			waivable:   false,
			forcedPass: true,
			wantStatus: values.StatusPass,
			wantReason: ReasonForcedPass,
		},
		{
			name:       "forced pass on clean run",
			classified: nil,
			shape:      values.ShapeBoolean,
			forcedPass: true,
			wantStatus: values.StatusPass,
			wantReason: ReasonForcedPass,
		},
	}

	aggregator := NewStatusAggregator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, reason := aggregator.Aggregate(tt.classified, tt.shape, tt.waivable, tt.forcedPass)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}
