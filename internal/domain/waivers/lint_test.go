package waivers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapecheck-dev/tapecheck/internal/domain/requirements"
)

func Test_LintSet_StaticFindings(t *testing.T) {
	tests := []struct {
		name string
		set  Set
		want []LintFinding
	}{
		{
			name: "clean set",
			set: Set{Entries: []Entry{
				MustNewEntry("^clk_", "async crossing"),
				MustNewEntry("^rst_", "reset tree rework"),
			}},
			want: nil,
		},
		{
			name: "duplicate pattern",
			set: Set{Entries: []Entry{
				MustNewEntry("^clk_", "first"),
				MustNewEntry("^clk_", "second"),
			}},
			want: []LintFinding{{Pattern: "^clk_", Message: "duplicate waiver pattern"}},
		},
		{
			name: "missing reason",
			set:  Set{Entries: []Entry{MustNewEntry("^clk_", "")}},
			want: []LintFinding{{Pattern: "^clk_", Message: "waiver entry has no reason"}},
		},
		{
			name: "forced-pass produces no findings",
			set:  ForcedPassSet([]string{"block retired"}),
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LintSet(tt.set))
		})
	}
}

func Test_LintAmbiguity_ReportsShadowedEntries(t *testing.T) {
	set := Set{Entries: []Entry{
		MustNewEntry("^clk_", "broad"),
		MustNewEntry("^clk_gate_en$", "narrow"),
	}}
	missing := []requirements.MatchResult{missingResult("clk_gate_en")}

	findings := LintAmbiguity(missing, set, renderKeyNotFound)

	require.Len(t, findings, 1)
	assert.Equal(t, "^clk_gate_en$", findings[0].Pattern)
	assert.Contains(t, findings[0].Message, "also matches violation clk_gate_en")
	assert.Contains(t, findings[0].Message, `shadowed by "^clk_"`)
}

func Test_LintAmbiguity_SingleEntryNeverAmbiguous(t *testing.T) {
	set := Set{Entries: []Entry{MustNewEntry("clk", "only one")}}
	assert.Nil(t, LintAmbiguity([]requirements.MatchResult{missingResult("clk_gate_en")}, set, renderKeyNotFound))
}
