package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapecheck-dev/tapecheck/internal/config"
	"github.com/tapecheck-dev/tapecheck/internal/domain/values"
	"github.com/tapecheck-dev/tapecheck/internal/report"
)

func writeArtifact(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func switchCheck() config.Check {
	return config.Check{
		ID:       "hdmi-switches",
		Name:     "HDMI switch states",
		Severity: "high",
		Sources: []config.SourceSpec{
			{Label: "intent-script", Path: "intent.tcl"},
			{Label: "tool-log", Path: "tool.log"},
		},
		Extractors: []config.ExtractorSpec{
			{Name: "switch", Pattern: `^set (\S+) (\S+)$`, KeyGroup: 1, ValueGroup: 2},
		},
		Requirements: []config.RequirementSpec{
			{Key: "SHDMIM", Want: "enabled"},
			{Key: "FHDMIM", Want: "enabled"},
		},
	}
}

func Test_Checker_AllRequirementsSatisfied(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "intent.tcl", "set SHDMIM disabled\nset FHDMIM enabled\n")
	writeArtifact(t, dir, "tool.log", "set SHDMIM enabled\n")

	result, err := NewChecker().Run(switchCheck(), dir)
	require.NoError(t, err)

	assert.Equal(t, values.StatusPass, result.Status)
	assert.Equal(t, "all requirements satisfied", result.Reason)
	assert.Empty(t, result.Sections.Error)
	assert.Empty(t, result.Sections.Warn)
	// Both satisfied facts show up with their winning provenance.
	require.Len(t, result.Sections.Info, 2)
	assert.Equal(t, "SHDMIM = enabled", result.Sections.Info[0].Text)
	assert.Contains(t, result.Sections.Info[0].File, "tool.log")
	assert.Equal(t, "FHDMIM = enabled", result.Sections.Info[1].Text)
	assert.Contains(t, result.Sections.Info[1].File, "intent.tcl")
	assert.Equal(t, report.Counts{Info: 2}, result.Counts)
}

func Test_Checker_UnwaivedViolationFails(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "intent.tcl", "set SHDMIM enabled\n")
	writeArtifact(t, dir, "tool.log", "set SHDMIM enabled\nset FHDMIM disabled\n")

	result, err := NewChecker().Run(switchCheck(), dir)
	require.NoError(t, err)

	assert.Equal(t, values.StatusFail, result.Status)
	assert.Equal(t, "1 violation(s), 1 unwaived", result.Reason)
	require.Len(t, result.Sections.Error, 1)
	assert.Equal(t, "FHDMIM: expected enabled, actual disabled", result.Sections.Error[0].Text)
	assert.Equal(t, 2, result.Sections.Error[0].Line)
}

func Test_Checker_AllViolationsWaivedPasses(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "intent.tcl", "set SHDMIM enabled\n")
	writeArtifact(t, dir, "tool.log", "set FHDMIM disabled\n")

	check := switchCheck()
	check.Waivers = &config.WaiverSpec{
		Entries: []config.WaiverEntrySpec{
			{Name: "^FHDMIM$", Reason: "approved by signoff review"},
			{Name: "^stale_", Reason: "block removed"},
		},
	}

	result, err := NewChecker().Run(check, dir)
	require.NoError(t, err)

	assert.Equal(t, values.StatusPass, result.Status)
	assert.Equal(t, "1 violation(s), all waived", result.Reason)
	assert.Empty(t, result.Sections.Error)

	var waived []report.Item
	for _, item := range result.Sections.Info {
		if item.Tag == values.TagWaiver {
			waived = append(waived, item)
		}
	}
	require.Len(t, waived, 1)
	assert.Equal(t, "FHDMIM: expected enabled, actual disabled (waived: approved by signoff review)", waived[0].Text)

	require.Len(t, result.Sections.Warn, 1)
	assert.Equal(t, "unused waiver: ^stale_ (block removed)", result.Sections.Warn[0].Text)
}

func Test_Checker_ForcedPass(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "intent.tcl", "set SHDMIM disabled\n")
	writeArtifact(t, dir, "tool.log", "set FHDMIM disabled\n")

	zero := 0
	check := switchCheck()
	check.Waivers = &config.WaiverSpec{
		Value: &zero,
		Notes: []string{"block retired in rev B"},
	}

	result, err := NewChecker().Run(check, dir)
	require.NoError(t, err)

	assert.Equal(t, values.StatusPass, result.Status)
	assert.Equal(t, "forced pass: violations reported as information", result.Reason)
	assert.Empty(t, result.Sections.Error)
	assert.Empty(t, result.Sections.Warn)

	var reclassified, commentary int
	for _, item := range result.Sections.Info {
		switch {
		case item.Tag == values.TagWaivedAsInfo:
			reclassified++
		case item.Text == "block retired in rev B":
			commentary++
		}
	}
	assert.Equal(t, 2, reclassified, "both violations become informational")
	assert.Equal(t, 1, commentary)
}

func Test_Checker_BooleanShape(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "tool.log", "enable scan_chain\nenable bist\n")

	check := config.Check{
		ID:    "dft-probes",
		Name:  "DFT probes present",
		Shape: "boolean",
		Sources: []config.SourceSpec{
			{Label: "tool-log", Path: "tool.log"},
		},
		Extractors: []config.ExtractorSpec{
			{Name: "probe", Pattern: `^enable (\S+)$`, KeyGroup: 1},
		},
		Requirements: []config.RequirementSpec{
			{Key: "scan_chain", Bare: true},
			{Key: "bist", Bare: true},
		},
	}

	result, err := NewChecker().Run(check, dir)
	require.NoError(t, err)
	assert.Equal(t, values.StatusPass, result.Status)
	assert.Equal(t, "all probes present", result.Reason)
}

func Test_Checker_MissingOptionalSourceNoted(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "tool.log", "set SHDMIM enabled\nset FHDMIM enabled\n")

	result, err := NewChecker().Run(switchCheck(), dir)
	require.NoError(t, err)

	assert.Equal(t, values.StatusPass, result.Status)
	require.NotEmpty(t, result.Sections.Info)
	assert.Contains(t, result.Sections.Info[0].Text, "optional source not found")
	assert.Equal(t, report.NoLine, result.Sections.Info[0].Line)
}

func Test_Checker_AllSourcesAbsentIsError(t *testing.T) {
	_, err := NewChecker().Run(switchCheck(), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no readable sources")
}

func Test_Checker_RequiredSourceAbsentIsError(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "intent.tcl", "set SHDMIM enabled\n")

	check := switchCheck()
	check.Sources[1].Required = true

	_, err := NewChecker().Run(check, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required source tool-log is absent")
}

func Test_Checker_CustomMessages(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "intent.tcl", "set SHDMIM enabled\n")
	writeArtifact(t, dir, "tool.log", "set FHDMIM disabled\n")

	check := switchCheck()
	check.Messages = &config.MessagesSpec{
		Missing: "switch {key} must be {expected}, log says {actual}",
	}

	result, err := NewChecker().Run(check, dir)
	require.NoError(t, err)
	require.Len(t, result.Sections.Error, 1)
	assert.Equal(t, "switch FHDMIM must be enabled, log says disabled", result.Sections.Error[0].Text)
}

func Test_Checker_DeterministicAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "intent.tcl", "set SHDMIM disabled\n")
	writeArtifact(t, dir, "tool.log", "set FHDMIM disabled\n")

	checker := NewChecker()
	first, err := checker.Run(switchCheck(), dir)
	require.NoError(t, err)
	second, err := checker.Run(switchCheck(), dir)
	require.NoError(t, err)

	first.Duration, second.Duration = 0, 0
	assert.Equal(t, first, second)
}
