package facts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustExtractor(t *testing.T, name, pattern string, keyGroup, valueGroup int) Extractor {
	t.Helper()
	ex, err := NewExtractor(name, pattern, keyGroup, valueGroup)
	require.NoError(t, err)
	return ex
}

func Test_Builder_PriorityOverwrite(t *testing.T) {
	// Ascending priority: the intent script first, the tool log last.
	// The log's value must win for every shared key, no matter how many
	// times the script redefined it.
	intent := StringSource{
		SourceLabel: "intent-script",
		Name:        "intent.tcl",
		Content:     "set SHDMIM disabled\nset SHDMIM enabled\nset FHDMIM disabled\n",
	}
	log := StringSource{
		SourceLabel: "tool-log",
		Name:        "tool.log",
		Content:     "set SHDMIM enabled\n",
	}
	extractor := mustExtractor(t, "switch", `^set (\S+) (\S+)$`, 1, 2)

	registry, notes, err := NewBuilder().Build([]Source{intent, log}, []Extractor{extractor})
	require.NoError(t, err)
	assert.Empty(t, notes)

	entry, ok := registry.Get("SHDMIM")
	require.True(t, ok)
	assert.Equal(t, "enabled", entry.Value.Scalar)
	assert.Equal(t, "tool-log", entry.Source)
	assert.Equal(t, "tool.log", entry.File)
	assert.Equal(t, 1, entry.Line)

	// FHDMIM only exists in the lower-priority source and survives.
	entry, ok = registry.Get("FHDMIM")
	require.True(t, ok)
	assert.Equal(t, "disabled", entry.Value.Scalar)
	assert.Equal(t, "intent-script", entry.Source)
}

func Test_Builder_LastOccurrenceWinsWithinFile(t *testing.T) {
	src := StringSource{
		SourceLabel: "tool-log",
		Name:        "tool.log",
		Content:     "set MODE fast\nset MODE slow\n",
	}
	extractor := mustExtractor(t, "switch", `^set (\S+) (\S+)$`, 1, 2)

	registry, _, err := NewBuilder().Build([]Source{src}, []Extractor{extractor})
	require.NoError(t, err)

	entry, ok := registry.Get("MODE")
	require.True(t, ok)
	assert.Equal(t, "slow", entry.Value.Scalar)
	assert.Equal(t, 2, entry.Line)
}

func Test_Builder_FirstMatchingExtractorWins(t *testing.T) {
	src := StringSource{
		SourceLabel: "tool-log",
		Name:        "tool.log",
		Content:     "set_app_var CHECK_FLOATING enabled\n",
	}
	broad := mustExtractor(t, "broad", `^(\S+) (\S+) (\S+)$`, 2, 3)
	narrow := mustExtractor(t, "narrow", `^set_app_var (\S+) (\S+)$`, 1, 2)

	registry, _, err := NewBuilder().Build([]Source{src}, []Extractor{narrow, broad})
	require.NoError(t, err)

	entry, ok := registry.Get("CHECK_FLOATING")
	require.True(t, ok)
	assert.Equal(t, "enabled", entry.Value.Scalar)
	assert.Equal(t, 1, registry.Len(), "only the first matching extractor should emit")
}

func Test_Builder_ListAccumulation(t *testing.T) {
	intent := StringSource{
		SourceLabel: "intent-script",
		Name:        "intent.tcl",
		Content:     "dont_touch net_a\ndont_touch net_b\n",
	}
	log := StringSource{
		SourceLabel: "tool-log",
		Name:        "tool.log",
		Content:     "dont_touch net_c\n",
	}
	lister, err := NewListExtractor("nets", `^dont_touch (\S+)$`, "dont_touch_nets", 1)
	require.NoError(t, err)

	t.Run("accumulates within one source", func(t *testing.T) {
		registry, _, err := NewBuilder().Build([]Source{intent}, []Extractor{lister})
		require.NoError(t, err)

		entry, ok := registry.Get("dont_touch_nets")
		require.True(t, ok)
		assert.True(t, entry.Value.IsList)
		assert.Equal(t, []string{"net_a", "net_b"}, entry.Value.List)
		assert.Equal(t, 1, entry.Line, "provenance points at the first occurrence")
	})

	t.Run("later source replaces the whole list", func(t *testing.T) {
		registry, _, err := NewBuilder().Build([]Source{intent, log}, []Extractor{lister})
		require.NoError(t, err)

		entry, ok := registry.Get("dont_touch_nets")
		require.True(t, ok)
		assert.Equal(t, []string{"net_c"}, entry.Value.List)
		assert.Equal(t, "tool-log", entry.Source)
	})
}

func Test_Builder_ValueCleaning(t *testing.T) {
	src := StringSource{
		SourceLabel: "intent-script",
		Name:        "intent.tcl",
		Content:     "set SHDMIM enabled; // approved 2024-11\n",
	}
	extractor := mustExtractor(t, "switch", `^set (\S+) (.+)$`, 1, 2)

	registry, _, err := NewBuilder().Build([]Source{src}, []Extractor{extractor})
	require.NoError(t, err)

	entry, ok := registry.Get("SHDMIM")
	require.True(t, ok)
	assert.Equal(t, "enabled", entry.Value.Scalar)
}

func Test_Builder_MissingOptionalSource(t *testing.T) {
	missing := FileSource{
		SourceLabel: "intent-script",
		FilePath:    filepath.Join(t.TempDir(), "does-not-exist.tcl"),
	}
	present := StringSource{
		SourceLabel: "tool-log",
		Name:        "tool.log",
		Content:     "set SHDMIM enabled\n",
	}
	extractor := mustExtractor(t, "switch", `^set (\S+) (\S+)$`, 1, 2)

	registry, notes, err := NewBuilder().Build([]Source{missing, present}, []Extractor{extractor})
	require.NoError(t, err)

	assert.True(t, registry.Has("SHDMIM"))
	require.Len(t, notes, 1)
	assert.Equal(t, "intent-script", notes[0].Source)
	assert.Contains(t, notes[0].Message, "skipped")
}

func Test_Builder_MissingRequiredSource(t *testing.T) {
	missing := FileSource{
		SourceLabel: "tool-log",
		FilePath:    filepath.Join(t.TempDir(), "does-not-exist.log"),
		Must:        true,
	}

	_, _, err := NewBuilder().Build([]Source{missing}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required source tool-log is absent")
}

func Test_Builder_AllSourcesAbsent(t *testing.T) {
	dir := t.TempDir()
	sources := []Source{
		FileSource{SourceLabel: "intent-script", FilePath: filepath.Join(dir, "a.tcl")},
		FileSource{SourceLabel: "tool-log", FilePath: filepath.Join(dir, "b.log")},
	}

	_, _, err := NewBuilder().Build(sources, nil)
	require.Error(t, err)

	var missingErr *MissingSourcesError
	require.ErrorAs(t, err, &missingErr)
	assert.Len(t, missingErr.Paths, 2)
}

func Test_FileSource_ReadsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tool.log")
	require.NoError(t, os.WriteFile(path, []byte("line one\nline two\n"), 0o600))

	src := FileSource{SourceLabel: "tool-log", FilePath: path}
	lines, present, err := src.Lines()
	require.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, []string{"line one", "line two"}, lines)
}

func Test_Registry_KeepsFirstInsertionOrder(t *testing.T) {
	registry := NewRegistry()
	registry.Put(Entry{Key: "B", Value: ScalarValue("1")})
	registry.Put(Entry{Key: "A", Value: ScalarValue("2")})
	registry.Put(Entry{Key: "B", Value: ScalarValue("3")})

	assert.Equal(t, []string{"B", "A"}, registry.Keys())

	entry, _ := registry.Get("B")
	assert.Equal(t, "3", entry.Value.Scalar)
}
