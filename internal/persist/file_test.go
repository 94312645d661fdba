package persist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tablemarks/pkg/types"
)

func sampleStore() types.Store {
	s := types.NewStore()
	sales := types.NewTableHighlights("0190a1b2-0000-7000-8000-000000000001",
		types.TableContext{DeclaredName: "sales", BeforeText: "intro\n", AfterText: "| region |"})
	sales.Columns[2] = types.HighlightEntry{Index: 2, Color: "yellow", Predicate: ">10 and <100", Extend: true}
	sales.Columns[4] = types.HighlightEntry{Index: 4, Color: "#ff0000"}
	sales.Rows[1] = types.HighlightEntry{Index: 1, Color: "blue"}

	unnamed := types.NewTableHighlights("0190a1b2-0000-7000-8000-000000000002",
		types.TableContext{BeforeText: "héllo\n", AfterText: "| a | b |"})
	unnamed.Rows[3] = types.HighlightEntry{Index: 3, Color: "green"}

	s.Documents["/a.org"] = &types.DocumentHighlights{DocumentID: "/a.org", Tables: []*types.TableHighlights{sales, unnamed}}

	other := types.NewTableHighlights("0190a1b2-0000-7000-8000-000000000003", types.TableContext{BeforeText: "x"})
	other.Columns[1] = types.HighlightEntry{Index: 1, Color: "red", Predicate: "=done"}
	s.Documents["/b.md"] = &types.DocumentHighlights{DocumentID: "/b.md", Tables: []*types.TableHighlights{other}}
	return s
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "highlights.json")
	f := NewFile(path)

	want := sampleStore()
	require.NoError(t, f.Save(want))

	got, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFileHeaderAndFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highlights.json")
	require.NoError(t, NewFile(path).Save(sampleStore()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, Header+"\n"))
	assert.Contains(t, text, `"format": "tablemarks/highlights"`)
	assert.Contains(t, text, `"version": 1`)
}

func TestFileSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highlights.json")
	f := NewFile(path)
	require.NoError(t, f.Save(sampleStore()))
	require.NoError(t, f.Save(types.NewStore()))

	got, err := f.Load()
	require.NoError(t, err)
	assert.Empty(t, got.Documents)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestFileLoadMissingIsEmpty(t *testing.T) {
	got, err := NewFile(filepath.Join(t.TempDir(), "nope.json")).Load()
	require.NoError(t, err)
	assert.NotNil(t, got.Documents)
	assert.Empty(t, got.Documents)
}

func TestFileLoadErrors(t *testing.T) {
	dir := t.TempDir()

	garbage := filepath.Join(dir, "garbage.json")
	require.NoError(t, os.WriteFile(garbage, []byte(Header+"\n{not json"), 0o644))
	_, err := NewFile(garbage).Load()
	assert.Error(t, err)

	foreign := filepath.Join(dir, "foreign.json")
	require.NoError(t, os.WriteFile(foreign, []byte(`{"format":"other","version":1}`), 0o644))
	_, err = NewFile(foreign).Load()
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
