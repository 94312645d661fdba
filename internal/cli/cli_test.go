package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tablemarks/internal/sqlite"
	"github.com/mesh-intelligence/tablemarks/pkg/types"
)

const notes = `* Budget
#+NAME: costs
| item  | amount |
|-------+--------|
| rent  | 1200   |
| food  | -40    |
| books | 75     |

* Other
| a | b |
| 1 | 2 |
`

type testEnv struct {
	configDir string
	dataDir   string
	docPath   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	e := &testEnv{
		configDir: filepath.Join(dir, "config"),
		dataDir:   filepath.Join(dir, "data"),
		docPath:   filepath.Join(dir, "notes.org"),
	}
	require.NoError(t, os.WriteFile(e.docPath, []byte(notes), 0o644))
	return e
}

// run executes the root command with the env's directories and returns
// stdout.
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, args...))
	err := root.Execute()
	return out.String(), err
}

func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	require.NoError(t, err, "args: %v", args)
	return out
}

func (e *testEnv) summaries(t *testing.T) []types.TableSummary {
	t.Helper()
	var sums []types.TableSummary
	require.NoError(t, json.Unmarshal([]byte(e.mustRun(t, "--json", "list")), &sums))
	return sums
}

func TestVersion(t *testing.T) {
	e := newTestEnv(t)
	out := e.mustRun(t, "version")
	assert.Contains(t, out, "tablemarks v")
	assert.Contains(t, out, modulePath)
}

func TestInit(t *testing.T) {
	t.Run("file backend", func(t *testing.T) {
		e := newTestEnv(t)
		out := e.mustRun(t, "init")
		assert.Contains(t, out, "initialized")

		cfg, err := os.ReadFile(filepath.Join(e.configDir, "config.yaml"))
		require.NoError(t, err)
		assert.Contains(t, string(cfg), "backend: file")
		assert.FileExists(t, filepath.Join(e.dataDir, types.DefaultStoreFile))

		// Idempotent.
		e.mustRun(t, "init")
	})

	t.Run("sqlite backend from config", func(t *testing.T) {
		e := newTestEnv(t)
		require.NoError(t, os.MkdirAll(e.configDir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(e.configDir, "config.yaml"), []byte("backend: sqlite\n"), 0o644))
		e.mustRun(t, "init")
		assert.FileExists(t, filepath.Join(e.dataDir, sqlite.DatabaseFile))
	})

	t.Run("unknown backend is a user error", func(t *testing.T) {
		e := newTestEnv(t)
		require.NoError(t, os.MkdirAll(e.configDir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(e.configDir, "config.yaml"), []byte("backend: csv\n"), 0o644))
		_, err := e.run(t, "init")
		require.ErrorIs(t, err, types.ErrBackendUnknown)
		assert.Equal(t, exitUserError, ExitCode(err))
	})
}

func TestAddEditList(t *testing.T) {
	e := newTestEnv(t)
	e.mustRun(t, "add", e.docPath, "--table", "costs", "--column", "2", "--color", "red", "--when", "<0")
	e.mustRun(t, "add", e.docPath, "--table", "costs", "--row", "3", "--color", "blue")

	sums := e.summaries(t)
	require.Len(t, sums, 1)
	assert.Equal(t, "costs", sums[0].Name)
	assert.Equal(t, 1, sums[0].ColumnCount)
	assert.Equal(t, 1, sums[0].RowCount)
	require.NotNil(t, sums[0].Position)
	assert.Equal(t, strings.Index(notes, "| item"), *sums[0].Position)

	out := e.mustRun(t, "--json", "edit", e.docPath, "insert-column", "--table", "costs", "--column", "1")
	var record types.TableHighlights
	require.NoError(t, json.Unmarshal([]byte(out), &record))
	assert.Contains(t, record.Columns, 3)
	assert.NotContains(t, record.Columns, 2)
	assert.Equal(t, "<0", strings.ReplaceAll(record.Columns[3].Predicate, " ", ""))
	assert.Contains(t, record.Rows, 3)

	text, err := os.ReadFile(e.docPath)
	require.NoError(t, err)
	assert.Contains(t, string(text), "|  | item  | amount |")

	e.mustRun(t, "edit", e.docPath, "move-row-up", "--table", "costs", "--row", "3")
	record = tableRecord(t, e)
	assert.Contains(t, record.Rows, 2)
	assert.NotContains(t, record.Rows, 3)

	e.mustRun(t, "edit", e.docPath, "delete-column", "--table", "costs", "--column", "3")
	record = tableRecord(t, e)
	assert.Empty(t, record.Columns)
}

func tableRecord(t *testing.T, e *testEnv) types.TableHighlights {
	t.Helper()
	out := e.mustRun(t, "--json", "add", e.docPath, "--table", "costs", "--row", "1", "--color", "gray")
	var record types.TableHighlights
	require.NoError(t, json.Unmarshal([]byte(out), &record))
	e.mustRun(t, "remove", e.docPath, "--table", "costs", "--row", "1")
	delete(record.Rows, 1)
	return record
}

func TestAddErrors(t *testing.T) {
	e := newTestEnv(t)
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"bad predicate", []string{"--column", "2", "--color", "red", "--when", "between 1 2"}, types.ErrPredicateSyntax},
		{"ordering on text", []string{"--column", "2", "--color", "red", "--when", ">abc"}, types.ErrUnsupportedOperator},
		{"column out of range", []string{"--column", "9", "--color", "red"}, types.ErrOutOfRange},
		{"unknown table", []string{"--table", "nope", "--column", "1", "--color", "red"}, types.ErrTableNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.run(t, append([]string{"add", e.docPath}, tt.args...)...)
			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, exitUserError, ExitCode(err))
		})
	}

	_, err := e.run(t, "add", e.docPath, "--row", "2", "--color", "red", "--when", ">1")
	require.Error(t, err)
	_, err = e.run(t, "add", e.docPath, "--color", "red")
	require.Error(t, err)

	assert.Empty(t, e.summaries(t), "failed adds leave the store untouched")
}

func TestRemove(t *testing.T) {
	e := newTestEnv(t)
	e.mustRun(t, "add", e.docPath, "--table", "2", "--column", "1", "--color", "green")
	e.mustRun(t, "add", e.docPath, "--table", "2", "--column", "2", "--color", "green")
	require.Len(t, e.summaries(t), 1)

	out := e.mustRun(t, "remove", e.docPath, "--table", "2", "--column", "0")
	assert.Contains(t, out, "all columns")
	assert.Empty(t, e.summaries(t))

	// Removing again is a no-op.
	e.mustRun(t, "remove", e.docPath, "--table", "2", "--column", "1")
}

func TestShowJSON(t *testing.T) {
	e := newTestEnv(t)
	e.mustRun(t, "add", e.docPath, "--table", "costs", "--column", "2", "--color", "red", "--when", ">100", "--extend")

	var markers []markerJSON
	require.NoError(t, json.Unmarshal([]byte(e.mustRun(t, "--json", "show", e.docPath)), &markers))
	require.Len(t, markers, 1)
	assert.Equal(t, types.PriorityExtended, markers[0].Priority)
	assert.Equal(t, "| rent  | 1200   |", notes[markers[0].Start:markers[0].End])

	plain := e.mustRun(t, "show", e.docPath)
	assert.Contains(t, plain, "rent")
}

func TestEval(t *testing.T) {
	e := newTestEnv(t)
	out := e.mustRun(t, "--json", "eval", ">10 and <100", "5", "50", "abc")
	var res struct {
		Predicate string       `json:"predicate"`
		Results   []evalResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, []evalResult{{"5", false}, {"50", true}, {"abc", false}}, res.Results)

	_, err := e.run(t, "eval", "and")
	require.ErrorIs(t, err, types.ErrPredicateSyntax)
	assert.Equal(t, exitUserError, ExitCode(err))
}

func TestExport(t *testing.T) {
	e := newTestEnv(t)
	e.mustRun(t, "add", e.docPath, "--table", "costs", "--column", "2", "--color", "yellow")
	target := filepath.Join(filepath.Dir(e.docPath), "out", "costs.xlsx")
	out := e.mustRun(t, "export", e.docPath, "--table", "costs", "-o", target)
	assert.Contains(t, out, "exported costs")
	assert.FileExists(t, target)
}

func TestEditUnknownOperation(t *testing.T) {
	e := newTestEnv(t)
	_, err := e.run(t, "edit", e.docPath, "rotate")
	require.Error(t, err)
	assert.Equal(t, exitUserError, ExitCode(err))
}

func TestMissingDocument(t *testing.T) {
	e := newTestEnv(t)
	_, err := e.run(t, "show", filepath.Join(e.dataDir, "absent.org"))
	require.Error(t, err)
	assert.Equal(t, exitUserError, ExitCode(err))
}
