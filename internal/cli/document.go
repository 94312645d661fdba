package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mesh-intelligence/tablemarks/internal/anchor"
	"github.com/mesh-intelligence/tablemarks/internal/highlight"
	"github.com/mesh-intelligence/tablemarks/internal/orgtable"
	"github.com/mesh-intelligence/tablemarks/internal/render"
	"github.com/mesh-intelligence/tablemarks/internal/session"
	"github.com/mesh-intelligence/tablemarks/pkg/types"
)

// document is an org file opened for one command. Its absolute path is the
// document ID highlights are stored under.
type document struct {
	path   string
	editor *orgtable.Editor
}

func loadDocument(path string) (*document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, sysError(fmt.Errorf("resolve %s: %w", path, err))
	}
	data, err := os.ReadFile(abs)
	if errors.Is(err, os.ErrNotExist) {
		return nil, userError(fmt.Errorf("document %s does not exist", path))
	}
	if err != nil {
		return nil, sysError(fmt.Errorf("read %s: %w", path, err))
	}
	return &document{path: abs, editor: orgtable.NewEditor(string(data))}, nil
}

// readDocument returns the text of the document with the given ID.
func readDocument(docID string) (string, error) {
	data, err := os.ReadFile(docID)
	return string(data), err
}

// selectTable finds the table sel names and moves the cursor into its first
// data row. sel is a 1-based ordinal, a declared name, or empty for the
// first table.
func (d *document) selectTable(sel string, opts anchor.Options) (orgtable.Table, error) {
	text := d.editor.Text()
	tables := orgtable.FindTables(text)
	if len(tables) == 0 {
		return orgtable.Table{}, userError(fmt.Errorf("%w: %s has no tables", types.ErrTableNotFound, d.path))
	}

	found := -1
	switch n, err := strconv.Atoi(sel); {
	case sel == "":
		found = 0
	case err == nil:
		if n >= 1 && n <= len(tables) {
			found = n - 1
		}
	default:
		for i, t := range tables {
			if anchor.ComputeContext(text, t.Start, opts).DeclaredName == sel {
				found = i
				break
			}
		}
	}
	if found < 0 {
		return orgtable.Table{}, userError(fmt.Errorf("%w: %q in %s", types.ErrTableNotFound, sel, d.path))
	}

	tbl := tables[found]
	d.editor.SetCursor(tbl.Start)
	if err := d.editor.GotoCell(1, 1); err != nil {
		return orgtable.Table{}, userError(fmt.Errorf("table %q has no data rows: %w", sel, err))
	}
	return tbl, nil
}

// context returns the anchor context of tbl in the document's current text.
func (d *document) context(tbl orgtable.Table, opts anchor.Options) types.TableContext {
	return anchor.ComputeContext(d.editor.Text(), tbl.Start, opts)
}

// newSession binds the document to store with a fresh marker layer.
func (a *app) newSession(d *document, store *highlight.Store) (*session.Session, *render.Layer) {
	layer := render.NewLayer()
	return session.New(d.path, store, d.editor, layer, a.anchorOptions(), a.logger), layer
}

// axisIndex reads the --column/--row pair. Exactly one must be set.
func axisIndex(column, row int, columnSet, rowSet bool) (types.Axis, int, error) {
	switch {
	case columnSet && rowSet:
		return 0, 0, userError(errors.New("use either --column or --row, not both"))
	case columnSet:
		return types.AxisColumn, column, nil
	case rowSet:
		return types.AxisRow, row, nil
	}
	return 0, 0, userError(errors.New("one of --column or --row is required"))
}

// classify wraps errors from the highlight layer with the exit code they
// deserve.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return err
	}
	for _, user := range []error{
		types.ErrPredicateSyntax, types.ErrUnsupportedOperator, types.ErrInvalidIndex,
		types.ErrInvalidColor, types.ErrInvalidEdit, types.ErrNotAtTable,
		types.ErrTableNotFound, types.ErrOutOfRange,
	} {
		if errors.Is(err, user) {
			return userError(err)
		}
	}
	return sysError(err)
}
