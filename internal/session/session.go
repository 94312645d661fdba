// Package session binds the highlight store to one open document: it turns
// cursor positions into table contexts, forwards structural edits to the
// store, and keeps the renderer's markers in step with stored highlights.
package session

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/mesh-intelligence/tablemarks/internal/anchor"
	"github.com/mesh-intelligence/tablemarks/internal/highlight"
	"github.com/mesh-intelligence/tablemarks/internal/orgtable"
	"github.com/mesh-intelligence/tablemarks/internal/predicate"
	"github.com/mesh-intelligence/tablemarks/internal/render"
	"github.com/mesh-intelligence/tablemarks/pkg/types"
)

// Document is a table editor that also exposes its text.
type Document interface {
	types.TableEditor
	Text() string
}

// Session is the integration layer for one document.
type Session struct {
	docID    string
	store    *highlight.Store
	doc      Document
	renderer types.Renderer
	opts     anchor.Options
	logger   *log.Logger

	// rendered remembers the bounds each table's markers were drawn in,
	// keyed by table ID, so stale markers can be found after an edit.
	rendered map[string]types.Range
}

// New creates a session and subscribes it to the document's edit events.
func New(docID string, store *highlight.Store, doc Document, r types.Renderer, opts anchor.Options, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Session{
		docID:    docID,
		store:    store,
		doc:      doc,
		renderer: r,
		opts:     opts,
		logger:   logger.With("doc", docID),
		rendered: make(map[string]types.Range),
	}
	doc.Subscribe(s.HandleEdit)
	return s
}

// DocumentID returns the ID the session stores highlights under.
func (s *Session) DocumentID() string { return s.docID }

// current returns the context and parsed table under the cursor.
func (s *Session) current() (types.TableContext, orgtable.Table, error) {
	if !s.doc.IsAtTable() {
		return types.TableContext{}, orgtable.Table{}, types.ErrNotAtTable
	}
	start, _ := s.doc.TableBounds()
	text := s.doc.Text()
	tbl, ok := orgtable.TableStartingAt(text, start)
	if !ok {
		return types.TableContext{}, orgtable.Table{}, types.ErrNotAtTable
	}
	return anchor.ComputeContext(text, start, s.opts), tbl, nil
}

// HighlightColumn highlights the column under the cursor.
func (s *Session) HighlightColumn(h highlight.Highlight) error {
	return s.highlightAt(types.AxisColumn, s.doc.CurrentColumn(), h)
}

// HighlightRow highlights the row under the cursor.
func (s *Session) HighlightRow(color string) error {
	return s.highlightAt(types.AxisRow, s.doc.CurrentRow(), highlight.Highlight{Color: color})
}

// Highlight highlights index on axis of the table under the cursor.
func (s *Session) Highlight(axis types.Axis, index int, h highlight.Highlight) error {
	return s.highlightAt(axis, index, h)
}

func (s *Session) highlightAt(axis types.Axis, index int, h highlight.Highlight) error {
	ctx, tbl, err := s.current()
	if err != nil {
		return err
	}
	if index < 1 {
		return fmt.Errorf("%w: %s %d", types.ErrInvalidIndex, axis, index)
	}
	if err := s.store.AddHighlight(s.docID, ctx, axis, index, h); err != nil {
		return err
	}
	record, _ := s.store.Table(s.docID, ctx)
	s.clearEntry(tbl.Bounds(), axis, index)
	s.drawEntry(tbl, axis, record.Entries(axis)[index])
	s.rendered[record.TableID] = tbl.Bounds()
	return nil
}

// Unhighlight removes the highlight at index on axis of the table under the
// cursor; highlight.AllIndices clears the whole axis.
func (s *Session) Unhighlight(axis types.Axis, index int) error {
	ctx, tbl, err := s.current()
	if err != nil {
		return err
	}
	s.store.RemoveHighlight(s.docID, ctx, axis, index)
	s.clearEntry(tbl.Bounds(), axis, index)
	return nil
}

// HandleEdit remaps the stored highlights of the edited table after a
// structural edit and reconciles the rendered markers. The table is anchored
// at ev.Start, so an edit that removed the table's last row or column still
// updates its record.
func (s *Session) HandleEdit(ev types.EditEvent) {
	text := s.doc.Text()
	if ev.Start < 0 || ev.Start > len(text) {
		s.logger.Debug("edit outside the document", "edit", ev.Kind, "start", ev.Start)
		return
	}
	ctx := anchor.ComputeContext(text, ev.Start, s.opts)
	tbl, present := orgtable.TableStartingAt(text, ev.Start)

	area := types.Range{Start: ev.Start, End: ev.Start}
	if present {
		area = tbl.Bounds()
	}
	before, known := s.store.Table(s.docID, ctx)
	if known {
		if old, seen := s.rendered[before.TableID]; seen {
			area = union(area, old)
		}
		if !present {
			// Nothing is left to anchor AfterText on.
			ctx.AfterText = before.Context.AfterText
		}
	}

	delta := s.store.ApplyRemap(s.docID, ctx, ev.Axis, ev.Kind, ev.Ref)
	record, ok := s.store.Table(s.docID, ctx)

	// Markers of moved and dropped entries come down; moved ones are drawn
	// again at their new index.
	for _, c := range delta.Changed {
		s.clearEntry(area, ev.Axis, c.Old)
	}
	for _, old := range delta.Removed {
		s.clearEntry(area, ev.Axis, old)
	}
	if !present {
		s.renderer.RemoveMarkers(area, nil, 0)
		if known {
			delete(s.rendered, before.TableID)
		}
		s.logger.Debug("edited table no longer in document", "edit", ev.Kind, "start", ev.Start)
		return
	}
	if !ok {
		return
	}
	for _, c := range delta.Changed {
		s.drawEntry(tbl, ev.Axis, record.Entries(ev.Axis)[c.New])
	}

	// The edit realigned the table, so unchanged markers sit on stale
	// offsets; redraw them in place.
	s.redrawUnchanged(tbl, area, record, ev.Axis, delta)
	s.rendered[record.TableID] = tbl.Bounds()
}

func (s *Session) redrawUnchanged(tbl orgtable.Table, area types.Range, record types.TableHighlights, edited types.Axis, delta types.RemapDelta) {
	moved := make(map[int]bool, len(delta.Changed))
	for _, c := range delta.Changed {
		moved[c.New] = true
	}
	for _, axis := range []types.Axis{types.AxisColumn, types.AxisRow} {
		for idx, e := range record.Entries(axis) {
			if axis == edited && moved[idx] {
				continue
			}
			s.clearEntry(area, axis, idx)
			s.drawEntry(tbl, axis, e)
		}
	}
}

// Restore draws every stored highlight of the document. Tables whose
// anchors can no longer be found are skipped. It returns the number of
// tables restored.
func (s *Session) Restore() int {
	text := s.doc.Text()
	restored := 0
	for _, record := range s.store.ListTables(s.docID) {
		pos, ok := anchor.Locate(text, record.Context, s.opts)
		if !ok {
			s.logger.Debug("table not found, skipping restore", "table", record.TableID, "name", record.Context.DisplayName())
			continue
		}
		tbl, ok := orgtable.TableAt(text, pos)
		if !ok {
			s.logger.Debug("anchor found but no table there", "table", record.TableID, "pos", pos)
			continue
		}
		s.renderer.RemoveMarkers(tbl.Bounds(), nil, 0)
		s.drawTable(tbl, record)
		s.rendered[record.TableID] = tbl.Bounds()
		restored++
	}
	return restored
}

func (s *Session) drawTable(tbl orgtable.Table, record types.TableHighlights) {
	for _, e := range record.Rows {
		s.drawEntry(tbl, types.AxisRow, e)
	}
	for _, e := range record.Columns {
		s.drawEntry(tbl, types.AxisColumn, e)
	}
}

// drawEntry creates the markers of one entry. A row is one marker; a column
// is one marker per matching cell, widened to the cell's row when the entry
// extends.
func (s *Session) drawEntry(tbl orgtable.Table, axis types.Axis, e types.HighlightEntry) {
	if e.Index < 1 {
		return
	}
	spec := render.Spec(axis, e)
	if axis == types.AxisRow {
		if r, ok := tbl.RowRange(e.Index); ok {
			s.renderer.CreateMarker(r, spec)
		}
		return
	}

	var pred predicate.Predicate
	if e.Conditional() {
		p, err := predicate.Build(e.Predicate)
		if err != nil {
			s.logger.Warn("stored predicate no longer parses", "predicate", e.Predicate, "err", err)
			return
		}
		pred = p
	}
	for row := 1; row <= tbl.RowCount(); row++ {
		cell, ok := tbl.Cell(row, e.Index)
		if !ok {
			continue
		}
		if !e.Conditional() {
			s.renderer.CreateMarker(cell.Range, spec)
			continue
		}
		if !pred.Match(cell.Text) {
			continue
		}
		if e.Extend {
			r, _ := tbl.RowRange(row)
			ext := spec
			ext.Priority = types.PriorityExtended
			s.renderer.CreateMarker(r, ext)
			continue
		}
		s.renderer.CreateMarker(cell.Range, spec)
	}
}

func (s *Session) clearEntry(area types.Range, axis types.Axis, index int) {
	s.renderer.RemoveMarkers(area, &axis, index)
}

func union(a, b types.Range) types.Range {
	return types.Range{Start: min(a.Start, b.Start), End: max(a.End, b.End)}
}
