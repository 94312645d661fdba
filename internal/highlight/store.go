// Package highlight implements the highlight store: the repository of
// per-document, per-table highlight entries. Every mutation is persisted
// eagerly through the configured Persister. The store is not safe for
// concurrent use; a single editing session drives it.
package highlight

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/mesh-intelligence/tablemarks/internal/anchor"
	"github.com/mesh-intelligence/tablemarks/internal/predicate"
	"github.com/mesh-intelligence/tablemarks/internal/remap"
	"github.com/mesh-intelligence/tablemarks/pkg/types"
)

// AllIndices passed to RemoveHighlight clears every entry on the axis.
const AllIndices = 0

// Highlight carries the entry fields supplied by the caller of AddHighlight.
type Highlight struct {
	Color     string
	Predicate string
	Extend    bool
}

// Store is the in-memory highlight repository.
type Store struct {
	data      types.Store
	persister types.Persister
	logger    *log.Logger
}

// New creates an empty store. A nil persister keeps the store in memory; a
// nil logger discards log output.
func New(p types.Persister, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{
		data:      types.NewStore(),
		persister: p,
		logger:    logger,
	}
}

// Load replaces the in-memory state with the persisted store. A read
// failure is logged and leaves the store empty so the session can continue.
func (s *Store) Load() {
	s.data = types.NewStore()
	if s.persister == nil {
		return
	}
	loaded, err := s.persister.Load()
	if err != nil {
		s.logger.Warn("loading highlights failed, starting empty", "err", err)
		return
	}
	if loaded.Documents != nil {
		s.data = loaded
	}
	s.logger.Debug("highlights loaded", "documents", len(s.data.Documents))
}

// AddHighlight stores a highlight at index on the given axis of the table
// identified by ctx, replacing any entry already at that index. The input
// is validated before anything changes: a malformed predicate returns an
// error wrapping types.ErrPredicateSyntax or types.ErrUnsupportedOperator.
func (s *Store) AddHighlight(docID string, ctx types.TableContext, axis types.Axis, index int, h Highlight) error {
	if docID == "" {
		return types.ErrDocumentNotSet
	}
	if !axis.Valid() {
		return fmt.Errorf("%w: %s", types.ErrInvalidAxis, axis)
	}
	if index < 1 {
		return fmt.Errorf("%w: %d", types.ErrInvalidIndex, index)
	}
	if h.Color == "" {
		return types.ErrInvalidColor
	}
	entry := types.HighlightEntry{Index: index, Color: h.Color}
	if axis == types.AxisColumn {
		if h.Predicate != "" {
			p, err := predicate.Build(h.Predicate)
			if err != nil {
				return err
			}
			entry.Predicate = p.String()
		}
		entry.Extend = h.Extend
	}

	doc := s.data.Documents[docID]
	if doc == nil {
		doc = &types.DocumentHighlights{DocumentID: docID}
		s.data.Documents[docID] = doc
	}
	table := anchor.FindTable(doc, ctx)
	if table == nil {
		table = types.NewTableHighlights(newTableID(), ctx)
		doc.Tables = append(doc.Tables, table)
		s.logger.Debug("table record created", "doc", docID, "table", table.TableID, "name", ctx.DisplayName())
	}
	table.Context.AfterText = ctx.AfterText
	table.Entries(axis)[index] = entry

	s.logger.Debug("highlight added", "doc", docID, "axis", axis, "index", index, "color", h.Color)
	s.persist()
	return nil
}

// RemoveHighlight removes the entry at index on the given axis, or every
// entry on the axis when index is AllIndices. Empty records are pruned.
// A missing document, table or entry, or an invalid axis, is a no-op.
func (s *Store) RemoveHighlight(docID string, ctx types.TableContext, axis types.Axis, index int) {
	if !axis.Valid() {
		s.logger.Warn("ignoring remove on invalid axis", "doc", docID, "axis", axis)
		return
	}
	doc, table := s.lookup(docID, ctx)
	if table == nil {
		return
	}
	entries := table.Entries(axis)
	if index == AllIndices {
		table.SetEntries(axis, make(map[int]types.HighlightEntry))
	} else {
		if _, ok := entries[index]; !ok {
			return
		}
		delete(entries, index)
	}
	table.Context.AfterText = ctx.AfterText
	s.logger.Debug("highlight removed", "doc", docID, "axis", axis, "index", index)
	s.prune(doc, table)
	s.persist()
}

// ApplyRemap recomputes the indices of one axis after a structural edit and
// returns the delta so the caller can reconcile rendered markers. A missing
// record, an invalid axis or an edit with an invalid reference yields an
// empty delta.
func (s *Store) ApplyRemap(docID string, ctx types.TableContext, axis types.Axis, kind types.EditKind, ref int) types.RemapDelta {
	_, table := s.lookup(docID, ctx)
	if table == nil {
		return types.RemapDelta{}
	}
	if err := validateEdit(axis, kind, ref); err != nil {
		s.logger.Warn("ignoring structural edit", "doc", docID, "axis", axis, "edit", kind, "ref", ref, "err", err)
		return types.RemapDelta{}
	}

	entries, delta := remap.ApplyAxis(table.Entries(axis), kind, ref)
	if delta.Empty() {
		return delta
	}
	table.SetEntries(axis, entries)
	table.Context.AfterText = ctx.AfterText
	s.logger.Debug("highlights remapped", "doc", docID, "axis", axis, "edit", kind, "ref", ref,
		"changed", len(delta.Changed), "removed", len(delta.Removed))

	doc := s.data.Documents[docID]
	s.prune(doc, table)
	s.persist()
	return delta
}

func validateEdit(axis types.Axis, kind types.EditKind, ref int) error {
	if !axis.Valid() {
		return fmt.Errorf("%w: %s", types.ErrInvalidAxis, axis)
	}
	if ref < 1 || (kind == types.EditMoveLater && ref < 2) {
		return fmt.Errorf("%w: %s at %d", types.ErrInvalidEdit, kind, ref)
	}
	return nil
}

// ListTables returns a snapshot of the tables recorded for docID.
func (s *Store) ListTables(docID string) []types.TableHighlights {
	doc := s.data.Documents[docID]
	if doc == nil {
		return nil
	}
	out := make([]types.TableHighlights, 0, len(doc.Tables))
	for _, t := range doc.Tables {
		out = append(out, *t.Clone())
	}
	return out
}

// Table returns a snapshot of the record matching ctx.
func (s *Store) Table(docID string, ctx types.TableContext) (types.TableHighlights, bool) {
	_, table := s.lookup(docID, ctx)
	if table == nil {
		return types.TableHighlights{}, false
	}
	return *table.Clone(), true
}

// Documents returns the known document IDs in sorted order.
func (s *Store) Documents() []string {
	ids := make([]string, 0, len(s.data.Documents))
	for id := range s.data.Documents {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Snapshot returns a deep copy of the whole store.
func (s *Store) Snapshot() types.Store {
	return s.data.Clone()
}

func (s *Store) lookup(docID string, ctx types.TableContext) (*types.DocumentHighlights, *types.TableHighlights) {
	doc := s.data.Documents[docID]
	if doc == nil {
		return nil, nil
	}
	return doc, anchor.FindTable(doc, ctx)
}

// prune drops table when both axes are empty and doc when it has no tables.
func (s *Store) prune(doc *types.DocumentHighlights, table *types.TableHighlights) {
	if doc == nil || table == nil || !table.Empty() {
		return
	}
	for i, t := range doc.Tables {
		if t == table {
			doc.Tables = append(doc.Tables[:i], doc.Tables[i+1:]...)
			break
		}
	}
	s.logger.Debug("table record pruned", "doc", doc.DocumentID, "table", table.TableID)
	if len(doc.Tables) == 0 {
		delete(s.data.Documents, doc.DocumentID)
	}
}

// persist writes the whole store. Failures are logged; the edit that
// triggered the write has already happened and is not rolled back.
func (s *Store) persist() {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(s.data); err != nil {
		s.logger.Error("saving highlights failed", "err", err)
	}
}

// newTableID generates a UUID v7 for a new table record.
func newTableID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
