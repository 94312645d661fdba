package sqlite

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/mesh-intelligence/tablemarks/pkg/types"
)

// Axis values stored in entries.axis.
const (
	axisColumn = "column"
	axisRow    = "row"
)

// insertStore writes every document, table and entry of s.
func insertStore(tx *sql.Tx, s types.Store) error {
	docStmt, err := tx.Prepare("INSERT INTO documents (document_id) VALUES (?)")
	if err != nil {
		return fmt.Errorf("preparing document insert: %w", err)
	}
	defer docStmt.Close()

	tableStmt, err := tx.Prepare(`INSERT INTO tables
		(table_id, document_id, ordinal, declared_name, before_text, after_text)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing table insert: %w", err)
	}
	defer tableStmt.Close()

	entryStmt, err := tx.Prepare(`INSERT INTO entries
		(table_id, axis, idx, color, predicate, extend)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing entry insert: %w", err)
	}
	defer entryStmt.Close()

	ids := make([]string, 0, len(s.Documents))
	for id := range s.Documents {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		doc := s.Documents[id]
		if _, err := docStmt.Exec(id); err != nil {
			return fmt.Errorf("inserting document %s: %w", id, err)
		}
		for ord, t := range doc.Tables {
			ctx := t.Context
			if _, err := tableStmt.Exec(t.TableID, id, ord, ctx.DeclaredName, ctx.BeforeText, ctx.AfterText); err != nil {
				return fmt.Errorf("inserting table %s: %w", t.TableID, err)
			}
			for axis, entries := range map[string]map[int]types.HighlightEntry{axisColumn: t.Columns, axisRow: t.Rows} {
				for _, e := range entries {
					if _, err := entryStmt.Exec(t.TableID, axis, e.Index, e.Color, e.Predicate, e.Extend); err != nil {
						return fmt.Errorf("inserting %s entry %d of table %s: %w", axis, e.Index, t.TableID, err)
					}
				}
			}
		}
	}
	return nil
}

// loadStore reads the whole store back, restoring table order per document.
func loadStore(tx *sql.Tx) (types.Store, error) {
	s := types.NewStore()
	byID := make(map[string]*types.TableHighlights)

	rows, err := tx.Query(`SELECT table_id, document_id, declared_name, before_text, after_text
		FROM tables ORDER BY document_id, ordinal`)
	if err != nil {
		return types.Store{}, fmt.Errorf("querying tables: %w", err)
	}
	for rows.Next() {
		var tableID, docID string
		var ctx types.TableContext
		if err := rows.Scan(&tableID, &docID, &ctx.DeclaredName, &ctx.BeforeText, &ctx.AfterText); err != nil {
			rows.Close()
			return types.Store{}, fmt.Errorf("scanning table: %w", err)
		}
		doc := s.Documents[docID]
		if doc == nil {
			doc = &types.DocumentHighlights{DocumentID: docID}
			s.Documents[docID] = doc
		}
		t := types.NewTableHighlights(tableID, ctx)
		doc.Tables = append(doc.Tables, t)
		byID[tableID] = t
	}
	if err := rows.Close(); err != nil {
		return types.Store{}, fmt.Errorf("closing tables: %w", err)
	}
	if err := rows.Err(); err != nil {
		return types.Store{}, fmt.Errorf("reading tables: %w", err)
	}

	rows, err = tx.Query("SELECT table_id, axis, idx, color, predicate, extend FROM entries")
	if err != nil {
		return types.Store{}, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var tableID, axis string
		var e types.HighlightEntry
		if err := rows.Scan(&tableID, &axis, &e.Index, &e.Color, &e.Predicate, &e.Extend); err != nil {
			return types.Store{}, fmt.Errorf("scanning entry: %w", err)
		}
		t := byID[tableID]
		if t == nil {
			continue
		}
		switch axis {
		case axisColumn:
			t.Columns[e.Index] = e
		case axisRow:
			t.Rows[e.Index] = e
		}
	}
	if err := rows.Err(); err != nil {
		return types.Store{}, fmt.Errorf("reading entries: %w", err)
	}
	return s, nil
}
