// Package persist stores the highlight store in a single file: a "generated,
// do not edit" header line followed by one self-describing JSON document.
package persist

import (
	"sort"

	"github.com/mesh-intelligence/tablemarks/pkg/types"
)

// Format identifiers written into every file.
const (
	FormatName    = "tablemarks/highlights"
	FormatVersion = 1
)

// Header is the first line of every store file.
const Header = "# Generated by tablemarks. Do not edit."

// JSON record structures mirroring the file format.

// storeJSON is the top-level document.
type storeJSON struct {
	Format    string         `json:"format"`
	Version   int            `json:"version"`
	Documents []documentJSON `json:"documents"`
}

// documentJSON is one document and its tables, in stored order.
type documentJSON struct {
	DocumentID string      `json:"document_id"`
	Tables     []tableJSON `json:"tables"`
}

// tableJSON is one table record. Entries are listed by ascending index.
type tableJSON struct {
	TableID string             `json:"table_id"`
	Context types.TableContext `json:"context"`
	Columns []entryJSON        `json:"columns"`
	Rows    []entryJSON        `json:"rows"`
}

// entryJSON is one highlight entry.
type entryJSON struct {
	Index     int    `json:"index"`
	Color     string `json:"color"`
	Predicate string `json:"predicate,omitempty"`
	Extend    bool   `json:"extend,omitempty"`
}

func toJSON(s types.Store) storeJSON {
	out := storeJSON{Format: FormatName, Version: FormatVersion, Documents: []documentJSON{}}
	ids := make([]string, 0, len(s.Documents))
	for id := range s.Documents {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		doc := s.Documents[id]
		dj := documentJSON{DocumentID: id, Tables: []tableJSON{}}
		for _, t := range doc.Tables {
			dj.Tables = append(dj.Tables, tableJSON{
				TableID: t.TableID,
				Context: t.Context,
				Columns: entriesToJSON(t.Columns),
				Rows:    entriesToJSON(t.Rows),
			})
		}
		out.Documents = append(out.Documents, dj)
	}
	return out
}

func entriesToJSON(m map[int]types.HighlightEntry) []entryJSON {
	out := make([]entryJSON, 0, len(m))
	for _, e := range m {
		out = append(out, entryJSON{Index: e.Index, Color: e.Color, Predicate: e.Predicate, Extend: e.Extend})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

func fromJSON(sj storeJSON) types.Store {
	s := types.NewStore()
	for _, dj := range sj.Documents {
		if dj.DocumentID == "" || len(dj.Tables) == 0 {
			continue
		}
		doc := &types.DocumentHighlights{DocumentID: dj.DocumentID}
		for _, tj := range dj.Tables {
			t := types.NewTableHighlights(tj.TableID, tj.Context)
			for _, e := range tj.Columns {
				t.Columns[e.Index] = types.HighlightEntry(e)
			}
			for _, e := range tj.Rows {
				t.Rows[e.Index] = types.HighlightEntry(e)
			}
			doc.Tables = append(doc.Tables, t)
		}
		s.Documents[doc.DocumentID] = doc
	}
	return s
}
