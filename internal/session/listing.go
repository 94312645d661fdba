package session

import (
	"github.com/mesh-intelligence/tablemarks/internal/anchor"
	"github.com/mesh-intelligence/tablemarks/internal/highlight"
	"github.com/mesh-intelligence/tablemarks/pkg/types"
)

// TextSource returns the current text of a document. An error leaves the
// positions of that document's tables unknown.
type TextSource func(docID string) (string, error)

// Summaries lists every known table of the given documents, or of all
// known documents when docIDs is empty.
func Summaries(store *highlight.Store, docIDs []string, read TextSource, opts anchor.Options) []types.TableSummary {
	if len(docIDs) == 0 {
		docIDs = store.Documents()
	}
	var out []types.TableSummary
	for _, id := range docIDs {
		tables := store.ListTables(id)
		if len(tables) == 0 {
			continue
		}
		var text string
		haveText := false
		if read != nil {
			if t, err := read(id); err == nil {
				text, haveText = t, true
			}
		}
		for _, t := range tables {
			sum := types.TableSummary{
				DocumentID:  id,
				TableID:     t.TableID,
				Name:        t.Context.DisplayName(),
				ColumnCount: len(t.Columns),
				RowCount:    len(t.Rows),
			}
			if haveText {
				if pos, ok := anchor.Locate(text, t.Context, opts); ok {
					sum.Position = &pos
				}
			}
			out = append(out, sum)
		}
	}
	return out
}

// Summaries lists the tables of the session's document.
func (s *Session) Summaries() []types.TableSummary {
	text := s.doc.Text()
	return Summaries(s.store, []string{s.docID}, func(string) (string, error) { return text, nil }, s.opts)
}
