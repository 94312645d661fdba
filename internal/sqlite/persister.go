package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/tablemarks/pkg/types"
)

var _ types.Persister = (*Persister)(nil)

// DatabaseFile is the database file name inside the data directory.
const DatabaseFile = "highlights.db"

// Persister stores the highlight store in a SQLite database. The database
// is opened per call so no connection outlives a single Save or Load.
type Persister struct {
	Path string
}

// NewPersister returns a persister for the database in dataDir.
func NewPersister(dataDir string) *Persister {
	if dataDir == "" {
		dataDir = "."
	}
	return &Persister{Path: filepath.Join(dataDir, DatabaseFile)}
}

func (p *Persister) open() (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(p.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	db, err := sql.Open("sqlite", p.Path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", p.Path, err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}
	return db, nil
}

// Save replaces every row with the contents of s in a single transaction.
func (p *Persister) Save(s types.Store) error {
	db, err := p.open()
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning save transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{"DELETE FROM entries", "DELETE FROM tables", "DELETE FROM documents", "DELETE FROM meta"} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("clearing store: %w", err)
		}
	}
	if err := writeMeta(tx); err != nil {
		return err
	}
	if err := insertStore(tx, s); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save transaction: %w", err)
	}
	return nil
}

func writeMeta(tx *sql.Tx) error {
	for k, v := range map[string]string{metaNotice: noticeText, metaFormat: formatName, metaVersion: formatVersion} {
		if _, err := tx.Exec("INSERT INTO meta (key, value) VALUES (?, ?)", k, v); err != nil {
			return fmt.Errorf("writing meta %s: %w", k, err)
		}
	}
	return nil
}

// Load reads the whole store. A missing database yields an empty store.
func (p *Persister) Load() (types.Store, error) {
	if _, err := os.Stat(p.Path); errors.Is(err, os.ErrNotExist) {
		return types.NewStore(), nil
	}
	db, err := p.open()
	if err != nil {
		return types.Store{}, err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return types.Store{}, fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	return loadStore(tx)
}
