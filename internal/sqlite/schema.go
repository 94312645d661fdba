// Package sqlite implements a SQLite persister for the highlight store.
// The database is a plain mirror of the store: every Save rewrites all rows
// in one transaction and every Load reads them back.
package sqlite

// Schema DDL for all tables.
const (
	createMeta = `CREATE TABLE IF NOT EXISTS meta (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`

	createDocuments = `CREATE TABLE IF NOT EXISTS documents (
    document_id TEXT PRIMARY KEY
);`

	createTables = `CREATE TABLE IF NOT EXISTS tables (
    table_id TEXT PRIMARY KEY,
    document_id TEXT NOT NULL,
    ordinal INTEGER NOT NULL,
    declared_name TEXT NOT NULL,
    before_text TEXT NOT NULL,
    after_text TEXT NOT NULL,
    FOREIGN KEY (document_id) REFERENCES documents(document_id) ON DELETE CASCADE
);`

	createEntries = `CREATE TABLE IF NOT EXISTS entries (
    table_id TEXT NOT NULL,
    axis TEXT NOT NULL,
    idx INTEGER NOT NULL,
    color TEXT NOT NULL,
    predicate TEXT NOT NULL,
    extend INTEGER NOT NULL,
    PRIMARY KEY (table_id, axis, idx),
    FOREIGN KEY (table_id) REFERENCES tables(table_id) ON DELETE CASCADE
);`
)

// Index DDL for common queries.
const (
	idxTablesDocument = `CREATE INDEX IF NOT EXISTS idx_tables_document ON tables(document_id, ordinal);`
)

// schemaDDL lists all CREATE statements in dependency order.
var schemaDDL = []string{
	createMeta,
	createDocuments,
	createTables,
	createEntries,
	idxTablesDocument,
}

// Meta keys written on every save.
const (
	metaNotice  = "notice"
	metaFormat  = "format"
	metaVersion = "version"

	noticeText    = "Generated by tablemarks. Do not edit."
	formatName    = "tablemarks/highlights"
	formatVersion = "1"
)
