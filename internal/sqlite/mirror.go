// Package sqlite implements the relational status mirror on SQLite.
// The mirror is an optional second collaborator: closing a store in the
// workbook may also flip its status code here.
package sqlite

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/retailops/storeclose/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// Compile-time interface check.
var _ types.StatusMirror = (*Mirror)(nil)

// StoreRow is one row of the mirror's stores table.
type StoreRow struct {
	Code   string
	Name   string
	Status int
}

// Mirror implements StatusMirror over a SQLite database.
type Mirror struct {
	db  *sql.DB
	log *slog.Logger
}

// Open opens (creating if needed) the mirror database at the configured
// path and ensures the schema exists.
func Open(cfg types.MirrorConfig, log *slog.Logger) (*Mirror, error) {
	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening mirror database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing mirror schema: %w", err)
	}
	log.Debug("mirror opened", "path", cfg.Path)
	return &Mirror{db: db, log: log}, nil
}

// Close releases the database handle.
func (m *Mirror) Close() error {
	return m.db.Close()
}

// Lookup finds a store by canonical code. Exact match is tried first, then
// a case-insensitive trimmed comparison, which tolerates codes stored with
// padding or different letter case by other systems writing this table.
// Returns types.ErrStoreNotFound when neither matches.
func (m *Mirror) Lookup(code string) (*StoreRow, error) {
	row := m.db.QueryRow(
		"SELECT code, name, status FROM stores WHERE code = ?", code,
	)
	store, err := scanStore(row)
	if err == nil {
		return store, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("looking up store %s: %w", code, err)
	}

	row = m.db.QueryRow(
		"SELECT code, name, status FROM stores WHERE UPPER(TRIM(code)) = UPPER(?)", code,
	)
	store, err = scanStore(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrStoreNotFound
		}
		return nil, fmt.Errorf("looking up store %s: %w", code, err)
	}
	return store, nil
}

// UpdateStatus sets the status code for the store with the given canonical
// identifier. The row is located with Lookup, so the update tolerates the
// same code variations. Returns types.ErrStoreNotFound when no row matches.
func (m *Mirror) UpdateStatus(code string, status int) error {
	store, err := m.Lookup(code)
	if err != nil {
		return err
	}

	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning mirror transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"UPDATE stores SET status = ? WHERE code = ?", status, store.Code,
	); err != nil {
		return fmt.Errorf("updating store %s: %w", code, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing mirror update: %w", err)
	}

	m.log.Debug("mirror status updated", "code", store.Code, "status", status)
	return nil
}

// InsertStore adds or replaces a store row. Other systems normally own the
// table contents; this is used for seeding and tests.
func (m *Mirror) InsertStore(code, name string, status int) error {
	_, err := m.db.Exec(
		"INSERT OR REPLACE INTO stores (code, name, status) VALUES (?, ?, ?)",
		code, name, status,
	)
	if err != nil {
		return fmt.Errorf("inserting store %s: %w", code, err)
	}
	return nil
}

func scanStore(row *sql.Row) (*StoreRow, error) {
	var s StoreRow
	if err := row.Scan(&s.Code, &s.Name, &s.Status); err != nil {
		return nil, err
	}
	return &s, nil
}
