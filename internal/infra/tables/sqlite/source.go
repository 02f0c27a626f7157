// Package sqlite implements a reference-table source backed by a
// single SQLite file. Tables are stored as JSON payloads keyed by
// standard name and are seeded from another source before first use.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"fittingcore/pkg/domain"
)

// Source reads and writes reference tables in a SQLite database.
type Source struct {
	db   *sql.DB
	path string
}

var (
	_ domain.TableSource = (*Source)(nil)
	_ domain.TableWriter = (*Source)(nil)
)

// NewSource opens the database, creating the file and the table store
// on first use. An empty path selects ./fittingcore.db.
func NewSource(path string) (*Source, error) {
	if path == "" {
		path = "fittingcore.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS reference_tables (
		standard TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create reference_tables: %w", err)
	}
	return &Source{db: db, path: path}, nil
}

// Load decodes the stored table for the named standard.
func (s *Source) Load(ctx context.Context, standard string) (domain.Table, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM reference_tables WHERE standard = ?`, standard).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		known, kerr := s.Standards(ctx)
		if kerr != nil {
			return domain.Table{}, kerr
		}
		return domain.Table{}, domain.UnknownStandardError{Standard: standard, Known: known}
	}
	if err != nil {
		return domain.Table{}, fmt.Errorf("select table %s: %w", standard, err)
	}
	var table domain.Table
	if err := json.Unmarshal(payload, &table); err != nil {
		return domain.Table{}, fmt.Errorf("decode table %s: %w", standard, err)
	}
	return table, nil
}

// Standards lists the stored standard names, sorted.
func (s *Source) Standards(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT standard FROM reference_tables ORDER BY standard`)
	if err != nil {
		return nil, fmt.Errorf("select standards: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []string
	for rows.Next() {
		var standard string
		if err := rows.Scan(&standard); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, standard)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate standards: %w", err)
	}
	return out, nil
}

// SaveTable stores the table's JSON payload, replacing any previous
// payload for the standard.
func (s *Source) SaveTable(ctx context.Context, table domain.Table) error {
	payload, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("encode table %s: %w", table.Standard(), err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO reference_tables(standard,payload) VALUES(?,?) ON CONFLICT(standard) DO UPDATE SET payload=excluded.payload`,
		table.Standard(), payload); err != nil {
		return fmt.Errorf("upsert %s: %w", table.Standard(), err)
	}
	return nil
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Source) DB() *sql.DB { return s.db }

// Path returns the configured database path.
func (s *Source) Path() string { return s.path }
