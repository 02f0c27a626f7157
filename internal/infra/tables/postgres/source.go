// Package postgres implements a reference-table source backed by a
// PostgreSQL server. Tables are stored as JSONB payloads keyed by
// standard name and are seeded from another source before first use.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"fittingcore/pkg/domain"
)

var (
	_ domain.TableSource = (*Source)(nil)
	_ domain.TableWriter = (*Source)(nil)
)

const (
	defaultDriver = "pgx"
	// Default DSN keeps parity with OpenTableSource defaults while allowing overrides via env.
	defaultDSN = "postgres://localhost/fittingcore?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// Source reads and writes reference tables in PostgreSQL.
type Source struct {
	db *sql.DB
}

// NewSource opens a connection using the provided DSN (falls back to
// defaultDSN), verifies it with a ping, and ensures the table store
// exists.
func NewSource(dsn string) (*Source, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	ddl := `CREATE TABLE IF NOT EXISTS reference_tables (
		standard TEXT PRIMARY KEY,
		payload JSONB NOT NULL
	)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return nil, fmt.Errorf("ensure reference_tables: %w", err)
	}
	return &Source{db: db}, nil
}

// Load decodes the stored table for the named standard.
func (s *Source) Load(ctx context.Context, standard string) (domain.Table, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM reference_tables WHERE standard = $1`, standard).Scan(&payload)
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
		`INSERT INTO reference_tables(standard,payload) VALUES($1,$2) ON CONFLICT(standard) DO UPDATE SET payload=EXCLUDED.payload`,
		table.Standard(), payload); err != nil {
		return fmt.Errorf("upsert %s: %w", table.Standard(), err)
	}
	return nil
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Source) DB() *sql.DB { return s.db }

// OverrideSQLOpen swaps the sqlOpen function for tests and returns a restore function.
func OverrideSQLOpen(fn func(driverName, dataSourceName string) (*sql.DB, error)) func() {
	openMu.Lock()
	defer openMu.Unlock()
	prev := sqlOpen
	sqlOpen = fn
	return func() {
		openMu.Lock()
		defer openMu.Unlock()
		sqlOpen = prev
	}
}
