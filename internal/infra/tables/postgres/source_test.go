package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"testing"
	"time"

	"fittingcore/internal/gostdata"
	"fittingcore/pkg/domain"
)

func loadEmbedded(t *testing.T, standard string) domain.Table {
	t.Helper()
	table, err := gostdata.Source{}.Load(context.Background(), standard)
	if err != nil {
		t.Fatalf("load embedded %s: %v", standard, err)
	}
	return table
}

func TestNewSourceAppliesDDL(t *testing.T) {
	db, conn := newStubDB()
	var openedDSN string
	restore := OverrideSQLOpen(func(_, dsn string) (*sql.DB, error) {
		openedDSN = dsn
		return db, nil
	})
	defer restore()

	source, err := NewSource("")
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	if source.DB() != db {
		t.Fatalf("expected the stub db to be retained")
	}
	if openedDSN != defaultDSN {
		t.Fatalf("dsn = %s, want %s", openedDSN, defaultDSN)
	}
	var sawDDL bool
	for _, stmt := range conn.execs {
		if strings.Contains(strings.ToUpper(stmt), "CREATE TABLE") {
			sawDDL = true
			break
		}
	}
	if !sawDDL {
		t.Fatalf("expected reference_tables DDL to be applied, got execs: %v", conn.execs)
	}
}

func TestSourceSaveAndLoadRoundTrip(t *testing.T) {
	db, conn := newStubDB()
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()

	source, err := NewSource("ignored")
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	ctx := context.Background()
	table := loadEmbedded(t, "ГОСТ 8732-78")
	if err := source.SaveTable(ctx, table); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, ok := conn.payloads["ГОСТ 8732-78"]; !ok {
		t.Fatalf("payload not stored, have %d entries", len(conn.payloads))
	}

	loaded, err := source.Load(ctx, "ГОСТ 8732-78")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Standard() != table.Standard() {
		t.Fatalf("standard = %s, want %s", loaded.Standard(), table.Standard())
	}
	if loaded.Len() != table.Len() {
		t.Fatalf("rows = %d, want %d", loaded.Len(), table.Len())
	}
	if strings.Join(loaded.Columns(), ";") != strings.Join(table.Columns(), ";") {
		t.Fatalf("columns = %v, want %v", loaded.Columns(), table.Columns())
	}
	if loaded.Value(0, 0) != table.Value(0, 0) {
		t.Fatalf("cell (0,0) = %v, want %v", loaded.Value(0, 0), table.Value(0, 0))
	}
}

func TestSourceStandardsSorted(t *testing.T) {
	db, _ := newStubDB()
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()

	source, err := NewSource("ignored")
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	ctx := context.Background()
	for _, standard := range []string{"ГОСТ 8734-75", "ГОСТ 10704-91", "ГОСТ 8732-78"} {
		if err := source.SaveTable(ctx, loadEmbedded(t, standard)); err != nil {
			t.Fatalf("save %s: %v", standard, err)
		}
	}

	got, err := source.Standards(ctx)
	if err != nil {
		t.Fatalf("standards: %v", err)
	}
	want := []string{"ГОСТ 10704-91", "ГОСТ 8732-78", "ГОСТ 8734-75"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("standards = %v, want %v", got, want)
	}
}

func TestSourceUnknownStandard(t *testing.T) {
	db, _ := newStubDB()
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()

	source, err := NewSource("ignored")
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	ctx := context.Background()
	if err := source.SaveTable(ctx, loadEmbedded(t, "ГОСТ 8734-75")); err != nil {
		t.Fatalf("save: %v", err)
	}

	_, err = source.Load(ctx, "ГОСТ 0-0")
	var unknown domain.UnknownStandardError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownStandardError, got %v", err)
	}
	if unknown.Standard != "ГОСТ 0-0" {
		t.Fatalf("standard = %s", unknown.Standard)
	}
	if len(unknown.Known) != 1 || unknown.Known[0] != "ГОСТ 8734-75" {
		t.Fatalf("known = %v", unknown.Known)
	}
}

func TestNewSourceOpenAndPingFailures(t *testing.T) {
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) {
		return nil, errors.New("refused")
	})
	_, err := NewSource("ignored")
	restore()
	if err == nil || !strings.Contains(err.Error(), "open postgres") {
		t.Fatalf("expected open error, got %v", err)
	}

	db, conn := newStubDB()
	conn.failPing = true
	restore = OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()
	_, err = NewSource("ignored")
	if err == nil || !strings.Contains(err.Error(), "ping postgres") {
		t.Fatalf("expected ping error, got %v", err)
	}
}

func TestNewSourceDDLFailure(t *testing.T) {
	db, conn := newStubDB()
	conn.failExec = true
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()

	_, err := NewSource("ignored")
	if err == nil || !strings.Contains(err.Error(), "ensure reference_tables") {
		t.Fatalf("expected ddl error, got %v", err)
	}
}

func TestSourceQueryAndExecFailures(t *testing.T) {
	db, conn := newStubDB()
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()

	source, err := NewSource("ignored")
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	ctx := context.Background()

	conn.failQuery = true
	if _, err := source.Load(ctx, "ГОСТ 8732-78"); err == nil || !strings.Contains(err.Error(), "select table") {
		t.Fatalf("expected select error, got %v", err)
	}
	if _, err := source.Standards(ctx); err == nil || !strings.Contains(err.Error(), "select standards") {
		t.Fatalf("expected standards error, got %v", err)
	}
	conn.failQuery = false

	conn.rowsErr = errors.New("connection reset")
	if _, err := source.Standards(ctx); err == nil || !strings.Contains(err.Error(), "iterate standards") {
		t.Fatalf("expected iterate error, got %v", err)
	}
	conn.rowsErr = nil

	conn.failExec = true
	if err := source.SaveTable(ctx, loadEmbedded(t, "ГОСТ 8732-78")); err == nil || !strings.Contains(err.Error(), "upsert") {
		t.Fatalf("expected upsert error, got %v", err)
	}
}

func TestSourceDecodeFailure(t *testing.T) {
	db, conn := newStubDB()
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()

	source, err := NewSource("ignored")
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	conn.payloads["ГОСТ 8732-78"] = []byte("{not json")

	_, err = source.Load(context.Background(), "ГОСТ 8732-78")
	if err == nil || !strings.Contains(err.Error(), "decode table") {
		t.Fatalf("expected decode error, got %v", err)
	}
}

// --- stub driver helpers ---

type stubDriver struct {
	conn *stubConn
}

func (d *stubDriver) Open(string) (driver.Conn, error) {
	return d.conn, nil
}

type stubConn struct {
	execs     []string
	payloads  map[string][]byte
	failPing  bool
	failExec  bool
	failQuery bool
	rowsErr   error
}

func newStubDB() (*sql.DB, *stubConn) {
	conn := &stubConn{payloads: make(map[string][]byte)}
	name := fmt.Sprintf("stubpg%d", time.Now().UnixNano())
	sql.Register(name, &stubDriver{conn: conn})
	db, err := sql.Open(name, "stub")
	if err != nil {
		panic(err)
	}
	return db, conn
}

func (c *stubConn) Prepare(string) (driver.Stmt, error) { return nil, fmt.Errorf("not implemented") }
func (c *stubConn) Close() error                        { return nil }
func (c *stubConn) Begin() (driver.Tx, error)           { return nil, fmt.Errorf("not implemented") }

func (c *stubConn) Ping(_ context.Context) error {
	if c.failPing {
		return fmt.Errorf("ping fail")
	}
	return nil
}

func (c *stubConn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	c.execs = append(c.execs, query)
	if c.failExec {
		return nil, fmt.Errorf("exec fail")
	}
	if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(query)), "INSERT INTO") {
		if len(args) != 2 {
			return nil, fmt.Errorf("expected 2 args, got %d", len(args))
		}
		standard, ok := args[0].Value.(string)
		if !ok {
			return nil, fmt.Errorf("standard arg is %T", args[0].Value)
		}
		payload, ok := args[1].Value.([]byte)
		if !ok {
			return nil, fmt.Errorf("payload arg is %T", args[1].Value)
		}
		c.payloads[standard] = append([]byte(nil), payload...)
		return driver.RowsAffected(1), nil
	}
	return driver.RowsAffected(0), nil
}

func (c *stubConn) QueryContext(_ context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	if c.failQuery {
		return nil, fmt.Errorf("query fail")
	}
	if strings.Contains(query, "WHERE standard") {
		if len(args) != 1 {
			return nil, fmt.Errorf("expected 1 arg, got %d", len(args))
		}
		standard, _ := args[0].Value.(string)
		var rows [][]driver.Value
		if payload, ok := c.payloads[standard]; ok {
			rows = append(rows, []driver.Value{append([]byte(nil), payload...)})
		}
		return &stubRows{cols: []string{"payload"}, rows: rows}, nil
	}
	standards := make([]string, 0, len(c.payloads))
	for standard := range c.payloads {
		standards = append(standards, standard)
	}
	sort.Strings(standards)
	rows := make([][]driver.Value, 0, len(standards))
	for _, standard := range standards {
		rows = append(rows, []driver.Value{standard})
	}
	return &stubRows{cols: []string{"standard"}, rows: rows, err: c.rowsErr}, nil
}

type stubRows struct {
	cols []string
	rows [][]driver.Value
	idx  int
	err  error
}

func (r *stubRows) Columns() []string { return r.cols }
func (r *stubRows) Close() error      { return nil }

func (r *stubRows) Next(dest []driver.Value) error {
	if r.idx >= len(r.rows) {
		if r.err != nil {
			return r.err
		}
		return io.EOF
	}
	copy(dest, r.rows[r.idx])
	r.idx++
	return nil
}
