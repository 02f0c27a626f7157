// Package domain defines the reference-table primitives, fitting
// specifications, validated fitting entities, and error types used by
// fittingcore.
package domain

import (
	"encoding/json"
	"fmt"
)

// ValueKind discriminates the states a reference-table cell can hold.
type ValueKind int

// Cell states. Empty cells decode to KindNull; columns whose non-empty
// cells all parse as numbers decode to KindNumber; everything else is text.
const (
	KindNull ValueKind = iota
	KindNumber
	KindText
)

// Value is a single immutable reference-table cell.
type Value struct {
	kind ValueKind
	num  float64
	text string
}

// NumberValue returns a numeric cell.
func NumberValue(v float64) Value {
	return Value{kind: KindNumber, num: v}
}

// TextValue returns a textual cell.
func TextValue(s string) Value {
	return Value{kind: KindText, text: s}
}

// NullValue returns the empty cell.
func NullValue() Value {
	return Value{}
}

// Kind reports the cell state.
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsNull reports whether the cell is empty.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Number returns the numeric content and whether the cell is numeric.
func (v Value) Number() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// Text returns the textual content; numeric and empty cells return "".
func (v Value) Text() string {
	return v.text
}

// String renders the cell for display: numbers minimally formatted,
// text verbatim, empty cells as "".
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return formatNumber(v.num)
	case KindText:
		return v.text
	default:
		return ""
	}
}

// MarshalJSON encodes the cell as a JSON number, string, or null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return json.Marshal(v.num)
	case KindText:
		return json.Marshal(v.text)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a JSON number, string, or null into the cell.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case nil:
		*v = Value{}
	case float64:
		*v = NumberValue(t)
	case string:
		*v = TextValue(t)
	default:
		return fmt.Errorf("unsupported cell payload %T", raw)
	}
	return nil
}

// Row is one reference-table row; cells are positional and follow the
// table's column order.
type Row []Value

// Table is an immutable reference table for one standard. Rows and
// columns are fixed after construction; a resolved family schema is
// attached by the provider at load time.
type Table struct {
	standard string
	columns  []string
	index    map[string]int
	rows     []Row
	schema   *ResolvedSchema
}

// NewTable constructs a table, validating shape invariants: a non-empty
// standard name, unique column names, and rows matching the column count.
func NewTable(standard string, columns []string, rows []Row) (Table, error) {
	if standard == "" {
		return Table{}, fmt.Errorf("table standard name is empty")
	}
	index := make(map[string]int, len(columns))
	for i, name := range columns {
		if name == "" {
			return Table{}, fmt.Errorf("table %s: column %d has no name", standard, i)
		}
		if _, dup := index[name]; dup {
			return Table{}, fmt.Errorf("table %s: duplicate column %q", standard, name)
		}
		index[name] = i
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return Table{}, fmt.Errorf("table %s: row %d has %d cells, want %d", standard, i, len(row), len(columns))
		}
	}
	return Table{standard: standard, columns: columns, index: index, rows: rows}, nil
}

// Standard returns the standard name the table belongs to.
func (t Table) Standard() string {
	return t.standard
}

// Columns returns a copy of the column names in table order.
func (t Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// ColumnIndex locates a column by name.
func (t Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.rows)
}

// Value returns the cell at (row, col); out-of-range positions return
// the empty cell.
func (t Table) Value(row, col int) Value {
	if row < 0 || row >= len(t.rows) || col < 0 || col >= len(t.columns) {
		return Value{}
	}
	return t.rows[row][col]
}

// Schema returns the resolved family schema attached at load time.
func (t Table) Schema() (ResolvedSchema, bool) {
	if t.schema == nil {
		return ResolvedSchema{}, false
	}
	return *t.schema, true
}

type tableJSON struct {
	Standard string   `json:"standard"`
	Columns  []string `json:"columns"`
	Rows     []Row    `json:"rows"`
}

// MarshalJSON encodes the table without its resolved schema; schemas are
// re-resolved when a table is loaded again.
func (t Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(tableJSON{Standard: t.standard, Columns: t.columns, Rows: t.rows})
}

// UnmarshalJSON decodes a table encoded by MarshalJSON.
func (t *Table) UnmarshalJSON(data []byte) error {
	var raw tableJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decoded, err := NewTable(raw.Standard, raw.Columns, raw.Rows)
	if err != nil {
		return err
	}
	*t = decoded
	return nil
}
