// Package tablecodec reads and writes the semicolon-separated layout
// the GOST reference tables are published in. Decoding assigns each
// column a single kind: a column is numeric when every non-empty cell
// parses as a number, text otherwise. Decimal commas and decimal
// points are both accepted.
package tablecodec

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"fittingcore/pkg/domain"
)

// Decode reads one reference table for the named standard. Header
// cells that are blank or carry an "Unnamed" placeholder label are
// dropped together with their data cells; rows shorter than the header
// are padded with empty cells.
func Decode(r io.Reader, standard string) (domain.Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return domain.Table{}, fmt.Errorf("table %s: read header: %w", standard, err)
	}
	type column struct {
		name   string
		source int
	}
	columns := make([]column, 0, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" || strings.HasPrefix(name, "Unnamed") {
			continue
		}
		columns = append(columns, column{name: name, source: i})
	}
	if len(columns) == 0 {
		return domain.Table{}, fmt.Errorf("table %s: header has no named columns", standard)
	}

	var records [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.Table{}, fmt.Errorf("table %s: read row %d: %w", standard, len(records)+1, err)
		}
		cells := make([]string, len(columns))
		for j, col := range columns {
			if col.source < len(record) {
				cells[j] = strings.TrimSpace(record[col.source])
			}
		}
		records = append(records, cells)
	}

	numeric := make([]bool, len(columns))
	for j := range numeric {
		numeric[j] = true
		for _, cells := range records {
			if cells[j] == "" {
				continue
			}
			if _, ok := ParseNumber(cells[j]); !ok {
				numeric[j] = false
				break
			}
		}
	}

	names := make([]string, len(columns))
	for j, col := range columns {
		names[j] = col.name
	}
	rows := make([]domain.Row, 0, len(records))
	for _, cells := range records {
		row := make(domain.Row, len(columns))
		for j, cell := range cells {
			switch {
			case cell == "":
				row[j] = domain.NullValue()
			case numeric[j]:
				v, _ := ParseNumber(cell)
				row[j] = domain.NumberValue(v)
			default:
				row[j] = domain.TextValue(cell)
			}
		}
		rows = append(rows, row)
	}
	return domain.NewTable(standard, names, rows)
}

// Encode writes the table in the layout Decode reads. Numeric cells
// are written with decimal points, which Decode accepts alongside
// decimal commas.
func Encode(w io.Writer, table domain.Table) error {
	writer := csv.NewWriter(w)
	writer.Comma = ';'
	columns := table.Columns()
	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("table %s: write header: %w", table.Standard(), err)
	}
	for i := 0; i < table.Len(); i++ {
		record := make([]string, len(columns))
		for j := range columns {
			record[j] = table.Value(i, j).String()
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("table %s: write row %d: %w", table.Standard(), i+1, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("table %s: flush: %w", table.Standard(), err)
	}
	return nil
}

// ParseNumber reads a table cell as a number. The cell is trimmed and
// decimal commas are normalized before parsing.
func ParseNumber(s string) (float64, bool) {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if normalized == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
