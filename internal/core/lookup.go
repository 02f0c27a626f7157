package core

import (
	"fmt"
	"sort"

	"fittingcore/pkg/domain"
)

// lookupTable wraps a schema-resolved table with the row and column
// scans the family validations share. All scans compare exact numeric
// values and visit rows in table order, so the first matching row wins.
type lookupTable struct {
	table  domain.Table
	schema domain.ResolvedSchema
}

func newLookupTable(table domain.Table) (lookupTable, error) {
	schema, ok := table.Schema()
	if !ok {
		return lookupTable{}, fmt.Errorf("table %s has no resolved schema", table.Standard())
	}
	return lookupTable{table: table, schema: schema}, nil
}

// rowFilter requires a row to hold want in column col.
type rowFilter struct {
	col  int
	want float64
}

// number reads the numeric cell at (row, col); unbound columns and
// empty or textual cells report false.
func (lt lookupTable) number(row, col int) (float64, bool) {
	if col < 0 {
		return 0, false
	}
	return lt.table.Value(row, col).Number()
}

func (lt lookupTable) columnName(col int) string {
	if col < 0 {
		return ""
	}
	return lt.table.Columns()[col]
}

func (lt lookupTable) matches(row int, filters []rowFilter) bool {
	for _, f := range filters {
		v, ok := lt.number(row, f.col)
		if !ok || v != f.want {
			return false
		}
	}
	return true
}

// find returns the first row matching every filter.
func (lt lookupTable) find(filters ...rowFilter) (int, bool) {
	for i := 0; i < lt.table.Len(); i++ {
		if lt.matches(i, filters) {
			return i, true
		}
	}
	return 0, false
}

// contains reports whether any row matching the filters holds want in
// col.
func (lt lookupTable) contains(col int, want float64, filters ...rowFilter) bool {
	for i := 0; i < lt.table.Len(); i++ {
		if !lt.matches(i, filters) {
			continue
		}
		if v, ok := lt.number(i, col); ok && v == want {
			return true
		}
	}
	return false
}

// distinct collects the sorted distinct values of col among rows
// matching every filter.
func (lt lookupTable) distinct(col int, filters ...rowFilter) []float64 {
	seen := make(map[float64]struct{})
	var out []float64
	for i := 0; i < lt.table.Len(); i++ {
		if !lt.matches(i, filters) {
			continue
		}
		v, ok := lt.number(i, col)
		if !ok {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Float64s(out)
	return out
}

// thicknessPairs collects the distinct (thickness, branch thickness)
// pairs among rows carrying the diameter pair, in table order.
func (lt lookupTable) thicknessPairs(diameter, branch float64) []domain.ThicknessPair {
	seen := make(map[domain.ThicknessPair]struct{})
	var out []domain.ThicknessPair
	for i := 0; i < lt.table.Len(); i++ {
		if !lt.matches(i, []rowFilter{
			{col: lt.schema.Diameter, want: diameter},
			{col: lt.schema.BranchDiameter, want: branch},
		}) {
			continue
		}
		t, okT := lt.number(i, lt.schema.Thickness)
		t1, okT1 := lt.number(i, lt.schema.BranchThickness)
		if !okT || !okT1 {
			continue
		}
		pair := domain.ThicknessPair{Thickness: t, BranchThickness: t1}
		if _, dup := seen[pair]; dup {
			continue
		}
		seen[pair] = struct{}{}
		out = append(out, pair)
	}
	return out
}
