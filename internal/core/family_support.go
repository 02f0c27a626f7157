package core

import (
	"fmt"
	"sort"
	"strings"

	"fittingcore/pkg/domain"
)

// resolveSupport validates the support spec and returns the mass of one
// support. Execution cells may carry several codes joined by "/"; the
// spec code matches any of the trimmed alternatives, and the first
// matching row supplies the mass.
func resolveSupport(table domain.Table, spec domain.SupportSpec) (float64, error) {
	lt, err := newLookupTable(table)
	if err != nil {
		return 0, err
	}
	if _, ok := lt.find(rowFilter{col: lt.schema.Diameter, want: spec.Diameter}); !ok {
		return 0, domain.UnknownDimensionError{
			Standard: table.Standard(),
			Column:   lt.columnName(lt.schema.Diameter),
			Value:    spec.Diameter,
		}
	}
	want := strings.TrimSpace(spec.Execution)
	for i := 0; i < lt.table.Len(); i++ {
		if v, ok := lt.number(i, lt.schema.Diameter); !ok || v != spec.Diameter {
			continue
		}
		if !executionCellMatches(lt.table.Value(i, lt.schema.Execution).Text(), want) {
			continue
		}
		mass, ok := lt.number(i, lt.schema.Mass)
		if !ok {
			return 0, fmt.Errorf("table %s: empty mass cell for diameter %v execution %s", table.Standard(), spec.Diameter, spec.Execution)
		}
		return mass, nil
	}
	return 0, domain.UnknownExecutionError{
		Standard:  table.Standard(),
		Diameter:  spec.Diameter,
		Execution: spec.Execution,
		Available: lt.executionCodes(spec.Diameter),
	}
}

func executionCellMatches(cell, want string) bool {
	for _, code := range strings.Split(cell, "/") {
		if strings.TrimSpace(code) == want {
			return true
		}
	}
	return false
}

// executionCodes collects the sorted distinct execution codes offered
// for a diameter, splitting multi-value cells.
func (lt lookupTable) executionCodes(diameter float64) []string {
	seen := make(map[string]struct{})
	var out []string
	for i := 0; i < lt.table.Len(); i++ {
		if v, ok := lt.number(i, lt.schema.Diameter); !ok || v != diameter {
			continue
		}
		for _, code := range strings.Split(lt.table.Value(i, lt.schema.Execution).Text(), "/") {
			code = strings.TrimSpace(code)
			if code == "" {
				continue
			}
			if _, dup := seen[code]; dup {
				continue
			}
			seen[code] = struct{}{}
			out = append(out, code)
		}
	}
	sort.Strings(out)
	return out
}
