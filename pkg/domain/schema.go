package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Family identifies a fitting family sharing one reference-table layout.
type Family string

// Fitting families. Armature assemblies carry no reference table and are
// validated without a lookup.
const (
	FamilyPipe       Family = "pipe"
	FamilyElbow      Family = "elbow"
	FamilyTee        Family = "tee"
	FamilyTransition Family = "transition"
	FamilySupport    Family = "support"
	FamilyArmature   Family = "armature"
)

// Schema names the columns a fitting family reads from its reference
// tables. Fields left empty are absent from the family's layout. The
// schema is resolved to column positions once per table load; lookups
// never assemble column names from field values.
type Schema struct {
	Diameter        string
	Thickness       string
	BranchDiameter  string
	BranchThickness string
	Nominal         string
	Execution       string
	Mass            string
	// AngleMass maps an elbow angle to the column carrying the
	// per-unit mass for that angle.
	AngleMass map[int]string
	// ThicknessColumns marks the pipe layout in which every column
	// except the diameter column is labelled with a thickness value and
	// carries mass-per-meter cells.
	ThicknessColumns bool
}

// ThicknessColumn binds a pipe-table thickness label to its column.
type ThicknessColumn struct {
	Thickness float64
	Column    int
}

// ResolvedSchema carries the column positions of a Schema within one
// concrete table. Absent columns hold -1.
type ResolvedSchema struct {
	Diameter        int
	Thickness       int
	BranchDiameter  int
	BranchThickness int
	Nominal         int
	Execution       int
	Mass            int
	AngleMass       map[int]int
	// Thicknesses lists pipe thickness columns in ascending thickness
	// order; empty for families without ThicknessColumns.
	Thicknesses []ThicknessColumn
}

// Resolve binds the schema to the table's columns and returns a copy of
// the table carrying the resolved positions. Named columns that cannot
// be located fail the resolution; for the pipe layout every non-diameter
// column must carry a numeric thickness label.
func (t Table) Resolve(s Schema) (Table, error) {
	rs := ResolvedSchema{
		Diameter:        -1,
		Thickness:       -1,
		BranchDiameter:  -1,
		BranchThickness: -1,
		Nominal:         -1,
		Execution:       -1,
		Mass:            -1,
	}
	locate := func(name string) (int, error) {
		if name == "" {
			return -1, nil
		}
		i, ok := t.index[name]
		if !ok {
			return -1, fmt.Errorf("table %s: column %q not found", t.standard, name)
		}
		return i, nil
	}
	var err error
	if rs.Diameter, err = locate(s.Diameter); err != nil {
		return Table{}, err
	}
	if rs.Thickness, err = locate(s.Thickness); err != nil {
		return Table{}, err
	}
	if rs.BranchDiameter, err = locate(s.BranchDiameter); err != nil {
		return Table{}, err
	}
	if rs.BranchThickness, err = locate(s.BranchThickness); err != nil {
		return Table{}, err
	}
	if rs.Nominal, err = locate(s.Nominal); err != nil {
		return Table{}, err
	}
	if rs.Execution, err = locate(s.Execution); err != nil {
		return Table{}, err
	}
	if rs.Mass, err = locate(s.Mass); err != nil {
		return Table{}, err
	}
	if len(s.AngleMass) > 0 {
		rs.AngleMass = make(map[int]int, len(s.AngleMass))
		for angle, column := range s.AngleMass {
			i, err := locate(column)
			if err != nil {
				return Table{}, err
			}
			rs.AngleMass[angle] = i
		}
	}
	if s.ThicknessColumns {
		for i, name := range t.columns {
			if i == rs.Diameter {
				continue
			}
			label, err := parseThicknessLabel(name)
			if err != nil {
				return Table{}, fmt.Errorf("table %s: column %q is not a thickness label", t.standard, name)
			}
			rs.Thicknesses = append(rs.Thicknesses, ThicknessColumn{Thickness: label, Column: i})
		}
		sort.Slice(rs.Thicknesses, func(a, b int) bool {
			return rs.Thicknesses[a].Thickness < rs.Thicknesses[b].Thickness
		})
	}
	resolved := t
	resolved.schema = &rs
	return resolved, nil
}

// parseThicknessLabel reads a decimal-comma thickness column label such
// as "3,5".
func parseThicknessLabel(label string) (float64, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(label), ",", ".")
	return strconv.ParseFloat(normalized, 64)
}
