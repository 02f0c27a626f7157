package core

import (
	"fmt"

	"fittingcore/pkg/domain"
)

// resolveElbow validates the elbow spec and returns the nominal
// diameter and the mass of one elbow at the spec angle. The table
// carries one mass column per angle; the angle set itself comes from
// the family configuration.
func resolveElbow(table domain.Table, spec domain.ElbowSpec, angles []int) (nominal, massPerUnit float64, err error) {
	lt, err := newLookupTable(table)
	if err != nil {
		return 0, 0, err
	}
	diameterRow, ok := lt.find(rowFilter{col: lt.schema.Diameter, want: spec.Diameter})
	if !ok {
		return 0, 0, domain.UnknownDimensionError{
			Standard: table.Standard(),
			Column:   lt.columnName(lt.schema.Diameter),
			Value:    spec.Diameter,
		}
	}
	byDiameter := rowFilter{col: lt.schema.Diameter, want: spec.Diameter}
	if !lt.contains(lt.schema.Thickness, spec.Thickness, byDiameter) {
		return 0, 0, domain.UnknownThicknessError{
			Standard:  table.Standard(),
			Diameter:  spec.Diameter,
			Thickness: spec.Thickness,
			Available: lt.distinct(lt.schema.Thickness, byDiameter),
		}
	}
	if !containsInt(angles, spec.Angle) {
		return 0, 0, domain.UnknownAngleError{Angle: spec.Angle, Valid: angles}
	}
	massColumn, ok := lt.schema.AngleMass[spec.Angle]
	if !ok {
		return 0, 0, fmt.Errorf("table %s: no mass column for angle %d", table.Standard(), spec.Angle)
	}
	row, ok := lt.find(byDiameter, rowFilter{col: lt.schema.Thickness, want: spec.Thickness})
	if !ok {
		return 0, 0, fmt.Errorf("table %s: no row for diameter %v thickness %v", table.Standard(), spec.Diameter, spec.Thickness)
	}
	massPerUnit, ok = lt.number(row, massColumn)
	if !ok {
		return 0, 0, fmt.Errorf("table %s: empty mass cell for diameter %v angle %d", table.Standard(), spec.Diameter, spec.Angle)
	}
	nominal, _ = lt.number(diameterRow, lt.schema.Nominal)
	return nominal, massPerUnit, nil
}

func containsInt(values []int, want int) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
