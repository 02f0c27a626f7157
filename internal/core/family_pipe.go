package core

import (
	"fittingcore/pkg/domain"
)

// resolvePipe validates the pipe spec against its table and returns the
// mass of one meter. Pipe tables carry one column per thickness; the
// thicknesses available for a diameter are the columns holding a value
// on its row.
func resolvePipe(table domain.Table, spec domain.PipeSpec) (float64, error) {
	lt, err := newLookupTable(table)
	if err != nil {
		return 0, err
	}
	row, ok := lt.find(rowFilter{col: lt.schema.Diameter, want: spec.Diameter})
	if !ok {
		return 0, domain.UnknownDimensionError{
			Standard: table.Standard(),
			Column:   lt.columnName(lt.schema.Diameter),
			Value:    spec.Diameter,
		}
	}
	var available []float64
	for _, tc := range lt.schema.Thicknesses {
		v, ok := lt.number(row, tc.Column)
		if !ok {
			continue
		}
		if tc.Thickness == spec.Thickness {
			return v, nil
		}
		available = append(available, tc.Thickness)
	}
	return 0, domain.UnknownThicknessError{
		Standard:  table.Standard(),
		Diameter:  spec.Diameter,
		Thickness: spec.Thickness,
		Available: available,
	}
}
