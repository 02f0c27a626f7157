package core

import (
	"fmt"

	"fittingcore/pkg/domain"
)

// resolveTransition validates the transition spec and returns the
// nominal diameter and the mass of one transition. The walk mirrors the
// tee validation with the larger end as the run and the smaller end as
// the branch; transition tables carry no execution column.
func resolveTransition(table domain.Table, spec domain.TransitionSpec) (nominal, massPerUnit float64, err error) {
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
	if !lt.contains(lt.schema.BranchDiameter, spec.BranchDiameter, byDiameter) {
		return 0, 0, domain.UnknownBranchDimensionError{
			Standard:  table.Standard(),
			Diameter:  spec.Diameter,
			Branch:    spec.BranchDiameter,
			Available: lt.distinct(lt.schema.BranchDiameter, byDiameter),
		}
	}
	byBranch := rowFilter{col: lt.schema.BranchDiameter, want: spec.BranchDiameter}
	if !lt.contains(lt.schema.BranchThickness, spec.BranchThickness, byBranch) {
		return 0, 0, domain.UnknownBranchThicknessError{
			Standard:  table.Standard(),
			Branch:    spec.BranchDiameter,
			Thickness: spec.BranchThickness,
			Available: lt.distinct(lt.schema.BranchThickness, byBranch),
		}
	}
	row, ok := lt.find(
		byDiameter,
		rowFilter{col: lt.schema.Thickness, want: spec.Thickness},
		byBranch,
		rowFilter{col: lt.schema.BranchThickness, want: spec.BranchThickness},
	)
	if !ok {
		return 0, 0, domain.NoMatchingCombinationError{
			Standard:        table.Standard(),
			Diameter:        spec.Diameter,
			Thickness:       spec.Thickness,
			Branch:          spec.BranchDiameter,
			BranchThickness: spec.BranchThickness,
			Available:       lt.thicknessPairs(spec.Diameter, spec.BranchDiameter),
		}
	}
	massPerUnit, ok = lt.number(row, lt.schema.Mass)
	if !ok {
		return 0, 0, fmt.Errorf("table %s: empty mass cell for diameter %v branch %v", table.Standard(), spec.Diameter, spec.BranchDiameter)
	}
	nominal, _ = lt.number(diameterRow, lt.schema.Nominal)
	return nominal, massPerUnit, nil
}
