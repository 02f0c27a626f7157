package core

import (
	"fmt"

	"fittingcore/pkg/domain"
)

// resolveTee validates the tee spec and returns the nominal diameter,
// the execution code and the mass of one tee. Validation walks the
// dimensions in order: run diameter, run thickness for that diameter,
// branch diameter for that run diameter, branch thickness for that
// branch diameter, then the full four-dimension combination.
func resolveTee(table domain.Table, spec domain.TeeSpec) (nominal, execution, massPerUnit float64, err error) {
	lt, err := newLookupTable(table)
	if err != nil {
		return 0, 0, 0, err
	}
	diameterRow, ok := lt.find(rowFilter{col: lt.schema.Diameter, want: spec.Diameter})
	if !ok {
		return 0, 0, 0, domain.UnknownDimensionError{
			Standard: table.Standard(),
			Column:   lt.columnName(lt.schema.Diameter),
			Value:    spec.Diameter,
		}
	}
	byDiameter := rowFilter{col: lt.schema.Diameter, want: spec.Diameter}
	if !lt.contains(lt.schema.Thickness, spec.Thickness, byDiameter) {
		return 0, 0, 0, domain.UnknownThicknessError{
			Standard:  table.Standard(),
			Diameter:  spec.Diameter,
			Thickness: spec.Thickness,
			Available: lt.distinct(lt.schema.Thickness, byDiameter),
		}
	}
	if !lt.contains(lt.schema.BranchDiameter, spec.BranchDiameter, byDiameter) {
		return 0, 0, 0, domain.UnknownBranchDimensionError{
			Standard:  table.Standard(),
			Diameter:  spec.Diameter,
			Branch:    spec.BranchDiameter,
			Available: lt.distinct(lt.schema.BranchDiameter, byDiameter),
		}
	}
	byBranch := rowFilter{col: lt.schema.BranchDiameter, want: spec.BranchDiameter}
	if !lt.contains(lt.schema.BranchThickness, spec.BranchThickness, byBranch) {
		return 0, 0, 0, domain.UnknownBranchThicknessError{
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
		return 0, 0, 0, domain.NoMatchingCombinationError{
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
		return 0, 0, 0, fmt.Errorf("table %s: empty mass cell for diameter %v branch %v", table.Standard(), spec.Diameter, spec.BranchDiameter)
	}
	nominal, _ = lt.number(diameterRow, lt.schema.Nominal)
	execution, _ = lt.number(row, lt.schema.Execution)
	return nominal, execution, massPerUnit, nil
}
