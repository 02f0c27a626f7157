package core

import (
	"fmt"
	"strconv"
	"strings"

	"fittingcore/pkg/domain"
)

// validateArmature checks the valve-assembly parameters. No reference
// table backs armature kits, so the checks are structural: positive
// pressure ratings, non-negative part counts, and a coherent
// temperature range.
func validateArmature(spec domain.ArmatureSpec) error {
	if spec.DN <= 0 {
		return domain.InvalidParameterError{
			Parameter:  "nominal diameter",
			Value:      strconv.Itoa(spec.DN),
			Constraint: "must be positive",
		}
	}
	if spec.PN <= 0 {
		return domain.InvalidParameterError{
			Parameter:  "nominal pressure",
			Value:      strconv.FormatFloat(spec.PN, 'f', -1, 64),
			Constraint: "must be positive",
		}
	}
	if strings.TrimSpace(spec.Type) == "" {
		return domain.InvalidParameterError{
			Parameter:  "armature type",
			Value:      spec.Type,
			Constraint: "must not be empty",
		}
	}
	for _, count := range []struct {
		name  string
		value int
	}{
		{name: "flange count", value: spec.FlangeCount},
		{name: "gasket count", value: spec.GasketCount},
		{name: "additional gasket count", value: spec.AdditionalGaskets},
	} {
		if count.value < 0 {
			return domain.InvalidParameterError{
				Parameter:  count.name,
				Value:      strconv.Itoa(count.value),
				Constraint: "must not be negative",
			}
		}
	}
	if spec.TMin > spec.TMax {
		return domain.InvalidParameterError{
			Parameter:  "temperature range",
			Value:      fmt.Sprintf("%d..%d", spec.TMin, spec.TMax),
			Constraint: "minimum exceeds maximum",
		}
	}
	return nil
}
