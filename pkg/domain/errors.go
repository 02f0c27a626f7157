package domain

import (
	"fmt"
	"strings"
)

// UnknownStandardError reports a standard name absent from the registry
// or backend. Known lists the registered alternatives.
type UnknownStandardError struct {
	Standard string
	Known    []string
}

func (e UnknownStandardError) Error() string {
	return fmt.Sprintf("standard %q is not registered (known standards: %s)", e.Standard, strings.Join(e.Known, ", "))
}

// UnknownDimensionError reports a primary diameter absent from the
// table's diameter column. No alternatives are enumerated at this step.
type UnknownDimensionError struct {
	Standard string
	Column   string
	Value    float64
}

func (e UnknownDimensionError) Error() string {
	return fmt.Sprintf("diameter %s is not listed in column %q of %s", formatNumber(e.Value), e.Column, e.Standard)
}

// UnknownThicknessError reports a wall thickness unavailable for the
// given diameter, enumerating every thickness the table offers for it.
type UnknownThicknessError struct {
	Standard  string
	Diameter  float64
	Thickness float64
	Available []float64
}

func (e UnknownThicknessError) Error() string {
	return fmt.Sprintf("thickness %s is not available for diameter %s in %s (available: %s)",
		formatNumber(e.Thickness), formatNumber(e.Diameter), e.Standard, joinNumbers(e.Available))
}

// UnknownBranchDimensionError reports a branch diameter unavailable for
// the given primary diameter, enumerating the branch diameters the table
// offers for it.
type UnknownBranchDimensionError struct {
	Standard  string
	Diameter  float64
	Branch    float64
	Available []float64
}

func (e UnknownBranchDimensionError) Error() string {
	return fmt.Sprintf("branch diameter %s is not available for diameter %s in %s (available: %s)",
		formatNumber(e.Branch), formatNumber(e.Diameter), e.Standard, joinNumbers(e.Available))
}

// UnknownBranchThicknessError reports a branch wall thickness
// unavailable for the given branch diameter.
type UnknownBranchThicknessError struct {
	Standard  string
	Branch    float64
	Thickness float64
	Available []float64
}

func (e UnknownBranchThicknessError) Error() string {
	return fmt.Sprintf("branch thickness %s is not available for branch diameter %s in %s (available: %s)",
		formatNumber(e.Thickness), formatNumber(e.Branch), e.Standard, joinNumbers(e.Available))
}

// UnknownAngleError reports an elbow angle outside the supported set.
type UnknownAngleError struct {
	Angle int
	Valid []int
}

func (e UnknownAngleError) Error() string {
	parts := make([]string, len(e.Valid))
	for i, a := range e.Valid {
		parts[i] = fmt.Sprintf("%d", a)
	}
	return fmt.Sprintf("angle %d is not supported (valid angles: %s)", e.Angle, strings.Join(parts, ", "))
}

// UnknownExecutionError reports a support execution code unavailable for
// the given diameter. Available lists the distinct codes after splitting
// multi-value cells.
type UnknownExecutionError struct {
	Standard  string
	Diameter  float64
	Execution string
	Available []string
}

func (e UnknownExecutionError) Error() string {
	return fmt.Sprintf("execution %q is not available for diameter %s in %s (available: %s)",
		e.Execution, formatNumber(e.Diameter), e.Standard, strings.Join(e.Available, ", "))
}

// ThicknessPair is a valid (thickness, branch thickness) combination
// enumerated by NoMatchingCombinationError.
type ThicknessPair struct {
	Thickness       float64
	BranchThickness float64
}

// NoMatchingCombinationError reports that the individual dimensions are
// valid but no table row matches their combination.
type NoMatchingCombinationError struct {
	Standard        string
	Diameter        float64
	Thickness       float64
	Branch          float64
	BranchThickness float64
	Available       []ThicknessPair
}

func (e NoMatchingCombinationError) Error() string {
	pairs := make([]string, len(e.Available))
	for i, p := range e.Available {
		pairs[i] = fmt.Sprintf("(%s, %s)", formatNumber(p.Thickness), formatNumber(p.BranchThickness))
	}
	return fmt.Sprintf("no row matches D=%s T=%s D1=%s T1=%s in %s (available thickness pairs: %s)",
		formatNumber(e.Diameter), formatNumber(e.Thickness), formatNumber(e.Branch), formatNumber(e.BranchThickness),
		e.Standard, strings.Join(pairs, ", "))
}

// InstallationLengthExceededError reports an installation-height
// breakdown whose sum exceeds the pipe length.
type InstallationLengthExceededError struct {
	Requested float64
	Length    float64
}

func (e InstallationLengthExceededError) Error() string {
	return fmt.Sprintf("installation length %sm exceeds pipe length %sm", formatNumber(e.Requested), formatNumber(e.Length))
}

// InvalidParameterError reports a spec parameter that fails validation
// before any table lookup.
type InvalidParameterError struct {
	Parameter  string
	Value      string
	Constraint string
}

func (e InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Parameter, e.Value, e.Constraint)
}

func joinNumbers(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatNumber(v)
	}
	return strings.Join(parts, ", ")
}
