package domain

import "math"

// Defaults applied by the catalog when a spec leaves the field empty.
const (
	// DefaultSteelGrade is the steel grade assumed for elbows, tees and
	// transitions; renders omit the grade suffix when it matches.
	DefaultSteelGrade = "Сталь 20"
	// DefaultSupportSteelGrade is the steel grade assumed for supports.
	DefaultSupportSteelGrade = "ВСт3пс"
	// DefaultSupportType selects the welded-body support series.
	DefaultSupportType = "КП"
	// DefaultSupportExecution is the support execution code assumed
	// when the spec leaves it empty.
	DefaultSupportExecution = "А11"
)

// Registered standard names.
const (
	StandardPipeSeamlessHot  = "ГОСТ 8732-78"
	StandardPipeSeamlessCold = "ГОСТ 8734-75"
	StandardPipeWelded       = "ГОСТ 10704-91"
	StandardElbow            = "ГОСТ 17375-2001"
	StandardTee              = "ГОСТ 17376-2001"
	StandardTransition       = "ГОСТ 17378-2001"
	StandardSupport          = "ОСТ 36-146-88"
)

// PipeSpec carries the user-supplied pipe parameters. Diameter is the
// table's dn value, Thickness the wall thickness in millimeters, Length
// the pipe length in meters.
type PipeSpec struct {
	Standard  string
	Diameter  float64
	Thickness float64
	Length    float64
}

// PipeInstallation is the height-bucketed installation breakdown
// recorded by Pipe.Install, in meters per height band.
type PipeInstallation struct {
	Height0To8   float64
	Height8To10  float64
	HeightOver10 float64
}

// Pipe is a validated pipe with its table-derived mass figures.
type Pipe struct {
	PipeSpec
	// MassPerMeter is the table's mass of one meter, kg.
	MassPerMeter float64
	// Mass is Length times MassPerMeter rounded to two decimals, kg.
	Mass float64
	// Installation holds the height breakdown once Install succeeds.
	Installation *PipeInstallation
}

// NewPipe assembles a pipe from a validated spec and its mass-per-meter
// table value.
func NewPipe(spec PipeSpec, massPerMeter float64) *Pipe {
	return &Pipe{
		PipeSpec:     spec,
		MassPerMeter: massPerMeter,
		Mass:         round2(spec.Length * massPerMeter),
	}
}

// Install records the installation-height breakdown. It fails with
// InstallationLengthExceededError when the combined length exceeds the
// pipe length, leaving the pipe unchanged.
func (p *Pipe) Install(height0To8, height8To10, heightOver10 float64) error {
	total := height0To8 + height8To10 + heightOver10
	if total > p.Length {
		return InstallationLengthExceededError{Requested: total, Length: p.Length}
	}
	p.Installation = &PipeInstallation{
		Height0To8:   height0To8,
		Height8To10:  height8To10,
		HeightOver10: heightOver10,
	}
	return nil
}

// ElbowSpec carries the user-supplied elbow parameters. Angle is one of
// 45, 60, 90 or 180 degrees.
type ElbowSpec struct {
	Standard   string
	Diameter   float64
	Thickness  float64
	Angle      int
	Count      int
	SteelGrade string
}

// Elbow is a validated elbow with its table-derived fields.
type Elbow struct {
	ElbowSpec
	// Nominal is the DN value derived from the outer diameter.
	Nominal float64
	// Kind is 1 for angles up to 90 degrees and 2 beyond; it only
	// affects the rendered designation.
	Kind int
	// MassPerUnit is the table's mass for one elbow at the spec angle, kg.
	MassPerUnit float64
	// TotalMass is Count times MassPerUnit rounded to two decimals, kg.
	TotalMass float64
}

// NewElbow assembles an elbow from a validated spec and its derived
// table values.
func NewElbow(spec ElbowSpec, nominal, massPerUnit float64) *Elbow {
	kind := 1
	if spec.Angle > 90 {
		kind = 2
	}
	return &Elbow{
		ElbowSpec:   spec,
		Nominal:     nominal,
		Kind:        kind,
		MassPerUnit: massPerUnit,
		TotalMass:   round2(float64(spec.Count) * massPerUnit),
	}
}

// TeeSpec carries the user-supplied tee parameters: run diameter and
// thickness, branch diameter and thickness.
type TeeSpec struct {
	Standard        string
	Diameter        float64
	Thickness       float64
	BranchDiameter  float64
	BranchThickness float64
	Count           int
	SteelGrade      string
}

// Tee is a validated tee with its table-derived fields.
type Tee struct {
	TeeSpec
	// Nominal is the DN value derived from the run diameter.
	Nominal float64
	// Execution is the table's execution code for the matched row.
	Execution float64
	// MassPerUnit is the table's mass for one tee, kg.
	MassPerUnit float64
	// TotalMass is Count times MassPerUnit rounded to whole kilograms.
	TotalMass float64
}

// NewTee assembles a tee from a validated spec and its derived table
// values.
func NewTee(spec TeeSpec, nominal, execution, massPerUnit float64) *Tee {
	return &Tee{
		TeeSpec:     spec,
		Nominal:     nominal,
		Execution:   execution,
		MassPerUnit: massPerUnit,
		TotalMass:   round0(float64(spec.Count) * massPerUnit),
	}
}

// TransitionSpec carries the user-supplied transition parameters: the
// larger diameter and thickness, then the smaller pair.
type TransitionSpec struct {
	Standard        string
	Diameter        float64
	Thickness       float64
	BranchDiameter  float64
	BranchThickness float64
	Count           int
	SteelGrade      string
}

// Transition is a validated transition with its table-derived fields.
type Transition struct {
	TransitionSpec
	// Nominal is the DN value derived from the larger diameter.
	Nominal float64
	// MassPerUnit is the table's mass for one transition, kg.
	MassPerUnit float64
	// TotalMass is Count times MassPerUnit rounded to whole kilograms.
	TotalMass float64
}

// NewTransition assembles a transition from a validated spec and its
// derived table values.
func NewTransition(spec TransitionSpec, nominal, massPerUnit float64) *Transition {
	return &Transition{
		TransitionSpec: spec,
		Nominal:        nominal,
		MassPerUnit:    massPerUnit,
		TotalMass:      round0(float64(spec.Count) * massPerUnit),
	}
}

// SupportSpec carries the user-supplied support parameters. Type and
// Standard compose the table key; Execution may name any of the codes a
// multi-value table cell offers.
type SupportSpec struct {
	Standard   string
	Type       string
	Diameter   float64
	Execution  string
	SteelGrade string
}

// Support is a validated single pipe support. Supports carry no count;
// callers multiply the mass externally for bulk totals.
type Support struct {
	SupportSpec
	// MassPerUnit is the table's mass for one support, kg.
	MassPerUnit float64
}

// NewSupport assembles a support from a validated spec and its table
// mass.
func NewSupport(spec SupportSpec, massPerUnit float64) *Support {
	return &Support{SupportSpec: spec, MassPerUnit: massPerUnit}
}

// ArmatureSpec carries the valve-assembly parameters. PN is the nominal
// pressure in MPa; temperatures are in degrees Celsius. Zero
// temperatures select the catalog defaults; OmitRotaryPlug drops the
// rotary plug line from the bill of materials.
type ArmatureSpec struct {
	DN                int
	PN                float64
	Type              string
	FlangeCount       int
	GasketCount       int
	AdditionalGaskets int
	OmitRotaryPlug    bool
	TMax              int
	TMin              int
	TDesign           int
}

// ArmatureAssembly is a validated valve assembly. It derives nothing
// from reference tables; the entity exists for its rendered bill of
// materials.
type ArmatureAssembly struct {
	ArmatureSpec
}

// NewArmatureAssembly assembles a valve kit from a validated spec.
func NewArmatureAssembly(spec ArmatureSpec) *ArmatureAssembly {
	return &ArmatureAssembly{ArmatureSpec: spec}
}

// round2 and round0 mirror banker's rounding: pipe and elbow masses keep
// two decimals, tee and transition masses round to whole kilograms.
func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}

func round0(v float64) float64 {
	return math.RoundToEven(v)
}
