package domain

import (
	"errors"
	"testing"
)

func TestNewPipeRoundsMassToTwoDecimals(t *testing.T) {
	pipe := NewPipe(PipeSpec{Standard: StandardPipeSeamlessHot, Diameter: 57, Thickness: 3.5, Length: 10}, 4.62)
	if pipe.MassPerMeter != 4.62 {
		t.Fatalf("mass per meter: got %v, want 4.62", pipe.MassPerMeter)
	}
	if pipe.Mass != 46.2 {
		t.Fatalf("pipe mass: got %v, want 46.2", pipe.Mass)
	}
}

func TestPipeMassBankersRounding(t *testing.T) {
	cases := []struct {
		massPerMeter float64
		want         float64
	}{
		{0.125, 0.12},
		{0.135, 0.14},
		{0.115, 0.12},
		{4.62, 4.62},
	}
	for _, tc := range cases {
		pipe := NewPipe(PipeSpec{Length: 1}, tc.massPerMeter)
		if pipe.Mass != tc.want {
			t.Fatalf("mass for %v: got %v, want %v", tc.massPerMeter, pipe.Mass, tc.want)
		}
	}
}

func TestPipeInstallRecordsBreakdown(t *testing.T) {
	pipe := NewPipe(PipeSpec{Standard: StandardPipeSeamlessHot, Diameter: 57, Thickness: 3.5, Length: 10}, 4.62)
	if err := pipe.Install(4, 3, 2); err != nil {
		t.Fatalf("install: %v", err)
	}
	got := pipe.Installation
	if got == nil {
		t.Fatalf("expected installation breakdown to be recorded")
	}
	if got.Height0To8 != 4 || got.Height8To10 != 3 || got.HeightOver10 != 2 {
		t.Fatalf("breakdown stored %+v, want 4/3/2", got)
	}
}

func TestPipeInstallAcceptsExactLength(t *testing.T) {
	pipe := NewPipe(PipeSpec{Length: 10}, 4.62)
	if err := pipe.Install(8, 1, 1); err != nil {
		t.Fatalf("install at exact length: %v", err)
	}
}

func TestPipeInstallRejectsExcessLength(t *testing.T) {
	pipe := NewPipe(PipeSpec{Length: 10}, 4.62)
	err := pipe.Install(8, 2, 1)
	if err == nil {
		t.Fatalf("expected installation length error")
	}
	var lengthErr InstallationLengthExceededError
	if !errors.As(err, &lengthErr) {
		t.Fatalf("expected InstallationLengthExceededError, got %T", err)
	}
	if lengthErr.Requested != 11 || lengthErr.Length != 10 {
		t.Fatalf("error carries %v/%v, want 11/10", lengthErr.Requested, lengthErr.Length)
	}
	if pipe.Installation != nil {
		t.Fatalf("failed install must leave the pipe unchanged")
	}
}

func TestPipeInstallFailureKeepsPreviousBreakdown(t *testing.T) {
	pipe := NewPipe(PipeSpec{Length: 10}, 4.62)
	if err := pipe.Install(5, 3, 1); err != nil {
		t.Fatalf("install: %v", err)
	}
	if err := pipe.Install(9, 3, 1); err == nil {
		t.Fatalf("expected installation length error")
	}
	if pipe.Installation == nil || pipe.Installation.Height0To8 != 5 {
		t.Fatalf("failed install must keep the previous breakdown, got %+v", pipe.Installation)
	}
}

func TestNewElbowDerivesKindFromAngle(t *testing.T) {
	cases := []struct {
		angle int
		want  int
	}{
		{45, 1},
		{60, 1},
		{90, 1},
		{180, 2},
	}
	for _, tc := range cases {
		elbow := NewElbow(ElbowSpec{Angle: tc.angle, Count: 1}, 100, 2.42)
		if elbow.Kind != tc.want {
			t.Fatalf("kind for angle %d: got %d, want %d", tc.angle, elbow.Kind, tc.want)
		}
	}
}

func TestNewElbowTotalMassKeepsTwoDecimals(t *testing.T) {
	elbow := NewElbow(ElbowSpec{Angle: 90, Count: 3}, 100, 2.42)
	if elbow.TotalMass != 7.26 {
		t.Fatalf("total mass: got %v, want 7.26", elbow.TotalMass)
	}
}

func TestNewTeeTotalMassRoundsToWholeKilograms(t *testing.T) {
	tee := NewTee(TeeSpec{Count: 4}, 100, 1, 2.99)
	if tee.TotalMass != 12 {
		t.Fatalf("total mass: got %v, want 12", tee.TotalMass)
	}
}

func TestTeeAndTransitionRoundingDivergesFromElbow(t *testing.T) {
	// 3 x 2.42 stays 7.26 for elbows but collapses to 7 for tees and
	// transitions.
	elbow := NewElbow(ElbowSpec{Angle: 90, Count: 3}, 100, 2.42)
	tee := NewTee(TeeSpec{Count: 3}, 100, 1, 2.42)
	transition := NewTransition(TransitionSpec{Count: 3}, 100, 2.42)
	if elbow.TotalMass != 7.26 {
		t.Fatalf("elbow total: got %v, want 7.26", elbow.TotalMass)
	}
	if tee.TotalMass != 7 {
		t.Fatalf("tee total: got %v, want 7", tee.TotalMass)
	}
	if transition.TotalMass != 7 {
		t.Fatalf("transition total: got %v, want 7", transition.TotalMass)
	}
}

func TestWholeKilogramRoundingIsBankers(t *testing.T) {
	cases := []struct {
		mass float64
		want float64
	}{
		{2.5, 2},
		{3.5, 4},
		{2.4, 2},
		{2.6, 3},
	}
	for _, tc := range cases {
		tee := NewTee(TeeSpec{Count: 1}, 100, 1, tc.mass)
		if tee.TotalMass != tc.want {
			t.Fatalf("rounding %v: got %v, want %v", tc.mass, tee.TotalMass, tc.want)
		}
	}
}

func TestNewSupportKeepsSingleUnitMass(t *testing.T) {
	support := NewSupport(SupportSpec{
		Standard:   StandardSupport,
		Type:       DefaultSupportType,
		Diameter:   108,
		Execution:  "А11",
		SteelGrade: DefaultSupportSteelGrade,
	}, 2.14)
	if support.MassPerUnit != 2.14 {
		t.Fatalf("mass per unit: got %v, want 2.14", support.MassPerUnit)
	}
}
