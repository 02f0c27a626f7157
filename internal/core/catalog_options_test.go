package core

import (
	"context"
	"testing"
	"time"

	"fittingcore/pkg/domain"
)

type stubClock struct{ t time.Time }

func (s stubClock) Now() time.Time { return s.t }

type captureLogger struct{ calls []string }

func (c *captureLogger) Debug(msg string, _ ...any) { c.calls = append(c.calls, "d:"+msg) }
func (c *captureLogger) Info(msg string, _ ...any)  { c.calls = append(c.calls, "i:"+msg) }
func (c *captureLogger) Warn(msg string, _ ...any)  { c.calls = append(c.calls, "w:"+msg) }
func (c *captureLogger) Error(msg string, _ ...any) { c.calls = append(c.calls, "e:"+msg) }

// TestCatalogOptionsCoversClockLogger ensures option overrides take effect (clock + logger coverage).
func TestCatalogOptionsCoversClockLogger(t *testing.T) {
	fixed := time.Unix(123, 0).UTC()
	clk := stubClock{t: fixed}
	log := &captureLogger{}
	audit := &captureAuditRecorder{}
	catalog := newTestCatalog(t, WithClock(clk), WithLogger(log), WithAuditRecorder(audit))

	if _, err := catalog.NewPipe(context.Background(), domain.PipeSpec{Diameter: 57, Thickness: 3.5, Length: 1}); err != nil {
		t.Fatalf("create pipe: %v", err)
	}
	if catalog.clock == nil || catalog.clock.Now().Unix() != fixed.Unix() {
		t.Fatalf("expected clock override to be used")
	}
	if len(log.calls) == 0 {
		t.Fatalf("expected logger to record calls")
	}
	if len(audit.entries) != 1 || !audit.entries[0].OccurredAt.Equal(fixed) {
		t.Fatalf("expected audit timestamp from stub clock, got %+v", audit.entries)
	}
}

func TestCatalogNilSourceSelectsEmbeddedTables(t *testing.T) {
	catalog := newTestCatalog(t)
	table, err := catalog.Provider().Load(context.Background(), "ГОСТ 8734-75")
	if err != nil {
		t.Fatalf("load embedded table: %v", err)
	}
	if table.Len() == 0 {
		t.Fatalf("expected rows in embedded table")
	}
}

func TestWithRegistryReplacesFamilies(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(FamilyConfig{
		Family:          domain.FamilyPipe,
		Schema:          domain.Schema{Diameter: "dn", ThicknessColumns: true},
		Standards:       []string{domain.StandardPipeSeamlessHot},
		DefaultStandard: domain.StandardPipeSeamlessHot,
		SteelGrade:      domain.DefaultSteelGrade,
	}); err != nil {
		t.Fatalf("register pipe family: %v", err)
	}
	catalog := newTestCatalog(t, WithRegistry(registry))

	if got := catalog.Standards(); len(got) != 1 || got[0] != domain.StandardPipeSeamlessHot {
		t.Fatalf("unexpected standards: %v", got)
	}
	// Families absent from the custom registry are rejected.
	if _, err := catalog.NewElbow(context.Background(), domain.ElbowSpec{Diameter: 108, Thickness: 4, Angle: 90}); err == nil {
		t.Fatalf("expected unregistered family error")
	}
}
