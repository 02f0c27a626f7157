package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fittingcore/internal/gostdata"
	"fittingcore/pkg/domain"
)

// countingSource wraps the embedded tables and counts backend loads per
// standard.
type countingSource struct {
	backend gostdata.Source
	loads   map[string]int
}

func newCountingSource() *countingSource {
	return &countingSource{loads: make(map[string]int)}
}

func (s *countingSource) Load(ctx context.Context, standard string) (domain.Table, error) {
	s.loads[standard]++
	return s.backend.Load(ctx, standard)
}

func (s *countingSource) Standards(ctx context.Context) ([]string, error) {
	return s.backend.Standards(ctx)
}

func TestProviderCachesResolvedTables(t *testing.T) {
	ctx := context.Background()
	source := newCountingSource()
	log := &captureLogger{}
	provider, err := NewTableProvider(source, DefaultRegistry(), 0, log)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	first, err := provider.Load(ctx, "ГОСТ 17375-2001")
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	if _, ok := first.Schema(); !ok {
		t.Fatalf("expected resolved schema on loaded table")
	}
	second, err := provider.Load(ctx, "ГОСТ 17375-2001")
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if _, ok := second.Schema(); !ok {
		t.Fatalf("expected resolved schema on cached table")
	}
	if got := source.loads["ГОСТ 17375-2001"]; got != 1 {
		t.Fatalf("expected one backend load, got %d", got)
	}
	var sawHit bool
	for _, call := range log.calls {
		if strings.Contains(call, "table cache hit") {
			sawHit = true
		}
	}
	if !sawHit {
		t.Fatalf("expected cache hit log, got %v", log.calls)
	}
}

func TestProviderEvictsBeyondCapacity(t *testing.T) {
	ctx := context.Background()
	source := newCountingSource()
	provider, err := NewTableProvider(source, DefaultRegistry(), 1, nil)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	for _, standard := range []string{"ГОСТ 8732-78", "ГОСТ 8734-75", "ГОСТ 8732-78"} {
		if _, err := provider.Load(ctx, standard); err != nil {
			t.Fatalf("load %s: %v", standard, err)
		}
	}
	if got := source.loads["ГОСТ 8732-78"]; got != 2 {
		t.Fatalf("expected eviction to force a reload, got %d backend loads", got)
	}
}

func TestProviderPurgeDropsCache(t *testing.T) {
	ctx := context.Background()
	source := newCountingSource()
	provider, err := NewTableProvider(source, DefaultRegistry(), 0, nil)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	if _, err := provider.Load(ctx, "ГОСТ 17376-2001"); err != nil {
		t.Fatalf("load: %v", err)
	}
	provider.Purge()
	if _, err := provider.Load(ctx, "ГОСТ 17376-2001"); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := source.loads["ГОСТ 17376-2001"]; got != 2 {
		t.Fatalf("expected purge to force a reload, got %d backend loads", got)
	}
}

func TestProviderRejectsUnknownStandardBeforeBackend(t *testing.T) {
	ctx := context.Background()
	source := newCountingSource()
	provider, err := NewTableProvider(source, DefaultRegistry(), 0, nil)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	_, err = provider.Load(ctx, "ГОСТ 0000-00")
	var std domain.UnknownStandardError
	if !errors.As(err, &std) {
		t.Fatalf("expected unknown standard error, got %v", err)
	}
	if len(std.Known) != 7 {
		t.Fatalf("expected registry standards enumerated, got %v", std.Known)
	}
	if got := source.loads["ГОСТ 0000-00"]; got != 0 {
		t.Fatalf("expected no backend load for unknown standard, got %d", got)
	}
}

// brokenSource claims a registered standard but serves a table missing
// the family's columns.
type brokenSource struct{}

func (brokenSource) Load(_ context.Context, standard string) (domain.Table, error) {
	return domain.NewTable(standard, []string{"X"}, []domain.Row{{domain.NumberValue(1)}})
}

func (brokenSource) Standards(context.Context) ([]string, error) {
	return []string{"ГОСТ 17375-2001"}, nil
}

func TestProviderReportsSchemaResolutionFailure(t *testing.T) {
	provider, err := NewTableProvider(brokenSource{}, DefaultRegistry(), 0, nil)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	_, err = provider.Load(context.Background(), "ГОСТ 17375-2001")
	if err == nil || !strings.Contains(err.Error(), `column "D" not found`) {
		t.Fatalf("expected schema resolution error, got %v", err)
	}
}

func TestNewTableProviderValidation(t *testing.T) {
	if _, err := NewTableProvider(nil, DefaultRegistry(), 0, nil); err == nil {
		t.Fatalf("expected error for nil source")
	}
	if _, err := NewTableProvider(gostdata.Source{}, nil, 0, nil); err == nil {
		t.Fatalf("expected error for nil registry")
	}
}
