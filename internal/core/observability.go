package core

import (
	"context"
	"sync"
	"time"
)

// Clock supplies the timestamps used for durations and audit entries.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// Logger receives structured key-value pairs at catalog operation
// boundaries. The default logger discards everything.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// MetricsRecorder observes one catalog operation outcome.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

// Tracer starts spans around catalog operations.
type Tracer interface {
	Start(ctx context.Context, operation string) (context.Context, TraceSpan)
}

// TraceSpan finishes a span started by a Tracer.
type TraceSpan interface {
	End(err error)
}

// AuditStatus classifies an audit entry outcome.
type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusError   AuditStatus = "error"
)

// AuditEntry records one catalog operation for the audit trail.
// Designation carries the constructed fitting's short designation on
// success.
type AuditEntry struct {
	Operation   string      `json:"operation"`
	Status      AuditStatus `json:"status"`
	Designation string      `json:"designation,omitempty"`
	Error       string      `json:"error,omitempty"`
	OccurredAt  time.Time   `json:"occurred_at"`
}

// AuditRecorder receives audit entries for every catalog operation.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry)
}

// MemoryAuditRecorder retains audit entries in memory.
type MemoryAuditRecorder struct {
	mu      sync.Mutex
	entries []AuditEntry
}

// Record stores an audit entry.
func (r *MemoryAuditRecorder) Record(_ context.Context, entry AuditEntry) {
	r.mu.Lock()
	r.entries = append(r.entries, entry)
	r.mu.Unlock()
}

// Entries returns a copy of the recorded audit entries.
func (r *MemoryAuditRecorder) Entries() []AuditEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]AuditEntry, len(r.entries))
	copy(out, r.entries)
	return out
}
