package core

import (
	"log/slog"

	"go.uber.org/zap"
)

// SlogLogger adapts a *slog.Logger to the catalog Logger interface.
type SlogLogger struct {
	base *slog.Logger
}

// NewSlogLogger wraps base; nil falls back to slog.Default().
func NewSlogLogger(base *slog.Logger) *SlogLogger {
	if base == nil {
		base = slog.Default()
	}
	return &SlogLogger{base: base}
}

func (l *SlogLogger) Debug(msg string, args ...any) { l.base.Debug(msg, args...) }
func (l *SlogLogger) Info(msg string, args ...any)  { l.base.Info(msg, args...) }
func (l *SlogLogger) Warn(msg string, args ...any)  { l.base.Warn(msg, args...) }
func (l *SlogLogger) Error(msg string, args ...any) { l.base.Error(msg, args...) }

// ZapLogger adapts a *zap.Logger through its sugared form, which takes
// the same alternating key-value arguments the Logger interface does.
type ZapLogger struct {
	base *zap.SugaredLogger
}

// NewZapLogger wraps base; nil falls back to a no-op zap logger.
func NewZapLogger(base *zap.Logger) *ZapLogger {
	if base == nil {
		base = zap.NewNop()
	}
	return &ZapLogger{base: base.Sugar()}
}

func (l *ZapLogger) Debug(msg string, args ...any) { l.base.Debugw(msg, args...) }
func (l *ZapLogger) Info(msg string, args ...any)  { l.base.Infow(msg, args...) }
func (l *ZapLogger) Warn(msg string, args ...any)  { l.base.Warnw(msg, args...) }
func (l *ZapLogger) Error(msg string, args ...any) { l.base.Errorw(msg, args...) }

var (
	_ Logger = (*SlogLogger)(nil)
	_ Logger = (*ZapLogger)(nil)
)
