package logger

import (
	"context"

	mcontext "github.com/mazesearch/mazesearch/pkg/context"
)

// withRunFields puts the run values set on ctx in front of fields. Unset
// values are left out rather than logged as placeholders.
func withRunFields(ctx context.Context, fields []Field) []Field {
	if ctx == nil {
		return fields
	}

	out := make([]Field, 0, len(fields)+4)
	if mcontext.HasRunID(ctx) {
		out = append(out, WithField("run_id", mcontext.GetRunID(ctx)))
	}
	if maze := mcontext.GetMaze(ctx); maze != "" {
		out = append(out, WithField("maze", maze))
	}
	if op := mcontext.GetOperation(ctx); op != "unknown-operation" {
		out = append(out, WithField("operation", op))
	}
	if elapsed := mcontext.GetDuration(ctx); elapsed > 0 {
		out = append(out, WithField("duration_ms", elapsed.Milliseconds()))
	}
	return append(out, fields...)
}

// WithContext binds ctx to logger. Every line it writes carries the run
// values of ctx, including lines from loggers derived with WithAlgorithm.
func WithContext(ctx context.Context, logger Logger) Logger {
	if ctx == nil {
		return logger
	}
	return &boundLogger{ctx: ctx, next: logger}
}

type boundLogger struct {
	ctx  context.Context
	next Logger
}

func (b *boundLogger) fields(fields []Field) []Field {
	return withRunFields(b.ctx, fields)
}

func (b *boundLogger) Info(message string, fields ...Field) {
	b.next.Info(message, b.fields(fields)...)
}

func (b *boundLogger) Error(message string, fields ...Field) {
	b.next.Error(message, b.fields(fields)...)
}

func (b *boundLogger) Warn(message string, fields ...Field) {
	b.next.Warn(message, b.fields(fields)...)
}

func (b *boundLogger) Debug(message string, fields ...Field) {
	b.next.Debug(message, b.fields(fields)...)
}

func (b *boundLogger) Success(message string, fields ...Field) {
	b.next.Success(message, b.fields(fields)...)
}

func (b *boundLogger) WithAlgorithm(algorithm string) Logger {
	return &boundLogger{ctx: b.ctx, next: b.next.WithAlgorithm(algorithm)}
}
