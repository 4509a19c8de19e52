package telemetry

import "context"

// ErrorSink receives one message per Error call made through a context that
// carries it. Validation (see internal/model) pushes one sink per class onto
// the context for the duration of that class's checks, which is how the
// per-class Errors/Warnings vectors get populated without validation
// functions threading an explicit accumulator parameter everywhere.
type ErrorSink interface {
	// Record captures one diagnostic message with its severity.
	Record(severity string, msg string, keyvals []any)
}

type sinkStackKey struct{}

// WithErrorSink pushes sink onto the context's scoped-sink stack and returns
// the derived context plus a guard function. The pushed sink is visible only
// through the derived context; ctx's own stack is left unchanged, so the
// scope ends when the derived context is no longer used. The guard does not
// modify either stack and is safe to call more than once; callers call it
// via defer to mark the end of the scope — this is the "pushdown stack of
// callback handlers on the logger, scoped via a guard object"
// reimplementation of the original's scoped logging-callback mechanism.
func WithErrorSink(ctx context.Context, sink ErrorSink) (context.Context, func()) {
	stack, _ := ctx.Value(sinkStackKey{}).([]ErrorSink)
	next := append(append([]ErrorSink(nil), stack...), sink)
	newCtx := context.WithValue(ctx, sinkStackKey{}, next)
	popped := false
	return newCtx, func() {
		if popped {
			return
		}
		popped = true
	}
}

// currentSink returns the topmost ErrorSink registered on ctx, or nil.
func currentSink(ctx context.Context) ErrorSink {
	stack, _ := ctx.Value(sinkStackKey{}).([]ErrorSink)
	if len(stack) == 0 {
		return nil
	}
	return stack[len(stack)-1]
}

// SinkingLogger wraps a base Logger so that Warn/Error calls are also
// forwarded to the context's topmost ErrorSink, if any, in addition to the
// base logger. Validation installs this once per pipeline run.
type SinkingLogger struct {
	Base Logger
}

// NewSinkingLogger constructs a Logger that forwards to base and additionally
// records Warn/Error calls into the context's topmost ErrorSink.
func NewSinkingLogger(base Logger) Logger {
	return SinkingLogger{Base: base}
}

// Debug forwards to the base logger.
func (l SinkingLogger) Debug(ctx context.Context, msg string, keyvals ...any) {
	l.Base.Debug(ctx, msg, keyvals...)
}

// Info forwards to the base logger.
func (l SinkingLogger) Info(ctx context.Context, msg string, keyvals ...any) {
	l.Base.Info(ctx, msg, keyvals...)
}

// Warn forwards to the base logger and, if a scoped sink is installed, records
// a "warning" severity diagnostic.
func (l SinkingLogger) Warn(ctx context.Context, msg string, keyvals ...any) {
	l.Base.Warn(ctx, msg, keyvals...)
	if sink := currentSink(ctx); sink != nil {
		sink.Record("warning", msg, keyvals)
	}
}

// Error forwards to the base logger and, if a scoped sink is installed,
// records an "error" severity diagnostic.
func (l SinkingLogger) Error(ctx context.Context, msg string, keyvals ...any) {
	l.Base.Error(ctx, msg, keyvals...)
	if sink := currentSink(ctx); sink != nil {
		sink.Record("error", msg, keyvals)
	}
}
