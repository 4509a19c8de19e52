package pipeline

import "fmt"

// FatalError wraps a structural/API-misuse failure (§7) raised inside a
// pipeline run: a provider that returns an error from Run, an output module
// that fails to render. A FatalError always aborts the run
// immediately, as opposed to a RunErrors aggregate, which only reflects data
// problems found in the classes themselves.
type FatalError struct {
	Phase string
	Msg   string
	Cause error
}

// Error implements error.
func (e *FatalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Phase, e.Msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Phase, e.Msg)
}

// Unwrap exposes Cause to errors.Is/errors.As.
func (e *FatalError) Unwrap() error { return e.Cause }

func fatal(phase, msg string, cause error) *FatalError {
	return &FatalError{Phase: phase, Msg: msg, Cause: cause}
}

// RunErrors aggregates every data-level error-severity diagnostic (§7)
// surfaced across every wrapped class during a run. A run with at least one
// such diagnostic is considered failed, but every class is still validated
// so a single caller-facing report lists every problem at once rather than
// stopping at the first one.
type RunErrors struct {
	Messages []string
}

// Error implements error, joining every message with a newline.
func (e *RunErrors) Error() string {
	s := fmt.Sprintf("%d class error(s) found", len(e.Messages))
	for _, m := range e.Messages {
		s += "\n  " + m
	}
	return s
}
