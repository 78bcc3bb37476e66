package pulse

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
)

var (
	ErrSetup = errors.New("pulse: setup failed")
	ErrRerun = errors.New("pulse: re-run failed")
	ErrCycle = errors.New("pulse: cycle detected")
)

// SetupError is returned by Effect and EffectScope when the first run fails.
type SetupError struct {
	Node Node
	Err  error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("pulse: %s setup failed: %v", e.Node.Name(), e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

func (e *SetupError) Is(target error) bool {
	return target == ErrSetup
}

// RerunError reports a failed scheduled re-run. It is handed to the
// system's OnErrorFunc and never returned from SetValue or Batch.
type RerunError struct {
	Node Node
	Err  error
}

func (e *RerunError) Error() string {
	return fmt.Sprintf("pulse: %s re-run failed: %v", e.Node.Name(), e.Err)
}

func (e *RerunError) Unwrap() error {
	return e.Err
}

func (e *RerunError) Is(target error) bool {
	return target == ErrRerun
}

// CycleError is panicked when a flush is still producing work after
// the pass limit (see WithMaxFlushPasses), or when a computed reads itself
// (Passes is zero).
// Either way it is a bug in the caller's graph.
type CycleError struct {
	Passes  int
	Pending []Node
}

func (e *CycleError) Error() string {
	names := make([]string, len(e.Pending))
	for i, n := range e.Pending {
		names[i] = n.Name()
	}
	if e.Passes == 0 {
		return fmt.Sprintf("pulse: cycle detected: %s reads itself", strings.Join(names, ", "))
	}
	return fmt.Sprintf("pulse: cycle detected: effects still pending after %d flush passes: %s",
		e.Passes, strings.Join(names, ", "))
}

func (e *CycleError) Is(target error) bool {
	return target == ErrCycle
}

// PanicError carries a panic recovered from an effect body.
type PanicError struct {
	Value any
	Stack []byte
}

func newPanicError(v any) *PanicError {
	return &PanicError{Value: v, Stack: debug.Stack()}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
