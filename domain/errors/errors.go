// Package errors provides the splash session's error taxonomy.
// All error types support unwrapping via errors.As() and errors.Is().
//
// The taxonomy mirrors how failures degrade: a missing splash record
// is benign, resource and setup failures abort the splash but never
// the host, and a script failure is logged without stopping the
// dispatch loop.
package errors

import (
	stdErrors "errors"
	"fmt"
)

// ErrAbsent reports that the archive carries no splash record. This is
// not a failure: the splash feature is optional, and callers are
// expected to continue without it.
var ErrAbsent = stdErrors.New("no splash resources in archive")

// IsAbsent reports whether err is the benign "no splash" outcome.
func IsAbsent(err error) bool {
	return stdErrors.Is(err, ErrAbsent)
}

// ResourceError represents a failure while loading or extracting
// splash resources: allocation, decoding, path-length overflow, or a
// missing requirement. Fatal to the splash feature; the host continues
// without it.
type ResourceError struct {
	Err   error
	Stage string // "decode", "path", "extract"
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("splash resource %s failed: %v", e.Stage, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

// ThreadCreateError represents a failure to create the runtime thread,
// typically because the embedded runtime was built without thread
// support. Fatal and non-retryable.
type ThreadCreateError struct {
	Err error
}

func (e *ThreadCreateError) Error() string {
	return fmt.Sprintf("runtime is not threaded, cannot create splash thread: %v", e.Err)
}

func (e *ThreadCreateError) Unwrap() error {
	return e.Err
}

// SetupError represents a failure during the runtime thread's setup
// sequence: command registration or one of the two initialization
// stages. Startup aborts, teardown runs, and the host's start-wait
// still unblocks.
type SetupError struct {
	Err   error
	Stage string // "interp", "commands", "init-base", "init-windowing", "not-loaded"
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("splash setup failed at %s: %v", e.Stage, e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

// ScriptError represents an error raised by the presentation script.
// Logged but not fatal: the interpreter remains usable and the
// dispatch loop still starts.
type ScriptError struct {
	Err error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("splash script raised an error: %v", e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}
