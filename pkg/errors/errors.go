// Package errors provides structured error handling for the hooks runtime.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindType indicates a hook received an argument of the wrong shape,
	// such as a nil effect callback.
	KindType
	// KindReentrancy indicates a hook was called outside an active render
	// pass, or a render pass was started while another one was running.
	KindReentrancy
	// KindSlot indicates slot identity was corrupted by a change in hook
	// call order between passes.
	KindSlot
	// KindRender indicates the render collaborator failed or the root
	// could not settle.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindFetch indicates a data collaborator request failed.
	KindFetch
	// KindConfig indicates an invalid configuration value.
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindReentrancy:
		return "reentrancy"
	case KindSlot:
		return "slot"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	case KindFetch:
		return "fetch"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// Sentinel causes wrapped by HookError.
var (
	ErrNilEffect     = errors.New("effect callback must not be nil")
	ErrNilReducer    = errors.New("reducer must not be nil")
	ErrOutsideRender = errors.New("hook called outside an active render pass")
	ErrRenderActive  = errors.New("render requested while a render pass is active")
	ErrNoRenderer    = errors.New("no render target mounted")
	ErrTooManyPasses = errors.New("too many re-renders: state keeps changing during render")
	ErrSlotType      = errors.New("hook type at slot changed between passes")
	ErrHookCount     = errors.New("number of hooks changed between passes")
	ErrDisposed      = errors.New("root has been disposed")
)

// HookError is a structured error raised by the hooks runtime.
type HookError struct {
	// Op is the operation that failed (e.g., "core.UseEffect").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Slot is the cursor position the failing hook was called at, or -1.
	Slot int
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *HookError) Error() string {
	if e.Slot >= 0 {
		return fmt.Sprintf("%s [%s] slot=%d: %v", e.Op, e.Kind, e.Slot, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *HookError) Unwrap() error {
	return e.Err
}

// New returns a HookError not tied to a slot.
func New(op string, kind ErrorKind, err error) *HookError {
	return &HookError{Op: op, Kind: kind, Slot: -1, Err: err, Timestamp: time.Now()}
}

// AtSlot returns a HookError tied to a slot position.
func AtSlot(op string, kind ErrorKind, slot int, err error) *HookError {
	return &HookError{Op: op, Kind: kind, Slot: slot, Err: err, Timestamp: time.Now()}
}

// KindOf returns the kind of the first HookError in err's chain.
func KindOf(err error) ErrorKind {
	var he *HookError
	if errors.As(err, &he) {
		return he.Kind
	}
	var pe *PanicError
	if errors.As(err, &pe) {
		return KindPanic
	}
	return KindUnknown
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "core.Root.Render").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the panic value when it was an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// ErrorHandler receives errors reported by the outer layers of the runtime.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *HookError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
