package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"
)

var (
	handlerMu sync.RWMutex
	handler   ErrorHandler = &LogHandler{}
)

// SetHandler installs h as the process-wide error handler. A nil h puts
// back a quiet LogHandler writing to stderr.
func SetHandler(h ErrorHandler) {
	if h == nil {
		h = &LogHandler{}
	}
	handlerMu.Lock()
	handler = h
	handlerMu.Unlock()
}

// Handler returns the handler that currently receives reports.
func Handler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return handler
}

// Report stamps err if needed and hands it to the current handler.
func Report(err *HookError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandleError(err)
}

// ReportPanic hands a recovered panic to the current handler.
func ReportPanic(err *PanicError) {
	if err != nil {
		Handler().HandlePanic(err)
	}
}

// NewPanic wraps a value recovered in op together with the stack of the
// function that recovered it.
func NewPanic(op string, value any) *PanicError {
	return &PanicError{Op: op, Value: value, StackTrace: stack(3), Timestamp: time.Now()}
}

// Recover reports a panic unwinding through the deferring function and
// stops it there:
//
//	defer errors.Recover("terminal.PollEvent")
func Recover(op string) {
	if r := recover(); r != nil {
		ReportPanic(NewPanic(op, r))
	}
}

// RecoverWithCallback behaves like Recover, then passes the panic value
// to callback.
func RecoverWithCallback(op string, callback func(r any)) {
	r := recover()
	if r == nil {
		return
	}
	ReportPanic(NewPanic(op, r))
	if callback != nil {
		callback(r)
	}
}

// CaptureStack formats the goroutine's stack above its caller, one
// "function\n\tfile:line" entry per frame.
func CaptureStack() string {
	return stack(3)
}

func stack(skip int) string {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	if n == 0 {
		return ""
	}
	var sb strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for more := true; more; {
		var frame runtime.Frame
		frame, more = frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
	}
	return sb.String()
}
