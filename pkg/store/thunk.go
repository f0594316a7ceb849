package store

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-drift/hooks/pkg/errors"
)

// Lifecycle suffixes appended to an async thunk's type prefix.
const (
	SuffixPending   = "/pending"
	SuffixFulfilled = "/fulfilled"
	SuffixRejected  = "/rejected"
)

// Scheduler delivers a callback to the goroutine that owns the store's
// consumers. core.Dispatcher.Post satisfies it.
type Scheduler func(callback func()) bool

// AsyncThunk runs a payload function and reports its lifecycle as
// <type>/pending, <type>/fulfilled and <type>/rejected actions.
type AsyncThunk[S, R any] struct {
	typ       string
	payload   func(ctx context.Context, getState func() S) (R, error)
	scheduler Scheduler
	seq       atomic.Uint64
}

// CreateAsyncThunk returns an async thunk with the given type prefix.
//
// With a nil scheduler the payload runs on the dispatching goroutine and
// the result action is dispatched before Dispatch returns. With a
// scheduler the payload runs on a new goroutine and the result action is
// dispatched from the callback handed to the scheduler.
func CreateAsyncThunk[S, R any](typ string, scheduler Scheduler, payload func(ctx context.Context, getState func() S) (R, error)) *AsyncThunk[S, R] {
	return &AsyncThunk[S, R]{typ: typ, payload: payload, scheduler: scheduler}
}

// Type returns the action type prefix.
func (t *AsyncThunk[S, R]) Type() string { return t.typ }

// Pending returns the pending action type.
func (t *AsyncThunk[S, R]) Pending() string { return t.typ + SuffixPending }

// Fulfilled returns the fulfilled action type.
func (t *AsyncThunk[S, R]) Fulfilled() string { return t.typ + SuffixFulfilled }

// Rejected returns the rejected action type.
func (t *AsyncThunk[S, R]) Rejected() string { return t.typ + SuffixRejected }

// Run returns a Thunk to dispatch. Dispatching it returns a *Future[R].
func (t *AsyncThunk[S, R]) Run(ctx context.Context) Thunk[S] {
	return func(dispatch DispatchFunc, getState func() S) any {
		id := fmt.Sprintf("%s#%d", t.typ, t.seq.Add(1))
		meta := map[string]any{"requestId": id}
		future := newFuture[R]()

		dispatch(Action{Type: t.Pending(), Meta: meta})

		settle := func(value R, err error) {
			if err != nil {
				dispatch(Action{Type: t.Rejected(), Error: err, Meta: meta})
			} else {
				dispatch(Action{Type: t.Fulfilled(), Payload: value, Meta: meta})
			}
			future.resolve(value, err)
		}

		if t.scheduler == nil {
			value, err := t.call(ctx, getState)
			settle(value, err)
			return future
		}

		go func() {
			value, err := t.call(ctx, getState)
			if !t.scheduler(func() { settle(value, err) }) {
				future.resolve(value, errors.New(t.typ, errors.KindFetch, fmt.Errorf("scheduler rejected result delivery")))
			}
		}()
		return future
	}
}

func (t *AsyncThunk[S, R]) call(ctx context.Context, getState func() S) (value R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.NewPanic(t.typ, r)
		}
	}()
	if err := ctx.Err(); err != nil {
		return value, err
	}
	return t.payload(ctx, getState)
}

// Future is the handle returned by dispatching an async thunk.
type Future[R any] struct {
	once  sync.Once
	done  chan struct{}
	value R
	err   error
}

func newFuture[R any]() *Future[R] {
	return &Future[R]{done: make(chan struct{})}
}

func (f *Future[R]) resolve(value R, err error) {
	f.once.Do(func() {
		f.value, f.err = value, err
		close(f.done)
	})
}

// Done is closed once the result action has been dispatched.
func (f *Future[R]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the thunk settles or ctx is done.
func (f *Future[R]) Wait(ctx context.Context) (R, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}
