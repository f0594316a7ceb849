package store

import (
	"fmt"
	"io"
	"os"
	"time"
)

// LoggerOptions configures the Logger middleware.
type LoggerOptions struct {
	// Out is the destination. Nil means os.Stderr.
	Out io.Writer
	// Collapsed prints only the action line.
	Collapsed bool
	// Now overrides the clock used for timestamps.
	Now func() time.Time
	// Predicate filters logged actions. Nil logs every action.
	Predicate func(action Action) bool
}

// Logger returns middleware that prints each plain action with the state
// before and after it. Thunks pass through unlogged; the actions they
// dispatch are logged.
func Logger[S any](opts LoggerOptions) Middleware[S] {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return func(api API[S]) func(next DispatchFunc) DispatchFunc {
		return func(next DispatchFunc) DispatchFunc {
			return func(action any) any {
				a, ok := action.(Action)
				if !ok || (opts.Predicate != nil && !opts.Predicate(a)) {
					return next(action)
				}
				prev := api.GetState()
				started := now()
				result := next(action)
				elapsed := now().Sub(started)

				fmt.Fprintf(out, "action %s @ %s (in %s)\n", a, started.Format("15:04:05.000"), elapsed)
				if !opts.Collapsed {
					fmt.Fprintf(out, "  prev state %+v\n", prev)
					fmt.Fprintf(out, "  action     %+v\n", a.Payload)
					fmt.Fprintf(out, "  next state %+v\n", api.GetState())
				}
				return result
			}
		}
	}
}
