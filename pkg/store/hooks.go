package store

import (
	stderrors "errors"

	"github.com/go-drift/hooks/pkg/core"
	"github.com/go-drift/hooks/pkg/errors"
)

// UseSelector reads selector(store.State()) and subscribes the component
// to the store. The component gets a new pass whenever a dispatched
// action changes the selected value (see Same). A pass started this way
// has no caller to return its error to, so failures go to the global
// error handler.
func UseSelector[S, R any](ctx *core.RenderContext, s *Store[S], selector func(S) R) R {
	selected := selector(s.State())
	last := core.UseRef(ctx, selected)
	last.Current = selected
	_, setVersion := core.UseState(ctx, 0)
	version := core.UseRef(ctx, 0)

	core.UseEffectCleanup(ctx, func() func() {
		return s.Subscribe(func() {
			next := selector(s.State())
			if Same(next, last.Current) {
				return
			}
			last.Current = next
			version.Current++
			if err := setVersion(version.Current); err != nil {
				var he *errors.HookError
				if !stderrors.As(err, &he) {
					he = errors.New("store.UseSelector", errors.KindRender, err)
				}
				errors.Report(he)
			}
		})
	}, core.Deps(s))

	return selected
}

// UseDispatch returns the store's dispatch function.
func UseDispatch[S any](_ *core.RenderContext, s *Store[S]) DispatchFunc {
	return s.Dispatch
}
