package todos

import (
	"context"
	stderrors "errors"

	"github.com/go-drift/hooks/pkg/errors"
	"github.com/go-drift/hooks/pkg/store"
)

// Persist returns middleware that mirrors local edits to the REST API once
// the reducer has applied them. Added todos are POSTed, done flags are
// PATCHed and deletions are sent as DELETE. With background set each
// request runs on its own goroutine; otherwise dispatch waits for it.
// Failures go to the global error handler and leave the local state as is.
func Persist(client *Client, background bool) store.Middleware[RootState] {
	return func(api store.API[RootState]) func(next store.DispatchFunc) store.DispatchFunc {
		return func(next store.DispatchFunc) store.DispatchFunc {
			return func(action any) any {
				result := next(action)
				a, ok := action.(store.Action)
				if !ok {
					return result
				}
				call := remoteCall(client, a, api.GetState())
				if call == nil {
					return result
				}
				send := func() {
					if err := call(context.Background()); err != nil {
						var he *errors.HookError
						if !stderrors.As(err, &he) {
							he = errors.New("todos.Persist", errors.KindFetch, err)
						}
						errors.Report(he)
					}
				}
				if background {
					go send()
				} else {
					send()
				}
				return result
			}
		}
	}
}

// remoteCall maps a todo action to its request. state is taken after the
// action was reduced.
func remoteCall(client *Client, a store.Action, state RootState) func(context.Context) error {
	switch a.Type {
	case AddTodoType:
		todo, ok := a.Payload.(Todo)
		if !ok {
			return nil
		}
		return func(ctx context.Context) error {
			_, err := client.Create(ctx, todo)
			return err
		}
	case ChangeTodoStateType:
		change, ok := a.Payload.(Change)
		if !ok {
			return nil
		}
		todo, ok := state.Todos.Entities[change.ID]
		if !ok {
			return nil
		}
		return func(ctx context.Context) error {
			_, err := client.Update(ctx, todo)
			return err
		}
	case DeleteTodoType:
		id, ok := a.Payload.(int64)
		if !ok {
			return nil
		}
		return func(ctx context.Context) error {
			return client.Delete(ctx, id)
		}
	}
	return nil
}
