package todos

import (
	"context"
	stderrors "errors"

	"github.com/go-drift/hooks/pkg/errors"
	"github.com/go-drift/hooks/pkg/store"
)

// LoadTodos is the async thunk fetching the todo list.
type LoadTodos = store.AsyncThunk[RootState, []Todo]

// NewLoadTodos returns the todos/loadTodos thunk backed by client. With a
// scheduler, the request runs in the background and the result actions are
// delivered through it. Failures are reported to the global error handler
// and dispatched as todos/loadTodos/rejected.
func NewLoadTodos(client *Client, scheduler store.Scheduler) *LoadTodos {
	return store.CreateAsyncThunk(LoadTodosType, scheduler,
		func(ctx context.Context, _ func() RootState) ([]Todo, error) {
			todos, err := client.List(ctx)
			if err != nil {
				var he *errors.HookError
				if !stderrors.As(err, &he) {
					he = errors.New(LoadTodosType, errors.KindFetch, err)
				}
				errors.Report(he)
				return nil, err
			}
			return todos, nil
		})
}
