package app

import (
	"context"

	"github.com/go-drift/hooks/pkg/core"
	"github.com/go-drift/hooks/pkg/store"
	"github.com/go-drift/hooks/pkg/todos"
	"github.com/go-drift/hooks/pkg/view"
)

// AddLabel is the label of the add-task button.
const AddLabel = "添加任务"

// NewTodoTitle is the title given to added tasks.
const NewTodoTitle = "测试"

// TodoList returns the todo list component. It dispatches load once on
// mount and cancels the request when the root is disposed.
func TodoList(s *store.Store[todos.RootState], load *todos.LoadTodos) core.Component {
	return func(ctx *core.RenderContext) view.Node {
		dispatch := store.UseDispatch(ctx, s)
		items := store.UseSelector(ctx, s, todos.SelectAllTodos)
		loadErr := store.UseSelector(ctx, s, func(st todos.RootState) string { return st.Todos.Error })

		core.UseEffectCleanup(ctx, func() func() {
			if load == nil {
				return nil
			}
			c, cancel := context.WithCancel(context.Background())
			dispatch(load.Run(c))
			return cancel
		}, core.Deps())

		children := []view.Node{
			view.Button(AddLabel, func() error {
				dispatch(todos.AddTodo(NewTodoTitle))
				return nil
			}),
		}
		if loadErr != "" {
			children = append(children, view.El("p", "error", view.Text(loadErr)))
		}
		children = append(children, view.El("ul", "todo-list", view.Map(items, func(t todos.Todo) view.Node {
			return todoItem(t, dispatch)
		})...))

		return view.El("section", "main", children...)
	}
}

func todoItem(t todos.Todo, dispatch store.DispatchFunc) view.Node {
	class := ""
	if t.Done {
		class = "completed"
	}
	item := view.El("li", class,
		view.El("div", "view",
			view.Checkbox("toggle", t.Done, func(checked bool) error {
				dispatch(todos.ChangeTodoState(t.ID, checked))
				return nil
			}),
			view.El("label", "", view.Text(t.Title)),
			view.Node{Tag: "button", Class: "destroy", Text: "×", OnClick: func() error {
				dispatch(todos.DeleteTodo(t.ID))
				return nil
			}},
		),
		view.El("input", "edit"),
	)
	return view.Keyed(t.ID, item)
}
