// Package todos is the todo list slice: the Todo model, its reducer and
// actions, the LoadTodos async thunk, and a REST client and mock server
// for the /todos resource.
package todos

import (
	"math/rand/v2"

	"github.com/go-drift/hooks/pkg/store"
)

// FeatureKey names the slice inside RootState.
const FeatureKey = "todos"

// Action types.
const (
	AddTodoType         = FeatureKey + "/addTodo"
	SetTodosType        = FeatureKey + "/setTodos"
	DeleteTodoType      = FeatureKey + "/deleteTodo"
	ChangeTodoStateType = FeatureKey + "/changeTodoState"
	LoadTodosType       = FeatureKey + "/loadTodos"
)

// Todo is one task.
type Todo struct {
	ID    int64  `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Done  bool   `json:"done" yaml:"done"`
}

// Change is the payload of ChangeTodoState.
type Change struct {
	ID   int64
	Done bool
}

// Adapter is the entity adapter for todos, keyed by ID in insertion order.
var Adapter = store.NewEntityAdapter(func(t Todo) int64 { return t.ID }, nil)

// State is the todos slice state.
type State struct {
	store.EntityState[int64, Todo]
	// Error is the message of the last failed load, if any.
	Error string
}

// InitialState returns an empty slice state.
func InitialState() State {
	return State{EntityState: Adapter.InitialState()}
}

// RootState is the whole application state.
type RootState struct {
	Todos State
}

// InitialRootState returns the application's initial state.
func InitialRootState() RootState {
	return RootState{Todos: InitialState()}
}

// RootReducer routes every action to the todos slice reducer.
func RootReducer(state RootState, action store.Action) RootState {
	state.Todos = Reducer(state.Todos, action)
	return state
}

// Reducer is the todos slice reducer.
func Reducer(state State, action store.Action) State {
	switch action.Type {
	case AddTodoType:
		if todo, ok := store.PayloadAs[Todo](action); ok {
			state.EntityState = Adapter.AddOne(state.EntityState, todo)
		}
	case SetTodosType, LoadTodosType + store.SuffixFulfilled:
		if todos, ok := store.PayloadAs[[]Todo](action); ok {
			state.EntityState = Adapter.AddMany(state.EntityState, todos)
			state.Error = ""
		}
	case DeleteTodoType:
		if id, ok := store.PayloadAs[int64](action); ok {
			state.EntityState = Adapter.RemoveOne(state.EntityState, id)
		}
	case ChangeTodoStateType:
		if c, ok := store.PayloadAs[Change](action); ok {
			state.EntityState = Adapter.UpdateOne(state.EntityState, store.Update[int64, Todo]{
				ID: c.ID,
				Apply: func(t Todo) Todo {
					t.Done = c.Done
					return t
				},
			})
		}
	case LoadTodosType + store.SuffixRejected:
		if action.Error != nil {
			state.Error = action.Error.Error()
		}
	}
	return state
}

// AddTodo returns the action adding a todo titled title under a random ID.
func AddTodo(title string) store.Action {
	return store.Action{
		Type:    AddTodoType,
		Payload: Todo{ID: rand.Int64N(1 << 53), Title: title},
	}
}

// SetTodos returns the action adding todos that are not yet present.
func SetTodos(todos []Todo) store.Action {
	return store.Action{Type: SetTodosType, Payload: todos}
}

// DeleteTodo returns the action removing the todo with id.
func DeleteTodo(id int64) store.Action {
	return store.Action{Type: DeleteTodoType, Payload: id}
}

// ChangeTodoState returns the action setting the done flag of a todo.
func ChangeTodoState(id int64, done bool) store.Action {
	return store.Action{Type: ChangeTodoStateType, Payload: Change{ID: id, Done: done}}
}

// SelectAllTodos returns the todos in order. It is memoized on the
// slice's entity collection.
var SelectAllTodos = store.CreateSelector(
	func(s RootState) store.EntityState[int64, Todo] { return s.Todos.EntityState },
	Adapter.SelectAll,
)

// NewStore creates the application store. The thunk middleware is always
// installed; mw is appended after it.
func NewStore(mw ...store.Middleware[RootState]) *store.Store[RootState] {
	return store.New(RootReducer, InitialRootState(), store.WithMiddleware(mw...))
}
