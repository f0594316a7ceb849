// Package store provides a small reducer-driven state container.
//
// A Store holds one state value of type S. Dispatching an Action runs it
// through the middleware chain and then the reducer; subscribers are
// notified after every dispatch that reached the reducer. Thunks (functions
// dispatched instead of actions) are handled by the Thunks middleware,
// installed by default.
//
//	s := store.New(todos.RootReducer, todos.RootState{})
//	unsub := s.Subscribe(func() { fmt.Println(s.State()) })
//	s.Dispatch(todos.AddTodo("测试"))
package store

import (
	"fmt"
	"slices"
	"sync"
)

// Action is a plain state transition request.
type Action struct {
	// Type identifies the transition (e.g., "todos/addTodo").
	Type string
	// Payload carries the transition's data.
	Payload any
	// Error is set on rejected async actions.
	Error error
	// Meta carries bookkeeping such as the async request ID.
	Meta map[string]any
}

func (a Action) String() string {
	if a.Error != nil {
		return fmt.Sprintf("%s (error: %v)", a.Type, a.Error)
	}
	return a.Type
}

// PayloadAs returns the payload of a as T.
func PayloadAs[T any](a Action) (T, bool) {
	v, ok := a.Payload.(T)
	return v, ok
}

// Reducer computes the next state. It must return state unchanged for
// actions it does not handle and must not mutate state in place.
type Reducer[S any] func(state S, action Action) S

// DispatchFunc dispatches an Action or a Thunk and returns a result: the
// action itself for plain actions, the thunk's return value for thunks.
type DispatchFunc func(action any) any

// API is what middleware sees of the store.
type API[S any] struct {
	Dispatch DispatchFunc
	GetState func() S
}

// Middleware wraps dispatch.
type Middleware[S any] func(api API[S]) func(next DispatchFunc) DispatchFunc

// Thunk is a function dispatched in place of an action.
type Thunk[S any] func(dispatch DispatchFunc, getState func() S) any

// Option configures a Store.
type Option[S any] func(*Store[S])

// WithMiddleware appends middleware after the default thunk middleware.
func WithMiddleware[S any](mw ...Middleware[S]) Option[S] {
	return func(s *Store[S]) { s.middleware = append(s.middleware, mw...) }
}

// WithoutDefaults drops the default thunk middleware. It must precede
// WithMiddleware in the option list.
func WithoutDefaults[S any]() Option[S] {
	return func(s *Store[S]) { s.middleware = s.middleware[:0] }
}

// Store is a reducer-driven state container. Dispatch and State are safe
// for concurrent use; listeners run on the dispatching goroutine.
type Store[S any] struct {
	mu         sync.Mutex
	state      S
	reducer    Reducer[S]
	middleware []Middleware[S]
	dispatch   DispatchFunc

	listenerMu sync.Mutex
	listeners  map[int]func()
	nextID     int
}

// New creates a store with the reducer's initial state.
func New[S any](reducer Reducer[S], initial S, opts ...Option[S]) *Store[S] {
	s := &Store[S]{
		state:      initial,
		reducer:    reducer,
		middleware: []Middleware[S]{Thunks[S]()},
		listeners:  make(map[int]func()),
	}
	for _, opt := range opts {
		opt(s)
	}

	api := API[S]{
		Dispatch: func(action any) any { return s.dispatch(action) },
		GetState: s.State,
	}
	dispatch := s.reduce
	for i := len(s.middleware) - 1; i >= 0; i-- {
		dispatch = s.middleware[i](api)(dispatch)
	}
	s.dispatch = dispatch
	return s
}

// State returns the current state.
func (s *Store[S]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch runs action through the middleware chain.
func (s *Store[S]) Dispatch(action any) any {
	return s.dispatch(action)
}

// Subscribe registers listener. Returns a function that removes it.
func (s *Store[S]) Subscribe(listener func()) func() {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = listener
	return func() {
		s.listenerMu.Lock()
		defer s.listenerMu.Unlock()
		delete(s.listeners, id)
	}
}

// ListenerCount returns the number of active subscriptions.
func (s *Store[S]) ListenerCount() int {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()
	return len(s.listeners)
}

// reduce is the innermost dispatch: it applies the reducer and notifies.
func (s *Store[S]) reduce(action any) any {
	a, ok := action.(Action)
	if !ok {
		panic(fmt.Sprintf("store: cannot reduce %T; dispatch an Action or install the thunk middleware", action))
	}
	s.mu.Lock()
	s.state = s.reducer(s.state, a)
	s.mu.Unlock()

	s.listenerMu.Lock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	s.listenerMu.Unlock()
	slices.Sort(ids)
	for _, id := range ids {
		s.listenerMu.Lock()
		listener, ok := s.listeners[id]
		s.listenerMu.Unlock()
		if ok {
			listener()
		}
	}
	return a
}

// Thunks returns middleware that calls dispatched Thunks with the store's
// dispatch and state accessor.
func Thunks[S any]() Middleware[S] {
	return func(api API[S]) func(next DispatchFunc) DispatchFunc {
		return func(next DispatchFunc) DispatchFunc {
			return func(action any) any {
				switch thunk := action.(type) {
				case Thunk[S]:
					return thunk(api.Dispatch, api.GetState)
				case func(DispatchFunc, func() S) any:
					return thunk(api.Dispatch, api.GetState)
				default:
					return next(action)
				}
			}
		}
	}
}
