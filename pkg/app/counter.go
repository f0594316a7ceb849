// Package app holds the demo components: a two-state counter with
// dependency-gated effects, a reducer-driven counter and a todo list bound
// to the todos store.
package app

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-drift/hooks/pkg/core"
	"github.com/go-drift/hooks/pkg/view"
)

// Counter returns the two-state demo component. Its effects print "Hello"
// when count changes and "world" when name changes.
func Counter(out io.Writer) core.Component {
	return func(ctx *core.RenderContext) view.Node {
		count, setCount := core.UseState(ctx, 0)
		name, setName := core.UseState(ctx, "张三")

		core.UseEffect(ctx, func() {
			fmt.Fprintln(out, "Hello")
		}, core.Deps(count))
		core.UseEffect(ctx, func() {
			fmt.Fprintln(out, "world")
		}, core.Deps(name))

		return view.El("div", "counter",
			view.El("span", "count", view.Text(strconv.Itoa(count))),
			view.Button("setCount", func() error { return setCount(count + 1) }),
			view.El("span", "name", view.Text(name)),
			view.Button("setName", func() error { return setName("李四") }),
		)
	}
}

// CounterAction is an action understood by CounterReducer.
type CounterAction string

const (
	Increment CounterAction = "increment"
	Decrement CounterAction = "decrement"
)

// CounterReducer applies increment and decrement. Other actions return
// state unchanged.
func CounterReducer(state int, action CounterAction) int {
	switch action {
	case Increment:
		return state + 1
	case Decrement:
		return state - 1
	default:
		return state
	}
}

// ReducerCounter is the UseReducer variant of the counter.
func ReducerCounter(ctx *core.RenderContext) view.Node {
	count, dispatch := core.UseReducer(ctx, CounterReducer, 0)

	return view.El("div", "reducer-counter",
		view.Button("-", func() error { return dispatch(Decrement) }),
		view.El("span", "count", view.Text(strconv.Itoa(count))),
		view.Button("+", func() error { return dispatch(Increment) }),
	)
}
