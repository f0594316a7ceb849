package core_test

import (
	"fmt"

	"github.com/go-drift/hooks/pkg/core"
	"github.com/go-drift/hooks/pkg/view"
)

// This example shows state slots recovered by call order and effects
// gated by their dependency lists.
func ExampleUseState() {
	var setCount core.Setter[int]
	var setName core.Setter[string]

	app := func(ctx *core.RenderContext) view.Node {
		count, sc := core.UseState(ctx, 0)
		name, sn := core.UseState(ctx, "张三")
		setCount, setName = sc, sn

		core.UseEffect(ctx, func() { fmt.Println("Hello") }, core.Deps(count))
		core.UseEffect(ctx, func() { fmt.Println("world") }, core.Deps(name))

		return view.El("div", "", view.Text(fmt.Sprint(count)), view.Text(name))
	}

	root := core.NewRoot(app, core.RendererFunc(func(tree view.Node) error {
		fmt.Println("render:", tree.Label())
		return nil
	}))

	_ = root.Render()
	_ = setCount(1)
	_ = setName("李四")

	// Output:
	// Hello
	// world
	// render: 0 张三
	// Hello
	// render: 1 张三
	// world
	// render: 1 李四
}

// This example shows a reducer slot. Unknown actions leave the state as is.
func ExampleUseReducer() {
	type action struct{ Type string }
	reducer := func(state int, a action) int {
		switch a.Type {
		case "increment":
			return state + 1
		default:
			return state
		}
	}

	var dispatch func(action) error
	root := core.NewRoot(func(ctx *core.RenderContext) view.Node {
		count, d := core.UseReducer(ctx, reducer, 0)
		dispatch = d
		return view.Text(fmt.Sprint(count))
	}, core.RendererFunc(func(tree view.Node) error {
		fmt.Println(tree.Text)
		return nil
	}))

	_ = root.Render()
	_ = dispatch(action{Type: "increment"})
	_ = dispatch(action{Type: "reset"})

	// Output:
	// 0
	// 1
	// 1
}

// This example shows BatchPolicy: setter calls only mark the root dirty
// and Flush runs a single pass.
func ExampleRoot_Flush() {
	var set core.Setter[int]
	root := core.NewRoot(func(ctx *core.RenderContext) view.Node {
		n, s := core.UseState(ctx, 0)
		set = s
		return view.Text(fmt.Sprint(n))
	}, core.RendererFunc(func(tree view.Node) error {
		fmt.Println("render", tree.Text)
		return nil
	}), core.WithPolicy(core.BatchPolicy))

	_ = root.Render()
	_ = set(1)
	_ = set(2)
	_ = set(3)
	_ = root.Flush()
	_ = root.Flush()
	fmt.Println("passes:", root.Passes())

	// Output:
	// render 0
	// render 3
	// passes: 2
}
