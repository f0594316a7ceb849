package core

import (
	stderrors "errors"
	"sync"
	"testing"

	"github.com/go-drift/hooks/pkg/errors"
	"github.com/go-drift/hooks/pkg/view"
)

func TestRoot_RenderHandsTreeToRenderer(t *testing.T) {
	rec := &recorder{}
	root := NewRoot(func(ctx *RenderContext) view.Node {
		return view.El("div", "", view.Text("hi"))
	}, rec)

	if err := root.Render(); err != nil {
		t.Fatal(err)
	}
	if len(rec.trees) != 1 || rec.trees[0].Label() != "hi" {
		t.Fatalf("Expected one tree labelled hi, got %+v", rec.trees)
	}
	if root.Tree().Tag != "div" || root.Rendered() != 1 {
		t.Errorf("Expected root to remember rendered tree, got %+v (%d)", root.Tree(), root.Rendered())
	}
}

func TestRoot_NilRenderer(t *testing.T) {
	root := NewRoot(func(ctx *RenderContext) view.Node { return view.Node{} }, nil)
	err := root.Render()
	if !stderrors.Is(err, errors.ErrNoRenderer) {
		t.Errorf("Expected ErrNoRenderer, got %v", err)
	}
}

func TestRoot_RendererErrorPropagatesToSetter(t *testing.T) {
	rec := &recorder{}
	var set Setter[int]
	root := NewRoot(func(ctx *RenderContext) view.Node {
		_, set = UseState(ctx, 0)
		return view.Node{}
	}, rec)
	if err := root.Render(); err != nil {
		t.Fatal(err)
	}

	rec.err = stderrors.New("target detached")
	err := set(1)
	if !stderrors.Is(err, rec.err) {
		t.Fatalf("Expected renderer error from setter, got %v", err)
	}
	if errors.KindOf(err) != errors.KindRender {
		t.Errorf("Expected KindRender, got %v", errors.KindOf(err))
	}
	if root.Err() != err {
		t.Errorf("Expected Err() to hold the last error")
	}
}

func TestRoot_RenderInsidePassIsReentrancy(t *testing.T) {
	var root *Root
	var nested error
	root = NewRoot(func(ctx *RenderContext) view.Node {
		UseEffect(ctx, func() { nested = root.Render() }, Deps())
		return view.Node{}
	}, &recorder{})

	if err := root.Render(); err != nil {
		t.Fatal(err)
	}
	if errors.KindOf(nested) != errors.KindReentrancy || !stderrors.Is(nested, errors.ErrRenderActive) {
		t.Errorf("Expected KindReentrancy from nested Render, got %v", nested)
	}
	if root.Passes() != 1 {
		t.Errorf("Expected nested Render to run no pass, got %d passes", root.Passes())
	}
}

func TestRoot_RenderFromRendererIsReentrancy(t *testing.T) {
	var root *Root
	var nested error
	root = NewRoot(func(ctx *RenderContext) view.Node { return view.Node{} },
		RendererFunc(func(view.Node) error {
			nested = root.Render()
			return nil
		}))
	if err := root.Render(); err != nil {
		t.Fatal(err)
	}
	if errors.KindOf(nested) != errors.KindReentrancy {
		t.Errorf("Expected KindReentrancy, got %v", nested)
	}
}

func TestRoot_TooManyPasses(t *testing.T) {
	root := NewRoot(func(ctx *RenderContext) view.Node {
		n, set := UseState(ctx, 0)
		_ = set(n + 1)
		return view.Node{}
	}, &recorder{}, WithMaxPasses(10))

	err := root.Render()
	if !stderrors.Is(err, errors.ErrTooManyPasses) {
		t.Fatalf("Expected ErrTooManyPasses, got %v", err)
	}
	if root.Passes() != 10 {
		t.Errorf("Expected 10 passes, got %d", root.Passes())
	}
	if root.NeedsRender() {
		t.Error("Expected root to be clean after giving up")
	}
}

func TestRoot_BatchPolicyCoalesces(t *testing.T) {
	needs := 0
	var set Setter[int]
	var value int
	root := NewRoot(func(ctx *RenderContext) view.Node {
		value, set = UseState(ctx, 0)
		return view.Node{}
	}, &recorder{}, WithPolicy(BatchPolicy))
	root.OnNeedsRender = func() { needs++ }

	if err := root.Render(); err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 5; i++ {
		if err := set(i); err != nil {
			t.Fatal(err)
		}
	}
	if root.Passes() != 1 {
		t.Errorf("Expected no pass before Flush, got %d", root.Passes())
	}
	if needs != 1 {
		t.Errorf("Expected OnNeedsRender once, got %d", needs)
	}
	if err := root.Flush(); err != nil {
		t.Fatal(err)
	}
	if err := root.Flush(); err != nil {
		t.Fatal(err)
	}
	if root.Passes() != 2 || value != 5 {
		t.Errorf("Expected 2 passes ending at 5, got %d passes, value %d", root.Passes(), value)
	}
}

func TestRoot_SyncPolicyRendersPerSetterCall(t *testing.T) {
	var set Setter[int]
	root := NewRoot(func(ctx *RenderContext) view.Node {
		_, set = UseState(ctx, 0)
		return view.Node{}
	}, &recorder{})

	_ = root.Render()
	for i := 0; i < 3; i++ {
		_ = set(7)
	}
	if root.Passes() != 4 {
		t.Errorf("Expected one pass per setter call (4 total), got %d", root.Passes())
	}
}

func TestRoot_DisposeMakesSettersNoOps(t *testing.T) {
	var set Setter[int]
	root := NewRoot(func(ctx *RenderContext) view.Node {
		_, set = UseState(ctx, 0)
		return view.Node{}
	}, &recorder{})
	_ = root.Render()
	root.Dispose()

	if err := set(1); err != nil {
		t.Errorf("Expected setter after Dispose to be a no-op, got %v", err)
	}
	if root.Passes() != 1 {
		t.Errorf("Expected no pass after Dispose, got %d", root.Passes())
	}
	if err := root.Render(); !stderrors.Is(err, errors.ErrDisposed) {
		t.Errorf("Expected ErrDisposed, got %v", err)
	}
}

func TestRoot_OnPass(t *testing.T) {
	var passes []int
	root := NewRoot(func(ctx *RenderContext) view.Node {
		if ctx.FirstPass() != (ctx.Pass() == 1) {
			t.Errorf("FirstPass mismatch on pass %d", ctx.Pass())
		}
		return view.Node{}
	}, &recorder{}, WithOnPass(func(p int) { passes = append(passes, p) }))
	_ = root.Render()
	_ = root.Render()
	if len(passes) != 2 || passes[1] != 2 {
		t.Errorf("Expected passes [1 2], got %v", passes)
	}
}

func TestParsePolicy(t *testing.T) {
	for in, want := range map[string]Policy{"": SyncPolicy, "sync": SyncPolicy, "batch": BatchPolicy} {
		got, err := ParsePolicy(in)
		if err != nil || got != want {
			t.Errorf("ParsePolicy(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParsePolicy("eager"); errors.KindOf(err) != errors.KindConfig {
		t.Errorf("Expected KindConfig, got %v", err)
	}
}

func TestDispatcher(t *testing.T) {
	d := NewDispatcher()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Post(func() {})
		}()
	}
	wg.Wait()

	select {
	case <-d.Ready():
	default:
		t.Fatal("Expected Ready to be signalled")
	}
	if d.Pending() != 10 {
		t.Errorf("Expected 10 pending, got %d", d.Pending())
	}

	var order []int
	d.Post(func() {
		order = append(order, 1)
		d.Post(func() { order = append(order, 2) })
	})
	if ran := d.Drain(); ran != 12 {
		t.Errorf("Expected 12 callbacks, got %d", ran)
	}
	if len(order) != 2 || order[1] != 2 {
		t.Errorf("Expected nested post to run in the same drain, got %v", order)
	}

	d.Close()
	if d.Post(func() {}) {
		t.Error("Expected Post after Close to fail")
	}
	// Ranging terminates only once Ready is closed.
	for range d.Ready() {
	}
}

func TestDispatcher_DrivesRoot(t *testing.T) {
	d := NewDispatcher()
	var value string
	var set Setter[string]
	root := NewRoot(func(ctx *RenderContext) view.Node {
		value, set = UseState(ctx, "pending")
		return view.Node{}
	}, &recorder{})
	_ = root.Render()

	done := make(chan struct{})
	go func() {
		d.Post(func() { _ = set("fulfilled") })
		close(done)
	}()
	<-done
	<-d.Ready()
	d.Drain()
	if value != "fulfilled" {
		t.Errorf("Expected fulfilled, got %q", value)
	}
}
