package core

import (
	stderrors "errors"
	"fmt"

	"github.com/go-drift/hooks/pkg/errors"
	"github.com/go-drift/hooks/pkg/view"
)

// DefaultMaxPasses bounds the passes a single render request may run while
// state keeps changing during the pass.
const DefaultMaxPasses = 50

// Component is the root component body. It calls hooks on ctx in a fixed
// order and returns the view tree for this pass.
type Component func(ctx *RenderContext) view.Node

// Renderer is the external render collaborator. RenderTree receives every
// settled tree unmodified.
type Renderer interface {
	RenderTree(tree view.Node) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(tree view.Node) error

// RenderTree calls f(tree).
func (f RendererFunc) RenderTree(tree view.Node) error {
	return f(tree)
}

// Policy decides what a setter does when it is called outside a pass.
type Policy int

const (
	// SyncPolicy runs a render pass inside every setter call and returns
	// that pass's error from the setter.
	SyncPolicy Policy = iota
	// BatchPolicy only marks the root dirty. Calls are coalesced until the
	// owner calls Flush.
	BatchPolicy
)

func (p Policy) String() string {
	switch p {
	case SyncPolicy:
		return "sync"
	case BatchPolicy:
		return "batch"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy converts "sync" or "batch" to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "sync":
		return SyncPolicy, nil
	case "batch":
		return BatchPolicy, nil
	default:
		return SyncPolicy, errors.New("core.ParsePolicy", errors.KindConfig, fmt.Errorf("unknown render policy %q", s))
	}
}

// Option configures a Root.
type Option func(*Root)

// WithPolicy sets the setter policy. The default is SyncPolicy.
func WithPolicy(p Policy) Option {
	return func(r *Root) { r.policy = p }
}

// WithMaxPasses bounds the passes of one render request.
func WithMaxPasses(n int) Option {
	return func(r *Root) {
		if n > 0 {
			r.maxPasses = n
		}
	}
}

// WithOnPass registers a callback invoked after every completed component
// pass with the pass number.
func WithOnPass(fn func(pass int)) Option {
	return func(r *Root) { r.onPass = fn }
}

// Root drives one component: it owns the RenderContext, tracks whether a
// new pass is needed and hands each settled tree to the Renderer.
//
// Root is NOT thread-safe. Setters, Render and Flush must be called from
// the goroutine that owns the root. Background work should go through a
// [Dispatcher].
type Root struct {
	component Component
	renderer  Renderer
	ctx       *RenderContext

	policy    Policy
	maxPasses int
	onPass    func(pass int)

	dirty     bool
	disposed  bool
	flushing  bool
	tree      view.Node
	rendered  int
	lastError error

	// OnNeedsRender is called when the root becomes dirty outside a pass
	// under BatchPolicy, signalling the owner that Flush should be called.
	OnNeedsRender func()
}

// NewRoot mounts component against renderer. No pass runs until Render.
func NewRoot(component Component, renderer Renderer, opts ...Option) *Root {
	r := &Root{
		component: component,
		renderer:  renderer,
		maxPasses: DefaultMaxPasses,
	}
	r.ctx = newRenderContext(r)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Policy returns the setter policy.
func (r *Root) Policy() Policy {
	return r.policy
}

// Passes returns the number of component passes started, including
// passes that failed.
func (r *Root) Passes() int {
	return r.ctx.pass
}

// Rendered returns the number of trees handed to the renderer.
func (r *Root) Rendered() int {
	return r.rendered
}

// Tree returns the last tree handed to the renderer.
func (r *Root) Tree() view.Node {
	return r.tree
}

// Err returns the error of the most recent render request.
func (r *Root) Err() error {
	return r.lastError
}

// NeedsRender reports whether state changed since the last settled pass.
func (r *Root) NeedsRender() bool {
	return r.dirty
}

// MarkNeedsRender flags the root dirty without running a pass.
func (r *Root) MarkNeedsRender() {
	if r.disposed || r.dirty {
		return
	}
	r.dirty = true
	if !r.ctx.active && !r.flushing && r.OnNeedsRender != nil {
		r.OnNeedsRender()
	}
}

// Render runs a pass unconditionally: it resets both cursors, calls the
// component, hands the tree to the renderer and repeats while state
// changed during the pass. Calling Render from inside a pass is a
// KindReentrancy error.
func (r *Root) Render() error {
	if err := r.check("core.Root.Render"); err != nil {
		return err
	}
	r.dirty = true
	return r.flush()
}

// Flush runs a pass only if the root is dirty. It is safe to call any
// number of times.
func (r *Root) Flush() error {
	if !r.dirty {
		return nil
	}
	if err := r.check("core.Root.Flush"); err != nil {
		return err
	}
	return r.flush()
}

// Dispose runs pending effect cleanups in reverse declaration order.
// Setters become no-ops afterwards.
func (r *Root) Dispose() {
	if r.disposed {
		return
	}
	r.disposed = true
	r.dirty = false
	r.ctx.runCleanups()
}

func (r *Root) check(op string) error {
	if r.disposed {
		return errors.New(op, errors.KindRender, errors.ErrDisposed)
	}
	if r.ctx.active || r.flushing {
		return errors.New(op, errors.KindReentrancy, errors.ErrRenderActive)
	}
	if r.renderer == nil {
		return errors.New(op, errors.KindRender, errors.ErrNoRenderer)
	}
	return nil
}

// requestRender is the setter entry point.
func (r *Root) requestRender() error {
	if r.ctx.active || r.flushing {
		// Picked up by the flush loop once the current pass settles.
		r.dirty = true
		return nil
	}
	if r.policy == BatchPolicy {
		r.MarkNeedsRender()
		return nil
	}
	r.dirty = true
	if err := r.check("core.Setter"); err != nil {
		return err
	}
	return r.flush()
}

func (r *Root) flush() (err error) {
	r.flushing = true
	defer func() {
		r.flushing = false
		r.lastError = err
	}()

	for passes := 0; r.dirty; passes++ {
		if passes >= r.maxPasses {
			r.dirty = false
			return errors.New("core.Root.Render", errors.KindRender,
				fmt.Errorf("%w (%d passes)", errors.ErrTooManyPasses, passes))
		}
		r.dirty = false
		tree, err := r.runPass()
		if err != nil {
			return err
		}
		if r.dirty {
			// State changed during the pass; the tree is already stale.
			continue
		}
		if err := r.renderer.RenderTree(tree); err != nil {
			var he *errors.HookError
			if stderrors.As(err, &he) {
				return err
			}
			return errors.New("core.Root.Render", errors.KindRender, err)
		}
		r.tree = tree
		r.rendered++
	}
	return nil
}

// runPass executes the component body once. Hook contract violations
// surface as *errors.HookError; any other panic becomes *errors.PanicError.
func (r *Root) runPass() (tree view.Node, err error) {
	ctx := r.ctx
	ctx.begin()
	defer func() {
		if rec := recover(); rec != nil {
			ctx.abort()
			if he, ok := rec.(*errors.HookError); ok {
				err = he
				return
			}
			err = errors.NewPanic("core.Root.Render", rec)
		}
	}()

	tree = r.component(ctx)
	if err := ctx.end(); err != nil {
		return view.Node{}, err
	}
	if r.onPass != nil {
		r.onPass(ctx.pass)
	}
	return tree, nil
}
