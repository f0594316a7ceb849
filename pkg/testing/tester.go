package testing

import (
	"errors"
	"testing"

	"github.com/go-drift/hooks/pkg/core"
	"github.com/go-drift/hooks/pkg/view"
)

// DefaultMaxPumps bounds PumpAndSettle.
const DefaultMaxPumps = 100

// ErrSettleTimeout is returned when PumpAndSettle exceeds its pump budget.
var ErrSettleTimeout = errors.New("PumpAndSettle gave up: root did not settle")

// HookTester mounts a component against a recording renderer. It drives
// the same Root the runtime uses, but records every settled tree instead
// of drawing it, and owns a Dispatcher so background work can be drained
// deterministically.
type HookTester struct {
	root       *core.Root
	dispatcher *core.Dispatcher
	clock      *FakeClock
	trees      []view.Node
	options    []core.Option
	renderErr  error
}

// NewHookTester creates a tester. Call Cleanup() when done, or use
// NewHookTesterWithT() instead.
func NewHookTester(opts ...core.Option) *HookTester {
	return &HookTester{
		dispatcher: core.NewDispatcher(),
		clock:      NewFakeClock(),
		options:    opts,
	}
}

// NewHookTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewHookTesterWithT(t *testing.T, opts ...core.Option) *HookTester {
	tester := NewHookTester(opts...)
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup disposes the mounted root and closes the dispatcher.
func (t *HookTester) Cleanup() {
	if t.root != nil {
		t.root.Dispose()
		t.root = nil
	}
	t.dispatcher.Close()
}

// RenderTree records tree. It makes HookTester a core.Renderer.
func (t *HookTester) RenderTree(tree view.Node) error {
	if t.renderErr != nil {
		return t.renderErr
	}
	t.trees = append(t.trees, tree)
	return nil
}

// FailRenders makes the recording renderer return err until it is called
// again with nil.
func (t *HookTester) FailRenders(err error) {
	t.renderErr = err
}

// Dispatcher returns the dispatcher drained by Pump. Pass its Post method
// as the scheduler of async work started by the component.
func (t *HookTester) Dispatcher() *core.Dispatcher {
	return t.dispatcher
}

// Clock returns the fake clock for deterministic timestamps.
func (t *HookTester) Clock() *FakeClock {
	return t.clock
}

// PumpComponent mounts (or remounts) component and runs its first pass.
func (t *HookTester) PumpComponent(component core.Component) error {
	if t.root != nil {
		t.root.Dispose()
	}
	t.trees = nil
	t.root = core.NewRoot(component, t, t.options...)
	return t.root.Render()
}

// Pump drains the dispatcher and flushes the root if it is dirty.
func (t *HookTester) Pump() error {
	if t.root == nil {
		return nil
	}
	t.dispatcher.Drain()
	return t.root.Flush()
}

// PumpAndSettle pumps until the dispatcher is empty and the root is clean.
// Work still running on other goroutines is not waited for; use
// WaitForDispatch first.
func (t *HookTester) PumpAndSettle() error {
	for i := 0; i < DefaultMaxPumps; i++ {
		if err := t.Pump(); err != nil {
			return err
		}
		if !t.needsWork() {
			return nil
		}
	}
	return ErrSettleTimeout
}

// WaitForDispatch blocks until a callback is posted to the dispatcher or
// the dispatcher is closed.
func (t *HookTester) WaitForDispatch() {
	<-t.dispatcher.Ready()
}

func (t *HookTester) needsWork() bool {
	return t.dispatcher.Pending() > 0 || (t.root != nil && t.root.NeedsRender())
}

// Root returns the mounted root.
func (t *HookTester) Root() *core.Root {
	return t.root
}

// Tree returns the last recorded tree.
func (t *HookTester) Tree() view.Node {
	if len(t.trees) == 0 {
		return view.Node{}
	}
	return t.trees[len(t.trees)-1]
}

// Trees returns every tree recorded since the component was mounted.
func (t *HookTester) Trees() []view.Node {
	return t.trees
}

// Passes returns the number of component passes since mount.
func (t *HookTester) Passes() int {
	if t.root == nil {
		return 0
	}
	return t.root.Passes()
}

// Find evaluates a finder against the last recorded tree.
func (t *HookTester) Find(finder Finder) FinderResult {
	if len(t.trees) == 0 {
		return FinderResult{finder: finder}
	}
	return FinderResult{
		nodes:  view.FindAll(t.Tree(), finder),
		finder: finder,
	}
}
