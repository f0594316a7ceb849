package testing

import (
	"fmt"

	"github.com/go-drift/hooks/pkg/view"
)

// Tap activates the first node matched by finder (its OnClick, or its
// OnToggle with the inverted checked state) and pumps.
func (t *HookTester) Tap(finder Finder) error {
	result := t.Find(finder)
	if !result.Exists() {
		return fmt.Errorf("Tap: finder matched no nodes: %s", finder.Description())
	}
	n := result.First()
	if !n.Interactive() {
		return fmt.Errorf("Tap: node has no event binding: %s", finder.Description())
	}
	if err := view.Activate(n); err != nil {
		return err
	}
	return t.Pump()
}

// TapLabel taps the first interactive node whose label is label.
func (t *HookTester) TapLabel(label string) error {
	return t.Tap(ByPredicate(fmt.Sprintf("label %q", label), func(n view.Node) bool {
		return n.Interactive() && n.Label() == label
	}))
}

// SetChecked calls OnToggle of the first checkbox matched by finder with
// checked and pumps.
func (t *HookTester) SetChecked(finder Finder, checked bool) error {
	result := t.Find(finder)
	if !result.Exists() {
		return fmt.Errorf("SetChecked: finder matched no nodes: %s", finder.Description())
	}
	n := result.First()
	if n.OnToggle == nil {
		return fmt.Errorf("SetChecked: node is not a checkbox: %s", finder.Description())
	}
	if err := n.OnToggle(checked); err != nil {
		return err
	}
	return t.Pump()
}
