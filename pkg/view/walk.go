package view

import (
	"fmt"
	"reflect"
)

// Walk visits n and its descendants depth-first in pre-order. depth is 0
// for n. Returning false from visit skips the node's children.
func Walk(n Node, visit func(node Node, depth int) bool) {
	walk(n, 0, visit)
}

func walk(n Node, depth int, visit func(Node, int) bool) {
	if !visit(n, depth) {
		return
	}
	for _, child := range n.Children {
		walk(child, depth+1, visit)
	}
}

// Matcher selects nodes in a tree.
type Matcher interface {
	Match(n Node) bool
	// Description returns a human-readable description for error messages.
	Description() string
}

type textMatcher string

func (m textMatcher) Match(n Node) bool   { return n.Text == string(m) }
func (m textMatcher) Description() string { return fmt.Sprintf("text %q", string(m)) }

type tagMatcher string

func (m tagMatcher) Match(n Node) bool   { return n.Tag == string(m) }
func (m tagMatcher) Description() string { return fmt.Sprintf("tag <%s>", string(m)) }

type classMatcher string

func (m classMatcher) Match(n Node) bool   { return n.HasClass(string(m)) }
func (m classMatcher) Description() string { return fmt.Sprintf("class %q", string(m)) }

type keyMatcher struct{ key any }

func (m keyMatcher) Match(n Node) bool {
	if n.Key == nil || m.key == nil {
		return false
	}
	// Guard against non-comparable keys (slices, maps, funcs).
	if !reflect.TypeOf(n.Key).Comparable() || !reflect.TypeOf(m.key).Comparable() {
		return reflect.DeepEqual(n.Key, m.key)
	}
	return n.Key == m.key
}

func (m keyMatcher) Description() string { return fmt.Sprintf("key %v", m.key) }

// ByText matches nodes whose own Text equals s.
func ByText(s string) Matcher { return textMatcher(s) }

// ByTag matches nodes with the given tag.
func ByTag(tag string) Matcher { return tagMatcher(tag) }

// ByClass matches nodes carrying class.
func ByClass(class string) Matcher { return classMatcher(class) }

// ByKey matches nodes with the given comparable key.
func ByKey(key any) Matcher { return keyMatcher{key: key} }

// FindAll returns every node under root that m matches, in pre-order.
func FindAll(root Node, m Matcher) []Node {
	var found []Node
	Walk(root, func(n Node, _ int) bool {
		if m.Match(n) {
			found = append(found, n)
		}
		return true
	})
	return found
}

// Find returns the first node under root that m matches.
func Find(root Node, m Matcher) (Node, bool) {
	var (
		found Node
		ok    bool
	)
	Walk(root, func(n Node, _ int) bool {
		if ok {
			return false
		}
		if m.Match(n) {
			found, ok = n, true
			return false
		}
		return true
	})
	return found, ok
}

// Interactive returns the nodes carrying an event binding, in pre-order.
// Renderers use the order for keyboard focus traversal.
func Interactive(root Node) []Node {
	var nodes []Node
	Walk(root, func(n Node, _ int) bool {
		if n.Interactive() {
			nodes = append(nodes, n)
		}
		return true
	})
	return nodes
}

// Activate runs the binding of n: OnClick for buttons, OnToggle with the
// inverted Checked state for checkboxes.
func Activate(n Node) error {
	switch {
	case n.OnClick != nil:
		return n.OnClick()
	case n.OnToggle != nil:
		return n.OnToggle(!n.Checked)
	default:
		return fmt.Errorf("node <%s> %q has no event binding", n.Tag, n.Text)
	}
}
