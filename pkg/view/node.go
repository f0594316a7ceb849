// Package view describes the declarative output of a component.
//
// A Node tree is produced by a component on every render pass and handed,
// unmodified, to a render collaborator. The hooks runtime never inspects it.
//
//	view.El("div", "",
//	    view.Text(fmt.Sprint(count)),
//	    view.Button("setCount", func() error { return setCount(count + 1) }),
//	)
package view

import "strings"

// Node is one element of a view tree. The zero Node renders nothing.
type Node struct {
	// Tag names the element kind ("div", "button", "li", "input"...).
	// An empty tag with non-empty Text is a text node.
	Tag string
	// Class is a space-separated list of style hints.
	Class string
	// Key identifies list items across passes.
	Key any
	// Text is the node's own text content.
	Text string
	// Checked is the state of checkbox inputs.
	Checked bool
	// Children are rendered in order after Text.
	Children []Node

	// OnClick is bound to buttons.
	OnClick func() error
	// OnToggle is bound to checkbox inputs.
	OnToggle func(checked bool) error
}

// IsText reports whether n is a bare text node.
func (n Node) IsText() bool {
	return n.Tag == "" && n.Text != ""
}

// IsZero reports whether n is the empty node.
func (n Node) IsZero() bool {
	return n.Tag == "" && n.Text == "" && len(n.Children) == 0
}

// Interactive reports whether n carries an event binding.
func (n Node) Interactive() bool {
	return n.OnClick != nil || n.OnToggle != nil
}

// HasClass reports whether class appears in n.Class.
func (n Node) HasClass(class string) bool {
	for _, c := range strings.Fields(n.Class) {
		if c == class {
			return true
		}
	}
	return false
}

// Label returns the text a user sees for n: its own text followed by the
// text of its descendants, space separated.
func (n Node) Label() string {
	var parts []string
	Walk(n, func(node Node, _ int) bool {
		if node.Text != "" {
			parts = append(parts, node.Text)
		}
		return true
	})
	return strings.Join(parts, " ")
}

// Text returns a text node.
func Text(s string) Node {
	return Node{Text: s}
}

// El returns an element with the given tag, class and children.
func El(tag, class string, children ...Node) Node {
	return Node{Tag: tag, Class: class, Children: children}
}

// Button returns a button labelled text that calls onClick when activated.
func Button(text string, onClick func() error) Node {
	return Node{Tag: "button", Text: text, OnClick: onClick}
}

// Checkbox returns a checkbox input bound to onToggle.
func Checkbox(class string, checked bool, onToggle func(bool) error) Node {
	return Node{Tag: "input", Class: class, Checked: checked, OnToggle: onToggle}
}

// Keyed returns n with its Key set.
func Keyed(key any, n Node) Node {
	n.Key = key
	return n
}

// Map builds one node per item.
func Map[T any](items []T, build func(T) Node) []Node {
	nodes := make([]Node, 0, len(items))
	for _, item := range items {
		nodes = append(nodes, build(item))
	}
	return nodes
}
