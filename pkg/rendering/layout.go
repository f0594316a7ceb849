// Package rendering provides render collaborators that turn a view tree
// into text or a raster image.
package rendering

import (
	"fmt"
	"strings"

	"github.com/go-drift/hooks/pkg/view"
)

// LineKind classifies a laid-out line.
type LineKind int

const (
	// LineElement is an element header such as "<ul.todo-list>".
	LineElement LineKind = iota
	// LineText is a bare text node.
	LineText
	// LineButton is a button with its label.
	LineButton
	// LineCheckbox is a checkbox input.
	LineCheckbox
)

// Line is one row of the flattened tree.
type Line struct {
	Depth int
	Kind  LineKind
	Text  string
	// Checked is set for checked checkboxes.
	Checked bool
	// Node is the node the line was produced from.
	Node view.Node
}

// Layout flattens tree into one line per node, in pre-order. Buttons and
// checkboxes are leaves: their descendants are folded into their label.
func Layout(tree view.Node) []Line {
	var lines []Line
	view.Walk(tree, func(n view.Node, depth int) bool {
		switch {
		case n.IsZero():
			return false
		case n.OnToggle != nil || (n.Tag == "input" && n.HasClass("toggle")):
			lines = append(lines, Line{Depth: depth, Kind: LineCheckbox, Text: n.Label(), Checked: n.Checked, Node: n})
			return false
		case n.Tag == "button":
			lines = append(lines, Line{Depth: depth, Kind: LineButton, Text: n.Label(), Node: n})
			return false
		case n.IsText():
			lines = append(lines, Line{Depth: depth, Kind: LineText, Text: n.Text, Node: n})
			return true
		default:
			lines = append(lines, Line{Depth: depth, Kind: LineElement, Text: header(n), Node: n})
			if n.Text != "" {
				lines = append(lines, Line{Depth: depth + 1, Kind: LineText, Text: n.Text, Node: view.Text(n.Text)})
			}
			return true
		}
	})
	return lines
}

// header returns "<tag.class1.class2#key>".
func header(n view.Node) string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(n.Tag)
	for _, c := range strings.Fields(n.Class) {
		b.WriteByte('.')
		b.WriteString(c)
	}
	if n.Key != nil {
		fmt.Fprintf(&b, "#%v", n.Key)
	}
	b.WriteByte('>')
	return b.String()
}

// String renders l without indentation.
func (l Line) String() string {
	switch l.Kind {
	case LineButton:
		return "[" + l.Text + "]"
	case LineCheckbox:
		box := "[ ]"
		if l.Checked {
			box = "[x]"
		}
		if l.Text == "" {
			return box
		}
		return box + " " + l.Text
	default:
		return l.Text
	}
}
