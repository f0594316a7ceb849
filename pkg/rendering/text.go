package rendering

import (
	"io"
	"strings"

	"github.com/go-drift/hooks/pkg/view"
)

// TextRenderer writes each settled tree to Out as an indented outline.
type TextRenderer struct {
	Out io.Writer
	// Indent is repeated once per depth level. Defaults to two spaces.
	Indent string
	// Separator, if set, is written on its own line after every tree.
	Separator string
}

// NewTextRenderer returns a TextRenderer writing to out.
func NewTextRenderer(out io.Writer) *TextRenderer {
	return &TextRenderer{Out: out, Indent: "  "}
}

// RenderTree writes tree.
func (r *TextRenderer) RenderTree(tree view.Node) error {
	text := Format(tree, r.Indent)
	if r.Separator != "" {
		text += r.Separator + "\n"
	}
	_, err := io.WriteString(r.Out, text)
	return err
}

// Format returns the outline of tree, one node per line.
func Format(tree view.Node, indent string) string {
	if indent == "" {
		indent = "  "
	}
	var b strings.Builder
	for _, line := range Layout(tree) {
		b.WriteString(strings.Repeat(indent, line.Depth))
		b.WriteString(line.String())
		b.WriteByte('\n')
	}
	return b.String()
}
