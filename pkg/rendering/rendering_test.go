package rendering

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/go-drift/hooks/pkg/view"
)

func sample() view.Node {
	noop := func() error { return nil }
	return view.El("section", "main",
		view.Button("add", noop),
		view.El("ul", "todo-list",
			view.Keyed(int64(1), view.El("li", "completed",
				view.Checkbox("toggle", true, func(bool) error { return nil }),
				view.El("label", "", view.Text("a")),
			)),
		),
	)
}

func TestFormat(t *testing.T) {
	want := "<section.main>\n" +
		"  [add]\n" +
		"  <ul.todo-list>\n" +
		"    <li.completed#1>\n" +
		"      [x]\n" +
		"      <label>\n" +
		"        a\n"
	if got := Format(sample(), ""); got != want {
		t.Errorf("Expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestLayout_SkipsZeroNodes(t *testing.T) {
	lines := Layout(view.El("div", "", view.Node{}, view.Text("x")))
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d: %v", len(lines), lines)
	}
	if lines[1].Kind != LineText || lines[1].Depth != 1 {
		t.Errorf("Expected text at depth 1, got %+v", lines[1])
	}
}

func TestLayout_ElementOwnText(t *testing.T) {
	lines := Layout(view.Node{Tag: "p", Class: "error", Text: "boom"})
	if len(lines) != 2 || lines[0].Text != "<p.error>" || lines[1].Text != "boom" {
		t.Errorf("Expected header and text lines, got %v", lines)
	}
}

func TestLine_String(t *testing.T) {
	cases := []struct {
		line Line
		want string
	}{
		{Line{Kind: LineButton, Text: "go"}, "[go]"},
		{Line{Kind: LineCheckbox}, "[ ]"},
		{Line{Kind: LineCheckbox, Checked: true, Text: "done"}, "[x] done"},
		{Line{Kind: LineText, Text: "hi"}, "hi"},
	}
	for _, tc := range cases {
		if got := tc.line.String(); got != tc.want {
			t.Errorf("Expected %q, got %q", tc.want, got)
		}
	}
}

func TestTextRenderer_Separator(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextRenderer(&buf)
	r.Separator = "--"

	if err := r.RenderTree(view.Text("one")); err != nil {
		t.Fatal(err)
	}
	if err := r.RenderTree(view.Text("two")); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "one\n--\ntwo\n--\n" {
		t.Errorf("Expected two separated trees, got %q", got)
	}
}

func TestImageRenderer_EncodesPNG(t *testing.T) {
	var buf bytes.Buffer
	r := NewImageRenderer(&buf)
	r.Width = 200

	if err := r.RenderTree(sample()); err != nil {
		t.Fatalf("RenderTree failed: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Expected valid PNG, got %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 200 {
		t.Errorf("Expected width 200, got %d", b.Dx())
	}
	if b.Dy() <= 16 {
		t.Errorf("Expected room for 7 lines, got height %d", b.Dy())
	}
	if r.Last() == nil {
		t.Error("Expected Last to return the rendered image")
	}
}

func TestImageRenderer_DrawsInk(t *testing.T) {
	r := &ImageRenderer{Width: 120}
	img := r.Rasterize(view.Text("hello"))

	white := color.RGBAModel.Convert(color.White)
	ink := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.At(x, y) != white {
				ink++
			}
		}
	}
	if ink == 0 {
		t.Error("Expected text pixels on the image")
	}
}

func TestImageRenderer_EmptyTree(t *testing.T) {
	r := &ImageRenderer{}
	img := r.Rasterize(view.Node{})
	if img.Bounds().Dx() != 320 || img.Bounds().Dy() == 0 {
		t.Errorf("Expected a blank default-size image, got %v", img.Bounds())
	}
}
