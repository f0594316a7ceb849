package rendering

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/go-drift/hooks/pkg/view"
)

// ImageRenderer rasterizes each settled tree with a fixed-width bitmap
// font and, when Out is set, encodes it as PNG. Glyphs missing from the
// face are drawn as the replacement character.
type ImageRenderer struct {
	// Out receives one PNG per tree. May be nil.
	Out io.Writer
	// Width is the image width in pixels. Defaults to 320.
	Width int
	// Padding surrounds the content. Defaults to 8.
	Padding int
	// Face is the font face. Defaults to basicfont.Face7x13.
	Face font.Face

	Background color.Color
	Foreground color.Color
	Accent     color.Color

	last *image.RGBA
}

// NewImageRenderer returns an ImageRenderer with default colors.
func NewImageRenderer(out io.Writer) *ImageRenderer {
	return &ImageRenderer{Out: out}
}

// Last returns the most recently rendered image, or nil.
func (r *ImageRenderer) Last() *image.RGBA {
	return r.last
}

// RenderTree rasterizes tree and encodes it to Out.
func (r *ImageRenderer) RenderTree(tree view.Node) error {
	img := r.Rasterize(tree)
	r.last = img
	if r.Out == nil {
		return nil
	}
	if err := png.Encode(r.Out, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Rasterize draws tree into a new image without encoding it.
func (r *ImageRenderer) Rasterize(tree view.Node) *image.RGBA {
	face := r.Face
	if face == nil {
		face = basicfont.Face7x13
	}
	width := r.Width
	if width <= 0 {
		width = 320
	}
	pad := r.Padding
	if pad <= 0 {
		pad = 8
	}
	bg := orDefault(r.Background, color.White)
	fg := orDefault(r.Foreground, color.Black)
	accent := orDefault(r.Accent, color.RGBA{R: 0x1e, G: 0x88, B: 0xe5, A: 0xff})

	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil() + 4
	ascent := metrics.Ascent.Ceil()
	indent := font.MeasureString(face, "  ").Ceil()

	lines := Layout(tree)
	height := 2*pad + max(1, len(lines))*lineHeight
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	d := &font.Drawer{Dst: img, Src: image.NewUniform(fg), Face: face}
	for i, line := range lines {
		x := pad + line.Depth*indent
		top := pad + i*lineHeight
		baseline := top + 2 + ascent

		text := line.String()
		switch line.Kind {
		case LineButton:
			text = line.Text
			w := font.MeasureString(face, text).Ceil()
			strokeRect(img, image.Rect(x, top, x+w+8, top+lineHeight-1), accent)
			x += 4
		case LineCheckbox:
			box := image.Rect(x, top+2, x+lineHeight-5, top+lineHeight-3)
			strokeRect(img, box, accent)
			if line.Checked {
				draw.Draw(img, box.Inset(3), image.NewUniform(accent), image.Point{}, draw.Src)
			}
			text = line.Text
			x = box.Max.X + 4
		}

		d.Dot = fixed.P(x, baseline)
		d.DrawString(text)
	}
	return img
}

func strokeRect(img draw.Image, r image.Rectangle, c color.Color) {
	src := image.NewUniform(c)
	draw.Draw(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), src, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), src, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), src, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), src, image.Point{}, draw.Src)
}

func orDefault(c, def color.Color) color.Color {
	if c == nil {
		return def
	}
	return c
}
