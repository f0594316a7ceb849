// Package terminal renders view trees to a tcell screen and turns key
// presses into event bindings.
package terminal

import (
	"context"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/go-drift/hooks/pkg/core"
	"github.com/go-drift/hooks/pkg/errors"
	"github.com/go-drift/hooks/pkg/rendering"
	"github.com/go-drift/hooks/pkg/view"
)

var (
	styleDefault = tcell.StyleDefault
	styleTitle   = tcell.StyleDefault.Bold(true)
	styleButton  = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleElement = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFocus   = tcell.StyleDefault.Reverse(true)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleHelp    = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

const helpText = "tab/↓ next  shift-tab/↑ prev  enter/space activate  q quit"

// Renderer draws each settled tree on a tcell screen. Interactive nodes
// (buttons and checkboxes) can be focused with Tab and the arrow keys and
// activated with Enter or Space.
//
// Renderer is NOT thread-safe. RenderTree, HandleEvent and Run must be
// called from the goroutine that owns the Root.
type Renderer struct {
	screen tcell.Screen
	sound  Sounder

	// Title is drawn on the first row.
	Title string
	// ShowElements includes element headers such as <ul.todo-list>.
	ShowElements bool

	lines   []rendering.Line
	targets []int // indexes into lines
	focus   int
	status  string
}

// NewRenderer returns a renderer drawing on screen. The screen must be
// initialized.
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// SetSounder sets the activation feedback. Nil disables it.
func (r *Renderer) SetSounder(s Sounder) {
	r.sound = s
}

// RenderTree lays out tree and redraws the screen. Focus stays on the
// same index, clamped to the new number of interactive nodes.
func (r *Renderer) RenderTree(tree view.Node) error {
	r.lines = r.lines[:0]
	for _, line := range rendering.Layout(tree) {
		if line.Kind == rendering.LineElement && !r.ShowElements && !line.Node.Interactive() {
			continue
		}
		r.lines = append(r.lines, line)
	}
	r.targets = r.targets[:0]
	for i, line := range r.lines {
		if line.Node.Interactive() {
			r.targets = append(r.targets, i)
		}
	}
	r.focus = clamp(r.focus, 0, len(r.targets)-1)
	r.draw()
	return nil
}

// Focused returns the focused node.
func (r *Renderer) Focused() (view.Node, bool) {
	if len(r.targets) == 0 {
		return view.Node{}, false
	}
	return r.lines[r.targets[r.focus]].Node, true
}

// FocusNext moves focus to the next interactive node, wrapping around.
func (r *Renderer) FocusNext() {
	if len(r.targets) == 0 {
		return
	}
	r.focus = (r.focus + 1) % len(r.targets)
	r.draw()
}

// FocusPrev moves focus to the previous interactive node, wrapping around.
func (r *Renderer) FocusPrev() {
	if len(r.targets) == 0 {
		return
	}
	r.focus = (r.focus - 1 + len(r.targets)) % len(r.targets)
	r.draw()
}

// Activate runs the focused node's binding. The binding's error (the
// render pass error under the synchronous policy) is shown on the status
// row and returned.
func (r *Renderer) Activate() error {
	n, ok := r.Focused()
	if !ok {
		return nil
	}
	err := view.Activate(n)
	if err != nil {
		r.status = err.Error()
		if r.sound != nil {
			r.sound.Error()
		}
	} else {
		r.status = ""
		if r.sound != nil {
			r.sound.Click()
		}
	}
	r.draw()
	return err
}

// Status returns the text of the status row.
func (r *Renderer) Status() string {
	return r.status
}

// SetStatus replaces the text of the status row.
func (r *Renderer) SetStatus(s string) {
	r.status = s
	r.draw()
}

// HandleEvent applies one terminal event. It returns false when the user
// asked to quit.
func (r *Renderer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyTab, tcell.KeyDown:
			r.FocusNext()
		case tcell.KeyBacktab, tcell.KeyUp:
			r.FocusPrev()
		case tcell.KeyEnter:
			r.Activate()
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				r.Activate()
			case 'j':
				r.FocusNext()
			case 'k':
				r.FocusPrev()
			}
		}
	case *tcell.EventResize:
		r.screen.Sync()
		r.draw()
	}
	return true
}

// Run renders root, then processes terminal events and dispatcher
// callbacks until the user quits or ctx is done.
func (r *Renderer) Run(ctx context.Context, root *core.Root, d *core.Dispatcher) error {
	if err := root.Render(); err != nil {
		return err
	}

	events := make(chan tcell.Event, 100)
	go func() {
		defer errors.Recover("terminal.PollEvent")
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	var ready <-chan struct{}
	if d != nil {
		ready = d.Ready()
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !r.HandleEvent(ev) {
				return nil
			}
		case _, ok := <-ready:
			if !ok {
				ready = nil
				continue
			}
			d.Drain()
			if err := root.Flush(); err != nil {
				r.SetStatus(err.Error())
			}
		}
	}
}

func (r *Renderer) draw() {
	s := r.screen
	s.Clear()
	width, height := s.Size()

	row := 0
	if r.Title != "" {
		drawString(s, 0, row, width, r.Title, styleTitle)
		row++
	}

	// Rows left for content after the status and help rows.
	rows := height - row - 2
	offset := 0
	if len(r.targets) > 0 && rows > 0 {
		if focusLine := r.targets[r.focus]; focusLine >= rows {
			offset = focusLine - rows + 1
		}
	}

	for i := offset; i < len(r.lines) && row < height-2; i++ {
		line := r.lines[i]
		style := styleDefault
		switch line.Kind {
		case rendering.LineButton, rendering.LineCheckbox:
			style = styleButton
		case rendering.LineElement:
			style = styleElement
		}
		if len(r.targets) > 0 && r.targets[r.focus] == i {
			style = styleFocus
		}
		drawString(s, line.Depth*2, row, width, line.String(), style)
		row++
	}

	if height >= 2 {
		drawString(s, 0, height-2, width, r.status, styleStatus)
		drawString(s, 0, height-1, width, helpText, styleHelp)
	}
	s.Show()
}

// drawString writes text starting at (x, y), clipped to width. Wide runes
// take two cells.
func drawString(s tcell.Screen, x, y, width int, text string, style tcell.Style) {
	for _, ch := range text {
		if x >= width {
			return
		}
		s.SetContent(x, y, ch, nil, style)
		x += runewidth.RuneWidth(ch)
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}

// ScreenText returns the characters of row y, trimmed of trailing blanks.
// Wide runes are returned once.
func ScreenText(s tcell.Screen, y int) string {
	width, _ := s.Size()
	var b strings.Builder
	for x := 0; x < width; x++ {
		ch, _, _, w := s.GetContent(x, y)
		if ch == 0 {
			ch = ' '
		}
		b.WriteRune(ch)
		if w > 1 {
			x += w - 1
		}
	}
	return strings.TrimRight(b.String(), " ")
}
