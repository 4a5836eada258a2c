// Package term draws menus on a tcell screen.
//
// Layout coordinates are terminal cells. Each control is drawn as its label
// inside the cell bounds of its quad, styled by control state; a control
// with room for a border also gets a box.
package term

import (
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/menustorm/internal/ui/control"
	"github.com/dshills/menustorm/internal/ui/menu"
)

// Terminal implements menu.Canvas on a tcell screen.
type Terminal struct {
	screen tcell.Screen
	styles map[control.State]tcell.Style
	closed bool
	mu     sync.Mutex
}

var _ menu.Canvas = (*Terminal)(nil)

// NewTerminal creates a terminal canvas on a new tcell screen.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen), nil
}

// NewWithScreen wraps an existing screen, such as a simulation screen.
func NewWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen, styles: DefaultStyles()}
}

// DefaultStyles returns the style used for each control state.
func DefaultStyles() map[control.State]tcell.Style {
	base := tcell.StyleDefault
	return map[control.State]tcell.Style{
		control.StateDisabled: base.Dim(true),
		control.StateInactive: base,
		control.StateActive:   base.Reverse(true),
		control.StateSelected: base.Reverse(true).Bold(true),
	}
}

// Screen returns the underlying screen.
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

// Init initializes the screen with mouse reporting on.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse()
	t.screen.HideCursor()
	return nil
}

// Shutdown restores the terminal. Later calls do nothing.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}
	t.closed = true
	t.screen.Fini()
}

// Size returns the screen size in cells.
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

// Clear starts a frame.
func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

// Show flushes the frame.
func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

// PollEvent blocks for the next screen event. It returns nil once the
// screen is finalized.
func (t *Terminal) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

// DrawMenu is a no-op; a terminal menu is drawn through its controls.
func (t *Terminal) DrawMenu(v menu.View) {}

// DrawControl draws a control label, boxed when the quad is tall enough.
func (t *Terminal) DrawControl(v control.View) {
	t.mu.Lock()
	defer t.mu.Unlock()

	lo, hi := v.Quad.Bounds()
	left, top := int(math.Round(lo.X)), int(math.Round(lo.Y))
	right, bottom := int(math.Round(hi.X)), int(math.Round(hi.Y))
	if right <= left {
		right = left + 1
	}
	if bottom <= top {
		bottom = top + 1
	}

	style, ok := t.styles[v.State]
	if !ok {
		style = tcell.StyleDefault
	}

	row := top
	if bottom-top >= 3 {
		t.box(left, top, right-1, bottom-1, style)
		left, right = left+1, right-1
		row = top + (bottom-top)/2
	}
	t.fill(left, row, right, style)
	t.text(left, row, right, v.Label(), style)
}

func (t *Terminal) fill(left, y, right int, style tcell.Style) {
	width, height := t.screen.Size()
	if y < 0 || y >= height {
		return
	}
	for x := max(left, 0); x < right && x < width; x++ {
		t.screen.SetContent(x, y, ' ', nil, style)
	}
}

// text writes s centred between left and right, clipped to the screen.
func (t *Terminal) text(left, y, right int, s string, style tcell.Style) {
	width, height := t.screen.Size()
	if y < 0 || y >= height {
		return
	}
	x := left
	if w := uniseg.StringWidth(s); w < right-left {
		x += (right - left - w) / 2
	}

	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		runes := gr.Runes()
		w := gr.Width()
		if x+w > right || x+w > width {
			return
		}
		if x >= 0 {
			t.screen.SetContent(x, y, runes[0], runes[1:], style)
		}
		x += w
	}
}

func (t *Terminal) box(left, top, right, bottom int, style tcell.Style) {
	border := style.Reverse(false).Bold(false)
	t.set(left, top, tcell.RuneULCorner, border)
	t.set(right, top, tcell.RuneURCorner, border)
	t.set(left, bottom, tcell.RuneLLCorner, border)
	t.set(right, bottom, tcell.RuneLRCorner, border)
	for x := left + 1; x < right; x++ {
		t.set(x, top, tcell.RuneHLine, border)
		t.set(x, bottom, tcell.RuneHLine, border)
	}
	for y := top + 1; y < bottom; y++ {
		t.set(left, y, tcell.RuneVLine, border)
		t.set(right, y, tcell.RuneVLine, border)
	}
}

func (t *Terminal) set(x, y int, r rune, style tcell.Style) {
	width, height := t.screen.Size()
	if x >= 0 && y >= 0 && x < width && y < height {
		t.screen.SetContent(x, y, r, nil, style)
	}
}
