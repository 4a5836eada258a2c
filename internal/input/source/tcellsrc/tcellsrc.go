// Package tcellsrc converts tcell terminal events into input events.
//
// Terminals report key presses only, so every key press becomes a KeyDown
// immediately followed by a KeyUp. Mouse button state arrives as a mask on
// every mouse event; the translator diffs consecutive masks to produce
// MouseDown and MouseUp edges.
package tcellsrc

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/menustorm/internal/input"
	"github.com/dshills/menustorm/internal/input/key"
	"github.com/dshills/menustorm/internal/input/mouse"
)

// Translator converts tcell events. It keeps mouse state between calls and
// must be used from a single goroutine.
type Translator struct {
	buttons tcell.ButtonMask
	x, y    int
	seen    bool
}

// New creates a translator.
func New() *Translator {
	return &Translator{}
}

var buttonMasks = []struct {
	mask   tcell.ButtonMask
	button mouse.Button
}{
	{tcell.Button1, mouse.ButtonLeft},
	{tcell.Button2, mouse.ButtonRight},
	{tcell.Button3, mouse.ButtonMiddle},
	{tcell.Button4, mouse.ButtonX1},
	{tcell.Button5, mouse.ButtonX2},
}

// Translate converts ev into zero or more input events.
func (t *Translator) Translate(ev tcell.Event) []input.Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		k := convertKey(e)
		if k == key.KeyNone {
			return nil
		}
		return []input.Event{input.KeyDown(int(k)), input.KeyUp(int(k))}

	case *tcell.EventMouse:
		return t.translateMouse(e)
	}
	return nil
}

func (t *Translator) translateMouse(e *tcell.EventMouse) []input.Event {
	x, y := e.Position()
	fx, fy := float64(x), float64(y)

	var out []input.Event
	if !t.seen || x != t.x || y != t.y {
		out = append(out, input.MouseMove(fx, fy))
		t.x, t.y, t.seen = x, y, true
	}

	buttons := e.Buttons() & (tcell.Button1 | tcell.Button2 | tcell.Button3 | tcell.Button4 | tcell.Button5)
	for _, bm := range buttonMasks {
		was := t.buttons&bm.mask != 0
		is := buttons&bm.mask != 0
		switch {
		case is && !was:
			out = append(out, input.MouseDown(int(bm.button), fx, fy))
		case was && !is:
			out = append(out, input.MouseUp(int(bm.button), fx, fy))
		}
	}
	t.buttons = buttons
	return out
}

// convertKey converts a tcell key event to a Key.
func convertKey(e *tcell.EventKey) key.Key {
	switch e.Key() {
	case tcell.KeyRune:
		return key.FromRune(e.Rune())
	case tcell.KeyEscape:
		return key.KeyEscape
	case tcell.KeyEnter:
		return key.KeyEnter
	case tcell.KeyTab, tcell.KeyBacktab:
		return key.KeyTab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.KeyBackspace
	case tcell.KeyDelete:
		return key.KeyDelete
	case tcell.KeyInsert:
		return key.KeyInsert
	case tcell.KeyHome:
		return key.KeyHome
	case tcell.KeyEnd:
		return key.KeyEnd
	case tcell.KeyPgUp:
		return key.KeyPageUp
	case tcell.KeyPgDn:
		return key.KeyPageDown
	case tcell.KeyUp:
		return key.KeyUp
	case tcell.KeyDown:
		return key.KeyDown
	case tcell.KeyLeft:
		return key.KeyLeft
	case tcell.KeyRight:
		return key.KeyRight
	case tcell.KeyPause:
		return key.KeyPause
	case tcell.KeyPrint:
		return key.KeyPrintScreen
	}
	if k := e.Key(); k >= tcell.KeyF1 && k <= tcell.KeyF12 {
		return key.KeyF1 + key.Key(k-tcell.KeyF1)
	}
	return key.KeyNone
}
