package ebitensrc

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/dshills/menustorm/internal/input/key"
	"github.com/dshills/menustorm/internal/input/mouse"
	"github.com/dshills/menustorm/internal/input/pad"
)

var namedKeys = map[ebiten.Key]key.Key{
	ebiten.KeyEscape:         key.KeyEscape,
	ebiten.KeyEnter:          key.KeyEnter,
	ebiten.KeyTab:            key.KeyTab,
	ebiten.KeyBackspace:      key.KeyBackspace,
	ebiten.KeyDelete:         key.KeyDelete,
	ebiten.KeyInsert:         key.KeyInsert,
	ebiten.KeyHome:           key.KeyHome,
	ebiten.KeyEnd:            key.KeyEnd,
	ebiten.KeyPageUp:         key.KeyPageUp,
	ebiten.KeyPageDown:       key.KeyPageDown,
	ebiten.KeyArrowUp:        key.KeyUp,
	ebiten.KeyArrowDown:      key.KeyDown,
	ebiten.KeyArrowLeft:      key.KeyLeft,
	ebiten.KeyArrowRight:     key.KeyRight,
	ebiten.KeySpace:          key.KeySpace,
	ebiten.KeyPause:          key.KeyPause,
	ebiten.KeyPrintScreen:    key.KeyPrintScreen,
	ebiten.KeyScrollLock:     key.KeyScrollLock,
	ebiten.KeyNumLock:        key.KeyNumLock,
	ebiten.KeyCapsLock:       key.KeyCapsLock,
	ebiten.KeyNumpadAdd:      key.KeyKPAdd,
	ebiten.KeyNumpadSubtract: key.KeyKPSubtract,
	ebiten.KeyNumpadMultiply: key.KeyKPMultiply,
	ebiten.KeyNumpadDivide:   key.KeyKPDivide,
	ebiten.KeyNumpadDecimal:  key.KeyKPDecimal,
	ebiten.KeyNumpadEnter:    key.KeyKPEnter,
	ebiten.KeyShiftLeft:      key.KeyLeftShift,
	ebiten.KeyShiftRight:     key.KeyRightShift,
	ebiten.KeyControlLeft:    key.KeyLeftCtrl,
	ebiten.KeyControlRight:   key.KeyRightCtrl,
	ebiten.KeyAltLeft:        key.KeyLeftAlt,
	ebiten.KeyAltRight:       key.KeyRightAlt,
	ebiten.KeyMinus:          key.KeyMinus,
	ebiten.KeyEqual:          key.KeyEqual,
	ebiten.KeyComma:          key.KeyComma,
	ebiten.KeyPeriod:         key.KeyPeriod,
	ebiten.KeySlash:          key.KeySlash,
	ebiten.KeySemicolon:      key.KeySemicolon,
	ebiten.KeyQuote:          key.KeyQuote,
	ebiten.KeyBracketLeft:    key.KeyBracketLeft,
	ebiten.KeyBracketRight:   key.KeyBracketRight,
	ebiten.KeyBackslash:      key.KeyBackslash,
	ebiten.KeyBackquote:      key.KeyBackquote,
}

// keyTable covers every ebiten key with a Key equivalent. Letters, digits,
// function keys and keypad digits are matched by their ebiten names.
var keyTable = buildKeyTable()

func buildKeyTable() map[ebiten.Key]key.Key {
	table := make(map[ebiten.Key]key.Key, len(namedKeys)+60)
	for ek, k := range namedKeys {
		table[ek] = k
	}
	for ek := ebiten.Key(0); ek <= ebiten.KeyMax; ek++ {
		if _, ok := table[ek]; ok {
			continue
		}
		if k := keyFromEbitenName(ek.String()); k != key.KeyNone {
			table[ek] = k
		}
	}
	return table
}

func keyFromEbitenName(name string) key.Key {
	switch {
	case len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z':
		return key.FromRune(rune(name[0]))
	case strings.HasPrefix(name, "Digit") && len(name) == 6:
		return key.FromRune(rune(name[5]))
	case strings.HasPrefix(name, "Numpad") && len(name) == 7 && name[6] >= '0' && name[6] <= '9':
		return key.KeyKP0 + key.Key(name[6]-'0')
	case strings.HasPrefix(name, "F"):
		k := key.FromName(name)
		if k.IsFunctionKey() {
			return k
		}
	}
	return key.KeyNone
}

var mouseButtons = []struct {
	ebiten ebiten.MouseButton
	button mouse.Button
}{
	{ebiten.MouseButtonLeft, mouse.ButtonLeft},
	{ebiten.MouseButtonMiddle, mouse.ButtonMiddle},
	{ebiten.MouseButtonRight, mouse.ButtonRight},
	{ebiten.MouseButton3, mouse.ButtonX1},
	{ebiten.MouseButton4, mouse.ButtonX2},
}

var padButtons = map[ebiten.StandardGamepadButton]pad.Button{
	ebiten.StandardGamepadButtonRightBottom:   pad.ButtonA,
	ebiten.StandardGamepadButtonRightRight:    pad.ButtonB,
	ebiten.StandardGamepadButtonRightLeft:     pad.ButtonX,
	ebiten.StandardGamepadButtonRightTop:      pad.ButtonY,
	ebiten.StandardGamepadButtonCenterLeft:    pad.ButtonBack,
	ebiten.StandardGamepadButtonCenterCenter:  pad.ButtonGuide,
	ebiten.StandardGamepadButtonCenterRight:   pad.ButtonStart,
	ebiten.StandardGamepadButtonLeftStick:     pad.ButtonLeftStick,
	ebiten.StandardGamepadButtonRightStick:    pad.ButtonRightStick,
	ebiten.StandardGamepadButtonFrontTopLeft:  pad.ButtonLeftShoulder,
	ebiten.StandardGamepadButtonFrontTopRight: pad.ButtonRightShoulder,
	ebiten.StandardGamepadButtonLeftTop:       pad.ButtonDpadUp,
	ebiten.StandardGamepadButtonLeftBottom:    pad.ButtonDpadDown,
	ebiten.StandardGamepadButtonLeftLeft:      pad.ButtonDpadLeft,
	ebiten.StandardGamepadButtonLeftRight:     pad.ButtonDpadRight,
}

// Stick axes, in pad.Axis order.
var padAxes = []struct {
	ebiten ebiten.StandardGamepadAxis
	axis   pad.Axis
}{
	{ebiten.StandardGamepadAxisLeftStickHorizontal, pad.AxisLeftX},
	{ebiten.StandardGamepadAxisLeftStickVertical, pad.AxisLeftY},
	{ebiten.StandardGamepadAxisRightStickHorizontal, pad.AxisRightX},
	{ebiten.StandardGamepadAxisRightStickVertical, pad.AxisRightY},
}

// Analog triggers are buttons in the standard layout; their value drives
// the trigger axes.
var padTriggers = []struct {
	ebiten ebiten.StandardGamepadButton
	axis   pad.Axis
}{
	{ebiten.StandardGamepadButtonFrontBottomLeft, pad.AxisTriggerLeft},
	{ebiten.StandardGamepadButtonFrontBottomRight, pad.AxisTriggerRight},
}
