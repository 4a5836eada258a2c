package key

import (
	"fmt"
	"strings"
)

// Key represents a keyboard key.
type Key uint16

const (
	// KeyNone represents no key.
	KeyNone Key = iota

	// Special keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// Other special keys
	KeySpace
	KeyPause
	KeyPrintScreen
	KeyScrollLock
	KeyNumLock
	KeyCapsLock

	// Keypad keys
	KeyKP0
	KeyKP1
	KeyKP2
	KeyKP3
	KeyKP4
	KeyKP5
	KeyKP6
	KeyKP7
	KeyKP8
	KeyKP9
	KeyKPAdd
	KeyKPSubtract
	KeyKPMultiply
	KeyKPDivide
	KeyKPDecimal
	KeyKPEnter

	// Modifiers, reported as ordinary keys
	KeyLeftShift
	KeyRightShift
	KeyLeftCtrl
	KeyRightCtrl
	KeyLeftAlt
	KeyRightAlt

	// Letters
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	// Digits
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	// Punctuation
	KeyMinus
	KeyEqual
	KeyComma
	KeyPeriod
	KeySlash
	KeySemicolon
	KeyQuote
	KeyBracketLeft
	KeyBracketRight
	KeyBackslash
	KeyBackquote

	keyCount
)

var keyNames = map[Key]string{
	KeyNone:         "None",
	KeyEscape:       "Escape",
	KeyEnter:        "Enter",
	KeyTab:          "Tab",
	KeyBackspace:    "Backspace",
	KeyDelete:       "Delete",
	KeyInsert:       "Insert",
	KeyHome:         "Home",
	KeyEnd:          "End",
	KeyPageUp:       "PageUp",
	KeyPageDown:     "PageDown",
	KeyUp:           "Up",
	KeyDown:         "Down",
	KeyLeft:         "Left",
	KeyRight:        "Right",
	KeySpace:        "Space",
	KeyPause:        "Pause",
	KeyPrintScreen:  "PrintScreen",
	KeyScrollLock:   "ScrollLock",
	KeyNumLock:      "NumLock",
	KeyCapsLock:     "CapsLock",
	KeyKPAdd:        "KPAdd",
	KeyKPSubtract:   "KPSubtract",
	KeyKPMultiply:   "KPMultiply",
	KeyKPDivide:     "KPDivide",
	KeyKPDecimal:    "KPDecimal",
	KeyKPEnter:      "KPEnter",
	KeyLeftShift:    "LeftShift",
	KeyRightShift:   "RightShift",
	KeyLeftCtrl:     "LeftCtrl",
	KeyRightCtrl:    "RightCtrl",
	KeyLeftAlt:      "LeftAlt",
	KeyRightAlt:     "RightAlt",
	KeyMinus:        "Minus",
	KeyEqual:        "Equal",
	KeyComma:        "Comma",
	KeyPeriod:       "Period",
	KeySlash:        "Slash",
	KeySemicolon:    "Semicolon",
	KeyQuote:        "Quote",
	KeyBracketLeft:  "BracketLeft",
	KeyBracketRight: "BracketRight",
	KeyBackslash:    "Backslash",
	KeyBackquote:    "Backquote",
}

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch {
	case k.IsFunctionKey():
		return fmt.Sprintf("F%d", k-KeyF1+1)
	case k >= KeyKP0 && k <= KeyKP9:
		return fmt.Sprintf("KP%d", k-KeyKP0)
	case k.IsLetter():
		return string(rune('A' + (k - KeyA)))
	case k.IsDigit():
		return string(rune('0' + (k - Key0)))
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", k)
}

// Valid reports whether k is a defined key other than KeyNone.
func (k Key) Valid() bool {
	return k > KeyNone && k < keyCount
}

// IsFunctionKey returns true if this is a function key (F1-F12).
func (k Key) IsFunctionKey() bool {
	return k >= KeyF1 && k <= KeyF12
}

// IsArrowKey returns true if this is an arrow key.
func (k Key) IsArrowKey() bool {
	return k >= KeyUp && k <= KeyRight
}

// IsKeypadKey returns true if this is a keypad key.
func (k Key) IsKeypadKey() bool {
	return k >= KeyKP0 && k <= KeyKPEnter
}

// IsLetter returns true for A-Z.
func (k Key) IsLetter() bool {
	return k >= KeyA && k <= KeyZ
}

// IsDigit returns true for the top-row digits.
func (k Key) IsDigit() bool {
	return k >= Key0 && k <= Key9
}

var runeKeys = map[rune]Key{
	' ':  KeySpace,
	'-':  KeyMinus,
	'=':  KeyEqual,
	',':  KeyComma,
	'.':  KeyPeriod,
	'/':  KeySlash,
	';':  KeySemicolon,
	'\'': KeyQuote,
	'[':  KeyBracketLeft,
	']':  KeyBracketRight,
	'\\': KeyBackslash,
	'`':  KeyBackquote,
}

// FromRune returns the key that produces r on a US layout.
// Letters are case-insensitive. Returns KeyNone for unmapped runes.
func FromRune(r rune) Key {
	switch {
	case r >= 'a' && r <= 'z':
		return KeyA + Key(r-'a')
	case r >= 'A' && r <= 'Z':
		return KeyA + Key(r-'A')
	case r >= '0' && r <= '9':
		return Key0 + Key(r-'0')
	}
	return runeKeys[r]
}

// All returns every defined key except KeyNone, in code order.
func All() []Key {
	keys := make([]Key, 0, keyCount-1)
	for k := KeyNone + 1; k < keyCount; k++ {
		keys = append(keys, k)
	}
	return keys
}

// FromName returns the Key whose String matches name (case-insensitive).
// Returns KeyNone if the name is not recognized.
func FromName(name string) Key {
	name = strings.TrimSpace(name)
	for _, k := range All() {
		if strings.EqualFold(k.String(), name) {
			return k
		}
	}
	return KeyNone
}
