package ebitensrc

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Poller is the slice of ebiten's polled input state the source reads.
// It must be called from within ebiten's Update.
type Poller interface {
	AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key
	AppendJustReleasedKeys(keys []ebiten.Key) []ebiten.Key
	IsMouseButtonJustPressed(b ebiten.MouseButton) bool
	IsMouseButtonJustReleased(b ebiten.MouseButton) bool
	CursorPosition() (int, int)

	AppendGamepadIDs(ids []ebiten.GamepadID) []ebiten.GamepadID
	AppendJustConnectedGamepadIDs(ids []ebiten.GamepadID) []ebiten.GamepadID
	IsGamepadJustDisconnected(id ebiten.GamepadID) bool
	AppendJustPressedStandardGamepadButtons(id ebiten.GamepadID, buttons []ebiten.StandardGamepadButton) []ebiten.StandardGamepadButton
	AppendJustReleasedStandardGamepadButtons(id ebiten.GamepadID, buttons []ebiten.StandardGamepadButton) []ebiten.StandardGamepadButton
	StandardGamepadAxisValue(id ebiten.GamepadID, axis ebiten.StandardGamepadAxis) float64
	StandardGamepadButtonValue(id ebiten.GamepadID, button ebiten.StandardGamepadButton) float64
}

// ebitenPoller reads the live ebiten state.
type ebitenPoller struct{}

func (ebitenPoller) AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key {
	return inpututil.AppendJustPressedKeys(keys)
}

func (ebitenPoller) AppendJustReleasedKeys(keys []ebiten.Key) []ebiten.Key {
	return inpututil.AppendJustReleasedKeys(keys)
}

func (ebitenPoller) IsMouseButtonJustPressed(b ebiten.MouseButton) bool {
	return inpututil.IsMouseButtonJustPressed(b)
}

func (ebitenPoller) IsMouseButtonJustReleased(b ebiten.MouseButton) bool {
	return inpututil.IsMouseButtonJustReleased(b)
}

func (ebitenPoller) CursorPosition() (int, int) {
	return ebiten.CursorPosition()
}

func (ebitenPoller) AppendGamepadIDs(ids []ebiten.GamepadID) []ebiten.GamepadID {
	return ebiten.AppendGamepadIDs(ids)
}

func (ebitenPoller) AppendJustConnectedGamepadIDs(ids []ebiten.GamepadID) []ebiten.GamepadID {
	return inpututil.AppendJustConnectedGamepadIDs(ids)
}

func (ebitenPoller) IsGamepadJustDisconnected(id ebiten.GamepadID) bool {
	return inpututil.IsGamepadJustDisconnected(id)
}

func (ebitenPoller) AppendJustPressedStandardGamepadButtons(id ebiten.GamepadID, buttons []ebiten.StandardGamepadButton) []ebiten.StandardGamepadButton {
	return inpututil.AppendJustPressedStandardGamepadButtons(id, buttons)
}

func (ebitenPoller) AppendJustReleasedStandardGamepadButtons(id ebiten.GamepadID, buttons []ebiten.StandardGamepadButton) []ebiten.StandardGamepadButton {
	return inpututil.AppendJustReleasedStandardGamepadButtons(id, buttons)
}

func (ebitenPoller) StandardGamepadAxisValue(id ebiten.GamepadID, axis ebiten.StandardGamepadAxis) float64 {
	return ebiten.StandardGamepadAxisValue(id, axis)
}

func (ebitenPoller) StandardGamepadButtonValue(id ebiten.GamepadID, button ebiten.StandardGamepadButton) float64 {
	return ebiten.StandardGamepadButtonValue(id, button)
}
