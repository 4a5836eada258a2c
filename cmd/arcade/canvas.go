package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/dshills/menustorm/internal/ui/control"
	"github.com/dshills/menustorm/internal/ui/menu"
)

// debugGlyphHeight is the line height of ebitenutil's debug font.
const debugGlyphHeight = 16

type palette struct {
	fill, border color.NRGBA
}

var statePalette = map[control.State]palette{
	control.StateDisabled: {fill: color.NRGBA{0x30, 0x30, 0x30, 0xff}, border: color.NRGBA{0x50, 0x50, 0x50, 0xff}},
	control.StateInactive: {fill: color.NRGBA{0x20, 0x28, 0x40, 0xff}, border: color.NRGBA{0x60, 0x70, 0xa0, 0xff}},
	control.StateActive:   {fill: color.NRGBA{0x30, 0x50, 0x90, 0xff}, border: color.NRGBA{0xf0, 0xd0, 0x60, 0xff}},
	control.StateSelected: {fill: color.NRGBA{0xf0, 0xd0, 0x60, 0xff}, border: color.NRGBA{0xff, 0xff, 0xff, 0xff}},
}

// canvas draws menus onto the ebiten screen of the current frame.
type canvas struct {
	dst   *ebiten.Image
	alpha float64
}

var _ menu.Canvas = (*canvas)(nil)

func (c *canvas) DrawMenu(v menu.View) {
	c.alpha = opacity(v)
}

func (c *canvas) DrawControl(v control.View) {
	if c.dst == nil || c.alpha <= 0 {
		return
	}
	p, ok := statePalette[v.State]
	if !ok {
		p = statePalette[control.StateInactive]
	}

	lo, hi := v.Quad.Bounds()
	x, y := float32(lo.X), float32(lo.Y)
	w, h := float32(hi.X-lo.X), float32(hi.Y-lo.Y)
	vector.DrawFilledRect(c.dst, x, y, w, h, fade(p.fill, c.alpha), true)
	vector.StrokeRect(c.dst, x, y, w, h, 1, fade(p.border, c.alpha), true)

	ty := int(lo.Y) + (int(h)-debugGlyphHeight)/2
	ebitenutil.DebugPrintAt(c.dst, v.Label(), int(lo.X)+4, ty)
}

// opacity is how visible a menu is during its transition.
func opacity(v menu.View) float64 {
	switch v.Phase {
	case menu.PhaseIn:
		return v.Progress
	case menu.PhaseOut:
		return 1 - v.Progress
	case menu.PhaseShown:
		return 1
	default:
		return 0
	}
}

func fade(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(float64(c.A) * alpha)
	return c
}
