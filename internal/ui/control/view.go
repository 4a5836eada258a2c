package control

import "github.com/dshills/menustorm/internal/geom"

// View is what a control asks the host to draw.
type View struct {
	Menu      string
	Name      string
	Text      string
	Value     string
	State     State
	Quad      geom.Quad
	Sprites   map[string]string
	Capturing bool
}

// Label is the text a host shows for the control.
func (v View) Label() string {
	switch {
	case v.Capturing:
		return v.Text + ": press a key"
	case v.Value != "":
		return v.Text + ": " + v.Value
	default:
		return v.Text
	}
}

// Canvas receives control views during a render pass.
type Canvas interface {
	DrawControl(v View)
}
