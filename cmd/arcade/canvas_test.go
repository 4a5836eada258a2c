package main

import (
	"image/color"
	"testing"

	"github.com/dshills/menustorm/internal/ui/menu"
)

func TestOpacity(t *testing.T) {
	tests := []struct {
		name string
		view menu.View
		want float64
	}{
		{"hidden", menu.View{Phase: menu.PhaseHidden}, 0},
		{"shown", menu.View{Phase: menu.PhaseShown, Progress: 1}, 1},
		{"fading in", menu.View{Phase: menu.PhaseIn, Progress: 0.25}, 0.25},
		{"fading out", menu.View{Phase: menu.PhaseOut, Progress: 0.25}, 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := opacity(tt.view); got != tt.want {
				t.Errorf("opacity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFade(t *testing.T) {
	c := color.NRGBA{R: 10, G: 20, B: 30, A: 200}
	got := fade(c, 0.5)
	if got.A != 100 {
		t.Errorf("fade().A = %d, want 100", got.A)
	}
	if got.R != c.R || got.G != c.G || got.B != c.B {
		t.Errorf("fade() changed the color: %v", got)
	}
}
