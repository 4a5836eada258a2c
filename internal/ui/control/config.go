package control

import "github.com/dshills/menustorm/internal/geom"

// Config describes one control in a menu layout file.
type Config struct {
	Name       string            `yaml:"name"`
	Text       string            `yaml:"text"`
	Position   geom.Vec          `yaml:"position"`
	Size       Size              `yaml:"size"`
	State      string            `yaml:"state"`
	Action     ActionConfig      `yaml:"action"`
	Scripts    map[string]string `yaml:"scripts"`
	Animate    map[string]string `yaml:"animate"`
	Sprites    []SpriteConfig    `yaml:"sprites"`
	Smart      SmartConfig       `yaml:"smart"`
	Scroll     ScrollConfig      `yaml:"scroll"`
	Navigation Navigation        `yaml:"navigation"`
}

// Size is a control's width and height before transformation.
type Size struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// ActionConfig is the executed action and its destination.
type ActionConfig struct {
	Type   string `yaml:"type"`
	Target string `yaml:"target"`
}

// SpriteConfig maps state names to animation names for one sprite.
type SpriteConfig struct {
	Name       string            `yaml:"name"`
	Animations map[string]string `yaml:"animations"`
}

// SmartConfig selects a smart behavior and its parameters.
type SmartConfig struct {
	Type   string            `yaml:"type"`
	Params map[string]string `yaml:"params"`
}

// ScrollConfig overrides the held-direction repeat timing.
type ScrollConfig struct {
	Start  string `yaml:"start"`
	Repeat string `yaml:"repeat"`
}

// Navigation names explicit neighbors. Empty directions fall back to the
// menu's previous/next order.
type Navigation struct {
	Up    string `yaml:"up"`
	Down  string `yaml:"down"`
	Left  string `yaml:"left"`
	Right string `yaml:"right"`
}
