package menu

import (
	"github.com/dshills/menustorm/internal/config/loader"
	"github.com/dshills/menustorm/internal/critical"
	"github.com/dshills/menustorm/internal/ui/scroll"
)

// ActionNames maps the logical menu actions to ActionManager action names.
type ActionNames struct {
	Back     string `toml:"back"`
	Toggle   string `toml:"toggle"`
	Escape   string `toml:"escape"`
	Select   string `toml:"select"`
	Up       string `toml:"up"`
	Down     string `toml:"down"`
	Left     string `toml:"left"`
	Right    string `toml:"right"`
	TabLeft  string `toml:"tabLeft"`
	TabRight string `toml:"tabRight"`
}

// All returns every name in cascade order, shortcuts first.
func (n ActionNames) All() []string {
	return []string{n.Escape, n.Toggle, n.Select, n.Back, n.Up, n.Down, n.Left, n.Right, n.TabLeft, n.TabRight}
}

// ScrollDelays is the default repeat timing of held directions.
type ScrollDelays struct {
	Start  string `toml:"startDelay"`
	Repeat string `toml:"repeatDelay"`
}

// ActionList is the decoded menu action-list file.
type ActionList struct {
	DefaultTree string       `toml:"defaultTree"`
	Actions     ActionNames  `toml:"actions"`
	Scroll      ScrollDelays `toml:"scroll"`
}

// DefaultActionList returns the built-in action names. Files override
// individual keys.
func DefaultActionList() ActionList {
	return ActionList{
		Actions: ActionNames{
			Back:     "Back",
			Toggle:   "Menu Toggle",
			Escape:   "Escape",
			Select:   "Select",
			Up:       "Up",
			Down:     "Down",
			Left:     "Left",
			Right:    "Right",
			TabLeft:  "Tab Left",
			TabRight: "Tab Right",
		},
	}
}

// ScrollParam parses the scroll section, falling back to the defaults.
func (l ActionList) ScrollParam() (scroll.Param, error) {
	return scroll.Parse(l.Scroll.Start, l.Scroll.Repeat, scroll.Default())
}

// ReadActionList decodes the action list at path over the defaults.
func ReadActionList(fsys loader.FileSystem, path string) (ActionList, error) {
	list := DefaultActionList()
	if err := loader.DecodeTOML(fsys, path, &list); err != nil {
		return list, critical.New("Menu Actions", ErrMalformedConfig, "action list: %v", err)
	}
	if _, err := list.ScrollParam(); err != nil {
		return list, critical.New("Menu Actions", ErrMalformedConfig, "action list %s: %v", path, err)
	}
	return list, nil
}
