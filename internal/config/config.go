package config

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/menustorm/internal/config/loader"
	"github.com/dshills/menustorm/internal/logging"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// EnvPrefix prefixes the environment variables read by Load.
const EnvPrefix = "MENUSTORM_"

// Config is the decoded application configuration.
type Config struct {
	Log     LogConfig     `toml:"log"`
	Input   InputConfig   `toml:"input"`
	Menu    MenuConfig    `toml:"menu"`
	Scripts ScriptConfig  `toml:"scripts"`
	Watch   WatchConfig   `toml:"watch"`
	Window  WindowConfig  `toml:"window"`
	States  []StateConfig `toml:"state"`

	// path is the file the configuration was loaded from.
	path string
}

// LogConfig configures the root logger.
type LogConfig struct {
	Level string `toml:"level"`
}

// InputConfig locates the binding document.
type InputConfig struct {
	Bindings string `toml:"bindings"`
}

// MenuConfig locates the menu files and names what opens at start.
type MenuConfig struct {
	Actions    string            `toml:"actions"`
	Groups     map[string]string `toml:"groups"`
	StartGroup string            `toml:"startGroup"`
	StartTrees []string          `toml:"startTrees"`
	Workers    int               `toml:"workers"`
}

// StateConfig maps a game state to the group and trees shown in it.
type StateConfig struct {
	Name  string   `toml:"name"`
	Group string   `toml:"group"`
	Trees []string `toml:"trees"`
}

// ScriptConfig lists the Lua files loaded at start.
type ScriptConfig struct {
	Files       []string `toml:"files"`
	CallTimeout string   `toml:"callTimeout"`
}

// WatchConfig controls hot reload.
type WatchConfig struct {
	Enabled  bool   `toml:"enabled"`
	Debounce string `toml:"debounce"`
}

// WindowConfig sizes the graphical host.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log:   LogConfig{Level: "info"},
		Input: InputConfig{Bindings: "bindings.json"},
		Menu: MenuConfig{
			Actions: "menu_actions.toml",
			Groups:  map[string]string{},
		},
		Scripts: ScriptConfig{CallTimeout: "2s"},
		Watch:   WatchConfig{Debounce: "200ms"},
		Window:  WindowConfig{Title: "menustorm", Width: 640, Height: 480},
	}
}

// Load reads path from fsys over the defaults, then applies the
// environment. A missing file leaves the defaults in place.
func Load(fsys loader.FileSystem, path string) (*Config, error) {
	return load(fsys, path, loader.NewEnvLoader(EnvPrefix))
}

func load(fsys loader.FileSystem, path string, env *loader.EnvLoader) (*Config, error) {
	file, err := loader.LoadTOMLMap(fsys, path)
	if err != nil {
		return nil, err
	}
	vars, err := env.Load()
	if err != nil {
		return nil, err
	}
	merged := loader.DeepMerge(file, vars)

	cfg := Default()
	cfg.path = path
	if len(merged) > 0 {
		data, err := toml.Marshal(merged)
		if err != nil {
			return nil, fmt.Errorf("encoding merged configuration: %w", err)
		}
		if err := loader.UnmarshalTOML(path, data, cfg); err != nil {
			return nil, err
		}
	}
	cfg.resolve()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the file the configuration was loaded from.
func (c *Config) Path() string { return c.path }

// resolve makes file references relative to the configuration file.
func (c *Config) resolve() {
	if c.path == "" {
		return
	}
	c.Input.Bindings = loader.Resolve(c.path, c.Input.Bindings)
	c.Menu.Actions = loader.Resolve(c.path, c.Menu.Actions)
	for name, p := range c.Menu.Groups {
		c.Menu.Groups[name] = loader.Resolve(c.path, p)
	}
	for i, f := range c.Scripts.Files {
		c.Scripts.Files[i] = loader.Resolve(c.path, f)
	}
}

// Override applies command-line values. Empty values are ignored.
func (c *Config) Override(logLevel string, debug bool) {
	if logLevel != "" {
		c.Log.Level = logLevel
	}
	if debug {
		c.Log.Level = "debug"
	}
}

// Validate checks references between sections.
func (c *Config) Validate() error {
	var problems []string
	if c.Input.Bindings == "" {
		problems = append(problems, "input.bindings is empty")
	}
	if c.Menu.Actions == "" {
		problems = append(problems, "menu.actions is empty")
	}
	if c.Menu.StartGroup != "" {
		if _, ok := c.Menu.Groups[c.Menu.StartGroup]; !ok {
			problems = append(problems, fmt.Sprintf("menu.startGroup %q is not in menu.groups", c.Menu.StartGroup))
		}
	} else if len(c.Menu.StartTrees) > 0 {
		problems = append(problems, "menu.startTrees needs menu.startGroup")
	}
	seen := make(map[string]bool, len(c.States))
	for _, s := range c.States {
		switch {
		case s.Name == "":
			problems = append(problems, "state without name")
		case seen[s.Name]:
			problems = append(problems, fmt.Sprintf("duplicate state %q", s.Name))
		}
		seen[s.Name] = true
		if _, ok := c.Menu.Groups[s.Group]; !ok {
			problems = append(problems, fmt.Sprintf("state %q uses unknown group %q", s.Name, s.Group))
		}
	}
	if _, err := c.WatchDebounce(); err != nil {
		problems = append(problems, err.Error())
	}
	if _, err := c.CallTimeout(); err != nil {
		problems = append(problems, err.Error())
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		problems = append(problems, fmt.Sprintf("window size %dx%d", c.Window.Width, c.Window.Height))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, problems)
	}
	return nil
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() logging.Level {
	return logging.ParseLevel(c.Log.Level)
}

// WatchDebounce returns the parsed reload debounce.
func (c *Config) WatchDebounce() (time.Duration, error) {
	return parseDuration("watch.debounce", c.Watch.Debounce)
}

// CallTimeout returns the parsed script call timeout.
func (c *Config) CallTimeout() (time.Duration, error) {
	return parseDuration("scripts.callTimeout", c.Scripts.CallTimeout)
}

// State returns the named game state.
func (c *Config) State(name string) (StateConfig, bool) {
	for _, s := range c.States {
		if s.Name == name {
			return s, true
		}
	}
	return StateConfig{}, false
}

// GroupNames returns the configured group names, sorted.
func (c *Config) GroupNames() []string {
	names := make([]string, 0, len(c.Menu.Groups))
	for n := range c.Menu.Groups {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func parseDuration(key, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%s %q is not a duration", key, s)
	}
	return d, nil
}
