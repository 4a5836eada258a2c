package loader

import (
	"os"
	"strconv"
	"strings"
)

// EnvLoader maps environment variables onto configuration paths.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "MENUSTORM_")
	mapping map[string]string // Env var -> config path
	lookup  func(string) (string, bool)
}

// NewEnvLoader creates a loader with the default menustorm mappings.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
		lookup:  os.LookupEnv,
	}
}

func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "LOG_LEVEL":      "log.level",
		prefix + "BINDINGS":       "input.bindings",
		prefix + "ACTIONS":        "menu.actions",
		prefix + "START_GROUP":    "menu.startGroup",
		prefix + "WATCH":          "watch.enabled",
		prefix + "WATCH_DEBOUNCE": "watch.debounce",
	}
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	l.mapping[envVar] = configPath
}

// Load returns the mapped variables that are set, nested by config path.
// Empty values are treated as set.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	for env, path := range l.mapping {
		if val, ok := l.lookup(env); ok {
			setByPath(config, path, parseValue(val))
		}
	}
	return config, nil
}

// parseValue converts booleans and integers; everything else stays a string.
func parseValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
