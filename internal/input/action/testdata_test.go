package action

const testBindings = `{
  "keyboardMapping": {
    "hidden": [
      {"id": "ESCAPE", "action": "Escape"},
      {"id": "RETURN", "action": "Select"}
    ],
    "visible": [
      {"id": "A", "action": "Left", "default": "A", "configurable": true},
      {"id": "D", "action": "Right", "default": "D", "configurable": true},
      {"id": "LEFT", "action": "Left"},
      {"id": "SPACE", "action": "Jump", "default": "SPACE", "configurable": false},
      {"id": "NO SUCH KEY", "action": "Fire"}
    ]
  },
  "mouseMapping": {
    "hidden": [
      {"id": "LEFT MOUSE", "action": "Select"}
    ]
  },
  "gamepadMapping": {
    "hidden": [
      {"id": "L STICK UP", "action": "Up"},
      {"id": "L STICK DOWN", "action": "Down"},
      {"id": "L STICK LEFT", "action": "Left"},
      {"id": "L STICK RIGHT", "action": "Right"},
      {"id": "R TRIGGER", "action": "Fire"}
    ],
    "visible": [
      {"id": "A", "action": "Select", "default": "A", "configurable": true}
    ]
  }
}`

func newTestManager(t interface{ Fatalf(string, ...any) }) *Manager {
	m := NewManager()
	if err := m.LoadBindings([]byte(testBindings)); err != nil {
		t.Fatalf("LoadBindings failed: %v", err)
	}
	return m
}
