package control

import (
	"testing"

	"github.com/dshills/menustorm/internal/event"
	"github.com/dshills/menustorm/internal/input"
	"github.com/dshills/menustorm/internal/script"
)

const hookScript = `
calls = {}
function on_state(name, state, prev)
	calls[#calls + 1] = name .. ":" .. state
end
function hook_count() return #calls end
function last_call() return calls[#calls] end
function pulse(name, state)
	while true do coroutine.yield() end
end
`

type fakeDevices struct {
	last input.Device
}

func (f *fakeDevices) LastDevice() input.Device { return f.last }

type recordCanvas struct {
	views []View
}

func (r *recordCanvas) DrawControl(v View) { r.views = append(r.views, v) }

func newTestEnv(t *testing.T) (Env, *event.Queue, *script.Engine) {
	t.Helper()
	eng, err := script.NewEngine()
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	t.Cleanup(func() { eng.Close() })
	if err := eng.DoString(hookScript); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	q := event.NewQueue()
	return Env{
		Events:    q,
		Scripts:   eng,
		Devices:   &fakeDevices{last: input.DeviceKeyboard},
		Behaviors: NewRegistry(),
	}, q, eng
}

func mustNew(t *testing.T, cfg Config, env Env) *Control {
	t.Helper()
	c, err := New(cfg, env)
	if err != nil {
		t.Fatalf("New(%q) error = %v", cfg.Name, err)
	}
	return c
}

func hookCount(t *testing.T, eng *script.Engine) int64 {
	t.Helper()
	res, err := eng.Call("hook_count")
	if err != nil {
		t.Fatalf("hook_count error = %v", err)
	}
	return res[0].(int64)
}

func types(events []event.Event) []event.Type {
	out := make([]event.Type, 0, len(events))
	for _, e := range events {
		if e.Type != event.TypeControlStateChange {
			out = append(out, e.Type)
		}
	}
	return out
}
