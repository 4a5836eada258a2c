package control

import (
	"github.com/dshills/menustorm/internal/event"
	"github.com/dshills/menustorm/internal/input"
	"github.com/dshills/menustorm/internal/logging"
	"github.com/dshills/menustorm/internal/script"
)

// Scripts runs state hooks and animation coroutines.
type Scripts interface {
	HasFunction(name string) bool
	Call(name string, args ...any) ([]any, error)
	Spawn(name string, args ...any) (*script.Context, error)
}

// Devices reports the most recently used input device.
type Devices interface {
	LastDevice() input.Device
}

// Env holds the services a control borrows. Scripts and Behaviors may be
// nil; Events and Devices may be nil in tests.
type Env struct {
	Events    event.Poster
	Scripts   Scripts
	Devices   Devices
	Behaviors *Registry
	Log       *logging.Logger
}

func (e Env) post(ev event.Event) {
	if e.Events != nil {
		e.Events.Post(ev)
	}
}

func (e Env) lastDevice() input.Device {
	if e.Devices == nil {
		return input.DeviceNull
	}
	return e.Devices.LastDevice()
}
