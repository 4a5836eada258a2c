package control

import (
	"sort"
	"sync"

	"github.com/dshills/menustorm/internal/critical"
	"github.com/dshills/menustorm/internal/event"
	"github.com/dshills/menustorm/internal/input"
)

// Behavior is a smart control extension such as a toggle or slider.
type Behavior interface {
	// Create binds the behavior to its control.
	Create(c *Control) error

	// HandleEvent gets navigation events while the control is active and
	// reports whether it consumed the event.
	HandleEvent(c *Control, e event.Event) bool

	// Execute runs when the control is executed.
	Execute(c *Control) error
}

// Capturer is a behavior that takes raw input while capturing, such as a
// key-binding control waiting for a new key.
type Capturer interface {
	Capturing() bool
	// Capture offers a raw event and reports whether capture finished.
	Capture(ev input.Event) bool
	CancelCapture()
}

// Valuer is a behavior that displays a value next to the control text.
type Valuer interface {
	Value() string
}

// Factory creates a behavior from layout parameters.
type Factory func(params map[string]string) (Behavior, error)

// Registry maps behavior names to factories. The application owns it and
// registers its behaviors at startup.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds or replaces a factory.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

// Create builds the named behavior.
func (r *Registry) Create(name string, params map[string]string) (Behavior, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, critical.New("Smart Control", ErrUnknownBehavior, "no behavior registered as %q", name)
	}
	if params == nil {
		params = map[string]string{}
	}
	return f(params)
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for n := range r.factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
