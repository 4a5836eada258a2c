package action

import "sort"

// Binding is one logical action and the native codes that satisfy it.
type Binding struct {
	Action string
	codes  map[int]struct{}
}

// NewBinding creates an empty binding for action.
func NewBinding(action string) *Binding {
	return &Binding{Action: action, codes: make(map[int]struct{})}
}

// Add adds an alternate code.
func (b *Binding) Add(code int) {
	b.codes[code] = struct{}{}
}

// Remove removes code if present.
func (b *Binding) Remove(code int) {
	delete(b.codes, code)
}

// Has reports whether code triggers the action.
func (b *Binding) Has(code int) bool {
	_, ok := b.codes[code]
	return ok
}

// Codes returns the bound codes in ascending order.
func (b *Binding) Codes() []int {
	codes := make([]int, 0, len(b.codes))
	for c := range b.codes {
		codes = append(codes, c)
	}
	sort.Ints(codes)
	return codes
}

// Len returns the number of bound codes.
func (b *Binding) Len() int {
	return len(b.codes)
}

// Map holds the bindings of one device class.
type Map struct {
	bindings map[string]*Binding
	order    []string
}

// NewMap creates an empty map.
func NewMap() *Map {
	return &Map{bindings: make(map[string]*Binding)}
}

// Register binds code to action. The first registration under a name
// creates the binding; later ones accumulate codes.
func (m *Map) Register(action string, code int) *Binding {
	b, ok := m.bindings[action]
	if !ok {
		b = NewBinding(action)
		m.bindings[action] = b
		m.order = append(m.order, action)
	}
	b.Add(code)
	return b
}

// Binding returns the binding for action.
func (m *Map) Binding(action string) (*Binding, bool) {
	b, ok := m.bindings[action]
	return b, ok
}

// Lookup returns every action bound to code, in registration order.
func (m *Map) Lookup(code int) []string {
	var actions []string
	for _, name := range m.order {
		if m.bindings[name].Has(code) {
			actions = append(actions, name)
		}
	}
	return actions
}

// Actions returns the action names in registration order.
func (m *Map) Actions() []string {
	return append([]string(nil), m.order...)
}

// Len returns the number of actions.
func (m *Map) Len() int {
	return len(m.order)
}
