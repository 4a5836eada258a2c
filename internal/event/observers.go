package event

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/menustorm/internal/event/topic"
)

// Priority determines observer execution order.
// Lower values execute first.
type Priority int

const (
	// PriorityHigh runs before normal observers.
	PriorityHigh Priority = 100

	// PriorityNormal is the default priority.
	PriorityNormal Priority = 200

	// PriorityLow runs last, e.g. logging observers.
	PriorityLow Priority = 300
)

// Func handles a notified event.
type Func func(e Event)

// SubscriptionState represents the state of a subscription.
type SubscriptionState int32

const (
	// SubscriptionStateActive means the subscription is receiving events.
	SubscriptionStateActive SubscriptionState = iota

	// SubscriptionStatePaused means the subscription is temporarily not receiving events.
	SubscriptionStatePaused

	// SubscriptionStateCancelled means the subscription has been permanently cancelled.
	SubscriptionStateCancelled
)

// String returns a human-readable state name.
func (s SubscriptionState) String() string {
	switch s {
	case SubscriptionStateActive:
		return "active"
	case SubscriptionStatePaused:
		return "paused"
	case SubscriptionStateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Subscription is a registered observer.
type Subscription interface {
	// ID returns the unique subscription identifier.
	ID() string

	// Topic returns the subscribed topic pattern.
	Topic() topic.Topic

	// State returns the current subscription state.
	State() SubscriptionState

	// Pause temporarily stops event delivery to this subscription.
	Pause()

	// Resume restarts event delivery after a pause.
	Resume()

	// Cancel permanently cancels the subscription.
	Cancel()
}

// SubscriptionOption configures a subscription.
type SubscriptionOption func(*subscription)

// WithPriority sets the subscription priority.
func WithPriority(p Priority) SubscriptionOption {
	return func(s *subscription) {
		s.priority = p
	}
}

// WithOnce cancels the subscription after its first delivery.
func WithOnce() SubscriptionOption {
	return func(s *subscription) {
		s.once = true
	}
}

type subscription struct {
	id       string
	pattern  topic.Topic
	fn       Func
	priority Priority
	once     bool
	seq      uint64
	state    atomic.Int32
	owner    *Observers
}

func (s *subscription) ID() string         { return s.id }
func (s *subscription) Topic() topic.Topic { return s.pattern }
func (s *subscription) State() SubscriptionState {
	return SubscriptionState(s.state.Load())
}

// Pause only applies to an active subscription.
func (s *subscription) Pause() {
	s.state.CompareAndSwap(int32(SubscriptionStateActive), int32(SubscriptionStatePaused))
}

// Resume only applies to a paused subscription.
func (s *subscription) Resume() {
	s.state.CompareAndSwap(int32(SubscriptionStatePaused), int32(SubscriptionStateActive))
}

func (s *subscription) Cancel() {
	if SubscriptionState(s.state.Swap(int32(SubscriptionStateCancelled))) == SubscriptionStateCancelled {
		return
	}
	s.owner.remove(s.id)
}

// Observers is a callback table keyed by topic pattern.
type Observers struct {
	mu   sync.RWMutex
	subs []*subscription
	seq  uint64
}

// NewObservers creates an empty observer table.
func NewObservers() *Observers {
	return &Observers{}
}

// Subscribe registers fn for every event whose topic matches pattern.
// Observers with equal priority run in subscription order.
func (o *Observers) Subscribe(pattern topic.Topic, fn Func, opts ...SubscriptionOption) Subscription {
	s := &subscription{
		id:       uuid.NewString(),
		pattern:  pattern,
		fn:       fn,
		priority: PriorityNormal,
		owner:    o,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state.Store(int32(SubscriptionStateActive))

	o.mu.Lock()
	o.seq++
	s.seq = o.seq
	o.subs = append(o.subs, s)
	sort.SliceStable(o.subs, func(i, j int) bool {
		if o.subs[i].priority != o.subs[j].priority {
			return o.subs[i].priority < o.subs[j].priority
		}
		return o.subs[i].seq < o.subs[j].seq
	})
	o.mu.Unlock()

	return s
}

// Notify delivers e to every matching active subscription and returns the
// number of observers called. Observers may subscribe or cancel from within
// their callback.
func (o *Observers) Notify(e Event) int {
	o.mu.RLock()
	subs := make([]*subscription, len(o.subs))
	copy(subs, o.subs)
	o.mu.RUnlock()

	t := e.Type.Topic()
	delivered := 0
	for _, s := range subs {
		if s.State() != SubscriptionStateActive || !t.Matches(s.pattern) {
			continue
		}
		if s.once {
			if !s.state.CompareAndSwap(int32(SubscriptionStateActive), int32(SubscriptionStateCancelled)) {
				continue
			}
			o.remove(s.id)
		}
		s.fn(e)
		delivered++
	}
	return delivered
}

// Len returns the number of registered subscriptions.
func (o *Observers) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.subs)
}

func (o *Observers) remove(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i, s := range o.subs {
		if s.id == id {
			o.subs = append(o.subs[:i], o.subs[i+1:]...)
			return
		}
	}
}
