package event

import "sync"

// Poster accepts events for later delivery.
type Poster interface {
	Post(e Event)
}

// Queue is a FIFO of pending events. Post is safe from any goroutine;
// Drain is called once per frame on the main thread.
type Queue struct {
	mu      sync.Mutex
	pending []Event
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Post appends an event.
func (q *Queue) Post(e Event) {
	q.mu.Lock()
	q.pending = append(q.pending, e)
	q.mu.Unlock()
}

// Drain removes and returns every pending event in post order.
func (q *Queue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == 0 {
		return nil
	}
	out := q.pending
	q.pending = nil
	return out
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// PosterFunc adapts a function to Poster.
type PosterFunc func(e Event)

// Post calls f(e).
func (f PosterFunc) Post(e Event) {
	f(e)
}
