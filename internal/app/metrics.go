package app

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/hako/durafmt"
)

// Metrics tracks per-frame timing of the menu loop.
type Metrics struct {
	// Frame timing
	frameCount   atomic.Uint64
	frameTotalNs atomic.Int64
	frameMinNs   atomic.Int64
	frameMaxNs   atomic.Int64
	lastFrameNs  atomic.Int64

	// Input handling
	inputCount   atomic.Uint64
	inputTotalNs atomic.Int64
	inputBlocked atomic.Uint64

	// Render timing
	renderCount   atomic.Uint64
	renderTotalNs atomic.Int64

	// Menu event dispatch
	eventCount   atomic.Uint64
	eventTotalNs atomic.Int64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),
	}
	// Initialize min to max int64 so first frame will be smaller
	m.frameMinNs.Store(1<<63 - 1)
	return m
}

// RecordFrame records frame timing.
func (m *Metrics) RecordFrame(duration time.Duration) {
	ns := duration.Nanoseconds()

	m.frameCount.Add(1)
	m.frameTotalNs.Add(ns)
	m.lastFrameNs.Store(ns)

	for {
		old := m.frameMinNs.Load()
		if ns >= old || m.frameMinNs.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := m.frameMaxNs.Load()
		if ns <= old || m.frameMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordInput records input processing timing.
func (m *Metrics) RecordInput(duration time.Duration) {
	m.inputCount.Add(1)
	m.inputTotalNs.Add(duration.Nanoseconds())
}

// RecordInputBlocked records an input event that arrived while menus were busy.
func (m *Metrics) RecordInputBlocked() {
	m.inputBlocked.Add(1)
}

// RecordRender records render timing.
func (m *Metrics) RecordRender(duration time.Duration) {
	m.renderCount.Add(1)
	m.renderTotalNs.Add(duration.Nanoseconds())
}

// RecordEvent records menu event dispatch timing.
func (m *Metrics) RecordEvent(duration time.Duration) {
	m.eventCount.Add(1)
	m.eventTotalNs.Add(duration.Nanoseconds())
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	frameCount := m.frameCount.Load()
	inputCount := m.inputCount.Load()
	renderCount := m.renderCount.Load()
	eventCount := m.eventCount.Load()

	minFrameNs := m.frameMinNs.Load()
	if minFrameNs == 1<<63-1 {
		minFrameNs = 0
	}

	return MetricsSnapshot{
		Uptime:       time.Since(m.startTime),
		FrameCount:   frameCount,
		AvgFrame:     average(m.frameTotalNs.Load(), frameCount),
		MinFrame:     time.Duration(minFrameNs),
		MaxFrame:     time.Duration(m.frameMaxNs.Load()),
		LastFrame:    time.Duration(m.lastFrameNs.Load()),
		InputCount:   inputCount,
		AvgInput:     average(m.inputTotalNs.Load(), inputCount),
		InputBlocked: m.inputBlocked.Load(),
		RenderCount:  renderCount,
		AvgRender:    average(m.renderTotalNs.Load(), renderCount),
		EventCount:   eventCount,
		AvgEvent:     average(m.eventTotalNs.Load(), eventCount),
	}
}

func average(total int64, n uint64) time.Duration {
	if n == 0 {
		return 0
	}
	return time.Duration(total / int64(n))
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.frameCount.Store(0)
	m.frameTotalNs.Store(0)
	m.frameMinNs.Store(1<<63 - 1)
	m.frameMaxNs.Store(0)
	m.lastFrameNs.Store(0)
	m.inputCount.Store(0)
	m.inputTotalNs.Store(0)
	m.inputBlocked.Store(0)
	m.renderCount.Store(0)
	m.renderTotalNs.Store(0)
	m.eventCount.Store(0)
	m.eventTotalNs.Store(0)
	m.startTime = time.Now()
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime       time.Duration
	FrameCount   uint64
	AvgFrame     time.Duration
	MinFrame     time.Duration
	MaxFrame     time.Duration
	LastFrame    time.Duration
	InputCount   uint64
	AvgInput     time.Duration
	InputBlocked uint64
	RenderCount  uint64
	AvgRender    time.Duration
	EventCount   uint64
	AvgEvent     time.Duration
}

// AvgFPS returns the average frames per second.
func (s MetricsSnapshot) AvgFPS() float64 {
	if s.AvgFrame == 0 {
		return 0
	}
	return float64(time.Second) / float64(s.AvgFrame)
}

// String summarizes the snapshot on one line.
func (s MetricsSnapshot) String() string {
	return fmt.Sprintf("uptime %s, %d frames (avg %s, max %s), %d inputs (%d blocked), %d menu events (avg %s)",
		durafmt.Parse(s.Uptime).LimitFirstN(2),
		s.FrameCount, s.AvgFrame, s.MaxFrame,
		s.InputCount, s.InputBlocked,
		s.EventCount, s.AvgEvent)
}

// Timer provides a simple way to measure elapsed time.
type Timer struct {
	start time.Time
}

// StartTimer creates a new timer.
func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the elapsed time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}
