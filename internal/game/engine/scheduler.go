package engine

import (
	"context"
	"sync"
	"time"
)

// Handle controls a running repeating task.
type Handle interface {
	// Stop cancels the task. No new tick starts after Stop returns; it is
	// safe to call more than once and from inside a tick.
	Stop()
}

// Scheduler runs fn repeatedly until the returned handle is stopped.
type Scheduler interface {
	Start(fn func(now time.Time)) Handle
}

// Clock is implemented by schedulers that own their notion of time.
type Clock interface {
	Now() time.Time
}

// TickerScheduler ticks on a real-time interval from its own goroutine.
type TickerScheduler struct {
	Interval time.Duration
}

// NewTickerScheduler creates a scheduler ticking fps times per second.
func NewTickerScheduler(fps int) TickerScheduler {
	if fps <= 0 {
		fps = 60
	}
	return TickerScheduler{Interval: time.Second / time.Duration(fps)}
}

// Start launches the tick goroutine.
func (t TickerScheduler) Start(fn func(now time.Time)) Handle {
	ctx, cancel := context.WithCancel(context.Background())
	h := &tickerHandle{cancel: cancel}

	interval := t.Interval
	if interval <= 0 {
		interval = time.Second / 60
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if ctx.Err() != nil {
					return
				}
				fn(now)
			}
		}
	}()
	return h
}

type tickerHandle struct {
	cancel context.CancelFunc
}

func (h *tickerHandle) Stop() {
	h.cancel()
}

// ManualScheduler runs ticks only when told to. Tests use it to step the
// simulation deterministically; the TUI host uses it to drive ticks from
// its own frame messages.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Time
	step  time.Duration
	tasks []*manualHandle
}

// NewManualScheduler creates a scheduler whose clock starts at start and
// moves by step on every Advance.
func NewManualScheduler(start time.Time, step time.Duration) *ManualScheduler {
	return &ManualScheduler{now: start, step: step}
}

// Start registers fn. It runs on every subsequent tick until stopped.
func (m *ManualScheduler) Start(fn func(now time.Time)) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := &manualHandle{fn: fn}
	m.tasks = append(m.tasks, h)
	return h
}

// Now returns the scheduler's current time.
func (m *ManualScheduler) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance runs n ticks, moving the clock by one step before each.
func (m *ManualScheduler) Advance(n int) {
	for i := 0; i < n; i++ {
		m.mu.Lock()
		now := m.now.Add(m.step)
		m.mu.Unlock()
		m.TickAt(now)
	}
}

// AdvanceFor runs as many ticks as fit in d.
func (m *ManualScheduler) AdvanceFor(d time.Duration) {
	if m.step <= 0 {
		return
	}
	m.Advance(int(d / m.step))
}

// TickAt sets the clock to now and runs one tick. Times earlier than the
// current clock are ignored so time never runs backwards.
func (m *ManualScheduler) TickAt(now time.Time) {
	m.mu.Lock()
	if now.Before(m.now) {
		now = m.now
	}
	m.now = now
	tasks := make([]*manualHandle, len(m.tasks))
	copy(tasks, m.tasks)
	m.mu.Unlock()

	for _, h := range tasks {
		h.run(now)
	}
}

type manualHandle struct {
	mu      sync.Mutex
	stopped bool
	fn      func(time.Time)
}

func (h *manualHandle) Stop() {
	h.mu.Lock()
	h.stopped = true
	h.mu.Unlock()
}

func (h *manualHandle) run(now time.Time) {
	h.mu.Lock()
	stopped := h.stopped
	h.mu.Unlock()
	if !stopped {
		h.fn(now)
	}
}
