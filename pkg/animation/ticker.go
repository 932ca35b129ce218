package animation

import (
	"sort"
	"sync"
	"time"
)

// Ticker calls a callback on each frame while active.
//
// Ticker is the low-level timing primitive used by [Value]. The callback
// receives the elapsed time since Start was called. Tickers are driven by
// their Scheduler's Step, which a host calls once per display frame.
type Ticker struct {
	scheduler *Scheduler
	callback  func(elapsed time.Duration)
	isActive  bool
	start     time.Time
}

// TickerProvider creates tickers.
type TickerProvider interface {
	CreateTicker(callback func(time.Duration)) *Ticker
}

// Scheduler is a frame pump. It owns a set of active tickers and advances
// all of them when Step is called.
//
// A Scheduler is meant to be driven from a single UI goroutine; only the
// ticker registry is locked so another goroutine may poll HasActiveTickers.
type Scheduler struct {
	clock Clock

	mu      sync.Mutex
	tickers map[*Ticker]uint64
	seq     uint64
}

// NewScheduler returns a scheduler reading time from c.
// A nil clock follows the package clock (see SetClock).
func NewScheduler(c Clock) *Scheduler {
	return &Scheduler{
		clock:   c,
		tickers: make(map[*Ticker]uint64),
	}
}

var defaultScheduler = NewScheduler(nil)

// DefaultScheduler returns the process-wide scheduler used by NewTicker and StepTickers.
func DefaultScheduler() *Scheduler { return defaultScheduler }

// Now returns the scheduler's current time.
func (s *Scheduler) Now() time.Time {
	if s.clock != nil {
		return s.clock.Now()
	}
	return Now()
}

// CreateTicker implements TickerProvider.
func (s *Scheduler) CreateTicker(callback func(time.Duration)) *Ticker {
	return &Ticker{scheduler: s, callback: callback}
}

// Step advances all active tickers in the order they were started.
// This should be called once per frame.
func (s *Scheduler) Step() {
	s.mu.Lock()
	if len(s.tickers) == 0 {
		s.mu.Unlock()
		return
	}
	// Copy so callbacks can start and stop tickers without holding the lock.
	type entry struct {
		t   *Ticker
		seq uint64
	}
	entries := make([]entry, 0, len(s.tickers))
	for t, seq := range s.tickers {
		entries = append(entries, entry{t, seq})
	}
	s.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
	now := s.Now()
	for _, e := range entries {
		t := e.t
		if t.isActive && t.callback != nil {
			t.callback(now.Sub(t.start))
		}
	}
}

// HasActiveTickers returns true if any tickers are active.
func (s *Scheduler) HasActiveTickers() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tickers) > 0
}

func (s *Scheduler) add(t *Ticker) {
	s.mu.Lock()
	s.seq++
	s.tickers[t] = s.seq
	s.mu.Unlock()
}

func (s *Scheduler) remove(t *Ticker) {
	s.mu.Lock()
	delete(s.tickers, t)
	s.mu.Unlock()
}

// NewTicker creates a ticker on the default scheduler.
func NewTicker(callback func(elapsed time.Duration)) *Ticker {
	return defaultScheduler.CreateTicker(callback)
}

// StepTickers advances all tickers of the default scheduler.
func StepTickers() {
	defaultScheduler.Step()
}

// HasActiveTickers reports whether the default scheduler has active tickers.
func HasActiveTickers() bool {
	return defaultScheduler.HasActiveTickers()
}

// Start activates the ticker.
func (t *Ticker) Start() {
	if t.isActive {
		return
	}
	t.isActive = true
	t.start = t.scheduler.Now()
	t.scheduler.add(t)
}

// Stop deactivates the ticker.
func (t *Ticker) Stop() {
	if !t.isActive {
		return
	}
	t.isActive = false
	t.scheduler.remove(t)
}

// IsActive returns whether the ticker is currently running.
func (t *Ticker) IsActive() bool {
	return t.isActive
}

// Elapsed returns the time since the ticker started.
func (t *Ticker) Elapsed() time.Duration {
	if !t.isActive {
		return 0
	}
	return t.scheduler.Now().Sub(t.start)
}
