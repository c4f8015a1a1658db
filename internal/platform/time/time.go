// Package time holds clock and scheduling seams so retention logic can be
// driven by tests without waiting on the wall clock
package time

import (
	"sync"
	"time"
)

// Clock tells the current time
type Clock interface {
	Now() time.Time
}

// System is the wall clock
type System struct{}

// Now returns time.Now
func (System) Now() time.Time { return time.Now() }

// Manual is a Clock that only moves when told to
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual starts a manual clock at t
func NewManual(t time.Time) *Manual { return &Manual{now: t} }

// Now returns the current manual time
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Set moves the clock to t
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

// Advance moves the clock forward by d
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

// Millis converts t to epoch milliseconds, zero time maps to 0
func Millis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// FromMillis converts epoch milliseconds to a UTC time
func FromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

// Scheduler hands out recurring tick channels. stop releases the resources
// behind the channel; ticks may not arrive after it returns.
type Scheduler interface {
	Every(d time.Duration) (ticks <-chan time.Time, stop func())
}

// Tickers schedules with time.Ticker
type Tickers struct{}

// Every returns a ticker channel firing every d
func (Tickers) Every(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// ManualScheduler only ticks when Fire is called. Fire blocks until the
// consumer has taken the tick, so a test knows the work was started.
type ManualScheduler struct {
	ch chan time.Time
}

// NewManualScheduler returns a scheduler with an unbuffered tick channel
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{ch: make(chan time.Time)}
}

// Every ignores d; ticks come from Fire
func (m *ManualScheduler) Every(time.Duration) (<-chan time.Time, func()) {
	return m.ch, func() {}
}

// Fire delivers one tick stamped t
func (m *ManualScheduler) Fire(t time.Time) { m.ch <- t }

// Ptr returns a pointer to t or nil if t is zero
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
