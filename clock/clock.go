// Package clock provides real and manual implementations of diffpane.Clock.
package clock

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fwojciec/diffpane"
)

// Compile-time interface verification.
var (
	_ diffpane.Clock = (*Clock)(nil)
	_ diffpane.Clock = (*Mock)(nil)
	_ diffpane.Clock = (*Loop)(nil)
)

// Clock is the wall clock. Its callbacks run on their own goroutine, so it
// is only suitable for hosts that serialize callbacks themselves.
type Clock struct{}

// New returns a real clock.
func New() *Clock {
	return &Clock{}
}

// Now returns the current time.
func (c *Clock) Now() time.Time {
	return time.Now()
}

// AfterFunc calls f after d.
func (c *Clock) AfterFunc(d time.Duration, f func()) diffpane.Timer {
	return time.AfterFunc(d, f)
}

// Mock is a manually advanced clock. Callbacks fire synchronously from Advance.
type Mock struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*mockTimer
}

type mockTimer struct {
	clock *Mock
	when  time.Time
	seq   int
	f     func()
}

// NewMock returns a mock clock set to a fixed instant.
func NewMock() *Mock {
	return &Mock{
		now: time.Date(2009, time.November, 10, 23, 0, 0, 0, time.UTC),
	}
}

// Now returns the mock's current time.
func (c *Mock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc schedules f to run once the mock has advanced by d.
func (c *Mock) AfterFunc(d time.Duration, f func()) diffpane.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &mockTimer{clock: c, when: c.now.Add(d), seq: c.seq, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by d, firing due callbacks in deadline
// order. Callbacks scheduled while advancing fire too if they fall due.
func (c *Mock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		t := c.nextDue(target)
		if t == nil {
			break
		}
		t.f()
	}

	c.mu.Lock()
	c.now = target
	c.mu.Unlock()
}

// Pending returns the number of callbacks still waiting to fire.
func (c *Mock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

func (c *Mock) nextDue(target time.Time) *mockTimer {
	c.mu.Lock()
	defer c.mu.Unlock()

	sort.SliceStable(c.timers, func(i, j int) bool {
		if c.timers[i].when.Equal(c.timers[j].when) {
			return c.timers[i].seq < c.timers[j].seq
		}
		return c.timers[i].when.Before(c.timers[j].when)
	})
	if len(c.timers) == 0 || c.timers[0].when.After(target) {
		return nil
	}
	t := c.timers[0]
	c.timers = c.timers[1:]
	if t.when.After(c.now) {
		c.now = t.when
	}
	return t
}

// Stop removes the timer if it has not fired yet.
func (t *mockTimer) Stop() bool {
	c := t.clock
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, other := range c.timers {
		if other == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return true
		}
	}
	return false
}

// Loop is a wall clock whose callbacks run on the goroutine calling Run.
// Headless hosts use it to get UI-thread delivery without a UI.
type Loop struct {
	mu      sync.Mutex
	pending int
	ch      chan func()
}

// NewLoop returns a loop clock.
func NewLoop() *Loop {
	return &Loop{ch: make(chan func(), 64)}
}

// Now returns the current time.
func (l *Loop) Now() time.Time {
	return time.Now()
}

// AfterFunc queues f to run on the Run goroutine after d.
func (l *Loop) AfterFunc(d time.Duration, f func()) diffpane.Timer {
	l.mu.Lock()
	l.pending++
	l.mu.Unlock()

	t := &loopTimer{loop: l}
	t.timer = time.AfterFunc(d, func() {
		l.ch <- func() {
			if t.claim() {
				f()
			}
		}
	})
	return t
}

// Run delivers callbacks until none is pending or ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.mu.Lock()
		n := l.pending
		l.mu.Unlock()
		if n == 0 {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case f := <-l.ch:
			f()
		}
	}
}

type loopTimer struct {
	loop  *Loop
	timer *time.Timer
	done  bool
}

// claim marks the timer fired and reports whether it was still live.
func (t *loopTimer) claim() bool {
	t.loop.mu.Lock()
	defer t.loop.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	t.loop.pending--
	return true
}

// Stop cancels the callback unless it already ran.
func (t *loopTimer) Stop() bool {
	if !t.claim() {
		return false
	}
	t.timer.Stop()
	return true
}
