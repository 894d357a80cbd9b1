package bubbletea

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/diffpane"
)

// Compile-time interface verification.
var _ diffpane.Clock = (*Clock)(nil)

// timerMsg carries an expired callback into the program loop.
type timerMsg func()

// Clock delivers delayed callbacks as messages, so they run inside Update
// on the program goroutine like every other host event.
type Clock struct {
	ch chan timerMsg
}

// NewClock returns a clock for use with a Model.
func NewClock() *Clock {
	return &Clock{ch: make(chan timerMsg, 64)}
}

// Now returns the current time.
func (c *Clock) Now() time.Time {
	return time.Now()
}

// AfterFunc queues f for the program loop after d.
func (c *Clock) AfterFunc(d time.Duration, f func()) diffpane.Timer {
	t := &timer{}
	t.timer = time.AfterFunc(d, func() {
		c.ch <- func() {
			if t.fired.CompareAndSwap(false, true) {
				f()
			}
		}
	})
	return t
}

// wait returns a command that blocks until the next callback is due.
func (c *Clock) wait() tea.Cmd {
	return func() tea.Msg {
		return <-c.ch
	}
}

type timer struct {
	timer *time.Timer
	fired atomic.Bool
}

// Stop cancels the callback unless it already ran.
func (t *timer) Stop() bool {
	if !t.fired.CompareAndSwap(false, true) {
		return false
	}
	t.timer.Stop()
	return true
}
