package session

import (
	"time"

	"github.com/fwojciec/diffpane"
)

// Delays of the deferred actions.
const (
	alignDelay    = 10 * time.Millisecond
	updateDelay   = 10 * time.Millisecond
	activateDelay = 30 * time.Millisecond
	closeDelay    = 30 * time.Millisecond
	saveDelay     = 30 * time.Millisecond
	restoreDelay  = 100 * time.Millisecond
)

// actionKind names a delayed action slot.
type actionKind int

const (
	kindAlign actionKind = iota
	kindActivate
	kindClose
	kindUpdate
	kindRestore
	numActionKinds
)

func (k actionKind) String() string {
	switch k {
	case kindAlign:
		return "align"
	case kindActivate:
		return "activate"
	case kindClose:
		return "close"
	case kindUpdate:
		return "update"
	case kindRestore:
		return "restore"
	default:
		return "unknown"
	}
}

// action is a pending deferred action and its accumulated state.
type action interface {
	kind() actionKind
}

// alignAction re-aligns the displayed pair and restores its scroll location.
type alignAction struct{}

// activateAction shows the counterpart of buf in the opposite view.
type activateAction struct {
	buf diffpane.BufferID
}

// closeAction processes buffers closed since it was armed.
type closeAction struct {
	bufs []diffpane.BufferID
}

// updateAction re-diffs the neighborhood of coalesced edits, or everything
// when full is set.
type updateAction struct {
	view    diffpane.ViewID // view holding the edited buffer
	line    int             // earliest changed line
	end     int             // last changed line
	added   int
	deleted int
	full    bool
}

// restoreAction lowers the guard raised when the window was minimized.
type restoreAction struct{}

func (alignAction) kind() actionKind    { return kindAlign }
func (activateAction) kind() actionKind { return kindActivate }
func (closeAction) kind() actionKind    { return kindClose }
func (updateAction) kind() actionKind   { return kindUpdate }
func (restoreAction) kind() actionKind  { return kindRestore }

type slot struct {
	action action
	timer  diffpane.Timer
	gen    uint64
}

// scheduler holds at most one pending action per kind. Posting replaces the
// pending action of the same kind and restarts its delay; cancelling drops
// it along with its state.
type scheduler struct {
	clock diffpane.Clock
	run   func(action)
	slots [numActionKinds]*slot
	gen   uint64
}

func newScheduler(clock diffpane.Clock, run func(action)) *scheduler {
	return &scheduler{clock: clock, run: run}
}

func (s *scheduler) post(a action, d time.Duration) {
	k := a.kind()
	s.stop(k)
	s.gen++
	gen := s.gen
	sl := &slot{action: a, gen: gen}
	s.slots[k] = sl
	sl.timer = s.clock.AfterFunc(d, func() { s.fire(k, gen) })
}

func (s *scheduler) fire(k actionKind, gen uint64) {
	sl := s.slots[k]
	if sl == nil || sl.gen != gen {
		return
	}
	s.slots[k] = nil
	s.run(sl.action)
}

func (s *scheduler) stop(k actionKind) {
	if sl := s.slots[k]; sl != nil && sl.timer != nil {
		sl.timer.Stop()
	}
}

func (s *scheduler) cancel(k actionKind) {
	s.stop(k)
	s.slots[k] = nil
}

func (s *scheduler) cancelAll() {
	for k := range numActionKinds {
		s.cancel(k)
	}
}

// pending returns the action waiting in slot k.
func (s *scheduler) pending(k actionKind) (action, bool) {
	if sl := s.slots[k]; sl != nil {
		return sl.action, true
	}
	return nil, false
}

func (s *scheduler) isPending(k actionKind) bool {
	return s.slots[k] != nil
}
