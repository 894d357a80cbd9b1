// Package session drives live two-pane comparisons.
//
// A Session receives host notifications, keeps the registry of compared
// pairs, repairs diff markers across undo and redo, re-diffs edited
// neighborhoods and keeps both panes aligned and scrolled together. All
// methods must be called from the host's UI thread.
package session

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/diffpane"
	"github.com/fwojciec/diffpane/clock"
)

// Compile-time interface verification.
var _ diffpane.Notifications = (*Session)(nil)

// newCompare is a first file waiting for its counterpart.
type newCompare struct {
	pair     *ComparedPair
	label    string            // original tab label of the first file, if it was marked
	tempKind diffpane.TempKind // kind of the temp buffer that will become the second file
}

// Session is a comparison session bound to one host.
type Session struct {
	host     diffpane.Host
	comparer diffpane.Comparer
	store    diffpane.TempStore
	prompter diffpane.Prompter
	fetchers map[diffpane.TempKind]diffpane.ReferenceFetcher
	clock    diffpane.Clock
	logger   *slog.Logger
	settings diffpane.Settings

	ctx    context.Context
	cancel context.CancelFunc

	registry    Registry
	pending     *newCompare
	lock        int
	compareMode bool

	storedLocation *viewLocation
	goToFirst      bool

	sched *scheduler
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger. Defaults to discarding.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithClock sets the clock driving delayed actions.
func WithClock(c diffpane.Clock) Option {
	return func(s *Session) {
		s.clock = c
	}
}

// WithTempStore sets where temp files for last-save and VCS compares live.
func WithTempStore(store diffpane.TempStore) Option {
	return func(s *Session) {
		s.store = store
	}
}

// WithPrompter sets how notices and questions reach the user.
func WithPrompter(p diffpane.Prompter) Option {
	return func(s *Session) {
		s.prompter = p
	}
}

// WithFetcher sets the reference source for temp buffers of kind.
func WithFetcher(kind diffpane.TempKind, f diffpane.ReferenceFetcher) Option {
	return func(s *Session) {
		s.fetchers[kind] = f
	}
}

// WithSettings sets the initial settings. Defaults to diffpane.DefaultSettings.
func WithSettings(settings diffpane.Settings) Option {
	return func(s *Session) {
		s.settings = settings
	}
}

// New creates a session driving host. The caller registers the session as
// the host's notification listener.
func New(host diffpane.Host, comparer diffpane.Comparer, opts ...Option) *Session {
	s := &Session{
		host:     host,
		comparer: comparer,
		prompter: nopPrompter{},
		fetchers: make(map[diffpane.TempKind]diffpane.ReferenceFetcher),
		clock:    clock.New(),
		logger:   discardLogger(),
		settings: diffpane.DefaultSettings(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.sched = newScheduler(s.clock, s.runAction)
	return s
}

// Close clears all compares and stops pending delayed actions.
func (s *Session) Close() {
	s.ClearAll()
	s.sched.cancelAll()
	s.cancel()
}

// Settings returns the live settings.
func (s *Session) Settings() diffpane.Settings {
	return s.settings
}

// SetSettings replaces the live settings. Pairs keep the options of their
// last compare until they are compared again.
func (s *Session) SetSettings(settings diffpane.Settings) {
	s.settings = settings
}

// ToggleIgnoreSpaces flips the ignore-spaces option.
func (s *Session) ToggleIgnoreSpaces() {
	s.settings.IgnoreSpaces = !s.settings.IgnoreSpaces
}

// ToggleIgnoreCase flips the ignore-case option.
func (s *Session) ToggleIgnoreCase() {
	s.settings.IgnoreCase = !s.settings.IgnoreCase
}

// ToggleDetectMoves flips the detect-moves option.
func (s *Session) ToggleDetectMoves() {
	s.settings.DetectMoves = !s.settings.DetectMoves
}

// Pairs returns the active compared pairs.
func (s *Session) Pairs() []*ComparedPair {
	return s.registry.All()
}

// PairOf returns the pair holding buf, or nil.
func (s *Session) PairOf(buf diffpane.BufferID) *ComparedPair {
	return s.registry.ByBuffer(buf)
}

// CompareMode reports whether the displayed buffers are compared.
func (s *Session) CompareMode() bool {
	return s.compareMode
}

// guard raises the re-entrancy lock. Notifications caused by the session's
// own host commands are ignored while it is raised. Call the returned
// function to lower it.
func (s *Session) guard() func() {
	s.lock++
	return func() {
		s.lock--
	}
}

func (s *Session) runAction(a action) {
	s.logger.Debug("delayed action fired", "action", a.kind())

	switch a := a.(type) {
	case alignAction:
		s.fireAlign()
	case activateAction:
		s.fireActivate(a)
	case closeAction:
		s.fireClose(a)
	case updateAction:
		s.fireUpdate(a)
	case restoreAction:
		s.fireRestore()
	}
}

func (s *Session) notify(msg string) {
	s.prompter.Notify(msg)
}

type nopPrompter struct{}

func (nopPrompter) Notify(string)       {}
func (nopPrompter) Confirm(string) bool { return false }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
