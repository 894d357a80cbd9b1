package bubbletea_test

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/fwojciec/diffpane"
	"github.com/fwojciec/diffpane/bubbletea"
	"github.com/fwojciec/diffpane/diffmatchpatch"
	"github.com/fwojciec/diffpane/memhost"
	"github.com/fwojciec/diffpane/mock"
	"github.com/fwojciec/diffpane/session"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trueColorRenderer creates a lipgloss renderer that outputs true colors.
// This is useful for testing color output without affecting global state.
func trueColorRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	return r
}

// env is a model over a host holding old.txt in the main view and new.txt
// in the sub view, with new.txt focused.
type env struct {
	host  *memhost.Host
	model bubbletea.Model
}

func newEnv(t *testing.T, oldText, newText string, settings diffpane.Settings, opts ...bubbletea.ModelOption) *env {
	t.Helper()

	host := memhost.New()
	clock := bubbletea.NewClock()
	prompter := bubbletea.NewPrompter()
	sess := session.New(host, diffmatchpatch.New(host),
		session.WithClock(clock),
		session.WithPrompter(prompter),
		session.WithSettings(settings),
	)
	host.SetListener(sess)
	t.Cleanup(sess.Close)

	host.AddBuffer(diffpane.MainView, "/w/old.txt", oldText)
	host.AddBuffer(diffpane.SubView, "/w/new.txt", newText)

	opts = append([]bubbletea.ModelOption{bubbletea.WithRenderer(trueColorRenderer())}, opts...)
	return &env{
		host:  host,
		model: bubbletea.NewModel(host, sess, clock, prompter, opts...),
	}
}

// send feeds msgs to the model in order.
func (e *env) send(msgs ...tea.Msg) {
	var m tea.Model = e.model
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	e.model = m.(bubbletea.Model)
}

func (e *env) keys(s string) {
	for _, r := range s {
		e.send(runes(string(r)))
	}
}

func sized() tea.Msg {
	return tea.WindowSizeMsg{Width: 80, Height: 20}
}

func TestModel_ViewBeforeReady(t *testing.T) {
	t.Parallel()

	e := newEnv(t, "a", "b", diffpane.DefaultSettings())

	assert.Contains(t, e.model.View(), "Loading")
}

func TestModel_ViewShowsBothPanes(t *testing.T) {
	t.Parallel()

	e := newEnv(t, "alpha\nbeta", "gamma", diffpane.DefaultSettings())
	e.send(sized())

	view := e.model.View()

	assert.Contains(t, view, "old.txt")
	assert.Contains(t, view, "new.txt")
	assert.Contains(t, view, "alpha")
	assert.Contains(t, view, "gamma")
	assert.Contains(t, view, "c: compare")
}

func TestModel_CompareMarksLines(t *testing.T) {
	t.Parallel()

	e := newEnv(t, "a\nb\nc", "a\nX\nc", diffpane.DefaultSettings())
	e.send(sized())

	e.keys("c")

	assert.NotZero(t, e.host.Markers(diffpane.MainView, 1)&diffpane.MarkerChanged)
	assert.NotZero(t, e.host.Markers(diffpane.SubView, 1)&diffpane.MarkerChanged)
	assert.Zero(t, e.host.Markers(diffpane.SubView, 0))

	e.keys("x")

	assert.Zero(t, e.host.Markers(diffpane.SubView, 1))
}

func TestModel_MatchPrompt(t *testing.T) {
	t.Parallel()

	settings := diffpane.DefaultSettings()
	settings.PromptToCloseOnMatch = true

	t.Run("yes closes the files", func(t *testing.T) {
		t.Parallel()

		e := newEnv(t, "same", "same", settings)
		e.send(sized())

		e.keys("c")
		require.Contains(t, e.model.View(), "Close compared files? [y/N]")

		e.keys("y")

		assert.Zero(t, e.host.TabCount(diffpane.MainView))
		assert.Zero(t, e.host.TabCount(diffpane.SubView))
	})

	t.Run("anything else keeps them", func(t *testing.T) {
		t.Parallel()

		e := newEnv(t, "same", "same", settings)
		e.send(sized())

		e.keys("cn")

		assert.Equal(t, 1, e.host.TabCount(diffpane.MainView))
		assert.Equal(t, 1, e.host.TabCount(diffpane.SubView))
		assert.Contains(t, e.model.View(), "Cancelled.")
	})
}

func TestModel_MatchNotice(t *testing.T) {
	t.Parallel()

	e := newEnv(t, "same", "same", diffpane.DefaultSettings())
	e.send(sized())

	e.keys("c")

	assert.Contains(t, e.model.View(), `Files "old.txt" and "new.txt" match.`)
}

func TestModel_CaretMovement(t *testing.T) {
	t.Parallel()

	e := newEnv(t, "a", "0\n1\n2\n3\n4", diffpane.DefaultSettings())
	e.send(sized())

	e.keys("jj")
	assert.Equal(t, 2, e.host.CaretLine(diffpane.SubView))

	e.keys("G")
	assert.Equal(t, 4, e.host.CaretLine(diffpane.SubView))

	e.keys("gg")
	assert.Equal(t, 0, e.host.CaretLine(diffpane.SubView))

	e.send(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, diffpane.MainView, e.host.CurrentView())
}

func TestModel_CompareSelection(t *testing.T) {
	t.Parallel()

	e := newEnv(t, "a\nb\nc\nd", "x\nb\nc\ny", diffpane.DefaultSettings())
	e.send(sized())

	e.keys("jvj")
	e.send(tea.KeyMsg{Type: tea.KeyTab})
	e.keys("jvj")

	sel, ok := e.host.Selection(diffpane.SubView)
	require.True(t, ok)
	assert.Equal(t, diffpane.LineRange{First: 1, Last: 2}, sel)

	e.keys("C")

	assert.Contains(t, e.model.View(), `Selected lines in files`)
}

func TestModel_EditAndUndo(t *testing.T) {
	t.Parallel()

	e := newEnv(t, "a", "0\n1\n2", diffpane.DefaultSettings())
	e.send(sized())

	e.keys("d")
	assert.Equal(t, "1\n2", e.host.Text(e.host.Active(diffpane.SubView)))

	e.keys("p")
	assert.Equal(t, "1\n0\n2", e.host.Text(e.host.Active(diffpane.SubView)))

	e.keys("uu")
	assert.Equal(t, "0\n1\n2", e.host.Text(e.host.Active(diffpane.SubView)))

	e.send(tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Equal(t, "1\n2", e.host.Text(e.host.Active(diffpane.SubView)))
}

func TestModel_CopyLine(t *testing.T) {
	t.Parallel()

	var copied string
	cb := &mock.Clipboard{CopyFn: func(content string) error {
		copied = content
		return nil
	}}
	e := newEnv(t, "a", "first\nsecond", diffpane.DefaultSettings(), bubbletea.WithClipboard(cb))
	e.send(sized())

	e.keys("jy")

	assert.Equal(t, "second", copied)
	assert.Contains(t, e.model.View(), "Line copied.")
}

func TestModel_CopyLineFails(t *testing.T) {
	t.Parallel()

	cb := &mock.Clipboard{CopyFn: func(string) error { return errors.New("no display") }}
	e := newEnv(t, "a", "b", diffpane.DefaultSettings(), bubbletea.WithClipboard(cb))
	e.send(sized())

	e.keys("y")

	assert.Contains(t, e.model.View(), "Copy failed: no display")
}

func TestModel_OptionToggles(t *testing.T) {
	t.Parallel()

	e := newEnv(t, "a", "b", diffpane.DefaultSettings())
	e.send(sized())

	e.keys("i")

	assert.Contains(t, e.model.View(), "Ignore Case: on")
}

func TestModel_CompareInProgram(t *testing.T) {
	t.Parallel()

	e := newEnv(t, "one\ntwo\nthree", "one\n2\nthree", diffpane.DefaultSettings())
	tm := teatest.NewTestModel(t, e.model,
		teatest.WithInitialTermSize(80, 20),
	)

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("old.txt"))
	})

	tm.Send(runes("c"))

	// The status line is set once the delayed alignment pass has run.
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("Compare (Full)"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(runes("q"))
	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second))
}
