package session_test

import (
	"testing"
	"time"

	"github.com/fwojciec/diffpane"
	"github.com/fwojciec/diffpane/clock"
	"github.com/fwojciec/diffpane/memhost"
	"github.com/fwojciec/diffpane/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// historyFeed forwards edits of the main view to a marker history the way
// a session does in history mode.
type historyFeed struct {
	nopListener
	host    *memhost.Host
	history *session.DeletedSections
}

func (f *historyFeed) OnModified(_ diffpane.BufferID, mod diffpane.Modification) {
	switch {
	case mod.Type == diffpane.ModBeforeDelete && mod.EndLine > mod.Line:
		f.history.Push(f.host, diffpane.MainView, mod.Action, mod.Line, mod.EndLine)
	case mod.Type == diffpane.ModInsertText && mod.LinesAdded > 0:
		f.history.Pop(f.host, diffpane.MainView, mod.Action, mod.Line)
	}
}

type nopListener struct{}

func (nopListener) OnBufferActivated(diffpane.BufferID)                 {}
func (nopListener) OnBeforeClose(diffpane.BufferID)                     {}
func (nopListener) OnSaved(diffpane.BufferID)                           {}
func (nopListener) OnModified(diffpane.BufferID, diffpane.Modification) {}
func (nopListener) OnPainted()                                          {}
func (nopListener) OnScrolled(diffpane.ViewID)                          {}
func (nopListener) OnZoom(diffpane.ViewID)                              {}
func (nopListener) OnMinimized()                                        {}
func (nopListener) OnRestored()                                         {}
func (nopListener) OnBeforeShutdown()                                   {}

func newHistoryHost(t *testing.T, content string) (*memhost.Host, diffpane.BufferID, *session.DeletedSections, *clock.Mock) {
	t.Helper()

	c := clock.NewMock()
	h := memhost.New()
	buf := h.AddBuffer(diffpane.MainView, "a.txt", content)
	history := session.NewDeletedSections(c, 40*time.Millisecond, nil)
	h.SetListener(&historyFeed{host: h, history: history})
	return h, buf, history, c
}

func markers(h *memhost.Host, view diffpane.ViewID) []diffpane.Marker {
	out := make([]diffpane.Marker, h.LineCount(view))
	for i := range out {
		out[i] = h.Markers(view, i)
	}
	return out
}

func TestDeletedSections_DeleteUndoRestoresMarkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		first, count int
	}{
		{name: "middle block", first: 1, count: 3},
		{name: "from top", first: 0, count: 2},
		{name: "single line", first: 2, count: 1},
		{name: "up to last line", first: 2, count: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, buf, history, _ := newHistoryHost(t, "0\n1\n2\n3\n4\n5")
			h.AddMarkers(diffpane.MainView, 1, diffpane.MarkerChanged)
			h.AddMarkers(diffpane.MainView, 2, diffpane.MarkerAdded)
			h.AddMarkers(diffpane.MainView, 3, diffpane.MarkerRemoved)
			h.AddMarkers(diffpane.MainView, 4, diffpane.MarkerChanged|diffpane.MarkerMoved)
			before := markers(h, diffpane.MainView)

			require.NoError(t, h.DeleteLines(buf, tt.first, tt.count))
			assert.Equal(t, 1, history.Len())

			require.NoError(t, h.Undo(buf))

			assert.Equal(t, "0\n1\n2\n3\n4\n5", h.Text(buf))
			assert.Equal(t, before, markers(h, diffpane.MainView))
			assert.Zero(t, history.Len())
			assert.Zero(t, history.SkipPush())
		})
	}
}

func TestDeletedSections_RedoUndoRoundTrip(t *testing.T) {
	t.Parallel()

	h, buf, history, _ := newHistoryHost(t, "0\n1\n2\n3\n4")
	h.AddMarkers(diffpane.MainView, 1, diffpane.MarkerAdded)
	h.AddMarkers(diffpane.MainView, 2, diffpane.MarkerAdded)
	before := markers(h, diffpane.MainView)

	require.NoError(t, h.DeleteLines(buf, 1, 2))
	require.NoError(t, h.Undo(buf))
	require.NoError(t, h.Redo(buf))
	assert.Equal(t, 1, history.Len())

	require.NoError(t, h.Undo(buf))
	assert.Equal(t, before, markers(h, diffpane.MainView))
	assert.Zero(t, history.Len())
}

func TestDeletedSections_LineReplaceIsOneRecord(t *testing.T) {
	t.Parallel()

	h, buf, history, _ := newHistoryHost(t, "0\n1\n2\n3\n4\n5\n6")
	h.AddMarkers(diffpane.MainView, 5, diffpane.MarkerChanged)
	h.AddMarkers(diffpane.MainView, 6, diffpane.MarkerAdded)
	before := markers(h, diffpane.MainView)

	require.NoError(t, h.ReplaceLines(buf, 5, 1, "five"))
	assert.Equal(t, 1, history.Len())
	assert.Zero(t, history.SkipPush())

	require.NoError(t, h.Undo(buf))
	assert.Equal(t, "0\n1\n2\n3\n4\n5\n6", h.Text(buf))
	assert.Equal(t, before, markers(h, diffpane.MainView))
	assert.Zero(t, history.Len())
}

func TestDeletedSections_LateInsertIsNotReplace(t *testing.T) {
	t.Parallel()

	h, buf, history, c := newHistoryHost(t, "0\n1\n2\n3")

	require.NoError(t, h.DeleteLines(buf, 1, 1))
	c.Advance(time.Second)
	require.NoError(t, h.InsertLines(buf, 1, "x"))

	assert.Equal(t, 1, history.Len())
	assert.Equal(t, 1, history.SkipPush())
}

func TestDeletedSections_SkipCounterSettles(t *testing.T) {
	t.Parallel()

	h, buf, history, _ := newHistoryHost(t, "0\n1\n2\n3\n4")

	// An insert with nothing recorded arms one skip.
	require.NoError(t, h.InsertLines(buf, 2, "x"))
	assert.Equal(t, 1, history.SkipPush())

	// The next delete consumes it and is not recorded.
	require.NoError(t, h.DeleteLines(buf, 0, 2))
	assert.Zero(t, history.SkipPush())
	assert.Zero(t, history.Len())

	// Undoing the delete pops an empty history.
	require.NoError(t, h.Undo(buf))
	assert.Equal(t, 1, history.SkipPush())

	// Undoing the insert deletes again and consumes the skip.
	require.NoError(t, h.Undo(buf))
	assert.Zero(t, history.SkipPush())
	assert.Zero(t, history.Len())
	assert.Equal(t, "0\n1\n2\n3\n4", h.Text(buf))
}

func TestDeletedSections_Clear(t *testing.T) {
	t.Parallel()

	h, buf, history, _ := newHistoryHost(t, "0\n1\n2\n3")
	require.NoError(t, h.InsertLines(buf, 1, "x"))
	require.NoError(t, h.DeleteLines(buf, 0, 2))
	require.NoError(t, h.DeleteLines(buf, 0, 2))
	require.Equal(t, 1, history.Len())

	history.Clear()

	assert.Zero(t, history.Len())
	assert.Zero(t, history.SkipPush())
}
