package session_test

import (
	"context"
	"testing"

	"github.com/fwojciec/diffpane"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// comparedTwenty compares two 20 line buffers differing on line 10, the old
// one in the main view.
func comparedTwenty(t *testing.T, steps ...diffpane.Alignment) (*fixture, *scriptedComparer, diffpane.BufferID, diffpane.BufferID) {
	t.Helper()

	initial := diffpane.Alignment{
		rec(0, 0, 0, 0),
		rec(10, 10, diffpane.MarkerChanged, diffpane.MarkerChanged),
		rec(11, 11, 0, 0),
	}

	c := newScriptedComparer(append([]diffpane.Alignment{initial}, steps...)...)
	f := newFixture(t, c)
	c.host = f.host

	oldBuf := f.host.AddBuffer(diffpane.MainView, "old.txt", numbered("l", 20))
	newBuf := f.host.AddBuffer(diffpane.SubView, "new.txt", numbered("l", 20))

	result, err := f.session.Compare(context.Background())
	require.NoError(t, err)
	require.Equal(t, diffpane.CompareMismatch, result)
	f.settle()

	return f, c, oldBuf, newBuf
}

func TestSession_Update_InsertReDiffsWindow(t *testing.T) {
	t.Parallel()

	fresh := diffpane.Alignment{
		rec(14, 14, 0, 0),
		rec(15, 15, 0, diffpane.MarkerAdded),
		rec(15, 17, 0, 0),
	}
	f, c, _, newBuf := comparedTwenty(t, fresh)

	require.NoError(t, f.host.InsertLines(newBuf, 15, "n1", "n2"))
	assert.Len(t, c.requests, 1, "update waits for the edit burst to settle")

	f.settle()

	require.Len(t, c.requests, 2)
	req := c.last()
	assert.Equal(t, diffpane.Section{Off: 14, Len: 3}, req.Main)
	assert.Equal(t, diffpane.Section{Off: 14, Len: 5}, req.Sub)
	assert.Equal(t, diffpane.MainView, req.OldView)
	assert.Equal(t, "Re-comparing changes...", req.Progress)

	pair := f.session.PairOf(newBuf)
	require.NotNil(t, pair)
	assert.Equal(t, diffpane.Alignment{
		rec(0, 0, 0, 0),
		rec(10, 10, diffpane.MarkerChanged, diffpane.MarkerChanged),
		rec(11, 11, 0, 0),
		rec(14, 14, 0, 0),
		rec(15, 15, 0, diffpane.MarkerAdded),
		rec(15, 17, 0, 0),
	}, pair.Alignment)

	assert.Equal(t, diffpane.MarkerChanged, f.host.Markers(diffpane.MainView, 10))
	assert.Equal(t, diffpane.MarkerAdded, f.host.Markers(diffpane.SubView, 15))
	assert.Equal(t, 2, f.host.Padding(diffpane.MainView, 15))
	assert.Equal(t,
		f.host.VisibleFromDocLine(diffpane.MainView, 15),
		f.host.VisibleFromDocLine(diffpane.SubView, 17))
}

func TestSession_Update_LineEditReDiffsOneLine(t *testing.T) {
	t.Parallel()

	fresh := diffpane.Alignment{rec(3, 3, diffpane.MarkerChanged, diffpane.MarkerChanged)}
	f, c, _, newBuf := comparedTwenty(t, fresh)

	require.NoError(t, f.host.SetLine(newBuf, 3, "edited"))
	f.settle()

	require.Len(t, c.requests, 2)
	assert.Equal(t, diffpane.Section{Off: 3, Len: 1}, c.last().Main)
	assert.Equal(t, diffpane.Section{Off: 3, Len: 1}, c.last().Sub)

	pair := f.session.PairOf(newBuf)
	require.NotNil(t, pair)
	assert.Equal(t, diffpane.Alignment{
		rec(0, 0, 0, 0),
		rec(3, 3, diffpane.MarkerChanged, diffpane.MarkerChanged),
		rec(10, 10, diffpane.MarkerChanged, diffpane.MarkerChanged),
		rec(11, 11, 0, 0),
	}, pair.Alignment)
	assert.Equal(t, diffpane.MarkerChanged, f.host.Markers(diffpane.SubView, 3))
}

func TestSession_Update_EditBurstIsCoalesced(t *testing.T) {
	t.Parallel()

	f, c, _, newBuf := comparedTwenty(t)

	require.NoError(t, f.host.InsertLines(newBuf, 15, "n1"))
	require.NoError(t, f.host.InsertLines(newBuf, 14, "n2"))
	f.settle()

	require.Len(t, c.requests, 2)
	assert.Equal(t, 13, c.last().Sub.Off)
}

func TestSession_Update_SeparateEditsRecompareFully(t *testing.T) {
	t.Parallel()

	f, c, _, newBuf := comparedTwenty(t)

	require.NoError(t, f.host.InsertLines(newBuf, 4, "n1"))
	require.NoError(t, f.host.InsertLines(newBuf, 16, "n2"))
	f.settle()

	require.Len(t, c.requests, 2)
	assert.Equal(t, "Comparing...", c.last().Progress)
	assert.Equal(t, diffpane.Section{}, c.last().Sub)
}

func TestSession_Update_TypingOnInsertedLinesStaysWindowed(t *testing.T) {
	t.Parallel()

	f, c, _, newBuf := comparedTwenty(t)

	require.NoError(t, f.host.InsertLines(newBuf, 15, "n1"))
	require.NoError(t, f.host.InsertLines(newBuf, 16, "n2"))
	require.NoError(t, f.host.SetLine(newBuf, 16, "n2 edited"))
	f.settle()

	require.Len(t, c.requests, 2)
	assert.Equal(t, "Re-comparing changes...", c.last().Progress)
}

func TestSession_Update_EditsInBothViewsRecompareFully(t *testing.T) {
	t.Parallel()

	f, c, oldBuf, newBuf := comparedTwenty(t)

	require.NoError(t, f.host.InsertLines(newBuf, 5, "x"))
	require.NoError(t, f.host.InsertLines(oldBuf, 5, "y"))
	f.settle()

	require.Len(t, c.requests, 2)
	assert.Equal(t, "Comparing...", c.last().Progress)
	assert.Equal(t, diffpane.Section{}, c.last().Main)
	assert.Equal(t, diffpane.Section{}, c.last().Sub)
	assert.NotNil(t, f.session.PairOf(newBuf))
}

func TestSession_Update_SaveRecomparesFully(t *testing.T) {
	t.Parallel()

	f, c, _, newBuf := comparedTwenty(t)

	require.NoError(t, f.host.Save(newBuf))
	f.settle()

	require.Len(t, c.requests, 2)
	assert.Equal(t, "Comparing...", c.last().Progress)
	assert.Equal(t, numbered("l", 20), f.files["new.txt"])
}

func TestSession_Update_SaveWithoutRecompare(t *testing.T) {
	t.Parallel()

	f, c, _, newBuf := comparedTwenty(t)
	settings := f.session.Settings()
	settings.RecompareOnSave = false
	f.session.SetSettings(settings)

	require.NoError(t, f.host.Save(newBuf))
	f.settle()

	assert.Len(t, c.requests, 1)
	assert.Equal(t, diffpane.MarkerChanged, f.host.Markers(diffpane.SubView, 10))
}

func TestSession_History_UndoRestoresMarkers(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil, withSettings(func(s *diffpane.Settings) { s.UpdateOnChange = false }))
	f.host.AddBuffer(diffpane.MainView, "old.txt", "a\nb\nc\nd")
	newBuf := f.host.AddBuffer(diffpane.SubView, "new.txt", "a\nx\ny\nd")
	_, err := f.session.Compare(context.Background())
	require.NoError(t, err)
	f.settle()

	before := f.markers(diffpane.SubView)
	require.Equal(t, []diffpane.Marker{0, diffpane.MarkerChanged, diffpane.MarkerChanged, 0}, before)

	require.NoError(t, f.host.DeleteLines(newBuf, 1, 2))
	pair := f.session.PairOf(newBuf)
	require.NotNil(t, pair)
	assert.Equal(t, 1, pair.New().History.Len())

	require.NoError(t, f.host.Undo(newBuf))
	f.settle()

	assert.Equal(t, before, f.markers(diffpane.SubView))
	assert.Zero(t, pair.New().History.Len())
}
