package diffmatchpatch_test

import (
	"context"
	"testing"

	"github.com/fwojciec/diffpane"
	"github.com/fwojciec/diffpane/diffmatchpatch"
	"github.com/fwojciec/diffpane/memhost"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHost(t *testing.T, oldText, newText string) *memhost.Host {
	t.Helper()
	h := memhost.New()
	h.AddBuffer(diffpane.MainView, "old.txt", oldText)
	h.AddBuffer(diffpane.SubView, "new.txt", newText)
	return h
}

func changed(a diffpane.Alignment) diffpane.Alignment {
	var out diffpane.Alignment
	for _, rec := range a {
		if rec.Main.DiffMask != 0 || rec.Sub.DiffMask != 0 {
			out = append(out, rec)
		}
	}
	return out
}

func TestComparer_Compare_ChangedLine(t *testing.T) {
	t.Parallel()

	h := newHost(t, "a\nb\nc\n", "a\nx\nc\n")
	c := diffmatchpatch.New(h)

	result, alignment, err := c.Compare(context.Background(), diffpane.CompareRequest{OldView: diffpane.MainView})
	require.NoError(t, err)

	assert.Equal(t, diffpane.CompareMismatch, result)
	assert.Equal(t, diffpane.Alignment{
		{Main: diffpane.AlignmentSide{Line: 1, DiffMask: diffpane.MarkerChanged}, Sub: diffpane.AlignmentSide{Line: 1, DiffMask: diffpane.MarkerChanged}},
	}, changed(alignment))

	assert.Equal(t, diffpane.MarkerChanged, h.Markers(diffpane.MainView, 1))
	assert.Equal(t, diffpane.MarkerChanged, h.Markers(diffpane.SubView, 1))
	for _, line := range []int{0, 2} {
		assert.Zero(t, h.Markers(diffpane.MainView, line))
		assert.Zero(t, h.Markers(diffpane.SubView, line))
	}
	assert.Equal(t, [][2]int{{0, 1}}, h.Indicators(diffpane.MainView, 1))
}

func TestComparer_Compare_Match(t *testing.T) {
	t.Parallel()

	h := newHost(t, "a\nb\n", "a\nb\n")

	result, alignment, err := diffmatchpatch.New(h).Compare(context.Background(), diffpane.CompareRequest{OldView: diffpane.MainView})
	require.NoError(t, err)

	assert.Equal(t, diffpane.CompareMatch, result)
	assert.Empty(t, changed(alignment))
}

func TestComparer_Compare_AddedAndRemoved(t *testing.T) {
	t.Parallel()

	h := newHost(t, "a\nb\nc", "a\nc\nd\ne")

	result, alignment, err := diffmatchpatch.New(h).Compare(context.Background(), diffpane.CompareRequest{OldView: diffpane.MainView})
	require.NoError(t, err)
	require.Equal(t, diffpane.CompareMismatch, result)

	assert.Equal(t, diffpane.MarkerRemoved, h.Markers(diffpane.MainView, 1))
	assert.Equal(t, diffpane.MarkerAdded, h.Markers(diffpane.SubView, 2))
	assert.Equal(t, diffpane.MarkerAdded, h.Markers(diffpane.SubView, 3))

	assert.Equal(t, diffpane.Alignment{
		{Main: diffpane.AlignmentSide{Line: 0}, Sub: diffpane.AlignmentSide{Line: 0}},
		{Main: diffpane.AlignmentSide{Line: 1, DiffMask: diffpane.MarkerRemoved}, Sub: diffpane.AlignmentSide{Line: 1}},
		{Main: diffpane.AlignmentSide{Line: 2}, Sub: diffpane.AlignmentSide{Line: 1}},
		{Main: diffpane.AlignmentSide{Line: 3}, Sub: diffpane.AlignmentSide{Line: 2, DiffMask: diffpane.MarkerAdded}},
	}, alignment)
}

func TestComparer_Compare_OldInSubView(t *testing.T) {
	t.Parallel()

	h := newHost(t, "a\nc", "a\nb\nc")

	_, alignment, err := diffmatchpatch.New(h).Compare(context.Background(), diffpane.CompareRequest{OldView: diffpane.SubView})
	require.NoError(t, err)

	assert.Equal(t, diffpane.MarkerRemoved, h.Markers(diffpane.SubView, 1))
	assert.Equal(t, diffpane.Alignment{
		{Main: diffpane.AlignmentSide{Line: 1}, Sub: diffpane.AlignmentSide{Line: 1, DiffMask: diffpane.MarkerRemoved}},
	}, changed(alignment))
}

func TestComparer_Compare_Options(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		old, new string
		opts     diffpane.Options
		want     diffpane.CompareResult
	}{
		{name: "case differs", old: "Hello", new: "hello", want: diffpane.CompareMismatch},
		{name: "ignore case", old: "Hello", new: "hello", opts: diffpane.Options{IgnoreCase: true}, want: diffpane.CompareMatch},
		{name: "spaces differ", old: "a b", new: "a  b", want: diffpane.CompareMismatch},
		{name: "ignore spaces", old: "a b", new: "a  b\t", opts: diffpane.Options{IgnoreSpaces: true}, want: diffpane.CompareMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := newHost(t, tt.old, tt.new)
			result, _, err := diffmatchpatch.New(h).Compare(context.Background(),
				diffpane.CompareRequest{OldView: diffpane.MainView, Options: tt.opts})
			require.NoError(t, err)
			assert.Equal(t, tt.want, result)
		})
	}
}

func TestComparer_Compare_DetectMoves(t *testing.T) {
	t.Parallel()

	h := newHost(t, "moved\na\nb", "a\nb\nmoved")

	_, _, err := diffmatchpatch.New(h).Compare(context.Background(),
		diffpane.CompareRequest{OldView: diffpane.MainView, Options: diffpane.Options{DetectMoves: true}})
	require.NoError(t, err)

	assert.Equal(t, diffpane.MarkerMoved, h.Markers(diffpane.MainView, 0))
	assert.Equal(t, diffpane.MarkerMoved, h.Markers(diffpane.SubView, 2))
}

func TestComparer_Compare_Section(t *testing.T) {
	t.Parallel()

	h := newHost(t, "x\na\nb\ny", "z\na\nc\nw")

	result, alignment, err := diffmatchpatch.New(h).Compare(context.Background(), diffpane.CompareRequest{
		Main:    diffpane.Section{Off: 1, Len: 2},
		Sub:     diffpane.Section{Off: 1, Len: 2},
		OldView: diffpane.MainView,
	})
	require.NoError(t, err)
	require.Equal(t, diffpane.CompareMismatch, result)

	assert.Zero(t, h.Markers(diffpane.MainView, 0))
	assert.Zero(t, h.Markers(diffpane.MainView, 3))
	assert.Equal(t, diffpane.MarkerChanged, h.Markers(diffpane.MainView, 2))
	assert.Equal(t, diffpane.Alignment{
		{Main: diffpane.AlignmentSide{Line: 1}, Sub: diffpane.AlignmentSide{Line: 1}},
		{Main: diffpane.AlignmentSide{Line: 2, DiffMask: diffpane.MarkerChanged}, Sub: diffpane.AlignmentSide{Line: 2, DiffMask: diffpane.MarkerChanged}},
	}, alignment)
}

func TestComparer_Compare_Progress(t *testing.T) {
	t.Parallel()

	h := newHost(t, "a", "b")
	var labels []string
	c := diffmatchpatch.New(h, diffmatchpatch.WithProgress(func(label string) { labels = append(labels, label) }))

	_, _, err := c.Compare(context.Background(), diffpane.CompareRequest{OldView: diffpane.MainView, Progress: "Comparing..."})
	require.NoError(t, err)
	_, _, err = c.Compare(context.Background(), diffpane.CompareRequest{OldView: diffpane.MainView})
	require.NoError(t, err)

	assert.Equal(t, []string{"Comparing..."}, labels)
}

func TestComparer_Compare_Errors(t *testing.T) {
	t.Parallel()

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()

		h := newHost(t, "a", "b")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result, _, err := diffmatchpatch.New(h).Compare(ctx, diffpane.CompareRequest{OldView: diffpane.MainView})
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, diffpane.CompareError, result)
		assert.Zero(t, h.Markers(diffpane.MainView, 0))
	})

	t.Run("section out of range", func(t *testing.T) {
		t.Parallel()

		h := newHost(t, "a", "b")
		result, _, err := diffmatchpatch.New(h).Compare(context.Background(), diffpane.CompareRequest{
			Main:    diffpane.Section{Off: 5, Len: 1},
			OldView: diffpane.MainView,
		})
		require.Error(t, err)
		assert.Equal(t, diffpane.CompareError, result)
	})
}
