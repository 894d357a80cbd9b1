package diffpane_test

import (
	"testing"

	"github.com/fwojciec/diffpane"
	"github.com/fwojciec/diffpane/memhost"
	"github.com/stretchr/testify/assert"
)

func TestViewID_Other(t *testing.T) {
	t.Parallel()

	assert.Equal(t, diffpane.SubView, diffpane.MainView.Other())
	assert.Equal(t, diffpane.MainView, diffpane.SubView.Other())
}

func TestEditAction_Restore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		action   diffpane.EditAction
		expected diffpane.EditAction
	}{
		{name: "user deletion is restored by undo", action: diffpane.ActionUser, expected: diffpane.ActionUndo},
		{name: "redo deletion is restored by undo", action: diffpane.ActionRedo, expected: diffpane.ActionUndo},
		{name: "undo deletion is restored by redo", action: diffpane.ActionUndo, expected: diffpane.ActionRedo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.action.Restore())
		})
	}
}

func TestTempKind_Marks(t *testing.T) {
	t.Parallel()

	assert.Empty(t, diffpane.TempNone.FileMark())
	assert.Equal(t, "_LastSave", diffpane.TempLastSaved.FileMark())
	assert.Equal(t, " ** Git", diffpane.TempVCSRevisionA.TabMark())
	assert.Equal(t, "Base", diffpane.TempVCSRevisionB.Source())
}

func TestLineRange_Section(t *testing.T) {
	t.Parallel()

	r := diffpane.LineRange{First: 3, Last: 7}

	assert.Equal(t, diffpane.Section{Off: 3, Len: 5}, r.Section())
	assert.Equal(t, "4-8", r.String())
}

func TestStatus(t *testing.T) {
	t.Parallel()

	t.Run("full compare", func(t *testing.T) {
		t.Parallel()
		got := diffpane.Status(diffpane.ScopeFull, [2]diffpane.LineRange{}, diffpane.Options{IgnoreCase: true})
		assert.Equal(t, "Compare (Full)    Ignore Spaces (N)    Ignore Case (Y)    Detect Moves (N)", got)
	})

	t.Run("selection compare", func(t *testing.T) {
		t.Parallel()
		sel := [2]diffpane.LineRange{{First: 0, Last: 4}, {First: 2, Last: 9}}
		got := diffpane.Status(diffpane.ScopeSelection, sel, diffpane.Options{DetectMoves: true})
		assert.Equal(t, "Compare (Sel: 1-5 vs. 3-10)    Ignore Spaces (N)    Ignore Case (N)    Detect Moves (Y)", got)
	})
}

func TestDefaultSettings(t *testing.T) {
	t.Parallel()

	s := diffpane.DefaultSettings()

	assert.Equal(t, diffpane.MainView, s.OldFileView)
	assert.True(t, s.OldFileIsFirst)
	assert.Positive(t, s.ReplaceWindow)
}

func TestPalette_MarkerColor(t *testing.T) {
	t.Parallel()

	p := diffpane.Palette{Added: "a", Removed: "r", Changed: "c", Moved: "m"}

	assert.Equal(t, diffpane.Color("a"), p.MarkerColor(diffpane.MarkerAdded))
	assert.Equal(t, diffpane.Color("r"), p.MarkerColor(diffpane.MarkerRemoved))
	assert.Equal(t, diffpane.Color("c"), p.MarkerColor(diffpane.MarkerChanged|diffpane.MarkerAdded))
	assert.Equal(t, diffpane.Color("m"), p.MarkerColor(diffpane.MarkerMoved|diffpane.MarkerChanged))
	assert.Empty(t, p.MarkerColor(0))
}

func TestCountMarkers(t *testing.T) {
	t.Parallel()

	h := memhost.New()
	h.AddBuffer(diffpane.MainView, "/a.txt", "a\nb\nc")
	h.AddBuffer(diffpane.SubView, "/b.txt", "a\nx\ny\nc")
	h.AddMarkers(diffpane.MainView, 1, diffpane.MarkerChanged)
	h.AddMarkers(diffpane.SubView, 1, diffpane.MarkerChanged)
	h.AddMarkers(diffpane.SubView, 2, diffpane.MarkerAdded|diffpane.MarkerMoved)

	c := diffpane.CountMarkers(h)

	assert.Equal(t, diffpane.MarkerCounts{Changed: 2, Added: 1, Moved: 1}, c)
	assert.Equal(t, 4, c.Total())
}
