package worddiff_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/diffpane"
	"github.com/fwojciec/diffpane/worddiff"
	"github.com/stretchr/testify/assert"
)

func TestDiffer_Diff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		old, new string
		wantOld  []diffpane.Span
		wantNew  []diffpane.Span
	}{
		{
			name:    "single word",
			old:     "hello world",
			new:     "hello universe",
			wantOld: []diffpane.Span{{Start: 6, End: 11}},
			wantNew: []diffpane.Span{{Start: 6, End: 14}},
		},
		{
			name: "identical",
			old:  "hello world",
			new:  "hello world",
		},
		{
			name:    "completely different",
			old:     "abc",
			new:     "xyz",
			wantOld: []diffpane.Span{{Start: 0, End: 3}},
			wantNew: []diffpane.Span{{Start: 0, End: 3}},
		},
		{
			name:    "old empty",
			old:     "",
			new:     "abc",
			wantNew: []diffpane.Span{{Start: 0, End: 3}},
		},
		{
			name:    "new empty",
			old:     "abc",
			new:     "",
			wantOld: []diffpane.Span{{Start: 0, End: 3}},
		},
		{
			name:    "two changes",
			old:     "x := a + b",
			new:     "x := c + d",
			wantOld: []diffpane.Span{{Start: 5, End: 6}, {Start: 9, End: 10}},
			wantNew: []diffpane.Span{{Start: 5, End: 6}, {Start: 9, End: 10}},
		},
		{
			name:    "adjacent changed tokens merge",
			old:     "call(a, b)",
			new:     "call(x; y)",
			wantOld: []diffpane.Span{{Start: 5, End: 7}, {Start: 8, End: 9}},
			wantNew: []diffpane.Span{{Start: 5, End: 7}, {Start: 8, End: 9}},
		},
		{
			name:    "unicode",
			old:     "héllo wörld",
			new:     "héllo wørld",
			wantOld: []diffpane.Span{{Start: 8, End: 10}},
			wantNew: []diffpane.Span{{Start: 8, End: 10}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gotOld, gotNew := worddiff.NewDiffer().Diff(tt.old, tt.new)
			assert.Equal(t, tt.wantOld, gotOld)
			assert.Equal(t, tt.wantNew, gotNew)
		})
	}
}

func TestDiffer_Diff_Fold(t *testing.T) {
	t.Parallel()

	d := &worddiff.Differ{Fold: true}

	gotOld, gotNew := d.Diff("Hello World", "hello world")
	assert.Nil(t, gotOld)
	assert.Nil(t, gotNew)
}

func TestDiffer_Diff_IgnoreSpaces(t *testing.T) {
	t.Parallel()

	d := &worddiff.Differ{IgnoreSpaces: true}

	gotOld, gotNew := d.Diff("a  b", "a\tb")
	assert.Nil(t, gotOld)
	assert.Nil(t, gotNew)
}

func TestDiffer_Tokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []string
	}{
		{in: "", want: nil},
		{in: " ", want: []string{" "}},
		{in: "foo_bar1 := 3.14", want: []string{"foo_bar1", " ", ":=", " ", "3.14"}},
		{in: `s := "a\"b" + 'c'`, want: []string{"s", " ", ":=", " ", `"a\"b"`, " ", "+", " ", "'c'"}},
		{in: "f(x, y);", want: []string{"f", "(", "x", ",", " ", "y", ")", ";"}},
		{in: "日本", want: []string{"日", "本"}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.in), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, worddiff.NewDiffer().Tokenize(tt.in))
		})
	}
}
