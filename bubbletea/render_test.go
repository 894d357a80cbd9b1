package bubbletea

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestLayout(t *testing.T) {
	t.Parallel()

	plain := lipgloss.NewStyle()
	seg := func(texts ...string) []segment {
		segs := make([]segment, len(texts))
		for i, text := range texts {
			segs[i] = segment{text: text, style: plain}
		}
		return segs
	}

	tests := []struct {
		name  string
		segs  []segment
		width int
		want  string
	}{
		{name: "pads short text", segs: seg("abc"), width: 6, want: "abc   "},
		{name: "empty line is all fill", segs: nil, width: 3, want: "   "},
		{name: "tab at start fills a whole stop", segs: seg("\tx"), width: 10, want: "        x "},
		{name: "tab advances to the next stop", segs: seg("a\tb"), width: 12, want: "a       b   "},
		{name: "tab stops count across segments", segs: seg("ab", "\tc"), width: 10, want: "ab      c "},
		{name: "tab after a full stop", segs: seg("12345678\tx"), width: 18, want: "12345678        x "},
		{name: "tab is cut at the edge", segs: seg("abc\t"), width: 5, want: "abc  "},
		{name: "overflow is cut", segs: seg("hello ", "world"), width: 8, want: "hello wo"},
		{name: "wide rune that does not fit is padded", segs: seg("日本"), width: 3, want: "日 "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := layout(tt.segs, tt.width, plain)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.width, lipgloss.Width(got))
		})
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hello", truncate("hello", 10))
	assert.Equal(t, "hel", truncate("hello", 3))
	assert.Equal(t, "日", truncate("日本", 3))
}

func TestHighlightSegments(t *testing.T) {
	t.Parallel()

	base := lipgloss.NewStyle()
	hl := lipgloss.NewStyle().Bold(true)

	segs := highlightSegments("foo(bar, baz)", [][2]int{{4, 7}, {9, 12}}, base, hl)

	var texts []string
	for _, s := range segs {
		texts = append(texts, s.text)
	}
	assert.Equal(t, []string{"foo(", "bar", ", ", "baz", ")"}, texts)
	assert.Equal(t, hl, segs[1].style)
	assert.Equal(t, base, segs[2].style)
}
