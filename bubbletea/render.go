package bubbletea

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/diffpane"
)

// tabWidth is the column distance between tab stops.
const tabWidth = 8

// segment is a run of line text sharing one style.
type segment struct {
	text  string
	style lipgloss.Style
}

// tokenCache keeps the syntax tokens of each buffer until its text changes.
type tokenCache struct {
	entries map[diffpane.BufferID]tokenEntry
}

type tokenEntry struct {
	text  string
	lines [][]diffpane.Token
}

func newTokenCache() *tokenCache {
	return &tokenCache{entries: make(map[diffpane.BufferID]tokenEntry)}
}

// lines returns the tokens of buf, re-tokenizing if text changed.
func (c *tokenCache) lines(t diffpane.Tokenizer, buf diffpane.BufferID, language, text string) [][]diffpane.Token {
	if t == nil || language == "" {
		return nil
	}
	if e, ok := c.entries[buf]; ok && e.text == text {
		return e.lines
	}
	lines := t.TokenizeLines(language, text)
	c.entries[buf] = tokenEntry{text: text, lines: lines}
	return lines
}

// renderPane renders the tab bar and rows content rows of view, each
// exactly width cells wide.
func (m Model) renderPane(view diffpane.ViewID, width, rows int) []string {
	out := make([]string, 0, rows+1)
	out = append(out, m.renderTabs(view, width))

	buf := m.host.Active(view)
	if buf == diffpane.NoBuffer {
		out = append(out, layout([]segment{{text: "(empty)", style: m.styles.Gutter}}, width, m.styles.Line(0)))
		for len(out) < rows+1 {
			out = append(out, strings.Repeat(" ", width))
		}
		return out
	}

	count := m.host.LineCount(view)
	gutterWidth := len(strconv.Itoa(count)) + 2
	textWidth := max(width-gutterWidth, 1)
	tokens := m.tokens.lines(m.tokenizer, buf, m.host.Language(buf), m.host.Text(buf))
	focused := m.host.CurrentView() == view
	caret := m.host.CaretLine(view)
	sel, hasSel := m.host.Selection(view)

	first := m.host.FirstVisibleLine(view)
	last := first + rows
	row := 0
	for n := 0; n < count && row < last; n++ {
		if m.host.IsHidden(view, n) {
			continue
		}
		for range m.host.Padding(view, n) {
			if row >= first && row < last {
				out = append(out, m.styles.Padding.Render(strings.Repeat(" ", width)))
			}
			row++
		}
		if row >= last {
			break
		}
		if row >= first {
			mark := " "
			switch {
			case focused && n == caret:
				mark = "▸"
			case hasSel && n >= sel.First && n <= sel.Last:
				mark = "┃"
			}
			gutter := m.styles.Gutter.Render(fmt.Sprintf("%*d%s ", gutterWidth-2, n+1, mark))
			var lineTokens []diffpane.Token
			if n < len(tokens) {
				lineTokens = tokens[n]
			}
			out = append(out, gutter+m.renderLine(view, n, lineTokens, textWidth))
		}
		row++
	}

	for len(out) < rows+1 {
		out = append(out, strings.Repeat(" ", width))
	}
	return out
}

// renderLine styles one document line: marker background, word-level
// highlights when present, syntax colors otherwise.
func (m Model) renderLine(view diffpane.ViewID, n int, tokens []diffpane.Token, width int) string {
	markers := m.host.Markers(view, n) & diffpane.MarkerMaskLine
	text := m.host.LineText(view, n)
	fill := m.styles.Line(markers)

	var segs []segment
	switch indicators := m.host.Indicators(view, n); {
	case len(indicators) > 0:
		segs = highlightSegments(text, indicators, fill, m.styles.Highlight())
	case len(tokens) > 0:
		for _, tok := range tokens {
			segs = append(segs, segment{text: tok.Text, style: m.styles.Token(tok.Class, markers)})
		}
	default:
		segs = []segment{{text: text, style: fill}}
	}
	return layout(segs, width, fill)
}

// highlightSegments splits text at the byte ranges of indicators.
func highlightSegments(text string, indicators [][2]int, base, highlight lipgloss.Style) []segment {
	var segs []segment
	pos := 0
	for _, r := range indicators {
		start, end := min(max(r[0], pos), len(text)), min(r[1], len(text))
		if start > pos {
			segs = append(segs, segment{text: text[pos:start], style: base})
		}
		if end > start {
			segs = append(segs, segment{text: text[start:end], style: highlight})
			pos = end
		}
	}
	if pos < len(text) {
		segs = append(segs, segment{text: text[pos:], style: base})
	}
	return segs
}

// layout renders segments into exactly width cells. Tabs advance to the
// next multiple of tabWidth, counted across segments; overflow is cut and
// the rest padded with fill.
func layout(segs []segment, width int, fill lipgloss.Style) string {
	var b strings.Builder
	col := 0
	full := false
	for _, s := range segs {
		var part strings.Builder
		for _, r := range s.text {
			if r == '\t' {
				stop := min((col/tabWidth+1)*tabWidth, width)
				part.WriteString(strings.Repeat(" ", stop-col))
				col = stop
			} else {
				w := lipgloss.Width(string(r))
				if col+w > width {
					full = true
					break
				}
				part.WriteRune(r)
				col += w
			}
			if col == width {
				full = true
				break
			}
		}
		if part.Len() > 0 {
			b.WriteString(s.style.Render(part.String()))
		}
		if full {
			break
		}
	}
	if col < width {
		b.WriteString(fill.Render(strings.Repeat(" ", width-col)))
	}
	return b.String()
}

// renderTabs renders the tab bar of view.
func (m Model) renderTabs(view diffpane.ViewID, width int) string {
	active := m.host.Active(view)
	var segs []segment
	for _, buf := range m.host.Tabs(view) {
		label := m.host.TabLabel(buf)
		if m.host.IsModified(buf) {
			label += " *"
		}
		style := m.styles.Tab
		if buf == active {
			style = m.styles.ActiveTab
		}
		segs = append(segs, segment{text: " " + label + " ", style: style})
	}
	return layout(segs, width, m.styles.Tab)
}

// truncate cuts s to at most width cells.
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		w := lipgloss.Width(string(r))
		if col+w > width {
			break
		}
		b.WriteRune(r)
		col += w
	}
	return b.String()
}
