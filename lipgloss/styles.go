package lipgloss

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/diffpane"
)

// Styles are the lipgloss styles a two-pane front end renders with.
type Styles struct {
	palette  diffpane.Palette
	renderer *lipgloss.Renderer

	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Status    lipgloss.Style
	Message   lipgloss.Style
	Gutter    lipgloss.Style
	Padding   lipgloss.Style
	Divider   lipgloss.Style
}

// NewStyles builds styles from a theme's palette. A nil renderer uses the
// default lipgloss renderer.
func NewStyles(theme diffpane.Theme, r *lipgloss.Renderer) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	p := theme.Palette()
	return Styles{
		palette:  p,
		renderer: r,
		Tab: r.NewStyle().
			Foreground(color(p.UIForeground)).
			Background(color(p.UIBackground)),
		ActiveTab: r.NewStyle().
			Foreground(color(p.Background)).
			Background(color(p.UIAccent)).
			Bold(true),
		Status: r.NewStyle().
			Foreground(color(p.UIForeground)).
			Background(color(p.UIBackground)),
		Message: r.NewStyle().
			Foreground(color(p.UIAccent)).
			Bold(true),
		Gutter:  r.NewStyle().Foreground(color(p.Comment)),
		Padding: r.NewStyle().Background(color(p.Padding)),
		Divider: r.NewStyle().Foreground(color(p.UIBackground)),
	}
}

// Line returns the style of a line carrying markers m.
func (s Styles) Line(m diffpane.Marker) lipgloss.Style {
	style := s.renderer.NewStyle()
	if bg := s.palette.MarkerColor(m); bg != "" {
		style = style.Background(color(bg))
	}
	return style
}

// Token returns the style of a syntax token on a line carrying markers m.
func (s Styles) Token(class diffpane.TokenClass, m diffpane.Marker) lipgloss.Style {
	style := s.Line(m)
	if fg := s.palette.Color(class); fg != "" {
		style = style.Foreground(color(fg))
	}
	if class == diffpane.TokenKeyword || class == diffpane.TokenType {
		style = style.Bold(true)
	}
	return style
}

// Highlight returns the style of a word-level difference.
func (s Styles) Highlight() lipgloss.Style {
	return s.renderer.NewStyle().Background(color(s.palette.Highlight)).Bold(true)
}

func color(c diffpane.Color) lipgloss.Color {
	return lipgloss.Color(string(c))
}
