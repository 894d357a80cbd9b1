// Package lipgloss provides themes and pane styles using the Lipgloss
// styling library.
package lipgloss

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/diffpane"
)

// Compile-time interface verification.
var _ diffpane.Theme = (*Theme)(nil)

// Theme implements diffpane.Theme with Lipgloss-compatible colors.
type Theme struct {
	palette diffpane.Palette
}

// Palette returns the semantic color palette for this theme.
func (t *Theme) Palette() diffpane.Palette {
	return t.palette
}

// DefaultTheme returns the theme matching the terminal background.
func DefaultTheme() *Theme {
	if !lipgloss.HasDarkBackground() {
		return LightTheme()
	}
	return DarkTheme()
}

// DarkTheme returns a theme optimized for dark terminal backgrounds.
// Marker backgrounds are very dark so syntax colors stay readable.
func DarkTheme() *Theme {
	return &Theme{
		palette: diffpane.Palette{
			// Catppuccin Mocha
			Background: "#1e1e2e",
			Foreground: "#cdd6f4",

			Added:     "#004000",
			Removed:   "#3f0001",
			Changed:   "#3a3000",
			Moved:     "#1a2a4a",
			Padding:   "#262637",
			Highlight: "#7a5f00",

			Keyword:     "#cba6f7",
			String:      "#a6e3a1",
			Number:      "#fab387",
			Comment:     "#6c7086",
			Operator:    "#89dceb",
			Function:    "#89b4fa",
			Type:        "#f9e2af",
			Constant:    "#fab387",
			Punctuation: "#9399b2",

			UIBackground: "#313244",
			UIForeground: "#a6adc8",
			UIAccent:     "#89b4fa",
		},
	}
}

// LightTheme returns a theme optimized for light terminal backgrounds.
func LightTheme() *Theme {
	return &Theme{
		palette: diffpane.Palette{
			// Catppuccin Latte
			Background: "#eff1f5",
			Foreground: "#4c4f69",

			Added:     "#d4f4d4",
			Removed:   "#f4d4d4",
			Changed:   "#f6ecc4",
			Moved:     "#d4e2f8",
			Padding:   "#e6e9ef",
			Highlight: "#eed49f",

			Keyword:     "#8839ef",
			String:      "#40a02b",
			Number:      "#fe640b",
			Comment:     "#9ca0b0",
			Operator:    "#04a5e5",
			Function:    "#1e66f5",
			Type:        "#df8e1d",
			Constant:    "#fe640b",
			Punctuation: "#6c6f85",

			UIBackground: "#e6e9ef",
			UIForeground: "#6c6f85",
			UIAccent:     "#1e66f5",
		},
	}
}
