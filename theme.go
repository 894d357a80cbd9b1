package diffpane

// Color is a terminal color, either a hex string or an ANSI index.
type Color string

// Palette holds the colors a front end paints a comparison with.
type Palette struct {
	Background Color
	Foreground Color

	// Line markers
	Added   Color
	Removed Color
	Changed Color
	Moved   Color
	Padding Color
	// Word-level highlight inside changed lines
	Highlight Color

	// Syntax
	Keyword     Color
	String      Color
	Number      Color
	Comment     Color
	Operator    Color
	Function    Color
	Type        Color
	Constant    Color
	Punctuation Color

	// UI
	UIBackground Color
	UIForeground Color
	UIAccent     Color
}

// MarkerColor returns the background for a line carrying m. The most
// specific marker wins: moved, then changed, then added or removed.
func (p Palette) MarkerColor(m Marker) Color {
	switch {
	case m&MarkerMoved != 0:
		return p.Moved
	case m&MarkerChanged != 0:
		return p.Changed
	case m&MarkerAdded != 0:
		return p.Added
	case m&MarkerRemoved != 0:
		return p.Removed
	default:
		return ""
	}
}

// Theme provides a palette.
type Theme interface {
	Palette() Palette
}

// TokenClass is the syntactic category of a highlighted token.
type TokenClass int

// Token classes.
const (
	TokenPlain TokenClass = iota
	TokenKeyword
	TokenType
	TokenComment
	TokenString
	TokenNumber
	TokenOperator
	TokenFunction
	TokenConstant
	TokenPunctuation
)

// Token is a run of text sharing one class.
type Token struct {
	Text  string
	Class TokenClass
}

// Tokenizer splits source into per-line syntax tokens.
type Tokenizer interface {
	// TokenizeLines returns the tokens of each line of source, or nil if
	// language is not supported.
	TokenizeLines(language, source string) [][]Token
}

// Color returns the palette color for class, empty for plain text.
func (p Palette) Color(class TokenClass) Color {
	switch class {
	case TokenKeyword:
		return p.Keyword
	case TokenType:
		return p.Type
	case TokenComment:
		return p.Comment
	case TokenString:
		return p.String
	case TokenNumber:
		return p.Number
	case TokenOperator:
		return p.Operator
	case TokenFunction:
		return p.Function
	case TokenConstant:
		return p.Constant
	case TokenPunctuation:
		return p.Punctuation
	default:
		return ""
	}
}
