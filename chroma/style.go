package chroma

import (
	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/fwojciec/diffpane"
)

// Classify maps a chroma token type to a diffpane token class.
func Classify(tt chromalib.TokenType) diffpane.TokenClass {
	switch tt {
	// Type keywords (handled separately from other keywords)
	case chromalib.KeywordType:
		return diffpane.TokenType

	case chromalib.Keyword, chromalib.KeywordConstant, chromalib.KeywordDeclaration,
		chromalib.KeywordNamespace, chromalib.KeywordPseudo, chromalib.KeywordReserved:
		return diffpane.TokenKeyword

	case chromalib.Comment, chromalib.CommentHashbang, chromalib.CommentMultiline,
		chromalib.CommentPreproc, chromalib.CommentPreprocFile, chromalib.CommentSingle,
		chromalib.CommentSpecial:
		return diffpane.TokenComment

	case chromalib.String, chromalib.StringAffix, chromalib.StringBacktick, chromalib.StringChar,
		chromalib.StringDelimiter, chromalib.StringDoc, chromalib.StringDouble,
		chromalib.StringEscape, chromalib.StringHeredoc, chromalib.StringInterpol,
		chromalib.StringOther, chromalib.StringRegex, chromalib.StringSingle,
		chromalib.StringSymbol:
		return diffpane.TokenString

	case chromalib.Number, chromalib.NumberBin, chromalib.NumberFloat, chromalib.NumberHex,
		chromalib.NumberInteger, chromalib.NumberIntegerLong, chromalib.NumberOct:
		return diffpane.TokenNumber

	case chromalib.Operator, chromalib.OperatorWord:
		return diffpane.TokenOperator

	case chromalib.NameFunction, chromalib.NameFunctionMagic:
		return diffpane.TokenFunction

	case chromalib.NameConstant:
		return diffpane.TokenConstant

	case chromalib.Punctuation:
		return diffpane.TokenPunctuation

	default:
		return diffpane.TokenPlain
	}
}
