package chroma_test

import (
	"testing"

	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/fwojciec/diffpane"
	"github.com/fwojciec/diffpane/chroma"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   chromalib.TokenType
		want diffpane.TokenClass
	}{
		{name: "type keyword", in: chromalib.KeywordType, want: diffpane.TokenType},
		{name: "keyword", in: chromalib.KeywordDeclaration, want: diffpane.TokenKeyword},
		{name: "comment", in: chromalib.CommentSingle, want: diffpane.TokenComment},
		{name: "string", in: chromalib.StringDouble, want: diffpane.TokenString},
		{name: "number", in: chromalib.NumberHex, want: diffpane.TokenNumber},
		{name: "operator", in: chromalib.OperatorWord, want: diffpane.TokenOperator},
		{name: "function", in: chromalib.NameFunction, want: diffpane.TokenFunction},
		{name: "constant", in: chromalib.NameConstant, want: diffpane.TokenConstant},
		{name: "punctuation", in: chromalib.Punctuation, want: diffpane.TokenPunctuation},
		{name: "plain name", in: chromalib.Name, want: diffpane.TokenPlain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, chroma.Classify(tt.in))
		})
	}
}
