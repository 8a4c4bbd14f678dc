package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func allTokens(src string) []Token {
	l := New(src)
	var toks []Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks
		}
	}
}

func TestWhitespaceAndComments(t *testing.T) {
	toks := allTokens("  print \n! a comment\n 5 ;")
	require.Equal(t, []Kind{IDENT, INT, PUNCT, EOF}, kinds(toks))
}

func TestIntegerAndIdentifier(t *testing.T) {
	toks := allTokens("x1 42")
	require.Len(t, toks, 3)
	require.Equal(t, IDENT, toks[0].Kind)
	require.Equal(t, "x1", toks[0].Literal)
	require.Equal(t, INT, toks[1].Kind)
	require.Equal(t, int64(42), toks[1].Int)
}

func TestBooleanAndNullLiterals(t *testing.T) {
	toks := allTokens("true false null")
	require.Equal(t, BOOL, toks[0].Kind)
	require.True(t, toks[0].Bool)
	require.Equal(t, BOOL, toks[1].Kind)
	require.False(t, toks[1].Bool)
	require.Equal(t, NULL, toks[2].Kind)
}

func TestStringLiteral(t *testing.T) {
	toks := allTokens("'hello world'")
	require.Equal(t, STRING, toks[0].Kind)
	require.Equal(t, "hello world", toks[0].Literal)
}

func TestDollarBracket(t *testing.T) {
	toks := allTokens("$[ $ [")
	require.Equal(t, "$[", toks[0].Literal)
	require.Equal(t, "$", toks[1].Literal)
	require.Equal(t, "[", toks[2].Literal)
}

func TestSingleBytePunctuation(t *testing.T) {
	toks := allTokens("<>=#+-*/%^;:,.(){}[]")
	require.Equal(t, 20, len(toks)-1) // minus EOF
	for i, lit := range []string{"<", ">", "=", "#", "+", "-", "*", "/", "%", "^", ";", ":", ",", ".", "(", ")", "{", "}", "[", "]"} {
		require.Equal(t, lit, toks[i].Literal)
	}
}

func TestEOFSpelling(t *testing.T) {
	toks := allTokens("")
	require.Equal(t, EOF, toks[0].Kind)
	require.Equal(t, "$EOF", toks[0].Spelling())
}

func TestIntegerSpelling(t *testing.T) {
	toks := allTokens("123")
	require.Equal(t, "123", toks[0].Spelling())
}

func kinds(toks []Token) []Kind {
	ks := make([]Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}
