// Package lexer turns minilang source text into a stream of tokens.
//
// The lexer is deliberately minimal: it knows nothing about grammar, only
// about how to carve the next token off the front of the source. The parser
// asks for one token at a time and decides what to do with it.
package lexer

import "fmt"

// Kind identifies the category of a Token.
type Kind int

const (
	EOF     Kind = iota // end of input
	INT                 // integer literal, e.g. 42
	BOOL                // true / false
	NULL                // null
	IDENT               // identifier or keyword, e.g. x, var, if
	STRING              // 'quoted text'
	PUNCT               // a punctuation lexeme: ; ( ) . [ ] { } , : = # < > + - * / % ^ $ $[
)

// Token is a single lexical token, produced on demand by Lexer.Next.
//
// Literal carries the source spelling for IDENT and PUNCT tokens, and the
// interior text (no quotes) for STRING. Int and Bool carry the
// decoded value for INT and BOOL tokens respectively.
type Token struct {
	Kind    Kind
	Literal string
	Int     int64
	Bool    bool
	Line    int
	Col     int
}

// Spelling renders a token the way error messages quote it: integers as
// decimal text, end-of-input as the literal `$EOF`, everything else as its
// source spelling.
func (t Token) Spelling() string {
	switch t.Kind {
	case EOF:
		return "$EOF"
	case INT:
		return fmt.Sprintf("%d", t.Int)
	default:
		return t.Literal
	}
}
