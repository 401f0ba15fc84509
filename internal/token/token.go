package token

import "dyva/internal/source"

// Token is a single lexical unit: a tag paired with its source span.
type Token struct {
	Tag     Tag
	Span    source.Span
	Text    string
	Leading []Trivia

	// SpaceBefore records whether at least one space or tab byte separated
	// this token from whatever came before it on the same line. The parser
	// uses it to tell infix from prefix/postfix operators (§4.2): layout
	// tokens and the first token on a line carry no meaningful adjacency and
	// always report false.
	SpaceBefore bool
}

// IsLiteral reports whether the token introduces a literal expression.
func (t Token) IsLiteral() bool { return t.Tag.IsLiteral() }

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool { return t.Tag.IsKeyword() }

// IsName reports whether the token is an identifier (including `` `...` ``
// backquoted identifiers, which the lexer also tags Name).
func (t Token) IsName() bool { return t.Tag == Name }
