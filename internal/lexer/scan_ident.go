package lexer

import (
	"dyva/internal/diag"
	"dyva/internal/token"
)

// scanIdentOrKeyword scans a letter/underscore-led identifier, resolves it
// against the keyword table, and special-cases the lone `_` wildcard.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	mark := lx.cursor.Mark()
	for !lx.cursor.EOF() && isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(mark)
	text := lx.textOf(sp)

	if text == "_" {
		return token.Token{Tag: token.Underscore, Span: sp, Text: text}
	}
	if tag, ok := token.LookupKeyword(text); ok {
		return token.Token{Tag: tag, Span: sp, Text: text}
	}
	return token.Token{Tag: token.Name, Span: sp, Text: text}
}

// scanBackquotedIdentifier scans `` `...` ``. An empty body or a missing
// closing backquote is reported and tagged accordingly; the token text is
// the whole spelling, backquotes included.
func (lx *Lexer) scanBackquotedIdentifier() token.Token {
	mark := lx.cursor.Mark()
	lx.cursor.Bump() // opening `

	bodyStart := lx.cursor.Off
	for !lx.cursor.EOF() && lx.cursor.Peek() != '`' && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	bodyEnd := lx.cursor.Off

	if lx.cursor.EOF() || lx.cursor.Peek() != '`' {
		sp := lx.cursor.SpanFrom(mark)
		lx.report(diag.LexUnterminatedBackquoted, sp, "unterminated backquoted identifier")
		return token.Token{Tag: token.UnterminatedBackquotedIdentifier, Span: sp, Text: lx.textOf(sp)}
	}
	lx.cursor.Bump() // closing `
	sp := lx.cursor.SpanFrom(mark)

	if bodyStart == bodyEnd {
		lx.report(diag.LexError, sp, "backquoted identifier cannot be empty")
		return token.Token{Tag: token.Error, Span: sp, Text: lx.textOf(sp)}
	}
	return token.Token{Tag: token.Name, Span: sp, Text: lx.textOf(sp)}
}
