// Package token defines lexical token tags for the dyva compiler front-end.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End), except for synthetic
//     indentation/dedentation tokens, whose spans are produced by the lexer
//     per the indentation protocol (a dedentation token's span may be empty).
//   - There are no brace tokens: block structure is carried entirely by
//     indentation/dedentation, never by punctuation.
package token
