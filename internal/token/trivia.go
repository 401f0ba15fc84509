package token

import "dyva/internal/source"

// TriviaKind distinguishes the non-semantic text attached ahead of a token.
type TriviaKind uint8

const (
	// TriviaLineComment is a `#`-introduced comment running to (not including)
	// the following newline.
	TriviaLineComment TriviaKind = iota
)

// Trivia is a run of non-semantic source text preceding a token.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
