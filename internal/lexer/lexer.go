// Package lexer turns source text into a token stream, including the
// synthetic indentation/dedentation layout tokens described in §4.1.
package lexer

import (
	"dyva/internal/source"
	"dyva/internal/token"
)

// Lexer produces tokens one at a time from a single source file. It is not
// safe for concurrent use.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options

	// queue holds synthetic layout tokens (and, at EOF, the final EOF token)
	// waiting to be handed out before the scanner resumes.
	queue []token.Token

	// indent is the current logical indentation depth I of §4.1: the number
	// of whitespace characters measured at the start of the most recently
	// seen non-blank, non-comment line.
	indent int

	// atLineStart is true when the cursor sits just after a newline (or at
	// the very start of the file) and the indentation protocol has not yet
	// run for that line.
	atLineStart bool

	// hold accumulates leading trivia (line comments) for the next real
	// token returned.
	hold []token.Trivia

	eofDedentsEmitted bool
}

// New creates a Lexer over f.
func New(f *source.File, opts Options) *Lexer {
	return &Lexer{
		file:        f,
		cursor:      NewCursor(f),
		opts:        opts,
		atLineStart: true,
	}
}

// Next returns the next token, including synthetic layout tokens and a
// final EOF token with I trailing Dedentation tokens ahead of it.
func (lx *Lexer) Next() token.Token {
	for {
		if len(lx.queue) > 0 {
			t := lx.queue[0]
			lx.queue = lx.queue[1:]
			return t
		}

		if lx.atLineStart {
			if lx.cursor.EOF() {
				if !lx.eofDedentsEmitted {
					lx.eofDedentsEmitted = true
					lx.emitDedents(lx.indent)
					lx.indent = 0
					if len(lx.queue) > 0 {
						continue
					}
				}
				return token.Token{Tag: token.EOF, Span: lx.emptySpan()}
			}
			lx.scanLineStart()
			continue
		}

		atLineEnd, hadSpace := lx.skipIntralineTrivia()
		if atLineEnd {
			lx.atLineStart = true
			continue
		}

		t := lx.scanToken()
		t.Leading = lx.hold
		t.SpaceBefore = hadSpace
		lx.hold = nil
		return t
	}
}

// emptySpan returns a zero-width span at the cursor's current position.
func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// emitDedents pushes n Dedentation tokens, each an empty span at the
// current cursor position, onto the queue.
func (lx *Lexer) emitDedents(n int) {
	sp := lx.emptySpan()
	for i := 0; i < n; i++ {
		lx.queue = append(lx.queue, token.Token{Tag: token.Dedentation, Span: sp})
	}
}

// scanLineStart implements the indentation protocol at the start of a
// logical line: skip blank/comment-only lines, then measure the new
// indentation prefix and emit the matching Indentation/Dedentation run.
func (lx *Lexer) scanLineStart() {
	for {
		mark := lx.cursor.Mark()
		var cols []source.Span
		for !lx.cursor.EOF() {
			b := lx.cursor.Peek()
			if b == ' ' || b == '\t' {
				start := lx.cursor.Off
				lx.cursor.Bump()
				cols = append(cols, source.Span{File: lx.file.ID, Start: start, End: lx.cursor.Off})
				continue
			}
			break
		}

		if lx.cursor.EOF() {
			lx.cursor.Reset(mark)
			return
		}

		b := lx.cursor.Peek()
		if b == '\n' {
			lx.cursor.Bump()
			continue
		}
		if b == '\r' {
			lx.cursor.Bump()
			lx.cursor.Eat('\n')
			continue
		}
		if b == '#' {
			lx.skipLineComment()
			if lx.cursor.EOF() {
				return
			}
			lx.cursor.Eat('\r')
			lx.cursor.Eat('\n')
			continue
		}

		// Real content: apply the measured prefix against the current depth.
		n := len(cols)
		switch {
		case n > lx.indent:
			for _, sp := range cols[lx.indent:] {
				lx.queue = append(lx.queue, token.Token{Tag: token.Indentation, Span: sp})
			}
		case n < lx.indent:
			lx.emitDedents(lx.indent - n)
		}
		lx.indent = n
		lx.atLineStart = false
		return
	}
}

// skipLineComment consumes a `#` comment up to (excluding) the line break.
func (lx *Lexer) skipLineComment() {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' && lx.cursor.Peek() != '\r' {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaLineComment, Span: sp, Text: lx.textOf(sp)})
}

// skipIntralineTrivia consumes spaces, tabs, and `#` comments within the
// current line. It reports whether a newline or EOF was reached, meaning
// the caller should re-enter the indentation protocol, and whether any
// space or tab byte was consumed directly before the next real token (used
// to mark that token's SpaceBefore for §4.2's whitespace-sensitive operator
// rules).
func (lx *Lexer) skipIntralineTrivia() (atLineEnd, hadSpace bool) {
	for {
		if lx.cursor.EOF() {
			return true, hadSpace
		}
		switch b := lx.cursor.Peek(); {
		case b == ' ' || b == '\t':
			lx.cursor.Bump()
			hadSpace = true
		case b == '\r':
			lx.cursor.Bump()
			lx.cursor.Eat('\n')
			return true, hadSpace
		case b == '\n':
			lx.cursor.Bump()
			return true, hadSpace
		case b == '#':
			lx.skipLineComment()
			hadSpace = true
		default:
			return false, hadSpace
		}
	}
}

func (lx *Lexer) textOf(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
