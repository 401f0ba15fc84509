package lexer

import "dyva/internal/token"

// scanNumber scans a decimal/hex/octal/binary numeric literal per §4.1,
// including an optional leading `-` (only ever part of the literal when it
// sits directly before a digit, which scanToken has already verified) and,
// for decimal literals, an optional fractional part and `e`/`E` exponent.
// `_` digit separators are accepted anywhere within a digit run.
func (lx *Lexer) scanNumber() token.Token {
	mark := lx.cursor.Mark()
	lx.cursor.Eat('-')

	if lx.cursor.Peek() == '0' {
		if _, b1, ok := lx.cursor.Peek2(); ok {
			switch {
			case b1 == 'x' || b1 == 'X':
				lx.cursor.Bump()
				lx.cursor.Bump()
				lx.scanDigitRun(isHex)
				return lx.finishInteger(mark)
			case b1 == 'o' || b1 == 'O':
				lx.cursor.Bump()
				lx.cursor.Bump()
				lx.scanDigitRun(isOctal)
				return lx.finishInteger(mark)
			case b1 == 'b' || b1 == 'B':
				lx.cursor.Bump()
				lx.cursor.Bump()
				lx.scanDigitRun(isBinary)
				return lx.finishInteger(mark)
			}
		}
	}

	lx.scanDigitRun(isDec)
	isFloat := false

	if lx.cursor.Peek() == '.' {
		if _, b1, ok := lx.cursor.Peek2(); ok && isDec(b1) {
			isFloat = true
			lx.cursor.Bump() // .
			lx.scanDigitRun(isDec)
		}
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		if lx.exponentFollows() {
			isFloat = true
			lx.cursor.Bump() // e/E
			if !lx.cursor.Eat('+') {
				lx.cursor.Eat('-')
			}
			lx.scanDigitRun(isDec)
		}
	}

	sp := lx.cursor.SpanFrom(mark)
	tag := token.IntegerLiteral
	if isFloat {
		tag = token.FloatingPointLiteral
	}
	return token.Token{Tag: tag, Span: sp, Text: lx.textOf(sp)}
}

// exponentFollows reports whether the byte at the cursor is `e`/`E` and is
// followed by a valid exponent body: an optional sign then at least one digit.
func (lx *Lexer) exponentFollows() bool {
	if _, b1, ok := lx.cursor.Peek2(); ok {
		if isDec(b1) {
			return true
		}
		if b1 == '+' || b1 == '-' {
			if _, _, b2, ok3 := lx.cursor.Peek3(); ok3 && isDec(b2) {
				return true
			}
		}
	}
	return false
}

func (lx *Lexer) finishInteger(mark Mark) token.Token {
	sp := lx.cursor.SpanFrom(mark)
	return token.Token{Tag: token.IntegerLiteral, Span: sp, Text: lx.textOf(sp)}
}

func (lx *Lexer) scanDigitRun(pred func(byte) bool) {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if pred(b) || b == '_' {
			lx.cursor.Bump()
			continue
		}
		break
	}
}

func isBinary(b byte) bool { return b == '0' || b == '1' }
