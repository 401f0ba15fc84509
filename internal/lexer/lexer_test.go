package lexer

import (
	"testing"

	"dyva/internal/source"
	"dyva/internal/token"
)

func lexAll(t *testing.T, src string) []token.Token {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.dyva", []byte(src))
	f := fs.Get(id)
	lx := New(f, Options{})

	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Tag == token.EOF {
			break
		}
	}
	return out
}

func tags(toks []token.Token) []token.Tag {
	out := make([]token.Tag, len(toks))
	for i, tok := range toks {
		out[i] = tok.Tag
	}
	return out
}

func assertTags(t *testing.T, got []token.Tag, want []token.Tag) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("tag count = %d, want %d\ngot:  %v\nwant: %v", len(got), len(want), got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("tag[%d] = %v, want %v\ngot:  %v\nwant: %v", i, got[i], want[i], got, want)
		}
	}
}

func TestLexerIdentifiersAndKeywords(t *testing.T) {
	toks := lexAll(t, "fun foo _ true false x1")
	assertTags(t, tags(toks), []token.Tag{
		token.KwFun, token.Name, token.Underscore, token.BooleanLiteral,
		token.BooleanLiteral, token.Name, token.EOF,
	})
	if toks[1].Text != "foo" {
		t.Errorf("Text = %q, want %q", toks[1].Text, "foo")
	}
}

func TestLexerBackquotedIdentifier(t *testing.T) {
	toks := lexAll(t, "`hello world`")
	assertTags(t, tags(toks), []token.Tag{token.Name, token.EOF})
	if toks[0].Text != "`hello world`" {
		t.Errorf("Text = %q", toks[0].Text)
	}
}

func TestLexerBackquotedIdentifierEmpty(t *testing.T) {
	toks := lexAll(t, "``")
	assertTags(t, tags(toks), []token.Tag{token.Error, token.EOF})
}

func TestLexerBackquotedIdentifierUnterminated(t *testing.T) {
	toks := lexAll(t, "`abc")
	assertTags(t, tags(toks), []token.Tag{token.UnterminatedBackquotedIdentifier, token.EOF})
}

func TestLexerNumericLiterals(t *testing.T) {
	tests := []struct {
		src string
		tag token.Tag
	}{
		{"123", token.IntegerLiteral},
		{"0x1F", token.IntegerLiteral},
		{"0o17", token.IntegerLiteral},
		{"0b101", token.IntegerLiteral},
		{"1_000", token.IntegerLiteral},
		{"1.5", token.FloatingPointLiteral},
		{"1e10", token.FloatingPointLiteral},
		{"1.5e-3", token.FloatingPointLiteral},
		{"-5", token.IntegerLiteral},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			toks := lexAll(t, tt.src)
			if toks[0].Tag != tt.tag {
				t.Errorf("tag = %v, want %v", toks[0].Tag, tt.tag)
			}
			if toks[0].Text != tt.src {
				t.Errorf("Text = %q, want %q", toks[0].Text, tt.src)
			}
		})
	}
}

func TestLexerTrailingDotIsSeparateToken(t *testing.T) {
	toks := lexAll(t, "1.")
	assertTags(t, tags(toks), []token.Tag{token.IntegerLiteral, token.Dot, token.EOF})
}

func TestLexerStringLiteral(t *testing.T) {
	toks := lexAll(t, `"hello \"world\""`)
	assertTags(t, tags(toks), []token.Tag{token.StringLiteral, token.EOF})
}

func TestLexerUnterminatedStringLiteral(t *testing.T) {
	toks := lexAll(t, `"hello`)
	assertTags(t, tags(toks), []token.Tag{token.UnterminatedStringLiteral, token.EOF})
}

func TestLexerOperators(t *testing.T) {
	tests := []struct {
		src string
		tag token.Tag
	}{
		{"=", token.Assign},
		{"=>", token.ThickArrow},
		{"==", token.Operator},
		{"+", token.Operator},
		{"<=", token.Operator},
		{"!", token.Operator},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			toks := lexAll(t, tt.src)
			if toks[0].Tag != tt.tag {
				t.Errorf("tag = %v, want %v", toks[0].Tag, tt.tag)
			}
		})
	}
}

func TestLexerPunctuationAndDelimiters(t *testing.T) {
	toks := lexAll(t, ",.:;@\\[]()")
	assertTags(t, tags(toks), []token.Tag{
		token.Comma, token.Dot, token.Colon, token.Semicolon, token.At,
		token.Backslash, token.LeftBracket, token.RightBracket,
		token.LeftParenthesis, token.RightParenthesis, token.EOF,
	})
}

func TestLexerLineComment(t *testing.T) {
	toks := lexAll(t, "x # comment\ny")
	assertTags(t, tags(toks), []token.Tag{token.Name, token.Name, token.EOF})
}

func TestLexerIndentationBasic(t *testing.T) {
	src := "fun f() =\n  a\n  b\n"
	toks := lexAll(t, src)
	assertTags(t, tags(toks), []token.Tag{
		token.KwFun, token.Name, token.LeftParenthesis, token.RightParenthesis, token.Assign,
		token.Indentation, token.Indentation,
		token.Name,
		token.Name,
		token.Dedentation, token.Dedentation,
		token.EOF,
	})
}

func TestLexerIndentationNested(t *testing.T) {
	src := "fun f() =\n  a\n    b\n  c\n"
	toks := lexAll(t, src)
	assertTags(t, tags(toks), []token.Tag{
		token.KwFun, token.Name, token.LeftParenthesis, token.RightParenthesis, token.Assign,
		token.Indentation, token.Indentation,
		token.Name,
		token.Indentation, token.Indentation,
		token.Name,
		token.Dedentation, token.Dedentation,
		token.Name,
		token.Dedentation, token.Dedentation,
		token.EOF,
	})
}

func TestLexerTrailingDedentsAtEOF(t *testing.T) {
	src := "fun f() =\n  a\n"
	toks := lexAll(t, src)
	last := toks[len(toks)-2]
	if last.Tag != token.Dedentation {
		t.Fatalf("expected trailing Dedentation before EOF, got %v", last.Tag)
	}
	// The 2-space prefix opens one Indentation token per column (two in
	// all), so the same number of trailing Dedentation tokens closes it.
	nDedent := 0
	for _, tok := range toks {
		if tok.Tag == token.Dedentation {
			nDedent++
		}
	}
	nIndent := 0
	for _, tok := range toks {
		if tok.Tag == token.Indentation {
			nIndent++
		}
	}
	if nDedent != nIndent {
		t.Fatalf("dedent count %d != indent count %d", nDedent, nIndent)
	}
}

func TestLexerBlankAndCommentLinesDoNotAffectIndentation(t *testing.T) {
	src := "fun f() =\n  a\n\n  # comment\n  b\n"
	toks := lexAll(t, src)
	// Blank and comment-only lines must not emit layout tokens; the two
	// statement lines share one indentation depth.
	nIndent, nDedent := 0, 0
	for _, tok := range toks {
		switch tok.Tag {
		case token.Indentation:
			nIndent++
		case token.Dedentation:
			nDedent++
		}
	}
	if nIndent != 2 {
		t.Fatalf("nIndent = %d, want 2", nIndent)
	}
	if nDedent != 2 {
		t.Fatalf("nDedent = %d, want 2", nDedent)
	}
}

func TestLexerEmptyInputProducesOnlyEOF(t *testing.T) {
	toks := lexAll(t, "")
	assertTags(t, tags(toks), []token.Tag{token.EOF})
}

func TestLexerUnevenDedentStillOneStep(t *testing.T) {
	// 2 spaces then 1 space: the new prefix (1) is still less than the
	// current depth (2), so the lexer emits exactly one Dedentation; it is
	// the parser's job (not the lexer's) to diagnose the mismatch.
	src := "fun f() =\n  a\n b\n"
	toks := lexAll(t, src)
	nDedent := 0
	for _, tok := range toks {
		if tok.Tag == token.Dedentation {
			nDedent++
		}
	}
	if nDedent != 2 {
		t.Fatalf("nDedent = %d, want 2 (1 mid-file + 1 trailing at EOF)", nDedent)
	}
}

func TestLexerPrefixOperatorAdjacency(t *testing.T) {
	// Lexically, adjacency is just absence of whitespace between tokens;
	// the parser (not the lexer) decides prefix/infix/postfix. This test
	// only asserts the tag sequence: an operator, then a name, with no
	// layout tokens.
	toks := lexAll(t, "-x")
	assertTags(t, tags(toks), []token.Tag{token.Operator, token.Name, token.EOF})
}

func TestLexerMinusNotFollowedByDigitIsOperator(t *testing.T) {
	toks := lexAll(t, "- x")
	assertTags(t, tags(toks), []token.Tag{token.Operator, token.Name, token.EOF})
}
