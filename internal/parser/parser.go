// Package parser implements the Pratt-style expression parser and
// indentation-driven statement/declaration grammar of §4.2: it turns a
// token stream from internal/lexer into an internal/ast.Module.
package parser

import (
	"fmt"

	"dyva/internal/ast"
	"dyva/internal/diag"
	"dyva/internal/lexer"
	"dyva/internal/source"
	"dyva/internal/token"
)

// Options configures a parse, mirroring the lexer's own Options shape.
type Options struct {
	Reporter  diag.Reporter
	MaxErrors uint
}

func (o Options) enough(current uint) bool {
	return o.MaxErrors != 0 && current >= o.MaxErrors
}

// Parser holds the state of one file's parse: a small lookahead buffer
// over the lexer's token stream (the lexer itself exposes no Peek), the
// arena it inserts into, and the running error count used for MaxErrors
// cutoff.
type Parser struct {
	lx       *lexer.Lexer
	arena    *ast.Arena
	interner *source.Interner
	opts     Options
	errors   uint

	buf []token.Token
}

// New returns a Parser reading from lx into arena.
func New(lx *lexer.Lexer, arena *ast.Arena, interner *source.Interner, opts Options) *Parser {
	return &Parser{lx: lx, arena: arena, interner: interner, opts: opts}
}

// ParseFile parses one module's token stream, building either a statement
// sequence (asMain) or a declaration sequence, per §4.2/§3.3.
func ParseFile(lx *lexer.Lexer, m *ast.Module, opts Options) {
	p := New(lx, m.Arena, m.Interner, opts)
	if m.AsMain {
		m.Stmts = p.parseTopLevelStatements()
		return
	}
	m.Decls = p.parseTopLevelDeclarations()
}

// fill ensures the buffer holds at least n tokens.
func (p *Parser) fill(n int) {
	for len(p.buf) < n {
		p.buf = append(p.buf, p.lx.Next())
	}
}

func (p *Parser) peek() token.Token {
	p.fill(1)
	return p.buf[0]
}

// peekAt returns the token n positions ahead of the current one (0 is the
// current token), used where the grammar needs to look past the current
// token before committing, e.g. distinguishing a labeled call argument
// (`label: value`) from a bare one.
func (p *Parser) peekAt(n int) token.Token {
	p.fill(n + 1)
	return p.buf[n]
}

func (p *Parser) advance() token.Token {
	t := p.peek()
	p.buf = p.buf[1:]
	return t
}

func (p *Parser) at(tag token.Tag) bool { return p.peek().Tag == tag }

func (p *Parser) atEOF() bool { return p.at(token.EOF) }

// eat consumes the current token if it has tag, reporting nothing either
// way; used for optional punctuation.
func (p *Parser) eat(tag token.Tag) bool {
	if p.at(tag) {
		p.advance()
		return true
	}
	return false
}

// expect consumes the current token, requiring it to have tag; on
// mismatch it reports ParseExpected and returns the token unconsumed so
// callers can attempt resynchronization.
func (p *Parser) expect(tag token.Tag) (token.Token, bool) {
	t := p.peek()
	if t.Tag == tag {
		return p.advance(), true
	}
	p.report(diag.ParseExpected, t.Span, "expected "+tag.String()+", found "+t.Tag.String())
	return t, false
}

func (p *Parser) report(code diag.Code, sp source.Span, msg string) {
	if p.opts.enough(p.errors) {
		return
	}
	p.errors++
	diag.ReportError(p.opts.Reporter, code, sp, msg).Emit()
}

// reportWithNote is report plus one attached note, used where the
// diagnostic needs to point at a second site alongside its primary one.
func (p *Parser) reportWithNote(code diag.Code, sp source.Span, msg string, noteSite source.Span, noteMsg string) {
	if p.opts.enough(p.errors) {
		return
	}
	p.errors++
	diag.ReportError(p.opts.Reporter, code, sp, msg).WithNote(noteSite, noteMsg).Emit()
}

// indentationNoteMessage describes the indentation prefix a block was
// opened with, for the note attached to a dedent-mismatch diagnostic. n is
// the number of Indentation tokens consumed to enter the block.
func indentationNoteMessage(n int) string {
	if n == 1 {
		return "block opened with 1 column of indentation here"
	}
	return fmt.Sprintf("block opened with %d columns of indentation here", n)
}

func (p *Parser) intern(t token.Token) source.StringID {
	if p.interner == nil {
		return source.NoStringID
	}
	return p.interner.Intern(t.Text)
}

// atContextualKeyword reports whether the current token is a plain Name
// spelling word — yield is a contextual keyword rather than a reserved
// word of §6.2, so it is recognized this way instead of through token.Tag.
func (p *Parser) atContextualKeyword(word string) bool {
	t := p.peek()
	return t.Tag == token.Name && t.Text == word
}

// resyncTopLevel skips tokens until one that can start a new top-level
// construct, or EOF, a resync-to-starter recovery strategy.
func (p *Parser) resyncTopLevel() {
	for !p.atEOF() && !p.atDeclarationStart() {
		p.advance()
	}
}

func (p *Parser) atDeclarationStart() bool {
	switch p.peek().Tag {
	case token.KwLet, token.KwVar, token.KwInout, token.KwFun, token.KwSubscript,
		token.KwStruct, token.KwTrait, token.KwImport:
		return true
	default:
		return false
	}
}
