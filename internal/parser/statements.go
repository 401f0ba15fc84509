package parser

import (
	"dyva/internal/ast"
	"dyva/internal/diag"
	"dyva/internal/token"
)

func (p *Parser) parseTopLevelStatements() []ast.StatementID {
	var stmts []ast.StatementID
	for !p.atEOF() {
		s, ok := p.parseStatement()
		if !ok {
			p.resyncStatement()
			continue
		}
		stmts = append(stmts, s)
	}
	return stmts
}

// parseBlock parses a block body: if the next token is Indentation, a run
// of Indentation tokens (one per indentation column, §4.1), statements,
// then the matching run of Dedentation tokens; otherwise exactly one
// statement on the same line. The caller has already consumed whatever
// introduced the block (`:` or `do`).
func (p *Parser) parseBlock() ast.StatementID {
	if !p.at(token.Indentation) {
		s, ok := p.parseStatement()
		if !ok {
			return p.arena.NewBlock(&ast.Block{Site: p.peek().Span})
		}
		return p.arena.NewBlock(&ast.Block{
			Statements: []ast.StatementID{s},
			Site:       p.arena.Site(s.NodeID()),
		})
	}

	n := 0
	indentSpan := p.peek().Span
	for p.at(token.Indentation) {
		t := p.advance()
		indentSpan = indentSpan.Cover(t.Span)
		n++
	}
	site := indentSpan
	var stmts []ast.StatementID
	for !p.at(token.Dedentation) && !p.atEOF() {
		s, ok := p.parseStatement()
		if !ok {
			p.resyncStatement()
			continue
		}
		stmts = append(stmts, s)
	}
	for i := 0; i < n; i++ {
		if !p.at(token.Dedentation) {
			t := p.peek()
			p.reportWithNote(diag.ParseDedentMismatch, t.Span, "dedendation does not match the current indentation",
				indentSpan, indentationNoteMessage(n))
			break
		}
		t := p.advance()
		site = site.Cover(t.Span)
	}
	if len(stmts) > 0 {
		site = site.Cover(p.arena.Site(stmts[len(stmts)-1].NodeID()))
	}
	return p.arena.NewBlock(&ast.Block{Statements: stmts, Site: site})
}

func (p *Parser) resyncStatement() {
	for !p.atEOF() && !p.at(token.Dedentation) && !p.atStatementStart() {
		p.advance()
	}
}

func (p *Parser) atStatementStart() bool {
	switch p.peek().Tag {
	case token.KwBreak, token.KwContinue, token.KwFor, token.KwWhile, token.KwReturn,
		token.KwThrow, token.KwLet, token.KwVar, token.KwInout, token.KwFun,
		token.KwSubscript, token.KwStruct, token.KwTrait, token.KwIf, token.KwMatch, token.KwTry:
		return true
	default:
		return false
	}
}

// parseStatement parses one statement per §4.2's statement grammar.
func (p *Parser) parseStatement() (ast.StatementID, bool) {
	switch p.peek().Tag {
	case token.KwBreak:
		t := p.advance()
		return p.arena.NewBreak(&ast.Break{Site: t.Span}), true
	case token.KwContinue:
		t := p.advance()
		return p.arena.NewContinue(&ast.Continue{Site: t.Span}), true
	case token.KwFor:
		return p.parseFor()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwThrow:
		return p.parseThrow()
	case token.KwLet, token.KwVar, token.KwInout, token.KwFun, token.KwSubscript,
		token.KwStruct, token.KwTrait, token.KwImport:
		d, ok := p.parseDeclaration()
		if !ok {
			return 0, false
		}
		return p.arena.NewDeclarationStatement(&ast.DeclarationStatement{
			Declaration: d,
			Site:        p.arena.Site(d.NodeID()),
		}), true
	default:
		if p.atContextualKeyword("yield") {
			return p.parseYield()
		}
		return p.parseExpressionOrAssignment()
	}
}

func (p *Parser) parseYield() (ast.StatementID, bool) {
	kw := p.advance()
	val := p.parseExpression()
	site := kw.Span.Cover(p.arena.Site(val.NodeID()))
	return p.arena.NewYield(&ast.Yield{Value: val, Site: site}), true
}

func (p *Parser) parseReturn() (ast.StatementID, bool) {
	kw := p.advance()
	var val ast.ExpressionID
	site := kw.Span
	if p.startsExpression() {
		val = p.parseExpression()
		site = site.Cover(p.arena.Site(val.NodeID()))
	}
	return p.arena.NewReturn(&ast.Return{Value: val, Site: site}), true
}

func (p *Parser) parseThrow() (ast.StatementID, bool) {
	kw := p.advance()
	val := p.parseExpression()
	site := kw.Span.Cover(p.arena.Site(val.NodeID()))
	return p.arena.NewThrow(&ast.Throw{Value: val, Site: site}), true
}

// parseFor parses `for pattern in sequence do block`.
func (p *Parser) parseFor() (ast.StatementID, bool) {
	kw := p.advance()
	pat, ok := p.parsePattern()
	if !ok {
		return 0, false
	}
	if _, ok := p.expect(token.KwIn); !ok {
		return 0, false
	}
	seq := p.parseExpression()
	if _, ok := p.expect(token.KwDo); !ok {
		return 0, false
	}
	body := p.parseBlock()
	site := kw.Span.Cover(p.arena.Site(body.NodeID()))
	return p.arena.NewFor(&ast.For{
		Pattern:  pat,
		Sequence: seq,
		Body:     body.NodeID(),
		Site:     site,
	}), true
}

// parseWhile parses `while cond (, cond)* do block`.
func (p *Parser) parseWhile() (ast.StatementID, bool) {
	kw := p.advance()
	conds := p.parseConditionList()
	if _, ok := p.expect(token.KwDo); !ok {
		return 0, false
	}
	body := p.parseBlock()
	site := kw.Span.Cover(p.arena.Site(body.NodeID()))
	return p.arena.NewWhile(&ast.While{
		Conditions: conds,
		Body:       body.NodeID(),
		Site:       site,
	}), true
}

// parseConditionList parses a comma-separated condition chain shared by
// `if` and `while`: each entry is either a plain boolean expression or a
// `case pattern = expr` pattern match.
func (p *Parser) parseConditionList() []ast.ConditionID {
	var conds []ast.ConditionID
	for {
		conds = append(conds, p.parseCondition())
		if !p.eat(token.Comma) {
			break
		}
	}
	return conds
}

func (p *Parser) parseCondition() ast.ConditionID {
	if p.at(token.KwCase) {
		kw := p.advance()
		pat, _ := p.parsePattern()
		p.expect(token.Assign)
		expr := p.parseExpression()
		site := kw.Span.Cover(p.arena.Site(expr.NodeID()))
		return p.arena.NewCondition(&ast.Condition{Pattern: pat, Expression: expr, Site: site})
	}
	expr := p.parseExpression()
	return p.arena.NewCondition(&ast.Condition{Expression: expr, Site: p.arena.Site(expr.NodeID())})
}

// parseExpressionOrAssignment parses an expression statement, or an
// assignment if the expression is followed by `=`.
func (p *Parser) parseExpressionOrAssignment() (ast.StatementID, bool) {
	expr := p.parseExpression()
	if p.at(token.Assign) {
		p.advance()
		value := p.parseExpression()
		site := p.arena.Site(expr.NodeID()).Cover(p.arena.Site(value.NodeID()))
		return p.arena.NewAssignment(&ast.Assignment{Target: expr, Value: value, Site: site}), true
	}
	return p.arena.NewExpressionStatement(&ast.ExpressionStatement{
		Expression: expr,
		Site:       p.arena.Site(expr.NodeID()),
	}), true
}

// startsExpression reports whether the current token can begin an
// expression, used to tell a bare `return` from `return <expr>`.
func (p *Parser) startsExpression() bool {
	switch p.peek().Tag {
	case token.Dedentation, token.EOF, token.Semicolon:
		return false
	default:
		return true
	}
}
