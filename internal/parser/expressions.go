package parser

import (
	"dyva/internal/ast"
	"dyva/internal/diag"
	"dyva/internal/token"
)

// parseExpression parses a full expression: the operator chain over
// unary operands. The operator alphabet of §6.3 is treated as a single,
// flat, left-associative precedence level — dyva's `infix`/`prefix`
// keywords imply a user-declarable precedence table that would need a
// runtime-extensible grammar to honor in full, which this parser does not
// attempt (an explicit simplification, noted alongside the others in
// internal/lower).
func (p *Parser) parseExpression() ast.ExpressionID {
	lhs := p.parseUnary()
	for p.at(token.Operator) && p.infixFollows() {
		op := p.advance()
		rhs := p.parseUnary()
		lhs = p.binaryCall(lhs, op, rhs)
	}
	return lhs
}

// infixFollows reports whether the operator token under the cursor is
// surrounded by whitespace on both sides and so should be read as an infix
// operator (§4.2.2). An operator adjacent to an operand on one side only is
// prefix or postfix, not infix (§8).
func (p *Parser) infixFollows() bool {
	op := p.peek()
	if !op.SpaceBefore {
		return false
	}
	return p.peekAt(1).SpaceBefore
}

func (p *Parser) binaryCall(lhs ast.ExpressionID, op token.Token, rhs ast.ExpressionID) ast.ExpressionID {
	site := p.arena.Site(lhs.NodeID()).Cover(p.arena.Site(rhs.NodeID()))
	callee := p.arena.NewName(&ast.Name{
		Qualification: lhs,
		Identifier:    p.interner.Intern(op.Text),
		IsOperator:    true,
		Site:          op.Span,
	})
	return p.arena.NewCall(&ast.Call{
		Callee: callee,
		Args:   []ast.Argument{{Value: rhs}},
		Style:  ast.CallParenthesized,
		Site:   site,
	})
}

// parseUnary handles a leading operator as a prefix call; dyva has no
// separate unary grammar, so `-x` desugars to the same name-call shape as
// a binary operator, just unqualified.
func (p *Parser) parseUnary() ast.ExpressionID {
	if p.at(token.Operator) {
		op := p.advance()
		if p.peek().SpaceBefore {
			p.report(diag.ParseUnaryOperatorSplit, p.peek().Span,
				"unary operator '"+op.Text+"' cannot be separated from its operand")
		}
		operand := p.parseUnary()
		site := op.Span.Cover(p.arena.Site(operand.NodeID()))
		callee := p.arena.NewName(&ast.Name{
			Identifier: p.interner.Intern(op.Text),
			IsOperator: true,
			Site:       op.Span,
		})
		return p.arena.NewCall(&ast.Call{
			Callee: callee,
			Args:   []ast.Argument{{Value: operand}},
			Style:  ast.CallParenthesized,
			Site:   site,
		})
	}
	return p.parsePostfix(p.parsePrimary())
}

func (p *Parser) parsePostfix(lhs ast.ExpressionID) ast.ExpressionID {
	for {
		switch p.peek().Tag {
		case token.Dot:
			p.advance()
			identTok := p.advance()
			ident := p.interner.Intern(identTok.Text)
			site := p.arena.Site(lhs.NodeID()).Cover(identTok.Span)
			lhs = p.arena.NewName(&ast.Name{
				Qualification: lhs,
				Identifier:    ident,
				IsOperator:    identTok.Tag == token.Operator,
				Site:          site,
			})
		case token.LeftParenthesis:
			lhs = p.parseCall(lhs, token.LeftParenthesis, token.RightParenthesis, ast.CallParenthesized)
		case token.LeftBracket:
			lhs = p.parseCall(lhs, token.LeftBracket, token.RightBracket, ast.CallBracketed)
		case token.KwIs:
			p.advance()
			ty := p.parsePostfix(p.parsePrimary())
			site := p.arena.Site(lhs.NodeID()).Cover(p.arena.Site(ty.NodeID()))
			lhs = p.arena.NewTypeTest(&ast.TypeTest{Operand: lhs, Type: ty, Site: site})
		case token.Operator:
			// An operator with no whitespace before it is adjacent to lhs
			// only on the left, so it binds as postfix (§4.2.4), not infix.
			// One with whitespace before it belongs to the caller: either an
			// infix chain (parseExpression) or the start of a new prefix
			// operand the caller will parse next.
			if p.peek().SpaceBefore {
				return lhs
			}
			lhs = p.postfixCall(lhs, p.advance())
		default:
			return lhs
		}
	}
}

// postfixCall builds the name-call shape for a postfix operator applied to
// lhs, the compound expression it follows with no separating whitespace.
func (p *Parser) postfixCall(lhs ast.ExpressionID, op token.Token) ast.ExpressionID {
	site := p.arena.Site(lhs.NodeID()).Cover(op.Span)
	callee := p.arena.NewName(&ast.Name{
		Qualification: lhs,
		Identifier:    p.interner.Intern(op.Text),
		IsOperator:    true,
		Site:          op.Span,
	})
	return p.arena.NewCall(&ast.Call{
		Callee: callee,
		Style:  ast.CallParenthesized,
		Site:   site,
	})
}

func (p *Parser) parseCall(callee ast.ExpressionID, open, close token.Tag, style ast.CallStyle) ast.ExpressionID {
	p.advance() // open
	var args []ast.Argument
	for !p.at(close) && !p.atEOF() {
		if len(args) > 0 {
			if !p.eat(token.Comma) {
				break
			}
		}
		args = append(args, p.parseArgument())
	}
	closeTok, _ := p.expect(close)
	site := p.arena.Site(callee.NodeID()).Cover(closeTok.Span)
	return p.arena.NewCall(&ast.Call{Callee: callee, Args: args, Style: style, Site: site})
}

// parseArgument parses one call argument, `label: value` or a bare value.
func (p *Parser) parseArgument() ast.Argument {
	if p.peek().Tag == token.Name && p.peekAt(1).Tag == token.Colon {
		labelTok := p.advance()
		p.advance() // ':'
		return ast.Argument{Label: p.interner.Intern(labelTok.Text), Value: p.parseExpression()}
	}
	return ast.Argument{Value: p.parseExpression()}
}

func (p *Parser) parsePrimary() ast.ExpressionID {
	t := p.peek()
	switch t.Tag {
	case token.IntegerLiteral:
		p.advance()
		return p.arena.NewIntegerLiteral(&ast.IntegerLiteral{Text: t.Text, Site: t.Span})
	case token.FloatingPointLiteral:
		p.advance()
		return p.arena.NewFloatLiteral(&ast.FloatLiteral{Text: t.Text, Site: t.Span})
	case token.StringLiteral:
		p.advance()
		return p.arena.NewStringLiteral(&ast.StringLiteral{Value: unescapeString(t.Text), Site: t.Span})
	case token.BooleanLiteral:
		p.advance()
		return p.arena.NewBoolLiteral(&ast.BoolLiteral{Value: t.Text == "true", Site: t.Span})
	case token.Name:
		p.advance()
		return p.arena.NewName(&ast.Name{Identifier: p.interner.Intern(t.Text), Site: t.Span})
	case token.LeftParenthesis:
		return p.parseParenOrTuple()
	case token.LeftBracket:
		return p.parseBracketLiteral()
	case token.Backslash:
		return p.parseLambda()
	case token.KwIf:
		return p.parseConditionalExpr()
	case token.KwMatch:
		return p.parseMatchExpr()
	case token.KwTry:
		return p.parseTryExpr()
	default:
		p.report(diag.ParseUnexpectedToken, t.Span, "expected an expression, found "+t.Tag.String())
		p.advance()
		return p.arena.NewBoolLiteral(&ast.BoolLiteral{Value: false, Site: t.Span})
	}
}

// unescapeString strips the surrounding quotes of a raw string-literal
// spelling and resolves the minimal escape set of §4.1 (`\"`, `\\`).
func unescapeString(raw string) string {
	if len(raw) < 2 {
		return ""
	}
	body := raw[1 : len(raw)-1]
	out := make([]byte, 0, len(body))
	for i := 0; i < len(body); i++ {
		if body[i] == '\\' && i+1 < len(body) && (body[i+1] == '"' || body[i+1] == '\\') {
			i++
		}
		out = append(out, body[i])
	}
	return string(out)
}

// parseParenOrTuple parses a `(...)` group. A single unlabeled element
// with no trailing comma is plain grouping and returns the inner
// expression unwrapped; anything else (multiple elements, or an explicit
// label) builds a TupleLiteral.
func (p *Parser) parseParenOrTuple() ast.ExpressionID {
	open := p.advance()
	if p.at(token.RightParenthesis) {
		close := p.advance()
		return p.arena.NewTupleLiteral(&ast.TupleLiteral{Site: open.Span.Cover(close.Span)})
	}
	var elems []ast.TupleElement
	trailingComma := false
	for {
		elems = append(elems, p.parseTupleElement())
		if !p.eat(token.Comma) {
			break
		}
		if p.at(token.RightParenthesis) {
			trailingComma = true
			break
		}
	}
	close, _ := p.expect(token.RightParenthesis)
	site := open.Span.Cover(close.Span)
	if len(elems) == 1 && elems[0].Label == 0 && !trailingComma {
		return elems[0].Value
	}
	return p.arena.NewTupleLiteral(&ast.TupleLiteral{Elements: elems, Site: site})
}

func (p *Parser) parseTupleElement() ast.TupleElement {
	if p.peek().Tag == token.Name && p.peekAt(1).Tag == token.Colon {
		labelTok := p.advance()
		p.advance()
		return ast.TupleElement{Label: p.interner.Intern(labelTok.Text), Value: p.parseExpression()}
	}
	return ast.TupleElement{Value: p.parseExpression()}
}

// parseBracketLiteral disambiguates `[...]` between an array and a
// dictionary literal: `[:]` is the empty dictionary, and a `:` following
// the first element's value marks every subsequent entry as a dictionary
// entry too.
func (p *Parser) parseBracketLiteral() ast.ExpressionID {
	open := p.advance()
	if p.at(token.Colon) {
		p.advance()
		close, _ := p.expect(token.RightBracket)
		return p.arena.NewDictionaryLiteral(&ast.DictionaryLiteral{Site: open.Span.Cover(close.Span)})
	}
	if p.at(token.RightBracket) {
		close := p.advance()
		return p.arena.NewArrayLiteral(&ast.ArrayLiteral{Site: open.Span.Cover(close.Span)})
	}

	first := p.parseExpression()
	if p.at(token.Colon) {
		p.advance()
		val := p.parseExpression()
		entries := []ast.DictionaryEntry{{Key: first, Value: val}}
		for p.eat(token.Comma) {
			if p.at(token.RightBracket) {
				break
			}
			k := p.parseExpression()
			p.expect(token.Colon)
			v := p.parseExpression()
			entries = append(entries, ast.DictionaryEntry{Key: k, Value: v})
		}
		close, _ := p.expect(token.RightBracket)
		return p.arena.NewDictionaryLiteral(&ast.DictionaryLiteral{
			Entries: entries,
			Site:    open.Span.Cover(close.Span),
		})
	}

	elems := []ast.ExpressionID{first}
	for p.eat(token.Comma) {
		if p.at(token.RightBracket) {
			break
		}
		elems = append(elems, p.parseExpression())
	}
	close, _ := p.expect(token.RightBracket)
	return p.arena.NewArrayLiteral(&ast.ArrayLiteral{Elements: elems, Site: open.Span.Cover(close.Span)})
}

// parseLambda parses `\(params) => body` or the single-parameter shorthand
// `\x => body`.
func (p *Parser) parseLambda() ast.ExpressionID {
	backslash := p.advance()
	var params []ast.ParameterID
	if p.at(token.LeftParenthesis) {
		list, _ := p.parseParameterList()
		params = list
	} else {
		nameTok, ok := p.expect(token.Name)
		if ok {
			params = append(params, p.arena.NewParameter(&ast.Parameter{
				Identifier: p.interner.Intern(nameTok.Text),
				Site:       nameTok.Span,
			}))
		}
	}
	p.expect(token.ThickArrow)
	body := p.parseExpression()
	site := backslash.Span.Cover(p.arena.Site(body.NodeID()))
	return p.arena.NewLambda(&ast.Lambda{Params: params, Body: body.NodeID(), Site: site})
}

// parseConditionalExpr parses `if cond(, cond)* do block [else ...]`.
func (p *Parser) parseConditionalExpr() ast.ExpressionID {
	kw := p.advance()
	conds := p.parseConditionList()
	p.expect(token.KwDo)
	thenBlk := p.parseBlock()
	site := kw.Span.Cover(p.arena.Site(thenBlk.NodeID()))

	var elseID ast.ElseID
	if p.at(token.KwElse) {
		elseKw := p.advance()
		var elseNode ast.NodeID
		var elseSite = elseKw.Span
		if p.at(token.KwIf) {
			nested := p.parseConditionalExpr()
			elseNode = nested.NodeID()
		} else {
			p.expect(token.Colon)
			blk := p.parseBlock()
			elseNode = blk.NodeID()
		}
		elseSite = elseSite.Cover(p.arena.Site(elseNode))
		elseID = p.arena.NewElse(&ast.Else{Block: elseNode, Site: elseSite})
		site = site.Cover(elseSite)
	}

	return p.arena.NewConditional(&ast.Conditional{
		Conditions: conds,
		Then:       thenBlk.NodeID(),
		Else:       elseID,
		Site:       site,
	})
}

// parseMatchExpr parses `match scrutinee do` followed by an indented run
// of `case pattern [where guard] do body` entries.
func (p *Parser) parseMatchExpr() ast.ExpressionID {
	kw := p.advance()
	scrutinee := p.parseExpression()
	p.expect(token.KwDo)

	n := 0
	indentSpan := p.peek().Span
	for p.at(token.Indentation) {
		t := p.advance()
		indentSpan = indentSpan.Cover(t.Span)
		n++
	}
	var cases []ast.NodeID
	for p.at(token.KwCase) {
		cases = append(cases, p.parseMatchCase())
	}
	site := kw.Span
	for i := 0; i < n; i++ {
		if !p.at(token.Dedentation) {
			t := p.peek()
			p.reportWithNote(diag.ParseDedentMismatch, t.Span, "dedendation does not match the current indentation",
				indentSpan, indentationNoteMessage(n))
			break
		}
		site = site.Cover(p.advance().Span)
	}
	return p.arena.NewMatch(&ast.Match{Scrutinee: scrutinee, Cases: cases, Site: site})
}

func (p *Parser) parseMatchCase() ast.NodeID {
	kw := p.advance()
	pat, _ := p.parsePattern()
	var guard ast.ExpressionID
	if p.at(token.KwWhere) {
		p.advance()
		guard = p.parseExpression()
	}
	p.expect(token.KwDo)
	body := p.parseBlock()
	site := kw.Span.Cover(p.arena.Site(body.NodeID()))
	return p.arena.NewMatchCase(&ast.MatchCase{Pattern: pat, Guard: guard, Body: body.NodeID(), Site: site})
}

// parseTryExpr parses `try:` block followed by zero or more
// `catch pattern do body` clauses.
func (p *Parser) parseTryExpr() ast.ExpressionID {
	kw := p.advance()
	p.expect(token.Colon)
	body := p.parseBlock()
	site := kw.Span.Cover(p.arena.Site(body.NodeID()))

	var catches []ast.CatchClause
	for p.at(token.KwCatch) {
		p.advance()
		pat, _ := p.parsePattern()
		p.expect(token.KwDo)
		cbody := p.parseBlock()
		site = site.Cover(p.arena.Site(cbody.NodeID()))
		catches = append(catches, ast.CatchClause{Pattern: pat, Body: cbody.NodeID()})
	}

	return p.arena.NewTry(&ast.Try{Body: body.NodeID(), Catches: catches, Site: site})
}
