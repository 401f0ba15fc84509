package parser

import (
	"dyva/internal/ast"
	"dyva/internal/diag"
	"dyva/internal/source"
	"dyva/internal/token"
)

func (p *Parser) parseTopLevelDeclarations() []ast.DeclarationID {
	var decls []ast.DeclarationID
	for !p.atEOF() {
		d, ok := p.parseDeclaration()
		if !ok {
			p.resyncTopLevel()
			continue
		}
		decls = append(decls, d)
	}
	return decls
}

// parseDeclaration parses one top-level or nested declaration: a binding,
// a function/subscript, a struct, a trait, or an import.
func (p *Parser) parseDeclaration() (ast.DeclarationID, bool) {
	switch p.peek().Tag {
	case token.KwLet, token.KwVar, token.KwInout:
		return p.parseBinding()
	case token.KwFun, token.KwSubscript:
		return p.parseFunction()
	case token.KwStruct:
		return p.parseStruct()
	case token.KwTrait:
		return p.parseTrait()
	case token.KwImport:
		return p.parseImport()
	default:
		t := p.peek()
		p.report(diag.ParseUnexpectedToken, t.Span, "expected a declaration, found "+t.Tag.String())
		return 0, false
	}
}

func conventionOf(tag token.Tag) ast.PassingConvention {
	switch tag {
	case token.KwVar:
		return ast.PassingVar
	case token.KwInout:
		return ast.PassingInout
	default:
		return ast.PassingLet
	}
}

// parseBinding parses `let`/`var`/`inout` pattern [`=` initializer].
func (p *Parser) parseBinding() (ast.DeclarationID, bool) {
	kw := p.advance()
	conv := conventionOf(kw.Tag)
	pat, ok := p.parsePattern()
	if !ok {
		return 0, false
	}
	site := kw.Span
	var init ast.ExpressionID
	if p.at(token.Assign) {
		p.advance()
		init = p.parseExpression()
		site = site.Cover(p.arena.Site(init.NodeID()))
	}
	id := p.arena.NewBinding(&ast.Binding{
		Introducer:  conv,
		Pattern:     pat,
		Initializer: init,
		Role:        ast.RoleUnconditional,
		Site:        site,
	})
	return ast.DeclarationID(id), true
}

// parseFunction parses a `fun`/`subscript` declaration: a name, a
// parenthesized parameter list, and a body introduced by `=`, per the
// block-body rule: an indented block, or exactly one statement on the
// same line. A missing `=` leaves the body empty (§4.6: a
// declared-but-undefined function).
func (p *Parser) parseFunction() (ast.DeclarationID, bool) {
	kw := p.advance()
	introducer := ast.IntroducerFun
	if kw.Tag == token.KwSubscript {
		introducer = ast.IntroducerSubscript
	}
	nameTok, ok := p.expect(token.Name)
	if !ok {
		return 0, false
	}
	params, ok := p.parseParameterList()
	if !ok {
		return 0, false
	}
	site := kw.Span.Cover(nameTok.Span)

	var body ast.NodeID
	if p.at(token.Assign) {
		p.advance()
		body = p.parseFunctionBody()
		site = site.Cover(p.arena.Site(body))
	}

	id := p.arena.NewFunction(&ast.Function{
		Introducer: introducer,
		Name:       p.intern(nameTok),
		Params:     params,
		Body:       body,
		Site:       site,
	})
	return ast.DeclarationID(id), true
}

// parseFunctionBody parses the body that follows a function's `=`. An
// indented body lowers as a block (lowerFunctionBody's TagBlockStatement
// case, whose trailing value is discarded but which reaches every return
// and throw). A same-line body is either a non-expression statement
// (yield, return, a declaration, a loop) lowered for its control-flow
// effect alone, or a bare expression whose value becomes the function's
// implicit return.
func (p *Parser) parseFunctionBody() ast.NodeID {
	if p.at(token.Indentation) {
		blk := p.parseBlock()
		return blk.NodeID()
	}
	if p.atContextualKeyword("yield") {
		s, _ := p.parseYield()
		return s.NodeID()
	}
	if p.atNonExpressionStatementStart() {
		s, ok := p.parseStatement()
		if !ok {
			return 0
		}
		return s.NodeID()
	}
	return p.parseExpression().NodeID()
}

// atNonExpressionStatementStart reports whether the current token starts a
// statement form that parseExpression cannot itself produce (a loop, a
// jump, a binding, a nested declaration). `if`/`match`/`try` are
// deliberately excluded: they are expression primaries, so a same-line
// function body starting with one of those parses as an implicit-return
// expression, not as a discarded statement.
func (p *Parser) atNonExpressionStatementStart() bool {
	switch p.peek().Tag {
	case token.KwBreak, token.KwContinue, token.KwFor, token.KwWhile, token.KwReturn,
		token.KwThrow, token.KwLet, token.KwVar, token.KwInout, token.KwFun,
		token.KwSubscript, token.KwStruct, token.KwTrait, token.KwImport:
		return true
	default:
		return false
	}
}

// parseParameterList parses a `(...)` parameter list. Parameters carry no
// type annotation: dyva's signatures are name- and convention-only.
func (p *Parser) parseParameterList() ([]ast.ParameterID, bool) {
	if _, ok := p.expect(token.LeftParenthesis); !ok {
		return nil, false
	}
	var params []ast.ParameterID
	for !p.at(token.RightParenthesis) && !p.atEOF() {
		if len(params) > 0 {
			if _, ok := p.expect(token.Comma); !ok {
				break
			}
		}
		param, ok := p.parseParameter()
		if !ok {
			break
		}
		params = append(params, param)
	}
	p.expect(token.RightParenthesis)
	return params, true
}

func (p *Parser) parseParameter() (ast.ParameterID, bool) {
	conv := ast.PassingDefault
	switch p.peek().Tag {
	case token.KwLet:
		p.advance()
		conv = ast.PassingLet
	case token.KwVar:
		p.advance()
		conv = ast.PassingVar
	case token.KwInout:
		p.advance()
		conv = ast.PassingInout
	}

	first, ok := p.expect(token.Name)
	if !ok {
		return 0, false
	}
	site := first.Span
	label := source.NoStringID
	ident := first

	// A second name is a labeled parameter: `label name`.
	if p.at(token.Name) {
		label = p.intern(first)
		ident = p.advance()
		site = site.Cover(ident.Span)
	}

	var def ast.ExpressionID
	if p.at(token.Assign) {
		p.advance()
		def = p.parseExpression()
		site = site.Cover(p.arena.Site(def.NodeID()))
	}

	id := p.arena.NewParameter(&ast.Parameter{
		Label:      label,
		Identifier: p.intern(ident),
		Convention: conv,
		Default:    def,
		Site:       site,
	})
	return id, true
}

// parseStruct parses a `struct` declaration: a name, an optional `is`
// parent-interface list, and an indented member block.
func (p *Parser) parseStruct() (ast.DeclarationID, bool) {
	kw := p.advance()
	nameTok, ok := p.expect(token.Name)
	if !ok {
		return 0, false
	}
	parents := p.parseParentInterfaces()
	members, site := p.parseMemberBlock(kw.Span.Cover(nameTok.Span))
	id := p.arena.NewStruct(&ast.Struct{
		Name:             p.intern(nameTok),
		ParentInterfaces: parents,
		Members:          members,
		Site:             site,
	})
	return ast.DeclarationID(id), true
}

func (p *Parser) parseTrait() (ast.DeclarationID, bool) {
	kw := p.advance()
	nameTok, ok := p.expect(token.Name)
	if !ok {
		return 0, false
	}
	parents := p.parseParentInterfaces()
	members, site := p.parseMemberBlock(kw.Span.Cover(nameTok.Span))
	id := p.arena.NewTrait(&ast.Trait{
		Name:             p.intern(nameTok),
		ParentInterfaces: parents,
		Members:          members,
		Site:             site,
	})
	return ast.DeclarationID(id), true
}

func (p *Parser) parseParentInterfaces() []source.StringID {
	if !p.at(token.KwIs) {
		return nil
	}
	p.advance()
	var names []source.StringID
	for {
		t, ok := p.expect(token.Name)
		if !ok {
			break
		}
		names = append(names, p.intern(t))
		if !p.eat(token.Comma) {
			break
		}
	}
	return names
}

func (p *Parser) parseMemberBlock(headSite source.Span) ([]ast.DeclarationID, source.Span) {
	site := headSite
	if _, ok := p.expect(token.Colon); !ok {
		return nil, site
	}
	n := 0
	indentSpan := p.peek().Span
	for p.at(token.Indentation) {
		t := p.advance()
		indentSpan = indentSpan.Cover(t.Span)
		n++
	}
	if n == 0 {
		p.report(diag.ParseExpected, p.peek().Span, "expected an indented member block")
		return nil, site
	}
	var members []ast.DeclarationID
	for !p.at(token.Dedentation) && !p.atEOF() {
		m, ok := p.parseMember()
		if !ok {
			p.resyncMember()
			continue
		}
		members = append(members, m)
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
	return members, site
}

func (p *Parser) resyncMember() {
	for !p.atEOF() && !p.at(token.Dedentation) && !p.atMemberStart() {
		p.advance()
	}
}

func (p *Parser) atMemberStart() bool {
	switch p.peek().Tag {
	case token.KwFun, token.KwSubscript, token.Name:
		return true
	default:
		return false
	}
}

// parseMember parses one struct/trait member: a method, or a bare field
// (optionally defaulted).
func (p *Parser) parseMember() (ast.DeclarationID, bool) {
	if p.at(token.KwFun) || p.at(token.KwSubscript) {
		return p.parseFunction()
	}
	nameTok, ok := p.expect(token.Name)
	if !ok {
		return 0, false
	}
	site := nameTok.Span
	var def ast.ExpressionID
	if p.at(token.Assign) {
		p.advance()
		def = p.parseExpression()
		site = site.Cover(p.arena.Site(def.NodeID()))
	}
	id := p.arena.NewField(&ast.Field{
		Identifier: p.intern(nameTok),
		Default:    def,
		Site:       site,
	})
	return ast.DeclarationID(id), true
}

// parseImport parses `import path.to.module`, recording the dotted path
// as its literal spelling; resolving it to a file is internal/program's
// job (Open Question 1).
func (p *Parser) parseImport() (ast.DeclarationID, bool) {
	kw := p.advance()
	first, ok := p.expect(token.Name)
	if !ok {
		return 0, false
	}
	text := first.Text
	site := kw.Span.Cover(first.Span)
	for p.at(token.Dot) {
		p.advance()
		t, ok := p.expect(token.Name)
		if !ok {
			break
		}
		text += "." + t.Text
		site = site.Cover(t.Span)
	}
	id := p.arena.NewImport(&ast.Import{
		Path: p.interner.Intern(text),
		Site: site,
	})
	return ast.DeclarationID(id), true
}
