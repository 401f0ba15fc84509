package parser

import (
	"dyva/internal/ast"
	"dyva/internal/diag"
	"dyva/internal/token"
)

// parsePattern parses a pattern per §3.4's pattern model, followed by any
// number of postfix `is Type` refinements.
func (p *Parser) parsePattern() (ast.PatternID, bool) {
	base, ok := p.parsePrimaryPattern()
	if !ok {
		return 0, false
	}
	for p.at(token.KwIs) {
		p.advance()
		ty := p.parsePostfix(p.parsePrimary())
		site := p.arena.Site(base.NodeID()).Cover(p.arena.Site(ty.NodeID()))
		base = p.arena.NewTypePattern(&ast.TypePattern{Operand: base, Type: ty, Site: site})
	}
	return base, true
}

func (p *Parser) parsePrimaryPattern() (ast.PatternID, bool) {
	t := p.peek()
	switch t.Tag {
	case token.Underscore:
		p.advance()
		return p.arena.NewWildcardPattern(&ast.WildcardPattern{Site: t.Span}), true
	case token.KwLet, token.KwVar, token.KwInout:
		p.advance()
		sub, ok := p.parsePattern()
		if !ok {
			return 0, false
		}
		site := t.Span.Cover(p.arena.Site(sub.NodeID()))
		return p.arena.NewBindingPattern(&ast.BindingPattern{
			Introducer: conventionOf(t.Tag),
			Sub:        sub,
			Site:       site,
		}), true
	case token.LeftParenthesis:
		return p.parseTuplePattern()
	case token.Dot:
		return p.parseExtractorPattern()
	case token.Name:
		p.advance()
		return p.arena.NewVariableDeclPattern(&ast.VariableDeclPattern{
			Identifier: p.interner.Intern(t.Text),
			Site:       t.Span,
		}), true
	default:
		p.report(diag.ParseUnexpectedToken, t.Span, "expected a pattern, found "+t.Tag.String())
		return 0, false
	}
}

func (p *Parser) parseTuplePattern() (ast.PatternID, bool) {
	open := p.advance()
	var elems []ast.TuplePatternElement
	for !p.at(token.RightParenthesis) && !p.atEOF() {
		if len(elems) > 0 {
			if !p.eat(token.Comma) {
				break
			}
		}
		el, ok := p.parseTuplePatternElement()
		if !ok {
			break
		}
		elems = append(elems, el)
	}
	close, _ := p.expect(token.RightParenthesis)
	site := open.Span.Cover(close.Span)
	return p.arena.NewTuplePattern(&ast.TuplePattern{Elements: elems, Site: site}), true
}

func (p *Parser) parseTuplePatternElement() (ast.TuplePatternElement, bool) {
	if p.peek().Tag == token.Name && p.peekAt(1).Tag == token.Colon {
		labelTok := p.advance()
		p.advance()
		val, ok := p.parsePattern()
		if !ok {
			return ast.TuplePatternElement{}, false
		}
		return ast.TuplePatternElement{Label: p.interner.Intern(labelTok.Text), Value: val}, true
	}
	val, ok := p.parsePattern()
	if !ok {
		return ast.TuplePatternElement{}, false
	}
	return ast.TuplePatternElement{Value: val}, true
}

// parseExtractorPattern parses `.callee(args)`, matching by invoking an
// extractor function with the scrutinee.
func (p *Parser) parseExtractorPattern() (ast.PatternID, bool) {
	dot := p.advance()
	nameTok, ok := p.expect(token.Name)
	if !ok {
		return 0, false
	}
	if _, ok := p.expect(token.LeftParenthesis); !ok {
		return 0, false
	}
	var args []ast.TuplePatternElement
	for !p.at(token.RightParenthesis) && !p.atEOF() {
		if len(args) > 0 {
			if !p.eat(token.Comma) {
				break
			}
		}
		el, ok := p.parseTuplePatternElement()
		if !ok {
			break
		}
		args = append(args, el)
	}
	close, _ := p.expect(token.RightParenthesis)
	site := dot.Span.Cover(close.Span)
	return p.arena.NewExtractorPattern(&ast.ExtractorPattern{
		Callee: p.interner.Intern(nameTok.Text),
		Args:   args,
		Site:   site,
	}), true
}
