package lower

import (
	"dyva/internal/ast"
	"dyva/internal/diag"
	"dyva/internal/ir"
	"dyva/internal/source"
)

// lowerDeclaration dispatches a declaration at statement/top-level position.
func (l *Lowerer) lowerDeclaration(id ast.DeclarationID) {
	switch l.arena.Tag(id.NodeID()) {
	case ast.TagFunctionDeclaration:
		l.lowerFunctionDecl(id)
	case ast.TagBindingDeclaration:
		l.lowerBindingDecl(id)
	case ast.TagStructDeclaration, ast.TagTraitDeclaration:
		// No type checking or code generation in this pipeline (Non-goals);
		// struct/trait declarations are scoped and lowered only to the
		// extent that their member functions are registered for lookup.
		l.lowerAggregateMembers(id)
	default:
		// Parameter/field/variable/import declarations have no standalone
		// lowering; they are visited through their owning declaration.
	}
}

func (l *Lowerer) lowerAggregateMembers(id ast.DeclarationID) {
	var members []ast.DeclarationID
	if s, ok := l.arena.AsStruct(id.NodeID()); ok {
		members = s.Members
	} else if t, ok := l.arena.AsTrait(id.NodeID()); ok {
		members = t.Members
	}
	for _, m := range members {
		if l.arena.Tag(m.NodeID()) == ast.TagFunctionDeclaration {
			l.withClearContext(func() { l.lowerFunctionDecl(m) })
		}
	}
}

// lowerFunctionDecl registers fn in the module eagerly — referable by name
// even before its body is lowered — then lowers its body in a clear
// context, per §4.6.
func (l *Lowerer) lowerFunctionDecl(id ast.DeclarationID) ir.Value {
	fn, ok := l.arena.AsFunction(id.NodeID())
	if !ok {
		return ir.PoisonValue(l.arena.Site(id.NodeID()))
	}
	name := l.name(fn.Name)

	if l.lowered[id.NodeID()] {
		return ir.ConstantValue(ir.FunctionConstant(name))
	}
	l.lowered[id.NodeID()] = true

	argLabels := make([]string, len(fn.Params))
	for i, sid := range ast.Labels(l.arena, fn) {
		argLabels[i] = l.name(sid)
	}
	isSubscript := fn.Introducer == ast.IntroducerSubscript
	irFn := ir.NewFunction(name, argLabels, isSubscript)
	l.mod.Declare(name, irFn)

	if fn.Body == 0 {
		diag.ReportError(l.reporter, diag.LowerMissingImplementation, fn.Site,
			name+" requires an implementation").Emit()
		return ir.ConstantValue(ir.FunctionConstant(name))
	}

	l.withClearContext(func() {
		entry := irFn.NewBlock(len(fn.Params))
		l.ctx = &context{fn: irFn, block: entry}
		l.ctx.pushFrame(id.NodeID())
		for i, pid := range fn.Params {
			p, ok := l.arena.AsParameter(pid.NodeID())
			if !ok {
				continue
			}
			l.ctx.locals().names[l.name(p.Identifier)] = ir.ParameterValue(entry, i)
		}
		l.lowerFunctionBody(fn.Body, fn.Site)
		l.ctx.popFrame()
	})

	return ir.ConstantValue(ir.FunctionConstant(name))
}

// lowerFunctionBody lowers a function's body, ending at endSite, per the
// §4.6 rule: a single-expression body lowers to one return; a block body
// appends a trailing `return unit` only if no terminator was produced.
func (l *Lowerer) lowerFunctionBody(body ast.NodeID, endSite source.Span) {
	tag := l.arena.Tag(body)
	switch {
	case tag == ast.TagBlockStatement:
		blk, _ := l.arena.AsBlock(body)
		l.lowerBlockBody(blk.Statements)
		if !l.blockHasTerminator() {
			l.emit(&ir.Return{Site: endSite, Value: ir.ConstantValue(ir.UnitConstant())})
		}
	case tag.IsExpression():
		v := l.lowerExpression(ast.ExpressionID(body))
		l.emit(&ir.Return{Site: endSite, Value: v})
	default:
		l.lowerStatement(ast.StatementID(body))
		if !l.blockHasTerminator() {
			l.emit(&ir.Return{Site: endSite, Value: ir.ConstantValue(ir.UnitConstant())})
		}
	}
}

// lowerBindingDecl implements §4.6's let/var/inout distinction: var emits
// an alloc and stores through it; let/inout lower the initializer once and
// bind each pattern leaf to a projected access (feeding region closing),
// per the intended variant recorded in DESIGN.md's Open Question 3.
func (l *Lowerer) lowerBindingDecl(id ast.DeclarationID) {
	b, ok := l.arena.AsBinding(id.NodeID())
	if !ok {
		return
	}

	if b.Introducer == ast.PassingVar {
		l.lowerVarBinding(b)
		return
	}

	var initVal ir.Value
	if b.Initializer != 0 {
		initVal = l.lowerExpression(b.Initializer)
	} else {
		initVal = ir.ConstantValue(ir.UnitConstant())
	}

	cap := ir.CapLet
	if b.Introducer == ast.PassingInout {
		cap = ir.CapInout
	}

	ast.ForEachDeclaration(l.arena, b.Pattern, nil, func(leaf ast.PatternID, path ast.PatternPath) {
		v, _ := l.arena.AsVariableDeclPattern(leaf.NodeID())
		storage := l.projectPath(initVal, path, b.Site)
		access := l.emit(&ir.Access{Site: b.Site, Capability: cap, Of: storage})
		l.ctx.locals().names[l.name(v.Identifier)] = access
	})
}

func (l *Lowerer) lowerVarBinding(b *ast.Binding) {
	var initVal ir.Value
	if b.Initializer != 0 {
		initVal = l.lowerExpression(b.Initializer)
	} else {
		initVal = ir.ConstantValue(ir.UnitConstant())
	}

	ast.ForEachDeclaration(l.arena, b.Pattern, nil, func(leaf ast.PatternID, path ast.PatternPath) {
		v, _ := l.arena.AsVariableDeclPattern(leaf.NodeID())
		alloc := l.emit(&ir.Alloc{Site: b.Site})
		leafVal := l.projectPath(initVal, path, b.Site)
		l.emit(&ir.Store{Site: b.Site, Value: leafVal, Target: alloc})
		l.ctx.locals().names[l.name(v.Identifier)] = alloc
	})
}

// projectPath walks a tuple path into whole, emitting one Member
// instruction per index.
func (l *Lowerer) projectPath(whole ir.Value, path ast.PatternPath, site source.Span) ir.Value {
	v := whole
	for _, idx := range path {
		v = l.emit(&ir.Member{Site: site, Whole: v, Index: idx, ByIndex: true})
	}
	return v
}
