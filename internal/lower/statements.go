package lower

import (
	"dyva/internal/ast"
	"dyva/internal/diag"
	"dyva/internal/ir"
)

func (l *Lowerer) lowerStatement(id ast.StatementID) {
	switch l.arena.Tag(id.NodeID()) {
	case ast.TagBlockStatement:
		blk, _ := l.arena.AsBlock(id.NodeID())
		l.ctx.within(id.NodeID(), func() { l.lowerBlockBody(blk.Statements) })
	case ast.TagBreakStatement, ast.TagContinueStatement:
		// No loop-exit block bookkeeping is modeled in this minimal
		// pipeline; break/continue are accepted syntactically but emit no
		// IR. lowerBlockBody stops lowering its statement list after one;
		// in an if/else or match arm (lowerBlockExpression) the statements
		// after it are still lowered.
	case ast.TagForStatement:
		l.lowerFor(id)
	case ast.TagWhileStatement:
		l.lowerWhile(id)
	case ast.TagReturnStatement:
		n, _ := l.arena.AsReturn(id.NodeID())
		v := ir.ConstantValue(ir.UnitConstant())
		if n.Value != 0 {
			v = l.lowerExpression(n.Value)
		}
		l.emit(&ir.Return{Site: n.Site, Value: v})
	case ast.TagThrowStatement:
		n, _ := l.arena.AsThrow(id.NodeID())
		v := l.lowerExpression(n.Value)
		l.emit(&ir.Return{Site: n.Site, Value: v})
	case ast.TagYieldStatement:
		l.lowerYield(id)
	case ast.TagAssignmentStatement:
		n, _ := l.arena.AsAssignment(id.NodeID())
		v := l.lowerExpression(n.Value)
		target := l.lowerExpression(n.Target)
		l.emit(&ir.Store{Site: n.Site, Value: v, Target: target})
	case ast.TagDeclarationStatement:
		n, _ := l.arena.AsDeclarationStatement(id.NodeID())
		l.lowerDeclaration(n.Declaration)
	case ast.TagExpressionStatement:
		n, _ := l.arena.AsExpressionStatement(id.NodeID())
		l.lowerExpression(n.Expression)
	}
}

// lowerYield implements §4.6's "yield only valid in a subscript" rule; the
// invalidYield diagnostic is emitted here and yield-coherence (§4.10)
// separately enforces the "at most one yield per path" invariant once the
// whole function is lowered.
func (l *Lowerer) lowerYield(id ast.StatementID) {
	n, _ := l.arena.AsYield(id.NodeID())
	if !l.ctx.fn.IsSubscript {
		diag.ReportError(l.reporter, diag.LowerInvalidYield, n.Site,
			"'yield' can only occur in a subscript").Emit()
		return
	}
	v := l.lowerExpression(n.Value)
	l.emit(&ir.Yield{Site: n.Site, Value: v})
}

// lowerFor implements a documented simplification: §3.4's minimal
// instruction set has no iterator-protocol instruction (next/hasNext), so
// the loop body lowers once, unconditionally, with the pattern's leaves
// bound against the sequence itself rather than against successive
// elements. This preserves the loop's header/body/after block shape (and
// so its place in the dominator tree and live-range analysis) without
// inventing IR that isn't in the model.
func (l *Lowerer) lowerFor(id ast.StatementID) {
	n, _ := l.arena.AsFor(id.NodeID())
	seq := l.lowerExpression(n.Sequence)

	body := l.newBlock(0)
	after := l.newBlock(0)
	l.emit(&ir.Branch{Site: n.Site, Target: body})

	l.ctx.block = body
	l.ctx.within(id.NodeID(), func() {
		ast.ForEachDeclaration(l.arena, n.Pattern, nil, func(leaf ast.PatternID, path ast.PatternPath) {
			v, _ := l.arena.AsVariableDeclPattern(leaf.NodeID())
			l.ctx.locals().names[l.name(v.Identifier)] = l.projectPath(seq, path, n.Site)
		})
		if blk, ok := l.arena.AsBlock(n.Body); ok {
			l.lowerBlockBody(blk.Statements)
		}
	})
	if !l.blockHasTerminator() {
		l.emit(&ir.Branch{Site: n.Site, Target: after})
	}
	l.ctx.block = after
}

// lowerWhile lowers a condition chain the same way lowerConditional does,
// except the success branch loops back to the header instead of joining.
func (l *Lowerer) lowerWhile(id ast.StatementID) {
	n, _ := l.arena.AsWhile(id.NodeID())
	header := l.newBlock(0)
	l.emit(&ir.Branch{Site: n.Site, Target: header})
	l.ctx.block = header

	after := l.newBlock(0)
	for _, c := range n.Conditions {
		success := l.newBlock(0)
		l.lowerCondition(c, success, after)
		l.ctx.block = success
	}

	l.ctx.within(id.NodeID(), func() {
		if blk, ok := l.arena.AsBlock(n.Body); ok {
			l.lowerBlockBody(blk.Statements)
		}
	})
	if !l.blockHasTerminator() {
		l.emit(&ir.Branch{Site: n.Site, Target: header})
	}
	l.ctx.block = after
}
