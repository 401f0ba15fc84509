package lower

import (
	"dyva/internal/ast"
	"dyva/internal/ir"
)

// lowerCondition lowers one entry of a condition chain, branching to
// success with the chain's continuation or to failure if the condition
// does not hold, per §4.6. A plain boolean condition lowers directly; a
// `case pattern = expr` condition lowers the expression once and binds the
// pattern's leaves into the current frame before branching to success —
// matching is not type-checked (Non-goals), so a pattern condition always
// succeeds once its expression has been evaluated.
func (l *Lowerer) lowerCondition(c ast.ConditionID, success, failure ir.BlockID) {
	n, _ := l.arena.AsCondition(c.NodeID())
	if n.Pattern == 0 {
		cond := l.lowerExpression(n.Expression)
		l.emit(&ir.CondBranch{Site: n.Site, Cond: cond, Success: success, Failure: failure})
		return
	}

	v := l.lowerExpression(n.Expression)
	ast.ForEachDeclaration(l.arena, n.Pattern, nil, func(leaf ast.PatternID, path ast.PatternPath) {
		vd, _ := l.arena.AsVariableDeclPattern(leaf.NodeID())
		l.ctx.locals().names[l.name(vd.Identifier)] = l.projectPath(v, path, n.Site)
	})
	l.emit(&ir.Branch{Site: n.Site, Target: success})
}

// lowerConditional implements §4.6's if/else-chain lowering: conditions
// chain left to right (success of one feeds the next, failure of any
// short-circuits to the else arm or straight to the join), and the join
// block takes one parameter iff an else arm exists, since only then do
// both arms produce a value worth merging.
func (l *Lowerer) lowerConditional(id ast.ExpressionID) ir.Value {
	n, _ := l.arena.AsConditional(id.NodeID())
	hasElse := n.Else != 0

	elseBlock := l.newBlock(0)
	joinParams := 0
	if hasElse {
		joinParams = 1
	}
	join := l.newBlock(joinParams)

	condBlocks := make([]ir.BlockID, len(n.Conditions))
	for i := range n.Conditions {
		condBlocks[i] = l.newBlock(0)
	}
	thenBlock := l.newBlock(0)

	l.emit(&ir.Branch{Site: n.Site, Target: firstOr(condBlocks, thenBlock)})

	for i, c := range n.Conditions {
		l.ctx.block = condBlocks[i]
		next := thenBlock
		if i+1 < len(condBlocks) {
			next = condBlocks[i+1]
		}
		l.lowerCondition(c, next, elseBlock)
	}

	l.ctx.block = thenBlock
	thenVal := l.lowerBlockExpression(n.Then)
	if !l.blockHasTerminator() {
		if hasElse {
			l.emit(&ir.Branch{Site: n.Site, Target: join, Args: []ir.Value{thenVal}})
		} else {
			l.emit(&ir.Branch{Site: n.Site, Target: join})
		}
	}

	l.ctx.block = elseBlock
	if hasElse {
		elseVal := l.lowerElse(n.Else)
		if !l.blockHasTerminator() {
			l.emit(&ir.Branch{Site: n.Site, Target: join, Args: []ir.Value{elseVal}})
		}
	} else if !l.blockHasTerminator() {
		l.emit(&ir.Branch{Site: n.Site, Target: join})
	}

	l.ctx.block = join
	if hasElse {
		return ir.ParameterValue(join, 0)
	}
	return ir.ConstantValue(ir.UnitConstant())
}

func firstOr(blocks []ir.BlockID, fallback ir.BlockID) ir.BlockID {
	if len(blocks) == 0 {
		return fallback
	}
	return blocks[0]
}

func (l *Lowerer) lowerElse(id ast.ElseID) ir.Value {
	n, _ := l.arena.AsElse(id.NodeID())
	if n.Block == 0 {
		return ir.ConstantValue(ir.UnitConstant())
	}
	if l.arena.Tag(n.Block) == ast.TagConditionalExpression {
		return l.lowerConditional(ast.ExpressionID(n.Block))
	}
	return l.lowerBlockExpression(n.Block)
}

// lowerBlockExpression lowers a BlockStatement used in expression position
// (a then/else arm): every statement but the last lowers for effect, and
// the last statement's value becomes the arm's value when it is an
// expression statement. A block ending in any other statement kind, or an
// empty block, yields unit.
func (l *Lowerer) lowerBlockExpression(id ast.NodeID) ir.Value {
	blk, ok := l.arena.AsBlock(id)
	if !ok {
		return ir.ConstantValue(ir.UnitConstant())
	}
	result := ir.ConstantValue(ir.UnitConstant())
	l.ctx.within(id, func() {
		for i, s := range blk.Statements {
			if l.blockHasTerminator() {
				break
			}
			if i == len(blk.Statements)-1 {
				if es, ok := l.arena.AsExpressionStatement(s.NodeID()); ok {
					result = l.lowerExpression(es.Expression)
					continue
				}
			}
			l.lowerStatement(s)
		}
	})
	return result
}
