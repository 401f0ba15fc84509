// Package lower implements the AST→IR lowerer of §4.6: a single traversal
// that threads an insertion context (current function, current block,
// current frame stack) through the syntax tree and emits SSA instructions
// via Function.Insert.
package lower

import (
	"strconv"

	"dyva/internal/ast"
	"dyva/internal/diag"
	"dyva/internal/ir"
	"dyva/internal/source"
)

// Lowerer drives one module's declarations/statements into an ir.Module.
type Lowerer struct {
	module   *ast.Module
	arena    *ast.Arena
	interner *source.Interner
	reporter diag.Reporter

	mod       *ir.Module
	ctx       *context
	lowered   map[ast.NodeID]bool // function decls already lowered, by identity
	anonCount int
}

// nextAnonName returns a fresh, module-unique name for a lambda, which has
// no source identifier of its own.
func (l *Lowerer) nextAnonName() string {
	l.anonCount++
	return "$lambda" + strconv.Itoa(l.anonCount)
}

// New returns a Lowerer for m, reporting lowering diagnostics to r.
func New(m *ast.Module, r diag.Reporter) *Lowerer {
	return &Lowerer{
		module:   m,
		arena:    m.Arena,
		interner: m.Interner,
		reporter: r,
		mod:      ir.NewModule(),
		lowered:  make(map[ast.NodeID]bool),
	}
}

func (l *Lowerer) name(id source.StringID) string {
	if id == source.NoStringID || l.interner == nil {
		return ""
	}
	s, _ := l.interner.Lookup(id)
	return s
}

// Run lowers the module and returns the resulting ir.Module.
func (l *Lowerer) Run() *ir.Module {
	if l.module.AsMain {
		l.lowerMain()
	} else {
		for _, d := range l.module.Decls {
			l.lowerDeclaration(d)
		}
	}
	return l.mod
}

func endOfFile(f *source.File) source.Span {
	n := uint32(len(f.Content))
	return source.Span{File: f.ID, Start: n, End: n}
}

// lowerMain builds the synthetic `$main` function holding the module's
// top-level statements, per §4.6.
func (l *Lowerer) lowerMain() {
	fn := ir.NewFunction("$main", nil, false)
	l.mod.Declare("$main", fn)

	entry := fn.NewBlock(0)
	l.ctx = &context{fn: fn, block: entry}
	l.ctx.pushFrame(l.module.Scope())
	l.lowerBlockBody(l.module.Stmts)
	if !l.blockHasTerminator() {
		l.emit(&ir.Return{Site: endOfFile(l.module.File), Value: ir.ConstantValue(ir.UnitConstant())})
	}
	l.ctx.popFrame()
	l.ctx = nil
}

// withClearContext saves the current insertion context, runs fn with none
// active, then restores it — used when lowering reaches into another
// function's body while the caller's context is still logically on the
// stack (§9 design notes).
func (l *Lowerer) withClearContext(fn func()) {
	saved := l.ctx
	l.ctx = nil
	fn()
	l.ctx = saved
}

// emit inserts instr into the current block and, for register-producing
// kinds, returns the value addressing it.
func (l *Lowerer) emit(instr ir.Instruction) ir.Value {
	id := l.ctx.fn.Insert(l.ctx.block, instr)
	switch instr.(type) {
	case *ir.Alloc, *ir.Access, *ir.Member, *ir.Invoke, *ir.Project:
		return ir.RegisterValue(id)
	default:
		return ir.Value{}
	}
}

// blockHasTerminator reports whether the current block already ends in a
// terminator, so callers don't append unreachable control flow.
func (l *Lowerer) blockHasTerminator() bool {
	b := l.ctx.fn.Block(l.ctx.block)
	if !b.HasInstructions() {
		return false
	}
	return l.ctx.fn.Instruction(b.Last).IsTerminator()
}

func (l *Lowerer) newBlock(params int) ir.BlockID { return l.ctx.fn.NewBlock(params) }
