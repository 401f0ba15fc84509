package lower

import "dyva/internal/ast"

// lowerBlockBody implements §4.6's two-pass block lowering: function
// declarations nested in the block are hoisted first (lowered in a clear
// context, so they can be referenced before their textual position, and
// never capture the enclosing frame — this module never builds closures
// over free variables, a simplification recorded in DESIGN.md), then every
// statement is lowered in order, stopping after the first one that ends
// control flow (a terminator, or a break/continue statement).
func (l *Lowerer) lowerBlockBody(stmts []ast.StatementID) {
	for _, s := range stmts {
		ds, ok := l.arena.AsDeclarationStatement(s.NodeID())
		if !ok {
			continue
		}
		if l.arena.Tag(ds.Declaration.NodeID()) == ast.TagFunctionDeclaration {
			l.withClearContext(func() { l.lowerFunctionDecl(ds.Declaration) })
		}
	}

	for _, s := range stmts {
		if l.blockHasTerminator() {
			break
		}
		l.lowerStatement(s)
		if tag := l.arena.Tag(s.NodeID()); tag == ast.TagBreakStatement || tag == ast.TagContinueStatement {
			break
		}
	}
}
