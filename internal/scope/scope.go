// Package scope implements the scoper of §4.5: a single pre-order pass
// over a module's syntax that fills in every node's lexical parent and
// every scope node's list of directly-contained declarations.
package scope

import "dyva/internal/ast"

// visitor tracks the innermost scope currently open while walking the
// module, per §4.5's algorithm.
type visitor struct {
	arena    *ast.Arena
	scopeOf  ast.NodeID
	scopes   []ast.NodeID // stack of open scopes, innermost last
}

// Run fills m.Arena's parent map and scope-to-declarations index by
// walking every top-level statement (AsMain) or declaration (library) in
// m. The module's own scope starts as the innermost scope, per §4.5.
func Run(m *ast.Module) {
	v := &visitor{arena: m.Arena, scopeOf: m.Scope()}
	if m.AsMain {
		for _, s := range m.Stmts {
			ast.Walk(m.Arena, s.NodeID(), v)
		}
	} else {
		for _, d := range m.Decls {
			ast.Walk(m.Arena, d.NodeID(), v)
		}
	}
}

func (v *visitor) innermost() ast.NodeID {
	if len(v.scopes) == 0 {
		return v.scopeOf
	}
	return v.scopes[len(v.scopes)-1]
}

// WillEnter implements ast.Visitor.
func (v *visitor) WillEnter(a *ast.Arena, id ast.NodeID) bool {
	tag := a.Tag(id)
	a.SetParent(id, v.innermost())

	// Per §4.5, declarations are recorded against their innermost scope
	// only when that scope is not the module itself — top-level
	// declarations are already reachable through Module.Decls/Stmts.
	if tag.IsDeclaration() && v.innermost() != v.scopeOf {
		a.AppendDeclaration(v.innermost(), ast.DeclarationID(id))
	}

	if tag.IsScope() {
		v.scopes = append(v.scopes, id)
	}
	return true
}

// WillExit implements ast.Visitor.
func (v *visitor) WillExit(a *ast.Arena, id ast.NodeID) {
	if a.Tag(id).IsScope() {
		v.scopes = v.scopes[:len(v.scopes)-1]
	}
}
