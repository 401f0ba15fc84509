package ast

import (
	"fmt"

	"fortio.org/safecast"

	"dyva/internal/source"
)

// Arena is the per-module node store of §3.3: a payload vector and a
// parallel tag vector of equal length, plus the scope/parent bookkeeping
// filled in later by the scoper. Nodes are appended, never removed; a
// NodeID minted by Insert remains valid for the arena's whole lifetime.
type Arena struct {
	module uint32

	tags     []NodeTag
	payloads []any
	sites    []source.Span

	// parent[i] is -1 until the scoper runs; afterwards it holds the NodeID
	// of the node's lexical parent, or the module's own scope identity.
	parent []int64

	// scopeToDeclarations maps a scope node's offset to the declarations
	// the scoper found lexically within it, in source order. Seeded with an
	// empty slice for every scope node as the scoper enters it.
	scopeToDeclarations map[uint32][]DeclarationID
}

// NewArena creates an empty Arena for the given module index.
func NewArena(module uint32) *Arena {
	return &Arena{
		module:              module,
		scopeToDeclarations: make(map[uint32][]DeclarationID),
	}
}

// Module returns the module index this arena belongs to.
func (a *Arena) Module() uint32 { return a.module }

// Len returns the number of nodes inserted so far.
func (a *Arena) Len() int { return len(a.tags) }

// Insert appends a new node and returns its identity.
func (a *Arena) Insert(tag NodeTag, site source.Span, payload any) NodeID {
	offset, err := safecast.Conv[uint32](len(a.tags))
	if err != nil {
		panic(fmt.Errorf("ast: arena overflow: %w", err))
	}
	a.tags = append(a.tags, tag)
	a.payloads = append(a.payloads, payload)
	a.sites = append(a.sites, site)
	a.parent = append(a.parent, -1)
	if tag.IsScope() {
		a.scopeToDeclarations[offset] = nil
	}
	return MakeNodeID(a.module, offset)
}

// Tag returns the tag stored at id. Panics if id belongs to a different
// module: a "same-arena" invariant for typed lookups.
func (a *Arena) Tag(id NodeID) NodeTag {
	a.mustOwnNode(id)
	return a.tags[id.Offset()]
}

// Site returns the source span every node carries, per §3.3.
func (a *Arena) Site(id NodeID) source.Span {
	a.mustOwnNode(id)
	return a.sites[id.Offset()]
}

// Payload returns the raw payload stored at id. Typed accessors in nodes.go
// wrap this with a tag check.
func (a *Arena) Payload(id NodeID) any {
	a.mustOwnNode(id)
	return a.payloads[id.Offset()]
}

// Parent returns the lexical parent recorded by the scoper, and whether one
// has been recorded yet. The module's own scope identity has no parent.
func (a *Arena) Parent(id NodeID) (NodeID, bool) {
	if id.IsModuleScope() {
		return NodeID(0), false
	}
	a.mustOwnNode(id)
	p := a.parent[id.Offset()]
	if p < 0 {
		return NodeID(0), false
	}
	return NodeID(p), true
}

// SetParent records id's lexical parent. Called only by the scoper.
func (a *Arena) SetParent(id NodeID, parent NodeID) {
	a.mustOwnNode(id)
	a.parent[id.Offset()] = int64(parent)
}

// Declarations returns the declarations the scoper found lexically within
// scope, in source order. scope must be a node for which IsScope() is true,
// or the module's own scope identity.
func (a *Arena) Declarations(scope NodeID) []DeclarationID {
	return a.scopeToDeclarations[scope.Offset()]
}

// AppendDeclaration records decl as lexically contained in scope. Called
// only by the scoper.
func (a *Arena) AppendDeclaration(scope NodeID, decl DeclarationID) {
	a.scopeToDeclarations[scope.Offset()] = append(a.scopeToDeclarations[scope.Offset()], decl)
}

func (a *Arena) mustOwn(id NodeID) {
	if id.Module() != a.module {
		panic(fmt.Errorf("ast: node %d does not belong to module %d", id, a.module))
	}
}

func (a *Arena) mustOwnNode(id NodeID) {
	a.mustOwn(id)
	if id.IsModuleScope() {
		panic(fmt.Errorf("ast: node %d is the module scope sentinel, not a real node", id))
	}
}
