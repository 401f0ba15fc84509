package ast

import "dyva/internal/source"

// Module is one parsed `.dyva` source file: its arena plus the top-level
// sequence the parser produced. AsMain files hold statements at the top
// level (§4.2); library files hold declarations.
type Module struct {
	Index   uint32
	File    *source.File
	Arena   *Arena
	AsMain  bool
	Stmts   []StatementID   // populated when AsMain
	Decls   []DeclarationID // populated when !AsMain
	Interner *source.Interner
}

// NewModule creates an empty Module over f, ready for the parser to fill.
func NewModule(index uint32, f *source.File, asMain bool, interner *source.Interner) *Module {
	return &Module{
		Index:    index,
		File:     f,
		Arena:    NewArena(index),
		AsMain:   asMain,
		Interner: interner,
	}
}

// Scope returns this module's own scope identity, used as the root of the
// parent chain and as the key for top-level declarations.
func (m *Module) Scope() NodeID { return ModuleScope(m.Index) }

// Labels returns the ABI-relevant argument labels of a function
// declaration, in parameter order, per §4.3's `labels(of:)` helper.
func Labels(a *Arena, fn *Function) []source.StringID {
	labels := make([]source.StringID, len(fn.Params))
	for i, pid := range fn.Params {
		p, ok := a.AsParameter(pid.NodeID())
		if !ok {
			continue
		}
		if p.Label != source.NoStringID {
			labels[i] = p.Label
		} else {
			labels[i] = p.Identifier
		}
	}
	return labels
}
