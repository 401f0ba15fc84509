package ast

// NodeID is the packed 64-bit identity of every syntax node: the high 32
// bits name the owning module (source file), the low 32 bits name the
// node's offset within that module's arena. NodeIDs are stable for the
// lifetime of a module: nodes are never deleted and never renumbered.
type NodeID uint64

// ModuleScopeOffset is the sentinel offset meaning "the module itself, used
// as the outermost scope" rather than a real arena slot.
const ModuleScopeOffset = ^uint32(0)

// MakeNodeID packs a module index and an arena offset into a NodeID.
func MakeNodeID(module, offset uint32) NodeID {
	return NodeID(module)<<32 | NodeID(offset)
}

// ModuleScope returns the identity standing for module m's own scope.
func ModuleScope(module uint32) NodeID {
	return MakeNodeID(module, ModuleScopeOffset)
}

// Module returns the module index encoded in id.
func (id NodeID) Module() uint32 { return uint32(id >> 32) }

// Offset returns the arena offset encoded in id.
func (id NodeID) Offset() uint32 { return uint32(id) }

// IsModuleScope reports whether id stands for its module's own scope rather
// than a real node.
func (id NodeID) IsModuleScope() bool { return id.Offset() == ModuleScopeOffset }

// category-wrapped identities, per §3.3. Each wraps the erased NodeID; the
// wrapping exists purely to keep call sites honest about what kind of node
// they are holding, not to change representation.
type (
	DeclarationID NodeID
	ExpressionID  NodeID
	PatternID     NodeID
	StatementID   NodeID
	ConditionID   NodeID
	ElseID        NodeID
)

func (id DeclarationID) NodeID() NodeID { return NodeID(id) }
func (id ExpressionID) NodeID() NodeID  { return NodeID(id) }
func (id PatternID) NodeID() NodeID     { return NodeID(id) }
func (id StatementID) NodeID() NodeID   { return NodeID(id) }
func (id ConditionID) NodeID() NodeID   { return NodeID(id) }
func (id ElseID) NodeID() NodeID        { return NodeID(id) }

// per-node-kind identities used where the lowerer and scoper need to name a
// specific declaration shape rather than the whole Declaration category.
type (
	BindingDeclarationID  NodeID
	FunctionDeclarationID NodeID
	ParameterID           NodeID
	StructDeclarationID   NodeID
	TraitDeclarationID     NodeID
	FieldDeclarationID    NodeID
	VariableDeclarationID NodeID
	ImportDeclarationID   NodeID
)

func (id FunctionDeclarationID) NodeID() NodeID { return NodeID(id) }
func (id BindingDeclarationID) NodeID() NodeID  { return NodeID(id) }
func (id StructDeclarationID) NodeID() NodeID   { return NodeID(id) }
func (id TraitDeclarationID) NodeID() NodeID    { return NodeID(id) }
func (id FieldDeclarationID) NodeID() NodeID    { return NodeID(id) }
func (id VariableDeclarationID) NodeID() NodeID { return NodeID(id) }
func (id ImportDeclarationID) NodeID() NodeID   { return NodeID(id) }
func (id ParameterID) NodeID() NodeID           { return NodeID(id) }
