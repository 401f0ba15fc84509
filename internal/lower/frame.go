package lower

import (
	"dyva/internal/ast"
	"dyva/internal/ir"
)

// frame binds names to values within one lexical scope (§4.6's "frame
// records scope identity and a map Name→IRValue").
type frame struct {
	scope ast.NodeID
	names map[string]ir.Value
}

func newFrame(scope ast.NodeID) *frame {
	return &frame{scope: scope, names: make(map[string]ir.Value)}
}

// context is the lowerer's mutable cursor: which function it is building,
// which block instructions are currently appended to, and the stack of
// open frames. Control-flow lowering swaps context.block as it opens new
// blocks; withClearContext saves and restores the whole struct when the
// lowerer has to step aside to lower another function's body.
type context struct {
	fn     *ir.Function
	block  ir.BlockID
	frames []*frame
}

func (c *context) locals() *frame { return c.frames[len(c.frames)-1] }

func (c *context) pushFrame(scope ast.NodeID) { c.frames = append(c.frames, newFrame(scope)) }

func (c *context) popFrame() { c.frames = c.frames[:len(c.frames)-1] }

// within runs fn with a new frame pushed for scope, then pops it, per
// §4.6's "within(frame){...}" helper.
func (c *context) within(scope ast.NodeID, fn func()) {
	c.pushFrame(scope)
	defer c.popFrame()
	fn()
}

// lookup searches frames innermost to outermost for name, per the first
// half of §4.6.1's unqualified name lookup.
func (c *context) lookup(name string) (ir.Value, bool) {
	for i := len(c.frames) - 1; i >= 0; i-- {
		if v, ok := c.frames[i].names[name]; ok {
			return v, true
		}
	}
	return ir.Value{}, false
}
