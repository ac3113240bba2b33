package ir

import (
	"sort"

	"github.com/pkg/errors"

	"smpl/token"
)

// BlockID is the dense index of a basic block, assigned in creation order.
type BlockID int

// NoBlock is the dominance predecessor of blocks that have none.
const NoBlock BlockID = -1

// BasicBlock is an ordered list of instruction handles, phis first, plus the
// block-local definition of each variable.
type BasicBlock struct {
	ID      BlockID
	instrs  []Handle
	numPhis int
	defs    map[token.Ident]Handle
}

func newBasicBlock(id BlockID) *BasicBlock {
	return &BasicBlock{
		ID:   id,
		defs: make(map[token.Ident]Handle),
	}
}

// Append adds h to the block. Phis go right after the last existing phi,
// everything else goes at the end.
func (bb *BasicBlock) Append(h Handle, isPhi bool) {
	if !isPhi {
		bb.instrs = append(bb.instrs, h)
		return
	}
	bb.instrs = append(bb.instrs, 0)
	copy(bb.instrs[bb.numPhis+1:], bb.instrs[bb.numPhis:])
	bb.instrs[bb.numPhis] = h
	bb.numPhis++
}

// FirstInstr returns the first instruction of the block, if any.
func (bb *BasicBlock) FirstInstr() (Handle, bool) {
	if len(bb.instrs) == 0 {
		return 0, false
	}
	return bb.instrs[0], true
}

// EvictIfEmpty removes the leading instruction when it is the empty
// placeholder and returns its handle so the slot can be reused.
func (bb *BasicBlock) EvictIfEmpty(arena *Arena) (Handle, bool) {
	h, ok := bb.FirstInstr()
	if !ok {
		return 0, false
	}
	node, err := arena.Get(h)
	if err != nil || !node.IsEmpty() {
		return 0, false
	}
	bb.instrs = bb.instrs[1:]
	return h, true
}

// Define sets the block's current definition of id.
func (bb *BasicBlock) Define(id token.Ident, h Handle) {
	bb.defs[id] = h
}

func (bb *BasicBlock) Defines(id token.Ident) bool {
	_, ok := bb.defs[id]
	return ok
}

// Lookup returns the block-local definition of id. Callers are expected to
// check Defines first.
func (bb *BasicBlock) Lookup(id token.Ident) (Handle, error) {
	h, ok := bb.defs[id]
	if !ok {
		return 0, errors.Wrapf(ErrUndefinedLocally, "ident %d in BB%d", id, bb.ID)
	}
	return h, nil
}

// Instrs returns a copy of the block's instruction list.
func (bb *BasicBlock) Instrs() []Handle {
	out := make([]Handle, len(bb.instrs))
	copy(out, bb.instrs)
	return out
}

func (bb *BasicBlock) Len() int { return len(bb.instrs) }

func (bb *BasicBlock) NumPhis() int { return bb.numPhis }

// Phis returns the leading phi handles.
func (bb *BasicBlock) Phis() []Handle {
	return bb.Instrs()[:bb.numPhis]
}

// Definition pairs a variable with its defining instruction.
type Definition struct {
	Ident token.Ident
	Instr Handle
}

// Definitions returns the local definitions ordered by identifier.
func (bb *BasicBlock) Definitions() []Definition {
	defs := make([]Definition, 0, len(bb.defs))
	for id, h := range bb.defs {
		defs = append(defs, Definition{Ident: id, Instr: h})
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Ident < defs[j].Ident })
	return defs
}
