package ir

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"

	"smpl/token"
)

// Reporter receives non-fatal diagnostics raised while building the graph.
type Reporter interface {
	UseBeforeDefinition(id token.Ident, name string)
}

// Namer maps identifiers back to source names for diagnostics.
type Namer interface {
	Display(id token.Ident) string
}

type discardReporter struct{}

func (discardReporter) UseBeforeDefinition(token.Ident, string) {}

// Option configures a CFG.
type Option func(*CFG)

func WithLogger(log commonlog.Logger) Option {
	return func(g *CFG) { g.log = log }
}

func WithReporter(r Reporter) Option {
	return func(g *CFG) { g.reporter = r }
}

func WithNames(n Namer) Option {
	return func(g *CFG) { g.names = n }
}

// CFG is the control-flow graph of one compilation unit under construction.
// It owns the instruction arena and all basic blocks, and tracks the
// predecessor, successor and dominance-predecessor tables by block id.
type CFG struct {
	arena  *Arena
	blocks []*BasicBlock

	preds    [][]BlockID
	succs    [][]BlockID
	domPreds []BlockID

	constBlock *BasicBlock
	current    *BasicBlock

	declared mapset.Set[token.Ident]

	log      commonlog.Logger
	reporter Reporter
	names    Namer
}

// New creates a graph with its fixed scaffolding: the entry/constant block 0
// and block 1, whose structural predecessor is block 0. Block 1 is given no
// dominance predecessor. The cursor is left on block 1.
func New(opts ...Option) *CFG {
	g := &CFG{
		arena:    NewArena(),
		declared: mapset.NewThreadUnsafeSet[token.Ident](),
		log:      commonlog.GetLogger("smpl.ir"),
		reporter: discardReporter{},
		names:    token.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}

	entry, err := g.CreateBlock(nil)
	if err != nil {
		panic(err)
	}
	if _, err := g.CreateBlock([]BlockID{entry}, []BlockID{}); err != nil {
		panic(err)
	}
	g.constBlock = g.blocks[entry]
	return g
}

// CreateBlock appends a new block with the given structural predecessors.
// The dominance predecessor is the first element of domPreds when given,
// otherwise of preds; NoBlock when that list is empty. A predecessor may name
// the new block itself. The new block holds one empty placeholder and
// becomes the current block.
func (g *CFG) CreateBlock(preds []BlockID, domPreds ...[]BlockID) (BlockID, error) {
	id := BlockID(len(g.blocks))
	for _, p := range preds {
		if p < 0 || p > id {
			return NoBlock, errors.Wrapf(ErrOutOfRange, "predecessor BB%d of new BB%d", p, id)
		}
	}

	dom := preds
	if len(domPreds) > 0 {
		dom = domPreds[0]
	}
	idom := NoBlock
	if len(dom) > 0 {
		idom = dom[0]
		if idom < 0 || idom > id {
			return NoBlock, errors.Wrapf(ErrOutOfRange, "dominance predecessor BB%d of new BB%d", idom, id)
		}
	}

	bb := newBasicBlock(id)
	g.blocks = append(g.blocks, bb)
	g.current = bb
	g.preds = append(g.preds, append([]BlockID(nil), preds...))
	g.succs = append(g.succs, nil)
	g.domPreds = append(g.domPreds, idom)

	if _, err := g.InsertInstr(KindEmpty, OpEmpty, &id, Nullary()); err != nil {
		return NoBlock, err
	}

	for _, p := range preds {
		g.succs[p] = append(g.succs[p], id)
	}

	g.log.Debugf("created BB%d preds=%v idom=%d", id, preds, idom)
	return id, nil
}

// AddEdge records an edge discovered after both blocks exist, such as a
// loop back-edge. Edges are never removed.
func (g *CFG) AddEdge(from, to BlockID) error {
	if !g.validBlock(from) || !g.validBlock(to) {
		return errors.Wrapf(ErrOutOfRange, "edge BB%d -> BB%d", from, to)
	}
	g.preds[to] = append(g.preds[to], from)
	g.succs[from] = append(g.succs[from], to)
	g.log.Debugf("added edge BB%d -> BB%d", from, to)
	return nil
}

// InsertInstr stores a new instruction in target, or in the current block
// when target is nil. If the block still holds its empty placeholder the
// placeholder is evicted and its slot reused. Phis are kept at the head of
// the block.
func (g *CFG) InsertInstr(kind Kind, op Opcode, target *BlockID, fields Fields) (Handle, error) {
	bb := g.current
	if target != nil {
		var err error
		if bb, err = g.Block(*target); err != nil {
			return 0, err
		}
	}

	var reuse *Handle
	if h, ok := bb.EvictIfEmpty(g.arena); ok {
		g.log.Debugf("evicted placeholder %d from BB%d", h, bb.ID)
		reuse = &h
	}

	h := g.arena.Alloc(kind, op, reuse, fields)
	bb.Append(h, kind == KindOp && op == OpPhi)
	return h, nil
}

// Emit inserts an operation into the current block.
func (g *CFG) Emit(op Opcode, fields Fields) Handle {
	h, err := g.InsertInstr(KindOp, op, nil, fields)
	if err != nil {
		// the current block always exists
		panic(err)
	}
	return h
}

// UpdateInstr patches operand slots of an already inserted operation.
func (g *CFG) UpdateInstr(h Handle, changes map[Operand]Handle) error {
	return g.arena.Update(h, changes)
}

// Define records h as the definition of id in block b.
func (g *CFG) Define(b BlockID, id token.Ident, h Handle) error {
	bb, err := g.Block(b)
	if err != nil {
		return err
	}
	bb.Define(id, h)
	return nil
}

func (g *CFG) Block(id BlockID) (*BasicBlock, error) {
	if !g.validBlock(id) {
		return nil, errors.Wrapf(ErrOutOfRange, "block BB%d (graph holds %d)", id, len(g.blocks))
	}
	return g.blocks[id], nil
}

func (g *CFG) Instr(h Handle) (*Instr, error) {
	return g.arena.Get(h)
}

// Predecessors returns a copy of the structural predecessors of id.
func (g *CFG) Predecessors(id BlockID) []BlockID {
	if !g.validBlock(id) {
		return nil
	}
	return append([]BlockID(nil), g.preds[id]...)
}

// Successors returns a copy of the successors of id.
func (g *CFG) Successors(id BlockID) []BlockID {
	if !g.validBlock(id) {
		return nil
	}
	return append([]BlockID(nil), g.succs[id]...)
}

// DomPredecessor returns the recorded immediate dominator of id, or NoBlock.
func (g *CFG) DomPredecessor(id BlockID) BlockID {
	if !g.validBlock(id) {
		return NoBlock
	}
	return g.domPreds[id]
}

func (g *CFG) Current() BlockID { return g.current.ID }

// SetCurrent moves the insertion cursor to id.
func (g *CFG) SetCurrent(id BlockID) error {
	bb, err := g.Block(id)
	if err != nil {
		return err
	}
	g.current = bb
	return nil
}

// ConstBlock is the entry block, which also holds program constants.
func (g *CFG) ConstBlock() BlockID { return g.constBlock.ID }

func (g *CFG) NumBlocks() int { return len(g.blocks) }

func (g *CFG) NumInstrs() int { return g.arena.Len() }

// Declare marks id as a declared variable. It returns false if it already was.
func (g *CFG) Declare(id token.Ident) bool {
	return g.declared.Add(id)
}

func (g *CFG) IsDeclared(id token.Ident) bool {
	return g.declared.Contains(id)
}

func (g *CFG) validBlock(id BlockID) bool {
	return id >= 0 && int(id) < len(g.blocks)
}
