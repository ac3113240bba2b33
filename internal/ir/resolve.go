package ir

import (
	mapset "github.com/deckarep/golang-set/v2"

	"smpl/token"
)

// Visited is the set of blocks already entered by one resolution request.
type Visited = mapset.Set[BlockID]

func NewVisited() Visited {
	return mapset.NewThreadUnsafeSet[BlockID]()
}

// Resolve finds the definition of id reaching block b, using a visited set
// scoped to this request.
func (g *CFG) Resolve(b BlockID, id token.Ident) (Handle, bool, error) {
	return g.ResolveVariable(b, id, NewVisited())
}

// ResolveVariable walks backwards from b through structural predecessors
// and returns the definition of id that reaches b. visited must be shared by
// every frame of one request; a block already in it yields no definition.
//
// When the first two definitions found on the predecessors differ, a phi
// merging them is inserted at the head of b and becomes b's definition of
// id. Only the first two are compared: with three or more predecessors
// carrying distinct values the remaining ones are ignored, and a list whose
// first two entries agree but whose others do not yields no definition.
//
// Reaching the entry block without a definition reports a use before
// definition and yields Uninitialized.
func (g *CFG) ResolveVariable(b BlockID, id token.Ident, visited Visited) (Handle, bool, error) {
	bb, err := g.Block(b)
	if err != nil {
		return 0, false, err
	}
	if !visited.Add(b) {
		return 0, false, nil
	}
	if bb.Defines(id) {
		h, err := bb.Lookup(id)
		return h, err == nil, err
	}

	var candidates []Handle
	for _, p := range g.preds[b] {
		h, ok, err := g.ResolveVariable(p, id, visited)
		if err != nil {
			return 0, false, err
		}
		if ok {
			candidates = append(candidates, h)
		}
	}

	switch {
	case len(candidates) > 1 && candidates[0] != candidates[1]:
		phi, err := g.InsertInstr(KindOp, OpPhi, &b, Operands(candidates[0], candidates[1]))
		if err != nil {
			return 0, false, err
		}
		bb.Define(id, phi)
		g.log.Debugf("BB%d: phi %d merges %s = (%d, %d)", b, phi, g.names.Display(id), candidates[0], candidates[1])
		return phi, true, nil

	case allEqual(candidates):
		return candidates[0], true, nil

	case len(candidates) == 0 && bb == g.constBlock:
		name := g.names.Display(id)
		g.log.Warningf("%s referenced before assignment", name)
		g.reporter.UseBeforeDefinition(id, name)
		return Uninitialized, true, nil
	}

	return 0, false, nil
}

func allEqual(hs []Handle) bool {
	if len(hs) == 0 {
		return false
	}
	for _, h := range hs[1:] {
		if h != hs[0] {
			return false
		}
	}
	return true
}
