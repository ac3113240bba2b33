package ir

import "github.com/pkg/errors"

// Arena owns every instruction node of a graph. It only grows.
type Arena struct {
	nodes []Instr
}

func NewArena() *Arena {
	return &Arena{}
}

// Alloc stores a node of the given kind. When reuse names an existing node,
// that slot is overwritten in place and its handle returned, otherwise a
// fresh handle is appended.
func (a *Arena) Alloc(kind Kind, op Opcode, reuse *Handle, fields Fields) Handle {
	node := Instr{Kind: kind, Op: op, Left: fields.Left, Right: fields.Right, Aux: fields.Aux}
	if kind == KindEmpty {
		node = Instr{Kind: KindEmpty, Op: OpEmpty, Left: NoOperand, Right: NoOperand}
	}

	if reuse != nil && a.valid(*reuse) {
		a.nodes[*reuse] = node
		return *reuse
	}

	a.nodes = append(a.nodes, node)
	return Handle(len(a.nodes) - 1)
}

// Get returns the node stored at h.
func (a *Arena) Get(h Handle) (*Instr, error) {
	if !a.valid(h) {
		return nil, errors.Wrapf(ErrOutOfRange, "instruction %d (arena holds %d)", h, len(a.nodes))
	}
	return &a.nodes[h], nil
}

// Update rewrites operand slots of the operation at h in place.
func (a *Arena) Update(h Handle, changes map[Operand]Handle) error {
	node, err := a.Get(h)
	if err != nil {
		return err
	}
	if node.Kind != KindOp {
		return errors.Wrapf(ErrInvalidNodeKind, "instruction %d is %s, only operations can be updated", h, node.Kind)
	}

	// Reject the whole change set before touching the node.
	for slot := range changes {
		if slot != OperandLeft && slot != OperandRight {
			return errors.Wrapf(ErrOutOfRange, "instruction %d has no operand slot %d", h, int(slot))
		}
	}
	if left, ok := changes[OperandLeft]; ok {
		node.Left = left
	}
	if right, ok := changes[OperandRight]; ok {
		node.Right = right
	}
	return nil
}

func (a *Arena) Len() int {
	return len(a.nodes)
}

func (a *Arena) valid(h Handle) bool {
	return h >= 0 && int(h) < len(a.nodes)
}
