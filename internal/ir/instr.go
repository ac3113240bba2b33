package ir

import (
	"fmt"

	"smpl/token"
)

// Handle identifies an instruction in the arena. Handles are dense, start
// at 0 and are never reused or freed.
type Handle int

// Uninitialized is the value substituted for a variable read before any
// assignment reaches it.
const Uninitialized Handle = 0

// Kind distinguishes placeholder nodes from real operations.
type Kind int

const (
	KindEmpty Kind = iota // placeholder held by a block with no real instruction yet
	KindOp                // operation with an opcode and two operand handles
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindOp:
		return "op"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Opcode is the closed set of instruction tags. Only OpEmpty and OpPhi carry
// meaning for graph construction, the rest are payloads for later stages.
type Opcode int

const (
	OpEmpty Opcode = iota
	OpPhi
	OpConst
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpNeg
	OpCmp
	OpRead
	OpWrite
	OpWriteNL
	OpCall
	OpBra
	OpBne
	OpBeq
	OpBle
	OpBlt
	OpBge
	OpBgt
	OpRet
	OpEnd
)

var opcodeNames = [...]string{
	OpEmpty:   "<empty>",
	OpPhi:     "phi",
	OpConst:   "const",
	OpAdd:     "add",
	OpSub:     "sub",
	OpMul:     "mul",
	OpDiv:     "div",
	OpNeg:     "neg",
	OpCmp:     "cmp",
	OpRead:    "read",
	OpWrite:   "write",
	OpWriteNL: "writeNL",
	OpCall:    "call",
	OpBra:     "bra",
	OpBne:     "bne",
	OpBeq:     "beq",
	OpBle:     "ble",
	OpBlt:     "blt",
	OpBge:     "bge",
	OpBgt:     "bgt",
	OpRet:     "ret",
	OpEnd:     "end",
}

func (op Opcode) String() string {
	if op >= 0 && int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return fmt.Sprintf("op(%d)", int(op))
}

// IsBranch reports whether the opcode transfers control to the block in Aux.
func (op Opcode) IsBranch() bool {
	return op >= OpBra && op <= OpBgt
}

// Operand names a patchable operand slot of an operation.
type Operand int

const (
	OperandLeft Operand = iota
	OperandRight
)

func (o Operand) String() string {
	if o == OperandLeft {
		return "left"
	}
	return "right"
}

// NoOperand marks an unused operand slot.
const NoOperand Handle = -1

// Fields carries the initial field values of a new operation node.
type Fields struct {
	Left  Handle
	Right Handle
	Aux   int64 // opaque payload: constant value, branch target, callee
}

// Operands builds Fields for a two-operand instruction.
func Operands(left, right Handle) Fields {
	return Fields{Left: left, Right: right}
}

// Unary builds Fields for an instruction with a single operand.
func Unary(x Handle) Fields {
	return Fields{Left: x, Right: NoOperand}
}

// Nullary builds Fields for an instruction with no operands.
func Nullary() Fields {
	return Fields{Left: NoOperand, Right: NoOperand}
}

// Payload builds Fields for an operand-free instruction carrying aux.
func Payload(aux int64) Fields {
	return Fields{Left: NoOperand, Right: NoOperand, Aux: aux}
}

// Instr is a single node in the arena.
type Instr struct {
	Kind  Kind
	Op    Opcode
	Left  Handle
	Right Handle
	Aux   int64
}

func (i *Instr) IsEmpty() bool { return i.Kind == KindEmpty }

func (i *Instr) IsPhi() bool { return i.Kind == KindOp && i.Op == OpPhi }

func (i *Instr) String() string {
	return i.Format(nil)
}

// Format renders the node like String, naming call targets through names
// when it is not nil.
func (i *Instr) Format(names Namer) string {
	if i.Kind == KindEmpty {
		return OpEmpty.String()
	}
	switch {
	case i.Op == OpConst:
		return fmt.Sprintf("const #%d", i.Aux)
	case i.Op == OpCall:
		callee := fmt.Sprintf("#%d", i.Aux)
		if names != nil {
			callee = names.Display(token.Ident(i.Aux))
		}
		return "call " + callee + i.operands()
	case i.Op.IsBranch():
		return fmt.Sprintf("%s%s BB%d", i.Op, i.operands(), i.Aux)
	}
	return i.Op.String() + i.operands()
}

func (i *Instr) operands() string {
	switch {
	case i.Left == NoOperand && i.Right == NoOperand:
		return ""
	case i.Right == NoOperand:
		return fmt.Sprintf(" (%d)", i.Left)
	case i.Left == NoOperand:
		return fmt.Sprintf(" _ (%d)", i.Right)
	}
	return fmt.Sprintf(" (%d) (%d)", i.Left, i.Right)
}
