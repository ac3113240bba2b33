package lower

import (
	"smpl/grammar"
	"smpl/internal/errors"
	"smpl/internal/ir"
	"smpl/internal/parser"
)

var binaryOps = map[string]ir.Opcode{
	"+": ir.OpAdd,
	"-": ir.OpSub,
	"*": ir.OpMul,
	"/": ir.OpDiv,
}

type builtin struct {
	op    ir.Opcode
	arity int
	value bool // produces a value usable in expressions
}

var builtins = map[string]builtin{
	"InputNum":      {op: ir.OpRead, arity: 0, value: true},
	"OutputNum":     {op: ir.OpWrite, arity: 1},
	"OutputNewLine": {op: ir.OpWriteNL, arity: 0},
}

// IsBuiltin reports whether name is one of the I/O built-ins.
func IsBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

func (l *lowerer) expression(e *grammar.Expression) (ir.Handle, error) {
	acc, err := l.term(e.Head)
	if err != nil {
		return 0, err
	}
	for _, t := range e.Tail {
		rhs, err := l.term(t.Term)
		if err != nil {
			return 0, err
		}
		acc = l.g.Emit(binaryOps[t.Op], ir.Operands(acc, rhs))
	}
	return acc, nil
}

func (l *lowerer) term(t *grammar.Term) (ir.Handle, error) {
	acc, err := l.factor(t.Head)
	if err != nil {
		return 0, err
	}
	for _, f := range t.Tail {
		rhs, err := l.factor(f.Factor)
		if err != nil {
			return 0, err
		}
		acc = l.g.Emit(binaryOps[f.Op], ir.Operands(acc, rhs))
	}
	return acc, nil
}

func (l *lowerer) factor(f *grammar.Factor) (ir.Handle, error) {
	switch {
	case f.Call != nil:
		return l.call(f.Call)
	case f.Ident != nil:
		id, ok := l.declared(f.Ident)
		if !ok {
			return ir.Uninitialized, nil
		}
		return l.read(id, f.Ident.Pos)
	case f.Number != nil:
		return l.constant(*f.Number)
	case f.Sub != nil:
		return l.expression(f.Sub)
	}
	return ir.Uninitialized, nil
}

// call lowers a built-in to its opcode, anything else to OpCall carrying
// the interned callee and up to two arguments.
func (l *lowerer) call(c *grammar.FuncCall) (ir.Handle, error) {
	args := make([]ir.Handle, 0, len(c.Args))
	for _, a := range c.Args {
		h, err := l.expression(a)
		if err != nil {
			return 0, err
		}
		args = append(args, h)
	}

	pos := parser.PositionOf(c.Name.Pos)
	if b, ok := builtins[c.Name.Value]; ok {
		if len(args) != b.arity {
			l.diags = append(l.diags, errors.InvalidArguments(c.Name.Value, b.arity, len(args), pos))
			return ir.Uninitialized, nil
		}
		fields := ir.Nullary()
		if b.arity == 1 {
			fields = ir.Unary(args[0])
		}
		return l.g.Emit(b.op, fields), nil
	}

	if len(args) > 2 {
		l.diags = append(l.diags, errors.InvalidArguments(c.Name.Value, 2, len(args), pos))
		return ir.Uninitialized, nil
	}
	fields := ir.Payload(int64(l.names.Intern(c.Name.Value)))
	if len(args) > 0 {
		fields.Left = args[0]
	}
	if len(args) > 1 {
		fields.Right = args[1]
	}
	return l.g.Emit(ir.OpCall, fields), nil
}
