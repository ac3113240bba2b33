package lower

import (
	"smpl/grammar"
	"smpl/internal/ir"
	"smpl/token"
)

// negatedBranch maps a relation to the branch taken when it is false.
var negatedBranch = map[string]ir.Opcode{
	"==": ir.OpBne,
	"!=": ir.OpBeq,
	"<":  ir.OpBge,
	"<=": ir.OpBgt,
	">":  ir.OpBle,
	">=": ir.OpBlt,
}

func (l *lowerer) relation(r *grammar.Relation) (ir.Handle, ir.Opcode, error) {
	lhs, err := l.expression(r.Left)
	if err != nil {
		return 0, 0, err
	}
	rhs, err := l.expression(r.Right)
	if err != nil {
		return 0, 0, err
	}
	return l.g.Emit(ir.OpCmp, ir.Operands(lhs, rhs)), negatedBranch[r.Op], nil
}

// emitIn appends an operation to block b without moving the cursor.
func (l *lowerer) emitIn(b ir.BlockID, op ir.Opcode, fields ir.Fields) error {
	_, err := l.g.InsertInstr(ir.KindOp, op, &b, fields)
	return err
}

func branchTo(cmp ir.Handle, target ir.BlockID) ir.Fields {
	return ir.Fields{Left: cmp, Right: ir.NoOperand, Aux: int64(target)}
}

// ifStmt lowers
//
//	cur: cmp; b<not cond> else|join
//	then: ...; bra join      (bra only with an else branch)
//	else: ...
//	join: dominated by cur
func (l *lowerer) ifStmt(s *grammar.IfStmt) error {
	cmp, br, err := l.relation(s.Cond)
	if err != nil {
		return err
	}
	cur := l.g.Current()

	if _, err := l.g.CreateBlock([]ir.BlockID{cur}); err != nil {
		return err
	}
	if err := l.statements(s.Then); err != nil {
		return err
	}
	thenEnd := l.g.Current()

	if !s.HasElse {
		join, err := l.g.CreateBlock([]ir.BlockID{thenEnd, cur}, []ir.BlockID{cur})
		if err != nil {
			return err
		}
		return l.emitIn(cur, br, branchTo(cmp, join))
	}

	elseStart, err := l.g.CreateBlock([]ir.BlockID{cur})
	if err != nil {
		return err
	}
	if err := l.emitIn(cur, br, branchTo(cmp, elseStart)); err != nil {
		return err
	}
	if err := l.statements(s.Else); err != nil {
		return err
	}
	elseEnd := l.g.Current()

	join, err := l.g.CreateBlock([]ir.BlockID{thenEnd, elseEnd}, []ir.BlockID{cur})
	if err != nil {
		return err
	}
	return l.emitIn(thenEnd, ir.OpBra, ir.Payload(int64(join)))
}

type loopPhi struct {
	id  token.Ident
	phi ir.Handle
}

// whileStmt lowers
//
//	header: phis; cmp; b<not cond> exit
//	body:   ...; bra header
//	exit:
//
// Every variable assigned in the body gets a header phi up front whose
// right operand is patched once the back-edge exists.
func (l *lowerer) whileStmt(s *grammar.WhileStmt) error {
	entry := l.g.Current()
	header, err := l.g.CreateBlock([]ir.BlockID{entry})
	if err != nil {
		return err
	}

	var phis []loopPhi
	for _, name := range assignedIn(s.Body) {
		id, ok := l.names.Lookup(name)
		if !ok || !l.g.IsDeclared(id) {
			continue
		}
		entryValue, err := l.quietly(entry, id)
		if err != nil {
			return err
		}
		phi, err := l.g.InsertInstr(ir.KindOp, ir.OpPhi, &header, ir.Operands(entryValue, entryValue))
		if err != nil {
			return err
		}
		if err := l.g.Define(header, id, phi); err != nil {
			return err
		}
		phis = append(phis, loopPhi{id: id, phi: phi})
	}

	cmp, br, err := l.relation(s.Cond)
	if err != nil {
		return err
	}

	if _, err := l.g.CreateBlock([]ir.BlockID{header}); err != nil {
		return err
	}
	if err := l.statements(s.Body); err != nil {
		return err
	}
	bodyEnd := l.g.Current()
	if err := l.emitIn(bodyEnd, ir.OpBra, ir.Payload(int64(header))); err != nil {
		return err
	}
	if err := l.g.AddEdge(bodyEnd, header); err != nil {
		return err
	}

	for _, p := range phis {
		carried, err := l.quietly(bodyEnd, p.id)
		if err != nil {
			return err
		}
		if err := l.g.UpdateInstr(p.phi, map[ir.Operand]ir.Handle{ir.OperandRight: carried}); err != nil {
			return err
		}
	}

	exit, err := l.g.CreateBlock([]ir.BlockID{header})
	if err != nil {
		return err
	}
	return l.emitIn(header, br, branchTo(cmp, exit))
}

// quietly resolves id at b without reporting use-before-definition.
func (l *lowerer) quietly(b ir.BlockID, id token.Ident) (ir.Handle, error) {
	prev := l.silent
	l.silent = true
	defer func() { l.silent = prev }()

	h, ok, err := l.g.Resolve(b, id)
	if err != nil || !ok {
		return ir.Uninitialized, err
	}
	return h, nil
}

// assignedIn lists, in first-assignment order, the names assigned anywhere
// in list including nested blocks.
func assignedIn(list []*grammar.Statement) []string {
	var out []string
	seen := make(map[string]bool)
	var walk func([]*grammar.Statement)
	walk = func(stmts []*grammar.Statement) {
		for _, s := range stmts {
			switch {
			case s.Let != nil:
				if name := s.Let.Name.Value; !seen[name] {
					seen[name] = true
					out = append(out, name)
				}
			case s.If != nil:
				walk(s.If.Then)
				walk(s.If.Else)
			case s.While != nil:
				walk(s.While.Body)
			}
		}
	}
	walk(list)
	return out
}
