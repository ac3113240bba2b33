// Package lower drives CFG construction from a parsed SMPL program.
package lower

import (
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/tliron/commonlog"

	"smpl/grammar"
	"smpl/internal/errors"
	"smpl/internal/ir"
	"smpl/internal/parser"
	"smpl/token"
)

// Result is the outcome of lowering one program.
type Result struct {
	CFG         *ir.CFG
	Names       *token.Table
	Diagnostics []errors.CompilerError
}

// HasErrors reports whether any diagnostic carries an error code.
func (r *Result) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if !errors.IsWarning(d.Code) {
			return true
		}
	}
	return false
}

// Warnings returns the non-fatal diagnostics.
func (r *Result) Warnings() []errors.CompilerError {
	var out []errors.CompilerError
	for _, d := range r.Diagnostics {
		if errors.IsWarning(d.Code) {
			out = append(out, d)
		}
	}
	return out
}

type lowerer struct {
	g      *ir.CFG
	names  *token.Table
	log    commonlog.Logger
	consts map[int64]ir.Handle
	diags  []errors.CompilerError

	// set by the graph when the read being resolved reached the entry block
	unassigned bool
	silent     bool
}

// Lower builds the CFG of program. The returned error is set only when the
// graph construction protocol was violated; source problems are reported
// as diagnostics in the result.
func Lower(program *grammar.Computation) (*Result, error) {
	l := &lowerer{
		names:  token.NewTable(),
		log:    commonlog.GetLogger("smpl.lower"),
		consts: make(map[int64]ir.Handle),
	}
	l.g = ir.New(
		ir.WithNames(l.names),
		ir.WithReporter(l),
		ir.WithLogger(commonlog.GetLogger("smpl.ir")),
	)

	// handle 0 doubles as the value of uninitialized reads, so it must hold 0
	if _, err := l.constant(0); err != nil {
		return nil, err
	}

	for _, decl := range program.Vars {
		for _, name := range decl.Names {
			if !l.g.Declare(l.names.Intern(name.Value)) {
				l.diags = append(l.diags, errors.DuplicateDeclaration(name.Value, parser.PositionOf(name.Pos)))
			}
		}
	}

	if err := l.statements(program.Body); err != nil {
		return nil, err
	}
	l.g.Emit(ir.OpEnd, ir.Nullary())

	l.log.Debugf("lowered %d blocks, %d instructions", l.g.NumBlocks(), l.g.NumInstrs())
	return &Result{CFG: l.g, Names: l.names, Diagnostics: l.diags}, nil
}

// Compile parses and lowers source. Parse errors are returned as
// diagnostics with a nil graph.
func Compile(filename, source string) (*Result, error) {
	program, parseErrors := parser.ParseSource(filename, source)
	if len(parseErrors) > 0 {
		res := &Result{Names: token.NewTable()}
		for _, pe := range parseErrors {
			res.Diagnostics = append(res.Diagnostics, pe.Diagnostic())
		}
		return res, nil
	}
	return Lower(program)
}

// UseBeforeDefinition implements ir.Reporter. The diagnostic itself is
// raised by read once the whole resolution is known.
func (l *lowerer) UseBeforeDefinition(token.Ident, string) {
	if !l.silent {
		l.unassigned = true
	}
}

func (l *lowerer) statements(list []*grammar.Statement) error {
	for i, s := range list {
		returned, err := l.statement(s)
		if err != nil {
			return err
		}
		if returned && i < len(list)-1 {
			l.diags = append(l.diags, errors.UnreachableCode(parser.PositionOf(list[i+1].Pos)))
			return nil
		}
	}
	return nil
}

// statement lowers s and reports whether it was a return.
func (l *lowerer) statement(s *grammar.Statement) (bool, error) {
	switch {
	case s.Let != nil:
		return false, l.assignment(s.Let)
	case s.Call != nil:
		_, err := l.call(s.Call)
		return false, err
	case s.If != nil:
		return false, l.ifStmt(s.If)
	case s.While != nil:
		return false, l.whileStmt(s.While)
	case s.Return != nil:
		return true, l.returnStmt(s.Return)
	}
	return false, nil
}

func (l *lowerer) assignment(a *grammar.Assignment) error {
	id, ok := l.declared(&a.Name)
	value, err := l.expression(a.Value)
	if err != nil || !ok {
		return err
	}
	return l.g.Define(l.g.Current(), id, value)
}

func (l *lowerer) returnStmt(r *grammar.ReturnStmt) error {
	value := ir.Uninitialized
	if r.Value != nil {
		var err error
		if value, err = l.expression(r.Value); err != nil {
			return err
		}
	}
	l.g.Emit(ir.OpRet, ir.Unary(value))
	return nil
}

// declared interns name and reports an error when it was never declared.
func (l *lowerer) declared(name *grammar.PosIdent) (token.Ident, bool) {
	id := l.names.Intern(name.Value)
	if l.g.IsDeclared(id) {
		return id, true
	}
	l.diags = append(l.diags, errors.UndefinedVariable(name.Value, parser.PositionOf(name.Pos), l.declaredNames()))
	return id, false
}

func (l *lowerer) declaredNames() []string {
	var names []string
	for i := 0; i < l.names.Len(); i++ {
		if l.g.IsDeclared(token.Ident(i)) {
			names = append(names, l.names.Display(token.Ident(i)))
		}
	}
	return names
}

// read resolves the current value of id, reporting at pos when some path
// to it never assigns id.
func (l *lowerer) read(id token.Ident, pos lexer.Position) (ir.Handle, error) {
	l.unassigned = false
	h, ok, err := l.g.Resolve(l.g.Current(), id)
	if err != nil {
		return 0, err
	}
	if !ok {
		h, l.unassigned = ir.Uninitialized, true
	}
	if l.unassigned {
		partial := h != ir.Uninitialized
		l.diags = append(l.diags, errors.UseBeforeDefinition(l.names.Display(id), parser.PositionOf(pos), partial))
	}
	return h, nil
}

// constant returns the instruction holding v in the constant block.
func (l *lowerer) constant(v int64) (ir.Handle, error) {
	if h, ok := l.consts[v]; ok {
		return h, nil
	}
	block := l.g.ConstBlock()
	h, err := l.g.InsertInstr(ir.KindOp, ir.OpConst, &block, ir.Payload(v))
	if err != nil {
		return 0, err
	}
	l.consts[v] = h
	return h, nil
}
