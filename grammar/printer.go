package grammar

import (
	"fmt"
	"strings"
)

func indent(level int) string {
	return strings.Repeat("    ", level)
}

func (c *Computation) String() string {
	var b strings.Builder
	b.WriteString("main\n")
	for _, v := range c.Vars {
		b.WriteString(v.String() + "\n")
	}
	b.WriteString("{\n")
	writeStatements(&b, c.Body, 1)
	b.WriteString("}.\n")
	return b.String()
}

func (v *VarDecl) String() string {
	names := make([]string, len(v.Names))
	for i, n := range v.Names {
		names[i] = n.Value
	}
	return "var " + strings.Join(names, ", ") + ";"
}

func writeStatements(b *strings.Builder, list []*Statement, level int) {
	for i, s := range list {
		b.WriteString(s.StringWithIndent(level))
		if i < len(list)-1 {
			b.WriteString(";")
		}
		b.WriteString("\n")
	}
}

func (s *Statement) StringWithIndent(level int) string {
	switch {
	case s.Let != nil:
		return fmt.Sprintf("%slet %s <- %s", indent(level), s.Let.Name.Value, s.Let.Value)
	case s.Call != nil:
		return indent(level) + s.Call.String()
	case s.If != nil:
		var b strings.Builder
		b.WriteString(fmt.Sprintf("%sif %s then\n", indent(level), s.If.Cond))
		writeStatements(&b, s.If.Then, level+1)
		if s.If.HasElse {
			b.WriteString(indent(level) + "else\n")
			writeStatements(&b, s.If.Else, level+1)
		}
		b.WriteString(indent(level) + "fi")
		return b.String()
	case s.While != nil:
		var b strings.Builder
		b.WriteString(fmt.Sprintf("%swhile %s do\n", indent(level), s.While.Cond))
		writeStatements(&b, s.While.Body, level+1)
		b.WriteString(indent(level) + "od")
		return b.String()
	case s.Return != nil:
		if s.Return.Value == nil {
			return indent(level) + "return"
		}
		return fmt.Sprintf("%sreturn %s", indent(level), s.Return.Value)
	}
	return ""
}

func (f *FuncCall) String() string {
	if !f.Parens {
		return "call " + f.Name.Value
	}
	args := make([]string, len(f.Args))
	for i, a := range f.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("call %s(%s)", f.Name.Value, strings.Join(args, ", "))
}

func (r *Relation) String() string {
	return fmt.Sprintf("%s %s %s", r.Left, r.Op, r.Right)
}

func (e *Expression) String() string {
	var b strings.Builder
	b.WriteString(e.Head.String())
	for _, t := range e.Tail {
		b.WriteString(fmt.Sprintf(" %s %s", t.Op, t.Term))
	}
	return b.String()
}

func (t *Term) String() string {
	var b strings.Builder
	b.WriteString(t.Head.String())
	for _, f := range t.Tail {
		b.WriteString(fmt.Sprintf(" %s %s", f.Op, f.Factor))
	}
	return b.String()
}

func (f *Factor) String() string {
	switch {
	case f.Call != nil:
		return f.Call.String()
	case f.Ident != nil:
		return f.Ident.Value
	case f.Number != nil:
		return fmt.Sprintf("%d", *f.Number)
	case f.Sub != nil:
		return "(" + f.Sub.String() + ")"
	}
	return ""
}
