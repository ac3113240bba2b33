package ir

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Printer renders a CFG as text: every block's instructions in order, then
// the predecessor, successor and dominance tables by block id.
type Printer struct {
	indent int
	output strings.Builder
}

func NewPrinter() *Printer {
	return &Printer{}
}

// Print returns the dump of g.
func Print(g *CFG) string {
	p := NewPrinter()
	p.printCFG(g)
	return p.output.String()
}

// Dump writes the dump of g to w.
func (g *CFG) Dump(w io.Writer) error {
	_, err := io.WriteString(w, Print(g))
	return err
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.output.WriteString("  ")
	}
}

func (p *Printer) writeLine(format string, args ...interface{}) {
	p.writeIndent()
	p.output.WriteString(fmt.Sprintf(format, args...))
	p.output.WriteString("\n")
}

func (p *Printer) printCFG(g *CFG) {
	header := color.New(color.Bold).SprintFunc()
	phi := color.New(color.FgCyan).SprintFunc()

	for _, bb := range g.blocks {
		p.writeLine("%s", header(fmt.Sprintf("BB%d:", bb.ID)))
		p.indent++
		for i, h := range bb.instrs {
			node, err := g.arena.Get(h)
			if err != nil {
				p.writeLine("%d: <%v>", h, err)
				continue
			}
			text := node.Format(g.names)
			if i < bb.numPhis {
				text = phi(text)
			}
			p.writeLine("%d: %s", h, text)
		}
		if defs := bb.Definitions(); len(defs) > 0 {
			vars := make([]string, len(defs))
			for i, d := range defs {
				vars[i] = fmt.Sprintf("%s=%d", g.names.Display(d.Ident), d.Instr)
			}
			p.writeLine("; defs: %s", strings.Join(vars, " "))
		}
		p.indent--
	}

	p.writeLine("")
	p.writeLine("%s", header("Predecessors:"))
	for id, list := range g.preds {
		p.writeLine("BB%d: %s", id, formatBlocks(list))
	}

	p.writeLine("")
	p.writeLine("%s", header("Successors:"))
	for id, list := range g.succs {
		p.writeLine("BB%d: %s", id, formatBlocks(list))
	}

	p.writeLine("")
	p.writeLine("%s", header("Dom Predecessors:"))
	for id, dom := range g.domPreds {
		p.writeLine("BB%d: %d", id, dom)
	}
}

func formatBlocks(list []BlockID) string {
	parts := make([]string, len(list))
	for i, b := range list {
		parts[i] = fmt.Sprintf("%d", b)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
