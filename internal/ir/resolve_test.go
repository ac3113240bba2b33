package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smpl/token"
)

type recordingReporter struct {
	names []string
}

func (r *recordingReporter) UseBeforeDefinition(_ token.Ident, name string) {
	r.names = append(r.names, name)
}

// define emits a fresh value into block b and makes it the definition of id there.
func define(t *testing.T, g *CFG, b BlockID, id token.Ident) Handle {
	t.Helper()
	h, err := g.InsertInstr(KindOp, OpRead, &b, Nullary())
	require.NoError(t, err)
	require.NoError(t, g.Define(b, id, h))
	return h
}

func phisIn(t *testing.T, g *CFG, b BlockID) []Handle {
	t.Helper()
	bb, err := g.Block(b)
	require.NoError(t, err)
	return bb.Phis()
}

func newNamedGraph() (*CFG, *token.Table, *recordingReporter) {
	names := token.NewTable()
	reporter := &recordingReporter{}
	return New(WithNames(names), WithReporter(reporter)), names, reporter
}

func TestResolveLocalDefinition(t *testing.T) {
	g, names, _ := newNamedGraph()
	x := names.Intern("x")
	a := define(t, g, 1, x)

	h, ok, err := g.Resolve(1, x)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, a, h)
}

func TestResolveStraightLine(t *testing.T) {
	g, names, _ := newNamedGraph()
	x := names.Intern("x")
	a := define(t, g, 1, x)

	b2, err := g.CreateBlock([]BlockID{1})
	require.NoError(t, err)
	before := g.NumInstrs()

	h, ok, err := g.Resolve(b2, x)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, a, h)
	assert.Empty(t, phisIn(t, g, b2))
	assert.Equal(t, before, g.NumInstrs())
}

func TestResolveMergeCreatesPhi(t *testing.T) {
	g, names, _ := newNamedGraph()
	x := names.Intern("x")
	a := define(t, g, 1, x)

	b2, _ := g.CreateBlock([]BlockID{1})
	b := define(t, g, b2, x)
	require.NotEqual(t, a, b)

	b3, _ := g.CreateBlock([]BlockID{1, b2})
	h, ok, err := g.Resolve(b3, x)
	require.NoError(t, err)
	require.True(t, ok)

	phis := phisIn(t, g, b3)
	require.Len(t, phis, 1)
	assert.Equal(t, phis[0], h)

	node, err := g.Instr(h)
	require.NoError(t, err)
	assert.True(t, node.IsPhi())
	assert.Equal(t, a, node.Left)
	assert.Equal(t, b, node.Right)

	// the phi took over the placeholder slot
	bb, _ := g.Block(b3)
	assert.Equal(t, 1, bb.Len())
}

func TestResolveSameDefinitionOnAllPaths(t *testing.T) {
	g, names, _ := newNamedGraph()
	x := names.Intern("x")
	a := define(t, g, 1, x)

	left, _ := g.CreateBlock([]BlockID{1})
	right, _ := g.CreateBlock([]BlockID{1})
	join, _ := g.CreateBlock([]BlockID{left, right}, []BlockID{1})

	h, ok, err := g.Resolve(join, x)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, a, h)
	assert.Empty(t, phisIn(t, g, join))
}

func TestResolveReusesSynthesizedPhi(t *testing.T) {
	g, names, _ := newNamedGraph()
	x := names.Intern("x")
	define(t, g, 1, x)
	b2, _ := g.CreateBlock([]BlockID{1})
	define(t, g, b2, x)
	b3, _ := g.CreateBlock([]BlockID{1, b2})

	first, _, err := g.Resolve(b3, x)
	require.NoError(t, err)
	second, _, err := g.Resolve(b3, x)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, phisIn(t, g, b3), 1)
}

func TestResolveSelfLoopTerminates(t *testing.T) {
	g, names, _ := newNamedGraph()
	x := names.Intern("x")
	a := define(t, g, 1, x)

	loop, err := g.CreateBlock([]BlockID{1, 2})
	require.NoError(t, err)

	h, ok, err := g.Resolve(loop, x)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, a, h)
	assert.Empty(t, phisIn(t, g, loop))
}

func TestResolveLoopBackEdge(t *testing.T) {
	g, names, _ := newNamedGraph()
	x := names.Intern("x")
	a := define(t, g, 1, x)

	header, _ := g.CreateBlock([]BlockID{1})
	body, _ := g.CreateBlock([]BlockID{header})
	b := define(t, g, body, x)
	require.NoError(t, g.AddEdge(body, header))
	exit, _ := g.CreateBlock([]BlockID{header})

	h, ok, err := g.Resolve(exit, x)
	require.NoError(t, err)
	require.True(t, ok)

	phis := phisIn(t, g, header)
	require.Len(t, phis, 1)
	assert.Equal(t, phis[0], h)
	node, _ := g.Instr(h)
	assert.Equal(t, a, node.Left)
	assert.Equal(t, b, node.Right)
	assert.Empty(t, phisIn(t, g, exit))
}

func TestResolveVisitsEachBlockOnce(t *testing.T) {
	g, names, _ := newNamedGraph()
	x := names.Intern("x")
	a := define(t, g, 1, x)

	header, _ := g.CreateBlock([]BlockID{1})
	body, _ := g.CreateBlock([]BlockID{header})
	require.NoError(t, g.AddEdge(body, header))

	visited := NewVisited()
	h, ok, err := g.ResolveVariable(body, x, visited)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, a, h)
	assert.ElementsMatch(t, []BlockID{body, header, 1}, visited.ToSlice())

	// a block already in progress yields nothing
	h, ok, err = g.ResolveVariable(header, x, visited)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, Handle(0), h)
}

func TestResolveUseBeforeDefinition(t *testing.T) {
	g, names, reporter := newNamedGraph()
	y := names.Intern("y")
	b2, _ := g.CreateBlock([]BlockID{1})

	h, ok, err := g.Resolve(b2, y)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, Uninitialized, h)
	assert.Equal(t, []string{"y"}, reporter.names)
}

func TestResolveUnreachableBlockYieldsNothing(t *testing.T) {
	g, names, reporter := newNamedGraph()
	y := names.Intern("y")
	island, _ := g.CreateBlock(nil)

	_, ok, err := g.Resolve(island, y)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, reporter.names)
}

func TestResolveUnknownBlock(t *testing.T) {
	g, names, _ := newNamedGraph()

	_, _, err := g.Resolve(12, names.Intern("x"))
	assert.ErrorIs(t, err, ErrOutOfRange)
}

// Only the first two candidates are compared; a third distinct definition
// does not take part in the merge.
func TestResolveThreeWayMergeUsesFirstTwo(t *testing.T) {
	g, names, _ := newNamedGraph()
	x := names.Intern("x")

	p1, _ := g.CreateBlock([]BlockID{1})
	a := define(t, g, p1, x)
	p2, _ := g.CreateBlock([]BlockID{1})
	b := define(t, g, p2, x)
	p3, _ := g.CreateBlock([]BlockID{1})
	define(t, g, p3, x)

	join, _ := g.CreateBlock([]BlockID{p1, p2, p3}, []BlockID{1})
	h, ok, err := g.Resolve(join, x)
	require.NoError(t, err)
	require.True(t, ok)

	node, _ := g.Instr(h)
	assert.True(t, node.IsPhi())
	assert.Equal(t, a, node.Left)
	assert.Equal(t, b, node.Right)
}

// When the first two candidates agree but a later one differs, no
// definition is produced.
func TestResolveDisagreementAfterFirstTwo(t *testing.T) {
	g, names, _ := newNamedGraph()
	x := names.Intern("x")

	p1, _ := g.CreateBlock([]BlockID{1})
	a := define(t, g, p1, x)
	p2, _ := g.CreateBlock([]BlockID{1})
	require.NoError(t, g.Define(p2, x, a))
	p3, _ := g.CreateBlock([]BlockID{1})
	define(t, g, p3, x)

	join, _ := g.CreateBlock([]BlockID{p1, p2, p3})
	_, ok, err := g.Resolve(join, x)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, phisIn(t, g, join))
}
