package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternIsStable(t *testing.T) {
	table := NewTable()

	a := table.Intern("a")
	b := table.Intern("b")
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, table.Intern("a"))
	assert.Equal(t, 2, table.Len())
}

func TestDisplay(t *testing.T) {
	table := NewTable()
	id := table.Intern("counter")

	assert.Equal(t, "counter", table.Display(id))
	assert.Equal(t, "<ident 42>", table.Display(42))
}

func TestLookupDoesNotIntern(t *testing.T) {
	table := NewTable()

	_, ok := table.Lookup("x")
	assert.False(t, ok)
	assert.Equal(t, 0, table.Len())

	id := table.Intern("x")
	got, ok := table.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, id, got)
}

func TestDefaultIsShared(t *testing.T) {
	assert.Same(t, Default(), Default())
}
