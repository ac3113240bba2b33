// Package token SPDX-License-Identifier: Apache-2.0
package token

import (
	"fmt"
	"sync"
)

// Ident is the interned, stable identifier of a source name.
type Ident int

// Table interns source names into dense identifiers and maps them back
// for display. The zero value is not usable, use NewTable.
type Table struct {
	mu    sync.RWMutex
	ids   map[string]Ident
	names []string
}

func NewTable() *Table {
	return &Table{ids: make(map[string]Ident)}
}

// Intern returns the identifier for name, allocating the next one on first sight.
func (t *Table) Intern(name string) Ident {
	t.mu.RLock()
	id, ok := t.ids[name]
	t.mu.RUnlock()
	if ok {
		return id
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.ids[name]; ok {
		return id
	}
	id = Ident(len(t.names))
	t.ids[name] = id
	t.names = append(t.names, name)
	return id
}

// Lookup reports the identifier of name without interning it.
func (t *Table) Lookup(name string) (Ident, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	id, ok := t.ids[name]
	return id, ok
}

// Display returns the source name of id.
func (t *Table) Display(id Ident) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if id < 0 || int(id) >= len(t.names) {
		return fmt.Sprintf("<ident %d>", int(id))
	}
	return t.names[id]
}

func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.names)
}

var defaultTable = NewTable()

// Default returns the process-wide table.
func Default() *Table { return defaultTable }
