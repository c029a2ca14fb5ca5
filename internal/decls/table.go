// Package decls holds the declaration table consulted when rendering
// pointer-to-declaration provenance. The table is read-only from the value
// layer's perspective.
package decls

import (
	"github.com/g2mt/zig/internal/intern"
	"github.com/g2mt/zig/internal/source"
	"github.com/g2mt/zig/internal/types"
)

// Decl is one named declaration with its current typed value. The value side
// lives in the intern pool so declaration lifetimes never tie into copy
// arenas.
type Decl struct {
	Name    source.StringID
	Ty      types.TypeID
	Val     intern.ValueID
	Mutable bool
}

// Table maps DeclIDs to declarations.
type Table struct {
	decls []Decl
}

// NewTable constructs an empty table; slot 0 stays reserved as invalid.
func NewTable() *Table {
	return &Table{decls: []Decl{{}}}
}

// Add registers a declaration and returns its handle.
func (t *Table) Add(d Decl) intern.DeclID {
	id := intern.DeclID(len(t.decls))
	t.decls = append(t.decls, d)
	return id
}

// Get returns the declaration for a handle.
func (t *Table) Get(id intern.DeclID) (Decl, bool) {
	if id == intern.NoDeclID || int(id) >= len(t.decls) {
		return Decl{}, false
	}
	return t.decls[id], true
}

// MustGet panics when id is invalid.
func (t *Table) MustGet(id intern.DeclID) Decl {
	d, ok := t.Get(id)
	if !ok {
		panic("decls: invalid DeclID")
	}
	return d
}

// Len returns the number of table slots, the invalid slot included.
func (t *Table) Len() int {
	return len(t.decls)
}
